package configloader

import (
	"os"
	"strings"
)

// envVarPrefix is the prefix for all mdtree environment variables.
const envVarPrefix = "MDTREE_"

// EnvVarName returns the environment variable that sets key.
func EnvVarName(key string) string {
	return envVarPrefix + strings.ToUpper(key)
}

// LoadFromEnv builds a layer from MDTREE_* variables, one per key (for
// example MDTREE_SMART=true or MDTREE_EXCLUDE=vendor/**,dist/**). A nil
// lookup means os.LookupEnv.
func LoadFromEnv(lookup func(string) (string, bool)) (*Layer, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	layer := NewLayer(SourceEnv)
	for _, key := range Keys() {
		name := EnvVarName(key)
		raw, ok := lookup(name)
		if !ok {
			continue
		}
		if err := layer.Set(key, raw); err != nil {
			if verr, isValidation := err.(*ValidationError); isValidation { //nolint:errorlint // Set returns the concrete type.
				verr.Field = name
			}
			return nil, err
		}
	}
	return layer, nil
}

// ListEnvVars returns every supported environment variable in key order.
func ListEnvVars() []string {
	keys := Keys()
	names := make([]string, 0, len(keys))
	for _, key := range keys {
		names = append(names, EnvVarName(key))
	}
	return names
}
