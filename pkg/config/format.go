package config

// OutputFormat specifies how an encoded tree is written.
type OutputFormat string

const (
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
	FormatTree OutputFormat = "tree"
)

// IsValid returns true if the output format is known.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatJSON, FormatYAML, FormatTree:
		return true
	default:
		return false
	}
}

// Extension returns the file extension used when writing the format to disk.
func (f OutputFormat) Extension() string {
	switch f {
	case FormatYAML:
		return ".yaml"
	case FormatTree:
		return ".txt"
	default:
		return ".json"
	}
}
