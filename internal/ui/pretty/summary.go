package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/mdtree/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int) string {
	if n == 1 {
		return wordFile
	}
	return wordFiles
}

// FormatOutcome formats one converted file as a single line. path is the
// display form of the source path.
func (s *Styles) FormatOutcome(path string, outcome runner.FileOutcome) string {
	if outcome.Error != nil {
		return fmt.Sprintf("%s: %s\n",
			s.FilePath.Render(path),
			s.Error.Render(fmt.Sprintf("error: %v", outcome.Error)),
		)
	}

	line := s.FilePath.Render(path)
	switch {
	case outcome.Written:
		line += s.Arrow.Render(" -> ") + outcome.OutputPath
	case outcome.OutputPath != "":
		line += s.Arrow.Render(" -> ") + outcome.OutputPath + s.Dim.Render(" (unchanged)")
	}
	return line + "\n"
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "Converted 12 files, 1 failed, 10 written".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.FilesDiscovered == 0 {
		return s.Dim.Render("No Markdown files found") + "\n"
	}

	var parts []string
	if stats.FilesFailed == 0 {
		parts = append(parts, s.Success.Render(fmt.Sprintf("Converted %d %s", stats.FilesConverted, plural(stats.FilesConverted))))
	} else {
		parts = append(parts,
			fmt.Sprintf("Converted %d %s", stats.FilesConverted, plural(stats.FilesConverted)),
			s.Failure.Render(fmt.Sprintf("%d failed", stats.FilesFailed)),
		)
	}

	if stats.FilesWritten > 0 {
		parts = append(parts, fmt.Sprintf("%d written", stats.FilesWritten))
	}
	if stats.FilesUnchanged > 0 {
		parts = append(parts, s.Dim.Render(fmt.Sprintf("%d unchanged", stats.FilesUnchanged)))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	row := func(label string, value string) {
		builder.WriteString(fmt.Sprintf("  %-18s %s\n", label+":", value))
	}

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	row("Files discovered", s.SummaryValue.Render(strconv.Itoa(stats.FilesDiscovered)))
	row("Files converted", s.SummaryValue.Render(strconv.Itoa(stats.FilesConverted)))
	if stats.FilesFailed > 0 {
		row("Files failed", s.Failure.Render(strconv.Itoa(stats.FilesFailed)))
	}
	if stats.FilesWritten > 0 || stats.FilesUnchanged > 0 {
		row("Outputs written", s.Success.Render(strconv.Itoa(stats.FilesWritten)))
		row("Outputs unchanged", s.SummaryValue.Render(strconv.Itoa(stats.FilesUnchanged)))
	}

	builder.WriteString("\n")
	row("Bytes read", s.SummaryValue.Render(strconv.Itoa(stats.BytesRead)))
	row("Bytes produced", s.SummaryValue.Render(strconv.Itoa(stats.BytesProduced)))
	if stats.Nodes > 0 {
		row("Tree nodes", s.SummaryValue.Render(strconv.Itoa(stats.Nodes)))
	}

	builder.WriteString("\n")
	if stats.FilesFailed > 0 {
		builder.WriteString(s.Failure.Render("Conversion finished with failures"))
	} else {
		builder.WriteString(s.Success.Render("Conversion succeeded"))
	}
	builder.WriteString("\n")

	return builder.String()
}
