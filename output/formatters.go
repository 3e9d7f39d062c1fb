package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/abrtools/manifestkit/manifest"
	"github.com/abrtools/manifestkit/manifest/common"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any, prettyPrint bool) ([]byte, error)
}

// GetFormatter returns the formatter registered for a format name
func GetFormatter(format string) (Formatter, error) {
	switch strings.ToLower(format) {
	case "json":
		return &JSONFormatter{}, nil
	case "yaml", "yml":
		return &YAMLFormatter{}, nil
	case "csv":
		return &CSVFormatter{}, nil
	case "table", "text":
		return &TableFormatter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// JSONFormatter formats output as JSON
type JSONFormatter struct{}

func (f *JSONFormatter) Format(data any, prettyPrint bool) ([]byte, error) {
	if prettyPrint {
		return json.MarshalIndent(data, "", "  ")
	}
	return json.Marshal(data)
}

// YAMLFormatter formats output as YAML
type YAMLFormatter struct{}

func (f *YAMLFormatter) Format(data any, prettyPrint bool) ([]byte, error) {
	return yaml.Marshal(data)
}

// CSVFormatter renders validation results and manifest diffs as CSV
type CSVFormatter struct{}

func (f *CSVFormatter) Format(data any, prettyPrint bool) ([]byte, error) {
	var records [][]string

	switch v := data.(type) {
	case *common.ValidationResult:
		records = validationRecords(v)
	case *manifest.ManifestDiff:
		records = diffRecords(v)
	default:
		return nil, fmt.Errorf("unsupported data type for CSV output: %T", data)
	}

	var result strings.Builder
	writer := csv.NewWriter(&result)

	for _, record := range records {
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return []byte(result.String()), nil
}

func validationRecords(result *common.ValidationResult) [][]string {
	records := [][]string{{
		"severity", "code", "line", "element", "tag", "attribute", "message", "spec_reference",
	}}

	for _, issue := range allIssues(result) {
		line := ""
		if issue.Line > 0 {
			line = strconv.Itoa(issue.Line)
		}
		records = append(records, []string{
			string(issue.Severity),
			issue.Code,
			line,
			issue.Element,
			issue.Tag,
			issue.Attribute,
			issue.Message,
			issue.SpecReference,
		})
	}

	return records
}

func diffRecords(diff *manifest.ManifestDiff) [][]string {
	records := [][]string{{"change", "variant_id", "bitrate", "url"}}

	appendVariants := func(change string, variants []common.Variant) {
		for _, v := range variants {
			records = append(records, []string{change, v.ID, strconv.Itoa(v.Bitrate), v.URL})
		}
	}

	appendVariants("added", diff.VariantsAdded)
	appendVariants("removed", diff.VariantsRemoved)
	appendVariants("changed", diff.VariantsChanged)

	if diff.MetadataChanged {
		records = append(records, []string{"metadata", "", "", ""})
	}

	return records
}

// TableFormatter renders human-readable text reports for validation
// results, manifest diffs and parsed manifest summaries
type TableFormatter struct{}

func (f *TableFormatter) Format(data any, prettyPrint bool) ([]byte, error) {
	switch v := data.(type) {
	case *common.ValidationResult:
		return []byte(validationTable(v)), nil
	case *manifest.ManifestDiff:
		return []byte(diffTable(v)), nil
	case *common.ParsedManifest:
		return []byte(manifestTable(v)), nil
	default:
		return nil, fmt.Errorf("unsupported data type for table output: %T", data)
	}
}

func validationTable(result *common.ValidationResult) string {
	var b strings.Builder

	b.WriteString("MANIFEST VALIDATION REPORT\n")
	b.WriteString("==========================\n\n")

	status := "NOT COMPLIANT"
	if result.Compliant {
		status = "COMPLIANT"
	}
	fmt.Fprintf(&b, "Status:        %s\n", status)
	fmt.Fprintf(&b, "Playlist type: %s\n", result.PlaylistType)
	if result.Version != "" {
		fmt.Fprintf(&b, "Version:       %s\n", result.Version)
	}
	fmt.Fprintf(&b, "Issues:        %d error(s), %d warning(s), %d info\n\n",
		len(result.Errors), len(result.Warnings), len(result.Info))

	if issues := allIssues(result); len(issues) > 0 {
		b.WriteString("Issues:\n")
		b.WriteString("-------\n")
		for _, issue := range issues {
			location := issue.Element
			if issue.Line > 0 {
				location = fmt.Sprintf("line %d", issue.Line)
			}
			if location != "" {
				fmt.Fprintf(&b, "[%s] %s (%s): %s\n", issue.Severity, issue.Code, location, issue.Message)
			} else {
				fmt.Fprintf(&b, "[%s] %s: %s\n", issue.Severity, issue.Code, issue.Message)
			}
		}
		b.WriteString("\n")
	}

	var detected []string
	for _, feature := range result.DetectedFeatures {
		if feature.Detected {
			detected = append(detected, feature.Name)
		}
	}
	if len(detected) > 0 {
		b.WriteString("Detected Features:\n")
		b.WriteString("------------------\n")
		for _, name := range detected {
			fmt.Fprintf(&b, "- %s\n", name)
		}
	}

	return b.String()
}

func diffTable(diff *manifest.ManifestDiff) string {
	var b strings.Builder

	b.WriteString("MANIFEST DIFF\n")
	b.WriteString("=============\n\n")

	if !diff.HasChanges {
		b.WriteString("No changes detected\n")
		return b.String()
	}

	section := func(title string, variants []common.Variant) {
		if len(variants) == 0 {
			return
		}
		fmt.Fprintf(&b, "%s (%d):\n", title, len(variants))
		for _, v := range variants {
			fmt.Fprintf(&b, "- %s (%d bps) %s\n", v.ID, v.Bitrate, v.URL)
		}
		b.WriteString("\n")
	}

	section("Added", diff.VariantsAdded)
	section("Removed", diff.VariantsRemoved)
	section("Changed", diff.VariantsChanged)

	if diff.MetadataChanged {
		b.WriteString("Metadata changed\n")
	}

	return b.String()
}

func manifestTable(parsed *common.ParsedManifest) string {
	var b strings.Builder

	b.WriteString("PARSED MANIFEST\n")
	b.WriteString("===============\n\n")

	fmt.Fprintf(&b, "Format:    %s\n", parsed.Format)
	fmt.Fprintf(&b, "Type:      %s\n", parsed.Metadata.Type)
	if parsed.Metadata.Duration > 0 {
		duration := time.Duration(parsed.Metadata.Duration * float64(time.Second))
		fmt.Fprintf(&b, "Duration:  %s\n", FormatDuration(duration))
	}
	fmt.Fprintf(&b, "Encrypted: %s\n", strconv.FormatBool(parsed.Metadata.Encrypted))
	fmt.Fprintf(&b, "Variants:  %d\n", len(parsed.Variants))
	fmt.Fprintf(&b, "Segments:  %d\n\n", len(parsed.Segments))

	if len(parsed.Variants) > 0 {
		b.WriteString("Variants:\n")
		b.WriteString("---------\n")
		for _, v := range parsed.Variants {
			resolution := ""
			if v.Resolution != nil {
				resolution = fmt.Sprintf(" %dx%d", v.Resolution.Width, v.Resolution.Height)
			}
			fmt.Fprintf(&b, "- %s [%s] %d bps%s %s\n",
				v.ID, v.Type, v.Bitrate, resolution, strings.Join(v.Codecs, ","))
		}
	}

	return b.String()
}

func allIssues(result *common.ValidationResult) []common.ValidationIssue {
	issues := make([]common.ValidationIssue, 0, result.TotalIssues())
	issues = append(issues, result.Errors...)
	issues = append(issues, result.Warnings...)
	issues = append(issues, result.Info...)
	return issues
}

// FormatDuration formats a duration for human-readable output
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.0fms", float64(d.Nanoseconds())/1e6)
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return fmt.Sprintf("%.1fm", d.Minutes())
}
