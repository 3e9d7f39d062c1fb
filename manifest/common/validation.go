package common

import "time"

// Severity classifies a validation issue
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// PlaylistType classifies the validated document
type PlaylistType string

const (
	PlaylistTypeMaster     PlaylistType = "master"
	PlaylistTypeMedia      PlaylistType = "media"
	PlaylistTypeMPDStatic  PlaylistType = "mpd-static"
	PlaylistTypeMPDDynamic PlaylistType = "mpd-dynamic"
)

// ValidationIssue is one spec violation or advisory found in a manifest
type ValidationIssue struct {
	Code          string   `json:"code"`
	Severity      Severity `json:"severity"`
	Line          int      `json:"line,omitempty"`
	Element       string   `json:"element,omitempty"`
	Tag           string   `json:"tag,omitempty"`
	Attribute     string   `json:"attribute,omitempty"`
	Message       string   `json:"message"`
	SpecReference string   `json:"spec_reference"`
	SpecURL       string   `json:"spec_url,omitempty"`
	Suggestion    string   `json:"suggestion,omitempty"`
}

// DetectedFeature is one entry of the capability checklist reported
// alongside validation, independent of pass/fail
type DetectedFeature struct {
	Name     string `json:"name"`
	Version  int    `json:"version,omitempty"`
	Detected bool   `json:"detected"`
	Tag      string `json:"tag,omitempty"`
}

// ValidationResult aggregates all issues found by a spec validator.
// Errors, Warnings and Info partition the issues by severity; an issue
// appears in exactly one bucket. Compliant is true iff Errors is empty.
type ValidationResult struct {
	Compliant        bool              `json:"compliant"`
	Errors           []ValidationIssue `json:"errors"`
	Warnings         []ValidationIssue `json:"warnings"`
	Info             []ValidationIssue `json:"info"`
	PlaylistType     PlaylistType      `json:"playlist_type"`
	Version          string            `json:"version,omitempty"`
	DetectedFeatures []DetectedFeature `json:"detected_features"`
	CheckedRules     []string          `json:"checked_rules"`
	Timestamp        time.Time         `json:"timestamp"`
}

// NewValidationResult partitions issues by severity and stamps the result
func NewValidationResult(issues []ValidationIssue, playlistType PlaylistType, version string, features []DetectedFeature, checkedRules []string) *ValidationResult {
	result := &ValidationResult{
		Errors:           make([]ValidationIssue, 0),
		Warnings:         make([]ValidationIssue, 0),
		Info:             make([]ValidationIssue, 0),
		PlaylistType:     playlistType,
		Version:          version,
		DetectedFeatures: features,
		CheckedRules:     checkedRules,
		Timestamp:        time.Now(),
	}

	for _, issue := range issues {
		switch issue.Severity {
		case SeverityError:
			result.Errors = append(result.Errors, issue)
		case SeverityWarning:
			result.Warnings = append(result.Warnings, issue)
		default:
			result.Info = append(result.Info, issue)
		}
	}

	result.Compliant = len(result.Errors) == 0
	return result
}

// TotalIssues returns the count across all severity buckets
func (r *ValidationResult) TotalIssues() int {
	return len(r.Errors) + len(r.Warnings) + len(r.Info)
}

// LineNumber computes the 1-based line of a byte offset within content
func LineNumber(content string, offset int) int {
	if offset < 0 {
		return 1
	}
	if offset > len(content) {
		offset = len(content)
	}
	line := 1
	for i := 0; i < offset; i++ {
		if content[i] == '\n' {
			line++
		}
	}
	return line
}
