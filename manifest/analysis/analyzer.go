package analysis

import (
	"fmt"

	"github.com/abrtools/manifestkit/manifest/common"
)

// Category groups best-practice findings
type Category string

const (
	CategoryVariants  Category = "variants"
	CategoryCodecs    Category = "codecs"
	CategoryMetadata  Category = "metadata"
	CategoryABRLadder Category = "abr-ladder"
)

// Issue is one best-practice finding. Unlike spec validation issues,
// these reflect delivery quality rather than standards compliance.
type Issue struct {
	Severity common.Severity `json:"severity"`
	Message  string          `json:"message"`
	Category Category        `json:"category"`
}

// Summary counts findings by severity
type Summary struct {
	Errors   int  `json:"errors"`
	Warnings int  `json:"warnings"`
	Info     int  `json:"info"`
	Healthy  bool `json:"healthy"`
}

// AnalyzeManifest checks a parsed manifest against streaming delivery best
// practices: ladder shape, duplicate bitrates, missing variant attributes,
// and metadata consistency.
func AnalyzeManifest(manifest *common.ParsedManifest) []Issue {
	var issues []Issue

	if len(manifest.Variants) == 0 {
		return []Issue{{
			Severity: common.SeverityError,
			Message:  "No variants found in manifest",
			Category: CategoryVariants,
		}}
	}

	videoVariants := filterVideo(manifest.Variants)

	if len(videoVariants) == 0 {
		issues = append(issues, Issue{
			Severity: common.SeverityWarning,
			Message:  "No video variants found",
			Category: CategoryVariants,
		})
	} else {
		issues = append(issues, analyzeVideoVariants(videoVariants)...)
	}

	issues = append(issues, analyzeMetadata(manifest)...)
	return issues
}

func analyzeVideoVariants(videoVariants []common.Variant) []Issue {
	var issues []Issue

	if len(videoVariants) < 3 {
		issues = append(issues, Issue{
			Severity: common.SeverityWarning,
			Message:  fmt.Sprintf("Only %d video variant(s). Recommended: 4-6 variants for optimal ABR", len(videoVariants)),
			Category: CategoryABRLadder,
		})
	}

	seen := make(map[int]bool, len(videoVariants))
	duplicates := false
	for _, v := range videoVariants {
		if seen[v.Bitrate] {
			duplicates = true
			break
		}
		seen[v.Bitrate] = true
	}
	if duplicates {
		issues = append(issues, Issue{
			Severity: common.SeverityWarning,
			Message:  "Multiple variants have the same bitrate",
			Category: CategoryABRLadder,
		})
	}

	for _, v := range videoVariants {
		if v.Resolution == nil {
			issues = append(issues, Issue{
				Severity: common.SeverityWarning,
				Message:  "Some video variants are missing resolution information",
				Category: CategoryVariants,
			})
			break
		}
	}

	for i, v := range videoVariants {
		if len(v.Codecs) == 0 {
			issues = append(issues, Issue{
				Severity: common.SeverityWarning,
				Message:  fmt.Sprintf("Variant %d is missing codec information", i+1),
				Category: CategoryCodecs,
			})
		}
	}

	// Gaps beyond twice the average step break smooth rate adaptation
	sorted := sortByBitrate(videoVariants)
	gaps := BitrateGaps(sorted)
	if len(gaps) > 0 {
		total := 0
		for _, gap := range gaps {
			total += gap
		}
		avgGap := float64(total) / float64(len(gaps))

		for i, gap := range gaps {
			if float64(gap) > avgGap*2 {
				issues = append(issues, Issue{
					Severity: common.SeverityInfo,
					Message: fmt.Sprintf("Large gap detected between variant %d and %d: %.2f Mbps",
						i+1, i+2, float64(gap)/1000000),
					Category: CategoryABRLadder,
				})
			}
		}
	}

	return issues
}

func analyzeMetadata(manifest *common.ParsedManifest) []Issue {
	var issues []Issue

	if manifest.Metadata.Type == common.ManifestTypeLive &&
		len(manifest.Segments) > 0 && manifest.Metadata.TargetDuration == 0 {
		issues = append(issues, Issue{
			Severity: common.SeverityWarning,
			Message:  "LIVE manifest should have targetDuration",
			Category: CategoryMetadata,
		})
	}

	if manifest.Metadata.Encrypted {
		issues = append(issues, Issue{
			Severity: common.SeverityInfo,
			Message:  "Manifest contains encrypted content (DRM)",
			Category: CategoryMetadata,
		})
	}

	return issues
}

// Summarize counts issues by severity; a manifest is healthy when it has
// no errors
func Summarize(issues []Issue) Summary {
	summary := Summary{}
	for _, issue := range issues {
		switch issue.Severity {
		case common.SeverityError:
			summary.Errors++
		case common.SeverityWarning:
			summary.Warnings++
		default:
			summary.Info++
		}
	}
	summary.Healthy = summary.Errors == 0
	return summary
}
