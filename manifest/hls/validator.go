package hls

import (
	"slices"
	"strconv"
	"time"

	"github.com/abrtools/manifestkit/logging"
	"github.com/abrtools/manifestkit/manifest/common"
)

// Validator checks M3U8 playlists against RFC 8216
type Validator struct {
	rules  []Rule
	config *Config
	logger logging.Logger
}

// NewValidator creates a new HLS validator with default configuration
func NewValidator() *Validator {
	return NewValidatorWithConfig(nil)
}

// NewValidatorWithConfig creates a new HLS validator with custom configuration
func NewValidatorWithConfig(config *Config) *Validator {
	if config == nil {
		config = DefaultConfig()
	}

	return &Validator{
		rules:  DefaultRules(),
		config: config,
		logger: logging.GetGlobalLogger(),
	}
}

// SetLogger sets a custom logger
// Useful if you have different loggers for different components
func (v *Validator) SetLogger(logger logging.Logger) {
	v.logger = logger
}

// Validate evaluates the full rule catalog against the raw playlist text and
// returns a compliance report. Validation never depends on parser state:
// rules read the raw text so syntax errors the parser tolerated are still
// caught.
func (v *Validator) Validate(content string) *common.ValidationResult {
	doc := NewDocument(content)

	v.logger.Debug("validating HLS playlist", logging.Fields{
		"playlist_type": string(doc.PlaylistType),
		"version":       doc.Version,
		"bytes":         len(content),
	})

	var issues []common.ValidationIssue
	for _, rule := range v.rules {
		if v.ruleDisabled(rule) {
			continue
		}
		issues = append(issues, rule.Check(doc)...)
	}

	if limit := v.config.Validation.MaxIssues; limit > 0 && len(issues) > limit {
		issues = issues[:limit]
	}

	result := common.NewValidationResult(
		issues,
		doc.PlaylistType,
		strconv.Itoa(doc.Version),
		DetectFeatures(content),
		RuleCodes(),
	)
	result.Timestamp = time.Now().UTC()

	if !result.Compliant {
		v.logger.Debug("playlist is not RFC 8216 compliant", logging.Fields{
			"errors":   len(result.Errors),
			"warnings": len(result.Warnings),
		})
	}

	return result
}

func (v *Validator) ruleDisabled(rule Rule) bool {
	for _, code := range rule.Codes {
		if slices.Contains(v.config.Validation.DisabledRules, code) {
			return true
		}
	}
	return false
}
