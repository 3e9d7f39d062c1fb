package dash

import (
	"slices"
	"time"

	"github.com/abrtools/manifestkit/logging"
	"github.com/abrtools/manifestkit/manifest/common"
)

// Validator checks MPDs against ISO/IEC 23009-1 and the DASH-IF IOP
type Validator struct {
	rules  []Rule
	config *Config
	logger logging.Logger
}

// NewValidator creates a new DASH validator with default configuration
func NewValidator() *Validator {
	return NewValidatorWithConfig(nil)
}

// NewValidatorWithConfig creates a new DASH validator with custom configuration
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
func (v *Validator) SetLogger(logger logging.Logger) {
	v.logger = logger
}

// Validate evaluates the full rule catalog against the raw MPD text and
// returns a compliance report. The reported version carries the declared
// DASH profile rather than a numeric version.
func (v *Validator) Validate(content string) *common.ValidationResult {
	doc := NewDocument(content)

	v.logger.Debug("validating DASH MPD", logging.Fields{
		"mpd_type": doc.MPDType,
		"profile":  doc.Profile,
		"bytes":    len(content),
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

	playlistType := common.PlaylistTypeMPDStatic
	if doc.MPDType == "dynamic" {
		playlistType = common.PlaylistTypeMPDDynamic
	}

	result := common.NewValidationResult(
		issues,
		playlistType,
		doc.Profile,
		DetectFeatures(content, doc.MPDType),
		RuleCodes(),
	)
	result.Timestamp = time.Now().UTC()

	if !result.Compliant {
		v.logger.Debug("MPD is not spec compliant", logging.Fields{
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
