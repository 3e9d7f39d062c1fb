package hls

import (
	"maps"
)

// Config holds configuration for HLS processing
type Config struct {
	Parser     *ParserConfig     `json:"parser"`
	Validation *ValidationConfig `json:"validation"`
}

// ParserConfig holds configuration for M3U8 parsing
type ParserConfig struct {
	StrictMode        bool              `json:"strict_mode"`
	CustomTagHandlers map[string]string `json:"custom_tag_handlers"`
	IgnoreUnknownTags bool              `json:"ignore_unknown_tags"`
}

// ValidationConfig holds configuration for RFC 8216 validation
type ValidationConfig struct {
	// DisabledRules lists rule codes to skip during validation
	DisabledRules []string `json:"disabled_rules"`
	// MaxIssues caps the number of reported issues; 0 means unlimited
	MaxIssues int `json:"max_issues"`
}

// DefaultConfig returns the default HLS configuration
func DefaultConfig() *Config {
	return &Config{
		Parser: &ParserConfig{
			StrictMode:        false,
			CustomTagHandlers: make(map[string]string),
			IgnoreUnknownTags: false,
		},
		Validation: &ValidationConfig{
			DisabledRules: []string{},
			MaxIssues:     0,
		},
	}
}

// ConfigFromMap creates an HLS config from a map (useful for testing and flexibility)
func ConfigFromMap(configMap map[string]any) *Config {
	config := DefaultConfig()

	if parserCfg, ok := configMap["parser"].(map[string]any); ok {
		if strictMode, ok := parserCfg["strict_mode"].(bool); ok {
			config.Parser.StrictMode = strictMode
		}
		if ignoreUnknown, ok := parserCfg["ignore_unknown_tags"].(bool); ok {
			config.Parser.IgnoreUnknownTags = ignoreUnknown
		}
		if handlers, ok := parserCfg["custom_tag_handlers"].(map[string]string); ok {
			maps.Copy(config.Parser.CustomTagHandlers, handlers)
		}
	}

	if validationCfg, ok := configMap["validation"].(map[string]any); ok {
		if disabled, ok := validationCfg["disabled_rules"].([]string); ok {
			config.Validation.DisabledRules = disabled
		}
		if maxIssues, ok := validationCfg["max_issues"].(int); ok {
			config.Validation.MaxIssues = maxIssues
		}
	}

	return config
}
