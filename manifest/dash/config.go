package dash

// Config holds configuration for DASH processing
type Config struct {
	Parser     *ParserConfig     `json:"parser"`
	Validation *ValidationConfig `json:"validation"`
}

// ParserConfig holds configuration for MPD parsing
type ParserConfig struct {
	StrictMode bool `json:"strict_mode"`
}

// ValidationConfig holds configuration for ISO/IEC 23009-1 validation
type ValidationConfig struct {
	// DisabledRules lists rule codes to skip during validation
	DisabledRules []string `json:"disabled_rules"`
	// MaxIssues caps the number of reported issues; 0 means unlimited
	MaxIssues int `json:"max_issues"`
}

// DefaultConfig returns the default DASH configuration
func DefaultConfig() *Config {
	return &Config{
		Parser: &ParserConfig{
			StrictMode: false,
		},
		Validation: &ValidationConfig{
			DisabledRules: []string{},
			MaxIssues:     0,
		},
	}
}

// ConfigFromMap creates a DASH config from a map (useful for testing and flexibility)
func ConfigFromMap(configMap map[string]any) *Config {
	config := DefaultConfig()

	if parserCfg, ok := configMap["parser"].(map[string]any); ok {
		if strictMode, ok := parserCfg["strict_mode"].(bool); ok {
			config.Parser.StrictMode = strictMode
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
