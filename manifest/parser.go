package manifest

import (
	"fmt"
	"strings"

	"github.com/abrtools/manifestkit/logging"
	"github.com/abrtools/manifestkit/manifest/common"
	"github.com/abrtools/manifestkit/manifest/dash"
	"github.com/abrtools/manifestkit/manifest/hls"
)

// ParseManifest auto-detects the format, parses the manifest, and attaches
// a spec validation report. Relative URLs are resolved against url.
//
// Parse errors are returned as *common.ManifestError. A failure inside a
// validator is never fatal: the manifest is returned with Validation nil.
func ParseManifest(content, url string) (*common.ParsedManifest, error) {
	if strings.TrimSpace(content) == "" {
		return nil, common.NewManifestError(common.FormatHLS, url,
			common.ErrCodeEmptyContent, "manifest content is empty", nil)
	}

	format := DetectFormat(content)

	var (
		parsed *common.ParsedManifest
		err    error
	)

	switch format {
	case common.FormatHLS:
		parsed, err = hls.NewParser().Parse(content, url)
	case common.FormatDASH:
		parsed, err = dash.NewParser().Parse(content, url)
	default:
		return nil, common.NewManifestError(format, url,
			common.ErrCodeUnsupportedFormat,
			fmt.Sprintf("unsupported manifest format: %s", format), nil)
	}

	if err != nil {
		return nil, err
	}

	parsed.Validation = validate(format, content, url)
	return parsed, nil
}

// validate runs the format's spec validator, converting any panic into a
// nil report so a validator bug cannot take down parsing
func validate(format common.Format, content, url string) (result *common.ValidationResult) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			logging.Warn("manifest validation failed", logging.Fields{
				"format": string(format),
				"url":    url,
				"panic":  fmt.Sprint(r),
			})
		}
	}()

	switch format {
	case common.FormatDASH:
		return dash.NewValidator().Validate(content)
	default:
		return hls.NewValidator().Validate(content)
	}
}
