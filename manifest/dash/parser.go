package dash

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/abrtools/manifestkit/manifest/common"
)

// Parser maps DASH MPDs to the normalized manifest model
type Parser struct {
	config *ParserConfig
}

// NewParser creates a new DASH parser with default configuration
func NewParser() *Parser {
	return NewParserWithConfig(nil)
}

// NewParserWithConfig creates a new DASH parser with custom configuration
func NewParserWithConfig(config *ParserConfig) *Parser {
	if config == nil {
		config = DefaultConfig().Parser
	}
	return &Parser{config: config}
}

// Parse transforms MPD XML into a normalized manifest. Representations are
// flattened to variants in document order, so variant IDs are stable for a
// given document.
func (p *Parser) Parse(content, baseURL string) (*common.ParsedManifest, error) {
	mpd, err := UnmarshalMPD(content)
	if err != nil {
		return nil, common.NewManifestError(common.FormatDASH, baseURL,
			common.ErrCodeInvalidFormat, "invalid MPD XML", err)
	}

	return &common.ParsedManifest{
		Format:   common.FormatDASH,
		Raw:      content,
		URL:      baseURL,
		Variants: p.extractVariants(mpd, content, baseURL),
		Metadata: p.extractMetadata(mpd, content),
	}, nil
}

// extractVariants flattens every Representation into a variant
func (p *Parser) extractVariants(mpd *MPD, content, baseURL string) []common.Variant {
	var variants []common.Variant
	index := 0

	mpdBase := resolveBase(baseURL, mpd.BaseURL)

	for _, period := range mpd.Periods {
		periodBase := resolveBase(mpdBase, period.BaseURL)

		for _, set := range period.AdaptationSets {
			for _, rep := range set.Representations {
				variants = append(variants, common.Variant{
					ID:         common.VariantID(index),
					Bitrate:    rep.Bandwidth,
					Resolution: representationResolution(rep),
					Codecs:     representationCodecs(rep, set),
					FrameRate:  parseFrameRate(firstNonEmpty(rep.FrameRate, set.FrameRate)),
					URL:        resolveBase(periodBase, rep.BaseURL),
					Type:       classifyRepresentation(rep, set),
				})
				index++
			}
		}
	}

	return variants
}

// resolveBase layers one BaseURL element onto the effective base
func resolveBase(base, ref string) string {
	if strings.TrimSpace(ref) == "" {
		return base
	}
	return common.ResolveURL(strings.TrimSpace(ref), base)
}

func representationResolution(rep *Representation) *common.Resolution {
	if rep.Width <= 0 || rep.Height <= 0 {
		return nil
	}
	return &common.Resolution{Width: rep.Width, Height: rep.Height}
}

func representationCodecs(rep *Representation, set *AdaptationSet) []string {
	return common.SplitCodecs(firstNonEmpty(rep.Codecs, set.Codecs))
}

// classifyRepresentation infers the variant type, preferring the declared
// mimeType over codec signatures
func classifyRepresentation(rep *Representation, set *AdaptationSet) common.VariantType {
	mimeType := firstNonEmpty(rep.MimeType, set.MimeType)

	switch {
	case strings.Contains(mimeType, "video"):
		return common.VariantTypeVideo
	case strings.Contains(mimeType, "audio"):
		return common.VariantTypeAudio
	case strings.Contains(mimeType, "text"), strings.Contains(mimeType, "subtitle"):
		return common.VariantTypeSubtitle
	}

	return common.ClassifyCodecs(representationCodecs(rep, set), representationResolution(rep) != nil)
}

// extractMetadata derives presentation-level metadata
func (p *Parser) extractMetadata(mpd *MPD, content string) common.ManifestMetadata {
	metadata := common.ManifestMetadata{
		Duration:      ParseISODuration(mpd.MediaPresentationDuration),
		MinBufferTime: parseMinBufferTime(content),
		Encrypted:     strings.Contains(content, "<ContentProtection"),
	}

	// Presentations are VOD only when explicitly declared static
	if mpd.Type == "static" {
		metadata.Type = common.ManifestTypeVOD
	} else {
		metadata.Type = common.ManifestTypeLive
	}

	if mpd.Profiles != "" {
		metadata.Profiles = []string{mpd.Profiles}
	}

	return metadata
}

var minBufferTimePattern = regexp.MustCompile(`minBufferTime="PT([\d.]+)S"`)

// parseMinBufferTime reads minBufferTime from the raw XML. Only the plain
// PT<seconds>S shape is recognized; other ISO 8601 durations yield zero.
func parseMinBufferTime(content string) float64 {
	match := minBufferTimePattern.FindStringSubmatch(content)
	if match == nil {
		return 0
	}
	seconds, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0
	}
	return seconds
}

var isoDurationPattern = regexp.MustCompile(
	`^P(?:(\d+(?:\.\d+)?)Y)?(?:(\d+(?:\.\d+)?)M)?(?:(\d+(?:\.\d+)?)D)?` +
		`(?:T(?:(\d+(?:\.\d+)?)H)?(?:(\d+(?:\.\d+)?)M)?(?:(\d+(?:\.\d+)?)S)?)?$`)

// isoDurationSeconds maps each capture group to its length in seconds,
// using nominal 365-day years and 30-day months
var isoDurationSeconds = []float64{31536000, 2592000, 86400, 3600, 60, 1}

// ParseISODuration converts an ISO 8601 duration such as PT1H2M3.5S to
// seconds. Returns zero for empty or unrecognized input.
func ParseISODuration(value string) float64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}

	match := isoDurationPattern.FindStringSubmatch(value)
	if match == nil {
		return 0
	}

	var total float64
	for i, factor := range isoDurationSeconds {
		group := match[i+1]
		if group == "" {
			continue
		}
		n, err := strconv.ParseFloat(group, 64)
		if err != nil {
			return 0
		}
		total += n * factor
	}
	return total
}

var frameRatePattern = regexp.MustCompile(`^(\d+)(?:/(\d+))?$`)

// parseFrameRate handles both plain ("30") and fractional ("30000/1001")
// DASH frame rates
func parseFrameRate(value string) float64 {
	match := frameRatePattern.FindStringSubmatch(strings.TrimSpace(value))
	if match == nil {
		return 0
	}

	numerator, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0
	}
	if match[2] == "" {
		return numerator
	}

	denominator, err := strconv.ParseFloat(match[2], 64)
	if err != nil || denominator == 0 {
		return 0
	}
	return numerator / denominator
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
