package common

import (
	"regexp"
	"strconv"
	"strings"
)

// Codec signature classes per RFC 6381 registrations
var (
	videoCodecPattern    = regexp.MustCompile(`(?i)avc1|hvc1|hev1|vp0?9|av01`)
	audioCodecPattern    = regexp.MustCompile(`(?i)mp4a|ac-3|ec-3|opus`)
	subtitleCodecPattern = regexp.MustCompile(`(?i)wvtt|stpp`)
)

// SplitCodecs splits a comma-separated CODECS attribute into trimmed tokens.
// Empty input yields an empty (non-nil) list.
func SplitCodecs(codecs string) []string {
	codecs = strings.Trim(strings.TrimSpace(codecs), "\"")
	if codecs == "" {
		return []string{}
	}

	parts := strings.Split(codecs, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// ClassifyCodecs infers the variant type from codec signatures. Video codec
// classes win over audio and subtitle; when no class matches, a present
// resolution implies video and everything else defaults to audio.
func ClassifyCodecs(codecs []string, hasResolution bool) VariantType {
	joined := strings.Join(codecs, ",")

	switch {
	case videoCodecPattern.MatchString(joined):
		return VariantTypeVideo
	case audioCodecPattern.MatchString(joined):
		return VariantTypeAudio
	case subtitleCodecPattern.MatchString(joined):
		return VariantTypeSubtitle
	case hasResolution:
		return VariantTypeVideo
	default:
		return VariantTypeAudio
	}
}

// ParseResolution parses a "WIDTHxHEIGHT" attribute value. Returns nil for
// anything that does not match that shape.
func ParseResolution(value string) *Resolution {
	parts := strings.SplitN(strings.TrimSpace(value), "x", 2)
	if len(parts) != 2 {
		return nil
	}

	width, err := strconv.Atoi(parts[0])
	if err != nil {
		return nil
	}
	height, err := strconv.Atoi(parts[1])
	if err != nil {
		return nil
	}
	if width <= 0 || height <= 0 {
		return nil
	}

	return &Resolution{Width: width, Height: height}
}

// VariantID builds the positional variant identifier assigned in parse order
func VariantID(index int) string {
	return "variant-" + strconv.Itoa(index)
}

// SegmentID builds the positional segment identifier
func SegmentID(index int) string {
	return "segment-" + strconv.Itoa(index)
}

// IsValidURL performs basic URL validation
func IsValidURL(url string) bool {
	url = strings.TrimSpace(url)
	return strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://")
}
