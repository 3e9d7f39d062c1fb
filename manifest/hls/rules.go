package hls

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/abrtools/manifestkit/manifest/common"
)

// Document carries the raw playlist text plus the pre-computed facts most
// rules need, so each rule stays a pure function over the document.
type Document struct {
	Content      string
	Lines        []string
	PlaylistType common.PlaylistType
	Version      int
}

// Rule is one independently checkable RFC 8216 requirement. A rule may
// report under several codes (e.g. the EXT-X-KEY rule).
type Rule struct {
	Codes       []string
	Description string
	Check       func(doc *Document) []common.ValidationIssue
}

// NewDocument pre-computes the shared facts for rule evaluation
func NewDocument(content string) *Document {
	return &Document{
		Content:      content,
		Lines:        strings.Split(content, "\n"),
		PlaylistType: DetectPlaylistType(content),
		Version:      DetectVersion(content),
	}
}

// DetectPlaylistType classifies a playlist from its tags: EXT-X-STREAM-INF
// marks a master, EXTINF a media playlist, and ambiguous content defaults
// to master.
func DetectPlaylistType(content string) common.PlaylistType {
	if strings.Contains(content, "#EXT-X-STREAM-INF") {
		return common.PlaylistTypeMaster
	}
	if strings.Contains(content, "#EXTINF") {
		return common.PlaylistTypeMedia
	}
	return common.PlaylistTypeMaster
}

var versionPattern = regexp.MustCompile(`#EXT-X-VERSION:(\d+)`)

// DetectVersion extracts the declared playlist version, defaulting to 1
func DetectVersion(content string) int {
	match := versionPattern.FindStringSubmatch(content)
	if match == nil {
		return 1
	}
	version, err := strconv.Atoi(match[1])
	if err != nil {
		return 1
	}
	return version
}

// DefaultRules returns the RFC 8216 rule catalog in evaluation order
func DefaultRules() []Rule {
	return []Rule{
		{
			Codes:       []string{"EXTM3U_FIRST_LINE"},
			Description: "First line must be #EXTM3U",
			Check:       checkEXTM3UFirstLine,
		},
		{
			Codes:       []string{"UTF8_NO_BOM"},
			Description: "No UTF-8 byte order mark",
			Check:       checkNoBOM,
		},
		{
			Codes:       []string{"MIXED_PLAYLIST_TYPES"},
			Description: "Master and media playlist tags cannot be mixed",
			Check:       checkNoMixedPlaylistTypes,
		},
		{
			Codes:       []string{"MEDIA_TARGETDURATION_REQUIRED"},
			Description: "Media playlists require EXT-X-TARGETDURATION",
			Check:       checkMediaTargetDuration,
		},
		{
			Codes:       []string{"EXTINF_BEFORE_SEGMENT"},
			Description: "Every segment URI must follow an EXTINF tag",
			Check:       checkEXTINFBeforeSegments,
		},
		{
			Codes:       []string{"STREAM_INF_BANDWIDTH_REQUIRED"},
			Description: "EXT-X-STREAM-INF requires BANDWIDTH",
			Check:       checkStreamInfBandwidth,
		},
		{
			Codes:       []string{"STREAM_INF_CODECS_RECOMMENDED"},
			Description: "EXT-X-STREAM-INF should declare CODECS",
			Check:       checkStreamInfCodecs,
		},
		{
			Codes:       []string{"VERSION_FEATURE_MISMATCH", "IV_REQUIRES_VERSION_2"},
			Description: "Declared version must cover every feature in use",
			Check:       checkVersionCompatibility,
		},
		{
			Codes:       []string{"INVALID_H264_CODEC", "INVALID_AAC_CODEC", "INVALID_HEVC_CODEC"},
			Description: "Codec strings must follow RFC 6381 grammar",
			Check:       checkCodecStrings,
		},
		{
			Codes:       []string{"EXTINF_DURATION_POSITIVE"},
			Description: "EXTINF durations must be positive",
			Check:       checkEXTINFDuration,
		},
		{
			Codes:       []string{"BANDWIDTH_POSITIVE"},
			Description: "BANDWIDTH values must be positive",
			Check:       checkBandwidthPositive,
		},
		{
			Codes:       []string{"KEY_METHOD_REQUIRED", "KEY_METHOD_INVALID", "KEY_URI_REQUIRED"},
			Description: "EXT-X-KEY must declare a valid METHOD and URI",
			Check:       checkKeyMethod,
		},
	}
}

// RuleCodes returns the fixed catalog of rule codes evaluated per manifest
func RuleCodes() []string {
	codes := make([]string, 0, 17)
	for _, rule := range DefaultRules() {
		codes = append(codes, rule.Codes...)
	}
	return codes
}

// First line must be exactly #EXTM3U (RFC 8216 § 4.3.1.1)
func checkEXTM3UFirstLine(doc *Document) []common.ValidationIssue {
	lines := strings.Split(strings.TrimSpace(doc.Content), "\n")
	firstLine := ""
	if len(lines) > 0 {
		firstLine = strings.TrimSpace(lines[0])
	}

	if firstLine != "#EXTM3U" {
		return []common.ValidationIssue{{
			Code:          "EXTM3U_FIRST_LINE",
			Severity:      common.SeverityError,
			Line:          1,
			Tag:           "EXTM3U",
			Message:       "First line must be #EXTM3U",
			SpecReference: "RFC 8216 § 4.3.1.1",
			SpecURL:       "https://datatracker.ietf.org/doc/html/rfc8216#section-4.3.1.1",
			Suggestion:    "Add #EXTM3U as the first line of the playlist",
		}}
	}
	return nil
}

// Playlists must be UTF-8 without a byte order mark (RFC 8216 § 4.1)
func checkNoBOM(doc *Document) []common.ValidationIssue {
	if strings.HasPrefix(doc.Content, "\uFEFF") {
		return []common.ValidationIssue{{
			Code:          "UTF8_NO_BOM",
			Severity:      common.SeverityError,
			Line:          1,
			Message:       "Playlist contains Byte Order Mark (BOM) which must be removed",
			SpecReference: "RFC 8216 § 4.1",
			Suggestion:    "Save file as UTF-8 without BOM",
		}}
	}
	return nil
}

// Master and media tags are mutually exclusive (RFC 8216 § 4.1)
func checkNoMixedPlaylistTypes(doc *Document) []common.ValidationIssue {
	hasMasterTag := strings.Contains(doc.Content, "#EXT-X-STREAM-INF")
	hasMediaTag := strings.Contains(doc.Content, "#EXTINF")

	if hasMasterTag && hasMediaTag {
		return []common.ValidationIssue{{
			Code:          "MIXED_PLAYLIST_TYPES",
			Severity:      common.SeverityError,
			Message:       "Playlist contains both Master Playlist tags (EXT-X-STREAM-INF) and Media Playlist tags (EXTINF)",
			SpecReference: "RFC 8216 § 4.1",
			Suggestion:    "A playlist must be either a Master Playlist or a Media Playlist, not both",
		}}
	}
	return nil
}

// Media playlists require EXT-X-TARGETDURATION (RFC 8216 § 4.3.3.1)
func checkMediaTargetDuration(doc *Document) []common.ValidationIssue {
	if doc.PlaylistType != common.PlaylistTypeMedia {
		return nil
	}

	if !strings.Contains(doc.Content, "#EXT-X-TARGETDURATION") {
		return []common.ValidationIssue{{
			Code:          "MEDIA_TARGETDURATION_REQUIRED",
			Severity:      common.SeverityError,
			Tag:           "EXT-X-TARGETDURATION",
			Message:       "Media Playlist must have #EXT-X-TARGETDURATION tag",
			SpecReference: "RFC 8216 § 4.3.3.1",
			Suggestion:    "Add #EXT-X-TARGETDURATION:<seconds> (e.g., #EXT-X-TARGETDURATION:10)",
		}}
	}
	return nil
}

// Every segment URI must be immediately preceded by EXTINF (RFC 8216 § 4.3.2.1)
func checkEXTINFBeforeSegments(doc *Document) []common.ValidationIssue {
	if doc.PlaylistType != common.PlaylistTypeMedia {
		return nil
	}

	var issues []common.ValidationIssue
	lastEXTINFLine := -2

	for index, line := range doc.Lines {
		trimmed := strings.TrimSpace(line)

		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			if strings.HasPrefix(trimmed, "#EXTINF") {
				lastEXTINFLine = index
			}
			continue
		}

		if lastEXTINFLine != index-1 {
			issues = append(issues, common.ValidationIssue{
				Code:          "EXTINF_BEFORE_SEGMENT",
				Severity:      common.SeverityError,
				Line:          index + 1,
				Tag:           "EXTINF",
				Message:       "Media segment must be preceded by #EXTINF tag",
				SpecReference: "RFC 8216 § 4.3.2.1",
				Suggestion:    "Add #EXTINF:<duration>,<title> on the line before this segment URL",
			})
		}
	}

	return issues
}

// EXT-X-STREAM-INF requires BANDWIDTH (RFC 8216 § 4.3.4.2)
func checkStreamInfBandwidth(doc *Document) []common.ValidationIssue {
	var issues []common.ValidationIssue

	for index, line := range doc.Lines {
		if !strings.HasPrefix(line, "#EXT-X-STREAM-INF") {
			continue
		}
		if !strings.Contains(line, "BANDWIDTH=") {
			issues = append(issues, common.ValidationIssue{
				Code:          "STREAM_INF_BANDWIDTH_REQUIRED",
				Severity:      common.SeverityError,
				Line:          index + 1,
				Tag:           "EXT-X-STREAM-INF",
				Attribute:     "BANDWIDTH",
				Message:       "#EXT-X-STREAM-INF must include BANDWIDTH attribute",
				SpecReference: "RFC 8216 § 4.3.4.2",
				SpecURL:       "https://datatracker.ietf.org/doc/html/rfc8216#section-4.3.4.2",
				Suggestion:    "Add BANDWIDTH=<bitrate> (e.g., BANDWIDTH=2000000)",
			})
		}
	}

	return issues
}

// CODECS is recommended, not required (RFC 8216 § 4.3.4.2)
func checkStreamInfCodecs(doc *Document) []common.ValidationIssue {
	var issues []common.ValidationIssue

	for index, line := range doc.Lines {
		if !strings.HasPrefix(line, "#EXT-X-STREAM-INF") {
			continue
		}
		if !strings.Contains(line, "CODECS=") {
			issues = append(issues, common.ValidationIssue{
				Code:          "STREAM_INF_CODECS_RECOMMENDED",
				Severity:      common.SeverityWarning,
				Line:          index + 1,
				Tag:           "EXT-X-STREAM-INF",
				Attribute:     "CODECS",
				Message:       "#EXT-X-STREAM-INF should include CODECS attribute for better compatibility",
				SpecReference: "RFC 8216 § 4.3.4.2",
				Suggestion:    "Add CODECS=\"avc1.4d401e,mp4a.40.2\" or appropriate codec strings",
			})
		}
	}

	return issues
}

// versionedFeature ties a feature tag to the minimum version that allows it
type versionedFeature struct {
	pattern    *regexp.Regexp
	tag        string
	minVersion int
}

var versionedFeatures = []versionedFeature{
	{regexp.MustCompile(`#EXTINF:\d+\.\d+`), "EXTINF (floating-point)", 3},
	{regexp.MustCompile(`#EXT-X-BYTERANGE`), "EXT-X-BYTERANGE", 4},
	{regexp.MustCompile(`#EXT-X-I-FRAMES-ONLY`), "EXT-X-I-FRAMES-ONLY", 4},
	{regexp.MustCompile(`#EXT-X-MAP`), "EXT-X-MAP", 5},
	{regexp.MustCompile(`#EXT-X-INDEPENDENT-SEGMENTS`), "EXT-X-INDEPENDENT-SEGMENTS", 6},
	{regexp.MustCompile(`#EXT-X-START`), "EXT-X-START", 6},
}

// Declared version must be at least the minimum implied by features in use
// (RFC 8216 § 7)
func checkVersionCompatibility(doc *Document) []common.ValidationIssue {
	var issues []common.ValidationIssue

	for _, feature := range versionedFeatures {
		if doc.Version >= feature.minVersion {
			continue
		}
		loc := feature.pattern.FindStringIndex(doc.Content)
		if loc == nil {
			continue
		}

		issues = append(issues, common.ValidationIssue{
			Code:          "VERSION_FEATURE_MISMATCH",
			Severity:      common.SeverityError,
			Line:          common.LineNumber(doc.Content, loc[0]),
			Tag:           feature.tag,
			Message:       fmt.Sprintf("%s requires HLS version %d+, but version %d is declared", feature.tag, feature.minVersion, doc.Version),
			SpecReference: "RFC 8216 § 7",
			Suggestion:    fmt.Sprintf("Change #EXT-X-VERSION to %d or higher", feature.minVersion),
		})
	}

	// IV attribute on EXT-X-KEY needs version 2+
	if doc.Version < 2 {
		if idx := strings.Index(doc.Content, "IV="); idx >= 0 {
			issues = append(issues, common.ValidationIssue{
				Code:          "IV_REQUIRES_VERSION_2",
				Severity:      common.SeverityError,
				Line:          common.LineNumber(doc.Content, idx),
				Attribute:     "IV",
				Message:       "IV attribute in EXT-X-KEY requires HLS version 2+",
				SpecReference: "RFC 8216 § 4.3.2.4",
				Suggestion:    "Add #EXT-X-VERSION:2 or higher",
			})
		}
	}

	return issues
}

var (
	codecsAttrPattern = regexp.MustCompile(`CODECS="([^"]+)"`)
	h264Pattern       = regexp.MustCompile(`^[0-9A-Fa-f]{6}$`)
	aacObjectPattern  = regexp.MustCompile(`^\d{1,2}$`)
)

// Codec strings must follow RFC 6381 grammar (referenced by RFC 8216)
func checkCodecStrings(doc *Document) []common.ValidationIssue {
	var issues []common.ValidationIssue

	for _, match := range codecsAttrPattern.FindAllStringSubmatchIndex(doc.Content, -1) {
		line := common.LineNumber(doc.Content, match[0])
		codecs := doc.Content[match[2]:match[3]]

		for _, codec := range strings.Split(codecs, ",") {
			if issue := checkSingleCodec(strings.TrimSpace(codec), line); issue != nil {
				issues = append(issues, *issue)
			}
		}
	}

	return issues
}

func checkSingleCodec(codec string, line int) *common.ValidationIssue {
	if suffix, found := strings.CutPrefix(codec, "avc1."); found {
		if !h264Pattern.MatchString(suffix) {
			return &common.ValidationIssue{
				Code:          "INVALID_H264_CODEC",
				Severity:      common.SeverityError,
				Line:          line,
				Attribute:     "CODECS",
				Message:       fmt.Sprintf("Invalid H.264 codec string: %q. Expected format: avc1.[6 hex digits]", codec),
				SpecReference: "RFC 6381 § 3.3",
				Suggestion:    "Use format like avc1.4d401e (Main Profile Level 3.0)",
			}
		}
	}

	if objectType, found := strings.CutPrefix(codec, "mp4a.40."); found {
		if !aacObjectPattern.MatchString(objectType) {
			return &common.ValidationIssue{
				Code:          "INVALID_AAC_CODEC",
				Severity:      common.SeverityError,
				Line:          line,
				Attribute:     "CODECS",
				Message:       fmt.Sprintf("Invalid AAC codec string: %q. Expected format: mp4a.40.[1-2 digits]", codec),
				SpecReference: "RFC 6381 § 3.3",
				Suggestion:    "Use format like mp4a.40.2 (AAC-LC)",
			}
		}
	}

	// HEVC grammar is involved; only a length-based sanity check is applied
	if strings.HasPrefix(codec, "hvc1.") || strings.HasPrefix(codec, "hev1.") {
		if len(codec) < 10 {
			return &common.ValidationIssue{
				Code:          "INVALID_HEVC_CODEC",
				Severity:      common.SeverityWarning,
				Line:          line,
				Attribute:     "CODECS",
				Message:       fmt.Sprintf("H.265 codec string may be invalid: %q", codec),
				SpecReference: "RFC 6381 § 3.4",
			}
		}
	}

	return nil
}

var extinfDurationPattern = regexp.MustCompile(`#EXTINF:([\d.]+)`)

// EXTINF durations must be greater than zero (RFC 8216 § 4.3.2.1)
func checkEXTINFDuration(doc *Document) []common.ValidationIssue {
	if doc.PlaylistType != common.PlaylistTypeMedia {
		return nil
	}

	var issues []common.ValidationIssue

	for _, match := range extinfDurationPattern.FindAllStringSubmatchIndex(doc.Content, -1) {
		duration, err := strconv.ParseFloat(doc.Content[match[2]:match[3]], 64)
		if err != nil {
			continue
		}
		if duration <= 0 {
			issues = append(issues, common.ValidationIssue{
				Code:          "EXTINF_DURATION_POSITIVE",
				Severity:      common.SeverityError,
				Line:          common.LineNumber(doc.Content, match[0]),
				Tag:           "EXTINF",
				Message:       fmt.Sprintf("EXTINF duration must be greater than 0, found: %g", duration),
				SpecReference: "RFC 8216 § 4.3.2.1",
				Suggestion:    "Use a positive duration value",
			})
		}
	}

	return issues
}

var bandwidthPattern = regexp.MustCompile(`BANDWIDTH=(\d+)`)

// BANDWIDTH must be greater than zero (RFC 8216 § 4.3.4.2)
func checkBandwidthPositive(doc *Document) []common.ValidationIssue {
	var issues []common.ValidationIssue

	for _, match := range bandwidthPattern.FindAllStringSubmatchIndex(doc.Content, -1) {
		bandwidth, err := strconv.Atoi(doc.Content[match[2]:match[3]])
		if err != nil {
			continue
		}
		if bandwidth <= 0 {
			issues = append(issues, common.ValidationIssue{
				Code:          "BANDWIDTH_POSITIVE",
				Severity:      common.SeverityError,
				Line:          common.LineNumber(doc.Content, match[0]),
				Attribute:     "BANDWIDTH",
				Message:       fmt.Sprintf("BANDWIDTH must be greater than 0, found: %d", bandwidth),
				SpecReference: "RFC 8216 § 4.3.4.2",
				Suggestion:    "Use a positive bandwidth value in bits per second",
			})
		}
	}

	return issues
}

var (
	keyTagPattern    = regexp.MustCompile(`#EXT-X-KEY:(.+)`)
	keyMethodPattern = regexp.MustCompile(`METHOD=([A-Z0-9-]+)`)
	validKeyMethods  = []string{"NONE", "AES-128", "SAMPLE-AES"}
)

// EXT-X-KEY must declare a valid METHOD, and non-NONE methods need a URI
// (RFC 8216 § 4.3.2.4)
func checkKeyMethod(doc *Document) []common.ValidationIssue {
	var issues []common.ValidationIssue

	for _, match := range keyTagPattern.FindAllStringSubmatchIndex(doc.Content, -1) {
		line := common.LineNumber(doc.Content, match[0])
		keyTag := doc.Content[match[2]:match[3]]

		methodMatch := keyMethodPattern.FindStringSubmatch(keyTag)
		if methodMatch == nil {
			issues = append(issues, common.ValidationIssue{
				Code:          "KEY_METHOD_REQUIRED",
				Severity:      common.SeverityError,
				Line:          line,
				Tag:           "EXT-X-KEY",
				Attribute:     "METHOD",
				Message:       "EXT-X-KEY must have METHOD attribute",
				SpecReference: "RFC 8216 § 4.3.2.4",
				Suggestion:    "Add METHOD=AES-128 or METHOD=NONE",
			})
			continue
		}

		method := methodMatch[1]
		valid := false
		for _, m := range validKeyMethods {
			if method == m {
				valid = true
				break
			}
		}

		if !valid {
			issues = append(issues, common.ValidationIssue{
				Code:          "KEY_METHOD_INVALID",
				Severity:      common.SeverityError,
				Line:          line,
				Tag:           "EXT-X-KEY",
				Attribute:     "METHOD",
				Message:       fmt.Sprintf("Invalid METHOD=%q. Must be NONE, AES-128, or SAMPLE-AES", method),
				SpecReference: "RFC 8216 § 4.3.2.4",
				Suggestion:    "Use METHOD=AES-128 for encryption or METHOD=NONE for no encryption",
			})
		}

		if method != "NONE" && !strings.Contains(keyTag, "URI=") {
			issues = append(issues, common.ValidationIssue{
				Code:          "KEY_URI_REQUIRED",
				Severity:      common.SeverityError,
				Line:          line,
				Tag:           "EXT-X-KEY",
				Attribute:     "URI",
				Message:       "EXT-X-KEY with METHOD other than NONE must have URI attribute",
				SpecReference: "RFC 8216 § 4.3.2.4",
				Suggestion:    "Add URI=\"https://example.com/key\"",
			})
		}
	}

	return issues
}

// featurePattern describes one entry of the capability checklist
type featurePattern struct {
	name       string
	pattern    *regexp.Regexp
	minVersion int
	tag        string
}

var hlsFeaturePatterns = []featurePattern{
	{"Independent Segments", regexp.MustCompile(`#EXT-X-INDEPENDENT-SEGMENTS`), 6, "EXT-X-INDEPENDENT-SEGMENTS"},
	{"Byte Range Support", regexp.MustCompile(`#EXT-X-BYTERANGE`), 4, "EXT-X-BYTERANGE"},
	{"I-Frame Playlists", regexp.MustCompile(`#EXT-X-I-FRAMES-ONLY`), 4, "EXT-X-I-FRAMES-ONLY"},
	{"Initialization Segments (fMP4)", regexp.MustCompile(`#EXT-X-MAP`), 5, "EXT-X-MAP"},
	{"AES-128 Encryption", regexp.MustCompile(`#EXT-X-KEY:.*METHOD=AES-128`), 1, "EXT-X-KEY"},
	{"SAMPLE-AES Encryption", regexp.MustCompile(`#EXT-X-KEY:.*METHOD=SAMPLE-AES`), 5, "EXT-X-KEY"},
	{"Program Date-Time", regexp.MustCompile(`#EXT-X-PROGRAM-DATE-TIME`), 1, "EXT-X-PROGRAM-DATE-TIME"},
	{"Discontinuity", regexp.MustCompile(`#EXT-X-DISCONTINUITY`), 1, "EXT-X-DISCONTINUITY"},
}

// DetectFeatures builds the capability checklist. The checklist is
// informational and never affects compliance.
func DetectFeatures(content string) []common.DetectedFeature {
	features := make([]common.DetectedFeature, 0, len(hlsFeaturePatterns))

	for _, fp := range hlsFeaturePatterns {
		features = append(features, common.DetectedFeature{
			Name:     fp.name,
			Version:  fp.minVersion,
			Detected: fp.pattern.MatchString(content),
			Tag:      fp.tag,
		})
	}

	return features
}
