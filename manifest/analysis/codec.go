package analysis

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// CodecParsed is a codec string broken into family, profile and level
type CodecParsed struct {
	Codec   string `json:"codec"`
	Profile string `json:"profile,omitempty"`
	Level   string `json:"level,omitempty"`
}

// CodecInfo describes a codec for display
type CodecInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	IsVideo     bool   `json:"is_video"`
	IsAudio     bool   `json:"is_audio"`
	IsSubtitle  bool   `json:"is_subtitle"`
}

// CodecAnalysis summarizes the codecs used across a manifest
type CodecAnalysis struct {
	VideoCodecs     []string `json:"video_codecs"`
	AudioCodecs     []string `json:"audio_codecs"`
	SubtitleCodecs  []string `json:"subtitle_codecs"`
	HasModernCodecs bool     `json:"has_modern_codecs"`
	HasHDR          bool     `json:"has_hdr"`
}

// ParseCodec extracts the codec family, profile and level from an RFC 6381
// codec string such as avc1.4d401e or mp4a.40.2
func ParseCodec(codec string) CodecParsed {
	switch {
	case strings.HasPrefix(codec, "avc1"):
		return parseH264(codec)
	case strings.HasPrefix(codec, "hvc1"), strings.HasPrefix(codec, "hev1"):
		return CodecParsed{Codec: "H.265", Profile: "Main", Level: "3.1"}
	case strings.HasPrefix(codec, "vp09"), strings.HasPrefix(codec, "vp9"):
		return CodecParsed{Codec: "VP9"}
	case strings.HasPrefix(codec, "av01"):
		return CodecParsed{Codec: "AV1", Profile: "Main"}
	case strings.HasPrefix(codec, "mp4a"):
		return parseAAC(codec)
	case codec == "ac-3":
		return CodecParsed{Codec: "Dolby Digital"}
	case codec == "ec-3":
		return CodecParsed{Codec: "Dolby Digital Plus"}
	case codec == "opus":
		return CodecParsed{Codec: "Opus"}
	case codec == "wvtt":
		return CodecParsed{Codec: "WebVTT"}
	case codec == "stpp":
		return CodecParsed{Codec: "TTML"}
	}

	// Unknown family: title-case the bare family token for display
	family, _, _ := strings.Cut(codec, ".")
	return CodecParsed{Codec: titleCaser.String(strings.ToLower(family))}
}

func parseH264(codec string) CodecParsed {
	parts := strings.SplitN(codec, ".", 2)
	if len(parts) != 2 || len(parts[1]) != 6 {
		return CodecParsed{Codec: "H.264"}
	}

	profileIdc, err := strconv.ParseUint(parts[1][0:2], 16, 8)
	if err != nil {
		return CodecParsed{Codec: "H.264"}
	}
	levelIdc, err := strconv.ParseUint(parts[1][4:6], 16, 8)
	if err != nil {
		return CodecParsed{Codec: "H.264"}
	}

	return CodecParsed{
		Codec:   "H.264",
		Profile: h264Profile(int(profileIdc)),
		Level:   fmt.Sprintf("%.1f", float64(levelIdc)/10),
	}
}

func h264Profile(profileIdc int) string {
	switch profileIdc {
	case 66:
		return "Baseline"
	case 77:
		return "Main"
	case 88:
		return "Extended"
	case 100:
		return "High"
	case 110:
		return "High 10"
	case 122:
		return "High 4:2:2"
	case 244:
		return "High 4:4:4"
	default:
		return "Unknown"
	}
}

func parseAAC(codec string) CodecParsed {
	parts := strings.Split(codec, ".")
	if len(parts) < 3 {
		return CodecParsed{Codec: "AAC"}
	}

	switch parts[2] {
	case "2":
		return CodecParsed{Codec: "AAC-LC", Profile: "Low Complexity"}
	case "5":
		return CodecParsed{Codec: "AAC-HE", Profile: "High Efficiency"}
	case "29":
		return CodecParsed{Codec: "AAC-HEv2", Profile: "High Efficiency v2"}
	default:
		return CodecParsed{Codec: "AAC"}
	}
}

var codecDescriptions = map[string]string{
	"H.264":              "Advanced Video Coding (AVC) - Widely supported, efficient compression",
	"H.265":              "High Efficiency Video Coding (HEVC) - 50% better compression than H.264",
	"VP9":                "Google VP9 - Open, royalty-free, similar efficiency to H.265",
	"AV1":                "AOMedia Video 1 - Next-gen codec, 30% better than H.265",
	"AAC-LC":             "Advanced Audio Coding Low Complexity - Standard quality",
	"AAC-HE":             "High Efficiency AAC - Optimized for low bitrates",
	"AAC-HEv2":           "HE-AAC v2 with Parametric Stereo",
	"Dolby Digital":      "AC-3 audio codec - 5.1 surround sound",
	"Dolby Digital Plus": "Enhanced AC-3 - Better quality, more channels",
	"Opus":               "Modern, open audio codec - Excellent quality at all bitrates",
	"WebVTT":             "Web Video Text Tracks - HTML5 subtitle format",
	"TTML":               "Timed Text Markup Language - XML-based subtitles",
}

var (
	videoCodecNames    = []string{"H.264", "H.265", "VP9", "AV1"}
	audioCodecNames    = []string{"AAC-LC", "AAC-HE", "AAC-HEv2", "AAC", "Dolby Digital", "Dolby Digital Plus", "Opus"}
	subtitleCodecNames = []string{"WebVTT", "TTML"}
)

// GetCodecInfo classifies and describes a codec string
func GetCodecInfo(codec string) CodecInfo {
	parsed := ParseCodec(codec)

	description, known := codecDescriptions[parsed.Codec]
	if !known {
		description = "Unknown codec"
	}

	return CodecInfo{
		Name:        parsed.Codec,
		Description: description,
		IsVideo:     contains(videoCodecNames, parsed.Codec),
		IsAudio:     contains(audioCodecNames, parsed.Codec),
		IsSubtitle:  contains(subtitleCodecNames, parsed.Codec),
	}
}

// AnalyzeCodecs summarizes a codec list, flagging modern codecs and HDR hints
func AnalyzeCodecs(codecs []string) CodecAnalysis {
	analysis := CodecAnalysis{
		VideoCodecs:    make([]string, 0),
		AudioCodecs:    make([]string, 0),
		SubtitleCodecs: make([]string, 0),
	}

	for _, codec := range codecs {
		info := GetCodecInfo(codec)
		if info.IsVideo {
			analysis.VideoCodecs = append(analysis.VideoCodecs, codec)
		}
		if info.IsAudio {
			analysis.AudioCodecs = append(analysis.AudioCodecs, codec)
		}
		if info.IsSubtitle {
			analysis.SubtitleCodecs = append(analysis.SubtitleCodecs, codec)
		}

		if strings.HasPrefix(codec, "av01") || strings.HasPrefix(codec, "vp09") || codec == "opus" {
			analysis.HasModernCodecs = true
		}
		// 10-bit profiles and HEVC commonly signal HDR content
		if strings.Contains(codec, ".10.") || strings.Contains(codec, "hvc1") || strings.Contains(codec, "hev1") {
			analysis.HasHDR = true
		}
	}

	return analysis
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
