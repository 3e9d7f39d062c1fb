package hls

import (
	"bufio"
	"strconv"
	"strings"
)

// Tokenizer handles M3U8 playlist tokenization
type Tokenizer struct {
	tagHandlers map[string]TagHandler
}

// TagHandler defines how to handle specific M3U8 tags
type TagHandler struct {
	Name        string
	Handler     func(value string, playlist *M3U8Playlist, context *TokenizeContext) error
	Description string
}

// TokenizeContext holds the current tokenization state
type TokenizeContext struct {
	CurrentSegment *M3U8Segment
	CurrentVariant *M3U8Variant
	CurrentKey     *M3U8Key
	LastRangeEnd   int
	LineNumber     int
}

// NewTokenizer creates a new M3U8 tokenizer with default tag handlers
func NewTokenizer() *Tokenizer {
	tokenizer := &Tokenizer{
		tagHandlers: make(map[string]TagHandler),
	}

	tokenizer.registerDefaultTagHandlers()

	return tokenizer
}

// Tokenize splits M3U8 playlist content into a structured playlist.
// Tokenization is best-effort: structural problems such as a missing
// #EXTM3U header clear IsValid but never abort, so that non-compliant
// playlists can still be analyzed and validated.
func (t *Tokenizer) Tokenize(content string) *M3U8Playlist {
	playlist := &M3U8Playlist{
		Segments: make([]M3U8Segment, 0),
		Variants: make([]M3U8Variant, 0),
		Headers:  make(map[string]string),
	}

	scanner := bufio.NewScanner(strings.NewReader(content))
	context := &TokenizeContext{}

	first := true
	for scanner.Scan() {
		context.LineNumber++
		line := strings.TrimSpace(scanner.Text())

		if first {
			first = false
			playlist.IsValid = strings.TrimPrefix(line, "\uFEFF") == "#EXTM3U"
			if playlist.IsValid {
				continue
			}
		}

		// Skip empty lines and comments (except M3U8 tags)
		if line == "" || (strings.HasPrefix(line, "#") && !strings.HasPrefix(line, "#EXT")) {
			continue
		}

		if strings.HasPrefix(line, "#EXT") {
			t.handleTag(line, playlist, context)
		} else {
			t.handleURI(line, playlist, context)
		}
	}

	return playlist
}

// handleTag dispatches individual M3U8 tags to registered handlers
func (t *Tokenizer) handleTag(line string, playlist *M3U8Playlist, context *TokenizeContext) {
	parts := strings.SplitN(line, ":", 2)
	tag := parts[0]
	value := ""
	if len(parts) > 1 {
		value = parts[1]
	}

	if handler, exists := t.tagHandlers[tag]; exists {
		// Handlers only fail on unusable values, which tokenization tolerates
		_ = handler.Handler(value, playlist, context)
		return
	}

	t.handleUnknownTag(tag, value, playlist)
}

// handleURI completes the pending segment or variant with its URI line
func (t *Tokenizer) handleURI(uri string, playlist *M3U8Playlist, context *TokenizeContext) {
	switch {
	case context.CurrentSegment != nil:
		context.CurrentSegment.URI = uri
		context.CurrentSegment.Key = context.CurrentKey
		playlist.Segments = append(playlist.Segments, *context.CurrentSegment)
		context.CurrentSegment = nil
	case context.CurrentVariant != nil:
		context.CurrentVariant.URI = uri
		playlist.Variants = append(playlist.Variants, *context.CurrentVariant)
		context.CurrentVariant = nil
		playlist.IsMaster = true
	default:
		// URI without a preceding EXTINF; keep it so the validator can flag it
		playlist.Segments = append(playlist.Segments, M3U8Segment{URI: uri, Key: context.CurrentKey})
	}
}

// handleUnknownTag stores unrecognized tags in headers for extensibility
func (t *Tokenizer) handleUnknownTag(tag, value string, playlist *M3U8Playlist) {
	if cleanTag, found := strings.CutPrefix(tag, "#EXT-X-"); found {
		playlist.Headers["custom_"+strings.ToLower(cleanTag)] = value
	} else if cleanTag, found := strings.CutPrefix(tag, "#EXT"); found {
		playlist.Headers["ext_"+strings.ToLower(cleanTag)] = value
	}
}

// registerDefaultTagHandlers registers all standard M3U8 tag handlers
func (t *Tokenizer) registerDefaultTagHandlers() {
	handlers := []TagHandler{
		{
			Name:        "#EXT-X-VERSION",
			Description: "Playlist version",
			Handler: func(value string, playlist *M3U8Playlist, context *TokenizeContext) error {
				if v, err := strconv.Atoi(value); err == nil {
					playlist.Version = v
				}
				return nil
			},
		},
		{
			Name:        "#EXT-X-TARGETDURATION",
			Description: "Target segment duration",
			Handler: func(value string, playlist *M3U8Playlist, context *TokenizeContext) error {
				if v, err := strconv.Atoi(value); err == nil {
					playlist.TargetDuration = v
				}
				return nil
			},
		},
		{
			Name:        "#EXT-X-MEDIA-SEQUENCE",
			Description: "Media sequence number",
			Handler: func(value string, playlist *M3U8Playlist, context *TokenizeContext) error {
				if v, err := strconv.Atoi(value); err == nil {
					playlist.MediaSequence = v
				}
				return nil
			},
		},
		{
			Name:        "#EXT-X-PLAYLIST-TYPE",
			Description: "Playlist type (VOD or EVENT)",
			Handler: func(value string, playlist *M3U8Playlist, context *TokenizeContext) error {
				playlist.PlaylistType = strings.ToUpper(strings.TrimSpace(value))
				return nil
			},
		},
		{
			Name:        "#EXT-X-ENDLIST",
			Description: "End of playlist marker",
			Handler: func(value string, playlist *M3U8Playlist, context *TokenizeContext) error {
				playlist.HasEndList = true
				return nil
			},
		},
		{
			Name:        "#EXTINF",
			Description: "Segment information",
			Handler: func(value string, playlist *M3U8Playlist, context *TokenizeContext) error {
				context.CurrentSegment = &M3U8Segment{}

				parts := strings.SplitN(value, ",", 2)
				if len(parts) > 0 {
					if duration, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64); err == nil {
						context.CurrentSegment.Duration = duration
					}
				}
				if len(parts) > 1 {
					context.CurrentSegment.Title = parts[1]
				}

				return nil
			},
		},
		{
			Name:        "#EXT-X-BYTERANGE",
			Description: "Byte range for segment",
			Handler: func(value string, playlist *M3U8Playlist, context *TokenizeContext) error {
				if context.CurrentSegment == nil {
					return nil
				}

				byteRange := parseByteRange(value, context.LastRangeEnd)
				if byteRange != nil {
					context.CurrentSegment.ByteRange = byteRange
					context.LastRangeEnd = byteRange.Offset + byteRange.Length
				}
				return nil
			},
		},
		{
			Name:        "#EXT-X-KEY",
			Description: "Segment encryption key",
			Handler: func(value string, playlist *M3U8Playlist, context *TokenizeContext) error {
				attrs := ParseAttributes(value)

				method := strings.Trim(attrs["METHOD"], "\"")
				if method == "" || method == "NONE" {
					context.CurrentKey = nil
					return nil
				}

				context.CurrentKey = &M3U8Key{
					Method: method,
					URI:    strings.Trim(attrs["URI"], "\""),
					IV:     attrs["IV"],
				}
				return nil
			},
		},
		{
			Name:        "#EXT-X-STREAM-INF",
			Description: "Stream variant information",
			Handler: func(value string, playlist *M3U8Playlist, context *TokenizeContext) error {
				context.CurrentVariant = &M3U8Variant{}

				attrs := ParseAttributes(value)

				if bandwidth, exists := attrs["BANDWIDTH"]; exists {
					if b, err := strconv.Atoi(bandwidth); err == nil {
						context.CurrentVariant.Bandwidth = b
					}
				}

				if average, exists := attrs["AVERAGE-BANDWIDTH"]; exists {
					if b, err := strconv.Atoi(average); err == nil {
						context.CurrentVariant.AverageBandwidth = b
					}
				}

				if codecs, exists := attrs["CODECS"]; exists {
					context.CurrentVariant.Codecs = strings.Trim(codecs, "\"")
				}

				if resolution, exists := attrs["RESOLUTION"]; exists {
					context.CurrentVariant.Resolution = resolution
				}

				if frameRate, exists := attrs["FRAME-RATE"]; exists {
					if f, err := strconv.ParseFloat(frameRate, 64); err == nil {
						context.CurrentVariant.FrameRate = f
					}
				}

				return nil
			},
		},
	}

	for _, handler := range handlers {
		t.RegisterTagHandler(handler)
	}
}

// parseByteRange parses "<length>[@<offset>]"; a missing offset continues
// from the end of the previous range
func parseByteRange(value string, lastRangeEnd int) *M3U8ByteRange {
	parts := strings.SplitN(strings.TrimSpace(value), "@", 2)

	length, err := strconv.Atoi(parts[0])
	if err != nil {
		return nil
	}

	offset := lastRangeEnd
	if len(parts) == 2 {
		if o, err := strconv.Atoi(parts[1]); err == nil {
			offset = o
		}
	}

	return &M3U8ByteRange{Length: length, Offset: offset}
}

// ExtractAttributeValue extracts a specific attribute value from a string
func ExtractAttributeValue(attrString, key string) string {
	attrs := ParseAttributes(attrString)
	if value, exists := attrs[key]; exists {
		return strings.Trim(value, "\"")
	}
	return ""
}

// ParseAttributes parses M3U8 attribute strings like
// 'BANDWIDTH=1280000,CODECS="avc1.42e00a,mp4a.40.2"'
func ParseAttributes(attrString string) map[string]string {
	attrs := make(map[string]string)

	// Split by comma, but be careful with quoted values
	var parts []string
	var current strings.Builder
	inQuotes := false

	for _, char := range attrString {
		switch char {
		case '"':
			inQuotes = !inQuotes
			current.WriteRune(char)
		case ',':
			if inQuotes {
				current.WriteRune(char)
			} else {
				parts = append(parts, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(char)
		}
	}

	if current.Len() > 0 {
		parts = append(parts, current.String())
	}

	for _, part := range parts {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) == 2 {
			attrs[kv[0]] = kv[1]
		}
	}

	return attrs
}

// RegisterTagHandler registers a new tag handler
func (t *Tokenizer) RegisterTagHandler(handler TagHandler) {
	t.tagHandlers[handler.Name] = handler
}

// GetRegisteredTags returns a list of all registered tag handlers
func (t *Tokenizer) GetRegisteredTags() []string {
	tags := make([]string, 0, len(t.tagHandlers))
	for tag := range t.tagHandlers {
		tags = append(tags, tag)
	}
	return tags
}
