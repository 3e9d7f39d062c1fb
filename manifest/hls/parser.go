package hls

import (
	"strconv"

	"github.com/abrtools/manifestkit/manifest/common"
)

// Parser maps tokenized M3U8 playlists to the normalized manifest model
type Parser struct {
	tokenizer *Tokenizer
	config    *ParserConfig
}

// NewParser creates a new HLS parser with default configuration
func NewParser() *Parser {
	return NewParserWithConfig(nil)
}

// NewParserWithConfig creates a new HLS parser with custom configuration
func NewParserWithConfig(config *ParserConfig) *Parser {
	if config == nil {
		config = DefaultConfig().Parser
	}

	parser := &Parser{
		tokenizer: NewTokenizer(),
		config:    config,
	}

	for tagName := range config.CustomTagHandlers {
		name := tagName
		parser.tokenizer.RegisterTagHandler(TagHandler{
			Name:        name,
			Description: "Custom tag handler",
			Handler: func(value string, playlist *M3U8Playlist, context *TokenizeContext) error {
				playlist.Headers["custom_"+name] = value
				return nil
			},
		})
	}

	return parser
}

// Parse transforms raw M3U8 content into a normalized manifest. All variant
// and segment URIs are resolved against baseURL, so relative references
// never leak past this boundary. Syntax problems are tolerated here; spec
// compliance is the validator's job.
func (p *Parser) Parse(content, baseURL string) (*common.ParsedManifest, error) {
	playlist := p.tokenizer.Tokenize(content)

	manifest := &common.ParsedManifest{
		Format:   common.FormatHLS,
		Raw:      content,
		URL:      baseURL,
		Variants: p.extractVariants(playlist, baseURL),
		Metadata: p.extractMetadata(playlist),
	}

	// Segments exist only for media playlists, never for masters
	if !playlist.IsMaster {
		manifest.Segments = p.extractSegments(playlist, baseURL)
	}

	return manifest, nil
}

// extractVariants maps EXT-X-STREAM-INF entries to normalized variants
func (p *Parser) extractVariants(playlist *M3U8Playlist, baseURL string) []common.Variant {
	variants := make([]common.Variant, 0, len(playlist.Variants))

	for i, v := range playlist.Variants {
		bitrate := v.Bandwidth
		if bitrate == 0 {
			bitrate = v.AverageBandwidth
		}

		resolution := common.ParseResolution(v.Resolution)
		codecs := common.SplitCodecs(v.Codecs)

		variants = append(variants, common.Variant{
			ID:         common.VariantID(i),
			Bitrate:    bitrate,
			Resolution: resolution,
			Codecs:     codecs,
			FrameRate:  v.FrameRate,
			URL:        common.ResolveURL(v.URI, baseURL),
			Type:       common.ClassifyCodecs(codecs, resolution != nil),
		})
	}

	return variants
}

// extractSegments maps media segments, assigning absolute sequence numbers
func (p *Parser) extractSegments(playlist *M3U8Playlist, baseURL string) []common.Segment {
	segments := make([]common.Segment, 0, len(playlist.Segments))

	for i, s := range playlist.Segments {
		segment := common.Segment{
			ID:       common.SegmentID(i),
			Duration: s.Duration,
			URL:      common.ResolveURL(s.URI, baseURL),
			Sequence: playlist.MediaSequence + i,
		}

		if s.ByteRange != nil {
			segment.ByteRange = &common.ByteRange{
				Start: s.ByteRange.Offset,
				End:   s.ByteRange.Offset + s.ByteRange.Length,
			}
		}

		segments = append(segments, segment)
	}

	return segments
}

// extractMetadata derives playlist-level metadata
func (p *Parser) extractMetadata(playlist *M3U8Playlist) common.ManifestMetadata {
	metadata := common.ManifestMetadata{
		TargetDuration: playlist.TargetDuration,
		Type:           classifyPlaylist(playlist),
		Encrypted:      hasEncryptedSegments(playlist),
	}

	if playlist.Version > 0 {
		metadata.Version = strconv.Itoa(playlist.Version)
	}

	if !playlist.IsMaster {
		metadata.Duration = totalDuration(playlist.Segments)
	}

	return metadata
}

// classifyPlaylist applies the VOD / EVENT / LIVE precedence: an end-of-list
// marker wins, then a declared EVENT playlist type, else live
func classifyPlaylist(playlist *M3U8Playlist) common.ManifestType {
	switch {
	case playlist.HasEndList:
		return common.ManifestTypeVOD
	case playlist.PlaylistType == "EVENT":
		return common.ManifestTypeEvent
	default:
		return common.ManifestTypeLive
	}
}

func hasEncryptedSegments(playlist *M3U8Playlist) bool {
	for _, segment := range playlist.Segments {
		if segment.Key != nil {
			return true
		}
	}
	return false
}

func totalDuration(segments []M3U8Segment) float64 {
	var total float64
	for _, segment := range segments {
		total += segment.Duration
	}
	return total
}
