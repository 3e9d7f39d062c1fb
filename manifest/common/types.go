package common

// Format identifies the manifest format ('hls' or 'dash')
type Format string

const (
	FormatHLS  Format = "hls"
	FormatDASH Format = "dash"
)

// ManifestType classifies playback mode
type ManifestType string

const (
	ManifestTypeVOD   ManifestType = "VOD"
	ManifestTypeLive  ManifestType = "LIVE"
	ManifestTypeEvent ManifestType = "EVENT"
)

// VariantType classifies the media carried by a variant
type VariantType string

const (
	VariantTypeVideo    VariantType = "video"
	VariantTypeAudio    VariantType = "audio"
	VariantTypeSubtitle VariantType = "subtitle"
)

// ParsedManifest is the normalized representation of an HLS or DASH manifest.
// It is created once per parse and treated as read-only by consumers.
type ParsedManifest struct {
	Format     Format            `json:"format"`
	Raw        string            `json:"raw"`
	URL        string            `json:"url"`
	Variants   []Variant         `json:"variants"`
	Metadata   ManifestMetadata  `json:"metadata"`
	Segments   []Segment         `json:"segments,omitempty"`
	Validation *ValidationResult `json:"validation,omitempty"`
}

// Variant represents one selectable rendition of the stream.
// IDs are positional ("variant-0", "variant-1", ...) and stable only
// within a single parse.
type Variant struct {
	ID         string      `json:"id"`
	Bitrate    int         `json:"bitrate"`
	Resolution *Resolution `json:"resolution,omitempty"`
	Codecs     []string    `json:"codecs"`
	FrameRate  float64     `json:"frame_rate,omitempty"`
	URL        string      `json:"url"`
	Type       VariantType `json:"type"`
}

// Resolution holds pixel dimensions
type Resolution struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Segment represents one fetchable media chunk of an HLS media playlist
type Segment struct {
	ID        string     `json:"id"`
	Duration  float64    `json:"duration"`
	URL       string     `json:"url"`
	ByteRange *ByteRange `json:"byte_range,omitempty"`
	Sequence  int        `json:"sequence"`
}

// ByteRange describes a sub-range of a shared media resource
type ByteRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// ManifestMetadata is a format union: HLS populates Version/TargetDuration,
// DASH populates MinBufferTime/Profiles; unset fields stay at zero values.
// MinBufferTime is only recognized in the PT<seconds>S shape; other ISO 8601
// duration forms leave it at zero.
type ManifestMetadata struct {
	Version        string       `json:"version,omitempty"`
	Duration       float64      `json:"duration,omitempty"`
	TargetDuration int          `json:"target_duration,omitempty"`
	MinBufferTime  float64      `json:"min_buffer_time,omitempty"`
	Type           ManifestType `json:"type"`
	Encrypted      bool         `json:"encrypted"`
	Profiles       []string     `json:"profiles,omitempty"`
}
