package hls

// M3U8Playlist represents a tokenized M3U8 playlist
type M3U8Playlist struct {
	IsValid        bool              `json:"is_valid"`
	IsMaster       bool              `json:"is_master"`
	HasEndList     bool              `json:"has_endlist"`
	Version        int               `json:"version"`
	TargetDuration int               `json:"target_duration"`
	MediaSequence  int               `json:"media_sequence"`
	PlaylistType   string            `json:"playlist_type,omitempty"`
	Segments       []M3U8Segment     `json:"segments"`
	Variants       []M3U8Variant     `json:"variants"`
	Headers        map[string]string `json:"headers"`
}

// M3U8Segment represents an individual HLS media segment
type M3U8Segment struct {
	URI       string         `json:"uri"`
	Duration  float64        `json:"duration"`
	Title     string         `json:"title,omitempty"`
	ByteRange *M3U8ByteRange `json:"byte_range,omitempty"`
	Key       *M3U8Key       `json:"key,omitempty"`
}

// M3U8ByteRange is the EXT-X-BYTERANGE value: a length and an optional
// offset; a missing offset continues from the previous range
type M3U8ByteRange struct {
	Length int `json:"length"`
	Offset int `json:"offset"`
}

// M3U8Key carries the EXT-X-KEY attributes in effect for a segment
type M3U8Key struct {
	Method string `json:"method"`
	URI    string `json:"uri,omitempty"`
	IV     string `json:"iv,omitempty"`
}

// M3U8Variant represents a stream variant from EXT-X-STREAM-INF
type M3U8Variant struct {
	URI              string  `json:"uri"`
	Bandwidth        int     `json:"bandwidth"`
	AverageBandwidth int     `json:"average_bandwidth,omitempty"`
	Codecs           string  `json:"codecs,omitempty"`
	Resolution       string  `json:"resolution,omitempty"`
	FrameRate        float64 `json:"frame_rate,omitempty"`
}
