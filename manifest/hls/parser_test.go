package hls

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abrtools/manifestkit/manifest/common"
)

func TestParseMasterPlaylist(t *testing.T) {
	parser := NewParser()
	manifest, err := parser.Parse(TestMasterPlaylist, "https://cdn.example.com/live/master.m3u8")

	require.NoError(t, err)
	assert.Equal(t, common.FormatHLS, manifest.Format)
	assert.Equal(t, "https://cdn.example.com/live/master.m3u8", manifest.URL)
	require.Len(t, manifest.Variants, 3)
	assert.Empty(t, manifest.Segments)

	first := manifest.Variants[0]
	assert.Equal(t, "variant-0", first.ID)
	assert.Equal(t, 1280000, first.Bitrate)
	assert.Equal(t, "https://cdn.example.com/live/480p.m3u8", first.URL)
	assert.Equal(t, []string{"avc1.42e00a", "mp4a.40.2"}, first.Codecs)
	assert.Equal(t, common.VariantTypeVideo, first.Type)
	require.NotNil(t, first.Resolution)
	assert.Equal(t, 852, first.Resolution.Width)
	assert.Equal(t, 480, first.Resolution.Height)

	assert.InDelta(t, 29.97, manifest.Variants[2].FrameRate, 0.001)
	assert.Equal(t, "3", manifest.Metadata.Version)
}

func TestParseMediaPlaylist(t *testing.T) {
	parser := NewParser()
	manifest, err := parser.Parse(TestMediaPlaylist, "https://cdn.example.com/live/480p.m3u8")

	require.NoError(t, err)
	require.Len(t, manifest.Segments, 3)
	assert.Empty(t, manifest.Variants)

	first := manifest.Segments[0]
	assert.Equal(t, "segment-0", first.ID)
	assert.Equal(t, 0, first.Sequence)
	assert.Equal(t, "https://cdn.example.com/live/segment0.ts", first.URL)
	assert.InDelta(t, 9.009, first.Duration, 0.001)

	assert.Equal(t, common.ManifestTypeVOD, manifest.Metadata.Type)
	assert.Equal(t, 10, manifest.Metadata.TargetDuration)
	assert.InDelta(t, 27.027, manifest.Metadata.Duration, 0.001)
	assert.False(t, manifest.Metadata.Encrypted)
}

func TestParsePlaylistClassification(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected common.ManifestType
	}{
		{"endlist wins", TestMediaPlaylist, common.ManifestTypeVOD},
		{"event type", TestEventPlaylist, common.ManifestTypeEvent},
		{"no markers means live", TestLivePlaylist, common.ManifestTypeLive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser := NewParser()
			manifest, err := parser.Parse(tt.content, "https://cdn.example.com/live/playlist.m3u8")

			require.NoError(t, err)
			assert.Equal(t, tt.expected, manifest.Metadata.Type)
		})
	}
}

func TestParseLiveSequenceNumbers(t *testing.T) {
	parser := NewParser()
	manifest, err := parser.Parse(TestLivePlaylist, "https://cdn.example.com/live/playlist.m3u8")

	require.NoError(t, err)
	require.Len(t, manifest.Segments, 3)

	// Sequence numbers continue from EXT-X-MEDIA-SEQUENCE
	assert.Equal(t, 123456, manifest.Segments[0].Sequence)
	assert.Equal(t, 123458, manifest.Segments[2].Sequence)
}

func TestParseEncryptedPlaylist(t *testing.T) {
	parser := NewParser()
	manifest, err := parser.Parse(TestEncryptedPlaylist, "https://cdn.example.com/live/enc.m3u8")

	require.NoError(t, err)
	assert.True(t, manifest.Metadata.Encrypted)
}

func TestParseByteRanges(t *testing.T) {
	parser := NewParser()
	manifest, err := parser.Parse(TestByteRangePlaylist, "https://cdn.example.com/vod/media.m3u8")

	require.NoError(t, err)
	require.Len(t, manifest.Segments, 2)

	first := manifest.Segments[0].ByteRange
	require.NotNil(t, first)
	assert.Equal(t, 0, first.Start)
	assert.Equal(t, 75232, first.End)

	second := manifest.Segments[1].ByteRange
	require.NotNil(t, second)
	assert.Equal(t, 75232, second.Start)
	assert.Equal(t, 157344, second.End)
}

func TestParseBandwidthFallback(t *testing.T) {
	content := `#EXTM3U
#EXT-X-STREAM-INF:AVERAGE-BANDWIDTH=900000,CODECS="mp4a.40.2"
audio.m3u8`

	parser := NewParser()
	manifest, err := parser.Parse(content, "https://cdn.example.com/master.m3u8")

	require.NoError(t, err)
	require.Len(t, manifest.Variants, 1)
	assert.Equal(t, 900000, manifest.Variants[0].Bitrate)
	assert.Equal(t, common.VariantTypeAudio, manifest.Variants[0].Type)
	assert.Nil(t, manifest.Variants[0].Resolution)
}

func TestParseRelativeURLResolution(t *testing.T) {
	content := `#EXTM3U
#EXT-X-STREAM-INF:BANDWIDTH=1000000
/streams/480p.m3u8
#EXT-X-STREAM-INF:BANDWIDTH=2000000
https://other.example.com/720p.m3u8
#EXT-X-STREAM-INF:BANDWIDTH=3000000
//cdn2.example.com/1080p.m3u8`

	parser := NewParser()
	manifest, err := parser.Parse(content, "https://cdn.example.com/live/master.m3u8")

	require.NoError(t, err)
	require.Len(t, manifest.Variants, 3)

	assert.Equal(t, "https://cdn.example.com/streams/480p.m3u8", manifest.Variants[0].URL)
	assert.Equal(t, "https://other.example.com/720p.m3u8", manifest.Variants[1].URL)
	// Protocol-relative references pass through without scheme qualification
	assert.Equal(t, "//cdn2.example.com/1080p.m3u8", manifest.Variants[2].URL)
}

func TestParseWithCustomTagHandlers(t *testing.T) {
	config := DefaultConfig().Parser
	config.CustomTagHandlers = map[string]string{"#EXT-X-CUE-OUT": "ad break start"}

	parser := NewParserWithConfig(config)
	manifest, err := parser.Parse("#EXTM3U\n#EXT-X-CUE-OUT:30.0", "https://cdn.example.com/live.m3u8")

	require.NoError(t, err)
	assert.Equal(t, common.FormatHLS, manifest.Format)
}
