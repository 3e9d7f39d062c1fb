package dash

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abrtools/manifestkit/manifest/common"
)

func TestParseStaticMPD(t *testing.T) {
	parser := NewParser()
	manifest, err := parser.Parse(TestStaticMPD, "https://cdn.example.com/vod/manifest.mpd")

	require.NoError(t, err)
	assert.Equal(t, common.FormatDASH, manifest.Format)
	require.Len(t, manifest.Variants, 4)
	assert.Empty(t, manifest.Segments)

	video := manifest.Variants[0]
	assert.Equal(t, "variant-0", video.ID)
	assert.Equal(t, 1200000, video.Bitrate)
	assert.Equal(t, []string{"avc1.4d401e"}, video.Codecs)
	assert.Equal(t, common.VariantTypeVideo, video.Type)
	assert.InDelta(t, 30.0, video.FrameRate, 0.001)
	require.NotNil(t, video.Resolution)
	assert.Equal(t, 854, video.Resolution.Width)
	assert.Equal(t, 480, video.Resolution.Height)

	// Fractional frame rates resolve to their decimal value
	assert.InDelta(t, 29.97, manifest.Variants[2].FrameRate, 0.001)

	audio := manifest.Variants[3]
	assert.Equal(t, "variant-3", audio.ID)
	assert.Equal(t, common.VariantTypeAudio, audio.Type)
	assert.Equal(t, 128000, audio.Bitrate)
	assert.Nil(t, audio.Resolution)
}

func TestParseStaticMPDMetadata(t *testing.T) {
	parser := NewParser()
	manifest, err := parser.Parse(TestStaticMPD, "https://cdn.example.com/vod/manifest.mpd")

	require.NoError(t, err)
	assert.Equal(t, common.ManifestTypeVOD, manifest.Metadata.Type)
	assert.InDelta(t, 634.566, manifest.Metadata.Duration, 0.001)
	assert.InDelta(t, 2.0, manifest.Metadata.MinBufferTime, 0.001)
	assert.False(t, manifest.Metadata.Encrypted)
	assert.Equal(t, []string{"urn:mpeg:dash:profile:isoff-on-demand:2011"}, manifest.Metadata.Profiles)
}

func TestParseDynamicMPD(t *testing.T) {
	parser := NewParser()
	manifest, err := parser.Parse(TestDynamicMPD, "https://cdn.example.com/live/manifest.mpd")

	require.NoError(t, err)
	assert.Equal(t, common.ManifestTypeLive, manifest.Metadata.Type)
	assert.InDelta(t, 4.0, manifest.Metadata.MinBufferTime, 0.001)
	assert.Zero(t, manifest.Metadata.Duration)
	require.Len(t, manifest.Variants, 1)
	assert.Equal(t, common.VariantTypeVideo, manifest.Variants[0].Type)
}

func TestParseEncryptedMPD(t *testing.T) {
	parser := NewParser()
	manifest, err := parser.Parse(TestEncryptedMPD, "https://cdn.example.com/vod/manifest.mpd")

	require.NoError(t, err)
	assert.True(t, manifest.Metadata.Encrypted)
}

func TestParseMalformedMPD(t *testing.T) {
	parser := NewParser()
	manifest, err := parser.Parse(TestMalformedMPD, "https://cdn.example.com/vod/manifest.mpd")

	require.Error(t, err)
	assert.Nil(t, manifest)

	var manifestErr *common.ManifestError
	require.True(t, errors.As(err, &manifestErr))
	assert.Equal(t, common.ErrCodeInvalidFormat, manifestErr.Code)
	assert.Equal(t, common.FormatDASH, manifestErr.Format)
}

func TestParseBaseURLChain(t *testing.T) {
	content := `<?xml version="1.0" encoding="UTF-8"?>
<MPD xmlns="urn:mpeg:dash:schema:mpd:2011" type="static" minBufferTime="PT2S">
  <BaseURL>https://media.example.com/content/</BaseURL>
  <Period id="0">
    <AdaptationSet mimeType="video/mp4">
      <Representation id="v720" bandwidth="2400000" width="1280" height="720">
        <BaseURL>video/720p.mp4</BaseURL>
      </Representation>
    </AdaptationSet>
  </Period>
</MPD>`

	parser := NewParser()
	manifest, err := parser.Parse(content, "https://origin.example.com/vod/manifest.mpd")

	require.NoError(t, err)
	require.Len(t, manifest.Variants, 1)
	assert.Equal(t, "https://media.example.com/content/video/720p.mp4", manifest.Variants[0].URL)
}

func TestParseTypeInferenceFromCodecs(t *testing.T) {
	content := `<?xml version="1.0" encoding="UTF-8"?>
<MPD xmlns="urn:mpeg:dash:schema:mpd:2011" type="static" minBufferTime="PT2S">
  <Period id="0">
    <AdaptationSet id="0">
      <Representation id="a" bandwidth="96000" codecs="ec-3"/>
      <Representation id="s" bandwidth="2000" codecs="stpp"/>
    </AdaptationSet>
  </Period>
</MPD>`

	parser := NewParser()
	manifest, err := parser.Parse(content, "https://cdn.example.com/vod/manifest.mpd")

	require.NoError(t, err)
	require.Len(t, manifest.Variants, 2)
	assert.Equal(t, common.VariantTypeAudio, manifest.Variants[0].Type)
	assert.Equal(t, common.VariantTypeSubtitle, manifest.Variants[1].Type)
}

func TestParseISODuration(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
	}{
		{"seconds only", "PT634.566S", 634.566},
		{"hours minutes seconds", "PT1H2M3.5S", 3723.5},
		{"days and time", "P1DT1S", 86401},
		{"empty", "", 0},
		{"garbage", "tomorrow", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, ParseISODuration(tt.input), 0.001)
		})
	}
}

func TestParseMinBufferTimeNarrowFormat(t *testing.T) {
	// Only the PT<seconds>S shape is recognized
	assert.InDelta(t, 2.0, parseMinBufferTime(`minBufferTime="PT2.0S"`), 0.001)
	assert.Zero(t, parseMinBufferTime(`minBufferTime="PT1M30S"`))
	assert.Zero(t, parseMinBufferTime(``))
}

func TestParseFrameRate(t *testing.T) {
	assert.InDelta(t, 30.0, parseFrameRate("30"), 0.001)
	assert.InDelta(t, 29.97, parseFrameRate("30000/1001"), 0.001)
	assert.Zero(t, parseFrameRate(""))
	assert.Zero(t, parseFrameRate("fast"))
}
