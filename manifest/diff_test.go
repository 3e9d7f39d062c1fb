package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abrtools/manifestkit/manifest/common"
)

func testManifest(variants ...common.Variant) *common.ParsedManifest {
	return &common.ParsedManifest{
		Format:   common.FormatHLS,
		Variants: variants,
		Metadata: common.ManifestMetadata{Type: common.ManifestTypeVOD, Duration: 60},
	}
}

func testVariant(id string, bitrate int) common.Variant {
	return common.Variant{
		ID:      id,
		Bitrate: bitrate,
		URL:     "https://cdn.example.com/" + id + ".m3u8",
		Codecs:  []string{"avc1.4d401e", "mp4a.40.2"},
		Type:    common.VariantTypeVideo,
	}
}

func TestDiffManifestsNoChanges(t *testing.T) {
	before := testManifest(testVariant("variant-0", 1000000))
	after := testManifest(testVariant("variant-0", 1000000))

	diff := DiffManifests(before, after)

	assert.False(t, diff.HasChanges)
	assert.False(t, diff.MetadataChanged)
	assert.Empty(t, diff.VariantsAdded)
	assert.Empty(t, diff.VariantsRemoved)
	assert.Empty(t, diff.VariantsChanged)
}

func TestDiffManifestsAddedAndRemoved(t *testing.T) {
	before := testManifest(testVariant("variant-0", 1000000), testVariant("variant-1", 2000000))
	after := testManifest(testVariant("variant-0", 1000000), testVariant("variant-2", 4000000))

	diff := DiffManifests(before, after)

	assert.True(t, diff.HasChanges)
	require.Len(t, diff.VariantsAdded, 1)
	assert.Equal(t, "variant-2", diff.VariantsAdded[0].ID)
	require.Len(t, diff.VariantsRemoved, 1)
	assert.Equal(t, "variant-1", diff.VariantsRemoved[0].ID)
	assert.Empty(t, diff.VariantsChanged)
}

func TestDiffManifestsChangedVariants(t *testing.T) {
	t.Run("bitrate change", func(t *testing.T) {
		before := testManifest(testVariant("variant-0", 1000000))
		after := testManifest(testVariant("variant-0", 1500000))

		diff := DiffManifests(before, after)

		require.Len(t, diff.VariantsChanged, 1)
		// Changed entries carry the newer values
		assert.Equal(t, 1500000, diff.VariantsChanged[0].Bitrate)
	})

	t.Run("resolution gained", func(t *testing.T) {
		v1 := testVariant("variant-0", 1000000)
		v2 := testVariant("variant-0", 1000000)
		v2.Resolution = &common.Resolution{Width: 1280, Height: 720}

		diff := DiffManifests(testManifest(v1), testManifest(v2))
		assert.Len(t, diff.VariantsChanged, 1)
	})

	t.Run("codec order matters", func(t *testing.T) {
		v1 := testVariant("variant-0", 1000000)
		v2 := testVariant("variant-0", 1000000)
		v2.Codecs = []string{"mp4a.40.2", "avc1.4d401e"}

		diff := DiffManifests(testManifest(v1), testManifest(v2))
		assert.Len(t, diff.VariantsChanged, 1)
	})

	t.Run("frame rate alone is not a change", func(t *testing.T) {
		v1 := testVariant("variant-0", 1000000)
		v2 := testVariant("variant-0", 1000000)
		v2.FrameRate = 60

		diff := DiffManifests(testManifest(v1), testManifest(v2))
		assert.Empty(t, diff.VariantsChanged)
		assert.False(t, diff.HasChanges)
	})
}

func TestDiffManifestsMetadata(t *testing.T) {
	before := testManifest(testVariant("variant-0", 1000000))
	after := testManifest(testVariant("variant-0", 1000000))
	after.Metadata.Encrypted = true

	diff := DiffManifests(before, after)

	assert.True(t, diff.MetadataChanged)
	assert.True(t, diff.HasChanges)
	assert.Empty(t, diff.VariantsChanged)
}

func TestDiffManifestsLiveRefresh(t *testing.T) {
	// A live refresh keeps positional IDs stable, so identical ladders
	// produce an empty diff even when segment lists moved on
	before, err := ParseManifest("#EXTM3U\n#EXT-X-STREAM-INF:BANDWIDTH=1000000,CODECS=\"avc1.4d401e\"\n480p.m3u8",
		"https://cdn.example.com/live/master.m3u8")
	require.NoError(t, err)

	after, err := ParseManifest("#EXTM3U\n#EXT-X-STREAM-INF:BANDWIDTH=1000000,CODECS=\"avc1.4d401e\"\n480p.m3u8",
		"https://cdn.example.com/live/master.m3u8")
	require.NoError(t, err)

	assert.False(t, DiffManifests(before, after).HasChanges)
}
