package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abrtools/manifestkit/manifest/common"
)

func videoVariant(id string, bitrate, width, height int) common.Variant {
	return common.Variant{
		ID:         id,
		Bitrate:    bitrate,
		Resolution: &common.Resolution{Width: width, Height: height},
		Codecs:     []string{"avc1.4d401e", "mp4a.40.2"},
		Type:       common.VariantTypeVideo,
	}
}

func TestAnalyzeManifestNoVariants(t *testing.T) {
	issues := AnalyzeManifest(&common.ParsedManifest{})

	require.Len(t, issues, 1)
	assert.Equal(t, common.SeverityError, issues[0].Severity)
	assert.Equal(t, CategoryVariants, issues[0].Category)
}

func TestAnalyzeManifestHealthyLadder(t *testing.T) {
	manifest := &common.ParsedManifest{
		Variants: []common.Variant{
			videoVariant("variant-0", 400000, 640, 360),
			videoVariant("variant-1", 800000, 854, 480),
			videoVariant("variant-2", 1600000, 1280, 720),
			videoVariant("variant-3", 3200000, 1920, 1080),
		},
		Metadata: common.ManifestMetadata{Type: common.ManifestTypeVOD},
	}

	issues := AnalyzeManifest(manifest)
	summary := Summarize(issues)

	assert.True(t, summary.Healthy)
	assert.Zero(t, summary.Errors)
	assert.Zero(t, summary.Warnings)
}

func TestAnalyzeManifestFindings(t *testing.T) {
	t.Run("sparse ladder", func(t *testing.T) {
		manifest := &common.ParsedManifest{
			Variants: []common.Variant{videoVariant("variant-0", 400000, 640, 360)},
		}

		issues := AnalyzeManifest(manifest)
		require.NotEmpty(t, issues)
		assert.Equal(t, CategoryABRLadder, issues[0].Category)
		assert.Contains(t, issues[0].Message, "Only 1 video variant(s)")
	})

	t.Run("duplicate bitrates", func(t *testing.T) {
		manifest := &common.ParsedManifest{
			Variants: []common.Variant{
				videoVariant("variant-0", 800000, 640, 360),
				videoVariant("variant-1", 800000, 854, 480),
				videoVariant("variant-2", 1600000, 1280, 720),
			},
		}

		issues := AnalyzeManifest(manifest)
		messages := issueMessages(issues)
		assert.Contains(t, messages, "Multiple variants have the same bitrate")
	})

	t.Run("missing resolution and codecs", func(t *testing.T) {
		noExtras := common.Variant{ID: "variant-0", Bitrate: 400000, Type: common.VariantTypeVideo, Codecs: []string{}}
		manifest := &common.ParsedManifest{
			Variants: []common.Variant{
				noExtras,
				videoVariant("variant-1", 800000, 854, 480),
				videoVariant("variant-2", 1600000, 1280, 720),
			},
		}

		issues := AnalyzeManifest(manifest)
		messages := issueMessages(issues)
		assert.Contains(t, messages, "Some video variants are missing resolution information")
		assert.Contains(t, messages, "Variant 1 is missing codec information")
	})

	t.Run("audio only manifest", func(t *testing.T) {
		manifest := &common.ParsedManifest{
			Variants: []common.Variant{{ID: "variant-0", Bitrate: 96000, Type: common.VariantTypeAudio}},
		}

		issues := AnalyzeManifest(manifest)
		messages := issueMessages(issues)
		assert.Contains(t, messages, "No video variants found")
	})

	t.Run("encrypted content noted", func(t *testing.T) {
		manifest := &common.ParsedManifest{
			Variants: []common.Variant{
				videoVariant("variant-0", 400000, 640, 360),
				videoVariant("variant-1", 800000, 854, 480),
				videoVariant("variant-2", 1600000, 1280, 720),
			},
			Metadata: common.ManifestMetadata{Encrypted: true},
		}

		issues := AnalyzeManifest(manifest)
		summary := Summarize(issues)
		assert.True(t, summary.Healthy)
		assert.Equal(t, 1, summary.Info)
	})
}

func TestAnalyzeBitrateLadder(t *testing.T) {
	variants := []common.Variant{
		videoVariant("variant-0", 400000, 640, 360),
		videoVariant("variant-1", 800000, 854, 480),
		videoVariant("variant-2", 8000000, 1920, 1080),
	}

	analysis := AnalyzeBitrateLadder(variants)

	assert.Equal(t, 3, analysis.TotalVariants)
	assert.Equal(t, 400000, analysis.LowestBitrate)
	assert.Equal(t, 8000000, analysis.HighestBitrate)
	require.Len(t, analysis.LargeGaps, 1)
	assert.Equal(t, 800000, analysis.LargeGaps[0].FromBitrate)
	assert.Equal(t, 8000000, analysis.LargeGaps[0].ToBitrate)
	assert.NotEmpty(t, analysis.Recommendations)
}

func TestAnalyzeBitrateLadderNoVideo(t *testing.T) {
	analysis := AnalyzeBitrateLadder([]common.Variant{
		{ID: "variant-0", Bitrate: 96000, Type: common.VariantTypeAudio},
	})

	assert.Zero(t, analysis.TotalVariants)
	assert.Equal(t, []string{"No video variants found"}, analysis.Recommendations)
}

func TestRecommendVariant(t *testing.T) {
	variants := []common.Variant{
		videoVariant("variant-0", 400000, 640, 360),
		videoVariant("variant-1", 1600000, 1280, 720),
		videoVariant("variant-2", 3200000, 1920, 1080),
	}

	t.Run("picks highest that fits with headroom", func(t *testing.T) {
		recommended := RecommendVariant(variants, 2500000)
		require.NotNil(t, recommended)
		// 85% of 2.5 Mbps leaves room for the 1.6 Mbps rung only
		assert.Equal(t, 1600000, recommended.Bitrate)
	})

	t.Run("degrades to lowest when starved", func(t *testing.T) {
		recommended := RecommendVariant(variants, 100000)
		require.NotNil(t, recommended)
		assert.Equal(t, 400000, recommended.Bitrate)
	})

	t.Run("nil without video variants", func(t *testing.T) {
		assert.Nil(t, RecommendVariant(nil, 2500000))
	})
}

func issueMessages(issues []Issue) []string {
	messages := make([]string, 0, len(issues))
	for _, issue := range issues {
		messages = append(messages, issue.Message)
	}
	return messages
}
