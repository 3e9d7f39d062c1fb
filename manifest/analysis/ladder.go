package analysis

import (
	"fmt"
	"sort"

	"github.com/abrtools/manifestkit/manifest/common"
)

// BitrateGap is one oversized step in the bitrate ladder
type BitrateGap struct {
	FromBitrate int `json:"from_bitrate"`
	ToBitrate   int `json:"to_bitrate"`
	Gap         int `json:"gap"`
}

// LadderAnalysis summarizes the quality of an ABR bitrate ladder
type LadderAnalysis struct {
	TotalVariants   int          `json:"total_variants"`
	LowestBitrate   int          `json:"lowest_bitrate"`
	HighestBitrate  int          `json:"highest_bitrate"`
	AverageGap      float64      `json:"average_gap"`
	LargeGaps       []BitrateGap `json:"large_gaps"`
	Recommendations []string     `json:"recommendations"`
}

// BitrateGaps returns the bitrate deltas between consecutive variants,
// sorted ascending by bitrate
func BitrateGaps(variants []common.Variant) []int {
	if len(variants) < 2 {
		return []int{}
	}

	sorted := sortByBitrate(variants)

	gaps := make([]int, 0, len(sorted)-1)
	for i := 1; i < len(sorted); i++ {
		gaps = append(gaps, sorted[i].Bitrate-sorted[i-1].Bitrate)
	}
	return gaps
}

// AnalyzeBitrateLadder inspects the video ladder for large gaps, sparse
// ladders and missing low-bitrate coverage
func AnalyzeBitrateLadder(variants []common.Variant) *LadderAnalysis {
	videoVariants := sortByBitrate(filterVideo(variants))

	if len(videoVariants) == 0 {
		return &LadderAnalysis{
			LargeGaps:       []BitrateGap{},
			Recommendations: []string{"No video variants found"},
		}
	}

	gaps := BitrateGaps(videoVariants)

	var averageGap float64
	if len(gaps) > 0 {
		total := 0
		for _, gap := range gaps {
			total += gap
		}
		averageGap = float64(total) / float64(len(gaps))
	}

	largeGaps := make([]BitrateGap, 0)
	for i, gap := range gaps {
		if float64(gap) > averageGap*1.5 {
			largeGaps = append(largeGaps, BitrateGap{
				FromBitrate: videoVariants[i].Bitrate,
				ToBitrate:   videoVariants[i+1].Bitrate,
				Gap:         gap,
			})
		}
	}

	recommendations := make([]string, 0)
	if len(largeGaps) > 0 {
		recommendations = append(recommendations, fmt.Sprintf(
			"Consider adding intermediate variants to fill %d large gap(s) in the bitrate ladder", len(largeGaps)))
	}
	if len(videoVariants) < 3 {
		recommendations = append(recommendations,
			"Consider adding more variants for better adaptive streaming (recommended: 4-6 variants)")
	}
	if videoVariants[0].Bitrate > 500000 {
		recommendations = append(recommendations,
			"Consider adding a lower bitrate variant (<500 Kbps) for poor network conditions")
	}

	return &LadderAnalysis{
		TotalVariants:   len(videoVariants),
		LowestBitrate:   videoVariants[0].Bitrate,
		HighestBitrate:  videoVariants[len(videoVariants)-1].Bitrate,
		AverageGap:      averageGap,
		LargeGaps:       largeGaps,
		Recommendations: recommendations,
	}
}

// RecommendVariant picks the best video variant for a connection speed,
// keeping 15% headroom for bandwidth fluctuation. Returns nil when there
// are no video variants.
func RecommendVariant(variants []common.Variant, bandwidthBps int) *common.Variant {
	videoVariants := sortByBitrate(filterVideo(variants))
	if len(videoVariants) == 0 {
		return nil
	}

	targetBitrate := float64(bandwidthBps) * 0.85

	for i := len(videoVariants) - 1; i >= 0; i-- {
		if float64(videoVariants[i].Bitrate) <= targetBitrate {
			return &videoVariants[i]
		}
	}

	// Everything exceeds the connection; degrade to the lowest rung
	return &videoVariants[0]
}

func filterVideo(variants []common.Variant) []common.Variant {
	filtered := make([]common.Variant, 0, len(variants))
	for _, v := range variants {
		if v.Type == common.VariantTypeVideo {
			filtered = append(filtered, v)
		}
	}
	return filtered
}

func sortByBitrate(variants []common.Variant) []common.Variant {
	sorted := make([]common.Variant, len(variants))
	copy(sorted, variants)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Bitrate < sorted[j].Bitrate
	})
	return sorted
}
