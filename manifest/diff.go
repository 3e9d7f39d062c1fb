package manifest

import (
	"github.com/abrtools/manifestkit/manifest/common"
)

// ManifestDiff describes the differences between two parsed manifests.
// Added and changed variants carry the newer manifest's values.
type ManifestDiff struct {
	VariantsAdded   []common.Variant `json:"variants_added"`
	VariantsRemoved []common.Variant `json:"variants_removed"`
	VariantsChanged []common.Variant `json:"variants_changed"`
	MetadataChanged bool             `json:"metadata_changed"`
	HasChanges      bool             `json:"has_changes"`
}

// DiffManifests compares two manifests. Variants are matched by ID, so the
// diff is meaningful between refreshes of the same stream, where positional
// IDs stay stable as long as the variant order does.
func DiffManifests(before, after *common.ParsedManifest) *ManifestDiff {
	diff := &ManifestDiff{
		VariantsAdded:   make([]common.Variant, 0),
		VariantsRemoved: make([]common.Variant, 0),
		VariantsChanged: make([]common.Variant, 0),
	}

	beforeByID := make(map[string]common.Variant, len(before.Variants))
	for _, v := range before.Variants {
		beforeByID[v.ID] = v
	}
	afterByID := make(map[string]common.Variant, len(after.Variants))
	for _, v := range after.Variants {
		afterByID[v.ID] = v
	}

	for _, v := range after.Variants {
		if _, exists := beforeByID[v.ID]; !exists {
			diff.VariantsAdded = append(diff.VariantsAdded, v)
		}
	}

	for _, v := range before.Variants {
		if _, exists := afterByID[v.ID]; !exists {
			diff.VariantsRemoved = append(diff.VariantsRemoved, v)
		}
	}

	for _, v := range before.Variants {
		if updated, exists := afterByID[v.ID]; exists && variantChanged(v, updated) {
			diff.VariantsChanged = append(diff.VariantsChanged, updated)
		}
	}

	diff.MetadataChanged = metadataChanged(before.Metadata, after.Metadata)

	diff.HasChanges = len(diff.VariantsAdded) > 0 ||
		len(diff.VariantsRemoved) > 0 ||
		len(diff.VariantsChanged) > 0 ||
		diff.MetadataChanged

	return diff
}

func variantChanged(a, b common.Variant) bool {
	if a.Bitrate != b.Bitrate || a.URL != b.URL || a.Type != b.Type {
		return true
	}

	if a.Resolution != nil && b.Resolution != nil {
		if a.Resolution.Width != b.Resolution.Width || a.Resolution.Height != b.Resolution.Height {
			return true
		}
	} else if (a.Resolution == nil) != (b.Resolution == nil) {
		return true
	}

	// Codec comparison is order sensitive
	if len(a.Codecs) != len(b.Codecs) {
		return true
	}
	for i := range a.Codecs {
		if a.Codecs[i] != b.Codecs[i] {
			return true
		}
	}

	return false
}

func metadataChanged(a, b common.ManifestMetadata) bool {
	return a.Type != b.Type ||
		a.Duration != b.Duration ||
		a.Encrypted != b.Encrypted
}
