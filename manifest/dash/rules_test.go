package dash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abrtools/manifestkit/manifest/common"
)

func issueCodes(issues []common.ValidationIssue) []string {
	if len(issues) == 0 {
		return nil
	}
	codes := make([]string, 0, len(issues))
	for _, issue := range issues {
		codes = append(codes, issue.Code)
	}
	return codes
}

func TestDetectMPDType(t *testing.T) {
	assert.Equal(t, "static", DetectMPDType(TestStaticMPD))
	assert.Equal(t, "dynamic", DetectMPDType(TestDynamicMPD))
	// Missing type defaults to static
	assert.Equal(t, "static", DetectMPDType(TestInvalidMPD))
}

func TestDetectProfile(t *testing.T) {
	assert.Equal(t, "urn:mpeg:dash:profile:isoff-on-demand:2011", DetectProfile(TestStaticMPD))
	assert.Equal(t, "unknown", DetectProfile("<MPD></MPD>"))
}

func TestCheckWellFormedXML(t *testing.T) {
	issues := checkWellFormedXML(NewDocument(TestMalformedMPD))
	require.Len(t, issues, 1)
	assert.Equal(t, "MPD_INVALID_XML", issues[0].Code)
	assert.Equal(t, "MPD", issues[0].Element)
	assert.Equal(t, "ISO/IEC 23009-1 § 5", issues[0].SpecReference)

	assert.Empty(t, checkWellFormedXML(NewDocument(TestStaticMPD)))
}

func TestCheckMPDType(t *testing.T) {
	t.Run("missing type", func(t *testing.T) {
		issues := checkMPDType(NewDocument(TestInvalidMPD))
		require.Len(t, issues, 1)
		assert.Equal(t, "MPD_TYPE_REQUIRED", issues[0].Code)
		assert.Equal(t, "type", issues[0].Attribute)
	})

	t.Run("invalid type", func(t *testing.T) {
		content := `<MPD type="rewind" minBufferTime="PT2S"><Period/></MPD>`
		issues := checkMPDType(NewDocument(content))
		require.Len(t, issues, 1)
		assert.Equal(t, "MPD_TYPE_INVALID", issues[0].Code)
		assert.Contains(t, issues[0].Message, "rewind")
	})

	t.Run("valid types", func(t *testing.T) {
		assert.Empty(t, checkMPDType(NewDocument(TestStaticMPD)))
		assert.Empty(t, checkMPDType(NewDocument(TestDynamicMPD)))
	})
}

func TestCheckMinBufferTime(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		issues := checkMinBufferTime(NewDocument(TestInvalidMPD))
		require.Len(t, issues, 1)
		assert.Equal(t, "MIN_BUFFER_TIME_REQUIRED", issues[0].Code)
	})

	t.Run("wrong shape", func(t *testing.T) {
		content := `<MPD type="static" minBufferTime="PT1M30S"><Period/></MPD>`
		issues := checkMinBufferTime(NewDocument(content))
		require.Len(t, issues, 1)
		assert.Equal(t, "MIN_BUFFER_TIME_FORMAT", issues[0].Code)
		assert.Contains(t, issues[0].Message, "PT1M30S")
	})

	t.Run("valid", func(t *testing.T) {
		assert.Empty(t, checkMinBufferTime(NewDocument(TestStaticMPD)))
	})
}

func TestCheckPeriodExists(t *testing.T) {
	content := `<MPD type="static" minBufferTime="PT2S"></MPD>`
	issues := checkPeriodExists(NewDocument(content))
	require.Len(t, issues, 1)
	assert.Equal(t, "PERIOD_REQUIRED", issues[0].Code)

	assert.Empty(t, checkPeriodExists(NewDocument(TestStaticMPD)))
}

func TestCheckAdaptationSetType(t *testing.T) {
	issues := checkAdaptationSetType(NewDocument(TestInvalidMPD))
	require.Len(t, issues, 1)
	assert.Equal(t, "ADAPTATION_SET_TYPE_REQUIRED", issues[0].Code)
	assert.Contains(t, issues[0].Message, "AdaptationSet #1")

	assert.Empty(t, checkAdaptationSetType(NewDocument(TestStaticMPD)))
	// Malformed XML skips element-level checks
	assert.Empty(t, checkAdaptationSetType(NewDocument(TestMalformedMPD)))
}

func TestCheckRepresentationAttributes(t *testing.T) {
	issues := checkRepresentationAttributes(NewDocument(TestInvalidMPD))
	codes := issueCodes(issues)
	assert.Contains(t, codes, "REPRESENTATION_ID_REQUIRED")
	assert.Contains(t, codes, "REPRESENTATION_BANDWIDTH_REQUIRED")

	assert.Empty(t, checkRepresentationAttributes(NewDocument(TestStaticMPD)))
}

func TestCheckOnDemandProfile(t *testing.T) {
	t.Run("dynamic on-demand presentation", func(t *testing.T) {
		content := `<MPD type="dynamic" minBufferTime="PT2S" profiles="urn:mpeg:dash:profile:isoff-on-demand:2011"><Period/></MPD>`
		issues := checkOnDemandProfile(NewDocument(content))
		codes := issueCodes(issues)
		assert.Contains(t, codes, "ON_DEMAND_TYPE_STATIC")
		assert.Contains(t, codes, "ON_DEMAND_DURATION_REQUIRED")
	})

	t.Run("compliant on-demand presentation", func(t *testing.T) {
		assert.Empty(t, checkOnDemandProfile(NewDocument(TestStaticMPD)))
	})

	t.Run("other profiles are out of scope", func(t *testing.T) {
		assert.Empty(t, checkOnDemandProfile(NewDocument(TestInvalidMPD)))
	})
}

func TestDetectFeatures(t *testing.T) {
	features := DetectFeatures(TestDynamicMPD, "dynamic")
	require.Len(t, features, 6)

	byName := make(map[string]bool, len(features))
	for _, feature := range features {
		byName[feature.Name] = feature.Detected
	}

	assert.True(t, byName["Live Streaming"])
	assert.True(t, byName["SegmentTemplate Addressing"])
	assert.False(t, byName["SegmentList Addressing"])
	assert.False(t, byName["Multi-Period"])
	assert.False(t, byName["Content Protection (DRM)"])

	vodFeatures := DetectFeatures(TestEncryptedMPD, "static")
	vodByName := make(map[string]bool, len(vodFeatures))
	for _, feature := range vodFeatures {
		vodByName[feature.Name] = feature.Detected
	}
	assert.True(t, vodByName["Video On Demand (VOD)"])
	assert.True(t, vodByName["Content Protection (DRM)"])
}

func TestRuleCodes(t *testing.T) {
	codes := RuleCodes()
	assert.Len(t, codes, 11)
	assert.Contains(t, codes, "MPD_INVALID_XML")
	assert.Contains(t, codes, "ON_DEMAND_DURATION_REQUIRED")
}
