package dash

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/abrtools/manifestkit/manifest/common"
)

// Document carries the raw MPD text plus the parsed DOM and the detected
// presentation facts shared by rules. Root is nil when the XML is malformed;
// element-level rules skip in that case while string-based rules still run.
type Document struct {
	Content string
	Root    *xmlquery.Node
	MPDType string
	Profile string
}

// Rule is one independently checkable ISO/IEC 23009-1 or DASH-IF IOP
// requirement
type Rule struct {
	Codes       []string
	Description string
	Check       func(doc *Document) []common.ValidationIssue
}

var (
	mpdTypeAttrPattern = regexp.MustCompile(`<MPD[^>]*\stype="([^"]+)"`)
	anyTypeAttrPattern = regexp.MustCompile(`type="([^"]+)"`)
	profilesPattern    = regexp.MustCompile(`profiles="([^"]+)"`)
	minBufferPattern   = regexp.MustCompile(`minBufferTime="([^"]+)"`)
	minBufferShape     = regexp.MustCompile(`^PT[\d.]+S$`)
)

// NewDocument parses the MPD into a DOM and detects type and profile
func NewDocument(content string) *Document {
	doc := &Document{
		Content: content,
		MPDType: DetectMPDType(content),
		Profile: DetectProfile(content),
	}

	if root, err := xmlquery.Parse(strings.NewReader(content)); err == nil {
		doc.Root = root
	}

	return doc
}

// DetectMPDType reads the presentation type, defaulting to static
func DetectMPDType(content string) string {
	match := anyTypeAttrPattern.FindStringSubmatch(content)
	if match != nil && match[1] == "dynamic" {
		return "dynamic"
	}
	return "static"
}

// DetectProfile reads the declared profiles attribute
func DetectProfile(content string) string {
	match := profilesPattern.FindStringSubmatch(content)
	if match == nil {
		return "unknown"
	}
	return match[1]
}

// DefaultRules returns the ISO/IEC 23009-1 rule catalog in evaluation order
func DefaultRules() []Rule {
	return []Rule{
		{
			Codes:       []string{"MPD_INVALID_XML"},
			Description: "MPD must be well-formed XML",
			Check:       checkWellFormedXML,
		},
		{
			Codes:       []string{"MPD_TYPE_REQUIRED", "MPD_TYPE_INVALID"},
			Description: "MPD must declare a valid type attribute",
			Check:       checkMPDType,
		},
		{
			Codes:       []string{"MIN_BUFFER_TIME_REQUIRED", "MIN_BUFFER_TIME_FORMAT"},
			Description: "MPD must declare minBufferTime as an ISO 8601 duration",
			Check:       checkMinBufferTime,
		},
		{
			Codes:       []string{"PERIOD_REQUIRED"},
			Description: "MPD must contain at least one Period",
			Check:       checkPeriodExists,
		},
		{
			Codes:       []string{"ADAPTATION_SET_TYPE_REQUIRED"},
			Description: "AdaptationSets must declare mimeType or contentType",
			Check:       checkAdaptationSetType,
		},
		{
			Codes:       []string{"REPRESENTATION_ID_REQUIRED", "REPRESENTATION_BANDWIDTH_REQUIRED"},
			Description: "Representations must declare id and bandwidth",
			Check:       checkRepresentationAttributes,
		},
		{
			Codes:       []string{"ON_DEMAND_TYPE_STATIC", "ON_DEMAND_DURATION_REQUIRED"},
			Description: "isoff-on-demand presentations must be static with a declared duration",
			Check:       checkOnDemandProfile,
		},
	}
}

// RuleCodes returns the fixed catalog of rule codes evaluated per manifest
func RuleCodes() []string {
	codes := make([]string, 0, 11)
	for _, rule := range DefaultRules() {
		codes = append(codes, rule.Codes...)
	}
	return codes
}

// MPD must be well-formed XML (ISO/IEC 23009-1 § 5)
func checkWellFormedXML(doc *Document) []common.ValidationIssue {
	if doc.Root != nil {
		return nil
	}
	return []common.ValidationIssue{{
		Code:          "MPD_INVALID_XML",
		Severity:      common.SeverityError,
		Element:       "MPD",
		Message:       "MPD is not valid XML",
		SpecReference: "ISO/IEC 23009-1 § 5",
		Suggestion:    "Fix XML syntax errors",
	}}
}

// MPD@type must be static or dynamic (ISO/IEC 23009-1 § 5.3.1.2)
func checkMPDType(doc *Document) []common.ValidationIssue {
	match := mpdTypeAttrPattern.FindStringSubmatch(doc.Content)

	if match == nil {
		return []common.ValidationIssue{{
			Code:          "MPD_TYPE_REQUIRED",
			Severity:      common.SeverityError,
			Element:       "MPD",
			Attribute:     "type",
			Message:       "MPD element must have type attribute",
			SpecReference: "ISO/IEC 23009-1 § 5.3.1.2",
			Suggestion:    `Add type="static" for VOD or type="dynamic" for live`,
		}}
	}

	if mpdType := match[1]; mpdType != "static" && mpdType != "dynamic" {
		return []common.ValidationIssue{{
			Code:          "MPD_TYPE_INVALID",
			Severity:      common.SeverityError,
			Element:       "MPD",
			Attribute:     "type",
			Message:       fmt.Sprintf("Invalid MPD type %q. Must be \"static\" or \"dynamic\"", mpdType),
			SpecReference: "ISO/IEC 23009-1 § 5.3.1.2",
			Suggestion:    `Use type="static" or type="dynamic"`,
		}}
	}

	return nil
}

// minBufferTime is required and must be an ISO 8601 duration
// (ISO/IEC 23009-1 § 5.3.1.2)
func checkMinBufferTime(doc *Document) []common.ValidationIssue {
	match := minBufferPattern.FindStringSubmatch(doc.Content)

	if match == nil {
		return []common.ValidationIssue{{
			Code:          "MIN_BUFFER_TIME_REQUIRED",
			Severity:      common.SeverityError,
			Element:       "MPD",
			Attribute:     "minBufferTime",
			Message:       "MPD must have minBufferTime attribute",
			SpecReference: "ISO/IEC 23009-1 § 5.3.1.2",
			Suggestion:    `Add minBufferTime="PT2.0S" or similar ISO 8601 duration`,
		}}
	}

	if !minBufferShape.MatchString(match[1]) {
		return []common.ValidationIssue{{
			Code:          "MIN_BUFFER_TIME_FORMAT",
			Severity:      common.SeverityError,
			Element:       "MPD",
			Attribute:     "minBufferTime",
			Message:       fmt.Sprintf("Invalid minBufferTime format: %q. Must be ISO 8601 duration", match[1]),
			SpecReference: "ISO/IEC 23009-1 § 5.3.1.2",
			Suggestion:    "Use format PTnnn.nnnS (e.g., PT2.0S for 2 seconds)",
		}}
	}

	return nil
}

// At least one Period is required (ISO/IEC 23009-1 § 5.3.2)
func checkPeriodExists(doc *Document) []common.ValidationIssue {
	if strings.Contains(doc.Content, "<Period") {
		return nil
	}
	return []common.ValidationIssue{{
		Code:          "PERIOD_REQUIRED",
		Severity:      common.SeverityError,
		Element:       "MPD",
		Message:       "MPD must contain at least one Period element",
		SpecReference: "ISO/IEC 23009-1 § 5.3.2",
		Suggestion:    "Add <Period> element with AdaptationSets",
	}}
}

// AdaptationSets must declare mimeType or contentType
// (ISO/IEC 23009-1 § 5.3.3)
func checkAdaptationSetType(doc *Document) []common.ValidationIssue {
	if doc.Root == nil {
		return nil
	}

	var issues []common.ValidationIssue

	for index, node := range xmlquery.Find(doc.Root, "//AdaptationSet") {
		if hasAttr(node, "mimeType") || hasAttr(node, "contentType") {
			continue
		}
		issues = append(issues, common.ValidationIssue{
			Code:          "ADAPTATION_SET_TYPE_REQUIRED",
			Severity:      common.SeverityError,
			Element:       "AdaptationSet",
			Message:       fmt.Sprintf("AdaptationSet #%d must have either mimeType or contentType attribute", index+1),
			SpecReference: "ISO/IEC 23009-1 § 5.3.3",
			Suggestion:    `Add mimeType="video/mp4" or contentType="video"`,
		})
	}

	return issues
}

// Representations must declare id and bandwidth (ISO/IEC 23009-1 § 5.3.5)
func checkRepresentationAttributes(doc *Document) []common.ValidationIssue {
	if doc.Root == nil {
		return nil
	}

	var issues []common.ValidationIssue

	for index, node := range xmlquery.Find(doc.Root, "//Representation") {
		if !hasAttr(node, "id") {
			issues = append(issues, common.ValidationIssue{
				Code:          "REPRESENTATION_ID_REQUIRED",
				Severity:      common.SeverityError,
				Element:       "Representation",
				Attribute:     "id",
				Message:       fmt.Sprintf("Representation #%d must have id attribute", index+1),
				SpecReference: "ISO/IEC 23009-1 § 5.3.5",
				Suggestion:    `Add id="1" or similar unique identifier`,
			})
		}
		if !hasAttr(node, "bandwidth") {
			issues = append(issues, common.ValidationIssue{
				Code:          "REPRESENTATION_BANDWIDTH_REQUIRED",
				Severity:      common.SeverityError,
				Element:       "Representation",
				Attribute:     "bandwidth",
				Message:       fmt.Sprintf("Representation #%d must have bandwidth attribute", index+1),
				SpecReference: "ISO/IEC 23009-1 § 5.3.5",
				Suggestion:    `Add bandwidth="1000000" (bitrate in bits per second)`,
			})
		}
	}

	return issues
}

func hasAttr(node *xmlquery.Node, name string) bool {
	for _, attr := range node.Attr {
		if attr.Name.Local == name {
			return true
		}
	}
	return false
}

// isoff-on-demand presentations must be static and carry a declared
// duration (DASH-IF IOP § 3.2.2)
func checkOnDemandProfile(doc *Document) []common.ValidationIssue {
	if !strings.Contains(doc.Profile, "isoff-on-demand") {
		return nil
	}

	var issues []common.ValidationIssue

	if doc.MPDType != "static" {
		issues = append(issues, common.ValidationIssue{
			Code:          "ON_DEMAND_TYPE_STATIC",
			Severity:      common.SeverityError,
			Element:       "MPD",
			Attribute:     "type",
			Message:       `isoff-on-demand profile requires type="static"`,
			SpecReference: "DASH-IF IOP § 3.2.2",
			Suggestion:    `Change type to "static" for VOD content`,
		})
	}

	if !strings.Contains(doc.Content, "mediaPresentationDuration=") {
		issues = append(issues, common.ValidationIssue{
			Code:          "ON_DEMAND_DURATION_REQUIRED",
			Severity:      common.SeverityError,
			Element:       "MPD",
			Attribute:     "mediaPresentationDuration",
			Message:       "isoff-on-demand profile requires mediaPresentationDuration",
			SpecReference: "DASH-IF IOP § 3.2.2",
			Suggestion:    `Add mediaPresentationDuration="PT634.566S" or appropriate duration`,
		})
	}

	return issues
}

// DetectFeatures builds the capability checklist. The checklist is
// informational and never affects compliance.
func DetectFeatures(content, mpdType string) []common.DetectedFeature {
	presentation := "Video On Demand (VOD)"
	if mpdType == "dynamic" {
		presentation = "Live Streaming"
	}

	return []common.DetectedFeature{
		{Name: presentation, Detected: true},
		{Name: "SegmentTemplate Addressing", Detected: strings.Contains(content, "<SegmentTemplate")},
		{Name: "SegmentList Addressing", Detected: strings.Contains(content, "<SegmentList")},
		{Name: "SegmentBase Addressing", Detected: strings.Contains(content, "<SegmentBase")},
		{Name: "Multi-Period", Detected: strings.Count(content, "<Period") > 1},
		{Name: "Content Protection (DRM)", Detected: strings.Contains(content, "<ContentProtection")},
	}
}
