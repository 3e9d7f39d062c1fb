package dash

import (
	"encoding/xml"
)

// MPD is the root element of a DASH Media Presentation Description
// (ISO/IEC 23009-1 § 5.3.1)
type MPD struct {
	XMLName                   xml.Name  `xml:"MPD"`
	Type                      string    `xml:"type,attr"`
	Profiles                  string    `xml:"profiles,attr"`
	MediaPresentationDuration string    `xml:"mediaPresentationDuration,attr"`
	MaxSegmentDuration        string    `xml:"maxSegmentDuration,attr"`
	MinBufferTime             string    `xml:"minBufferTime,attr"`
	AvailabilityStartTime     string    `xml:"availabilityStartTime,attr"`
	MinimumUpdatePeriod       string    `xml:"minimumUpdatePeriod,attr"`
	BaseURL                   string    `xml:"BaseURL"`
	Periods                   []*Period `xml:"Period"`
}

// Period groups adaptation sets over a time interval (§ 5.3.2)
type Period struct {
	ID             string           `xml:"id,attr"`
	Start          string           `xml:"start,attr"`
	Duration       string           `xml:"duration,attr"`
	BaseURL        string           `xml:"BaseURL"`
	AdaptationSets []*AdaptationSet `xml:"AdaptationSet"`
}

// AdaptationSet groups interchangeable representations (§ 5.3.3)
type AdaptationSet struct {
	ID                string               `xml:"id,attr"`
	ContentType       string               `xml:"contentType,attr"`
	MimeType          string               `xml:"mimeType,attr"`
	Codecs            string               `xml:"codecs,attr"`
	Lang              string               `xml:"lang,attr"`
	SegmentAlignment  string               `xml:"segmentAlignment,attr"`
	AudioSamplingRate string               `xml:"audioSamplingRate,attr"`
	MaxWidth          int                  `xml:"maxWidth,attr"`
	MaxHeight         int                  `xml:"maxHeight,attr"`
	FrameRate         string               `xml:"frameRate,attr"`
	Roles             []Role               `xml:"Role"`
	ContentProtection []*ContentProtection `xml:"ContentProtection"`
	SegmentTemplate   *SegmentTemplate     `xml:"SegmentTemplate"`
	Representations   []*Representation    `xml:"Representation"`
}

// Role signals the purpose of an adaptation set
type Role struct {
	SchemeIdURI string `xml:"schemeIdUri,attr"`
	Value       string `xml:"value,attr"`
}

// ContentProtection marks DRM-protected content (§ 5.8.4.1)
type ContentProtection struct {
	SchemeIdURI string `xml:"schemeIdUri,attr"`
	Value       string `xml:"value,attr"`
}

// SegmentTemplate describes template-based segment addressing (§ 5.3.9.4)
type SegmentTemplate struct {
	Timescale      string `xml:"timescale,attr"`
	Initialization string `xml:"initialization,attr"`
	Media          string `xml:"media,attr"`
	StartNumber    string `xml:"startNumber,attr"`
	Duration       string `xml:"duration,attr"`
}

// Representation is one encoded alternative of the content (§ 5.3.5)
type Representation struct {
	ID                string               `xml:"id,attr"`
	Bandwidth         int                  `xml:"bandwidth,attr"`
	Width             int                  `xml:"width,attr"`
	Height            int                  `xml:"height,attr"`
	Codecs            string               `xml:"codecs,attr"`
	MimeType          string               `xml:"mimeType,attr"`
	FrameRate         string               `xml:"frameRate,attr"`
	AudioSamplingRate string               `xml:"audioSamplingRate,attr"`
	BaseURL           string               `xml:"BaseURL"`
	ContentProtection []*ContentProtection `xml:"ContentProtection"`
}

// UnmarshalMPD decodes MPD XML into the object model
func UnmarshalMPD(content string) (*MPD, error) {
	var mpd MPD
	if err := xml.Unmarshal([]byte(content), &mpd); err != nil {
		return nil, err
	}
	return &mpd, nil
}
