package dash

// Sample MPD content shared across test files
var (
	TestStaticMPD = `<?xml version="1.0" encoding="UTF-8"?>
<MPD xmlns="urn:mpeg:dash:schema:mpd:2011" type="static" minBufferTime="PT2.0S" mediaPresentationDuration="PT634.566S" profiles="urn:mpeg:dash:profile:isoff-on-demand:2011">
  <Period id="0">
    <AdaptationSet id="0" contentType="video" mimeType="video/mp4" segmentAlignment="true">
      <Representation id="video-480" bandwidth="1200000" width="854" height="480" codecs="avc1.4d401e" frameRate="30"/>
      <Representation id="video-720" bandwidth="2400000" width="1280" height="720" codecs="avc1.4d401f" frameRate="30"/>
      <Representation id="video-1080" bandwidth="4800000" width="1920" height="1080" codecs="avc1.640028" frameRate="30000/1001"/>
    </AdaptationSet>
    <AdaptationSet id="1" contentType="audio" mimeType="audio/mp4" lang="en">
      <Representation id="audio-en" bandwidth="128000" codecs="mp4a.40.2" audioSamplingRate="48000"/>
    </AdaptationSet>
  </Period>
</MPD>`

	TestDynamicMPD = `<?xml version="1.0" encoding="UTF-8"?>
<MPD xmlns="urn:mpeg:dash:schema:mpd:2011" type="dynamic" minBufferTime="PT4.0S" minimumUpdatePeriod="PT5S" availabilityStartTime="2026-01-01T00:00:00Z" profiles="urn:mpeg:dash:profile:isoff-live:2011">
  <Period id="0" start="PT0S">
    <AdaptationSet id="0" mimeType="video/mp4">
      <SegmentTemplate timescale="90000" media="chunk-$Number$.m4s" initialization="init.m4s" startNumber="1" duration="180000"/>
      <Representation id="live-720" bandwidth="2400000" width="1280" height="720" codecs="avc1.4d401f"/>
    </AdaptationSet>
  </Period>
</MPD>`

	TestEncryptedMPD = `<?xml version="1.0" encoding="UTF-8"?>
<MPD xmlns="urn:mpeg:dash:schema:mpd:2011" type="static" minBufferTime="PT2.0S" mediaPresentationDuration="PT120S" profiles="urn:mpeg:dash:profile:isoff-on-demand:2011">
  <Period id="0">
    <AdaptationSet id="0" mimeType="video/mp4">
      <ContentProtection schemeIdUri="urn:mpeg:dash:mp4protection:2011" value="cenc"/>
      <Representation id="enc-720" bandwidth="2400000" width="1280" height="720" codecs="avc1.4d401f"/>
    </AdaptationSet>
  </Period>
</MPD>`

	// Missing type and minBufferTime, Representation missing bandwidth
	TestInvalidMPD = `<?xml version="1.0" encoding="UTF-8"?>
<MPD xmlns="urn:mpeg:dash:schema:mpd:2011" profiles="urn:mpeg:dash:profile:isoff-main:2011">
  <Period id="0">
    <AdaptationSet id="0">
      <Representation width="1280" height="720"/>
    </AdaptationSet>
  </Period>
</MPD>`

	TestMalformedMPD = `<?xml version="1.0" encoding="UTF-8"?>
<MPD type="static" minBufferTime="PT2.0S">
  <Period>
    <AdaptationSet mimeType="video/mp4">
  </Period>
</MPD>`
)
