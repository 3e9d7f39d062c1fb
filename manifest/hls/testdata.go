package hls

// Sample M3U8 content shared across test files
var (
	TestMasterPlaylist = `#EXTM3U
#EXT-X-VERSION:3
#EXT-X-STREAM-INF:BANDWIDTH=1280000,CODECS="avc1.42e00a,mp4a.40.2",RESOLUTION=852x480
480p.m3u8
#EXT-X-STREAM-INF:BANDWIDTH=2560000,CODECS="avc1.42e00a,mp4a.40.2",RESOLUTION=1280x720
720p.m3u8
#EXT-X-STREAM-INF:BANDWIDTH=5000000,CODECS="avc1.42e00a,mp4a.40.2",RESOLUTION=1920x1080,FRAME-RATE=29.97
1080p.m3u8`

	TestMediaPlaylist = `#EXTM3U
#EXT-X-VERSION:3
#EXT-X-TARGETDURATION:10
#EXT-X-MEDIA-SEQUENCE:0
#EXTINF:9.009,
segment0.ts
#EXTINF:9.009,
segment1.ts
#EXTINF:9.009,
segment2.ts
#EXT-X-ENDLIST`

	TestLivePlaylist = `#EXTM3U
#EXT-X-VERSION:3
#EXT-X-TARGETDURATION:10
#EXT-X-MEDIA-SEQUENCE:123456
#EXTINF:10.0,
segment123456.ts
#EXTINF:10.0,
segment123457.ts
#EXTINF:10.0,
segment123458.ts`

	TestEventPlaylist = `#EXTM3U
#EXT-X-VERSION:3
#EXT-X-TARGETDURATION:6
#EXT-X-PLAYLIST-TYPE:EVENT
#EXT-X-MEDIA-SEQUENCE:0
#EXTINF:6.0,
event0.ts
#EXTINF:6.0,
event1.ts`

	TestEncryptedPlaylist = `#EXTM3U
#EXT-X-VERSION:3
#EXT-X-TARGETDURATION:10
#EXT-X-MEDIA-SEQUENCE:0
#EXT-X-KEY:METHOD=AES-128,URI="https://example.com/key.bin",IV=0x1234567890abcdef1234567890abcdef
#EXTINF:9.0,
enc0.ts
#EXTINF:9.0,
enc1.ts
#EXT-X-KEY:METHOD=NONE
#EXTINF:9.0,
clear0.ts
#EXT-X-ENDLIST`

	TestByteRangePlaylist = `#EXTM3U
#EXT-X-VERSION:4
#EXT-X-TARGETDURATION:10
#EXT-X-MEDIA-SEQUENCE:0
#EXTINF:9.0,
#EXT-X-BYTERANGE:75232@0
media.ts
#EXTINF:9.0,
#EXT-X-BYTERANGE:82112
media.ts
#EXT-X-ENDLIST`

	// Missing #EXTM3U header and BANDWIDTH attribute
	TestInvalidPlaylist = `#EXT-X-VERSION:3
#EXT-X-STREAM-INF:CODECS="avc1.42e00a",RESOLUTION=852x480
480p.m3u8`

	// Media playlist without EXT-X-TARGETDURATION
	TestMissingTargetDuration = `#EXTM3U
#EXT-X-VERSION:3
#EXTINF:9.0,
segment0.ts
#EXT-X-ENDLIST`
)
