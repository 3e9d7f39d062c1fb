package manifest

import (
	"strings"

	"github.com/abrtools/manifestkit/manifest/common"
)

// DetectFormat auto-detects the manifest format from content.
//
// DASH manifests are XML (start with < or <?xml); HLS playlists are plain
// text starting with #EXTM3U. Content that matches neither signature is
// treated as HLS, which keeps the downstream validator in charge of
// reporting what is wrong with it.
func DetectFormat(content string) common.Format {
	trimmed := strings.TrimLeft(content, " \t\r\n")

	if strings.HasPrefix(trimmed, "<") {
		return common.FormatDASH
	}

	if strings.HasPrefix(trimmed, "#EXTM3U") {
		return common.FormatHLS
	}

	// XML signature further in, e.g. after a BOM or stray prefix
	head := trimmed
	if len(head) > 100 {
		head = head[:100]
	}
	if strings.Contains(head, "<MPD") || strings.Contains(head, "<?xml") {
		return common.FormatDASH
	}

	return common.FormatHLS
}
