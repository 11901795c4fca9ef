package segment

import (
	"html"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/unicode/norm"
)

// Characters that show up when UTF-8 bytes are decoded as Windows-1252.
const mojibakeMarkers = "ÃÂâ"

// FixText repairs common text corruption before segmentation: UTF-8 decoded
// as Windows-1252, HTML entities, and non-NFC composition.
func FixText(s string) string {
	s = fixMojibake(s)
	s = html.UnescapeString(s)
	return norm.NFC.String(s)
}

// fixMojibake re-encodes s as Windows-1252 and keeps the result when it is
// valid UTF-8 with fewer marker characters.
func fixMojibake(s string) string {
	if !strings.ContainsAny(s, mojibakeMarkers) {
		return s
	}
	b, err := charmap.Windows1252.NewEncoder().Bytes([]byte(s))
	if err != nil || !utf8.Valid(b) {
		return s
	}
	fixed := string(b)
	if markerCount(fixed) >= markerCount(s) {
		return s
	}
	return fixed
}

func markerCount(s string) int {
	n := 0
	for _, r := range s {
		if strings.ContainsRune(mojibakeMarkers, r) {
			n++
		}
	}
	return n
}
