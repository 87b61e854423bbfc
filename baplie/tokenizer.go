// Package baplie extracts container stowage records from EDIFACT BAPLIE
// manifests. Only the segment types carrying container identity, stowage
// position, port markers and gross weight are interpreted; everything else
// is passed over without error.
package baplie

import "strings"

// segmentTerminator ends every EDIFACT segment.
const segmentTerminator = "'"

var lineBreaks = strings.NewReplacer("\r", "", "\n", "")

// Tokenize splits raw manifest text into EDIFACT segments. Line breaks are
// stripped first, then the text is split on the segment terminator and
// empty fragments are dropped. Segment order encodes document order, which
// the parser depends on.
func Tokenize(text string) []string {
	parts := strings.Split(lineBreaks.Replace(text), segmentTerminator)
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			segments = append(segments, p)
		}
	}
	return segments
}
