package baplie

import (
	"strconv"
	"strings"
)

// Direction is the operation an import describes, seen from the terminal.
type Direction string

const (
	Load      Direction = "LOAD"
	Discharge Direction = "DISCHARGE"
)

// ParseDirection validates a raw operation type string.
func ParseDirection(s string) (Direction, bool) {
	switch Direction(s) {
	case Load, Discharge:
		return Direction(s), true
	default:
		return "", false
	}
}

// portQualifier is the LOC qualifier that carries the relevant port for
// one direction: 9 marks the load port, 11 the discharge port.
func (d Direction) portQualifier() string {
	if d == Load {
		return "9"
	}
	return "11"
}

// StowageRecord is the parse output for one container. Bay, Row and Tier
// are nil when the manifest carried no usable position code.
type StowageRecord struct {
	ContainerNo string
	ISOType     string
	Bay         *int
	Row         *int
	Tier        *int
	WeightKg    *float64
}

// HasPosition reports whether the record carries a full bay/row/tier
// position. Records without one are useless for stowage mapping and are
// dropped before persistence.
func (r StowageRecord) HasPosition() bool {
	return r.Bay != nil && r.Row != nil && r.Tier != nil
}

// ParseOptions configures one parse invocation. A non-empty PortCode
// enables filter mode: only records whose port marker (LOC qualifier 9 or
// 11, depending on Direction) names that port are emitted.
type ParseOptions struct {
	Direction Direction
	PortCode  string
}

// building is the single mutable record slot the parser walks across the
// segment sequence. It is local to one Parse call so concurrent parses
// cannot interfere.
type building struct {
	rec     StowageRecord
	matched bool
}

// Parse runs the BAPLIE state machine over the manifest text and returns
// the stowage records in container order of first appearance. It never
// fails: malformed segments are skipped and unusable records are dropped.
func Parse(text string, opts ParseOptions) []StowageRecord {
	qualifier := opts.Direction.portQualifier()
	filtering := opts.PortCode != ""

	var records []StowageRecord
	var cur *building

	finalize := func() {
		if cur == nil {
			return
		}
		if cur.rec.ContainerNo != "" && (!filtering || cur.matched) {
			records = append(records, cur.rec)
		}
		cur = nil
	}

	for _, seg := range Tokenize(text) {
		elements := strings.Split(seg, "+")

		switch {
		case len(elements) >= 3 && elements[0] == "EQD" && elements[1] == "CN":
			finalize()
			cur = &building{rec: StowageRecord{
				ContainerNo: componentValue(elements[2]),
			}}
			if len(elements) >= 4 {
				cur.rec.ISOType = componentValue(elements[3])
			}

		case cur != nil && len(elements) >= 3 && elements[0] == "LOC" && elements[1] == "147":
			// Fixed-width position code: 3 digit bay, 2 digit row, 2 digit
			// tier. Shorter codes leave the position unset.
			pos := componentValue(elements[2])
			if len(pos) >= 7 {
				cur.rec.Bay = parseDigits(pos[0:3])
				cur.rec.Row = parseDigits(pos[3:5])
				cur.rec.Tier = parseDigits(pos[5:7])
			}

		case cur != nil && len(elements) >= 3 && elements[0] == "LOC" && elements[1] == qualifier:
			if filtering && componentValue(elements[2]) == opts.PortCode {
				cur.matched = true
			}

		case cur != nil && len(elements) >= 4 && elements[0] == "MEA" && elements[1] == "AAE":
			// MEA+AAE+G+KGM:<weight> gross weight in kilograms.
			comp := strings.SplitN(elements[3], ":", 2)
			if len(comp) == 2 && comp[0] == "KGM" {
				if w, err := strconv.ParseFloat(comp[1], 64); err == nil {
					cur.rec.WeightKg = &w
				}
			}
		}
	}

	finalize()
	return records
}

// componentValue strips any trailing composite components from a data
// element, keeping only the first component.
func componentValue(element string) string {
	return strings.SplitN(element, ":", 2)[0]
}

// parseDigits parses a non-negative base-10 integer, nil on failure.
func parseDigits(s string) *int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return nil
	}
	return &n
}
