package sid

import (
	_ "embed"
	"encoding/json"
	"sync"
)

//go:embed bandcode.json
var bandCodeJSON []byte

//go:embed sourcecode.json
var sourceCodeJSON []byte

// BandCodeEntry describes one row of the reference band-code table,
// loaded once from embedded JSON at first use and treated as
// immutable for the process lifetime.
type BandCodeEntry struct {
	Code                 string   `json:"code"`
	MinRate              float64  `json:"minRate"`
	MaxRate              *float64 `json:"maxRate"`
	ResponseLowCornerHz  *float64 `json:"responseLowCornerHz"`
	Broadband            bool     `json:"broadband"`
}

// SourceCodeEntry describes one row of the reference source-code
// table. The shipped table is an illustrative subset, not the full
// FDSN reference list — see DESIGN.md.
type SourceCodeEntry struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

var (
	bandTableOnce sync.Once
	bandTable     []BandCodeEntry

	sourceTableOnce sync.Once
	sourceTable     map[string]string
)

func loadBandTable() {
	bandTableOnce.Do(func() {
		_ = json.Unmarshal(bandCodeJSON, &bandTable)
	})
}

func loadSourceTable() {
	sourceTableOnce.Do(func() {
		var entries []SourceCodeEntry
		_ = json.Unmarshal(sourceCodeJSON, &entries)
		sourceTable = make(map[string]string, len(entries))
		for _, e := range entries {
			sourceTable[e.Code] = e.Description
		}
	})
}

// BandCodeInfo returns the reference table row for code, if present.
func BandCodeInfo(code string) (BandCodeEntry, bool) {
	loadBandTable()
	for _, e := range bandTable {
		if e.Code == code {
			return e, true
		}
	}

	return BandCodeEntry{}, false
}

// SourceCodeDescribe returns the human-readable description of a
// source code, or "" if the code is not in the (partial) reference
// table.
func SourceCodeDescribe(code string) string {
	loadSourceTable()
	return sourceTable[code]
}

// BandFromRate picks the single band code whose documented interval
// contains rate, matching the cascading precedence of the FDSN
// channel-codes reference table: a negative rate is interpreted as a
// sampling period and inverted first; rate == 0 maps to "I"; for the
// four ranges that have both a broadband and short-period sibling
// (1000-5000, 250-1000, 80-250, 10-80 Hz), a responseLowCorner below
// 0.1 Hz selects the broadband member.
func BandFromRate(rate float64, responseLowCornerHz *float64) string {
	r := rate
	if r < 0 {
		r = -1.0 / r
	}

	lowCorner := 0.0
	if responseLowCornerHz != nil {
		lowCorner = *responseLowCornerHz
	}
	broad := responseLowCornerHz != nil && lowCorner < 0.1

	switch {
	case r == 0:
		return "I"
	case r >= 5000:
		return "J"
	case r >= 1000:
		if broad {
			return "F"
		}
		return "G"
	case r >= 250:
		if broad {
			return "C"
		}
		return "D"
	case r >= 80:
		if broad {
			return "H"
		}
		return "E"
	case r >= 10:
		if broad {
			return "B"
		}
		return "S"
	case r > 1:
		return "M"
	case r > 0.5 && r < 1.5:
		return "L"
	case r >= 0.1 && r < 1:
		return "V"
	case r >= 0.01 && r < 0.1:
		return "U"
	case r >= 0.001 && r < 0.01:
		return "W"
	case r >= 0.0001 && r < 0.001:
		return "R"
	case r >= 0.00001 && r < 0.0001:
		return "P"
	case r >= 0.000001 && r < 0.00001:
		return "T"
	default:
		return "Q"
	}
}
