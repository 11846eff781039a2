// Package sid parses, formats, and validates FDSN Source Identifiers,
// the canonical channel-naming scheme used throughout the converter
// (convert) and merge (merge) packages. An identifier is a tuple of
// up to six short ASCII fields; abbreviated forms name only a
// network, a station, or a location, used when the caller does not
// need a full channel identity.
package sid

import (
	"fmt"
	"regexp"
	"strings"
)

// Prefix is the literal string every canonical rendering begins with.
// Note the trailing colon — it is part of the prefix, not a separator.
const Prefix = "FDSN:"

// Sep separates the six fields of a canonical identifier.
const Sep = "_"

// SourceID is a fully qualified six-field FDSN channel identifier.
type SourceID struct {
	Network   string
	Station   string
	Location  string
	Band      string
	Source    string
	Subsource string
}

var (
	networkRe   = regexp.MustCompile(`^[A-Z0-9]{1,8}$`)
	stationRe   = regexp.MustCompile(`^[A-Z0-9-]{1,8}$`)
	locationRe  = regexp.MustCompile(`^[A-Z0-9-]{0,8}$`)
	sourceRe    = regexp.MustCompile(`^[A-Z0-9]+$`)
	subsourceRe = regexp.MustCompile(`^[A-Z0-9]*$`)

	chanCodeRe = regexp.MustCompile(`^(.)_([A-Z0-9]+)_([A-Z0-9]*)$`)

	tempNetModernRe     = regexp.MustCompile(`^[A-Z0-9]{1,4}[0-9]{4}$`)
	tempNetHistoricalRe = regexp.MustCompile(`^[0-9XYZ][A-Z0-9][0-9]{4}$`)
	tempNetLegacyRe     = regexp.MustCompile(`^[0-9XYZ][A-Z0-9]$`)
)

// Validate checks every field against its character-class and length
// constraints, returning a descriptive error naming the first field
// that fails.
func (s SourceID) Validate() error {
	if !networkRe.MatchString(s.Network) {
		return fmt.Errorf("%w: network %q", errInvalidField, s.Network)
	}
	if !stationRe.MatchString(s.Station) {
		return fmt.Errorf("%w: station %q", errInvalidField, s.Station)
	}
	if s.Location == "--" {
		return fmt.Errorf("%w: location may not be literal \"--\"", errInvalidField)
	}
	if !locationRe.MatchString(s.Location) {
		return fmt.Errorf("%w: location %q", errInvalidField, s.Location)
	}
	if s.Band == "" || !sourceRe.MatchString(s.Band) {
		return fmt.Errorf("%w: band %q", errInvalidField, s.Band)
	}
	if s.Source == "" || !sourceRe.MatchString(s.Source) {
		return fmt.Errorf("%w: source %q", errInvalidField, s.Source)
	}
	if !subsourceRe.MatchString(s.Subsource) {
		return fmt.Errorf("%w: subsource %q", errInvalidField, s.Subsource)
	}

	return nil
}

// String renders the canonical "FDSN:" form.
func (s SourceID) String() string {
	return Prefix + strings.Join([]string{s.Network, s.Station, s.Location, s.Band, s.Source, s.Subsource}, Sep)
}

// ShortChannelCode returns the 3-character form ("BSS") when band,
// source, and subsource are each a single character, otherwise the
// abbreviated "B_SOURCE_SUBSOURCE" form.
func (s SourceID) ShortChannelCode() string {
	if len(s.Band) == 1 && len(s.Source) == 1 && len(s.Subsource) == 1 {
		return s.Band + s.Source + s.Subsource
	}

	return s.Band + Sep + s.Source + Sep + s.Subsource
}

// AsNslc returns the (network, station, location, channelCode) tuple,
// the inverse of FromNslc.
func (s SourceID) AsNslc() (net, sta, loc, chanCode string) {
	return s.Network, s.Station, s.Location, s.ShortChannelCode()
}

// NetworkID, StationID, and LocationID are the abbreviated identifier
// forms produced by Parse for 1-, 2-, and 3-segment inputs.
type (
	NetworkID struct{ Network string }

	StationID struct {
		Network string
		Station string
	}

	LocationID struct {
		Network  string
		Station  string
		Location string
	}
)

func (n NetworkID) String() string { return Prefix + n.Network }
func (s StationID) String() string { return Prefix + strings.Join([]string{s.Network, s.Station}, Sep) }
func (l LocationID) String() string {
	return Prefix + strings.Join([]string{l.Network, l.Station, l.Location}, Sep)
}

func (n NetworkID) Validate() error {
	if !networkRe.MatchString(n.Network) {
		return fmt.Errorf("%w: network %q", errInvalidField, n.Network)
	}
	return nil
}

func (s StationID) Validate() error {
	if err := (NetworkID{s.Network}).Validate(); err != nil {
		return err
	}
	if !stationRe.MatchString(s.Station) {
		return fmt.Errorf("%w: station %q", errInvalidField, s.Station)
	}
	return nil
}

func (l LocationID) Validate() error {
	if err := (StationID{l.Network, l.Station}).Validate(); err != nil {
		return err
	}
	if l.Location == "--" {
		return fmt.Errorf("%w: location may not be literal \"--\"", errInvalidField)
	}
	if !locationRe.MatchString(l.Location) {
		return fmt.Errorf("%w: location %q", errInvalidField, l.Location)
	}
	return nil
}

// Parse dispatches on the number of "_"-separated segments following
// the "FDSN:" prefix: 1 -> NetworkID, 2 -> StationID, 3 -> LocationID,
// 6 -> SourceID. Any other count is a ParseError.
func Parse(s string) (any, error) {
	rest := strings.TrimPrefix(s, Prefix)
	parts := strings.Split(rest, Sep)

	switch len(parts) {
	case 1:
		return NetworkID{parts[0]}, nil
	case 2:
		return StationID{parts[0], parts[1]}, nil
	case 3:
		return LocationID{parts[0], parts[1], parts[2]}, nil
	case 6:
		return SourceID{parts[0], parts[1], parts[2], parts[3], parts[4], parts[5]}, nil
	default:
		return nil, fmt.Errorf("%w: got %d segments in %q", errInvalidSegmentCount, len(parts), s)
	}
}

// FromNslc builds a SourceID from a classic network/station/location
// triple plus a channel code, which is either exactly three
// characters (band, source, subsource) or the abbreviated
// "B_SOURCE_SUBSOURCE" pattern.
func FromNslc(net, sta, loc, chanCode string) (SourceID, error) {
	if len(chanCode) == 3 {
		return SourceID{
			Network: net, Station: sta, Location: loc,
			Band: chanCode[0:1], Source: chanCode[1:2], Subsource: chanCode[2:3],
		}, nil
	}

	m := chanCodeRe.FindStringSubmatch(chanCode)
	if m == nil {
		return SourceID{}, fmt.Errorf("%w: %q", errInvalidNslc, chanCode)
	}

	return SourceID{
		Network: net, Station: sta, Location: loc,
		Band: m[1], Source: m[2], Subsource: m[3],
	}, nil
}

// ParseNslc splits s on sep into exactly four pieces and delegates to
// FromNslc.
func ParseNslc(s, sep string) (SourceID, error) {
	parts := strings.SplitN(s, sep, 4)
	if len(parts) != 4 {
		return SourceID{}, fmt.Errorf("%w: expected 4 fields separated by %q, got %d", errInvalidNslc, sep, len(parts))
	}

	return FromNslc(parts[0], parts[1], parts[2], parts[3])
}

// CreateUnknown builds a placeholder identifier for synthetic or test
// data, computing Band from rate via BandFromRate when rate is given.
func CreateUnknown(rate, responseLowCorner *float64, net, sta, loc, source, subsource string) SourceID {
	if net == "" {
		net = "XX"
	}
	if sta == "" {
		sta = "ABC"
	}
	if source == "" {
		source = "H"
	}
	if subsource == "" {
		subsource = "U"
	}

	var r float64
	if rate != nil {
		r = *rate
	}

	return SourceID{
		Network: net, Station: sta, Location: loc,
		Band: BandFromRate(r, responseLowCorner), Source: source, Subsource: subsource,
	}
}

// IsTemporaryNetwork reports whether net matches one of the three
// documented temporary-network conventions (modern, historical, or
// legacy 2-character SEED), excluding the reserved "XX" code.
func IsTemporaryNetwork(net string) bool {
	if net == "XX" {
		return false
	}

	return tempNetModernRe.MatchString(net) || tempNetHistoricalRe.MatchString(net) || tempNetLegacyRe.MatchString(net)
}
