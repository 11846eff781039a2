// Package mseed2 implements the miniSEED-2 record container (C7): a
// fixed 48-byte header in either byte order, followed by a linked
// chain of blockettes, followed by the sample payload at the offset
// the header declares.
package mseed2

import (
	"github.com/seisgo/mseed/endian"
	"github.com/seisgo/mseed/errs"
)

// HeaderSize is the fixed-header length in bytes.
const HeaderSize = 48

// BTime is the ten-byte v2 timestamp tuple: year, day-of-year,
// hour/minute/second, and tenths of a millisecond.
type BTime struct {
	Year       uint16
	DayOfYear  uint16
	Hour       uint8
	Minute     uint8
	Second     uint8
	TenthMilli uint16
}

func decodeBTime(buf []byte, engine endian.EndianEngine) BTime {
	return BTime{
		Year:       engine.Uint16(buf[0:2]),
		DayOfYear:  engine.Uint16(buf[2:4]),
		Hour:       buf[4],
		Minute:     buf[5],
		Second:     buf[6],
		TenthMilli: engine.Uint16(buf[8:10]),
	}
}

func (b BTime) encode(buf []byte, engine endian.EndianEngine) {
	engine.PutUint16(buf[0:2], b.Year)
	engine.PutUint16(buf[2:4], b.DayOfYear)
	buf[4] = b.Hour
	buf[5] = b.Minute
	buf[6] = b.Second
	buf[7] = 0
	engine.PutUint16(buf[8:10], b.TenthMilli)
}

// Header is the fixed 48-byte miniSEED-2 record header. ByteOrder
// records which order the header was read in (or is to be written in)
// and is not itself part of the on-wire bytes.
type Header struct {
	ByteOrder          endian.EndianEngine
	SequenceNumber     [6]byte
	DataQualityChar    byte
	Station            string
	Location           string
	Channel            string
	Network             string
	StartTime          BTime
	NumSamples         uint16
	SampleRateFactor   int16
	SampleRateMult     int16
	ActivityFlags      uint8
	IOClockFlags       uint8
	DataQualityFlags   uint8
	NumBlockettes      uint8
	TimeCorrection     int32
	DataOffset         uint16
	FirstBlocketteOffset uint16
}

// detectByteOrder applies the year-byte heuristic from §4.7: a
// plausible SEED year starts with 0x07 or 0x08 in its high byte.
// When only one candidate order produces a plausible year, that order
// wins; when both or neither do, the order is ambiguous.
func detectByteOrder(buf []byte) (endian.EndianEngine, error) {
	if len(buf) < HeaderSize {
		return nil, errs.ErrHeaderTooShort
	}

	yearBytes := buf[20:22]
	bePlausible := plausibleYearHighByte(yearBytes[0])
	lePlausible := plausibleYearHighByte(yearBytes[1])

	switch {
	case bePlausible && !lePlausible:
		return endian.GetBigEndianEngine(), nil
	case lePlausible && !bePlausible:
		return endian.GetLittleEndianEngine(), nil
	default:
		return nil, errs.ErrAmbiguousByteOrder
	}
}

func plausibleYearHighByte(b byte) bool {
	return b == 0x07 || b == 0x08
}

// decodeHeader parses the fixed 48-byte header from buf, auto
// detecting byte order from the year field.
func decodeHeader(buf []byte) (Header, error) {
	if len(buf) < HeaderSize {
		return Header{}, errs.ErrHeaderTooShort
	}

	engine, err := detectByteOrder(buf)
	if err != nil {
		return Header{}, err
	}

	h := Header{
		ByteOrder:            engine,
		DataQualityChar:      buf[6],
		Station:              trimFixed(buf[8:13]),
		Location:             trimFixed(buf[13:15]),
		Channel:              trimFixed(buf[15:18]),
		Network:              trimFixed(buf[18:20]),
		StartTime:            decodeBTime(buf[20:30], engine),
		NumSamples:           engine.Uint16(buf[30:32]),
		SampleRateFactor:     int16(engine.Uint16(buf[32:34])), //nolint:gosec
		SampleRateMult:       int16(engine.Uint16(buf[34:36])), //nolint:gosec
		ActivityFlags:        buf[36],
		IOClockFlags:         buf[37],
		DataQualityFlags:     buf[38],
		NumBlockettes:        buf[39],
		TimeCorrection:       int32(engine.Uint32(buf[40:44])), //nolint:gosec
		DataOffset:           engine.Uint16(buf[44:46]),
		FirstBlocketteOffset: engine.Uint16(buf[46:48]),
	}
	copy(h.SequenceNumber[:], buf[0:6])

	return h, nil
}

// encode serializes the fixed header in h.ByteOrder, defaulting to
// big-endian (the SEED network convention) when ByteOrder is nil.
func (h Header) encode() []byte {
	engine := h.ByteOrder
	if engine == nil {
		engine = endian.GetBigEndianEngine()
	}

	buf := make([]byte, HeaderSize)
	copy(buf[0:6], h.SequenceNumber[:])
	buf[6] = h.DataQualityChar
	buf[7] = ' '
	copyFixed(buf[8:13], h.Station)
	copyFixed(buf[13:15], h.Location)
	copyFixed(buf[15:18], h.Channel)
	copyFixed(buf[18:20], h.Network)
	h.StartTime.encode(buf[20:30], engine)
	engine.PutUint16(buf[30:32], h.NumSamples)
	engine.PutUint16(buf[32:34], uint16(h.SampleRateFactor)) //nolint:gosec
	engine.PutUint16(buf[34:36], uint16(h.SampleRateMult))   //nolint:gosec
	buf[36] = h.ActivityFlags
	buf[37] = h.IOClockFlags
	buf[38] = h.DataQualityFlags
	buf[39] = h.NumBlockettes
	engine.PutUint32(buf[40:44], uint32(h.TimeCorrection)) //nolint:gosec
	engine.PutUint16(buf[44:46], h.DataOffset)
	engine.PutUint16(buf[46:48], h.FirstBlocketteOffset)

	return buf
}

// trimFixed trims trailing ASCII spaces from a fixed-width SEED text
// field.
func trimFixed(b []byte) string {
	end := len(b)
	for end > 0 && (b[end-1] == ' ' || b[end-1] == 0) {
		end--
	}

	return string(b[:end])
}

// copyFixed writes s left-justified into dst, space-padding the
// remainder; s longer than dst is truncated.
func copyFixed(dst []byte, s string) {
	for i := range dst {
		dst[i] = ' '
	}
	copy(dst, s)
}

// SampleRate returns the sample rate in Hz computed from the
// factor/multiplier pair per the SEED convention: a positive factor is
// samples/second directly, a negative factor is its reciprocal period;
// the multiplier applies the same sign convention on top.
func (h Header) SampleRate() float64 {
	rate := 1.0
	if h.SampleRateFactor > 0 {
		rate *= float64(h.SampleRateFactor)
	} else if h.SampleRateFactor < 0 {
		rate /= -float64(h.SampleRateFactor)
	}
	if h.SampleRateMult > 0 {
		rate *= float64(h.SampleRateMult)
	} else if h.SampleRateMult < 0 {
		rate /= -float64(h.SampleRateMult)
	}

	return rate
}

// factorMultiplierFromRate computes a (factor, multiplier) pair that
// reproduces rate via the SEED sign convention, used when packing a
// record whose rate was set directly (e.g. by a B100 override) and the
// legacy factor/multiplier fields are still zero. Only a rate that is
// a whole number of Hz, or whose period is a whole number of seconds,
// within int16 range, gets a pair; any other rate returns (0, 0).
func factorMultiplierFromRate(rate float64) (int16, int16) {
	if rate <= 0 {
		return 0, 0
	}
	if rate >= 1 {
		if rate == float64(int16(rate)) {
			return int16(rate), 1 //nolint:gosec
		}

		return 0, 0
	}

	period := 1 / rate
	if period == float64(int16(period)) {
		return -int16(period), 1 //nolint:gosec
	}

	return 0, 0
}
