// Package mseed3 implements the miniSEED-3 record container (C6): a
// 40-byte little-endian fixed header, a variable-length identifier, a
// JSON-like extra-headers blob, and a sample payload, sealed with a
// CRC-32C computed over the whole record with the CRC field zeroed.
package mseed3

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/seisgo/mseed/errs"
	"github.com/seisgo/mseed/format"
)

// HeaderSize is the fixed-header length in bytes.
const HeaderSize = 40

// magic is the two-byte record marker at offset 0.
var magic = [2]byte{'M', 'S'}

// FormatVersion is the only format version this module parses.
const FormatVersion = 3

// Flag bits at header offset 3, named per the FDSN miniSEED-3
// technical specification; bits 3-7 are reserved and preserved
// verbatim across parse/pack.
const (
	FlagCalibration      uint8 = 1 << 0
	FlagTimeQuestionable uint8 = 1 << 1
	FlagClockLocked      uint8 = 1 << 2
)

// Header is the fixed 40-byte miniSEED-3 record header.
type Header struct {
	Flags              uint8
	Nanosecond         uint32
	Year               uint16
	DayOfYear          uint16
	Hour               uint8
	Minute             uint8
	Second             uint8
	PayloadEncoding    format.Encoding
	SampleRatePeriod   float64
	NumSamples         uint32
	CRC32C             uint32
	PublicationVersion uint8
	IdentifierLength   uint8
	ExtraHeadersLength uint16
	DataLength         uint32
}

// SampleRate returns the sample rate in Hz: SampleRatePeriod directly
// when non-negative, or its reciprocal when SampleRatePeriod encodes a
// period (negative convention, per §4.6).
func (h Header) SampleRate() float64 {
	if h.SampleRatePeriod >= 0 {
		return h.SampleRatePeriod
	}

	return -1 / h.SampleRatePeriod
}

// SamplePeriod returns the sample period in seconds, the inverse of
// SampleRate.
func (h Header) SamplePeriod() float64 {
	if h.SampleRatePeriod >= 0 {
		return 1 / h.SampleRatePeriod
	}

	return -h.SampleRatePeriod
}

// StartTime returns the UTC instant described by the five time fields.
func (h Header) StartTime() time.Time {
	sec := int(h.Second)
	leap := sec == 60
	if leap {
		sec = 59
	}

	t := time.Date(int(h.Year), time.January, int(h.DayOfYear), int(h.Hour), int(h.Minute), sec, int(h.Nanosecond), time.UTC)
	if leap {
		t = t.Add(time.Second)
	}

	return t
}

// EndTime returns StartTime plus SamplePeriod*(NumSamples-1), the
// instant of the last sample in the record.
func (h Header) EndTime() time.Time {
	if h.NumSamples == 0 {
		return h.StartTime()
	}

	offset := h.SamplePeriod() * float64(h.NumSamples-1)

	return h.StartTime().Add(time.Duration(offset * float64(time.Second)))
}

// Validate runs the sanity checks described in §4.6/§4.8's leap-second
// note: day-of-year/hour/minute/second/nanosecond ranges (the year is
// not checked), allowing Second ==
// 60 exactly once (a leap second), matching the source's sanityCheck.
func (h Header) Validate() error {
	if h.DayOfYear < 1 || h.DayOfYear > 366 {
		return fmt.Errorf("%w: day of year %d out of range", errs.ErrInvalidSanityCheck, h.DayOfYear)
	}
	if h.Hour > 23 {
		return fmt.Errorf("%w: hour %d out of range", errs.ErrInvalidSanityCheck, h.Hour)
	}
	if h.Minute > 59 {
		return fmt.Errorf("%w: minute %d out of range", errs.ErrInvalidSanityCheck, h.Minute)
	}
	if h.Second > 60 {
		return fmt.Errorf("%w: second %d out of range", errs.ErrInvalidSanityCheck, h.Second)
	}
	if h.Nanosecond >= 1_000_000_000 {
		return fmt.Errorf("%w: nanosecond %d out of range", errs.ErrInvalidSanityCheck, h.Nanosecond)
	}

	return nil
}

// headerTimeFields returns the header time fields of t, converted to
// UTC.
func headerTimeFields(t time.Time) (year, dayOfYear uint16, hour, minute, second uint8, nanosecond uint32) {
	t = t.UTC()

	return uint16(t.Year()), uint16(t.YearDay()), uint8(t.Hour()), uint8(t.Minute()), uint8(t.Second()), uint32(t.Nanosecond()) //nolint:gosec
}

// encode serializes the fixed header into a freshly allocated
// HeaderSize-byte slice with the CRC field zeroed; pack() rewrites
// bytes 28:32 once the whole record's CRC is known.
func (h Header) encode() []byte {
	buf := make([]byte, HeaderSize)
	buf[0], buf[1] = magic[0], magic[1]
	buf[2] = FormatVersion
	buf[3] = h.Flags
	binary.LittleEndian.PutUint32(buf[4:8], h.Nanosecond)
	binary.LittleEndian.PutUint16(buf[8:10], h.Year)
	binary.LittleEndian.PutUint16(buf[10:12], h.DayOfYear)
	buf[12] = h.Hour
	buf[13] = h.Minute
	buf[14] = h.Second
	buf[15] = uint8(h.PayloadEncoding)
	binary.LittleEndian.PutUint64(buf[16:24], math.Float64bits(h.SampleRatePeriod))
	binary.LittleEndian.PutUint32(buf[24:28], h.NumSamples)
	// buf[28:32] (CRC) left zero here.
	buf[32] = h.PublicationVersion
	buf[33] = h.IdentifierLength
	binary.LittleEndian.PutUint16(buf[34:36], h.ExtraHeadersLength)
	binary.LittleEndian.PutUint32(buf[36:40], h.DataLength)

	return buf
}

// decodeHeader parses the fixed 40-byte header from buf.
func decodeHeader(buf []byte) (Header, error) {
	if len(buf) < HeaderSize {
		return Header{}, errs.ErrHeaderTooShort
	}
	if buf[0] != magic[0] || buf[1] != magic[1] {
		return Header{}, errs.ErrBadMagic
	}
	if buf[2] != FormatVersion {
		return Header{}, errs.ErrBadFormatVersion
	}

	h := Header{
		Flags:              buf[3],
		Nanosecond:         binary.LittleEndian.Uint32(buf[4:8]),
		Year:               binary.LittleEndian.Uint16(buf[8:10]),
		DayOfYear:          binary.LittleEndian.Uint16(buf[10:12]),
		Hour:               buf[12],
		Minute:             buf[13],
		Second:             buf[14],
		PayloadEncoding:    format.Encoding(buf[15]),
		SampleRatePeriod:   math.Float64frombits(binary.LittleEndian.Uint64(buf[16:24])),
		NumSamples:         binary.LittleEndian.Uint32(buf[24:28]),
		CRC32C:             binary.LittleEndian.Uint32(buf[28:32]),
		PublicationVersion: buf[32],
		IdentifierLength:   buf[33],
		ExtraHeadersLength: binary.LittleEndian.Uint16(buf[34:36]),
		DataLength:         binary.LittleEndian.Uint32(buf[36:40]),
	}

	return h, nil
}
