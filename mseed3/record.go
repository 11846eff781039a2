package mseed3

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/seisgo/mseed/codec"
	"github.com/seisgo/mseed/crc32c"
	"github.com/seisgo/mseed/endian"
	"github.com/seisgo/mseed/errs"
	"github.com/seisgo/mseed/format"
	"github.com/seisgo/mseed/sid"
	"github.com/seisgo/mseed/steim"
)

// Record is a parsed or constructed miniSEED-3 record: a fixed
// header, an identifier string, optional extra headers, and a sample
// payload. A Record is immutable after Pack except through an
// explicit Clone — mirroring the teacher lineage's cloneHeader()
// pattern — followed by field mutation and re-pack.
type Record struct {
	Header       Header
	Identifier   string
	ExtraHeaders *ExtraHeaders
	Payload      []byte
}

type recordConfig struct {
	extraHeaders *ExtraHeaders
}

// RecordOption configures NewRecord.
type RecordOption func(*recordConfig)

// WithExtraHeaders attaches an extra-headers blob to a newly
// constructed record.
func WithExtraHeaders(eh *ExtraHeaders) RecordOption {
	return func(c *recordConfig) { c.extraHeaders = eh }
}

// NewRecord constructs a record from an identifier, a filled-in
// Header (everything except the length/CRC fields Pack computes), and
// already-encoded payload bytes. The caller is responsible for
// Header.PayloadEncoding matching how payload was produced.
func NewRecord(identifier string, header Header, payload []byte, opts ...RecordOption) (*Record, error) {
	var cfg recordConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := validateIdentifier(identifier); err != nil {
		return nil, err
	}

	eh := cfg.extraHeaders
	if eh == nil {
		eh = NewExtraHeaders(nil)
	}

	return &Record{
		Header:       header,
		Identifier:   identifier,
		ExtraHeaders: eh,
		Payload:      payload,
	}, nil
}

// NewHeader builds a Header from a start time and sample rate/period
// (positive Hz, or negative to mean a period in seconds per §4.6),
// leaving length/CRC fields to be filled by Pack.
func NewHeader(start time.Time, sampleRatePeriod float64, numSamples int, encoding format.Encoding) Header {
	year, doy, hour, minute, second, nanosecond := headerTimeFields(start)

	return Header{
		Nanosecond:       nanosecond,
		Year:             year,
		DayOfYear:        doy,
		Hour:             hour,
		Minute:           minute,
		Second:           second,
		PayloadEncoding:  encoding,
		SampleRatePeriod: sampleRatePeriod,
		NumSamples:       uint32(numSamples), //nolint:gosec
	}
}

// validateIdentifier checks identifier against the Source Identifier
// rules when it carries the "FDSN:" prefix, per §3's "The identifier,
// when it begins with FDSN:, must pass validation."
func validateIdentifier(identifier string) error {
	if len(identifier) < len(sid.Prefix) || identifier[:len(sid.Prefix)] != sid.Prefix {
		return nil
	}

	parsed, err := sid.Parse(identifier)
	if err != nil {
		return err
	}

	switch v := parsed.(type) {
	case sid.SourceID:
		return v.Validate()
	case sid.LocationID:
		return v.Validate()
	case sid.StationID:
		return v.Validate()
	case sid.NetworkID:
		return v.Validate()
	default:
		return nil
	}
}

// Clone returns a deep copy of the record (including a copy of the
// payload and extra-headers bytes) so a caller may mutate fields and
// re-pack without affecting the original.
func (r *Record) Clone() *Record {
	payload := make([]byte, len(r.Payload))
	copy(payload, r.Payload)

	var eh *ExtraHeaders
	if r.ExtraHeaders != nil {
		raw := make([]byte, len(r.ExtraHeaders.Raw))
		copy(raw, r.ExtraHeaders.Raw)
		eh = NewExtraHeaders(raw)
	} else {
		eh = NewExtraHeaders(nil)
	}

	return &Record{
		Header:       r.Header,
		Identifier:   r.Identifier,
		ExtraHeaders: eh,
		Payload:      payload,
	}
}

// Pack serializes the record: fixed header (CRC zeroed) + identifier
// + extra headers + payload, then computes the CRC-32C over the whole
// byte sequence and rewrites bytes 28:32 with it.
func (r *Record) Pack() ([]byte, error) {
	idBytes := []byte(r.Identifier)
	if len(idBytes) > 255 {
		return nil, fmt.Errorf("mseed3: identifier %q exceeds 255 bytes", r.Identifier)
	}

	ehRaw := r.ExtraHeaders.Raw
	if len(ehRaw) > 65535 {
		return nil, fmt.Errorf("mseed3: extra headers exceed 65535 bytes")
	}

	h := r.Header
	h.IdentifierLength = uint8(len(idBytes))     //nolint:gosec
	h.ExtraHeadersLength = uint16(len(ehRaw))    //nolint:gosec
	h.DataLength = uint32(len(r.Payload))        //nolint:gosec
	h.CRC32C = 0

	buf := make([]byte, 0, HeaderSize+len(idBytes)+len(ehRaw)+len(r.Payload))
	buf = append(buf, h.encode()...)
	buf = append(buf, idBytes...)
	buf = append(buf, ehRaw...)
	buf = append(buf, r.Payload...)

	crc := crc32c.Checksum(buf)
	binary.LittleEndian.PutUint32(buf[28:32], crc)

	return buf, nil
}

type parseConfig struct {
	verifyCRC bool
}

// ParseOption configures Parse.
type ParseOption func(*parseConfig)

// WithoutCRCVerification disables the CRC-32C check Parse performs by
// default, per §7's "CRC verification is opt-out at the reader
// level."
func WithoutCRCVerification() ParseOption {
	return func(c *parseConfig) { c.verifyCRC = false }
}

// Parse decodes a single miniSEED-3 record from data, which must
// contain at least as many bytes as the header declares (40 +
// identifierLength + extraHeadersLength + dataLength); trailing bytes
// are ignored, letting a caller pass a larger buffer.
func Parse(data []byte, opts ...ParseOption) (*Record, error) {
	cfg := parseConfig{verifyCRC: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	h, err := decodeHeader(data)
	if err != nil {
		return nil, err
	}

	total := HeaderSize + int(h.IdentifierLength) + int(h.ExtraHeadersLength) + int(h.DataLength)
	if len(data) < total {
		return nil, errs.ErrRecordTruncated
	}

	if err := h.Validate(); err != nil {
		return nil, err
	}

	if cfg.verifyCRC {
		crcBuf := make([]byte, total)
		copy(crcBuf, data[:total])
		crcBuf[28], crcBuf[29], crcBuf[30], crcBuf[31] = 0, 0, 0, 0

		if computed := crc32c.Checksum(crcBuf); computed != h.CRC32C {
			return nil, errs.ErrCrcMismatch
		}
	}

	idStart := HeaderSize
	idEnd := idStart + int(h.IdentifierLength)
	ehEnd := idEnd + int(h.ExtraHeadersLength)
	dataEnd := ehEnd + int(h.DataLength)

	identifier := string(data[idStart:idEnd])
	if err := validateIdentifier(identifier); err != nil {
		return nil, err
	}

	ehRaw := make([]byte, h.ExtraHeadersLength)
	copy(ehRaw, data[idEnd:ehEnd])

	payload := make([]byte, h.DataLength)
	copy(payload, data[ehEnd:dataEnd])

	return &Record{
		Header:       h,
		Identifier:   identifier,
		ExtraHeaders: NewExtraHeaders(ehRaw),
		Payload:      payload,
	}, nil
}

// Samples decodes the record's payload into signed 32-bit samples,
// dispatching to the steim package for Steim1/Steim2 and to codec for
// every primitive encoding. bias is the Steim carry-in X(-1) from a
// preceding record; pass 0 when decoding in isolation.
func (r *Record) Samples(bias int32) ([]int32, error) {
	switch r.Header.PayloadEncoding {
	case format.EncodingSteim1:
		return steim.DecodeSteim1(r.Payload, int(r.Header.NumSamples), bias)
	case format.EncodingSteim2:
		return steim.DecodeSteim2(r.Payload, int(r.Header.NumSamples), bias)
	default:
		return codec.Decode(r.Header.PayloadEncoding, r.Payload, int(r.Header.NumSamples), endian.GetLittleEndianEngine())
	}
}

// NewSteimRecord builds a record whose payload is Steim1- or
// Steim2-encoded from samples. frameCap limits the number of Steim
// frames encoded (0 means unlimited, the typical value, since
// miniSEED-3 has no such cap); bias is the carry-in from a preceding
// record in the same stream.
func NewSteimRecord(identifier string, start time.Time, sampleRatePeriod float64, samples []int32, variant steim.Variant, frameCap int, bias int32, opts ...RecordOption) (*Record, int, error) {
	var payload []byte
	var consumed int
	var err error

	var encoding format.Encoding
	switch variant {
	case steim.Steim1:
		encoding = format.EncodingSteim1
		payload, consumed, err = steim.EncodeSteim1(samples, frameCap, bias)
	case steim.Steim2:
		encoding = format.EncodingSteim2
		payload, consumed, err = steim.EncodeSteim2(samples, frameCap, bias)
	default:
		return nil, 0, fmt.Errorf("mseed3: unknown steim variant %d", variant)
	}
	if err != nil {
		return nil, 0, err
	}

	header := NewHeader(start, sampleRatePeriod, consumed, encoding)

	rec, err := NewRecord(identifier, header, payload, opts...)
	if err != nil {
		return nil, 0, err
	}

	return rec, consumed, nil
}

// NewPrimitiveRecord builds a record whose payload is encoded with one
// of the fixed-width primitive codes (int16, int32, float32, float64).
func NewPrimitiveRecord(identifier string, start time.Time, sampleRatePeriod float64, samples []int32, encoding format.Encoding, opts ...RecordOption) (*Record, error) {
	payload, err := codec.Encode(encoding, samples, endian.GetLittleEndianEngine())
	if err != nil {
		return nil, err
	}

	header := NewHeader(start, sampleRatePeriod, len(samples), encoding)

	return NewRecord(identifier, header, payload, opts...)
}
