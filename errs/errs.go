// Package errs collects the sentinel error values shared across the
// mseed packages. Every fixed, enumerable failure mode gets a package
// level value here so callers can test with errors.Is regardless of
// which package produced the wrapped error.
package errs

import "errors"

// Byte primitive / CRC errors (C1).
var (
	ErrShortBuffer = errors.New("mseed: buffer too short for requested read")
)

// Source Identifier errors (C2).
var (
	ErrInvalidSegmentCount = errors.New("mseed: unexpected number of identifier segments")
	ErrInvalidField        = errors.New("mseed: identifier field fails validation")
	ErrInvalidNslc         = errors.New("mseed: channel code is neither 3 chars nor B_SOURCE_SUBSOURCE")
)

// Steim frame/codec errors (C3, C4).
var (
	ErrBadLength     = errors.New("mseed: steim payload length is not a positive multiple of 64")
	ErrBadNibble     = errors.New("mseed: W0 nibble code is invalid for this frame position")
	ErrBadDnib       = errors.New("mseed: steim2 d-nibble sub-code is invalid")
	ErrShortPayload  = errors.New("mseed: steim decode produced fewer samples than declared")
	ErrCountMismatch = errors.New("mseed: steim decode produced a sample count mismatch")

	ErrEmptyInput       = errors.New("mseed: steim encoder received an empty sample slice")
	ErrNegativeFrameCap = errors.New("mseed: steim encoder frame cap must not be negative")
	ErrOffsetOutOfRange = errors.New("mseed: steim encoder offset is out of range")
	ErrValueTooWide     = errors.New("mseed: difference requires more than 30 bits to encode")
)

// Primitive codec errors (C5).
var (
	ErrUnsupportedEncoding = errors.New("mseed: unsupported or unimplemented payload encoding")
	ErrUndersizedPayload   = errors.New("mseed: payload is shorter than numSamples requires")
)

// miniSEED-3 record errors (C6).
var (
	ErrBadMagic          = errors.New("mseed: fixed header does not start with 'MS'")
	ErrBadFormatVersion  = errors.New("mseed: format version is not 3")
	ErrCrcMismatch       = errors.New("mseed: declared CRC-32C does not match computed CRC-32C")
	ErrHeaderTooShort    = errors.New("mseed: fixed header shorter than 40 bytes")
	ErrRecordTruncated   = errors.New("mseed: record ends before identifier/extra-headers/payload are fully read")
	ErrInvalidSanityCheck = errors.New("mseed: header field fails sanity check (year/day/hour/min/sec out of range)")
)

// miniSEED-2 record errors (C7).
var (
	ErrAmbiguousByteOrder  = errors.New("mseed: cannot determine v2 record byte order from year bytes")
	ErrMissingBlockette1000 = errors.New("mseed: required blockette 1000 is absent")
	ErrBadBlocketteChain   = errors.New("mseed: blockette chain offsets do not strictly increase")
	ErrBadRecordLength     = errors.New("mseed: blockette 1000 record length exponent out of 256..4096 range")
)

// v2->v3 converter errors (C8).
var (
	ErrConvertMissingB1000 = errors.New("mseed: v2 record has no blockette 1000, cannot convert")
)

// merge errors (C9) are not fatal; merge returns a slice, not an error,
// but ErrIncompatibleEncoding documents why Steim inputs are rejected.
var (
	ErrIncompatibleEncoding = errors.New("mseed: only primitive encodings (0..5) may be merged directly")
)

// streaming reader errors (C10).
var (
	ErrBadIdentifierFilter = errors.New("mseed: identifier filter regex failed to compile")
)
