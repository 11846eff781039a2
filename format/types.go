// Package format defines the small wire-level enumerations shared by
// the codec, mseed2, and mseed3 packages: the payload encoding code
// that both record containers carry in their fixed header.
package format

// Encoding identifies how a record's payload bytes represent samples.
// The numeric values match the codes miniSEED records carry on the
// wire, not an internal convenience ordering.
type Encoding uint8

const (
	EncodingText    Encoding = 0  // opaque/ASCII bytes, one byte per sample
	EncodingInt16   Encoding = 1  // two's-complement int16
	EncodingInt24   Encoding = 2  // three-byte signed integer (not implemented)
	EncodingInt32   Encoding = 3  // two's-complement int32
	EncodingFloat32 Encoding = 4  // IEEE-754 single precision
	EncodingFloat64 Encoding = 5  // IEEE-754 double precision
	EncodingCDSN    Encoding = 16 // CDSN gain-ranged (not implemented)
	EncodingSRO     Encoding = 30 // SRO gain-ranged (not implemented)
	EncodingSteim1  Encoding = 10 // Steim1 differential compression
	EncodingSteim2  Encoding = 11 // Steim2 differential compression
	EncodingSteim3  Encoding = 19 // Steim3, explicitly out of scope
	EncodingDWWSSN  Encoding = 32 // DWWSSN gain-ranged, decodes as int16
)

// String returns the FDSN name of the encoding code, or "Unknown" for
// a code this module does not recognize.
func (e Encoding) String() string {
	switch e {
	case EncodingText:
		return "Text"
	case EncodingInt16:
		return "INT16"
	case EncodingInt24:
		return "INT24"
	case EncodingInt32:
		return "INT32"
	case EncodingFloat32:
		return "FLOAT32"
	case EncodingFloat64:
		return "FLOAT64"
	case EncodingCDSN:
		return "CDSN"
	case EncodingSRO:
		return "SRO"
	case EncodingSteim1:
		return "STEIM1"
	case EncodingSteim2:
		return "STEIM2"
	case EncodingSteim3:
		return "STEIM3"
	case EncodingDWWSSN:
		return "DWWSSN"
	default:
		return "Unknown"
	}
}

// IsPrimitive reports whether e is one of the fixed-width primitive
// codes (0..5) eligible for direct concatenation during a merge (C9).
func (e Encoding) IsPrimitive() bool {
	return e <= EncodingFloat64
}

// IsSteim reports whether e is a Steim differential encoding this
// module implements (Steim1 or Steim2; Steim3 is a documented
// non-goal and reports false here).
func (e Encoding) IsSteim() bool {
	return e == EncodingSteim1 || e == EncodingSteim2
}

// CompressionType identifies the secondary compression codec applied
// to an auxiliary blob (the extra-headers JSON or a sidecar index),
// distinct from the payload sample encoding above.
type CompressionType uint8

const (
	CompressionNone CompressionType = 0
	CompressionZstd CompressionType = 1
	CompressionLZ4  CompressionType = 2
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
