// Package codec implements the fixed-width primitive sample encodings
// (C5): int16, int32, float32, float64, plus passthrough handling for
// the text/opaque and DWWSSN codes, and delegation to the steim
// package for the two differential codes. Every codec is a small
// struct satisfying Encoder/Decoder, registered in a package-level
// dispatch table, mirroring the teacher lineage's Codec-interface-
// plus-factory convention (auxblob.CreateCodec/GetCodec).
package codec

import (
	"fmt"

	"github.com/seisgo/mseed/endian"
	"github.com/seisgo/mseed/errs"
	"github.com/seisgo/mseed/format"
)

// Decoder decodes numSamples samples from data, returning them as
// int32 regardless of the on-wire width (widening is lossless for
// every primitive code this module supports; Steim already produces
// int32 natively).
type Decoder interface {
	Decode(data []byte, numSamples int, engine endian.EndianEngine) ([]int32, error)
}

// Encoder encodes an int32 sample sequence into on-wire bytes.
type Encoder interface {
	Encode(samples []int32, engine endian.EndianEngine) ([]byte, error)
}

// Codec combines both directions for one payload encoding code.
type Codec interface {
	Decoder
	Encoder
}

var registry = map[format.Encoding]Codec{
	format.EncodingText:    textCodec{},
	format.EncodingInt16:   int16Codec{},
	format.EncodingInt32:   int32Codec{},
	format.EncodingFloat32: float32Codec{},
	format.EncodingFloat64: float64Codec{},
	format.EncodingDWWSSN:  int16Codec{}, // DWWSSN decodes as plain int16, per spec §4.5
}

// GetCodec returns the registered Codec for encoding, or
// ErrUnsupportedEncoding for Steim (handled separately by the steim
// package, not through this registry) or any unrecognized code.
func GetCodec(encoding format.Encoding) (Codec, error) {
	if c, ok := registry[encoding]; ok {
		return c, nil
	}

	return nil, fmt.Errorf("codec: %s: %w", encoding, errs.ErrUnsupportedEncoding)
}

// Decode decodes numSamples samples of the given encoding from data.
// numSamples == 0 always yields an empty, non-nil slice, even for an
// encoding this module cannot otherwise decode (a record may declare
// a payload encoding while carrying zero samples).
func Decode(encoding format.Encoding, data []byte, numSamples int, engine endian.EndianEngine) ([]int32, error) {
	if numSamples == 0 {
		return []int32{}, nil
	}

	c, err := GetCodec(encoding)
	if err != nil {
		return nil, err
	}

	return c.Decode(data, numSamples, engine)
}

// Encode encodes samples using the given encoding.
func Encode(encoding format.Encoding, samples []int32, engine endian.EndianEngine) ([]byte, error) {
	c, err := GetCodec(encoding)
	if err != nil {
		return nil, err
	}

	return c.Encode(samples, engine)
}

// BytesPerSample returns the fixed per-sample byte width of a
// primitive encoding, or 0 for a variable-width or compressed code
// (text, Steim).
func BytesPerSample(encoding format.Encoding) int {
	switch encoding {
	case format.EncodingInt16, format.EncodingDWWSSN:
		return 2
	case format.EncodingInt32, format.EncodingFloat32:
		return 4
	case format.EncodingFloat64:
		return 8
	default:
		return 0
	}
}
