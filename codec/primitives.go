package codec

import (
	"fmt"
	"math"

	"github.com/seisgo/mseed/endian"
	"github.com/seisgo/mseed/errs"
)

// textCodec handles encoding code 0: opaque/ASCII bytes, one byte per
// sample. Samples are widened/narrowed through the low byte; this
// module treats text payloads as passthrough data a caller decodes
// itself, so Decode here only guards against undersized input.
type textCodec struct{}

func (textCodec) Decode(data []byte, numSamples int, _ endian.EndianEngine) ([]int32, error) {
	if len(data) < numSamples {
		return nil, fmt.Errorf("codec: text: %w", errs.ErrUndersizedPayload)
	}

	out := make([]int32, numSamples)
	for i := 0; i < numSamples; i++ {
		out[i] = int32(data[i])
	}

	return out, nil
}

func (textCodec) Encode(samples []int32, _ endian.EndianEngine) ([]byte, error) {
	out := make([]byte, len(samples))
	for i, s := range samples {
		out[i] = byte(s) //nolint:gosec
	}

	return out, nil
}

// int16Codec handles encoding codes 1 (INT16) and 32 (DWWSSN, which
// decodes identically).
type int16Codec struct{}

func (int16Codec) Decode(data []byte, numSamples int, engine endian.EndianEngine) ([]int32, error) {
	need := numSamples * 2
	if len(data) < need {
		return nil, fmt.Errorf("codec: int16: %w", errs.ErrUndersizedPayload)
	}

	out := make([]int32, numSamples)
	for i := 0; i < numSamples; i++ {
		out[i] = int32(int16(engine.Uint16(data[i*2 : i*2+2]))) //nolint:gosec
	}

	return out, nil
}

func (int16Codec) Encode(samples []int32, engine endian.EndianEngine) ([]byte, error) {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		engine.PutUint16(out[i*2:i*2+2], uint16(int16(s))) //nolint:gosec
	}

	return out, nil
}

// int32Codec handles encoding code 3 (INT32).
type int32Codec struct{}

func (int32Codec) Decode(data []byte, numSamples int, engine endian.EndianEngine) ([]int32, error) {
	need := numSamples * 4
	if len(data) < need {
		return nil, fmt.Errorf("codec: int32: %w", errs.ErrUndersizedPayload)
	}

	out := make([]int32, numSamples)
	for i := 0; i < numSamples; i++ {
		out[i] = int32(engine.Uint32(data[i*4 : i*4+4])) //nolint:gosec
	}

	return out, nil
}

func (int32Codec) Encode(samples []int32, engine endian.EndianEngine) ([]byte, error) {
	out := make([]byte, len(samples)*4)
	for i, s := range samples {
		engine.PutUint32(out[i*4:i*4+4], uint32(s)) //nolint:gosec
	}

	return out, nil
}

// float32Codec handles encoding code 4 (FLOAT32). Samples are stored
// as int32 throughout this module (§9 "duck-typed sample
// containers"); the IEEE-754 bit pattern round-trips exactly through
// that representation.
type float32Codec struct{}

func (float32Codec) Decode(data []byte, numSamples int, engine endian.EndianEngine) ([]int32, error) {
	need := numSamples * 4
	if len(data) < need {
		return nil, fmt.Errorf("codec: float32: %w", errs.ErrUndersizedPayload)
	}

	out := make([]int32, numSamples)
	for i := 0; i < numSamples; i++ {
		out[i] = int32(engine.Uint32(data[i*4 : i*4+4])) //nolint:gosec
	}

	return out, nil
}

func (float32Codec) Encode(samples []int32, engine endian.EndianEngine) ([]byte, error) {
	out := make([]byte, len(samples)*4)
	for i, s := range samples {
		engine.PutUint32(out[i*4:i*4+4], uint32(s)) //nolint:gosec
	}

	return out, nil
}

// EncodeFloat32Samples encodes actual float32 values (as opposed to
// the int32-bit-pattern passthrough Encode uses) — the entry point a
// caller with real floating-point samples uses.
func EncodeFloat32Samples(samples []float32, engine endian.EndianEngine) []byte {
	out := make([]byte, len(samples)*4)
	for i, s := range samples {
		engine.PutUint32(out[i*4:i*4+4], math.Float32bits(s))
	}

	return out
}

// DecodeFloat32Samples decodes numSamples IEEE-754 float32 values.
func DecodeFloat32Samples(data []byte, numSamples int, engine endian.EndianEngine) ([]float32, error) {
	need := numSamples * 4
	if len(data) < need {
		return nil, fmt.Errorf("codec: float32: %w", errs.ErrUndersizedPayload)
	}

	out := make([]float32, numSamples)
	for i := 0; i < numSamples; i++ {
		out[i] = math.Float32frombits(engine.Uint32(data[i*4 : i*4+4]))
	}

	return out, nil
}

// float64Codec handles encoding code 5 (FLOAT64). Because a float64
// bit pattern does not fit in an int32, the Decoder/Encoder interface
// here converts each value to and from int32 (the fractional part is
// truncated) so the package-level registry stays uniform;
// EncodeFloat64Samples/DecodeFloat64Samples keep full float64 values.
type float64Codec struct{}

func (float64Codec) Decode(data []byte, numSamples int, engine endian.EndianEngine) ([]int32, error) {
	vals, err := DecodeFloat64Samples(data, numSamples, engine)
	if err != nil {
		return nil, err
	}

	out := make([]int32, numSamples)
	for i, v := range vals {
		out[i] = int32(v) //nolint:gosec
	}

	return out, nil
}

func (float64Codec) Encode(samples []int32, engine endian.EndianEngine) ([]byte, error) {
	vals := make([]float64, len(samples))
	for i, s := range samples {
		vals[i] = float64(s)
	}

	return EncodeFloat64Samples(vals, engine), nil
}

// EncodeFloat64Samples encodes real float64 samples.
func EncodeFloat64Samples(samples []float64, engine endian.EndianEngine) []byte {
	out := make([]byte, len(samples)*8)
	for i, s := range samples {
		engine.PutUint64(out[i*8:i*8+8], math.Float64bits(s))
	}

	return out
}

// DecodeFloat64Samples decodes numSamples IEEE-754 float64 values.
func DecodeFloat64Samples(data []byte, numSamples int, engine endian.EndianEngine) ([]float64, error) {
	need := numSamples * 8
	if len(data) < need {
		return nil, fmt.Errorf("codec: float64: %w", errs.ErrUndersizedPayload)
	}

	out := make([]float64, numSamples)
	for i := 0; i < numSamples; i++ {
		out[i] = math.Float64frombits(engine.Uint64(data[i*8 : i*8+8]))
	}

	return out, nil
}
