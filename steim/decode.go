package steim

import (
	"encoding/binary"
	"iter"
)

// Variant selects which Steim differential codec the decoder/encoder
// interprets nibble codes 10 and 11 as.
type Variant int

const (
	Steim1 Variant = 1
	Steim2 Variant = 2
)

type decodeConfig struct {
	verifyLastSample bool
}

// DecodeOption configures optional Decode behavior.
type DecodeOption func(*decodeConfig)

// WithVerifyLastSample enables the X(N) integrity check the source
// carries but leaves disabled: after integration, the final produced
// sample is compared against frame 0's W2 seed word and a
// CountMismatch error is returned on disagreement. Not a conformance
// requirement — off by default.
func WithVerifyLastSample() DecodeOption {
	return func(c *decodeConfig) { c.verifyLastSample = true }
}

// Decode decompresses a Steim1 or Steim2 payload into exactly
// numSamples signed 32-bit samples. bias is the carry-in X(-1) from a
// preceding record in the same stream; pass 0 to decode a record in
// isolation, in which case the frame's own X(0) seed is authoritative
// for the first sample.
func Decode(variant Variant, payload []byte, numSamples int, bias int32, opts ...DecodeOption) ([]int32, error) {
	var cfg decodeConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	if numSamples == 0 {
		return []int32{}, nil
	}
	if len(payload) == 0 || len(payload)%FrameBytes != 0 {
		return nil, newDecodeError(BadLength, 0, 0)
	}

	numFrames := len(payload) / FrameBytes
	diffs := make([]int32, 0, numSamples)

	var xsub0, xsubN int32

	for f := 0; f < numFrames && len(diffs) < numSamples; f++ {
		off := f * FrameBytes
		w0 := binary.BigEndian.Uint32(payload[off : off+4])

		if (w0>>30)&0x3 != 0 {
			return nil, newDecodeError(BadNibble, f, 0)
		}

		start := 1
		if f == 0 {
			xsub0 = int32(binary.BigEndian.Uint32(payload[off+4 : off+8])) //nolint:gosec
			xsubN = int32(binary.BigEndian.Uint32(payload[off+8 : off+12])) //nolint:gosec
			start = 3
		}

		for i := start; i < FrameWords && len(diffs) < numSamples; i++ {
			code := (w0 >> uint((15-i)*2)) & 0x3
			if code == 0 {
				continue
			}

			word := binary.BigEndian.Uint32(payload[off+i*4 : off+i*4+4])

			ds, err := decodeWord(variant, word, code, f, i)
			if err != nil {
				return nil, err
			}

			for _, d := range ds {
				if len(diffs) >= numSamples {
					break
				}
				diffs = append(diffs, d)
			}
		}
	}

	if len(diffs) < numSamples {
		return nil, newDecodeError(ShortPayload, numFrames, 0)
	}

	out := make([]int32, numSamples)
	if bias == 0 {
		out[0] = xsub0
	} else {
		out[0] = bias + diffs[0]
	}
	for k := 1; k < numSamples; k++ {
		out[k] = out[k-1] + diffs[k]
	}

	if cfg.verifyLastSample && out[numSamples-1] != xsubN {
		return nil, newDecodeError(CountMismatch, numFrames, 0)
	}

	return out, nil
}

// DecodeSteim1 decodes a Steim1 payload. See Decode.
func DecodeSteim1(payload []byte, numSamples int, bias int32, opts ...DecodeOption) ([]int32, error) {
	return Decode(Steim1, payload, numSamples, bias, opts...)
}

// DecodeSteim2 decodes a Steim2 payload. See Decode.
func DecodeSteim2(payload []byte, numSamples int, bias int32, opts ...DecodeOption) ([]int32, error) {
	return Decode(Steim2, payload, numSamples, bias, opts...)
}

// All returns a pull iterator over the decoded samples, letting a
// caller range over a prefix without retaining the whole slice. The
// payload is still decoded eagerly on the first yield; All exists for
// call-site convenience (range loops), not to avoid the decode cost.
func All(variant Variant, payload []byte, numSamples int, bias int32, opts ...DecodeOption) iter.Seq[int32] {
	return func(yield func(int32) bool) {
		samples, err := Decode(variant, payload, numSamples, bias, opts...)
		if err != nil {
			return
		}
		for _, s := range samples {
			if !yield(s) {
				return
			}
		}
	}
}

// decodeWord interprets one 32-bit Steim word according to its 2-bit
// W0 dispatch code, returning the one or more signed differences it
// packs.
func decodeWord(variant Variant, word, code uint32, frame, idx int) ([]int32, error) {
	switch code {
	case 1: // four signed 8-bit differences, both variants
		return unpackSigned(word, 4, 8), nil
	case 2: // 10
		if variant == Steim1 {
			return unpackSigned(word, 2, 16), nil
		}

		switch dnib := word >> 30; dnib {
		case 1:
			return decodeDnibGroup(word, 1, 30), nil
		case 2:
			return decodeDnibGroup(word, 2, 15), nil
		case 3:
			return decodeDnibGroup(word, 3, 10), nil
		default:
			return nil, newDecodeError(BadDnib, frame, idx)
		}
	case 3: // 11
		if variant == Steim1 {
			return []int32{int32(word)}, nil
		}

		switch dnib := word >> 30; dnib {
		case 0:
			return decodeDnibGroup(word, 5, 6), nil
		case 1:
			return decodeDnibGroup(word, 6, 5), nil
		case 2:
			return decodeDnibGroup(word, 7, 4), nil
		default:
			return nil, newDecodeError(BadDnib, frame, idx)
		}
	default:
		return nil, newDecodeError(BadNibble, frame, idx)
	}
}

// decodeDnibGroup unpacks a Steim2 d-nibble sub-word: the top 2 bits
// are the dnib (already consumed by the caller), the remaining 30
// bits hold count fields of width bits each, left-justified with any
// unused low bits (the 7x4-bit case) zero.
func decodeDnibGroup(word uint32, count, width int) []int32 {
	payload := word & 0x3FFFFFFF
	if shift := 30 - count*width; shift > 0 {
		payload >>= uint(shift)
	}

	return unpackSigned(payload, count, width)
}

// unpackSigned splits the low count*width bits of bits into count
// sign-extended fields, MSB first.
func unpackSigned(bits uint32, count, width int) []int32 {
	if width == 32 {
		return []int32{int32(bits)} //nolint:gosec
	}

	out := make([]int32, count)
	mask := uint32(1)<<uint(width) - 1
	for i := count - 1; i >= 0; i-- {
		out[i] = signExtend(bits&mask, width)
		bits >>= uint(width)
	}

	return out
}

// signExtend sign-extends the low width bits of raw to a full int32.
func signExtend(raw uint32, width int) int32 {
	shift := uint(32 - width)
	return int32(raw<<shift) >> shift //nolint:gosec
}
