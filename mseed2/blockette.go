package mseed2

import (
	"math"

	"github.com/seisgo/mseed/endian"
	"github.com/seisgo/mseed/errs"
)

// Blockette type codes this package interprets; every other type is
// kept as opaque passthrough payload.
const (
	BlocketteTypeB100  uint16 = 100
	BlocketteTypeB1000 uint16 = 1000
	BlocketteTypeB1001 uint16 = 1001
)

// Blockette100 is the sample-rate-override blockette: an authoritative
// float32 rate that takes precedence over the header's
// factor/multiplier pair.
type Blockette100 struct {
	SampleRate float64
	Flags      uint8
}

// Blockette1000 carries the encoding, byte order, and record-length
// exponent; it is required on every v2 record this package packs.
type Blockette1000 struct {
	Encoding        uint8
	ByteOrderFlag   uint8
	RecordLengthExp uint8
}

// RecordLength returns 2^RecordLengthExp.
func (b Blockette1000) RecordLength() int {
	return 1 << b.RecordLengthExp
}

// Blockette1001 carries timing quality, a sub-tick microsecond
// correction, and the Steim frame count (advisory only, per the
// design notes: stored but unused during decompression).
type Blockette1001 struct {
	TimingQuality uint8
	Microsecond   int8
	FrameCount    uint8
}

// Blockette is one entry in the flat blockette arena: Type and
// NextOffset as read from the wire, a decoded view when Type is
// recognized, and the raw bytes (including the 4-byte common header)
// for unknown types so a writer can pass them through verbatim.
type Blockette struct {
	Type       uint16
	NextOffset uint16
	B100       *Blockette100
	B1000      *Blockette1000
	B1001      *Blockette1001
	Raw        []byte
}

// parseBlocketteChain walks the blockette chain starting at offset,
// reading from the full record buffer buf. Per the arena design note
// (§9), offsets must strictly increase or terminate at zero; any other
// pattern is a cycle and is rejected.
func parseBlocketteChain(buf []byte, offset uint16, engine endian.EndianEngine) ([]Blockette, error) {
	var chain []Blockette

	prev := -1
	for offset != 0 {
		if int(offset) <= prev {
			return nil, errs.ErrBadBlocketteChain
		}
		if int(offset)+4 > len(buf) {
			return nil, errs.ErrHeaderTooShort
		}
		prev = int(offset)

		typ := engine.Uint16(buf[offset : offset+2])
		next := engine.Uint16(buf[offset+2 : offset+4])

		bk := Blockette{Type: typ, NextOffset: next}

		switch typ {
		case BlocketteTypeB100:
			if int(offset)+12 > len(buf) {
				return nil, errs.ErrHeaderTooShort
			}
			rate := engine.Uint32(buf[offset+4 : offset+8])
			bk.B100 = &Blockette100{
				SampleRate: float64(math.Float32frombits(rate)),
				Flags:      buf[offset+8],
			}
			bk.Raw = buf[offset : offset+12]
		case BlocketteTypeB1000:
			if int(offset)+8 > len(buf) {
				return nil, errs.ErrHeaderTooShort
			}
			bk.B1000 = &Blockette1000{
				Encoding:        buf[offset+4],
				ByteOrderFlag:   buf[offset+5],
				RecordLengthExp: buf[offset+6],
			}
			if exp := bk.B1000.RecordLength(); exp < 256 || exp > 4096 {
				return nil, errs.ErrBadRecordLength
			}
			bk.Raw = buf[offset : offset+8]
		case BlocketteTypeB1001:
			if int(offset)+8 > len(buf) {
				return nil, errs.ErrHeaderTooShort
			}
			bk.B1001 = &Blockette1001{
				TimingQuality: buf[offset+4],
				Microsecond:   int8(buf[offset+5]), //nolint:gosec
				FrameCount:    buf[offset+7],
			}
			bk.Raw = buf[offset : offset+8]
		default:
			// Unknown blockette: keep everything up to the next chain
			// link (or, for the last link, nothing more can be inferred
			// about its length so it is kept empty and dropped on
			// re-pack). Callers that need exact passthrough of unknown
			// trailing blockettes should supply records whose unknown
			// blockettes are not last in the chain.
			end := int(next)
			if next == 0 || int(next) <= int(offset) || end > len(buf) {
				end = len(buf)
			}
			bk.Raw = buf[offset:end]
		}

		chain = append(chain, bk)
		offset = next
	}

	return chain, nil
}

// findB1000 returns the first B1000 blockette in chain, or nil.
func findB1000(chain []Blockette) *Blockette1000 {
	for _, bk := range chain {
		if bk.B1000 != nil {
			return bk.B1000
		}
	}

	return nil
}

// findB100 returns the first B100 blockette in chain, or nil.
func findB100(chain []Blockette) *Blockette100 {
	for _, bk := range chain {
		if bk.B100 != nil {
			return bk.B100
		}
	}

	return nil
}

// findB1001 returns the first B1001 blockette in chain, or nil.
func findB1001(chain []Blockette) *Blockette1001 {
	for _, bk := range chain {
		if bk.B1001 != nil {
			return bk.B1001
		}
	}

	return nil
}

// encodeBlocketteChain re-synthesizes the blockette bytes starting at
// startOffset, rewriting each entry's NextOffset so the chain remains
// consistent regardless of how it was constructed in memory.
func encodeBlocketteChain(chain []Blockette, startOffset uint16, engine endian.EndianEngine) []byte {
	if len(chain) == 0 {
		return nil
	}

	sizes := make([]int, len(chain))
	for i, bk := range chain {
		sizes[i] = blocketteSize(bk)
	}

	offsets := make([]uint16, len(chain))
	off := startOffset
	for i, sz := range sizes {
		offsets[i] = off
		off += uint16(sz) //nolint:gosec
	}

	out := make([]byte, off-startOffset)
	for i, bk := range chain {
		localOff := offsets[i] - startOffset
		next := uint16(0)
		if i+1 < len(chain) {
			next = offsets[i+1]
		}

		engine.PutUint16(out[localOff:localOff+2], bk.Type)
		engine.PutUint16(out[localOff+2:localOff+4], next)

		switch {
		case bk.B1000 != nil:
			out[localOff+4] = bk.B1000.Encoding
			out[localOff+5] = bk.B1000.ByteOrderFlag
			out[localOff+6] = bk.B1000.RecordLengthExp
			out[localOff+7] = 0
		case bk.B100 != nil:
			engine.PutUint32(out[localOff+4:localOff+8], math.Float32bits(float32(bk.B100.SampleRate)))
			out[localOff+8] = bk.B100.Flags
		case bk.B1001 != nil:
			out[localOff+4] = bk.B1001.TimingQuality
			out[localOff+5] = uint8(bk.B1001.Microsecond) //nolint:gosec
			out[localOff+7] = bk.B1001.FrameCount
		default:
			copy(out[localOff+4:], bk.Raw[4:])
		}
	}

	return out
}

func blocketteSize(bk Blockette) int {
	switch {
	case bk.B1000 != nil:
		return 8
	case bk.B100 != nil:
		return 12
	case bk.B1001 != nil:
		return 8
	default:
		if len(bk.Raw) > 0 {
			return len(bk.Raw)
		}

		return 4
	}
}
