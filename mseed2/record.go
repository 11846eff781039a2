package mseed2

import (
	"fmt"

	"github.com/seisgo/mseed/codec"
	"github.com/seisgo/mseed/endian"
	"github.com/seisgo/mseed/errs"
	"github.com/seisgo/mseed/format"
	"github.com/seisgo/mseed/steim"
)

// Record is a parsed or constructed miniSEED-2 record: the fixed
// header, its blockette chain, and the payload bytes sitting at
// Header.DataOffset.
type Record struct {
	Header     Header
	Blockettes []Blockette
	Payload    []byte
}

// Parse decodes a single miniSEED-2 record from buf, auto-detecting
// byte order and requiring a valid blockette 1000 for the record
// length and payload encoding.
func Parse(buf []byte) (*Record, error) {
	h, err := decodeHeader(buf)
	if err != nil {
		return nil, err
	}

	var chain []Blockette
	if h.FirstBlocketteOffset != 0 {
		chain, err = parseBlocketteChain(buf, h.FirstBlocketteOffset, h.ByteOrder)
		if err != nil {
			return nil, err
		}
	}

	b1000 := findB1000(chain)
	if b1000 == nil {
		return nil, errs.ErrMissingBlockette1000
	}

	recLen := b1000.RecordLength()
	if len(buf) < recLen {
		return nil, errs.ErrHeaderTooShort
	}

	var payload []byte
	if h.DataOffset != 0 && int(h.DataOffset) < recLen {
		payload = make([]byte, recLen-int(h.DataOffset))
		copy(payload, buf[h.DataOffset:recLen])
	}

	return &Record{Header: h, Blockettes: chain, Payload: payload}, nil
}

// PeekRecordLength reads only the fixed header and blockette chain
// from buf (which need not contain the full record) and returns the
// record length blockette 1000 declares, so a streaming reader knows
// how many more bytes to read before calling Parse. It returns
// errs.ErrHeaderTooShort when buf does not yet contain the whole
// blockette chain, signaling the caller to peek a larger window.
func PeekRecordLength(buf []byte) (int, error) {
	h, err := decodeHeader(buf)
	if err != nil {
		return 0, err
	}

	if h.FirstBlocketteOffset == 0 {
		return 0, errs.ErrMissingBlockette1000
	}

	chain, err := parseBlocketteChain(buf, h.FirstBlocketteOffset, h.ByteOrder)
	if err != nil {
		return 0, err
	}

	b1000 := findB1000(chain)
	if b1000 == nil {
		return 0, errs.ErrMissingBlockette1000
	}

	return b1000.RecordLength(), nil
}

// Encoding returns the payload encoding declared by blockette 1000, or
// an error if the record carries none (should not happen on a
// successfully Parsed record).
func (r *Record) Encoding() (format.Encoding, error) {
	b1000 := findB1000(r.Blockettes)
	if b1000 == nil {
		return 0, errs.ErrMissingBlockette1000
	}

	return format.Encoding(b1000.Encoding), nil
}

// Samples decodes the record's payload into signed 32-bit samples.
// bias is the Steim carry-in from a preceding record in the same
// stream; pass 0 when decoding in isolation.
func (r *Record) Samples(bias int32) ([]int32, error) {
	enc, err := r.Encoding()
	if err != nil {
		return nil, err
	}

	switch enc {
	case format.EncodingSteim1:
		return steim.DecodeSteim1(r.Payload, int(r.Header.NumSamples), bias)
	case format.EncodingSteim2:
		return steim.DecodeSteim2(r.Payload, int(r.Header.NumSamples), bias)
	default:
		return codec.Decode(enc, r.Payload, int(r.Header.NumSamples), r.Header.ByteOrder)
	}
}

// EffectiveSampleRate returns the record's sample rate in Hz: a B100
// override if present, otherwise the header's factor/multiplier pair.
func (r *Record) EffectiveSampleRate() float64 {
	if b100 := findB100(r.Blockettes); b100 != nil {
		return b100.SampleRate
	}

	return r.Header.SampleRate()
}

// Pack re-synthesizes the blockette chain, fills in the B-tuple
// offsets (data offset, first-blockette offset, blockette count), and
// appends the payload at the declared data offset, which is rounded up
// to a 64-byte boundary so the bytes from it to the end of the record
// form whole Steim frames. If the chain does not already carry a
// B1000, one is synthesized from the caller-supplied encoding and
// recordLengthExp, with its byte-order flag taken from
// Header.ByteOrder.
func (r *Record) Pack(encoding format.Encoding, recordLengthExp uint8) ([]byte, error) {
	chain := r.Blockettes
	if findB1000(chain) == nil {
		byteOrderFlag := uint8(1) //nolint:gosec // 1 == big-endian, the SEED network convention
		if r.Header.ByteOrder == endian.GetLittleEndianEngine() {
			byteOrderFlag = 0
		}

		chain = append([]Blockette{{
			Type: BlocketteTypeB1000,
			B1000: &Blockette1000{
				Encoding:        uint8(encoding), //nolint:gosec
				ByteOrderFlag:   byteOrderFlag,
				RecordLengthExp: recordLengthExp,
			},
		}}, chain...)
	}

	if rate := r.EffectiveSampleRate(); rate != 0 && r.Header.SampleRateFactor == 0 && r.Header.SampleRateMult == 0 {
		r.Header.SampleRateFactor, r.Header.SampleRateMult = factorMultiplierFromRate(rate)
	}

	blocketteOffset := uint16(HeaderSize) //nolint:gosec
	blocketteBytes := encodeBlocketteChain(chain, blocketteOffset, r.Header.ByteOrder)

	recLen := 1 << recordLengthExp
	dataOffset := int(blocketteOffset) + len(blocketteBytes)
	if rem := dataOffset % steim.FrameBytes; rem != 0 {
		dataOffset += steim.FrameBytes - rem
	}
	if dataOffset+len(r.Payload) > recLen {
		return nil, fmt.Errorf("mseed2: record length 2^%d too small for header+blockettes+payload", recordLengthExp)
	}

	r.Header.FirstBlocketteOffset = blocketteOffset
	r.Header.DataOffset = uint16(dataOffset) //nolint:gosec
	r.Header.NumBlockettes = uint8(len(chain)) //nolint:gosec

	out := make([]byte, recLen)
	copy(out, r.Header.encode())
	copy(out[blocketteOffset:], blocketteBytes)
	copy(out[dataOffset:], r.Payload)

	return out, nil
}
