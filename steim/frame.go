package steim

import (
	"encoding/binary"

	"github.com/seisgo/mseed/internal/pool"
)

// FrameWords is the number of 32-bit words per 64-byte Steim frame.
const FrameWords = 16

// FrameBytes is the byte size of one Steim frame.
const FrameBytes = FrameWords * 4

// FrameBlock accumulates encoded Steim words into 64-byte frames.
// Word 0 of every frame is a "nibble word" of sixteen 2-bit dispatch
// codes built up incrementally as words are appended; frame 0 also
// reserves word 1 for X(0) and word 2 for X(N), the integration
// constants needed to reconstruct the original samples on decode.
//
// Frames are stored in a pooled growth buffer rather than a frame
// struct slice: each frame is exactly 64 bytes, so the buffer's
// length is always a multiple of FrameBytes.
type FrameBlock struct {
	buf          *pool.ByteBuffer
	maxNumFrames int // 0 means unlimited
	numFrames    int
	pos          int // word position within the current frame, 0 means "no open frame"
	numSamples   int
}

// NewFrameBlock creates an empty frame block. maxNumFrames caps the
// number of frames the block will hold; 0 means unlimited (the
// miniSEED-3 case). miniSEED-2 callers pass a cap of at most 63.
func NewFrameBlock(maxNumFrames int) *FrameBlock {
	return &FrameBlock{
		buf:          pool.GetFrameBuffer(),
		maxNumFrames: maxNumFrames,
	}
}

// NumSamples returns the number of samples represented so far (the
// sum of the samplesRepresented arguments passed to AddEncodedWord).
func (fb *FrameBlock) NumSamples() int { return fb.numSamples }

// NumFrames returns the number of frames currently allocated.
func (fb *FrameBlock) NumFrames() int { return fb.numFrames }

func (fb *FrameBlock) currentFrameOffset() int {
	return (fb.numFrames - 1) * FrameBytes
}

func (fb *FrameBlock) wordAt(frameOffset, wordIdx int) uint32 {
	off := frameOffset + wordIdx*4
	return binary.BigEndian.Uint32(fb.buf.B[off : off+4])
}

func (fb *FrameBlock) setWordAt(frameOffset, wordIdx int, word uint32) {
	off := frameOffset + wordIdx*4
	binary.BigEndian.PutUint32(fb.buf.B[off:off+4], word)
}

// addEncodingNibble ORs a 2-bit code into W0 of the current frame at
// the bit position matching word position pos.
func (fb *FrameBlock) addEncodingNibble(frameOffset, pos int, bitFlag uint32) {
	shift := uint((15 - pos) * 2)
	w0 := fb.wordAt(frameOffset, 0)
	fb.setWordAt(frameOffset, 0, w0|(bitFlag<<shift))
}

// AddEncodedWord appends a single 32-bit word to the current frame,
// opening a new frame first if none is open. samplesRepresented is
// added to the running sample count (0 for the X(0)/X(N) seed words,
// which do not themselves represent a sample difference). nibble is
// the 2-bit W0 dispatch code for this word's layout.
//
// Returns full=true when the block has just closed its last allowed
// frame (maxNumFrames reached): the caller should stop feeding new
// words, adjusting X(N) via SetXsubN to the last sample actually
// encoded.
func (fb *FrameBlock) AddEncodedWord(word uint32, samplesRepresented, nibble int) (full bool) {
	if fb.pos == 0 {
		start := fb.buf.Len()
		fb.buf.ExtendOrGrow(FrameBytes)
		for i := start; i < start+FrameBytes; i++ {
			fb.buf.B[i] = 0
		}
		fb.numFrames++
		fb.pos = 1
		fb.addEncodingNibble(fb.currentFrameOffset(), 0, 0)
	}

	frameOffset := fb.currentFrameOffset()
	fb.setWordAt(frameOffset, fb.pos, word)
	fb.addEncodingNibble(frameOffset, fb.pos, uint32(nibble)) //nolint:gosec
	fb.numSamples += samplesRepresented
	fb.pos++

	if fb.pos > 15 {
		fb.pos = 0
		if fb.maxNumFrames > 0 && fb.numFrames >= fb.maxNumFrames {
			return true
		}
	}

	return false
}

// SetXsubN overwrites W2 of frame 0 (the reverse integration constant
// X(N)) with word. Used when the block fills before all input samples
// are consumed, so the header's "last sample" constant stays correct
// for whatever prefix was actually encoded.
func (fb *FrameBlock) SetXsubN(word uint32) {
	fb.setWordAt(0, 2, word)
}

// Pack returns the encoded bytes for inclusion in a record payload.
// The returned slice aliases the frame block's internal buffer and
// must be copied by the caller if the block will be reused or
// released.
func (fb *FrameBlock) Pack() []byte {
	return fb.buf.Bytes()
}

// Release returns the frame block's buffer to the shared pool. The
// frame block must not be used after calling Release.
func (fb *FrameBlock) Release() {
	pool.PutFrameBuffer(fb.buf)
	fb.buf = nil
}
