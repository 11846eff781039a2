package steim

// steim2Group describes one of the seven packable Steim2 word
// layouts: count differences of width bits each, dispatched by W0
// nibble and, for the 10/11 nibbles, a further 2-bit dnib sub-code.
// dnib is -1 for the single layout (4x8-bit) that has no sub-code.
type steim2Group struct {
	count  int
	width  int
	nibble int
	dnib   int
}

// steim2Groups is tried in order for every candidate starting
// position: the earliest group whose count differences all fit its
// width wins, so the encoder always prefers packing the most samples
// per word that the data allows.
var steim2Groups = []steim2Group{
	{count: 7, width: 4, nibble: 3, dnib: 2},
	{count: 6, width: 5, nibble: 3, dnib: 1},
	{count: 5, width: 6, nibble: 3, dnib: 0},
	{count: 4, width: 8, nibble: 1, dnib: -1},
	{count: 3, width: 10, nibble: 2, dnib: 3},
	{count: 2, width: 15, nibble: 2, dnib: 2},
	{count: 1, width: 30, nibble: 2, dnib: 1},
}

// EncodeSteim2 encodes samples into a Steim2 frame block. See
// EncodeSteim1 for the meaning of frameCap and bias.
func EncodeSteim2(samples []int32, frameCap int, bias int32) ([]byte, int, error) {
	fb, consumed, err := EncodeSteim2Block(samples, frameCap, bias)
	if err != nil {
		return nil, 0, err
	}
	defer fb.Release()

	out := make([]byte, len(fb.Pack()))
	copy(out, fb.Pack())

	return out, consumed, nil
}

// EncodeSteim2Block is the same as EncodeSteim2 but returns the live
// FrameBlock so a caller can inspect frame/sample counts before
// packing. The caller owns the returned block and must call Release.
func EncodeSteim2Block(samples []int32, frameCap int, bias int32) (*FrameBlock, int, error) {
	if len(samples) == 0 {
		return nil, 0, newEncodeError(Empty, 0)
	}
	if frameCap < 0 {
		return nil, 0, newEncodeError(NegativeFrameCap, 0)
	}

	fb := NewFrameBlock(frameCap)
	fb.AddEncodedWord(uint32(samples[0]), 0, 0)               //nolint:gosec
	fb.AddEncodedWord(uint32(samples[len(samples)-1]), 0, 0) //nolint:gosec

	sampleIndex := 0

	for sampleIndex < len(samples) {
		group, diffs, ok := pickSteim2Group(samples, sampleIndex, bias)
		if !ok {
			return nil, 0, newEncodeError(ValueTooWide, sampleIndex)
		}

		word := packGroup(group, diffs)

		if fb.AddEncodedWord(word, group.count, group.nibble) {
			fb.SetXsubN(uint32(samples[sampleIndex+group.count-1])) //nolint:gosec
			sampleIndex += group.count

			return fb, sampleIndex, nil
		}

		sampleIndex += group.count
	}

	return fb, sampleIndex, nil
}

// pickSteim2Group finds the first (most compressive) layout in
// steim2Groups whose differences, starting at samples[from], all fit
// their declared width, returning the computed differences alongside
// it. ok is false only when even the single 30-bit layout overflows,
// meaning the caller must fall back to a primitive encoding.
func pickSteim2Group(samples []int32, from int, bias int32) (steim2Group, []int64, bool) {
	for _, g := range steim2Groups {
		if from+g.count > len(samples) {
			continue
		}

		diffs := make([]int64, g.count)
		fits := true

		for i := 0; i < g.count; i++ {
			var d int64
			if from == 0 && i == 0 {
				d = int64(samples[0]) - int64(bias)
			} else {
				d = int64(samples[from+i]) - int64(samples[from+i-1])
			}

			if !fitsSigned(d, g.width) {
				fits = false
				break
			}

			diffs[i] = d
		}

		if fits {
			return g, diffs, true
		}
	}

	return steim2Group{}, nil, false
}

// packGroup packs count differences of width bits each, MSB first,
// into a 32-bit word, ORing in the 2-bit dnib sub-code (shifted to
// bits 31:30) when the group has one.
func packGroup(g steim2Group, diffs []int64) uint32 {
	var payload uint32
	mask := uint32(1)<<uint(g.width) - 1
	for _, d := range diffs {
		payload = (payload << uint(g.width)) | (uint32(d) & mask)
	}

	if g.dnib < 0 {
		return payload
	}

	if shift := 30 - g.count*g.width; shift > 0 {
		payload <<= uint(shift)
	}

	return uint32(g.dnib)<<30 | (payload & 0x3FFFFFFF)
}
