package steim

// EncodeSteim1 encodes samples into a Steim1 frame block. frameCap
// limits the number of 64-byte frames the block may hold (0 means
// unlimited); bias is the carry-in X(-1) from a preceding record,
// used only to seed the very first difference. It returns the packed
// bytes and the number of leading samples actually consumed — fewer
// than len(samples) if frameCap was reached first.
func EncodeSteim1(samples []int32, frameCap int, bias int32) ([]byte, int, error) {
	fb, consumed, err := EncodeSteim1Block(samples, frameCap, bias)
	if err != nil {
		return nil, 0, err
	}
	defer fb.Release()

	out := make([]byte, len(fb.Pack()))
	copy(out, fb.Pack())

	return out, consumed, nil
}

// EncodeSteim1Block is the same as EncodeSteim1 but returns the live
// FrameBlock, letting a caller inspect frame/sample counts before
// packing. The caller owns the returned block and must call Release.
func EncodeSteim1Block(samples []int32, frameCap int, bias int32) (*FrameBlock, int, error) {
	if len(samples) == 0 {
		return nil, 0, newEncodeError(Empty, 0)
	}
	if frameCap < 0 {
		return nil, 0, newEncodeError(NegativeFrameCap, 0)
	}

	fb := NewFrameBlock(frameCap)
	fb.AddEncodedWord(uint32(samples[0]), 0, 0)              //nolint:gosec
	fb.AddEncodedWord(uint32(samples[len(samples)-1]), 0, 0) //nolint:gosec

	sampleIndex := 0
	var diff [4]int32

	for sampleIndex < len(samples) {
		// Consider up to four upcoming differences, growing the
		// count while maxSize*diffCount stays under a full 32-bit
		// word; stop as soon as it hits 4 exactly, or back off by
		// one (never landing on a count of 3, which packs
		// unevenly) once it overshoots.
		diffCount := 0
		maxSize := 0
		for i := 0; i < 4; i++ {
			if sampleIndex+i >= len(samples) {
				break
			}

			if sampleIndex == 0 && i == 0 {
				diff[0] = samples[0] - bias
			} else {
				diff[i] = samples[sampleIndex+i] - samples[sampleIndex+i-1]
			}
			diffCount++

			curSize := byteWidth(int64(diff[i]))
			if curSize > maxSize {
				maxSize = curSize
			}

			if maxSize*diffCount == 4 {
				break
			} else if maxSize*diffCount > 4 {
				diffCount--
				if diffCount == 3 {
					diffCount--
				}
				break
			}
		}

		var word uint32
		var nibble int
		switch diffCount {
		case 1:
			nibble = 3
			word = uint32(diff[0]) //nolint:gosec
		case 2:
			nibble = 2
			word = uint32(uint16(diff[0]))<<16 | uint32(uint16(diff[1])) //nolint:gosec
		default: // 4
			nibble = 1
			word = uint32(uint8(diff[0]))<<24 | uint32(uint8(diff[1]))<<16 | uint32(uint8(diff[2]))<<8 | uint32(uint8(diff[3])) //nolint:gosec
		}

		if fb.AddEncodedWord(word, diffCount, nibble) {
			fb.SetXsubN(uint32(samples[sampleIndex+diffCount-1])) //nolint:gosec
			sampleIndex += diffCount

			return fb, sampleIndex, nil
		}

		sampleIndex += diffCount
	}

	return fb, sampleIndex, nil
}

// byteWidth returns 1, 2, or 4: the narrowest signed byte width that
// can represent d, saturating at 4 (the caller then packs whatever it
// can — Steim1 never needs a width check error since int32 always
// fits in 4 bytes).
func byteWidth(d int64) int {
	switch {
	case d >= -128 && d < 128:
		return 1
	case d >= -32768 && d < 32768:
		return 2
	default:
		return 4
	}
}
