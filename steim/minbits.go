package steim

// steimBitWidths is the ascending sequence of field widths Steim2
// ever packs a single difference into; minBitsNeeded returns 32 when
// none of them fits.
var steimBitWidths = [...]int{4, 5, 6, 8, 10, 15, 30}

// minBitsNeeded returns the narrowest width in {4,5,6,8,10,15,30} that
// can represent d as a signed two's-complement field, or 32 if d
// requires more than 30 bits (the caller must then fall back to a
// primitive encoding; Steim2 has no 32-bit difference layout).
func minBitsNeeded(d int64) int {
	for _, w := range steimBitWidths {
		if fitsSigned(d, w) {
			return w
		}
	}

	return 32
}

// fitsSigned reports whether d fits in a signed two's-complement
// field of the given bit width.
func fitsSigned(d int64, bits int) bool {
	limit := int64(1) << uint(bits-1)
	return d >= -limit && d < limit
}
