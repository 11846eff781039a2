package auxblob

// NoOpCompressor bypasses compression, returning the input unchanged.
// It is the default codec: most extra-headers blobs and sidecar
// indexes are small enough that compression overhead isn't worth it.
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

func (c NoOpCompressor) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
