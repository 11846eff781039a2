package auxblob

import (
	"sync"

	"github.com/klauspost/compress/zstd"
)

// ZstdCompressor compresses auxiliary blobs with pure-Go zstd. It is
// the codec of choice when ratio matters more than raw throughput —
// appropriate for the occasional oversized extra-headers blob or a
// sidecar index written once and read many times.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}

var (
	zstdEncoderPool = sync.Pool{
		New: func() any {
			enc, _ := zstd.NewWriter(nil)
			return enc
		},
	}
	zstdDecoderPool = sync.Pool{
		New: func() any {
			dec, _ := zstd.NewReader(nil)
			return dec
		},
	}
)

func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	enc, _ := zstdEncoderPool.Get().(*zstd.Encoder)
	defer zstdEncoderPool.Put(enc)

	return enc.EncodeAll(data, make([]byte, 0, len(data))), nil
}

func (c ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	dec, _ := zstdDecoderPool.Get().(*zstd.Decoder)
	defer zstdDecoderPool.Put(dec)

	return dec.DecodeAll(data, nil)
}
