// Package auxblob provides optional secondary compression for the
// auxiliary byte blobs this module produces outside the sample
// payload itself: a record's extra-headers JSON when unusually large,
// and the sidecar channel index a caller may build over a long
// archive file (see stream.Index). It does not touch sample payloads;
// Steim and the primitive codecs are the only compression that
// applies there.
package auxblob

import (
	"fmt"

	"github.com/seisgo/mseed/format"
)

// Compressor compresses a byte blob.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses Compressor.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions.
type Codec interface {
	Compressor
	Decompressor
}

// CreateCodec is a factory that returns a Codec for the given
// compression type, returning an error for anything unrecognized.
func CreateCodec(compressionType format.CompressionType, target string) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("auxblob: invalid %s compression: %s", target, compressionType)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves a built-in Codec for the specified compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("auxblob: unsupported compression type: %s", compressionType)
}
