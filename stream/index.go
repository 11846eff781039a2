package stream

import (
	"io"

	"github.com/seisgo/mseed/internal/identix"
)

// Index maps an identifier hash to the byte offsets of every
// miniSEED-3 record carrying that identifier in a scanned stream,
// letting repeated scans of a large archive skip straight to one
// channel's records instead of re-parsing the whole file.
type Index struct {
	offsets map[uint64][]int64
}

// BuildIndex scans r from its current position to end-of-stream,
// recording the byte offset of every record. r must support io.Seeker
// so the index can record absolute offsets and the scan can skip
// payload bytes without decoding them.
func BuildIndex(r io.ReadSeeker) (*Index, error) {
	idx := &Index{offsets: make(map[uint64][]int64)}

	for {
		offset, err := r.Seek(0, io.SeekCurrent)
		if err != nil {
			return nil, err
		}

		rec, err := readOneV3(r, v3Config{verifyCRC: false})
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if rec == nil {
			continue
		}

		key := identix.ID(rec.Identifier)
		idx.offsets[key] = append(idx.offsets[key], offset)
	}

	return idx, nil
}

// Offsets returns the byte offsets at which identifier's records were
// found, or nil if the identifier is absent from the index.
func (idx *Index) Offsets(identifier string) []int64 {
	return idx.offsets[identix.ID(identifier)]
}

// Count returns the number of distinct identifiers in the index.
func (idx *Index) Count() int {
	return len(idx.offsets)
}
