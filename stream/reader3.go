// Package stream implements the v2/v3 streaming readers (C10): lazy,
// pull-style iteration over a byte source yielding parsed records, with
// optional identifier filtering, CRC verification, and look-behind
// merging.
package stream

import (
	"encoding/binary"
	"io"
	"iter"
	"regexp"

	"github.com/seisgo/mseed/crc32c"
	"github.com/seisgo/mseed/errs"
	"github.com/seisgo/mseed/merge"
	"github.com/seisgo/mseed/mseed3"
)

type v3Config struct {
	filter      *regexp.Regexp
	verifyCRC   bool
	mergeAdj    bool
	mergeTol    float64
}

// ReaderOption configures V3.
type ReaderOption func(*v3Config)

// WithIdentifierFilter restricts yielded records to those whose
// identifier matches pattern.
func WithIdentifierFilter(pattern string) (ReaderOption, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errs.ErrBadIdentifierFilter
	}

	return func(c *v3Config) { c.filter = re }, nil
}

// WithoutCRCVerification disables the reader's per-record CRC check.
func WithoutCRCVerification() ReaderOption {
	return func(c *v3Config) { c.verifyCRC = false }
}

// WithMerge enables a one-record look-behind that folds each record
// into the previous one when mseed3/merge reports them compatible,
// using tol as the adjacency tolerance.
func WithMerge(tol float64) ReaderOption {
	return func(c *v3Config) { c.mergeAdj = true; c.mergeTol = tol }
}

// V3 reads a sequence of miniSEED-3 records from r. Iteration stops,
// without yielding a further record, at a clean end-of-stream; any
// other read or parse error is yielded once as (nil, err) and
// iteration then stops.
func V3(r io.Reader, opts ...ReaderOption) iter.Seq2[*mseed3.Record, error] {
	cfg := v3Config{verifyCRC: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(yield func(*mseed3.Record, error) bool) {
		var lookBehind *mseed3.Record

		emit := func(rec *mseed3.Record) bool {
			if !cfg.mergeAdj {
				return yield(rec, nil)
			}

			if lookBehind == nil {
				lookBehind = rec
				return true
			}

			result := merge.Merge(lookBehind, rec, cfg.mergeTol)
			if len(result) == 1 {
				lookBehind = result[0]
				return true
			}

			prev := lookBehind
			lookBehind = rec

			return yield(prev, nil)
		}

		for {
			rec, err := readOneV3(r, cfg)
			if err == io.EOF {
				break
			}
			if err != nil {
				yield(nil, err)
				return
			}
			if rec == nil {
				continue // filtered out
			}
			if !emit(rec) {
				return
			}
		}

		if cfg.mergeAdj && lookBehind != nil {
			yield(lookBehind, nil)
		}
	}
}

// readOneV3 reads the next record from r, or (nil, nil) when the
// record was skipped by the identifier filter, or (nil, io.EOF) at a
// clean end of stream.
func readOneV3(r io.Reader, cfg v3Config) (*mseed3.Record, error) {
	header := make([]byte, mseed3.HeaderSize)

	n, err := io.ReadFull(r, header)
	if n == 0 && err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, err
	}

	idLen := int(header[33])
	ehLen := int(binary.LittleEndian.Uint16(header[34:36]))
	dataLen := int(binary.LittleEndian.Uint32(header[36:40]))

	idBuf := make([]byte, idLen)
	if _, err := io.ReadFull(r, idBuf); err != nil {
		return nil, err
	}

	if cfg.filter != nil && !cfg.filter.Match(idBuf) {
		if err := skip(r, ehLen+dataLen); err != nil {
			return nil, err
		}

		return nil, nil
	}

	rest := make([]byte, ehLen+dataLen)
	if _, err := io.ReadFull(r, rest); err != nil {
		return nil, err
	}

	full := make([]byte, 0, mseed3.HeaderSize+idLen+ehLen+dataLen)
	full = append(full, header...)
	full = append(full, idBuf...)
	full = append(full, rest...)

	var parseOpts []mseed3.ParseOption
	if !cfg.verifyCRC {
		parseOpts = append(parseOpts, mseed3.WithoutCRCVerification())
	}

	return mseed3.Parse(full, parseOpts...)
}

// skip discards n bytes from r, seeking when r supports io.Seeker and
// falling back to io.CopyN otherwise.
func skip(r io.Reader, n int) error {
	if n == 0 {
		return nil
	}
	if seeker, ok := r.(io.Seeker); ok {
		_, err := seeker.Seek(int64(n), io.SeekCurrent)
		return err
	}

	_, err := io.CopyN(io.Discard, r, int64(n))

	return err
}

// verifyCRCIncremental recomputes a record's CRC-32C across its four
// segments with the header's CRC field treated as zero, without first
// concatenating them into one buffer. The reader does not call it: it
// builds one contiguous buffer instead, since mseed3.Parse expects
// one.
func verifyCRCIncremental(header, identifier, extraHeaders, payload []byte) uint32 {
	zeroed := make([]byte, len(header))
	copy(zeroed, header)
	zeroed[28], zeroed[29], zeroed[30], zeroed[31] = 0, 0, 0, 0

	crc := crc32c.Checksum(zeroed)
	crc = crc32c.Update(crc, identifier)
	crc = crc32c.Update(crc, extraHeaders)
	crc = crc32c.Update(crc, payload)

	return crc
}
