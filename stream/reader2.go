package stream

import (
	"bufio"
	"io"
	"iter"

	"github.com/seisgo/mseed/errs"
	"github.com/seisgo/mseed/mseed2"
)

// maxProbeWindow bounds how far the v2 reader will peek looking for
// blockette 1000 before giving up; real SEED records never exceed
// 4096 bytes, the protocol's own upper bound on record length.
const maxProbeWindow = 4096

// V2 reads a sequence of miniSEED-2 records from r. Each record's
// total length comes from its own blockette 1000, so the reader peeks
// increasingly large windows (without consuming them) until
// mseed2.PeekRecordLength succeeds, then reads exactly that many bytes
// before handing them to mseed2.Parse.
func V2(r io.Reader) iter.Seq2[*mseed2.Record, error] {
	br := bufio.NewReaderSize(r, maxProbeWindow)

	return func(yield func(*mseed2.Record, error) bool) {
		for {
			rec, err := readOneV2(br)
			if err == io.EOF {
				return
			}
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(rec, nil) {
				return
			}
		}
	}
}

func readOneV2(br *bufio.Reader) (*mseed2.Record, error) {
	if _, err := br.Peek(1); err == io.EOF {
		return nil, io.EOF
	}

	var recLen int
	for window := mseed2.HeaderSize; ; window *= 2 {
		if window > maxProbeWindow {
			return nil, errs.ErrHeaderTooShort
		}

		peeked, err := br.Peek(window)
		if err != nil && len(peeked) == 0 {
			return nil, err
		}

		n, err := mseed2.PeekRecordLength(peeked)
		if err == nil {
			recLen = n
			break
		}
		if len(peeked) < window {
			// Peek could not fill the window: the stream ends mid-header
			// or mid-blockette-chain, which is truncation, not a clean
			// end of stream (readOneV2's caller already confirmed at
			// least one more byte exists).
			return nil, io.ErrUnexpectedEOF
		}
	}

	buf := make([]byte, recLen)
	if _, err := io.ReadFull(br, buf); err != nil {
		return nil, err
	}

	return mseed2.Parse(buf)
}
