// Package merge implements record-merge (C9): concatenating two
// adjacent, compatible miniSEED-3 records into one without decoding
// Steim payloads, since every Steim frame block is self-contained and
// concatenates cleanly.
package merge

import (
	"time"

	"github.com/seisgo/mseed/mseed3"
)

// DefaultTolerance is the default adjacency tolerance, expressed as a
// fraction of the sample period.
const DefaultTolerance = 0.5

// Mergeable reports whether b may be appended directly after a: same
// identifier, sample rate/period, encoding, and publication version,
// with b starting after a's last sample and less than tol sample
// periods after a's nominal end (StartTime + NumSamples*period).
func Mergeable(a, b *mseed3.Record, tol float64) bool {
	if a == nil || b == nil {
		return false
	}
	if a.Identifier != b.Identifier {
		return false
	}
	if a.Header.SampleRatePeriod != b.Header.SampleRatePeriod {
		return false
	}
	if a.Header.PayloadEncoding != b.Header.PayloadEncoding {
		return false
	}
	if a.Header.PublicationVersion != b.Header.PublicationVersion {
		return false
	}

	period := a.Header.SamplePeriod()
	expectedStart := a.Header.StartTime().Add(time.Duration(period * float64(a.Header.NumSamples) * float64(time.Second)))

	gap := b.Header.StartTime().Sub(expectedStart).Seconds()

	return b.Header.StartTime().After(a.Header.EndTime()) && gap < tol*period
}

// Merge attempts to merge a and b. Its return slice mirrors the
// operator described in §4.9: [merged] on success, [a, b] when
// incompatible, [a] or [b] when one side is nil, or [nil] when both
// are nil.
func Merge(a, b *mseed3.Record, tol float64) []*mseed3.Record {
	switch {
	case a == nil && b == nil:
		return []*mseed3.Record{nil}
	case a == nil:
		return []*mseed3.Record{b}
	case b == nil:
		return []*mseed3.Record{a}
	}

	if !a.Header.PayloadEncoding.IsPrimitive() {
		return []*mseed3.Record{a, b}
	}

	if !Mergeable(a, b, tol) {
		return []*mseed3.Record{a, b}
	}

	merged := a.Clone()
	merged.Payload = append(merged.Payload, b.Payload...)
	merged.Header.NumSamples = a.Header.NumSamples + b.Header.NumSamples

	return []*mseed3.Record{merged}
}

// MergeAll folds a time-sorted slice of records, merging each
// consecutive compatible pair. The compatibility predicate is
// associative when applied left-to-right, so a single linear pass
// suffices.
func MergeAll(records []*mseed3.Record, tol float64) []*mseed3.Record {
	if len(records) == 0 {
		return nil
	}

	out := make([]*mseed3.Record, 0, len(records))
	cur := records[0]

	for _, next := range records[1:] {
		result := Merge(cur, next, tol)
		if len(result) == 1 {
			cur = result[0]
			continue
		}

		out = append(out, cur)
		cur = next
	}

	out = append(out, cur)

	return out
}
