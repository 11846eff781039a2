package merge

import (
	"testing"
	"time"

	"github.com/seisgo/mseed/format"
	"github.com/seisgo/mseed/mseed3"
	"github.com/stretchr/testify/require"
)

func newRec(t *testing.T, start time.Time, rate float64, samples []int32) *mseed3.Record {
	t.Helper()
	rec, err := mseed3.NewPrimitiveRecord("FDSN:XX_FAKE__H_H_Z", start, rate, samples, format.EncodingInt32)
	require.NoError(t, err)

	return rec
}

func TestMerge_AdjacentRecordsMerge(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	a := newRec(t, start, 10, []int32{1, 2, 3, 4, 5})
	b := newRec(t, start.Add(500*time.Millisecond), 10, []int32{6, 7})

	result := Merge(a, b, DefaultTolerance)
	require.Len(t, result, 1)
	require.Equal(t, uint32(7), result[0].Header.NumSamples)

	decoded, err := result[0].Samples(0)
	require.NoError(t, err)
	require.Equal(t, []int32{1, 2, 3, 4, 5, 6, 7}, decoded)
}

func TestMerge_DifferentIdentifierDoesNotMerge(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	a := newRec(t, start, 10, []int32{1})
	b, err := mseed3.NewPrimitiveRecord("FDSN:XX_OTHR__H_H_Z", start.Add(100*time.Millisecond), 10, []int32{2}, format.EncodingInt32)
	require.NoError(t, err)

	result := Merge(a, b, DefaultTolerance)
	require.Len(t, result, 2)
}

func TestMerge_GapTooLargeDoesNotMerge(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	a := newRec(t, start, 10, []int32{1})
	b := newRec(t, start.Add(5*time.Second), 10, []int32{2})

	result := Merge(a, b, DefaultTolerance)
	require.Len(t, result, 2)
}

func TestMerge_NilHandling(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	a := newRec(t, start, 10, []int32{1})

	require.Equal(t, []*mseed3.Record{a}, Merge(a, nil, DefaultTolerance))
	require.Equal(t, []*mseed3.Record{a}, Merge(nil, a, DefaultTolerance))
	require.Equal(t, []*mseed3.Record{nil}, Merge(nil, nil, DefaultTolerance))
}

func TestMergeAll_FoldsConsecutiveCompatibleRecords(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	a := newRec(t, start, 10, []int32{1, 2})
	b := newRec(t, start.Add(200*time.Millisecond), 10, []int32{3, 4})
	c := newRec(t, start.Add(5*time.Second), 10, []int32{5})

	out := MergeAll([]*mseed3.Record{a, b, c}, DefaultTolerance)
	require.Len(t, out, 2)
	require.Equal(t, uint32(4), out[0].Header.NumSamples)
	require.Equal(t, uint32(1), out[1].Header.NumSamples)
}

func TestMerge_SteimEncodingRejected(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	samples := []int32{1, 2, 3, 4, 5}

	a, _, err := mseed3.NewSteimRecord("FDSN:XX_FAKE__H_H_Z", start, 10, samples, 1, 0, 0)
	require.NoError(t, err)
	b, _, err := mseed3.NewSteimRecord("FDSN:XX_FAKE__H_H_Z", start.Add(500*time.Millisecond), 10, samples, 1, 0, 0)
	require.NoError(t, err)

	result := Merge(a, b, DefaultTolerance)
	require.Len(t, result, 2)
}
