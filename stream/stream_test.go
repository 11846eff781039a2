package stream

import (
	"bytes"
	"testing"
	"time"

	"github.com/seisgo/mseed/format"
	"github.com/seisgo/mseed/mseed3"
	"github.com/stretchr/testify/require"
)

func buildV3Stream(t *testing.T, identifiers []string, start time.Time) []byte {
	t.Helper()

	var buf bytes.Buffer
	for i, id := range identifiers {
		rec, err := mseed3.NewPrimitiveRecord(id, start.Add(time.Duration(i)*time.Second), 10, []int32{1, 2, 3}, format.EncodingInt32)
		require.NoError(t, err)

		packed, err := rec.Pack()
		require.NoError(t, err)

		buf.Write(packed)
	}

	return buf.Bytes()
}

func TestV3_YieldsAllRecords(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	data := buildV3Stream(t, []string{"FDSN:XX_AAA__H_H_Z", "FDSN:XX_BBB__H_H_Z"}, start)

	var ids []string
	for rec, err := range V3(bytes.NewReader(data)) {
		require.NoError(t, err)
		ids = append(ids, rec.Identifier)
	}

	require.Equal(t, []string{"FDSN:XX_AAA__H_H_Z", "FDSN:XX_BBB__H_H_Z"}, ids)
}

func TestV3_IdentifierFilterSkipsNonMatching(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	data := buildV3Stream(t, []string{"FDSN:XX_AAA__H_H_Z", "FDSN:XX_BBB__H_H_Z"}, start)

	opt, err := WithIdentifierFilter("AAA")
	require.NoError(t, err)

	var ids []string
	for rec, err := range V3(bytes.NewReader(data), opt) {
		require.NoError(t, err)
		ids = append(ids, rec.Identifier)
	}

	require.Equal(t, []string{"FDSN:XX_AAA__H_H_Z"}, ids)
}

func TestV3_MergeAdjacentRecords(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	var buf bytes.Buffer
	r1, err := mseed3.NewPrimitiveRecord("FDSN:XX_AAA__H_H_Z", start, 10, []int32{1, 2}, format.EncodingInt32)
	require.NoError(t, err)
	r2, err := mseed3.NewPrimitiveRecord("FDSN:XX_AAA__H_H_Z", start.Add(200*time.Millisecond), 10, []int32{3, 4}, format.EncodingInt32)
	require.NoError(t, err)

	p1, err := r1.Pack()
	require.NoError(t, err)
	p2, err := r2.Pack()
	require.NoError(t, err)
	buf.Write(p1)
	buf.Write(p2)

	var recs []*mseed3.Record
	for rec, err := range V3(bytes.NewReader(buf.Bytes()), WithMerge(0.5)) {
		require.NoError(t, err)
		recs = append(recs, rec)
	}

	require.Len(t, recs, 1)
	require.Equal(t, uint32(4), recs[0].Header.NumSamples)
}

func TestV3_StopsOnCorruptHeader(t *testing.T) {
	data := []byte("not a valid mseed3 record at all, much too short")

	var sawErr bool
	for rec, err := range V3(bytes.NewReader(data)) {
		if err != nil {
			sawErr = true
			require.Nil(t, rec)
		}
	}
	require.True(t, sawErr)
}

func TestV2_TruncatedHeaderYieldsError(t *testing.T) {
	// A stream shorter than a fixed v2 header cannot yield a record
	// length; V2 must report that as an error rather than end silently.
	var buf bytes.Buffer
	buf.Write(make([]byte, 10))

	var sawErr bool
	for rec, err := range V2(&buf) {
		if err != nil {
			sawErr = true
			require.Nil(t, rec)
		}
	}
	require.True(t, sawErr)
}

func TestBuildIndex_LocatesRecordOffsets(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	data := buildV3Stream(t, []string{"FDSN:XX_AAA__H_H_Z", "FDSN:XX_BBB__H_H_Z", "FDSN:XX_AAA__H_H_Z"}, start)

	idx, err := BuildIndex(bytes.NewReader(data))
	require.NoError(t, err)

	offsets := idx.Offsets("FDSN:XX_AAA__H_H_Z")
	require.Len(t, offsets, 2)
	require.Equal(t, int64(0), offsets[0])

	require.Equal(t, 2, idx.Count())
	require.Empty(t, idx.Offsets("FDSN:XX_ZZZ__H_H_Z"))
}
