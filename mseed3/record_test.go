package mseed3

import (
	"testing"
	"time"

	"github.com/seisgo/mseed/errs"
	"github.com/seisgo/mseed/format"
	"github.com/stretchr/testify/require"
)

func TestRecord_RoundTrip(t *testing.T) {
	start, err := time.Parse(time.RFC3339Nano, "2024-01-02T15:13:55.123456Z")
	require.NoError(t, err)

	samples := []int32{3, 1, -1, 2000}

	rec, err := NewPrimitiveRecord("FDSN:XX_FAKE__H_H_Z", start, -1, samples, format.EncodingInt32)
	require.NoError(t, err)

	buf, err := rec.Pack()
	require.NoError(t, err)
	require.Len(t, buf, HeaderSize+len(rec.Identifier)+len(samples)*4)

	parsed, err := Parse(buf)
	require.NoError(t, err)
	require.Equal(t, "FDSN:XX_FAKE__H_H_Z", parsed.Identifier)
	require.Equal(t, float64(-1), parsed.Header.SampleRatePeriod)
	require.Equal(t, float64(1), parsed.Header.SamplePeriod())
	require.True(t, start.Equal(parsed.Header.StartTime()))

	decoded, err := parsed.Samples(0)
	require.NoError(t, err)
	require.Equal(t, samples, decoded)
}

func TestRecord_CRCMismatchDetected(t *testing.T) {
	start := time.Date(2024, 1, 2, 15, 13, 55, 0, time.UTC)
	samples := []int32{1, 2, 3}

	rec, err := NewPrimitiveRecord("FDSN:XX_FAKE__H_H_Z", start, 100, samples, format.EncodingInt32)
	require.NoError(t, err)

	buf, err := rec.Pack()
	require.NoError(t, err)

	buf[len(buf)-1] ^= 0xFF

	_, err = Parse(buf)
	require.ErrorIs(t, err, errs.ErrCrcMismatch)

	parsed, err := Parse(buf, WithoutCRCVerification())
	require.NoError(t, err)
	require.NotNil(t, parsed)
}

func TestRecord_TruncatedBuffer(t *testing.T) {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	samples := []int32{1, 2, 3}

	rec, err := NewPrimitiveRecord("FDSN:XX_FAKE__H_H_Z", start, 100, samples, format.EncodingInt32)
	require.NoError(t, err)

	buf, err := rec.Pack()
	require.NoError(t, err)

	_, err = Parse(buf[:len(buf)-1])
	require.ErrorIs(t, err, errs.ErrRecordTruncated)
}

func TestRecord_InvalidIdentifierRejected(t *testing.T) {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	samples := []int32{1}

	_, err := NewPrimitiveRecord("FDSN:not-enough-fields", start, 100, samples, format.EncodingInt32)
	require.Error(t, err)
}

func TestRecord_SteimRoundTrip(t *testing.T) {
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	samples := make([]int32, 500)
	for i := range samples {
		samples[i] = int32(i%17) - 8
	}

	rec, consumed, err := NewSteimRecord("FDSN:XX_FAKE__H_H_Z", start, 40, samples, 2, 0, 0)
	require.NoError(t, err)
	require.Equal(t, len(samples), consumed)

	buf, err := rec.Pack()
	require.NoError(t, err)

	parsed, err := Parse(buf)
	require.NoError(t, err)

	decoded, err := parsed.Samples(0)
	require.NoError(t, err)
	require.Equal(t, samples, decoded)
}

func TestRecord_CloneIsIndependent(t *testing.T) {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	samples := []int32{1, 2, 3}

	rec, err := NewPrimitiveRecord("FDSN:XX_FAKE__H_H_Z", start, 100, samples, format.EncodingInt32)
	require.NoError(t, err)

	clone := rec.Clone()
	clone.Payload[0] = 0xFF
	require.NotEqual(t, rec.Payload[0], clone.Payload[0])

	require.NoError(t, clone.ExtraHeaders.SetField("foo", "bar"))
	_, err = rec.ExtraHeaders.Parsed()
	require.NoError(t, err)
	require.Empty(t, rec.ExtraHeaders.Raw)
}

func TestExtraHeaders_SetAndParse(t *testing.T) {
	eh := NewExtraHeaders(nil)

	m, err := eh.Parsed()
	require.NoError(t, err)
	require.Empty(t, m)

	require.NoError(t, eh.SetField("FDSN", map[string]any{"DataQuality": "D"}))

	m, err = eh.Parsed()
	require.NoError(t, err)
	require.Contains(t, m, "FDSN")
}
