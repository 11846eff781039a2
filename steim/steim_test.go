package steim

import (
	"math"
	"testing"

	"github.com/seisgo/mseed/errs"
	"github.com/stretchr/testify/require"
)

func TestSteim1_TinyRoundTrip(t *testing.T) {
	samples := []int32{1, 2, -10, 45, -999, 4008}
	for i := 0; i < 1000; i++ {
		samples = append(samples, 129)
	}

	payload, consumed, err := EncodeSteim1(samples, 0, 0)
	require.NoError(t, err)
	require.Equal(t, len(samples), consumed)
	require.Zero(t, len(payload)%FrameBytes)
	require.LessOrEqual(t, len(payload)/FrameBytes, 17)

	decoded, err := DecodeSteim1(payload, len(samples), 0)
	require.NoError(t, err)
	require.Equal(t, samples, decoded)
}

func TestSteim2_Sinusoid(t *testing.T) {
	samples := make([]int32, 100000)
	for i := range samples {
		samples[i] = int32(499 * math.Sin(float64(i)))
	}

	fb, consumed, err := EncodeSteim2Block(samples, 63, 0)
	require.NoError(t, err)
	defer fb.Release()

	require.Positive(t, consumed)
	require.LessOrEqual(t, consumed, len(samples))
	require.Equal(t, 63, fb.NumFrames())

	decoded, err := DecodeSteim2(fb.Pack(), consumed, 0)
	require.NoError(t, err)
	require.Equal(t, samples[:consumed], decoded)
}

func TestSteim1_RoundTripRandomish(t *testing.T) {
	samples := make([]int32, 5000)
	v := int32(0)
	for i := range samples {
		v += int32((i%17)-8) * 137
		samples[i] = v
	}

	payload, consumed, err := EncodeSteim1(samples, 0, 0)
	require.NoError(t, err)
	require.Equal(t, len(samples), consumed)

	decoded, err := DecodeSteim1(payload, len(samples), 0)
	require.NoError(t, err)
	require.Equal(t, samples, decoded)
}

func TestSteim2_RoundTripRandomish(t *testing.T) {
	samples := make([]int32, 5000)
	v := int32(0)
	for i := range samples {
		v += int32((i%23)-11) * 19
		samples[i] = v
	}

	payload, consumed, err := EncodeSteim2(samples, 0, 0)
	require.NoError(t, err)
	require.Equal(t, len(samples), consumed)

	decoded, err := DecodeSteim2(payload, len(samples), 0)
	require.NoError(t, err)
	require.Equal(t, samples, decoded)
}

func TestSteim_CarryOver(t *testing.T) {
	x1 := []int32{10, 20, 15, 40, 38}
	x2 := []int32{50, 60, 48, 70}

	whole := append(append([]int32{}, x1...), x2...)

	payloadWhole, _, err := EncodeSteim1(whole, 0, 0)
	require.NoError(t, err)
	decodedWhole, err := DecodeSteim1(payloadWhole, len(whole), 0)
	require.NoError(t, err)

	payload1, _, err := EncodeSteim1(x1, 0, 0)
	require.NoError(t, err)
	decoded1, err := DecodeSteim1(payload1, len(x1), 0)
	require.NoError(t, err)

	payload2, _, err := EncodeSteim1(x2, 0, x1[len(x1)-1])
	require.NoError(t, err)
	decoded2, err := DecodeSteim1(payload2, len(x2), x1[len(x1)-1])
	require.NoError(t, err)

	require.Equal(t, decodedWhole, append(decoded1, decoded2...))
}

func TestSteim_EncodeEmptyInput(t *testing.T) {
	_, _, err := EncodeSteim1(nil, 0, 0)
	require.ErrorIs(t, err, errs.ErrEmptyInput)

	_, _, err = EncodeSteim2(nil, 0, 0)
	require.ErrorIs(t, err, errs.ErrEmptyInput)
}

func TestSteim_EncodeNegativeFrameCap(t *testing.T) {
	_, _, err := EncodeSteim1([]int32{1, 2, 3}, -1, 0)
	require.ErrorIs(t, err, errs.ErrNegativeFrameCap)
}

func TestSteim_FrameCapStopsEarly(t *testing.T) {
	samples := make([]int32, 20000)
	for i := range samples {
		samples[i] = int32(i)
	}

	fb, consumed, err := EncodeSteim1Block(samples, 2, 0)
	require.NoError(t, err)
	defer fb.Release()

	require.Less(t, consumed, len(samples))
	require.Equal(t, 2, fb.NumFrames())

	decoded, err := DecodeSteim1(fb.Pack(), consumed, 0)
	require.NoError(t, err)
	require.Equal(t, samples[:consumed], decoded)
}

func TestSteim_DecodeShortPayload(t *testing.T) {
	payload, _, err := EncodeSteim1([]int32{1, 2, 3}, 0, 0)
	require.NoError(t, err)

	_, err = DecodeSteim1(payload, 10000, 0)
	require.ErrorIs(t, err, errs.ErrShortPayload)
}

func TestSteim_DecodeBadLength(t *testing.T) {
	_, err := DecodeSteim1([]byte{1, 2, 3}, 1, 0)
	require.ErrorIs(t, err, errs.ErrBadLength)
}

func TestSteim_DecodeZeroSamples(t *testing.T) {
	out, err := DecodeSteim1([]byte{}, 0, 0)
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestSteim_MinBitsNeeded(t *testing.T) {
	cases := []struct {
		d    int64
		want int
	}{
		{0, 4},
		{7, 4},
		{-8, 4},
		{8, 5},
		{-17, 6},
		{31, 6},
		{-33, 8},
		{127, 8},
		{-128, 8},
		{128, 10},
		{511, 10},
		{-512, 10},
		{16383, 15},
		{-16384, 15},
		{1 << 20, 30},
		{1<<29 - 1, 30},
		{1 << 29, 32},
		{1 << 30, 32},
	}

	for _, c := range cases {
		require.Equal(t, c.want, minBitsNeeded(c.d), "d=%d", c.d)
	}
}

func TestSteim_All(t *testing.T) {
	samples := []int32{5, 10, 15, 7, -20}
	payload, _, err := EncodeSteim1(samples, 0, 0)
	require.NoError(t, err)

	var got []int32
	for s := range All(Steim1, payload, len(samples), 0) {
		got = append(got, s)
	}
	require.Equal(t, samples, got)
}

func TestSteim_VerifyLastSample(t *testing.T) {
	samples := []int32{1, 2, 3, 4, 5}
	payload, _, err := EncodeSteim1(samples, 0, 0)
	require.NoError(t, err)

	decoded, err := DecodeSteim1(payload, len(samples), 0, WithVerifyLastSample())
	require.NoError(t, err)
	require.Equal(t, samples, decoded)
}
