// Command merge demonstrates the record-merge engine (C9): two
// adjacent, compatible miniSEED-3 records are folded into one, and an
// incompatible third record is left standing alone.
package main

import (
	"fmt"
	"log"
	"time"

	"github.com/seisgo/mseed/format"
	"github.com/seisgo/mseed/merge"
	"github.com/seisgo/mseed/mseed3"
)

const rate = 100.0 // Hz

func main() {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	period := time.Duration(float64(time.Second) / rate)

	a, err := mseed3.NewPrimitiveRecord("FDSN:XX_FAKE__H_H_Z", start, rate, []int32{1, 2, 3, 4}, format.EncodingInt32)
	if err != nil {
		log.Fatalf("build record A: %v", err)
	}

	bStart := start.Add(period * time.Duration(len(mustSamples(a))))
	b, err := mseed3.NewPrimitiveRecord("FDSN:XX_FAKE__H_H_Z", bStart, rate, []int32{5, 6, 7}, format.EncodingInt32)
	if err != nil {
		log.Fatalf("build record B: %v", err)
	}

	// c is the same channel but starts a full second after b ends,
	// far outside the default half-sample-period tolerance.
	c, err := mseed3.NewPrimitiveRecord("FDSN:XX_FAKE__H_H_Z", bStart.Add(time.Second), rate, []int32{8, 9}, format.EncodingInt32)
	if err != nil {
		log.Fatalf("build record C: %v", err)
	}

	merged := merge.Merge(a, b, merge.DefaultTolerance)
	if len(merged) != 1 {
		log.Fatalf("expected a and b to merge into one record, got %d", len(merged))
	}

	samples, err := merged[0].Samples(0)
	if err != nil {
		log.Fatalf("decode merged samples: %v", err)
	}
	fmt.Printf("merged(a, b) -> 1 record, %d samples: %v\n", merged[0].Header.NumSamples, samples)

	stillTwo := merge.Merge(merged[0], c, merge.DefaultTolerance)
	fmt.Printf("merge(merged, c) -> %d record(s) (gap exceeds tolerance)\n", len(stillTwo))
}

func mustSamples(rec *mseed3.Record) []int32 {
	samples, err := rec.Samples(0)
	if err != nil {
		log.Fatalf("decode samples: %v", err)
	}

	return samples
}
