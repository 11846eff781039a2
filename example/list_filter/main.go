// Command list_filter demonstrates the streaming v3 reader: it builds
// a couple of synthetic miniSEED-3 records in memory, concatenates
// their bytes as if they had come from one archive file, then scans
// them with an identifier regex filter the way an external "list"
// CLI tool (§6) would.
package main

import (
	"bytes"
	"fmt"
	"log"
	"time"

	"github.com/seisgo/mseed/format"
	"github.com/seisgo/mseed/mseed3"
	"github.com/seisgo/mseed/stream"
)

func main() {
	start := time.Date(2024, 1, 2, 15, 13, 55, 123_456_000, time.UTC)

	recA, err := mseed3.NewPrimitiveRecord("FDSN:XX_FAKE__H_H_Z", start, 100, []int32{3, 1, -1, 2000}, format.EncodingInt32)
	if err != nil {
		log.Fatalf("build record A: %v", err)
	}

	recB, err := mseed3.NewPrimitiveRecord("FDSN:XX_FAKE__L_H_Z", start.Add(time.Minute), 20, []int32{7, 8, 9}, format.EncodingInt16)
	if err != nil {
		log.Fatalf("build record B: %v", err)
	}

	var archive bytes.Buffer
	for _, rec := range []*mseed3.Record{recA, recB} {
		packed, err := rec.Pack()
		if err != nil {
			log.Fatalf("pack record: %v", err)
		}
		archive.Write(packed)
	}

	filterOpt, err := stream.WithIdentifierFilter(`_H_H_Z$`)
	if err != nil {
		log.Fatalf("compile filter: %v", err)
	}

	fmt.Println("records matching _H_H_Z$:")
	for rec, err := range stream.V3(bytes.NewReader(archive.Bytes()), filterOpt) {
		if err != nil {
			log.Fatalf("read stream: %v", err)
		}

		samples, err := rec.Samples(0)
		if err != nil {
			log.Fatalf("decode samples: %v", err)
		}

		fmt.Printf("  %s  start=%s  rate=%.1fHz  samples=%v\n",
			rec.Identifier, rec.Header.StartTime().Format(time.RFC3339Nano), rec.Header.SampleRate(), samples)
	}
}
