// Command archive demonstrates stream.Index over a small in-memory
// archive, then compresses a JSON sidecar summarizing it with both
// auxblob codecs (pure-Go zstd and lz4), the way a caller would shrink
// a channel index written once and read many times.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/seisgo/mseed/auxblob"
	"github.com/seisgo/mseed/format"
	"github.com/seisgo/mseed/mseed3"
	"github.com/seisgo/mseed/stream"
)

type sidecarSummary struct {
	Identifier  string `json:"identifier"`
	RecordCount int    `json:"recordCount"`
}

func main() {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	identifiers := []string{
		"FDSN:XX_FAKE__H_H_Z",
		"FDSN:XX_FAKE__H_H_N",
		"FDSN:XX_FAKE__H_H_E",
	}

	var archive bytes.Buffer
	for _, id := range identifiers {
		for i := 0; i < 3; i++ {
			rec, err := mseed3.NewPrimitiveRecord(id, start.Add(time.Duration(i)*time.Minute), 20, []int32{1, 2, 3}, format.EncodingInt16)
			if err != nil {
				log.Fatalf("build record %s #%d: %v", id, i, err)
			}

			packed, err := rec.Pack()
			if err != nil {
				log.Fatalf("pack record %s #%d: %v", id, i, err)
			}
			archive.Write(packed)
		}
	}

	archiveBytes := bytes.NewReader(archive.Bytes())

	idx, err := stream.BuildIndex(archiveBytes)
	if err != nil {
		log.Fatalf("build index: %v", err)
	}

	fmt.Printf("indexed %d distinct identifiers\n", idx.Count())

	summaries := make([]sidecarSummary, 0, len(identifiers))
	for _, id := range identifiers {
		offsets := idx.Offsets(id)
		summaries = append(summaries, sidecarSummary{Identifier: id, RecordCount: len(offsets)})
		fmt.Printf("  %-24s offsets=%v\n", id, offsets)
	}

	sidecar, err := json.Marshal(summaries)
	if err != nil {
		log.Fatalf("marshal sidecar: %v", err)
	}

	for _, ct := range []format.CompressionType{format.CompressionZstd, format.CompressionLZ4} {
		codec, err := auxblob.CreateCodec(ct, "sidecar index")
		if err != nil {
			log.Fatalf("create %s codec: %v", ct, err)
		}

		compressed, err := codec.Compress(sidecar)
		if err != nil {
			log.Fatalf("%s compress: %v", ct, err)
		}

		restored, err := codec.Decompress(compressed)
		if err != nil {
			log.Fatalf("%s decompress: %v", ct, err)
		}
		if !bytes.Equal(restored, sidecar) {
			log.Fatalf("%s round-trip mismatch", ct)
		}

		fmt.Printf("%s: %d bytes -> %d bytes (round-trips clean)\n", ct, len(sidecar), len(compressed))
	}
}
