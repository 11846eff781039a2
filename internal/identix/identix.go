// Package identix provides a fast, non-cryptographic hash of a channel
// identifier string, used by stream.Index to key an in-memory
// offset table without retaining the identifier strings themselves.
package identix

import "github.com/cespare/xxhash/v2"

// ID returns the 64-bit xxHash of a canonical Source Identifier
// string (e.g. "FDSN:XX_FAKE__H_H_Z").
func ID(identifier string) uint64 {
	return xxhash.Sum64String(identifier)
}
