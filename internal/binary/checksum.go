package binary

import "github.com/cespare/xxhash/v2"

// Digest accumulates an xxhash-64 checksum over several buffers. It is
// used for keyword checksums in offset indexes and for grid fingerprints.
type Digest struct {
	d *xxhash.Digest
}

// NewDigest returns an empty Digest.
func NewDigest() *Digest {
	return &Digest{d: xxhash.New()}
}

// Write adds p to the digest.
func (d *Digest) Write(p []byte) {
	// xxhash.Digest.Write never returns an error.
	_, _ = d.d.Write(p)
}

// Sum64 returns the current digest value.
func (d *Digest) Sum64() uint64 {
	return d.d.Sum64()
}
