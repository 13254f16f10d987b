// Package hash provides streaming helpers around the SHA-256 engine.
package hash

import (
	"encoding/hex"
	"errors"
	stdhash "hash"
	"io"

	"sha256sum/internal/sha256"
)

// ChunkSize is the read buffer size used by Stream.
const ChunkSize = 16 * 1024

var _ stdhash.Hash = (*Hasher)(nil)

// Hasher adapts the SHA-256 engine to hash.Hash.
type Hasher struct {
	d sha256.Digest
}

// New creates a hasher in the initial state.
func New() *Hasher {
	return &Hasher{}
}

// Write adds data to the hash state.
func (h *Hasher) Write(p []byte) (int, error) { return h.d.Write(p) }

// Sum appends the digest of the data written so far to b. The running state
// is left untouched.
func (h *Hasher) Sum(b []byte) []byte {
	sum := h.d.Clone().Finish()
	return append(b, sum[:]...)
}

// Reset discards all written data.
func (h *Hasher) Reset() { h.d.Reset() }

// Size returns the digest length in bytes.
func (h *Hasher) Size() int { return sha256.Size }

// BlockSize returns the engine block size in bytes.
func (h *Hasher) BlockSize() int { return sha256.BlockSize }

// SumHex returns lowercase hex digest.
func (h *Hasher) SumHex() string { return hex.EncodeToString(h.Sum(nil)) }

// Stream reads r to EOF in ChunkSize pieces and returns the digest together
// with the number of bytes read. onChunk, when non-nil, is called after each
// chunk with the running byte count. Read errors are returned unwrapped.
func Stream(r io.Reader, onChunk func(total int64)) ([sha256.Size]byte, int64, error) {
	d := sha256.New()
	buf := make([]byte, ChunkSize)
	var total int64
	for {
		n, err := r.Read(buf)
		if n > 0 {
			d.Update(buf[:n])
			total += int64(n)
			if onChunk != nil {
				onChunk(total)
			}
		}
		if errors.Is(err, io.EOF) {
			return d.Finish(), total, nil
		}
		if err != nil {
			return [sha256.Size]byte{}, total, err
		}
	}
}
