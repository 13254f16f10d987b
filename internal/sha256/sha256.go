// Package sha256 implements the SHA-256 hash function defined in FIPS 180-4
// as an incremental engine.
//
// A Digest accepts a message through any number of Update calls and produces
// the 32-byte digest from Finish. Splitting a message across calls never
// changes the result. A Digest must not be used by more than one goroutine at
// a time; independent Digests need no coordination.
package sha256

import (
	"encoding/binary"
	"errors"
)

const (
	// Size is the length of a SHA-256 digest in bytes.
	Size = 32
	// BlockSize is the length of one compression block in bytes.
	BlockSize = 64
	// MaxMessageLen is the longest message, in bytes, a Digest accepts.
	// Its bit length always fits the 64-bit length field of the padding.
	MaxMessageLen = 1<<61 - 1
)

// ErrMessageTooLong is the panic value raised when more than MaxMessageLen
// bytes are written to one Digest.
var ErrMessageTooLong = errors.New("sha256: message exceeds 2^61-1 bytes")

// initial hash values, FIPS 180-4 section 5.3.3.
var iv = [8]uint32{
	0x6a09e667, 0xbb67ae85, 0x3c6ef372, 0xa54ff53a,
	0x510e527f, 0x9b05688c, 0x1f83d9ab, 0x5be0cd19,
}

// Digest is a running SHA-256 computation. The zero value is ready to use and
// is equivalent to the result of New.
type Digest struct {
	state    [8]uint32
	blocks   uint64
	pending  [BlockSize]byte
	npending int
	started  bool
}

// New returns a Digest in the initial state.
func New() *Digest {
	d := new(Digest)
	d.Reset()
	return d
}

// Reset returns d to the initial state, discarding everything written so far.
func (d *Digest) Reset() {
	d.state = iv
	d.blocks = 0
	d.pending = [BlockSize]byte{}
	d.npending = 0
	d.started = true
}

// Len reports the number of message bytes written since the last reset.
func (d *Digest) Len() uint64 {
	return d.blocks*BlockSize + uint64(d.npending)
}

// Clone returns an independent copy of d. Finishing the copy yields the digest
// of the message so far without disturbing d.
func (d *Digest) Clone() *Digest {
	c := *d
	return &c
}

// Update appends p to the message. It panics with ErrMessageTooLong if the
// total message would exceed MaxMessageLen bytes.
func (d *Digest) Update(p []byte) {
	if !d.started {
		d.Reset()
	}
	if uint64(len(p)) > MaxMessageLen-d.Len() {
		panic(ErrMessageTooLong)
	}
	d.update(p)
}

// Write implements io.Writer. It always consumes all of p and never fails.
func (d *Digest) Write(p []byte) (int, error) {
	d.Update(p)
	return len(p), nil
}

func (d *Digest) update(p []byte) {
	if d.npending > 0 && d.npending+len(p) >= BlockSize {
		n := copy(d.pending[d.npending:], p)
		d.compress(d.pending[:])
		d.npending = 0
		p = p[n:]
	}
	if full := len(p) &^ (BlockSize - 1); full > 0 {
		d.compress(p[:full])
		p = p[full:]
	}
	if len(p) > 0 {
		d.npending += copy(d.pending[d.npending:], p)
	}
}

// compress runs the compression function over p, whose length must be a
// multiple of BlockSize.
func (d *Digest) compress(p []byte) {
	block(&d.state, p)
	d.blocks += uint64(len(p) / BlockSize)
}

// Finish pads the message, returns its digest and resets d to the initial
// state. The digest is the big-endian encoding of the final chaining value.
func (d *Digest) Finish() [Size]byte {
	if !d.started {
		d.Reset()
	}

	bits := d.Len() << 3

	// 0x80, zero fill up to 56 mod 64, then the 64-bit bit length. At most
	// 64+8 bytes are ever needed.
	var pad [BlockSize + 8]byte
	pad[0] = 0x80
	n := 56 - d.npending
	if d.npending >= 56 {
		n = 120 - d.npending
	}
	binary.BigEndian.PutUint64(pad[n:], bits)
	d.update(pad[:n+8])

	if d.npending != 0 {
		panic("sha256: padding left a partial block")
	}

	var out [Size]byte
	for i, v := range d.state {
		binary.BigEndian.PutUint32(out[i*4:], v)
	}
	d.Reset()
	return out
}

// Sum returns the SHA-256 digest of p.
func Sum(p []byte) [Size]byte {
	var d Digest
	d.Update(p)
	return d.Finish()
}
