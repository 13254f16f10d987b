package hash

import (
	"bytes"
	"encoding/hex"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"
)

func TestKnownVector(t *testing.T) {
	h := New()
	_, _ = h.Write([]byte("abc"))
	got := h.SumHex()
	const want = "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	if got != want {
		t.Fatalf("hash mismatch got %s want %s", got, want)
	}
}

func TestStreamingEqualsSingleWrite(t *testing.T) {
	a := New()
	_, _ = a.Write([]byte("hello world"))
	b := New()
	_, _ = b.Write([]byte("hello "))
	_, _ = b.Write([]byte("world"))
	if a.SumHex() != b.SumHex() {
		t.Fatalf("streaming mismatch got %s vs %s", a.SumHex(), b.SumHex())
	}
}

func TestSumDoesNotDisturbState(t *testing.T) {
	h := New()
	_, _ = h.Write([]byte("ab"))
	prefix := h.Sum([]byte("x"))
	if len(prefix) != 1+h.Size() || prefix[0] != 'x' {
		t.Fatalf("Sum should append to b, got %d bytes", len(prefix))
	}
	_, _ = h.Write([]byte("c"))
	if got := h.SumHex(); got != "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad" {
		t.Fatalf("continued hash mismatch got %s", got)
	}
	h.Reset()
	if got := h.SumHex(); got != "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855" {
		t.Fatalf("reset hash mismatch got %s", got)
	}
}

func TestStreamLargeInput(t *testing.T) {
	content := make([]byte, 3*ChunkSize+17)
	for i := range content {
		content[i] = byte(i % 251)
	}
	h := New()
	_, _ = h.Write(content)

	var chunks int
	var last int64
	sum, n, err := Stream(iotest.HalfReader(bytes.NewReader(content)), func(total int64) {
		chunks++
		last = total
	})
	if err != nil {
		t.Fatalf("Stream() error = %v", err)
	}
	if n != int64(len(content)) || last != n {
		t.Fatalf("byte count mismatch got n=%d last=%d want %d", n, last, len(content))
	}
	if chunks < 4 {
		t.Fatalf("expected several chunks, got %d", chunks)
	}
	if hex.EncodeToString(sum[:]) != h.SumHex() {
		t.Fatalf("stream mismatch got %x want %s", sum, h.SumHex())
	}
}

func TestStreamEmpty(t *testing.T) {
	sum, n, err := Stream(strings.NewReader(""), nil)
	if err != nil {
		t.Fatalf("Stream() error = %v", err)
	}
	if n != 0 {
		t.Fatalf("expected zero bytes, got %d", n)
	}
	if got := hex.EncodeToString(sum[:]); got != "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855" {
		t.Fatalf("empty stream mismatch got %s", got)
	}
}

func TestStreamReturnsReadError(t *testing.T) {
	boom := errors.New("boom")
	r := io.MultiReader(strings.NewReader("partial"), iotest.ErrReader(boom))
	_, n, err := Stream(r, nil)
	if !errors.Is(err, boom) {
		t.Fatalf("expected read error, got %v", err)
	}
	if n != int64(len("partial")) {
		t.Fatalf("expected partial count, got %d", n)
	}
}
