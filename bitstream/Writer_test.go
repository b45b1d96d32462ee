/*
Copyright 2011-2025 Frederic Langlet
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
you may obtain a copy of the License at

                http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package bitstream

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// plainWriter hides *bytes.Buffer's unrelated methods but deliberately does
// not implement io.WriterAt, exercising the buffered-fallback path.
type plainWriter struct {
	buf bytes.Buffer
}

func (p *plainWriter) Write(b []byte) (int, error) { return p.buf.Write(b) }

func TestWriterHeaderBufferedFallback(t *testing.T) {
	pw := &plainWriter{}

	w, err := NewWriter(pw)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}

	if err := w.WriteBits(0x5, 3); err != nil {
		t.Fatalf("WriteBits: %v", err)
	}

	if err := w.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	out := pw.buf.Bytes()
	if len(out) != 2 {
		t.Fatalf("expected 2 bytes (header + 1 payload byte), got %d", len(out))
	}

	if out[0]>>magicShift != magic {
		t.Fatalf("header magic mismatch: got %x", out[0])
	}

	if rem := out[0] & remainderMax; rem != 5 {
		t.Fatalf("expected remainder 5, got %d", rem)
	}
}

func TestWriterHeaderPatchedInPlace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.bin")

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()

	w, err := NewWriter(f)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}

	if w.patcher == nil {
		t.Fatalf("expected *os.File to be detected as io.WriterAt")
	}

	if err := w.WriteByte(0xAB); err != nil {
		t.Fatalf("WriteByte: %v", err)
	}

	if err := w.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	if len(data) != 2 || data[1] != 0xAB {
		t.Fatalf("unexpected output: % x", data)
	}

	if data[0]&remainderMax != 0 {
		t.Fatalf("expected zero remainder for byte-aligned payload, got %d", data[0]&remainderMax)
	}
}

func TestWriterRejectsNilSink(t *testing.T) {
	if _, err := NewWriter(nil); err == nil {
		t.Fatal("expected error for nil sink")
	}
}

func TestWriterStickyFailure(t *testing.T) {
	pw := &plainWriter{}
	w, err := NewWriter(pw)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}

	for i := 0; i < 9; i++ {
		if err := w.WriteBits(1, 8); err != nil {
			t.Fatalf("WriteBits iteration %d: %v", i, err)
		}
	}

	w.fail(ErrSinkClosed)

	if err := w.WriteBits(1, 1); err != ErrSinkClosed {
		t.Fatalf("expected ErrSinkClosed after failure, got %v", err)
	}

	if err := w.Finish(); err != ErrSinkClosed {
		t.Fatalf("expected Finish to surface the sticky error, got %v", err)
	}
}

func TestWriteBitsRejectsOutOfRangeCount(t *testing.T) {
	pw := &plainWriter{}
	w, _ := NewWriter(pw)

	if err := w.WriteBits(0, 0); err == nil {
		t.Fatal("expected error for n == 0")
	}

	if err := w.WriteBits(0, maxBits+1); err == nil {
		t.Fatal("expected error for n > maxBits")
	}
}

func TestWriterCrossesWordBoundary(t *testing.T) {
	pw := &plainWriter{}
	w, err := NewWriter(pw)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}

	// 5 writes of 13 bits = 65 bits, guaranteed to straddle the 64-bit
	// accumulator boundary at least once.
	values := []uint64{0x1A3, 0x0FF, 0x155, 0x1C2, 0x001}

	for _, v := range values {
		if err := w.WriteBits(v, 13); err != nil {
			t.Fatalf("WriteBits(%x): %v", v, err)
		}
	}

	if err := w.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	r, err := NewReader(bytes.NewReader(pw.buf.Bytes()))
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}

	for i, want := range values {
		got, err := r.ReadBits(13)
		if err != nil {
			t.Fatalf("ReadBits(%d): %v", i, err)
		}
		if got != want {
			t.Fatalf("value %d: got %x, want %x", i, got, want)
		}
	}
}
