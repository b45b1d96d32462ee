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

// Package bitstream implements the bit-granular framing every payload in
// this module is layered on top of. A stream begins with a single header
// byte: a 5-bit magic number followed by a 3-bit count of the zero-filled
// bits padded onto the last payload byte.
package bitstream

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

const (
	magic        = 0x1A // top 5 bits of the header byte
	magicShift   = 3
	remainderMax = 7 // low 3 bits of the header byte

	// maxBits bounds a single WriteBits/ReadBits/PeekBits call. Nothing in
	// this module ever writes more than 32 bits (half of the version-2
	// checksum) at once; 56 leaves ample headroom while keeping the 64-bit
	// accumulator's refill arithmetic overflow-free one byte at a time
	// (56+8 == 64).
	maxBits = 56
)

// ErrSinkClosed is returned once a Writer has entered its sticky failed
// state; every subsequent write is a no-op that returns this error.
var ErrSinkClosed = errors.New("bitstream: sink closed or previously failed")

// Writer is a bit-granular cursor over a byte sink. The first byte written
// is a placeholder header, patched with the true trailing-bit remainder
// when Finish is called.
type Writer struct {
	sink    io.Writer
	patcher io.WriterAt // non-nil when sink supports in-place header patch
	buf     []byte      // full in-memory output, used only when patcher == nil

	current uint64 // bits accumulated so far, MSB-aligned at the top
	used    uint   // number of valid bits in current, in [0, 64]

	failed bool
	err    error
	done   bool // Finish has already run
}

// NewWriter constructs a Writer over sink and reserves the header byte.
//
// If sink also implements io.WriterAt (as *os.File does), the header is
// patched in place at Finish and the writer never buffers more than the
// current 64-bit word. Otherwise the entire stream is buffered in memory
// and flushed in one shot at Finish, since a plain io.Writer gives no way
// to revisit a byte already written.
func NewWriter(sink io.Writer) (*Writer, error) {
	if sink == nil {
		return nil, errors.New("bitstream: nil sink")
	}

	w := &Writer{sink: sink}

	if patcher, ok := sink.(io.WriterAt); ok {
		w.patcher = patcher

		if _, err := sink.Write([]byte{0}); err != nil {
			return nil, errors.Wrap(err, "bitstream: writing header placeholder")
		}
	} else {
		w.buf = append(w.buf, 0)
	}

	return w, nil
}

// Failed reports whether the writer has entered its sticky failed state.
func (w *Writer) Failed() bool {
	return w.failed
}

func (w *Writer) fail(err error) {
	if !w.failed {
		w.failed = true
		w.err = err
	}
}

// WriteBits appends the low n bits of value to the stream, most-significant
// bit first. n must be in [1, 56]. A no-op once the writer has failed.
func (w *Writer) WriteBits(value uint64, n uint) error {
	if w.failed {
		return ErrSinkClosed
	}

	if n == 0 || n > maxBits {
		return errors.Errorf("bitstream: invalid bit count %d (must be in [1..%d])", n, maxBits)
	}

	value &= (uint64(1) << n) - 1

	if w.used+n <= 64 {
		w.current |= value << (64 - w.used - n)
		w.used += n

		if w.used == 64 {
			if err := w.flushWord(); err != nil {
				return err
			}
		}

		return nil
	}

	room := 64 - w.used
	hi := value >> (n - room)
	w.current |= hi
	w.used = 64

	if err := w.flushWord(); err != nil {
		return err
	}

	lo := value & ((uint64(1) << (n - room)) - 1)
	w.used = n - room
	w.current = lo << (64 - w.used)
	return nil
}

// WriteByte writes a full byte, most-significant bit first.
func (w *Writer) WriteByte(b byte) error {
	return w.WriteBits(uint64(b), 8)
}

// WriteWord writes a 16-bit word, most-significant bit first.
func (w *Writer) WriteWord(v uint16) error {
	return w.WriteBits(uint64(v), 16)
}

func (w *Writer) flushWord() error {
	var word [8]byte
	binary.BigEndian.PutUint64(word[:], w.current)

	if err := w.flush(word[:]); err != nil {
		w.fail(err)
		return err
	}

	w.current = 0
	w.used = 0
	return nil
}

func (w *Writer) flush(b []byte) error {
	if w.patcher != nil {
		_, err := w.sink.Write(b)
		return errors.Wrap(err, "bitstream: sink write")
	}

	w.buf = append(w.buf, b...)
	return nil
}

// Finish zero-pads any partial byte, flushes remaining bits, and patches the
// header with the final trailing-bit remainder. Returns an error if any
// sink write failed, now or previously.
func (w *Writer) Finish() error {
	if w.done {
		return w.err
	}

	w.done = true

	if w.failed {
		return w.err
	}

	meaningfulBytes := (w.used + 7) / 8
	remainder := byte(meaningfulBytes*8 - w.used)

	if meaningfulBytes > 0 {
		var word [8]byte
		binary.BigEndian.PutUint64(word[:], w.current)

		if err := w.flush(word[:meaningfulBytes]); err != nil {
			w.fail(err)
			return err
		}
	}

	header := byte(magic<<magicShift) | remainder

	if w.patcher != nil {
		if _, err := w.patcher.WriteAt([]byte{header}, 0); err != nil {
			w.fail(errors.Wrap(err, "bitstream: patching header"))
			return w.err
		}

		return nil
	}

	w.buf[0] = header

	if _, err := w.sink.Write(w.buf); err != nil {
		w.fail(errors.Wrap(err, "bitstream: flushing buffered stream"))
		return w.err
	}

	return nil
}
