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
	"io"

	"github.com/pkg/errors"
)

// ErrBadMagic is returned by NewReader when the header byte's top 5 bits
// don't match the expected magic number.
var ErrBadMagic = errors.New("bitstream: bad magic number in header")

// Reader is a bit-granular cursor over a byte source, the dual of Writer.
// Bits are exposed most-significant-bit first via ReadBits, or inspected
// without consuming them via PeekBits/DiscardBits.
type Reader struct {
	src io.Reader

	remainder byte // zero-fill bits padded onto the last payload byte
	sawEOF    bool // the underlying source has no more bytes to offer

	current uint64 // next bits to deliver, MSB-aligned at the top
	avail   uint   // number of valid bits in current, in [0, 64]

	failed bool
	err    error
}

// NewReader reads and validates the header byte, then returns a Reader
// positioned at the start of the payload.
func NewReader(src io.Reader) (*Reader, error) {
	if src == nil {
		return nil, errors.New("bitstream: nil source")
	}

	var header [1]byte

	if _, err := io.ReadFull(src, header[:]); err != nil {
		return nil, errors.Wrap(err, "bitstream: reading header")
	}

	if header[0]>>magicShift != magic {
		return nil, ErrBadMagic
	}

	r := &Reader{
		src:       src,
		remainder: header[0] & remainderMax,
	}

	return r, nil
}

func (r *Reader) fail(err error) {
	if !r.failed {
		r.failed = true
		r.err = err
	}
}

// readByte pulls a single byte from the source.
func (r *Reader) readByte() (byte, error) {
	var b [1]byte

	n, err := r.src.Read(b[:])
	if n == 1 {
		return b[0], nil
	}

	if err == nil || err == io.EOF {
		return 0, io.EOF
	}

	return 0, err
}

// ensureAvail refills current until it holds at least n valid bits, or the
// source is exhausted (in which case avail may end up smaller than n). The
// final byte's zero-fill bits are not stripped: they stay in current and
// count toward avail, so PeekBits and ReadBits can return them; only
// FullyConsumed takes the declared remainder into account.
func (r *Reader) ensureAvail(n uint) error {
	for r.avail < n && !r.sawEOF {
		b, err := r.readByte()
		if err == io.EOF {
			r.sawEOF = true
			break
		}
		if err != nil {
			r.fail(errors.Wrap(err, "bitstream: reading source"))
			return r.err
		}

		r.current |= uint64(b) << (56 - r.avail)
		r.avail += 8
	}

	return nil
}

// PeekBits returns the next up to n bits (n in [1, 56]) without consuming
// them, right-aligned in the returned value. got reports how many bits
// were actually available; got < n only when the stream is exhausted.
// Call DiscardBits(got) to consume what was peeked.
func (r *Reader) PeekBits(n uint) (value uint64, got uint, err error) {
	if r.failed {
		return 0, 0, r.err
	}

	if n == 0 || n > maxBits {
		return 0, 0, errors.Errorf("bitstream: invalid bit count %d (must be in [1..%d])", n, maxBits)
	}

	if err := r.ensureAvail(n); err != nil {
		return 0, 0, err
	}

	got = n
	if r.avail < got {
		got = r.avail
	}

	if got == 0 {
		return 0, 0, nil
	}

	value = r.current >> (64 - got)
	return value, got, nil
}

// DiscardBits consumes n bits previously returned by PeekBits.
func (r *Reader) DiscardBits(n uint) error {
	if r.failed {
		return r.err
	}

	if n > r.avail {
		return errors.Errorf("bitstream: discard of %d bits exceeds %d buffered", n, r.avail)
	}

	r.current <<= n
	r.avail -= n
	return nil
}

// ReadBits consumes and returns the next n bits (n in [1, 56]). Returns an
// error if fewer than n bits remain.
func (r *Reader) ReadBits(n uint) (uint64, error) {
	value, got, err := r.PeekBits(n)
	if err != nil {
		return 0, err
	}

	if got < n {
		return 0, errors.Errorf("bitstream: requested %d bits, only %d available", n, got)
	}

	if err := r.DiscardBits(n); err != nil {
		return 0, err
	}

	return value, nil
}

// ReadByte consumes and returns the next 8 bits.
func (r *Reader) ReadByte() (byte, error) {
	v, err := r.ReadBits(8)
	return byte(v), err
}

// ReadWord consumes and returns the next 16 bits.
func (r *Reader) ReadWord() (uint16, error) {
	v, err := r.ReadBits(16)
	return uint16(v), err
}

// FullyConsumed reports whether every meaningful bit of the stream
// (payload, excluding the declared trailing zero-fill) has been read.
func (r *Reader) FullyConsumed() bool {
	if r.avail > uint(r.remainder) {
		return false
	}

	if !r.sawEOF {
		// Probe the source: either another byte arrives (more payload) or
		// EOF is observed and the buffered bits are the trailing zero-fill.
		if err := r.ensureAvail(r.avail + 1); err != nil {
			return false
		}
	}

	return r.sawEOF && r.avail <= uint(r.remainder)
}
