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

package huffman

import (
	"bytes"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"

	"github.com/trflynn89/libfly-sub001/bitstream"
)

// Decoder is the inverse of Encoder: it reads the codec header once, then
// repeatedly reads a chunk's table, rebuilds the prefix table, and decodes
// symbols until the bit-stream is fully consumed.
type Decoder struct {
	listener Listener

	table   prefixTable
	records []codeRecord
	chunk   []byte
}

// NewDecoder returns a Decoder ready to reuse across many
// DecodeStream/DecodeStreamChecked calls. Unlike Encoder, a Decoder takes
// no Config: chunk size and L_max are read from the stream itself.
func NewDecoder(listener Listener) *Decoder {
	return &Decoder{
		listener: listener,
		records:  make([]codeRecord, 0, alphabetSize),
	}
}

// DecodeStream decodes a version-1 stream from source, writing the
// original bytes to sink.
func (d *Decoder) DecodeStream(source io.Reader, sink io.Writer) error {
	return d.decode(source, sink, false)
}

// DecodeStreamChecked decodes a version-1 or version-2 stream from source.
// For a version-2 stream it additionally verifies the trailing xxhash64
// digest against the decoded bytes and returns CorruptStream on mismatch.
func (d *Decoder) DecodeStreamChecked(source io.Reader, sink io.Writer) error {
	return d.decode(source, sink, true)
}

func (d *Decoder) decode(source io.Reader, sink io.Writer, allowChecked bool) error {
	br, err := bitstream.NewReader(source)
	if err != nil {
		if err == bitstream.ErrBadMagic {
			return wrapError(BadMagic, "validating bit-stream header", err)
		}
		return wrapError(SourceReadFailed, "opening bit-stream reader", err)
	}

	version, err := br.ReadByte()
	if err != nil {
		return wrapError(SourceReadFailed, "reading version", err)
	}

	if version != versionPlain && (!allowChecked || version != versionChecked) {
		return newError(UnsupportedVersion, "unrecognized codec version")
	}

	chunkSizeKB, err := br.ReadWord()
	if err != nil {
		return wrapError(SourceReadFailed, "reading chunk size", err)
	}

	lMaxByte, err := br.ReadByte()
	if err != nil {
		return wrapError(SourceReadFailed, "reading max code length", err)
	}

	lMax := int(lMaxByte)
	if lMax == 0 || lMax >= 16 {
		return newError(CorruptStream, "max code length out of range")
	}

	notify(d.listener, Event{Type: EventHeaderDecoded, MaxCodeLength: lMax})

	chunkSize := int(chunkSizeKB) * 1024
	if chunkSize == 0 {
		chunkSize = DefaultChunkSize
	}

	if cap(d.chunk) < chunkSize {
		d.chunk = make([]byte, chunkSize)
	}
	d.chunk = d.chunk[:chunkSize]

	d.table.resize(lMax)

	var digest *xxhash.Digest
	if version == versionChecked {
		digest = xxhash.New()
		sink = io.MultiWriter(sink, digest)
	}

	chunkIndex := 0
	var totalBytes int64

	for !br.FullyConsumed() {
		notify(d.listener, Event{Type: EventChunkStart, ChunkIndex: chunkIndex})

		n, err := d.decodeChunk(br, lMax)
		if err != nil {
			return err
		}

		if n == 0 {
			break
		}

		if _, err := sink.Write(d.chunk[:n]); err != nil {
			return wrapError(SinkWriteFailed, "flushing chunk", err)
		}

		totalBytes += int64(n)
		notify(d.listener, Event{Type: EventChunkEnd, ChunkIndex: chunkIndex, ByteCount: int64(n)})
		chunkIndex++
	}

	if version == versionChecked {
		hi, err := br.ReadBits(32)
		if err != nil {
			return wrapError(CorruptStream, "reading checksum", err)
		}
		lo, err := br.ReadBits(32)
		if err != nil {
			return wrapError(CorruptStream, "reading checksum", err)
		}

		want := (hi << 32) | lo
		if digest.Sum64() != want {
			return newError(CorruptStream, "checksum mismatch")
		}
	}

	notify(d.listener, Event{Type: EventStreamEnd, ByteCount: totalBytes})
	return nil
}

// decodeChunk reads one chunk's table, rebuilds the prefix table, and
// decodes symbols until either the chunk buffer fills or the bit-stream
// becomes fully consumed.
func (d *Decoder) decodeChunk(br *bitstream.Reader, lMax int) (int, error) {
	nn, err := br.ReadByte()
	if err != nil {
		return 0, wrapError(CorruptStream, "reading NN", err)
	}

	if int(nn) > lMax {
		return 0, newError(CorruptStream, "NN exceeds L_max")
	}

	if nn == 0 {
		return 0, nil
	}

	var counts [maxCodeLength + 1]int
	total := 0

	for l := 1; l <= int(nn); l++ {
		c, err := br.ReadByte()
		if err != nil {
			return 0, wrapError(CorruptStream, "reading N_l", err)
		}

		n := int(c)
		if n == 0 && l == int(nn) {
			n = 256
		}

		counts[l] = n
		total += n
	}

	if total == 0 || total > alphabetSize {
		return 0, newError(CorruptStream, "symbol count out of range")
	}

	if KraftSum(expandLengths(counts[:], int(nn)), lMax) > uint64(1)<<uint(lMax) {
		return 0, newError(CorruptStream, "Kraft sum exceeds 2^L_max")
	}

	d.records = d.records[:0]

	for l := 1; l <= int(nn); l++ {
		for k := 0; k < counts[l]; k++ {
			sym, err := br.ReadByte()
			if err != nil {
				return 0, wrapError(CorruptStream, "reading table symbol", err)
			}

			d.records = append(d.records, codeRecord{sym: sym, length: length(l)})
		}
	}

	assignCanonicalCodes(d.records)
	d.table.build(d.records)

	n := 0

	for n < len(d.chunk) {
		idx, got, err := br.PeekBits(uint(lMax))
		if err != nil {
			return 0, wrapError(SourceReadFailed, "peeking symbol bits", err)
		}

		if got == 0 {
			break
		}

		if got < uint(lMax) {
			idx <<= uint(lMax) - got
		}

		r := d.table.lookup(idx)

		if r.length == 0 || uint(r.length) > got {
			if br.FullyConsumed() {
				break
			}
			return 0, newError(CorruptStream, "truncated payload")
		}

		if err := br.DiscardBits(uint(r.length)); err != nil {
			return 0, wrapError(SourceReadFailed, "discarding symbol bits", err)
		}

		d.chunk[n] = r.sym
		n++

		if br.FullyConsumed() {
			break
		}
	}

	return n, nil
}

func expandLengths(counts []int, nn int) []int {
	lengths := make([]int, 0, alphabetSize)
	for l := 1; l <= nn; l++ {
		for k := 0; k < counts[l]; k++ {
			lengths = append(lengths, l)
		}
	}
	return lengths
}

// DecodeBytes is a convenience wrapper over DecodeStream for in-memory data.
func (d *Decoder) DecodeBytes(data []byte) ([]byte, error) {
	var dst bytes.Buffer

	if err := d.DecodeStream(bytes.NewReader(data), &dst); err != nil {
		return nil, err
	}

	return dst.Bytes(), nil
}

// DecodeFile is a convenience wrapper over DecodeStream for files.
func (d *Decoder) DecodeFile(inPath, outPath string) error {
	in, err := os.Open(inPath)
	if err != nil {
		return wrapError(SourceReadFailed, "opening input file", err)
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return wrapError(SinkWriteFailed, "creating output file", err)
	}
	defer out.Close()

	return d.DecodeStream(in, out)
}
