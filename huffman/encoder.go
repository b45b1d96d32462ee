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

const (
	versionPlain   = 1
	versionChecked = 2
)

// Encoder drives chunk-at-a-time Huffman encoding: histogram, tree, code
// lengths, length-limiting, canonicalization, then the per-chunk table and
// symbol bits, repeated until the source is exhausted.
type Encoder struct {
	cfg      Config
	listener Listener

	arena   arena
	chunk   []byte
	leaves  []codeRecord
	symCode [alphabetSize]codeRecord
	hist    [alphabetSize]frequency
}

// NewEncoder validates cfg and returns an Encoder ready to reuse across
// many EncodeStream/EncodeStreamChecked calls.
func NewEncoder(cfg Config, listener Listener) (*Encoder, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &Encoder{
		cfg:      cfg,
		listener: listener,
		chunk:    make([]byte, cfg.ChunkSize),
		leaves:   make([]codeRecord, 0, alphabetSize),
	}, nil
}

// EncodeStream encodes source in full to sink as a version-1 stream.
func (e *Encoder) EncodeStream(source io.Reader, sink io.Writer) error {
	return e.encode(source, sink, versionPlain)
}

// EncodeStreamChecked encodes source in full to sink as a version-2
// stream: identical to version 1 but followed by a trailing xxhash64
// digest of the original bytes, verified by DecodeStreamChecked.
func (e *Encoder) EncodeStreamChecked(source io.Reader, sink io.Writer) error {
	return e.encode(source, sink, versionChecked)
}

func (e *Encoder) encode(source io.Reader, sink io.Writer, version uint8) error {
	bw, err := bitstream.NewWriter(sink)
	if err != nil {
		return wrapError(SinkWriteFailed, "opening bit-stream writer", err)
	}

	var digest *xxhash.Digest
	if version == versionChecked {
		digest = xxhash.New()
		source = io.TeeReader(source, digest)
	}

	if err := e.writeHeader(bw, version); err != nil {
		return err
	}

	chunkIndex := 0
	var totalBytes int64

	for {
		n, err := readFull(source, e.chunk)
		if err != nil {
			return wrapError(SourceReadFailed, "reading chunk", err)
		}

		if n == 0 {
			break
		}

		notify(e.listener, Event{Type: EventChunkStart, ChunkIndex: chunkIndex, ByteCount: int64(n)})

		nn, err := e.encodeChunk(bw, e.chunk[:n])
		if err != nil {
			return err
		}

		totalBytes += int64(n)
		notify(e.listener, Event{Type: EventChunkEnd, ChunkIndex: chunkIndex, ByteCount: int64(n), MaxCodeLength: nn})
		chunkIndex++

		if n < len(e.chunk) {
			break
		}
	}

	if version == versionChecked {
		sum := digest.Sum64()
		if err := bw.WriteBits(sum>>32, 32); err != nil {
			return wrapError(SinkWriteFailed, "writing checksum high word", err)
		}
		if err := bw.WriteBits(sum&0xFFFFFFFF, 32); err != nil {
			return wrapError(SinkWriteFailed, "writing checksum low word", err)
		}
	}

	if err := bw.Finish(); err != nil {
		return wrapError(SinkWriteFailed, "finishing bit-stream", err)
	}

	notify(e.listener, Event{Type: EventStreamEnd, ByteCount: totalBytes})
	return nil
}

func (e *Encoder) writeHeader(bw *bitstream.Writer, version uint8) error {
	if err := bw.WriteByte(version); err != nil {
		return wrapError(SinkWriteFailed, "writing version", err)
	}

	if err := bw.WriteWord(e.cfg.chunkSizeKB()); err != nil {
		return wrapError(SinkWriteFailed, "writing chunk size", err)
	}

	if err := bw.WriteByte(byte(e.cfg.MaxCodeLength)); err != nil {
		return wrapError(SinkWriteFailed, "writing max code length", err)
	}

	return nil
}

// encodeChunk builds the code table for chunk, emits it followed by the
// chunk's encoded symbol bits, and returns the per-chunk maximum length NN.
func (e *Encoder) encodeChunk(bw *bitstream.Writer, chunk []byte) (int, error) {
	clearHistogram(&e.hist)
	computeHistogram(chunk, &e.hist)

	_, leaves := buildTree(&e.arena, &e.hist)
	e.leaves = append(e.leaves[:0], leaves...)

	canonicalSort(e.leaves)

	if err := limitLengths(e.leaves, e.cfg.MaxCodeLength); err != nil {
		return 0, err
	}

	assignCanonicalCodes(e.leaves)

	for i := range e.symCode {
		e.symCode[i] = codeRecord{}
	}
	for _, r := range e.leaves {
		e.symCode[r.sym] = r
	}

	nn, err := e.writeTable(bw)
	if err != nil {
		return 0, err
	}

	for _, b := range chunk {
		r := e.symCode[b]
		if err := bw.WriteBits(uint64(r.code), uint(r.length)); err != nil {
			return 0, wrapError(SinkWriteFailed, "writing symbol bits", err)
		}
	}

	return nn, nil
}

// writeTable emits NN, N_1..N_NN, then the symbols in canonical order.
// N_ℓ wraps modulo 256 on the wire: the only length that can legitimately
// hold all 256 symbols is NN itself (see DecodeStream for the inverse).
func (e *Encoder) writeTable(bw *bitstream.Writer) (int, error) {
	var counts [maxCodeLength + 1]int
	nn := 0

	for _, r := range e.leaves {
		counts[r.length]++
		if int(r.length) > nn {
			nn = int(r.length)
		}
	}

	if err := bw.WriteByte(byte(nn)); err != nil {
		return 0, wrapError(SinkWriteFailed, "writing NN", err)
	}

	for l := 1; l <= nn; l++ {
		if err := bw.WriteByte(byte(counts[l] & 0xFF)); err != nil {
			return 0, wrapError(SinkWriteFailed, "writing N_l", err)
		}
	}

	for _, r := range e.leaves {
		if err := bw.WriteByte(r.sym); err != nil {
			return 0, wrapError(SinkWriteFailed, "writing table symbol", err)
		}
	}

	return nn, nil
}

// EncodeBytes is a convenience wrapper over EncodeStream for in-memory data.
func (e *Encoder) EncodeBytes(data []byte) ([]byte, error) {
	var dst bytes.Buffer

	if err := e.EncodeStream(bytes.NewReader(data), &dst); err != nil {
		return nil, err
	}

	return dst.Bytes(), nil
}

// EncodeFile is a convenience wrapper over EncodeStream for files.
func (e *Encoder) EncodeFile(inPath, outPath string) error {
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

	return e.EncodeStream(in, out)
}

// readFull reads until buf is full or the source is exhausted, unlike
// io.ReadFull it treats a short final read as success rather than
// io.ErrUnexpectedEOF, since chunks are allowed to be partial.
func readFull(r io.Reader, buf []byte) (int, error) {
	total := 0

	for total < len(buf) {
		n, err := r.Read(buf[total:])
		total += n

		if err != nil {
			if err == io.EOF {
				return total, nil
			}
			return total, err
		}

		if n == 0 {
			return total, nil
		}
	}

	return total, nil
}
