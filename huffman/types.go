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

// Package huffman implements length-limited canonical Huffman coding over
// the bit-granular framing in package bitstream: a chunked stream codec
// that rebuilds its code table from scratch for every chunk.
package huffman

const (
	alphabetSize = 256

	// arenaSize is 2*alphabetSize-1 (511) rounded up to 512, the maximum
	// number of nodes a single chunk's Huffman tree can need.
	arenaSize = 512

	minCodeLength = 1
	maxCodeLength = 15 // codes are 16 bits wide; L_max must stay below that
)

// symbol is one input byte.
type symbol = uint8

// frequency counts a symbol's occurrences within a chunk.
type frequency = uint64

// code is a Huffman code value; only the low length bits are meaningful.
type code = uint16

// length is the bit-length of a code, in [1, L_max].
type length = uint8

// codeRecord is one entry of either the encoder's code table or the
// decoder's prefix table.
type codeRecord struct {
	sym    symbol
	code   code
	length length
}

// node is one entry of the tree arena: either a leaf (children < 0) or an
// internal node formed from two earlier nodes.
type node struct {
	freq        frequency
	left, right int // arena indices, or -1 for a leaf
	sym         symbol
	isLeaf      bool
}
