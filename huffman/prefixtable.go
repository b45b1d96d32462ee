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

// prefixTable is the decoder's flat 2^lMax-entry lookup keyed by the top
// lMax bits of the stream. It is resized lazily, once per stream, by the
// encoder-declared L_max rather than a compile-time constant.
type prefixTable struct {
	lMax    int
	entries []codeRecord
}

func (t *prefixTable) resize(lMax int) {
	if t.lMax == lMax && t.entries != nil {
		return
	}

	t.lMax = lMax
	t.entries = make([]codeRecord, 1<<uint(lMax))
}

// build populates every entry implied by records, which must carry final
// canonical codes and lengths. For a code c of length l, every index whose
// top l bits equal c is set to that record - 2^(lMax-l) entries in all.
// Entries are zeroed first: a code set whose Kraft sum is strictly below
// 2^L_max leaves gaps the records don't cover, and a stale entry from a
// previous chunk's alphabet in one of those gaps would let a corrupted
// stream decode a wrong symbol instead of tripping CorruptStream.
func (t *prefixTable) build(records []codeRecord) {
	for i := range t.entries {
		t.entries[i] = codeRecord{}
	}

	shift := uint(t.lMax)

	for _, r := range records {
		run := uint(1) << (shift - uint(r.length))
		start := uint(r.code) << (shift - uint(r.length))

		for i := start; i < start+run; i++ {
			t.entries[i] = r
		}
	}
}

// lookup returns the entry at idx, or a zero-value codeRecord (length 0)
// for a gap left by a code set whose Kraft sum is strictly below 2^L_max.
func (t *prefixTable) lookup(idx uint64) codeRecord {
	return t.entries[idx]
}
