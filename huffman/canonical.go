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

import "golang.org/x/exp/slices"

// canonicalSort orders records by length ascending, then symbol ascending.
// This is the order every later step (length-limiting, code assignment,
// wire encoding) assumes.
func canonicalSort(records []codeRecord) {
	slices.SortFunc(records, func(a, b codeRecord) int {
		if a.length != b.length {
			return int(a.length) - int(b.length)
		}
		return int(a.sym) - int(b.sym)
	})
}

// assignCanonicalCodes fills in record.code for every record, which must
// already be in canonical (length, symbol) order with lengths finalized.
func assignCanonicalCodes(records []codeRecord) {
	if len(records) == 0 {
		return
	}

	var c code
	prevLen := records[0].length

	for i := range records {
		if records[i].length > prevLen {
			c <<= records[i].length - prevLen
			prevLen = records[i].length
		}

		records[i].code = c
		c++
	}
}
