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

// limitLengths clips every length above lMax down to lMax, then repeatedly
// lengthens the longest not-yet-maximal-length record until the Kraft sum
// is feasible again. This is the scheme Charles Bloom describes for
// length-limited Huffman codes; other algorithms preserving the Kraft
// bound, the [1, lMax] length bound, and determinism are equally valid,
// but this is the one actually implemented here. records is re-sorted
// into canonical order before returning, since clipping and lengthening
// can both disturb it.
func limitLengths(records []codeRecord, lMax int) error {
	for i := range records {
		if int(records[i].length) > lMax {
			records[i].length = length(lMax)
		}
	}

	limit := uint64(1) << uint(lMax)

	for kraftSumRecords(records, lMax) > limit {
		best := -1

		for i := range records {
			if int(records[i].length) >= lMax {
				continue
			}
			if best == -1 || records[i].length > records[best].length {
				best = i
			}
		}

		if best == -1 {
			return newError(LengthLimitingFailed, "could not bring Kraft sum within 2^L_max")
		}

		records[best].length++
	}

	canonicalSort(records)
	return nil
}
