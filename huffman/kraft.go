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

// KraftSum computes Σ 2^(lMax - length_i) over lengths, as a fixed-point
// integer with lMax fractional bits. A uniquely decodable code set with
// every length in [1, lMax] satisfies KraftSum(lengths, lMax) <= 1<<lMax;
// exposed primarily so tests can check the length-limiting step directly.
func KraftSum(lengths []int, lMax int) uint64 {
	var sum uint64
	for _, l := range lengths {
		sum += uint64(1) << uint(lMax-l)
	}
	return sum
}

func kraftSumRecords(records []codeRecord, lMax int) uint64 {
	var sum uint64
	for _, r := range records {
		sum += uint64(1) << uint(lMax-int(r.length))
	}
	return sum
}
