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

// computeHistogram counts each symbol's occurrences in chunk into hist,
// which the caller must have zeroed.
func computeHistogram(chunk []byte, hist *[alphabetSize]frequency) {
	for _, b := range chunk {
		hist[b]++
	}
}

func clearHistogram(hist *[alphabetSize]frequency) {
	for i := range hist {
		hist[i] = 0
	}
}
