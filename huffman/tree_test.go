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

import "testing"

func TestBuildTreeEmptyHistogram(t *testing.T) {
	var a arena
	var hist [alphabetSize]frequency

	root, leaves := buildTree(&a, &hist)
	if root != -1 || leaves != nil {
		t.Fatalf("expected (-1, nil) for an empty histogram, got (%d, %v)", root, leaves)
	}
}

func TestBuildTreeSingleSymbol(t *testing.T) {
	var a arena
	var hist [alphabetSize]frequency
	hist[0x41] = 37

	_, leaves := buildTree(&a, &hist)
	if len(leaves) != 1 {
		t.Fatalf("expected one leaf, got %d", len(leaves))
	}

	if leaves[0].sym != 0x41 || leaves[0].length != 1 {
		t.Fatalf("degenerate chunk should assign length 1, got %+v", leaves[0])
	}
}

func TestBuildTreeTwoSymbolsEqualCounts(t *testing.T) {
	var a arena
	var hist [alphabetSize]frequency
	hist[0x41] = 2
	hist[0x42] = 2

	_, leaves := buildTree(&a, &hist)
	if len(leaves) != 2 {
		t.Fatalf("expected two leaves, got %d", len(leaves))
	}

	for _, l := range leaves {
		if l.length != 1 {
			t.Fatalf("symbol %x: expected length 1, got %d", l.sym, l.length)
		}
	}
}

func TestBuildTreeIsDeterministic(t *testing.T) {
	var hist [alphabetSize]frequency
	freqs := []frequency{5, 5, 3, 3, 3, 1, 1, 1, 1}
	for i, f := range freqs {
		hist[i] = f
	}

	var a1, a2 arena
	_, l1 := buildTree(&a1, &hist)
	_, l2 := buildTree(&a2, &hist)

	canonicalSort(l1)
	canonicalSort(l2)

	if len(l1) != len(l2) {
		t.Fatalf("leaf count differs across runs: %d vs %d", len(l1), len(l2))
	}

	for i := range l1 {
		if l1[i] != l2[i] {
			t.Fatalf("leaf %d differs across runs: %+v vs %+v", i, l1[i], l2[i])
		}
	}
}

func TestBuildTreeLengthBound(t *testing.T) {
	var hist [alphabetSize]frequency
	// Fibonacci-like skew forces the deepest possible tree for this
	// symbol count, stressing the explicit-stack depth walk.
	hist[0], hist[1] = 1, 1
	for i := 2; i < 30; i++ {
		hist[i] = hist[i-1] + hist[i-2]
	}

	var a arena
	_, leaves := buildTree(&a, &hist)

	for _, l := range leaves {
		if l.length < 1 {
			t.Fatalf("symbol %x: length %d below minimum", l.sym, l.length)
		}
	}
}
