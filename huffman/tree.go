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

import "container/heap"

// arena owns every node of one chunk's Huffman tree. It is reset and
// reused across chunks rather than reallocated.
type arena struct {
	nodes [arenaSize]node
	size  int
}

func (a *arena) reset() {
	a.size = 0
}

func (a *arena) newLeaf(sym symbol, freq frequency) int {
	idx := a.size
	a.nodes[idx] = node{freq: freq, left: -1, right: -1, sym: sym, isLeaf: true}
	a.size++
	return idx
}

func (a *arena) newInternal(left, right int) int {
	idx := a.size
	a.nodes[idx] = node{
		freq:  a.nodes[left].freq + a.nodes[right].freq,
		left:  left,
		right: right,
	}
	a.size++
	return idx
}

// pqueue is a min-priority queue of arena indices, ordered by
// (frequency ascending, arena-index ascending). The arena-index tiebreak
// makes tree shape - and therefore every downstream code length - fully
// deterministic regardless of map/slice iteration order upstream.
type pqueue struct {
	a   *arena
	idx []int
}

func (q pqueue) Len() int { return len(q.idx) }

func (q pqueue) Less(i, j int) bool {
	fi, fj := q.a.nodes[q.idx[i]].freq, q.a.nodes[q.idx[j]].freq
	if fi != fj {
		return fi < fj
	}
	return q.idx[i] < q.idx[j]
}

func (q pqueue) Swap(i, j int) { q.idx[i], q.idx[j] = q.idx[j], q.idx[i] }

func (q *pqueue) Push(x any) {
	q.idx = append(q.idx, x.(int))
}

func (q *pqueue) Pop() any {
	old := q.idx
	n := len(old)
	item := old[n-1]
	q.idx = old[:n-1]
	return item
}

// buildTree grows a Huffman binary tree from hist (a 256-entry symbol
// histogram) and returns the root's arena index along with one
// (symbol, length) record per leaf, in insertion (tree-walk) order. A
// chunk with exactly one distinct symbol yields a length of 1, not 0, per
// the degenerate-chunk rule.
func buildTree(a *arena, hist *[alphabetSize]frequency) (root int, leaves []codeRecord) {
	a.reset()

	q := &pqueue{a: a}

	for s := 0; s < alphabetSize; s++ {
		if hist[s] > 0 {
			q.idx = append(q.idx, a.newLeaf(symbol(s), hist[s]))
		}
	}

	if len(q.idx) == 0 {
		return -1, nil
	}

	if len(q.idx) == 1 {
		only := q.idx[0]
		return only, []codeRecord{{sym: a.nodes[only].sym, length: 1}}
	}

	heap.Init(q)

	for q.Len() > 1 {
		n1 := heap.Pop(q).(int)
		n2 := heap.Pop(q).(int)
		heap.Push(q, a.newInternal(n1, n2))
	}

	root = q.idx[0]
	leaves = walkDepths(a, root)
	return root, leaves
}

// walkDepths assigns each leaf's code length from its depth in the tree,
// via an explicit stack rather than recursion (the tree can be up to 255
// levels deep for a maximally skewed frequency distribution).
func walkDepths(a *arena, root int) []codeRecord {
	type frame struct {
		idx   int
		depth length
	}

	leaves := make([]codeRecord, 0, alphabetSize)
	stack := []frame{{idx: root, depth: 0}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := &a.nodes[f.idx]

		if n.isLeaf {
			leaves = append(leaves, codeRecord{sym: n.sym, length: f.depth})
			continue
		}

		stack = append(stack,
			frame{idx: n.left, depth: f.depth + 1},
			frame{idx: n.right, depth: f.depth + 1},
		)
	}

	return leaves
}
