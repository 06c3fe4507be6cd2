package sdfcsg

import "gonum.org/v1/gonum/spatial/r3"

// edgeManifold reports whether every edge is shared by exactly two
// triangles with opposite orientation, the closed-orientable-surface
// condition.
func edgeManifold(tris [][3]int) bool {
	directed := make(map[[2]int]int, 3*len(tris))
	for _, t := range tris {
		for i := 0; i < 3; i++ {
			e := [2]int{t[i], t[(i+1)%3]}
			if e[0] == e[1] {
				return false
			}
			directed[e]++
			if directed[e] > 1 {
				return false
			}
		}
	}
	for e := range directed {
		if directed[[2]int{e[1], e[0]}] != 1 {
			return false
		}
	}
	return true
}

// genus computes the total genus of a closed triangle surface from
// its Euler characteristic: g = shells - (V - E + F) / 2. Vertices
// not referenced by any triangle do not count.
func genus(verts []r3.Vec, tris [][3]int) int {
	if len(tris) == 0 {
		return 0
	}
	used := make(map[int]bool, len(verts))
	edges := make(map[[2]int]bool, 3*len(tris))
	parent := make([]int, len(verts))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		for parent[x] != x {
			parent[x] = parent[parent[x]]
			x = parent[x]
		}
		return x
	}
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[ra] = rb
		}
	}

	for _, t := range tris {
		// Triangles referencing missing vertices carry a status error
		// already; they contribute nothing to the topology.
		if t[0] < 0 || t[0] >= len(verts) ||
			t[1] < 0 || t[1] >= len(verts) ||
			t[2] < 0 || t[2] >= len(verts) {
			continue
		}
		for i := 0; i < 3; i++ {
			a, b := t[i], t[(i+1)%3]
			used[a] = true
			if a > b {
				a, b = b, a
			}
			edges[[2]int{a, b}] = true
			union(t[i], t[(i+1)%3])
		}
	}

	shells := make(map[int]bool)
	for v := range used {
		shells[find(v)] = true
	}

	chi := len(used) - len(edges) + len(tris)
	return len(shells) - chi/2
}
