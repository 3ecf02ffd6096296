package neighborsets

// largestComponentArea finds the 4-connected components of a region on the
// nd x na grid (BFS over cells) and returns the area of the largest one.
// A subset whose region fragments into small islands is parameter-unstable
// even when its total area is large; strategies weigh by this value.
//
// Time:   O(|region|).
// Memory: O(nd*na) for the membership and visited flags.
func largestComponentArea(region []Cell, nd, na int, areas [][]float64) float64 {
	if len(region) == 0 {
		return 0
	}

	idx := func(c Cell) int { return c.DI*na + c.AI }
	member := make([]bool, nd*na)
	for _, c := range region {
		member[idx(c)] = true
	}

	seen := make([]bool, nd*na)
	offsets := [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	best := 0.0

	for _, c0 := range region {
		if seen[idx(c0)] {
			continue
		}
		// BFS to collect this component's area.
		queue := []Cell{c0}
		seen[idx(c0)] = true
		area := 0.0

		for qi := 0; qi < len(queue); qi++ {
			u := queue[qi]
			area += areas[u.DI][u.AI]
			for _, d := range offsets {
				v := Cell{DI: u.DI + d[0], AI: u.AI + d[1]}
				if v.DI < 0 || v.DI >= nd || v.AI < 0 || v.AI >= na {
					continue
				}
				if !member[idx(v)] || seen[idx(v)] {
					continue
				}
				seen[idx(v)] = true
				queue = append(queue, v)
			}
		}
		if area > best {
			best = area
		}
	}

	return best
}
