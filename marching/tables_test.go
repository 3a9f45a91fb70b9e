package marching

import "testing"

func TestEdgeTableMatchesCorners(t *testing.T) {
	for config := 0; config < 256; config++ {
		var expected uint16
		for edge, corners := range EdgeCorners {
			b0 := (config >> uint(corners[0])) & 1
			b1 := (config >> uint(corners[1])) & 1
			if b0 != b1 {
				expected |= 1 << uint(edge)
			}
		}
		if EdgeTable[config] != expected {
			t.Errorf("config %d: expected mask %#x but got %#x", config, expected, EdgeTable[config])
		}
	}
}

func TestTriangleTableConsistency(t *testing.T) {
	for config, entry := range TriangleTable {
		end := 0
		for end < len(entry) && entry[end] != -1 {
			edge := entry[end]
			if edge < 0 || edge >= 12 {
				t.Fatalf("config %d: invalid edge %d", config, edge)
			}
			if EdgeTable[config]&(1<<uint(edge)) == 0 {
				t.Errorf("config %d: edge %d is not active", config, edge)
			}
			end++
		}
		if end%3 != 0 || end > 15 {
			t.Errorf("config %d: %d edge indices", config, end)
		}
		for _, x := range entry[end:] {
			if x != -1 {
				t.Errorf("config %d: entries after terminator", config)
				break
			}
		}
		if (end == 0) != (EdgeTable[config] == 0) {
			t.Errorf("config %d: triangles do not agree with edge mask", config)
		}
	}
}

func TestTableGeometry(t *testing.T) {
	for edge, corners := range EdgeCorners {
		c0 := CornerOffsets[corners[0]]
		c1 := CornerOffsets[corners[1]]
		var diffs int
		for i := range c0 {
			if c0[i] != c1[i] {
				diffs++
			}
		}
		if diffs != 1 {
			t.Errorf("edge %d does not join adjacent corners", edge)
		}
		mid := EdgeMidpoints[edge]
		if mid.X != float64(c0[0]+c1[0])/2 || mid.Y != float64(c0[1]+c1[1])/2 ||
			mid.Z != float64(c0[2]+c1[2])/2 {
			t.Errorf("edge %d: wrong midpoint %v", edge, mid)
		}
	}
}
