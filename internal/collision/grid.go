// Package collision finds and resolves particle contacts. A uniform grid
// narrows the candidate pairs, and each candidate is checked with a one
// step lookahead before the velocities are exchanged.
package collision

import (
	"cmp"
	"math"
	"slices"

	"github.com/san-kum/dotfield/internal/field"
)

// Cell is an integer grid coordinate.
type Cell struct {
	X, Y int
}

func compareCells(a, b Cell) int {
	if c := cmp.Compare(a.X, b.X); c != 0 {
		return c
	}
	return cmp.Compare(a.Y, b.Y)
}

// Grid buckets particle indices by the cells they overlap. It is rebuilt
// from scratch every step.
type Grid struct {
	cellWidth float64
	cells     map[Cell][]int
	keys      []Cell
}

// NewGrid sizes cells to one particle diameter.
func NewGrid(radius float64) *Grid {
	return &Grid{
		cellWidth: 2 * radius,
		cells:     make(map[Cell][]int),
	}
}

func (g *Grid) CellWidth() float64 { return g.cellWidth }
func (g *Grid) Len() int           { return len(g.cells) }

// Span returns the inclusive cell range covering coordinate v: the floor and
// ceiling of its cell coordinate, so two centers closer than one cell width
// always share a cell. A value exactly on a cell line gets one extra cell on
// each side. The particle overlaps only two of the three; the third keeps
// touching pairs that both sit on lines in a shared bucket.
func (g *Grid) Span(v float64) (int, int) {
	q := v / g.cellWidth
	lo, hi := int(math.Floor(q)), int(math.Ceil(q))
	if lo == hi {
		lo--
		hi++
	}
	return lo, hi
}

// Cells returns every cell a position overlaps.
func (g *Grid) Cells(pos field.Vec) []Cell {
	x0, x1 := g.Span(pos.X)
	y0, y1 := g.Span(pos.Y)
	out := make([]Cell, 0, (x1-x0+1)*(y1-y0+1))
	for x := x0; x <= x1; x++ {
		for y := y0; y <= y1; y++ {
			out = append(out, Cell{x, y})
		}
	}
	return out
}

// Rebuild clears the grid and inserts every position by index. Non-finite
// positions are skipped.
func (g *Grid) Rebuild(positions []field.Vec) {
	clear(g.cells)
	g.keys = g.keys[:0]
	if g.cellWidth <= 0 {
		return
	}

	for i, pos := range positions {
		if math.IsNaN(pos.X) || math.IsNaN(pos.Y) || math.IsInf(pos.X, 0) || math.IsInf(pos.Y, 0) {
			continue
		}
		for _, c := range g.Cells(pos) {
			bucket, ok := g.cells[c]
			if !ok {
				g.keys = append(g.keys, c)
			}
			g.cells[c] = append(bucket, i)
		}
	}
	slices.SortFunc(g.keys, compareCells)
}

// Bucket returns the indices stored in a cell.
func (g *Grid) Bucket(c Cell) []int {
	return g.cells[c]
}

// Candidates calls fn once for every unordered pair that shares at least
// one cell, in a stable order. i is always less than j.
func (g *Grid) Candidates(fn func(i, j int)) {
	seen := make(map[[2]int]struct{})
	for _, c := range g.keys {
		bucket := g.cells[c]
		if len(bucket) < 2 {
			continue
		}
		for a := 0; a < len(bucket); a++ {
			for b := a + 1; b < len(bucket); b++ {
				pair := [2]int{bucket[a], bucket[b]}
				if _, dup := seen[pair]; dup {
					continue
				}
				seen[pair] = struct{}{}
				fn(pair[0], pair[1])
			}
		}
	}
}
