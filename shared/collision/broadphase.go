package collision

import (
	"math"
	"slices"

	"github.com/solarlune/resolv"
)

const solidTag = "solid"

// broadPhase buckets solids into a resolv.Space grid. resolv cells start at (0,0), so
// solid boxes are shifted by origin. The grid is read-only once built.
type broadPhase struct {
	space      *resolv.Space
	originX    float64
	originY    float64
	cell       float64
	cols, rows int

	// always holds solids thinner than a pixel; resolv may leave those out of every cell.
	always []int
	count  int
}

func newBroadPhase(solids []*Solid, cellSize int) *broadPhase {
	bp := &broadPhase{cell: float64(cellSize), count: len(solids)}
	if len(solids) == 0 {
		return bp
	}

	bounds := solids[0].Box()
	for _, s := range solids[1:] {
		b := s.Box()
		bounds.MinX = min(bounds.MinX, b.MinX)
		bounds.MinY = min(bounds.MinY, b.MinY)
		bounds.MaxX = max(bounds.MaxX, b.MaxX)
		bounds.MaxY = max(bounds.MaxY, b.MaxY)
	}

	bp.originX = bounds.MinX - bp.cell
	bp.originY = bounds.MinY - bp.cell
	bp.cols = int(math.Ceil((bounds.MaxX-bp.originX)/bp.cell)) + 2
	bp.rows = int(math.Ceil((bounds.MaxY-bp.originY)/bp.cell)) + 2
	bp.space = resolv.NewSpace(bp.cols*cellSize, bp.rows*cellSize, cellSize, cellSize)

	for i, s := range solids {
		b := s.Box()
		w, h := b.MaxX-b.MinX, b.MaxY-b.MinY
		if w < 1 || h < 1 {
			bp.always = append(bp.always, i)
			continue
		}
		obj := resolv.NewObject(b.MinX-bp.originX, b.MinY-bp.originY, w, h, solidTag)
		obj.Data = i
		bp.space.Add(obj)
	}

	return bp
}

// scratch is per-goroutine query state.
type scratch struct {
	seen []bool
	out  []int
}

func (bp *broadPhase) newScratch() *scratch {
	return &scratch{seen: make([]bool, bp.count)}
}

// candidates returns, sorted by solid index, every solid that could overlap box. The
// query grows box by one cell on each side so resolv's inclusive cell rounding can
// never hide a neighbour.
func (bp *broadPhase) candidates(box Box, s *scratch) []int {
	s.out = s.out[:0]
	if bp.count == 0 {
		return s.out
	}

	for _, i := range bp.always {
		s.seen[i] = true
		s.out = append(s.out, i)
	}

	if bp.space != nil {
		x0 := clampCell(int(math.Floor((box.MinX-bp.originX)/bp.cell))-1, bp.cols)
		x1 := clampCell(int(math.Floor((box.MaxX-bp.originX)/bp.cell))+1, bp.cols)
		y0 := clampCell(int(math.Floor((box.MinY-bp.originY)/bp.cell))-1, bp.rows)
		y1 := clampCell(int(math.Floor((box.MaxY-bp.originY)/bp.cell))+1, bp.rows)

		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				c := bp.space.Cell(x, y)
				if c == nil {
					continue
				}
				for _, obj := range c.Objects {
					i, ok := obj.Data.(int)
					if !ok || s.seen[i] {
						continue
					}
					s.seen[i] = true
					s.out = append(s.out, i)
				}
			}
		}
	}

	for _, i := range s.out {
		s.seen[i] = false
	}
	slices.Sort(s.out)
	return s.out
}

func clampCell(v, n int) int {
	return max(0, min(v, n-1))
}
