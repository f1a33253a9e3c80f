package geom

import (
	"fmt"
	"math"
	"sort"

	"github.com/dhconnelly/rtreego"
)

// indexEpsilon pads degenerate rectangles and widens queries so that
// touching rectangles are returned as candidates.
const indexEpsilon = 1e-6

// Index is a 2D R-tree of id-tagged rectangles. It answers candidate
// queries; callers still run the exact overlap test on the results.
// An Index is not safe for concurrent mutation.
type Index struct {
	tree  *rtreego.Rtree
	rects map[string]Rect
}

type indexEntry struct {
	id string
	bb rtreego.Rect
}

// Bounds implements rtreego.Spatial.
func (e *indexEntry) Bounds() rtreego.Rect { return e.bb }

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{tree: rtreego.NewTree(2, 2, 8), rects: make(map[string]Rect)}
}

// toRtree converts r to an rtreego rectangle, padding zero-size sides.
func toRtree(r Rect, pad float64) (rtreego.Rect, error) {
	w := math.Max(r.Width(), 0) + 2*pad
	h := math.Max(r.Height(), 0) + 2*pad
	if w <= 0 {
		w = indexEpsilon
	}
	if h <= 0 {
		h = indexEpsilon
	}
	return rtreego.NewRect(rtreego.Point{r.Left - pad, r.Bottom - pad}, []float64{w, h})
}

// Insert adds a rectangle under id. Ids must be unique.
func (ix *Index) Insert(id string, r Rect) error {
	bb, err := toRtree(r, 0)
	if err != nil {
		return fmt.Errorf("index %s: %w", id, err)
	}
	ix.tree.Insert(&indexEntry{id: id, bb: bb})
	ix.rects[id] = r
	return nil
}

// Len returns the number of indexed rectangles.
func (ix *Index) Len() int { return len(ix.rects) }

// Search returns the ids of rectangles that intersect or touch q, sorted.
func (ix *Index) Search(q Rect) []string {
	if len(ix.rects) == 0 {
		return nil
	}
	bb, err := toRtree(q, indexEpsilon)
	if err != nil {
		return nil
	}
	var ids []string
	for _, s := range ix.tree.SearchIntersect(bb) {
		if e, ok := s.(*indexEntry); ok {
			ids = append(ids, e.id)
		}
	}
	sort.Strings(ids)
	return ids
}

// Rect returns the rectangle stored under id.
func (ix *Index) Rect(id string) (Rect, bool) {
	r, ok := ix.rects[id]
	return r, ok
}
