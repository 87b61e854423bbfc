package stowage

import "time"

// GridCell is the rendering payload for one container in a bay grid.
type GridCell struct {
	ContainerNo string     `json:"container_no"`
	ISOType     string     `json:"iso_type"`
	Status      string     `json:"status"`
	DoneAt      *time.Time `json:"done_at"`
	Bay         int        `json:"bay"`
	Row         int        `json:"row"`
	Tier        int        `json:"tier"`
}

// GridStats summarizes one bay cross-section. MinTier and MaxTier are nil
// when the bay holds no containers.
type GridStats struct {
	Containers int  `json:"containers"`
	MaxRow     int  `json:"max_row"`
	MinTier    *int `json:"min_tier"`
	MaxTier    *int `json:"max_tier"`
}

// Grid is the deterministic row/tier rendering order for one bay and area,
// with a sparse cell lookup keyed by (row, tier).
type Grid struct {
	RowsOrder  []int                    `json:"rows_order"`
	TiersOrder []int                    `json:"tiers_order"`
	Cells      map[int]map[int]GridCell `json:"grid"`
	Stats      GridStats                `json:"stats"`
}

// GridOptions configures grid layout policy. IncludeCenterRow inserts a
// literal row 0 centerline between the even and odd halves when the
// maximum row is odd; one generation of the layout did this, later ones
// dropped it, so it is a switch rather than a rule.
type GridOptions struct {
	IncludeCenterRow bool
}

// BuildGrid computes the cross-section layout for the given containers,
// which the caller has already restricted to one bay group and one area.
// Row order is even rows outer-to-inner (descending) followed by odd rows
// inner-to-outer (ascending), matching the port/starboard convention.
// Tier order descends by 2 from the highest even tier. An empty input
// yields an empty layout, never an error.
func BuildGrid(cells []GridCell, opts GridOptions) *Grid {
	maxRow := 0
	var minTier, maxTier *int
	for _, c := range cells {
		if c.Row > maxRow {
			maxRow = c.Row
		}
		t := c.Tier
		if minTier == nil || t < *minTier {
			minTier = &t
		}
		if maxTier == nil || t > *maxTier {
			maxTier = &t
		}
	}

	rowsOrder := make([]int, 0, maxRow)
	for r := maxRow - maxRow%2; r >= 2; r -= 2 {
		rowsOrder = append(rowsOrder, r)
	}
	if opts.IncludeCenterRow && maxRow%2 == 1 {
		rowsOrder = append(rowsOrder, 0)
	}
	for r := 1; r <= maxRow; r += 2 {
		rowsOrder = append(rowsOrder, r)
	}

	tiersOrder := make([]int, 0)
	if minTier != nil && maxTier != nil {
		start := *maxTier - *maxTier%2
		end := *minTier + *minTier%2
		for t := start; t >= end; t -= 2 {
			tiersOrder = append(tiersOrder, t)
		}
	}

	// Pre-seed every ordered row so callers can render a full skeleton
	// even where no container sits.
	grid := make(map[int]map[int]GridCell, len(rowsOrder))
	for _, r := range rowsOrder {
		grid[r] = map[int]GridCell{}
	}
	for _, c := range cells {
		if grid[c.Row] == nil {
			grid[c.Row] = map[int]GridCell{}
		}
		grid[c.Row][c.Tier] = c
	}

	return &Grid{
		RowsOrder:  rowsOrder,
		TiersOrder: tiersOrder,
		Cells:      grid,
		Stats: GridStats{
			Containers: len(cells),
			MaxRow:     maxRow,
			MinTier:    minTier,
			MaxTier:    maxTier,
		},
	}
}
