package photobook

import (
	"errors"
	"fmt"

	"photo-gallery/pkg/models"
)

// Position names a side of a spread
type Position string

const (
	Left  Position = "left"
	Right Position = "right"
)

// ErrSpreadOutOfRange is returned for a spread index outside [0, len(spreads))
var ErrSpreadOutOfRange = errors.New("spread index out of range")

// PageRef addresses a page by its spread and side
type PageRef struct {
	Spread   int      `json:"spreadIndex"`
	Position Position `json:"position"`
}

// Page is one slide of page mode
type Page struct {
	Index    int                    `json:"index"`
	Spread   int                    `json:"spreadIndex"`
	Position Position               `json:"position"`
	Full     bool                   `json:"full"`
	Template *models.LayoutTemplate `json:"template,omitempty"`
	Photos   []models.Photo         `json:"photos"`
}

// Paginator converts between spread indices and page indices for a fixed list of
// spreads. It keeps no position state.
type Paginator struct {
	spreads []models.SpreadLayout
}

// NewPaginator returns a Paginator over spreads
func NewPaginator(spreads []models.SpreadLayout) *Paginator {
	return &Paginator{spreads: spreads}
}

// PageCount returns the pages a spread contributes: 1 for a full spread, otherwise one
// per page template present. Placeholder spreads contribute none.
func PageCount(spread models.SpreadLayout) int {
	if spread.IsFull() {
		return 1
	}
	count := 0
	if spread.LeftPageTemplate != nil {
		count++
	}
	if spread.RightPageTemplate != nil {
		count++
	}
	return count
}

// Spreads returns the number of spreads
func (p *Paginator) Spreads() int {
	return len(p.spreads)
}

// TotalPages returns the number of pages in page mode
func (p *Paginator) TotalPages() int {
	total := 0
	for _, spread := range p.spreads {
		total += PageCount(spread)
	}
	return total
}

// PageIndexOf returns the page index of the given side of a spread. The right side of a
// spread without a left page is that spread's first page. A spread index outside
// [0, Spreads()) returns ErrSpreadOutOfRange.
func (p *Paginator) PageIndexOf(spreadIndex int, position Position) (int, error) {
	if spreadIndex < 0 || spreadIndex >= len(p.spreads) {
		return 0, fmt.Errorf("%w: %d of %d", ErrSpreadOutOfRange, spreadIndex, len(p.spreads))
	}

	pageIndex := 0
	for _, spread := range p.spreads[:spreadIndex] {
		pageIndex += PageCount(spread)
	}

	target := p.spreads[spreadIndex]
	if position == Right && !target.IsFull() && target.LeftPageTemplate != nil {
		pageIndex++
	}
	return pageIndex, nil
}

// SpreadAndPositionOf returns the spread and side holding the page at pageIndex.
//
// A full spread has no real sides; its single page is reported as Left.
// For pageIndex < 0 or >= TotalPages() the result is PageRef{0, Left} and ok is false.
func (p *Paginator) SpreadAndPositionOf(pageIndex int) (ref PageRef, ok bool) {
	fallback := PageRef{Spread: 0, Position: Left}
	if pageIndex < 0 {
		return fallback, false
	}

	current := 0
	for i, spread := range p.spreads {
		if spread.IsFull() {
			if current == pageIndex {
				return PageRef{Spread: i, Position: Left}, true
			}
			current++
			continue
		}

		if spread.LeftPageTemplate != nil {
			if current == pageIndex {
				return PageRef{Spread: i, Position: Left}, true
			}
			current++
		}
		if spread.RightPageTemplate != nil {
			if current == pageIndex {
				return PageRef{Spread: i, Position: Right}, true
			}
			current++
		}
	}

	return fallback, false
}

// Pages expands the spreads into page mode slides. A split spread is cut into its left
// and right pages; a full spread stays one page.
func (p *Paginator) Pages() []Page {
	pages := make([]Page, 0, p.TotalPages())

	for i, spread := range p.spreads {
		if spread.IsFull() {
			pages = append(pages, Page{
				Index:    len(pages),
				Spread:   i,
				Position: Left,
				Full:     true,
				Template: spread.FullSpreadTemplate,
				Photos:   spread.Photos,
			})
			continue
		}

		if spread.LeftPageTemplate != nil {
			pages = append(pages, Page{
				Index:    len(pages),
				Spread:   i,
				Position: Left,
				Template: spread.LeftPageTemplate,
				Photos:   spread.LeftPhotos(),
			})
		}
		if spread.RightPageTemplate != nil {
			pages = append(pages, Page{
				Index:    len(pages),
				Spread:   i,
				Position: Right,
				Template: spread.RightPageTemplate,
				Photos:   spread.RightPhotos(),
			})
		}
	}

	return pages
}
