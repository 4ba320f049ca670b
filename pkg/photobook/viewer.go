package photobook

import "photo-gallery/pkg/models"

// DisplayMode selects between showing whole spreads and single pages
type DisplayMode string

const (
	SpreadMode DisplayMode = "spread"
	PageMode   DisplayMode = "page"
)

// SmallScreenWidth is the viewport width below which only page mode is available
const SmallScreenWidth = 768

// Carousel is the slide widget the viewer drives
type Carousel interface {
	// JumpTo shows the slide at index; immediate skips the transition
	JumpTo(index int, immediate bool)
}

// Viewer keeps a carousel in step with a photobook in either display mode.
// It is driven from a single event loop and is not safe for concurrent use.
type Viewer struct {
	pager    *Paginator
	pages    []Page
	carousel Carousel

	mode        DisplayMode
	spreadIndex int
	pageIndex   int
	smallScreen bool

	// spread shown before the last switch to page mode, and the page it mapped to
	toggledFrom int
	toggledTo   int
	toggled     bool
}

// NewViewer returns a viewer in spread mode showing the first spread
func NewViewer(pager *Paginator, carousel Carousel) *Viewer {
	return &Viewer{
		pager:    pager,
		pages:    pager.Pages(),
		carousel: carousel,
		mode:     SpreadMode,
	}
}

// Mode returns the current display mode
func (v *Viewer) Mode() DisplayMode {
	return v.mode
}

// SpreadIndex returns the spread on screen, also while in page mode
func (v *Viewer) SpreadIndex() int {
	return v.spreadIndex
}

// PageIndex returns the last page shown in page mode
func (v *Viewer) PageIndex() int {
	return v.pageIndex
}

// Locked reports whether the mode toggle is disabled by a small screen
func (v *Viewer) Locked() bool {
	return v.smallScreen
}

// Len returns the number of slides in the current mode
func (v *Viewer) Len() int {
	if v.mode == SpreadMode {
		return v.pager.Spreads()
	}
	return len(v.pages)
}

// Current returns the slide index in the current mode
func (v *Viewer) Current() int {
	if v.mode == SpreadMode {
		return v.spreadIndex
	}
	return v.pageIndex
}

// Counter returns the 1-based position and the slide count for display
func (v *Viewer) Counter() (int, int) {
	total := v.Len()
	if total == 0 {
		return 0, 0
	}
	return v.Current() + 1, total
}

// CanPrev reports whether there is a slide before the current one
func (v *Viewer) CanPrev() bool {
	return v.Current() > 0
}

// CanNext reports whether there is a slide after the current one
func (v *Viewer) CanNext() bool {
	return v.Current() < v.Len()-1
}

// OnIndexChanged records the slide index reported by the carousel
func (v *Viewer) OnIndexChanged(index int) {
	if v.mode == SpreadMode {
		v.spreadIndex = index
		return
	}

	v.pageIndex = index
	ref, _ := v.pager.SpreadAndPositionOf(index)
	v.spreadIndex = ref.Spread
}

// Next asks the carousel for the following slide
func (v *Viewer) Next() bool {
	if !v.CanNext() {
		return false
	}
	v.carousel.JumpTo(v.Current()+1, false)
	return true
}

// Prev asks the carousel for the preceding slide
func (v *Viewer) Prev() bool {
	if !v.CanPrev() {
		return false
	}
	v.carousel.JumpTo(v.Current()-1, false)
	return true
}

// GoTo asks the carousel for the slide at index in the current mode
func (v *Viewer) GoTo(index int) bool {
	if index < 0 || index >= v.Len() {
		return false
	}
	v.carousel.JumpTo(index, false)
	return true
}

// ToggleMode switches between spread and page mode keeping the same content on screen.
// It reports false when a small screen pins the viewer to page mode.
func (v *Viewer) ToggleMode() bool {
	if v.smallScreen {
		return false
	}
	if v.mode == SpreadMode {
		v.enterPageMode()
	} else {
		v.enterSpreadMode()
	}
	return true
}

// Resize applies a viewport width; narrow screens force page mode
func (v *Viewer) Resize(width int) {
	v.smallScreen = width < SmallScreenWidth
	if v.smallScreen && v.mode == SpreadMode {
		v.enterPageMode()
	}
}

func (v *Viewer) enterPageMode() {
	pageIndex, err := v.pager.PageIndexOf(v.spreadIndex, Left)
	if err != nil {
		pageIndex = 0
	}
	// a trailing placeholder spread has no page of its own
	if last := len(v.pages) - 1; pageIndex > last {
		pageIndex = max(last, 0)
	}

	v.toggledFrom = v.spreadIndex
	v.toggledTo = pageIndex
	v.toggled = true

	v.mode = PageMode
	v.pageIndex = pageIndex
	v.carousel.JumpTo(pageIndex, true)
}

func (v *Viewer) enterSpreadMode() {
	spreadIndex := v.spreadIndex
	if ref, ok := v.pager.SpreadAndPositionOf(v.pageIndex); ok {
		spreadIndex = ref.Spread
	}
	if v.toggled && v.pageIndex == v.toggledTo {
		spreadIndex = v.toggledFrom
	}
	v.toggled = false

	v.mode = SpreadMode
	v.spreadIndex = spreadIndex
	v.carousel.JumpTo(spreadIndex, true)
}

// Spread returns the spread on screen
func (v *Viewer) Spread() (models.SpreadLayout, bool) {
	if v.spreadIndex < 0 || v.spreadIndex >= v.pager.Spreads() {
		return models.SpreadLayout{}, false
	}
	return v.pager.spreads[v.spreadIndex], true
}

// Page returns the page on screen in page mode
func (v *Viewer) Page() (Page, bool) {
	if v.mode != PageMode || v.pageIndex < 0 || v.pageIndex >= len(v.pages) {
		return Page{}, false
	}
	return v.pages[v.pageIndex], true
}
