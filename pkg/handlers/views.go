package handlers

import (
	"fmt"
	"html/template"

	"photo-gallery/pkg/models"
	"photo-gallery/pkg/photobook"
)

// PhotoView is a photo placed on a page, with its slot as inline CSS
type PhotoView struct {
	Src   string
	Alt   string
	Style template.CSS
}

// SpreadView is one spread of the book page in spread mode
type SpreadView struct {
	Index    int
	Anchor   string
	Full     bool
	HasLeft  bool
	HasRight bool
	Left     []PhotoView
	Right    []PhotoView
	Photos   []PhotoView
	PageLink string
}

// PageView is one page of the book page in page mode
type PageView struct {
	Number     int
	Anchor     string
	Position   string
	Full       bool
	Photos     []PhotoView
	SpreadLink string
}

// BookPage is the data rendered by the photobook view
type BookPage struct {
	Book       *models.Photobook
	PageMode   bool
	Spreads    []SpreadView
	Pages      []PageView
	TotalPages int
	SpreadURL  string
	PageURL    string
}

func newBookPage(book *models.Photobook, pageMode bool, path string) BookPage {
	pager := photobook.NewPaginator(book.Spreads)
	page := BookPage{
		Book:       book,
		PageMode:   pageMode,
		TotalPages: pager.TotalPages(),
		SpreadURL:  path,
		PageURL:    path + "?mode=page",
	}

	for i, spread := range book.Spreads {
		view := SpreadView{
			Index:    i,
			Anchor:   fmt.Sprintf("spread-%d", i),
			Full:     spread.IsFull(),
			HasLeft:  spread.LeftPageTemplate != nil,
			HasRight: spread.RightPageTemplate != nil,
		}
		if view.Full {
			view.Photos = photoViews(spread.Photos)
		} else {
			view.Left = photoViews(spread.LeftPhotos())
			view.Right = photoViews(spread.RightPhotos())
		}
		if pageIndex, err := pager.PageIndexOf(i, photobook.Left); err == nil && pageIndex < page.TotalPages {
			view.PageLink = fmt.Sprintf("%s#page-%d", page.PageURL, pageIndex)
		}
		page.Spreads = append(page.Spreads, view)
	}

	for _, p := range pager.Pages() {
		ref, _ := pager.SpreadAndPositionOf(p.Index)
		page.Pages = append(page.Pages, PageView{
			Number:     p.Index + 1,
			Anchor:     fmt.Sprintf("page-%d", p.Index),
			Position:   string(p.Position),
			Full:       p.Full,
			Photos:     photoViews(p.Photos),
			SpreadLink: fmt.Sprintf("%s#spread-%d", path, ref.Spread),
		})
	}

	return page
}

func photoViews(photos []models.Photo) []PhotoView {
	views := make([]PhotoView, len(photos))
	for i, photo := range photos {
		views[i] = PhotoView{Src: photo.Src, Alt: photo.Alt, Style: slotStyle(photo.Position)}
	}
	return views
}

// slotStyle positions a photo absolutely inside its page
func slotStyle(pos *models.PhotoPosition) template.CSS {
	if pos == nil {
		return ""
	}
	style := fmt.Sprintf("left:%g%%;top:%g%%;width:%g%%;height:%g%%;", pos.X, pos.Y, pos.Width, pos.Height)
	if pos.Rotation != 0 {
		style += fmt.Sprintf("transform:rotate(%gdeg);", pos.Rotation)
	}
	if pos.ZIndex != 0 {
		style += fmt.Sprintf("z-index:%d;", pos.ZIndex)
	}
	return template.CSS(style)
}
