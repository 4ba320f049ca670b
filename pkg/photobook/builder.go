// Package photobook maps a flat list of photos onto double-page spreads and converts
// between spread and page addressing.
package photobook

import (
	"fmt"

	"photo-gallery/pkg/models"
)

// TemplateLookup resolves layout templates by id.
// *layouts.Catalog satisfies it.
type TemplateLookup interface {
	Get(id string) (models.LayoutTemplate, bool)
}

// SpreadSpec assigns templates to one spread. Full takes precedence over Left/Right.
type SpreadSpec struct {
	Left  string `yaml:"left,omitempty" json:"left,omitempty"`
	Right string `yaml:"right,omitempty" json:"right,omitempty"`
	Full  string `yaml:"full,omitempty" json:"full,omitempty"`
}

// Builder partitions photos into spreads
type Builder struct {
	templates TemplateLookup
}

// NewBuilder returns a Builder resolving templates through lookup
func NewBuilder(lookup TemplateLookup) *Builder {
	return &Builder{templates: lookup}
}

// template resolves id; a template without slots cannot hold photos and counts as unknown
func (b *Builder) template(id string) (models.LayoutTemplate, bool) {
	tpl, ok := b.templates.Get(id)
	if !ok || tpl.Capacity() == 0 {
		return models.LayoutTemplate{}, false
	}
	return tpl, true
}

// Pairs applies the default policy: both pages of every spread use templateID and each
// page takes as many photos as the template has slots (two photos per spread for
// single-large). When the photos run out after a left page, the spread has no right page.
//
// An unknown templateID yields placeholder spreads that still carry their photos,
// grouped two per spread.
func (b *Builder) Pairs(photos []models.Photo, templateID string) []models.SpreadLayout {
	tpl, ok := b.template(templateID)
	perPage := 1
	if ok {
		perPage = tpl.Capacity()
	}

	var spreads []models.SpreadLayout
	for start := 0; start < len(photos); start += 2 * perPage {
		end := min(start+2*perPage, len(photos))
		group := photos[start:end]

		spread := models.SpreadLayout{
			ID: spreadID(len(spreads)),
		}
		if !ok {
			spread.Photos = clonePhotos(group)
			spreads = append(spreads, spread)
			continue
		}

		left := tpl
		spread.LeftPageTemplate = &left
		spread.Photos = place(nil, group[:min(perPage, len(group))], &left)

		if len(group) > perPage {
			right := tpl
			spread.RightPageTemplate = &right
			spread.Photos = place(spread.Photos, group[perPage:], &right)
		}

		spreads = append(spreads, spread)
	}

	return spreads
}

// Assemble builds one spread per spec, consuming photos in order by slot capacity.
// Assembly stops once the photos are used up, so trailing specs without photos produce
// no spread. A spec naming unknown templates produces a placeholder spread and consumes
// no photos. The number of photos left over after the last spec is returned.
func (b *Builder) Assemble(photos []models.Photo, specs []SpreadSpec) ([]models.SpreadLayout, int) {
	var spreads []models.SpreadLayout
	next := 0

	for _, spec := range specs {
		if next >= len(photos) {
			break
		}

		spread := models.SpreadLayout{ID: spreadID(len(spreads))}

		if spec.Full != "" {
			if tpl, ok := b.template(spec.Full); ok {
				end := min(next+tpl.Capacity(), len(photos))
				spread.FullSpreadTemplate = &tpl
				spread.Photos = place(nil, photos[next:end], &tpl)
				next = end
			}
			spreads = append(spreads, spread)
			continue
		}

		if tpl, ok := b.template(spec.Left); ok {
			end := min(next+tpl.Capacity(), len(photos))
			spread.LeftPageTemplate = &tpl
			spread.Photos = place(spread.Photos, photos[next:end], &tpl)
			next = end
		}

		if tpl, ok := b.template(spec.Right); ok && next < len(photos) {
			end := min(next+tpl.Capacity(), len(photos))
			spread.RightPageTemplate = &tpl
			spread.Photos = place(spread.Photos, photos[next:end], &tpl)
			next = end
		}

		spreads = append(spreads, spread)
	}

	return spreads, len(photos) - next
}

// place copies photos into dst, assigning each the slot position of its index
func place(dst []models.Photo, photos []models.Photo, tpl *models.LayoutTemplate) []models.Photo {
	for i, photo := range photos {
		if i < len(tpl.PhotoPositions) {
			pos := tpl.PhotoPositions[i]
			photo.Position = &pos
		}
		dst = append(dst, photo)
	}
	return dst
}

func clonePhotos(photos []models.Photo) []models.Photo {
	out := make([]models.Photo, len(photos))
	copy(out, photos)
	return out
}

func spreadID(index int) string {
	return fmt.Sprintf("spread-%d", index+1)
}
