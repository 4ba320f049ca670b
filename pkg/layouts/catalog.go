// Package layouts holds the read-only catalog of photobook layout templates.
package layouts

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"photo-gallery/pkg/models"
)

// Template identifiers used by the default photobook policy
const (
	SingleLarge = "single-large"
	SpreadLarge = "spread-large"
)

var (
	// ErrDuplicateTemplate is returned when two templates share an id
	ErrDuplicateTemplate = errors.New("duplicate template id")

	// ErrEmptyTemplate is returned when a template declares no photo slots
	ErrEmptyTemplate = errors.New("template has no photo positions")

	// ErrSlotOutOfBounds is returned when an unrotated slot leaves its page
	ErrSlotOutOfBounds = errors.New("photo position outside of page")
)

// Catalog is an immutable lookup from template id to LayoutTemplate.
// It is safe for concurrent use once constructed.
type Catalog struct {
	categories []models.LayoutCategory
	byID       map[string]models.LayoutTemplate
	order      []string
}

// NewCatalog validates the categories and builds a catalog from them
func NewCatalog(categories ...models.LayoutCategory) (*Catalog, error) {
	c := &Catalog{
		byID: make(map[string]models.LayoutTemplate),
	}

	for _, category := range categories {
		for _, tpl := range category.Templates {
			if err := validate(tpl); err != nil {
				return nil, err
			}
			if _, exists := c.byID[tpl.ID]; exists {
				return nil, fmt.Errorf("%w: %s", ErrDuplicateTemplate, tpl.ID)
			}
			c.byID[tpl.ID] = cloneTemplate(tpl)
			c.order = append(c.order, tpl.ID)
		}

		copied := category
		copied.Templates = make([]models.LayoutTemplate, len(category.Templates))
		for i, tpl := range category.Templates {
			copied.Templates[i] = cloneTemplate(tpl)
		}
		c.categories = append(c.categories, copied)
	}

	return c, nil
}

func validate(tpl models.LayoutTemplate) error {
	if len(tpl.PhotoPositions) == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyTemplate, tpl.ID)
	}
	for i, p := range tpl.PhotoPositions {
		// Rotated slots are collage pieces and may overlap the page edge
		if p.Rotation != 0 {
			continue
		}
		if p.X < 0 || p.Y < 0 || p.X+p.Width > 100 || p.Y+p.Height > 100 {
			return fmt.Errorf("%w: %s slot %d", ErrSlotOutOfBounds, tpl.ID, i)
		}
	}
	return nil
}

func cloneTemplate(tpl models.LayoutTemplate) models.LayoutTemplate {
	positions := make([]models.PhotoPosition, len(tpl.PhotoPositions))
	copy(positions, tpl.PhotoPositions)
	tpl.PhotoPositions = positions
	return tpl
}

// Get returns the template with the given id. Unknown ids report false.
func (c *Catalog) Get(id string) (models.LayoutTemplate, bool) {
	tpl, ok := c.byID[id]
	if !ok {
		return models.LayoutTemplate{}, false
	}
	return cloneTemplate(tpl), true
}

// All returns every template in catalog order
func (c *Catalog) All() []models.LayoutTemplate {
	templates := make([]models.LayoutTemplate, 0, len(c.order))
	for _, id := range c.order {
		templates = append(templates, cloneTemplate(c.byID[id]))
	}
	return templates
}

// Categories returns the template categories
func (c *Catalog) Categories() []models.LayoutCategory {
	categories := make([]models.LayoutCategory, len(c.categories))
	for i, category := range c.categories {
		categories[i] = category
		categories[i].Templates = make([]models.LayoutTemplate, len(category.Templates))
		for j, tpl := range category.Templates {
			categories[i].Templates[j] = cloneTemplate(tpl)
		}
	}
	return categories
}

// Available returns the templates a user with the given permission may select.
// Premium templates are hidden from free users.
func (c *Catalog) Available(permission models.Permission) []models.LayoutTemplate {
	var templates []models.LayoutTemplate
	for _, tpl := range c.All() {
		if tpl.IsPremium && permission != models.PermissionPremium && permission != models.PermissionAdmin {
			continue
		}
		templates = append(templates, tpl)
	}
	return templates
}

// catalogFile is the YAML layout of a templates file
type catalogFile struct {
	Categories []models.LayoutCategory `yaml:"categories"`
}

// LoadFile reads a YAML templates file and builds a catalog from it
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading templates file: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing templates file %s: %w", path, err)
	}

	return NewCatalog(file.Categories...)
}

// Load returns the catalog from path, or the built-in catalog when path is empty
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}
