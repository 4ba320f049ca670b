package layouts

import "photo-gallery/pkg/models"

func singlePageTemplates() []models.LayoutTemplate {
	return []models.LayoutTemplate{
		{
			ID:          SingleLarge,
			Name:        "Single large",
			Description: "One photo filling the page",
			PhotoPositions: []models.PhotoPosition{
				{X: 5, Y: 5, Width: 90, Height: 90},
			},
		},
		{
			ID:          "vertical-2",
			Name:        "Two stacked",
			Description: "Two photos stacked vertically",
			PhotoPositions: []models.PhotoPosition{
				{X: 5, Y: 5, Width: 90, Height: 42.5},
				{X: 5, Y: 52.5, Width: 90, Height: 42.5},
			},
		},
		{
			ID:          "horizontal-2",
			Name:        "Two side by side",
			Description: "Two photos side by side",
			PhotoPositions: []models.PhotoPosition{
				{X: 5, Y: 5, Width: 42.5, Height: 90},
				{X: 52.5, Y: 5, Width: 42.5, Height: 90},
			},
		},
		{
			ID:          "main-2sub",
			Name:        "Main + 2",
			Description: "One main photo above two small ones",
			PhotoPositions: []models.PhotoPosition{
				{X: 5, Y: 5, Width: 90, Height: 60},
				{X: 5, Y: 70, Width: 42.5, Height: 25},
				{X: 52.5, Y: 70, Width: 42.5, Height: 25},
			},
		},
		{
			ID:          "grid-4",
			Name:        "Grid of 4",
			Description: "Four photos in a 2x2 grid",
			PhotoPositions: []models.PhotoPosition{
				{X: 5, Y: 5, Width: 42.5, Height: 42.5},
				{X: 52.5, Y: 5, Width: 42.5, Height: 42.5},
				{X: 5, Y: 52.5, Width: 42.5, Height: 42.5},
				{X: 52.5, Y: 52.5, Width: 42.5, Height: 42.5},
			},
		},
		{
			ID:          "main-5sub",
			Name:        "Main + 5",
			Description: "One main photo with five small ones",
			PhotoPositions: []models.PhotoPosition{
				{X: 5, Y: 5, Width: 60, Height: 60},
				{X: 70, Y: 5, Width: 25, Height: 25},
				{X: 70, Y: 35, Width: 25, Height: 25},
				{X: 70, Y: 65, Width: 25, Height: 25},
				{X: 5, Y: 70, Width: 28, Height: 25},
				{X: 38, Y: 70, Width: 28, Height: 25},
			},
		},
	}
}

func spreadTemplates() []models.LayoutTemplate {
	return []models.LayoutTemplate{
		{
			ID:          SpreadLarge,
			Name:        "Spread large",
			Description: "One photo across both pages",
			PhotoPositions: []models.PhotoPosition{
				{X: 2, Y: 5, Width: 96, Height: 90},
			},
		},
		{
			ID:          "spread-main-sides",
			Name:        "Spread main + sides",
			Description: "Large centre photo with a small photo on each side",
			PhotoPositions: []models.PhotoPosition{
				{X: 25, Y: 10, Width: 50, Height: 80},
				{X: 2, Y: 20, Width: 20, Height: 60},
				{X: 78, Y: 20, Width: 20, Height: 60},
			},
			IsPremium: true,
		},
	}
}

func premiumTemplates() []models.LayoutTemplate {
	return []models.LayoutTemplate{
		{
			ID:          "premium-collage",
			Name:        "Collage",
			Description: "Six tilted photos in a collage",
			PhotoPositions: []models.PhotoPosition{
				{X: 5, Y: 5, Width: 30, Height: 40, Rotation: -5},
				{X: 40, Y: 10, Width: 35, Height: 25, Rotation: 3},
				{X: 75, Y: 5, Width: 20, Height: 30, Rotation: -2},
				{X: 10, Y: 50, Width: 25, Height: 35, Rotation: 4},
				{X: 40, Y: 40, Width: 40, Height: 50, Rotation: -3},
				{X: 70, Y: 55, Width: 25, Height: 35, Rotation: 5},
			},
			IsPremium: true,
		},
		{
			ID:          "premium-grid-9",
			Name:        "Grid of 9",
			Description: "Nine photos in a 3x3 grid",
			PhotoPositions: []models.PhotoPosition{
				{X: 5, Y: 5, Width: 28, Height: 28},
				{X: 36, Y: 5, Width: 28, Height: 28},
				{X: 67, Y: 5, Width: 28, Height: 28},
				{X: 5, Y: 36, Width: 28, Height: 28},
				{X: 36, Y: 36, Width: 28, Height: 28},
				{X: 67, Y: 36, Width: 28, Height: 28},
				{X: 5, Y: 67, Width: 28, Height: 28},
				{X: 36, Y: 67, Width: 28, Height: 28},
				{X: 67, Y: 67, Width: 28, Height: 28},
			},
			IsPremium: true,
		},
	}
}

// DefaultCategories returns the built-in template categories
func DefaultCategories() []models.LayoutCategory {
	return []models.LayoutCategory{
		{
			ID:           "basic",
			Name:         "Basic layouts",
			Description:  "Single page layouts",
			ThumbnailURL: "/images/layouts/basic-thumbnail.jpg",
			Templates:    singlePageTemplates(),
		},
		{
			ID:           "spread",
			Name:         "Spread layouts",
			Description:  "Layouts spanning both pages",
			ThumbnailURL: "/images/layouts/spread-thumbnail.jpg",
			Templates:    spreadTemplates(),
		},
		{
			ID:           "premium",
			Name:         "Premium layouts",
			Description:  "Layouts reserved for premium members",
			ThumbnailURL: "/images/layouts/premium-thumbnail.jpg",
			Templates:    premiumTemplates(),
		},
	}
}

// Default returns a catalog of the built-in templates
func Default() *Catalog {
	c, err := NewCatalog(DefaultCategories()...)
	if err != nil {
		// built-in data is validated by tests
		panic(err)
	}
	return c
}
