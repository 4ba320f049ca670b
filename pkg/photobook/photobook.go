package photobook

import (
	"errors"
	"time"

	"photo-gallery/pkg/models"
)

// ErrNoPhotos is returned when a photobook would have no spreads
var ErrNoPhotos = errors.New("photobook has no photos")

// Build turns a gallery's photos into a published photobook using the default pairing
// policy with templateID on every page.
func Build(id, title string, photos []models.Photo, builder *Builder, templateID string, now time.Time) (*models.Photobook, error) {
	if len(photos) == 0 {
		return nil, ErrNoPhotos
	}

	cover := photos[0]
	return &models.Photobook{
		ID:          id,
		Title:       title,
		CoverPhoto:  &cover,
		Spreads:     builder.Pairs(photos, templateID),
		CreatedAt:   now,
		UpdatedAt:   now,
		IsPublished: true,
	}, nil
}
