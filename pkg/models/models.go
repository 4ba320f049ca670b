package models

import "time"

// Gallery represents one dated folder of photos, e.g. images/20240623/1
type Gallery struct {
	Date          string   `json:"date" yaml:"date"`
	ID            string   `json:"id" yaml:"id"`
	Title         string   `json:"title" yaml:"title"`
	Description   string   `json:"description,omitempty" yaml:"description,omitempty"`
	FormattedDate string   `json:"formattedDate" yaml:"formattedDate"`
	Stub          string   `json:"stub" yaml:"stub"`
	Photos        []Photo  `json:"photos" yaml:"photos"`
	Cover         *Photo   `json:"cover,omitempty" yaml:"cover,omitempty"`
	Files         []string `json:"-" yaml:"-"`
}

// Key returns the gallery identifier used by loaders and caches ("date/id")
func (g Gallery) Key() string {
	return g.Date + "/" + g.ID
}

// FolderInfo holds the optional per-gallery metadata read from info.yaml
type FolderInfo struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	MaxImages   int    `json:"maxImages" yaml:"maxImages"`
}

// Slide is one entry of the gallery carousel
type Slide struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

// SliderPage is the data rendered by the gallery slider view
type SliderPage struct {
	Gallery  Gallery
	Slides   []Slide
	ShowText bool
	Shuffle  bool
}

// Index represents the main index page data
type Index struct {
	Galleries []Gallery
}

// PhotoPosition is a slot rectangle in percentages of its page
type PhotoPosition struct {
	X        float64 `json:"x" yaml:"x"`
	Y        float64 `json:"y" yaml:"y"`
	Width    float64 `json:"width" yaml:"width"`
	Height   float64 `json:"height" yaml:"height"`
	Rotation float64 `json:"rotation,omitempty" yaml:"rotation,omitempty"`
	ZIndex   int     `json:"zIndex,omitempty" yaml:"zIndex,omitempty"`
}

// Photo is a single image of a gallery
type Photo struct {
	ID       string         `json:"id" yaml:"id"`
	Src      string         `json:"src" yaml:"src"`
	Alt      string         `json:"alt,omitempty" yaml:"alt,omitempty"`
	Position *PhotoPosition `json:"position,omitempty" yaml:"position,omitempty"`
}

// LayoutTemplate declares an ordered set of photo slots
type LayoutTemplate struct {
	ID             string          `json:"id" yaml:"id"`
	Name           string          `json:"name" yaml:"name"`
	Description    string          `json:"description,omitempty" yaml:"description,omitempty"`
	PhotoPositions []PhotoPosition `json:"photoPositions" yaml:"photoPositions"`
	IsPremium      bool            `json:"isPremium,omitempty" yaml:"isPremium,omitempty"`
}

// Capacity is the number of photos the template holds
func (t *LayoutTemplate) Capacity() int {
	if t == nil {
		return 0
	}
	return len(t.PhotoPositions)
}

// LayoutCategory groups templates for selection
type LayoutCategory struct {
	ID           string           `json:"id" yaml:"id"`
	Name         string           `json:"name" yaml:"name"`
	Description  string           `json:"description,omitempty" yaml:"description,omitempty"`
	ThumbnailURL string           `json:"thumbnailUrl,omitempty" yaml:"thumbnailUrl,omitempty"`
	Templates    []LayoutTemplate `json:"templates" yaml:"templates"`
}

// Permission decides which templates a user may pick
type Permission string

const (
	PermissionFree    Permission = "free"
	PermissionPremium Permission = "premium"
	PermissionAdmin   Permission = "admin"
)

// Valid reports whether p is one of the known permissions
func (p Permission) Valid() bool {
	switch p {
	case PermissionFree, PermissionPremium, PermissionAdmin:
		return true
	}
	return false
}

// SpreadLayout is one double-page spread. Either FullSpreadTemplate is set, or one or
// both of the page templates are. A spread with no template renders as a placeholder.
type SpreadLayout struct {
	ID                 string          `json:"id" yaml:"id"`
	LeftPageTemplate   *LayoutTemplate `json:"leftPageTemplate,omitempty" yaml:"leftPageTemplate,omitempty"`
	RightPageTemplate  *LayoutTemplate `json:"rightPageTemplate,omitempty" yaml:"rightPageTemplate,omitempty"`
	FullSpreadTemplate *LayoutTemplate `json:"fullSpreadTemplate,omitempty" yaml:"fullSpreadTemplate,omitempty"`
	Photos             []Photo         `json:"photos" yaml:"photos"`
}

// IsFull reports whether the spread is rendered as one canvas
func (s SpreadLayout) IsFull() bool {
	return s.FullSpreadTemplate != nil
}

// IsEmpty reports whether the spread has no template at all
func (s SpreadLayout) IsEmpty() bool {
	return s.FullSpreadTemplate == nil && s.LeftPageTemplate == nil && s.RightPageTemplate == nil
}

// LeftPhotos returns the photos placed on the left page of a split spread
func (s SpreadLayout) LeftPhotos() []Photo {
	n := min(s.LeftPageTemplate.Capacity(), len(s.Photos))
	return s.Photos[:n]
}

// RightPhotos returns the photos placed on the right page of a split spread
func (s SpreadLayout) RightPhotos() []Photo {
	n := min(s.LeftPageTemplate.Capacity(), len(s.Photos))
	return s.Photos[n:]
}

// Photobook is the spread model built for one gallery
type Photobook struct {
	ID          string         `json:"id" yaml:"id"`
	Title       string         `json:"title" yaml:"title"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	CoverPhoto  *Photo         `json:"coverPhoto,omitempty" yaml:"coverPhoto,omitempty"`
	Spreads     []SpreadLayout `json:"spreads" yaml:"spreads"`
	CreatedAt   time.Time      `json:"createdAt" yaml:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt" yaml:"updatedAt"`
	IsPublished bool           `json:"isPublished" yaml:"isPublished"`
}
