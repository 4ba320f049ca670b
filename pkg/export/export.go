// Package export writes the gallery index as JSON, YAML or a flat Parquet table of photos.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/parquet-go/parquet-go"
	"gopkg.in/yaml.v3"

	"photo-gallery/pkg/models"
	"photo-gallery/pkg/photobook"
)

// Format is an export file format
type Format string

const (
	JSON    Format = "json"
	YAML    Format = "yaml"
	Parquet Format = "parquet"
)

// Formats lists the supported formats
var Formats = []Format{JSON, YAML, Parquet}

// ErrUnsupportedFormat is returned for a format outside Formats
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Entry is one exported gallery with its photobook, if it has photos
type Entry struct {
	Gallery   models.Gallery    `json:"gallery" yaml:"gallery"`
	Photobook *models.Photobook `json:"photobook,omitempty" yaml:"photobook,omitempty"`
}

// PhotoRow is one photo of the Parquet export, placed on its photobook page
type PhotoRow struct {
	GalleryDate string `parquet:"gallery_date"`
	GalleryID   string `parquet:"gallery_id"`
	Title       string `parquet:"title"`
	PhotoIndex  int32  `parquet:"photo_index"`
	PhotoID     string `parquet:"photo_id"`
	File        string `parquet:"file"`
	Src         string `parquet:"src"`
	SpreadIndex int32  `parquet:"spread_index"`
	PageIndex   int32  `parquet:"page_index"`
	Position    string `parquet:"position"`
	Template    string `parquet:"template"`
}

// ParseFormat validates a format name
func ParseFormat(name string) (Format, error) {
	for _, f := range Formats {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
}

// Write encodes entries to w in the given format
func Write(w io.Writer, format Format, entries []Entry) error {
	switch format {
	case JSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(entries)
	case YAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(entries); err != nil {
			return err
		}
		return encoder.Close()
	case Parquet:
		return parquet.Write(w, Rows(entries))
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// Rows flattens entries into one row per photo in photobook page order.
// Galleries without a photobook contribute their photos with page and spread -1.
func Rows(entries []Entry) []PhotoRow {
	var rows []PhotoRow
	for _, entry := range entries {
		g := entry.Gallery
		files := make(map[string]string, len(g.Photos))
		indexes := make(map[string]int, len(g.Photos))
		for i, photo := range g.Photos {
			if i < len(g.Files) {
				files[photo.ID] = g.Files[i]
			}
			indexes[photo.ID] = i
		}

		row := func(photo models.Photo) PhotoRow {
			return PhotoRow{
				GalleryDate: g.Date,
				GalleryID:   g.ID,
				Title:       g.Title,
				PhotoIndex:  int32(indexes[photo.ID]),
				PhotoID:     photo.ID,
				File:        files[photo.ID],
				Src:         photo.Src,
				SpreadIndex: -1,
				PageIndex:   -1,
			}
		}

		if entry.Photobook == nil {
			for _, photo := range g.Photos {
				rows = append(rows, row(photo))
			}
			continue
		}

		for _, page := range photobook.NewPaginator(entry.Photobook.Spreads).Pages() {
			for _, photo := range page.Photos {
				r := row(photo)
				r.SpreadIndex = int32(page.Spread)
				r.PageIndex = int32(page.Index)
				r.Position = string(page.Position)
				if page.Template != nil {
					r.Template = page.Template.ID
				}
				rows = append(rows, r)
			}
		}
	}
	return rows
}
