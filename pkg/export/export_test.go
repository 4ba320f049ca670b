package export

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"photo-gallery/pkg/layouts"
	"photo-gallery/pkg/models"
	"photo-gallery/pkg/photobook"
)

func testEntries(t *testing.T) []Entry {
	t.Helper()
	gallery := models.Gallery{
		Date:  "20240623",
		ID:    "1",
		Title: "Vol.1",
		Files: []string{"1.webp", "A1.webp", "2.webp"},
		Photos: []models.Photo{
			{ID: "photo-1", Src: "/images/20240623/1/1.webp"},
			{ID: "photo-2", Src: "/images/20240623/1/A1.webp"},
			{ID: "photo-3", Src: "/images/20240623/1/2.webp"},
		},
	}
	book, err := photobook.Build("20240623-1", gallery.Title, gallery.Photos,
		photobook.NewBuilder(layouts.Default()), layouts.SingleLarge, time.Unix(0, 0).UTC())
	require.NoError(t, err)

	empty := models.Gallery{Date: "20240624", ID: "2", Title: "Empty"}
	return []Entry{{Gallery: gallery, Photobook: book}, {Gallery: empty}}
}

func TestRows(t *testing.T) {
	rows := Rows(testEntries(t))

	want := []PhotoRow{
		{GalleryDate: "20240623", GalleryID: "1", Title: "Vol.1", PhotoIndex: 0, PhotoID: "photo-1",
			File: "1.webp", Src: "/images/20240623/1/1.webp", SpreadIndex: 0, PageIndex: 0,
			Position: "left", Template: layouts.SingleLarge},
		{GalleryDate: "20240623", GalleryID: "1", Title: "Vol.1", PhotoIndex: 1, PhotoID: "photo-2",
			File: "A1.webp", Src: "/images/20240623/1/A1.webp", SpreadIndex: 0, PageIndex: 1,
			Position: "right", Template: layouts.SingleLarge},
		{GalleryDate: "20240623", GalleryID: "1", Title: "Vol.1", PhotoIndex: 2, PhotoID: "photo-3",
			File: "2.webp", Src: "/images/20240623/1/2.webp", SpreadIndex: 1, PageIndex: 2,
			Position: "left", Template: layouts.SingleLarge},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("Rows() mismatch (-want +got):\n%s", diff)
	}
}

func TestRowsWithoutPhotobook(t *testing.T) {
	entries := testEntries(t)
	entries[0].Photobook = nil

	rows := Rows(entries)
	require.Len(t, rows, 3)
	for _, row := range rows {
		assert.Equal(t, int32(-1), row.PageIndex)
		assert.Equal(t, int32(-1), row.SpreadIndex)
	}
}

func TestWriteParquet(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, Parquet, testEntries(t)))

	rows, err := parquet.Read[PhotoRow](bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "A1.webp", rows[1].File)
	assert.Equal(t, "right", rows[1].Position)
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, JSON, testEntries(t)))

	var decoded []Entry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "20240623-1", decoded[0].Photobook.ID)
	assert.Len(t, decoded[0].Photobook.Spreads, 2)
	assert.Nil(t, decoded[1].Photobook)
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, YAML, testEntries(t)))

	var decoded []map[string]interface{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Contains(t, decoded[0], "photobook")
	assert.NotContains(t, decoded[1], "photobook")
}

func TestParseFormat(t *testing.T) {
	for _, name := range []string{"json", "yaml", "parquet"} {
		f, err := ParseFormat(name)
		require.NoError(t, err)
		assert.Equal(t, Format(name), f)
	}

	_, err := ParseFormat("csv")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.ErrorIs(t, Write(&bytes.Buffer{}, Format("csv"), nil), ErrUnsupportedFormat)
}
