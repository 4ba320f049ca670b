package photobook

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photo-gallery/pkg/layouts"
	"photo-gallery/pkg/models"
)

func namedPhotos(names ...string) []models.Photo {
	photos := make([]models.Photo, len(names))
	for i, name := range names {
		photos[i] = models.Photo{ID: name, Src: "/images/" + name + ".webp"}
	}
	return photos
}

func photoIDs(photos []models.Photo) []string {
	ids := make([]string, len(photos))
	for i, p := range photos {
		ids[i] = p.ID
	}
	return ids
}

func TestPairsFivePhotos(t *testing.T) {
	b := NewBuilder(layouts.Default())

	spreads := b.Pairs(namedPhotos("A", "B", "C", "D", "E"), layouts.SingleLarge)
	require.Len(t, spreads, 3)

	want := []struct {
		left, right []string
		hasRight    bool
	}{
		{left: []string{"A"}, right: []string{"B"}, hasRight: true},
		{left: []string{"C"}, right: []string{"D"}, hasRight: true},
		{left: []string{"E"}, right: []string{}, hasRight: false},
	}

	for i, w := range want {
		s := spreads[i]
		assert.NotNil(t, s.LeftPageTemplate, "spread %d left", i)
		assert.Equal(t, w.hasRight, s.RightPageTemplate != nil, "spread %d right", i)
		assert.Nil(t, s.FullSpreadTemplate)
		assert.Equal(t, w.left, photoIDs(s.LeftPhotos()), "spread %d left photos", i)
		assert.Equal(t, w.right, photoIDs(s.RightPhotos()), "spread %d right photos", i)
	}

	assert.Equal(t, 5, NewPaginator(spreads).TotalPages())
}

func TestPairsSpreadCount(t *testing.T) {
	b := NewBuilder(layouts.Default())

	for n := 0; n <= 9; n++ {
		names := make([]string, n)
		for i := range names {
			names[i] = string(rune('a' + i))
		}
		spreads := b.Pairs(namedPhotos(names...), layouts.SingleLarge)
		assert.Len(t, spreads, (n+1)/2, "photos=%d", n)
		assert.Equal(t, n, NewPaginator(spreads).TotalPages(), "photos=%d", n)
	}
}

func TestPairsAssignsSlotPosition(t *testing.T) {
	b := NewBuilder(layouts.Default())
	tpl, _ := layouts.Default().Get(layouts.SingleLarge)

	spreads := b.Pairs(namedPhotos("A", "B"), layouts.SingleLarge)
	require.Len(t, spreads, 1)

	for _, photo := range spreads[0].Photos {
		require.NotNil(t, photo.Position)
		if diff := cmp.Diff(tpl.PhotoPositions[0], *photo.Position); diff != "" {
			t.Errorf("position mismatch (-want +got):\n%s", diff)
		}
	}
	assert.Equal(t, "spread-1", spreads[0].ID)
}

func TestPairsDoesNotMutateInput(t *testing.T) {
	b := NewBuilder(layouts.Default())
	photos := namedPhotos("A", "B", "C")

	b.Pairs(photos, layouts.SingleLarge)

	for _, p := range photos {
		assert.Nil(t, p.Position)
	}
}

func TestPairsMultiSlotTemplate(t *testing.T) {
	b := NewBuilder(layouts.Default())

	spreads := b.Pairs(namedPhotos("A", "B", "C", "D", "E"), "vertical-2")
	require.Len(t, spreads, 2)

	assert.Equal(t, []string{"A", "B"}, photoIDs(spreads[0].LeftPhotos()))
	assert.Equal(t, []string{"C", "D"}, photoIDs(spreads[0].RightPhotos()))
	assert.Equal(t, []string{"E"}, photoIDs(spreads[1].LeftPhotos()))
	assert.Nil(t, spreads[1].RightPageTemplate)
}

func TestPairsUnknownTemplate(t *testing.T) {
	b := NewBuilder(layouts.Default())

	spreads := b.Pairs(namedPhotos("A", "B", "C"), "missing")
	require.Len(t, spreads, 2)

	for _, s := range spreads {
		assert.True(t, s.IsEmpty())
	}
	assert.Equal(t, []string{"A", "B"}, photoIDs(spreads[0].Photos))
	assert.Equal(t, 0, NewPaginator(spreads).TotalPages())
}

func TestPairsNoPhotos(t *testing.T) {
	spreads := NewBuilder(layouts.Default()).Pairs(nil, layouts.SingleLarge)
	assert.Empty(t, spreads)
	assert.Equal(t, 0, NewPaginator(spreads).TotalPages())
}

func TestAssemble(t *testing.T) {
	b := NewBuilder(layouts.Default())
	photos := namedPhotos("1", "2", "3", "4", "5", "6", "7", "8")

	specs := []SpreadSpec{
		{Full: layouts.SpreadLarge},
		{Left: layouts.SingleLarge, Right: layouts.SingleLarge},
		{Left: "vertical-2", Right: "main-2sub"},
		{Left: "grid-4", Right: "horizontal-2"},
	}

	spreads, leftover := b.Assemble(photos, specs)
	require.Len(t, spreads, 3)
	assert.Equal(t, 0, leftover)

	assert.True(t, spreads[0].IsFull())
	assert.Equal(t, []string{"1"}, photoIDs(spreads[0].Photos))

	assert.Equal(t, []string{"2"}, photoIDs(spreads[1].LeftPhotos()))
	assert.Equal(t, []string{"3"}, photoIDs(spreads[1].RightPhotos()))

	assert.Equal(t, []string{"4", "5"}, photoIDs(spreads[2].LeftPhotos()))
	assert.Equal(t, []string{"6", "7", "8"}, photoIDs(spreads[2].RightPhotos()))
	require.NotNil(t, spreads[2].Photos[3].Position)
	assert.Equal(t, 70.0, spreads[2].Photos[3].Position.Y)

	assert.Equal(t, 1+2+2, NewPaginator(spreads).TotalPages())
}

func TestAssembleLeftover(t *testing.T) {
	b := NewBuilder(layouts.Default())

	spreads, leftover := b.Assemble(namedPhotos("A", "B", "C"), []SpreadSpec{{Full: layouts.SpreadLarge}})
	assert.Len(t, spreads, 1)
	assert.Equal(t, 2, leftover)
}

func TestAssembleRightPageOnlyWhenPhotosRemain(t *testing.T) {
	b := NewBuilder(layouts.Default())

	spreads, leftover := b.Assemble(namedPhotos("A", "B"), []SpreadSpec{{Left: "vertical-2", Right: layouts.SingleLarge}})
	require.Len(t, spreads, 1)
	assert.Equal(t, 0, leftover)
	assert.NotNil(t, spreads[0].LeftPageTemplate)
	assert.Nil(t, spreads[0].RightPageTemplate)
}

func TestAssembleUnknownTemplatePlaceholder(t *testing.T) {
	b := NewBuilder(layouts.Default())

	spreads, leftover := b.Assemble(namedPhotos("A"), []SpreadSpec{{Full: "nope"}, {Left: layouts.SingleLarge}})
	require.Len(t, spreads, 2)
	assert.True(t, spreads[0].IsEmpty())
	assert.Empty(t, spreads[0].Photos)
	assert.Equal(t, []string{"A"}, photoIDs(spreads[1].LeftPhotos()))
	assert.Equal(t, 0, leftover)
}

// mapLookup resolves templates from a map without validating them
type mapLookup map[string]models.LayoutTemplate

func (m mapLookup) Get(id string) (models.LayoutTemplate, bool) {
	tpl, ok := m[id]
	return tpl, ok
}

func TestTemplateWithoutSlotsIsPlaceholder(t *testing.T) {
	b := NewBuilder(mapLookup{"blank": {ID: "blank", Name: "Blank"}})

	spreads := b.Pairs(namedPhotos("A", "B", "C"), "blank")
	require.Len(t, spreads, 2)
	for _, s := range spreads {
		assert.True(t, s.IsEmpty())
	}
	assert.Equal(t, []string{"C"}, photoIDs(spreads[1].Photos))

	assembled, leftover := b.Assemble(namedPhotos("A"), []SpreadSpec{{Full: "blank"}, {Left: "blank", Right: "blank"}})
	require.Len(t, assembled, 2)
	assert.True(t, assembled[0].IsEmpty())
	assert.True(t, assembled[1].IsEmpty())
	assert.Equal(t, 1, leftover)
}
