package browser

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"photo-gallery/pkg/layouts"
	"photo-gallery/pkg/models"
	"photo-gallery/pkg/photobook"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var errNotFound = errors.New("gallery not found")

// loadBooks serves photobooks with the given photo counts, keyed "date/id"
func loadBooks(counts map[string]int) photobook.LoadFunc {
	builder := photobook.NewBuilder(layouts.Default())
	return func(_ context.Context, key string) (*models.Photobook, error) {
		n, ok := counts[key]
		if !ok {
			return nil, errNotFound
		}
		photos := make([]models.Photo, n)
		for i := range photos {
			photos[i] = models.Photo{ID: fmt.Sprintf("photo-%d", i+1)}
		}
		return photobook.Build(key, key, photos, builder, layouts.SingleLarge, time.Now())
	}
}

func newTestBrowser(t *testing.T) (*Browser, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	b := New(loadBooks(map[string]int{"20240623/1": 5, "20240623/2": 2}), &out, nil)
	t.Cleanup(b.Close)
	return b, &out
}

func run(t *testing.T, b *Browser, out *bytes.Buffer, line string) string {
	t.Helper()
	out.Reset()
	require.NoError(t, b.Execute(context.Background(), line))
	return out.String()
}

func TestBrowserOpenAndNavigate(t *testing.T) {
	b, out := newTestBrowser(t)
	assert.Equal(t, "photobook> ", b.Prompt())

	got := run(t, b, out, "open 20240623/1")
	assert.Contains(t, got, "3 spreads, 5 pages")
	assert.Contains(t, got, "Spread 1/3: left: single-large [photo-1] | right: single-large [photo-2]")
	assert.Equal(t, "20240623/1 spread 1/3> ", b.Prompt())

	assert.Contains(t, run(t, b, out, "next"), "Spread 2/3")
	assert.Contains(t, run(t, b, out, "goto 3"), "Spread 3/3: left: single-large [photo-5]")
	assert.Contains(t, run(t, b, out, "next"), "Already at the last slide")
	assert.Contains(t, run(t, b, out, "prev"), "Spread 2/3")
}

func TestBrowserToggleKeepsPosition(t *testing.T) {
	b, out := newTestBrowser(t)
	run(t, b, out, "open 20240623/1")
	run(t, b, out, "goto 2")

	assert.Contains(t, run(t, b, out, "toggle"), "Page 3/5 (spread 2, left): [photo-3]")
	assert.Contains(t, run(t, b, out, "next"), "Page 4/5 (spread 2, right): [photo-4]")
	assert.Contains(t, run(t, b, out, "next"), "Page 5/5 (spread 3, left): [photo-5]")
	assert.Contains(t, run(t, b, out, "toggle"), "Spread 3/3")
}

func TestBrowserNarrowScreen(t *testing.T) {
	b, out := newTestBrowser(t)
	run(t, b, out, "open 20240623/1")

	assert.Contains(t, run(t, b, out, "resize 500"), "Page 1/5")
	assert.Contains(t, run(t, b, out, "toggle"), "Screen too narrow for spreads")

	// a narrow screen stays narrow for the next photobook
	assert.Contains(t, run(t, b, out, "open 20240623/2"), "Page 1/2")
}

func TestBrowserErrors(t *testing.T) {
	b, _ := newTestBrowser(t)
	ctx := context.Background()

	assert.ErrorContains(t, b.Execute(ctx, "next"), "no photobook open")
	assert.ErrorIs(t, b.Execute(ctx, "open 20240623/9"), errNotFound)
	assert.Error(t, b.Execute(ctx, "open"))
	assert.ErrorIs(t, b.Execute(ctx, "quit"), ErrQuit)
	assert.ErrorIs(t, b.Execute(ctx, "EXIT"), ErrQuit)
	assert.NoError(t, b.Execute(ctx, "   "))

	require.NoError(t, b.Execute(ctx, "open 20240623/2"))
	assert.Error(t, b.Execute(ctx, "goto 9"))
	assert.Error(t, b.Execute(ctx, "goto x"))
	assert.Error(t, b.Execute(ctx, "resize -1"))
	assert.ErrorContains(t, b.Execute(ctx, "dance"), "unknown command")
}

func TestDescribeSpread(t *testing.T) {
	full := &models.LayoutTemplate{ID: layouts.SpreadLarge}
	assert.Equal(t, "full: spread-large [a]",
		DescribeSpread(models.SpreadLayout{FullSpreadTemplate: full, Photos: []models.Photo{{ID: "a"}}}))
	assert.Equal(t, "(empty)", DescribeSpread(models.SpreadLayout{}))
}
