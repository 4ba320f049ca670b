// Package browser is a line-oriented photobook viewer: it feeds typed commands to a
// photobook.Viewer and prints what ends up on screen.
package browser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"photo-gallery/pkg/models"
	"photo-gallery/pkg/photobook"
)

// ErrQuit is returned by Execute when the user asks to leave
var ErrQuit = errors.New("quit requested")

// DefaultWidth is the terminal "viewport" width until resize is used
const DefaultWidth = 1024

// carousel stands in for the slide widget: a jump is applied at once and reported
// back to the viewer like a slide change event.
type carousel struct {
	index  int
	viewer *photobook.Viewer
}

func (c *carousel) JumpTo(index int, _ bool) {
	c.index = index
	if c.viewer != nil {
		c.viewer.OnIndexChanged(index)
	}
}

// Browser holds the open photobook and its viewer
type Browser struct {
	out      io.Writer
	session  *photobook.Session
	logger   *zap.Logger
	book     *models.Photobook
	viewer   *photobook.Viewer
	carousel *carousel
	width    int
}

// New creates a browser that loads photobooks through load and prints to out
func New(load photobook.LoadFunc, out io.Writer, logger *zap.Logger) *Browser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Browser{
		out:     out,
		session: photobook.NewSession(load, nil, logger),
		logger:  logger,
		width:   DefaultWidth,
	}
}

// Close cancels a pending load
func (b *Browser) Close() {
	b.session.Close()
}

// Prompt describes the current position, e.g. "20240623-1 spread 2/3> "
func (b *Browser) Prompt() string {
	if b.viewer == nil {
		return "photobook> "
	}
	current, total := b.viewer.Counter()
	return fmt.Sprintf("%s %s %d/%d> ", b.book.ID, b.viewer.Mode(), current, total)
}

// Execute runs one command line
func (b *Browser) Execute(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	command, args := strings.ToLower(fields[0]), fields[1:]

	switch command {
	case "quit", "exit":
		return ErrQuit
	case "help":
		b.help()
		return nil
	case "open":
		if len(args) != 1 {
			return errors.New("usage: open <date>/<id>")
		}
		return b.open(ctx, args[0])
	}

	if b.viewer == nil {
		return errors.New("no photobook open, use: open <date>/<id>")
	}

	switch command {
	case "next", "n":
		if !b.viewer.Next() {
			fmt.Fprintln(b.out, "Already at the last slide")
			return nil
		}
	case "prev", "p":
		if !b.viewer.Prev() {
			fmt.Fprintln(b.out, "Already at the first slide")
			return nil
		}
	case "goto", "g":
		if len(args) != 1 {
			return errors.New("usage: goto <number>")
		}
		n, err := strconv.Atoi(args[0])
		if err != nil || !b.viewer.GoTo(n-1) {
			return fmt.Errorf("no slide %s", args[0])
		}
	case "toggle", "t":
		if !b.viewer.ToggleMode() {
			fmt.Fprintln(b.out, "Screen too narrow for spreads")
			return nil
		}
	case "resize":
		if len(args) != 1 {
			return errors.New("usage: resize <width>")
		}
		width, err := strconv.Atoi(args[0])
		if err != nil || width <= 0 {
			return fmt.Errorf("invalid width %s", args[0])
		}
		b.width = width
		b.viewer.Resize(width)
	case "show", "s":
	default:
		return fmt.Errorf("unknown command %q, try help", command)
	}

	b.show()
	return nil
}

// open loads a photobook; a load superseded by a later open is dropped by the session
func (b *Browser) open(ctx context.Context, key string) error {
	b.session.Open(ctx, key)
	b.session.Wait()

	result, ok := b.session.Current()
	if !ok || result.GalleryID != b.session.Requested() {
		return nil
	}
	if result.Err != nil {
		return result.Err
	}

	b.book = result.Book
	b.carousel = &carousel{}
	b.viewer = photobook.NewViewer(photobook.NewPaginator(b.book.Spreads), b.carousel)
	b.carousel.viewer = b.viewer
	b.viewer.Resize(b.width)
	b.logger.Debug("photobook opened", zap.String("photobook", b.book.ID))

	fmt.Fprintf(b.out, "%s: %d spreads, %d pages\n", b.book.Title,
		len(b.book.Spreads), photobook.NewPaginator(b.book.Spreads).TotalPages())
	b.show()
	return nil
}

// show prints the slide on screen
func (b *Browser) show() {
	current, total := b.viewer.Counter()
	if total == 0 {
		fmt.Fprintln(b.out, "(empty photobook)")
		return
	}

	if page, ok := b.viewer.Page(); ok {
		fmt.Fprintf(b.out, "Page %d/%d (spread %d, %s): %s\n",
			current, total, page.Spread+1, page.Position, PhotoList(page.Photos))
		return
	}
	if spread, ok := b.viewer.Spread(); ok {
		fmt.Fprintf(b.out, "Spread %d/%d: %s\n", current, total, DescribeSpread(spread))
	}
}

func (b *Browser) help() {
	fmt.Fprintln(b.out, `Commands:
  open <date>/<id>   open the photobook of a gallery
  next | prev        move one slide
  goto <n>           jump to slide n
  toggle             switch between spreads and pages
  resize <width>     set the screen width (below 768 shows pages only)
  show               print the current slide
  quit               leave`)
}

// DescribeSpread renders a spread as "left: single-large [photo-1] | right: ..."
func DescribeSpread(spread models.SpreadLayout) string {
	switch {
	case spread.IsFull():
		return fmt.Sprintf("full: %s %s", spread.FullSpreadTemplate.ID, PhotoList(spread.Photos))
	case spread.IsEmpty():
		return "(empty)"
	}

	var sides []string
	if spread.LeftPageTemplate != nil {
		sides = append(sides, fmt.Sprintf("left: %s %s", spread.LeftPageTemplate.ID, PhotoList(spread.LeftPhotos())))
	}
	if spread.RightPageTemplate != nil {
		sides = append(sides, fmt.Sprintf("right: %s %s", spread.RightPageTemplate.ID, PhotoList(spread.RightPhotos())))
	}
	return strings.Join(sides, " | ")
}

// PhotoList renders photo ids as "[photo-1, photo-2]"
func PhotoList(photos []models.Photo) string {
	ids := make([]string, len(photos))
	for i, photo := range photos {
		ids[i] = photo.ID
	}
	return "[" + strings.Join(ids, ", ") + "]"
}
