package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"photo-gallery/pkg/browser"
	"photo-gallery/pkg/photobook"
	"photo-gallery/pkg/services"
)

// newShowPhotobookCmd creates a new command for showing the photobook layout of a gallery
func newShowPhotobookCmd() *cobra.Command {
	var pageMode bool

	cmd := &cobra.Command{
		Use:   "show-photobook [date] [id]",
		Short: "Show the spreads and pages of a gallery's photobook",
		Long:  `Lay the photos of a gallery out as a photobook and print its spreads, or its pages with --pages.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			book, err := services.GetPhotobook(cmd.Context(), args[0], args[1])
			if errors.Is(err, services.ErrNoPhotos) {
				fmt.Println("No images found")
				return nil
			}
			if err != nil {
				return err
			}

			pager := photobook.NewPaginator(book.Spreads)
			fmt.Printf("Photobook: %s (%s)\n", book.Title, book.ID)
			fmt.Printf("Spreads: %d, Pages: %d\n", pager.Spreads(), pager.TotalPages())
			fmt.Println("================")

			if pageMode {
				for _, page := range pager.Pages() {
					fmt.Printf("Page %d/%d (spread %d, %s): %s\n", page.Index+1, pager.TotalPages(),
						page.Spread+1, page.Position, browser.PhotoList(page.Photos))
				}
				return nil
			}

			for i, spread := range book.Spreads {
				fmt.Printf("Spread %d: %s\n", i+1, browser.DescribeSpread(spread))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&pageMode, "pages", false, "List single pages instead of spreads")
	return cmd
}
