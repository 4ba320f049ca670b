package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"photo-gallery/pkg/services"
)

// newListGalleriesCmd creates a new command for listing galleries
func newListGalleriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-galleries",
		Short: "List all galleries",
		Long:  `List all galleries, newest date first, with the number of photos in each.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			galleries, err := services.ListGalleries(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Println("Photo Galleries:")
			fmt.Println("===============")

			date := ""
			for _, gallery := range galleries {
				if gallery.Date != date {
					date = gallery.Date
					fmt.Printf("Date: %s\n", gallery.FormattedDate)
				}
				fmt.Printf("  - %s (photos: %d)\n", gallery.Title, len(gallery.Photos))
				fmt.Printf("    Stub: %s\n", gallery.Stub)
			}

			fmt.Println()
			fmt.Printf("Total: %d galleries\n", len(galleries))
			return nil
		},
	}
}
