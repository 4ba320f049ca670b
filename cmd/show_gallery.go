package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"photo-gallery/pkg/services"
)

// newShowGalleryCmd creates a new command for showing gallery details
func newShowGalleryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show-gallery [date] [id]",
		Short: "Show photos in a specific gallery",
		Long:  `Show the photos of the gallery stored in the <date>/<id> folder, in display order.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			gallery, err := services.GetGallery(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}

			fmt.Printf("Gallery: %s\n", gallery.Title)
			fmt.Printf("Date: %s\n", gallery.FormattedDate)
			if gallery.Description != "" {
				fmt.Printf("Description: %s\n", gallery.Description)
			}
			fmt.Printf("Photos: %d\n", len(gallery.Photos))
			fmt.Println("================")

			if len(gallery.Photos) == 0 {
				fmt.Println("No images found")
				return nil
			}
			for i, photo := range gallery.Photos {
				fmt.Printf("%d. %s\n", i+1, gallery.Files[i])
				fmt.Printf("   URL: %s\n", photo.Src)
			}
			return nil
		},
	}
}
