package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"photo-gallery/pkg/export"
	"photo-gallery/pkg/services"
)

// newExportCmd creates a new command for exporting gallery data
func newExportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export [format]",
		Short: "Export gallery data",
		Long: `Export all galleries with their photobooks in the specified format.
Supported formats: json (default), yaml, parquet (one row per photo, in page order).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := string(export.JSON)
			if len(args) > 0 {
				name = args[0]
			}
			format, err := export.ParseFormat(name)
			if err != nil {
				return fmt.Errorf("%w (supported: %s)", err, supportedFormats())
			}

			a, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			galleries, err := services.ListGalleries(cmd.Context())
			if err != nil {
				return err
			}

			entries := make([]export.Entry, 0, len(galleries))
			for _, gallery := range galleries {
				entry := export.Entry{Gallery: gallery}
				book, err := services.GetPhotobook(cmd.Context(), gallery.Date, gallery.ID)
				switch {
				case err == nil:
					entry.Photobook = book
				case !errors.Is(err, services.ErrNoPhotos):
					return err
				}
				entries = append(entries, entry)
			}

			var w io.Writer = cmd.OutOrStdout()
			if output != "" && output != "-" {
				file, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", output, err)
				}
				defer file.Close()
				w = file
			}

			if err := export.Write(w, format, entries); err != nil {
				return fmt.Errorf("error exporting data: %w", err)
			}
			a.logger.Debug("export written", zap.String("format", string(format)), zap.Int("galleries", len(entries)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to this file instead of stdout")
	return cmd
}

func supportedFormats() string {
	names := make([]string, len(export.Formats))
	for i, f := range export.Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
