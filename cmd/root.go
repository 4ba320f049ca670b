package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"photo-gallery/pkg/config"
	"photo-gallery/pkg/layouts"
	"photo-gallery/pkg/logging"
	"photo-gallery/pkg/services"
)

// Configuration flags
var (
	imagesDir     string
	bucketName    string
	portNumber    string
	templatesFile string
	verbose       bool
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "photo-gallery",
		Short: "Photo Gallery serves dated photo galleries and photobooks",
		Long: `Photo Gallery is a command line application that lists, exports and serves photo
galleries stored as <date>/<id> folders, either on disk or in Google Cloud Storage.
Each gallery can be viewed as a slider or laid out as a photobook of spreads and pages.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
		SilenceUsage: true,
	}

	// Define persistent flags that will be available for all commands
	rootCmd.PersistentFlags().StringVarP(&imagesDir, "images-dir", "d", "", "Set the IMAGES_DIR (overrides environment variable)")
	rootCmd.PersistentFlags().StringVarP(&bucketName, "bucket", "b", "", "Set the BUCKET_NAME (overrides environment variable)")
	rootCmd.PersistentFlags().StringVarP(&portNumber, "port", "p", "", "Set the PORT (overrides environment variable)")
	rootCmd.PersistentFlags().StringVar(&templatesFile, "templates", "", "Set the TEMPLATES_FILE (overrides environment variable)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	// Add commands to root
	rootCmd.AddCommand(newListGalleriesCmd())
	rootCmd.AddCommand(newShowGalleryCmd())
	rootCmd.AddCommand(newShowPhotobookCmd())
	rootCmd.AddCommand(newListTemplatesCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newBrowseCmd())

	return rootCmd
}

// LoadConfig loads configuration with respect to command line flags
func LoadConfig() (*config.Config, error) {
	// Set environment variables from flags if provided
	overrides := map[string]string{
		"IMAGES_DIR":     imagesDir,
		"BUCKET_NAME":    bucketName,
		"PORT":           portNumber,
		"TEMPLATES_FILE": templatesFile,
	}
	if verbose {
		overrides["LOG_LEVEL"] = "debug"
	}
	for key, value := range overrides {
		if value != "" {
			os.Setenv(key, value)
		}
	}

	// Load configuration from environment variables (potentially set above)
	return config.Load()
}

// app bundles what every command needs
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	service *services.Service
	source  services.Source
	close   func()
}

// setup loads the configuration and initializes logging, the template catalog and the
// gallery service
func setup(ctx context.Context) (*app, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	catalog, err := layouts.Load(cfg.TemplatesFile)
	if err != nil {
		logger.Sync()
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	a := &app{cfg: cfg, logger: logger}
	closers := []func(){func() { _ = logger.Sync() }}

	if cfg.UsesBucket() {
		bucket, err := services.NewBucketSource(ctx, cfg.BucketName, cfg.BucketPrefix)
		if err != nil {
			logger.Sync()
			return nil, err
		}
		a.source = bucket
		closers = append(closers, func() { _ = bucket.Close() })
	} else {
		a.source = services.NewDirSource(cfg.ImagesDir, "/images")
	}

	a.service = services.InitService(cfg, a.source, catalog, logger)
	a.close = func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	logger.Debug("configuration loaded",
		zap.String("images", cfg.ImagesDir),
		zap.String("bucket", cfg.BucketName),
		zap.Int("templates", len(catalog.All())))
	return a, nil
}
