package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	ImagesDir       string
	BucketName      string
	BucketPrefix    string
	Port            string
	PublicDir       string
	ViewsDir        string
	TemplatesFile   string
	CacheTTL        time.Duration
	PhotoExtensions []string
	WatchImages     bool
	LogLevel        string
}

// ErrInvalidPort is returned when PORT is not a number
var ErrInvalidPort = errors.New("PORT must be a number")

// ErrInvalidCacheTTL is returned when CACHE_TTL is not a positive duration
var ErrInvalidCacheTTL = errors.New("CACHE_TTL must be a positive duration")

// ErrNoPhotoExtensions is returned when PHOTO_EXTENSIONS lists nothing
var ErrNoPhotoExtensions = errors.New("PHOTO_EXTENSIONS must list at least one extension")

// ErrInvalidWatchImages is returned when WATCH_IMAGES is not a boolean
var ErrInvalidWatchImages = errors.New("WATCH_IMAGES must be true or false")

// Load loads configuration from environment variables
func Load() (*Config, error) {
	port := getEnv("PORT", "8080")
	if _, err := strconv.Atoi(port); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPort, port)
	}

	ttl, err := time.ParseDuration(getEnv("CACHE_TTL", "5m"))
	if err != nil || ttl <= 0 {
		return nil, ErrInvalidCacheTTL
	}

	extensions := parseExtensions(getEnv("PHOTO_EXTENSIONS", "webp"))
	if len(extensions) == 0 {
		return nil, ErrNoPhotoExtensions
	}

	watchValue := getEnv("WATCH_IMAGES", "true")
	watch, err := strconv.ParseBool(watchValue)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidWatchImages, watchValue)
	}

	return &Config{
		ImagesDir:       getEnv("IMAGES_DIR", "./public/images"),
		BucketName:      os.Getenv("BUCKET_NAME"),
		BucketPrefix:    strings.Trim(getEnv("BUCKET_PREFIX", "images"), "/"),
		Port:            port,
		PublicDir:       getEnv("PUBLIC_DIR", "./public"),
		ViewsDir:        getEnv("VIEWS_DIR", "./views"),
		TemplatesFile:   os.Getenv("TEMPLATES_FILE"),
		CacheTTL:        ttl,
		PhotoExtensions: extensions,
		WatchImages:     watch,
		LogLevel:        getEnv("LOG_LEVEL", "info"),
	}, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

// parseExtensions splits a comma separated list like "webp, .JPG" into "webp", "jpg"
func parseExtensions(list string) []string {
	var extensions []string
	for _, ext := range strings.Split(list, ",") {
		ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if ext != "" {
			extensions = append(extensions, ext)
		}
	}
	return extensions
}

// UsesBucket reports whether photos are served from a storage bucket
func (c *Config) UsesBucket() bool {
	return c.BucketName != ""
}

// ServerAddress returns the server address with port
func (c *Config) ServerAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

// PrintServerStartMessage prints a message when the server starts
func (c *Config) PrintServerStartMessage() {
	fmt.Printf("Starting server at port %s\n", c.Port)
	fmt.Printf("Gallery URL: http://localhost:%s/\n", c.Port)
	fmt.Printf("Feed URL: http://localhost:%s/feed\n", c.Port)
	if c.UsesBucket() {
		fmt.Printf("Photos: gs://%s/%s\n", c.BucketName, c.BucketPrefix)
	} else {
		fmt.Printf("Photos: %s\n", c.ImagesDir)
	}
}
