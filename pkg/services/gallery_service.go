package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gopkg.in/yaml.v3"

	"photo-gallery/pkg/config"
	"photo-gallery/pkg/layouts"
	"photo-gallery/pkg/models"
	"photo-gallery/pkg/photobook"
)

var (
	// ErrGalleryNotFound is returned when no folder exists for a date and id
	ErrGalleryNotFound = errors.New("gallery not found")
	// ErrInvalidDate is returned when a gallery date is not YYYYMMDD
	ErrInvalidDate = errors.New("gallery date must be in YYYYMMDD format")
	// ErrNoPhotos is returned when a gallery exists but holds no photos
	ErrNoPhotos = photobook.ErrNoPhotos
)

const (
	galleriesKey = "galleries"
	// listTimeout bounds a listing fill, which outlives the request that started it
	listTimeout = 30 * time.Second
)

// Options configure a Service
type Options struct {
	CacheTTL   time.Duration
	Extensions []string
	Catalog    *layouts.Catalog
	// TemplateID is the page template photobooks are laid out with.
	TemplateID string
	Logger     *zap.Logger
}

// Service handles operations related to galleries, slides and photobooks
type Service struct {
	source     Source
	matcher    photoMatcher
	catalog    *layouts.Catalog
	builder    *photobook.Builder
	templateID string
	cache      *cache.Cache
	group      singleflight.Group
	logger     *zap.Logger
	now        func() time.Time
}

// NewService creates a service reading galleries from source
func NewService(source Source, opts Options) *Service {
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 5 * time.Minute
	}
	if len(opts.Extensions) == 0 {
		opts.Extensions = []string{"webp"}
	}
	if opts.Catalog == nil {
		opts.Catalog = layouts.Default()
	}
	if opts.TemplateID == "" {
		opts.TemplateID = layouts.SingleLarge
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	return &Service{
		source:     source,
		matcher:    newPhotoMatcher(opts.Extensions),
		catalog:    opts.Catalog,
		builder:    photobook.NewBuilder(opts.Catalog),
		templateID: opts.TemplateID,
		cache:      cache.New(opts.CacheTTL, 2*opts.CacheTTL),
		logger:     opts.Logger,
		now:        time.Now,
	}
}

var (
	// defaultService is the singleton instance of Service
	defaultService *Service
	once           sync.Once
)

// InitService initializes the shared service with the given configuration
func InitService(cfg *config.Config, source Source, catalog *layouts.Catalog, logger *zap.Logger) *Service {
	once.Do(func() {
		defaultService = NewService(source, Options{
			CacheTTL:   cfg.CacheTTL,
			Extensions: cfg.PhotoExtensions,
			Catalog:    catalog,
			Logger:     logger,
		})
	})
	return defaultService
}

// ListGalleries returns all galleries of the shared service
func ListGalleries(ctx context.Context) ([]models.Gallery, error) {
	return defaultService.ListGalleries(ctx)
}

// GetGallery returns one gallery of the shared service
func GetGallery(ctx context.Context, date, id string) (models.Gallery, error) {
	return defaultService.GetGallery(ctx, date, id)
}

// GetPhotobook returns the photobook of a gallery of the shared service
func GetPhotobook(ctx context.Context, date, id string) (*models.Photobook, error) {
	return defaultService.GetPhotobook(ctx, date, id)
}

// Catalog returns the template catalog of the shared service
func Catalog() *layouts.Catalog {
	return defaultService.Catalog()
}

// Catalog returns the template catalog photobooks are laid out with
func (s *Service) Catalog() *layouts.Catalog {
	return s.catalog
}

// Flush drops every cached listing, e.g. after the image tree changed
func (s *Service) Flush() {
	s.cache.Flush()
	s.logger.Debug("gallery cache flushed")
}

// ListGalleries returns every gallery, newest date first
func (s *Service) ListGalleries(ctx context.Context) ([]models.Gallery, error) {
	if cached, found := s.cache.Get(galleriesKey); found {
		s.logger.Debug("using cached galleries")
		return cached.([]models.Gallery), nil
	}

	v, err, _ := s.group.Do(galleriesKey, func() (interface{}, error) {
		// Coalesced callers share this fill, so it must not stop when the first one goes away.
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), listTimeout)
		defer cancel()

		s.logger.Debug("listing galleries")
		folders, err := s.source.Folders(ctx)
		if err != nil {
			return nil, err
		}

		galleries := make([]models.Gallery, 0, len(folders))
		complete := true
		for _, folder := range folders {
			gallery, err := s.GetGallery(ctx, folder.Date, folder.ID)
			if err != nil {
				if isContextErr(err) {
					complete = false
				}
				s.logger.Warn("skipping gallery",
					zap.String("gallery", folder.Date+"/"+folder.ID),
					zap.Error(err))
				continue
			}
			galleries = append(galleries, gallery)
		}

		sort.Slice(galleries, func(i, j int) bool {
			if galleries[i].Date != galleries[j].Date {
				return galleries[i].Date > galleries[j].Date
			}
			return naturalLess(galleries[i].ID, galleries[j].ID)
		})

		if complete {
			s.cache.Set(galleriesKey, galleries, cache.DefaultExpiration)
		} else {
			s.logger.Warn("gallery listing interrupted, not caching", zap.Int("galleries", len(galleries)))
		}
		return galleries, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.Gallery), nil
}

// GetGallery loads the photos of <date>/<id> in display order
func (s *Service) GetGallery(ctx context.Context, date, id string) (models.Gallery, error) {
	if !dateFormat.MatchString(date) {
		return models.Gallery{}, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	if !validID(id) {
		return models.Gallery{}, fmt.Errorf("%w: %s/%s", ErrGalleryNotFound, date, id)
	}

	folder := Folder{Date: date, ID: id}
	key := "gallery:" + date + "/" + id
	if cached, found := s.cache.Get(key); found {
		return cached.(models.Gallery), nil
	}

	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), listTimeout)
		defer cancel()

		gallery, err := s.loadGallery(ctx, folder)
		if err != nil {
			return nil, err
		}
		s.cache.Set(key, gallery, cache.DefaultExpiration)
		return gallery, nil
	})
	if err != nil {
		return models.Gallery{}, err
	}
	return v.(models.Gallery), nil
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func (s *Service) loadGallery(ctx context.Context, folder Folder) (models.Gallery, error) {
	files, err := s.source.Files(ctx, folder)
	if err != nil {
		return models.Gallery{}, err
	}

	info := s.readInfo(ctx, folder)
	names := s.matcher.sortPhotos(files)
	if info.MaxImages > 0 && len(names) > info.MaxImages {
		names = names[:info.MaxImages]
	}

	formatted := formatDate(folder.Date)
	photos := make([]models.Photo, 0, len(names))
	for i, name := range names {
		src, err := s.source.URL(ctx, folder, name)
		if err != nil {
			return models.Gallery{}, err
		}
		photos = append(photos, models.Photo{
			ID:  fmt.Sprintf("photo-%d", i+1),
			Src: src,
			Alt: slideName(formatted, folder.ID, i),
		})
	}

	gallery := models.Gallery{
		Date:          folder.Date,
		ID:            folder.ID,
		Title:         info.Title,
		Description:   info.Description,
		FormattedDate: formatted,
		Stub:          fmt.Sprintf("/gallery/%s/%s", folder.Date, folder.ID),
		Photos:        photos,
		Files:         names,
	}
	if gallery.Title == "" {
		gallery.Title = fmt.Sprintf("%s - %s", formatted, folder.ID)
	}
	if len(photos) > 0 {
		cover := photos[0]
		gallery.Cover = &cover
	}
	return gallery, nil
}

// readInfo parses info.yaml; a broken file is logged and ignored
func (s *Service) readInfo(ctx context.Context, folder Folder) models.FolderInfo {
	var info models.FolderInfo
	data, err := s.source.ReadInfo(ctx, folder)
	if err != nil {
		s.logger.Warn("failed to read gallery info", zap.String("gallery", folder.Date+"/"+folder.ID), zap.Error(err))
		return info
	}
	if data == nil {
		return info
	}
	if err := yaml.Unmarshal(data, &info); err != nil {
		s.logger.Warn("invalid gallery info", zap.String("gallery", folder.Date+"/"+folder.ID), zap.Error(err))
		return models.FolderInfo{}
	}
	return info
}

// Images returns the photo URLs of a gallery. A gallery that does not exist has none.
func (s *Service) Images(ctx context.Context, date, id string) ([]string, error) {
	gallery, err := s.GetGallery(ctx, date, id)
	if errors.Is(err, ErrGalleryNotFound) || errors.Is(err, ErrInvalidDate) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}

	images := make([]string, len(gallery.Photos))
	for i, photo := range gallery.Photos {
		images[i] = photo.Src
	}
	return images, nil
}

// Slides returns the carousel slides of a gallery, optionally shuffled
func (s *Service) Slides(ctx context.Context, date, id string, shuffle bool) (models.SliderPage, error) {
	gallery, err := s.GetGallery(ctx, date, id)
	if err != nil {
		return models.SliderPage{}, err
	}
	if len(gallery.Photos) == 0 {
		return models.SliderPage{}, fmt.Errorf("%w: %s", ErrNoPhotos, gallery.Key())
	}

	slides := make([]models.Slide, len(gallery.Photos))
	for i, photo := range gallery.Photos {
		slides[i] = models.Slide{Name: photo.Alt, Image: photo.Src}
	}
	if shuffle {
		rand.Shuffle(len(slides), func(i, j int) {
			slides[i], slides[j] = slides[j], slides[i]
		})
	}

	return models.SliderPage{Gallery: gallery, Slides: slides, Shuffle: shuffle}, nil
}

// GetPhotobook lays the photos of a gallery out as a photobook
func (s *Service) GetPhotobook(ctx context.Context, date, id string) (*models.Photobook, error) {
	gallery, err := s.GetGallery(ctx, date, id)
	if err != nil {
		return nil, err
	}

	book, err := photobook.Build(date+"-"+id, gallery.Title, gallery.Photos, s.builder, s.templateID, s.now())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", gallery.Key(), err)
	}
	book.Description = gallery.Description
	return book, nil
}

// LoadPhotobook loads a photobook by gallery key ("date/id")
func (s *Service) LoadPhotobook(ctx context.Context, key string) (*models.Photobook, error) {
	date, id, err := ParseKey(key)
	if err != nil {
		return nil, err
	}
	return s.GetPhotobook(ctx, date, id)
}

// ParseKey splits a gallery key "20240623/1" into date and id
func ParseKey(key string) (string, string, error) {
	date, id, ok := strings.Cut(strings.Trim(key, "/"), "/")
	if !ok || id == "" {
		return "", "", fmt.Errorf("%w: %q", ErrGalleryNotFound, key)
	}
	return date, id, nil
}

func validID(id string) bool {
	return id != "" && id != "." && id != ".." && !strings.ContainsAny(id, `/\`)
}

func slideName(formattedDate, id string, index int) string {
	return fmt.Sprintf("%s - %s (%d)", formattedDate, id, index+1)
}
