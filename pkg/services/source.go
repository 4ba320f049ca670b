package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

// infoFile is the optional per-gallery metadata file
const infoFile = "info.yaml"

// Folder identifies one gallery folder: <date>/<id>
type Folder struct {
	Date string
	ID   string
}

// Source lists gallery folders and their files and resolves the URL of a photo
type Source interface {
	// Folders returns every <date>/<id> folder, in no particular order.
	Folders(ctx context.Context) ([]Folder, error)
	// Files returns the plain file names of a folder, or ErrGalleryNotFound.
	Files(ctx context.Context, folder Folder) ([]string, error)
	// ReadInfo returns the content of info.yaml, or nil when the folder has none.
	ReadInfo(ctx context.Context, folder Folder) ([]byte, error)
	// URL returns the address the browser loads a photo from.
	URL(ctx context.Context, folder Folder, name string) (string, error)
}

// DirSource serves galleries from a local directory tree
type DirSource struct {
	Root    string
	BaseURL string
}

// NewDirSource returns a source rooted at dir whose photos are served under baseURL
func NewDirSource(dir, baseURL string) *DirSource {
	if baseURL == "" {
		baseURL = "/images"
	}
	return &DirSource{Root: dir, BaseURL: baseURL}
}

// Folders walks <root>/<date>/<id>
func (d *DirSource) Folders(ctx context.Context) ([]Folder, error) {
	dates, err := os.ReadDir(d.Root)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read images dir: %w", err)
	}

	var folders []Folder
	for _, date := range dates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !date.IsDir() || !dateFormat.MatchString(date.Name()) {
			continue
		}
		ids, err := os.ReadDir(filepath.Join(d.Root, date.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", date.Name(), err)
		}
		for _, id := range ids {
			if id.IsDir() {
				folders = append(folders, Folder{Date: date.Name(), ID: id.Name()})
			}
		}
	}
	return folders, nil
}

// Files lists the regular files of a gallery folder
func (d *DirSource) Files(_ context.Context, folder Folder) ([]string, error) {
	entries, err := os.ReadDir(d.dir(folder))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s/%s", ErrGalleryNotFound, folder.Date, folder.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read gallery: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

// ReadInfo reads info.yaml of a folder
func (d *DirSource) ReadInfo(_ context.Context, folder Folder) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(d.dir(folder), infoFile))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return data, err
}

// URL joins the base URL with the photo path
func (d *DirSource) URL(_ context.Context, folder Folder, name string) (string, error) {
	return path.Join(d.BaseURL, folder.Date, folder.ID, name), nil
}

// Dir returns the directory a source watcher should observe
func (d *DirSource) Dir() string {
	return d.Root
}

func (d *DirSource) dir(folder Folder) string {
	return filepath.Join(d.Root, folder.Date, folder.ID)
}
