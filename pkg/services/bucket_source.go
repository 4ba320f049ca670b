package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
)

// signedURLTTL is how long a signed photo URL stays valid
const signedURLTTL = 24 * time.Hour

// BucketSource serves galleries from a Cloud Storage bucket laid out as
// <prefix>/<date>/<id>/<file>
type BucketSource struct {
	client *storage.Client
	bucket *storage.BucketHandle
	prefix string
}

// NewBucketSource opens a storage client for the bucket
func NewBucketSource(ctx context.Context, bucketName, prefix string) (*BucketSource, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return &BucketSource{
		client: client,
		bucket: client.Bucket(bucketName),
		prefix: strings.Trim(prefix, "/"),
	}, nil
}

// Close releases the storage client
func (b *BucketSource) Close() error {
	return b.client.Close()
}

// Folders lists every object below the prefix and collects their <date>/<id> folders
func (b *BucketSource) Folders(ctx context.Context) ([]Folder, error) {
	it := b.bucket.Objects(ctx, &storage.Query{Prefix: b.objectPrefix()})
	seen := make(map[Folder]bool)
	var folders []Folder

	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error iterating objects: %w", err)
		}

		folder, _, ok := splitObjectName(b.prefix, attrs.Name)
		if !ok || seen[folder] {
			continue
		}
		seen[folder] = true
		folders = append(folders, folder)
	}
	return folders, nil
}

// Files lists the objects directly inside a gallery folder
func (b *BucketSource) Files(ctx context.Context, folder Folder) ([]string, error) {
	it := b.bucket.Objects(ctx, &storage.Query{Prefix: b.objectName(folder, "")})
	var names []string

	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error iterating objects: %w", err)
		}
		if _, name, ok := splitObjectName(b.prefix, attrs.Name); ok {
			names = append(names, name)
		}
	}

	if len(names) == 0 {
		return nil, fmt.Errorf("%w: %s/%s", ErrGalleryNotFound, folder.Date, folder.ID)
	}
	return names, nil
}

// ReadInfo downloads info.yaml of a folder
func (b *BucketSource) ReadInfo(ctx context.Context, folder Folder) ([]byte, error) {
	reader, err := b.bucket.Object(b.objectName(folder, infoFile)).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", infoFile, err)
	}
	defer reader.Close()

	return io.ReadAll(reader)
}

// URL creates a signed 24-hour URL for the photo
func (b *BucketSource) URL(_ context.Context, folder Folder, name string) (string, error) {
	signedURL, err := b.bucket.SignedURL(b.objectName(folder, name), &storage.SignedURLOptions{
		Expires: time.Now().Add(signedURLTTL),
		Method:  "GET",
	})
	if err != nil {
		return "", fmt.Errorf("error creating signed URL for %s: %w", name, err)
	}
	return signedURL, nil
}

func (b *BucketSource) objectPrefix() string {
	if b.prefix == "" {
		return ""
	}
	return b.prefix + "/"
}

func (b *BucketSource) objectName(folder Folder, name string) string {
	return b.objectPrefix() + folder.Date + "/" + folder.ID + "/" + name
}

// splitObjectName parses <prefix>/<date>/<id>/<file>; deeper objects are ignored
func splitObjectName(prefix, objectName string) (Folder, string, bool) {
	if prefix != "" {
		rest, ok := strings.CutPrefix(objectName, prefix+"/")
		if !ok {
			return Folder{}, "", false
		}
		objectName = rest
	}

	parts := strings.Split(objectName, "/")
	if len(parts) != 3 || parts[1] == "" || parts[2] == "" {
		return Folder{}, "", false
	}
	if !dateFormat.MatchString(parts[0]) {
		return Folder{}, "", false
	}
	return Folder{Date: parts[0], ID: parts[1]}, parts[2], true
}
