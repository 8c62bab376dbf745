// Package artifact publishes packaged build outputs to a repository, either a
// directory on disk or an S3 bucket.
package artifact

import (
	"context"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/dkoosis/recipes/internal/fsutil"
)

// S3Scheme prefixes repository locations stored in S3.
const S3Scheme = "s3://"

// ErrEmptyLocation is returned when no repository location is configured.
var ErrEmptyLocation = errors.New("artifact repository location is empty")

// Store receives artifacts.
type Store interface {
	// Put uploads the file at localPath under key.
	Put(ctx context.Context, localPath, key string) error
	// Location describes where artifacts end up.
	Location() string
}

// Location is a parsed repository location.
type Location struct {
	Bucket string
	Prefix string
	Dir    string
}

// IsS3 reports whether the location names an S3 bucket.
func (l Location) IsS3() bool { return l.Bucket != "" }

// ParseLocation splits s into an S3 bucket and prefix, or a directory.
func ParseLocation(s string) (Location, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Location{}, ErrEmptyLocation
	}
	if !strings.HasPrefix(s, S3Scheme) {
		return Location{Dir: filepath.Clean(s)}, nil
	}
	rest := strings.TrimPrefix(s, S3Scheme)
	bucket, prefix, _ := strings.Cut(rest, "/")
	if bucket == "" {
		return Location{}, fmt.Errorf("artifact location %q: missing bucket", s)
	}
	return Location{Bucket: bucket, Prefix: strings.Trim(prefix, "/")}, nil
}

// Open returns the store for location.
func Open(ctx context.Context, location string) (Store, error) {
	loc, err := ParseLocation(location)
	if err != nil {
		return nil, err
	}
	if loc.IsS3() {
		return NewS3Store(ctx, loc.Bucket, loc.Prefix)
	}
	return NewDirStore(loc.Dir), nil
}

// DirStore copies artifacts into a directory.
type DirStore struct {
	dir string
}

// NewDirStore returns a store rooted at dir.
func NewDirStore(dir string) *DirStore {
	return &DirStore{dir: dir}
}

// Put copies localPath to dir/key.
func (s *DirStore) Put(_ context.Context, localPath, key string) error {
	dst := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := fsutil.Copy(dst, localPath); err != nil {
		return fmt.Errorf("store artifact %s: %w", key, err)
	}
	return nil
}

// Location returns the directory.
func (s *DirStore) Location() string { return s.dir }

func objectKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return path.Join(prefix, key)
}
