// Package storage keeps uploaded media on local disk and hands out the
// public URLs they are served under.
package storage

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

var ErrBadPath = errors.New("storage: invalid object path")

// LocalStore writes objects below Root; BaseURL is the prefix they are
// served from (see the /media route).
type LocalStore struct {
	Root    string
	BaseURL string
}

func NewLocalStore(root, baseURL string) (*LocalStore, error) {
	if !filepath.IsAbs(root) {
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, errors.Wrapf(err, "resolve media dir %s", root)
		}
		root = abs
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create media dir %s", root)
	}
	return &LocalStore{Root: root, BaseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Resolve maps an object key to its file, refusing traversal, encoded dots
// and NUL bytes.
func (s *LocalStore) Resolve(key string) (string, error) {
	lower := strings.ToLower(key)
	if strings.Contains(lower, "..") || strings.Contains(lower, "%2e") || strings.Contains(lower, "\x00") {
		return "", ErrBadPath
	}
	clean := filepath.Clean(filepath.FromSlash(key))
	if clean == "." || strings.Contains(clean, "..") || filepath.IsAbs(clean) {
		return "", ErrBadPath
	}
	return filepath.Join(s.Root, clean), nil
}

// Put stores data under key and returns its public URL.
func (s *LocalStore) Put(ctx context.Context, key string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	full, err := s.Resolve(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", errors.Wrapf(err, "mkdir for %s", key)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", errors.Wrapf(err, "write %s", key)
	}
	return s.URL(key), nil
}

func (s *LocalStore) URL(key string) string {
	return s.BaseURL + "/" + path.Clean(strings.TrimLeft(filepath.ToSlash(key), "/"))
}

// Key turns a URL previously returned by Put back into its key. ok is false
// for URLs this store does not own.
func (s *LocalStore) Key(url string) (string, bool) {
	prefix := s.BaseURL + "/"
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	return strings.TrimPrefix(url, prefix), true
}

// Delete removes the object behind url. Missing objects are not an error.
func (s *LocalStore) Delete(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key, ok := s.Key(url)
	if !ok {
		return errors.Wrapf(ErrBadPath, "foreign url %s", url)
	}
	full, err := s.Resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "remove %s", key)
	}
	return nil
}
