// Package storage keeps uploaded design images on local disk and serves
// them under a public base URL.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

var ErrInvalidPath = errors.New("invalid storage path")

type LocalStore struct {
	root    string
	baseURL string
}

// NewLocalStore creates root if needed. baseURL is prefixed to stored paths
// when building public URLs, e.g. "/media".
func NewLocalStore(root, baseURL string) (*LocalStore, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return &LocalStore{root: abs, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *LocalStore) Root() string {
	return s.root
}

// resolve maps a slash-separated storage path onto the disk, refusing
// anything that escapes the root.
func (s *LocalStore) resolve(p string) (string, error) {
	clean := path.Clean("/" + strings.TrimSpace(p))
	if clean == "/" {
		return "", ErrInvalidPath
	}
	full := filepath.Join(s.root, filepath.FromSlash(clean))
	if !strings.HasPrefix(full, s.root+string(os.PathSeparator)) {
		return "", ErrInvalidPath
	}
	return full, nil
}

// Upload writes to a temp file next to the target and renames it in place,
// so readers never see a partial image.
func (s *LocalStore) Upload(ctx context.Context, p string, r io.Reader, contentType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	full, err := s.resolve(p)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(full), ".upload-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), full)
}

func (s *LocalStore) PublicURL(p string) string {
	return s.baseURL + "/" + strings.TrimLeft(p, "/")
}

// DeletePrefix removes a stored file or a whole directory of them.
// Missing paths are not an error.
func (s *LocalStore) DeletePrefix(ctx context.Context, prefix string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	full, err := s.resolve(prefix)
	if err != nil {
		return err
	}
	return os.RemoveAll(full)
}
