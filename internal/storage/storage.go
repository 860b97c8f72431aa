package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var ErrInvalidFileType = errors.New("invalid file type")

// Category selects the subdirectory an upload is stored under.
type Category string

const (
	CategoryProduct Category = "products"
	CategoryGallery Category = "gallery"
	CategoryPayment Category = "payment"
	CategoryProof   Category = "proofs"
)

var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// Store persists uploaded blobs and hands back a reference the rest of the
// application carries around. It never inspects file content.
type Store interface {
	Save(category Category, name string, r io.Reader) (string, error)
	Remove(category Category, ref string) error
	Dir() string
}

type diskStore struct {
	root string
}

// NewDiskStore creates the upload directories under root if missing.
func NewDiskStore(root string) (Store, error) {
	for _, c := range []Category{CategoryProduct, CategoryGallery, CategoryPayment, CategoryProof} {
		if err := os.MkdirAll(filepath.Join(root, string(c)), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create upload dir: %w", err)
		}
	}
	return &diskStore{root: root}, nil
}

func (s *diskStore) Dir() string {
	return s.root
}

// Save writes the payload under a collision-safe variant of name and returns
// the stored filename.
func (s *diskStore) Save(category Category, name string, r io.Reader) (string, error) {
	name = sanitizeName(name)

	ext := strings.ToLower(filepath.Ext(name))
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("%w: %s", ErrInvalidFileType, ext)
	}

	dir := filepath.Join(s.root, string(category))
	final := name
	base := strings.TrimSuffix(name, ext)

	// name_1.ext, name_2.ext, ... until free
	for count := 1; ; count++ {
		if _, err := os.Stat(filepath.Join(dir, final)); os.IsNotExist(err) {
			break
		}
		final = fmt.Sprintf("%s_%d%s", base, count, ext)
	}

	f, err := os.Create(filepath.Join(dir, final))
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return final, nil
}

func (s *diskStore) Remove(category Category, ref string) error {
	if ref == "" {
		return nil
	}
	path := filepath.Join(s.root, string(category), sanitizeName(ref))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// sanitizeName strips any path components from an uploaded filename.
func sanitizeName(name string) string {
	name = filepath.Base(filepath.Clean(name))
	name = strings.ReplaceAll(name, " ", "_")
	return name
}
