package artifact

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrNotExist is returned by ReadScript when no artifact is on disk for the
// requested slug.
var ErrNotExist = errors.New("artifact does not exist")

// Store writes and removes generated artifacts on the local filesystem.
// Scripts live in <base>/scripts/<slug>.js, loader stubs in
// <base>/scripts/<slug>.loader.js and landing pages in
// <base>/pages/<slug>.html. All files are addressed purely by slug.
type Store struct {
	scriptsDir string
	pagesDir   string
}

// NewStore creates both artifact directories if missing and returns a store
// rooted at base.
func NewStore(base string) (*Store, error) {
	s := &Store{
		scriptsDir: filepath.Join(base, "scripts"),
		pagesDir:   filepath.Join(base, "pages"),
	}
	for _, dir := range []string{s.scriptsDir, s.pagesDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// ScriptPath returns the on-disk location of a slug's redirect script.
func (s *Store) ScriptPath(slug string) string {
	return filepath.Join(s.scriptsDir, slug+".js")
}

// LoaderPath returns the on-disk location of a slug's loader stub.
func (s *Store) LoaderPath(slug string) string {
	return filepath.Join(s.scriptsDir, slug+".loader.js")
}

// PagePath returns the on-disk location of a slug's landing page.
func (s *Store) PagePath(slug string) string {
	return filepath.Join(s.pagesDir, slug+".html")
}

// WriteScript replaces the redirect script for a slug.
func (s *Store) WriteScript(slug, text string) error {
	return os.WriteFile(s.ScriptPath(slug), []byte(text), 0o644)
}

// WriteLoader replaces the loader stub for a slug.
func (s *Store) WriteLoader(slug, text string) error {
	return os.WriteFile(s.LoaderPath(slug), []byte(text), 0o644)
}

// WritePage replaces the landing page for a slug.
func (s *Store) WritePage(slug, html string) error {
	return os.WriteFile(s.PagePath(slug), []byte(html), 0o644)
}

// ReadScript returns the script text stored for a slug, or ErrNotExist.
func (s *Store) ReadScript(slug string) (string, error) {
	data, err := os.ReadFile(s.ScriptPath(slug))
	if errors.Is(err, fs.ErrNotExist) {
		return "", ErrNotExist
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Remove deletes every artifact stored for a slug. Missing files are not an
// error; the first real filesystem failure is returned after attempting all
// removals.
func (s *Store) Remove(slug string) error {
	var firstErr error
	for _, path := range []string{s.ScriptPath(slug), s.LoaderPath(slug), s.PagePath(slug)} {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
