// Package walker discovers the files of a tech tree data directory: the shared
// data.json and tree.json and one strings.json per locale.
package walker

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DefaultMaxFileSize is the largest data file read (32 MB).
const DefaultMaxFileSize int64 = 32 << 20

// Kind tells what a data file holds.
type Kind string

const (
	KindData    Kind = "data"
	KindTree    Kind = "tree"
	KindStrings Kind = "strings"
)

// File describes one discovered data file.
type File struct {
	Path        string // Absolute path on disk.
	RelPath     string // Slash separated path relative to the data directory.
	Kind        Kind
	Locale      string // Locale code, only for KindStrings.
	Size        int64
	ContentHash string // SHA-256 hex digest of the content.
}

// Config controls Walk.
type Config struct {
	RootDir     string
	Include     []string // Glob patterns, applied to locale string tables only.
	Exclude     []string
	MaxFileSize int64 // 0 = DefaultMaxFileSize
}

// Classify returns the kind and locale of a relative path, or ok=false when
// the file is not part of a dataset.
func Classify(relPath string) (kind Kind, locale string, ok bool) {
	parts := strings.Split(filepath.ToSlash(relPath), "/")
	switch {
	case len(parts) == 1 && parts[0] == "data.json":
		return KindData, "", true
	case len(parts) == 1 && parts[0] == "tree.json":
		return KindTree, "", true
	case len(parts) == 3 && parts[0] == "locales" && parts[2] == "strings.json" && parts[1] != "":
		return KindStrings, parts[1], true
	}
	return "", "", false
}

// Walk returns every dataset file under config.RootDir. Include and exclude
// patterns select locales; data.json and tree.json are always returned.
func Walk(config Config) ([]File, error) {
	root, err := filepath.Abs(config.RootDir)
	if err != nil {
		return nil, fmt.Errorf("walker: resolve root: %w", err)
	}
	if err := ValidatePatterns(append(append([]string{}, config.Include...), config.Exclude...)); err != nil {
		return nil, err
	}

	maxSize := config.MaxFileSize
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}

	var files []File
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			return nil
		}
		if d.IsDir() {
			if path != root && shouldExcludeDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		relPath = filepath.ToSlash(relPath)

		kind, locale, ok := Classify(relPath)
		if !ok {
			return nil
		}
		if kind == KindStrings {
			if !MatchesInclude(relPath, config.Include) || MatchesExclude(relPath, config.Exclude) {
				return nil
			}
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		if info.Size() > maxSize {
			return fmt.Errorf("walker: %s exceeds %d bytes", relPath, maxSize)
		}

		hash, err := hashFile(path)
		if err != nil {
			return fmt.Errorf("walker: hash %s: %w", relPath, err)
		}

		files = append(files, File{
			Path:        path,
			RelPath:     relPath,
			Kind:        kind,
			Locale:      locale,
			Size:        info.Size(),
			ContentHash: hash,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walker: traversal: %w", err)
	}
	return files, nil
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
