package folder

import (
	"os"
	"path/filepath"
)

// MessageStore enumerates the message files directly inside one directory.
// Implementations never fail the caller: a directory that is missing or
// cannot be read yields an empty set.
type MessageStore interface {
	Files(dir string) []string
}

// DirStore is the filesystem implementation of MessageStore.
type DirStore struct{}

// Files returns the full path of every regular file directly under dir.
// There's no recursion into subdirectories.
func (s DirStore) Files(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	return files
}
