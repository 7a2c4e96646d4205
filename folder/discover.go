package folder

import (
	"os"
	"path/filepath"

	"github.com/creativeprojects/mailfolder/mailbox"
	"github.com/emersion/go-maildir"
)

// List returns the maildir folders found directly under root. Subdirectories
// without the maildir structure are ignored.
func List(root string) ([]mailbox.Info, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}
	list := make([]mailbox.Info, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		path := filepath.Join(root, entry.Name())
		if !IsMaildir(path) {
			continue
		}
		list = append(list, mailbox.Info{
			Name: entry.Name(),
			Path: path,
		})
	}
	return list, nil
}

// Create initializes a maildir folder under root. It doesn't return an error
// if the folder already exists.
func Create(root, name string) (mailbox.Info, error) {
	path := filepath.Join(root, name)
	info := mailbox.Info{
		Name: name,
		Path: path,
	}
	if IsMaildir(path) {
		// folder already exists
		return info, nil
	}
	if err := maildir.Dir(path).Init(); err != nil {
		return mailbox.Info{}, err
	}
	return info, nil
}
