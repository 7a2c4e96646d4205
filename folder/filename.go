package folder

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/creativeprojects/mailfolder/lib"
)

var seededRand = rand.New(rand.NewSource(time.Now().UnixNano()))

// IsMaildir reports whether path is a maildir-structured directory, with the
// cur, new and tmp subdirectories all present.
func IsMaildir(path string) bool {
	for _, sub := range []string{"cur", "new", "tmp"} {
		info, err := os.Stat(filepath.Join(path, sub))
		if err != nil || !info.IsDir() {
			return false
		}
	}
	return true
}

// GenerateUniqueFilename picks a filename for a message delivered into this
// folder, under new/ when isNew is set, under cur/ otherwise. The name
// follows the maildir convention <epoch>.<hostname><random>:2,<flag> with
// the N flag for an unseen message and S for a seen one.
//
// The name is regenerated for as long as it collides with a file already in
// the target directory, or with the previous name handed out. An empty
// string comes back when the folder is not maildir-structured: treat it as
// "cannot save here", never as a filename.
func (f *Folder) GenerateUniqueFilename(isNew bool) string {
	if !IsMaildir(f.path) {
		return ""
	}
	dir := filepath.Join(f.path, "cur")
	flag := "S"
	if isNew {
		dir = filepath.Join(f.path, "new")
		flag = "N"
	}
	hostname := lib.Hostname()

	f.mutex.Lock()
	defer f.mutex.Unlock()
	for {
		name := fmt.Sprintf("%d.%s%d:2,%s", time.Now().Unix(), hostname, seededRand.Intn(999), flag)
		full := filepath.Join(dir, name)
		if full == f.lastName {
			// the previous name may not exist on disk yet
			continue
		}
		if _, err := os.Stat(full); err == nil {
			continue
		}
		f.lastName = full
		return full
	}
}
