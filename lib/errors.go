package lib

import "errors"

var (
	ErrNotMaildir     = errors.New("not a maildir")
	ErrFolderNotFound = errors.New("folder not found")
	ErrNoProxy        = errors.New("no proxy client configured")
	ErrProxyResponse  = errors.New("proxy returned an error")
)
