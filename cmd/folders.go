package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/creativeprojects/mailfolder/folder"
	"github.com/creativeprojects/mailfolder/lib"
	"github.com/creativeprojects/mailfolder/proxy"
)

// newProxyClient dials the proxy process configured in the proxy section.
func newProxyClient() (*proxy.Client, error) {
	if config.Proxy.Socket == "" {
		return nil, lib.ErrNoProxy
	}
	var logger lib.Logger = &lib.NoLog{}
	if global.verbose {
		logger = log.Default()
	}
	return proxy.NewClient(proxy.Config{
		Socket:      config.Proxy.Socket,
		Timeout:     time.Duration(config.Proxy.Timeout) * time.Second,
		DebugLogger: logger,
	})
}

// openFolder resolves a folder argument: an absolute path is a local
// maildir, a bare name is looked up under the maildir root first and falls
// back to a remote folder through the proxy. The returned closer is nil when
// no proxy connection was opened.
func openFolder(name string) (*folder.Folder, *proxy.Client, error) {
	if len(name) > 0 && name[0] == os.PathSeparator {
		return folder.NewLocal(name), nil, nil
	}
	if config.Maildir != "" {
		path := filepath.Join(config.Maildir, name)
		if folder.IsMaildir(path) {
			return folder.NewLocal(path), nil, nil
		}
	}
	client, err := newProxyClient()
	if errors.Is(err, lib.ErrNoProxy) {
		return nil, nil, fmt.Errorf("%w: %q is not a local maildir and no proxy is configured", lib.ErrFolderNotFound, name)
	}
	if err != nil {
		return nil, nil, err
	}
	return folder.NewRemote(name, client), client, nil
}
