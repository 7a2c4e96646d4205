package cmd

import (
	"os"
	"testing"

	"github.com/creativeprojects/mailfolder/cfg"
	"github.com/creativeprojects/mailfolder/folder"
	"github.com/creativeprojects/mailfolder/lib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setTestConfig(t *testing.T, testConfig *cfg.Config) {
	t.Helper()
	previous := config
	config = testConfig
	t.Cleanup(func() {
		config = previous
	})
}

func TestOpenFolderFromAbsolutePath(t *testing.T) {
	setTestConfig(t, &cfg.Config{})
	root := t.TempDir()
	require.True(t, len(root) > 0 && root[0] == os.PathSeparator)

	mdir, client, err := openFolder(root)
	require.NoError(t, err)
	assert.Nil(t, client)
	assert.True(t, mdir.IsLocal())
	assert.Equal(t, root, mdir.Path())
}

func TestOpenFolderByNameUnderMaildirRoot(t *testing.T) {
	root := t.TempDir()
	info, err := folder.Create(root, "INBOX")
	require.NoError(t, err)
	setTestConfig(t, &cfg.Config{Maildir: root})

	mdir, client, err := openFolder("INBOX")
	require.NoError(t, err)
	assert.Nil(t, client)
	assert.True(t, mdir.IsLocal())
	assert.Equal(t, info.Path, mdir.Path())
}

func TestOpenFolderNotFoundWithoutProxy(t *testing.T) {
	setTestConfig(t, &cfg.Config{Maildir: t.TempDir()})

	_, _, err := openFolder("Nowhere")
	assert.ErrorIs(t, err, lib.ErrFolderNotFound)
}
