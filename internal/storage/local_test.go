package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage(t *testing.T) {
	dir := t.TempDir()

	store, err := NewLocalStorage(dir, "http://localhost:3000/uploads/")
	require.NoError(t, err)

	t.Run("保存文件并返回访问地址", func(t *testing.T) {
		url, err := store.Save("resume.pdf", strings.NewReader("%PDF-1.4 fake"))
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:3000/uploads/resume.pdf", url)

		content, err := os.ReadFile(filepath.Join(dir, "resume.pdf"))
		require.NoError(t, err)
		assert.Equal(t, "%PDF-1.4 fake", string(content))
	})

	t.Run("文件名中的路径部分被剥离", func(t *testing.T) {
		_, err := store.Save("../escape.pdf", strings.NewReader("data"))
		require.NoError(t, err)

		_, err = os.Stat(filepath.Join(dir, "escape.pdf"))
		assert.NoError(t, err)
	})

	t.Run("删除文件", func(t *testing.T) {
		require.NoError(t, store.Delete("resume.pdf"))

		_, err := os.Stat(filepath.Join(dir, "resume.pdf"))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("删除不存在的文件不报错", func(t *testing.T) {
		assert.NoError(t, store.Delete("missing.pdf"))
	})
}
