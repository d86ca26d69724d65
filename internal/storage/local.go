package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage 将文件保存在本地磁盘，由 API 进程以静态文件方式对外提供
type LocalStorage struct {
	dir     string
	baseURL string
}

func NewLocalStorage(dir string, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("创建上传目录失败: %w", err)
	}

	return &LocalStorage{
		dir:     dir,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

func (s *LocalStorage) Save(filename string, r io.Reader) (string, error) {
	// 只取文件名部分，防止路径穿越
	filename = filepath.Base(filename)

	dst, err := os.Create(filepath.Join(s.dir, filename))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		return "", err
	}

	return s.URL(filename), nil
}

func (s *LocalStorage) Delete(filename string) error {
	filename = filepath.Base(filename)

	err := os.Remove(filepath.Join(s.dir, filename))
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	return nil
}

func (s *LocalStorage) URL(filename string) string {
	return fmt.Sprintf("%s/%s", s.baseURL, filepath.Base(filename))
}
