package storage

import "io"

// Storage 抽象简历等上传文件的存放位置，便于以后切换到对象存储
type Storage interface {
	Save(filename string, r io.Reader) (string, error)
	Delete(filename string) error
	URL(filename string) string
}
