package storage

import "io"

type StorageService interface {
	Upload(key string, reader io.Reader, size int64, contentType string) error
	Delete(key string) error
	PublicURL(key string) string
}
