package storage

import (
	"io"
	"net/http"
	"path"
	"strings"

	"blog/config"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var ErrInvalidPath = errors.New("invalid storage path")

// StorageAPI stores uploaded media. Paths are slash separated and relative,
// e.g. "posts/5f0c....gif".
type StorageAPI interface {
	Save(path string, reader io.Reader, mimeType string) (int64, error)
	Load(path string, writer io.Writer) (int64, error)
	Delete(path string) error
	// Serve writes the file (or a redirect to it) to the response
	Serve(path string, request *http.Request, writer http.ResponseWriter)
	// URL is what templates link to
	URL(path string) string
}

// FromConfig returns S3 storage when a bucket is configured, disk otherwise
func FromConfig() (StorageAPI, error) {
	if config.S3_BUCKET != "" {
		log.Infof("[storage] using S3 bucket %s", config.S3_BUCKET)
		return NewS3Storage(S3Config{
			Bucket:   config.S3_BUCKET,
			Region:   config.S3_REGION,
			Endpoint: config.S3_ENDPOINT,
			Key:      config.S3_KEY,
			Secret:   config.S3_SECRET,
			Prefix:   config.S3_PREFIX,
		})
	}
	log.Infof("[storage] using disk %s", config.MEDIA_ROOT)
	return NewDiskStorage(config.MEDIA_ROOT, config.MEDIA_URL), nil
}

// cleanPath rejects anything that would escape the storage root
func cleanPath(p string) (string, error) {
	if p == "" || strings.Contains(p, "\\") {
		return "", ErrInvalidPath
	}
	cleaned := path.Clean("/" + p)[1:]
	if cleaned == "" || cleaned != strings.TrimPrefix(p, "/") {
		return "", ErrInvalidPath
	}
	return cleaned, nil
}
