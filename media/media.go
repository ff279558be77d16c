// Package media validates uploaded post images and stores them together
// with a JPEG thumbnail.
package media

import (
	"bytes"
	"image"
	"io"

	"blog/storage"
	"blog/utils"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	imageDir = "posts/"
	thumbDir = "posts/thumbs/"
)

var (
	ErrUnsupportedImage = errors.New("upload a valid image: the file is either not an image or a corrupted one")
	ErrTooLarge         = errors.New("the file is too large")
)

// format name reported by image.DecodeConfig -> extension, content type
var allowedImageTypes = map[string][2]string{
	"gif":  {"gif", "image/gif"},
	"jpeg": {"jpg", "image/jpeg"},
	"png":  {"png", "image/png"},
}

type Saved struct {
	Path   string
	Thumb  string
	Width  uint16
	Height uint16
}

type Uploader struct {
	Storage   storage.StorageAPI
	ThumbSize uint
	MaxSize   int64
}

// Save checks the content (never the file name) and stores the image
func (u *Uploader) Save(reader io.Reader) (saved Saved, err error) {
	data, err := io.ReadAll(io.LimitReader(reader, u.MaxSize+1))
	if err != nil {
		return saved, errors.Wrap(err, "read upload")
	}
	if int64(len(data)) > u.MaxSize {
		return saved, ErrTooLarge
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return saved, ErrUnsupportedImage
	}
	imageType, ok := allowedImageTypes[format]
	if !ok {
		return saved, ErrUnsupportedImage
	}

	var thumb bytes.Buffer
	info, err := utils.CreateThumb(u.ThumbSize, bytes.NewReader(data), &thumb)
	if err != nil {
		return saved, ErrUnsupportedImage
	}

	name := uuid.New().String()
	saved = Saved{
		Path:   imageDir + name + "." + imageType[0],
		Thumb:  thumbDir + name + ".jpg",
		Width:  info.OldX,
		Height: info.OldY,
	}
	if _, err = u.Storage.Save(saved.Path, bytes.NewReader(data), imageType[1]); err != nil {
		return Saved{}, errors.Wrap(err, "save image")
	}
	if _, err = u.Storage.Save(saved.Thumb, &thumb, "image/jpeg"); err != nil {
		u.Remove(saved.Path, "")
		return Saved{}, errors.Wrap(err, "save thumbnail")
	}
	return saved, nil
}

// Remove deletes a replaced image, failures are only logged
func (u *Uploader) Remove(paths ...string) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if err := u.Storage.Delete(p); err != nil {
			log.Warnf("[media] cannot delete %s: %v", p, err)
		}
	}
}
