package media

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"blog/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2x1 GIF
var smallGIF = []byte{
	0x47, 0x49, 0x46, 0x38, 0x39, 0x61, 0x02, 0x00,
	0x01, 0x00, 0x80, 0x00, 0x00, 0x00, 0x00, 0x00,
	0xFF, 0xFF, 0xFF, 0x21, 0xF9, 0x04, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x2C, 0x00, 0x00, 0x00, 0x00,
	0x02, 0x00, 0x01, 0x00, 0x00, 0x02, 0x02, 0x0C,
	0x0A, 0x00, 0x3B,
}

func newUploader(t *testing.T) (*Uploader, *storage.DiskStorage) {
	disk := storage.NewDiskStorage(t.TempDir(), "/media/")
	return &Uploader{Storage: disk, ThumbSize: 100, MaxSize: 1 << 20}, disk
}

func TestUploader_SaveGIF(t *testing.T) {
	u, disk := newUploader(t)
	saved, err := u.Save(bytes.NewReader(smallGIF))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(saved.Path, "posts/"))
	assert.True(t, strings.HasSuffix(saved.Path, ".gif"))
	assert.True(t, strings.HasPrefix(saved.Thumb, "posts/thumbs/"))
	assert.Equal(t, uint16(2), saved.Width)
	assert.Equal(t, uint16(1), saved.Height)

	var buf bytes.Buffer
	_, err = disk.Load(saved.Path, &buf)
	require.NoError(t, err)
	assert.Equal(t, smallGIF, buf.Bytes())

	buf.Reset()
	_, err = disk.Load(saved.Thumb, &buf)
	require.NoError(t, err)
	assert.NotZero(t, buf.Len())
}

func TestUploader_SavePNG(t *testing.T) {
	u, _ := newUploader(t)
	img := image.NewRGBA(image.Rect(0, 0, 300, 150))
	img.Set(1, 1, color.White)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	saved, err := u.Save(&buf)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(saved.Path, ".png"))
}

func TestUploader_Rejects(t *testing.T) {
	u, _ := newUploader(t)

	_, err := u.Save(strings.NewReader("just some text pretending to be an image"))
	assert.ErrorIs(t, err, ErrUnsupportedImage)

	u.MaxSize = 10
	_, err = u.Save(bytes.NewReader(smallGIF))
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestUploader_Remove(t *testing.T) {
	u, disk := newUploader(t)
	saved, err := u.Save(bytes.NewReader(smallGIF))
	require.NoError(t, err)

	u.Remove(saved.Path, saved.Thumb, "")
	_, err = disk.Load(saved.Path, &bytes.Buffer{})
	assert.Error(t, err)
}
