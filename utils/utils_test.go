package utils

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandSalt(t *testing.T) {
	a, b := RandSalt(32), RandSalt(32)
	assert.NotEqual(t, a, b)
	assert.Len(t, a, 44)
}

func TestCreateThumb(t *testing.T) {
	tests := []struct {
		name  string
		w, h  int
		size  uint
		wantW uint16
		wantH uint16
	}{
		{name: "landscape shrinks", w: 400, h: 200, size: 100, wantW: 100, wantH: 50},
		{name: "portrait shrinks", w: 100, h: 300, size: 150, wantW: 50, wantH: 150},
		{name: "small stays", w: 20, h: 10, size: 100, wantW: 20, wantH: 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := image.NewRGBA(image.Rect(0, 0, tt.w, tt.h))
			img.Set(0, 0, color.RGBA{R: 255, A: 255})
			var src, dst bytes.Buffer
			require.NoError(t, png.Encode(&src, img))

			result, err := CreateThumb(tt.size, &src, &dst)
			require.NoError(t, err)
			assert.Equal(t, tt.wantW, result.NewX)
			assert.Equal(t, tt.wantH, result.NewY)
			assert.Equal(t, uint16(tt.w), result.OldX)
			assert.Equal(t, int64(dst.Len()), result.ThumbSize)

			_, err = jpeg.DecodeConfig(&dst)
			assert.NoError(t, err, "thumbnails are JPEG")
		})
	}

	_, err := CreateThumb(100, bytes.NewReader([]byte("not an image")), &bytes.Buffer{})
	assert.Error(t, err)
}
