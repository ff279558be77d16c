package storage

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanPath(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "posts/a.gif", want: "posts/a.gif"},
		{in: "/posts/a.gif", want: "posts/a.gif"},
		{in: "posts/../../etc/passwd", wantErr: true},
		{in: "../a.gif", wantErr: true},
		{in: "posts\\a.gif", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := cleanPath(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPath)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDiskStorage(t *testing.T) {
	s := NewDiskStorage(t.TempDir(), "/media/")

	n, err := s.Save("posts/hello.txt", strings.NewReader("hello"), "text/plain")
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)

	var buf bytes.Buffer
	_, err = s.Load("posts/hello.txt", &buf)
	require.NoError(t, err)
	assert.Equal(t, "hello", buf.String())
	assert.Equal(t, "/media/posts/hello.txt", s.URL("posts/hello.txt"))

	rr := httptest.NewRecorder()
	s.Serve("posts/hello.txt", httptest.NewRequest(http.MethodGet, "/media/posts/hello.txt", nil), rr)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "hello", rr.Body.String())

	rr = httptest.NewRecorder()
	s.Serve("posts", httptest.NewRequest(http.MethodGet, "/media/posts", nil), rr)
	assert.Equal(t, http.StatusNotFound, rr.Code, "directories are not listed")

	_, err = s.Save("../escape.txt", strings.NewReader("x"), "text/plain")
	assert.ErrorIs(t, err, ErrInvalidPath)

	require.NoError(t, s.Delete("posts/hello.txt"))
	_, err = s.Load("posts/hello.txt", &buf)
	assert.Error(t, err)
}
