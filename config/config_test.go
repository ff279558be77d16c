package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadEnvBool(t *testing.T) {
	tests := []struct {
		name  string
		env   string
		start bool
		want  bool
	}{
		{name: "true", env: "true", start: false, want: true},
		{name: "yes", env: "YES", start: false, want: true},
		{name: "off", env: "off", start: true, want: false},
		{name: "zero", env: "0", start: true, want: false},
		{name: "garbage keeps default", env: "maybe", start: true, want: true},
		{name: "empty keeps default", env: "", start: false, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("BLOG_TEST_BOOL", tt.env)
			v := tt.start
			readEnvBool("BLOG_TEST_BOOL", &v)
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestReadEnvInt(t *testing.T) {
	v := 10
	t.Setenv("BLOG_TEST_INT", "25")
	readEnvInt("BLOG_TEST_INT", &v)
	assert.Equal(t, 25, v)

	t.Setenv("BLOG_TEST_INT", "abc")
	readEnvInt("BLOG_TEST_INT", &v)
	assert.Equal(t, 25, v, "invalid numbers are ignored")
}

func TestLoad(t *testing.T) {
	postsPerPage, mediaURL := POSTS_PER_PAGE, MEDIA_URL
	t.Cleanup(func() {
		POSTS_PER_PAGE, MEDIA_URL = postsPerPage, mediaURL
	})

	t.Setenv("POSTS_PER_PAGE", "-3")
	t.Setenv("MEDIA_URL", "/files")
	Load()
	assert.Equal(t, 10, POSTS_PER_PAGE)
	assert.Equal(t, "/files/", MEDIA_URL)
}
