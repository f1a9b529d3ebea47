package source

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T) []byte {
	img := image.NewGray(image.Rect(0, 0, 3, 2))
	img.SetGray(2, 1, color.Gray{Y: 0xFF})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestLoadFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "img/sign.png", pngBytes(t), 0644))

	img, err := New(fs).Load("img/sign.png")
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 3, 2), img.Bounds())
	r, _, _, _ := img.At(2, 1).RGBA()
	assert.Equal(t, uint32(0xFFFF), r)
}

func TestLoadMissing(t *testing.T) {
	_, err := New(afero.NewMemMapFs()).Load("nope.png")
	assert.Error(t, err)
}

func TestLoadNotImage(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "a.png", []byte("hello"), 0644))
	_, err := New(fs).Load("a.png")
	assert.Error(t, err)
}

func TestLoadURL(t *testing.T) {
	body := pngBytes(t)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/sign.png" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(body)
	}))
	defer ts.Close()

	var progress bytes.Buffer
	l := New(afero.NewMemMapFs()).WithProgress(&progress)

	img, err := l.Load(ts.URL + "/sign.png")
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 3, 2), img.Bounds())

	_, err = l.Load(ts.URL + "/missing.png")
	assert.Error(t, err)
}
