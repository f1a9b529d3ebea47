// Package source loads the images drawn on the panel from disk or the web.
package source

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/afero"
)

func New(fs afero.Fs) *Loader {
	return &Loader{
		fs:  fs,
		cli: resty.New().SetDoNotParseResponse(true),
		out: io.Discard,
	}
}

type Loader struct {
	fs  afero.Fs
	cli *resty.Client
	out io.Writer
}

// WithProgress shows a download bar on w for remote images.
func (l *Loader) WithProgress(w io.Writer) *Loader {
	l.out = w
	return l
}

// Load decodes the image at ref, which is either an http(s) URL or a path on
// the loader's filesystem.
func (l *Loader) Load(ref string) (image.Image, error) {
	var bs []byte
	var err error

	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		bs, err = l.fetch(ref)
	} else {
		bs, err = afero.ReadFile(l.fs, ref)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s failed: %w", ref, err)
	}

	img, _, err := image.Decode(bytes.NewReader(bs))
	if err != nil {
		return nil, fmt.Errorf("image decode failed: %w", err)
	}
	return img, nil
}

func (l *Loader) fetch(url string) ([]byte, error) {
	resp, err := l.cli.R().Get(url)
	if err != nil {
		return nil, err
	}

	defer func() {
		_ = resp.RawBody().Close()
	}()

	if resp.IsError() {
		return nil, fmt.Errorf("unexpected status %s", resp.Status())
	}

	bar := progressbar.NewOptions64(
		resp.RawResponse.ContentLength,
		progressbar.OptionSetWriter(l.out),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetDescription(fmt.Sprintf("Downloading %s", url)),
	)

	var buf bytes.Buffer
	if _, err := io.Copy(io.MultiWriter(&buf, bar), resp.RawBody()); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
