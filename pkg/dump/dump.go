// Package dump records wire frames to a filesystem instead of a serial line.
package dump

import (
	"fmt"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/rs/xid"
	"github.com/samber/lo"
	"github.com/spf13/afero"
)

const ext = ".frame"

func New(fs afero.Fs, dir string) (*Dump, error) {
	if exists, err := afero.DirExists(fs, dir); err != nil {
		return nil, err
	} else if !exists {
		if err2 := fs.MkdirAll(dir, 0755); err2 != nil {
			return nil, fmt.Errorf("create dump dir failed: %w", err2)
		}
	}

	return &Dump{fs: fs, dir: dir}, nil
}

// Dump is an io.Writer that stores every Write as its own file.
type Dump struct {
	fs  afero.Fs
	dir string
}

func (d *Dump) Write(p []byte) (int, error) {
	file := path.Join(d.dir, xid.New().String()+ext)
	if err := afero.WriteFile(d.fs, file, p, 0644); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Frames returns the stored frame files, oldest first.
func (d *Dump) Frames() ([]string, error) {
	infos, err := afero.ReadDir(d.fs, d.dir)
	if err != nil {
		return nil, err
	}

	frames := lo.Filter(infos, func(fi os.FileInfo, _ int) bool {
		return !fi.IsDir() && strings.HasSuffix(fi.Name(), ext)
	})
	names := lo.Map(frames, func(fi os.FileInfo, _ int) string {
		return path.Join(d.dir, fi.Name())
	})
	// xids sort by creation time
	sort.Strings(names)
	return names, nil
}

// Read returns the contents of a frame file listed by Frames.
func (d *Dump) Read(name string) ([]byte, error) {
	return afero.ReadFile(d.fs, name)
}
