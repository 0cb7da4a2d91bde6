// SPDX-License-Identifier: MIT

// File: source.go
// Role: opening a MovieLens collection from a directory or zip archive
// and sniffing which of the three on-disk dialects it uses.

package movielens

import (
	"archive/zip"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/recdata/logging"
)

// Format identifies one of the MovieLens on-disk dialects.
type Format int

const (
	FormatUnknown Format = iota
	// Format100K is the ml-100k layout: u.data and u.item.
	Format100K
	// FormatDat is the ml-1m / ml-10m layout: ratings.dat and movies.dat.
	FormatDat
	// FormatCSV is the modern layout: ratings.csv and movies.csv.
	FormatCSV
)

// String implements fmt.Stringer.
func (f Format) String() string {
	switch f {
	case Format100K:
		return "ml-100k"
	case FormatDat:
		return "ml-dat"
	case FormatCSV:
		return "ml-csv"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// markers maps each dialect to the file that identifies it.
var markers = []struct {
	file   string
	format Format
}{
	{"u.data", Format100K},
	{"ratings.dat", FormatDat},
	{"ratings.csv", FormatCSV},
}

// Source is an opened MovieLens collection.  It is not safe for
// concurrent use.
type Source struct {
	fsys   fs.FS
	format Format
	closer *zip.ReadCloser // non-nil only for zip-backed sources
	log    zerolog.Logger
}

// Open opens the collection at path, which may be an unpacked directory
// or the distribution zip archive, and sniffs its dialect.  Archives (and
// some unpacked trees) nest everything under a single top-level folder;
// Open descends into it automatically.
//
// The caller must Close the source when done.
//
// Errors:
//   - ErrInvalidArchive: path names a zip that cannot be read.
//   - ErrUnknownFormat: no recognized layout was found.
func Open(path string) (*Source, error) {
	src := &Source{log: logging.WithComponent("movielens")}

	info, err := os.Stat(path)
	switch {
	case err != nil:
		return nil, fmt.Errorf("movielens: open %s: %w", path, err)
	case info.IsDir():
		src.fsys = os.DirFS(path)
	case strings.EqualFold(filepath.Ext(path), ".zip"):
		rc, zerr := zip.OpenReader(path)
		if zerr != nil {
			return nil, fmt.Errorf("movielens: open %s: %v: %w", path, zerr, ErrInvalidArchive)
		}
		src.fsys = rc
		src.closer = rc
	default:
		return nil, fmt.Errorf("movielens: open %s: not a directory or zip: %w", path, ErrUnknownFormat)
	}

	if err = src.sniff(); err != nil {
		_ = src.Close()
		return nil, fmt.Errorf("movielens: open %s: %w", path, err)
	}
	src.log.Debug().Str("path", path).Stringer("format", src.format).Msg("collection opened")
	return src, nil
}

// sniff probes for marker files at the root, then one directory down.
func (s *Source) sniff() error {
	if f, ok := detect(s.fsys); ok {
		s.format = f
		return nil
	}
	entries, err := fs.ReadDir(s.fsys, ".")
	if err != nil {
		return err
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		sub, serr := fs.Sub(s.fsys, e.Name())
		if serr != nil {
			continue
		}
		if f, ok := detect(sub); ok {
			s.fsys = sub
			s.format = f
			return nil
		}
	}
	return ErrUnknownFormat
}

func detect(fsys fs.FS) (Format, bool) {
	for _, m := range markers {
		if _, err := fs.Stat(fsys, m.file); err == nil {
			return m.format, true
		}
	}
	return FormatUnknown, false
}

// Format reports the detected dialect.
func (s *Source) Format() Format { return s.format }

// Close releases the underlying archive, if any.
func (s *Source) Close() error {
	if s.closer != nil {
		err := s.closer.Close()
		s.closer = nil
		return err
	}
	return nil
}
