// Package filestore persists serialized Bloom filters in a local directory,
// one file per named filter.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/pierrec/lz4/v4"

	"github.com/forestrie/go-bloombox/bloom"
)

const (
	// ExtRaw holds the plain bloom V1 encoding.
	ExtRaw = ".bloom"
	// ExtLZ4 holds the same encoding inside an lz4 frame.
	ExtLZ4 = ".bloom.lz4"

	dirPerm = 0o755
)

var validName = regexp.MustCompile(`^[A-Za-z0-9_-][A-Za-z0-9._-]*$`)

// Store maps filter names to files under a single directory. Saves replace
// the previous file atomically via rename, so readers never observe a
// partially written filter.
type Store struct {
	log  logger.Logger
	dir  string
	opts Options
}

// New returns a store rooted at dir, creating the directory if needed.
func New(log logger.Logger, dir string, opts ...Option) (*Store, error) {
	if dir == "" {
		return nil, errors.New("filestore: empty directory")
	}
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return nil, fmt.Errorf("filestore: create %s: %w", dir, err)
	}
	s := &Store{log: log, dir: dir}
	for _, opt := range opts {
		opt(&s.opts)
	}
	return s, nil
}

func (s *Store) Dir() string { return s.dir }

// Path returns the file that holds name: the existing file if there is one,
// otherwise the file Save would create.
func (s *Store) Path(name string) (string, error) {
	if err := checkName(name); err != nil {
		return "", err
	}
	if p, _, ok := s.existing(name); ok {
		return p, nil
	}
	return s.pathFor(name, s.opts.Compress), nil
}

// Save writes f under name, replacing any previous filter of that name.
func (s *Store) Save(ctx context.Context, name string, f *bloom.Filter) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkName(name); err != nil {
		return err
	}

	target := s.pathFor(name, s.opts.Compress)
	tmp, err := os.CreateTemp(s.dir, "."+name+".*.tmp")
	if err != nil {
		return fmt.Errorf("filestore: save %s: %w", name, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op once renamed

	if err := s.encode(tmp, f); err != nil {
		tmp.Close()
		return fmt.Errorf("filestore: save %s: %w", name, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("filestore: save %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("filestore: save %s: %w", name, err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		return fmt.Errorf("filestore: save %s: %w", name, err)
	}

	// One name maps to one file.
	sibling := s.pathFor(name, !s.opts.Compress)
	if err := os.Remove(sibling); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("filestore: remove stale %s: %w", sibling, err)
	}

	s.log.Infof("saved filter %s: bits=%d k=%d inserted=%d path=%s",
		name, f.BitLength(), f.HashCount(), f.InsertedCount(), target)
	return nil
}

// Load reads the filter stored under name. Malformed files fail with an
// error matching bloom.ErrCorruptData.
func (s *Store) Load(ctx context.Context, name string) (*bloom.Filter, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := checkName(name); err != nil {
		return nil, err
	}
	path, compressed, ok := s.existing(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	f, err := s.decode(path, compressed)
	if err != nil {
		return nil, err
	}
	s.log.Debugf("loaded filter %s: bits=%d k=%d inserted=%d", name, f.BitLength(), f.HashCount(), f.InsertedCount())
	return f, nil
}

// Exists reports whether a filter is stored under name.
func (s *Store) Exists(ctx context.Context, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if err := checkName(name); err != nil {
		return false, err
	}
	_, _, ok := s.existing(name)
	return ok, nil
}

// Delete removes the filter stored under name.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkName(name); err != nil {
		return err
	}
	removed := false
	for _, compressed := range []bool{false, true} {
		err := os.Remove(s.pathFor(name, compressed))
		if err == nil {
			removed = true
			continue
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("filestore: delete %s: %w", name, err)
		}
	}
	if !removed {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	s.log.Infof("deleted filter %s", name)
	return nil
}

// List returns the stored filter names in sorted order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("filestore: list %s: %w", s.dir, err)
	}
	var names []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		name, ok := nameFromFile(e.Name())
		if !ok {
			continue
		}
		names = append(names, name)
	}
	slices.Sort(names)
	return slices.Compact(names), nil
}

func (s *Store) encode(w io.Writer, f *bloom.Filter) error {
	if !s.opts.Compress {
		_, err := f.WriteTo(w)
		return err
	}
	zw := lz4.NewWriter(w)
	if _, err := f.WriteTo(zw); err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}

func (s *Store) decode(path string, compressed bool) (*bloom.Filter, error) {
	if !compressed {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("filestore: read %s: %w", path, err)
		}
		f, err := bloom.Decode(data, s.opts.FilterOptions...)
		if err != nil {
			return nil, fmt.Errorf("filestore: %s: %w", path, err)
		}
		return f, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("filestore: read %s: %w", path, err)
	}
	defer file.Close()

	zr := lz4.NewReader(file)
	f, err := bloom.ReadFilter(zr, s.opts.FilterOptions...)
	if err != nil {
		return nil, corruptFrame(path, err)
	}
	// The frame must end with the filter. lz4.Reader.WriteTo cannot resume a
	// partly read frame, so check with Read rather than io.Copy.
	var one [1]byte
	n, err := io.ReadFull(zr, one[:])
	switch {
	case n != 0:
		return nil, fmt.Errorf("filestore: %s: %w: trailing bytes", path, bloom.ErrLengthMismatch)
	case errors.Is(err, io.EOF):
		return f, nil
	default:
		return nil, corruptFrame(path, err)
	}
}

// existing reports which of the two possible files for name is present. The
// file matching the configured compression wins if both are.
func (s *Store) existing(name string) (string, bool, bool) {
	for _, compressed := range []bool{s.opts.Compress, !s.opts.Compress} {
		p := s.pathFor(name, compressed)
		if info, err := os.Stat(p); err == nil && info.Mode().IsRegular() {
			return p, compressed, true
		}
	}
	return "", false, false
}

func (s *Store) pathFor(name string, compressed bool) string {
	if compressed {
		return filepath.Join(s.dir, name+ExtLZ4)
	}
	return filepath.Join(s.dir, name+ExtRaw)
}

func checkName(name string) error {
	if !validName.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrBadName, name)
	}
	return nil
}

func nameFromFile(file string) (string, bool) {
	var name string
	switch {
	case strings.HasSuffix(file, ExtLZ4):
		name = strings.TrimSuffix(file, ExtLZ4)
	case strings.HasSuffix(file, ExtRaw):
		name = strings.TrimSuffix(file, ExtRaw)
	default:
		return "", false
	}
	return name, validName.MatchString(name)
}

// corruptFrame attributes lz4 frame errors to the data rather than the disk.
func corruptFrame(path string, err error) error {
	if errors.Is(err, bloom.ErrCorruptData) {
		return fmt.Errorf("filestore: %s: %w", path, err)
	}
	return fmt.Errorf("filestore: %s: %w: %v", path, bloom.ErrCorruptData, err)
}
