package assets

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"path"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/automoto/tilehop/shared/leveldata"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	// Texture decoders.
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Status is the loader's progress as seen by a poll.
type Status int

const (
	StatusIdle Status = iota
	StatusPending
	StatusLoaded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusPending:
		return "pending"
	case StatusLoaded:
		return "loaded"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

// maxParallelReads caps concurrent file reads during Preload.
const maxParallelReads = 8

var textureExts = map[string]bool{".png": true, ".bmp": true, ".webp": true}

// Store reads game assets from an fs.FS. Preload pulls a set of folders into memory in
// the background; afterwards ReadFile and Image are served from the cache. Store is
// itself an fs.FS so level loading can read through it.
type Store struct {
	fsys fs.FS
	log  *zap.Logger

	mu     sync.RWMutex
	files  map[string][]byte
	images map[string]image.Image
	status Status
	err    error
	done   chan struct{}

	total  atomic.Int64
	loaded atomic.Int64
}

func NewStore(fsys fs.FS, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		fsys:   fsys,
		log:    log.Named("assets"),
		files:  make(map[string][]byte),
		images: make(map[string]image.Image),
	}
}

// Preload starts loading every file under folders plus the listed files and returns
// immediately. Only the first call has any effect.
func (s *Store) Preload(folders []string, files ...string) {
	s.mu.Lock()
	if s.status != StatusIdle {
		s.mu.Unlock()
		return
	}
	s.status = StatusPending
	s.done = make(chan struct{})
	s.mu.Unlock()

	go s.load(folders, files)
}

func (s *Store) load(folders, files []string) {
	defer close(s.done)

	paths, err := s.collect(folders, files)
	if err == nil {
		s.total.Store(int64(len(paths)))
		err = s.readAll(paths)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.status = StatusFailed
		s.err = err
		s.log.Error("asset preload failed", zap.Error(err))
		return
	}
	s.status = StatusLoaded
	s.log.Info("assets loaded", zap.Int("files", len(s.files)), zap.Int("textures", len(s.images)))
}

func (s *Store) collect(folders, files []string) ([]string, error) {
	var paths []string
	for _, dir := range folders {
		err := fs.WalkDir(s.fsys, dir, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				paths = append(paths, p)
			}
			return nil
		})
		if err != nil {
			return nil, leveldata.AssetLoadError(dir, err)
		}
	}
	return append(paths, files...), nil
}

func (s *Store) readAll(paths []string) error {
	var g errgroup.Group
	g.SetLimit(maxParallelReads)

	for _, p := range paths {
		g.Go(func() error {
			data, err := fs.ReadFile(s.fsys, p)
			if err != nil {
				return leveldata.AssetLoadError(p, err)
			}

			var img image.Image
			if textureExts[strings.ToLower(path.Ext(p))] {
				img, _, err = image.Decode(bytes.NewReader(data))
				if err != nil {
					return leveldata.AssetLoadError(p, fmt.Errorf("decode texture: %w", err))
				}
			}

			s.mu.Lock()
			s.files[p] = data
			if img != nil {
				s.images[p] = img
			}
			s.mu.Unlock()

			s.loaded.Add(1)
			return nil
		})
	}

	return g.Wait()
}

// Status reports progress without blocking. The error is set once Status is failed.
func (s *Store) Status() (Status, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status, s.err
}

// Progress returns how many of the preloaded files are in memory so far.
func (s *Store) Progress() (loaded, total int) {
	return int(s.loaded.Load()), int(s.total.Load())
}

// Wait blocks until Preload has finished and returns its error.
func (s *Store) Wait() error {
	s.mu.RLock()
	done := s.done
	s.mu.RUnlock()
	if done == nil {
		return errors.New("assets: preload not started")
	}
	<-done
	_, err := s.Status()
	return err
}

func (s *Store) Open(name string) (fs.File, error) {
	return s.fsys.Open(name)
}

// ReadFile returns cached bytes when name was preloaded and reads through otherwise.
func (s *Store) ReadFile(name string) ([]byte, error) {
	s.mu.RLock()
	data, ok := s.files[name]
	s.mu.RUnlock()
	if ok {
		return bytes.Clone(data), nil
	}
	return fs.ReadFile(s.fsys, name)
}

// Image returns the decoded texture at name, decoding and caching it on first use if
// Preload did not cover it.
func (s *Store) Image(name string) (image.Image, error) {
	s.mu.RLock()
	img, ok := s.images[name]
	s.mu.RUnlock()
	if ok {
		return img, nil
	}

	data, err := s.ReadFile(name)
	if err != nil {
		return nil, leveldata.AssetLoadError(name, err)
	}
	img, _, err = image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, leveldata.AssetLoadError(name, fmt.Errorf("decode texture: %w", err))
	}

	s.mu.Lock()
	s.images[name] = img
	s.mu.Unlock()
	return img, nil
}
