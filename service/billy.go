package service

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/google/uuid"
	"go.uber.org/zap"

	scriptfs "github.com/wippyai/scriptfs"
	sferrors "github.com/wippyai/scriptfs/errors"
)

// Service executes filesystem operations asynchronously over a billy
// filesystem. Each submission runs on its own goroutine and delivers its
// result through the completion it was handed.
//
// billy implementations are not guaranteed safe for concurrent use (memfs
// keeps its files in a plain map), so all backend access is serialized by
// a dedicated mutex. Scheduling stays concurrent; the filesystem calls
// themselves do not overlap.
type Service struct {
	fs      billy.Filesystem
	log     *zap.Logger
	sem     chan struct{}
	backend sync.Mutex

	mu       sync.Mutex
	closed   bool
	inflight sync.WaitGroup
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithWorkers bounds how many operations may execute concurrently.
// Unbounded when not set.
func WithWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.sem = make(chan struct{}, n)
		}
	}
}

// New creates a Service over an existing billy filesystem.
func New(fs billy.Filesystem, opts ...Option) *Service {
	s := &Service{
		fs:  fs,
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewLocal creates a Service rooted at a directory on the host filesystem.
func NewLocal(root string, opts ...Option) *Service {
	return New(osfs.New(root), opts...)
}

// NewMemory creates a Service over an in-memory filesystem.
func NewMemory(opts ...Option) *Service {
	return New(memfs.New(), opts...)
}

// Wait blocks until every in-flight operation has delivered its
// completion, including operations those completions submit in turn.
func (s *Service) Wait() {
	s.inflight.Wait()
}

// Close marks the service closed and waits for in-flight operations to
// deliver their completions. Submissions after Close complete with an
// error. Safe to call more than once.
func (s *Service) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.inflight.Wait()
	s.log.Debug("service closed")
}

// submit runs work on its own goroutine, or reports the closed error
// through fail (still asynchronously) when the service is shut down.
func (s *Service) submit(op, path string, work func(id string), fail func(error)) {
	id := uuid.NewString()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		go fail(sferrors.Closed(sferrors.PhaseService, "service"))
		return
	}
	s.inflight.Add(1)
	s.mu.Unlock()

	s.log.Debug("operation submitted",
		zap.String("op", op),
		zap.String("op_id", id),
		zap.String("path", path))

	go func() {
		defer s.inflight.Done()
		if s.sem != nil {
			s.sem <- struct{}{}
			defer func() { <-s.sem }()
		}
		work(id)
	}()
}

// Read reads the whole file at path.
func (s *Service) Read(path string, complete func(content []byte, err error)) {
	s.submit("read", path, func(id string) {
		s.backend.Lock()
		content, err := util.ReadFile(s.fs, path)
		s.backend.Unlock()
		if err != nil {
			s.log.Debug("read failed", zap.String("op_id", id), zap.Error(err))
			complete(nil, sferrors.IO("read", path, err))
			return
		}
		complete(content, nil)
	}, func(err error) {
		complete(nil, err)
	})
}

// Write replaces the file at path with data, creating parent directories
// as needed.
func (s *Service) Write(path string, data []byte, complete func(err error)) {
	s.submit("write", path, func(id string) {
		if err := s.writeFile(path, data); err != nil {
			s.log.Debug("write failed", zap.String("op_id", id), zap.Error(err))
			complete(sferrors.IO("write", path, err))
			return
		}
		complete(nil)
	}, complete)
}

func (s *Service) writeFile(path string, data []byte) error {
	s.backend.Lock()
	defer s.backend.Unlock()
	if dir := filepath.Dir(path); dir != "." && dir != "/" {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return util.WriteFile(s.fs, path, data, 0o644)
}

// Move renames from to to.
func (s *Service) Move(from, to string, complete func(err error)) {
	s.submit("move", from, func(id string) {
		s.backend.Lock()
		err := s.fs.Rename(from, to)
		s.backend.Unlock()
		if err != nil {
			s.log.Debug("move failed", zap.String("op_id", id), zap.Error(err))
			complete(sferrors.IO("move", from, err))
			return
		}
		complete(nil)
	}, complete)
}

// Remove deletes the file at path.
func (s *Service) Remove(path string, complete func(err error)) {
	s.submit("remove", path, func(id string) {
		s.backend.Lock()
		err := s.fs.Remove(path)
		s.backend.Unlock()
		if err != nil {
			s.log.Debug("remove failed", zap.String("op_id", id), zap.Error(err))
			complete(sferrors.IO("remove", path, err))
			return
		}
		complete(nil)
	}, complete)
}

// Stat reports whether path exists and its modification time. A missing
// path is not an error: it completes with Exists false.
func (s *Service) Stat(path string, complete func(result scriptfs.StatResult, err error)) {
	s.submit("stat", path, func(id string) {
		s.backend.Lock()
		info, err := s.fs.Stat(path)
		s.backend.Unlock()
		if err != nil {
			if os.IsNotExist(err) {
				complete(scriptfs.StatResult{Exists: false}, nil)
				return
			}
			s.log.Debug("stat failed", zap.String("op_id", id), zap.Error(err))
			complete(scriptfs.StatResult{}, sferrors.IO("stat", path, err))
			return
		}
		complete(scriptfs.StatResult{Exists: true, LastModified: info.ModTime()}, nil)
	}, func(err error) {
		complete(scriptfs.StatResult{}, err)
	})
}
