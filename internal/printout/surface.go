package printout

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
)

var (
	ErrSurfaceUnavailable = errors.New("print surface unavailable")
	ErrSurfaceClosed      = errors.New("print surface already closed")
)

// Target is an acquired print surface.
type Target interface {
	io.Writer
	// Print hands what was written to the surface.
	Print() error
	Close() error
}

type Surface interface {
	Open(ctx context.Context) (Target, error)
}

// Print renders doc onto the surface. The target is always released; a
// surface that cannot be opened makes Print a no-op. It reports whether the
// document reached the surface.
func Print(ctx context.Context, logger *slog.Logger, surface Surface, doc Document) bool {
	target, err := surface.Open(ctx)
	if err != nil {
		logger.Warn("print surface unavailable", "err", err)
		return false
	}
	defer func() {
		if err := target.Close(); err != nil {
			logger.Warn("releasing print surface failed", "err", err)
		}
	}()

	if err := Render(target, doc); err != nil {
		logger.Warn("rendering print document failed", "err", err)
		return false
	}
	if err := target.Print(); err != nil {
		logger.Warn("printing failed", "err", err)
		return false
	}
	return true
}

// ResponseSurface sends the document to the browser window that requested it.
type ResponseSurface struct {
	W http.ResponseWriter
}

func (s ResponseSurface) Open(context.Context) (Target, error) {
	if s.W == nil {
		return nil, ErrSurfaceUnavailable
	}
	return &responseTarget{w: s.W}, nil
}

type responseTarget struct {
	w      http.ResponseWriter
	buf    bytes.Buffer
	closed bool
}

func (t *responseTarget) Write(p []byte) (int, error) {
	if t.closed {
		return 0, ErrSurfaceClosed
	}
	return t.buf.Write(p)
}

func (t *responseTarget) Print() error {
	if t.closed {
		return ErrSurfaceClosed
	}
	t.w.Header().Set("Content-Type", "text/html; charset=utf-8")
	t.w.Header().Set("Cache-Control", "no-store")
	t.w.WriteHeader(http.StatusOK)
	_, err := t.buf.WriteTo(t.w)
	return err
}

func (t *responseTarget) Close() error {
	t.closed = true
	t.buf.Reset()
	return nil
}

// DirSurface writes the document to an HTML file inside Dir. Path holds
// the file of the last successful Open. A file that was never printed is
// removed on Close and Path is cleared.
type DirSurface struct {
	Dir  string
	Name string
	Path string
}

func (s *DirSurface) Open(context.Context) (Target, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSurfaceUnavailable, err)
	}
	name := s.Name
	if name == "" {
		name = "facture"
	}
	f, err := os.CreateTemp(s.Dir, name+"-*.html")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSurfaceUnavailable, err)
	}
	s.Path = filepath.Clean(f.Name())
	return &fileTarget{f: f, surface: s}, nil
}

type fileTarget struct {
	f       *os.File
	surface *DirSurface
	printed bool
}

func (t *fileTarget) Write(p []byte) (int, error) { return t.f.Write(p) }

func (t *fileTarget) Print() error {
	if err := t.f.Sync(); err != nil {
		return err
	}
	t.printed = true
	return nil
}

func (t *fileTarget) Close() error {
	err := t.f.Close()
	if t.printed {
		return err
	}
	t.surface.Path = ""
	if rmErr := os.Remove(t.f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
		return errors.Join(err, rmErr)
	}
	return err
}
