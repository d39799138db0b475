package filestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/2beens/fitlog/internal/telemetry/tracing"
	"github.com/2beens/fitlog/pkg"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrFileNotFound    = errors.New("file not found")
	ErrInvalidFileName = errors.New("invalid file name")
	ErrFileExists      = errors.New("file already exists")
)

// DiskStore keeps files flat in a single root directory.
type DiskStore struct {
	rootPath string
	mutex    sync.RWMutex
}

func NewDiskStore(rootPath string) (*DiskStore, error) {
	if rootPath == "" {
		return nil, errors.New("root path cannot be empty")
	}
	if err := os.MkdirAll(rootPath, 0755); err != nil {
		return nil, fmt.Errorf("create root folder: %w", err)
	}
	if exists, err := pkg.PathExists(rootPath, true); err != nil {
		return nil, fmt.Errorf("check root folder: %w", err)
	} else if !exists {
		return nil, fmt.Errorf("root folder %s missing", rootPath)
	}
	return &DiskStore{
		rootPath: rootPath,
	}, nil
}

func validName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.Contains(name, "..") &&
		!strings.ContainsAny(name, `/\`)
}

func (ds *DiskStore) filePath(name string) (string, error) {
	if !validName(name) {
		return "", ErrInvalidFileName
	}
	return filepath.Join(ds.rootPath, name), nil
}

// Save writes the reader contents under name and returns the number of bytes written.
func (ds *DiskStore) Save(ctx context.Context, name string, r io.Reader) (_ int64, err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "filestore.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("file.name", name))

	path, err := ds.filePath(name)
	if err != nil {
		return 0, err
	}

	ds.mutex.Lock()
	defer ds.mutex.Unlock()

	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return 0, ErrFileExists
		}
		return 0, err
	}

	written, err := io.Copy(dst, r)
	if closeErr := dst.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		if removeErr := os.Remove(path); removeErr != nil {
			log.Errorf("filestore: remove partial file %s: %s", path, removeErr)
		}
		return 0, err
	}

	span.SetAttributes(attribute.Int64("file.size", written))
	log.Debugf("filestore: saved %s, %d bytes", name, written)

	return written, nil
}

// Open returns the file for reading; the caller closes it.
func (ds *DiskStore) Open(ctx context.Context, name string) (_ *os.File, err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "filestore.open")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("file.name", name))

	path, err := ds.filePath(name)
	if err != nil {
		return nil, err
	}

	ds.mutex.RLock()
	defer ds.mutex.RUnlock()

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrFileNotFound
		}
		return nil, err
	}
	return f, nil
}

func (ds *DiskStore) Delete(ctx context.Context, name string) (err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "filestore.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	path, err := ds.filePath(name)
	if err != nil {
		return err
	}

	ds.mutex.Lock()
	defer ds.mutex.Unlock()

	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrFileNotFound
		}
		return err
	}

	log.Debugf("filestore: file [%s] deleted", name)
	return nil
}
