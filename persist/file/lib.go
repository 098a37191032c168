package file

import (
	"context"
	"path/filepath"

	"github.com/spf13/afero"
)

// Persist implements the persist.Persist interface for storing and loading
// blobs as files.
type Persist struct {
	fs       afero.Fs
	basepath string
}

// Load loads the bytes persisted in the named file.
func (p Persist) Load(ctx context.Context, name string) ([]byte, error) {
	return afero.ReadFile(p.fs, filepath.Join(p.basepath, name))
}

// Store persists the given bytes in a file of the given name, if it
// doesn't exist already.
func (p Persist) Store(ctx context.Context, name string, bytes []byte) error {
	path := filepath.Join(p.basepath, name)
	exists, err := afero.Exists(p.fs, path)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	if err := p.fs.MkdirAll(p.basepath, 0o755); err != nil {
		return err
	}
	return afero.WriteFile(p.fs, path, bytes, 0o644)
}

// NewPersistForPath returns a Persist that loads and stores blobs as
// files in the directory at the given path on the OS filesystem.
//
//	p := NewPersistForPath("/var/lib/densebench")
//	blob, err := p.Load(ctx, "nEg7...Y4.json")
func NewPersistForPath(path string) Persist {
	return NewPersistForFs(afero.NewOsFs(), path)
}

// NewPersistForFs is like NewPersistForPath, on the given filesystem.
func NewPersistForFs(fs afero.Fs, path string) Persist {
	return Persist{fs, path}
}
