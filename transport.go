package adclient

import (
	"fmt"
	"path/filepath"

	"9fans.net/go/plan9/client"
)

// Fsys is the slice of a mounted 9p filesystem this client needs. The
// production implementation is backed by 9fans.net/go/plan9/client; tests
// substitute their own.
type Fsys interface {
	Open(name string, mode uint8) (Fid, error)
}

// Fid is an open file on the editor's filesystem.
type Fid interface {
	Close() error
	Read(b []byte) (n int, err error)
	Write(b []byte) (n int, err error)
}

// fsys9p adapts *client.Fsys to the Fsys interface.
type fsys9p struct {
	fsys *client.Fsys
}

func (f fsys9p) Open(name string, mode uint8) (Fid, error) {
	fid, err := f.fsys.Open(name, mode)
	if err != nil {
		return nil, err
	}
	return fid, nil
}

// mount attaches to the editor's 9p service. An explicit namespace overrides
// the one implied by the environment.
func mount(service, namespace string) (Fsys, error) {
	if service == "" {
		service = DefaultService
	}

	var (
		fsys *client.Fsys
		err  error
	)
	if namespace != "" {
		fsys, err = client.Mount("unix", filepath.Join(namespace, service))
	} else {
		fsys, err = client.MountService(service)
	}
	if err != nil {
		return nil, fmt.Errorf("mounting %s filesystem: %w", service, err)
	}

	return fsys9p{fsys: fsys}, nil
}
