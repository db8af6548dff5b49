package export

import (
	"context"
	"sync"

	"github.com/plc-tools/tia-export/internal/pkg/filesystem"
	"github.com/plc-tools/tia-export/internal/pkg/log"
)

// Provisioner creates directories of the exported files.
// Each directory is created at most once, concurrent calls for the same path wait for each other.
type Provisioner struct {
	fs     filesystem.Fs
	logger log.Logger
	lock   *sync.Mutex
	dirs   map[string]*dirState
}

type dirState struct {
	lock    sync.Mutex
	created bool
}

func NewProvisioner(fs filesystem.Fs, logger log.Logger) *Provisioner {
	return &Provisioner{fs: fs, logger: logger, lock: &sync.Mutex{}, dirs: make(map[string]*dirState)}
}

// Ensure creates the directory including all parents. It is idempotent.
func (p *Provisioner) Ensure(ctx context.Context, dir string) error {
	if dir == "" || dir == "." || dir == "/" {
		return nil
	}

	state := p.state(dir)
	state.lock.Lock()
	defer state.lock.Unlock()
	if state.created {
		return nil
	}

	if !p.fs.IsDir(dir) {
		if err := p.fs.Mkdir(dir); err != nil {
			return &IOError{Op: "create directory", Path: dir, Err: err}
		}
		p.logger.Debugf(ctx, `Created directory "%s".`, dir)
	}

	state.created = true
	return nil
}

func (p *Provisioner) state(dir string) *dirState {
	p.lock.Lock()
	defer p.lock.Unlock()
	state, found := p.dirs[dir]
	if !found {
		state = &dirState{}
		p.dirs[dir] = state
	}
	return state
}
