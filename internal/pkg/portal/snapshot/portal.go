package snapshot

import (
	"context"
	"sync"

	"github.com/plc-tools/tia-export/internal/pkg/filesystem"
	"github.com/plc-tools/tia-export/internal/pkg/model"
	"github.com/plc-tools/tia-export/internal/pkg/portal"
)

// Portal loads the snapshot on the first use.
// A missing or invalid snapshot is reported as a failed attach.
type Portal struct {
	fs   filesystem.Fs
	path string

	lock     sync.Mutex
	snapshot *Snapshot
}

type process struct {
	snapshot *Snapshot
}

type instance struct {
	snapshot *Snapshot
}

type plcSoftware struct {
	*Software
}

type hmiSoftware struct {
	*Software
}

func NewPortal(fs filesystem.Fs, path string) *Portal {
	return &Portal{fs: fs, path: path}
}

// Processes returns one process which holds the snapshot project.
func (p *Portal) Processes(ctx context.Context) ([]portal.Process, error) {
	s, err := p.load(ctx)
	if err != nil {
		return nil, err
	}
	return s.Processes(ctx)
}

func (p *Portal) load(ctx context.Context) (*Snapshot, error) {
	p.lock.Lock()
	defer p.lock.Unlock()
	if p.snapshot == nil {
		s, err := Load(ctx, p.fs, p.path)
		if err != nil {
			return nil, err
		}
		p.snapshot = s
	}
	return p.snapshot, nil
}

func (s *Snapshot) Processes(_ context.Context) ([]portal.Process, error) {
	return []portal.Process{&process{snapshot: s}}, nil
}

func (p *process) ID() int {
	return p.snapshot.ProcessID
}

func (p *process) ProjectPath() string {
	return p.snapshot.ProjectPath
}

func (p *process) Attach(ctx context.Context) (portal.Instance, error) {
	if err := ctx.Err(); err != nil {
		return nil, &portal.AttachError{ProcessID: p.ID(), Err: err}
	}
	return &instance{snapshot: p.snapshot}, nil
}

func (i *instance) Projects() ([]portal.Project, error) {
	out := make([]portal.Project, len(i.snapshot.ProjectList))
	for idx, project := range i.snapshot.ProjectList {
		out[idx] = project
	}
	return out, nil
}

func (p *Project) Name() string {
	return p.ProjectName
}

func (p *Project) Devices() ([]portal.Device, error) {
	out := make([]portal.Device, len(p.DeviceList))
	for i, device := range p.DeviceList {
		out[i] = device
	}
	return out, nil
}

func (d *Device) Name() string {
	return d.DeviceName
}

func (d *Device) TypeIdentifier() string {
	return d.TypeID
}

func (d *Device) Items() ([]portal.DeviceItem, error) {
	out := make([]portal.DeviceItem, len(d.ItemList))
	for i, item := range d.ItemList {
		out[i] = item
	}
	return out, nil
}

func (i *DeviceItem) Name() string {
	return i.ItemName
}

func (i *DeviceItem) TypeIdentifier() string {
	return i.TypeID
}

func (i *DeviceItem) Software() (portal.Software, error) {
	switch {
	case i.SoftwareDef == nil:
		return nil, nil
	case i.SoftwareDef.Kind == HMISoftwareKind:
		return hmiSoftware{Software: i.SoftwareDef}, nil
	default:
		return plcSoftware{Software: i.SoftwareDef}, nil
	}
}

func (s *Software) Name() string {
	return s.SoftwareName
}

func (s plcSoftware) BlockGroup() model.Group {
	return group(s.Blocks)
}

func (s plcSoftware) TypeGroup() model.Group {
	return group(s.Types)
}

func (s plcSoftware) TagTableGroup() model.Group {
	return group(s.TagTables)
}

func (s hmiSoftware) TagFolder() model.Group {
	return group(s.Tags)
}

func (s hmiSoftware) TextLists() model.Group {
	return group(s.Software.TextLists)
}

// group converts a missing group to the nil interface.
func group(g *Group) model.Group {
	if g == nil {
		return nil
	}
	return g
}
