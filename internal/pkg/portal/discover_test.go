package portal

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plc-tools/tia-export/internal/pkg/log"
	"github.com/plc-tools/tia-export/internal/pkg/model"
	"github.com/plc-tools/tia-export/internal/pkg/utils/errors"
)

type fakePortal struct {
	processes []Process
	err       error
}

type fakeProcess struct {
	id        int
	path      string
	projects  []Project
	attachErr error
}

type fakeProject struct {
	name    string
	devices []Device
}

type fakeDevice struct {
	name     string
	typeID   string
	items    []DeviceItem
	itemsErr error
}

type fakeItem struct {
	name     string
	typeID   string
	software Software
	err      error
}

type fakePLC struct {
	blocks, types, tags model.Group
}

type fakeHMI struct {
	tags, texts model.Group
}

func (p *fakePortal) Processes(context.Context) ([]Process, error) { return p.processes, p.err }

func (p *fakeProcess) ID() int             { return p.id }
func (p *fakeProcess) ProjectPath() string { return p.path }
func (p *fakeProcess) Attach(context.Context) (Instance, error) {
	if p.attachErr != nil {
		return nil, p.attachErr
	}
	return p, nil
}
func (p *fakeProcess) Projects() ([]Project, error) { return p.projects, nil }

func (p *fakeProject) Name() string               { return p.name }
func (p *fakeProject) Devices() ([]Device, error) { return p.devices, nil }

func (d *fakeDevice) Name() string                 { return d.name }
func (d *fakeDevice) TypeIdentifier() string       { return d.typeID }
func (d *fakeDevice) Items() ([]DeviceItem, error) { return d.items, d.itemsErr }

func (i *fakeItem) Name() string                { return i.name }
func (i *fakeItem) TypeIdentifier() string      { return i.typeID }
func (i *fakeItem) Software() (Software, error) { return i.software, i.err }

func (s *fakePLC) Name() string               { return "PLC software" }
func (s *fakePLC) BlockGroup() model.Group    { return s.blocks }
func (s *fakePLC) TypeGroup() model.Group     { return s.types }
func (s *fakePLC) TagTableGroup() model.Group { return s.tags }

func (s *fakeHMI) Name() string           { return "HMI software" }
func (s *fakeHMI) TagFolder() model.Group { return s.tags }
func (s *fakeHMI) TextLists() model.Group { return s.texts }

func TestDiscover(t *testing.T) {
	t.Parallel()

	plc := &fakePLC{blocks: model.NewGroup("Program blocks", nil), types: model.FlatGroup("PLC data types"), tags: model.NewGroup("PLC tags", nil)}
	hmi := &fakeHMI{tags: model.NewGroup("HMI tags", nil), texts: model.FlatGroup("Text lists")}

	p := &fakePortal{processes: []Process{&fakeProcess{id: 1234, path: `C:\Projects\Line1.ap17`, projects: []Project{
		&fakeProject{name: "Line1", devices: []Device{
			&fakeDevice{name: "S71500/ET200MP station_1", typeID: PLCStationType, items: []DeviceItem{
				&fakeItem{name: "Rail_0", typeID: "OrderNumber:6ES7 590"},
				&fakeItem{name: "PLC_1", typeID: "OrderNumber:6ES7 516", software: plc},
				&fakeItem{name: "PLC_2", typeID: "OrderNumber:6ES7 516"},
			}},
			&fakeDevice{name: "HMI_1", typeID: "System:Device.Panel", items: []DeviceItem{
				&fakeItem{name: "HMI_RT_1", software: hmi},
				&fakeItem{name: "Display"},
				&fakeItem{name: "PLC_in_HMI", software: plc},
			}},
			&fakeDevice{name: "Broken", typeID: "System:Device.Panel", itemsErr: errors.New("device is offline")},
		}},
	}}}}

	logger := log.NewDebugLogger()
	subjects, err := Discover(context.Background(), logger, p)
	require.NoError(t, err)

	require.Len(t, subjects, 5)
	assert.Equal(t, model.Subject{RootPrefix: "PLC_1", Scope: model.LogicScope, Root: plc.blocks, Kinds: model.NewKindSet(model.BlockKind)}, subjects[0])
	assert.Equal(t, model.Subject{RootPrefix: "PLC_1", Scope: model.LogicScope, Root: plc.types, Kinds: model.NewKindSet(model.TypeKind)}, subjects[1])
	assert.Equal(t, model.Subject{RootPrefix: "PLC_1", Scope: model.LogicScope, Root: plc.tags, Kinds: model.NewKindSet(model.TagTableKind)}, subjects[2])
	assert.Equal(t, model.Subject{Scope: model.VisualizationScope, Root: hmi.tags, Kinds: model.NewKindSet(model.TagTableKind)}, subjects[3])
	assert.Equal(t, model.Subject{Scope: model.VisualizationScope, Root: hmi.texts, Kinds: model.NewKindSet(model.TextListKind)}, subjects[4])

	logger.AssertJSONMessages(t, `
{"level":"info","message":"Found process 1234 with project \"C:\\Projects\\Line1.ap17\"."}
{"level":"info","message":"Handling project \"Line1\"."}
{"level":"info","message":"Handling device \"S71500/ET200MP station_1\" of type \"System:Device.S71500\"."}
{"level":"debug","message":"Ignored device item \"Rail_0\" of type \"OrderNumber:6ES7 590\"."}
{"level":"info","message":"Handling PLC device item \"PLC_1\" of type \"OrderNumber:6ES7 516\"."}
{"level":"warn","message":"device item \"PLC_2\" of device \"S71500/ET200MP station_1\" has no PLC software, skipped."}
{"level":"info","message":"Handling HMI device item \"HMI_RT_1\".","project":"Line1"}
{"level":"debug","message":"device item \"Display\" of device \"HMI_1\" has no HMI software, skipped."}
{"level":"debug","message":"Software \"PLC software\" of device item \"PLC_in_HMI\" is not HMI software, skipped."}
{"level":"warn","message":"Cannot list items of device \"Broken\": device is offline"}
`)
}

func TestDiscover_AttachErrors(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	logger := log.NewNopLogger()

	_, err := Discover(ctx, logger, &fakePortal{err: errors.New("tool is not installed")})
	var attachErr *AttachError
	require.ErrorAs(t, err, &attachErr)
	assert.Equal(t, "cannot attach to the engineering tool: tool is not installed", err.Error())

	_, err = Discover(ctx, logger, &fakePortal{})
	require.ErrorAs(t, err, &attachErr)
	assert.Equal(t, "cannot attach to the engineering tool: no running process found", err.Error())

	_, err = Discover(ctx, logger, &fakePortal{processes: []Process{&fakeProcess{id: 7, attachErr: errors.New("access denied")}}})
	require.ErrorAs(t, err, &attachErr)
	assert.Equal(t, 7, attachErr.ProcessID)
	assert.Equal(t, "cannot attach to the engineering tool process 7: access denied", err.Error())
}

func TestDiscover_NoProjects(t *testing.T) {
	t.Parallel()
	logger := log.NewDebugLogger()
	subjects, err := Discover(context.Background(), logger, &fakePortal{processes: []Process{&fakeProcess{id: 1}}})
	require.NoError(t, err)
	assert.Empty(t, subjects)
	logger.AssertJSONMessages(t, `{"level":"warn","message":"No projects found in process 1."}`)
}
