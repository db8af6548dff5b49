// Package portal defines the surface of the engineering tool used by the export.
// The tool owns all entities and performs the serialization, the export only navigates its object tree.
package portal

import (
	"context"

	"github.com/plc-tools/tia-export/internal/pkg/model"
)

const (
	// PLCStationType is the type identifier of a device which contains PLC software.
	PLCStationType = "System:Device.S71500"
	// PLCItemMarker must be contained in the name of an exported device item of a PLC station.
	PLCItemMarker = "PLC"
)

// Portal is an entry point to the running engineering tool.
type Portal interface {
	Processes(ctx context.Context) ([]Process, error)
}

// Process is one running instance of the engineering tool.
type Process interface {
	ID() int
	ProjectPath() string
	Attach(ctx context.Context) (Instance, error)
}

type Instance interface {
	Projects() ([]Project, error)
}

type Project interface {
	Name() string
	Devices() ([]Device, error)
}

type Device interface {
	Name() string
	TypeIdentifier() string
	Items() ([]DeviceItem, error)
}

type DeviceItem interface {
	Name() string
	TypeIdentifier() string
	// Software returns the software container of the item, nil if the item has no software.
	Software() (Software, error)
}

// Software is LogicSoftware or VisualizationSoftware.
type Software interface {
	Name() string
}

// LogicSoftware is the software of a PLC.
type LogicSoftware interface {
	Software
	BlockGroup() model.Group
	TypeGroup() model.Group
	TagTableGroup() model.Group
}

// VisualizationSoftware is the software of an HMI device.
type VisualizationSoftware interface {
	Software
	TagFolder() model.Group
	TextLists() model.Group
}
