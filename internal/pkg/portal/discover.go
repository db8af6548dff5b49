package portal

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/plc-tools/tia-export/internal/pkg/log"
	"github.com/plc-tools/tia-export/internal/pkg/model"
	"github.com/plc-tools/tia-export/internal/pkg/utils/errors"
)

// Discover attaches to all running processes of the engineering tool and returns export subjects of all projects.
//
// Devices of the PLCStationType are PLC stations, only items with the PLCItemMarker in the name are exported:
// program blocks, PLC data types and PLC tag tables, prefixed by the item name.
// All items of other devices are checked for HMI software: tag tables and text lists, without a prefix.
//
// Only a failure to list or attach to processes is returned, other problems are logged and skipped.
func Discover(ctx context.Context, logger log.Logger, p Portal) ([]model.Subject, error) {
	processes, err := p.Processes(ctx)
	if err != nil {
		return nil, &AttachError{Err: err}
	}
	if len(processes) == 0 {
		return nil, &AttachError{Err: errors.New("no running process found")}
	}

	var subjects []model.Subject
	for _, process := range processes {
		logger.Infof(ctx, `Found process %d with project "%s".`, process.ID(), process.ProjectPath())

		instance, err := process.Attach(ctx)
		if err != nil {
			return nil, &AttachError{ProcessID: process.ID(), Err: err}
		}

		projects, err := instance.Projects()
		if err != nil {
			return nil, &AttachError{ProcessID: process.ID(), Err: errors.PrefixError(err, "cannot list projects")}
		}
		if len(projects) == 0 {
			logger.Warnf(ctx, `No projects found in process %d.`, process.ID())
			continue
		}

		for _, project := range projects {
			subjects = append(subjects, discoverProject(ctx, logger, project)...)
		}
	}

	return subjects, nil
}

func discoverProject(ctx context.Context, logger log.Logger, project Project) (subjects []model.Subject) {
	logger = logger.With(attribute.String("project", project.Name()))
	logger.Infof(ctx, `Handling project "%s".`, project.Name())

	devices, err := project.Devices()
	if err != nil {
		logger.Warnf(ctx, `Cannot list devices of project "%s": %s`, project.Name(), err)
		return nil
	}

	for _, device := range devices {
		logger.Infof(ctx, `Handling device "%s" of type "%s".`, device.Name(), device.TypeIdentifier())
		items, err := device.Items()
		if err != nil {
			logger.Warnf(ctx, `Cannot list items of device "%s": %s`, device.Name(), err)
			continue
		}

		plcStation := device.TypeIdentifier() == PLCStationType
		for _, item := range items {
			if plcStation {
				subjects = append(subjects, logicSubjects(ctx, logger, device, item)...)
			} else {
				subjects = append(subjects, visualizationSubjects(ctx, logger, device, item)...)
			}
		}
	}

	return subjects
}

func logicSubjects(ctx context.Context, logger log.Logger, device Device, item DeviceItem) []model.Subject {
	if !strings.Contains(item.Name(), PLCItemMarker) {
		logger.Debugf(ctx, `Ignored device item "%s" of type "%s".`, item.Name(), item.TypeIdentifier())
		return nil
	}

	logger.Infof(ctx, `Handling PLC device item "%s" of type "%s".`, item.Name(), item.TypeIdentifier())
	software, err := item.Software()
	if err != nil {
		logger.Warnf(ctx, `Cannot read software of device item "%s": %s`, item.Name(), err)
		return nil
	}

	plc, ok := software.(LogicSoftware)
	if !ok {
		logger.Warnf(ctx, "%s, skipped.", MissingContainerError{Device: device.Name(), Item: item.Name(), Want: "PLC"})
		return nil
	}

	prefix := item.Name()
	return nonEmpty(
		model.Subject{RootPrefix: prefix, Scope: model.LogicScope, Root: plc.BlockGroup(), Kinds: model.NewKindSet(model.BlockKind)},
		model.Subject{RootPrefix: prefix, Scope: model.LogicScope, Root: plc.TypeGroup(), Kinds: model.NewKindSet(model.TypeKind)},
		model.Subject{RootPrefix: prefix, Scope: model.LogicScope, Root: plc.TagTableGroup(), Kinds: model.NewKindSet(model.TagTableKind)},
	)
}

func visualizationSubjects(ctx context.Context, logger log.Logger, device Device, item DeviceItem) []model.Subject {
	logger.Debugf(ctx, `Probing device item "%s" of type "%s" for HMI software.`, item.Name(), item.TypeIdentifier())
	software, err := item.Software()
	if err != nil {
		logger.Warnf(ctx, `Cannot read software of device item "%s": %s`, item.Name(), err)
		return nil
	}
	if software == nil {
		logger.Debugf(ctx, "%s, skipped.", MissingContainerError{Device: device.Name(), Item: item.Name(), Want: "HMI"})
		return nil
	}

	hmi, ok := software.(VisualizationSoftware)
	if !ok {
		logger.Debugf(ctx, `Software "%s" of device item "%s" is not HMI software, skipped.`, software.Name(), item.Name())
		return nil
	}

	logger.Infof(ctx, `Handling HMI device item "%s".`, item.Name())
	return nonEmpty(
		model.Subject{Scope: model.VisualizationScope, Root: hmi.TagFolder(), Kinds: model.NewKindSet(model.TagTableKind)},
		model.Subject{Scope: model.VisualizationScope, Root: hmi.TextLists(), Kinds: model.NewKindSet(model.TextListKind)},
	)
}

func nonEmpty(subjects ...model.Subject) []model.Subject {
	out := subjects[:0]
	for _, s := range subjects {
		if s.Root != nil {
			out = append(out, s)
		}
	}
	return out
}
