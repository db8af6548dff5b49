package naming

import (
	"github.com/gofrs/uuid/v5"

	"github.com/plc-tools/tia-export/internal/pkg/filesystem"
	"github.com/plc-tools/tia-export/internal/pkg/model"
	"github.com/plc-tools/tia-export/internal/pkg/rules"
)

// Generator builds destination paths of the exported entities.
type Generator struct {
	registry *Registry
}

func NewGenerator(registry *Registry) *Generator {
	return &Generator{registry: registry}
}

// DestinationPath returns the unique path of the entity relative to the export root:
// rootPrefix / rule.Folder / groupPath / name + rule.Extension.
// Each segment is sanitized, the group path is omitted if the rule is flatten.
func (g *Generator) DestinationPath(key model.EntityKey, rootPrefix string, rule rules.Rule, groupPath string) model.AbsPath {
	parts := []string{Sanitize(rootPrefix), SanitizePath(rule.Folder)}
	if !rule.Flatten {
		parts = append(parts, SanitizePath(groupPath))
	}
	path := model.NewAbsPath(filesystem.Join(parts...), segment(key.Name)+rule.Extension)
	return g.registry.EnsureUniquePath(key, path)
}

// StagingPath returns a unique path of the temporary file in the staging directory.
func StagingPath(stagingDir, name, extension string) string {
	return filesystem.Join(stagingDir, uuid.Must(uuid.NewV4()).String()+"-"+segment(name)+extension)
}

// GroupPath appends the sanitized group name to the parent path.
func GroupPath(parent, groupName string) string {
	return filesystem.Join(parent, segment(groupName))
}
