package dependencies

import (
	"github.com/plc-tools/tia-export/internal/pkg/portal"
)

// commandScope dependencies container implements CommandScope interface.
type commandScope struct {
	BaseScope
	portal portal.Portal
}

func NewCommandScope(base BaseScope, p portal.Portal) CommandScope {
	return &commandScope{BaseScope: base, portal: p}
}

func (v *commandScope) Portal() portal.Portal {
	return v.portal
}
