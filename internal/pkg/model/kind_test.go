package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindSet(t *testing.T) {
	t.Parallel()

	all := NewKindSet()
	for _, k := range AllKinds() {
		assert.True(t, all.Has(k))
	}
	assert.Equal(t, "*", all.String())

	logic := NewKindSet(TypeKind, BlockKind)
	assert.True(t, logic.Has(BlockKind))
	assert.False(t, logic.Has(TextListKind))
	assert.Equal(t, "block,type", logic.String())
}

func TestKind(t *testing.T) {
	t.Parallel()
	assert.True(t, TagTableKind.IsValid())
	assert.False(t, Kind("screen").IsValid())
	assert.Equal(t, "block", BlockKind.Desc())
	assert.Equal(t, "user-defined type", TypeKind.Desc())
	assert.Equal(t, "tag table", TagTableKind.Desc())
	assert.Equal(t, "text list", TextListKind.Desc())
	assert.True(t, LogicScope.IsValid())
	assert.False(t, Scope("cloud").IsValid())
}

func TestAbsPath(t *testing.T) {
	t.Parallel()
	p := NewAbsPath("PLC_1/scl/Main", "Motor1.scl")
	assert.Equal(t, "PLC_1/scl/Main/Motor1.scl", p.Path())
	p.SetParentPath("")
	assert.Equal(t, "Motor1.scl", p.Path())
}
