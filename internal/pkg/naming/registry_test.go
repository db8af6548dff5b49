package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plc-tools/tia-export/internal/pkg/model"
)

func TestRegistry_EnsureUniquePath(t *testing.T) {
	t.Parallel()
	r := NewRegistry()

	keyA := model.EntityKey{Group: "x", Index: 0, Name: "A/B"}
	keyB := model.EntityKey{Group: "x", Index: 1, Name: "A:B"}
	keyC := model.EntityKey{Group: "x", Index: 2, Name: "a_b"}

	assert.Equal(t, "x/A_B.scl", r.EnsureUniquePath(keyA, model.NewAbsPath("x", "A_B.scl")).Path())
	assert.Equal(t, "x/A_B-001.scl", r.EnsureUniquePath(keyB, model.NewAbsPath("x", "A_B.scl")).Path())
	assert.Equal(t, "x/a_b-002.scl", r.EnsureUniquePath(keyC, model.NewAbsPath("x", "a_b.scl")).Path())

	// Repeated call for the same entity returns the same path
	assert.Equal(t, "x/A_B-001.scl", r.EnsureUniquePath(keyB, model.NewAbsPath("x", "A_B.scl")).Path())
}

func TestRegistry_Reserve(t *testing.T) {
	t.Parallel()
	r := NewRegistry()
	r.Reserve(".staging")
	r.Reserve("tmp/.staging")
	r.Reserve("tmp/.staging-001/")

	key := func(name string) model.EntityKey {
		return model.EntityKey{Subject: ".staging", Name: name}
	}

	// Paths inside the reserved directory are moved to a sibling directory
	assert.Equal(t, ".staging-001/scl/Motor1.scl", r.EnsureUniquePath(key("Motor1"), model.NewAbsPath(".staging/scl", "Motor1.scl")).Path())
	assert.Equal(t, ".Staging-001/db/Data1.db", r.EnsureUniquePath(key("Data1"), model.NewAbsPath(".Staging/db", "Data1.db")).Path())
	assert.Equal(t, "tmp/.staging-002/Recipe.udt", r.EnsureUniquePath(key("Recipe"), model.NewAbsPath("tmp/.staging", "Recipe.udt")).Path())

	// Moved path keeps the parent directory
	p := r.EnsureUniquePath(key("Tags"), model.NewAbsPath(".staging", "Tags.xml"))
	assert.Equal(t, ".staging-001", p.GetParentPath())
	assert.Equal(t, "Tags.xml", p.GetRelativePath())

	// Similar names are not reserved
	assert.Equal(t, ".staging_old/Motor2.scl", r.EnsureUniquePath(key("Motor2"), model.NewAbsPath(".staging_old", "Motor2.scl")).Path())
	assert.Equal(t, "PLC_1/.staging/Motor3.scl", r.EnsureUniquePath(key("Motor3"), model.NewAbsPath("PLC_1/.staging", "Motor3.scl")).Path())
}

func TestRegistry_NamingError(t *testing.T) {
	t.Parallel()
	r := NewRegistry()

	key1 := model.EntityKey{Subject: "PLC_1", Name: "A"}
	key2 := model.EntityKey{Subject: "PLC_1", Name: "B"}

	require.NoError(t, r.attach(key1, model.NewAbsPath("scl", "A.scl")))
	require.NoError(t, r.attach(key1, model.NewAbsPath("scl", "A.scl")))

	err := r.attach(key2, model.NewAbsPath("SCL", "a.SCL"))
	require.Error(t, err)
	assert.Equal(t, `naming error: path "SCL/a.SCL" is attached to "A" in "", but new "B" in "" has same path`, err.Error())
}

func TestSplitExt(t *testing.T) {
	t.Parallel()
	stem, ext := splitExt("Motor.v2.scl")
	assert.Equal(t, "Motor.v2", stem)
	assert.Equal(t, ".scl", ext)

	stem, ext = splitExt(".scl")
	assert.Equal(t, ".scl", stem)
	assert.Equal(t, "", ext)

	stem, ext = splitExt("Motor")
	assert.Equal(t, "Motor", stem)
	assert.Equal(t, "", ext)
}
