package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kfone/console/pkg/catalog"
)

func newTestMatrix() *Matrix {
	return New(catalog.Default())
}

func TestUnsetCellsReadFalse(t *testing.T) {
	m := newTestMatrix()

	for _, resource := range m.Catalog().Resources("Assess", "Talent Suite resources") {
		for _, perm := range catalog.PermissionTypes() {
			assert.False(t, m.IsSet("Assess", "Talent Suite resources", resource, perm))
		}
	}
}

func TestSetAndIsSet(t *testing.T) {
	m := newTestMatrix()

	m.Set("Assess", "Talent Suite resources", "Campaign", catalog.PermissionView, true)

	assert.True(t, m.IsSet("Assess", "Talent Suite resources", "Campaign", catalog.PermissionView))
	assert.False(t, m.IsSet("Assess", "Talent Suite resources", "Campaign", catalog.PermissionEdit))
	assert.False(t, m.IsSet("Assess", "Talent Suite resources", "Insights", catalog.PermissionView))
}

func TestSetIsIdempotent(t *testing.T) {
	m := newTestMatrix()

	m.Set("Assess", "Talent Suite resources", "Campaign", catalog.PermissionView, true)
	m.Set("Assess", "Talent Suite resources", "Campaign", catalog.PermissionView, true)

	assert.True(t, m.IsSet("Assess", "Talent Suite resources", "Campaign", catalog.PermissionView))
	assert.Equal(t, 1, m.CountSet("Assess", "Talent Suite resources"))
}

func TestColumnSelectAll(t *testing.T) {
	m := newTestMatrix()

	m.SetColumn("Assess", "Talent Suite resources", catalog.PermissionView, true)
	assert.True(t, m.IsColumnFullySet("Assess", "Talent Suite resources", catalog.PermissionView))
	assert.Equal(t, 7, m.CountSet("Assess", "Talent Suite resources"))

	m.SetColumn("Assess", "Talent Suite resources", catalog.PermissionView, false)
	assert.False(t, m.IsColumnFullySet("Assess", "Talent Suite resources", catalog.PermissionView))
	assert.Equal(t, 0, m.CountSet("Assess", "Talent Suite resources"))
}

func TestColumnPartiallySet(t *testing.T) {
	m := newTestMatrix()

	m.Set("Assess", "Talent Suite resources", "Campaign", catalog.PermissionView, true)

	assert.False(t, m.IsColumnFullySet("Assess", "Talent Suite resources", catalog.PermissionView))
}

func TestEmptyCategoryColumnIsVacuouslyFull(t *testing.T) {
	m := newTestMatrix()

	// Pay has no resource categories at all.
	assert.True(t, m.IsColumnFullySet("Pay", "anything", catalog.PermissionView))
	assert.True(t, m.IsColumnFullySet("Profile Manager", "anything", catalog.PermissionAccess))
}

func TestRowOperationsAreOrthogonal(t *testing.T) {
	m := newTestMatrix()

	m.SetRow("Assess", "Talent Suite resources", "Campaign", true)

	assert.True(t, m.IsRowFullySet("Assess", "Talent Suite resources", "Campaign"))
	for _, other := range []string{"Assess tab", "Email template", "Insights"} {
		assert.False(t, m.IsRowFullySet("Assess", "Talent Suite resources", other))
	}
	assert.Equal(t, len(catalog.PermissionTypes()), m.CountSet("Assess", "Talent Suite resources"))

	m.SetRow("Assess", "Talent Suite resources", "Campaign", false)
	assert.False(t, m.IsRowFullySet("Assess", "Talent Suite resources", "Campaign"))
}

func TestProductsAreIndependent(t *testing.T) {
	m := newTestMatrix()

	m.Set("Assess", "Talent Suite resources", "Campaign", catalog.PermissionView, true)

	assert.False(t, m.IsSet("Architect", "Talent Suite resources", "Campaign", catalog.PermissionView))
	assert.Equal(t, 0, m.CountSet("Architect", "Talent Suite resources"))
}

func TestEntriesFlattenInCatalogOrder(t *testing.T) {
	m := newTestMatrix()

	m.Set("Pay Equity", "Pay Equity resources", "UK", catalog.PermissionAccess, true)
	m.Set("Assess", "Talent Suite resources", "Campaign", catalog.PermissionView, true)

	entries := m.Entries()
	assert.Len(t, entries, 2)
	// Assess precedes Pay Equity in catalog order regardless of set order.
	assert.Equal(t, "Assess", entries[0].Product)
	assert.Equal(t, "Campaign", entries[0].Resource)
	assert.Equal(t, "Pay Equity", entries[1].Product)
	assert.Equal(t, catalog.PermissionAccess, entries[1].Permission)
}

func TestCountSetColumnScenario(t *testing.T) {
	m := newTestMatrix()

	m.SetColumn("Assess", "Talent Suite resources", catalog.PermissionView, true)

	assert.Equal(t, 7, m.CountSet("Assess", "Talent Suite resources"))
}
