package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPermissionTypesOrder(t *testing.T) {
	types := PermissionTypes()

	assert.Equal(t, []PermissionType{
		PermissionAdd, PermissionEdit, PermissionDelete, PermissionView,
		PermissionLists, PermissionUpload, PermissionAccess,
	}, types)
}

func TestDefaultProducts(t *testing.T) {
	c := Default()

	assert.Equal(t, []string{"Pay", "Assess", "Architect", "Profile Manager", "Pay Equity"}, c.Products())
	assert.True(t, c.HasProduct("Assess"))
	assert.False(t, c.HasProduct("Tableau"))
}

func TestResourcesTalentSuite(t *testing.T) {
	c := Default()

	resources := c.Resources("Assess", "Talent Suite resources")
	assert.Len(t, resources, 7)
	assert.Contains(t, resources, "Campaign")
	assert.Equal(t, resources, c.Resources("Architect", "Talent Suite resources"))
}

func TestCategoriesEmptyForFlatProducts(t *testing.T) {
	c := Default()

	assert.Empty(t, c.Categories("Pay"))
	assert.Empty(t, c.Categories("Profile Manager"))
	assert.Equal(t, []string{"Pay Equity resources"}, c.Categories("Pay Equity"))
}

func TestResourcesUnknownPath(t *testing.T) {
	c := Default()

	assert.Empty(t, c.Resources("Pay", "Talent Suite resources"))
	assert.Empty(t, c.Resources("Nope", "Nope"))
}

func TestCountries(t *testing.T) {
	countries := Countries()

	assert.Len(t, countries, 11)
	assert.Equal(t, "United States", countries[0])
	assert.Equal(t, "Japan", countries[10])
}

func TestIconForKnownProduct(t *testing.T) {
	assert.Equal(t, "scale", IconFor("Pay Equity"))
	assert.Equal(t, "bar-chart", IconFor("Tableau"))
}

func TestIconForCustomProductIsStable(t *testing.T) {
	first := IconFor("Custom Analytics Suite")
	second := IconFor("Custom Analytics Suite")

	assert.Equal(t, first, second)
	assert.Contains(t, iconPalette, first)
}

func TestIconForDistinctSeeds(t *testing.T) {
	// Different names may collide in an 8-icon palette, but the hash must
	// not be constant across inputs.
	seen := map[string]bool{}
	for _, name := range []string{"Alpha", "Bravo", "Charlie", "Delta", "Echo", "Foxtrot"} {
		seen[IconFor(name)] = true
	}
	assert.Greater(t, len(seen), 1)
}

func TestLoadOverlayReplacesAndAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	overlay := `
products:
  - name: Pay
    categories:
      - name: Pay resources
        resources: [Benchmarks]
  - name: Listen
    categories:
      - name: Survey resources
        resources: [Survey, Report]
`
	require.NoError(t, os.WriteFile(path, []byte(overlay), 0o644))

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Benchmarks"}, c.Resources("Pay", "Pay resources"))
	assert.Equal(t, []string{"Survey", "Report"}, c.Resources("Listen", "Survey resources"))
	// Untouched products survive the merge.
	assert.Len(t, c.Resources("Assess", "Talent Suite resources"), 7)
	assert.Equal(t, "Listen", c.Products()[len(c.Products())-1])
}

func TestLoadOverlayMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestHolderSwap(t *testing.T) {
	h := NewHolder(Default())
	replacement := New([]Product{{Name: "Only"}})

	h.Set(replacement)

	assert.Equal(t, []string{"Only"}, h.Get().Products())
}
