package matrix

import "github.com/kfone/console/pkg/catalog"

// Matrix is the working permission grid for a role draft. It is not safe for
// concurrent use; the wizard mutates it from a single operator session.
type Matrix struct {
	catalog *catalog.Catalog
	grid    map[string]map[string]map[string]map[catalog.PermissionType]bool
}

// New creates an empty matrix over the given catalog.
func New(c *catalog.Catalog) *Matrix {
	return &Matrix{
		catalog: c,
		grid:    make(map[string]map[string]map[string]map[catalog.PermissionType]bool),
	}
}

// IsSet returns the stored value for a cell, false for any unset path.
func (m *Matrix) IsSet(product, category, resource string, perm catalog.PermissionType) bool {
	return m.grid[product][category][resource][perm]
}

// Set stores a single cell, creating intermediate levels on demand. Setting a
// cell to its current value is a no-op.
func (m *Matrix) Set(product, category, resource string, perm catalog.PermissionType, value bool) {
	cell := m.cell(product, category, resource)
	cell[perm] = value
}

func (m *Matrix) cell(product, category, resource string) map[catalog.PermissionType]bool {
	byCategory, ok := m.grid[product]
	if !ok {
		byCategory = make(map[string]map[string]map[catalog.PermissionType]bool)
		m.grid[product] = byCategory
	}
	byResource, ok := byCategory[category]
	if !ok {
		byResource = make(map[string]map[catalog.PermissionType]bool)
		byCategory[category] = byResource
	}
	cell, ok := byResource[resource]
	if !ok {
		cell = make(map[catalog.PermissionType]bool)
		byResource[resource] = cell
	}
	return cell
}

// IsColumnFullySet reports whether every catalog resource under
// (product, category) has perm set. An empty resource list reads as fully
// set, matching a "select all" checkbox with nothing under it.
func (m *Matrix) IsColumnFullySet(product, category string, perm catalog.PermissionType) bool {
	for _, resource := range m.catalog.Resources(product, category) {
		if !m.IsSet(product, category, resource, perm) {
			return false
		}
	}
	return true
}

// SetColumn sets perm to value for every catalog resource under
// (product, category).
func (m *Matrix) SetColumn(product, category string, perm catalog.PermissionType, value bool) {
	for _, resource := range m.catalog.Resources(product, category) {
		m.Set(product, category, resource, perm, value)
	}
}

// IsRowFullySet reports whether every permission type is set for a resource.
func (m *Matrix) IsRowFullySet(product, category, resource string) bool {
	for _, perm := range catalog.PermissionTypes() {
		if !m.IsSet(product, category, resource, perm) {
			return false
		}
	}
	return true
}

// SetRow sets every permission type for a resource to value.
func (m *Matrix) SetRow(product, category, resource string, value bool) {
	for _, perm := range catalog.PermissionTypes() {
		m.Set(product, category, resource, perm, value)
	}
}

// CountSet returns the number of true cells across all catalog resources and
// permission types under (product, category).
func (m *Matrix) CountSet(product, category string) int {
	count := 0
	for _, resource := range m.catalog.Resources(product, category) {
		for _, perm := range catalog.PermissionTypes() {
			if m.IsSet(product, category, resource, perm) {
				count++
			}
		}
	}
	return count
}

// Entry is one granted cell of the grid, used when flattening a finished
// draft for persistence.
type Entry struct {
	Product    string                 `json:"product"`
	Category   string                 `json:"category"`
	Resource   string                 `json:"resource"`
	Permission catalog.PermissionType `json:"permission"`
}

// Entries flattens every granted cell in catalog order.
func (m *Matrix) Entries() []Entry {
	var entries []Entry
	for _, product := range m.catalog.Products() {
		for _, category := range m.catalog.Categories(product) {
			for _, resource := range m.catalog.Resources(product, category) {
				for _, perm := range catalog.PermissionTypes() {
					if m.IsSet(product, category, resource, perm) {
						entries = append(entries, Entry{
							Product:    product,
							Category:   category,
							Resource:   resource,
							Permission: perm,
						})
					}
				}
			}
		}
	}
	return entries
}

// Catalog returns the catalog the matrix is keyed by.
func (m *Matrix) Catalog() *catalog.Catalog {
	return m.catalog
}
