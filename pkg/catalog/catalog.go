package catalog

// PermissionType is one of the fixed actions applicable to a resource.
type PermissionType string

const (
	PermissionAdd    PermissionType = "Add"
	PermissionEdit   PermissionType = "Edit"
	PermissionDelete PermissionType = "Delete"
	PermissionView   PermissionType = "View"
	PermissionLists  PermissionType = "Lists"
	PermissionUpload PermissionType = "Upload"
	PermissionAccess PermissionType = "Access"
)

// permissionTypes is the fixed column order of the permission grid.
var permissionTypes = []PermissionType{
	PermissionAdd,
	PermissionEdit,
	PermissionDelete,
	PermissionView,
	PermissionLists,
	PermissionUpload,
	PermissionAccess,
}

// Category groups resources within a product, preserving display order.
type Category struct {
	Name      string   `yaml:"name"`
	Resources []string `yaml:"resources"`
}

// Product is a role-authoring product with its ordered resource categories.
type Product struct {
	Name       string     `yaml:"name"`
	Categories []Category `yaml:"categories"`
}

// Catalog is the static data the permission matrix and role wizard are keyed
// by. Instances are immutable after construction; Watch swaps whole catalogs.
type Catalog struct {
	products []Product
	byName   map[string]*Product
}

// New builds a catalog from an ordered product list.
func New(products []Product) *Catalog {
	c := &Catalog{
		products: products,
		byName:   make(map[string]*Product, len(products)),
	}
	for i := range c.products {
		c.byName[c.products[i].Name] = &c.products[i]
	}
	return c
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return New(defaultProducts())
}

func defaultProducts() []Product {
	talentSuite := []string{
		"Assess tab",
		"Assessment usage report",
		"Development roadmap report",
		"Email template",
		"Campaign",
		"Talent group",
		"Insights",
	}
	return []Product{
		{Name: "Pay"},
		{Name: "Assess", Categories: []Category{
			{Name: "Talent Suite resources", Resources: talentSuite},
		}},
		{Name: "Architect", Categories: []Category{
			{Name: "Talent Suite resources", Resources: talentSuite},
		}},
		{Name: "Profile Manager"},
		{Name: "Pay Equity", Categories: []Category{
			{Name: "Pay Equity resources", Resources: []string{"Australia", "UK", "North America"}},
		}},
	}
}

// PermissionTypes returns the fixed ordered permission-type list.
func PermissionTypes() []PermissionType {
	out := make([]PermissionType, len(permissionTypes))
	copy(out, permissionTypes)
	return out
}

// Products returns the ordered product names available in the role wizard.
func (c *Catalog) Products() []string {
	names := make([]string, len(c.products))
	for i, p := range c.products {
		names[i] = p.Name
	}
	return names
}

// HasProduct reports whether the catalog knows the given product.
func (c *Catalog) HasProduct(product string) bool {
	_, ok := c.byName[product]
	return ok
}

// Categories returns the ordered category names for a product. Products with
// no resource breakdown (Pay, Profile Manager) return an empty slice, as does
// an unknown product.
func (c *Catalog) Categories(product string) []string {
	p, ok := c.byName[product]
	if !ok {
		return nil
	}
	names := make([]string, len(p.Categories))
	for i, cat := range p.Categories {
		names[i] = cat.Name
	}
	return names
}

// Resources returns the ordered resource names under (product, category).
// Unknown paths return an empty slice.
func (c *Catalog) Resources(product, category string) []string {
	p, ok := c.byName[product]
	if !ok {
		return nil
	}
	for _, cat := range p.Categories {
		if cat.Name == category {
			out := make([]string, len(cat.Resources))
			copy(out, cat.Resources)
			return out
		}
	}
	return nil
}

// allCountries is the fixed country list offered for per-country attribute
// overlays, in display order.
var allCountries = []string{
	"United States",
	"Canada",
	"Germany",
	"United Kingdom",
	"France",
	"Italy",
	"Spain",
	"Australia",
	"New Zealand",
	"Singapore",
	"Japan",
}

// Countries returns the fixed country list for attribute overlays.
func Countries() []string {
	out := make([]string, len(allCountries))
	copy(out, allCountries)
	return out
}

// availableProducts is the subscribable product line-up offered when
// provisioning a client. Custom product names are also accepted.
var availableProducts = []string{
	"Pay & Markets",
	"Assess",
	"KF Architect",
	"Profile Manager",
	"Pay Equity",
	"KF Assess",
	"KF Pay",
	"Tableau",
	"Listen",
}

// AvailableProducts returns the subscribable product names.
func AvailableProducts() []string {
	out := make([]string, len(availableProducts))
	copy(out, availableProducts)
	return out
}
