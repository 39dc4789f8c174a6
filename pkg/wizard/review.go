package wizard

import "github.com/kfone/console/pkg/catalog"

// RowSummary is one resource row of the review table. Granted maps every
// permission type to its cell state, so the renderer shows a check or a ban
// for each column.
type RowSummary struct {
	Resource string                          `json:"resource"`
	Granted  map[catalog.PermissionType]bool `json:"granted"`
}

// CategorySummary is one resource-category tab of the review table.
type CategorySummary struct {
	Name  string       `json:"name"`
	Count int          `json:"count"`
	Rows  []RowSummary `json:"rows"`
}

// ProductSummary is one product section of the review.
type ProductSummary struct {
	Product    string            `json:"product"`
	Categories []CategorySummary `json:"categories"`
}

// Summary is the read-only review of a draft.
type Summary struct {
	Details  Details          `json:"details"`
	Products []ProductSummary `json:"products"`
}

// Summary renders the review for the draft's selected products, in the
// draft's product order.
func (w *Workflow) Summary() Summary {
	s := Summary{Details: w.Details()}
	for _, product := range w.details.Products {
		ps := ProductSummary{Product: product}
		for _, category := range w.catalog.Categories(product) {
			cs := CategorySummary{
				Name:  category,
				Count: w.grid.CountSet(product, category),
			}
			for _, resource := range w.catalog.Resources(product, category) {
				row := RowSummary{
					Resource: resource,
					Granted:  make(map[catalog.PermissionType]bool),
				}
				for _, perm := range catalog.PermissionTypes() {
					row.Granted[perm] = w.grid.IsSet(product, category, resource, perm)
				}
				cs.Rows = append(cs.Rows, row)
			}
			ps.Categories = append(ps.Categories, cs)
		}
		s.Products = append(s.Products, ps)
	}
	return s
}
