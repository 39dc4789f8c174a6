package wizard

import (
	"errors"
	"strings"
	"time"

	"github.com/kfone/console/pkg/catalog"
	"github.com/kfone/console/pkg/matrix"
	"github.com/kfone/console/pkg/roles"
)

// Stage is the wizard's position.
type Stage string

const (
	StageDetails     Stage = "details"
	StagePermissions Stage = "permissions"
	StageReview      Stage = "review"
)

var (
	// ErrDetailsIncomplete is returned when advancing with an empty role
	// name or no selected products.
	ErrDetailsIncomplete = errors.New("role name and at least one product are required")
	// ErrNotReview is returned when Save is called outside the Review stage.
	ErrNotReview = errors.New("save is only available from the review stage")
	// ErrProductNotSelected is returned when activating a product tab that
	// is not part of the draft.
	ErrProductNotSelected = errors.New("product is not selected in this draft")
)

// Details holds the stage-1 fields of a role draft.
type Details struct {
	UserType roles.UserType `json:"userType"`
	RoleType roles.RoleType `json:"roleType"`
	RoleName string         `json:"roleName"`
	Products []string       `json:"products"`
}

func (d Details) valid() bool {
	return strings.TrimSpace(d.RoleName) != "" && len(d.Products) > 0
}

// Workflow is one operator's in-progress role draft. Not safe for concurrent
// use; a draft belongs to a single session.
type Workflow struct {
	catalog *catalog.Catalog
	stage   Stage
	details Details
	grid    *matrix.Matrix

	activeProduct  string
	activeCategory string
}

// New starts a fresh workflow at the Details stage.
func New(c *catalog.Catalog) *Workflow {
	return &Workflow{
		catalog: c,
		stage:   StageDetails,
		details: Details{UserType: roles.GenericUsers, RoleType: roles.RoleUser},
		grid:    matrix.New(c),
	}
}

// Stage returns the current stage.
func (w *Workflow) Stage() Stage { return w.stage }

// Details returns the current stage-1 fields.
func (w *Workflow) Details() Details {
	d := w.details
	d.Products = append([]string{}, w.details.Products...)
	return d
}

// SetDetails replaces the stage-1 fields. Allowed from any stage; the guard
// is enforced on the next forward transition, not here.
func (w *Workflow) SetDetails(d Details) {
	d.Products = append([]string{}, d.Products...)
	w.details = d
	if w.activeProduct != "" && !w.productSelected(w.activeProduct) {
		w.activeProduct = ""
		w.activeCategory = ""
	}
}

// Matrix exposes the permission grid for the Permissions stage.
func (w *Workflow) Matrix() *matrix.Matrix { return w.grid }

// ActiveProduct returns the product tab currently being edited.
func (w *Workflow) ActiveProduct() string { return w.activeProduct }

// ActiveCategory returns the resource-category tab currently being edited.
func (w *Workflow) ActiveCategory() string { return w.activeCategory }

// SelectProduct activates a product tab. The matrix is keyed by product, so
// switching tabs never discards edits made under another product.
func (w *Workflow) SelectProduct(product string) error {
	if !w.productSelected(product) {
		return ErrProductNotSelected
	}
	w.activeProduct = product
	w.activeCategory = firstOrEmpty(w.catalog.Categories(product))
	return nil
}

// SelectCategory activates a resource-category tab under the active product.
func (w *Workflow) SelectCategory(category string) error {
	for _, c := range w.catalog.Categories(w.activeProduct) {
		if c == category {
			w.activeCategory = category
			return nil
		}
	}
	return errors.New("category not available for the active product")
}

// Next advances one stage. The Details guard is re-validated on every forward
// transition, so a draft invalidated after the fact cannot reach Review.
func (w *Workflow) Next() error {
	if !w.details.valid() {
		return ErrDetailsIncomplete
	}
	switch w.stage {
	case StageDetails:
		w.stage = StagePermissions
		w.ensureActiveTabs()
	case StagePermissions:
		w.stage = StageReview
	case StageReview:
		// Already at the end; Save is the terminal action.
	}
	return nil
}

// Back retreats one stage, preserving all entered data.
func (w *Workflow) Back() {
	switch w.stage {
	case StageReview:
		w.stage = StagePermissions
	case StagePermissions:
		w.stage = StageDetails
	}
}

// ensureActiveTabs defaults the active product to the first selected product
// and the active category to its first catalog category, keeping existing
// choices when they are still valid.
func (w *Workflow) ensureActiveTabs() {
	if w.activeProduct == "" || !w.productSelected(w.activeProduct) {
		w.activeProduct = firstOrEmpty(w.details.Products)
		w.activeCategory = firstOrEmpty(w.catalog.Categories(w.activeProduct))
	}
}

func (w *Workflow) productSelected(product string) bool {
	for _, p := range w.details.Products {
		if p == product {
			return true
		}
	}
	return false
}

func firstOrEmpty(items []string) string {
	if len(items) == 0 {
		return ""
	}
	return items[0]
}

// Save finalizes the draft into a role template and resets the workflow.
// Only reachable from Review.
func (w *Workflow) Save(tenantID, createdBy string) (*roles.Template, error) {
	if w.stage != StageReview {
		return nil, ErrNotReview
	}
	if !w.details.valid() {
		return nil, ErrDetailsIncomplete
	}

	tpl := &roles.Template{
		TenantID:    tenantID,
		RoleName:    strings.TrimSpace(w.details.RoleName),
		UserType:    w.details.UserType,
		RoleType:    w.details.RoleType,
		Products:    append([]string{}, w.details.Products...),
		Permissions: w.grid.Entries(),
		CreatedBy:   createdBy,
		CreatedAt:   time.Now().UTC(),
	}
	w.reset()
	return tpl, nil
}

// Cancel discards the draft with no partial persistence.
func (w *Workflow) Cancel() {
	w.reset()
}

func (w *Workflow) reset() {
	w.stage = StageDetails
	w.details = Details{UserType: roles.GenericUsers, RoleType: roles.RoleUser}
	w.grid = matrix.New(w.catalog)
	w.activeProduct = ""
	w.activeCategory = ""
}
