package api

import (
	"errors"
	"net/http"

	"github.com/kfone/console/pkg/audit"
	"github.com/kfone/console/pkg/catalog"
	"github.com/kfone/console/pkg/contextkeys"
	"github.com/kfone/console/pkg/httputil"
	"github.com/kfone/console/pkg/middleware"
	"github.com/kfone/console/pkg/wizard"
)

// wizardFor returns the calling session's role draft, starting one at the
// Details stage on first use.
func (s *Server) wizardFor(r *http.Request) *wizard.Workflow {
	sessionID := contextkeys.GetSessionID(r.Context())
	if sessionID == "" {
		sessionID = "local"
	}

	s.wizardMu.Lock()
	defer s.wizardMu.Unlock()

	w, ok := s.wizards[sessionID]
	if !ok {
		w = wizard.New(s.opts.Catalog.Get())
		s.wizards[sessionID] = w
	}
	return w
}

// wizardState is the envelope every wizard mutation returns, so the UI can
// render the stepper without a second round trip.
type wizardState struct {
	Stage          wizard.Stage   `json:"stage"`
	Details        wizard.Details `json:"details"`
	ActiveProduct  string         `json:"activeProduct,omitempty"`
	ActiveCategory string         `json:"activeCategory,omitempty"`
}

func stateOf(w *wizard.Workflow) wizardState {
	return wizardState{
		Stage:          w.Stage(),
		Details:        w.Details(),
		ActiveProduct:  w.ActiveProduct(),
		ActiveCategory: w.ActiveCategory(),
	}
}

func (s *Server) handleWizardState(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, stateOf(s.wizardFor(r)))
}

func (s *Server) handleWizardDetails(w http.ResponseWriter, r *http.Request) {
	var details wizard.Details
	if !httputil.ParseJSONOrError(w, r, &details) {
		return
	}

	wf := s.wizardFor(r)
	wf.SetDetails(details)
	httputil.WriteJSON(w, http.StatusOK, stateOf(wf))
}

func (s *Server) handleWizardNext(w http.ResponseWriter, r *http.Request) {
	wf := s.wizardFor(r)
	if err := wf.Next(); err != nil {
		httputil.WriteValidationError(w, err.Error())
		return
	}
	httputil.WriteJSON(w, http.StatusOK, stateOf(wf))
}

func (s *Server) handleWizardBack(w http.ResponseWriter, r *http.Request) {
	wf := s.wizardFor(r)
	wf.Back()
	httputil.WriteJSON(w, http.StatusOK, stateOf(wf))
}

func (s *Server) handleWizardCancel(w http.ResponseWriter, r *http.Request) {
	wf := s.wizardFor(r)
	wf.Cancel()
	if s.opts.Metrics != nil {
		s.opts.Metrics.WizardCancellationsTotal.Inc()
	}
	httputil.WriteJSON(w, http.StatusOK, stateOf(wf))
}

type selectProductRequest struct {
	Product string `json:"product"`
}

func (s *Server) handleWizardSelectProduct(w http.ResponseWriter, r *http.Request) {
	var req selectProductRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}

	wf := s.wizardFor(r)
	if err := wf.SelectProduct(req.Product); err != nil {
		httputil.WriteValidationError(w, err.Error())
		return
	}
	httputil.WriteJSON(w, http.StatusOK, stateOf(wf))
}

type selectCategoryRequest struct {
	Category string `json:"category"`
}

func (s *Server) handleWizardSelectCategory(w http.ResponseWriter, r *http.Request) {
	var req selectCategoryRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}

	wf := s.wizardFor(r)
	if err := wf.SelectCategory(req.Category); err != nil {
		httputil.WriteValidationError(w, err.Error())
		return
	}
	httputil.WriteJSON(w, http.StatusOK, stateOf(wf))
}

// gridRow is one resource row of the permissions table.
type gridRow struct {
	Resource string                          `json:"resource"`
	Cells    map[catalog.PermissionType]bool `json:"cells"`
	FullySet bool                            `json:"fullySet"`
}

// gridView is the permissions table for one product/category tab, with the
// column select-all states and the tab's granted-cell count.
type gridView struct {
	Product  string                          `json:"product"`
	Category string                          `json:"category"`
	Rows     []gridRow                       `json:"rows"`
	Columns  map[catalog.PermissionType]bool `json:"columnsFullySet"`
	Count    int                             `json:"count"`
}

func (s *Server) handleWizardGrid(w http.ResponseWriter, r *http.Request) {
	wf := s.wizardFor(r)

	product := httputil.ParseQueryString(r, "product", wf.ActiveProduct())
	category := httputil.ParseQueryString(r, "category", wf.ActiveCategory())
	if product == "" {
		httputil.WriteValidationError(w, "no active product; select a product tab first")
		return
	}

	grid := wf.Matrix()
	c := grid.Catalog()

	view := gridView{
		Product:  product,
		Category: category,
		Rows:     make([]gridRow, 0),
		Columns:  make(map[catalog.PermissionType]bool),
		Count:    grid.CountSet(product, category),
	}
	for _, resource := range c.Resources(product, category) {
		row := gridRow{
			Resource: resource,
			Cells:    make(map[catalog.PermissionType]bool),
			FullySet: grid.IsRowFullySet(product, category, resource),
		}
		for _, perm := range catalog.PermissionTypes() {
			row.Cells[perm] = grid.IsSet(product, category, resource, perm)
		}
		view.Rows = append(view.Rows, row)
	}
	for _, perm := range catalog.PermissionTypes() {
		view.Columns[perm] = grid.IsColumnFullySet(product, category, perm)
	}
	httputil.WriteJSON(w, http.StatusOK, view)
}

type setCellRequest struct {
	Product    string                 `json:"product"`
	Category   string                 `json:"category"`
	Resource   string                 `json:"resource"`
	Permission catalog.PermissionType `json:"permission"`
	Value      bool                   `json:"value"`
}

func (s *Server) handleWizardSetCell(w http.ResponseWriter, r *http.Request) {
	var req setCellRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}
	if !httputil.ValidateAll(w,
		func() (bool, string) { return req.Product != "", "product is required" },
		func() (bool, string) { return req.Resource != "", "resource is required" },
		func() (bool, string) { return req.Permission != "", "permission is required" },
	) {
		return
	}

	wf := s.wizardFor(r)
	wf.Matrix().Set(req.Product, req.Category, req.Resource, req.Permission, req.Value)
	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"value": wf.Matrix().IsSet(req.Product, req.Category, req.Resource, req.Permission),
		"count": wf.Matrix().CountSet(req.Product, req.Category),
	})
}

type setRowRequest struct {
	Product  string `json:"product"`
	Category string `json:"category"`
	Resource string `json:"resource"`
	Value    bool   `json:"value"`
}

func (s *Server) handleWizardSetRow(w http.ResponseWriter, r *http.Request) {
	var req setRowRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}
	if !httputil.RequireNonEmpty(w, req.Resource, "resource") {
		return
	}

	wf := s.wizardFor(r)
	wf.Matrix().SetRow(req.Product, req.Category, req.Resource, req.Value)
	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"fullySet": wf.Matrix().IsRowFullySet(req.Product, req.Category, req.Resource),
		"count":    wf.Matrix().CountSet(req.Product, req.Category),
	})
}

type setColumnRequest struct {
	Product    string                 `json:"product"`
	Category   string                 `json:"category"`
	Permission catalog.PermissionType `json:"permission"`
	Value      bool                   `json:"value"`
}

func (s *Server) handleWizardSetColumn(w http.ResponseWriter, r *http.Request) {
	var req setColumnRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}
	if !httputil.RequireNonEmpty(w, string(req.Permission), "permission") {
		return
	}

	wf := s.wizardFor(r)
	wf.Matrix().SetColumn(req.Product, req.Category, req.Permission, req.Value)
	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"fullySet": wf.Matrix().IsColumnFullySet(req.Product, req.Category, req.Permission),
		"count":    wf.Matrix().CountSet(req.Product, req.Category),
	})
}

func (s *Server) handleWizardReview(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, s.wizardFor(r).Summary())
}

// handleSaveRole finalizes the session's draft into a stored role template.
// Only reachable from the Review stage; the draft resets on success.
func (s *Server) handleSaveRole(w http.ResponseWriter, r *http.Request) {
	tenant := middleware.TenantFromRequest(r)
	operator := contextkeys.GetOperator(r.Context())

	wf := s.wizardFor(r)
	tpl, err := wf.Save(tenant.ID, operator)
	if errors.Is(err, wizard.ErrNotReview) {
		httputil.WriteConflict(w, err.Error())
		return
	}
	if err != nil {
		httputil.WriteValidationError(w, err.Error())
		return
	}

	if err := s.opts.Roles.Create(r.Context(), tpl); err != nil {
		httputil.WriteInternalError(w, err)
		return
	}

	if s.opts.Metrics != nil {
		s.opts.Metrics.RoleTemplatesSavedTotal.WithLabelValues(string(tpl.RoleType)).Inc()
		s.opts.Metrics.PermissionCellsPerSave.Observe(float64(len(tpl.Permissions)))
	}
	s.record(r.Context(), audit.NewEvent(r.Context(), audit.EventRoleTemplateSave, audit.StatusSuccess).
		WithTenant(tenant.ID).WithResource(tpl.ID).WithMessage(tpl.RoleName))
	httputil.WriteCreated(w, tpl)
}
