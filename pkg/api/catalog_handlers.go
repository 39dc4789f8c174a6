package api

import (
	"net/http"
	"strings"

	"github.com/kfone/console/pkg/audit"
	"github.com/kfone/console/pkg/catalog"
	"github.com/kfone/console/pkg/httputil"
	"github.com/kfone/console/pkg/overlay"
)

// productListItem is one row of the product picker, icon included so the UI
// never hashes names itself.
type productListItem struct {
	Name       string   `json:"name"`
	Icon       string   `json:"icon"`
	Categories []string `json:"categories"`
}

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	c := s.opts.Catalog.Get()
	search := strings.ToLower(httputil.ParseQueryString(r, "search", ""))

	items := make([]productListItem, 0)
	for _, name := range c.Products() {
		if search != "" && !strings.Contains(strings.ToLower(name), search) {
			continue
		}
		items = append(items, productListItem{
			Name:       name,
			Icon:       catalog.IconFor(name),
			Categories: c.Categories(name),
		})
	}

	params := httputil.ParsePageParams(r)
	start, end := httputil.PageBounds(len(items), params)
	httputil.WritePage(w, httputil.NewPage(items[start:end], len(items), params))
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	product, ok := s.productFromRequest(w, r)
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"product":    product,
		"categories": s.opts.Catalog.Get().Categories(product),
	})
}

func (s *Server) handleListResources(w http.ResponseWriter, r *http.Request) {
	product, ok := s.productFromRequest(w, r)
	if !ok {
		return
	}
	category, ok := httputil.ParsePathStringOrError(w, r, "category")
	if !ok {
		return
	}

	c := s.opts.Catalog.Get()
	resources := c.Resources(product, category)
	if len(resources) == 0 {
		found := false
		for _, known := range c.Categories(product) {
			if known == category {
				found = true
				break
			}
		}
		if !found {
			httputil.WriteNotFoundError(w, "category not found for product")
			return
		}
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"product":   product,
		"category":  category,
		"resources": resources,
	})
}

func (s *Server) handleListPermissionTypes(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"permissionTypes": catalog.PermissionTypes(),
	})
}

func (s *Server) handleListCountries(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"countries": catalog.Countries(),
	})
}

func (s *Server) productFromRequest(w http.ResponseWriter, r *http.Request) (string, bool) {
	product, ok := httputil.ParsePathStringOrError(w, r, "product")
	if !ok {
		return "", false
	}
	if !s.opts.Catalog.Get().HasProduct(product) {
		httputil.WriteNotFoundError(w, "product not found")
		return "", false
	}
	return product, true
}

// toggleView is one feature flag row with its current value.
type toggleView struct {
	Label       string `json:"label"`
	Description string `json:"description"`
	Enabled     bool   `json:"enabled"`
}

// toggleSetFor returns the per-product flag list, creating it from the
// defaults on first access.
func (s *Server) toggleSetFor(product string) *overlay.ToggleSet {
	s.toggleMu.Lock()
	defer s.toggleMu.Unlock()

	set, ok := s.toggles[product]
	if !ok {
		set = overlay.NewToggleSet(product)
		s.toggles[product] = set
	}
	return set
}

func (s *Server) handleListToggles(w http.ResponseWriter, r *http.Request) {
	product, ok := httputil.ParsePathStringOrError(w, r, "product")
	if !ok {
		return
	}

	known := false
	for _, p := range overlay.ToggleProducts() {
		if p == product {
			known = true
			break
		}
	}
	if !known {
		httputil.WriteNotFoundError(w, "product has no feature toggles")
		return
	}

	set := s.toggleSetFor(product)
	views := make([]toggleView, 0)
	for _, t := range set.Toggles() {
		views = append(views, toggleView{
			Label:       t.Label,
			Description: t.Description,
			Enabled:     set.Enabled(t.Label),
		})
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"product": product,
		"toggles": views,
	})
}

type setToggleRequest struct {
	Label   string `json:"label"`
	Enabled bool   `json:"enabled"`
}

func (s *Server) handleSetToggle(w http.ResponseWriter, r *http.Request) {
	product, ok := httputil.ParsePathStringOrError(w, r, "product")
	if !ok {
		return
	}
	var req setToggleRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}
	if !httputil.RequireNonEmpty(w, req.Label, "label") {
		return
	}

	set := s.toggleSetFor(product)
	if err := set.Set(req.Label, req.Enabled); err != nil {
		httputil.WriteValidationError(w, err.Error())
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"product": product,
		"label":   req.Label,
		"enabled": set.Enabled(req.Label),
	})
}

// handleCatalogReload re-reads the permission catalog overlay from disk and
// swaps it in. The watcher does this automatically; the endpoint exists for
// deployments without inotify.
func (s *Server) handleCatalogReload(w http.ResponseWriter, r *http.Request) {
	c, err := catalog.Load(s.opts.OverlayPath)
	if err != nil {
		s.catalogReloadResult("failure")
		s.record(r.Context(), audit.NewEvent(r.Context(), audit.EventCatalogReload, audit.StatusFailure).
			WithError(err))
		httputil.WriteErrorMessage(w, http.StatusUnprocessableEntity, "catalog overlay failed to load: "+err.Error())
		return
	}

	s.opts.Catalog.Set(c)
	s.catalogReloadResult("success")
	s.record(r.Context(), audit.NewEvent(r.Context(), audit.EventCatalogReload, audit.StatusSuccess).
		WithMessage(s.opts.OverlayPath))
	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"products": c.Products(),
	})
}

func (s *Server) catalogReloadResult(status string) {
	if s.opts.Metrics != nil {
		s.opts.Metrics.CatalogReloadsTotal.WithLabelValues(status).Inc()
	}
}
