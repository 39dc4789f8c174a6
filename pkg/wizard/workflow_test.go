package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kfone/console/pkg/catalog"
	"github.com/kfone/console/pkg/roles"
)

func newDraft(t *testing.T, name string, products ...string) *Workflow {
	t.Helper()
	w := New(catalog.Default())
	w.SetDetails(Details{
		UserType: roles.GenericUsers,
		RoleType: roles.RoleUser,
		RoleName: name,
		Products: products,
	})
	return w
}

func TestInitialStageIsDetails(t *testing.T) {
	w := New(catalog.Default())
	assert.Equal(t, StageDetails, w.Stage())
}

func TestGuardRefusesIncompleteDetails(t *testing.T) {
	w := newDraft(t, "", "Assess")
	assert.ErrorIs(t, w.Next(), ErrDetailsIncomplete)
	assert.Equal(t, StageDetails, w.Stage())

	w = newDraft(t, "QA Lead")
	assert.ErrorIs(t, w.Next(), ErrDetailsIncomplete)
	assert.Equal(t, StageDetails, w.Stage())

	w = newDraft(t, "   ", "Assess")
	assert.ErrorIs(t, w.Next(), ErrDetailsIncomplete)
	assert.Equal(t, StageDetails, w.Stage())
}

func TestForwardAndBackwardTransitions(t *testing.T) {
	w := newDraft(t, "QA Lead", "Assess", "Pay Equity")

	require.NoError(t, w.Next())
	assert.Equal(t, StagePermissions, w.Stage())

	require.NoError(t, w.Next())
	assert.Equal(t, StageReview, w.Stage())

	w.Back()
	assert.Equal(t, StagePermissions, w.Stage())
	w.Back()
	assert.Equal(t, StageDetails, w.Stage())
	w.Back()
	assert.Equal(t, StageDetails, w.Stage())
}

func TestPermissionsDefaultsToFirstSelectedProduct(t *testing.T) {
	w := newDraft(t, "QA Lead", "Assess", "Pay Equity")

	require.NoError(t, w.Next())
	assert.Equal(t, "Assess", w.ActiveProduct())
	assert.Equal(t, "Talent Suite resources", w.ActiveCategory())
}

func TestProductWithoutCategoriesHasNoActiveCategory(t *testing.T) {
	w := newDraft(t, "Comp Admin", "Pay")

	require.NoError(t, w.Next())
	assert.Equal(t, "Pay", w.ActiveProduct())
	assert.Empty(t, w.ActiveCategory())
}

func TestTabSwitchPreservesMatrixEdits(t *testing.T) {
	w := newDraft(t, "QA Lead", "Assess", "Pay Equity")
	require.NoError(t, w.Next())

	w.Matrix().Set("Assess", "Talent Suite resources", "Campaign", catalog.PermissionView, true)

	require.NoError(t, w.SelectProduct("Pay Equity"))
	assert.Equal(t, "Pay Equity resources", w.ActiveCategory())
	require.NoError(t, w.SelectProduct("Assess"))

	assert.True(t, w.Matrix().IsSet("Assess", "Talent Suite resources", "Campaign", catalog.PermissionView))
}

func TestSelectProductRejectsUnselected(t *testing.T) {
	w := newDraft(t, "QA Lead", "Assess")
	require.NoError(t, w.Next())

	assert.ErrorIs(t, w.SelectProduct("Pay"), ErrProductNotSelected)
	assert.Equal(t, "Assess", w.ActiveProduct())
}

func TestRoundTripPreservesStateAndTabs(t *testing.T) {
	w := newDraft(t, "QA Lead", "Assess", "Pay Equity")
	require.NoError(t, w.Next())
	require.NoError(t, w.SelectProduct("Pay Equity"))
	w.Matrix().Set("Pay Equity", "Pay Equity resources", "UK", catalog.PermissionAccess, true)

	w.Back()
	require.NoError(t, w.Next())

	assert.Equal(t, "Pay Equity", w.ActiveProduct())
	assert.Equal(t, "Pay Equity resources", w.ActiveCategory())
	assert.True(t, w.Matrix().IsSet("Pay Equity", "Pay Equity resources", "UK", catalog.PermissionAccess))
}

func TestForwardRevalidatesAfterInvalidation(t *testing.T) {
	w := newDraft(t, "QA Lead", "Assess")
	require.NoError(t, w.Next())

	// Deselecting every product mid-flight invalidates the draft; the next
	// forward transition must refuse rather than silently continue.
	w.SetDetails(Details{RoleName: "QA Lead"})
	assert.ErrorIs(t, w.Next(), ErrDetailsIncomplete)
	assert.Equal(t, StagePermissions, w.Stage())
}

func TestSaveOnlyFromReview(t *testing.T) {
	w := newDraft(t, "QA Lead", "Assess")

	_, err := w.Save("tenant-1", "op@kf.com")
	assert.ErrorIs(t, err, ErrNotReview)

	require.NoError(t, w.Next())
	_, err = w.Save("tenant-1", "op@kf.com")
	assert.ErrorIs(t, err, ErrNotReview)
}

func TestSaveEmitsTemplateAndResets(t *testing.T) {
	w := newDraft(t, "  QA Lead  ", "Assess")
	require.NoError(t, w.Next())
	w.Matrix().Set("Assess", "Talent Suite resources", "Campaign", catalog.PermissionView, true)
	require.NoError(t, w.Next())

	tpl, err := w.Save("tenant-1", "op@kf.com")
	require.NoError(t, err)

	assert.Equal(t, "QA Lead", tpl.RoleName)
	assert.Equal(t, "tenant-1", tpl.TenantID)
	assert.Equal(t, []string{"Assess"}, tpl.Products)
	require.Len(t, tpl.Permissions, 1)
	assert.Equal(t, "Campaign", tpl.Permissions[0].Resource)

	// Draft is gone after save.
	assert.Equal(t, StageDetails, w.Stage())
	assert.Empty(t, w.Details().RoleName)
	assert.False(t, w.Matrix().IsSet("Assess", "Talent Suite resources", "Campaign", catalog.PermissionView))
}

func TestCancelDiscardsDraft(t *testing.T) {
	w := newDraft(t, "QA Lead", "Assess")
	require.NoError(t, w.Next())
	w.Matrix().Set("Assess", "Talent Suite resources", "Campaign", catalog.PermissionView, true)

	w.Cancel()

	assert.Equal(t, StageDetails, w.Stage())
	assert.Empty(t, w.Details().Products)
	assert.False(t, w.Matrix().IsSet("Assess", "Talent Suite resources", "Campaign", catalog.PermissionView))
}

func TestReviewSummaryShowsChecksAndBans(t *testing.T) {
	w := newDraft(t, "QA Lead", "Assess")
	require.NoError(t, w.Next())
	w.Matrix().Set("Assess", "Talent Suite resources", "Campaign", catalog.PermissionView, true)
	require.NoError(t, w.Next())

	summary := w.Summary()
	require.Len(t, summary.Products, 1)
	require.Len(t, summary.Products[0].Categories, 1)

	cat := summary.Products[0].Categories[0]
	assert.Equal(t, "Talent Suite resources", cat.Name)
	assert.Equal(t, 1, cat.Count)

	var campaign *RowSummary
	for i := range cat.Rows {
		if cat.Rows[i].Resource == "Campaign" {
			campaign = &cat.Rows[i]
		}
	}
	require.NotNil(t, campaign)
	assert.True(t, campaign.Granted[catalog.PermissionView])
	assert.False(t, campaign.Granted[catalog.PermissionEdit])
}
