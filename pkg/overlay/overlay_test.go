package overlay

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kfone/console/pkg/tenants"
)

func fixtureUser(t *testing.T, tenantID, userID string) *tenants.User {
	t.Helper()
	user, err := tenants.NewFixtureStore().UserOf(context.Background(), tenantID, userID)
	require.NoError(t, err)
	return user
}

func TestAttributesForConfiguredCountry(t *testing.T) {
	user := fixtureUser(t, "1a2b3c4d-1234-5678-9abc-def012345678", "550e8400-e29b-41d4-a716-446655440001")

	ca, err := AttributesFor(user, "United States")
	require.NoError(t, err)
	assert.True(t, ca.Attributes.AccessByLevel)
	require.NotNil(t, ca.Attributes.AccessLevel)
	assert.Equal(t, "Non Executive", *ca.Attributes.AccessLevel)
}

func TestAttributesForNotConfiguredCountryRecord(t *testing.T) {
	// Bob Jones has a Germany record that is explicitly not configured.
	user := fixtureUser(t, "1a2b3c4d-1234-5678-9abc-def012345678", "550e8400-e29b-41d4-a716-446655440002")

	ca, err := AttributesFor(user, "Germany")
	require.NoError(t, err)
	assert.False(t, ca.Attributes.AccessByLevel)
	assert.Nil(t, ca.Attributes.AccessLevel)
	assert.Nil(t, ca.Attributes.ReferenceLevel)
	assert.Nil(t, ca.Attributes.BusinessUnits)
}

func TestAttributesForAbsentCountry(t *testing.T) {
	user := fixtureUser(t, "1a2b3c4d-1234-5678-9abc-def012345678", "550e8400-e29b-41d4-a716-446655440001")

	_, err := AttributesFor(user, "Japan")
	assert.ErrorIs(t, err, ErrCountryNotConfigured)
}

func TestAttributesForReturnsCopy(t *testing.T) {
	user := fixtureUser(t, "1a2b3c4d-1234-5678-9abc-def012345678", "550e8400-e29b-41d4-a716-446655440001")

	ca, err := AttributesFor(user, "United States")
	require.NoError(t, err)
	ca.Attributes.AccessByLevel = false

	again, err := AttributesFor(user, "United States")
	require.NoError(t, err)
	assert.True(t, again.Attributes.AccessByLevel)
}

func TestCountriesInRecordOrder(t *testing.T) {
	user := fixtureUser(t, "1a2b3c4d-1234-5678-9abc-def012345678", "550e8400-e29b-41d4-a716-446655440001")

	assert.Equal(t, []string{"United States", "Canada"}, Countries(user))
}

func TestAccordionDefaults(t *testing.T) {
	a := NewAccordion([]string{"United States", "Canada", "Germany"})

	assert.True(t, a.Expanded("United States"))
	assert.False(t, a.Expanded("Canada"))
	assert.False(t, a.Expanded("Germany"))
}

func TestAccordionTogglesAreIndependent(t *testing.T) {
	a := NewAccordion([]string{"United States", "Canada", "Germany"})

	a.Toggle("Canada")
	assert.True(t, a.Expanded("United States"))
	assert.True(t, a.Expanded("Canada"))
	assert.False(t, a.Expanded("Germany"))

	a.Toggle("United States")
	assert.False(t, a.Expanded("United States"))
	assert.True(t, a.Expanded("Canada"))
}

func TestAccordionSetAll(t *testing.T) {
	a := NewAccordion([]string{"United States", "Canada"})

	a.SetAll(true)
	assert.True(t, a.Expanded("United States"))
	assert.True(t, a.Expanded("Canada"))

	a.SetAll(false)
	assert.False(t, a.Expanded("United States"))
	assert.False(t, a.Expanded("Canada"))
}

func TestAssessTogglesDefaults(t *testing.T) {
	s := NewToggleSet("Assess")

	require.Len(t, s.Labels(), 32)
	assert.True(t, s.Enabled("Potential"))
	assert.True(t, s.Enabled("View Results/Download Reports"))

	for _, label := range []string{
		"Learning Agility",
		"Compare Participant against multiple Success Profiles",
		"Technical Skills Inventory",
		"The Inclusive Leader™ Situational Insight Tool",
	} {
		assert.False(t, s.Enabled(label), label)
	}
}

func TestToggleSetMutation(t *testing.T) {
	s := NewToggleSet("Assess")

	require.NoError(t, s.Set("Potential", false))
	assert.False(t, s.Enabled("Potential"))

	require.NoError(t, s.Flip("Learning Agility"))
	assert.True(t, s.Enabled("Learning Agility"))

	assert.Error(t, s.Set("Not A Feature", true))
}

func TestToggleSetUnknownProductIsEmpty(t *testing.T) {
	s := NewToggleSet("Pay & Markets")
	assert.Empty(t, s.Labels())
	assert.Error(t, s.Set("anything", true))
}

func TestToggleProductsExcludePayMarkets(t *testing.T) {
	products := ToggleProducts()

	assert.NotContains(t, products, "Pay & Markets")
	assert.Contains(t, products, "Assess")
	assert.Contains(t, products, "KF Architect")
}
