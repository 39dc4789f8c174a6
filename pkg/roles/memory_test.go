package roles

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kfone/console/pkg/catalog"
	"github.com/kfone/console/pkg/matrix"
)

func TestMemoryStoreCreateAndGet(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	tpl := &Template{
		TenantID: "tenant-1",
		RoleName: "QA Lead",
		UserType: GenericUsers,
		RoleType: RoleUser,
		Products: []string{"Assess"},
		Permissions: []matrix.Entry{
			{Product: "Assess", Category: "Talent Suite resources", Resource: "Campaign", Permission: catalog.PermissionView},
		},
	}
	require.NoError(t, s.Create(ctx, tpl))
	assert.NotEmpty(t, tpl.ID)
	assert.False(t, tpl.CreatedAt.IsZero())

	got, err := s.Get(ctx, tpl.ID)
	require.NoError(t, err)
	assert.Equal(t, "QA Lead", got.RoleName)
	assert.Len(t, got.Permissions, 1)
}

func TestMemoryStoreGetMissing(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestMemoryStoreListNewestFirstAndTenantFilter(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, &Template{TenantID: "a", RoleName: "First"}))
	require.NoError(t, s.Create(ctx, &Template{TenantID: "b", RoleName: "Second"}))
	require.NoError(t, s.Create(ctx, &Template{TenantID: "a", RoleName: "Third"}))

	all, err := s.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Third", all[0].RoleName)

	onlyA, err := s.List(ctx, "a")
	require.NoError(t, err)
	require.Len(t, onlyA, 2)
	assert.Equal(t, "Third", onlyA[0].RoleName)
	assert.Equal(t, "First", onlyA[1].RoleName)
}

func TestMemoryStoreDelete(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	tpl := &Template{RoleName: "Temp"}
	require.NoError(t, s.Create(ctx, tpl))
	require.NoError(t, s.Delete(ctx, tpl.ID))

	_, err := s.Get(ctx, tpl.ID)
	assert.ErrorIs(t, err, ErrTemplateNotFound)
	assert.ErrorIs(t, s.Delete(ctx, tpl.ID), ErrTemplateNotFound)
}

func TestBuiltInTemplates(t *testing.T) {
	builtins := BuiltInTemplates()

	require.Len(t, builtins, 3)
	for _, tpl := range builtins {
		assert.NotEmpty(t, tpl.ID)
		assert.NotEmpty(t, tpl.RoleName)
		assert.NotEmpty(t, tpl.Products)
	}

	s := NewMemoryStoreWithBuiltins()
	all, err := s.List(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
