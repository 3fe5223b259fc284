package permissions

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spdeepak/rex-identity-server/internal/identity"
	"github.com/spdeepak/rex-identity-server/internal/permissions/repository"
)

func TestStorage_RolesHavePermission_SkipsQueryWithoutRoles(t *testing.T) {
	query := repository.NewMockQuerier(t)
	granted, err := NewStorage(query).RolesHavePermission(context.Background(), nil, []string{identity.RoleRead})
	assert.NoError(t, err)
	assert.False(t, granted)
}

func TestStorage_ListPermissionCodes(t *testing.T) {
	ctx := context.Background()

	t.Run("codes", func(t *testing.T) {
		query := repository.NewMockQuerier(t)
		query.On("ListUserPermissionCodes", ctx, int64(42)).Return([]string{identity.FlashcardRead, identity.RoleRead}, nil)
		codes, err := NewStorage(query).ListPermissionCodes(ctx, 42)
		assert.NoError(t, err)
		assert.Equal(t, []string{identity.FlashcardRead, identity.RoleRead}, codes)
	})
	t.Run("no codes", func(t *testing.T) {
		query := repository.NewMockQuerier(t)
		query.On("ListUserPermissionCodes", ctx, int64(42)).Return(nil, nil)
		codes, err := NewStorage(query).ListPermissionCodes(ctx, 42)
		assert.NoError(t, err)
		assert.NotNil(t, codes)
		assert.Empty(t, codes)
	})
	t.Run("error", func(t *testing.T) {
		query := repository.NewMockQuerier(t)
		query.On("ListUserPermissionCodes", ctx, int64(42)).Return(nil, errors.New("boom"))
		codes, err := NewStorage(query).ListPermissionCodes(ctx, 42)
		assert.Error(t, err)
		assert.Nil(t, codes)
	})
}
