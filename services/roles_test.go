package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-dms-backend/apperr"
	"go-dms-backend/models"
)

func TestCreateRole(t *testing.T) {
	env := setupTestEnv(t)
	admin := env.signup(t, "Ada Admin", "ada@x.com", models.RoleAdmin)
	jane := env.signup(t, "Jane Doe", "jane@x.com", models.RoleRegular)
	ctx := context.Background()

	role, err := env.roles.Create(ctx, admin, RoleInput{RoleType: " editor "})
	require.NoError(t, err)
	assert.Equal(t, "editor", role.RoleType)

	_, err = env.roles.Create(ctx, admin, RoleInput{RoleType: "editor"})
	assert.True(t, apperr.Is(err, apperr.KindConflict))
	assert.Equal(t, "This Role already exists!", apperr.Message(err))

	_, err = env.roles.Create(ctx, jane, RoleInput{RoleType: "reviewer"})
	assert.True(t, apperr.Is(err, apperr.KindForbidden))

	for in, msg := range map[string]string{
		"":          "roleType field is required.",
		"x":         "roleType must be at least 2 characters.",
		"editor 2":  "roleType may contain only letters and spaces.",
		"a_b_c_d_e": "roleType may contain only letters and spaces.",
	} {
		_, err := env.roles.Create(ctx, admin, RoleInput{RoleType: in})
		assert.True(t, apperr.Is(err, apperr.KindValidation), in)
		assert.Equal(t, msg, apperr.Message(err), in)
	}
}

func TestListRoles(t *testing.T) {
	env := setupTestEnv(t)

	roles, err := env.roles.List(context.Background())
	require.NoError(t, err)
	var names []string
	for _, r := range roles {
		names = append(names, r.RoleType)
	}
	assert.Equal(t, []string{models.RoleAdmin, models.RoleRegular, models.RoleSuperUser}, names)
}
