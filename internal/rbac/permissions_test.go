package rbac

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHasPermissionDenyByDefault(t *testing.T) {
	cases := []struct {
		name     string
		role     Role
		resource Resource
		action   Action
	}{
		{"unknown role", Role("ghost"), ResourceMenu, ActionRead},
		{"unknown resource", RoleSuperadmin, Resource("billing"), ActionRead},
		{"unknown action", RoleSuperadmin, ResourceMenu, Action("export")},
		{"staff cannot mutate menu", RoleStaff, ResourceMenu, ActionCreate},
		{"staff cannot read audit", RoleStaff, ResourceAudit, ActionRead},
		{"manager cannot manage users", RoleManager, ResourceUsers, ActionCreate},
		{"manager cannot delete tenant", RoleManager, ResourceTenant, ActionDelete},
		{"owner cannot delete tenant", RoleOwner, ResourceTenant, ActionDelete},
		{"empty everything", Role(""), Resource(""), Action("")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.False(t, HasPermission(tc.role, tc.resource, tc.action))
		})
	}
}

func TestHasPermissionGrants(t *testing.T) {
	require.True(t, HasPermission(RoleSuperadmin, ResourceTenant, ActionDelete))
	require.True(t, HasPermission(RoleOwner, ResourceUsers, ActionCreate))
	require.True(t, HasPermission(RoleManager, ResourceMenu, ActionReorder))
	require.True(t, HasPermission(RoleManager, ResourceSports, ActionSync))
	require.True(t, HasPermission(RoleStaff, ResourceMenu, ActionRead))
}

func TestHasPermissionEveryGrantedPairIsInTable(t *testing.T) {
	// Exhaustive sweep: anything granted must be an explicit table entry.
	resources := []Resource{ResourceMenu, ResourceSpecials, ResourceEvents, ResourceSpecialDays, ResourceUsers, ResourceAudit, ResourceTenant, ResourceSports, ResourceUploads}
	actionsList := []Action{ActionCreate, ActionRead, ActionUpdate, ActionDelete, ActionReorder, ActionSync}

	for _, role := range KnownRoles() {
		for _, resource := range resources {
			for _, action := range actionsList {
				granted := HasPermission(role, resource, action)
				_, inTable := permissionTable[role][resource][action]
				require.Equal(t, inTable, granted, "role=%s resource=%s action=%s", role, resource, action)
			}
		}
	}
}

func TestParseRole(t *testing.T) {
	require.Equal(t, RoleOwner, ParseRole("  Owner "))
	require.Equal(t, RoleSuperadmin, ParseRole("SUPERADMIN"))
	require.Equal(t, Role(""), ParseRole("administrator"))
	require.Equal(t, Role(""), ParseRole(""))
}

func TestOutranks(t *testing.T) {
	require.True(t, Outranks(RoleSuperadmin, RoleOwner))
	require.True(t, Outranks(RoleOwner, RoleManager))
	require.True(t, Outranks(RoleManager, RoleStaff))
	require.False(t, Outranks(RoleOwner, RoleOwner))
	require.False(t, Outranks(RoleStaff, RoleOwner))
	require.False(t, Outranks(Role("ghost"), RoleStaff))
	require.True(t, Outranks(RoleStaff, Role("ghost")))
}
