package rbac

import "strings"

// Role identifies one of the closed set of platform roles, ordered by privilege.
type Role string

// Platform roles, highest privilege first.
const (
	RoleSuperadmin Role = "superadmin"
	RoleOwner      Role = "owner"
	RoleManager    Role = "manager"
	RoleStaff      Role = "staff"
)

// Resource names the unit of permission checking.
type Resource string

// Resources managed through the admin API.
const (
	ResourceMenu        Resource = "menu"
	ResourceSpecials    Resource = "specials"
	ResourceEvents      Resource = "events"
	ResourceSpecialDays Resource = "special_days"
	ResourceUsers       Resource = "users"
	ResourceAudit       Resource = "audit"
	ResourceTenant      Resource = "tenant"
	ResourceSports      Resource = "sports"
	ResourceUploads     Resource = "uploads"
)

// Action names a verb performed against a resource.
type Action string

// Actions recognised by the permission table.
const (
	ActionCreate  Action = "create"
	ActionRead    Action = "read"
	ActionUpdate  Action = "update"
	ActionDelete  Action = "delete"
	ActionReorder Action = "reorder"
	ActionSync    Action = "sync"
)

type actionSet map[Action]struct{}

func actions(list ...Action) actionSet {
	set := make(actionSet, len(list))
	for _, a := range list {
		set[a] = struct{}{}
	}
	return set
}

var contentActions = actions(ActionCreate, ActionRead, ActionUpdate, ActionDelete, ActionReorder)

// permissionTable is the single source of truth for role capabilities.
// A (role, resource, action) triple absent from the table is denied.
var permissionTable = map[Role]map[Resource]actionSet{
	RoleSuperadmin: {
		ResourceMenu:        contentActions,
		ResourceSpecials:    contentActions,
		ResourceEvents:      contentActions,
		ResourceSpecialDays: contentActions,
		ResourceUsers:       actions(ActionCreate, ActionRead, ActionUpdate, ActionDelete),
		ResourceAudit:       actions(ActionRead),
		ResourceTenant:      actions(ActionCreate, ActionRead, ActionUpdate, ActionDelete),
		ResourceSports:      actions(ActionRead, ActionSync),
		ResourceUploads:     actions(ActionCreate, ActionRead),
	},
	RoleOwner: {
		ResourceMenu:        contentActions,
		ResourceSpecials:    contentActions,
		ResourceEvents:      contentActions,
		ResourceSpecialDays: contentActions,
		ResourceUsers:       actions(ActionCreate, ActionRead, ActionUpdate, ActionDelete),
		ResourceAudit:       actions(ActionRead),
		ResourceTenant:      actions(ActionRead, ActionUpdate),
		ResourceSports:      actions(ActionRead, ActionSync),
		ResourceUploads:     actions(ActionCreate, ActionRead),
	},
	RoleManager: {
		ResourceMenu:        contentActions,
		ResourceSpecials:    contentActions,
		ResourceEvents:      contentActions,
		ResourceSpecialDays: contentActions,
		ResourceAudit:       actions(ActionRead),
		ResourceSports:      actions(ActionRead, ActionSync),
		ResourceUploads:     actions(ActionCreate, ActionRead),
	},
	RoleStaff: {
		ResourceMenu:     actions(ActionRead),
		ResourceSpecials: actions(ActionRead),
		ResourceEvents:   actions(ActionRead),
		ResourceSports:   actions(ActionRead),
	},
}

var roleRank = map[Role]int{
	RoleSuperadmin: 4,
	RoleOwner:      3,
	RoleManager:    2,
	RoleStaff:      1,
}

// ParseRole normalises raw role input. Unknown values map to the empty role.
func ParseRole(raw string) Role {
	role := Role(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := roleRank[role]; !ok {
		return ""
	}
	return role
}

// HasPermission reports whether the role may perform the action on the resource.
// Unknown roles, resources or actions are always denied.
func HasPermission(role Role, resource Resource, action Action) bool {
	grants, ok := permissionTable[role]
	if !ok {
		return false
	}
	set, ok := grants[resource]
	if !ok {
		return false
	}
	_, ok = set[action]
	return ok
}

// Outranks reports whether role a carries strictly more privilege than role b.
// Unknown roles rank below every known role.
func Outranks(a, b Role) bool {
	return roleRank[a] > roleRank[b]
}

// KnownRoles returns the closed role set, highest privilege first.
func KnownRoles() []Role {
	return []Role{RoleSuperadmin, RoleOwner, RoleManager, RoleStaff}
}
