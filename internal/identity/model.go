package identity

import (
	"slices"
	"time"
)

const (
	RoleRootAdmin      = "RootAdmin"
	RoleAdmin          = "Admin"
	RoleContentCreator = "ContentCreator"
)

// Principal is the authenticated caller of a single request. It is never persisted.
type Principal struct {
	ID          int64    `json:"id"`
	Email       *string  `json:"email,omitempty"`
	Roles       []string `json:"roles"`
	Permissions []string `json:"permissions"`
}

func (p Principal) HasRole(name string) bool {
	return slices.Contains(p.Roles, name)
}

func (p Principal) HasAnyRole(names ...string) bool {
	return slices.ContainsFunc(names, p.HasRole)
}

type Audit struct {
	CreatedByID *int64    `json:"created_by_id,omitempty"`
	UpdatedByID *int64    `json:"updated_by_id,omitempty"`
	CreatedOn   time.Time `json:"created_on"`
	UpdatedOn   time.Time `json:"updated_on"`
	IsActived   bool      `json:"is_actived"`
}

type Role struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Audit
}

type Permission struct {
	ID          int64   `json:"id"`
	Code        string  `json:"code"`
	Module      string  `json:"module"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Audit
}

type UserRole struct {
	ID       int64  `json:"id"`
	UserID   int64  `json:"user_id"`
	RoleID   int64  `json:"role_id"`
	RoleName string `json:"role_name"`
	Audit
}

type RolePermission struct {
	ID             int64  `json:"id"`
	RoleID         int64  `json:"role_id"`
	PermissionID   int64  `json:"permission_id"`
	PermissionCode string `json:"permission_code"`
	Audit
}

type UserPermission struct {
	ID             int64  `json:"id"`
	UserID         int64  `json:"user_id"`
	PermissionID   int64  `json:"permission_id"`
	PermissionCode string `json:"permission_code"`
	Audit
}

type User struct {
	ID           int64
	Email        string
	DisplayName  string
	PasswordHash string
	IsActived    bool
}

func RoleIDs(roles []Role) []int64 {
	ids := make([]int64, len(roles))
	for i, role := range roles {
		ids[i] = role.ID
	}
	return ids
}

func RoleNames(roles []Role) []string {
	names := make([]string, len(roles))
	for i, role := range roles {
		names[i] = role.Name
	}
	return names
}
