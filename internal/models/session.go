package models

import "regexp"

// Role is a caller's role within the application.
type Role string

// Known roles. Only RoleSuperAdmin is exempt from tenant scoping; every other
// value, including unknown ones, is treated as tenant-scoped.
const (
	RoleSuperAdmin Role = "super_admin"
	RoleAdmin      Role = "admin"
	RoleManager    Role = "manager"
	RoleStaff      Role = "staff"
)

// Session is the caller identity derived once per request.
type Session struct {
	UserID      string `json:"user_id"`
	TenantID    string `json:"tenant_id"`
	Role        Role   `json:"role"`
	DisplayName string `json:"display_name"`
}

// IsSuperAdmin reports whether the session may query across all tenants.
func (s Session) IsSuperAdmin() bool {
	return s.Role == RoleSuperAdmin
}

var tenantIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// ValidateTenantID checks that a tenant id is safe to embed in prompts and
// query patterns.
func ValidateTenantID(id string) error {
	if !tenantIDPattern.MatchString(id) {
		return ErrInvalidTenantID
	}

	return nil
}
