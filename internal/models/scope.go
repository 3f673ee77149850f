package models

// QueryScope selects the row-level-security context of a store transaction.
type QueryScope struct {
	// TenantID restricts rows to one tenant. Ignored when Unrestricted is set.
	TenantID string
	// Unrestricted lifts tenant isolation. Super-admin sessions only.
	Unrestricted bool
}

// TenantScope returns a scope restricted to tenantID.
func TenantScope(tenantID string) QueryScope {
	return QueryScope{TenantID: tenantID}
}

// AllTenants returns the unrestricted scope.
func AllTenants() QueryScope {
	return QueryScope{Unrestricted: true}
}
