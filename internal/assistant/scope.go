package assistant

import (
	"fmt"
	"strings"

	"github.com/stockline/stockline/internal/models"
	"github.com/stockline/stockline/internal/sqlguard"
)

// Scope is the tenant policy applied to a staff session. The set of
// implementations is closed: TenantScope and UnrestrictedScope.
type Scope interface {
	// Name labels the scope in logs and metrics.
	Name() string
	// PromptClause is the security paragraph of the staff prompt.
	PromptClause() string
	// Authorize approves or rejects a proposed query before execution.
	Authorize(sql string) error
	// StoreScope is the row-level-security context used for execution.
	StoreScope() models.QueryScope

	sealed()
}

// TenantScope restricts queries to a single tenant.
type TenantScope struct {
	TenantID string
}

// UnrestrictedScope allows queries across every tenant.
type UnrestrictedScope struct{}

// ScopeFor returns the scope strategy for sess.
func ScopeFor(sess models.Session) Scope {
	if sess.IsSuperAdmin() {
		return UnrestrictedScope{}
	}

	return TenantScope{TenantID: sess.TenantID}
}

func (TenantScope) Name() string { return "tenant" }

func (s TenantScope) PromptClause() string {
	return fmt.Sprintf(
		"Every query MUST include the filter %s on every tenant table it reads. "+
			"This rule is non-negotiable: queries without it are rejected and never run. "+
			"Never read data belonging to any other tenant.",
		sqlguard.Predicate(s.TenantID))
}

// Authorize rejects sql unless it carries the tenant's own predicate and
// leaves session settings alone.
func (s TenantScope) Authorize(sql string) error {
	if strings.TrimSpace(sql) == "" {
		return fmt.Errorf("%w: empty sql_query", models.ErrModel)
	}

	if sqlguard.TouchesSessionState(sql) {
		return fmt.Errorf("%w: query reaches session settings", models.ErrSecurityViolation)
	}

	if !sqlguard.HasTenantPredicate(sql, s.TenantID) {
		return fmt.Errorf("%w: query is not restricted to tenant %s", models.ErrSecurityViolation, s.TenantID)
	}

	return nil
}

func (s TenantScope) StoreScope() models.QueryScope { return models.TenantScope(s.TenantID) }

func (TenantScope) sealed() {}

func (UnrestrictedScope) Name() string { return "unrestricted" }

func (UnrestrictedScope) PromptClause() string {
	return "You are a super administrator. Queries may span all tenants without restriction; " +
		"include tenant_id in results when comparing tenants."
}

// Authorize approves any non-empty query that leaves session settings alone.
func (UnrestrictedScope) Authorize(sql string) error {
	if strings.TrimSpace(sql) == "" {
		return fmt.Errorf("%w: empty sql_query", models.ErrModel)
	}

	if sqlguard.TouchesSessionState(sql) {
		return fmt.Errorf("%w: query reaches session settings", models.ErrSecurityViolation)
	}

	return nil
}

func (UnrestrictedScope) StoreScope() models.QueryScope { return models.AllTenants() }

func (UnrestrictedScope) sealed() {}
