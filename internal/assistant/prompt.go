package assistant

import (
	"fmt"
	"strings"

	"github.com/stockline/stockline/internal/models"
)

// DefaultAppName is used when PromptConfig.AppName is empty.
const DefaultAppName = "Stockline Assistant"

// DefaultCatalog is the table catalogue used when live discovery is
// unavailable.
var DefaultCatalog = []models.TableSchema{
	{Name: "customers", Columns: []models.Column{
		{Name: "id", Type: "bigint"}, {Name: "tenant_id", Type: "text"}, {Name: "name", Type: "text"},
		{Name: "phone", Type: "text"}, {Name: "email", Type: "text"}, {Name: "address", Type: "text"},
		{Name: "created_at", Type: "timestamptz"},
	}},
	{Name: "products", Columns: []models.Column{
		{Name: "id", Type: "bigint"}, {Name: "tenant_id", Type: "text"}, {Name: "sku", Type: "text"},
		{Name: "name", Type: "text"}, {Name: "category", Type: "text"}, {Name: "unit_price", Type: "numeric"},
		{Name: "created_at", Type: "timestamptz"},
	}},
	{Name: "orders", Columns: []models.Column{
		{Name: "id", Type: "bigint"}, {Name: "tenant_id", Type: "text"}, {Name: "customer_id", Type: "bigint"},
		{Name: "status", Type: "text"}, {Name: "total_amount", Type: "numeric"}, {Name: "channel", Type: "text"},
		{Name: "created_at", Type: "timestamptz"},
	}},
	{Name: "order_items", Columns: []models.Column{
		{Name: "id", Type: "bigint"}, {Name: "tenant_id", Type: "text"}, {Name: "order_id", Type: "bigint"},
		{Name: "product_id", Type: "bigint"}, {Name: "quantity", Type: "integer"}, {Name: "unit_price", Type: "numeric"},
	}},
	{Name: "inventory", Columns: []models.Column{
		{Name: "id", Type: "bigint"}, {Name: "tenant_id", Type: "text"}, {Name: "product_id", Type: "bigint"},
		{Name: "warehouse", Type: "text"}, {Name: "quantity", Type: "integer"}, {Name: "reorder_level", Type: "integer"},
		{Name: "updated_at", Type: "timestamptz"},
	}},
}

// PromptConfig is built once per process and shared by every request.
type PromptConfig struct {
	AppName string
	Catalog []models.TableSchema
}

// Composer builds system prompts. It has no side effects.
type Composer struct {
	appName string
	catalog string
}

// NewComposer renders the catalogue once. An empty catalogue falls back to
// DefaultCatalog.
func NewComposer(cfg PromptConfig) *Composer {
	name := strings.TrimSpace(cfg.AppName)
	if name == "" {
		name = DefaultAppName
	}

	tables := cfg.Catalog
	if len(tables) == 0 {
		tables = DefaultCatalog
	}

	return &Composer{appName: name, catalog: renderCatalog(tables)}
}

func renderCatalog(tables []models.TableSchema) string {
	var b strings.Builder
	for _, t := range tables {
		cols := make([]string, 0, len(t.Columns))
		for _, c := range t.Columns {
			if c.Type == "" {
				cols = append(cols, c.Name)
				continue
			}
			cols = append(cols, c.Name+" "+c.Type)
		}
		fmt.Fprintf(&b, "- %s(%s)\n", t.Name, strings.Join(cols, ", "))
	}

	return strings.TrimRight(b.String(), "\n")
}

// Staff returns the system prompt for an internal staff session.
func (c *Composer) Staff(sess models.Session, scope Scope) string {
	name := sess.DisplayName
	if name == "" {
		name = sess.UserID
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are %s, the operations assistant of a distribution management system.\n", c.appName)
	fmt.Fprintf(&b, "You are helping %s (role: %s, tenant: %s).\n\n", name, sess.Role, sess.TenantID)
	b.WriteString("Answer directly when no data is needed. When the question needs data, call the ")
	fmt.Fprintf(&b, "%s tool with a single read-only PostgreSQL SELECT statement and a short description of what it fetches.\n", QueryToolName)
	b.WriteString("Never write INSERT, UPDATE, DELETE or DDL statements.\n\n")
	b.WriteString("Available tables:\n")
	b.WriteString(c.catalog)
	b.WriteString("\n\nSecurity rules:\n")
	b.WriteString(scope.PromptClause())

	return b.String()
}

// Customer returns the persona prompt for a customer conversation. It never
// describes the schema or offers tools. Known non-empty profile fields are
// included.
func (c *Composer) Customer(profile *models.CustomerProfile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are %s, a friendly sales assistant for a distribution business.\n", c.appName)
	b.WriteString("Help the customer with product questions and orders. Keep replies short and polite.\n")
	b.WriteString("If the customer wants to place an order, confirm the products and quantities they asked for.\n")

	if profile == nil {
		return b.String()
	}

	fields := []struct{ label, value string }{
		{"Name", profile.Name},
		{"Phone", profile.Phone},
		{"Email", profile.Email},
		{"Address", profile.Address},
	}

	var known []string
	for _, f := range fields {
		if v := strings.TrimSpace(f.value); v != "" {
			known = append(known, fmt.Sprintf("- %s: %s", f.label, v))
		}
	}
	if len(known) > 0 {
		b.WriteString("\nKnown customer details:\n")
		b.WriteString(strings.Join(known, "\n"))
		b.WriteString("\n")
	}

	return b.String()
}
