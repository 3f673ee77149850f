package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/stockline/stockline/internal/models"
)

// CustomerStore looks up customer profiles for the customer persona.
type CustomerStore struct {
	Base
}

// NewCustomerStore creates a CustomerStore.
func NewCustomerStore(base Base) *CustomerStore {
	return &CustomerStore{Base: base}
}

// FindProfile returns the customer identified by customerID, or by phone when
// no id is given, within tenantID. A customer that does not exist yields
// (nil, nil).
func (s *CustomerStore) FindProfile(ctx context.Context, tenantID, customerID, phone string) (*models.CustomerProfile, error) {
	if customerID == "" && phone == "" {
		return nil, nil
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginReadTx(ctx, models.TenantScope(tenantID))
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck // read-only tx, rollback is cleanup.

	var row pgx.Row
	if customerID != "" {
		id, convErr := strconv.ParseInt(customerID, 10, 64)
		if convErr != nil {
			return nil, nil
		}
		row = tx.QueryRow(ctx,
			`SELECT name, phone, email, address FROM customers WHERE tenant_id = $1 AND id = $2`,
			tenantID, id)
	} else {
		row = tx.QueryRow(ctx,
			`SELECT name, phone, email, address FROM customers WHERE tenant_id = $1 AND phone = $2 ORDER BY id LIMIT 1`,
			tenantID, phone)
	}

	var p models.CustomerProfile
	var phoneCol, email, address *string
	err = row.Scan(&p.Name, &phoneCol, &email, &address)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("looking up customer: %w", err)
	}

	p.Phone = deref(phoneCol)
	p.Email = deref(email)
	p.Address = deref(address)

	return &p, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
