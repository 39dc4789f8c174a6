package roles

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/kfone/console/pkg/matrix"
)

// PostgresStore persists templates in PostgreSQL. Products and the flattened
// permission grid are stored as JSONB columns.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a store over an existing connection pool.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate creates the role_templates table when missing.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS role_templates (
			id          TEXT PRIMARY KEY,
			tenant_id   TEXT NOT NULL DEFAULT '',
			role_name   TEXT NOT NULL,
			user_type   TEXT NOT NULL,
			role_type   TEXT NOT NULL,
			products    JSONB NOT NULL,
			permissions JSONB NOT NULL,
			created_by  TEXT NOT NULL DEFAULT '',
			created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		return fmt.Errorf("failed to migrate role_templates: %w", err)
	}
	return nil
}

// Create inserts a template, assigning id and timestamp when unset.
func (s *PostgresStore) Create(ctx context.Context, tpl *Template) error {
	if tpl.ID == "" {
		tpl.ID = "role-" + uuid.NewString()
	}
	if tpl.CreatedAt.IsZero() {
		tpl.CreatedAt = time.Now().UTC()
	}

	products, err := json.Marshal(tpl.Products)
	if err != nil {
		return fmt.Errorf("failed to encode products: %w", err)
	}
	permissions, err := json.Marshal(tpl.Permissions)
	if err != nil {
		return fmt.Errorf("failed to encode permissions: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO role_templates (id, tenant_id, role_name, user_type, role_type, products, permissions, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		tpl.ID, tpl.TenantID, tpl.RoleName, tpl.UserType, tpl.RoleType,
		products, permissions, tpl.CreatedBy, tpl.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert role template: %w", err)
	}
	return nil
}

// Get looks a template up by id.
func (s *PostgresStore) Get(ctx context.Context, id string) (*Template, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, tenant_id, role_name, user_type, role_type, products, permissions, created_by, created_at
		FROM role_templates WHERE id = $1`, id)

	tpl, err := scanTemplate(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to get role template: %w", err)
	}
	return tpl, nil
}

// List returns templates for a tenant (empty tenantID matches all), newest
// first.
func (s *PostgresStore) List(ctx context.Context, tenantID string) ([]Template, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, tenant_id, role_name, user_type, role_type, products, permissions, created_by, created_at
		FROM role_templates
		WHERE $1 = '' OR tenant_id = $1
		ORDER BY created_at DESC`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list role templates: %w", err)
	}
	defer rows.Close()

	var out []Template
	for rows.Next() {
		tpl, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan role template: %w", err)
		}
		out = append(out, *tpl)
	}
	return out, rows.Err()
}

// Delete removes a template by id.
func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM role_templates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete role template: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete role template: %w", err)
	}
	if affected == 0 {
		return ErrTemplateNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTemplate(row rowScanner) (*Template, error) {
	var tpl Template
	var products, permissions []byte

	err := row.Scan(&tpl.ID, &tpl.TenantID, &tpl.RoleName, &tpl.UserType, &tpl.RoleType,
		&products, &permissions, &tpl.CreatedBy, &tpl.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(products, &tpl.Products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	tpl.Permissions = []matrix.Entry{}
	if err := json.Unmarshal(permissions, &tpl.Permissions); err != nil {
		return nil, fmt.Errorf("failed to decode permissions: %w", err)
	}
	return &tpl, nil
}
