package audit

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Store persists audit events in a local SQLite database.
type Store struct {
	db *sql.DB
}

// NewStore opens (and migrates) the audit database at path. Use ":memory:"
// for an ephemeral store.
func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit database: %w", err)
	}
	// SQLite handles one writer; a single connection avoids table locks and
	// keeps ":memory:" databases from vanishing between connections.
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS audit_events (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp     DATETIME NOT NULL,
			event_type    TEXT NOT NULL,
			status        TEXT NOT NULL,
			operator      TEXT,
			session_id    TEXT,
			tenant_id     TEXT,
			resource_id   TEXT,
			request_id    TEXT,
			message       TEXT,
			error_message TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_audit_timestamp ON audit_events(timestamp);
		CREATE INDEX IF NOT EXISTS idx_audit_event_type ON audit_events(event_type);
		CREATE INDEX IF NOT EXISTS idx_audit_operator ON audit_events(operator);
	`)
	if err != nil {
		return fmt.Errorf("failed to migrate audit schema: %w", err)
	}
	return nil
}

// Record inserts an event. Implements Recorder.
func (s *Store) Record(ctx context.Context, event *Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO audit_events
			(timestamp, event_type, status, operator, session_id, tenant_id, resource_id, request_id, message, error_message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		event.Timestamp, string(event.EventType), string(event.Status),
		event.Operator, event.SessionID, event.TenantID, event.ResourceID,
		event.RequestID, event.Message, event.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("failed to record audit event: %w", err)
	}

	if id, err := res.LastInsertId(); err == nil {
		event.ID = id
	}
	return nil
}

// Search returns events matching the filter, newest first.
func (s *Store) Search(ctx context.Context, filter SearchFilter) ([]Event, error) {
	query := strings.Builder{}
	query.WriteString(`
		SELECT id, timestamp, event_type, status, operator, session_id, tenant_id, resource_id, request_id, message, error_message
		FROM audit_events`)

	where, args := buildWhere(filter)
	query.WriteString(where)
	query.WriteString(" ORDER BY timestamp DESC, id DESC")

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query.WriteString(" LIMIT ?")
	args = append(args, limit)
	if filter.Offset > 0 {
		query.WriteString(" OFFSET ?")
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search audit events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		var eventType, status string
		if err := rows.Scan(&e.ID, &e.Timestamp, &eventType, &status,
			&e.Operator, &e.SessionID, &e.TenantID, &e.ResourceID,
			&e.RequestID, &e.Message, &e.ErrorMessage); err != nil {
			return nil, fmt.Errorf("failed to scan audit event: %w", err)
		}
		e.EventType = EventType(eventType)
		e.Status = EventStatus(status)
		events = append(events, e)
	}
	return events, rows.Err()
}

// Count returns how many events match the filter.
func (s *Store) Count(ctx context.Context, filter SearchFilter) (int64, error) {
	where, args := buildWhere(filter)

	var count int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM audit_events"+where, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count audit events: %w", err)
	}
	return count, nil
}

// Prune deletes events older than the cutoff and reports how many went.
func (s *Store) Prune(ctx context.Context, olderThan time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM audit_events WHERE timestamp < ?", olderThan)
	if err != nil {
		return 0, fmt.Errorf("failed to prune audit events: %w", err)
	}
	return res.RowsAffected()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func buildWhere(filter SearchFilter) (string, []interface{}) {
	var clauses []string
	var args []interface{}

	if filter.Start != nil {
		clauses = append(clauses, "timestamp >= ?")
		args = append(args, *filter.Start)
	}
	if filter.End != nil {
		clauses = append(clauses, "timestamp < ?")
		args = append(args, *filter.End)
	}
	if filter.Operator != "" {
		clauses = append(clauses, "operator = ?")
		args = append(args, filter.Operator)
	}
	if filter.TenantID != "" {
		clauses = append(clauses, "tenant_id = ?")
		args = append(args, filter.TenantID)
	}
	if len(filter.EventTypes) > 0 {
		placeholders := make([]string, len(filter.EventTypes))
		for i, et := range filter.EventTypes {
			placeholders[i] = "?"
			args = append(args, string(et))
		}
		clauses = append(clauses, "event_type IN ("+strings.Join(placeholders, ", ")+")")
	}
	if filter.Status != "" {
		clauses = append(clauses, "status = ?")
		args = append(args, string(filter.Status))
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}
