package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/walkline/queue-service/internal/core/domain"
	"github.com/walkline/queue-service/internal/core/ports"
)

// SQLRepository is the Postgres implementation of the repository ports.
// Queue writes replace the aggregate's entry rows inside one transaction,
// together with the service row and the outbox event, so a renumbering is
// atomic and the outbox never disagrees with state.
type SQLRepository struct {
	db *sql.DB
}

var _ ports.ServiceRepository = (*SQLRepository)(nil)
var _ ports.QueueRepository = (*SQLRepository)(nil)
var _ ports.UserRepository = (*SQLRepository)(nil)

func NewSQLRepository(db *sql.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) CreateService(ctx context.Context, svc domain.ServiceLocation) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO services (id, owner, name, address, capacity, status, estimated_service_time,
			weekday_start, weekday_end, weekend_start, weekend_end, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		svc.ServiceID, svc.Owner, svc.Name, svc.Address, svc.Capacity, svc.Status,
		svc.EstimatedServiceTime, hourOrNull(svc.WeekdayHours, false), hourOrNull(svc.WeekdayHours, true),
		hourOrNull(svc.WeekendHours, false), hourOrNull(svc.WeekendHours, true), svc.CreatedAt,
	)
	return err
}

func (r *SQLRepository) GetService(ctx context.Context, serviceID string) (*domain.ServiceLocation, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, owner, name, address, capacity, status, estimated_service_time,
			weekday_start, weekday_end, weekend_start, weekend_end, created_at
		FROM services WHERE id = $1`, serviceID)
	svc, err := scanService(row)
	if err == sql.ErrNoRows {
		return nil, domain.ErrServiceNotFound
	}
	if err != nil {
		return nil, err
	}
	return svc, nil
}

func (r *SQLRepository) UpdateService(ctx context.Context, svc domain.ServiceLocation) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE services SET name = $2, address = $3, capacity = $4, status = $5,
			estimated_service_time = $6, weekday_start = $7, weekday_end = $8,
			weekend_start = $9, weekend_end = $10
		WHERE id = $1`,
		svc.ServiceID, svc.Name, svc.Address, svc.Capacity, svc.Status,
		svc.EstimatedServiceTime, hourOrNull(svc.WeekdayHours, false), hourOrNull(svc.WeekdayHours, true),
		hourOrNull(svc.WeekendHours, false), hourOrNull(svc.WeekendHours, true),
	)
	if err != nil {
		return err
	}
	return requireRow(res, domain.ErrServiceNotFound)
}

func (r *SQLRepository) DeleteService(ctx context.Context, serviceID string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM services WHERE id = $1", serviceID)
	if err != nil {
		return err
	}
	return requireRow(res, domain.ErrServiceNotFound)
}

func (r *SQLRepository) ListServices(ctx context.Context) ([]domain.ServiceLocation, error) {
	return r.queryServices(ctx, `
		SELECT id, owner, name, address, capacity, status, estimated_service_time,
			weekday_start, weekday_end, weekend_start, weekend_end, created_at
		FROM services ORDER BY created_at`)
}

func (r *SQLRepository) ListServicesByOwner(ctx context.Context, owner string) ([]domain.ServiceLocation, error) {
	return r.queryServices(ctx, `
		SELECT id, owner, name, address, capacity, status, estimated_service_time,
			weekday_start, weekday_end, weekend_start, weekend_end, created_at
		FROM services WHERE owner = $1 ORDER BY created_at`, owner)
}

func (r *SQLRepository) CreateQueue(ctx context.Context, q domain.Queue, svc domain.ServiceLocation, outboxPayload []byte) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO queues (id, service_id, status, start_time, current_serving_number)
		VALUES ($1, $2, $3, $4, $5)`,
		q.QueueID, q.ServiceID, q.Status, q.StartTime, q.CurrentServingNumber,
	)
	if err != nil {
		return err
	}

	if err := updateServiceTx(ctx, tx, svc); err != nil {
		return err
	}
	if err := insertOutbox(ctx, tx, outboxPayload); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *SQLRepository) GetQueue(ctx context.Context, queueID string) (*domain.Queue, error) {
	var q domain.Queue
	err := r.db.QueryRowContext(ctx, `
		SELECT id, service_id, status, start_time, current_serving_number
		FROM queues WHERE id = $1`, queueID,
	).Scan(&q.QueueID, &q.ServiceID, &q.Status, &q.StartTime, &q.CurrentServingNumber)
	if err == sql.ErrNoRows {
		return nil, domain.ErrQueueNotFound
	}
	if err != nil {
		return nil, err
	}
	if q.Entries, err = r.queueEntries(ctx, queueID); err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *SQLRepository) UpdateQueue(ctx context.Context, q domain.Queue, outboxPayload []byte) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := updateQueueTx(ctx, tx, q); err != nil {
		return err
	}
	if err := insertOutbox(ctx, tx, outboxPayload); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *SQLRepository) UpdateQueueAndService(ctx context.Context, q domain.Queue, svc domain.ServiceLocation, outboxPayload []byte) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := updateQueueTx(ctx, tx, q); err != nil {
		return err
	}
	if err := updateServiceTx(ctx, tx, svc); err != nil {
		return err
	}
	if err := insertOutbox(ctx, tx, outboxPayload); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *SQLRepository) RunningQueueForService(ctx context.Context, serviceID string) (*domain.Queue, error) {
	var queueID string
	err := r.db.QueryRowContext(ctx,
		"SELECT id FROM queues WHERE service_id = $1 AND status != 'stopped'", serviceID,
	).Scan(&queueID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r.GetQueue(ctx, queueID)
}

func (r *SQLRepository) ListRunningQueues(ctx context.Context) ([]domain.Queue, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id FROM queues WHERE status != 'stopped' ORDER BY start_time")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	queues := make([]domain.Queue, 0, len(ids))
	for _, id := range ids {
		q, err := r.GetQueue(ctx, id)
		if err != nil {
			return nil, err
		}
		queues = append(queues, *q)
	}
	return queues, nil
}

func (r *SQLRepository) GetProfile(ctx context.Context, principal string) (*domain.UserProfile, error) {
	var p domain.UserProfile
	err := r.db.QueryRowContext(ctx,
		"SELECT principal, name, role FROM user_profiles WHERE principal = $1", principal,
	).Scan(&p.Principal, &p.Name, &p.Role)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *SQLRepository) SaveProfile(ctx context.Context, profile domain.UserProfile) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO user_profiles (principal, name, role) VALUES ($1, $2, $3)
		ON CONFLICT (principal) DO UPDATE SET name = EXCLUDED.name, role = EXCLUDED.role`,
		profile.Principal, profile.Name, profile.Role,
	)
	return err
}

func (r *SQLRepository) GetAdminRole(ctx context.Context, principal string) (domain.AdminRole, error) {
	var role domain.AdminRole
	err := r.db.QueryRowContext(ctx,
		"SELECT role FROM admin_roles WHERE principal = $1", principal,
	).Scan(&role)
	if err == sql.ErrNoRows {
		return domain.AdminRoleGuest, nil
	}
	if err != nil {
		return "", err
	}
	return role, nil
}

func (r *SQLRepository) SetAdminRole(ctx context.Context, principal string, role domain.AdminRole) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO admin_roles (principal, role) VALUES ($1, $2)
		ON CONFLICT (principal) DO UPDATE SET role = EXCLUDED.role`,
		principal, role,
	)
	return err
}

func (r *SQLRepository) queueEntries(ctx context.Context, queueID string) ([]domain.QueueEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT customer_id, join_time, position, estimated_wait_time
		FROM queue_entries WHERE queue_id = $1 ORDER BY position`, queueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.QueueEntry
	for rows.Next() {
		var e domain.QueueEntry
		if err := rows.Scan(&e.CustomerID, &e.JoinTime, &e.Position, &e.EstimatedWaitTime); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *SQLRepository) queryServices(ctx context.Context, query string, args ...any) ([]domain.ServiceLocation, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	services := make([]domain.ServiceLocation, 0)
	for rows.Next() {
		svc, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		services = append(services, *svc)
	}
	return services, rows.Err()
}

// updateQueueTx rewrites the queue row and replaces its entry rows so
// positions land atomically.
func updateQueueTx(ctx context.Context, tx *sql.Tx, q domain.Queue) error {
	res, err := tx.ExecContext(ctx,
		"UPDATE queues SET status = $2, current_serving_number = $3 WHERE id = $1",
		q.QueueID, q.Status, q.CurrentServingNumber,
	)
	if err != nil {
		return err
	}
	if err := requireRow(res, domain.ErrQueueNotFound); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM queue_entries WHERE queue_id = $1", q.QueueID); err != nil {
		return err
	}
	for _, e := range q.Entries {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO queue_entries (queue_id, customer_id, join_time, position, estimated_wait_time)
			VALUES ($1, $2, $3, $4, $5)`,
			q.QueueID, e.CustomerID, e.JoinTime, e.Position, e.EstimatedWaitTime,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func updateServiceTx(ctx context.Context, tx *sql.Tx, svc domain.ServiceLocation) error {
	res, err := tx.ExecContext(ctx,
		"UPDATE services SET status = $2 WHERE id = $1", svc.ServiceID, svc.Status)
	if err != nil {
		return err
	}
	return requireRow(res, domain.ErrServiceNotFound)
}

// insertOutbox stores the event for the relay. A trigger on outbox_events
// raises the NOTIFY the relay listens on.
func insertOutbox(ctx context.Context, tx *sql.Tx, payload []byte) error {
	if payload == nil {
		return nil
	}
	_, err := tx.ExecContext(ctx, `
		INSERT INTO outbox_events (id, event_type, payload, created_at)
		VALUES ($1, 'queue_event', $2, NOW())`,
		uuid.NewString(), payload,
	)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanService(row rowScanner) (*domain.ServiceLocation, error) {
	var svc domain.ServiceLocation
	var wdStart, wdEnd, weStart, weEnd sql.NullInt64
	err := row.Scan(&svc.ServiceID, &svc.Owner, &svc.Name, &svc.Address, &svc.Capacity,
		&svc.Status, &svc.EstimatedServiceTime, &wdStart, &wdEnd, &weStart, &weEnd, &svc.CreatedAt)
	if err != nil {
		return nil, err
	}
	if wdStart.Valid && wdEnd.Valid {
		svc.WeekdayHours = &domain.ServiceHours{StartHour: int(wdStart.Int64), EndHour: int(wdEnd.Int64)}
	}
	if weStart.Valid && weEnd.Valid {
		svc.WeekendHours = &domain.ServiceHours{StartHour: int(weStart.Int64), EndHour: int(weEnd.Int64)}
	}
	return &svc, nil
}

func hourOrNull(h *domain.ServiceHours, end bool) sql.NullInt64 {
	if h == nil {
		return sql.NullInt64{}
	}
	if end {
		return sql.NullInt64{Int64: int64(h.EndHour), Valid: true}
	}
	return sql.NullInt64{Int64: int64(h.StartHour), Valid: true}
}

func requireRow(res sql.Result, missing error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return missing
	}
	return nil
}
