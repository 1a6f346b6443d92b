package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rkinstitute/institute_mgmt_app/internal/apperrors"
	"github.com/rkinstitute/institute_mgmt_app/internal/core/domain"
	portsrepo "github.com/rkinstitute/institute_mgmt_app/internal/core/ports/repositories"
	"github.com/rkinstitute/institute_mgmt_app/internal/models"
	"github.com/rkinstitute/institute_mgmt_app/internal/utils/mapping"
)

const notificationColumns = `notification_id, kind, record_id, phone, message, document_url, status, attempts, last_error, sent_at, created_at, created_by, last_updated_at, last_updated_by`

type PgxNotificationRepository struct {
	BaseRepository
}

// newPgxNotificationRepository creates a new repository for the outbox.
func newPgxNotificationRepository(pool *pgxpool.Pool) *PgxNotificationRepository {
	return &PgxNotificationRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxNotificationRepository implements the facade
var _ portsrepo.NotificationRepositoryFacade = (*PgxNotificationRepository)(nil)

func scanNotification(row pgx.Row) (*models.Notification, error) {
	var m models.Notification
	var sentAt sql.NullTime
	err := row.Scan(
		&m.NotificationID,
		&m.Kind,
		&m.RecordID,
		&m.Phone,
		&m.Message,
		&m.DocumentURL,
		&m.Status,
		&m.Attempts,
		&m.LastError,
		&sentAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if sentAt.Valid {
		m.SentAt = &sentAt.Time
	}
	return &m, nil
}

// SaveNotification enqueues a new outbox row in pending status.
func (r *PgxNotificationRepository) SaveNotification(ctx context.Context, notification domain.Notification) error {
	m := mapping.ToModelNotification(notification)

	query := `
		INSERT INTO notifications (` + notificationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	var sentAt sql.NullTime
	if m.SentAt != nil {
		sentAt = sql.NullTime{Time: *m.SentAt, Valid: true}
	}
	_, err := r.Pool.Exec(ctx, query,
		m.NotificationID,
		m.Kind,
		m.RecordID,
		m.Phone,
		m.Message,
		m.DocumentURL,
		m.Status,
		m.Attempts,
		m.LastError,
		sentAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to enqueue notification %s: %w", m.NotificationID, err)
	}
	return nil
}

// FindNotificationByID retrieves an outbox row by its identifier.
func (r *PgxNotificationRepository) FindNotificationByID(ctx context.Context, notificationID string) (*domain.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE notification_id = $1;`

	m, err := scanNotification(r.Pool.QueryRow(ctx, query, notificationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find notification %s: %w", notificationID, err)
	}
	d := mapping.ToDomainNotification(*m)
	return &d, nil
}

// ClaimPending atomically moves up to limit claimable rows to processing and
// returns them. FOR UPDATE SKIP LOCKED keeps concurrent workers from claiming
// the same rows; stale processing rows are reclaimed after staleAfter.
func (r *PgxNotificationRepository) ClaimPending(ctx context.Context, limit int, staleAfter time.Duration) ([]domain.Notification, error) {
	query := `
		UPDATE notifications
		SET status = 'processing', attempts = attempts + 1, last_updated_at = now()
		WHERE notification_id IN (
			SELECT notification_id FROM notifications
			WHERE status = 'pending'
			   OR (status = 'processing' AND last_updated_at < now() - $2::interval)
			ORDER BY created_at
			LIMIT $1
			FOR UPDATE SKIP LOCKED
		)
		RETURNING ` + notificationColumns + `;
	`
	rows, err := r.Pool.Query(ctx, query, limit, staleAfter.String())
	if err != nil {
		return nil, fmt.Errorf("failed to claim pending notifications: %w", err)
	}
	defer rows.Close()

	var claimed []models.Notification
	for rows.Next() {
		m, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan claimed notification: %w", err)
		}
		claimed = append(claimed, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading claimed notifications: %w", err)
	}
	return mapping.ToDomainNotificationSlice(claimed), nil
}

// MarkSent records a successful delivery.
func (r *PgxNotificationRepository) MarkSent(ctx context.Context, notificationID string, now time.Time) error {
	query := `
		UPDATE notifications
		SET status = 'sent', sent_at = $2, last_error = '', last_updated_at = $2
		WHERE notification_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, notificationID, now)
	if err != nil {
		return fmt.Errorf("failed to mark notification %s sent: %w", notificationID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// MarkFailed records a failed delivery attempt with its error.
func (r *PgxNotificationRepository) MarkFailed(ctx context.Context, notificationID string, deliveryError string, now time.Time) error {
	query := `
		UPDATE notifications
		SET status = 'failed', last_error = $2, last_updated_at = $3
		WHERE notification_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, notificationID, deliveryError, now)
	if err != nil {
		return fmt.Errorf("failed to mark notification %s failed: %w", notificationID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
