package repository

import (
	"context"
	"time"

	"recoil-backend/internal/infra"
	"recoil-backend/internal/infra/db"

	"github.com/google/uuid"
)

type NotificationRepository struct {
	db db.DBTX
}

func NewNotificationRepository(pool db.DBTX) *NotificationRepository {
	return &NotificationRepository{db: pool}
}

func (r *NotificationRepository) CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.db.QueryRow(ctx,
		`INSERT INTO notification_jobs (kind, topic, payload, run_at, status)
		 VALUES ($1, $2, $3, $4, 'queued')
		 RETURNING id`,
		kind, topic, payload, runAt,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create notification job", err)
	}
	return id, nil
}

func (r *NotificationRepository) MarkSent(ctx context.Context, jobID uuid.UUID) error {
	_, err := r.db.Exec(ctx,
		`UPDATE notification_jobs
		 SET status = 'sent', attempts = attempts + 1, updated_at = now()
		 WHERE id = $1`,
		jobID,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to mark notification job sent", err)
	}
	return nil
}

func (r *NotificationRepository) MarkFailed(ctx context.Context, jobID uuid.UUID, lastError string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE notification_jobs
		 SET status = 'failed', attempts = attempts + 1, last_error = $2, updated_at = now()
		 WHERE id = $1`,
		jobID, lastError,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to mark notification job failed", err)
	}
	return nil
}
