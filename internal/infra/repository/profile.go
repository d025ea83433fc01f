package repository

import (
	"context"

	"recoil-backend/internal/infra"
	"recoil-backend/internal/infra/db"
)

type ProfileRepository struct {
	db db.DBTX
}

func NewProfileRepository(pool db.DBTX) *ProfileRepository {
	return &ProfileRepository{db: pool}
}

func (r *ProfileRepository) ListAdminEmails(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT email FROM profiles WHERE role = 'admin'`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list admin emails", err)
	}
	defer rows.Close()

	var emails []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, infra.WrapRepoErr("failed to scan admin email", err)
		}
		emails = append(emails, email)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read admin emails", err)
	}
	return emails, nil
}
