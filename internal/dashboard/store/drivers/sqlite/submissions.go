package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/trigger/internal/dashboard/domain"
)

type submissionsRepo struct {
	db *sql.DB
}

func (r *submissionsRepo) Record(ctx context.Context, s domain.Submission) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO submissions (
			id, process_type, market_code, file_name, file_size,
			status, message, remote_id, error, upstream_status, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.ProcessType, s.MarketCode, s.FileName, s.FileSize,
		s.Status, s.Message, s.RemoteID, s.Error, s.UpstreamStatus, s.CreatedAt.UnixMilli(),
	)
	return err
}

func (r *submissionsRepo) ListRecent(ctx context.Context, limit int) ([]domain.Submission, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, process_type, market_code, file_name, file_size,
		       status, message, remote_id, error, upstream_status, created_at
		FROM submissions
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Submission
	for rows.Next() {
		var (
			s         domain.Submission
			createdAt int64
		)
		if err := rows.Scan(
			&s.ID, &s.ProcessType, &s.MarketCode, &s.FileName, &s.FileSize,
			&s.Status, &s.Message, &s.RemoteID, &s.Error, &s.UpstreamStatus, &createdAt,
		); err != nil {
			return nil, err
		}
		s.CreatedAt = time.UnixMilli(createdAt).UTC()
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *submissionsRepo) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM submissions WHERE created_at < ?`, cutoff.UnixMilli())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
