package redis

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/trigger/internal/dashboard/domain"
	"github.com/aussiebroadwan/trigger/internal/dashboard/store"
	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

const (
	settingKeyPrefix = "_trigger_cfg_"
	submissionsKey   = "_trigger_submissions"

	// maxSubmissions caps the audit list; older entries are trimmed on write.
	maxSubmissions = 1000
)

// Store keeps settings as plain string keys and submissions as a capped list.
// Redis has no schema, so ApplyMigrations is a no-op.
type Store struct {
	cli *redis.Client
}

func NewStore(cli *redis.Client) *Store {
	return &Store{cli: cli}
}

// Open connects with the given options.
func Open(opts *redis.Options) *Store {
	return NewStore(redis.NewClient(opts))
}

func (s *Store) ApplyMigrations() error { return nil }

func (s *Store) Close() error { return s.cli.Close() }

func (s *Store) Ping(ctx context.Context) error {
	return s.cli.Ping(ctx).Err()
}

func (s *Store) Settings() store.Settings       { return &settingsRepo{cli: s.cli} }
func (s *Store) Submissions() store.Submissions { return &submissionsRepo{cli: s.cli} }

type settingsRepo struct {
	cli *redis.Client
}

func (r *settingsRepo) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := r.cli.Get(ctx, settingKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, store.ErrNotFound
	}
	return v, err
}

func (r *settingsRepo) Put(ctx context.Context, key string, value []byte) error {
	return r.cli.Set(ctx, settingKeyPrefix+key, value, 0).Err()
}

func (r *settingsRepo) Delete(ctx context.Context, key string) error {
	return r.cli.Del(ctx, settingKeyPrefix+key).Err()
}

type submissionsRepo struct {
	cli *redis.Client
}

func (r *submissionsRepo) Record(ctx context.Context, s domain.Submission) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}

	_, err = r.cli.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, submissionsKey, raw)
		pipe.LTrim(ctx, submissionsKey, 0, maxSubmissions-1)
		return nil
	})
	return err
}

func (r *submissionsRepo) ListRecent(ctx context.Context, limit int) ([]domain.Submission, error) {
	if limit <= 0 {
		return nil, nil
	}

	items, err := r.cli.LRange(ctx, submissionsKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	out := make([]domain.Submission, 0, len(items))
	for _, item := range items {
		var s domain.Submission
		if err := json.Unmarshal([]byte(item), &s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// PruneBefore drops entries from the tail of the list, where the oldest
// submissions sit, until it reaches one created at or after cutoff.
func (r *submissionsRepo) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	var removed int64
	for {
		tail, err := r.cli.LIndex(ctx, submissionsKey, -1).Result()
		if errors.Is(err, redis.Nil) {
			return removed, nil
		}
		if err != nil {
			return removed, err
		}

		var s domain.Submission
		if err := json.Unmarshal([]byte(tail), &s); err != nil {
			return removed, err
		}
		if !s.CreatedAt.Before(cutoff) {
			return removed, nil
		}

		n, err := r.cli.LRem(ctx, submissionsKey, -1, tail).Result()
		if err != nil {
			return removed, err
		}
		removed += n
	}
}
