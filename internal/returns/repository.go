package returns

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/callil/tax-ui/internal/taxes"
	"github.com/callil/tax-ui/internal/workflow"
	"github.com/callil/tax-ui/pkg/formatting"
	"github.com/callil/tax-ui/pkg/repository"
	"github.com/callil/tax-ui/pkg/storage"
)

type repo struct {
	db      *sql.DB
	storage storage.System
	runtime RuntimeFunc
	logger  *slog.Logger
}

// New returns the database-backed System. store may be nil, in which case
// uploaded PDFs are not archived.
func New(db *sql.DB, store storage.System, runtime RuntimeFunc, logger *slog.Logger) System {
	return &repo{
		db:      db,
		storage: store,
		runtime: runtime,
		logger:  logger.With("system", "returns"),
	}
}

func (r *repo) Handler(maxUploadSize int64) *Handler {
	return NewHandler(r, r.logger, maxUploadSize)
}

func (r *repo) All(ctx context.Context) (map[int]taxes.TaxReturn, error) {
	records, err := repository.QueryMany(
		ctx, r.db,
		"SELECT "+columns+" FROM tax_returns ORDER BY year",
		nil, scanRecord,
	)
	if err != nil {
		return nil, fmt.Errorf("query tax returns: %w", err)
	}

	result := make(map[int]taxes.TaxReturn, len(records))
	for _, rec := range records {
		result[rec.Year] = rec.Return
	}
	return result, nil
}

func (r *repo) Find(ctx context.Context, year int) (*Record, error) {
	rec, err := repository.QueryOne(
		ctx, r.db,
		"SELECT "+columns+" FROM tax_returns WHERE year = $1",
		[]any{year}, scanRecord,
	)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, err)
	}
	return &rec, nil
}

type saved struct {
	record  Record
	prevKey string
}

func (r *repo) Save(ctx context.Context, cmd SaveCommand) (*Record, error) {
	res := cmd.Result
	if res == nil || res.Return.Year <= 0 {
		return nil, ErrInvalidYear
	}
	year := res.Return.Year

	key := r.archive(ctx, year, cmd.Data)

	q := `
		INSERT INTO tax_returns(year, name, data, classifications, page_count, filename, storage_key, model_name, parsed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (year) DO UPDATE SET
			name = EXCLUDED.name,
			data = EXCLUDED.data,
			classifications = EXCLUDED.classifications,
			page_count = EXCLUDED.page_count,
			filename = EXCLUDED.filename,
			storage_key = EXCLUDED.storage_key,
			model_name = EXCLUDED.model_name,
			parsed_at = EXCLUDED.parsed_at,
			updated_at = NOW()
		RETURNING ` + columns

	args := []any{
		year,
		res.Return.Name,
		repository.JSONB[taxes.TaxReturn]{V: res.Return},
		repository.JSONB[[]workflow.PageClassification]{V: res.Classifications},
		res.PageCount,
		cmd.Filename,
		nullString(key),
		res.Model,
		res.CompletedAt,
	}

	out, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (saved, error) {
		var prev sql.NullString
		err := tx.QueryRowContext(
			ctx,
			"SELECT storage_key FROM tax_returns WHERE year = $1 FOR UPDATE",
			year,
		).Scan(&prev)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return saved{}, fmt.Errorf("lock previous return: %w", err)
		}

		rec, err := repository.QueryOne(ctx, tx, q, args, scanRecord)
		if err != nil {
			return saved{}, err
		}
		return saved{record: rec, prevKey: prev.String}, nil
	})

	if err != nil {
		r.discard(key)
		return nil, fmt.Errorf("save tax return %d: %w", year, err)
	}

	if out.prevKey != "" && out.prevKey != key {
		r.discard(out.prevKey)
	}

	r.logger.Info("tax return saved",
		"year", year,
		"pages", res.PageCount,
		"archived", key != "",
	)
	return &out.record, nil
}

func (r *repo) Delete(ctx context.Context, year int) error {
	var key sql.NullString
	err := r.db.QueryRowContext(
		ctx,
		"DELETE FROM tax_returns WHERE year = $1 RETURNING storage_key",
		year,
	).Scan(&key)
	if err != nil {
		return repository.MapError(err, ErrNotFound, err)
	}

	r.discard(key.String)

	r.logger.Info("tax return deleted", "year", year)
	return nil
}

func (r *repo) Source(ctx context.Context, year int) (io.ReadCloser, *Record, error) {
	rec, err := r.Find(ctx, year)
	if err != nil {
		return nil, nil, err
	}
	if r.storage == nil || !rec.HasSource {
		return nil, nil, ErrNoSource
	}

	body, err := r.storage.Download(ctx, rec.StorageKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, ErrNoSource
		}
		return nil, nil, fmt.Errorf("download source: %w", err)
	}
	return body, rec, nil
}

func (r *repo) Parse(ctx context.Context, cmd ParseCommand) (*Record, error) {
	rt, err := r.runtime(cmd.APIKey)
	if err != nil {
		return nil, err
	}

	r.logger.Info("parsing tax return",
		"filename", cmd.Filename,
		"size", formatting.FormatBytes(int64(len(cmd.Data)), 1),
	)

	result, err := workflow.Execute(ctx, rt, cmd.Data)
	if err != nil {
		return nil, err
	}

	return r.Save(ctx, SaveCommand{
		Filename: cmd.Filename,
		Data:     cmd.Data,
		Result:   result,
	})
}

func (r *repo) Classify(ctx context.Context, data []byte, apiKey string) (*Classification, error) {
	rt, err := r.runtime(apiKey)
	if err != nil {
		return nil, err
	}

	pages, count, err := workflow.Classify(ctx, rt, data)
	if err != nil {
		return nil, err
	}

	return &Classification{PageCount: count, Classifications: pages}, nil
}

// archive uploads data and returns its key, or "" when storage is disabled
// or the upload failed. A failed archive does not fail the save.
func (r *repo) archive(ctx context.Context, year int, data []byte) string {
	if r.storage == nil || len(data) == 0 {
		return ""
	}

	key := buildStorageKey(year)
	if err := r.storage.Upload(ctx, key, bytes.NewReader(data), "application/pdf"); err != nil {
		r.logger.Warn("source archive failed", "year", year, "error", err)
		return ""
	}
	return key
}

func (r *repo) discard(key string) {
	if r.storage == nil || key == "" {
		return
	}
	if err := r.storage.Delete(context.Background(), key); err != nil && !errors.Is(err, storage.ErrNotFound) {
		r.logger.Warn("source delete failed", "key", key, "error", err)
	}
}
