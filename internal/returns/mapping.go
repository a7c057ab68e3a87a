package returns

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/callil/tax-ui/internal/taxes"
	"github.com/callil/tax-ui/internal/workflow"
	"github.com/callil/tax-ui/pkg/repository"
)

const columns = "year, name, data, classifications, page_count, filename, storage_key, model_name, parsed_at, updated_at"

func scanRecord(s repository.Scanner) (Record, error) {
	var (
		r     Record
		data  repository.JSONB[taxes.TaxReturn]
		pages repository.JSONB[[]workflow.PageClassification]
		key   sql.NullString
	)

	err := s.Scan(
		&r.Year, &r.Name, &data, &pages, &r.PageCount,
		&r.Filename, &key, &r.Model, &r.ParsedAt, &r.UpdatedAt,
	)
	if err != nil {
		return r, err
	}

	r.Return = data.V
	r.Return.Normalize()
	r.Classifications = pages.V
	if r.Classifications == nil {
		r.Classifications = []workflow.PageClassification{}
	}
	r.StorageKey = key.String
	r.HasSource = key.Valid && key.String != ""

	return r, nil
}

func buildStorageKey(year int) string {
	return fmt.Sprintf("returns/%d/%s.pdf", year, uuid.New())
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
