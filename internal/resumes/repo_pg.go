package resumes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"resume-builder/resume/document"
)

// PGRepo stores resumes in Postgres with the document in a JSONB column.
type PGRepo struct {
	DB *sql.DB
}

const resumeColumns = `id, user_id, title, template, data, hidden_sections, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *PGRepo) Create(ctx context.Context, res Resume) error {
	data, hidden, err := encodeJSON(res)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, `
INSERT INTO resumes (id, user_id, title, template, data, hidden_sections, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		res.ID, res.UserID, res.Title, string(res.Template), data, hidden, res.CreatedAt, res.UpdatedAt)
	return err
}

func (r *PGRepo) Get(ctx context.Context, userID, id string) (Resume, error) {
	row := r.DB.QueryRowContext(ctx, `
SELECT `+resumeColumns+`
FROM resumes
WHERE id = $1 AND user_id = $2`, id, userID)
	return scanResume(row)
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Resume, error) {
	if offset < 0 {
		offset = 0
	}
	var limitArg any
	if limit > 0 {
		limitArg = limit
	}
	rows, err := r.DB.QueryContext(ctx, `
SELECT `+resumeColumns+`
FROM resumes
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`, userID, limitArg, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Resume{}
	for rows.Next() {
		res, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

func (r *PGRepo) Update(ctx context.Context, res Resume) error {
	data, hidden, err := encodeJSON(res)
	if err != nil {
		return err
	}
	result, err := r.DB.ExecContext(ctx, `
UPDATE resumes
SET title = $3, template = $4, data = $5, hidden_sections = $6, updated_at = $7
WHERE id = $1 AND user_id = $2`,
		res.ID, res.UserID, res.Title, string(res.Template), data, hidden, res.UpdatedAt)
	if err != nil {
		return err
	}
	return expectOneRow(result)
}

func (r *PGRepo) Delete(ctx context.Context, userID, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM resumes WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	return expectOneRow(result)
}

func expectOneRow(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func encodeJSON(res Resume) ([]byte, []byte, error) {
	data, err := json.Marshal(nonNilDoc(res.Data))
	if err != nil {
		return nil, nil, fmt.Errorf("encode data: %w", err)
	}
	hidden := res.HiddenSections
	if hidden == nil {
		hidden = map[string]any{}
	}
	hiddenJSON, err := json.Marshal(hidden)
	if err != nil {
		return nil, nil, fmt.Errorf("encode hidden_sections: %w", err)
	}
	return data, hiddenJSON, nil
}

func scanResume(row rowScanner) (Resume, error) {
	var res Resume
	var template string
	var data, hidden []byte
	err := row.Scan(&res.ID, &res.UserID, &res.Title, &template, &data, &hidden, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}
	res.Template = Template(template)
	if len(data) > 0 {
		if err := json.Unmarshal(data, &res.Data); err != nil {
			return Resume{}, fmt.Errorf("decode data: %w", err)
		}
	}
	if len(hidden) > 0 {
		if err := json.Unmarshal(hidden, &res.HiddenSections); err != nil {
			return Resume{}, fmt.Errorf("decode hidden_sections: %w", err)
		}
	}
	return res, nil
}

func nonNilDoc(d document.Document) document.Document {
	if d == nil {
		return document.Document{}
	}
	return d
}
