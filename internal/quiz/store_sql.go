package quiz

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// SQLStore keeps the bank in the questions table. Aspects are stored as a
// JSON column, matching how the bank file nests them.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Load(ctx context.Context) ([]Question, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id,category,number,topic,description,aspects_json FROM questions ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	qs := []Question{}
	for rows.Next() {
		var q Question
		var aj string
		if err := rows.Scan(&q.ID, &q.Category, &q.Number, &q.Topic, &q.Description, &aj); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		if err := json.Unmarshal([]byte(aj), &q.Aspects); err != nil {
			return nil, fmt.Errorf("question %d aspects: %w", q.ID, err)
		}
		qs = append(qs, q)
	}
	return qs, rows.Err()
}

// Save replaces the whole bank in one transaction.
func (s *SQLStore) Save(ctx context.Context, qs []Question) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM questions`); err != nil {
		return fmt.Errorf("clear questions: %w", err)
	}
	for i, q := range qs {
		aspects := q.Aspects
		if aspects == nil {
			aspects = []Aspect{}
		}
		aj, err := json.Marshal(aspects)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO questions (id,position,category,number,topic,description,aspects_json)
			VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			q.ID, i, q.Category, q.Number, q.Topic, q.Description, string(aj)); err != nil {
			return fmt.Errorf("insert question %d: %w", q.ID, err)
		}
	}
	return tx.Commit()
}
