package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"learnloop/internal/app/wizard"
)

// DraftStore persists onboarding drafts in PostgreSQL, one row per scratch
// key. The draft travels as a single jsonb document because the wizard's
// contract is read-merge-write on the whole record, never field patches.
type DraftStore struct {
	pool *pgxpool.Pool
}

// NewDraftStore builds a DraftStore on the shared connection pool.
func NewDraftStore(pool *pgxpool.Pool) *DraftStore {
	return &DraftStore{pool: pool}
}

// Load implements wizard.Store.
func (s *DraftStore) Load(ctx context.Context, key string) (wizard.Draft, bool, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx,
		`SELECT draft FROM onboarding_drafts WHERE scratch_key = $1`,
		key,
	).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return wizard.Draft{}, false, nil
	}
	if err != nil {
		return wizard.Draft{}, false, fmt.Errorf("failed to load draft: %w", err)
	}

	var d wizard.Draft
	if err := json.Unmarshal(raw, &d); err != nil {
		return wizard.Draft{}, false, fmt.Errorf("failed to decode draft: %w", err)
	}
	return d, true, nil
}

// Save implements wizard.Store. The upsert keeps the write a single round
// trip; last writer wins for the whole document.
func (s *DraftStore) Save(ctx context.Context, key string, d wizard.Draft) error {
	raw, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to encode draft: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO onboarding_drafts (scratch_key, draft)
		 VALUES ($1, $2)
		 ON CONFLICT (scratch_key)
		 DO UPDATE SET draft = EXCLUDED.draft, updated_at = now()`,
		key, raw,
	)
	if err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	return nil
}

// Clear implements wizard.Store. Clearing an absent draft is a no-op.
func (s *DraftStore) Clear(ctx context.Context, key string) error {
	_, err := s.pool.Exec(ctx,
		`DELETE FROM onboarding_drafts WHERE scratch_key = $1`,
		key,
	)
	if err != nil {
		return fmt.Errorf("failed to clear draft: %w", err)
	}
	return nil
}
