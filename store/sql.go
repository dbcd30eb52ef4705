// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/danielhkuo/product-vote/db"
	"github.com/danielhkuo/product-vote/models"
)

// SQLBackend stores votes in the vote table of a SQLite or PostgreSQL database
type SQLBackend struct {
	db     *sql.DB
	dbType string
}

// NewSQLBackend wraps an open connection. The schema must already exist.
func NewSQLBackend(conn *sql.DB, dbType string) *SQLBackend {
	return &SQLBackend{db: conn, dbType: dbType}
}

// OpenSQLBackend connects to the database and creates the schema
func OpenSQLBackend(dbType, url string) (*SQLBackend, error) {
	conn, err := db.Open(dbType, url)
	if err != nil {
		return nil, err
	}

	if err := db.CreateSchema(conn); err != nil {
		conn.Close()
		return nil, err
	}

	return NewSQLBackend(conn, dbType), nil
}

func (s *SQLBackend) Append(ctx context.Context, collection string, rec models.VoteRecord) (string, error) {
	key, err := NewKey()
	if err != nil {
		return "", err
	}

	_, err = s.db.ExecContext(ctx, db.Rebind(s.dbType, `
		INSERT INTO vote (vote_key, collection, product_id, voted_at)
		VALUES (?, ?, ?, ?)
	`), key, collection, rec.ProductID, rec.Timestamp)
	if err != nil {
		return "", fmt.Errorf("failed to insert vote: %w", err)
	}

	return key, nil
}

func (s *SQLBackend) ReadAll(ctx context.Context, collection string) ([]models.StoredVote, error) {
	rows, err := s.db.QueryContext(ctx, db.Rebind(s.dbType, `
		SELECT vote_key, product_id, voted_at
		FROM vote
		WHERE collection = ?
		ORDER BY vote_key
	`), collection)
	if err != nil {
		return nil, fmt.Errorf("failed to query votes: %w", err)
	}
	defer rows.Close()

	votes := []models.StoredVote{}
	for rows.Next() {
		var v models.StoredVote
		if err := rows.Scan(&v.Key, &v.ProductID, &v.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		votes = append(votes, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read votes: %w", err)
	}

	return votes, nil
}

func (s *SQLBackend) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}
