package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// PostgresSessions keeps sessions in the chat_sessions table created by
// utils.SetupDatabase.
type PostgresSessions struct {
	db  *sql.DB
	ttl time.Duration
}

func NewPostgresSessions(db *sql.DB, ttl time.Duration) *PostgresSessions {
	return &PostgresSessions{db: db, ttl: ttl}
}

func (p *PostgresSessions) Get(ctx context.Context, token string) (string, bool, error) {
	var username string
	err := p.db.QueryRowContext(ctx,
		"SELECT username FROM chat_sessions WHERE token = $1 AND expires_at > NOW()",
		token,
	).Scan(&username)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get session: %w", err)
	}
	return username, true, nil
}

func (p *PostgresSessions) Set(ctx context.Context, token, username string) error {
	if token == "" {
		return ErrEmptyToken
	}
	if username == "" {
		return ErrEmptyUsername
	}
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO chat_sessions (token, username, expires_at)
		VALUES ($1, $2, NOW() + make_interval(secs => $3))
		ON CONFLICT (token) DO UPDATE
		SET username = EXCLUDED.username, expires_at = EXCLUDED.expires_at
	`, token, username, p.ttl.Seconds())
	if err != nil {
		return fmt.Errorf("set session: %w", err)
	}
	return nil
}

func (p *PostgresSessions) Clear(ctx context.Context, token string) error {
	if _, err := p.db.ExecContext(ctx, "DELETE FROM chat_sessions WHERE token = $1", token); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (p *PostgresSessions) DeleteExpired(ctx context.Context) (int, error) {
	result, err := p.db.ExecContext(ctx, "DELETE FROM chat_sessions WHERE expires_at <= NOW()")
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	rows, _ := result.RowsAffected()
	return int(rows), nil
}

func (p *PostgresSessions) Close() error {
	return p.db.Close()
}
