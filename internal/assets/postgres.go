package assets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore serves assets from the exam_assets table
type PostgresStore struct {
	pool *pgxpool.Pool
}

// PostgresConfig holds PostgreSQL connection configuration
type PostgresConfig struct {
	DSN         string
	MaxConns    int32
	MinConns    int32
	MaxLifetime time.Duration
}

// NewPostgresStore creates a new PostgreSQL backed store
func NewPostgresStore(ctx context.Context, cfg PostgresConfig) (*PostgresStore, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}

	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = cfg.MaxConns
	} else {
		poolConfig.MaxConns = 10
	}

	if cfg.MinConns > 0 {
		poolConfig.MinConns = cfg.MinConns
	}

	if cfg.MaxLifetime > 0 {
		poolConfig.MaxConnLifetime = cfg.MaxLifetime
	} else {
		poolConfig.MaxConnLifetime = 30 * time.Minute
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// ReadFile returns the bytes stored under a path
func (s *PostgresStore) ReadFile(ctx context.Context, name string) ([]byte, error) {
	name = CleanPath(name)

	var data []byte
	err := s.pool.QueryRow(ctx, `SELECT data FROM exam_assets WHERE path = $1`, name).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notExist("read", name)
		}
		return nil, fmt.Errorf("failed to read asset %s: %w", name, err)
	}
	return data, nil
}

// ReadDir lists direct children of dir
func (s *PostgresStore) ReadDir(ctx context.Context, dir string) ([]string, error) {
	dir = CleanPath(dir)
	prefix := ""
	if dir != "." {
		prefix = dir + "/"
	}

	query := `
		SELECT substr(path, $2)
		FROM exam_assets
		WHERE starts_with(path, $1) AND strpos(substr(path, $2), '/') = 0
	`

	rows, err := s.pool.Query(ctx, query, prefix, len([]rune(prefix))+1)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets in %s: %w", dir, err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan asset name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list assets in %s: %w", dir, err)
	}

	if len(names) == 0 {
		// a directory exists only through the files below it
		var deeper bool
		if err := s.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM exam_assets WHERE starts_with(path, $1))`, prefix).Scan(&deeper); err != nil {
			return nil, fmt.Errorf("failed to probe %s: %w", dir, err)
		}
		if !deeper {
			return nil, notExist("readdir", dir)
		}
	}

	return names, nil
}

// Ping checks database connectivity
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close closes the connection pool
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func isSQLFile(name string) bool {
	return strings.HasSuffix(name, ".sql")
}
