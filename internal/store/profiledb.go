// Package store persists aggregated profiles (Postgres) and the
// aggregation audit log (SQLite). Both backends are optional; the engine
// runs fully in-memory without them.
package store

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jokobus/go_profile/internal/profile"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// Package-level singleton, set from main.go.
var profileDB *ProfileDB

// SetProfileDB sets the package-level profile DB instance.
func SetProfileDB(db *ProfileDB) { profileDB = db }

// GetProfileDB returns the package-level profile DB instance (may be nil).
func GetProfileDB() *ProfileDB { return profileDB }

// ProfileDB holds the pgx connection pool for profile storage.
type ProfileDB struct {
	pool *pgxpool.Pool
}

// SavedProfile is one stored aggregation result.
type SavedProfile struct {
	ID        string                  `json:"id"`
	Name      string                  `json:"name"`
	Sources   []string                `json:"sources"`
	CreatedAt string                  `json:"created_at"`
	Profile   *profile.UnifiedProfile `json:"profile"`
}

// ConnectProfileDB creates a pgx pool and runs schema migrations.
func ConnectProfileDB(ctx context.Context, databaseURL string) (*ProfileDB, error) {
	if databaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}

	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse DATABASE_URL: %w", err)
	}
	config.MaxConns = 10
	config.MinConns = 1

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	db := &ProfileDB{pool: pool}
	if err := db.runMigrations(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	slog.Info("profile postgres connected", slog.String("addr", config.ConnConfig.Host))
	return db, nil
}

func (db *ProfileDB) Close() {
	db.pool.Close()
}

func (db *ProfileDB) runMigrations(ctx context.Context) error {
	entries, err := schemaFS.ReadDir("schema")
	if err != nil {
		return fmt.Errorf("read schema dir: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		data, err := schemaFS.ReadFile("schema/" + entry.Name())
		if err != nil {
			return fmt.Errorf("read %s: %w", entry.Name(), err)
		}
		if _, err := db.pool.Exec(ctx, string(data)); err != nil {
			return fmt.Errorf("execute %s: %w", entry.Name(), err)
		}
		slog.Info("migration applied", slog.String("file", entry.Name()))
	}
	return nil
}

// SaveProfile stores an aggregated profile and returns its generated ID.
func (db *ProfileDB) SaveProfile(ctx context.Context, p *profile.UnifiedProfile) (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("marshal profile: %w", err)
	}

	sources := make([]string, 0, len(p.DataSources))
	for _, s := range p.DataSources {
		sources = append(sources, string(s))
	}

	id := uuid.NewString()
	_, err = db.pool.Exec(ctx,
		`INSERT INTO unified_profiles (id, name, data, sources) VALUES ($1, $2, $3, $4)`,
		id, p.ContactInfo.Name, data, sources,
	)
	if err != nil {
		return "", fmt.Errorf("insert profile: %w", err)
	}
	return id, nil
}

// GetProfile returns the stored profile with the given ID.
func (db *ProfileDB) GetProfile(ctx context.Context, id string) (*SavedProfile, error) {
	var sp SavedProfile
	var data []byte
	err := db.pool.QueryRow(ctx,
		`SELECT id, name, sources, created_at::text, data
		 FROM unified_profiles WHERE id = $1`, id,
	).Scan(&sp.ID, &sp.Name, &sp.Sources, &sp.CreatedAt, &data)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, &sp.Profile); err != nil {
		return nil, fmt.Errorf("unmarshal stored profile %s: %w", id, err)
	}
	return &sp, nil
}

// GetLatestProfile returns the most recently stored profile, or nil when
// the store is empty. Query failures are real errors, not an empty store.
func (db *ProfileDB) GetLatestProfile(ctx context.Context) (*SavedProfile, error) {
	var id string
	err := db.pool.QueryRow(ctx,
		`SELECT id FROM unified_profiles ORDER BY created_at DESC, id DESC LIMIT 1`,
	).Scan(&id)
	if err != nil {
		if emptyResult(err) {
			return nil, nil
		}
		return nil, err
	}
	return db.GetProfile(ctx, id)
}

// emptyResult reports whether err just means no rows matched.
func emptyResult(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// ListProfiles returns stored profile headers, newest first, without the
// full profile payload.
func (db *ProfileDB) ListProfiles(ctx context.Context, limit int) ([]SavedProfile, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	rows, err := db.pool.Query(ctx,
		`SELECT id, name, sources, created_at::text
		 FROM unified_profiles ORDER BY created_at DESC, id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []SavedProfile
	for rows.Next() {
		var sp SavedProfile
		if err := rows.Scan(&sp.ID, &sp.Name, &sp.Sources, &sp.CreatedAt); err != nil {
			return nil, err
		}
		results = append(results, sp)
	}
	return results, rows.Err()
}
