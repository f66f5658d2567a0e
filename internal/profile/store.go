package profile

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Store defines the interface for profile persistence. Get returns (nil, nil)
// when the profile does not exist.
type Store interface {
	Get(ctx context.Context, id string) (*UserProfile, error)
	Save(ctx context.Context, p *UserProfile) error
	Close() error
}

// PostgresStore implements Store for PostgreSQL.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore connects to the database and ensures the profiles table
// exists.
func NewPostgresStore(dataSourceName string) (*PostgresStore, error) {
	db, err := sqlx.Connect("postgres", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS profiles (
		id TEXT PRIMARY KEY,
		height_cm DOUBLE PRECISION,
		weight_kg DOUBLE PRECISION,
		age INTEGER,
		gender TEXT,
		lifestyle TEXT,
		motive TEXT,
		diet_type TEXT,
		diseases JSONB,
		allergies JSONB,
		meal_preferences JSONB,
		level TEXT,
		target_area TEXT,
		water_l DOUBLE PRECISION
	);
	`
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create profiles table: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

// Get retrieves a profile by id.
func (s *PostgresStore) Get(ctx context.Context, id string) (*UserProfile, error) {
	var p UserProfile
	var diseasesJSON, allergiesJSON, prefsJSON []byte

	err := s.db.QueryRowContext(ctx,
		"SELECT id, height_cm, weight_kg, age, gender, lifestyle, motive, diet_type, diseases, allergies, meal_preferences, level, target_area, water_l FROM profiles WHERE id = $1",
		id).Scan(
		&p.ID,
		&p.HeightCm,
		&p.WeightKg,
		&p.AgeYears,
		&p.Gender,
		&p.Lifestyle,
		&p.Motive,
		&p.DietType,
		&diseasesJSON,
		&allergiesJSON,
		&prefsJSON,
		&p.Level,
		&p.TargetArea,
		&p.WaterLiters,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile %s: %w", id, err)
	}

	if err := json.Unmarshal(diseasesJSON, &p.Diseases); err != nil {
		return nil, fmt.Errorf("failed to unmarshal diseases: %w", err)
	}
	if err := json.Unmarshal(allergiesJSON, &p.Allergies); err != nil {
		return nil, fmt.Errorf("failed to unmarshal allergies: %w", err)
	}
	if err := json.Unmarshal(prefsJSON, &p.MealPreferences); err != nil {
		return nil, fmt.Errorf("failed to unmarshal meal preferences: %w", err)
	}

	return &p, nil
}

// Save upserts a profile, assigning an id when it has none.
func (s *PostgresStore) Save(ctx context.Context, p *UserProfile) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	diseasesJSON, err := json.Marshal(emptyIfNil(p.Diseases))
	if err != nil {
		return fmt.Errorf("failed to marshal diseases: %w", err)
	}
	allergiesJSON, err := json.Marshal(emptyIfNil(p.Allergies))
	if err != nil {
		return fmt.Errorf("failed to marshal allergies: %w", err)
	}
	prefs := p.MealPreferences
	if prefs == nil {
		prefs = map[string]string{}
	}
	prefsJSON, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("failed to marshal meal preferences: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO profiles (id, height_cm, weight_kg, age, gender, lifestyle, motive, diet_type, diseases, allergies, meal_preferences, level, target_area, water_l) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14) ON CONFLICT (id) DO UPDATE SET height_cm = $2, weight_kg = $3, age = $4, gender = $5, lifestyle = $6, motive = $7, diet_type = $8, diseases = $9, allergies = $10, meal_preferences = $11, level = $12, target_area = $13, water_l = $14",
		p.ID,
		p.HeightCm,
		p.WeightKg,
		p.AgeYears,
		p.Gender,
		p.Lifestyle,
		p.Motive,
		p.DietType,
		diseasesJSON,
		allergiesJSON,
		prefsJSON,
		p.Level,
		p.TargetArea,
		p.WaterLiters,
	)
	if err != nil {
		return fmt.Errorf("failed to save profile %s: %w", p.ID, err)
	}
	return nil
}

// Close closes the underlying connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// MemoryStore implements Store in memory, for tests and DB-less runs.
type MemoryStore struct {
	mu       sync.RWMutex
	profiles map[string]UserProfile
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{profiles: make(map[string]UserProfile)}
}

// Get retrieves a profile by id.
func (s *MemoryStore) Get(_ context.Context, id string) (*UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// Save upserts a profile, assigning an id when it has none.
func (s *MemoryStore) Save(_ context.Context, p *UserProfile) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[p.ID] = *p
	return nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error {
	return nil
}
