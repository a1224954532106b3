package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/RahulRR-10/EchoSQL/internal/domain"
	"github.com/RahulRR-10/EchoSQL/internal/domain/entity"
)

// profileRepository is the MySQL implementation of
// DatabaseProfileRepository.
type profileRepository struct {
	db *sql.DB
}

// NewProfileRepository creates a new DatabaseProfileRepository instance.
func NewProfileRepository(db *sql.DB) domain.DatabaseProfileRepository {
	return &profileRepository{db: db}
}

const profileColumns = `id, user_id, name, db_type, host, port, username, password, db_name, uri, created_at, updated_at`

func scanProfile(row interface{ Scan(...any) error }) (*entity.DatabaseProfile, error) {
	var p entity.DatabaseProfile
	err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.Type, &p.Host, &p.Port,
		&p.Username, &p.Password, &p.Database, &p.URI, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) Create(ctx context.Context, profile *entity.DatabaseProfile) error {
	if profile.ID == "" {
		profile.ID = uuid.NewString()
	}
	now := time.Now()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO database_profiles
		 (id, user_id, name, db_type, host, port, username, password, db_name, uri, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		profile.ID, profile.UserID, profile.Name, profile.Type, profile.Host,
		profile.Port, profile.Username, profile.Password, profile.Database,
		profile.URI, profile.CreatedAt, profile.UpdatedAt,
	)
	if err != nil {
		if isDuplicateKey(err) {
			return domain.NewAlreadyExistsError("Database profile", profile.Name)
		}
		return fmt.Errorf("failed to create database profile: %w", err)
	}
	return nil
}

func (r *profileRepository) GetByID(ctx context.Context, profileID string) (*entity.DatabaseProfile, error) {
	if _, err := uuid.Parse(profileID); err != nil {
		return nil, fmt.Errorf("invalid profile id: %w", err)
	}

	row := r.db.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM database_profiles WHERE id = ?`, profileID)

	p, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("Database profile", profileID)
		}
		return nil, fmt.Errorf("failed to get database profile: %w", err)
	}
	return p, nil
}

func (r *profileRepository) GetByName(ctx context.Context, userID, name string) (*entity.DatabaseProfile, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM database_profiles WHERE user_id = ? AND name = ?`,
		userID, name)

	p, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("Database profile", name)
		}
		return nil, fmt.Errorf("failed to get database profile: %w", err)
	}
	return p, nil
}

func (r *profileRepository) ListByUser(ctx context.Context, userID string) ([]*entity.DatabaseProfile, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+profileColumns+` FROM database_profiles WHERE user_id = ?
		 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list database profiles: %w", err)
	}
	defer rows.Close()

	var result []*entity.DatabaseProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan database profile: %w", err)
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

func (r *profileRepository) Update(ctx context.Context, profile *entity.DatabaseProfile) error {
	profile.UpdatedAt = time.Now()

	res, err := r.db.ExecContext(ctx,
		`UPDATE database_profiles
		 SET name = ?, db_type = ?, host = ?, port = ?, username = ?, password = ?,
		     db_name = ?, uri = ?, updated_at = ?
		 WHERE id = ?`,
		profile.Name, profile.Type, profile.Host, profile.Port, profile.Username,
		profile.Password, profile.Database, profile.URI, profile.UpdatedAt,
		profile.ID,
	)
	if err != nil {
		if isDuplicateKey(err) {
			return domain.NewAlreadyExistsError("Database profile", profile.Name)
		}
		return fmt.Errorf("failed to update database profile: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NewNotFoundError("Database profile", profile.ID)
	}
	return nil
}

func (r *profileRepository) Delete(ctx context.Context, profileID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM database_profiles WHERE id = ?`, profileID)
	if err != nil {
		return fmt.Errorf("failed to delete database profile: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NewNotFoundError("Database profile", profileID)
	}
	return nil
}
