package userprofile

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Upsert(ctx context.Context, p UserProfile) error {
	skills, err := json.Marshal(p.Skills)
	if err != nil {
		return fmt.Errorf("encode skills: %w", err)
	}
	titles, err := json.Marshal(p.LastJobTitles)
	if err != nil {
		return fmt.Errorf("encode job titles: %w", err)
	}

	const query = `
INSERT INTO user_profiles (id, user_id, skills, experience, last_job_titles, location, cv_record_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
ON CONFLICT (user_id) DO UPDATE SET
  skills = EXCLUDED.skills,
  experience = EXCLUDED.experience,
  last_job_titles = EXCLUDED.last_job_titles,
  location = EXCLUDED.location,
  cv_record_id = EXCLUDED.cv_record_id,
  updated_at = now()`
	_, err = r.DB.ExecContext(ctx, query,
		p.ID,
		p.UserID,
		skills,
		p.Experience,
		titles,
		nullableString(p.Location),
		nullableString(p.CVRecordID),
	)
	return err
}

func (r *PGRepo) GetByUserID(ctx context.Context, userID string) (UserProfile, error) {
	const query = `
SELECT id, user_id, skills, experience, last_job_titles, location, cv_record_id, created_at, updated_at
FROM user_profiles
WHERE user_id = $1
LIMIT 1`
	var p UserProfile
	var skills []byte
	var titles []byte
	var location sql.NullString
	var cvRecordID sql.NullString
	var updatedAt sql.NullTime
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(
		&p.ID,
		&p.UserID,
		&skills,
		&p.Experience,
		&titles,
		&location,
		&cvRecordID,
		&p.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return UserProfile{}, ErrNotFound
		}
		return UserProfile{}, err
	}
	if len(skills) > 0 {
		if err := json.Unmarshal(skills, &p.Skills); err != nil {
			return UserProfile{}, fmt.Errorf("decode skills: %w", err)
		}
	}
	if len(titles) > 0 {
		if err := json.Unmarshal(titles, &p.LastJobTitles); err != nil {
			return UserProfile{}, fmt.Errorf("decode job titles: %w", err)
		}
	}
	if location.Valid {
		p.Location = location.String
	}
	if cvRecordID.Valid {
		p.CVRecordID = cvRecordID.String
	}
	if updatedAt.Valid {
		p.UpdatedAt = updatedAt.Time
	} else {
		p.UpdatedAt = time.Now().UTC()
	}
	return p, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
