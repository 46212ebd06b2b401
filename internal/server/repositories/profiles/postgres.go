package profiles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/devconnector/internal/common"
	"github.com/dmitrijs2005/devconnector/internal/dbx"
	"github.com/dmitrijs2005/devconnector/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectProfile = `SELECT p.id, p.user_id, u.name, u.avatar, p.company, p.website, p.location,
		p.status, p.skills, p.bio, p.githubusername,
		p.youtube, p.twitter, p.facebook, p.linkedin, p.instagram,
		p.created_at, p.updated_at
	 FROM profiles p JOIN users u ON u.id = p.user_id`

type scanner interface {
	Scan(dest ...any) error
}

func scanProfile(row scanner) (*models.Profile, error) {
	p := &models.Profile{}
	var skills string
	err := row.Scan(&p.ID, &p.User.ID, &p.User.Name, &p.User.Avatar,
		&p.Company, &p.Website, &p.Location,
		&p.Status, &skills, &p.Bio, &p.GitHubUsername,
		&p.Social.YouTube, &p.Social.Twitter, &p.Social.Facebook, &p.Social.LinkedIn, &p.Social.Instagram,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.Skills = SplitSkills(skills)
	return p, nil
}

func (r *PostgresRepository) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	query := selectProfile + ` WHERE p.user_id = $1`

	p, err := scanProfile(r.db.QueryRowContext(ctx, query, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if err := r.loadSubLists(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Profile, error) {
	query := selectProfile + ` ORDER BY p.created_at`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.Profile{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	for _, p := range result {
		if err := r.loadSubLists(ctx, p); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (r *PostgresRepository) Upsert(ctx context.Context, p *models.Profile) (*models.Profile, error) {
	query :=
		`INSERT INTO profiles (user_id, company, website, location, status, skills, bio, githubusername,
			youtube, twitter, facebook, linkedin, instagram)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 ON CONFLICT (user_id) DO UPDATE SET
			company = EXCLUDED.company, website = EXCLUDED.website, location = EXCLUDED.location,
			status = EXCLUDED.status, skills = EXCLUDED.skills, bio = EXCLUDED.bio,
			githubusername = EXCLUDED.githubusername, youtube = EXCLUDED.youtube,
			twitter = EXCLUDED.twitter, facebook = EXCLUDED.facebook,
			linkedin = EXCLUDED.linkedin, instagram = EXCLUDED.instagram, updated_at = now()
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		p.User.ID, p.Company, p.Website, p.Location, p.Status, JoinSkills(p.Skills), p.Bio, p.GitHubUsername,
		p.Social.YouTube, p.Social.Twitter, p.Social.Facebook, p.Social.LinkedIn, p.Social.Instagram,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) DeleteByUserID(ctx context.Context, userID string) error {
	query := `DELETE FROM profiles WHERE user_id = $1`

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) AddExperience(ctx context.Context, profileID string, e *models.Experience) (*models.Experience, error) {
	query :=
		`INSERT INTO profile_experience (profile_id, title, company, location, from_date, to_date, current, description)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		profileID, e.Title, e.Company, e.Location, e.From, e.To, e.Current, e.Description).Scan(&e.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return e, nil
}

func (r *PostgresRepository) DeleteExperience(ctx context.Context, profileID, expID string) error {
	query := `DELETE FROM profile_experience WHERE profile_id = $1 AND id = $2`
	return r.execOne(ctx, query, profileID, expID)
}

func (r *PostgresRepository) AddEducation(ctx context.Context, profileID string, e *models.Education) (*models.Education, error) {
	query :=
		`INSERT INTO profile_education (profile_id, school, degree, fieldofstudy, from_date, to_date, current, description)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		profileID, e.School, e.Degree, e.FieldOfStudy, e.From, e.To, e.Current, e.Description).Scan(&e.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return e, nil
}

func (r *PostgresRepository) DeleteEducation(ctx context.Context, profileID, eduID string) error {
	query := `DELETE FROM profile_education WHERE profile_id = $1 AND id = $2`
	return r.execOne(ctx, query, profileID, eduID)
}

func (r *PostgresRepository) execOne(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) loadSubLists(ctx context.Context, p *models.Profile) error {
	exp, err := r.experience(ctx, p.ID)
	if err != nil {
		return err
	}
	edu, err := r.education(ctx, p.ID)
	if err != nil {
		return err
	}
	p.Experience = exp
	p.Education = edu
	return nil
}

func (r *PostgresRepository) experience(ctx context.Context, profileID string) ([]models.Experience, error) {
	query :=
		`SELECT id, title, company, location, from_date, to_date, current, description
		 FROM profile_experience
		 WHERE profile_id = $1
		 ORDER BY created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, profileID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []models.Experience{}
	for rows.Next() {
		var e models.Experience
		var to sql.NullTime
		if err := rows.Scan(&e.ID, &e.Title, &e.Company, &e.Location, &e.From, &to, &e.Current, &e.Description); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		if to.Valid {
			e.To = &to.Time
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) education(ctx context.Context, profileID string) ([]models.Education, error) {
	query :=
		`SELECT id, school, degree, fieldofstudy, from_date, to_date, current, description
		 FROM profile_education
		 WHERE profile_id = $1
		 ORDER BY created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, profileID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []models.Education{}
	for rows.Next() {
		var e models.Education
		var to sql.NullTime
		if err := rows.Scan(&e.ID, &e.School, &e.Degree, &e.FieldOfStudy, &e.From, &to, &e.Current, &e.Description); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		if to.Valid {
			e.To = &to.Time
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
