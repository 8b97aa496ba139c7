package postgres

import (
	"context"
	"errors"
	"time"

	"talent-pool-backend/internal/domain"
	"talent-pool-backend/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type candidateRepo struct {
	db *pgxpool.Pool
}

func NewCandidateRepository(db *pgxpool.Pool) domain.CandidateRepository {
	return &candidateRepo{db: db}
}

const candidateColumns = `c.id, c.user_id, c.code, u.name, u.email, c.birth_date,
	COALESCE(c.phone, ''), COALESCE(c.zip_code, ''), COALESCE(c.street, ''),
	COALESCE(c.number, ''), COALESCE(c.complement, ''), COALESCE(c.neighborhood, ''),
	COALESCE(c.city, ''), COALESCE(c.state, ''),
	c.selected_for_interview, c.interview_date, c.notified, c.created_at, c.updated_at`

func scanCandidate(row pgx.Row) (*domain.Candidate, error) {
	var c domain.Candidate
	err := row.Scan(
		&c.ID, &c.UserID, &c.Code, &c.Name, &c.Email, &c.BirthDate,
		&c.Phone, &c.ZipCode, &c.Street, &c.Number, &c.Complement,
		&c.Neighborhood, &c.City, &c.State,
		&c.SelectedForInterview, &c.InterviewDate, &c.Notified,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *candidateRepo) Create(ctx context.Context, candidate *domain.Candidate) error {
	// Sequential candidate code, independent of the serial id.
	query := `INSERT INTO candidates (user_id, code, birth_date, phone, zip_code, street, number,
	              complement, neighborhood, city, state, selected_for_interview, notified, created_at, updated_at)
	          VALUES ($1, (SELECT COALESCE(MAX(code), 0) + 1 FROM candidates), $2,
	              NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''),
	              NULLIF($8, ''), NULLIF($9, ''), NULLIF($10, ''), false, false, $11, $11)
	          RETURNING id, code`
	err := r.db.QueryRow(ctx, query,
		candidate.UserID, candidate.BirthDate, candidate.Phone, candidate.ZipCode,
		candidate.Street, candidate.Number, candidate.Complement, candidate.Neighborhood,
		candidate.City, candidate.State, time.Now(),
	).Scan(&candidate.ID, &candidate.Code)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return apperror.Conflict("You already have a candidate profile")
		}
		return apperror.Internal(err)
	}
	return nil
}

func (r *candidateRepo) GetByID(ctx context.Context, id int64) (*domain.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates c
	          JOIN users u ON u.id = c.user_id
	          WHERE c.id = $1`
	candidate, err := scanCandidate(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	return r.loadRelations(ctx, candidate)
}

func (r *candidateRepo) GetByUserID(ctx context.Context, userID int64) (*domain.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates c
	          JOIN users u ON u.id = c.user_id
	          WHERE c.user_id = $1`
	candidate, err := scanCandidate(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		return nil, err
	}
	return r.loadRelations(ctx, candidate)
}

func (r *candidateRepo) List(ctx context.Context, filter domain.CandidateFilter) ([]domain.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates c
	          JOIN users u ON u.id = c.user_id
	          WHERE ($1 = '' OR u.name ILIKE '%' || $1 || '%')
	            AND ($2 = '' OR EXISTS (
	                SELECT 1 FROM candidate_skills cs
	                JOIN skills s ON s.id = cs.skill_id
	                WHERE cs.candidate_id = c.id AND s.name ILIKE '%' || $2 || '%'))
	          ORDER BY c.code`
	rows, err := r.db.Query(ctx, query, filter.Name, filter.Skill)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	defer rows.Close()

	var candidates []domain.Candidate
	for rows.Next() {
		candidate, err := scanCandidate(rows)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		candidates = append(candidates, *candidate)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Internal(err)
	}

	for i := range candidates {
		if _, err := r.loadRelations(ctx, &candidates[i]); err != nil {
			return nil, err
		}
	}
	return candidates, nil
}

func (r *candidateRepo) Update(ctx context.Context, candidate *domain.Candidate) error {
	query := `UPDATE candidates
	          SET birth_date = $2, phone = NULLIF($3, ''), zip_code = NULLIF($4, ''),
	              street = NULLIF($5, ''), number = NULLIF($6, ''), complement = NULLIF($7, ''),
	              neighborhood = NULLIF($8, ''), city = NULLIF($9, ''), state = NULLIF($10, ''),
	              updated_at = $11
	          WHERE id = $1`
	_, err := r.db.Exec(ctx, query,
		candidate.ID, candidate.BirthDate, candidate.Phone, candidate.ZipCode,
		candidate.Street, candidate.Number, candidate.Complement, candidate.Neighborhood,
		candidate.City, candidate.State, time.Now(),
	)
	if err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (r *candidateRepo) MarkSelected(ctx context.Context, id int64, interviewDate time.Time) error {
	// The guard keeps selection one-shot: an already-selected row is left
	// untouched and reported, never overwritten.
	query := `UPDATE candidates
	          SET selected_for_interview = true, interview_date = $2, notified = false, updated_at = $3
	          WHERE id = $1 AND selected_for_interview = false`
	tag, err := r.db.Exec(ctx, query, id, interviewDate, time.Now())
	if err != nil {
		return apperror.Internal(err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM candidates WHERE id = $1)`, id).Scan(&exists); err != nil {
			return apperror.Internal(err)
		}
		if !exists {
			return domain.ErrNotFound
		}
		return domain.ErrAlreadySelected
	}
	return nil
}

func (r *candidateRepo) MarkNotified(ctx context.Context, id int64) error {
	query := `UPDATE candidates SET notified = true, updated_at = $2 WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id, time.Now())
	if err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (r *candidateRepo) AddSkill(ctx context.Context, candidateID, skillID int64) error {
	query := `INSERT INTO candidate_skills (candidate_id, skill_id) VALUES ($1, $2)`
	_, err := r.db.Exec(ctx, query, candidateID, skillID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return apperror.Conflict("Skill already added to this candidate")
		}
		return apperror.Internal(err)
	}
	return nil
}

func (r *candidateRepo) RemoveSkill(ctx context.Context, candidateID, skillID int64) error {
	query := `DELETE FROM candidate_skills WHERE candidate_id = $1 AND skill_id = $2`
	tag, err := r.db.Exec(ctx, query, candidateID, skillID)
	if err != nil {
		return apperror.Internal(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *candidateRepo) GetSkills(ctx context.Context, candidateID int64) ([]domain.Skill, error) {
	query := `SELECT s.id, s.name FROM skills s
	          JOIN candidate_skills cs ON cs.skill_id = s.id
	          WHERE cs.candidate_id = $1
	          ORDER BY s.name`
	rows, err := r.db.Query(ctx, query, candidateID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	defer rows.Close()

	skills := []domain.Skill{}
	for rows.Next() {
		var s domain.Skill
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, apperror.Internal(err)
		}
		skills = append(skills, s)
	}
	return skills, rows.Err()
}

func (r *candidateRepo) AddEducation(ctx context.Context, education *domain.Education) error {
	query := `INSERT INTO educations (candidate_id, course_name, institution_name, completion_date, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $5)
	          RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, query,
		education.CandidateID, education.CourseName, education.InstitutionName,
		education.CompletionDate, time.Now(),
	).Scan(&education.ID, &education.CreatedAt, &education.UpdatedAt)
	if err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (r *candidateRepo) RemoveEducation(ctx context.Context, candidateID, educationID int64) error {
	query := `DELETE FROM educations WHERE id = $1 AND candidate_id = $2`
	tag, err := r.db.Exec(ctx, query, educationID, candidateID)
	if err != nil {
		return apperror.Internal(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *candidateRepo) GetEducations(ctx context.Context, candidateID int64) ([]domain.Education, error) {
	query := `SELECT id, candidate_id, course_name, institution_name, completion_date, created_at, updated_at
	          FROM educations WHERE candidate_id = $1 ORDER BY completion_date DESC NULLS LAST`
	rows, err := r.db.Query(ctx, query, candidateID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	defer rows.Close()

	educations := []domain.Education{}
	for rows.Next() {
		var e domain.Education
		if err := rows.Scan(&e.ID, &e.CandidateID, &e.CourseName, &e.InstitutionName,
			&e.CompletionDate, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, apperror.Internal(err)
		}
		educations = append(educations, e)
	}
	return educations, rows.Err()
}

func (r *candidateRepo) loadRelations(ctx context.Context, candidate *domain.Candidate) (*domain.Candidate, error) {
	skills, err := r.GetSkills(ctx, candidate.ID)
	if err != nil {
		return nil, err
	}
	candidate.Skills = skills

	educations, err := r.GetEducations(ctx, candidate.ID)
	if err != nil {
		return nil, err
	}
	candidate.Educations = educations

	return candidate, nil
}
