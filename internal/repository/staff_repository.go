package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/maintenance-engine/internal/domain"
)

// StaffRepository handles persistence for maintenance staff.
type StaffRepository interface {
	Create(ctx context.Context, staff *domain.MaintenanceStaff) error
	Update(ctx context.Context, staff *domain.MaintenanceStaff) error
	GetByID(ctx context.Context, id string) (*domain.MaintenanceStaff, error)
	List(ctx context.Context, filter StaffFilter) ([]domain.MaintenanceStaff, error)
}

// StaffFilter defines query params for staff listing.
type StaffFilter struct {
	FacilityID   *string
	SkillLevel   *domain.SkillLevel
	Availability *domain.Availability
	Limit        int
	Offset       int
}

type staffRepository struct {
	pool *pgxpool.Pool
}

// NewStaffRepository instantiates the repository.
func NewStaffRepository(pool *pgxpool.Pool) StaffRepository {
	return &staffRepository{pool: pool}
}

const staffColumns = `id, name, facility_id, specializations, skill_level, experience_years,
        availability, assigned_issues, max_concurrent_issues, performance_rating,
        completed_issues, avg_resolution_minutes, location, created_at, updated_at`

func (r *staffRepository) Create(ctx context.Context, staff *domain.MaintenanceStaff) error {
	const query = `
        INSERT INTO maintenance_staff (id, name, facility_id, specializations, skill_level, experience_years,
            availability, assigned_issues, max_concurrent_issues, performance_rating,
            completed_issues, avg_resolution_minutes, location)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
        RETURNING created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		staff.ID,
		staff.Name,
		staff.FacilityID,
		staff.Specializations,
		staff.SkillLevel,
		staff.ExperienceYears,
		staff.Availability,
		staff.AssignedIssues,
		staff.MaxConcurrentIssues,
		staff.PerformanceRating,
		staff.CompletedIssues,
		staff.AvgResolutionMinutes,
		staff.Location,
	).Scan(&staff.CreatedAt, &staff.UpdatedAt)
}

func (r *staffRepository) Update(ctx context.Context, staff *domain.MaintenanceStaff) error {
	const query = `
        UPDATE maintenance_staff
        SET name=$1, specializations=$2, skill_level=$3, experience_years=$4, availability=$5,
            assigned_issues=$6, max_concurrent_issues=$7, performance_rating=$8,
            completed_issues=$9, avg_resolution_minutes=$10, location=$11, updated_at=NOW()
        WHERE id=$12`
	cmd, err := r.pool.Exec(ctx, query,
		staff.Name,
		staff.Specializations,
		staff.SkillLevel,
		staff.ExperienceYears,
		staff.Availability,
		staff.AssignedIssues,
		staff.MaxConcurrentIssues,
		staff.PerformanceRating,
		staff.CompletedIssues,
		staff.AvgResolutionMinutes,
		staff.Location,
		staff.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *staffRepository) GetByID(ctx context.Context, id string) (*domain.MaintenanceStaff, error) {
	query := fmt.Sprintf(`SELECT %s FROM maintenance_staff WHERE id=$1`, staffColumns)
	return scanStaffRow(r.pool.QueryRow(ctx, query, id))
}

func (r *staffRepository) List(ctx context.Context, filter StaffFilter) ([]domain.MaintenanceStaff, error) {
	query := fmt.Sprintf(`SELECT %s FROM maintenance_staff`, staffColumns)
	args := []any{}
	clauses := []string{}

	if filter.FacilityID != nil {
		args = append(args, *filter.FacilityID)
		clauses = append(clauses, fmt.Sprintf("facility_id=$%d", len(args)))
	}
	if filter.SkillLevel != nil {
		args = append(args, *filter.SkillLevel)
		clauses = append(clauses, fmt.Sprintf("skill_level=$%d", len(args)))
	}
	if filter.Availability != nil {
		args = append(args, *filter.Availability)
		clauses = append(clauses, fmt.Sprintf("availability=$%d", len(args)))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}

	query += " ORDER BY created_at"
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	query += fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.MaintenanceStaff
	for rows.Next() {
		staff, err := scanStaffRow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *staff)
	}
	return result, rows.Err()
}

func scanStaffRow(row pgx.Row) (*domain.MaintenanceStaff, error) {
	var staff domain.MaintenanceStaff
	if err := row.Scan(
		&staff.ID,
		&staff.Name,
		&staff.FacilityID,
		&staff.Specializations,
		&staff.SkillLevel,
		&staff.ExperienceYears,
		&staff.Availability,
		&staff.AssignedIssues,
		&staff.MaxConcurrentIssues,
		&staff.PerformanceRating,
		&staff.CompletedIssues,
		&staff.AvgResolutionMinutes,
		&staff.Location,
		&staff.CreatedAt,
		&staff.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &staff, nil
}
