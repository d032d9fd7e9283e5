package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/maintenance-engine/internal/domain"
)

// IssueFilter captures issue search parameters.
type IssueFilter struct {
	FacilityID  *string
	ReporterID  *string
	AssignedTo  *string
	Hostel      *string
	Categories  []domain.IssueCategory
	Statuses    []domain.IssueStatus
	Priorities  []domain.IssuePriority
	ResolvedOnly bool
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Limit       int
	Offset      int
}

// IssueRepository encapsulates issue persistence.
type IssueRepository interface {
	Create(ctx context.Context, issue *domain.Issue) error
	Update(ctx context.Context, issue *domain.Issue) error
	GetByID(ctx context.Context, id string) (*domain.Issue, error)
	ListWithFilter(ctx context.Context, filter IssueFilter) ([]domain.Issue, error)
	AppendEscalation(ctx context.Context, record domain.EscalationRecord) error
	ListEscalations(ctx context.Context, issueID string) ([]domain.EscalationRecord, error)
}

type issueRepository struct {
	pool *pgxpool.Pool
}

// NewIssueRepository instantiates the repository.
func NewIssueRepository(pool *pgxpool.Pool) IssueRepository {
	return &issueRepository{pool: pool}
}

const issueColumns = `id, facility_id, reporter_id, hostel, room, floor, category, title, description,
               priority, severity, urgency, impact, status, assigned_staff_id, required_skills,
               affected_users, estimated_minutes, estimated_cost, actual_cost, escalation_level,
               sla_deadline, recurring, created_at, updated_at, acknowledged_at, resolved_at`

func (r *issueRepository) Create(ctx context.Context, issue *domain.Issue) error {
	const query = `
        INSERT INTO issues (id, facility_id, reporter_id, hostel, room, floor, category, title, description,
            priority, severity, urgency, impact, status, assigned_staff_id, required_skills, affected_users,
            estimated_minutes, estimated_cost, actual_cost, escalation_level, sla_deadline, recurring,
            acknowledged_at, resolved_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24,$25)
        RETURNING created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		issue.ID,
		issue.FacilityID,
		issue.ReporterID,
		issue.Location.Hostel,
		issue.Location.Room,
		issue.Location.Floor,
		issue.Category,
		issue.Title,
		issue.Description,
		issue.Priority,
		issue.Severity,
		issue.Urgency,
		issue.Impact,
		issue.Status,
		issue.AssignedStaffID,
		issue.RequiredSkills,
		issue.AffectedUsers,
		issue.EstimatedMinutes,
		issue.EstimatedCost,
		issue.ActualCost,
		issue.Escalation,
		issue.SLADeadline,
		issue.Recurring,
		issue.AcknowledgedAt,
		issue.ResolvedAt,
	).Scan(&issue.CreatedAt, &issue.UpdatedAt)
}

func (r *issueRepository) Update(ctx context.Context, issue *domain.Issue) error {
	const query = `
        UPDATE issues SET priority=$1, severity=$2, urgency=$3, impact=$4, status=$5,
            assigned_staff_id=$6, required_skills=$7, estimated_minutes=$8, estimated_cost=$9, actual_cost=$10,
            escalation_level=$11, sla_deadline=$12, acknowledged_at=$13, resolved_at=$14, updated_at=NOW()
        WHERE id=$15`
	cmd, err := r.pool.Exec(ctx, query,
		issue.Priority,
		issue.Severity,
		issue.Urgency,
		issue.Impact,
		issue.Status,
		issue.AssignedStaffID,
		issue.RequiredSkills,
		issue.EstimatedMinutes,
		issue.EstimatedCost,
		issue.ActualCost,
		issue.Escalation,
		issue.SLADeadline,
		issue.AcknowledgedAt,
		issue.ResolvedAt,
		issue.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *issueRepository) GetByID(ctx context.Context, id string) (*domain.Issue, error) {
	query := fmt.Sprintf(`SELECT %s FROM issues WHERE id=$1`, issueColumns)
	row := r.pool.QueryRow(ctx, query, id)
	return scanIssue(row)
}

func (r *issueRepository) ListWithFilter(ctx context.Context, filter IssueFilter) ([]domain.Issue, error) {
	base := fmt.Sprintf(`SELECT %s FROM issues`, issueColumns)
	clauses := []string{"1=1"}
	args := []any{}

	if filter.FacilityID != nil {
		args = append(args, *filter.FacilityID)
		clauses = append(clauses, fmt.Sprintf("facility_id=$%d", len(args)))
	}
	if filter.ReporterID != nil {
		args = append(args, *filter.ReporterID)
		clauses = append(clauses, fmt.Sprintf("reporter_id=$%d", len(args)))
	}
	if filter.AssignedTo != nil {
		args = append(args, *filter.AssignedTo)
		clauses = append(clauses, fmt.Sprintf("assigned_staff_id=$%d", len(args)))
	}
	if filter.Hostel != nil {
		args = append(args, *filter.Hostel)
		clauses = append(clauses, fmt.Sprintf("hostel=$%d", len(args)))
	}
	if len(filter.Categories) > 0 {
		placeholders := make([]string, len(filter.Categories))
		for i, category := range filter.Categories {
			args = append(args, category)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("category IN (%s)", strings.Join(placeholders, ",")))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}
	if len(filter.Priorities) > 0 {
		placeholders := make([]string, len(filter.Priorities))
		for i, priority := range filter.Priorities {
			args = append(args, priority)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("priority IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.ResolvedOnly {
		clauses = append(clauses, "resolved_at IS NOT NULL")
	}
	if filter.CreatedFrom != nil {
		args = append(args, *filter.CreatedFrom)
		clauses = append(clauses, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.CreatedTo != nil {
		args = append(args, *filter.CreatedTo)
		clauses = append(clauses, fmt.Sprintf("created_at <= $%d", len(args)))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Issue
	for rows.Next() {
		issue, err := scanIssue(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *issue)
	}
	return result, rows.Err()
}

func (r *issueRepository) AppendEscalation(ctx context.Context, record domain.EscalationRecord) error {
	const query = `
        INSERT INTO escalation_records (issue_id, from_level, to_level, reason, escalated_at)
        VALUES ($1,$2,$3,$4,$5)`
	_, err := r.pool.Exec(ctx, query,
		record.IssueID,
		record.FromLevel,
		record.ToLevel,
		record.Reason,
		record.EscalatedAt,
	)
	return err
}

func (r *issueRepository) ListEscalations(ctx context.Context, issueID string) ([]domain.EscalationRecord, error) {
	const query = `
        SELECT issue_id, from_level, to_level, reason, escalated_at
        FROM escalation_records WHERE issue_id=$1 ORDER BY escalated_at`
	rows, err := r.pool.Query(ctx, query, issueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.EscalationRecord
	for rows.Next() {
		var record domain.EscalationRecord
		if err := rows.Scan(
			&record.IssueID,
			&record.FromLevel,
			&record.ToLevel,
			&record.Reason,
			&record.EscalatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, record)
	}
	return result, rows.Err()
}

func scanIssue(row pgx.Row) (*domain.Issue, error) {
	var issue domain.Issue
	if err := row.Scan(
		&issue.ID,
		&issue.FacilityID,
		&issue.ReporterID,
		&issue.Location.Hostel,
		&issue.Location.Room,
		&issue.Location.Floor,
		&issue.Category,
		&issue.Title,
		&issue.Description,
		&issue.Priority,
		&issue.Severity,
		&issue.Urgency,
		&issue.Impact,
		&issue.Status,
		&issue.AssignedStaffID,
		&issue.RequiredSkills,
		&issue.AffectedUsers,
		&issue.EstimatedMinutes,
		&issue.EstimatedCost,
		&issue.ActualCost,
		&issue.Escalation,
		&issue.SLADeadline,
		&issue.Recurring,
		&issue.CreatedAt,
		&issue.UpdatedAt,
		&issue.AcknowledgedAt,
		&issue.ResolvedAt,
	); err != nil {
		return nil, err
	}
	return &issue, nil
}
