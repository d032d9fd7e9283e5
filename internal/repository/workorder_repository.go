package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/maintenance-engine/internal/domain"
)

// WorkOrderRepository handles persistence for work orders.
type WorkOrderRepository interface {
	Create(ctx context.Context, order *domain.WorkOrder) error
	Update(ctx context.Context, order *domain.WorkOrder) error
	GetByID(ctx context.Context, id string) (*domain.WorkOrder, error)
	List(ctx context.Context, filter WorkOrderFilter) ([]domain.WorkOrder, error)
}

// WorkOrderFilter defines query params for work order listing.
type WorkOrderFilter struct {
	IssueID  *string
	StaffID  *string
	Statuses []domain.WorkOrderStatus
	Limit    int
	Offset   int
}

type workOrderRepository struct {
	pool *pgxpool.Pool
}

// NewWorkOrderRepository instantiates the repository.
func NewWorkOrderRepository(pool *pgxpool.Pool) WorkOrderRepository {
	return &workOrderRepository{pool: pool}
}

const workOrderColumns = `id, issue_id, staff_id, priority, status, scheduled_start, actual_start,
        estimated_minutes, actual_minutes, materials, cost, quality_check, created_at, updated_at`

func (r *workOrderRepository) Create(ctx context.Context, order *domain.WorkOrder) error {
	materials, err := json.Marshal(order.Materials)
	if err != nil {
		return fmt.Errorf("marshal materials: %w", err)
	}
	const query = `
        INSERT INTO work_orders (id, issue_id, staff_id, priority, status, scheduled_start, actual_start,
            estimated_minutes, actual_minutes, materials, cost, quality_check)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
        RETURNING created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		order.ID,
		order.IssueID,
		order.StaffID,
		order.Priority,
		order.Status,
		order.ScheduledStart,
		order.ActualStart,
		order.EstimatedMinutes,
		order.ActualMinutes,
		materials,
		order.Cost,
		order.Quality,
	).Scan(&order.CreatedAt, &order.UpdatedAt)
}

func (r *workOrderRepository) Update(ctx context.Context, order *domain.WorkOrder) error {
	materials, err := json.Marshal(order.Materials)
	if err != nil {
		return fmt.Errorf("marshal materials: %w", err)
	}
	const query = `
        UPDATE work_orders SET staff_id=$1, priority=$2, status=$3, scheduled_start=$4, actual_start=$5,
            estimated_minutes=$6, actual_minutes=$7, materials=$8, cost=$9, quality_check=$10, updated_at=NOW()
        WHERE id=$11`
	cmd, err := r.pool.Exec(ctx, query,
		order.StaffID,
		order.Priority,
		order.Status,
		order.ScheduledStart,
		order.ActualStart,
		order.EstimatedMinutes,
		order.ActualMinutes,
		materials,
		order.Cost,
		order.Quality,
		order.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *workOrderRepository) GetByID(ctx context.Context, id string) (*domain.WorkOrder, error) {
	query := fmt.Sprintf(`SELECT %s FROM work_orders WHERE id=$1`, workOrderColumns)
	return scanWorkOrder(r.pool.QueryRow(ctx, query, id))
}

func (r *workOrderRepository) List(ctx context.Context, filter WorkOrderFilter) ([]domain.WorkOrder, error) {
	query := fmt.Sprintf(`SELECT %s FROM work_orders`, workOrderColumns)
	args := []any{}
	clauses := []string{}

	if filter.IssueID != nil {
		args = append(args, *filter.IssueID)
		clauses = append(clauses, fmt.Sprintf("issue_id=$%d", len(args)))
	}
	if filter.StaffID != nil {
		args = append(args, *filter.StaffID)
		clauses = append(clauses, fmt.Sprintf("staff_id=$%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}

	query += " ORDER BY scheduled_start"
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

	var result []domain.WorkOrder
	for rows.Next() {
		order, err := scanWorkOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *order)
	}
	return result, rows.Err()
}

func scanWorkOrder(row pgx.Row) (*domain.WorkOrder, error) {
	var order domain.WorkOrder
	var materials []byte
	if err := row.Scan(
		&order.ID,
		&order.IssueID,
		&order.StaffID,
		&order.Priority,
		&order.Status,
		&order.ScheduledStart,
		&order.ActualStart,
		&order.EstimatedMinutes,
		&order.ActualMinutes,
		&materials,
		&order.Cost,
		&order.Quality,
		&order.CreatedAt,
		&order.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if len(materials) > 0 {
		if err := json.Unmarshal(materials, &order.Materials); err != nil {
			return nil, fmt.Errorf("unmarshal materials: %w", err)
		}
	}
	return &order, nil
}
