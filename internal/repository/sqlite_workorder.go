package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tallerhq/taller/internal/db"
	"github.com/tallerhq/taller/internal/domain"
)

// workOrderColumns is the canonical SELECT column list for work_orders.
const workOrderColumns = `id, vehicle, client, current_phase, is_waiting, wait_reason,
		diagnosis_text, estimated_hours, quote_accepted, delivery_confirmed,
		accumulated_minutes, segment_started_at, created_at, updated_at`

// SQLiteWorkOrderRepo implements WorkOrderRepo using a SQLite database.
type SQLiteWorkOrderRepo struct {
	db db.DBTX
}

// NewSQLiteWorkOrderRepo creates a new SQLiteWorkOrderRepo. It accepts either
// a *sql.DB or a transaction from the unit of work.
func NewSQLiteWorkOrderRepo(dbtx db.DBTX) *SQLiteWorkOrderRepo {
	return &SQLiteWorkOrderRepo{db: dbtx}
}

func (r *SQLiteWorkOrderRepo) Create(ctx context.Context, o *domain.WorkOrder) error {
	query := `INSERT INTO work_orders (` + workOrderColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		o.ID,
		o.Vehicle,
		o.Client,
		string(o.CurrentPhase),
		boolToInt(o.IsWaiting),
		o.WaitReason,
		o.DiagnosisText,
		o.EstimatedHours,
		boolToInt(o.QuoteAccepted),
		boolToInt(o.DeliveryConfirmed),
		o.Timer.AccumulatedMinutes,
		nullableTimeToString(o.Timer.SegmentStartedAt, time.RFC3339),
		o.CreatedAt.Format(time.RFC3339),
		o.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting work order: %w", err)
	}
	return nil
}

func (r *SQLiteWorkOrderRepo) GetByID(ctx context.Context, id string) (*domain.WorkOrder, error) {
	query := `SELECT ` + workOrderColumns + ` FROM work_orders WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return r.scanWorkOrder(row)
}

func (r *SQLiteWorkOrderRepo) List(ctx context.Context, includeDelivered bool) ([]*domain.WorkOrder, error) {
	query := `SELECT ` + workOrderColumns + ` FROM work_orders`
	if !includeDelivered {
		query += ` WHERE current_phase != 'DELIVERED'`
	}
	query += ` ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing work orders: %w", err)
	}
	defer rows.Close()

	var orders []*domain.WorkOrder
	for rows.Next() {
		o, err := r.scanWorkOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *SQLiteWorkOrderRepo) Update(ctx context.Context, o *domain.WorkOrder) error {
	query := `UPDATE work_orders SET
		vehicle = ?, client = ?, current_phase = ?, is_waiting = ?, wait_reason = ?,
		diagnosis_text = ?, estimated_hours = ?, quote_accepted = ?, delivery_confirmed = ?,
		accumulated_minutes = ?, segment_started_at = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		o.Vehicle,
		o.Client,
		string(o.CurrentPhase),
		boolToInt(o.IsWaiting),
		o.WaitReason,
		o.DiagnosisText,
		o.EstimatedHours,
		boolToInt(o.QuoteAccepted),
		boolToInt(o.DeliveryConfirmed),
		o.Timer.AccumulatedMinutes,
		nullableTimeToString(o.Timer.SegmentStartedAt, time.RFC3339),
		o.UpdatedAt.Format(time.RFC3339),
		o.ID,
	)
	if err != nil {
		return fmt.Errorf("updating work order: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: work order %s", domain.ErrNotFound, o.ID)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *SQLiteWorkOrderRepo) scanWorkOrder(row rowScanner) (*domain.WorkOrder, error) {
	var (
		o                 domain.WorkOrder
		phase             string
		isWaiting         int
		quoteAccepted     int
		deliveryConfirmed int
		segmentStartedAt  sql.NullString
		createdAt         string
		updatedAt         string
	)
	err := row.Scan(
		&o.ID,
		&o.Vehicle,
		&o.Client,
		&phase,
		&isWaiting,
		&o.WaitReason,
		&o.DiagnosisText,
		&o.EstimatedHours,
		&quoteAccepted,
		&deliveryConfirmed,
		&o.Timer.AccumulatedMinutes,
		&segmentStartedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: work order", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("scanning work order: %w", err)
	}

	o.CurrentPhase = domain.Phase(phase)
	o.IsWaiting = intToBool(isWaiting)
	o.QuoteAccepted = intToBool(quoteAccepted)
	o.DeliveryConfirmed = intToBool(deliveryConfirmed)
	o.Timer.SegmentStartedAt = parseNullableTime(segmentStartedAt, time.RFC3339)
	o.Checklists = make(map[domain.Phase]*domain.Checklist)

	if o.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if o.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &o, nil
}
