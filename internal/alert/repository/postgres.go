package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/hardstock/inventory-service/internal/alert/dto"
	"github.com/hardstock/inventory-service/internal/model"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Insert(ctx context.Context, a *model.Alert) error {
	query := `
        INSERT INTO alerts (
            id, alert_type, priority, title, message, product_id,
            read, acknowledged, acknowledgment_notes, archived, created_at, updated_at
        )
        VALUES (
            :id, :alert_type, :priority, :title, :message, :product_id,
            :read, :acknowledged, :acknowledgment_notes, :archived, :created_at, :updated_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, a)
	return err
}

func (r *PGRepository) MarkRead(ctx context.Context, id string, at time.Time) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE alerts SET read = true, updated_at = $1 WHERE id = $2`, at, id)
	if err != nil {
		return err
	}
	return requireRow(res, id)
}

func (r *PGRepository) Acknowledge(ctx context.Context, id, userID, notes string, at time.Time) error {
	res, err := r.DB.ExecContext(ctx, `
        UPDATE alerts
        SET acknowledged = true, acknowledged_by = $1, acknowledged_at = $2,
            acknowledgment_notes = $3, updated_at = $2
        WHERE id = $4
    `, userID, at, notes, id)
	if err != nil {
		return err
	}
	return requireRow(res, id)
}

func requireRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("alert %s not found", id)
	}
	return nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.AlertFilters) ([]model.Alert, error) {
	conditions := []string{"archived = false"}
	args := map[string]interface{}{}

	if f.Type != "" {
		conditions = append(conditions, "alert_type = :alert_type")
		args["alert_type"] = f.Type
	}
	if f.Priority != "" {
		conditions = append(conditions, "priority = :priority")
		args["priority"] = f.Priority
	}
	if f.Read != nil {
		conditions = append(conditions, "read = :read")
		args["read"] = *f.Read
	}

	query := "SELECT * FROM alerts WHERE " + strings.Join(conditions, " AND ") + " ORDER BY created_at DESC"
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", f.Limit)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer nstmt.Close()

	var alerts []model.Alert
	err = nstmt.SelectContext(ctx, &alerts, args)
	return alerts, err
}

func (r *PGRepository) ListRules(ctx context.Context) ([]model.AlertRule, error) {
	var rules []model.AlertRule
	err := r.DB.SelectContext(ctx, &rules,
		`SELECT * FROM alert_rules ORDER BY priority DESC`)
	return rules, err
}

func (r *PGRepository) ArchiveAcknowledgedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `
        UPDATE alerts
        SET archived = true, updated_at = now()
        WHERE acknowledged = true AND archived = false AND created_at < $1
    `, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
