package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/gymstack/journey-api/internal/models"
)

// JourneyRepository is the narrow persistence contract the builder and the
// simulator rely on. Journeys own their actions and reminders: deleting a
// journey cascades.
type JourneyRepository interface {
	List(ctx context.Context) ([]models.Journey, error)
	Get(ctx context.Context, journeyID string) (models.Journey, error)
	Create(ctx context.Context, name string) (models.Journey, error)
	Rename(ctx context.Context, journeyID, name string) error
	Delete(ctx context.Context, journeyID string) error
	AddAction(ctx context.Context, journeyID string, action models.Action) (models.Action, error)
	UpdateAction(ctx context.Context, journeyID string, action models.Action) (models.Action, error)
	DeleteAction(ctx context.Context, journeyID, actionID string) error
	ReorderActions(ctx context.Context, journeyID string, actionIDs []string) error
}

type journeyRepository struct {
	db *sql.DB
}

func NewJourneyRepository(db *sql.DB) JourneyRepository {
	return &journeyRepository{db: db}
}

func (r *journeyRepository) List(ctx context.Context) ([]models.Journey, error) {
	const query = `
		SELECT id, name, is_default, created_at, updated_at
		FROM journeys
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "list journeys")
	}
	defer rows.Close()

	var journeys []models.Journey
	for rows.Next() {
		var j models.Journey
		if err := rows.Scan(&j.ID, &j.Name, &j.IsDefault, &j.CreatedAt, &j.UpdatedAt); err != nil {
			return nil, errors.Wrap(err, "scan journey")
		}
		journeys = append(journeys, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range journeys {
		if err := r.loadChildren(ctx, &journeys[i]); err != nil {
			return nil, err
		}
	}
	return journeys, nil
}

func (r *journeyRepository) Get(ctx context.Context, journeyID string) (models.Journey, error) {
	const query = `
		SELECT id, name, is_default, created_at, updated_at
		FROM journeys
		WHERE id = $1
	`
	var j models.Journey
	err := r.db.QueryRowContext(ctx, query, journeyID).Scan(&j.ID, &j.Name, &j.IsDefault, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return models.Journey{}, errors.Wrapf(err, "get journey %s", journeyID)
	}
	if err := r.loadChildren(ctx, &j); err != nil {
		return models.Journey{}, err
	}
	return j, nil
}

func (r *journeyRepository) Create(ctx context.Context, name string) (models.Journey, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Journey{}, errors.Wrap(err, "begin create journey")
	}
	defer tx.Rollback()

	const insertJourney = `
		INSERT INTO journeys (name, is_default)
		VALUES ($1, false)
		RETURNING id, name, is_default, created_at, updated_at
	`
	var j models.Journey
	if err := tx.QueryRowContext(ctx, insertJourney, name).Scan(&j.ID, &j.Name, &j.IsDefault, &j.CreatedAt, &j.UpdatedAt); err != nil {
		return models.Journey{}, errors.Wrap(err, "insert journey")
	}

	// Every journey starts with a START node; ACTION nodes follow per action.
	const insertNode = `
		INSERT INTO journey_nodes (id, journey_id, node_type, action_id, position)
		VALUES ($1, $2, $3, NULL, 0)
	`
	startID := uuid.NewString()
	if _, err := tx.ExecContext(ctx, insertNode, startID, j.ID, models.NodeStart); err != nil {
		return models.Journey{}, errors.Wrap(err, "insert start node")
	}

	if err := tx.Commit(); err != nil {
		return models.Journey{}, errors.Wrap(err, "commit create journey")
	}
	j.Nodes = []models.JourneyNode{{ID: startID, NodeType: models.NodeStart, Position: 0}}
	return j, nil
}

func (r *journeyRepository) Rename(ctx context.Context, journeyID, name string) error {
	const query = `
		UPDATE journeys SET name = $2, updated_at = NOW()
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, journeyID, name)
	if err != nil {
		return errors.Wrapf(err, "rename journey %s", journeyID)
	}
	return requireRow(res)
}

func (r *journeyRepository) Delete(ctx context.Context, journeyID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM journeys WHERE id = $1`, journeyID)
	if err != nil {
		return errors.Wrapf(err, "delete journey %s", journeyID)
	}
	return requireRow(res)
}

func (r *journeyRepository) AddAction(ctx context.Context, journeyID string, action models.Action) (models.Action, error) {
	if err := action.Validate(); err != nil {
		return models.Action{}, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Action{}, errors.Wrap(err, "begin add action")
	}
	defer tx.Rollback()

	var position int
	const nextPosition = `
		SELECT COALESCE(MAX(position) + 1, 0) FROM actions WHERE journey_id = $1
	`
	if err := tx.QueryRowContext(ctx, nextPosition, journeyID).Scan(&position); err != nil {
		return models.Action{}, errors.Wrap(err, "next action position")
	}

	action.ID = uuid.NewString()
	action.JourneyID = journeyID
	action.Position = position

	const insertAction = `
		INSERT INTO actions (
			id, journey_id, action_type_id, event_type, completion_mode,
			required_count, product, visible_in_checklist, guidance_enabled,
			position, time_range_kind, duration_days, duration_unit, offset_days, offset_unit
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	if _, err := tx.ExecContext(ctx, insertAction,
		action.ID, journeyID, action.ActionTypeID, action.EventType, action.CompletionMode,
		action.RequiredCount, action.Product, action.VisibleInChecklist, action.GuidanceEnabled,
		position, action.TimeRange.Kind,
		nullPositive(action.TimeRange.DurationDays), nullUnit(action.TimeRange.DurationUnit),
		nullNonNegative(action.TimeRange.Kind == models.TimeRangeWithPrevious, action.TimeRange.OffsetDays), nullUnit(action.TimeRange.OffsetUnit),
	); err != nil {
		return models.Action{}, errors.Wrap(err, "insert action")
	}

	if err := insertReminders(ctx, tx, &action); err != nil {
		return models.Action{}, err
	}

	const insertNode = `
		INSERT INTO journey_nodes (id, journey_id, node_type, action_id, position)
		VALUES ($1, $2, $3, $4, (SELECT COALESCE(MAX(position) + 1, 0) FROM journey_nodes WHERE journey_id = $2))
	`
	if _, err := tx.ExecContext(ctx, insertNode, uuid.NewString(), journeyID, models.NodeAction, action.ID); err != nil {
		return models.Action{}, errors.Wrap(err, "insert action node")
	}

	if _, err := tx.ExecContext(ctx, `UPDATE journeys SET updated_at = NOW() WHERE id = $1`, journeyID); err != nil {
		return models.Action{}, errors.Wrap(err, "touch journey")
	}

	if err := tx.Commit(); err != nil {
		return models.Action{}, errors.Wrap(err, "commit add action")
	}
	return action, nil
}

func (r *journeyRepository) UpdateAction(ctx context.Context, journeyID string, action models.Action) (models.Action, error) {
	if err := action.Validate(); err != nil {
		return models.Action{}, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Action{}, errors.Wrap(err, "begin update action")
	}
	defer tx.Rollback()

	const updateAction = `
		UPDATE actions SET
			event_type = $3, completion_mode = $4, required_count = $5, product = $6,
			visible_in_checklist = $7, guidance_enabled = $8,
			time_range_kind = $9, duration_days = $10, duration_unit = $11,
			offset_days = $12, offset_unit = $13
		WHERE id = $1 AND journey_id = $2
	`
	res, err := tx.ExecContext(ctx, updateAction,
		action.ID, journeyID, action.EventType, action.CompletionMode, action.RequiredCount, action.Product,
		action.VisibleInChecklist, action.GuidanceEnabled,
		action.TimeRange.Kind,
		nullPositive(action.TimeRange.DurationDays), nullUnit(action.TimeRange.DurationUnit),
		nullNonNegative(action.TimeRange.Kind == models.TimeRangeWithPrevious, action.TimeRange.OffsetDays), nullUnit(action.TimeRange.OffsetUnit),
	)
	if err != nil {
		return models.Action{}, errors.Wrap(err, "update action")
	}
	if err := requireRow(res); err != nil {
		return models.Action{}, err
	}

	// Reminders are replaced wholesale; their ordinal positions come from
	// the submitted order.
	if _, err := tx.ExecContext(ctx, `DELETE FROM reminders WHERE action_id = $1`, action.ID); err != nil {
		return models.Action{}, errors.Wrap(err, "clear reminders")
	}
	if err := insertReminders(ctx, tx, &action); err != nil {
		return models.Action{}, err
	}

	if _, err := tx.ExecContext(ctx, `UPDATE journeys SET updated_at = NOW() WHERE id = $1`, journeyID); err != nil {
		return models.Action{}, errors.Wrap(err, "touch journey")
	}

	if err := tx.Commit(); err != nil {
		return models.Action{}, errors.Wrap(err, "commit update action")
	}
	action.JourneyID = journeyID
	return action, nil
}

func (r *journeyRepository) DeleteAction(ctx context.Context, journeyID, actionID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin delete action")
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM actions WHERE id = $1 AND journey_id = $2`, actionID, journeyID)
	if err != nil {
		return errors.Wrap(err, "delete action")
	}
	if err := requireRow(res); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM journey_nodes WHERE action_id = $1`, actionID); err != nil {
		return errors.Wrap(err, "delete action node")
	}

	// Close the position gap so action order stays dense.
	const resequence = `
		UPDATE actions a SET position = sub.new_position
		FROM (
			SELECT id, ROW_NUMBER() OVER (ORDER BY position) - 1 AS new_position
			FROM actions WHERE journey_id = $1
		) sub
		WHERE a.id = sub.id
	`
	if _, err := tx.ExecContext(ctx, resequence, journeyID); err != nil {
		return errors.Wrap(err, "resequence actions")
	}

	if _, err := tx.ExecContext(ctx, `UPDATE journeys SET updated_at = NOW() WHERE id = $1`, journeyID); err != nil {
		return errors.Wrap(err, "touch journey")
	}
	return errors.Wrap(tx.Commit(), "commit delete action")
}

func (r *journeyRepository) ReorderActions(ctx context.Context, journeyID string, actionIDs []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin reorder actions")
	}
	defer tx.Rollback()

	for position, actionID := range actionIDs {
		res, err := tx.ExecContext(ctx,
			`UPDATE actions SET position = $3 WHERE id = $1 AND journey_id = $2`,
			actionID, journeyID, position,
		)
		if err != nil {
			return errors.Wrapf(err, "reorder action %s", actionID)
		}
		if err := requireRow(res); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE journey_nodes SET position = $3 WHERE action_id = $1 AND journey_id = $2`,
			actionID, journeyID, position+1,
		); err != nil {
			return errors.Wrapf(err, "reorder node for action %s", actionID)
		}
	}

	if _, err := tx.ExecContext(ctx, `UPDATE journeys SET updated_at = NOW() WHERE id = $1`, journeyID); err != nil {
		return errors.Wrap(err, "touch journey")
	}
	return errors.Wrap(tx.Commit(), "commit reorder actions")
}

func (r *journeyRepository) loadChildren(ctx context.Context, j *models.Journey) error {
	const nodeQuery = `
		SELECT id, node_type, action_id, position
		FROM journey_nodes
		WHERE journey_id = $1
		ORDER BY position
	`
	rows, err := r.db.QueryContext(ctx, nodeQuery, j.ID)
	if err != nil {
		return errors.Wrap(err, "load nodes")
	}
	defer rows.Close()

	j.Nodes = nil
	for rows.Next() {
		var (
			node     models.JourneyNode
			actionID sql.NullString
		)
		if err := rows.Scan(&node.ID, &node.NodeType, &actionID, &node.Position); err != nil {
			return errors.Wrap(err, "scan node")
		}
		if actionID.Valid {
			val := actionID.String
			node.ActionID = &val
		}
		j.Nodes = append(j.Nodes, node)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	const actionQuery = `
		SELECT id, journey_id, action_type_id, event_type, completion_mode,
		       required_count, product, visible_in_checklist, guidance_enabled,
		       position, time_range_kind, duration_days, duration_unit, offset_days, offset_unit
		FROM actions
		WHERE journey_id = $1
		ORDER BY position
	`
	actionRows, err := r.db.QueryContext(ctx, actionQuery, j.ID)
	if err != nil {
		return errors.Wrap(err, "load actions")
	}
	defer actionRows.Close()

	j.Actions = nil
	for actionRows.Next() {
		action, err := scanAction(actionRows)
		if err != nil {
			return err
		}
		j.Actions = append(j.Actions, action)
	}
	if err := actionRows.Err(); err != nil {
		return err
	}

	for i := range j.Actions {
		if err := r.loadReminders(ctx, &j.Actions[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *journeyRepository) loadReminders(ctx context.Context, action *models.Action) error {
	const query = `
		SELECT id, action_id, channel, frequency, frequency_days, position
		FROM reminders
		WHERE action_id = $1
		ORDER BY position
	`
	rows, err := r.db.QueryContext(ctx, query, action.ID)
	if err != nil {
		return errors.Wrap(err, "load reminders")
	}
	defer rows.Close()

	action.Reminders = nil
	for rows.Next() {
		var (
			rem  models.Reminder
			days sql.NullInt64
		)
		if err := rows.Scan(&rem.ID, &rem.ActionID, &rem.Channel, &rem.Frequency, &days, &rem.Position); err != nil {
			return errors.Wrap(err, "scan reminder")
		}
		if days.Valid {
			rem.FrequencyDays = int(days.Int64)
		}
		action.Reminders = append(action.Reminders, rem)
	}
	return rows.Err()
}

func scanAction(scanner interface{ Scan(dest ...interface{}) error }) (models.Action, error) {
	var (
		action        models.Action
		requiredCount sql.NullInt64
		durationDays  sql.NullInt64
		durationUnit  sql.NullString
		offsetDays    sql.NullInt64
		offsetUnit    sql.NullString
	)
	if err := scanner.Scan(
		&action.ID, &action.JourneyID, &action.ActionTypeID, &action.EventType, &action.CompletionMode,
		&requiredCount, &action.Product, &action.VisibleInChecklist, &action.GuidanceEnabled,
		&action.Position, &action.TimeRange.Kind, &durationDays, &durationUnit, &offsetDays, &offsetUnit,
	); err != nil {
		return models.Action{}, errors.Wrap(err, "scan action")
	}

	if requiredCount.Valid {
		val := int(requiredCount.Int64)
		action.RequiredCount = &val
	}
	if durationDays.Valid {
		action.TimeRange.DurationDays = int(durationDays.Int64)
	}
	if durationUnit.Valid {
		action.TimeRange.DurationUnit = models.TimeUnit(durationUnit.String)
	}
	if offsetDays.Valid {
		action.TimeRange.OffsetDays = int(offsetDays.Int64)
	}
	if offsetUnit.Valid {
		action.TimeRange.OffsetUnit = models.TimeUnit(offsetUnit.String)
	}
	return action, nil
}

func insertReminders(ctx context.Context, tx *sql.Tx, action *models.Action) error {
	const query = `
		INSERT INTO reminders (id, action_id, channel, frequency, frequency_days, position)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for i := range action.Reminders {
		rem := &action.Reminders[i]
		if err := rem.Validate(); err != nil {
			return err
		}
		if rem.ID == "" {
			rem.ID = uuid.NewString()
		}
		rem.ActionID = action.ID
		rem.Position = i

		var days interface{}
		if rem.Frequency == models.FrequencyEveryXDays {
			days = rem.FrequencyDays
		}
		if _, err := tx.ExecContext(ctx, query, rem.ID, action.ID, rem.Channel, rem.Frequency, days, i); err != nil {
			return errors.Wrap(err, "insert reminder")
		}
	}
	return nil
}

func nullPositive(v int) interface{} {
	if v < 1 {
		return nil
	}
	return v
}

func nullNonNegative(use bool, v int) interface{} {
	if !use || v < 0 {
		return nil
	}
	return v
}

func nullUnit(u models.TimeUnit) interface{} {
	if u == "" {
		return nil
	}
	return string(u)
}

// requireRow converts a zero-row write into sql.ErrNoRows so handlers can
// map missing resources to 404.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
