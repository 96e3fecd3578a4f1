package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/meltforce/liftlog/internal/models"
)

// TemplateExercise is one resolved entry of an expanded template.
type TemplateExercise struct {
	ExerciseID uuid.UUID `json:"exercise_id"`
	Name       string    `json:"name"`
	GroupName  string    `json:"group_name"`
}

// TemplateDetail is a template with its exercise list resolved against
// the catalog. Entries whose exercise has since been deleted are
// dropped rather than returned as holes.
type TemplateDetail struct {
	models.Template
	Exercises []TemplateExercise `json:"exercise_details"`
}

// CreateTemplate inserts a named ordered exercise list.
func (db *DB) CreateTemplate(ctx context.Context, name string, exerciseIDs []uuid.UUID) (models.Template, error) {
	t := models.Template{ID: uuid.New(), Name: name, Exercises: exerciseIDs}

	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return models.Template{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`INSERT INTO templates (id, name) VALUES ($1, $2)`, t.ID, t.Name); err != nil {
		return models.Template{}, fmt.Errorf("inserting template: %w", err)
	}
	if err := insertTemplateExercises(ctx, tx, t.ID, exerciseIDs); err != nil {
		return models.Template{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return models.Template{}, fmt.Errorf("committing: %w", err)
	}
	return t, nil
}

// UpdateTemplate replaces a template's name and/or exercise list. A nil
// exercise slice leaves the list untouched; an empty non-nil slice
// clears it.
func (db *DB) UpdateTemplate(ctx context.Context, id uuid.UUID, name *string, exerciseIDs []uuid.UUID) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE templates SET name = COALESCE($2, name) WHERE id = $1`, id, name)
	if err != nil {
		return fmt.Errorf("updating template: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrTemplateNotFound
	}

	if exerciseIDs != nil {
		if _, err := tx.Exec(ctx,
			`DELETE FROM template_exercises WHERE template_id = $1`, id); err != nil {
			return fmt.Errorf("clearing template exercises: %w", err)
		}
		if err := insertTemplateExercises(ctx, tx, id, exerciseIDs); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// DeleteTemplate removes a template and its exercise list.
func (db *DB) DeleteTemplate(ctx context.Context, id uuid.UUID) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM template_exercises WHERE template_id = $1`, id); err != nil {
		return fmt.Errorf("clearing template exercises: %w", err)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM templates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting template: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrTemplateNotFound
	}

	return tx.Commit(ctx)
}

// GetTemplate retrieves one template with its exercises resolved.
func (db *DB) GetTemplate(ctx context.Context, id uuid.UUID) (TemplateDetail, error) {
	var t models.Template
	err := db.Pool.QueryRow(ctx,
		`SELECT id, name FROM templates WHERE id = $1`, id).Scan(&t.ID, &t.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return TemplateDetail{}, ErrTemplateNotFound
		}
		return TemplateDetail{}, fmt.Errorf("querying template: %w", err)
	}

	detail := TemplateDetail{Template: t}
	rows, err := db.Pool.Query(ctx,
		`SELECT te.exercise_id, e.name, g.name
		 FROM template_exercises te
		 JOIN exercises e ON e.id = te.exercise_id
		 JOIN exercise_groups g ON g.id = e.group_id
		 WHERE te.template_id = $1
		 ORDER BY te.position ASC`, id)
	if err != nil {
		return TemplateDetail{}, fmt.Errorf("querying template exercises: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var te TemplateExercise
		if err := rows.Scan(&te.ExerciseID, &te.Name, &te.GroupName); err != nil {
			return TemplateDetail{}, fmt.Errorf("scanning template exercise: %w", err)
		}
		detail.Exercises = append(detail.Exercises, te)
		detail.Template.Exercises = append(detail.Template.Exercises, te.ExerciseID)
	}
	return detail, rows.Err()
}

// QueryTemplates retrieves all templates with exercises resolved.
func (db *DB) QueryTemplates(ctx context.Context) ([]TemplateDetail, error) {
	rows, err := db.Pool.Query(ctx, `SELECT id, name FROM templates ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying templates: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("scanning template: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	result := make([]TemplateDetail, 0, len(ids))
	for _, id := range ids {
		detail, err := db.GetTemplate(ctx, id)
		if err != nil {
			return nil, err
		}
		result = append(result, detail)
	}
	return result, nil
}

func insertTemplateExercises(ctx context.Context, tx pgx.Tx, templateID uuid.UUID, exerciseIDs []uuid.UUID) error {
	for i, exID := range exerciseIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO template_exercises (template_id, exercise_id, position) VALUES ($1, $2, $3)`,
			templateID, exID, i); err != nil {
			return fmt.Errorf("inserting template exercise: %w", err)
		}
	}
	return nil
}
