package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jtwaugh/taskweave/internal/models"
)

func (s *Store) AddTask(task models.Task) error {
	return s.UpdateTask(task)
}

func (s *Store) GetTask(id string) (models.Task, error) {
	row := s.db.QueryRow(`
		SELECT id, title, description, due_date, estimated_min, priority, created_at, deleted_at
		FROM tasks WHERE id = $1 AND deleted_at IS NULL`, id)
	return scanTask(row)
}

func (s *Store) GetAllTasks() ([]models.Task, error) {
	return s.queryTasks(`
		SELECT id, title, description, due_date, estimated_min, priority, created_at, deleted_at
		FROM tasks WHERE deleted_at IS NULL ORDER BY created_at`)
}

func (s *Store) GetAllTasksIncludingDeleted() ([]models.Task, error) {
	return s.queryTasks(`
		SELECT id, title, description, due_date, estimated_min, priority, created_at, deleted_at
		FROM tasks ORDER BY created_at`)
}

func (s *Store) UpdateTask(task models.Task) error {
	_, err := s.db.Exec(`
		INSERT INTO tasks (id, title, description, due_date, estimated_min, priority, created_at, deleted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			due_date = excluded.due_date,
			estimated_min = excluded.estimated_min,
			priority = excluded.priority,
			deleted_at = excluded.deleted_at`,
		task.ID, task.Title, task.Description, task.DueDate, task.EstimatedMin, task.Priority,
		task.CreatedAt, task.DeletedAt,
	)
	return err
}

// DeleteTask soft-deletes the task and hard-deletes its calendar placements.
// Subtasks stay attached so RestoreTask brings the task back whole.
func (s *Store) DeleteTask(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	res, err := tx.Exec(`UPDATE tasks SET deleted_at = $1 WHERE id = $2 AND deleted_at IS NULL`,
		time.Now().Format(time.RFC3339), id)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	if affected == 0 {
		_ = tx.Rollback()
		return fmt.Errorf("task not found: %s", id)
	}

	if _, err := tx.Exec(`DELETE FROM scheduled_tasks WHERE task_id = $1`, id); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

func (s *Store) RestoreTask(id string) error {
	res, err := s.db.Exec(`UPDATE tasks SET deleted_at = NULL WHERE id = $1 AND deleted_at IS NOT NULL`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("no deleted task found: %s", id)
	}
	return nil
}

func (s *Store) queryTasks(query string, args ...interface{}) ([]models.Task, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTask(row rowScanner) (models.Task, error) {
	var t models.Task
	var deletedAt sql.NullString

	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.DueDate, &t.EstimatedMin, &t.Priority, &t.CreatedAt, &deletedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Task{}, fmt.Errorf("task not found")
		}
		return models.Task{}, err
	}

	if deletedAt.Valid {
		t.DeletedAt = &deletedAt.String
	}
	return t, nil
}
