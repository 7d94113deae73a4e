package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jtwaugh/taskweave/internal/models"
)

func (s *Store) AddSubtask(subtask models.Subtask) error {
	return s.UpdateSubtask(subtask)
}

func (s *Store) GetSubtask(id string) (models.Subtask, error) {
	row := s.db.QueryRow(`
		SELECT id, task_id, title, duration_min, phase, difficulty, sort_order, done
		FROM subtasks WHERE id = $1`, id)

	var st models.Subtask
	var phase, difficulty string
	err := row.Scan(&st.ID, &st.TaskID, &st.Title, &st.DurationMin, &phase, &difficulty, &st.Order, &st.Done)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Subtask{}, fmt.Errorf("subtask not found: %s", id)
		}
		return models.Subtask{}, err
	}
	st.Phase = models.SubtaskPhase(phase)
	st.Difficulty = models.Difficulty(difficulty)
	return st, nil
}

func (s *Store) GetSubtasks(taskID string) ([]models.Subtask, error) {
	rows, err := s.db.Query(`
		SELECT id, task_id, title, duration_min, phase, difficulty, sort_order, done
		FROM subtasks WHERE task_id = $1 ORDER BY sort_order`, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subtasks []models.Subtask
	for rows.Next() {
		var st models.Subtask
		var phase, difficulty string
		if err := rows.Scan(&st.ID, &st.TaskID, &st.Title, &st.DurationMin, &phase, &difficulty, &st.Order, &st.Done); err != nil {
			return nil, err
		}
		st.Phase = models.SubtaskPhase(phase)
		st.Difficulty = models.Difficulty(difficulty)
		subtasks = append(subtasks, st)
	}
	return subtasks, rows.Err()
}

func (s *Store) UpdateSubtask(subtask models.Subtask) error {
	_, err := s.db.Exec(`
		INSERT INTO subtasks (id, task_id, title, duration_min, phase, difficulty, sort_order, done)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			duration_min = excluded.duration_min,
			phase = excluded.phase,
			difficulty = excluded.difficulty,
			sort_order = excluded.sort_order,
			done = excluded.done`,
		subtask.ID, subtask.TaskID, subtask.Title, subtask.DurationMin,
		string(subtask.Phase), string(subtask.Difficulty), subtask.Order, subtask.Done,
	)
	return err
}

func (s *Store) DeleteSubtask(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(`DELETE FROM scheduled_tasks WHERE subtask_id = $1`, id); err != nil {
		_ = tx.Rollback()
		return err
	}

	res, err := tx.Exec(`DELETE FROM subtasks WHERE id = $1`, id)
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
		return fmt.Errorf("subtask not found: %s", id)
	}

	return tx.Commit()
}
