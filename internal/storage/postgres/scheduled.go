package postgres

import (
	"fmt"

	"github.com/jtwaugh/taskweave/internal/models"
)

func (s *Store) AddScheduledTask(placement models.ScheduledTask) error {
	_, err := s.db.Exec(`
		INSERT INTO scheduled_tasks (id, task_id, subtask_id, date, start_time, end_time, duration_min)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		placement.ID, placement.TaskID, placement.SubtaskID, placement.Date,
		placement.Start, placement.End, placement.DurationMin,
	)
	return err
}

func (s *Store) GetScheduledTasks(date string) ([]models.ScheduledTask, error) {
	return s.queryScheduled(`
		SELECT id, task_id, subtask_id, date, start_time, end_time, duration_min
		FROM scheduled_tasks WHERE date = $1 ORDER BY date, start_time`, date)
}

func (s *Store) GetScheduledTasksInRange(startDate, endDate string) ([]models.ScheduledTask, error) {
	return s.queryScheduled(`
		SELECT id, task_id, subtask_id, date, start_time, end_time, duration_min
		FROM scheduled_tasks WHERE date >= $1 AND date <= $2 ORDER BY date, start_time`, startDate, endDate)
}

func (s *Store) GetAllScheduledTasks() ([]models.ScheduledTask, error) {
	return s.queryScheduled(`
		SELECT id, task_id, subtask_id, date, start_time, end_time, duration_min
		FROM scheduled_tasks ORDER BY date, start_time`)
}

func (s *Store) GetScheduledTasksForTask(taskID string) ([]models.ScheduledTask, error) {
	return s.queryScheduled(`
		SELECT id, task_id, subtask_id, date, start_time, end_time, duration_min
		FROM scheduled_tasks WHERE task_id = $1 ORDER BY date, start_time`, taskID)
}

func (s *Store) DeleteScheduledTask(id string) error {
	res, err := s.db.Exec(`DELETE FROM scheduled_tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("scheduled task not found: %s", id)
	}
	return nil
}

func (s *Store) DeleteScheduledTasksForTask(taskID string) error {
	_, err := s.db.Exec(`DELETE FROM scheduled_tasks WHERE task_id = $1`, taskID)
	return err
}

func (s *Store) queryScheduled(query string, args ...interface{}) ([]models.ScheduledTask, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var placements []models.ScheduledTask
	for rows.Next() {
		var p models.ScheduledTask
		if err := rows.Scan(&p.ID, &p.TaskID, &p.SubtaskID, &p.Date, &p.Start, &p.End, &p.DurationMin); err != nil {
			return nil, err
		}
		placements = append(placements, p)
	}
	return placements, rows.Err()
}
