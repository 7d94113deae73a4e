package postgres

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jtwaugh/taskweave/internal/models"
)

func (s *Store) AddTimeSlot(slot models.TimeSlot) error {
	weekdays, err := marshalWeekdays(slot.Weekdays)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
		INSERT INTO time_slots (id, start_time, end_time, weekdays, deleted_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT(id) DO UPDATE SET
			start_time = excluded.start_time,
			end_time = excluded.end_time,
			weekdays = excluded.weekdays,
			deleted_at = excluded.deleted_at`,
		slot.ID, slot.Start, slot.End, weekdays, slot.DeletedAt,
	)
	return err
}

func (s *Store) GetTimeSlot(id string) (models.TimeSlot, error) {
	row := s.db.QueryRow(`
		SELECT id, start_time, end_time, weekdays, deleted_at
		FROM time_slots WHERE id = $1 AND deleted_at IS NULL`, id)
	return scanTimeSlot(row)
}

func (s *Store) GetAllTimeSlots() ([]models.TimeSlot, error) {
	rows, err := s.db.Query(`
		SELECT id, start_time, end_time, weekdays, deleted_at
		FROM time_slots WHERE deleted_at IS NULL ORDER BY start_time`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slots []models.TimeSlot
	for rows.Next() {
		slot, err := scanTimeSlot(rows)
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}
	return slots, rows.Err()
}

func (s *Store) DeleteTimeSlot(id string) error {
	res, err := s.db.Exec(`UPDATE time_slots SET deleted_at = $1 WHERE id = $2 AND deleted_at IS NULL`,
		time.Now().Format(time.RFC3339), id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("time slot not found: %s", id)
	}
	return nil
}

func (s *Store) RestoreTimeSlot(id string) error {
	res, err := s.db.Exec(`UPDATE time_slots SET deleted_at = NULL WHERE id = $1 AND deleted_at IS NOT NULL`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("no deleted time slot found: %s", id)
	}
	return nil
}

func marshalWeekdays(weekdays []time.Weekday) (string, error) {
	ints := make([]int, len(weekdays))
	for i, wd := range weekdays {
		ints[i] = int(wd)
	}
	data, err := json.Marshal(ints)
	if err != nil {
		return "", fmt.Errorf("failed to marshal weekdays: %w", err)
	}
	return string(data), nil
}

func scanTimeSlot(row rowScanner) (models.TimeSlot, error) {
	var slot models.TimeSlot
	var weekdays string
	var deletedAt sql.NullString

	err := row.Scan(&slot.ID, &slot.Start, &slot.End, &weekdays, &deletedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.TimeSlot{}, fmt.Errorf("time slot not found")
		}
		return models.TimeSlot{}, err
	}

	if deletedAt.Valid {
		slot.DeletedAt = &deletedAt.String
	}

	var ints []int
	if err := json.Unmarshal([]byte(weekdays), &ints); err == nil {
		for _, w := range ints {
			slot.Weekdays = append(slot.Weekdays, time.Weekday(w))
		}
	}
	return slot, nil
}
