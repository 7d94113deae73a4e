package sqlite

import (
	"github.com/jtwaugh/taskweave/internal/models"
)

func (s *Store) GetSettings() (models.Settings, error) {
	row := s.db.QueryRow(`
		SELECT default_mode, buffer_minutes, horizon_days, start_next_day,
		       default_duration_min, planner_model, planner_base_url, timezone
		FROM settings WHERE id = 1`)

	var settings models.Settings
	err := row.Scan(
		&settings.DefaultMode, &settings.BufferMinutes, &settings.HorizonDays, &settings.StartNextDay,
		&settings.DefaultDurationMin, &settings.PlannerModel, &settings.PlannerBaseURL, &settings.Timezone,
	)
	if err != nil {
		return models.Settings{}, err
	}
	return settings, nil
}

func (s *Store) SaveSettings(settings models.Settings) error {
	_, err := s.db.Exec(`
		INSERT INTO settings (id, default_mode, buffer_minutes, horizon_days, start_next_day,
		                      default_duration_min, planner_model, planner_base_url, timezone)
		VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT(id) DO UPDATE SET
			default_mode = excluded.default_mode,
			buffer_minutes = excluded.buffer_minutes,
			horizon_days = excluded.horizon_days,
			start_next_day = excluded.start_next_day,
			default_duration_min = excluded.default_duration_min,
			planner_model = excluded.planner_model,
			planner_base_url = excluded.planner_base_url,
			timezone = excluded.timezone`,
		settings.DefaultMode, settings.BufferMinutes, settings.HorizonDays, settings.StartNextDay,
		settings.DefaultDurationMin, settings.PlannerModel, settings.PlannerBaseURL, settings.Timezone,
	)
	return err
}
