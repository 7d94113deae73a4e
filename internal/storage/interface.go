package storage

import "github.com/jtwaugh/taskweave/internal/models"

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Tasks
	AddTask(models.Task) error
	GetTask(id string) (models.Task, error)
	GetAllTasks() ([]models.Task, error)
	GetAllTasksIncludingDeleted() ([]models.Task, error)
	UpdateTask(models.Task) error
	// DeleteTask soft-deletes the task and removes all of its calendar
	// placements. Subtasks are kept so a restore brings the task back whole.
	DeleteTask(id string) error
	RestoreTask(id string) error

	// Subtasks
	AddSubtask(models.Subtask) error
	GetSubtask(id string) (models.Subtask, error)
	GetSubtasks(taskID string) ([]models.Subtask, error)
	UpdateSubtask(models.Subtask) error
	DeleteSubtask(id string) error

	// Availability windows
	AddTimeSlot(models.TimeSlot) error
	GetTimeSlot(id string) (models.TimeSlot, error)
	GetAllTimeSlots() ([]models.TimeSlot, error)
	DeleteTimeSlot(id string) error
	RestoreTimeSlot(id string) error

	// Calendar placements
	AddScheduledTask(models.ScheduledTask) error
	GetScheduledTasks(date string) ([]models.ScheduledTask, error)
	GetScheduledTasksInRange(startDate, endDate string) ([]models.ScheduledTask, error)
	GetAllScheduledTasks() ([]models.ScheduledTask, error)
	GetScheduledTasksForTask(taskID string) ([]models.ScheduledTask, error)
	DeleteScheduledTask(id string) error
	DeleteScheduledTasksForTask(taskID string) error

	// Utils
	GetConfigPath() string
}
