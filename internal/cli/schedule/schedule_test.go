package schedule

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/jtwaugh/taskweave/internal/cli"
	"github.com/jtwaugh/taskweave/internal/models"
	"github.com/jtwaugh/taskweave/internal/scheduler"
	"github.com/jtwaugh/taskweave/internal/storage/sqlite"
)

// 2026-01-05 is a Monday.
const testStartDate = "2026-01-05"

func setupTestDB(t *testing.T) (*cli.Context, func()) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "test.db")

	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}

	ctx := &cli.Context{
		Store:     store,
		Scheduler: scheduler.New(),
	}

	cleanup := func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	}

	return ctx, cleanup
}

func seedTask(t *testing.T, ctx *cli.Context, estimatedMin int) models.Task {
	t.Helper()
	task := models.Task{
		ID:           "task-1",
		Title:        "Write the report",
		EstimatedMin: estimatedMin,
		Priority:     3,
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
	}
	if err := ctx.Store.AddTask(task); err != nil {
		t.Fatalf("failed to add task: %v", err)
	}
	return task
}

func seedSubtasks(t *testing.T, ctx *cli.Context, taskID string, durations ...int) {
	t.Helper()
	for i, d := range durations {
		st := models.Subtask{
			ID:          taskID + "-st-" + string(rune('a'+i)),
			TaskID:      taskID,
			Title:       "Step",
			DurationMin: d,
			Order:       i + 1,
		}
		if err := ctx.Store.AddSubtask(st); err != nil {
			t.Fatalf("failed to add subtask: %v", err)
		}
	}
}

func seedWeekdaySlot(t *testing.T, ctx *cli.Context, start, end string) {
	t.Helper()
	slot := models.TimeSlot{
		ID:    "slot-1",
		Start: start,
		End:   end,
		Weekdays: []time.Weekday{
			time.Sunday, time.Monday, time.Tuesday, time.Wednesday,
			time.Thursday, time.Friday, time.Saturday,
		},
	}
	if err := ctx.Store.AddTimeSlot(slot); err != nil {
		t.Fatalf("failed to add slot: %v", err)
	}
}

func TestScheduleCmd_PlacesSubtasks(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	task := seedTask(t, ctx, 90)
	seedSubtasks(t, ctx, task.ID, 45, 45)
	seedWeekdaySlot(t, ctx, "09:00", "17:00")

	cmd := &ScheduleCmd{TaskID: task.ID, Start: testStartDate, Buffer: 10, Horizon: 7}
	if err := cmd.Validate(); err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("schedule failed: %v", err)
	}

	placements, err := ctx.Store.GetScheduledTasksForTask(task.ID)
	if err != nil {
		t.Fatalf("failed to get placements: %v", err)
	}
	if len(placements) != 2 {
		t.Fatalf("expected 2 placements, got %d", len(placements))
	}
	for _, p := range placements {
		if p.ID == "" {
			t.Error("expected placement to have an ID after save")
		}
		if p.Date < testStartDate {
			t.Errorf("placement %s before start date", p.Date)
		}
	}
}

func TestScheduleCmd_DryRunSavesNothing(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	task := seedTask(t, ctx, 60)
	seedSubtasks(t, ctx, task.ID, 30, 30)
	seedWeekdaySlot(t, ctx, "09:00", "17:00")

	cmd := &ScheduleCmd{TaskID: task.ID, Start: testStartDate, Buffer: 10, Horizon: 7, DryRun: true}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("schedule dry run failed: %v", err)
	}

	placements, err := ctx.Store.GetScheduledTasksForTask(task.ID)
	if err != nil {
		t.Fatalf("failed to get placements: %v", err)
	}
	if len(placements) != 0 {
		t.Errorf("expected no placements after dry run, got %d", len(placements))
	}
}

func TestScheduleCmd_WholeTaskWithoutSubtasks(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	task := seedTask(t, ctx, 120)
	seedWeekdaySlot(t, ctx, "09:00", "17:00")

	cmd := &ScheduleCmd{TaskID: task.ID, Start: testStartDate, Buffer: 10, Horizon: 7}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("schedule failed: %v", err)
	}

	placements, err := ctx.Store.GetScheduledTasksForTask(task.ID)
	if err != nil {
		t.Fatalf("failed to get placements: %v", err)
	}
	if len(placements) != 1 {
		t.Fatalf("expected 1 placement, got %d", len(placements))
	}
	if placements[0].DurationMin != 120 {
		t.Errorf("placement duration = %d, want 120", placements[0].DurationMin)
	}
}

func TestScheduleCmd_SkipsDoneSubtasks(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	task := seedTask(t, ctx, 90)
	seedSubtasks(t, ctx, task.ID, 45, 45)
	seedWeekdaySlot(t, ctx, "09:00", "17:00")

	subtasks, err := ctx.Store.GetSubtasks(task.ID)
	if err != nil {
		t.Fatalf("failed to get subtasks: %v", err)
	}
	subtasks[0].Done = true
	if err := ctx.Store.UpdateSubtask(subtasks[0]); err != nil {
		t.Fatalf("failed to update subtask: %v", err)
	}

	cmd := &ScheduleCmd{TaskID: task.ID, Start: testStartDate, Buffer: 10, Horizon: 7}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("schedule failed: %v", err)
	}

	placements, err := ctx.Store.GetScheduledTasksForTask(task.ID)
	if err != nil {
		t.Fatalf("failed to get placements: %v", err)
	}
	if len(placements) != 1 {
		t.Errorf("expected 1 placement for the pending subtask, got %d", len(placements))
	}
}

func TestScheduleCmd_Validate(t *testing.T) {
	badDate := &ScheduleCmd{TaskID: "t", Start: "Jan 5"}
	if err := badDate.Validate(); err == nil {
		t.Error("expected error for invalid start date")
	}

	badMode := &ScheduleCmd{TaskID: "t", Mode: "chaotic"}
	if err := badMode.Validate(); err == nil {
		t.Error("expected error for invalid mode")
	}
}

func TestFeasibilityCmd(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	task := seedTask(t, ctx, 90)
	seedSubtasks(t, ctx, task.ID, 45, 45)
	seedWeekdaySlot(t, ctx, "09:00", "17:00")

	cmd := &FeasibilityCmd{TaskID: task.ID, Start: testStartDate, Buffer: 10, Horizon: 7}
	if err := cmd.Run(ctx); err != nil {
		t.Errorf("feasibility failed: %v", err)
	}
}

func TestFeasibilityCmd_NoSlots(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	task := seedTask(t, ctx, 90)

	cmd := &FeasibilityCmd{TaskID: task.ID, Start: testStartDate, Buffer: 10, Horizon: 7}
	if err := cmd.Run(ctx); err == nil {
		t.Error("expected error when no availability windows exist")
	}
}
