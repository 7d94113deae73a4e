package tasks

import (
	"path/filepath"
	"testing"

	"github.com/jtwaugh/taskweave/internal/cli"
	"github.com/jtwaugh/taskweave/internal/models"
	"github.com/jtwaugh/taskweave/internal/scheduler"
	"github.com/jtwaugh/taskweave/internal/storage/sqlite"
)

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

func addTestTask(t *testing.T, ctx *cli.Context, title string) models.Task {
	t.Helper()
	cmd := &TaskAddCmd{Title: title, Estimate: 60, Priority: 3}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("failed to add task: %v", err)
	}
	tasks, err := ctx.Store.GetAllTasks()
	if err != nil {
		t.Fatalf("failed to list tasks: %v", err)
	}
	for _, task := range tasks {
		if task.Title == title {
			return task
		}
	}
	t.Fatalf("task %q not found after add", title)
	return models.Task{}
}

func TestTaskAddCmd(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	cmd := &TaskAddCmd{
		Title:    "Learn Go generics",
		Due:      "2026-09-30",
		Estimate: 120,
		Priority: 2,
	}
	if err := cmd.Validate(); err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("task add failed: %v", err)
	}

	tasks, err := ctx.Store.GetAllTasks()
	if err != nil {
		t.Fatalf("failed to list tasks: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	task := tasks[0]
	if task.Title != "Learn Go generics" || task.DueDate != "2026-09-30" || task.EstimatedMin != 120 || task.Priority != 2 {
		t.Errorf("unexpected task: %+v", task)
	}
}

func TestTaskAddCmd_Validate(t *testing.T) {
	badPriority := &TaskAddCmd{Title: "x", Estimate: 60, Priority: 6}
	if err := badPriority.Validate(); err == nil {
		t.Error("expected error for priority out of range")
	}

	badEstimate := &TaskAddCmd{Title: "x", Estimate: 0, Priority: 3}
	if err := badEstimate.Validate(); err == nil {
		t.Error("expected error for zero estimate")
	}

	badDue := &TaskAddCmd{Title: "x", Estimate: 60, Priority: 3, Due: "30-09-2026"}
	if err := badDue.Validate(); err == nil {
		t.Error("expected error for invalid due date")
	}
}

func TestTaskEditCmd(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	task := addTestTask(t, ctx, "Draft outline")

	title := "Draft full outline"
	estimate := 90
	cmd := &TaskEditCmd{ID: task.ID, Title: &title, Estimate: &estimate}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("task edit failed: %v", err)
	}

	updated, err := ctx.Store.GetTask(task.ID)
	if err != nil {
		t.Fatalf("failed to get task: %v", err)
	}
	if updated.Title != "Draft full outline" || updated.EstimatedMin != 90 {
		t.Errorf("unexpected task after edit: %+v", updated)
	}
}

func TestTaskEditCmd_InvalidValues(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	task := addTestTask(t, ctx, "Draft outline")

	badDue := "not-a-date"
	if err := (&TaskEditCmd{ID: task.ID, Due: &badDue}).Run(ctx); err == nil {
		t.Error("expected error for invalid due date")
	}

	badPriority := 0
	if err := (&TaskEditCmd{ID: task.ID, Priority: &badPriority}).Run(ctx); err == nil {
		t.Error("expected error for priority out of range")
	}
}

func TestTaskDeleteAndRestoreCmd(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	task := addTestTask(t, ctx, "Disposable task")

	if err := (&TaskDeleteCmd{ID: task.ID}).Run(ctx); err != nil {
		t.Fatalf("task delete failed: %v", err)
	}

	active, err := ctx.Store.GetAllTasks()
	if err != nil {
		t.Fatalf("failed to list tasks: %v", err)
	}
	if len(active) != 0 {
		t.Errorf("expected no active tasks after delete, got %d", len(active))
	}

	if err := (&TaskRestoreCmd{ID: task.ID}).Run(ctx); err != nil {
		t.Fatalf("task restore failed: %v", err)
	}

	restored, err := ctx.Store.GetTask(task.ID)
	if err != nil {
		t.Fatalf("failed to get restored task: %v", err)
	}
	if restored.DeletedAt != nil {
		t.Error("expected DeletedAt to be cleared after restore")
	}
}

func TestSubtaskAddCmd(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	task := addTestTask(t, ctx, "Learn Go generics")

	cmd := &SubtaskAddCmd{
		TaskID:     task.ID,
		Title:      "Read the type parameters proposal",
		Duration:   30,
		Phase:      "learn",
		Difficulty: "moderate",
	}
	if err := cmd.Validate(); err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("subtask add failed: %v", err)
	}

	subtasks, err := ctx.Store.GetSubtasks(task.ID)
	if err != nil {
		t.Fatalf("failed to get subtasks: %v", err)
	}
	if len(subtasks) != 1 {
		t.Fatalf("expected 1 subtask, got %d", len(subtasks))
	}
	st := subtasks[0]
	if st.DurationMin != 30 || st.Order != 1 || st.Phase != models.PhaseLearn {
		t.Errorf("unexpected subtask: %+v", st)
	}
}

func TestSubtaskAddCmd_Validate(t *testing.T) {
	badPhase := &SubtaskAddCmd{TaskID: "t", Title: "x", Duration: 30, Phase: "cram"}
	if err := badPhase.Validate(); err == nil {
		t.Error("expected error for invalid phase")
	}

	badDifficulty := &SubtaskAddCmd{TaskID: "t", Title: "x", Duration: 30, Difficulty: "brutal"}
	if err := badDifficulty.Validate(); err == nil {
		t.Error("expected error for invalid difficulty")
	}
}

func TestSubtaskDoneCmd(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	task := addTestTask(t, ctx, "Learn Go generics")
	add := &SubtaskAddCmd{TaskID: task.ID, Title: "Write a generic min", Duration: 20}
	if err := add.Run(ctx); err != nil {
		t.Fatalf("subtask add failed: %v", err)
	}

	subtasks, err := ctx.Store.GetSubtasks(task.ID)
	if err != nil {
		t.Fatalf("failed to get subtasks: %v", err)
	}

	if err := (&SubtaskDoneCmd{ID: subtasks[0].ID}).Run(ctx); err != nil {
		t.Fatalf("subtask done failed: %v", err)
	}

	updated, err := ctx.Store.GetSubtask(subtasks[0].ID)
	if err != nil {
		t.Fatalf("failed to get subtask: %v", err)
	}
	if !updated.Done {
		t.Error("expected subtask to be marked done")
	}
}

func TestTaskListCmd(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	addTestTask(t, ctx, "Visible task")
	deleted := addTestTask(t, ctx, "Hidden task")
	if err := ctx.Store.DeleteTask(deleted.ID); err != nil {
		t.Fatalf("failed to delete task: %v", err)
	}

	if err := (&TaskListCmd{ShowIDs: true}).Run(ctx); err != nil {
		t.Errorf("task list failed: %v", err)
	}
	if err := (&TaskListCmd{All: true}).Run(ctx); err != nil {
		t.Errorf("task list --all failed: %v", err)
	}

	active, err := ctx.Store.GetAllTasks()
	if err != nil {
		t.Fatalf("failed to get tasks: %v", err)
	}
	all, err := ctx.Store.GetAllTasksIncludingDeleted()
	if err != nil {
		t.Fatalf("failed to get all tasks: %v", err)
	}
	if len(active) != 1 || len(all) != 2 {
		t.Errorf("active = %d, all = %d; want 1 and 2", len(active), len(all))
	}
}
