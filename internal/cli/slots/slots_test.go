package slots

import (
	"path/filepath"
	"testing"

	"github.com/jtwaugh/taskweave/internal/cli"
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

func TestSlotAddCmd(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	cmd := &SlotAddCmd{Start: "09:00", End: "12:00", Weekdays: "mon,wed,fri"}
	if err := cmd.Validate(); err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("slot add failed: %v", err)
	}

	slots, err := ctx.Store.GetAllTimeSlots()
	if err != nil {
		t.Fatalf("failed to get slots: %v", err)
	}
	if len(slots) != 1 {
		t.Fatalf("expected 1 slot, got %d", len(slots))
	}
	slot := slots[0]
	if slot.Start != "09:00" || slot.End != "12:00" || len(slot.Weekdays) != 3 {
		t.Errorf("unexpected slot: %+v", slot)
	}
}

func TestSlotAddCmd_Validate(t *testing.T) {
	badStart := &SlotAddCmd{Start: "9am", End: "12:00"}
	if err := badStart.Validate(); err == nil {
		t.Error("expected error for invalid start time")
	}

	inverted := &SlotAddCmd{Start: "14:00", End: "12:00"}
	if err := inverted.Validate(); err == nil {
		t.Error("expected error for start after end")
	}
}

func TestSlotAddCmd_InvalidWeekdays(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	cmd := &SlotAddCmd{Start: "09:00", End: "12:00", Weekdays: "mon,funday"}
	if err := cmd.Run(ctx); err == nil {
		t.Error("expected error for invalid weekday name")
	}
}

func TestSlotAddCmd_OverlapStillAdds(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	first := &SlotAddCmd{Start: "09:00", End: "12:00", Weekdays: "mon"}
	if err := first.Run(ctx); err != nil {
		t.Fatalf("slot add failed: %v", err)
	}

	// Overlaps are warned about, not rejected.
	second := &SlotAddCmd{Start: "11:00", End: "13:00", Weekdays: "mon"}
	if err := second.Run(ctx); err != nil {
		t.Fatalf("overlapping slot add failed: %v", err)
	}

	slots, err := ctx.Store.GetAllTimeSlots()
	if err != nil {
		t.Fatalf("failed to get slots: %v", err)
	}
	if len(slots) != 2 {
		t.Errorf("expected 2 slots, got %d", len(slots))
	}
}

func TestSlotRemoveAndRestoreCmd(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	add := &SlotAddCmd{Start: "09:00", End: "12:00", Weekdays: "mon,tue"}
	if err := add.Run(ctx); err != nil {
		t.Fatalf("slot add failed: %v", err)
	}
	slots, err := ctx.Store.GetAllTimeSlots()
	if err != nil {
		t.Fatalf("failed to get slots: %v", err)
	}
	id := slots[0].ID

	if err := (&SlotRemoveCmd{ID: id}).Run(ctx); err != nil {
		t.Fatalf("slot remove failed: %v", err)
	}
	remaining, err := ctx.Store.GetAllTimeSlots()
	if err != nil {
		t.Fatalf("failed to get slots: %v", err)
	}
	if len(remaining) != 0 {
		t.Errorf("expected no active slots after remove, got %d", len(remaining))
	}

	if err := (&SlotRestoreCmd{ID: id}).Run(ctx); err != nil {
		t.Fatalf("slot restore failed: %v", err)
	}
	restored, err := ctx.Store.GetAllTimeSlots()
	if err != nil {
		t.Fatalf("failed to get slots: %v", err)
	}
	if len(restored) != 1 {
		t.Errorf("expected 1 active slot after restore, got %d", len(restored))
	}
}

func TestSlotListCmd(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	if err := (&SlotListCmd{}).Run(ctx); err != nil {
		t.Errorf("slot list on empty store failed: %v", err)
	}

	add := &SlotAddCmd{Start: "18:00", End: "21:00", Weekdays: "sat,sun"}
	if err := add.Run(ctx); err != nil {
		t.Fatalf("slot add failed: %v", err)
	}
	if err := (&SlotListCmd{}).Run(ctx); err != nil {
		t.Errorf("slot list failed: %v", err)
	}
}
