package system

import (
	"path/filepath"
	"testing"

	"github.com/jtwaugh/taskweave/internal/cli"
	"github.com/jtwaugh/taskweave/internal/scheduler"
	"github.com/jtwaugh/taskweave/internal/storage/sqlite"
)

func newTestContext(t *testing.T) *cli.Context {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "test.db")

	return &cli.Context{
		Store:     sqlite.NewStore(dbPath),
		Scheduler: scheduler.New(),
	}
}

func TestInitCmd(t *testing.T) {
	ctx := newTestContext(t)

	cmd := &InitCmd{}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	defer ctx.Store.Close()

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatalf("failed to get settings: %v", err)
	}
	if settings.HorizonDays <= 0 {
		t.Errorf("expected default settings, got %+v", settings)
	}

	slots, err := ctx.Store.GetAllTimeSlots()
	if err != nil {
		t.Fatalf("failed to get slots: %v", err)
	}
	if len(slots) != 1 {
		t.Fatalf("expected default availability window, got %d slots", len(slots))
	}
	if slot := slots[0]; slot.Start != "09:00" || slot.End != "17:00" || len(slot.Weekdays) != 5 {
		t.Errorf("unexpected default slot: %+v", slot)
	}
}

func TestInitCmd_NoSlot(t *testing.T) {
	ctx := newTestContext(t)

	cmd := &InitCmd{NoSlot: true}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	defer ctx.Store.Close()

	slots, err := ctx.Store.GetAllTimeSlots()
	if err != nil {
		t.Fatalf("failed to get slots: %v", err)
	}
	if len(slots) != 0 {
		t.Errorf("expected no slots with --no-slot, got %d", len(slots))
	}
}

func TestInitCmd_IdempotentWithoutForce(t *testing.T) {
	ctx := newTestContext(t)

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("first init failed: %v", err)
	}
	// Re-running keeps the existing slot rather than seeding another.
	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("second init failed: %v", err)
	}
	defer ctx.Store.Close()

	slots, err := ctx.Store.GetAllTimeSlots()
	if err != nil {
		t.Fatalf("failed to get slots: %v", err)
	}
	if len(slots) != 1 {
		t.Errorf("expected 1 slot after repeated init, got %d", len(slots))
	}
}

func TestInitCmd_ForceResets(t *testing.T) {
	ctx := newTestContext(t)

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("first init failed: %v", err)
	}
	buffer := 42
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatalf("failed to get settings: %v", err)
	}
	settings.BufferMinutes = buffer
	if err := ctx.Store.SaveSettings(settings); err != nil {
		t.Fatalf("failed to save settings: %v", err)
	}

	if err := (&InitCmd{Force: true}).Run(ctx); err != nil {
		t.Fatalf("forced init failed: %v", err)
	}
	defer ctx.Store.Close()

	reset, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatalf("failed to get settings: %v", err)
	}
	if reset.BufferMinutes == buffer {
		t.Error("expected settings to be reset after --force")
	}
}

func TestMigrateCmd(t *testing.T) {
	ctx := newTestContext(t)

	if err := (&InitCmd{NoSlot: true}).Run(ctx); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if err := ctx.Store.Close(); err != nil {
		t.Fatalf("failed to close store: %v", err)
	}

	// A freshly initialized database is already at the latest version.
	if err := (&MigrateCmd{}).Run(ctx); err != nil {
		t.Errorf("migrate failed: %v", err)
	}
}
