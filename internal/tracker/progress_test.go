package tracker

import (
	"testing"

	"github.com/lifesyncapp/lifesync/internal/model"
)

func TestAddWaterCrossesGoalOnce(t *testing.T) {
	log := model.WaterLog{TodayML: 1750, Date: "2026-08-29"}

	log, crossed := AddWater(log, GlassML, 2000)
	if !crossed {
		t.Fatal("expected goal crossing on this addition")
	}
	if log.TodayML != 2000 {
		t.Fatalf("expected 2000ml, got %d", log.TodayML)
	}

	log, crossed = AddWater(log, GlassML, 2000)
	if crossed {
		t.Fatal("expected no second crossing")
	}
	if log.TodayML != 2250 {
		t.Fatalf("expected 2250ml, got %d", log.TodayML)
	}
}

func TestAddWaterIgnoresNonPositive(t *testing.T) {
	log := model.WaterLog{TodayML: 500, Date: "2026-08-29"}
	got, crossed := AddWater(log, 0, 2000)
	if got != log || crossed {
		t.Fatalf("expected no-op, got: %+v crossed=%v", got, crossed)
	}
}

func TestResetWaterKeepsStreak(t *testing.T) {
	log := model.WaterLog{TodayML: 1500, Date: "2026-08-29", Streak: 4}
	got := ResetWater(log)
	if got.TodayML != 0 || got.Streak != 4 || got.Date != "2026-08-29" {
		t.Fatalf("unexpected reset result: %+v", got)
	}
}

func TestGlassesAndProgressPercent(t *testing.T) {
	log := model.WaterLog{TodayML: 1300}
	if got := Glasses(log); got != 5 {
		t.Fatalf("expected 5 glasses, got %d", got)
	}
	if got := ProgressPercent(log, 2000); got != 65 {
		t.Fatalf("expected 65%%, got %d", got)
	}
	if got := ProgressPercent(model.WaterLog{TodayML: 4000}, 2000); got != 100 {
		t.Fatalf("expected cap at 100%%, got %d", got)
	}
}

func TestBuildDailyProgressCounts(t *testing.T) {
	tasks := []model.Task{
		{ID: "t1", Completed: true},
		{ID: "t2", Completed: false},
		{ID: "t3", Completed: true},
	}
	entries := []model.JournalEntry{
		{ID: "e1", Date: "2026-08-29"},
		{ID: "e2", Date: "2026-08-28"},
	}
	got := BuildDailyProgress(
		"2026-08-29",
		tasks,
		model.PomodoroStats{SessionsToday: 2, Date: "2026-08-29"},
		model.WaterLog{TodayML: 1500, Date: "2026-08-29"},
		2000,
		entries,
	)
	want := model.DailyProgress{
		Date:             "2026-08-29",
		TasksCompleted:   2,
		TasksTotal:       3,
		PomodoroSessions: 2,
		WaterIntake:      1500,
		WaterGoal:        2000,
		JournalEntries:   1,
	}
	if got != want {
		t.Fatalf("unexpected progress: %+v", got)
	}
}

func TestUpsertDailyProgress(t *testing.T) {
	progress := []model.DailyProgress{
		{Date: "2026-08-28", WaterIntake: 2000},
	}

	progress = UpsertDailyProgress(progress, model.DailyProgress{Date: "2026-08-29", WaterIntake: 250})
	if len(progress) != 2 {
		t.Fatalf("expected append for new date, got %d records", len(progress))
	}

	progress = UpsertDailyProgress(progress, model.DailyProgress{Date: "2026-08-29", WaterIntake: 500})
	if len(progress) != 2 {
		t.Fatalf("expected in-place update, got %d records", len(progress))
	}
	got, ok := FindProgress(progress, "2026-08-29")
	if !ok || got.WaterIntake != 500 {
		t.Fatalf("expected updated record, got: %+v ok=%v", got, ok)
	}
}
