package scheduler

import (
	"testing"
	"time"

	"github.com/shaiso/Agentum/internal/domain"
)

func TestCalculateNextDue_Interval(t *testing.T) {
	sched := &domain.Schedule{
		IntervalSec: 300,
		Timezone:    "UTC",
	}

	from := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	next, err := CalculateNextDue(sched, from)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := from.Add(5 * time.Minute)
	if !next.Equal(want) {
		t.Errorf("expected %v, got %v", want, next)
	}
}

func TestCalculateNextDue_Cron(t *testing.T) {
	sched := &domain.Schedule{
		CronExpr: "0 9 * * *",
		Timezone: "UTC",
	}

	from := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	next, err := CalculateNextDue(sched, from)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Errorf("expected %v, got %v", want, next)
	}
}

func TestCalculateNextDue_CronTakesPrecedence(t *testing.T) {
	sched := &domain.Schedule{
		CronExpr:    "0 9 * * *",
		IntervalSec: 60,
		Timezone:    "UTC",
	}

	from := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	next, err := CalculateNextDue(sched, from)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Errorf("expected cron to win, got %v", next)
	}
}

func TestCalculateNextDue_InvalidTimezoneFallsBackToUTC(t *testing.T) {
	sched := &domain.Schedule{
		IntervalSec: 60,
		Timezone:    "Mars/Olympus",
	}

	from := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	next, err := CalculateNextDue(sched, from)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !next.Equal(from.Add(time.Minute)) {
		t.Errorf("unexpected next due: %v", next)
	}
}

func TestCalculateNextDue_Empty(t *testing.T) {
	sched := &domain.Schedule{Timezone: "UTC"}

	_, err := CalculateNextDue(sched, time.Now())
	if err == nil {
		t.Error("expected error for schedule without cron or interval")
	}
}

func TestValidateCronExpr(t *testing.T) {
	if err := ValidateCronExpr("*/5 * * * *"); err != nil {
		t.Errorf("unexpected error for valid expression: %v", err)
	}

	if err := ValidateCronExpr("not a cron"); err == nil {
		t.Error("expected error for invalid expression")
	}
}
