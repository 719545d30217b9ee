package program

import (
	"context"
	"testing"
	"time"

	"anganwadi/model"
)

func TestDashboardStatsEmptyStore(t *testing.T) {
	repo := &stubProgramRepo{}
	svc := NewService(repo, &stubImageStore{})

	stats, err := svc.DashboardStats(context.Background())
	if err != nil {
		t.Fatalf("DashboardStats returned error: %v", err)
	}

	if stats.TotalPrograms != 0 {
		t.Errorf("expected 0 total, got %d", stats.TotalPrograms)
	}
	if stats.ThisMonthCount != 0 {
		t.Errorf("expected 0 this month, got %d", stats.ThisMonthCount)
	}
	if stats.LastAdded != "N/A" {
		t.Errorf("expected lastAdded N/A, got %q", stats.LastAdded)
	}
}

func TestDashboardStatsMonthFilter(t *testing.T) {
	now := time.Now()
	thisMonth := now.Format("2006-01-02")
	otherMonth := now.AddDate(0, -2, 0).Format("2006-01-02")
	lastYear := now.AddDate(-1, 0, 0).Format("2006-01-02")

	programs := []*model.Program{
		{ID: 1, Date: thisMonth, CreatedAt: now},
		{ID: 2, Date: thisMonth, CreatedAt: now.Add(-time.Hour)},
		{ID: 3, Date: otherMonth, CreatedAt: now.Add(-2 * time.Hour)},
		{ID: 4, Date: lastYear, CreatedAt: now.Add(-3 * time.Hour)},
		{ID: 5, Date: "next week sometime", CreatedAt: now.Add(-4 * time.Hour)},
	}

	repo := &stubProgramRepo{
		all:    programs,
		count:  int64(len(programs)),
		latest: programs[0],
	}
	svc := NewService(repo, &stubImageStore{})

	stats, err := svc.DashboardStats(context.Background())
	if err != nil {
		t.Fatalf("DashboardStats returned error: %v", err)
	}

	if stats.TotalPrograms != 5 {
		t.Errorf("expected 5 total, got %d", stats.TotalPrograms)
	}
	if stats.ThisMonthCount != 2 {
		t.Errorf("expected 2 this month, got %d", stats.ThisMonthCount)
	}
	if stats.LastAdded != thisMonth {
		t.Errorf("expected lastAdded %q, got %q", thisMonth, stats.LastAdded)
	}
}

func TestParseProgramDateLayouts(t *testing.T) {
	valid := []string{
		"2026-08-15",
		"2026/08/15",
		"08/15/2026",
		"August 15, 2026",
		"Aug 15, 2026",
		"2026-08-15T10:00:00Z",
	}
	for _, value := range valid {
		if _, ok := parseProgramDate(value); !ok {
			t.Errorf("expected %q to parse", value)
		}
	}

	invalid := []string{"", "soon", "15th of August", "2026-13-99"}
	for _, value := range invalid {
		if _, ok := parseProgramDate(value); ok {
			t.Errorf("expected %q not to parse", value)
		}
	}
}
