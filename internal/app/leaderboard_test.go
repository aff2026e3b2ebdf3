package app_test

import (
	"testing"

	"github.com/bhaviksharmawork/Quizzer/internal/app"
	"github.com/bhaviksharmawork/Quizzer/internal/domain"
)

func TestRankOrdersByScoreDescending(t *testing.T) {
	standings := app.Rank([]domain.ScoreEntry{
		{DisplayName: "Ann", Score: 100, TotalTime: 10, Seq: 1},
		{DisplayName: "Ben", Score: 300, TotalTime: 50, Seq: 2},
		{DisplayName: "Cat", Score: 200, TotalTime: 5, Seq: 3},
	})

	want := []string{"Ben", "Cat", "Ann"}
	for i, name := range want {
		if standings[i].Username != name {
			t.Fatalf("position %d: expected %s, got %s", i+1, name, standings[i].Username)
		}
	}
}

func TestRankBreaksTiesOnLowerTime(t *testing.T) {
	standings := app.Rank([]domain.ScoreEntry{
		{DisplayName: "Ann", Score: 300, TotalTime: 40, Seq: 1},
		{DisplayName: "Ben", Score: 300, TotalTime: 30, Seq: 2},
	})

	if standings[0].Username != "Ben" {
		t.Fatalf("expected faster finisher Ben first, got %s", standings[0].Username)
	}
	if got := app.RankOf(standings, "Ann"); got != 2 {
		t.Fatalf("expected Ann ranked 2, got %d", got)
	}
}

func TestRankIdenticalScoreAndTimeMostRecentFirst(t *testing.T) {
	standings := app.Rank([]domain.ScoreEntry{
		{DisplayName: "Ann", Score: 300, TotalTime: 30, Seq: 1},
		{DisplayName: "Ben", Score: 300, TotalTime: 30, Seq: 2},
	})

	if standings[0].Username != "Ben" || standings[1].Username != "Ann" {
		t.Fatalf("expected most recent submission first, got %+v", standings)
	}
}

func TestRankIsTotalOrder(t *testing.T) {
	standings := app.Rank([]domain.ScoreEntry{
		{DisplayName: "Ann", Score: 100, TotalTime: 20, Seq: 1},
		{DisplayName: "Ben", Score: 300, TotalTime: 10, Seq: 2},
		{DisplayName: "Cat", Score: 300, TotalTime: 10, Seq: 3},
		{DisplayName: "Dan", Score: 50, TotalTime: 5, Seq: 4},
	})

	for i := 1; i < len(standings); i++ {
		if standings[i].Score > standings[i-1].Score {
			t.Fatalf("lower rank outranks higher score: %+v", standings)
		}
	}
	seen := map[string]bool{}
	for _, e := range standings {
		if seen[e.Username] {
			t.Fatalf("duplicate username in standings: %s", e.Username)
		}
		seen[e.Username] = true
	}
}

func TestRankOfUnknownName(t *testing.T) {
	if got := app.RankOf(nil, "Ann"); got != 0 {
		t.Fatalf("expected 0 for unknown name, got %d", got)
	}
}
