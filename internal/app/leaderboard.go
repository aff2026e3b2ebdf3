package app

import (
	"sort"

	"github.com/bhaviksharmawork/Quizzer/internal/domain"
)

// Rank orders score entries best-first: higher score wins, ties go to the
// faster finisher, and entries identical on both get most-recent-submission
// first. The order is strict on purpose so every player has a deterministic
// "Nth place" even when scores and times collide.
func Rank(entries []domain.ScoreEntry) []domain.LeaderboardEntry {
	sorted := make([]domain.ScoreEntry, len(entries))
	copy(sorted, entries)

	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Score != sorted[j].Score {
			return sorted[i].Score > sorted[j].Score
		}
		if sorted[i].TotalTime != sorted[j].TotalTime {
			return sorted[i].TotalTime < sorted[j].TotalTime
		}
		return sorted[i].Seq > sorted[j].Seq
	})

	standings := make([]domain.LeaderboardEntry, len(sorted))
	for i, e := range sorted {
		standings[i] = domain.LeaderboardEntry{
			Username:       e.DisplayName,
			Score:          e.Score,
			CorrectAnswers: e.CorrectCount,
			TotalQuestions: e.TotalQuestions,
			TotalTime:      e.TotalTime,
		}
	}
	return standings
}

// RankOf returns the 1-based position of username in the standings, or 0 if
// the name has not scored. Names are unique within standings because score
// submission replaces by display name.
func RankOf(standings []domain.LeaderboardEntry, username string) int {
	for i, e := range standings {
		if e.Username == username {
			return i + 1
		}
	}
	return 0
}
