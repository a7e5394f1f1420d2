// Package rollup computes time-bounded aggregates over activity logs:
// daily footprints, trailing-week trends, and ranking lookups. Everything is
// pure over an in-memory slice plus a reference time, so the same inputs
// always produce the same summary.
package rollup

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/ecotrack-backend/internal/types"
)

const dateLayout = "2006-01-02"

// DailySummary is the footprint for one calendar day.
type DailySummary struct {
	TotalEmissions int            `json:"total_emissions"` // grams
	ByCategory     map[string]int `json:"by_category"`
	TopCategory    string         `json:"top_category"`
	ActivityCount  int            `json:"activity_count"`
}

// WeeklySummary is the trailing-7-day trend ending at the reference time.
type WeeklySummary struct {
	TotalEmissions int            `json:"total_emissions"` // grams
	ByDate         map[string]int `json:"by_date"`
	ByCategory     map[string]int `json:"by_category"`
	AvgDaily       int            `json:"avg_daily"`
	DaysLogged     int            `json:"days_logged"`
	BestDay        string         `json:"best_day"`
}

// DailyFootprint sums the logs that fall on now's calendar day.
func DailyFootprint(logs []types.DailyLog, now time.Time) DailySummary {
	start := startOfDay(now)
	end := start.AddDate(0, 0, 1)

	summary := DailySummary{ByCategory: map[string]int{}}
	for _, log := range logs {
		if log.Date.Before(start) || !log.Date.Before(end) {
			continue
		}
		summary.TotalEmissions += log.CarbonEmitted
		summary.ByCategory[log.Category] += log.CarbonEmitted
		summary.ActivityCount++
	}
	summary.TopCategory = maxKey(summary.ByCategory)
	return summary
}

// WeeklyTrend aggregates logs from the 7 days ending at now. AvgDaily always
// divides by 7: it is the average over the trailing week, not over the days
// that happen to have data.
func WeeklyTrend(logs []types.DailyLog, now time.Time) WeeklySummary {
	start := now.AddDate(0, 0, -7)

	summary := WeeklySummary{
		ByDate:     map[string]int{},
		ByCategory: map[string]int{},
	}
	for _, log := range logs {
		if log.Date.Before(start) || log.Date.After(now) {
			continue
		}
		summary.TotalEmissions += log.CarbonEmitted
		summary.ByDate[log.Date.Format(dateLayout)] += log.CarbonEmitted
		summary.ByCategory[log.Category] += log.CarbonEmitted
	}
	summary.AvgDaily = summary.TotalEmissions / 7
	summary.DaysLogged = len(summary.ByDate)
	summary.BestDay = minKey(summary.ByDate)
	return summary
}

// RankEntry is one leaderboard row with its 1-based position.
type RankEntry struct {
	UserID   uuid.UUID `json:"user_id"`
	Name     string    `json:"name"`
	Points   int       `json:"points"`
	Position int       `json:"position"`
}

// Standing is one user's place on the leaderboard. A user with no reward row
// has Position 0 and is not ranked.
type Standing struct {
	Position     int `json:"position"`
	Points       int `json:"points"`
	TotalUsers   int `json:"total_users"`
	PointsBehind int `json:"points_behind"` // gap to the rank above, 0 at rank 1
}

// Rank sorts entries by points descending and assigns 1-based positions.
// Input order breaks ties, matching how the store returns rows.
func Rank(entries []RankEntry) []RankEntry {
	ranked := make([]RankEntry, len(entries))
	copy(ranked, entries)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Points > ranked[j].Points
	})
	for i := range ranked {
		ranked[i].Position = i + 1
	}
	return ranked
}

// Position finds userID's standing among entries. An absent user yields a
// zero Standing rather than a synthetic last place.
func Position(entries []RankEntry, userID uuid.UUID) Standing {
	ranked := Rank(entries)
	for i, entry := range ranked {
		if entry.UserID != userID {
			continue
		}
		standing := Standing{
			Position:   entry.Position,
			Points:     entry.Points,
			TotalUsers: len(ranked),
		}
		if i > 0 {
			standing.PointsBehind = ranked[i-1].Points - entry.Points
		}
		return standing
	}
	return Standing{TotalUsers: len(ranked)}
}

// RankGroups orders campus groups by total tracked carbon descending. More
// tracked carbon ranks higher: this measures participation, not efficiency.
func RankGroups(groups []types.CampusGroup) []types.CampusGroup {
	ranked := make([]types.CampusGroup, len(groups))
	copy(ranked, groups)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalCarbonTracked > ranked[j].TotalCarbonTracked
	})
	return ranked
}

// NextStreak applies the streak rule to a new activity on `today`:
// consecutive-day activity extends the streak, a gap of more than one day
// resets it, same-day activity leaves it unchanged.
func NextStreak(current int, lastActivity *time.Time, today time.Time) int {
	if lastActivity == nil {
		return 1
	}
	gap := daysBetween(*lastActivity, today)
	switch {
	case gap == 0:
		if current < 1 {
			return 1
		}
		return current
	case gap == 1:
		return current + 1
	default:
		return 1
	}
}

func daysBetween(a, b time.Time) int {
	return int(startOfDay(b).Sub(startOfDay(a)).Hours() / 24)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// maxKey returns the key with the largest value, ties broken alphabetically.
// A non-empty map always yields a key, even when every value is zero.
func maxKey(m map[string]int) string {
	best := ""
	bestVal := 0
	first := true
	for k, v := range m {
		if first || v > bestVal || (v == bestVal && k < best) {
			best = k
			bestVal = v
			first = false
		}
	}
	return best
}

// minKey returns the key with the smallest value, ties broken alphabetically.
func minKey(m map[string]int) string {
	best := ""
	bestVal := 0
	first := true
	for k, v := range m {
		if first || v < bestVal || (v == bestVal && k < best) {
			best = k
			bestVal = v
			first = false
		}
	}
	return best
}
