package services

import (
	"context"
	"math"
	"time"

	"github.com/tuonghuynh11/HealthAppAPI/models"
	"github.com/tuonghuynh11/HealthAppAPI/utils"

	"gorm.io/gorm"
)

const maxSummaryDays = 366

type StatisticsService struct{ db *gorm.DB }

func NewStatisticsService(db *gorm.DB) *StatisticsService { return &StatisticsService{db: db} }

// ---------- Top ----------

type UserCounts struct {
	Total      int64 `json:"total"`
	Verified   int64 `json:"verified"`
	Unverified int64 `json:"unverified"`
	Banned     int64 `json:"banned"`
	Online     int64 `json:"online"`
}

type TopStatistics struct {
	Dishes       []models.Dish        `json:"top_dishes"`
	Sets         []models.Set         `json:"top_sets"`
	Exercises    []models.Exercise    `json:"top_exercises"`
	WorkoutPlans []models.WorkoutPlan `json:"top_workout_plans"`
	Users        UserCounts           `json:"users"`
}

func topRated[T any](db *gorm.DB, limit int) ([]T, error) {
	out := []T{}
	err := db.Where("user_id IS NULL").Order("rating DESC, id ASC").Limit(limit).Find(&out).Error
	return out, err
}

// Top returns the best rated system catalog entries and user counts.
func (s *StatisticsService) Top(ctx context.Context, limit int) (*TopStatistics, error) {
	if limit <= 0 || limit > 50 {
		limit = 5
	}
	db := s.db.WithContext(ctx)
	var (
		out TopStatistics
		err error
	)
	if out.Dishes, err = topRated[models.Dish](db, limit); err != nil {
		return nil, err
	}
	if out.Sets, err = topRated[models.Set](db.Where("challenge_id IS NULL"), limit); err != nil {
		return nil, err
	}
	if out.WorkoutPlans, err = topRated[models.WorkoutPlan](db, limit); err != nil {
		return nil, err
	}
	out.Exercises = []models.Exercise{}
	if err := db.Order("rating DESC, id ASC").Limit(limit).Find(&out.Exercises).Error; err != nil {
		return nil, err
	}

	counts := []struct {
		dst   *int64
		query string
		args  []any
	}{
		{&out.Users.Total, "role = ?", []any{models.RoleUser}},
		{&out.Users.Verified, "role = ? AND verify = ?", []any{models.RoleUser, models.Verified}},
		{&out.Users.Unverified, "role = ? AND verify = ?", []any{models.RoleUser, models.Unverified}},
		{&out.Users.Banned, "role = ? AND status = ?", []any{models.RoleUser, models.UserStatusBan}},
		{&out.Users.Online, "role = ? AND is_online = ?", []any{models.RoleUser, true}},
	}
	for _, c := range counts {
		n, err := countWhere(db, &models.User{}, c.query, c.args...)
		if err != nil {
			return nil, err
		}
		*c.dst = n
	}
	return &out, nil
}

// ---------- Summary ----------

type SummaryQuery struct {
	From               string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To                 string `form:"to" binding:"omitempty,datetime=2006-01-02"`
	IncludeMissingDays bool   `form:"includeMissingDays"`
}

type DaySummary struct {
	Date           string  `json:"date"`
	Consumed       float64 `json:"calories_consumed"`
	ConsumedTarget float64 `json:"calories_consumed_target"`
	Burned         float64 `json:"calories_burned"`
	BurnedTarget   float64 `json:"calories_burned_target"`
	Water          float64 `json:"water"`
	WaterGoal      float64 `json:"water_goal"`
}

type Average struct {
	Avg        float64 `json:"avg"`
	AvgGoal    float64 `json:"avg_goal,omitempty"`
	AvgPercent float64 `json:"avg_percent,omitempty"`
	Unit       string  `json:"unit,omitempty"`
}

type StatisticsSummary struct {
	Range struct {
		From string `json:"from"`
		To   string `json:"to"`
	} `json:"range"`
	Days     []DaySummary       `json:"days"`
	Averages map[string]Average `json:"averages"` // consumed, burned, water
	Metadata struct {
		DaysCounted        int  `json:"days_counted"`
		IncludeMissingDays bool `json:"include_missing_days"`
	} `json:"metadata"`
}

// Summary aggregates the caller's tracking and water rows per day over [from, to].
func (s *StatisticsService) Summary(ctx context.Context, c utils.Caller, q SummaryQuery) (*StatisticsSummary, error) {
	from, _ := time.Parse(time.DateOnly, q.From)
	to, _ := time.Parse(time.DateOnly, q.To)
	if to.Before(from) {
		return nil, utils.BadRequest("to must not be before from")
	}
	if to.Sub(from) > maxSummaryDays*24*time.Hour {
		return nil, utils.BadRequest("date range is too long")
	}

	db := s.db.WithContext(ctx)
	var tracks []models.HealthTracking
	if err := db.Where("user_id = ? AND date BETWEEN ? AND ?", c.ID, q.From, q.To).
		Order("date ASC").Find(&tracks).Error; err != nil {
		return nil, err
	}
	var waters []models.Water
	if err := db.Where("user_id = ? AND date BETWEEN ? AND ?", c.ID, q.From, q.To).
		Order("date ASC").Find(&waters).Error; err != nil {
		return nil, err
	}

	idx := map[string]*DaySummary{}
	day := func(d string) *DaySummary {
		if idx[d] == nil {
			idx[d] = &DaySummary{Date: d}
		}
		return idx[d]
	}
	for _, t := range tracks {
		ds := day(t.Date)
		switch t.Type {
		case models.TrackingConsumed:
			ds.Consumed, ds.ConsumedTarget = t.Value, t.Target
		case models.TrackingBurned:
			ds.Burned, ds.BurnedTarget = t.Value, t.Target
		}
	}
	for _, w := range waters {
		ds := day(w.Date)
		ds.Water, ds.WaterGoal = w.Progress, w.Goal
	}

	out := &StatisticsSummary{Days: []DaySummary{}}
	out.Range.From, out.Range.To = q.From, q.To
	out.Metadata.IncludeMissingDays = q.IncludeMissingDays
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		key := d.Format(time.DateOnly)
		if ds, ok := idx[key]; ok {
			out.Days = append(out.Days, *ds)
		} else if q.IncludeMissingDays {
			out.Days = append(out.Days, DaySummary{Date: key})
		}
	}
	out.Metadata.DaysCounted = len(out.Days)

	type acc struct{ sum, goal, pct float64 }
	var consumed, burned, water acc
	for _, d := range out.Days {
		consumed.sum += d.Consumed
		consumed.goal += d.ConsumedTarget
		consumed.pct += pct(d.Consumed, d.ConsumedTarget)
		burned.sum += d.Burned
		burned.goal += d.BurnedTarget
		burned.pct += pct(d.Burned, d.BurnedTarget)
		water.sum += d.Water
		water.goal += d.WaterGoal
		water.pct += pct(d.Water, d.WaterGoal)
	}
	n := len(out.Days)
	out.Averages = map[string]Average{
		"consumed": {Avg: avg(consumed.sum, n), AvgGoal: avg(consumed.goal, n), AvgPercent: avg(consumed.pct, n), Unit: "kcal"},
		"burned":   {Avg: avg(burned.sum, n), AvgGoal: avg(burned.goal, n), AvgPercent: avg(burned.pct, n), Unit: "kcal"},
		"water":    {Avg: avg(water.sum, n), AvgGoal: avg(water.goal, n), AvgPercent: avg(water.pct, n), Unit: "ml"},
	}
	return out, nil
}

func pct(actual, goal float64) float64 {
	if goal <= 0 {
		return 0
	}
	return math.Min(actual/goal*100, 999)
}

func avg(sum float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return utils.Round(sum/float64(n), 2)
}
