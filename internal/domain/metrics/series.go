package metrics

import (
	"time"

	"github.com/sangkips/boutique-api/internal/domain/entity"
	"github.com/sangkips/boutique-api/pkg/money"
)

// Default window sizes for the dashboard charts.
const (
	DailyWindow   = 30
	MonthlyWindow = 6
)

const (
	dayKey   = "2006-01-02"
	monthKey = "2006-01"
)

// SeriesPoint is one chart bucket.
type SeriesPoint struct {
	Key     string       `json:"key"`
	Label   string       `json:"label"`
	Revenue money.Amount `json:"revenue"`
	Profit  money.Amount `json:"profit"`
	Orders  int          `json:"orders"`
}

// DailySeries buckets both order kinds into the last `days` calendar days
// ending at now, matching on the exact day in loc. Oldest bucket first.
func DailySeries(orders []entity.Order, stitching []entity.StitchingOrder, now time.Time, days int, loc *time.Location) []SeriesPoint {
	if loc == nil {
		loc = time.UTC
	}
	now = now.In(loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	points := make([]SeriesPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		points = append(points, SeriesPoint{Key: day.Format(dayKey), Label: day.Format("Jan 02")})
	}
	return fill(points, Project(orders, stitching), dayKey, loc)
}

// MonthlySeries buckets both order kinds into the last `months` calendar
// months ending with the month of now. Oldest bucket first.
func MonthlySeries(orders []entity.Order, stitching []entity.StitchingOrder, now time.Time, months int, loc *time.Location) []SeriesPoint {
	if loc == nil {
		loc = time.UTC
	}
	now = now.In(loc)
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)

	points := make([]SeriesPoint, 0, months)
	for i := months - 1; i >= 0; i-- {
		month := first.AddDate(0, -i, 0)
		points = append(points, SeriesPoint{Key: month.Format(monthKey), Label: month.Format("Jan 2006")})
	}
	return fill(points, Project(orders, stitching), monthKey, loc)
}

func fill(points []SeriesPoint, refs []OrderRef, layout string, loc *time.Location) []SeriesPoint {
	index := make(map[string]int, len(points))
	for i, p := range points {
		index[p.Key] = i
	}
	for _, r := range refs {
		i, ok := index[r.CreatedAt.In(loc).Format(layout)]
		if !ok {
			continue
		}
		points[i].Revenue += r.Amount
		points[i].Profit += r.Profit
		points[i].Orders++
	}
	return points
}
