package services

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/uxrlabs/uxr-tracker-backend/models"
)

// Time range selectors for the analytics window
const (
	Range3Months  = "3months"
	Range6Months  = "6months"
	Range12Months = "12months"
	RangeAll      = "all"
)

type TrendPoint struct {
	Month     string `json:"month"`
	Completed int    `json:"completed"`
	Active    int    `json:"active"`
	Total     int    `json:"total"`
}

type CompletionRate struct {
	Month string `json:"month"`
	Rate  int    `json:"rate"`
}

type ParticipantPoint struct {
	Month         string `json:"month"`
	Participants  int    `json:"participants"`
	AvgPerProject int    `json:"avgPerProject"`
}

type SourceShare struct {
	Source     string `json:"source"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

type DurationBucket struct {
	Range string `json:"range"`
	Count int    `json:"count"`
}

type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
	Growth   int    `json:"growth"`
}

type BudgetSlice struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Projects int     `json:"projects"`
}

// AnalyticsData bundles every chart series the dashboard consumes.
type AnalyticsData struct {
	ProjectTrends      []TrendPoint       `json:"projectTrends"`
	ParticipantMetrics []ParticipantPoint `json:"participantMetrics"`
	BudgetAnalysis     []BudgetSlice      `json:"budgetAnalysis"`
	SourceDistribution []SourceShare      `json:"sourceDistribution"`
	CompletionRates    []CompletionRate   `json:"completionRates"`
	TimeToCompletion   []DurationBucket   `json:"timeToCompletion"`
	TopCategories      []CategoryCount    `json:"topCategories"`
}

// WindowStart returns the inclusive lower bound on createdAt for a
// time range selector. "all" is pinned to the product's epoch.
func WindowStart(timeRange string, now time.Time) time.Time {
	switch timeRange {
	case Range3Months:
		return now.AddDate(0, -3, 0)
	case Range12Months:
		return now.AddDate(-1, 0, 0)
	case RangeAll:
		return time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	default:
		return now.AddDate(0, -6, 0)
	}
}

// monthsInWindow returns how many monthly trend buckets a range produces.
func monthsInWindow(timeRange string) int {
	switch timeRange {
	case Range3Months:
		return 3
	case Range6Months:
		return 6
	default:
		return 12
	}
}

// Aggregate computes every analytics series from the projects created
// inside the window. prevProjects holds the projects of the preceding
// window of equal length and feeds the category growth comparison.
// Month buckets match on calendar month and year, oldest first.
func Aggregate(projects, prevProjects []*models.Project, timeRange string, now time.Time) *AnalyticsData {
	months := monthsInWindow(timeRange)

	data := &AnalyticsData{
		ProjectTrends:      make([]TrendPoint, 0, months),
		ParticipantMetrics: make([]ParticipantPoint, 0, months),
		CompletionRates:    make([]CompletionRate, 0, months),
	}

	// Anchor on the first of the month: AddDate from day 29-31 would
	// normalize into the wrong month near short months.
	anchor := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	for i := months - 1; i >= 0; i-- {
		bucket := anchor.AddDate(0, -i, 0)
		label := bucket.Format("Jan 06")

		var completed, active, total, participants int
		for _, p := range projects {
			if p.CreatedAt.Month() != bucket.Month() || p.CreatedAt.Year() != bucket.Year() {
				continue
			}
			total++
			participants += intOrZero(p.ParticipantCount)
			switch p.Status {
			case models.StatusCompleted:
				completed++
			case models.StatusActive:
				active++
			}
		}

		data.ProjectTrends = append(data.ProjectTrends, TrendPoint{
			Month:     label,
			Completed: completed,
			Active:    active,
			Total:     total,
		})

		rate := 0
		if total > 0 {
			rate = roundPct(completed, total)
		}
		data.CompletionRates = append(data.CompletionRates, CompletionRate{Month: label, Rate: rate})

		avg := 0
		if total > 0 {
			avg = int(math.Round(float64(participants) / float64(total)))
		}
		data.ParticipantMetrics = append(data.ParticipantMetrics, ParticipantPoint{
			Month:         label,
			Participants:  participants,
			AvgPerProject: avg,
		})
	}

	data.SourceDistribution = sourceDistribution(projects)
	data.TimeToCompletion = timeToCompletion(projects)
	data.TopCategories = topCategories(projects, prevProjects)
	data.BudgetAnalysis = budgetAnalysis(projects, data.TopCategories)

	return data
}

func sourceDistribution(projects []*models.Project) []SourceShare {
	counts := map[string]int{}
	for _, p := range projects {
		counts[p.Source]++
	}

	sources := make([]string, 0, len(counts))
	for source := range counts {
		sources = append(sources, source)
	}
	sort.Strings(sources)

	shares := make([]SourceShare, 0, len(sources))
	for _, source := range sources {
		pct := 0
		if len(projects) > 0 {
			pct = roundPct(counts[source], len(projects))
		}
		shares = append(shares, SourceShare{
			Source:     strings.ReplaceAll(source, "_", " "),
			Count:      counts[source],
			Percentage: pct,
		})
	}
	return shares
}

// timeToCompletion buckets completed projects by endDate-startDate.
// Projects missing either date are excluded; zero-duration studies
// land in the first band.
func timeToCompletion(projects []*models.Project) []DurationBucket {
	buckets := []DurationBucket{
		{Range: "< 1 week"},
		{Range: "1-2 weeks"},
		{Range: "2-4 weeks"},
		{Range: "1-2 months"},
		{Range: "> 2 months"},
	}

	for _, p := range projects {
		if p.Status != models.StatusCompleted || p.StartDate == nil || p.EndDate == nil {
			continue
		}
		days := p.EndDate.Sub(*p.StartDate).Hours() / 24
		switch {
		case days < 7:
			buckets[0].Count++
		case days < 14:
			buckets[1].Count++
		case days < 28:
			buckets[2].Count++
		case days < 60:
			buckets[3].Count++
		default:
			buckets[4].Count++
		}
	}
	return buckets
}

// topCategories counts tag-category occurrences across the window and
// compares against the preceding window for real growth figures.
func topCategories(projects, prevProjects []*models.Project) []CategoryCount {
	current := categoryOccurrences(projects)
	previous := categoryOccurrences(prevProjects)

	out := make([]CategoryCount, 0, len(current))
	for category, count := range current {
		out = append(out, CategoryCount{
			Category: category,
			Count:    count,
			Growth:   growthPct(count, previous[category]),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Category < out[j].Category
	})

	if len(out) > 5 {
		out = out[:5]
	}
	return out
}

func categoryOccurrences(projects []*models.Project) map[string]int {
	counts := map[string]int{}
	for _, p := range projects {
		for _, pt := range p.Tags {
			if name := pt.Tag.Category.Name; name != "" {
				counts[name]++
			}
		}
	}
	return counts
}

// budgetAnalysis sums real project budgets per top category. A project
// contributes once to each category it carries.
func budgetAnalysis(projects []*models.Project, top []CategoryCount) []BudgetSlice {
	slices := make([]BudgetSlice, 0, len(top))
	for _, tc := range top {
		var amount float64
		var count int
		for _, p := range projects {
			seen := false
			for _, pt := range p.Tags {
				if pt.Tag.Category.Name == tc.Category {
					seen = true
					break
				}
			}
			if seen {
				amount += floatOrZero(p.Budget)
				count++
			}
		}
		slices = append(slices, BudgetSlice{Category: tc.Category, Amount: amount, Projects: count})
	}
	return slices
}

func growthPct(current, previous int) int {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return int(math.Round(float64(current-previous) / float64(previous) * 100))
}

func roundPct(part, whole int) int {
	return int(math.Round(float64(part) / float64(whole) * 100))
}
