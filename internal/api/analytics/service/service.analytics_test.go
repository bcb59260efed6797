package analyticssvc

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/maddygoround/hapi-go-mongo/internal/api/analytics/models"
	ticketmodels "github.com/maddygoround/hapi-go-mongo/internal/api/ticket/models"
	"github.com/maddygoround/hapi-go-mongo/internal/common"
	"github.com/maddygoround/hapi-go-mongo/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepo lọc và nhóm trong bộ nhớ giống MongoDB; aggregation trả về theo thứ tự thời gian
type fakeRepo struct {
	tickets []ticketmodels.Ticket
	err     error

	findCalls int
	sumCalls  int
	lastTZ    string
}

func (r *fakeRepo) FindByPerformanceWindow(_ context.Context, from, to time.Time) ([]ticketmodels.Ticket, error) {
	r.findCalls++
	if r.err != nil {
		return nil, r.err
	}
	out := []ticketmodels.Ticket{}
	for _, t := range r.tickets {
		if t.PerformanceTime.After(from) && t.PerformanceTime.Before(to) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeRepo) SumByPerformanceMonth(ctx context.Context, from, to time.Time, sumField, timezone string) ([]ticketmodels.MonthlyTotal, error) {
	r.sumCalls++
	r.lastTZ = timezone
	if r.err != nil {
		return nil, r.err
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, err
	}

	totals := map[ticketmodels.MonthKey]float64{}
	for _, t := range r.tickets {
		if !(t.PerformanceTime.After(from) && t.PerformanceTime.Before(to)) {
			continue
		}
		local := t.PerformanceTime.In(loc)
		key := ticketmodels.MonthKey{Month: int(local.Month()), Year: local.Year()}
		if sumField == ticketmodels.FieldTicketPrice {
			totals[key] += t.TicketPrice
		} else {
			totals[key]++
		}
	}

	rows := make([]ticketmodels.MonthlyTotal, 0, len(totals))
	for k, v := range totals {
		rows = append(rows, ticketmodels.MonthlyTotal{ID: k, Total: v})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].ID.Year != rows[j].ID.Year {
			return rows[i].ID.Year < rows[j].ID.Year
		}
		return rows[i].ID.Month < rows[j].ID.Month
	})
	return rows, nil
}

func ticket(ts string, price float64) ticketmodels.Ticket {
	pt, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		panic(err)
	}
	return ticketmodels.Ticket{
		CustomerName:     "Ada",
		PerformanceTitle: "Hamlet",
		PerformanceTime:  pt,
		TicketPrice:      price,
	}
}

func mustRange(t *testing.T, start, end string) models.DateRange {
	t.Helper()
	r, err := models.ParseDateRange(start, end)
	require.NoError(t, err)
	return r
}

type triple struct {
	Month time.Month
	Year  int
	Value float64
}

func asSet(buckets []models.Bucket) map[models.GroupKey]float64 {
	out := make(map[models.GroupKey]float64, len(buckets))
	for _, b := range buckets {
		out[b.Key] = b.Value
	}
	return out
}

func scenarioTickets() []ticketmodels.Ticket {
	return []ticketmodels.Ticket{
		ticket("2021-05-10T00:00:00Z", 20),
		ticket("2021-05-20T00:00:00Z", 30),
		ticket("2021-06-01T00:00:00Z", 15),
	}
}

func TestCompute_ProfitScenario(t *testing.T) {
	repo := &fakeRepo{tickets: scenarioTickets()}
	engine := NewEngine(repo, time.UTC)
	rng := mustRange(t, "2021-05-01", "2021-06-15")

	for _, strategy := range []models.Strategy{models.StrategyDelegated, models.StrategyInProcess} {
		t.Run(strategy.String(), func(t *testing.T) {
			buckets, err := engine.Compute(context.Background(), models.Query{Metric: models.MetricProfit, Strategy: strategy, Range: rng})
			require.NoError(t, err)

			var got []triple
			for _, b := range buckets {
				got = append(got, triple{Month: b.Key.Month, Year: b.Year, Value: b.Value})
				assert.Equal(t, b.Key.Month.String(), b.Label)
			}
			assert.ElementsMatch(t, []triple{
				{Month: time.May, Year: 2021, Value: 50},
				{Month: time.June, Year: 2021, Value: 15},
			}, got)
		})
	}
}

func TestCompute_VisitsScenario(t *testing.T) {
	repo := &fakeRepo{tickets: scenarioTickets()}
	engine := NewEngine(repo, nil)
	rng := mustRange(t, "2021-05-01", "2021-06-15")

	for _, strategy := range []models.Strategy{models.StrategyDelegated, models.StrategyInProcess} {
		buckets, err := engine.Compute(context.Background(), models.Query{Metric: models.MetricVisits, Strategy: strategy, Range: rng})
		require.NoError(t, err)
		assert.Equal(t, map[models.GroupKey]float64{
			{Month: time.May, Year: 2021}:  2,
			{Month: time.June, Year: 2021}: 1,
		}, asSet(buckets), strategy.String())
	}
}

func TestCompute_StrategiesAgreeOnSet(t *testing.T) {
	tickets := []ticketmodels.Ticket{
		ticket("2022-03-05T10:00:00Z", 12.5),
		ticket("2021-11-30T23:59:59Z", 40),
		ticket("2022-03-28T18:00:00Z", 7.25),
		ticket("2021-12-01T00:00:00Z", 0),
		ticket("2022-01-15T12:00:00Z", 99.99),
		ticket("2021-11-02T08:00:00Z", 10),
		ticket("2020-11-02T08:00:00Z", 1000),
	}
	repo := &fakeRepo{tickets: tickets}
	engine := NewEngine(repo, time.UTC)
	rng := mustRange(t, "2021-01-01", "2023-01-01")

	for _, metric := range []models.Metric{models.MetricVisits, models.MetricProfit} {
		delegated, err := engine.Compute(context.Background(), models.Query{Metric: metric, Strategy: models.StrategyDelegated, Range: rng})
		require.NoError(t, err)
		inProcess, err := engine.Compute(context.Background(), models.Query{Metric: metric, Strategy: models.StrategyInProcess, Range: rng})
		require.NoError(t, err)

		ds, is := asSet(delegated), asSet(inProcess)
		require.Len(t, is, len(ds), string(metric))
		for k, v := range ds {
			assert.InDelta(t, v, is[k], 1e-9, "%s %v", metric, k)
		}

		var total float64
		for _, b := range inProcess {
			total += b.Value
		}
		if metric == models.MetricVisits {
			assert.Equal(t, 6.0, total)
		} else {
			assert.InDelta(t, 12.5+40+7.25+0+99.99+10, total, 1e-9)
		}
	}
}

func TestCompute_BoundariesAreExclusive(t *testing.T) {
	repo := &fakeRepo{tickets: []ticketmodels.Ticket{
		ticket("2021-05-01T00:00:00Z", 10),
		ticket("2021-05-02T00:00:00Z", 20),
		ticket("2021-06-15T00:00:00Z", 30),
	}}
	engine := NewEngine(repo, time.UTC)
	rng := mustRange(t, "2021-05-01T00:00:00Z", "2021-06-15T00:00:00Z")

	for _, strategy := range []models.Strategy{models.StrategyDelegated, models.StrategyInProcess} {
		buckets, err := engine.Compute(context.Background(), models.Query{Metric: models.MetricProfit, Strategy: strategy, Range: rng})
		require.NoError(t, err)
		assert.Equal(t, map[models.GroupKey]float64{{Month: time.May, Year: 2021}: 20}, asSet(buckets), strategy.String())
	}
}

func TestCompute_EmptyMatchSet(t *testing.T) {
	repo := &fakeRepo{tickets: scenarioTickets()}
	engine := NewEngine(repo, time.UTC)
	rng := mustRange(t, "2030-01-01", "2030-12-31")

	for _, strategy := range []models.Strategy{models.StrategyDelegated, models.StrategyInProcess} {
		buckets, err := engine.Compute(context.Background(), models.Query{Metric: models.MetricVisits, Strategy: strategy, Range: rng})
		require.NoError(t, err)
		assert.NotNil(t, buckets)
		assert.Empty(t, buckets)
	}
}

func TestCompute_OrderDiffersBetweenStrategies(t *testing.T) {
	repo := &fakeRepo{tickets: []ticketmodels.Ticket{
		ticket("2021-07-04T00:00:00Z", 1),
		ticket("2021-05-10T00:00:00Z", 1),
		ticket("2021-07-20T00:00:00Z", 1),
		ticket("2021-06-01T00:00:00Z", 1),
	}}
	engine := NewEngine(repo, time.UTC)
	rng := mustRange(t, "2021-01-01", "2022-01-01")

	inProcess, err := engine.Compute(context.Background(), models.Query{Metric: models.MetricVisits, Strategy: models.StrategyInProcess, Range: rng})
	require.NoError(t, err)
	delegated, err := engine.Compute(context.Background(), models.Query{Metric: models.MetricVisits, Strategy: models.StrategyDelegated, Range: rng})
	require.NoError(t, err)

	labels := func(bs []models.Bucket) []string {
		out := make([]string, 0, len(bs))
		for _, b := range bs {
			out = append(out, b.Label)
		}
		return out
	}
	assert.Equal(t, []string{"July", "May", "June"}, labels(inProcess), "thứ tự xuất hiện đầu tiên")
	assert.Equal(t, []string{"May", "June", "July"}, labels(delegated), "thứ tự repository trả về")
	assert.Equal(t, asSet(delegated), asSet(inProcess))
}

func TestCompute_TimezoneAppliedToBothStrategies(t *testing.T) {
	repo := &fakeRepo{tickets: []ticketmodels.Ticket{ticket("2021-05-31T23:30:00Z", 10)}}
	loc := time.FixedZone("UTC+2", 2*60*60)
	engine := NewEngine(repo, loc)

	buckets, err := engine.Compute(context.Background(), models.Query{
		Metric:   models.MetricVisits,
		Strategy: models.StrategyInProcess,
		Range:    mustRange(t, "2021-05-01", "2021-07-01"),
	})
	require.NoError(t, err)
	require.Len(t, buckets, 1)
	assert.Equal(t, time.June, buckets[0].Key.Month)

	// Delegated chuyển cùng múi giờ xuống repository
	_, _ = engine.Compute(context.Background(), models.Query{
		Metric:   models.MetricVisits,
		Strategy: models.StrategyDelegated,
		Range:    mustRange(t, "2021-05-01", "2021-07-01"),
	})
	assert.Equal(t, loc.String(), repo.lastTZ)
}

func TestCompute_RepositoryFailure(t *testing.T) {
	cause := errors.New("connection reset by peer")
	repo := &fakeRepo{err: cause}
	m := metrics.New(prometheus.NewRegistry())
	engine := NewEngine(repo, time.UTC).WithMetrics(m)
	rng := mustRange(t, "2021-05-01", "2021-06-15")

	for _, strategy := range []models.Strategy{models.StrategyDelegated, models.StrategyInProcess} {
		buckets, err := engine.Compute(context.Background(), models.Query{Metric: models.MetricProfit, Strategy: strategy, Range: rng})
		assert.Nil(t, buckets)
		assert.ErrorIs(t, err, common.ErrRepositoryFailure)
		assert.ErrorIs(t, err, cause)
	}
	assert.Equal(t, 1, repo.findCalls, "không retry")
	assert.Equal(t, 1, repo.sumCalls, "không retry")
	assert.Equal(t, 2, testutil.CollectAndCount(m.AnalyticsComputeDuration))
}

func TestCompute_RejectsUnknownEnums(t *testing.T) {
	repo := &fakeRepo{tickets: scenarioTickets()}
	engine := NewEngine(repo, time.UTC)
	rng := mustRange(t, "2021-05-01", "2021-06-15")

	_, err := engine.Compute(context.Background(), models.Query{Metric: "revenue", Strategy: models.StrategyDelegated, Range: rng})
	assert.ErrorIs(t, err, common.ErrInvalidMetric)

	_, err = engine.Compute(context.Background(), models.Query{Metric: models.MetricVisits, Strategy: models.Strategy(42), Range: rng})
	assert.ErrorIs(t, err, common.ErrInvalidStrategy)

	assert.Zero(t, repo.findCalls+repo.sumCalls)
}

func TestFold_FixedPointSum(t *testing.T) {
	tickets := []ticketmodels.Ticket{
		ticket("2021-05-01T10:00:00Z", 0.1),
		ticket("2021-05-02T10:00:00Z", 0.2),
	}
	buckets := Fold(tickets, models.MetricProfit, time.UTC)
	require.Len(t, buckets, 1)
	assert.Equal(t, 0.3, buckets[0].Value)

	assert.Empty(t, Fold(nil, models.MetricVisits, time.UTC))
}

func TestCompute_RejectsZeroRange(t *testing.T) {
	repo := &fakeRepo{tickets: scenarioTickets()}
	engine := NewEngine(repo, time.UTC)
	full := mustRange(t, "2021-05-01", "2021-06-15")

	for _, rng := range []models.DateRange{
		{},
		{Start: full.Start},
		{End: full.End},
	} {
		for _, strategy := range []models.Strategy{models.StrategyDelegated, models.StrategyInProcess} {
			buckets, err := engine.Compute(context.Background(), models.Query{Metric: models.MetricVisits, Strategy: strategy, Range: rng})
			assert.Nil(t, buckets)
			assert.ErrorIs(t, err, common.ErrInvalidRange)
		}
	}
	assert.Zero(t, repo.findCalls+repo.sumCalls)
}

func TestLoadTimezone(t *testing.T) {
	loc, err := LoadTimezone("")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)

	loc, err = LoadTimezone("UTC")
	require.NoError(t, err)
	assert.Equal(t, "UTC", NewEngine(&fakeRepo{}, loc).Location().String())

	_, err = LoadTimezone("Local")
	assert.Error(t, err)

	_, err = LoadTimezone("Mars/Olympus_Mons")
	assert.Error(t, err)
}
