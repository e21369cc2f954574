package productivity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/worklens/worklens-backend-go/internal/domain/directory"
	"github.com/worklens/worklens-backend-go/internal/domain/productivity"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func aggTestIndex() *directory.Index {
	return directory.BuildIndex([]directory.Employee{
		{ID: "a", Email: "alice@corp.com", DisplayName: "Alice", Department: "Eng", IsActive: true},
		{ID: "b", Email: "bob@corp.com", DisplayName: "Bob", Department: "Eng", IsActive: true},
		{ID: "c", Email: "carol@corp.com", DisplayName: "Carol", Department: "Sales", IsActive: true},
	})
}

func TestSummarizeEmployees_ExcludesUnscoreableDaysFromAverage(t *testing.T) {
	t.Parallel()

	records := []productivity.Record{
		// Scoreable day at 80%.
		{Email: "alice@corp.com", Date: day(2024, 2, 1), ProductiveSeconds: 28800, TotalSeconds: 36000},
		// Tracked day with no activity: counts as a day, not as a zero score.
		{Email: "alice@corp.com", Date: day(2024, 2, 2), ProductiveSeconds: 0, TotalSeconds: 0},
	}

	summaries, drops := SummarizeEmployees(records, aggTestIndex())
	require.Len(t, summaries, 1)
	assert.Equal(t, 0, drops.Total())

	alice := summaries[0]
	assert.Equal(t, 2, alice.DaysTracked)
	require.NotNil(t, alice.AvgProductivityScore)
	assert.InDelta(t, 80.0, *alice.AvgProductivityScore, 0.0001)
	assert.Equal(t, 8.0, alice.TotalProductiveHours)
}

func TestSummarizeEmployees_NilScoreWhenNoScoreableDays(t *testing.T) {
	t.Parallel()

	records := []productivity.Record{
		{Email: "bob@corp.com", Date: day(2024, 2, 1), TotalSeconds: 0},
	}

	summaries, _ := SummarizeEmployees(records, aggTestIndex())
	require.Len(t, summaries, 1)
	assert.Nil(t, summaries[0].AvgProductivityScore)
	assert.Equal(t, 1, summaries[0].DaysTracked)
}

func TestSummarizeEmployees_CountsDrops(t *testing.T) {
	t.Parallel()

	records := []productivity.Record{
		{Email: "alice@corp.com", Date: day(2024, 2, 1), ProductiveSeconds: 3600, TotalSeconds: 7200},
		{Email: "ghost@corp.com", Date: day(2024, 2, 1), ProductiveSeconds: 3600, TotalSeconds: 7200},
		{Email: "", Date: day(2024, 2, 1), TotalSeconds: 7200},
		{Email: "alice@corp.com", TotalSeconds: 7200}, // zero date
	}

	summaries, drops := SummarizeEmployees(records, aggTestIndex())
	require.Len(t, summaries, 1)
	assert.Equal(t, 1, drops.UnknownEmail)
	assert.Equal(t, 2, drops.Malformed)
	assert.Equal(t, 3, drops.Total())
}

func TestSummarizeEmployees_SortedByEmail(t *testing.T) {
	t.Parallel()

	records := []productivity.Record{
		{Email: "carol@corp.com", Date: day(2024, 2, 1), ProductiveSeconds: 3600, TotalSeconds: 7200},
		{Email: "alice@corp.com", Date: day(2024, 2, 1), ProductiveSeconds: 3600, TotalSeconds: 7200},
	}

	summaries, _ := SummarizeEmployees(records, aggTestIndex())
	require.Len(t, summaries, 2)
	assert.Equal(t, "alice@corp.com", summaries[0].Email)
	assert.Equal(t, "carol@corp.com", summaries[1].Email)
}

func TestSummarizeDepartments_AggregatesSecondsBeforeDividing(t *testing.T) {
	t.Parallel()

	// Alice: 1h of 2h (50%). Bob: 6h of 6h (100%). Averaging the percentages
	// would give 75; the department score weighs by volume instead.
	records := []productivity.Record{
		{Email: "alice@corp.com", Date: day(2024, 2, 1), ProductiveSeconds: 3600, TotalSeconds: 7200},
		{Email: "bob@corp.com", Date: day(2024, 2, 1), ProductiveSeconds: 21600, TotalSeconds: 21600},
	}

	summaries, _ := SummarizeDepartments(records, aggTestIndex())
	require.Len(t, summaries, 1)

	eng := summaries[0]
	assert.Equal(t, "Eng", eng.Department)
	assert.Equal(t, 2, eng.EmployeeCount)
	assert.Equal(t, 2, eng.DaysTracked)
	require.NotNil(t, eng.AvgProductivityScore)
	assert.InDelta(t, 87.5, *eng.AvgProductivityScore, 0.0001)
	assert.Equal(t, 7.0, eng.TotalProductiveHours)
}

func TestSummarizeDepartments_SplitsByDepartment(t *testing.T) {
	t.Parallel()

	records := []productivity.Record{
		{Email: "alice@corp.com", Date: day(2024, 2, 1), ProductiveSeconds: 3600, TotalSeconds: 7200},
		{Email: "carol@corp.com", Date: day(2024, 2, 1), ProductiveSeconds: 3600, TotalSeconds: 3600},
	}

	summaries, _ := SummarizeDepartments(records, aggTestIndex())
	require.Len(t, summaries, 2)
	assert.Equal(t, "Eng", summaries[0].Department)
	assert.Equal(t, "Sales", summaries[1].Department)
}

func TestSummarizeOrganization(t *testing.T) {
	t.Parallel()

	records := []productivity.Record{
		{Email: "alice@corp.com", Date: day(2024, 2, 1), ProductiveSeconds: 3600, TotalSeconds: 7200},
		{Email: "alice@corp.com", Date: day(2024, 2, 2), ProductiveSeconds: 3600, TotalSeconds: 3600},
		{Email: "carol@corp.com", Date: day(2024, 2, 1), ProductiveSeconds: 7200, TotalSeconds: 7200},
	}

	summary, drops := SummarizeOrganization(records, aggTestIndex())
	assert.Equal(t, 0, drops.Total())
	assert.Equal(t, 2, summary.EmployeeCount)
	assert.Equal(t, 3, summary.DaysTracked)
	require.NotNil(t, summary.AvgProductivityScore)
	assert.InDelta(t, 80.0, *summary.AvgProductivityScore, 0.0001)
}

func TestSummarizeOrganization_EmptyScope(t *testing.T) {
	t.Parallel()

	summary, drops := SummarizeOrganization(nil, aggTestIndex())
	assert.Equal(t, 0, drops.Total())
	assert.Equal(t, 0, summary.EmployeeCount)
	assert.Nil(t, summary.AvgProductivityScore)
	assert.Equal(t, 0.0, summary.TotalProductiveHours)
}

func TestRoundHours(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1.0, roundHours(3600))
	assert.Equal(t, 0.5, roundHours(1800))
	assert.Equal(t, 1.01, roundHours(3634))
}

func TestCompareNullableScores_NilSortsLastBothDirections(t *testing.T) {
	t.Parallel()

	high := 90.0
	low := 10.0

	// Ascending.
	assert.True(t, compareNullableScores(&low, &high, false))
	assert.False(t, compareNullableScores(&high, &low, false))
	assert.True(t, compareNullableScores(&low, nil, false))
	assert.False(t, compareNullableScores(nil, &low, false))

	// Descending: nil still loses.
	assert.True(t, compareNullableScores(&high, &low, true))
	assert.True(t, compareNullableScores(&high, nil, true))
	assert.False(t, compareNullableScores(nil, &high, true))
}
