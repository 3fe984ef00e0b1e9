package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestClampCompletion(t *testing.T) {
	require.Equal(t, 0, ClampCompletion(-5))
	require.Equal(t, 0, ClampCompletion(0))
	require.Equal(t, 57, ClampCompletion(57))
	require.Equal(t, 100, ClampCompletion(100))
	require.Equal(t, 100, ClampCompletion(140))
}

func TestNormalizeDefaults(t *testing.T) {
	p := Project{Name: "  api server  ", Completion: 130}
	p.Normalize()
	require.Equal(t, "api server", p.Name)
	require.Equal(t, PriorityMedium, p.Priority)
	require.Equal(t, 100, p.Completion)
	require.NotNil(t, p.Dependencies)
	require.Empty(t, p.Dependencies)
}

func TestPriorityRank(t *testing.T) {
	require.Less(t, PriorityRank(PriorityHigh), PriorityRank(PriorityMedium))
	require.Less(t, PriorityRank(PriorityMedium), PriorityRank(PriorityLow))
	require.Equal(t, 3, PriorityRank("Whatever"))
}

func TestDeadlineDateLenient(t *testing.T) {
	cases := []struct {
		deadline string
		ok       bool
	}{
		{"2026-03-01", true},
		{"", false},
		{"not-a-date", false},
		{"2026-13-45", false},
		{"03/01/2026", false},
	}
	for _, tc := range cases {
		_, ok := Project{Deadline: tc.deadline}.DeadlineDate()
		require.Equal(t, tc.ok, ok, "deadline %q", tc.deadline)
	}
}

func TestUpdatedAtAcceptsBothLayouts(t *testing.T) {
	_, ok := Project{LastUpdated: "2026-03-01 15:04:05"}.UpdatedAt()
	require.True(t, ok)
	_, ok = Project{LastUpdated: "2026-03-01"}.UpdatedAt()
	require.True(t, ok)
	_, ok = Project{LastUpdated: "yesterday"}.UpdatedAt()
	require.False(t, ok)
}

func TestDaysUntilDeadline(t *testing.T) {
	today := time.Date(2026, 3, 10, 14, 30, 0, 0, time.Local)

	d, ok := Project{Deadline: "2026-03-10"}.DaysUntilDeadline(today)
	require.True(t, ok)
	require.Equal(t, 0, d)

	d, ok = Project{Deadline: "2026-03-13"}.DaysUntilDeadline(today)
	require.True(t, ok)
	require.Equal(t, 3, d)

	d, ok = Project{Deadline: "2026-03-08"}.DaysUntilDeadline(today)
	require.True(t, ok)
	require.Equal(t, -2, d)

	_, ok = Project{}.DaysUntilDeadline(today)
	require.False(t, ok)
}

func TestDaysUntilDeadlineAcrossDSTChanges(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 2026-03-08 is the US spring-forward day and only has 23 hours.
	today := time.Date(2026, 3, 8, 9, 0, 0, 0, ny)
	d, ok := Project{Deadline: "2026-03-09"}.DaysUntilDeadline(today)
	require.True(t, ok)
	require.Equal(t, 1, d)

	// 2026-11-01 is the fall-back day and has 25 hours.
	today = time.Date(2026, 11, 2, 9, 0, 0, 0, ny)
	d, ok = Project{Deadline: "2026-11-01"}.DaysUntilDeadline(today)
	require.True(t, ok)
	require.Equal(t, -1, d)
}
