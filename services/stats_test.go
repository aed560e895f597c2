package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pallavigowda6789-tech/attendance-system/models"
)

func TestDaySpan(t *testing.T) {
	days, err := DaySpan("2024-03-01", "2024-03-05")
	require.NoError(t, err)
	assert.Equal(t, 5, days)

	// วันเดียว = 1 วัน
	days, err = DaySpan("2024-03-01", "2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, 1, days)

	// end มาก่อน start
	_, err = DaySpan("2024-01-10", "2024-01-05")
	assert.ErrorIs(t, err, ErrInvalidRange)

	// รูปแบบผิด
	_, err = DaySpan("01/03/2024", "2024-03-05")
	assert.ErrorIs(t, err, ErrInvalidRange)
	_, err = DaySpan("2024-03-01", "not-a-date")
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 66.67, Round2(200.0/3.0))
	assert.Equal(t, 0.0, Round2(0))
	assert.Equal(t, 100.0, Round2(100))
}

func TestSummarizeAttendance(t *testing.T) {
	records := []models.Attendance{
		{Present: true},
		{Present: true},
		{Present: false},
	}
	stats := SummarizeAttendance(records, "2024-03-01", "2024-03-03")
	assert.Equal(t, int64(3), stats.TotalDays)
	assert.Equal(t, int64(2), stats.PresentDays)
	assert.Equal(t, int64(1), stats.AbsentDays)
	assert.Equal(t, 66.67, stats.Percentage)

	// ไม่มี record เลย: percentage ต้องเป็น 0.0 ไม่ใช่ NaN
	empty := SummarizeAttendance(nil, "2024-03-01", "2024-03-03")
	assert.Equal(t, int64(0), empty.TotalDays)
	assert.Equal(t, 0.0, empty.Percentage)
}

func TestMonthWindow(t *testing.T) {
	now := time.Date(2024, time.February, 14, 12, 0, 0, 0, time.UTC)
	start, end := monthWindow(now)
	assert.Equal(t, "2024-02-01", start)
	assert.Equal(t, "2024-02-29", end) // leap year
}

func TestNewPaged(t *testing.T) {
	p := NewPaged([]int{1, 2, 3}, 0, 3, 7)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.First)
	assert.False(t, p.Last)
	assert.True(t, p.HasNext)
	assert.False(t, p.HasPrevious)

	last := NewPaged([]int{7}, 2, 3, 7)
	assert.False(t, last.First)
	assert.True(t, last.Last)
	assert.False(t, last.HasNext)
	assert.True(t, last.HasPrevious)

	// nil content ต้อง marshal เป็น [] ไม่ใช่ null
	empty := NewPaged[int](nil, 0, 10, 0)
	assert.NotNil(t, empty.Content)
	assert.Equal(t, 0, empty.TotalPages)
	assert.True(t, empty.First)
}

func TestNormalizePage(t *testing.T) {
	page, size := normalizePage(-3, 0)
	assert.Equal(t, 0, page)
	assert.Equal(t, 10, size)

	page, size = normalizePage(2, 500)
	assert.Equal(t, 2, page)
	assert.Equal(t, 10, size)
}

func TestNormalizeOAuth2Principal(t *testing.T) {
	// GitHub: id เป็นตัวเลข, ไม่มี given/family name
	p := OAuth2Principal(models.ProviderGitHub, map[string]any{
		"id":    float64(583231),
		"login": "octocat",
		"email": "octocat@github.com",
	})
	n := p.normalizeOAuth2()
	assert.Equal(t, "octocat@github.com", n.Email)
	assert.Equal(t, "583231", n.Subject)
	assert.Equal(t, "octocat", n.FullName)

	// Google shape: sub ชนะ id
	g := OAuth2Principal(models.ProviderGoogle, map[string]any{
		"sub":         "109",
		"id":          "ignored",
		"email":       "a@b.com",
		"given_name":  "A",
		"family_name": "B",
		"name":        "A B",
	})
	ng := g.normalizeOAuth2()
	assert.Equal(t, "109", ng.Subject)
	assert.Equal(t, "A", ng.GivenName)
	assert.Equal(t, "B", ng.FamilyName)
}
