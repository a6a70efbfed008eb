package utils

import (
	"stickyflow-backend/internal/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Time
	}{
		{"两位年份 2000 年代", "01/01/25", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"两位年份 1900 年代", "01/01/70", time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"边界 49 归 2000 年代", "01/01/49", time.Date(2049, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"边界 50 归 1900 年代", "01/01/50", time.Date(1950, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"四位年份", "15/06/2024", time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseDateString(tt.input))
		})
	}
}

func TestParseDateStringFallback(t *testing.T) {
	epoch := time.Unix(0, 0).UTC()

	// 解析不出来不报错，按最早日期处理
	assert.Equal(t, epoch, ParseDateString("not-a-date"))
	assert.Equal(t, epoch, ParseDateString(""))
	assert.Equal(t, epoch, ParseDateString("01/01"))
	assert.Equal(t, epoch, ParseDateString("01/01/25/99"))
	assert.Equal(t, epoch, ParseDateString("aa/bb/cc"))
}

func TestParseDateStringOverflow(t *testing.T) {
	// 日和月越界按日历进位，不校验
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), ParseDateString("32/13/25"))
}

func TestSortNotesByDateAscending(t *testing.T) {
	notes := []models.Note{
		{ID: 1, Date: "10/05/24"},
		{ID: 2, Date: "01/01/23"},
		{ID: 3, Date: "15/12/25"},
	}

	sorted := SortNotesByDateAscending(notes)

	require.Len(t, sorted, 3)
	assert.Equal(t, uint(2), sorted[0].ID)
	assert.Equal(t, uint(1), sorted[1].ID)
	assert.Equal(t, uint(3), sorted[2].ID)

	// 入参不被改动
	assert.Equal(t, uint(1), notes[0].ID)
}

func TestSortNotesByDateAscendingIdempotent(t *testing.T) {
	notes := []models.Note{
		{ID: 1, Date: "10/05/24"},
		{ID: 2, Date: "01/01/23"},
		{ID: 3, Date: "15/12/25"},
	}

	once := SortNotesByDateAscending(notes)
	twice := SortNotesByDateAscending(once)

	assert.Equal(t, once, twice)
}

func TestSortNotesByDateAscendingStable(t *testing.T) {
	// 相同日期保持原有相对顺序
	notes := []models.Note{
		{ID: 1, Date: "10/05/24"},
		{ID: 2, Date: "10/05/24"},
		{ID: 3, Date: "01/01/23"},
		{ID: 4, Date: "10/05/24"},
	}

	sorted := SortNotesByDateAscending(notes)

	assert.Equal(t, uint(3), sorted[0].ID)
	assert.Equal(t, uint(1), sorted[1].ID)
	assert.Equal(t, uint(2), sorted[2].ID)
	assert.Equal(t, uint(4), sorted[3].ID)
}
