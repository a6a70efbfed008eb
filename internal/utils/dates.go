package utils

import (
	"sort"
	"stickyflow-backend/internal/models"
	"strconv"
	"strings"
	"time"
)

var epochOrigin = time.Unix(0, 0).UTC()

// ParseDateString 解析 DD/MM/YY 或 DD/MM/YYYY 格式的便签日期。
// 解析不出来的输入一律当作最早的日期处理，不报错。
// 两位年份以 50 为界：小于 50 算 20xx，否则算 19xx。
// 日和月不做范围校验，越界值按日历进位，沿用上线以来的排序行为。
func ParseDateString(s string) time.Time {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return epochOrigin
	}

	day, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return epochOrigin
	}
	month, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return epochOrigin
	}
	year, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return epochOrigin
	}

	if year < 100 {
		if year < 50 {
			year += 2000
		} else {
			year += 1900
		}
	}

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// SortNotesByDateAscending 返回按日期升序排列的新切片，不改动入参。
// 相同日期保持原有相对顺序。
func SortNotesByDateAscending(notes []models.Note) []models.Note {
	sorted := make([]models.Note, len(notes))
	copy(sorted, notes)

	sort.SliceStable(sorted, func(i, j int) bool {
		return ParseDateString(sorted[i].Date).Before(ParseDateString(sorted[j].Date))
	})

	return sorted
}
