package agenda

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/weblurk/go/internal/models"
)

// Columns of an agenda file, by position
const (
	colTime = iota
	colDate
	colLink
	colChannel

	minColumns
)

var dateLayouts = []string{"02-01-2006", "02/01/2006", "2006-01-02"}

// ParseTimeOfDay accepts HH:MM, HH:MM:SS or a bare hour
func ParseTimeOfDay(s string) (hour, minute int, err error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, ":")
	switch len(parts) {
	case 1:
		if len(s) == 0 || len(s) > 2 {
			return 0, 0, fmt.Errorf("%w: time %q", models.ErrInvalidArgument, s)
		}
	case 2, 3:
	default:
		return 0, 0, fmt.Errorf("%w: time %q", models.ErrInvalidArgument, s)
	}

	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("%w: hour in %q", models.ErrInvalidArgument, s)
	}
	if len(parts) == 1 {
		return hour, 0, nil
	}

	if len(parts[1]) != 2 {
		return 0, 0, fmt.Errorf("%w: minute in %q", models.ErrInvalidArgument, s)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("%w: minute in %q", models.ErrInvalidArgument, s)
	}
	if len(parts) == 3 {
		sec, err := strconv.Atoi(parts[2])
		if err != nil || len(parts[2]) != 2 || sec < 0 || sec > 59 {
			return 0, 0, fmt.Errorf("%w: second in %q", models.ErrInvalidArgument, s)
		}
	}
	return hour, minute, nil
}

// ParseDate accepts dd-mm-yyyy, dd/mm/yyyy or yyyy-mm-dd. A trailing time
// part, as spreadsheet tools write for date cells, is ignored.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, " T"); i > 0 {
		s = s[:i]
	}
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: date %q", models.ErrInvalidArgument, s)
}

// parseRecords turns data rows (header excluded) into entries. Rows with a
// bad time or date, or an empty link or channel, are skipped.
func parseRecords(rows [][]string, importedAt time.Time) ([]models.ScheduleEntry, int) {
	entries := make([]models.ScheduleEntry, 0, len(rows))
	skipped := 0
	for _, row := range rows {
		entry, ok := parseRecord(row, importedAt)
		if !ok {
			if !blank(row) {
				skipped++
			}
			continue
		}
		entries = append(entries, entry)
	}
	return entries, skipped
}

func parseRecord(row []string, importedAt time.Time) (models.ScheduleEntry, bool) {
	if len(row) < minColumns {
		return models.ScheduleEntry{}, false
	}

	hour, minute, err := ParseTimeOfDay(row[colTime])
	if err != nil {
		return models.ScheduleEntry{}, false
	}
	day, err := ParseDate(row[colDate])
	if err != nil {
		return models.ScheduleEntry{}, false
	}

	link := strings.TrimSpace(row[colLink])
	channel := strings.TrimSpace(row[colChannel])
	if link == "" || channel == "" {
		return models.ScheduleEntry{}, false
	}

	return models.ScheduleEntry{
		ID:           uuid.New(),
		StartsAt:     time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, time.UTC),
		PlatformLink: link,
		ChannelName:  channel,
		ImportedAt:   importedAt,
	}, true
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
