package agenda

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/weblurk/go/internal/models"
	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Agenda"

var (
	// ErrUnsupportedFormat is returned for files that are neither .xlsx nor .csv
	ErrUnsupportedFormat = fmt.Errorf("%w: unsupported file format, use .xlsx or .csv", models.ErrInvalidArgument)

	// ErrTooFewColumns is returned when the file has fewer than four columns
	ErrTooFewColumns = fmt.Errorf("%w: file needs at least 4 columns (time, date, link, channel)", models.ErrInvalidArgument)
)

// ExportHeader is the column row of the agenda export
var ExportHeader = []string{"Time", "Date", "Platform Link", "Channel"}

// AgendaRepository defines what the app layer needs from the repository
type AgendaRepository interface {
	// ReplaceSchedule swaps the whole agenda atomically
	ReplaceSchedule(ctx context.Context, entries []models.ScheduleEntry) error
	ListSchedule(ctx context.Context) ([]models.ScheduleEntry, error)
	ListScheduleBetween(ctx context.Context, from, to time.Time) ([]models.ScheduleEntry, error)
	ClearSchedule(ctx context.Context) (int64, error)
}

// ImportResult summarizes an agenda upload
type ImportResult struct {
	Imported int
	Skipped  int
}

// App manages the broadcast agenda
type App struct {
	repo     AgendaRepository
	clock    clockwork.Clock
	location *time.Location
}

// NewApp creates a new agenda App. Entries hold wall-clock times; location
// decides which day "today" is.
func NewApp(repo AgendaRepository, clock clockwork.Clock, location *time.Location) *App {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if location == nil {
		location = time.Local
	}
	return &App{
		repo:     repo,
		clock:    clock,
		location: location,
	}
}

// Import replaces the agenda with the rows of an .xlsx or .csv file. The
// first row is a header; invalid rows are skipped and counted.
func (a *App) Import(ctx context.Context, filename string, r io.Reader) (*ImportResult, error) {
	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		rows, err = readXLSX(r)
	case ".csv":
		rows, err = readCSV(r)
	default:
		return nil, ErrUnsupportedFormat
	}
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 || len(rows[0]) < minColumns {
		return nil, ErrTooFewColumns
	}

	entries, skipped := parseRecords(rows[1:], a.clock.Now())
	if err := a.repo.ReplaceSchedule(ctx, entries); err != nil {
		return nil, fmt.Errorf("failed to store agenda: %w", err)
	}

	log.Info().
		Str("file", filename).
		Int("imported", len(entries)).
		Int("skipped", skipped).
		Msg("agenda imported")
	return &ImportResult{Imported: len(entries), Skipped: skipped}, nil
}

// Today returns the entries scheduled for the current day
func (a *App) Today(ctx context.Context) (time.Time, []models.ScheduleEntry, error) {
	now := a.clock.Now().In(a.location)
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	entries, err := a.List(ctx, &day)
	return day, entries, err
}

// List returns the whole agenda, or one day of it when date is set
func (a *App) List(ctx context.Context, date *time.Time) ([]models.ScheduleEntry, error) {
	if date == nil {
		entries, err := a.repo.ListSchedule(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list agenda: %w", err)
		}
		return entries, nil
	}

	from := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	entries, err := a.repo.ListScheduleBetween(ctx, from, from.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("failed to list agenda for %s: %w", from.Format(time.DateOnly), err)
	}
	return entries, nil
}

// Clear deletes the whole agenda
func (a *App) Clear(ctx context.Context) (int64, error) {
	n, err := a.repo.ClearSchedule(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to clear agenda: %w", err)
	}

	log.Info().Int64("entries", n).Msg("agenda cleared")
	return n, nil
}

// ExportXLSX writes the agenda as a workbook in the import layout
func (a *App) ExportXLSX(ctx context.Context, w io.Writer) error {
	entries, err := a.List(ctx, nil)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close agenda workbook")
		}
	}()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]interface{}, len(ExportHeader))
	for i, h := range ExportHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, e := range entries {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{e.Clock(), e.StartsAt.Format("02-01-2006"), e.PlatformLink, e.ChannelName}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func readCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: malformed csv: %v", models.ErrInvalidArgument, err)
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}
	return rows, nil
}

func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: unreadable workbook: %v", models.ErrInvalidArgument, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}
