package ranking

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/mcdev12/weblurk/go/internal/models"
	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Ranking"

// RankingRepository defines what the app layer needs from the repository
type RankingRepository interface {
	ListViewersByPoints(ctx context.Context) ([]models.Viewer, error)
	ResetAllPoints(ctx context.Context) (int64, error)
}

// App builds the points ranking and its exports
type App struct {
	repo RankingRepository
}

// NewApp creates a new ranking App
func NewApp(repo RankingRepository) *App {
	return &App{
		repo: repo,
	}
}

// List returns every viewer ranked by points, ties broken by nick
func (a *App) List(ctx context.Context) ([]Entry, error) {
	viewers, err := a.repo.ListViewersByPoints(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list ranking: %w", err)
	}

	entries := make([]Entry, 0, len(viewers))
	for i, v := range viewers {
		entries = append(entries, Entry{
			Position:    i + 1,
			ChannelNick: v.ChannelNick,
			Points:      v.Points,
			Average:     average(v.Points),
		})
	}
	return entries, nil
}

// ExportCSV writes the ranking as CSV with a header row
func (a *App) ExportCSV(ctx context.Context, w io.Writer) error {
	entries, err := a.List(ctx)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, e := range entries {
		record := []string{
			strconv.Itoa(e.Position),
			e.ChannelNick,
			strconv.FormatInt(e.Points, 10),
			strconv.FormatFloat(e.Average, 'f', -1, 64),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

// ExportXLSX writes the ranking as a single-sheet workbook
func (a *App) ExportXLSX(ctx context.Context, w io.Writer) error {
	entries, err := a.List(ctx)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close ranking workbook")
		}
	}()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]interface{}, len(Header))
	for i, h := range Header {
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
		row := []interface{}{e.Position, e.ChannelNick, e.Points, e.Average}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// Reset sets every viewer's points back to zero
func (a *App) Reset(ctx context.Context) (int64, error) {
	n, err := a.repo.ResetAllPoints(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to reset ranking: %w", err)
	}

	log.Info().Int64("viewers", n).Msg("ranking reset")
	return n, nil
}
