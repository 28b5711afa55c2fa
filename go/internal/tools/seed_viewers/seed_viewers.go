package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mcdev12/weblurk/go/internal/config"
	"github.com/mcdev12/weblurk/go/internal/viewers"
)

const defaultPath = "go/internal/assets/viewers.csv"

// seedRow is one nick,points line
type seedRow struct {
	Nick   string
	Points int64
}

// parseRows reads nick,points records. A leading header row is skipped.
// Invalid lines are reported and counted, never fatal.
func parseRows(r io.Reader) ([]seedRow, int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var (
		rows    []seedRow
		invalid int
		line    int
	)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("read CSV: %w", err)
		}
		line++

		if len(record) < 2 {
			if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
				continue
			}
			fmt.Fprintf(os.Stderr, "line %d: expected nick,points\n", line)
			invalid++
			continue
		}

		nick, err := viewers.NormalizeNick(record[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "line %d: %v\n", line, err)
			invalid++
			continue
		}
		points, err := strconv.ParseInt(strings.TrimSpace(record[1]), 10, 64)
		if err != nil || points < 0 {
			if line == 1 {
				// header
				continue
			}
			fmt.Fprintf(os.Stderr, "line %d: invalid points %q\n", line, record[1])
			invalid++
			continue
		}
		rows = append(rows, seedRow{Nick: nick, Points: points})
	}
	return rows, invalid, nil
}

func main() {
	path := defaultPath
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	// 1) Load the CSV snapshot
	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	rows, invalid, err := parseRows(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	// 2) Connect using the server's database settings
	cfg, err := config.LoadFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	// 3) Upsert and count
	var (
		total    = len(rows) + invalid
		inserted int
		updated  int
		errs     = invalid
	)

	for _, row := range rows {
		var wasInserted bool
		err := pool.QueryRow(ctx, `
            INSERT INTO viewers (id, channel_nick, points)
            VALUES ($1, $2, $3)
            ON CONFLICT (channel_nick) DO UPDATE SET points = EXCLUDED.points
            RETURNING (xmax = 0)
        `, uuid.New(), row.Nick, row.Points).Scan(&wasInserted)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error upserting viewer %s: %v\n", row.Nick, err)
			errs++
			continue
		}
		if wasInserted {
			inserted++
		} else {
			updated++
		}
	}

	// 4) Print summary
	fmt.Printf(
		"Viewers seed complete: %d total, %d inserted, %d updated, %d errors\n",
		total, inserted, updated, errs,
	)
}
