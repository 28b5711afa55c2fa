package ranking

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"connectrpc.com/connect"
	"github.com/mcdev12/weblurk/go/internal/admins"
	"github.com/mcdev12/weblurk/go/internal/api/weblurkv1"
	"github.com/mcdev12/weblurk/go/internal/rpcjson"
	"github.com/rs/zerolog/log"
)

// RankingApp defines what the service layer needs from the ranking application
type RankingApp interface {
	List(ctx context.Context) ([]Entry, error)
	ExportCSV(ctx context.Context, w io.Writer) error
	ExportXLSX(ctx context.Context, w io.Writer) error
	Reset(ctx context.Context) (int64, error)
}

// Service implements the RankingService RPC interface and the export
// downloads. Everything requires an administrator.
type Service struct {
	app RankingApp
}

// NewService creates a new ranking service
func NewService(app RankingApp) *Service {
	return &Service{
		app: app,
	}
}

// Verify that Service implements the RankingServiceHandler interface
var _ weblurkv1.RankingServiceHandler = (*Service)(nil)

// ListRanking returns the ranking
func (s *Service) ListRanking(ctx context.Context, req *connect.Request[weblurkv1.ListRankingRequest]) (*connect.Response[weblurkv1.ListRankingResponse], error) {
	if _, err := admins.RequireAdmin(ctx); err != nil {
		return nil, rpcjson.Error(err)
	}

	entries, err := s.app.List(ctx)
	if err != nil {
		return nil, rpcjson.Error(err)
	}

	out := make([]*weblurkv1.RankingEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, &weblurkv1.RankingEntry{
			Position:    e.Position,
			ChannelNick: e.ChannelNick,
			Points:      e.Points,
			Average:     e.Average,
		})
	}
	return connect.NewResponse(&weblurkv1.ListRankingResponse{Entries: out}), nil
}

// ResetRanking zeroes every viewer's points
func (s *Service) ResetRanking(ctx context.Context, req *connect.Request[weblurkv1.ResetRankingRequest]) (*connect.Response[weblurkv1.ResetRankingResponse], error) {
	admin, err := admins.RequireAdmin(ctx)
	if err != nil {
		return nil, rpcjson.Error(err)
	}

	n, err := s.app.Reset(ctx)
	if err != nil {
		return nil, rpcjson.Error(err)
	}

	log.Info().Str("admin", admin.Login).Int64("viewers", n).Msg("ranking reset requested")
	return connect.NewResponse(&weblurkv1.ResetRankingResponse{ViewersReset: n}), nil
}

// ExportHandler serves the ranking as a file download. The format query
// parameter picks csv (default) or xlsx.
func (s *Service) ExportHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := admins.RequireAdmin(r.Context()); err != nil {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		var (
			buf         bytes.Buffer
			err         error
			contentType string
			filename    string
		)
		switch format := r.URL.Query().Get("format"); format {
		case "", "csv":
			err = s.app.ExportCSV(r.Context(), &buf)
			contentType, filename = "text/csv; charset=utf-8", "ranking_weblurk.csv"
		case "xlsx":
			err = s.app.ExportXLSX(r.Context(), &buf)
			contentType, filename = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "ranking_weblurk.xlsx"
		default:
			http.Error(w, "unsupported format "+format, http.StatusBadRequest)
			return
		}
		if err != nil {
			log.Error().Err(err).Msg("ranking export failed")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
		_, _ = buf.WriteTo(w)
	})
}
