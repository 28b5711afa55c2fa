package agenda

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"connectrpc.com/connect"
	"github.com/mcdev12/weblurk/go/internal/admins"
	"github.com/mcdev12/weblurk/go/internal/api/weblurkv1"
	"github.com/mcdev12/weblurk/go/internal/models"
	"github.com/mcdev12/weblurk/go/internal/rpcjson"
	"github.com/rs/zerolog/log"
)

// maxUploadBytes bounds agenda uploads
const maxUploadBytes = 10 << 20

// AgendaApp defines what the service layer needs from the agenda application
type AgendaApp interface {
	Import(ctx context.Context, filename string, r io.Reader) (*ImportResult, error)
	Today(ctx context.Context) (time.Time, []models.ScheduleEntry, error)
	List(ctx context.Context, date *time.Time) ([]models.ScheduleEntry, error)
	Clear(ctx context.Context) (int64, error)
	ExportXLSX(ctx context.Context, w io.Writer) error
}

// Service implements the AgendaService RPC interface and the file
// upload/download handlers. Only GetToday is public.
type Service struct {
	app AgendaApp
}

// NewService creates a new agenda service
func NewService(app AgendaApp) *Service {
	return &Service{
		app: app,
	}
}

// Verify that Service implements the AgendaServiceHandler interface
var _ weblurkv1.AgendaServiceHandler = (*Service)(nil)

// GetToday lists today's broadcasts
func (s *Service) GetToday(ctx context.Context, req *connect.Request[weblurkv1.GetTodayRequest]) (*connect.Response[weblurkv1.GetTodayResponse], error) {
	day, entries, err := s.app.Today(ctx)
	if err != nil {
		return nil, rpcjson.Error(err)
	}

	return connect.NewResponse(&weblurkv1.GetTodayResponse{
		Date:    day.Format(time.DateOnly),
		Entries: weblurkv1.ScheduleEntriesFromModels(entries),
	}), nil
}

// ListAgenda lists the agenda, optionally for one date (YYYY-MM-DD)
func (s *Service) ListAgenda(ctx context.Context, req *connect.Request[weblurkv1.ListAgendaRequest]) (*connect.Response[weblurkv1.ListAgendaResponse], error) {
	if _, err := admins.RequireAdmin(ctx); err != nil {
		return nil, rpcjson.Error(err)
	}

	var date *time.Time
	if req.Msg.Date != "" {
		d, err := time.Parse(time.DateOnly, req.Msg.Date)
		if err != nil {
			return nil, rpcjson.InvalidArgument(errors.New("invalid date, use YYYY-MM-DD"))
		}
		date = &d
	}

	entries, err := s.app.List(ctx, date)
	if err != nil {
		return nil, rpcjson.Error(err)
	}

	return connect.NewResponse(&weblurkv1.ListAgendaResponse{
		Entries: weblurkv1.ScheduleEntriesFromModels(entries),
	}), nil
}

// ClearAgenda deletes the whole agenda
func (s *Service) ClearAgenda(ctx context.Context, req *connect.Request[weblurkv1.ClearAgendaRequest]) (*connect.Response[weblurkv1.ClearAgendaResponse], error) {
	if _, err := admins.RequireAdmin(ctx); err != nil {
		return nil, rpcjson.Error(err)
	}

	n, err := s.app.Clear(ctx)
	if err != nil {
		return nil, rpcjson.Error(err)
	}

	return connect.NewResponse(&weblurkv1.ClearAgendaResponse{Deleted: n}), nil
}

type uploadResponse struct {
	Imported int    `json:"imported"`
	Skipped  int    `json:"skipped"`
	Error    string `json:"error,omitempty"`
}

// UploadHandler accepts a multipart form with the agenda in the "file" field
func (s *Service) UploadHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := admins.RequireAdmin(r.Context()); err != nil {
			writeJSON(w, http.StatusUnauthorized, uploadResponse{Error: "administrator login required"})
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		file, header, err := r.FormFile("file")
		if err != nil {
			writeJSON(w, http.StatusBadRequest, uploadResponse{Error: "no file uploaded"})
			return
		}
		defer file.Close()

		result, err := s.app.Import(r.Context(), header.Filename, file)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, models.ErrInvalidArgument) {
				status = http.StatusBadRequest
			} else {
				log.Error().Err(err).Str("file", header.Filename).Msg("agenda upload failed")
			}
			writeJSON(w, status, uploadResponse{Error: err.Error()})
			return
		}

		writeJSON(w, http.StatusOK, uploadResponse{Imported: result.Imported, Skipped: result.Skipped})
	})
}

// ExportHandler serves the agenda as an .xlsx download
func (s *Service) ExportHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := admins.RequireAdmin(r.Context()); err != nil {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		var buf bytes.Buffer
		if err := s.app.ExportXLSX(r.Context(), &buf); err != nil {
			log.Error().Err(err).Msg("agenda export failed")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="agenda_weblurk.xlsx"`)
		_, _ = buf.WriteTo(w)
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Warn().Err(err).Msg("failed to write response")
	}
}
