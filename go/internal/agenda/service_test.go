package agenda_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"connectrpc.com/connect"
	"github.com/mcdev12/weblurk/go/internal/admins"
	"github.com/mcdev12/weblurk/go/internal/agenda"
	"github.com/mcdev12/weblurk/go/internal/api/weblurkv1"
	"github.com/mcdev12/weblurk/go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadRequest(t *testing.T, filename, content string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/agenda/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func asAdmin(req *http.Request) *http.Request {
	return req.WithContext(admins.WithAdmin(req.Context(), &models.Administrator{Login: "ADM"}))
}

func TestUploadHandler(t *testing.T) {
	app, _ := newApp(t)
	handler := agenda.NewService(app).UploadHandler()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, uploadRequest(t, "agenda.csv", sampleCSV))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, asAdmin(uploadRequest(t, "agenda.csv", sampleCSV)))
	require.Equal(t, http.StatusOK, rec.Code)
	var res struct {
		Imported int `json:"imported"`
		Skipped  int `json:"skipped"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	assert.Equal(t, 3, res.Imported)
	assert.Equal(t, 3, res.Skipped)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, asAdmin(uploadRequest(t, "agenda.txt", sampleCSV)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAgendaService(t *testing.T) {
	app, _ := newApp(t)
	svc := agenda.NewService(app)
	ctx := context.Background()

	rec := httptest.NewRecorder()
	svc.UploadHandler().ServeHTTP(rec, asAdmin(uploadRequest(t, "agenda.csv", sampleCSV)))
	require.Equal(t, http.StatusOK, rec.Code)

	today, err := svc.GetToday(ctx, connect.NewRequest(&weblurkv1.GetTodayRequest{}))
	require.NoError(t, err)
	assert.Equal(t, "2024-05-03", today.Msg.Date)
	require.Len(t, today.Msg.Entries, 2)
	assert.Equal(t, "09:00", today.Msg.Entries[0].Time)

	_, err = svc.ListAgenda(ctx, connect.NewRequest(&weblurkv1.ListAgendaRequest{}))
	assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))

	adminCtx := admins.WithAdmin(ctx, &models.Administrator{Login: "ADM"})
	_, err = svc.ListAgenda(adminCtx, connect.NewRequest(&weblurkv1.ListAgendaRequest{Date: "04/05/2024"}))
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))

	listed, err := svc.ListAgenda(adminCtx, connect.NewRequest(&weblurkv1.ListAgendaRequest{Date: "2024-05-04"}))
	require.NoError(t, err)
	require.Len(t, listed.Msg.Entries, 1)

	cleared, err := svc.ClearAgenda(adminCtx, connect.NewRequest(&weblurkv1.ClearAgendaRequest{}))
	require.NoError(t, err)
	assert.Equal(t, int64(3), cleared.Msg.Deleted)
}

func TestAgendaExportHandler(t *testing.T) {
	app, _ := newApp(t)
	handler := agenda.NewService(app).ExportHandler()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/export/agenda", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, asAdmin(httptest.NewRequest(http.MethodGet, "/export/agenda", nil)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "agenda_weblurk.xlsx")
	assert.NotZero(t, rec.Body.Len())
}
