package admins_test

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"connectrpc.com/connect"
	"github.com/mcdev12/weblurk/go/internal/admins"
	"github.com/mcdev12/weblurk/go/internal/api/weblurkv1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware(t *testing.T) {
	app, _ := newApp(t)
	_, err := app.Bootstrap(context.Background(), "", "123")
	require.NoError(t, err)

	var seen string
	handler := app.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if admin, ok := admins.FromContext(r.Context()); ok {
			seen = admin.Login
		} else {
			seen = "anonymous"
		}
	}))

	tests := []struct {
		name       string
		login      string
		password   string
		wantStatus int
		wantSeen   string
	}{
		{name: "anonymous", wantStatus: http.StatusOK, wantSeen: "anonymous"},
		{name: "valid", login: "ADM", password: "123", wantStatus: http.StatusOK, wantSeen: "ADM"},
		{name: "bad password", login: "ADM", password: "nope", wantStatus: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = ""
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.login != "" {
				req.SetBasicAuth(tt.login, tt.password)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantSeen, seen)
		})
	}
}

func TestRequireAdminHandler(t *testing.T) {
	handler := admins.RequireAdminHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminService(t *testing.T) {
	app, _ := newApp(t)
	_, err := app.Bootstrap(context.Background(), "", "123")
	require.NoError(t, err)

	mux := http.NewServeMux()
	path, handler := weblurkv1.NewAdminServiceHandler(admins.NewService(app))
	mux.Handle(path, app.Middleware(handler))
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := weblurkv1.NewAdminServiceClient(srv.Client(), srv.URL)
	ctx := context.Background()

	_, err = client.WhoAmI(ctx, connect.NewRequest(&weblurkv1.WhoAmIRequest{}))
	assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))

	auth := func(req interface{ Header() http.Header }) {
		req.Header().Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte("ADM:123")))
	}

	who := connect.NewRequest(&weblurkv1.WhoAmIRequest{})
	auth(who)
	me, err := client.WhoAmI(ctx, who)
	require.NoError(t, err)
	assert.Equal(t, "ADM", me.Msg.Admin.Login)
	assert.True(t, me.Msg.Admin.Creator)

	create := connect.NewRequest(&weblurkv1.CreateAdminRequest{Login: "mod", Password: "pw"})
	auth(create)
	created, err := client.CreateAdmin(ctx, create)
	require.NoError(t, err)
	assert.False(t, created.Msg.Admin.Creator)

	list := connect.NewRequest(&weblurkv1.ListAdminsRequest{})
	auth(list)
	listed, err := client.ListAdmins(ctx, list)
	require.NoError(t, err)
	assert.Len(t, listed.Msg.Admins, 2)

	del := connect.NewRequest(&weblurkv1.DeleteAdminRequest{ID: me.Msg.Admin.ID})
	auth(del)
	_, err = client.DeleteAdmin(ctx, del)
	assert.Equal(t, connect.CodePermissionDenied, connect.CodeOf(err))

	change := connect.NewRequest(&weblurkv1.ChangePasswordRequest{NewPassword: "456"})
	auth(change)
	_, err = client.ChangePassword(ctx, change)
	require.NoError(t, err)

	stale := connect.NewRequest(&weblurkv1.WhoAmIRequest{})
	auth(stale)
	_, err = client.WhoAmI(ctx, stale)
	assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))

	fresh := connect.NewRequest(&weblurkv1.ChangePasswordRequest{})
	fresh.Header().Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte("ADM:456")))
	_, err = client.ChangePassword(ctx, fresh)
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
}
