package lurk_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"connectrpc.com/connect"
	"github.com/google/uuid"
	"github.com/mcdev12/weblurk/go/internal/api/weblurkv1"
	"github.com/mcdev12/weblurk/go/internal/lurk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLurkClient(t *testing.T, h *harness) weblurkv1.LurkServiceClient {
	t.Helper()
	mux := http.NewServeMux()
	mux.Handle(weblurkv1.NewLurkServiceHandler(lurk.NewService(h.app)))
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return weblurkv1.NewLurkServiceClient(srv.Client(), srv.URL)
}

func TestServiceLurkRoundTrip(t *testing.T) {
	h := newHarness(t)
	client := newLurkClient(t, h)
	ctx := context.Background()
	id := h.viewer("lurker", 0)

	req := connect.NewRequest(&weblurkv1.BeginLurkRequest{ViewerID: id.String(), WindowMode: "tab"})
	req.Header().Set("User-Agent", "lurk-test")
	begin, err := client.BeginLurk(ctx, req)
	require.NoError(t, err)
	assert.True(t, begin.Msg.Session.Active)
	assert.Equal(t, "tab", begin.Msg.Session.WindowMode)

	sessions := h.store.Sessions(id)
	require.Len(t, sessions, 1)
	assert.Contains(t, string(sessions[0].ClientInfo), "lurk-test")

	status, err := client.GetStatus(ctx, connect.NewRequest(&weblurkv1.GetStatusRequest{ViewerID: id.String()}))
	require.NoError(t, err)
	assert.True(t, status.Msg.Lurking)
	assert.Equal(t, "lurker", status.Msg.Viewer.ChannelNick)

	end, err := client.EndLurk(ctx, connect.NewRequest(&weblurkv1.EndLurkRequest{ViewerID: id.String()}))
	require.NoError(t, err)
	assert.True(t, end.Msg.Success)
	assert.False(t, h.sched.Active(id))
}

func TestServiceErrorCodes(t *testing.T) {
	h := newHarness(t)
	client := newLurkClient(t, h)
	ctx := context.Background()
	id := h.viewer("lurker", 0)

	_, err := client.BeginLurk(ctx, connect.NewRequest(&weblurkv1.BeginLurkRequest{ViewerID: "not-a-uuid"}))
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))

	_, err = client.BeginLurk(ctx, connect.NewRequest(&weblurkv1.BeginLurkRequest{ViewerID: id.String(), WindowMode: "fullscreen"}))
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))

	_, err = client.EndLurk(ctx, connect.NewRequest(&weblurkv1.EndLurkRequest{ViewerID: uuid.NewString()}))
	assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))

	_, err = client.GetStatus(ctx, connect.NewRequest(&weblurkv1.GetStatusRequest{ViewerID: uuid.NewString()}))
	assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))
}
