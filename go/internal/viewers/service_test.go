package viewers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"connectrpc.com/connect"
	"github.com/google/uuid"
	"github.com/mcdev12/weblurk/go/internal/api/weblurkv1"
	"github.com/mcdev12/weblurk/go/internal/store/memory"
	"github.com/mcdev12/weblurk/go/internal/viewers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewerService(t *testing.T) {
	mux := http.NewServeMux()
	mux.Handle(weblurkv1.NewViewerServiceHandler(viewers.NewService(viewers.NewApp(memory.New(), nil))))
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := weblurkv1.NewViewerServiceClient(srv.Client(), srv.URL)
	ctx := context.Background()

	reg, err := client.RegisterNick(ctx, connect.NewRequest(&weblurkv1.RegisterNickRequest{Nick: "lurker"}))
	require.NoError(t, err)
	assert.Equal(t, "lurker", reg.Msg.Viewer.ChannelNick)
	assert.Equal(t, "popup", reg.Msg.Viewer.WindowMode)

	got, err := client.GetViewer(ctx, connect.NewRequest(&weblurkv1.GetViewerRequest{ID: reg.Msg.Viewer.ID}))
	require.NoError(t, err)
	assert.Equal(t, reg.Msg.Viewer.ID, got.Msg.Viewer.ID)

	online, err := client.ListOnline(ctx, connect.NewRequest(&weblurkv1.ListOnlineRequest{}))
	require.NoError(t, err)
	assert.Empty(t, online.Msg.Viewers)

	_, err = client.RegisterNick(ctx, connect.NewRequest(&weblurkv1.RegisterNickRequest{Nick: " "}))
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))

	_, err = client.GetViewer(ctx, connect.NewRequest(&weblurkv1.GetViewerRequest{ID: uuid.NewString()}))
	assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))
}
