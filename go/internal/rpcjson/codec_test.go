package rpcjson_test

import (
	"errors"
	"fmt"
	"testing"

	"connectrpc.com/connect"
	"github.com/mcdev12/weblurk/go/internal/models"
	"github.com/mcdev12/weblurk/go/internal/rpcjson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type message struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestCodecRoundTrip(t *testing.T) {
	codec := rpcjson.Codec{}
	assert.Equal(t, "json", codec.Name())

	data, err := codec.Marshal(&message{Name: "nick", Count: 3})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"nick","count":3}`, string(data))

	var out message
	require.NoError(t, codec.Unmarshal(data, &out))
	assert.Equal(t, message{Name: "nick", Count: 3}, out)
}

func TestCodecEmptyBody(t *testing.T) {
	var out message
	require.NoError(t, rpcjson.Codec{}.Unmarshal(nil, &out))
	assert.Equal(t, message{}, out)
}

func TestCodecRejectsMalformedJSON(t *testing.T) {
	var out message
	assert.Error(t, rpcjson.Codec{}.Unmarshal([]byte(`{"name":`), &out))
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		err  error
		want connect.Code
	}{
		{fmt.Errorf("x: %w", models.ErrInvalidArgument), connect.CodeInvalidArgument},
		{fmt.Errorf("x: %w", models.ErrNotFound), connect.CodeNotFound},
		{models.ErrAlreadyExists, connect.CodeAlreadyExists},
		{models.ErrPermissionDenied, connect.CodePermissionDenied},
		{models.ErrUnauthenticated, connect.CodeUnauthenticated},
		{models.ErrStoreUnavailable, connect.CodeUnavailable},
		{errors.New("boom"), connect.CodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, rpcjson.CodeOf(tt.err))
		})
	}
}

func TestErrorKeepsConnectErrors(t *testing.T) {
	orig := connect.NewError(connect.CodeAborted, errors.New("aborted"))
	assert.Equal(t, connect.CodeAborted, connect.CodeOf(rpcjson.Error(orig)))
	assert.Equal(t, connect.CodeNotFound, connect.CodeOf(rpcjson.Error(models.ErrNotFound)))
	assert.NoError(t, rpcjson.Error(nil))
}
