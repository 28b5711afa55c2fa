package sqlutil_test

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/mcdev12/weblurk/go/internal/models"
	"github.com/mcdev12/weblurk/go/internal/sqlutil"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"no rows", sql.ErrNoRows, models.ErrNotFound},
		{"unique violation", &pq.Error{Code: "23505"}, models.ErrAlreadyExists},
		{"bad conn", driver.ErrBadConn, models.ErrStoreUnavailable},
		{"deadline", context.DeadlineExceeded, models.ErrStoreUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sqlutil.Classify(tt.err)
			assert.ErrorIs(t, got, tt.want)
			assert.ErrorIs(t, got, tt.err)
		})
	}
}

func TestClassify_PassThrough(t *testing.T) {
	assert.NoError(t, sqlutil.Classify(nil))

	other := errors.New("syntax error")
	assert.Equal(t, other, sqlutil.Classify(other))

	fk := &pq.Error{Code: "23503"}
	assert.NotErrorIs(t, sqlutil.Classify(fk), models.ErrAlreadyExists)
}
