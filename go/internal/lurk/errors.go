package lurk

import (
	"errors"
	"fmt"

	"github.com/mcdev12/weblurk/go/internal/models"
)

var (
	// ErrNotFound is returned when the referenced viewer does not exist
	ErrNotFound = models.ErrNotFound

	// ErrDuplicateTimer is logged when Start finds a live task for the same viewer.
	// The newer task wins and the displaced one exits without further credits.
	ErrDuplicateTimer = errors.New("duplicate accrual timer")

	// ErrInvalidWindowMode is returned for window modes outside the known set
	ErrInvalidWindowMode = fmt.Errorf("%w: unknown window mode", models.ErrInvalidArgument)

	// ErrInvalidClientInfo is returned when client metadata is not valid JSON
	ErrInvalidClientInfo = fmt.Errorf("%w: client info must be a JSON document", models.ErrInvalidArgument)
)
