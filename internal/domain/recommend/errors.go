package recommend

import (
	"errors"

	"github.com/okian/crosstune/internal/domain/profile"
	"github.com/okian/crosstune/internal/domain/ranking"
)

// Sentinel errors for recommendation requests. ErrInvalidK and
// ErrUnknownMovie are shared with the packages that raise them, so
// errors.Is matches either name.
var (
	ErrInvalidSelection = errors.New("invalid number of selected movies")
	ErrInvalidBounds    = errors.New("invalid request bounds")
	ErrInvalidK         = ranking.ErrInvalidK
	ErrUnknownMovie     = profile.ErrUnknownMovie
)
