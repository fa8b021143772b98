package lyra2

import "github.com/pkg/errors"

var (
	// ErrInvalidParameter is returned when the time cost, row count, column
	// count or output length is out of range.
	ErrInvalidParameter = errors.New("lyra2: invalid parameter")

	// ErrCapacityExceeded is returned when the padded password, salt and
	// parameters do not fit in the memory matrix.
	ErrCapacityExceeded = errors.New("lyra2: input exceeds matrix capacity")
)
