package solve

import (
	"github.com/averas/assembunny/translate"
)

var f = translate.From

// ErrUnknownDay reports a puzzle day with no machine workload.
type ErrUnknownDay int

func (err ErrUnknownDay) Error() string {
	return f("no solver for day %d", int(err))
}
