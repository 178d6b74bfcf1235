package driver

import (
	"errors"
	"fmt"

	"github.com/gnolang/loopx/internal/syntax"
)

// ErrMissingCondition is returned for a conditional or loop whose test is
// absent from the tree.
var ErrMissingCondition = errors.New("missing condition")

// Warning reports a construct that extraction skipped.
type Warning struct {
	Pos       syntax.Pos
	Construct string
	Function  string
}

func (w Warning) String() string {
	if w.Function == "" {
		return fmt.Sprintf("%s: unsupported %s", w.Pos, w.Construct)
	}
	return fmt.Sprintf("%s: unsupported %s in %s", w.Pos, w.Construct, w.Function)
}
