package model

import "errors"

// ErrMergeMismatch is returned when two trace sets that do not describe the
// same loop or function are merged.
var ErrMergeMismatch = errors.New("merge of mismatched trace sets")
