package dynamo

import "errors"

// ErrInvalidState indicates a state vector with NaN or Inf entries.
var ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")
