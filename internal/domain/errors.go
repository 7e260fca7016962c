package domain

import "errors"

// ErrUnknownState is returned when a state string matches neither a time
// state nor a booking status
var ErrUnknownState = errors.New("unknown state")
