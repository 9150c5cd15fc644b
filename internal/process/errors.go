package process

import "errors"

// ErrInvalidPID reports a PID that cannot lead a process tree.
var ErrInvalidPID = errors.New("invalid pid")
