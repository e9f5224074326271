package errors

import "fmt"

var (
	ErrWorkerPanic      = fmt.Errorf("worker panic")
	ErrHandlerPanic     = fmt.Errorf("handler panic")
	ErrNotConnected     = fmt.Errorf("socket not connected")
	ErrInvalidDirectory = fmt.Errorf("invalid participant directory")
	ErrLoopStopped      = fmt.Errorf("event loop stopped")
)
