package ecs

import "errors"

var (
	// ErrEntityNotFound is returned when an operation targets an unknown entity id.
	ErrEntityNotFound = errors.New("ecs: entity not found")
	// ErrZeroEntity is returned when an operation is attempted against the unset entity id.
	ErrZeroEntity = errors.New("ecs: zero entity")
	// ErrComponentNotFound is returned when a requested component class is absent on an entity.
	ErrComponentNotFound = errors.New("ecs: component not found")
	// ErrPhaseRunning is returned when an unload is attempted while a phase is executing.
	ErrPhaseRunning = errors.New("ecs: phase is currently executing")
)
