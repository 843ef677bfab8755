package services

import "errors"

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrProjectNotFound = errors.New("project not found")
	ErrInvalidState    = errors.New("invalid task state")
	ErrInvalidPriority = errors.New("invalid task priority")
)
