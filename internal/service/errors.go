package service

import (
	"errors"
	"fmt"

	"restaurant-recap/internal/lock"
	"restaurant-recap/internal/parser"
	"restaurant-recap/internal/repository"
)

var (
	ErrFutureDateRejected = errors.New("report date is in the future")
	ErrIncompleteFileSet  = errors.New("incomplete file set")
	ErrAlreadyImported    = errors.New("report already exists for this restaurant and date")
	ErrNotFound           = errors.New("report not found")
	ErrValidation         = errors.New("validation failed")
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrImportInProgress   = errors.New("another import is running for this restaurant and date")
)

// mapError converts lower layer errors to service errors, keeping the cause
// in the message.
func mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrDuplicate):
		return ErrAlreadyImported
	case errors.Is(err, repository.ErrUnavailable):
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	case errors.Is(err, parser.ErrMalformed):
		return fmt.Errorf("%w: %v", ErrValidation, err)
	case errors.Is(err, lock.ErrLockTimeout):
		return ErrImportInProgress
	}
	return err
}
