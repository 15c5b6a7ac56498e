package model

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidGridDimensions = errors.New("invalid grid dimensions")
	ErrInvalidScatterCount   = errors.New("invalid scatter count")
	ErrInvalidSeed           = errors.New("invalid seed")
	ErrInvalidConfiguration  = errors.New("invalid configuration")
	ErrInvalidBet            = errors.New("invalid bet")
)

// IsValidation - ошибка входных данных, которую вызывающий может исправить
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidGridDimensions) ||
		errors.Is(err, ErrInvalidScatterCount) ||
		errors.Is(err, ErrInvalidSeed) ||
		errors.Is(err, ErrInvalidConfiguration) ||
		errors.Is(err, ErrInvalidBet)
}

// StepProcessingError оборачивает непредвиденную ошибку шага фриспинов
type StepProcessingError struct {
	Step int
	Err  error
}

func (e *StepProcessingError) Error() string {
	return fmt.Sprintf("free spins step %d: %v", e.Step, e.Err)
}

func (e *StepProcessingError) Unwrap() error {
	return e.Err
}

// ValidateSeed проверяет, что сид помещается в 32 бита
func ValidateSeed(seed int64) error {
	if seed < 0 || seed > MaxSeed {
		return fmt.Errorf("%w: %d", ErrInvalidSeed, seed)
	}
	return nil
}

const MaxSeed = int64(^uint32(0))
