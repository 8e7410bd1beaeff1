package create_appointment

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput некорректные входные данные
	ErrInvalidInput = errors.New("create_appointment: invalid input data")
	// ErrTimeConflict слот пересекается с существующей записью врача
	ErrTimeConflict = errors.New("create_appointment: time conflict detected")
	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("create_appointment: internal error")
)

// ValidationError ошибка валидации конкретного поля запроса.
// Поля проверяются в фиксированном порядке, возвращается первая ошибка.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: field %q %s", ErrInvalidInput, e.Field, e.Reason)
}

// Unwrap поддерживает errors.Is(err, ErrInvalidInput)
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// ConflictError пересечение с существующей записью врача.
// Содержит дату и время записи, с которой обнаружен конфликт.
type ConflictError struct {
	DoctorName      string
	ConflictingDate string
	ConflictingTime string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%v: %s has an appointment at %s on %s",
		ErrTimeConflict, e.DoctorName, e.ConflictingTime, e.ConflictingDate)
}

// Unwrap поддерживает errors.Is(err, ErrTimeConflict)
func (e *ConflictError) Unwrap() error {
	return ErrTimeConflict
}
