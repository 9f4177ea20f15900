package errors

import (
	"errors"
	"fmt"
)

var (
	ErrURLNotFound  = errors.New("URL not found")
	ErrAliasExists  = errors.New("alias already exists")
	ErrInvalidURL   = errors.New("invalid URL")
	ErrInvalidAlias = errors.New("invalid alias")
)

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error in field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

type BusinessError struct {
	Code    string
	Message string
	Cause   error
}

func (e *BusinessError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Cause
}

func NewBusinessError(code, message string, cause error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewStoreError оборачивает ошибку БД в BusinessError с кодом DATABASE_ERROR.
// Хендлеры по этому коду отличают сбой хранилища от настоящего "не найдено".
func NewStoreError(message string, cause error) *BusinessError {
	return NewBusinessError("DATABASE_ERROR", message, cause)
}

var (
	ErrAliasGeneration   = NewBusinessError("ALIAS_GENERATION", "failed to generate unique alias", nil)
	ErrDatabaseOperation = NewBusinessError("DATABASE_ERROR", "database operation failed", nil)
)

// IsValidationError проверяет является ли ошибка ошибкой валидации
func IsValidationError(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsBusinessError проверяет является ли ошибка бизнес-ошибкой
func IsBusinessError(err error) bool {
	var businessErr *BusinessError
	return errors.As(err, &businessErr)
}

// IsStoreError проверяет, что причина ошибки - сбой хранилища, а не отсутствие записи
func IsStoreError(err error) bool {
	businessErr := GetBusinessError(err)
	return businessErr != nil && businessErr.Code == "DATABASE_ERROR"
}

func GetValidationError(err error) *ValidationError {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr
	}
	return nil
}

// GetBusinessError извлекает BusinessError из ошибки
func GetBusinessError(err error) *BusinessError {
	var businessErr *BusinessError
	if errors.As(err, &businessErr) {
		return businessErr
	}
	return nil
}
