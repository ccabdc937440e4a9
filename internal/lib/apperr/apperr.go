// Package apperr описывает классы ошибок, общие для хранилища, сервисов и HTTP-слоя.
//
// Слои оборачивают ошибки через fmt.Errorf("%s: %w", op, err), а обработчики
// проверяют класс через errors.Is.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound запрошенная сущность отсутствует.
	ErrNotFound = errors.New("not found")
	// ErrConflict сущность с таким ключом уже существует.
	ErrConflict = errors.New("already exists")
	// ErrInvalid входные данные некорректны.
	ErrInvalid = errors.New("invalid input")
	// ErrPrecondition справочные данные для операции ещё не загружены.
	ErrPrecondition = errors.New("precondition failed")
	// ErrUnauthorized неверные учётные данные.
	ErrUnauthorized = errors.New("unauthorized")
)

// Error ошибка одного из классов с пояснением для клиента.
type Error struct {
	Kind   error
	Detail string
}

func (e *Error) Error() string { return e.Kind.Error() + ": " + e.Detail }

func (e *Error) Unwrap() error { return e.Kind }

// Invalidf возвращает ErrInvalid с пояснением.
func Invalidf(format string, args ...any) error {
	return &Error{Kind: ErrInvalid, Detail: fmt.Sprintf(format, args...)}
}

// Preconditionf возвращает ErrPrecondition с пояснением.
func Preconditionf(format string, args ...any) error {
	return &Error{Kind: ErrPrecondition, Detail: fmt.Sprintf(format, args...)}
}

// Detail возвращает пояснение из цепочки err, если оно есть.
func Detail(err error) (string, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Detail, true
	}
	return "", false
}
