package analyzer

import (
	"errors"
	"fmt"
)

var (
	// ErrNotInitialized возвращается при разборе до завершения загрузки словарей.
	ErrNotInitialized = errors.New("анализатор не инициализирован: вызовите Init до разбора")

	// ErrAlreadyInitialized возвращается при повторной инициализации.
	ErrAlreadyInitialized = errors.New("анализатор уже инициализирован")

	// ErrInflection означает, что подходящей формы в парадигме нет.
	ErrInflection = errors.New("не удалось поставить слово в нужную форму")
)

// LoadError описывает сбой загрузки одного из словарей.
type LoadError struct {
	Asset string
	Err   error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("ошибка загрузки %s: %v", e.Asset, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
