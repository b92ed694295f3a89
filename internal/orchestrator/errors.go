package orchestrator

import "errors"

// Ошибки оркестратора.
var (
	// ErrRunNotFound — запуск не найден в БД.
	ErrRunNotFound = errors.New("run not found")

	// ErrVersionNotFound — версия workflow не найдена.
	ErrVersionNotFound = errors.New("workflow version not found")

	// ErrRunAlreadyActive — запуск уже обрабатывается.
	ErrRunAlreadyActive = errors.New("run already being processed")

	// ErrRunNotPending — запуск не в статусе PENDING.
	ErrRunNotPending = errors.New("run is not in PENDING status")
)
