package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/shaiso/Agentum/internal/domain"
	"github.com/shaiso/Agentum/internal/repo"
)

// ListRuns возвращает список запусков с фильтрацией.
// GET /api/v1/runs?workflow_id=...&status=...&limit=...&offset=...
func (h *Handler) ListRuns(w http.ResponseWriter, r *http.Request) {
	filter := repo.RunFilter{}

	// Парсим query параметры
	if workflowIDStr := r.URL.Query().Get("workflow_id"); workflowIDStr != "" {
		workflowID, err := uuid.Parse(workflowIDStr)
		if err != nil {
			BadRequest(w, "invalid workflow_id")
			return
		}
		filter.WorkflowID = &workflowID
	}

	if status := r.URL.Query().Get("status"); status != "" {
		filter.Status = domain.RunStatus(status)
	}

	filter.Limit = intParam(r, "limit", 50)
	filter.Offset = intParam(r, "offset", 0)

	runs, err := h.runRepo.List(r.Context(), filter)
	if HandleRepoError(w, h.logger, err, "") {
		return
	}

	result := make([]RunResponse, len(runs))
	for i, run := range runs {
		result[i] = RunFromDomain(run)
	}

	List(w, result, len(result))
}

// CreateRun создаёт новый запуск workflow.
// POST /api/v1/workflows/{id}/runs
func (h *Handler) CreateRun(w http.ResponseWriter, r *http.Request) {
	workflowID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		BadRequest(w, "invalid workflow id")
		return
	}

	var req CreateRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid request body")
		return
	}

	// Проверяем, что workflow существует
	workflow, err := h.workflowRepo.GetByID(r.Context(), workflowID)
	if HandleRepoError(w, h.logger, err, "workflow not found") {
		return
	}

	// Определяем версию
	var version int
	if req.Version != nil {
		version = *req.Version
		// Проверяем, что версия существует
		_, err := h.workflowRepo.GetVersion(r.Context(), workflowID, version)
		if HandleRepoError(w, h.logger, err, "workflow version not found") {
			return
		}
	} else {
		// Используем последнюю версию
		latestVersion, err := h.workflowRepo.GetLatestVersion(r.Context(), workflowID)
		if HandleRepoError(w, h.logger, err, "workflow has no versions") {
			return
		}
		version = latestVersion.Version
	}

	// Проверяем idempotency key
	if req.IdempotencyKey != "" {
		existingRun, err := h.runRepo.GetByIdempotencyKey(r.Context(), workflowID, req.IdempotencyKey)
		if err == nil && existingRun != nil {
			// Возвращаем существующий запуск
			Success(w, RunFromDomain(*existingRun))
			return
		}
	}

	run := &domain.Run{
		ID:             uuid.New(),
		WorkflowID:     workflow.ID,
		Version:        version,
		Status:         domain.RunStatusPending,
		Inputs:         req.Inputs,
		IdempotencyKey: req.IdempotencyKey,
	}

	if err := h.runRepo.Create(r.Context(), run); err != nil {
		InternalError(w, h.logger, err)
		return
	}

	// Публикуем событие в очередь
	if h.publisher != nil {
		if err := h.publisher.PublishRunPending(r.Context(), run.ID); err != nil {
			h.logger.Warn("failed to publish run.pending", "run_id", run.ID, "error", err)
		}
	}

	Created(w, RunFromDomain(*run))
}

// GetRun возвращает запуск по ID.
// GET /api/v1/runs/{id}
func (h *Handler) GetRun(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		BadRequest(w, "invalid run id")
		return
	}

	run, err := h.runRepo.GetByID(r.Context(), id)
	if HandleRepoError(w, h.logger, err, "run not found") {
		return
	}

	Success(w, RunFromDomain(*run))
}

// CancelRun отменяет запуск.
// POST /api/v1/runs/{id}/cancel
func (h *Handler) CancelRun(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		BadRequest(w, "invalid run id")
		return
	}

	run, err := h.runRepo.GetByID(r.Context(), id)
	if HandleRepoError(w, h.logger, err, "run not found") {
		return
	}

	if run.IsFinished() {
		InvalidState(w, "run is already finished")
		return
	}

	run.MarkCancelled()

	if err := h.runRepo.Update(r.Context(), run); err != nil {
		InternalError(w, h.logger, err)
		return
	}

	Success(w, RunFromDomain(*run))
}

// intParam парсит целочисленный query параметр с дефолтным значением.
func intParam(r *http.Request, name string, defaultVal int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return defaultVal
	}
	return n
}
