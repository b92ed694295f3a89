package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/shaiso/Agentum/internal/domain"
	"github.com/shaiso/Agentum/internal/mq"
	"github.com/shaiso/Agentum/internal/repo"
	"github.com/shaiso/Agentum/internal/telemetry"
)

// handleRunPending обрабатывает событие о новом pending запуске.
func (o *Orchestrator) handleRunPending(ctx context.Context, delivery *mq.Delivery) error {
	payload, err := mq.ParsePayload[mq.RunPendingPayload](&delivery.Message)
	if err != nil {
		o.logger.Error("failed to parse run.pending payload", "error", err)
		return err
	}

	o.logger.Debug("received run.pending event", "run_id", payload.RunID)

	// Проверяем, не обрабатывается ли уже
	if o.isRunActive(payload.RunID) {
		o.logger.Debug("run already active, skipping", "run_id", payload.RunID)
		return nil
	}

	if err := o.processRun(ctx, payload.RunID); err != nil {
		// Событие могло прийти повторно или опоздать — это не ошибка обработки
		if errors.Is(err, ErrRunNotPending) || errors.Is(err, ErrRunAlreadyActive) {
			o.logger.Debug("run not processed", "run_id", payload.RunID, "reason", err)
			return nil
		}
		o.logger.Error("failed to process run", "run_id", payload.RunID, "error", err)
		return err
	}

	return nil
}

// processRun выполняет один запуск от начала до конца.
func (o *Orchestrator) processRun(ctx context.Context, runID uuid.UUID) error {
	// 1. Загружаем запуск из БД
	run, err := o.runRepo.GetByID(ctx, runID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return fmt.Errorf("get run: %w", err)
	}

	// 2. Проверяем статус
	if run.Status != domain.RunStatusPending {
		return ErrRunNotPending
	}

	// 3. Добавляем в активные
	active := &ActiveRun{
		RunID:      runID,
		WorkflowID: run.WorkflowID,
		StartedAt:  time.Now(),
	}
	if err := o.addActiveRun(active); err != nil {
		return err
	}
	defer o.removeActiveRun(runID)

	// 4. Атомарно переводим PENDING → RUNNING.
	// Если другой экземпляр успел раньше — не трогаем запуск
	if err := o.runRepo.MarkRunning(ctx, runID); err != nil {
		if errors.Is(err, repo.ErrInvalidState) {
			return ErrRunNotPending
		}
		return fmt.Errorf("mark run running: %w", err)
	}
	run.MarkRunning()

	// 5. Загружаем версию workflow
	version, err := o.workflowRepo.GetVersion(ctx, run.WorkflowID, run.Version)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return o.failRun(ctx, run, fmt.Sprintf("workflow version not found: %s v%d", run.WorkflowID, run.Version))
		}
		return fmt.Errorf("get workflow version: %w", err)
	}

	active.Workflow = version.Spec.Name

	// 6. Выполняем запуск
	return o.executeRun(ctx, run, version)
}

// executeRun строит граф из спецификации и выполняет его через Runner.
func (o *Orchestrator) executeRun(ctx context.Context, run *domain.Run, version *domain.WorkflowVersion) error {
	workflow := workflowLabel(run, version)
	logger := telemetry.WithWorkflow(telemetry.WithRunID(o.logger, run.ID.String()), workflow)

	logger.Info("run started",
		"workflow_id", run.WorkflowID,
		"version", run.Version,
		"steps", len(version.Spec.Steps),
	)

	telemetry.RunsStarted.WithLabelValues(workflow).Inc()
	started := time.Now()

	graph := version.Spec.ToGraph()
	res := o.runner.Execute(ctx, graph, run.Inputs)

	run.ApplyResult(res)

	telemetry.RunDuration.WithLabelValues(workflow).Observe(time.Since(started).Seconds())
	telemetry.RunsFinished.WithLabelValues(workflow, string(run.Status)).Inc()
	for _, out := range res.Steps {
		telemetry.StepOutcomes.WithLabelValues(workflow, string(out.Status)).Inc()
	}

	// Сохраняем результат
	if err := o.runRepo.Update(ctx, run); err != nil {
		return fmt.Errorf("update run result: %w", err)
	}

	switch run.Status {
	case domain.RunStatusSucceeded:
		logger.Info("run succeeded", "duration", run.Duration())
	default:
		logger.Warn("run failed", "error", run.Error, "duration", run.Duration())
	}

	// Публикуем событие завершения
	o.publishCompleted(ctx, run)

	return nil
}

// failRun переводит запуск в статус FAILED до начала выполнения шагов.
// Используется для структурных ошибок (версия не найдена и т.п.):
// результат не содержит исходов шагов.
func (o *Orchestrator) failRun(ctx context.Context, run *domain.Run, errMsg string) error {
	run.MarkFailed(errMsg)

	if err := o.runRepo.Update(ctx, run); err != nil {
		return fmt.Errorf("update run to failed: %w", err)
	}

	o.logger.Warn("run failed early",
		"run_id", run.ID,
		"error", errMsg,
	)

	o.publishCompleted(ctx, run)

	return fmt.Errorf("run failed: %s", errMsg)
}

// publishCompleted публикует событие run.completed.
// Ошибка публикации не считается ошибкой запуска: результат уже в БД.
func (o *Orchestrator) publishCompleted(ctx context.Context, run *domain.Run) {
	if o.publisher == nil {
		return
	}

	err := o.publisher.PublishRunCompleted(ctx, mq.RunCompletedPayload{
		RunID:      run.ID,
		WorkflowID: run.WorkflowID,
		Status:     string(run.Status),
		Error:      run.Error,
	})
	if err != nil {
		o.logger.Warn("failed to publish run.completed",
			"run_id", run.ID,
			"error", err,
		)
	}
}

// workflowLabel возвращает метку workflow для логов и метрик.
func workflowLabel(run *domain.Run, version *domain.WorkflowVersion) string {
	if version != nil && version.Spec.Name != "" {
		return version.Spec.Name
	}
	return run.WorkflowID.String()
}
