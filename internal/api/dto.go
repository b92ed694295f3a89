package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/shaiso/Agentum/internal/domain"
)

// Workflow DTOs

// CreateWorkflowRequest — запрос на создание workflow.
type CreateWorkflowRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// UpdateWorkflowRequest — запрос на обновление workflow.
type UpdateWorkflowRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

// WorkflowResponse — ответ с workflow.
type WorkflowResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// WorkflowFromDomain конвертирует domain.Workflow в WorkflowResponse.
func WorkflowFromDomain(wf domain.Workflow) WorkflowResponse {
	return WorkflowResponse{
		ID:          wf.ID,
		Name:        wf.Name,
		Description: wf.Description,
		IsActive:    wf.IsActive,
		CreatedAt:   wf.CreatedAt,
	}
}

// WorkflowVersion DTOs

// CreateWorkflowVersionRequest — запрос на создание версии workflow.
type CreateWorkflowVersionRequest struct {
	Spec domain.WorkflowSpec `json:"spec"`
}

// WorkflowVersionResponse — ответ с версией workflow.
type WorkflowVersionResponse struct {
	WorkflowID uuid.UUID           `json:"workflow_id"`
	Version    int                 `json:"version"`
	Spec       domain.WorkflowSpec `json:"spec"`
	CreatedAt  time.Time           `json:"created_at"`
}

// WorkflowVersionFromDomain конвертирует domain.WorkflowVersion в WorkflowVersionResponse.
func WorkflowVersionFromDomain(v domain.WorkflowVersion) WorkflowVersionResponse {
	return WorkflowVersionResponse{
		WorkflowID: v.WorkflowID,
		Version:    v.Version,
		Spec:       v.Spec,
		CreatedAt:  v.CreatedAt,
	}
}

// Run DTOs

// CreateRunRequest — запрос на создание запуска.
type CreateRunRequest struct {
	Inputs         map[string]any `json:"inputs,omitempty"`
	Version        *int           `json:"version,omitempty"`
	IdempotencyKey string         `json:"idempotency_key,omitempty"`
}

// StepRecordResponse — исход одного шага запуска.
type StepRecordResponse struct {
	Status string `json:"status"`
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// RunResponse — ответ с запуском.
type RunResponse struct {
	ID             uuid.UUID                     `json:"id"`
	WorkflowID     uuid.UUID                     `json:"workflow_id"`
	Version        int                           `json:"version"`
	Status         string                        `json:"status"`
	Inputs         map[string]any                `json:"inputs,omitempty"`
	Steps          map[string]StepRecordResponse `json:"steps,omitempty"`
	Order          []string                      `json:"order,omitempty"`
	FinalResult    any                           `json:"final_result,omitempty"`
	StartedAt      *time.Time                    `json:"started_at,omitempty"`
	FinishedAt     *time.Time                    `json:"finished_at,omitempty"`
	Error          string                        `json:"error,omitempty"`
	IdempotencyKey string                        `json:"idempotency_key,omitempty"`
	CreatedAt      time.Time                     `json:"created_at"`
}

// RunFromDomain конвертирует domain.Run в RunResponse.
func RunFromDomain(r domain.Run) RunResponse {
	var steps map[string]StepRecordResponse
	if len(r.Steps) > 0 {
		steps = make(map[string]StepRecordResponse, len(r.Steps))
		for name, rec := range r.Steps {
			steps[name] = StepRecordResponse{
				Status: string(rec.Status),
				Result: rec.Result,
				Error:  rec.Error,
			}
		}
	}

	return RunResponse{
		ID:             r.ID,
		WorkflowID:     r.WorkflowID,
		Version:        r.Version,
		Status:         string(r.Status),
		Inputs:         r.Inputs,
		Steps:          steps,
		Order:          r.Order,
		FinalResult:    r.FinalResult,
		StartedAt:      r.StartedAt,
		FinishedAt:     r.FinishedAt,
		Error:          r.Error,
		IdempotencyKey: r.IdempotencyKey,
		CreatedAt:      r.CreatedAt,
	}
}

// Schedule DTOs

// CreateScheduleRequest — запрос на создание schedule.
type CreateScheduleRequest struct {
	Name        string         `json:"name"`
	CronExpr    string         `json:"cron_expr,omitempty"`
	IntervalSec int            `json:"interval_sec,omitempty"`
	Timezone    string         `json:"timezone,omitempty"`
	Enabled     bool           `json:"enabled"`
	Inputs      map[string]any `json:"inputs,omitempty"`
}

// UpdateScheduleRequest — запрос на обновление schedule.
type UpdateScheduleRequest struct {
	Name        *string         `json:"name,omitempty"`
	CronExpr    *string         `json:"cron_expr,omitempty"`
	IntervalSec *int            `json:"interval_sec,omitempty"`
	Timezone    *string         `json:"timezone,omitempty"`
	Inputs      *map[string]any `json:"inputs,omitempty"`
}

// SetEnabledRequest — запрос на включение/выключение.
type SetEnabledRequest struct {
	Enabled bool `json:"enabled"`
}

// ScheduleResponse — ответ с schedule.
type ScheduleResponse struct {
	ID          uuid.UUID      `json:"id"`
	WorkflowID  uuid.UUID      `json:"workflow_id"`
	Name        string         `json:"name"`
	CronExpr    string         `json:"cron_expr,omitempty"`
	IntervalSec int            `json:"interval_sec,omitempty"`
	Timezone    string         `json:"timezone"`
	Enabled     bool           `json:"enabled"`
	NextDueAt   *time.Time     `json:"next_due_at,omitempty"`
	LastRunAt   *time.Time     `json:"last_run_at,omitempty"`
	LastRunID   *uuid.UUID     `json:"last_run_id,omitempty"`
	Inputs      map[string]any `json:"inputs,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// ScheduleFromDomain конвертирует domain.Schedule в ScheduleResponse.
func ScheduleFromDomain(s *domain.Schedule) ScheduleResponse {
	if s == nil {
		return ScheduleResponse{}
	}
	return ScheduleResponse{
		ID:          s.ID,
		WorkflowID:  s.WorkflowID,
		Name:        s.Name,
		CronExpr:    s.CronExpr,
		IntervalSec: s.IntervalSec,
		Timezone:    s.Timezone,
		Enabled:     s.Enabled,
		NextDueAt:   s.NextDueAt,
		LastRunAt:   s.LastRunAt,
		LastRunID:   s.LastRunID,
		Inputs:      s.Inputs,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// Agent DTOs

// AgentListResponse — список зарегистрированных агентов.
type AgentListResponse struct {
	Agents []string `json:"agents"`
}

// ExecuteAgentRequest — запрос на прямой вызов агента.
type ExecuteAgentRequest struct {
	Inputs map[string]any `json:"inputs,omitempty"`
}

// ExecuteAgentResponse — результат прямого вызова агента.
type ExecuteAgentResponse struct {
	Agent  string `json:"agent"`
	Result any    `json:"result"`
}
