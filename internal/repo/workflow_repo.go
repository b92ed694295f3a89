package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shaiso/Agentum/internal/domain"
)

// WorkflowRepo — репозиторий для работы с workflows и workflow_versions.
type WorkflowRepo struct {
	pool *pgxpool.Pool
}

// NewWorkflowRepo создаёт новый WorkflowRepo.
func NewWorkflowRepo(pool *pgxpool.Pool) *WorkflowRepo {
	return &WorkflowRepo{pool: pool}
}

// --- Workflow CRUD ---

// Create создаёт новый workflow.
func (r *WorkflowRepo) Create(ctx context.Context, wf *domain.Workflow) error {
	query := `
		INSERT INTO workflows (id, name, description, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.pool.Exec(ctx, query,
		wf.ID,
		wf.Name,
		nullString(wf.Description),
		wf.IsActive,
		wf.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert workflow: %w", err)
	}
	return nil
}

// GetByID возвращает workflow по ID.
func (r *WorkflowRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Workflow, error) {
	query := `
		SELECT id, name, description, is_active, created_at
		FROM workflows
		WHERE id = $1
	`
	return r.scanWorkflow(r.pool.QueryRow(ctx, query, id))
}

// GetByName возвращает workflow по имени.
func (r *WorkflowRepo) GetByName(ctx context.Context, name string) (*domain.Workflow, error) {
	query := `
		SELECT id, name, description, is_active, created_at
		FROM workflows
		WHERE name = $1
	`
	return r.scanWorkflow(r.pool.QueryRow(ctx, query, name))
}

// List возвращает список всех workflows.
func (r *WorkflowRepo) List(ctx context.Context) ([]domain.Workflow, error) {
	query := `
		SELECT id, name, description, is_active, created_at
		FROM workflows
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list workflows: %w", err)
	}
	defer rows.Close()

	var workflows []domain.Workflow
	for rows.Next() {
		var wf domain.Workflow
		var description *string
		if err := rows.Scan(
			&wf.ID,
			&wf.Name,
			&description,
			&wf.IsActive,
			&wf.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan workflow: %w", err)
		}
		if description != nil {
			wf.Description = *description
		}
		workflows = append(workflows, wf)
	}
	return workflows, rows.Err()
}

// Update обновляет workflow.
func (r *WorkflowRepo) Update(ctx context.Context, wf *domain.Workflow) error {
	query := `
		UPDATE workflows
		SET name = $2, description = $3, is_active = $4
		WHERE id = $1
	`
	result, err := r.pool.Exec(ctx, query, wf.ID, wf.Name, nullString(wf.Description), wf.IsActive)
	if err != nil {
		return fmt.Errorf("update workflow: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete удаляет workflow (каскадно удалит versions, runs, schedules).
func (r *WorkflowRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM workflows WHERE id = $1`
	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete workflow: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *WorkflowRepo) scanWorkflow(row pgx.Row) (*domain.Workflow, error) {
	var wf domain.Workflow
	var description *string
	err := row.Scan(
		&wf.ID,
		&wf.Name,
		&description,
		&wf.IsActive,
		&wf.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan workflow: %w", err)
	}
	if description != nil {
		wf.Description = *description
	}
	return &wf, nil
}

// --- WorkflowVersion CRUD ---

// CreateVersion создаёт новую версию workflow.
// Версия автоматически инкрементируется.
func (r *WorkflowRepo) CreateVersion(ctx context.Context, workflowID uuid.UUID, spec domain.WorkflowSpec) (*domain.WorkflowVersion, error) {
	specJSON, err := json.Marshal(spec)
	if err != nil {
		return nil, fmt.Errorf("marshal spec: %w", err)
	}

	// Получаем следующий номер версии
	var nextVersion int
	err = r.pool.QueryRow(ctx, `
		SELECT COALESCE(MAX(version), 0) + 1
		FROM workflow_versions
		WHERE workflow_id = $1
	`, workflowID).Scan(&nextVersion)
	if err != nil {
		return nil, fmt.Errorf("get next version: %w", err)
	}

	var version domain.WorkflowVersion
	err = r.pool.QueryRow(ctx, `
		INSERT INTO workflow_versions (workflow_id, version, spec, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING workflow_id, version, spec, created_at
	`, workflowID, nextVersion, specJSON).Scan(
		&version.WorkflowID,
		&version.Version,
		&specJSON,
		&version.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert workflow version: %w", err)
	}

	if err := json.Unmarshal(specJSON, &version.Spec); err != nil {
		return nil, fmt.Errorf("unmarshal spec: %w", err)
	}

	return &version, nil
}

// GetVersion возвращает конкретную версию workflow.
func (r *WorkflowRepo) GetVersion(ctx context.Context, workflowID uuid.UUID, version int) (*domain.WorkflowVersion, error) {
	query := `
		SELECT workflow_id, version, spec, created_at
		FROM workflow_versions
		WHERE workflow_id = $1 AND version = $2
	`
	return r.scanVersion(r.pool.QueryRow(ctx, query, workflowID, version))
}

// GetLatestVersion возвращает последнюю версию workflow.
func (r *WorkflowRepo) GetLatestVersion(ctx context.Context, workflowID uuid.UUID) (*domain.WorkflowVersion, error) {
	query := `
		SELECT workflow_id, version, spec, created_at
		FROM workflow_versions
		WHERE workflow_id = $1
		ORDER BY version DESC
		LIMIT 1
	`
	return r.scanVersion(r.pool.QueryRow(ctx, query, workflowID))
}

// ListVersions возвращает все версии workflow.
func (r *WorkflowRepo) ListVersions(ctx context.Context, workflowID uuid.UUID) ([]domain.WorkflowVersion, error) {
	query := `
		SELECT workflow_id, version, spec, created_at
		FROM workflow_versions
		WHERE workflow_id = $1
		ORDER BY version DESC
	`
	rows, err := r.pool.Query(ctx, query, workflowID)
	if err != nil {
		return nil, fmt.Errorf("list workflow versions: %w", err)
	}
	defer rows.Close()

	var versions []domain.WorkflowVersion
	for rows.Next() {
		var wv domain.WorkflowVersion
		var specJSON []byte
		if err := rows.Scan(
			&wv.WorkflowID,
			&wv.Version,
			&specJSON,
			&wv.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan workflow version: %w", err)
		}

		if err := json.Unmarshal(specJSON, &wv.Spec); err != nil {
			return nil, fmt.Errorf("unmarshal spec: %w", err)
		}

		versions = append(versions, wv)
	}
	return versions, rows.Err()
}

func (r *WorkflowRepo) scanVersion(row pgx.Row) (*domain.WorkflowVersion, error) {
	var wv domain.WorkflowVersion
	var specJSON []byte
	err := row.Scan(
		&wv.WorkflowID,
		&wv.Version,
		&specJSON,
		&wv.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan workflow version: %w", err)
	}

	if err := json.Unmarshal(specJSON, &wv.Spec); err != nil {
		return nil, fmt.Errorf("unmarshal spec: %w", err)
	}

	return &wv, nil
}
