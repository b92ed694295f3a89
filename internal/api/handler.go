package api

import (
	"log/slog"

	"github.com/shaiso/Agentum/internal/agents"
	"github.com/shaiso/Agentum/internal/mq"
	"github.com/shaiso/Agentum/internal/repo"
)

// Handler — главный обработчик API с зависимостями.
type Handler struct {
	workflowRepo *repo.WorkflowRepo
	runRepo      *repo.RunRepo
	scheduleRepo *repo.ScheduleRepo
	registry     *agents.Registry
	publisher    *mq.Publisher
	logger       *slog.Logger
}

// Config — конфигурация для создания Handler.
type Config struct {
	WorkflowRepo *repo.WorkflowRepo
	RunRepo      *repo.RunRepo
	ScheduleRepo *repo.ScheduleRepo
	Registry     *agents.Registry
	Publisher    *mq.Publisher
	Logger       *slog.Logger
}

// NewHandler создаёт новый Handler.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		workflowRepo: cfg.WorkflowRepo,
		runRepo:      cfg.RunRepo,
		scheduleRepo: cfg.ScheduleRepo,
		registry:     cfg.Registry,
		publisher:    cfg.Publisher,
		logger:       cfg.Logger,
	}
}
