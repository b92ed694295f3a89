// Agentum Orchestrator — выполняет runs.
//
// Orchestrator:
//   - Получает новые runs из RabbitMQ (плюс polling-фоллбек)
//   - Строит граф шагов из workflow spec
//   - Выполняет шаги строго последовательно через Runner
//   - Фиксирует исходы шагов и финализирует runs
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shaiso/Agentum/internal/agents"
	"github.com/shaiso/Agentum/internal/llm"
	"github.com/shaiso/Agentum/internal/mq"
	"github.com/shaiso/Agentum/internal/orchestrator"
	"github.com/shaiso/Agentum/internal/repo"
	"github.com/shaiso/Agentum/internal/runner"
	"github.com/shaiso/Agentum/internal/telemetry"
	"github.com/shaiso/Agentum/internal/workflows"
)

func main() {
	// Инициализируем structured logging
	logger := telemetry.SetupLogger()
	logger.Info("starting agentum-orchestrator")

	// graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// DB pool
	pool, err := repo.NewPool(ctx)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("database connected")

	// Создаём репозитории
	runRepo := repo.NewRunRepo(pool)
	workflowRepo := repo.NewWorkflowRepo(pool)

	// Реестр агентов. Workflows, ссылающиеся на незарегистрированных
	// агентов, завершатся ошибкой шага.
	registry := agents.NewRegistry()
	llmClient, err := llm.FromEnv(logger)
	if err != nil {
		logger.Warn("LLM provider not configured, hypothesis agents unavailable", "error", err)
	} else {
		workflows.RegisterHypothesisAgents(registry, llmClient, logger)
		logger.Info("hypothesis agents registered", "agents", registry.Names())
	}

	// RabbitMQ
	var publisher *mq.Publisher
	var mqConn *mq.Connection
	mqURL := os.Getenv("RABBITMQ_URL")
	if mqURL == "" {
		mqURL = mq.DefaultURL()
	}

	mqConn, err = mq.NewConnection(mqURL, logger)
	if err != nil {
		logger.Warn("RabbitMQ not available, running in polling-only mode", "error", err)
	} else {
		defer mqConn.Close()
		logger.Info("RabbitMQ connected")

		// Создаём топологию
		if err := mq.SetupTopology(ctx, mqConn); err != nil {
			logger.Warn("failed to setup topology", "error", err)
		}

		publisher = mq.NewPublisher(mqConn, logger)
	}

	// Создаём orchestrator
	orch := orchestrator.New(orchestrator.Config{
		RunRepo:      runRepo,
		WorkflowRepo: workflowRepo,
		Publisher:    publisher,
		Conn:         mqConn,
		Runner: runner.New(runner.Config{
			Executor: runner.NewAgentExecutor(registry),
			Logger:   logger,
		}),
		Logger: logger,
	})

	// Запускаем orchestrator
	if err := orch.Start(ctx); err != nil {
		logger.Error("failed to start orchestrator", "error", err)
		os.Exit(1)
	}

	// HTTP mux: /healthz + /metrics
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", promhttp.Handler())

	port := ":8083"
	if v := os.Getenv("ORCH_PORT"); v != "" {
		port = ":" + v
	}

	go func() {
		logger.Info("listening", "addr", port)
		if err := http.ListenAndServe(port, mux); err != nil {
			logger.Error("http server error", "error", err)
			cancel()
		}
	}()

	// Ожидаем сигнал завершения
	<-ctx.Done()

	// Останавливаем orchestrator
	orch.Stop()
	logger.Info("agentum-orchestrator stopped")
}
