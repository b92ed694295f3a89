package orchestrator

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/shaiso/Agentum/internal/mq"
	"github.com/shaiso/Agentum/internal/repo"
	"github.com/shaiso/Agentum/internal/runner"
)

// Default configuration values.
const (
	defaultPollInterval = 10 * time.Second
	defaultBatchSize    = 100
)

// Orchestrator управляет выполнением запусков workflow.
//
// Orchestrator — центральный компонент системы, который:
//   - Получает новые запуски из очереди RabbitMQ (event-driven)
//   - Периодически проверяет pending запуски в БД (polling fallback)
//   - Загружает версию workflow и строит граф шагов
//   - Выполняет шаги последовательно через Runner
//   - Финализирует запуски (SUCCEEDED/FAILED) и публикует run.completed
type Orchestrator struct {
	// Repositories
	runRepo      *repo.RunRepo
	workflowRepo *repo.WorkflowRepo

	// MQ
	publisher *mq.Publisher
	conn      *mq.Connection

	// Runner — исполнитель графа шагов.
	runner *runner.Runner

	// Active runs — запуски в процессе выполнения (runID → ActiveRun)
	activeRuns map[uuid.UUID]*ActiveRun
	mu         sync.RWMutex

	// Consumers
	runConsumer *mq.Consumer

	// Configuration
	pollInterval time.Duration
	batchSize    int

	// Lifecycle
	logger     *slog.Logger
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
	stopped    bool
	stoppedMu  sync.RWMutex
}

// Config — конфигурация Orchestrator.
type Config struct {
	// Repositories
	RunRepo      *repo.RunRepo
	WorkflowRepo *repo.WorkflowRepo

	// MQ
	Publisher *mq.Publisher
	Conn      *mq.Connection

	// Runner — исполнитель графа шагов.
	Runner *runner.Runner

	// Polling configuration
	PollInterval time.Duration // интервал polling (default: 10s)
	BatchSize    int           // количество запусков за один poll (default: 100)

	// Logger
	Logger *slog.Logger
}

// New создаёт новый Orchestrator.
func New(cfg Config) *Orchestrator {
	pollInterval := cfg.PollInterval
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}

	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Orchestrator{
		runRepo:      cfg.RunRepo,
		workflowRepo: cfg.WorkflowRepo,
		publisher:    cfg.Publisher,
		conn:         cfg.Conn,
		runner:       cfg.Runner,
		activeRuns:   make(map[uuid.UUID]*ActiveRun),
		pollInterval: pollInterval,
		batchSize:    batchSize,
		logger:       logger,
	}
}

// Start запускает Orchestrator.
//
// Запускает:
//   - Consumer для runs.pending
//   - Polling горутину для fallback
func (o *Orchestrator) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	o.cancelFunc = cancel

	o.logger.Info("starting orchestrator",
		"poll_interval", o.pollInterval,
		"batch_size", o.batchSize,
	)

	// Создаём consumer. Prefetch 1: шаги внутри запуска выполняются
	// строго последовательно, параллелить нечего
	o.runConsumer = mq.NewConsumer(o.conn, o.logger, mq.ConsumerConfig{
		Queue:    mq.QueueRunsPending,
		Expect:   mq.MessageTypeRunPending,
		Handler:  o.handleRunPending,
		Prefetch: 1,
	})

	// Запускаем run consumer
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		if err := o.runConsumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			o.logger.Error("run consumer error", "error", err)
		}
	}()

	// Запускаем polling
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		o.pollLoop(ctx)
	}()

	o.logger.Info("orchestrator started")
	return nil
}

// Stop останавливает Orchestrator.
func (o *Orchestrator) Stop() {
	o.stoppedMu.Lock()
	o.stopped = true
	o.stoppedMu.Unlock()

	o.logger.Info("stopping orchestrator...")

	if o.cancelFunc != nil {
		o.cancelFunc()
	}

	if o.runConsumer != nil {
		o.runConsumer.Stop()
	}

	// Ждём завершения горутин
	o.wg.Wait()

	o.logger.Info("orchestrator stopped",
		"active_runs", len(o.activeRuns),
	)
}

// IsStopped проверяет, остановлен ли Orchestrator.
func (o *Orchestrator) IsStopped() bool {
	o.stoppedMu.RLock()
	defer o.stoppedMu.RUnlock()
	return o.stopped
}

// pollLoop — цикл polling для fallback.
func (o *Orchestrator) pollLoop(ctx context.Context) {
	ticker := time.NewTicker(o.pollInterval)
	defer ticker.Stop()

	// Первый poll сразу при старте (подхватываем запуски созданные пока были выключены)
	o.poll(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			o.poll(ctx)
		}
	}
}

// poll выполняет один цикл polling.
func (o *Orchestrator) poll(ctx context.Context) {
	runs, err := o.runRepo.ListPending(ctx, o.batchSize)
	if err != nil {
		o.logger.Error("failed to list pending runs", "error", err)
		return
	}

	if len(runs) == 0 {
		return
	}

	o.logger.Debug("poll found pending runs", "count", len(runs))

	for i := range runs {
		run := &runs[i]

		// Проверяем, не обрабатывается ли уже
		if o.isRunActive(run.ID) {
			continue
		}

		if err := o.processRun(ctx, run.ID); err != nil {
			if errors.Is(err, ErrRunNotPending) || errors.Is(err, ErrRunAlreadyActive) {
				continue
			}
			o.logger.Error("failed to process run from poll",
				"run_id", run.ID,
				"error", err,
			)
		}
	}
}
