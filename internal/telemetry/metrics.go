package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Метрики запусков workflow.
var (
	// RunsStarted — количество начатых запусков по workflow.
	RunsStarted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agentum_runs_started_total",
		Help: "Количество начатых запусков workflow",
	}, []string{"workflow"})

	// RunsFinished — количество завершённых запусков по workflow и статусу.
	RunsFinished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agentum_runs_finished_total",
		Help: "Количество завершённых запусков workflow",
	}, []string{"workflow", "status"})

	// RunDuration — длительность запуска workflow в секундах.
	RunDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "agentum_run_duration_seconds",
		Help:    "Длительность запуска workflow",
		Buckets: prometheus.DefBuckets,
	}, []string{"workflow"})

	// StepOutcomes — исходы шагов по workflow и статусу.
	StepOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agentum_step_outcomes_total",
		Help: "Исходы шагов workflow (SUCCEEDED/FAILED/SKIPPED)",
	}, []string{"workflow", "status"})
)

// Метрики агентов.
var (
	// AgentExecutions — количество вызовов агентов.
	AgentExecutions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agentum_agent_executions_total",
		Help: "Количество вызовов агентов",
	}, []string{"agent"})

	// AgentErrors — количество ошибок агентов.
	AgentErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agentum_agent_errors_total",
		Help: "Количество ошибок агентов",
	}, []string{"agent"})

	// AgentDuration — длительность выполнения агента в секундах.
	AgentDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "agentum_agent_duration_seconds",
		Help:    "Длительность выполнения агента",
		Buckets: prometheus.DefBuckets,
	}, []string{"agent", "status"})
)

// Метрики LLM-вызовов.
var (
	// LLMRequests — количество запросов к LLM-провайдерам.
	LLMRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agentum_llm_requests_total",
		Help: "Количество запросов к LLM-провайдерам",
	}, []string{"provider", "model"})

	// LLMErrors — количество ошибок LLM-провайдеров.
	LLMErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agentum_llm_errors_total",
		Help: "Количество ошибок LLM-провайдеров",
	}, []string{"provider", "model"})

	// LLMDuration — длительность запроса к LLM в секундах.
	LLMDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "agentum_llm_duration_seconds",
		Help:    "Длительность запроса к LLM",
		Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
	}, []string{"provider", "model", "status"})
)
