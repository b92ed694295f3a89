package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shaiso/Agentum/internal/agents"
)

// ListAgents возвращает имена зарегистрированных агентов.
// GET /api/v1/agents
func (h *Handler) ListAgents(w http.ResponseWriter, r *http.Request) {
	Success(w, AgentListResponse{Agents: h.registry.Names()})
}

// ExecuteAgent выполняет один агент напрямую, минуя workflow.
// Используется для отладки агентов и ручных экспериментов.
// POST /api/v1/agents/{name}/execute
func (h *Handler) ExecuteAgent(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if name == "" {
		BadRequest(w, "agent name is required")
		return
	}

	var req ExecuteAgentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid request body")
		return
	}

	agent, err := h.registry.Get(name)
	if err != nil {
		NotFound(w, err.Error())
		return
	}

	result, err := agent.Execute(r.Context(), req.Inputs)
	if err != nil {
		if errors.Is(err, agents.ErrMissingInput) {
			BadRequest(w, err.Error())
			return
		}
		InternalError(w, h.logger, err)
		return
	}

	Success(w, ExecuteAgentResponse{
		Agent:  name,
		Result: result,
	})
}
