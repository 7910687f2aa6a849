package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/easyops/context-academy-go/pkg/catalog"
	academyctx "github.com/easyops/context-academy-go/pkg/context"
	"github.com/easyops/context-academy-go/pkg/otel"
	"github.com/easyops/context-academy-go/pkg/playground"
)

// ScenarioSummary 是场景列表中的一项
type ScenarioSummary struct {
	ID             string                `json:"id"`
	Title          string                `json:"title"`
	Description    string                `json:"description"`
	Difficulty     playground.Difficulty `json:"difficulty,omitempty"`
	DefaultEnabled []string              `json:"defaultEnabled"`
	Components     int                   `json:"components"`
	Responses      int                   `json:"responses"`
}

// EvaluateRequest 是评估请求体
//
// Enabled 缺省或为 null 时使用场景默认集合；空数组表示不启用任何组件。
type EvaluateRequest struct {
	Enabled []string `json:"enabled"`
}

// ToggleRequest 是切换请求体
type ToggleRequest struct {
	Enabled   []string `json:"enabled"`
	Component string   `json:"component" binding:"required"`
}

// ToggleResponse 是切换后的状态与评估
type ToggleResponse struct {
	State      playground.State       `json:"state"`
	Evaluation *playground.Evaluation `json:"evaluation"`
}

// Handler 处理 Playground API 请求
//
// Handler 不持有用户状态：客户端每次请求都带上自己的已启用集合。
type Handler struct {
	catalog *catalog.Catalog
	engine  *otel.TracedEngine
}

// NewHandler 创建 Handler
func NewHandler(c *catalog.Catalog, engine *otel.TracedEngine) *Handler {
	if engine == nil {
		engine = otel.NewTracedEngine(nil)
	}
	return &Handler{catalog: c, engine: engine}
}

// HealthCheck 健康检查
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ListScenarios 返回场景列表
func (h *Handler) ListScenarios(c *gin.Context) {
	scenarios := h.catalog.Scenarios()
	out := make([]ScenarioSummary, len(scenarios))
	for i, s := range scenarios {
		defaults := s.DefaultEnabled
		if defaults == nil {
			defaults = []string{}
		}
		out[i] = ScenarioSummary{
			ID:             s.ID,
			Title:          s.Title,
			Description:    s.Description,
			Difficulty:     s.Difficulty,
			DefaultEnabled: defaults,
			Components:     len(s.Components),
			Responses:      len(s.Responses),
		}
	}
	RespondOK(c, gin.H{"scenarios": out})
}

// GetScenario 返回单个场景
func (h *Handler) GetScenario(c *gin.Context) {
	s, err := h.catalog.Scenario(c.Param("id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	RespondOK(c, s)
}

// Evaluate 评估给定的已启用集合
func (h *Handler) Evaluate(c *gin.Context) {
	s, err := h.catalog.Scenario(c.Param("id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}

	var req EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		RespondError(c, http.StatusBadRequest, CodeInvalidRequest, err)
		return
	}

	enabled := s.InitialEnabled()
	if req.Enabled != nil {
		enabled = academyctx.NewEnabledSet(req.Enabled...)
	}

	ev, err := h.engine.Evaluate(c.Request.Context(), s, enabled)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	RespondOK(c, ev)
}

// Toggle 切换一个组件并返回新状态的评估
func (h *Handler) Toggle(c *gin.Context) {
	s, err := h.catalog.Scenario(c.Param("id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}

	var req ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, CodeInvalidRequest, err)
		return
	}

	state := playground.NewState(s)
	if req.Enabled != nil {
		state.Enabled = academyctx.NewEnabledSet(req.Enabled...)
	}

	ctx := c.Request.Context()
	next, err := h.engine.Reduce(ctx, state, playground.ToggleComponent{ComponentID: req.Component}, h.catalog)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	ev, err := h.engine.Evaluate(ctx, s, next.Enabled)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	RespondOK(c, ToggleResponse{State: next, Evaluation: ev})
}

// Matrix 返回场景的选择矩阵
func (h *Handler) Matrix(c *gin.Context) {
	s, err := h.catalog.Scenario(c.Param("id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}

	rows, err := catalog.Matrix(s, h.engine.Selector())
	if err != nil {
		respondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{
		"rows":        rows,
		"unreachable": catalog.Unreachable(s, rows),
	})
}
