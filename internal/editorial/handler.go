package editorial

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"atelier/editorial/internal/generation"
	"atelier/editorial/internal/guard"
	"atelier/editorial/internal/ratelimit"
	"atelier/editorial/pkg/auth"
	"atelier/editorial/pkg/logging"
)

// Handler exposes the idea lifecycle over HTTP. Authentication happens in
// middleware before these handlers run; the actor id is read from the context.
type Handler struct {
	orchestrator *Orchestrator
	logger       logging.Logger
}

func NewHandler(orchestrator *Orchestrator, logger logging.Logger) *Handler {
	return &Handler{orchestrator: orchestrator, logger: logger}
}

// RegisterRoutes mounts the editorial endpoints on the given group.
func (h *Handler) RegisterRoutes(group *gin.RouterGroup) {
	group.POST("/scout", h.HandleScout)
	group.POST("/ideas", h.HandleApprove)
	group.GET("/ideas", h.HandleListIdeas)
	group.POST("/ideas/:id/draft", h.HandleDraft)
}

func (h *Handler) HandleScout(c *gin.Context) {
	actorID := auth.ActorID(c)
	if actorID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "actor missing"})
		return
	}

	candidates, err := h.orchestrator.ScoutTrends(c.Request.Context(), actorID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "ideas": candidates})
}

type approveRequest struct {
	Ideas []Candidate `json:"ideas"`
}

func (h *Handler) HandleApprove(c *gin.Context) {
	var req approveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	count, err := h.orchestrator.ApproveIdeas(c.Request.Context(), req.Ideas)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": count})
}

func (h *Handler) HandleListIdeas(c *gin.Context) {
	status := IdeaStatus(c.Query("status"))

	ideas, err := h.orchestrator.ListIdeas(c.Request.Context(), status)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if ideas == nil {
		ideas = []Idea{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "ideas": ideas})
}

func (h *Handler) HandleDraft(c *gin.Context) {
	actorID := auth.ActorID(c)
	if actorID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "actor missing"})
		return
	}
	ideaID := c.Param("id")
	if ideaID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "idea id is required"})
		return
	}

	post, err := h.orchestrator.GenerateDraft(c.Request.Context(), ideaID, actorID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "post_id": post.ID, "slug": post.Slug})
}

// respondError maps the pipeline error taxonomy onto HTTP statuses.
func (h *Handler) respondError(c *gin.Context, err error) {
	var exceeded *ratelimit.ExceededError
	var violation *guard.Violation
	var validation *ValidationError
	var genErr *generation.Error

	switch {
	case errors.As(err, &exceeded):
		c.Header("Retry-After", strconv.Itoa(int(exceeded.RetryAfter.Seconds())+1))
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
	case errors.As(err, &violation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": violation.Error()})
	case errors.As(err, &validation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": validation.Error()})
	case errors.Is(err, ErrIdeaNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "idea not found"})
	case errors.Is(err, ErrIdeaNotApproved):
		c.JSON(http.StatusConflict, gin.H{"error": "idea is not approved"})
	case errors.Is(err, ErrNoNiches):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "no target niches configured"})
	case errors.Is(err, ErrSettingsNotConfigured), errors.Is(err, generation.ErrNotConfigured):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "service not configured"})
	case errors.As(err, &genErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": "generation failed"})
	default:
		h.logger.WithError(err).Error("Editorial request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
