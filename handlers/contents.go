package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/contentforge/contentforge/internal/content"
	"github.com/contentforge/contentforge/internal/content/repository"
	"github.com/contentforge/contentforge/internal/content/service"
	"github.com/contentforge/contentforge/internal/generator"
	"github.com/contentforge/contentforge/pkg/logger"
	"github.com/contentforge/contentforge/pkg/metrics"
	"github.com/contentforge/contentforge/pkg/middleware"
)

// ContentHandler is the HTTP surface over the content service and the
// generation function. It is the final error boundary: every failure is
// converted to a JSON body with an "error" field.
type ContentHandler struct {
	svc     *service.Service
	gen     generator.Generator
	genMode string
}

func NewContentHandler(svc *service.Service, gen generator.Generator, genMode string) *ContentHandler {
	return &ContentHandler{svc: svc, gen: gen, genMode: genMode}
}

// Register wires the fixed routing table under /contents. The provided
// middlewares (identity resolution) apply to the whole group.
func (h *ContentHandler) Register(r *gin.Engine, mws ...gin.HandlerFunc) {
	g := r.Group("/contents", mws...)
	g.GET("", h.List)
	g.GET("/user/:userId", h.ListByUser)
	g.GET("/:id", h.Get)
	g.POST("", h.Create)
	g.POST("/generate", h.Generate)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

// createRequest is the partial record accepted by POST /contents.
// Caller-supplied id/createdAt are honored when present.
type createRequest struct {
	ID          string `json:"id"`
	UserID      string `json:"userId"`
	Title       string `json:"title"`
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
	CreatedAt   string `json:"createdAt"`
}

// updateRequest uses pointers so absent fields keep their stored values.
// id, userId and createdAt are accepted but discarded: the path id wins,
// the owner is immutable and createdAt is preserved from the store.
type updateRequest struct {
	ID          string  `json:"id"`
	UserID      string  `json:"userId"`
	CreatedAt   string  `json:"createdAt"`
	Title       *string `json:"title"`
	ContentType *string `json:"contentType"`
	Content     *string `json:"content"`
}

type generateRequest struct {
	Title       string `json:"title"`
	ContentType string `json:"contentType"`
	Prompt      string `json:"prompt"`
	UserID      string `json:"userId"`
}

func (h *ContentHandler) List(c *gin.Context) {
	recs, err := h.svc.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load items: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, recs)
}

func (h *ContentHandler) ListByUser(c *gin.Context) {
	caller := middleware.CallerFrom(c)
	recs, err := h.svc.ListByUser(c.Request.Context(), caller, c.Param("userId"))
	if err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load items: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, recs)
}

func (h *ContentHandler) Get(c *gin.Context) {
	rec, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Content not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load item: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *ContentHandler) Create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	caller := middleware.CallerFrom(c)
	rec, err := h.svc.Create(c.Request.Context(), caller, service.CreateInput{
		ID:          req.ID,
		UserID:      req.UserID,
		Title:       req.Title,
		ContentType: req.ContentType,
		Content:     req.Content,
		CreatedAt:   req.CreatedAt,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "url": c.Request.URL.Path, "body": req})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": "Content created successfully!", "id": rec.ID, "content": rec})
}

// Generate runs the generation function and wraps the output as an
// unpersisted record; a subsequent POST /contents persists it if desired.
func (h *ContentHandler) Generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Title == "" || req.ContentType == "" || req.Prompt == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}
	body, err := h.gen.Generate(c.Request.Context(), req.Title, req.ContentType, req.Prompt)
	if err != nil {
		metrics.GenerationTotal.WithLabelValues(h.genMode, "error").Inc()
		logger.Errorf("generation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate content"})
		return
	}
	metrics.GenerationTotal.WithLabelValues(h.genMode, "ok").Inc()

	caller := middleware.CallerFrom(c)
	rec := content.Record{
		ID:          h.svc.NewRecordID(),
		UserID:      caller.Owner(req.UserID),
		Title:       req.Title,
		ContentType: req.ContentType,
		Content:     body,
		CreatedAt:   content.FormatTime(time.Now()),
	}
	c.JSON(http.StatusOK, rec)
}

func (h *ContentHandler) Update(c *gin.Context) {
	id := c.Param("id")
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	caller := middleware.CallerFrom(c)
	rec, err := h.svc.Update(c.Request.Context(), caller, id, service.UpdateInput{
		Title:       req.Title,
		ContentType: req.ContentType,
		Content:     req.Content,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Content not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "url": c.Request.URL.Path, "body": req})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": "Content updated successfully!", "id": id, "content": rec})
}

func (h *ContentHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Content not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "url": c.Request.URL.Path})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": "Content deleted successfully!", "id": id})
}
