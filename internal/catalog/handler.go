package catalog

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"seriehub/pkg/models"
)

// topN is how many rows the ranking endpoints return.
const topN = 5

// Ingester is implemented by the ingest service; the handler only
// delegates to it for the two mutating endpoints.
type Ingester interface {
	IngestSeries(ctx context.Context, title string) (*models.Series, error)
	IngestEpisodes(ctx context.Context, series *models.Series) (*models.Series, error)
}

type Handler struct {
	Repo     *Repo
	Ingester Ingester
}

func NewHandler(repo *Repo, ingester Ingester) *Handler {
	return &Handler{Repo: repo, Ingester: ingester}
}

func (h *Handler) RegisterRoutes(series, episodes *gin.RouterGroup) {
	series.GET("", h.listSeries)              // GET /series
	series.POST("", h.ingestSeries)           // POST /series
	series.GET("/search", h.searchSeries)     // GET /series/search?q=
	series.GET("/top", h.topSeries)           // GET /series/top
	series.GET("/filter", h.filterSeries)     // GET /series/filter
	series.GET("/categories/:name", h.byCategory)

	episodes.GET("/search", h.searchEpisodes) // GET /episodes/search?q=
	episodes.GET("/top", h.topEpisodes)       // GET /episodes/top?series_id=
	episodes.POST("", h.ingestEpisodes)       // POST /episodes
}

func (h *Handler) listSeries(c *gin.Context) {
	items, err := h.Repo.FindAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": len(items), "items": items})
}

func (h *Handler) searchSeries(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
		return
	}

	s, err := h.Repo.FindByTitleContains(c.Request.Context(), q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
		return
	}
	if s == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *Handler) topSeries(c *gin.Context) {
	items, err := h.Repo.FindTopByRating(c.Request.Context(), topN)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "top failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": len(items), "items": items})
}

func (h *Handler) filterSeries(c *gin.Context) {
	items, err := h.Repo.FindBySeasonsAndRating(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "filter failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": len(items), "items": items})
}

// byCategory accepts either alias of a category (e.g. "Comedy" or
// "Comedia"), like the original front-end did.
func (h *Handler) byCategory(c *gin.Context) {
	name := c.Param("name")

	cat, err := models.CategoryFromPrimary(name)
	if err != nil {
		cat, err = models.CategoryFromSpanish(name)
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category"})
		return
	}

	items, err := h.Repo.FindByCategory(c.Request.Context(), cat)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "category failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": cat, "total": len(items), "items": items})
}

func (h *Handler) searchEpisodes(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
		return
	}

	items, err := h.Repo.FindEpisodesByTitleContains(c.Request.Context(), q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": len(items), "items": items})
}

func (h *Handler) topEpisodes(c *gin.Context) {
	id, err := strconv.ParseInt(c.Query("series_id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "series_id is required"})
		return
	}

	s, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	if s == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "series not found"})
		return
	}

	items, err := h.Repo.FindTopEpisodes(c.Request.Context(), id, topN)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "top failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"series": s.Title, "total": len(items), "items": items})
}

type ingestSeriesRequest struct {
	Title string `json:"title" binding:"required"`
}

func (h *Handler) ingestSeries(c *gin.Context) {
	var req ingestSeriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}

	s, err := h.Ingester.IngestSeries(c.Request.Context(), req.Title)
	if err != nil {
		status := http.StatusBadGateway
		var notFound *models.CategoryNotFoundError
		switch {
		case errors.Is(err, ErrDuplicateTitle):
			status = http.StatusConflict
		case errors.As(err, &notFound):
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, s)
}

type ingestEpisodesRequest struct {
	SeriesID int64 `json:"series_id" binding:"required"`
}

func (h *Handler) ingestEpisodes(c *gin.Context) {
	var req ingestEpisodesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "series_id is required"})
		return
	}

	s, err := h.Repo.GetByID(c.Request.Context(), req.SeriesID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	if s == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "series not found"})
		return
	}

	s, err = h.Ingester.IngestEpisodes(c.Request.Context(), s)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, s)
}
