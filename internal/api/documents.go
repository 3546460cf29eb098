package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ArtieFishal/lastwish"
)

// DocumentHandler handles document generation requests.
type DocumentHandler struct {
	gen          Generator
	jurisdiction lastwish.Jurisdiction
	maxBody      int64
	logger       *zap.Logger
}

// NewDocumentHandler creates a new DocumentHandler
func NewDocumentHandler(gen Generator, jurisdiction lastwish.Jurisdiction, maxBody int64, logger *zap.Logger) *DocumentHandler {
	return &DocumentHandler{
		gen:          gen,
		jurisdiction: jurisdiction,
		maxBody:      maxBody,
		logger:       logger,
	}
}

// Create renders a JSON input bundle and returns the PDF.
// POST /api/v1/documents
func (h *DocumentHandler) Create(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBody)

	var input lastwish.Input
	if err := c.ShouldBindJSON(&input); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "request body too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON bundle: " + err.Error()})
		return
	}
	if err := input.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Jurisdiction == (lastwish.Jurisdiction{}) {
		input.Jurisdiction = h.jurisdiction
	}

	pdf, err := h.gen.Generate(c.Request.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, context.Canceled),
			errors.Is(err, context.DeadlineExceeded),
			errors.Is(err, lastwish.ErrPoolClosed):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "generation unavailable"})
		default:
			h.logger.Error("generation failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "generation failed"})
		}
		return
	}

	c.Header("Content-Disposition", `attachment; filename="lastwish.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
