// Package server exposes the analysis pipeline over HTTP.
package server

import (
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/shivesh0001/ppt-checker/internal/analysis"
	"github.com/shivesh0001/ppt-checker/internal/config"
	"github.com/shivesh0001/ppt-checker/internal/deck"
	"github.com/shivesh0001/ppt-checker/internal/llm"
	"github.com/shivesh0001/ppt-checker/internal/ocr"
	"github.com/shivesh0001/ppt-checker/internal/report"
)

type Server struct {
	cfg    config.Config
	client llm.Client
}

func New(cfg config.Config, client llm.Client) *Server {
	return &Server{cfg: cfg, client: client}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()

	r.GET("/healthz", s.Health)
	r.POST("/analyze", s.Analyze)

	return r
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Analyze accepts a multipart .pptx upload under the "deck" field and
// returns the structured findings. Optional form fields "batch_size" and
// "ocr" override the configured defaults; OCR is skipped when the
// backend is unavailable.
func (s *Server) Analyze(c *gin.Context) {
	fh, err := c.FormFile("deck")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing 'deck' file upload"})
		return
	}
	if !strings.EqualFold(filepath.Ext(fh.Filename), ".pptx") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "only .pptx uploads are supported"})
		return
	}

	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable upload"})
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable upload"})
		return
	}

	d, err := deck.ReadDeck(data)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	batchSize := s.cfg.Analysis.BatchSize
	if v := c.PostForm("batch_size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "batch_size must be a positive integer"})
			return
		}
		batchSize = n
	}

	var engine ocr.Engine
	if c.PostForm("ocr") == "true" {
		t, err := ocr.NewTesseract()
		if err != nil {
			log.Printf("warning: %v; continuing without OCR", err)
		} else {
			engine = t
		}
	}

	extractor := &deck.Extractor{OCR: engine}
	slides := extractor.Extract(c.Request.Context(), d)

	analyzer := analysis.New(s.client, batchSize, s.cfg.Pace())
	findings, err := analyzer.Analyze(c.Request.Context(), slides)
	if err != nil {
		log.Printf("analysis aborted: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "analysis aborted"})
		return
	}
	if findings == nil {
		findings = []analysis.Finding{}
	}

	c.JSON(http.StatusOK, report.Report{
		RunID:          uuid.New().String(),
		SlidesAnalyzed: len(slides),
		IssuesFound:    len(findings),
		Findings:       findings,
	})
}
