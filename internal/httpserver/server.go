// Package httpserver exposes a read-only preview API for the panel: current
// scheduler status as JSON and the last rendered frame as PNG. It exists for
// debugging a headless device and is disabled by default; nothing here can
// mutate the display.
package httpserver

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tinytelemetry/inkstat/internal/scheduler"
)

// StatusSource is the narrow scheduler contract required by the API.
type StatusSource interface {
	Status() scheduler.Status
	LastFrame() *image.Gray
}

// Server provides the HTTP preview API.
type Server struct {
	addr   string
	source StatusSource
	server *http.Server
	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a preview server bound to addr.
func NewServer(addr string, source StatusSource) *Server {
	if addr == "" {
		addr = "0.0.0.0:3000"
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		addr:   addr,
		source: source,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start begins serving HTTP requests.
func (s *Server) Start() error {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/api/health", s.handleHealth)
	r.GET("/preview.png", s.handlePreview)

	s.server = &http.Server{
		Handler:           r,
		BaseContext:       func(_ net.Listener) context.Context { return s.ctx },
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}

	go s.server.Serve(listener)
	return nil
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop() error {
	s.cancel()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(c *gin.Context) {
	st := s.source.Status()

	resp := gin.H{
		"status":    "ok",
		"cycles":    st.Cycles,
		"last_mode": st.LastMode.String(),
	}
	if !st.Started.IsZero() {
		resp["uptime"] = time.Since(st.Started).String()
	}
	if !st.LastUpdate.IsZero() {
		resp["last_update"] = st.LastUpdate.UTC().Format(time.RFC3339)
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) handlePreview(c *gin.Context) {
	frame := s.source.LastFrame()
	if frame == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no frame rendered yet"})
		return
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, frame); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to encode frame"})
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}
