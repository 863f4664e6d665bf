package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/rezonia/zugferd/internal/logger"
	"github.com/rezonia/zugferd/internal/model"
	"github.com/rezonia/zugferd/internal/processor"
	"github.com/rezonia/zugferd/internal/profile"
	"github.com/rezonia/zugferd/internal/validation"
)

const requestIDHeader = "X-Request-ID"

// Config holds server configuration
type Config struct {
	Address      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	MaxBodyBytes int64

	// Target is used for query parameters a request leaves out. Zero
	// fields are taken from the posted document.
	Target  processor.Target
	Collect bool
	Debug   bool
}

// Server represents the HTTP API server
type Server struct {
	config   *Config
	router   *gin.Engine
	strict   *processor.Pipeline
	collect  *processor.Pipeline
	registry *prometheus.Registry
	metrics  *Metrics
	http     *http.Server
	log      zerolog.Logger
}

// NewServer creates a new API server
func NewServer(config *Config) *Server {
	if !config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	if config.MaxBodyBytes <= 0 {
		config.MaxBodyBytes = 10 << 20
	}

	log := logger.WithComponent("server")
	registry := prometheus.NewRegistry()

	s := &Server{
		config:   config,
		router:   gin.New(),
		strict:   processor.NewPipeline(processor.WithLogger(log)),
		collect:  processor.NewPipeline(processor.WithLogger(log), processor.WithValidationMode(validation.Collect)),
		registry: registry,
		metrics:  NewMetrics(registry),
		log:      log,
	}
	s.router.Use(gin.Recovery(), s.requestID, s.requestLog)
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)
	s.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))

	v1 := s.router.Group("/api/v1", s.limitBody)
	{
		v1.POST("/identify", s.handleIdentify)
		v1.POST("/inspect", s.handleInspect)
		v1.POST("/convert", s.handleConvert)
		v1.POST("/validate", s.handleValidate)
	}
}

// Run serves until ctx ends, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	s.http = &http.Server{
		Addr:         s.config.Address,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.log.Info().Str("address", s.config.Address).Msg("starting HTTP server")
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		s.log.Info().Msg("HTTP server: graceful shutdown")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// Handler returns the http.Handler for use with custom servers
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) requestID(c *gin.Context) {
	id := c.GetHeader(requestIDHeader)
	if id == "" {
		id = uuid.New().String()
	}
	c.Set("request_id", id)
	c.Header(requestIDHeader, id)
	c.Next()
}

func (s *Server) requestLog(c *gin.Context) {
	start := time.Now()
	c.Next()

	log := logger.WithRequestID(c.GetString("request_id"))
	log.Debug().
		Str("method", c.Request.Method).
		Str("path", c.FullPath()).
		Int("status", c.Writer.Status()).
		Dur("latency", time.Since(start)).
		Msg("request")
}

func (s *Server) limitBody(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.config.MaxBodyBytes)
	c.Next()
}

// body reads the posted document. It writes the error response itself
// and returns false when there is nothing to process.
func (s *Server) body(c *gin.Context) ([]byte, bool) {
	data, err := c.GetRawData()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.fail(c, http.StatusRequestEntityTooLarge, "too_large",
				fmt.Errorf("document exceeds %d bytes", tooLarge.Limit))
			return nil, false
		}
		s.fail(c, http.StatusBadRequest, "error", fmt.Errorf("failed to read request body: %w", err))
		return nil, false
	}
	if len(data) == 0 {
		s.fail(c, http.StatusBadRequest, "error", errors.New("empty request body"))
		return nil, false
	}
	s.metrics.AddBytes("in", len(data))
	return data, true
}

// target reads version, dialect and profile query parameters
func (s *Server) target(c *gin.Context) (processor.Target, error) {
	t := s.config.Target
	if v := c.Query("version"); v != "" {
		parsed, err := profile.ParseVersion(v)
		if err != nil {
			return t, err
		}
		t.Version = parsed
	}
	if f := c.Query("dialect"); f != "" {
		parsed, err := profile.ParseFamily(f)
		if err != nil {
			return t, err
		}
		t.Family = parsed
	}
	if p := c.Query("profile"); p != "" {
		parsed, err := profile.Parse(p)
		if err != nil {
			return t, err
		}
		t.Profile = parsed
	}
	return t, nil
}

func (s *Server) pipeline(c *gin.Context) *processor.Pipeline {
	collect := s.config.Collect
	if mode := c.Query("mode"); mode != "" {
		collect = mode == "collect"
	}
	if collect {
		return s.collect
	}
	return s.strict
}

// classify maps pipeline errors to an HTTP status and a metrics outcome
func classify(err error) (int, string) {
	var (
		recognition *model.FormatRecognitionError
		malformed   *model.MalformedDocumentError
		unsupported *model.UnsupportedConfigurationError
		violation   *model.BusinessRuleViolation
		violations  *model.ViolationList
	)
	switch {
	case errors.As(err, &recognition):
		return http.StatusUnprocessableEntity, "unrecognized"
	case errors.As(err, &malformed):
		return http.StatusUnprocessableEntity, "malformed"
	case errors.As(err, &unsupported):
		return http.StatusBadRequest, "unsupported"
	case errors.As(err, &violations), errors.As(err, &violation):
		return http.StatusUnprocessableEntity, "invalid"
	default:
		return http.StatusInternalServerError, "error"
	}
}

func (s *Server) fail(c *gin.Context, status int, kind string, err error) {
	c.JSON(status, ErrorResponse{
		Error:     err.Error(),
		Kind:      kind,
		RequestID: c.GetString("request_id"),
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleIdentify(c *gin.Context) {
	data, ok := s.body(c)
	if !ok {
		return
	}
	start := time.Now()

	res := s.strict.Identify(data)
	if res.Error != nil {
		status, outcome := classify(res.Error)
		s.metrics.Observe("identify", outcome, time.Since(start))
		s.fail(c, status, outcome, res.Error)
		return
	}
	s.metrics.Observe("identify", "ok", time.Since(start))
	c.JSON(http.StatusOK, IdentifyResponse{Family: res.Family, Version: res.Version, Profile: res.Profile})
}

func (s *Server) handleInspect(c *gin.Context) {
	data, ok := s.body(c)
	if !ok {
		return
	}
	start := time.Now()

	res := s.strict.Load(data)
	if res.Error != nil {
		status, outcome := classify(res.Error)
		s.metrics.Observe("inspect", outcome, time.Since(start))
		s.fail(c, status, outcome, res.Error)
		return
	}
	s.metrics.Observe("inspect", "ok", time.Since(start))
	c.JSON(http.StatusOK, InspectResponse{
		IdentifyResponse: IdentifyResponse{Family: res.Family, Version: res.Version, Profile: res.Profile},
		Invoice:          res.Invoice,
	})
}

func (s *Server) handleConvert(c *gin.Context) {
	data, ok := s.body(c)
	if !ok {
		return
	}
	target, err := s.target(c)
	if err != nil {
		s.fail(c, http.StatusBadRequest, "unsupported", err)
		return
	}
	start := time.Now()

	res := s.pipeline(c).Convert(data, target)
	if res.Error != nil {
		status, outcome := classify(res.Error)
		s.metrics.Observe("convert", outcome, time.Since(start))
		s.fail(c, status, outcome, res.Error)
		return
	}
	s.metrics.Observe("convert", "ok", time.Since(start))
	s.metrics.AddBytes("out", len(res.Output))

	c.Header("X-Invoice-Dialect", res.Target.Family.String())
	c.Header("X-Invoice-Version", res.Target.Version.String())
	c.Header("X-Invoice-Profile", res.Target.Profile.String())
	c.Header("Content-Length", strconv.Itoa(len(res.Output)))
	c.Data(http.StatusOK, "application/xml; charset=utf-8", res.Output)
}

func (s *Server) handleValidate(c *gin.Context) {
	data, ok := s.body(c)
	if !ok {
		return
	}
	target, err := s.target(c)
	if err != nil {
		s.fail(c, http.StatusBadRequest, "unsupported", err)
		return
	}
	start := time.Now()

	res := s.pipeline(c).Validate(data, target)
	if res.Target == nil {
		// the document itself could not be read
		status, outcome := classify(res.Error)
		s.metrics.Observe("validate", outcome, time.Since(start))
		s.fail(c, status, outcome, res.Error)
		return
	}

	resp := ValidationResponse{
		Valid:   res.Error == nil,
		Version: res.Target.Version,
		Family:  res.Target.Family,
		Profile: res.Target.Profile,
	}
	var (
		violation  *model.BusinessRuleViolation
		violations *model.ViolationList
	)
	switch {
	case res.Error == nil:
	case errors.As(res.Error, &violations):
		resp.Violations = violations.Violations
	case errors.As(res.Error, &violation):
		resp.Violations = []*model.BusinessRuleViolation{violation}
	default:
		status, outcome := classify(res.Error)
		s.metrics.Observe("validate", outcome, time.Since(start))
		s.fail(c, status, outcome, res.Error)
		return
	}

	outcome := "ok"
	if !resp.Valid {
		outcome = "invalid"
	}
	s.metrics.Observe("validate", outcome, time.Since(start))
	c.JSON(http.StatusOK, resp)
}
