package service

import (
	"encoding/hex"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/openabi/calldata-guesser/core/guesser"
	"github.com/openabi/calldata-guesser/metrics"
	"github.com/openabi/calldata-guesser/pkg/byte4"
	"github.com/openabi/calldata-guesser/pkg/fragment"
	"github.com/openabi/calldata-guesser/pkg/logger"
	"github.com/openabi/calldata-guesser/storage"
)

// HttpJsonResp wraps every successful response body in a consistent
// envelope.
type HttpJsonResp[T any] struct {
	Data T `json:"data"`
}

type httpErrorResp struct {
	Error string `json:"error"`
}

// Server is the HTTP process: guesser + hot cache + persistent history
// + metrics, bound together before the HTTP handlers start serving.
type Server struct {
	config       Config
	guesser      *guesser.Guesser
	cache        *hotCache
	history      *storage.HistoryStore
	metrics      *metrics.Metrics
	promRegistry *prometheus.Registry
	registry     *byte4.Registry
	logger       logger.Logger
}

// NewServer wires a Server from cfg, opening its history store and hot
// cache. Callers own the returned Server's lifecycle and must call
// Close when done. Each Server owns its own prometheus registry rather
// than registering against the global DefaultRegisterer, so more than
// one Server can be constructed in a single process (as the test suite
// does) without a duplicate-collector panic.
func NewServer(cfg Config, log logger.Logger) (*Server, error) {
	log = logger.EnsureLogger(log)

	history, err := storage.Open(cfg.HistoryDbPath)
	if err != nil {
		return nil, err
	}

	cache, err := newHotCache(cfg.CacheSizeMB)
	if err != nil {
		history.Close()
		return nil, err
	}

	promRegistry := prometheus.NewRegistry()

	return &Server{
		config:       cfg,
		guesser:      guesser.New(nil, log),
		cache:        cache,
		history:      history,
		metrics:      metrics.New(promRegistry),
		promRegistry: promRegistry,
		registry:     byte4.NewRegistry(),
		logger:       log,
	}, nil
}

func (s *Server) Close() error {
	return s.history.Close()
}

// EvictStale removes history entries older than maxAge, along with
// their hot-cache counterpart, so the eviction scheduler has something
// concrete to sweep. See DESIGN.md for why this caches across calls
// rather than within a single guess.
func (s *Server) EvictStale(maxAge time.Duration) (int, error) {
	selectors, err := s.history.Selectors()
	if err != nil {
		return 0, err
	}
	cutoff := time.Now().Add(-maxAge).Unix()
	evicted := 0
	for _, sel := range selectors {
		entry, ok, err := s.history.Get(sel)
		if err != nil || !ok {
			continue
		}
		if entry.StoredAt > cutoff {
			continue
		}
		if err := s.history.Delete(sel); err != nil {
			continue
		}
		s.cache.delete(sel)
		evicted++
	}
	return evicted, nil
}

// Echo builds the configured echo instance without starting it, so
// callers (the server itself, or tests) can exercise routes directly.
func (s *Server) Echo() *echo.Echo {
	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	if s.config.JwtSecret != "" {
		e.Use(jwtAuthMiddleware(s.config.JwtSecret))
	}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{})))
	e.POST("/v1/guess", s.handleGuess)

	return e
}

// Start blocks, serving on cfg.HttpBindAddress.
func (s *Server) Start() error {
	addr := s.config.HttpBindAddress
	s.logger.Info("HTTP server listening", "address", addr)
	return s.Echo().Start(addr)
}

type guessRequest struct {
	Calldata string `json:"calldata" validate:"required,hexadecimal"`
}

type guessResponse struct {
	Signature      string           `json:"signature"`
	Inputs         []fragment.Param `json:"inputs"`
	Cached         bool             `json:"cached"`
	KnownSignature string           `json:"known_signature,omitempty"`
}

func (s *Server) handleGuess(c echo.Context) error {
	var req guessRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, httpErrorResp{Error: "malformed request body"})
	}
	if err := validateStruct(req); err != nil {
		return c.JSON(http.StatusBadRequest, httpErrorResp{Error: err.Error()})
	}

	calldata, err := hex.DecodeString(strings.TrimPrefix(req.Calldata, "0x"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, httpErrorResp{Error: "calldata is not valid hex"})
	}
	if len(calldata) < 4 {
		return c.JSON(http.StatusUnprocessableEntity, httpErrorResp{Error: "calldata shorter than a selector"})
	}
	selector := hex.EncodeToString(calldata[:4])
	var selectorBytes [4]byte
	copy(selectorBytes[:], calldata[:4])
	known, _ := s.registry.Lookup(selectorBytes)

	s.metrics.IncGuessAttempted()

	if cached, hit := s.cache.get(selector); hit {
		s.metrics.IncCacheLookup("hot", true)
		return c.JSON(http.StatusOK, HttpJsonResp[guessResponse]{Data: guessResponse{
			Signature:      cached.Signature(),
			Inputs:         cached.Inputs,
			Cached:         true,
			KnownSignature: known,
		}})
	}
	s.metrics.IncCacheLookup("hot", false)

	if entry, hit, err := s.history.Get(selector); err == nil && hit {
		s.metrics.IncCacheLookup("history", true)
		s.cache.set(selector, entry.Fragment)
		return c.JSON(http.StatusOK, HttpJsonResp[guessResponse]{Data: guessResponse{
			Signature:      entry.Fragment.Signature(),
			Inputs:         entry.Fragment.Inputs,
			Cached:         true,
			KnownSignature: known,
		}})
	}
	s.metrics.IncCacheLookup("history", false)

	start := time.Now()
	frag, ok := s.guesser.Guess(calldata)
	s.metrics.ObserveInferDuration(time.Since(start).Seconds())
	if !ok {
		return c.JSON(http.StatusUnprocessableEntity, httpErrorResp{Error: "no plausible shape found for this calldata"})
	}
	s.metrics.IncGuessAccepted()

	s.cache.set(selector, frag)
	entry := storage.HistoryEntry{Selector: selector, Fragment: frag, Sample: calldata, StoredAt: time.Now().Unix()}
	if err := s.history.Put(entry); err != nil {
		s.logger.Error("persisting history entry", "error", err, "selector", selector)
	}

	return c.JSON(http.StatusOK, HttpJsonResp[guessResponse]{Data: guessResponse{
		Signature:      frag.Signature(),
		Inputs:         frag.Inputs,
		Cached:         false,
		KnownSignature: known,
	}})
}
