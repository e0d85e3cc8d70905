package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/urbanreach/routing-gateway/dispatch"
	"github.com/urbanreach/routing-gateway/request"
	"github.com/urbanreach/routing-gateway/trip"
	"github.com/urbanreach/routing-gateway/utils"
)

const requestIDHeader = "X-Request-Id"

// handlePlan serves GET and POST /api/plan. GET takes the wire fields as
// query parameters, POST as a JSON body.
func (s *Server) handlePlan(c *gin.Context) {
	c.Header(requestIDHeader, uuid.NewString())

	var raw request.Raw
	var err error
	if c.Request.Method == http.MethodPost {
		err = c.ShouldBindJSON(&raw)
	} else {
		err = c.ShouldBindQuery(&raw)
	}
	if err != nil {
		s.metrics.ObservePlan("", "validation_error", 0)
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	req, err := request.Validate(raw)
	if err != nil {
		s.metrics.ObservePlan(raw.Provider, "validation_error", 0)
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if req.Format == trip.FormatNormalized {
		if cached, ok := s.cache.Get(req); ok {
			s.metrics.ObservePlan(req.Provider, "cache_hit", 0)
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	start := time.Now()
	res, err := s.dispatcher.Dispatch(c.Request.Context(), req)
	elapsed := time.Since(start)
	if err != nil {
		provider, outcome, status := classifyFailure(err)
		s.metrics.ObservePlan(provider, outcome, elapsed)
		c.JSON(status, gin.H{"message": err.Error()})
		return
	}

	s.metrics.ObservePlan(res.Provider, "ok", elapsed)
	if res.Raw != nil {
		c.Data(http.StatusOK, "application/json", res.Raw)
		return
	}
	s.cache.Set(req, res.Plan)
	c.JSON(http.StatusOK, res.Plan)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":          "UP",
		"time":            utils.Iso8601FromEpochMS(time.Now().UnixMilli()),
		"defaultProvider": s.cfg.Routing.DefaultProvider,
	})
}

// classifyFailure maps the dispatch error taxonomy onto metric outcomes and
// HTTP statuses. The wire contract stays a single message object; only the
// status hints at the category.
func classifyFailure(err error) (provider, outcome string, status int) {
	var ve *request.ValidationError
	var nc *dispatch.NoCoverageError
	var ue *dispatch.UpstreamError
	var ae *dispatch.AdapterError
	switch {
	case errors.As(err, &ve):
		return "", "validation_error", http.StatusBadRequest
	case errors.As(err, &nc):
		return nc.Provider, "no_coverage", http.StatusNotFound
	case errors.As(err, &ue):
		return ue.Provider, "upstream_error", http.StatusBadGateway
	case errors.As(err, &ae):
		return ae.Provider, "adapter_error", http.StatusBadGateway
	default:
		return "", "internal_error", http.StatusInternalServerError
	}
}
