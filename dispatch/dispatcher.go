package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/urbanreach/routing-gateway/config"
	"github.com/urbanreach/routing-gateway/providers"
	"github.com/urbanreach/routing-gateway/regions"
	"github.com/urbanreach/routing-gateway/request"
	"github.com/urbanreach/routing-gateway/transport"
	"github.com/urbanreach/routing-gateway/trip"
)

// Result carries either the normalized plan or, in original-format mode,
// the raw upstream payload.
type Result struct {
	Provider string
	Plan     *trip.PlanResponse
	Raw      json.RawMessage
}

// Dispatcher resolves one trip request to one upstream provider call. It is
// stateless across requests and safe for concurrent use.
type Dispatcher struct {
	cfg      config.AppConfig
	trans    transport.Transport
	registry *providers.Registry
	selector *regions.Selector
	log      *zap.Logger
}

// New builds a Dispatcher from the immutable configuration and an injected
// transport.
func New(cfg config.AppConfig, trans transport.Transport, log *zap.Logger) *Dispatcher {
	byProvider := map[string][]regions.Region{}
	for _, p := range cfg.Routing.Providers {
		if len(p.Regions) == 0 {
			continue
		}
		list := make([]regions.Region, 0, len(p.Regions))
		for _, r := range p.Regions {
			list = append(list, regions.Region{
				Name:   r.Name,
				Suffix: r.Suffix,
				MinLat: r.MinLat,
				MinLon: r.MinLon,
				MaxLat: r.MaxLat,
				MaxLon: r.MaxLon,
			})
		}
		byProvider[p.Name] = list
	}
	return &Dispatcher{
		cfg:      cfg,
		trans:    trans,
		registry: providers.NewRegistry(),
		selector: regions.NewSelector(byProvider),
		log:      log,
	}
}

// Dispatch validates nothing itself (the request package already did),
// resolves provider and region, performs the single upstream call, and
// normalizes the response. All failures come back as one of the typed
// errors in this package or as *request.ValidationError.
func (d *Dispatcher) Dispatch(ctx context.Context, req trip.Request) (*Result, error) {
	name := req.Provider
	if name == "" {
		name = d.cfg.Routing.DefaultProvider
	}

	adapter, ok := d.registry.Lookup(providers.ID(name))
	if !ok {
		return nil, &request.ValidationError{Message: "unknown provider: " + name}
	}
	pcfg, ok := d.cfg.Provider(name)
	if !ok {
		return nil, &request.ValidationError{Message: "provider not configured: " + name}
	}

	region, ok := d.selector.Select(name, req.From.Lat, req.From.Lon)
	if !ok {
		return nil, &NoCoverageError{Provider: name, Lat: req.From.Lat, Lon: req.From.Lon}
	}
	target := pcfg.Target
	if region.Suffix != "" {
		target += "-" + region.Suffix
	}

	raw, err := d.trans.Invoke(ctx, target, queryFor(req))
	if err != nil {
		d.log.Warn("upstream invocation failed",
			zap.String("provider", name),
			zap.String("target", target),
			zap.Error(err))
		return nil, &UpstreamError{Provider: name, Message: err.Error()}
	}

	// A payload-level error field is treated the same as a transport
	// failure.
	if msg, found := embeddedError(raw); found {
		return nil, &UpstreamError{Provider: name, Message: msg}
	}

	if req.Format == trip.FormatOriginal {
		return &Result{Provider: name, Raw: raw}, nil
	}

	plan, err := d.adapt(adapter, raw)
	if err != nil {
		var ue *providers.UpstreamPayloadError
		if errors.As(err, &ue) {
			return nil, &UpstreamError{Provider: name, Message: ue.Message}
		}
		// Schema drift, not a transient upstream problem: logged apart
		// from upstream failures.
		d.log.Error("adapter rejected upstream payload",
			zap.String("provider", name),
			zap.String("target", target),
			zap.Error(err))
		return nil, &AdapterError{Provider: name, Err: err}
	}
	return &Result{Provider: name, Plan: plan}, nil
}

// adapt runs the adapter, converting a panic on unexpected payload shapes
// into an ordinary error so a single request can never take the process
// down.
func (d *Dispatcher) adapt(a providers.Adapter, raw json.RawMessage) (plan *trip.PlanResponse, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("adapter panic: %v", r)
		}
	}()
	return a.Adapt(raw)
}

// queryFor maps the validated request onto upstream query parameters.
func queryFor(req trip.Request) url.Values {
	q := url.Values{}
	q.Set("from", formatCoordinate(req.From))
	q.Set("to", formatCoordinate(req.To))
	if req.LeaveAt != nil {
		q.Set("leaveAt", strconv.FormatInt(*req.LeaveAt, 10))
	}
	if req.ArriveBy != nil {
		q.Set("arriveBy", strconv.FormatInt(*req.ArriveBy, 10))
	}
	if len(req.Modes) > 0 {
		q.Set("modes", strings.Join(req.Modes, ","))
	}
	return q
}

func formatCoordinate(c trip.Coordinate) string {
	return strconv.FormatFloat(c.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lon, 'f', -1, 64)
}

// embeddedError sniffs the provider-agnostic error envelope some upstreams
// use: {"error": "..."} or {"error": {"message"|"msg": "..."}}. Adapter
// schemas handle their provider-specific variants.
func embeddedError(raw json.RawMessage) (string, bool) {
	var envelope struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil || len(envelope.Error) == 0 {
		return "", false
	}
	var s string
	if err := json.Unmarshal(envelope.Error, &s); err == nil {
		return s, true
	}
	var obj struct {
		Message string `json:"message"`
		Msg     string `json:"msg"`
	}
	if err := json.Unmarshal(envelope.Error, &obj); err == nil {
		if obj.Message != "" {
			return obj.Message, true
		}
		if obj.Msg != "" {
			return obj.Msg, true
		}
	}
	return "", false
}
