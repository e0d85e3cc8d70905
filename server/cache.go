package server

import (
	"fmt"
	"strings"
	"time"

	"github.com/bluele/gcache"

	"github.com/urbanreach/routing-gateway/trip"
)

// planCache keeps normalized plans for a short TTL so bursts of identical
// requests hit the upstream provider once. Original-format responses are
// never cached.
type planCache struct {
	cache gcache.Cache
	ttl   time.Duration
}

func newPlanCache(size int, ttl time.Duration) *planCache {
	return &planCache{
		cache: gcache.New(size).LRU().Build(),
		ttl:   ttl,
	}
}

func (p *planCache) Get(req trip.Request) (*trip.PlanResponse, bool) {
	if p.ttl <= 0 {
		return nil, false
	}
	v, err := p.cache.Get(cacheKey(req))
	if err != nil {
		return nil, false
	}
	plan, ok := v.(*trip.PlanResponse)
	return plan, ok
}

func (p *planCache) Set(req trip.Request, plan *trip.PlanResponse) {
	if p.ttl <= 0 || plan == nil {
		return
	}
	_ = p.cache.SetWithExpire(cacheKey(req), plan, p.ttl)
}

// cacheKey folds every request field that affects the upstream call into
// one string.
func cacheKey(req trip.Request) string {
	leave, arrive := int64(-1), int64(-1)
	if req.LeaveAt != nil {
		leave = *req.LeaveAt
	}
	if req.ArriveBy != nil {
		arrive = *req.ArriveBy
	}
	return fmt.Sprintf("%s|%.6f,%.6f|%.6f,%.6f|%d|%d|%s",
		req.Provider,
		req.From.Lat, req.From.Lon,
		req.To.Lat, req.To.Lon,
		leave, arrive,
		strings.Join(req.Modes, ","),
	)
}
