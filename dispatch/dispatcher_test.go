package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/urbanreach/routing-gateway/config"
	"github.com/urbanreach/routing-gateway/request"
	"github.com/urbanreach/routing-gateway/trip"
)

// fakeTransport records invocations and replays a canned payload.
type fakeTransport struct {
	calls   int
	target  string
	query   url.Values
	payload json.RawMessage
	err     error
}

func (f *fakeTransport) Invoke(_ context.Context, target string, query url.Values) (json.RawMessage, error) {
	f.calls++
	f.target = target
	f.query = query
	if f.err != nil {
		return nil, f.err
	}
	return f.payload, nil
}

const twoOptionPayload = `{
	"plan": {
		"itineraries": [
			{"startTime": 1000, "endTime": 5000, "legs": [
				{"startTime": 1000, "endTime": 5000, "mode": "BUS",
				 "from": {"name": "A", "lat": 60.1, "lon": 24.9},
				 "to": {"name": "B", "lat": 60.2, "lon": 24.9}}
			]},
			{"startTime": 2000, "endTime": 7000, "legs": [
				{"startTime": 2000, "endTime": 7000, "mode": "WALK",
				 "from": {"name": "A", "lat": 60.1, "lon": 24.9},
				 "to": {"name": "B", "lat": 60.2, "lon": 24.9}}
			]}
		]
	}
}`

func newDispatcher(t *testing.T, ft *fakeTransport) *Dispatcher {
	t.Helper()
	return New(config.Default(), ft, zap.NewNop())
}

func validRequest() trip.Request {
	return trip.Request{
		From:   trip.Coordinate{Lat: 60.17, Lon: 24.94},
		To:     trip.Coordinate{Lat: 60.2, Lon: 24.93},
		Format: trip.FormatNormalized,
	}
}

func TestDispatchNormalized(t *testing.T) {
	ft := &fakeTransport{payload: json.RawMessage(twoOptionPayload)}
	d := newDispatcher(t, ft)

	req := validRequest()
	req.Provider = "digitransit"
	res, err := d.Dispatch(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, res.Plan)

	assert.Len(t, res.Plan.Plan.Itineraries, 2)
	for _, it := range res.Plan.Plan.Itineraries {
		for _, leg := range it.Legs {
			assert.Less(t, leg.StartTime, leg.EndTime)
		}
	}
	assert.Equal(t, "routing-digitransit", ft.target)
	assert.Equal(t, "60.17,24.94", ft.query.Get("from"))
}

func TestDispatchDefaultProvider(t *testing.T) {
	ft := &fakeTransport{payload: json.RawMessage(twoOptionPayload)}
	d := newDispatcher(t, ft)

	res, err := d.Dispatch(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, "digitransit", res.Provider)
}

func TestDispatchOriginalFormatPassthrough(t *testing.T) {
	ft := &fakeTransport{payload: json.RawMessage(twoOptionPayload)}
	d := newDispatcher(t, ft)

	req := validRequest()
	req.Format = trip.FormatOriginal
	res, err := d.Dispatch(context.Background(), req)
	require.NoError(t, err)
	assert.Nil(t, res.Plan)
	assert.JSONEq(t, twoOptionPayload, string(res.Raw))
}

func TestDispatchRegionPartitioned(t *testing.T) {
	ft := &fakeTransport{payload: json.RawMessage(`{"groups": [], "segmentTemplates": []}`)}
	d := newDispatcher(t, ft)

	req := validRequest()
	req.Provider = "tripgo"
	_, err := d.Dispatch(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "routing-tripgo-southfinland", ft.target)
}

func TestDispatchNoCoverageSkipsTransport(t *testing.T) {
	ft := &fakeTransport{payload: json.RawMessage(`{}`)}
	d := newDispatcher(t, ft)

	req := validRequest()
	req.Provider = "tripgo"
	req.From = trip.Coordinate{Lat: 48.85, Lon: 2.35} // Paris, outside every box
	_, err := d.Dispatch(context.Background(), req)

	var nc *NoCoverageError
	require.ErrorAs(t, err, &nc)
	assert.Equal(t, "tripgo", nc.Provider)
	assert.Zero(t, ft.calls, "transport must never be invoked on no coverage")
}

func TestDispatchUnknownProvider(t *testing.T) {
	ft := &fakeTransport{}
	d := newDispatcher(t, ft)

	req := validRequest()
	req.Provider = "teleport"
	_, err := d.Dispatch(context.Background(), req)

	var ve *request.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Zero(t, ft.calls)
}

func TestDispatchTransportFailure(t *testing.T) {
	ft := &fakeTransport{err: errors.New("connection refused")}
	d := newDispatcher(t, ft)

	_, err := d.Dispatch(context.Background(), validRequest())
	var ue *UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Contains(t, ue.Message, "connection refused")
}

func TestDispatchEmbeddedUpstreamError(t *testing.T) {
	ft := &fakeTransport{payload: json.RawMessage(`{"error": {"msg": "date too far in the future"}}`)}
	d := newDispatcher(t, ft)

	_, err := d.Dispatch(context.Background(), validRequest())
	var ue *UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "date too far in the future", ue.Message)
}

func TestDispatchMalformedPayloadIsAdapterError(t *testing.T) {
	// A payload missing the expected itineraries array must surface as an
	// AdapterError, not a validation failure and not a crash.
	ft := &fakeTransport{payload: json.RawMessage(`{"plan": {}}`)}
	d := newDispatcher(t, ft)

	_, err := d.Dispatch(context.Background(), validRequest())
	var ae *AdapterError
	require.ErrorAs(t, err, &ae)
	var ve *request.ValidationError
	assert.False(t, errors.As(err, &ve))
}

func TestDispatchQueryMapping(t *testing.T) {
	ft := &fakeTransport{payload: json.RawMessage(twoOptionPayload)}
	d := newDispatcher(t, ft)

	leave := int64(1752570000000)
	req := validRequest()
	req.LeaveAt = &leave
	req.Modes = []string{trip.ModeBus, trip.ModeWalk}
	_, err := d.Dispatch(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "1752570000000", ft.query.Get("leaveAt"))
	assert.Empty(t, ft.query.Get("arriveBy"))
	assert.Equal(t, "BUS,WALK", ft.query.Get("modes"))
}
