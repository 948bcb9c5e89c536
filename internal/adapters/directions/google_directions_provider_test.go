package directions

import (
	"bus-electrification-service/internal/domain"
	"bus-electrification-service/internal/ports"
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const okTwoLegs = `{
  "status": "OK",
  "routes": [{
    "legs": [
      {"start_address": "Depot", "end_address": "Stop 1", "distance": {"value": 1609.34}, "duration": {"value": 600}},
      {"start_address": "", "end_address": "School", "distance": {"value": 3218.68}, "duration": {"value": 1230}}
    ],
    "overview_polyline": {"points": "_p~iF~ps|U_ulLnnqC_mqNvxq` + "`" + `@"}
  }]
}`

func newTestProvider(t *testing.T, baseURL string, opts Options) *GoogleDirectionsProvider {
	t.Helper()
	opts.BaseURL = baseURL
	if opts.Transport == nil {
		opts.Transport = http.DefaultTransport
	}
	p, err := NewGoogleDirectionsProvider("test-key", opts)
	require.NoError(t, err)
	return p
}

func jsonServer(t *testing.T, body string, hits *int32, query *string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			atomic.AddInt32(hits, 1)
		}
		if query != nil {
			*query = r.URL.RawQuery
		}
		assert.Equal(t, directionsPath, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func request() ports.RouteRequest {
	return ports.RouteRequest{
		Origin: domain.Coordinates{Lat: 34.05, Lng: -118.25},
		Waypoints: []domain.Coordinates{
			{Lat: 34.06, Lng: -118.26},
			{Lat: 34.07, Lng: -118.27},
		},
		Destination: domain.Coordinates{Lat: 34.08, Lng: -118.28},
	}
}

func TestNewGoogleDirectionsProvider_RequiresKey(t *testing.T) {
	_, err := NewGoogleDirectionsProvider("  ", Options{})
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestFetchRoute_ParsesLegsAndTotals(t *testing.T) {
	srv := jsonServer(t, okTwoLegs, nil, nil)
	p := newTestProvider(t, srv.URL, Options{})

	res, err := p.FetchRoute(context.Background(), request())
	require.NoError(t, err)

	assert.InDelta(t, 3.0, res.TotalDistanceMiles, 1e-9)
	assert.InDelta(t, 30.5, res.TotalDurationMinutes, 1e-9)
	assert.Equal(t, "_p~iF~ps|U_ulLnnqC_mqNvxq`@", res.EncodedPath)
	require.Len(t, res.Legs, 2)
	assert.Equal(t, domain.LegDetail{StartAddress: "Depot", EndAddress: "Stop 1", DistanceMiles: 1, DurationMinutes: 10}, res.Legs[0])
	assert.Equal(t, "N/A", res.Legs[1].StartAddress)
	assert.Equal(t, 20.5, res.Legs[1].DurationMinutes)
	assert.Empty(t, res.Warnings)
}

func TestFetchRoute_QueryKeepsWaypointOrderWithoutDeparture(t *testing.T) {
	var query string
	srv := jsonServer(t, okTwoLegs, nil, &query)
	p := newTestProvider(t, srv.URL, Options{})

	_, err := p.FetchRoute(context.Background(), request())
	require.NoError(t, err)

	q, err := url.ParseQuery(query)
	require.NoError(t, err)
	assert.Equal(t, "34.05,-118.25", q.Get("origin"))
	assert.Equal(t, "34.08,-118.28", q.Get("destination"))
	assert.Equal(t, "34.06,-118.26|34.07,-118.27", q.Get("waypoints"))
	assert.Equal(t, "test-key", q.Get("key"))
	assert.Equal(t, "driving", q.Get("mode"))
	assert.False(t, q.Has("departure_time"))
	assert.False(t, q.Has("traffic_model"))
	assert.NotContains(t, q.Get("waypoints"), "optimize")
}

func TestFetchRoute_DepartureProjectedOntoNextMonday(t *testing.T) {
	var query string
	srv := jsonServer(t, okTwoLegs, nil, &query)
	tuesday := time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC)
	p := newTestProvider(t, srv.URL, Options{Now: func() time.Time { return tuesday }})

	bell, err := domain.NewTimeOfDay(8, 0)
	require.NoError(t, err)
	req := request()
	req.DepartureTime = &bell

	_, err = p.FetchRoute(context.Background(), req)
	require.NoError(t, err)

	q, err := url.ParseQuery(query)
	require.NoError(t, err)
	want := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC).Unix()
	assert.Equal(t, strconv.FormatInt(want, 10), q.Get("departure_time"))
	assert.Equal(t, "best_guess", q.Get("traffic_model"))
}

func TestFetchRoute_DropsInvalidWaypointWithWarning(t *testing.T) {
	var query string
	srv := jsonServer(t, okTwoLegs, nil, &query)
	p := newTestProvider(t, srv.URL, Options{})

	req := request()
	req.Waypoints[0] = domain.Coordinates{Lat: math.NaN(), Lng: 0}

	res, err := p.FetchRoute(context.Background(), req)
	require.NoError(t, err)

	q, err := url.ParseQuery(query)
	require.NoError(t, err)
	assert.Equal(t, "34.07,-118.27", q.Get("waypoints"))
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "waypoint 1 skipped")
}

func TestFetchRoute_InvalidOriginFailsWithoutCall(t *testing.T) {
	var hits int32
	srv := jsonServer(t, okTwoLegs, &hits, nil)
	p := newTestProvider(t, srv.URL, Options{})

	req := request()
	req.Origin = domain.Coordinates{Lat: 200, Lng: 0}

	_, err := p.FetchRoute(context.Background(), req)

	var pe *ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, StatusInvalidStops, pe.Status)
	assert.ErrorIs(t, err, domain.ErrInvalidCoordinates)
	assert.Zero(t, atomic.LoadInt32(&hits))
}

func TestFetchRoute_Failures(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		code       int
		wantStatus string
	}{
		{"zero results", `{"status":"ZERO_RESULTS","routes":[]}`, http.StatusOK, "ZERO_RESULTS"},
		{"request denied", `{"status":"REQUEST_DENIED","error_message":"bad key"}`, http.StatusOK, "REQUEST_DENIED"},
		{"ok without legs", `{"status":"OK","routes":[{"legs":[]}]}`, http.StatusOK, StatusNoLegs},
		{"ok without routes", `{"status":"OK","routes":[]}`, http.StatusOK, StatusNoLegs},
		{"malformed json", `{"status":`, http.StatusOK, StatusMalformed},
		{"missing status", `{}`, http.StatusOK, StatusMalformed},
		{"server error", `oops`, http.StatusInternalServerError, StatusHTTP},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hits int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&hits, 1)
				w.WriteHeader(tt.code)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			p := newTestProvider(t, srv.URL, Options{})
			_, err := p.FetchRoute(context.Background(), request())

			var pe *ProviderError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.wantStatus, pe.Status)
			assert.Equal(t, int32(1), atomic.LoadInt32(&hits), "no retry expected")
		})
	}
}

func TestFetchRoute_TimeoutIsTransportErrorWithoutKey(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	p := newTestProvider(t, srv.URL, Options{Timeout: 50 * time.Millisecond})
	_, err := p.FetchRoute(context.Background(), request())

	var pe *ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, StatusTransport, pe.Status)
	assert.NotContains(t, err.Error(), "test-key")
	assert.False(t, errors.Is(err, context.Canceled))
}

func TestProviderErrorMessage(t *testing.T) {
	err := &ProviderError{Status: "ZERO_RESULTS"}
	assert.Equal(t, "directions: ZERO_RESULTS", err.Error())

	err = &ProviderError{Status: StatusHTTP, Message: "Code 500: oops"}
	assert.True(t, strings.HasPrefix(err.Error(), "directions: HTTP_ERROR"))
}
