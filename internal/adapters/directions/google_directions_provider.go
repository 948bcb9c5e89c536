package directions

import (
	"bus-electrification-service/internal/domain"
	"bus-electrification-service/internal/platform/obs"
	"bus-electrification-service/internal/ports"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	DefaultBaseURL = "https://maps.googleapis.com"
	DefaultTimeout = 20 * time.Second

	directionsPath = "/maps/api/directions/json"
	metersPerMile  = 1609.34
)

type Options struct {
	BaseURL string
	Timeout time.Duration

	// Transport replaces the instrumented default transport.
	Transport http.RoundTripper

	// Now is the clock used to project departure times. Defaults to time.Now.
	Now func() time.Time
}

// GoogleDirectionsProvider implements RoutingProvider using the Google Maps
// Directions API. Waypoints are always sent in caller order.
//
// The provider is safe for concurrent use.
type GoogleDirectionsProvider struct {
	session *http.Client
	apiKey  string
	baseURL string
	now     func() time.Time
	tracer  trace.Tracer
}

func NewGoogleDirectionsProvider(apiKey string, opts Options) (*GoogleDirectionsProvider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingAPIKey
	}

	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Transport == nil {
		opts.Transport = otelhttp.NewTransport(http.DefaultTransport)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	provider := &GoogleDirectionsProvider{
		session: &http.Client{Transport: opts.Transport, Timeout: opts.Timeout},
		apiKey:  apiKey,
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		now:     opts.Now,
		tracer:  otel.Tracer("directions-client"),
	}

	return provider, nil
}

type valueField struct {
	Value float64 `json:"value"`
}

type directionsLeg struct {
	StartAddress string     `json:"start_address"`
	EndAddress   string     `json:"end_address"`
	Distance     valueField `json:"distance"`
	Duration     valueField `json:"duration"`
}

type directionsRoute struct {
	Legs             []directionsLeg `json:"legs"`
	OverviewPolyline struct {
		Points string `json:"points"`
	} `json:"overview_polyline"`
}

type directionsResponse struct {
	Status       string            `json:"status"`
	ErrorMessage string            `json:"error_message"`
	Routes       []directionsRoute `json:"routes"`
}

// FetchRoute issues one directions query for origin -> waypoints ->
// destination. Invalid waypoints are dropped with a warning; an invalid
// origin or destination fails without calling the provider.
func (g *GoogleDirectionsProvider) FetchRoute(
	ctx context.Context,
	req ports.RouteRequest,
) (_ ports.RouteResult, err error) {
	defer obs.Time(ctx, "directions.FetchRoute")(&err)

	ctx, span := g.tracer.Start(ctx, "directions.fetch_route",
		trace.WithAttributes(
			attribute.Int("directions.waypoints", len(req.Waypoints)),
			attribute.Bool("directions.has_departure", req.DepartureTime != nil),
		),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.End()
	}()

	if err := req.Origin.Validate(); err != nil {
		return ports.RouteResult{}, &ProviderError{Status: StatusInvalidStops, Message: "invalid origin", Err: err}
	}
	if err := req.Destination.Validate(); err != nil {
		return ports.RouteResult{}, &ProviderError{Status: StatusInvalidStops, Message: "invalid destination", Err: err}
	}

	var result ports.RouteResult

	waypoints := make([]string, 0, len(req.Waypoints))
	for i, wp := range req.Waypoints {
		if err := wp.Validate(); err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("waypoint %d skipped: %v", i+1, err))
			continue
		}
		waypoints = append(waypoints, wp.String())
	}

	q := url.Values{}
	q.Set("origin", req.Origin.String())
	q.Set("destination", req.Destination.String())
	if len(waypoints) > 0 {
		q.Set("waypoints", strings.Join(waypoints, "|"))
	}
	q.Set("key", g.apiKey)
	q.Set("mode", "driving")
	if req.DepartureTime != nil {
		departure := NextMondayDeparture(g.now(), *req.DepartureTime)
		q.Set("departure_time", strconv.FormatInt(departure.Unix(), 10))
		q.Set("traffic_model", "best_guess")
		span.SetAttributes(attribute.String("directions.departure_time", departure.Format(time.RFC3339)))
	}

	httpReq, err := g.newRequest(ctx, g.baseURL+directionsPath)
	if err != nil {
		return ports.RouteResult{}, &ProviderError{Status: StatusTransport, Message: "build request", Err: err}
	}
	httpReq.URL.RawQuery = q.Encode()

	resp, err := g.do(httpReq)
	if err != nil {
		var he *httpStatusError
		if errors.As(err, &he) {
			span.SetAttributes(attribute.Int("http.status_code", he.Code))
			return ports.RouteResult{}, &ProviderError{Status: StatusHTTP, Message: he.Error(), Err: err}
		}
		return ports.RouteResult{}, &ProviderError{Status: StatusTransport, Message: "request failed", Err: g.redact(err)}
	}
	defer resp.Body.Close()

	var dr directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return ports.RouteResult{}, &ProviderError{Status: StatusMalformed, Message: "decode directions response", Err: err}
	}

	span.SetAttributes(attribute.String("directions.status", dr.Status))

	if dr.Status == "" {
		return ports.RouteResult{}, &ProviderError{Status: StatusMalformed, Message: "response has no status"}
	}
	if dr.Status != "OK" {
		return ports.RouteResult{}, &ProviderError{Status: dr.Status, Message: dr.ErrorMessage}
	}
	if len(dr.Routes) == 0 || len(dr.Routes[0].Legs) == 0 {
		return ports.RouteResult{}, &ProviderError{Status: StatusNoLegs, Message: "OK status but no route legs"}
	}

	route := dr.Routes[0]

	var meters, seconds float64
	result.Legs = make([]domain.LegDetail, 0, len(route.Legs))
	for _, leg := range route.Legs {
		meters += leg.Distance.Value
		seconds += leg.Duration.Value
		result.Legs = append(result.Legs, domain.LegDetail{
			StartAddress:    addressOrNA(leg.StartAddress),
			EndAddress:      addressOrNA(leg.EndAddress),
			DistanceMiles:   domain.Round(leg.Distance.Value/metersPerMile, 2),
			DurationMinutes: domain.Round(leg.Duration.Value/60, 1),
		})
	}

	result.TotalDistanceMiles = meters / metersPerMile
	result.TotalDurationMinutes = seconds / 60
	result.EncodedPath = route.OverviewPolyline.Points

	return result, nil
}

// redact strips the query string (which carries the api key) from transport errors.
func (g *GoogleDirectionsProvider) redact(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		ue.URL = g.baseURL + directionsPath
	}
	return err
}

func addressOrNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}
