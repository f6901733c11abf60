package telemetry

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/quotevault/quotevault/internal/platform/logging"
)

const instrumentationName = "github.com/quotevault/quotevault/telemetry"

// HeaderTraceID echoes the request's trace so a shell can quote it in a bug
// report.
const HeaderTraceID = "X-Trace-ID"

// apiInstruments are the local API's OTel instruments. Every series carries
// the route and, for screen routes, the screen name.
type apiInstruments struct {
	duration metric.Float64Histogram
	requests metric.Int64Counter
	inFlight metric.Int64UpDownCounter
}

func newAPIInstruments(meter metric.Meter) (*apiInstruments, error) {
	var (
		ins apiInstruments
		err error
	)

	if ins.duration, err = meter.Float64Histogram("quotevault.api.duration",
		metric.WithDescription("Local API request duration"), metric.WithUnit("s")); err != nil {
		return nil, err
	}

	if ins.requests, err = meter.Int64Counter("quotevault.api.requests",
		metric.WithDescription("Local API requests by route and status")); err != nil {
		return nil, err
	}

	if ins.inFlight, err = meter.Int64UpDownCounter("quotevault.api.in_flight",
		metric.WithDescription("Local API requests being served")); err != nil {
		return nil, err
	}

	return &ins, nil
}

func routeAttrs(c *gin.Context) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String("http.method", c.Request.Method),
		attribute.String("http.route", c.FullPath()),
	}

	if screen := c.Param("screen"); screen != "" {
		attrs = append(attrs, attribute.String("quotevault.screen", screen))
	}

	return attrs
}

func (ins *apiInstruments) begin(ctx context.Context, attrs []attribute.KeyValue) func(status int) {
	start := time.Now()
	ins.inFlight.Add(ctx, 1, metric.WithAttributes(attrs...))

	return func(status int) {
		ins.inFlight.Add(ctx, -1, metric.WithAttributes(attrs...))

		done := metric.WithAttributes(append(attrs[:len(attrs):len(attrs)], attribute.String("http.status_code", strconv.Itoa(status)))...)
		ins.duration.Record(ctx, time.Since(start).Seconds(), done)
		ins.requests.Add(ctx, 1, done)
	}
}

// Middleware measures each request, echoes its trace ID and tags the
// request logger with it. It must run after TracingMiddleware.
func Middleware() gin.HandlerFunc {
	ins, err := newAPIInstruments(otel.Meter(instrumentationName))
	if err != nil {
		otel.Handle(err)
	}

	return func(c *gin.Context) {
		ctx := c.Request.Context()

		if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
			id := sc.TraceID().String()
			c.Header(HeaderTraceID, id)
			c.Request = c.Request.WithContext(logging.WithTraceID(ctx, id))
		}

		if ins == nil {
			c.Next()
			return
		}

		finish := ins.begin(ctx, routeAttrs(c))
		c.Next()
		finish(c.Writer.Status())
	}
}

// TracingMiddleware returns the otelgin tracing middleware. Health and
// metrics routes are skipped so probes and scrapes do not flood traces.
func TracingMiddleware(serviceName string) gin.HandlerFunc {
	return otelgin.Middleware(serviceName, otelgin.WithFilter(func(r *http.Request) bool {
		return !strings.HasPrefix(r.URL.Path, "/-/")
	}))
}
