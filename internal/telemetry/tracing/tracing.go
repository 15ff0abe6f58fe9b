package tracing

import (
	"fmt"

	"github.com/go-redis/redis/extra/redisotel/v8"
	"github.com/go-redis/redis/v8"
	"github.com/honeycombio/honeycomb-opentelemetry-go"
	"github.com/honeycombio/otel-config-go/otelconfig"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var GlobalTracer trace.Tracer = otel.Tracer("nutriflow")

// HoneycombSetup configures the OpenTelemetry SDK with the honeycomb distro. When disabled,
// the global no-op provider stays in place and the returned shutdown func does nothing.
// The redis client, if given, gets a tracing hook either way.
func HoneycombSetup(enabled bool, serviceName string, rdb *redis.Client) (func(), error) {
	if rdb != nil {
		rdb.AddHook(redisotel.NewTracingHook())
	}

	if !enabled {
		log.Debugln("honeycomb tracing disabled")
		return func() {}, nil
	}

	bsp := honeycomb.NewBaggageSpanProcessor()
	otelShutdown, err := otelconfig.ConfigureOpenTelemetry(
		otelconfig.WithServiceName(serviceName),
		otelconfig.WithSpanProcessor(bsp),
	)
	if err != nil {
		return nil, fmt.Errorf("configure open telemetry: %w", err)
	}

	log.Debugf("honeycomb tracing set up for service: %s", serviceName)
	return otelShutdown, nil
}
