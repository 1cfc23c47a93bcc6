package simws

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/manuelgantiva/vrx/internal/transport/simws"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}
