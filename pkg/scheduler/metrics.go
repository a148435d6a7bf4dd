package scheduler

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const instrumentationName = "github.com/snitron/clockface/pkg/scheduler"

type metrics struct {
	ticks metric.Int64Counter
}

func newMetrics(mp metric.MeterProvider) *metrics {
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	meter := mp.Meter(instrumentationName)
	ticks, err := meter.Int64Counter("clockface.scheduler.ticks",
		metric.WithDescription("Repaint requests issued by redraw schedulers."),
		metric.WithUnit("{tick}"),
	)
	if err != nil {
		ticks = noop.Int64Counter{}
	}
	return &metrics{ticks: ticks}
}
