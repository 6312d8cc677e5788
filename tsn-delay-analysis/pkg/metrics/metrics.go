// Package metrics exports run results as Prometheus metrics.
//
// Nothing is served: the registry is written once at the end of a run in the
// text exposition format, for the node exporter textfile collector.
package metrics

import (
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "tsn"

// PromRecorder implements interfaces.Recorder on a private registry.
type PromRecorder struct {
	registry *prometheus.Registry

	frames       prometheus.Counter
	lost         prometheus.Counter
	malformed    *prometheus.CounterVec
	pathMisses   prometheus.Counter
	gateMisses   prometheus.Counter
	cyclesMissed prometheus.Gauge
	pathDelay    prometheus.Histogram
	gateDelay    prometheus.Histogram
}

// NewPromRecorder creates the collectors and registers them on a new registry.
func NewPromRecorder() *PromRecorder {
	p := &PromRecorder{
		registry: prometheus.NewRegistry(),
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_total",
			Help:      "Matched frames with a computed path and gate delay.",
		}),
		lost: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_lost_total",
			Help:      "Transmitted frames without a matching receive record.",
		}),
		malformed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_malformed_total",
			Help:      "Matched frames dropped because a gate time could not be read.",
		}, []string{"side"}),
		pathMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "path_deadline_misses_total",
			Help:      "Frames whose path delay exceeded the PHY-to-PHY threshold.",
		}),
		gateMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "gate_deadline_misses_total",
			Help:      "Frames transmitted at least one cycle away from their gate.",
		}),
		cyclesMissed: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cycles_missed",
			Help:      "Schedule cycles skipped by the sender.",
		}),
		pathDelay: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "path_delay_seconds",
			Help:      "Absolute hardware RX minus hardware TX time.",
			Buckets:   prometheus.ExponentialBuckets(100e-9, 2, 12),
		}),
		gateDelay: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "gate_delay_seconds",
			Help:      "Absolute hardware TX time minus scheduled gate time.",
			Buckets:   prometheus.ExponentialBuckets(100e-9, 2, 16),
		}),
	}

	p.registry.MustRegister(p.frames, p.lost, p.malformed, p.pathMisses,
		p.gateMisses, p.cyclesMissed, p.pathDelay, p.gateDelay)
	return p
}

// Registry returns the registry holding all collectors.
func (p *PromRecorder) Registry() *prometheus.Registry {
	return p.registry
}

// FrameProcessed records one matched frame.
func (p *PromRecorder) FrameProcessed(pathDelayNs, gateDelayNs int64, pathMiss, gateMiss bool, cyclesMissed int64) {
	p.frames.Inc()
	if pathMiss {
		p.pathMisses.Inc()
	}
	if gateMiss {
		p.gateMisses.Inc()
	}
	p.cyclesMissed.Set(float64(cyclesMissed))
	p.pathDelay.Observe(nsToSeconds(pathDelayNs))
	p.gateDelay.Observe(nsToSeconds(gateDelayNs))
}

// FrameLost records a transmitted frame that was never received.
func (p *PromRecorder) FrameLost() {
	p.lost.Inc()
}

// FrameMalformed records a matched pair dropped for an unreadable gate time.
func (p *PromRecorder) FrameMalformed(side string) {
	p.malformed.WithLabelValues(side).Inc()
}

// WriteTextfile writes the registry to path in the text exposition format.
func (p *PromRecorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, p.registry); err != nil {
		return errors.Wrapf(err, "failed to write metrics to %s", path)
	}
	return nil
}

func nsToSeconds(ns int64) float64 {
	if ns < 0 {
		ns = -ns
	}
	return float64(ns) / 1e9
}
