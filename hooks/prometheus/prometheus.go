// Package promhooks exports asidecache events as Prometheus metrics.
package promhooks

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/unkn0wn-root/asidecache"
)

type Options struct {
	Namespace   string // metric namespace; "" => "asidecache"
	ConstLabels prometheus.Labels
	Buckets     []float64 // load duration buckets (seconds); nil => DefBuckets
}

type Hooks struct {
	lookups     *prometheus.CounterVec   // result
	coalesced   prometheus.Counter
	loads       *prometheus.HistogramVec // outcome
	storeErrors *prometheus.CounterVec   // op
	corrupt     prometheus.Counter
	setRejected prometheus.Counter
	abandoned   prometheus.Counter
}

var _ asidecache.Hooks = (*Hooks)(nil)

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer, opts Options) (*Hooks, error) {
	ns := opts.Namespace
	if ns == "" {
		ns = "asidecache"
	}
	buckets := opts.Buckets
	if buckets == nil {
		buckets = prometheus.DefBuckets
	}
	cl := opts.ConstLabels

	h := &Hooks{
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns, Name: "lookups_total", ConstLabels: cl,
			Help: "Store lookups by result (hit, negative_hit, miss).",
		}, []string{"result"}),
		coalesced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns, Name: "coalesced_total", ConstLabels: cl,
			Help: "Callers that joined a load already in flight.",
		}),
		loads: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: ns, Name: "load_duration_seconds", ConstLabels: cl, Buckets: buckets,
			Help: "Loader call latency by outcome (value, not_found, error).",
		}, []string{"outcome"}),
		storeErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns, Name: "store_errors_total", ConstLabels: cl,
			Help: "Failed or timed-out store calls by op.",
		}, []string{"op"}),
		corrupt: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns, Name: "corrupt_entries_total", ConstLabels: cl,
			Help: "Stored entries that could not be decoded.",
		}),
		setRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns, Name: "store_set_rejected_total", ConstLabels: cl,
			Help: "Writes refused by the store under pressure.",
		}),
		abandoned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns, Name: "wait_abandoned_total", ConstLabels: cl,
			Help: "Callers whose context ended while waiting on a load.",
		}),
	}

	for _, c := range []prometheus.Collector{
		h.lookups, h.coalesced, h.loads, h.storeErrors, h.corrupt, h.setRejected, h.abandoned,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return h, nil
}

func (h *Hooks) Hit(string)                  { h.lookups.WithLabelValues("hit").Inc() }
func (h *Hooks) NegativeHit(string)          { h.lookups.WithLabelValues("negative_hit").Inc() }
func (h *Hooks) Miss(string)                 { h.lookups.WithLabelValues("miss").Inc() }
func (h *Hooks) Coalesced(string)            { h.coalesced.Inc() }
func (h *Hooks) CorruptEntry(string)         { h.corrupt.Inc() }
func (h *Hooks) StoreSetRejected(string)     { h.setRejected.Inc() }
func (h *Hooks) WaitAbandoned(string, error) { h.abandoned.Inc() }

func (h *Hooks) LoadDone(_, outcome string, took time.Duration) {
	h.loads.WithLabelValues(outcome).Observe(took.Seconds())
}

func (h *Hooks) StoreError(op, _ string, _ error) {
	h.storeErrors.WithLabelValues(op).Inc()
}
