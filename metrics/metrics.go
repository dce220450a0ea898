package metrics

import (
	// Go Internal Packages
	"context"
	"errors"
	"net/http"
	"time"

	// External Packages
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/twmb/franz-go/plugin/kprom"
	"go.uber.org/zap"
)

// Metrics bundles the franz-go client hooks with the injector's own counters.
type Metrics struct {
	Kafka *kprom.Metrics

	registry       *prometheus.Registry
	generated      prometheus.Counter
	tickFailed     prometheus.Counter
	delivered      prometheus.Counter
	deliveryFailed prometheus.Counter
}

func New(namespace, service string) *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	labels := prometheus.Labels{"service": service}

	counter := func(name, help string) prometheus.Counter {
		return factory.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "injector",
			Name:        name,
			Help:        help,
			ConstLabels: labels,
		})
	}

	return &Metrics{
		Kafka:          kprom.NewMetrics(namespace),
		registry:       reg,
		generated:      counter("generated_total", "Transactions generated"),
		tickFailed:     counter("tick_failures_total", "Ticks abandoned because generation or serialization failed"),
		delivered:      counter("delivered_total", "Records acknowledged by the broker"),
		deliveryFailed: counter("delivery_failures_total", "Records the broker client gave up on"),
	}
}

func (m *Metrics) Generated()      { m.generated.Inc() }
func (m *Metrics) TickFailed()     { m.tickFailed.Inc() }
func (m *Metrics) Delivered()      { m.delivered.Inc() }
func (m *Metrics) DeliveryFailed() { m.deliveryFailed.Inc() }

// Handler serves client metrics on /metrics and generator counters on /metrics/generator.
func (m *Metrics) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Kafka.Handler())
	mux.Handle("/metrics/generator", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
	return mux
}

// Serve exposes Handler on addr until ctx is done.
func (m *Metrics) Serve(ctx context.Context, addr string, logger *zap.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           m.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("serving metrics", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
