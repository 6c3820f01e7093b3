package observability

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/anish9011/plant/internal/platform/logger"
)

// Metrics holds the storefront's process-wide counters. A nil *Metrics is
// valid and records nothing, so call sites never need to check Enabled.
type Metrics struct {
	apiRequests *CounterVec
	apiLatency  *HistogramVec
	apiInflight *Gauge
	apiErrors   *CounterVec

	cartAdds         *CounterVec
	ordersPlaced     *CounterVec
	orderValue       *CounterVec
	orderLines       *HistogramVec
	checkoutRejected *CounterVec
	productCache     *CounterVec

	dbStats   *GaugeVec
	redisUp   *Gauge
	redisPing *Gauge

	scrapeEvery time.Duration
}

var (
	initOnce sync.Once
	instance *Metrics
)

// Init builds the process metrics once. It returns nil when disabled.
func Init(enabled bool, scrapeEvery time.Duration) *Metrics {
	if !enabled {
		return nil
	}
	initOnce.Do(func() {
		instance = newMetrics(scrapeEvery)
	})
	return instance
}

func Current() *Metrics {
	return instance
}

func newMetrics(scrapeEvery time.Duration) *Metrics {
	if scrapeEvery <= 0 {
		scrapeEvery = 10 * time.Second
	}
	return &Metrics{
		apiRequests: NewCounterVec("plant_api_requests_total", "API requests by method/route/status.", []string{"method", "route", "status"}),
		apiLatency: NewHistogramVec(
			"plant_api_request_duration_seconds",
			"API request latency in seconds by method/route.",
			[]string{"method", "route"},
			[]float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		),
		apiInflight: NewGauge("plant_api_inflight_requests", "In-flight API requests."),
		apiErrors:   NewCounterVec("plant_api_errors_total", "API responses with status >= 500 by route.", []string{"route"}),

		cartAdds:     NewCounterVec("plant_cart_adds_total", "Cart add attempts by outcome.", []string{"outcome"}),
		ordersPlaced: NewCounterVec("plant_orders_placed_total", "Orders placed by payment method.", []string{"payment_method"}),
		orderValue:   NewCounterVec("plant_order_value_total", "Sum of order totals by payment method.", []string{"payment_method"}),
		orderLines: NewHistogramVec(
			"plant_order_lines",
			"Line items per placed order.",
			nil,
			[]float64{1, 2, 3, 5, 8, 13, 21},
		),
		checkoutRejected: NewCounterVec("plant_checkout_rejected_total", "Checkout submissions rejected by code.", []string{"code"}),
		productCache:     NewCounterVec("plant_product_cache_total", "Product cache lookups by result.", []string{"result"}),

		dbStats:   NewGaugeVec("plant_db_pool", "database/sql pool statistics.", []string{"stat"}),
		redisUp:   NewGauge("plant_redis_up", "1 when the last Redis ping succeeded."),
		redisPing: NewGauge("plant_redis_ping_seconds", "Latency of the last Redis ping."),

		scrapeEvery: scrapeEvery,
	}
}

func (m *Metrics) ObserveAPI(method, route string, status int, dur time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.apiRequests.Inc(method, route, strconv.Itoa(status))
	m.apiLatency.Observe(dur.Seconds(), method, route)
	if status >= http.StatusInternalServerError {
		m.apiErrors.Inc(route)
	}
}

func (m *Metrics) InflightInc() {
	if m != nil {
		m.apiInflight.Add(1)
	}
}

func (m *Metrics) InflightDec() {
	if m != nil {
		m.apiInflight.Add(-1)
	}
}

// IncCartAdd records "created", "already_in_cart" or "rejected".
func (m *Metrics) IncCartAdd(outcome string) {
	if m == nil {
		return
	}
	m.cartAdds.Inc(outcome)
}

func (m *Metrics) ObserveOrderPlaced(paymentMethod string, total float64, lines int) {
	if m == nil {
		return
	}
	m.ordersPlaced.Inc(paymentMethod)
	m.orderValue.Add(total, paymentMethod)
	m.orderLines.Observe(float64(lines))
}

func (m *Metrics) IncCheckoutRejected(code string) {
	if m == nil {
		return
	}
	m.checkoutRejected.Inc(code)
}

// IncProductCache records "hit", "miss" or "error".
func (m *Metrics) IncProductCache(result string) {
	if m == nil {
		return
	}
	m.productCache.Inc(result)
}

func (m *Metrics) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m == nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "text/plain; version=0.0.4")
		_ = m.WritePrometheus(w)
	})
}

func (m *Metrics) WritePrometheus(w io.Writer) error {
	if m == nil {
		return nil
	}
	writers := []interface{ WritePrometheus(io.Writer) error }{
		m.apiRequests, m.apiLatency, m.apiInflight, m.apiErrors,
		m.cartAdds, m.ordersPlaced, m.orderValue, m.orderLines,
		m.checkoutRejected, m.productCache,
		m.dbStats, m.redisUp, m.redisPing,
	}
	for _, mw := range writers {
		if err := mw.WritePrometheus(w); err != nil {
			return err
		}
	}
	return nil
}

// StartDBCollector samples the connection pool until ctx is done.
func (m *Metrics) StartDBCollector(ctx context.Context, log *logger.Logger, db *gorm.DB) {
	if m == nil || db == nil {
		return
	}
	go func() {
		ticker := time.NewTicker(m.scrapeEvery)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				sqlDB, err := db.DB()
				if err != nil {
					log.Warn("metrics: db stats unavailable", "error", err)
					continue
				}
				stats := sqlDB.Stats()
				m.dbStats.Set(float64(stats.OpenConnections), "open_connections")
				m.dbStats.Set(float64(stats.InUse), "in_use")
				m.dbStats.Set(float64(stats.Idle), "idle")
				m.dbStats.Set(float64(stats.WaitCount), "wait_count")
				m.dbStats.Set(stats.WaitDuration.Seconds(), "wait_duration_seconds")
			}
		}
	}()
}

// StartRedisCollector pings the cache client until ctx is done.
func (m *Metrics) StartRedisCollector(ctx context.Context, log *logger.Logger, rdb redis.UniversalClient) {
	if m == nil || rdb == nil {
		return
	}
	go func() {
		ticker := time.NewTicker(m.scrapeEvery)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				start := time.Now()
				if err := rdb.Ping(ctx).Err(); err != nil {
					m.redisUp.Set(0)
					log.Warn("metrics: redis ping failed", "error", err)
					continue
				}
				m.redisUp.Set(1)
				m.redisPing.Set(time.Since(start).Seconds())
			}
		}
	}()
}
