package metrics

import (
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// AccrualMetrics tracks the state of the protocol's lazy-accrual pools (the
// debt Book, the savings Book) as they compound.
type AccrualMetrics struct {
	poolTotal          *prometheus.GaugeVec
	rewardsDistributed *prometheus.GaugeVec
}

var (
	accrualOnce     sync.Once
	accrualRegistry *AccrualMetrics
)

// Accrual returns the lazily-initialised accrual pool metrics registry.
func Accrual() *AccrualMetrics {
	accrualOnce.Do(func() {
		accrualRegistry = &AccrualMetrics{
			poolTotal: prometheus.NewGaugeVec(prometheus.GaugeOpts{
				Name: "covenant_book_pool_total",
				Help: "Current principal total held by a Book, after its most recent accrual.",
			}, []string{"book"}),
			rewardsDistributed: prometheus.NewGaugeVec(prometheus.GaugeOpts{
				Name: "covenant_book_rewards_distributed",
				Help: "Cumulative schedule-driven rewards a Book has distributed since inception.",
			}, []string{"book"}),
		}
		prometheus.MustRegister(accrualRegistry.poolTotal, accrualRegistry.rewardsDistributed)
	})
	return accrualRegistry
}

// SetPoolTotal records the principal total for the named Book.
func (m *AccrualMetrics) SetPoolTotal(book string, total float64) {
	if m == nil {
		return
	}
	m.poolTotal.WithLabelValues(normaliseBookName(book)).Set(total)
}

// SetRewardsDistributed records the cumulative rewards for the named Book.
func (m *AccrualMetrics) SetRewardsDistributed(book string, rewards float64) {
	if m == nil {
		return
	}
	m.rewardsDistributed.WithLabelValues(normaliseBookName(book)).Set(rewards)
}

func normaliseBookName(book string) string {
	trimmed := strings.TrimSpace(book)
	if trimmed == "" {
		return "unknown"
	}
	return strings.ToLower(trimmed)
}
