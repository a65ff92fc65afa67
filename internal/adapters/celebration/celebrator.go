package celebration

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/examtrack/core/internal/domain/entities"
	"github.com/examtrack/core/internal/infrastructure/logger"
	"github.com/examtrack/core/internal/ports"
)

// Announcer is the server-side stand-in for the UI's confetti: it records
// each completion of a today-item in the log and a counter. Strictly
// fire-and-forget; it can never fail a toggle.
type Announcer struct {
	logger  *logger.Logger
	counter *prometheus.CounterVec
}

// NewAnnouncer creates a celebrator and registers its metric with the
// given registerer. A nil registerer skips metrics.
func NewAnnouncer(appLogger *logger.Logger, reg prometheus.Registerer) ports.Celebrator {
	a := &Announcer{
		logger: appLogger,
		counter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "examtrack_celebrations_total",
				Help: "Number of today-items completed, by item kind",
			},
			[]string{"kind"},
		),
	}
	if reg != nil {
		reg.MustRegister(a.counter)
	}
	return a
}

func (a *Announcer) Celebrate(item entities.ScheduledItem) {
	a.counter.WithLabelValues(string(item.Kind)).Inc()
	a.logger.Info("Item completed",
		"item_id", item.ID,
		"label", item.Label,
		"course", item.CourseName,
		"kind", item.Kind,
	)
}

// Noop is a celebrator that does nothing, for contexts without metrics or
// logging.
type Noop struct{}

func (Noop) Celebrate(entities.ScheduledItem) {}
