package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
)

const namespace = "tictactoe"

const (
	resultApplied = "applied"
	resultIgnored = "ignored"

	outcomeDraw = "draw"
)

// Recorder counts game events on its own registry.
type Recorder struct {
	registry *prometheus.Registry

	sessionsStarted prometheus.Counter
	sessionsEnded   prometheus.Counter
	moves           *prometheus.CounterVec
	jumps           prometheus.Counter
	gamesFinished   *prometheus.CounterVec
}

func New() *Recorder {
	that := &Recorder{
		registry: prometheus.NewRegistry(),
		sessionsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_started_total",
			Help:      "Number of game sessions started.",
		}),
		sessionsEnded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_ended_total",
			Help:      "Number of game sessions ended explicitly.",
		}),
		moves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "moves_total",
			Help:      "Number of move requests by result.",
		}, []string{"result"}),
		jumps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "jumps_total",
			Help:      "Number of jumps through the move history.",
		}),
		gamesFinished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_finished_total",
			Help:      "Number of moves that finished a game, by outcome.",
		}, []string{"outcome"}),
	}

	that.registry.MustRegister(
		that.sessionsStarted,
		that.sessionsEnded,
		that.moves,
		that.jumps,
		that.gamesFinished,
	)

	return that
}

func (that *Recorder) SessionStarted() {
	that.sessionsStarted.Inc()
}

func (that *Recorder) SessionEnded() {
	that.sessionsEnded.Inc()
}

func (that *Recorder) Move(applied bool) {
	if applied {
		that.moves.WithLabelValues(resultApplied).Inc()
		return
	}

	that.moves.WithLabelValues(resultIgnored).Inc()
}

func (that *Recorder) Jump() {
	that.jumps.Inc()
}

// GameFinished records a win for winner, or a draw when winner is empty.
func (that *Recorder) GameFinished(winner entity.Cell) {
	outcome := outcomeDraw
	if !winner.IsEmpty() {
		outcome = lowerMark(winner)
	}

	that.gamesFinished.WithLabelValues(outcome).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (that *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(that.registry, promhttp.HandlerOpts{})
}

func lowerMark(cell entity.Cell) string {
	if cell == entity.PlayerX {
		return "x"
	}

	return "o"
}
