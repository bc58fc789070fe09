package agent

import (
	"chessbot/game"
	"chessbot/searcher"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// A FEN is under 100 bytes; anything near this is not a move request
const maxRequestBytes = 1 << 12

type findMoveRequest struct {
	FEN      string `json:"fen"`
	BudgetMS int64  `json:"budget_ms"`
}

type findMoveResponse struct {
	Move    string        `json:"move"`
	Score   float64       `json:"score"`
	Metrics searchMetrics `json:"metrics"`
}

type searchMetrics struct {
	Depth      int     `json:"depth"`
	Mode       string  `json:"mode"`
	Nodes      int     `json:"nodes"`
	Leaves     int     `json:"leaves"`
	Cutoffs    int     `json:"cutoffs"`
	DurationMS float64 `json:"duration_ms"`
	OverBudget bool    `json:"over_budget"`
}

// NewServer returns a handler serving POST /findmove. Every request searches its own board, so
// requests may be served concurrently as long as a is safe for concurrent use.
func NewServer(a Agent) http.Handler {
	// Create a local mux rather than using the global DefaultServeMux
	mux := http.NewServeMux()
	mux.HandleFunc("/findmove", func(w http.ResponseWriter, r *http.Request) {
		handleFindMove(a, w, r)
	})
	return mux
}

// StartAgentServer serves a on the given port until the listener fails
func StartAgentServer(port string, a Agent) error {
	log.Info().Msgf("starting agent server on :%s...", port)
	return http.ListenAndServe(":"+port, NewServer(a))
}

func handleFindMove(a Agent, w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var payload findMoveRequest
	body := http.MaxBytesReader(w, r.Body, maxRequestBytes)
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "request too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return
	}
	if payload.FEN == "" {
		http.Error(w, "bad request: missing fen", http.StatusBadRequest)
		return
	}
	if payload.BudgetMS < 0 {
		http.Error(w, "bad request: negative budget_ms", http.StatusBadRequest)
		return
	}

	board, err := game.NewBoard(payload.FEN)
	if err != nil {
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return
	}

	move, metric, err := a.FindMove(board, time.Duration(payload.BudgetMS)*time.Millisecond)
	if errors.Is(err, searcher.ErrNoLegalMove) {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	if err != nil {
		log.Error().Err(err).Str("fen", payload.FEN).Msg("failed to find move")
		http.Error(w, "failed to find move: "+err.Error(), http.StatusInternalServerError)
		return
	}
	log.Info().Str("fen", payload.FEN).Str("move", move.String()).Msg("served move")

	response := findMoveResponse{
		Move:  move.String(),
		Score: finite(metric.Score),
		Metrics: searchMetrics{
			Depth:      metric.Depth,
			Mode:       metric.Mode.String(),
			Nodes:      metric.Nodes,
			Leaves:     metric.Leaves,
			Cutoffs:    metric.Cutoffs,
			DurationMS: float64(metric.Duration) / float64(time.Millisecond),
			OverBudget: metric.OverBudget(),
		},
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "failed to encode move: "+err.Error(), http.StatusInternalServerError)
	}
}

// finite maps the infinite scores of unevaluated mate lines to the mate score, which JSON can carry
func finite(score float64) float64 {
	if math.IsInf(score, 1) {
		return searcher.MateScore
	}
	if math.IsInf(score, -1) {
		return -searcher.MateScore
	}
	return score
}
