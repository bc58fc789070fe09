package main

import (
	"chessbot/engine"
	"chessbot/experiments"
	"chessbot/experiments/metrics"
	"chessbot/game"
	"chessbot/meta"
	"chessbot/searcher"
	"chessbot/searcher/agent"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	fen := flag.String("fen", "", "Position to search, defaults to the starting position")
	depth := flag.Int("depth", meta.DEPTH, "Search depth below each root move")
	modeName := flag.String("mode", searcher.Literal.String(), "Terminal scoring: literal or symmetric")
	materialOnly := flag.Bool("material", false, "Score material only, without piece-square tables")
	budget := flag.Duration("budget", meta.TIME_BUDGET, "Informational time budget per move")
	serve := flag.String("serve", "", "Serve the agent over HTTP on this port")
	selfPlay := flag.Bool("selfplay", false, "Play a game against itself from -fen")
	maxTurns := flag.Int("maxturns", meta.MAX_TURNS, "Plies after which self-play stops")
	experiment := flag.String("experiment", "", "Run an experiment: depth, mode or evaluation")
	out := flag.String("out", "experiments", "Directory for experiment records")
	debug := flag.Bool("debug", false, "Log every root move")
	flag.Parse()

	setupLogging(*debug)

	mode, err := searcher.ParseMode(*modeName)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid flag")
	}
	config := metrics.AgentConfig{Depth: *depth, Mode: mode, MaterialOnly: *materialOnly, Budget: *budget}

	switch {
	case *experiment != "":
		err = runExperiment(*experiment, *out)
	case *serve != "":
		err = agent.StartAgentServer(*serve, experiments.CreateAgent(config, 0))
	case *selfPlay:
		err = runSelfPlay(*fen, config, *maxTurns)
	default:
		err = findMove(*fen, config)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("failed")
	}
}

func setupLogging(debug bool) {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(output).Level(level).With().Timestamp().Logger()
	log.Debug().Msg("debug logging is on")
}

func newBoard(fen string) (*game.Board, error) {
	if fen == "" {
		return game.NewStartingBoard(), nil
	}
	return game.NewBoard(fen)
}

func findMove(fen string, config metrics.AgentConfig) error {
	board, err := newBoard(fen)
	if err != nil {
		return err
	}
	move, metric, err := experiments.CreateAgent(config, 0).FindMove(board, config.Budget)
	if err != nil {
		return err
	}
	log.Info().Msgf("searched %d nodes in %s", metric.Nodes, metric.Duration)
	fmt.Println(move)
	return nil
}

func runSelfPlay(fen string, config metrics.AgentConfig, maxTurns int) error {
	board, err := newBoard(fen)
	if err != nil {
		return err
	}
	// Use the same config for both players for the same playing strength
	a := experiments.CreateAgent(config, 0)
	result, err := engine.LocalEngine(board, [2]agent.Agent{a, a}, engine.WithMaxTurns(maxTurns), engine.WithBudget(config.Budget)).Run()
	if err != nil {
		return err
	}

	moves := make([]string, len(result.Moves))
	for i, m := range result.Moves {
		moves[i] = m.Move
	}
	fmt.Println(strings.Join(moves, " "))
	fmt.Printf("%s after %d moves: %s\n", result.Outcome, result.Game.TotalMoves, result.Game.FinalFEN)
	return nil
}

func runExperiment(name, out string) error {
	x, err := experiments.ByName(name)
	if err != nil {
		return err
	}
	summaries, dir, err := x.Run(out)
	if err != nil {
		return err
	}
	for i, s := range summaries {
		fmt.Printf("agent %d vs agent %d: %+v\n", x.MatchUps[i][0].ID, x.MatchUps[i][1].ID, s)
	}
	fmt.Printf("records stored in %s\n", dir)
	return nil
}
