package experiments

import (
	"chessbot/engine"
	"chessbot/experiments/metrics"
	"chessbot/game"
	"chessbot/meta"
	"chessbot/searcher"
	"chessbot/searcher/agent"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Experiment plays NumGames games per match up, alternating colors, and stores the records
type Experiment struct {
	Name     string
	Configs  []metrics.AgentConfig
	MatchUps [][2]metrics.AgentConfig
	NumGames int
	MaxTurns int
}

// Summary counts game outcomes per match up from the first config's point of view
type Summary struct {
	Wins, Losses, Draws, Unfinished int
}

func newExperiment(name string, baseline metrics.AgentConfig, configs []metrics.AgentConfig) Experiment {
	// Each matchup pairs the baseline agent against a challenger
	matchUps := [][2]metrics.AgentConfig{}
	for _, config := range configs {
		matchUps = append(matchUps, [2]metrics.AgentConfig{baseline, config})
	}
	return Experiment{
		Name:     name,
		Configs:  append([]metrics.AgentConfig{baseline}, configs...),
		MatchUps: matchUps,
		NumGames: meta.NUM_GAMES,
		MaxTurns: meta.MAX_TURNS,
	}
}

// DepthExperiment pits the default depth against shallower searches
func DepthExperiment() Experiment {
	baseline := metrics.AgentConfig{ID: 0, Depth: meta.DEPTH, Epsilon: meta.EPSILON, Budget: meta.TIME_BUDGET}
	return newExperiment("depth", baseline, []metrics.AgentConfig{
		{ID: 1, Depth: 1, Epsilon: meta.EPSILON, Budget: meta.TIME_BUDGET},
		{ID: 2, Depth: 2, Epsilon: meta.EPSILON, Budget: meta.TIME_BUDGET},
	})
}

// ModeExperiment pits literal terminal scoring against symmetric terminal scoring
func ModeExperiment() Experiment {
	baseline := metrics.AgentConfig{ID: 0, Depth: meta.DEPTH, Mode: searcher.Literal, Epsilon: meta.EPSILON, Budget: meta.TIME_BUDGET}
	return newExperiment("mode", baseline, []metrics.AgentConfig{
		{ID: 1, Depth: meta.DEPTH, Mode: searcher.Symmetric, Epsilon: meta.EPSILON, Budget: meta.TIME_BUDGET},
	})
}

// EvaluationExperiment pits piece-square tables against material only scoring
func EvaluationExperiment() Experiment {
	baseline := metrics.AgentConfig{ID: 0, Depth: meta.DEPTH, MaterialOnly: true, Epsilon: meta.EPSILON, Budget: meta.TIME_BUDGET}
	return newExperiment("evaluation", baseline, []metrics.AgentConfig{
		{ID: 1, Depth: meta.DEPTH, Epsilon: meta.EPSILON, Budget: meta.TIME_BUDGET},
	})
}

func ByName(name string) (Experiment, error) {
	switch name {
	case "depth":
		return DepthExperiment(), nil
	case "mode":
		return ModeExperiment(), nil
	case "evaluation":
		return EvaluationExperiment(), nil
	default:
		return Experiment{}, fmt.Errorf("unknown experiment %q: want depth, mode or evaluation", name)
	}
}

// Run plays every match up and writes the records under root. It returns the summary of each
// match up and the directory holding the records.
func (x Experiment) Run(root string) ([]Summary, string, error) {
	// Run a number of games for each matchup
	count := 0
	summaries := make([]Summary, len(x.MatchUps))
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", x.Name)

	for mi, matchUp := range x.MatchUps {
		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(x.MatchUps), matchUp[0], matchUp[1])

		for i := 0; i < x.NumGames; i++ {
			count++
			// Alternate the starting agent
			white, black := matchUp[0], matchUp[1]
			if i%2 == 1 {
				white, black = black, white
			}

			result, err := x.runGame(white, black, uint64(count))
			if err != nil {
				return nil, "", fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
			}
			summaries[mi].add(result.Outcome, i%2 == 1)

			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				White:      white.ID,
				Black:      black.ID,
				GameMetric: result.Game,
			})
			for _, mm := range result.Moves {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed matchup %d of %d game %d with outcome: %s", mi+1, len(x.MatchUps), i+1, result.Outcome)
		}
		log.Info().Msgf("completed matchup %d of %d: %+v", mi+1, len(x.MatchUps), summaries[mi])
	}

	log.Info().Msgf("completed %s experiment", x.Name)

	dir, err := x.store(root, gameRecords, moveRecords)
	if err != nil {
		return nil, "", err
	}
	return summaries, dir, nil
}

func (x Experiment) store(root string, gameRecords []metrics.GameRecord, moveRecords []metrics.MoveRecord) (string, error) {
	// Store experiment metadata
	writer, err := metrics.NewWriter(root, x.Name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteAgentConfigs(x.Configs); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	// Store experiment results
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")

	return writer.Dir(), nil
}

// runGame plays a single game from the starting position
func (x Experiment) runGame(white, black metrics.AgentConfig, seed uint64) (engine.Result, error) {
	agents := [2]agent.Agent{
		game.White: CreateAgent(white, seed),
		game.Black: CreateAgent(black, seed+1<<32),
	}
	options := []engine.Option{engine.WithBudget(max(white.Budget, black.Budget))}
	if x.MaxTurns > 0 {
		options = append(options, engine.WithMaxTurns(x.MaxTurns))
	}
	return engine.LocalEngine(game.NewStartingBoard(), agents, options...).Run()
}

// CreateAgent builds the agent described by config; seed drives its random moves
func CreateAgent(config metrics.AgentConfig, seed uint64) agent.Agent {
	options := []searcher.Option{
		searcher.WithDepth(config.Depth),
		searcher.WithMode(config.Mode),
		searcher.WithMetrics(),
	}
	if config.MaterialOnly {
		evaluator := searcher.NewEvaluator(searcher.WithTables(nil), searcher.WithTerminalMode(config.Mode))
		options = append(options, searcher.WithEvaluationFn(evaluator.Evaluate))
	}

	ab := searcher.NewAlphaBeta(options...)
	if config.Epsilon > 0 {
		return agent.NewExploringAgent(ab, config.Epsilon, seed)
	}
	return agent.NewEvaluationAgent(ab)
}

func (s *Summary) add(outcome engine.Outcome, swapped bool) {
	switch outcome {
	case engine.Draw:
		s.Draws++
	case engine.Unfinished:
		s.Unfinished++
	case engine.WhiteWins:
		if swapped {
			s.Losses++
		} else {
			s.Wins++
		}
	case engine.BlackWins:
		if swapped {
			s.Wins++
		} else {
			s.Losses++
		}
	}
}

// Played returns the number of games counted
func (s Summary) Played() int {
	return s.Wins + s.Losses + s.Draws + s.Unfinished
}
