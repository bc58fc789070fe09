// meta/meta.go
package meta

import "time"

// DEPTH defines the search depth below each root move.
const DEPTH = 3

// MAX_TURNS defines the number of plies after which a game is stopped.
const MAX_TURNS = 300

// TIME_BUDGET defines the informational time budget per move.
const TIME_BUDGET = time.Second

// EPSILON defines the probability of a random move for exploring agents.
const EPSILON = 0.1

// NUM_GAMES defines the number of games per match up.
const NUM_GAMES = 10

// PORT defines the default agent server port.
const PORT = "8080"
