package game

import (
	"fmt"

	"github.com/iamasit07/connect4/internal/domain"
)

// dropSamples is how many drop sounds exist, one per landing row of a
// standard board. Sample 0 is the shortest drop (top row).
const dropSamples = 6

// Cue names the sound the page plays for a drop. Each row has two copies of
// its sample so rapid drops by alternating players never cut each other off.
type Cue struct {
	Sample  int    `json:"sample"`
	Variant int    `json:"variant"`
	Asset   string `json:"asset"`
}

func CueFor(move domain.MoveResult) Cue {
	sample := min(move.Row, dropSamples-1)
	variant := 0
	suffix := ""
	if move.Player == domain.Player2 {
		variant = 1
		suffix = "b"
	}
	return Cue{
		Sample:  sample,
		Variant: variant,
		Asset:   fmt.Sprintf("audio/Sound%d%s.mp3", sample, suffix),
	}
}
