package game

import "fmt"

// Phase is which layer currently owns input.
type Phase int

const (
	// PhasePlaying routes input to the active scene.
	PhasePlaying Phase = iota
	// PhaseChoice shows the choice prompt over a paused scene.
	PhaseChoice
	// PhaseLetter shows the closing letter. It is the last phase.
	PhaseLetter
)

func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhaseChoice:
		return "choice"
	case PhaseLetter:
		return "letter"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}
