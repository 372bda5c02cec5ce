// Package dialog runs scripted conversations: a typewriter reveal per line,
// advance-on-input with skip, and a completion callback.
package dialog

import (
	"errors"
	"time"

	"chosenoffset.com/lookingback/internal/core/timers"
)

// RevealInterval is the delay between revealed runes.
const RevealInterval = 30 * time.Millisecond

// ErrRunActive is returned by Start while another run is still going.
var ErrRunActive = errors.New("dialog: run already active")

// Entry is one line of dialog.
type Entry struct {
	Speaker string `yaml:"name"`
	Text    string `yaml:"text"`
}

// Phase is the sequencer's state.
type Phase int

const (
	Idle Phase = iota
	Typing
	AwaitingAdvance
)

func (p Phase) String() string {
	switch p {
	case Typing:
		return "typing"
	case AwaitingAdvance:
		return "awaiting"
	default:
		return "idle"
	}
}

// State is the sequencer's observable state. Index is meaningful only when
// Phase is not Idle.
type State struct {
	Phase Phase
	Index int
}

// Active reports whether a run is in progress.
func (s State) Active() bool {
	return s.Phase != Idle
}

// SFX is the sound hook used while typing and advancing.
type SFX interface {
	PlayTypeSFX()
	PlayAdvanceSFX()
}

// Sequencer is the dialog state machine.
type Sequencer struct {
	timers *timers.Scheduler
	sfx    SFX

	entries    []Entry
	onComplete func()
	state      State
	line       []rune
	revealed   int
	reveal     timers.ID
}

// NewSequencer creates an idle sequencer. sfx may be nil.
func NewSequencer(t *timers.Scheduler, sfx SFX) *Sequencer {
	return &Sequencer{timers: t, sfx: sfx}
}

// Start begins a run. An empty run completes immediately.
func (s *Sequencer) Start(entries []Entry, onComplete func()) error {
	if s.state.Active() {
		return ErrRunActive
	}
	s.entries = entries
	s.onComplete = onComplete
	s.showEntry(0)
	return nil
}

func (s *Sequencer) showEntry(i int) {
	s.cancelReveal()
	if i >= len(s.entries) {
		done := s.onComplete
		s.Hide()
		if done != nil {
			done()
		}
		return
	}

	s.state = State{Phase: Typing, Index: i}
	s.line = []rune(s.entries[i].Text)
	s.revealed = 0
	if len(s.line) == 0 {
		s.state.Phase = AwaitingAdvance
		return
	}
	s.reveal = s.timers.Every(RevealInterval, s.revealNext)
}

func (s *Sequencer) revealNext() {
	if s.state.Phase != Typing {
		s.cancelReveal()
		return
	}
	if s.revealed < len(s.line) {
		s.revealed++
		if s.revealed%2 == 0 && s.sfx != nil {
			s.sfx.PlayTypeSFX()
		}
	}
	if s.revealed >= len(s.line) {
		s.state.Phase = AwaitingAdvance
		s.cancelReveal()
	}
}

func (s *Sequencer) cancelReveal() {
	if s.reveal != 0 {
		s.timers.Cancel(s.reveal)
		s.reveal = 0
	}
}

// Advance skips the typewriter, or moves to the next line once the current
// one is fully shown. It does nothing while idle.
func (s *Sequencer) Advance() {
	switch s.state.Phase {
	case Typing:
		s.cancelReveal()
		s.revealed = len(s.line)
		s.state.Phase = AwaitingAdvance
	case AwaitingAdvance:
		if s.sfx != nil {
			s.sfx.PlayAdvanceSFX()
		}
		s.showEntry(s.state.Index + 1)
	}
}

// Update applies this tick's advance input and returns the resulting state.
func (s *Sequencer) Update(advancePressed bool) State {
	if advancePressed {
		s.Advance()
	}
	return s.state
}

// Hide ends the run without invoking the completion callback.
func (s *Sequencer) Hide() {
	s.cancelReveal()
	s.state = State{}
	s.entries = nil
	s.onComplete = nil
	s.line = nil
	s.revealed = 0
}

// State returns the current state.
func (s *Sequencer) State() State { return s.state }

// Active reports whether a run is in progress.
func (s *Sequencer) Active() bool { return s.state.Active() }

// Index returns the current line index.
func (s *Sequencer) Index() int { return s.state.Index }

// Speaker returns the speaker of the current line.
func (s *Sequencer) Speaker() string {
	if !s.state.Active() || s.state.Index >= len(s.entries) {
		return ""
	}
	return s.entries[s.state.Index].Speaker
}

// Text returns the revealed part of the current line.
func (s *Sequencer) Text() string {
	if s.revealed > len(s.line) {
		return string(s.line)
	}
	return string(s.line[:s.revealed])
}

// PromptVisible reports whether the advance prompt should be shown.
func (s *Sequencer) PromptVisible() bool {
	return s.state.Phase == AwaitingAdvance
}

// RevealPending reports whether a reveal timer is scheduled.
func (s *Sequencer) RevealPending() bool {
	return s.reveal != 0 && s.timers.Pending(s.reveal)
}
