// Package signal carries the four messages exchanged between the scene core
// and the host shell. Each side gets a typed endpoint that can only emit the
// signals it owns.
package signal

import (
	"fmt"
	"log"
	"sync"
)

// Kind identifies a signal.
type Kind int

const (
	// ShowChoice asks the shell to present the binary choice prompt.
	ShowChoice Kind = iota + 1
	// ChoiceMade tells the core the user confirmed the choice.
	ChoiceMade
	// ShowLetter asks the shell to present the closing letter.
	ShowLetter
	// VirtualJoystick carries the on-screen joystick axis.
	VirtualJoystick
)

func (k Kind) String() string {
	switch k {
	case ShowChoice:
		return "show-choice"
	case ChoiceMade:
		return "choice-made"
	case ShowLetter:
		return "show-letter"
	case VirtualJoystick:
		return "virtual-joystick"
	default:
		return fmt.Sprintf("signal(%d)", int(k))
	}
}

// Signal is one message. X and Y are only meaningful for VirtualJoystick.
type Signal struct {
	Kind Kind
	X, Y float64
}

// DefaultBuffer is the per-direction queue size.
const DefaultBuffer = 8

// Link joins one core endpoint to one shell endpoint.
type Link struct {
	toShell chan Signal
	toCore  chan Signal

	mu       sync.Mutex
	joystick *Signal // latest unread axis
	dropped  int
}

// NewLink creates a link with the given queue size per direction.
func NewLink(buffer int) *Link {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Link{
		toShell: make(chan Signal, buffer),
		toCore:  make(chan Signal, buffer),
	}
}

// Core returns the endpoint used by scenes.
func (l *Link) Core() *Core { return &Core{link: l} }

// Shell returns the endpoint used by the host overlays.
func (l *Link) Shell() *Shell { return &Shell{link: l} }

// Dropped returns how many signals were discarded because a queue was full.
func (l *Link) Dropped() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.dropped
}

func (l *Link) send(ch chan Signal, s Signal) bool {
	select {
	case ch <- s:
		return true
	default:
		l.mu.Lock()
		l.dropped++
		l.mu.Unlock()
		log.Printf("signal: queue full, dropped %s", s.Kind)
		return false
	}
}

func poll(ch chan Signal) (Signal, bool) {
	select {
	case s := <-ch:
		return s, true
	default:
		return Signal{}, false
	}
}

// Core emits ShowChoice and ShowLetter and receives shell input.
type Core struct {
	link *Link
}

// ShowChoice asks the shell for the choice prompt.
func (c *Core) ShowChoice() bool {
	return c.link.send(c.link.toShell, Signal{Kind: ShowChoice})
}

// ShowLetter asks the shell for the closing letter.
func (c *Core) ShowLetter() bool {
	return c.link.send(c.link.toShell, Signal{Kind: ShowLetter})
}

// Poll returns the next inbound signal without blocking. Queued signals
// come first, then the latest joystick axis if one arrived since the last
// poll.
func (c *Core) Poll() (Signal, bool) {
	if s, ok := poll(c.link.toCore); ok {
		return s, true
	}
	c.link.mu.Lock()
	defer c.link.mu.Unlock()
	if c.link.joystick != nil {
		s := *c.link.joystick
		c.link.joystick = nil
		return s, true
	}
	return Signal{}, false
}

// Shell emits ChoiceMade and joystick updates and receives core requests.
type Shell struct {
	link *Link
}

// ChoiceMade reports the user's confirmation.
func (s *Shell) ChoiceMade() bool {
	return s.link.send(s.link.toCore, Signal{Kind: ChoiceMade})
}

// Joystick publishes the current axis. Unread updates are replaced, so the
// core only ever sees the newest value.
func (s *Shell) Joystick(x, y float64) {
	s.link.mu.Lock()
	s.link.joystick = &Signal{Kind: VirtualJoystick, X: x, Y: y}
	s.link.mu.Unlock()
}

// Poll returns the next core request without blocking.
func (s *Shell) Poll() (Signal, bool) {
	return poll(s.link.toShell)
}
