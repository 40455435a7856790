// Package cave implements the linear cave adventure as a finite state machine.
package cave

import "errors"

// ErrIncompleteScript is returned when a script leaves a text empty.
var ErrIncompleteScript = errors.New("cave script is missing a text")

// State is a position in the adventure.
type State string

const (
	StateStart    State = "start"
	StateRoom     State = "room"
	StateSitting  State = "sitting"
	StateStanding State = "standing"
)

// Choices accepted by the machine.
const (
	ChoiceLeft    = "left"
	ChoiceRight   = "right"
	ChoiceSitDown = "sit down"
	ChoiceStandUp = "stand up"
	ChoiceRestart = "restart"
)

// Game is the full state of one adventure.
type Game struct {
	State          State
	Message        string
	Choices        []string
	PreviousChoice string // set on the start→room step only
}

// Terminal reports whether only restart is accepted.
func (g Game) Terminal() bool {
	return g.State == StateSitting || g.State == StateStanding
}

// Machine applies choices using the texts of its script.
type Machine struct {
	Script *Script
}

// NewMachine returns a machine for script, or the default script when nil.
func NewMachine(script *Script) *Machine {
	if script == nil {
		script = DefaultScript()
	}
	return &Machine{Script: script}
}

var defaultMachine = NewMachine(nil)

// New starts an adventure with the built-in script.
func New() Game {
	return defaultMachine.New()
}

// Advance applies choice to a copy of g with the built-in script.
func Advance(g Game, choice string) Game {
	return defaultMachine.Advance(g, choice)
}

// New starts an adventure.
func (m *Machine) New() Game {
	return Game{
		State:   StateStart,
		Message: m.Script.Welcome,
		Choices: []string{ChoiceLeft, ChoiceRight},
	}
}

// Advance returns the game after choice; g is left untouched.
func (m *Machine) Advance(g Game, choice string) Game {
	next := g
	next.Choices = append([]string(nil), g.Choices...)
	m.MakeChoice(&next, choice)
	return next
}

// MakeChoice applies choice to g in place. Unknown choices only change the message.
func (m *Machine) MakeChoice(g *Game, choice string) {
	s := m.Script
	switch g.State {
	case StateStart:
		if choice != ChoiceLeft && choice != ChoiceRight {
			g.Message = s.InvalidStart
			return
		}
		g.State = StateRoom
		g.Message = s.Room
		g.Choices = []string{ChoiceSitDown, ChoiceStandUp}
		g.PreviousChoice = choice

	case StateRoom:
		switch choice {
		case ChoiceSitDown:
			g.State = StateSitting
			g.Message = s.Sitting
		case ChoiceStandUp:
			g.State = StateStanding
			g.Message = s.StandingStone
			if g.PreviousChoice == ChoiceRight {
				g.Message = s.StandingWizard
			}
		default:
			g.Message = s.InvalidRoom
			return
		}
		g.Choices = []string{ChoiceRestart}

	case StateSitting, StateStanding:
		if choice == ChoiceRestart {
			*g = m.New()
			return
		}
		g.Message = s.GameOver

	default:
		// Unknown states come from corrupted snapshots; start over.
		*g = m.New()
	}
}
