package api

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"minigames/internal/combat"
	"minigames/internal/narrate"
	"minigames/internal/printout"
	"minigames/internal/session"
	"minigames/internal/telemetry"
)

// DefaultMaxRounds bounds a duel when the service has no limit configured.
const DefaultMaxRounds = 100

// DuelView is a duel fought until one side falls or the round limit is hit.
type DuelView struct {
	Rounds    []BattleView  `json:"rounds"`
	Player1   CharacterView `json:"player1"`
	Player2   CharacterView `json:"player2"`
	Winner    *string       `json:"winner"`
	Completed bool          `json:"completed"`

	start   [2]combat.Combatant
	reports []combat.Report
}

// PDF renders the duel as a printable record.
func (v DuelView) PDF(title string) ([]byte, error) {
	return printout.Duel(title, v.start[0], v.start[1], v.reports)
}

// Duel repeats exchanges between two stored characters until a winner
// emerges or maxRounds is reached, then saves both. maxRounds <= 0 uses
// the service limit.
func (s *Service) Duel(ctx context.Context, scope string, req BattleRequest, lang language.Tag, maxRounds int) (DuelView, error) {
	ctx, span := telemetry.Tracer("api").Start(ctx, "api.duel")
	defer span.End()

	p1, p2, err := req.names()
	if err != nil {
		return DuelView{}, err
	}
	if maxRounds <= 0 {
		maxRounds = s.maxRounds()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a, err := s.GetCharacter(ctx, scope, p1)
	if err != nil {
		return DuelView{}, err
	}
	b, err := s.GetCharacter(ctx, scope, p2)
	if err != nil {
		return DuelView{}, err
	}

	p := narrate.Printer(lang)
	view := DuelView{start: [2]combat.Combatant{a, b}}
	for round := 0; round < maxRounds && a.Alive() && b.Alive(); round++ {
		rep := combat.ResolveExchange(s.Rand, &a, &b)
		view.reports = append(view.reports, rep)
		view.Rounds = append(view.Rounds, battleView(rep, p))
	}
	view.Winner = survivor(&a, &b)
	view.Completed = !a.Alive() || !b.Alive()
	view.Player1, view.Player2 = characterView(a), characterView(b)

	if err := s.Characters.Put(ctx, session.Key(scope, p1), a); err != nil {
		return DuelView{}, fmt.Errorf("save character: %w", err)
	}
	if err := s.Characters.Put(ctx, session.Key(scope, p2), b); err != nil {
		return DuelView{}, fmt.Errorf("save character: %w", err)
	}

	span.SetAttributes(
		attribute.Int("duel.rounds", len(view.Rounds)),
		attribute.Bool("duel.completed", view.Completed),
	)
	return view, nil
}

// survivor names the only combatant left standing, or nil.
func survivor(a, b *combat.Combatant) *string {
	switch {
	case a.Alive() && !b.Alive():
		return &a.Name
	case !a.Alive() && b.Alive():
		return &b.Name
	default:
		return nil
	}
}

func (s *Service) maxRounds() int {
	if s.MaxRounds > 0 {
		return s.MaxRounds
	}
	return DefaultMaxRounds
}

func (r BattleRequest) names() (string, string, error) {
	p1, p2 := strings.TrimSpace(r.Player1), strings.TrimSpace(r.Player2)
	if p1 == "" || p2 == "" {
		return "", "", fmt.Errorf("%w: player1 and player2 are required", ErrMalformedRequest)
	}
	if p1 == p2 {
		return "", "", fmt.Errorf("%w: a character cannot battle itself", ErrMalformedRequest)
	}
	return p1, p2, nil
}

func battleView(rep combat.Report, p *message.Printer) BattleView {
	view := BattleView{
		BattleLog:     rep.Log(p),
		Events:        make([]EventView, 0, len(rep.Events)),
		Player1:       characterView(rep.A),
		Player2:       characterView(rep.B),
		FirstAttacker: rep.FirstAttacker,
		Winner:        rep.Winner,
	}
	for _, e := range rep.Events {
		view.Events = append(view.Events, EventView{
			Actor:   e.Actor,
			Target:  e.Target,
			Damage:  e.Damage,
			Special: e.Special,
			Counter: e.Counter,
		})
	}
	return view
}
