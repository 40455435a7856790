// Package api is the single entry point the transport adapters call. It owns
// the record stores and the random source and is the only caller of the
// combat and cave packages.
package api

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/text/language"

	"minigames/internal/cave"
	"minigames/internal/combat"
	"minigames/internal/narrate"
	"minigames/internal/session"
	"minigames/internal/telemetry"
)

const maxNameLen = 64

// SharedScope is the scope used by adapters without per-visitor sessions.
const SharedScope = "shared"

// Service applies game operations to stored records.
type Service struct {
	Characters session.Store[combat.Combatant]
	Games      session.Store[cave.Game]
	Machine    *cave.Machine
	Rand       combat.Rand
	// MaxRounds bounds Duel; zero means DefaultMaxRounds.
	MaxRounds int

	// mu serializes read-modify-write cycles and access to Rand.
	mu sync.Mutex
}

// NewService wires a service. A nil machine uses the built-in cave script.
func NewService(chars session.Store[combat.Combatant], games session.Store[cave.Game], machine *cave.Machine, rng combat.Rand) *Service {
	if machine == nil {
		machine = cave.NewMachine(nil)
	}
	return &Service{Characters: chars, Games: games, Machine: machine, Rand: rng}
}

// CreateCharacter creates a character at full health, replacing any
// character of the same name in scope.
func (s *Service) CreateCharacter(ctx context.Context, scope string, req CreateCharacterRequest) (CharacterView, error) {
	ctx, span := telemetry.Tracer("api").Start(ctx, "api.create_character")
	defer span.End()

	name, err := cleanName(req.Name)
	if err != nil {
		return CharacterView{}, err
	}
	c, err := combat.Create(name, req.Class)
	if err != nil {
		return CharacterView{}, err
	}
	span.SetAttributes(attribute.String("character.class", c.Variant.String()))

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.Characters.Put(ctx, session.Key(scope, name), *c); err != nil {
		return CharacterView{}, fmt.Errorf("save character: %w", err)
	}
	return characterView(*c), nil
}

// GetCharacter loads one character.
func (s *Service) GetCharacter(ctx context.Context, scope, name string) (combat.Combatant, error) {
	c, ok, err := s.Characters.Get(ctx, session.Key(scope, name))
	if err != nil {
		return combat.Combatant{}, fmt.Errorf("load character: %w", err)
	}
	if !ok {
		return combat.Combatant{}, fmt.Errorf("%w: character %q", ErrNotFound, name)
	}
	return c, nil
}

// ListCharacters returns every character in scope ordered by name.
func (s *Service) ListCharacters(ctx context.Context, scope string) ([]CharacterView, error) {
	ids, err := s.Characters.List(ctx, session.Key(scope, ""))
	if err != nil {
		return nil, fmt.Errorf("list characters: %w", err)
	}
	out := make([]CharacterView, 0, len(ids))
	for _, id := range ids {
		c, ok, err := s.Characters.Get(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("load character: %w", err)
		}
		if ok {
			out = append(out, characterView(c))
		}
	}
	return out, nil
}

// DeleteCharacter removes a character.
func (s *Service) DeleteCharacter(ctx context.Context, scope, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.GetCharacter(ctx, scope, name); err != nil {
		return err
	}
	if err := s.Characters.Delete(ctx, session.Key(scope, name)); err != nil {
		return fmt.Errorf("delete character: %w", err)
	}
	return nil
}

// Battle runs one exchange between two stored characters and saves both.
func (s *Service) Battle(ctx context.Context, scope string, req BattleRequest, lang language.Tag) (BattleView, error) {
	ctx, span := telemetry.Tracer("api").Start(ctx, "api.battle")
	defer span.End()

	p1, p2, err := req.names()
	if err != nil {
		return BattleView{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a, err := s.GetCharacter(ctx, scope, p1)
	if err != nil {
		return BattleView{}, err
	}
	b, err := s.GetCharacter(ctx, scope, p2)
	if err != nil {
		return BattleView{}, err
	}

	rep := combat.ResolveExchange(s.Rand, &a, &b)

	if err := s.Characters.Put(ctx, session.Key(scope, p1), rep.A); err != nil {
		return BattleView{}, fmt.Errorf("save character: %w", err)
	}
	if err := s.Characters.Put(ctx, session.Key(scope, p2), rep.B); err != nil {
		return BattleView{}, fmt.Errorf("save character: %w", err)
	}

	span.SetAttributes(
		attribute.String("battle.first_attacker", rep.FirstAttacker),
		attribute.Int("battle.events", len(rep.Events)),
		attribute.Bool("battle.resolved", rep.Winner != nil),
	)

	return battleView(rep, narrate.Printer(lang)), nil
}

// InitCave starts a new cave game and returns its id.
func (s *Service) InitCave(ctx context.Context, scope string) (CaveView, error) {
	ctx, span := telemetry.Tracer("api").Start(ctx, "api.cave_init")
	defer span.End()

	id := s.Games.NewID()
	g := s.Machine.New()
	if err := s.Games.Put(ctx, session.Key(scope, id), g); err != nil {
		return CaveView{}, fmt.Errorf("save game: %w", err)
	}
	return caveView(id, g), nil
}

// GetCave loads a cave game without changing it.
func (s *Service) GetCave(ctx context.Context, scope, id string) (CaveView, error) {
	g, err := s.loadGame(ctx, scope, id)
	if err != nil {
		return CaveView{}, err
	}
	return caveView(id, g), nil
}

// MakeChoice advances a stored cave game. Choices the game does not accept
// are not errors; the returned view carries the game's notice and, when the
// input looks like a typo, a suggestion.
func (s *Service) MakeChoice(ctx context.Context, scope string, req ChoiceRequest) (CaveView, error) {
	ctx, span := telemetry.Tracer("api").Start(ctx, "api.cave_choice")
	defer span.End()

	if strings.TrimSpace(req.GameID) == "" {
		return CaveView{}, fmt.Errorf("%w: game_id is required", ErrMalformedRequest)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.loadGame(ctx, scope, req.GameID)
	if err != nil {
		return CaveView{}, err
	}
	next := s.Machine.Advance(g, req.Choice)
	if err := s.Games.Put(ctx, session.Key(scope, req.GameID), next); err != nil {
		return CaveView{}, fmt.Errorf("save game: %w", err)
	}

	span.SetAttributes(
		attribute.String("cave.from", string(g.State)),
		attribute.String("cave.to", string(next.State)),
	)

	view := caveView(req.GameID, next)
	if !slices.Contains(g.Choices, req.Choice) {
		view.Suggestion = cave.Suggest(req.Choice, g.Choices)
	}
	return view, nil
}

// EndCave forgets a cave game.
func (s *Service) EndCave(ctx context.Context, scope, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.loadGame(ctx, scope, id); err != nil {
		return err
	}
	if err := s.Games.Delete(ctx, session.Key(scope, id)); err != nil {
		return fmt.Errorf("delete game: %w", err)
	}
	return nil
}

func (s *Service) loadGame(ctx context.Context, scope, id string) (cave.Game, error) {
	g, ok, err := s.Games.Get(ctx, session.Key(scope, id))
	if err != nil {
		return cave.Game{}, fmt.Errorf("load game: %w", err)
	}
	if !ok {
		return cave.Game{}, fmt.Errorf("%w: game %q", ErrNotFound, id)
	}
	return g, nil
}

func cleanName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: name is required", ErrMalformedRequest)
	}
	if len(name) > maxNameLen {
		return "", fmt.Errorf("%w: name longer than %d bytes", ErrMalformedRequest, maxNameLen)
	}
	if strings.Contains(name, "/") {
		return "", fmt.Errorf("%w: name must not contain '/'", ErrMalformedRequest)
	}
	return name, nil
}
