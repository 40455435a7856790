package api

import (
	"minigames/internal/cave"
	"minigames/internal/combat"
)

// CreateCharacterRequest is the body of a character creation call.
type CreateCharacterRequest struct {
	Name  string `json:"name"`
	Class string `json:"class"`
}

// CharacterView is the wire shape of a combatant.
type CharacterView struct {
	Name    string `json:"name"`
	Class   string `json:"class"`
	HP      int    `json:"hp"`
	MaxHP   int    `json:"max_hp"`
	Damage  int    `json:"damage"`
	IsAlive bool   `json:"is_alive"`
}

func characterView(c combat.Combatant) CharacterView {
	return CharacterView{
		Name:    c.Name,
		Class:   c.Variant.String(),
		HP:      c.HP,
		MaxHP:   c.MaxHP,
		Damage:  c.BaseDamage,
		IsAlive: c.Alive(),
	}
}

// BattleRequest names two stored characters.
type BattleRequest struct {
	Player1 string `json:"player1"`
	Player2 string `json:"player2"`
}

// EventView is one attack of a battle.
type EventView struct {
	Actor   string `json:"actor"`
	Target  string `json:"target"`
	Damage  int    `json:"damage"`
	Special bool   `json:"special"`
	Counter bool   `json:"counter"`
}

// BattleView is the result of one exchange.
type BattleView struct {
	BattleLog     []string      `json:"battle_log"`
	Events        []EventView   `json:"events"`
	Player1       CharacterView `json:"player1"`
	Player2       CharacterView `json:"player2"`
	FirstAttacker string        `json:"first_attacker"`
	Winner        *string       `json:"winner"`
}

// ChoiceRequest advances a stored cave game.
type ChoiceRequest struct {
	GameID string `json:"game_id"`
	Choice string `json:"choice"`
}

// CaveView is the wire shape of a cave game.
type CaveView struct {
	GameID         string   `json:"game_id"`
	State          string   `json:"state"`
	Message        string   `json:"message"`
	Choices        []string `json:"choices"`
	PreviousChoice *string  `json:"previous_choice"`
	Suggestion     string   `json:"suggestion,omitempty"`
}

func caveView(id string, g cave.Game) CaveView {
	v := CaveView{
		GameID:  id,
		State:   string(g.State),
		Message: g.Message,
		Choices: append([]string{}, g.Choices...),
	}
	if g.PreviousChoice != "" {
		prev := g.PreviousChoice
		v.PreviousChoice = &prev
	}
	return v
}
