package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"golang.org/x/text/language"

	"minigames/internal/cave"
	"minigames/internal/combat"
	"minigames/internal/session"
)

// lowRand always gives the initiative to player1 and rolls the lowest
// non-special damage.
type lowRand struct{}

func (lowRand) IntN(int) int     { return 0 }
func (lowRand) Float64() float64 { return 0.99 }

func testService(t *testing.T) *Service {
	t.Helper()
	return NewService(
		session.NewMemoryStore[combat.Combatant](),
		session.NewMemoryStore[cave.Game](),
		nil,
		lowRand{},
	)
}

func TestCreateCharacter(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	got, err := svc.CreateCharacter(ctx, SharedScope, CreateCharacterRequest{Name: " Arthur ", Class: "warrior"})
	if err != nil {
		t.Fatalf("CreateCharacter: %v", err)
	}
	want := CharacterView{Name: "Arthur", Class: "warrior", HP: 120, MaxHP: 120, Damage: 25, IsAlive: true}
	if got != want {
		t.Errorf("CreateCharacter() = %+v, want %+v", got, want)
	}

	stored, err := svc.GetCharacter(ctx, SharedScope, "Arthur")
	if err != nil {
		t.Fatalf("GetCharacter: %v", err)
	}
	if stored.HP != 120 {
		t.Errorf("stored HP = %d, want 120", stored.HP)
	}
}

func TestCreateCharacterErrors(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  CreateCharacterRequest
		want error
	}{
		{"unknown class", CreateCharacterRequest{Name: "X", Class: "bard"}, combat.ErrInvalidVariant},
		{"missing name", CreateCharacterRequest{Class: "mage"}, ErrMalformedRequest},
		{"slash in name", CreateCharacterRequest{Name: "a/b", Class: "mage"}, ErrMalformedRequest},
		{"long name", CreateCharacterRequest{Name: strings.Repeat("x", 65), Class: "mage"}, ErrMalformedRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateCharacter(ctx, SharedScope, tt.req)
			if !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
			if StatusCode(err) != http.StatusBadRequest {
				t.Errorf("StatusCode = %d, want 400", StatusCode(err))
			}
		})
	}
}

func TestBattlePersistsBothCombatants(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()
	mustCreate(t, svc, "Arthur", "warrior")
	mustCreate(t, svc, "Merlin", "mage")

	view, err := svc.Battle(ctx, SharedScope, BattleRequest{Player1: "Arthur", Player2: "Merlin"}, language.English)
	if err != nil {
		t.Fatalf("Battle: %v", err)
	}
	if view.FirstAttacker != "Arthur" {
		t.Errorf("FirstAttacker = %q, want Arthur", view.FirstAttacker)
	}
	wantLog := []string{
		"Arthur attacks Merlin for 20 damage!",
		"Merlin counters Arthur for 32 damage!",
	}
	if len(view.BattleLog) != 2 || view.BattleLog[0] != wantLog[0] || view.BattleLog[1] != wantLog[1] {
		t.Errorf("BattleLog = %v, want %v", view.BattleLog, wantLog)
	}
	if view.Winner != nil {
		t.Errorf("Winner = %q, want none", *view.Winner)
	}
	if view.Player1.HP != 88 || view.Player2.HP != 60 {
		t.Errorf("HP = %d/%d, want 88/60", view.Player1.HP, view.Player2.HP)
	}

	merlin, _ := svc.GetCharacter(ctx, SharedScope, "Merlin")
	if merlin.HP != 60 {
		t.Errorf("stored Merlin HP = %d, want 60", merlin.HP)
	}
}

func TestBattleToTheEnd(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()
	mustCreate(t, svc, "Arthur", "warrior")
	mustCreate(t, svc, "Merlin", "mage")

	var view BattleView
	for i := 0; i < 20; i++ {
		var err error
		view, err = svc.Battle(ctx, SharedScope, BattleRequest{Player1: "Arthur", Player2: "Merlin"}, language.English)
		if err != nil {
			t.Fatalf("Battle: %v", err)
		}
		if view.Winner != nil {
			break
		}
	}
	if view.Winner == nil || *view.Winner != "Arthur" {
		t.Fatalf("expected Arthur to win, got %v", view.Winner)
	}
	if view.Player2.IsAlive || view.Player2.HP != 0 {
		t.Errorf("expected Merlin dead, got %+v", view.Player2)
	}

	// Further battles keep reporting the same winner without any attack.
	again, err := svc.Battle(ctx, SharedScope, BattleRequest{Player1: "Arthur", Player2: "Merlin"}, language.English)
	if err != nil {
		t.Fatalf("Battle: %v", err)
	}
	if len(again.BattleLog) != 0 || again.Winner == nil {
		t.Errorf("expected no events and a winner, got %+v", again)
	}
}

func TestBattleErrors(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()
	mustCreate(t, svc, "Arthur", "warrior")

	_, err := svc.Battle(ctx, SharedScope, BattleRequest{Player1: "Arthur", Player2: "Ghost"}, language.English)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("missing player error = %v, want ErrNotFound", err)
	}
	_, err = svc.Battle(ctx, SharedScope, BattleRequest{Player1: "Arthur"}, language.English)
	if !errors.Is(err, ErrMalformedRequest) {
		t.Errorf("missing field error = %v, want ErrMalformedRequest", err)
	}
	_, err = svc.Battle(ctx, SharedScope, BattleRequest{Player1: "Arthur", Player2: "Arthur"}, language.English)
	if !errors.Is(err, ErrMalformedRequest) {
		t.Errorf("self battle error = %v, want ErrMalformedRequest", err)
	}
	_, err = svc.Battle(ctx, "other-scope", BattleRequest{Player1: "Arthur", Player2: "Arthur2"}, language.English)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("other scope error = %v, want ErrNotFound", err)
	}
}

func TestListAndDeleteCharacters(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()
	mustCreate(t, svc, "Merlin", "mage")
	mustCreate(t, svc, "Arthur", "warrior")

	list, err := svc.ListCharacters(ctx, SharedScope)
	if err != nil {
		t.Fatalf("ListCharacters: %v", err)
	}
	if len(list) != 2 || list[0].Name != "Arthur" || list[1].Name != "Merlin" {
		t.Fatalf("ListCharacters() = %+v", list)
	}

	if err := svc.DeleteCharacter(ctx, SharedScope, "Arthur"); err != nil {
		t.Fatalf("DeleteCharacter: %v", err)
	}
	if err := svc.DeleteCharacter(ctx, SharedScope, "Arthur"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete error = %v, want ErrNotFound", err)
	}
}

func TestCaveFlow(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	start, err := svc.InitCave(ctx, SharedScope)
	if err != nil {
		t.Fatalf("InitCave: %v", err)
	}
	if start.GameID == "" || start.State != "start" || start.PreviousChoice != nil {
		t.Fatalf("InitCave() = %+v", start)
	}

	typo, err := svc.MakeChoice(ctx, SharedScope, ChoiceRequest{GameID: start.GameID, Choice: "rigth"})
	if err != nil {
		t.Fatalf("MakeChoice: %v", err)
	}
	if typo.State != "start" || typo.Suggestion != "right" {
		t.Errorf("typo view = %+v, want start with suggestion right", typo)
	}

	room, err := svc.MakeChoice(ctx, SharedScope, ChoiceRequest{GameID: start.GameID, Choice: "right"})
	if err != nil {
		t.Fatalf("MakeChoice: %v", err)
	}
	if room.State != "room" || room.PreviousChoice == nil || *room.PreviousChoice != "right" || room.Suggestion != "" {
		t.Errorf("room view = %+v", room)
	}

	end, err := svc.MakeChoice(ctx, SharedScope, ChoiceRequest{GameID: start.GameID, Choice: "stand up"})
	if err != nil {
		t.Fatalf("MakeChoice: %v", err)
	}
	if end.State != "standing" || !strings.Contains(end.Message, "wizard") {
		t.Errorf("end view = %+v", end)
	}

	got, err := svc.GetCave(ctx, SharedScope, start.GameID)
	if err != nil {
		t.Fatalf("GetCave: %v", err)
	}
	if got.State != "standing" {
		t.Errorf("stored state = %q, want standing", got.State)
	}

	if err := svc.EndCave(ctx, SharedScope, start.GameID); err != nil {
		t.Fatalf("EndCave: %v", err)
	}
	_, err = svc.MakeChoice(ctx, SharedScope, ChoiceRequest{GameID: start.GameID, Choice: "restart"})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("choice on ended game error = %v, want ErrNotFound", err)
	}
}

func TestMakeChoiceRequiresGameID(t *testing.T) {
	svc := testService(t)
	_, err := svc.MakeChoice(context.Background(), SharedScope, ChoiceRequest{Choice: "left"})
	if !errors.Is(err, ErrMalformedRequest) {
		t.Errorf("error = %v, want ErrMalformedRequest", err)
	}
}

func TestDecodeAndErrorBody(t *testing.T) {
	var req BattleRequest
	if err := Decode(strings.NewReader(""), &req); err != nil {
		t.Errorf("empty body error = %v", err)
	}
	if err := Decode(strings.NewReader("{nope"), &req); !errors.Is(err, ErrMalformedRequest) {
		t.Errorf("bad body error = %v, want ErrMalformedRequest", err)
	}

	if body := ErrorBody(errors.New("disk on fire")); body.Error != "internal server error" {
		t.Errorf("internal error leaked: %q", body.Error)
	}
	if body := ErrorBody(ErrNotFound); body.Error != "not found" {
		t.Errorf("ErrorBody(ErrNotFound) = %q", body.Error)
	}
}

func mustCreate(t *testing.T, svc *Service, name, class string) {
	t.Helper()
	if _, err := svc.CreateCharacter(context.Background(), SharedScope, CreateCharacterRequest{Name: name, Class: class}); err != nil {
		t.Fatalf("CreateCharacter(%s): %v", name, err)
	}
}

func TestDuel(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()
	mustCreate(t, svc, "Arthur", "warrior")
	mustCreate(t, svc, "Merlin", "mage")

	view, err := svc.Duel(ctx, SharedScope, BattleRequest{Player1: "Arthur", Player2: "Merlin"}, language.English, 0)
	if err != nil {
		t.Fatalf("Duel: %v", err)
	}
	// Arthur deals 20 per round and Merlin 32 in return: Merlin falls in round 4.
	if len(view.Rounds) != 4 || !view.Completed {
		t.Fatalf("rounds = %d completed = %v", len(view.Rounds), view.Completed)
	}
	if view.Winner == nil || *view.Winner != "Arthur" {
		t.Fatalf("winner = %v, want Arthur", view.Winner)
	}
	if view.Player1.HP != 24 || view.Player2.HP != 0 {
		t.Errorf("HP = %d/%d, want 24/0", view.Player1.HP, view.Player2.HP)
	}
	stored, _ := svc.GetCharacter(ctx, SharedScope, "Arthur")
	if stored.HP != 24 {
		t.Errorf("stored Arthur HP = %d, want 24", stored.HP)
	}

	pdf, err := view.PDF("test")
	if err != nil {
		t.Fatalf("PDF: %v", err)
	}
	if !strings.HasPrefix(string(pdf), "%PDF") {
		t.Error("expected PDF output")
	}
}

func TestDuelRoundLimit(t *testing.T) {
	svc := testService(t)
	svc.MaxRounds = 2
	ctx := context.Background()
	mustCreate(t, svc, "Arthur", "warrior")
	mustCreate(t, svc, "Merlin", "mage")

	view, err := svc.Duel(ctx, SharedScope, BattleRequest{Player1: "Arthur", Player2: "Merlin"}, language.English, 0)
	if err != nil {
		t.Fatalf("Duel: %v", err)
	}
	if len(view.Rounds) != 2 || view.Completed || view.Winner != nil {
		t.Errorf("rounds = %d completed = %v winner = %v", len(view.Rounds), view.Completed, view.Winner)
	}

	if _, err := svc.Duel(ctx, SharedScope, BattleRequest{Player1: "Arthur", Player2: "Arthur"}, language.English, 0); !errors.Is(err, ErrMalformedRequest) {
		t.Errorf("self duel error = %v, want ErrMalformedRequest", err)
	}
}

func TestDuelWithFallenCharacter(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()
	mustCreate(t, svc, "Arthur", "warrior")
	mustCreate(t, svc, "Merlin", "mage")

	merlin, err := svc.GetCharacter(ctx, SharedScope, "Merlin")
	if err != nil {
		t.Fatalf("GetCharacter: %v", err)
	}
	merlin.ApplyDamage(merlin.HP)
	if err := svc.Characters.Put(ctx, "shared/Merlin", merlin); err != nil {
		t.Fatalf("Put: %v", err)
	}

	view, err := svc.Duel(ctx, SharedScope, BattleRequest{Player1: "Arthur", Player2: "Merlin"}, language.English, 0)
	if err != nil {
		t.Fatalf("Duel: %v", err)
	}
	if len(view.Rounds) != 0 || !view.Completed {
		t.Fatalf("rounds = %d completed = %v, want 0 and true", len(view.Rounds), view.Completed)
	}
	if view.Winner == nil || *view.Winner != "Arthur" {
		t.Errorf("winner = %v, want Arthur", view.Winner)
	}
}
