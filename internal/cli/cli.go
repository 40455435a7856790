// Package cli runs the games as a line-oriented terminal session: two
// players create characters, duel to the end, then may explore the cave.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"minigames/internal/api"
	"minigames/internal/narrate"
)

// Scope is the record scope used for terminal sessions.
const Scope = "cli"

const rule = "=================================================="

var errInputClosed = errors.New("input closed")

// Game is one terminal session.
type Game struct {
	Service *api.Service
	In      io.Reader
	Out     io.Writer
	Lang    language.Tag
	// PDFPath, when set, receives a printable record of the duel.
	PDFPath   string
	MaxRounds int

	scanner *bufio.Scanner
	printer *message.Printer
}

// Run plays a full session. Closing the input ends it early without error.
func (g *Game) Run(ctx context.Context) error {
	g.scanner = bufio.NewScanner(g.In)
	if g.Lang == language.Und {
		g.Lang = narrate.Default()
	}
	g.printer = narrate.Printer(g.Lang)

	err := g.run(ctx)
	if errors.Is(err, errInputClosed) {
		g.println("\nGoodbye!")
		return nil
	}
	return err
}

func (g *Game) run(ctx context.Context) error {
	g.println("Welcome to the RPG battle simulator!")
	g.println(rule)

	g.println("\nPlayer 1, create your character:")
	p1, err := g.createCharacter(ctx, "")
	if err != nil {
		return err
	}
	g.println("\nPlayer 2, create your character:")
	p2, err := g.createCharacter(ctx, p1.Name)
	if err != nil {
		return err
	}

	if err := g.duel(ctx, p1, p2); err != nil {
		return err
	}

	g.println("")
	ok, err := g.confirm("Explore the cave next? (y/n): ")
	if err != nil || !ok {
		if err == nil {
			g.println("\nGame over, thanks for playing!")
		}
		return err
	}
	return g.cave(ctx)
}

func (g *Game) createCharacter(ctx context.Context, taken string) (api.CharacterView, error) {
	g.println("\n=== Character creation ===")
	for {
		name, err := g.promptName(taken)
		if err != nil {
			return api.CharacterView{}, err
		}
		class, err := g.promptClass()
		if err != nil {
			return api.CharacterView{}, err
		}
		view, err := g.Service.CreateCharacter(ctx, Scope, api.CreateCharacterRequest{Name: name, Class: class})
		if errors.Is(err, api.ErrMalformedRequest) {
			g.printf("%v\n", err)
			continue
		}
		return view, err
	}
}

func (g *Game) promptName(taken string) (string, error) {
	for {
		line, err := g.prompt("Enter a name: ")
		if err != nil {
			return "", err
		}
		switch name := strings.TrimSpace(line); {
		case name == "":
			g.println("A name is required.")
		case name == taken:
			g.println("That name is already taken.")
		default:
			return name, nil
		}
	}
}

func (g *Game) promptClass() (string, error) {
	g.println("Choose a class:")
	g.println("1. Warrior (high HP, medium damage)")
	g.println("2. Mage (low HP, high damage)")
	for {
		line, err := g.prompt("Enter your choice (1/2): ")
		if err != nil {
			return "", err
		}
		if class := classChoice(line); class != "" {
			return class, nil
		}
		g.println("Invalid choice, try again!")
	}
}

func classChoice(line string) string {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "1", "warrior":
		return "warrior"
	case "2", "mage":
		return "mage"
	default:
		return ""
	}
}

func (g *Game) duel(ctx context.Context, p1, p2 api.CharacterView) error {
	g.println("\nThe battle begins!")
	g.printf("Player 1: %s (%s)\n", p1.Name, p1.Class)
	g.printf("Player 2: %s (%s)\n", p2.Name, p2.Class)
	g.println(rule)

	view, err := g.Service.Duel(ctx, Scope, api.BattleRequest{Player1: p1.Name, Player2: p2.Name}, g.Lang, g.MaxRounds)
	if err != nil {
		return err
	}
	fighters := [2]api.CharacterView{p1, p2}
	for i, round := range view.Rounds {
		g.printf("\n%s\n", narrate.Round(g.printer, i+1))
		g.println(status(fighters[0]))
		g.println(status(fighters[1]))
		g.println(narrate.FirstStrike(g.printer, round.FirstAttacker))
		for _, line := range round.BattleLog {
			g.println(line)
		}
		fighters = [2]api.CharacterView{round.Player1, round.Player2}
	}

	g.println("")
	g.println(status(view.Player1))
	g.println(status(view.Player2))
	if view.Winner != nil {
		g.printf("\n%s\n", narrate.Victory(g.printer, *view.Winner))
	} else {
		g.printf("\nNo winner after %d rounds.\n", len(view.Rounds))
	}

	if g.PDFPath != "" {
		pdf, err := view.PDF(p1.Name + " vs " + p2.Name)
		if err != nil {
			return err
		}
		if err := os.WriteFile(g.PDFPath, pdf, 0o644); err != nil {
			return fmt.Errorf("write duel record: %w", err)
		}
		g.printf("Duel record written to %s\n", g.PDFPath)
	}
	return nil
}

func status(c api.CharacterView) string {
	return fmt.Sprintf("%s (%s) - HP: %d/%d", c.Name, c.Class, c.HP, c.MaxHP)
}

func (g *Game) cave(ctx context.Context) error {
	view, err := g.Service.InitCave(ctx, Scope)
	if err != nil {
		return err
	}
	defer func() { _ = g.Service.EndCave(context.WithoutCancel(ctx), Scope, view.GameID) }()

	g.println("\nType a choice, or 'quit' to leave.")
	for {
		g.printf("\n%s\n", view.Message)
		g.printf("Choices: %s\n", strings.Join(view.Choices, ", "))
		line, err := g.prompt("> ")
		if err != nil {
			return err
		}
		choice := strings.TrimSpace(line)
		if strings.EqualFold(choice, "quit") {
			g.println("Thanks for playing!")
			return nil
		}
		view, err = g.Service.MakeChoice(ctx, Scope, api.ChoiceRequest{GameID: view.GameID, Choice: choice})
		if err != nil {
			return err
		}
		if view.Suggestion != "" {
			g.printf("Did you mean %q?\n", view.Suggestion)
		}
	}
}

func (g *Game) confirm(question string) (bool, error) {
	line, err := g.prompt(question)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func (g *Game) prompt(text string) (string, error) {
	g.printf("%s", text)
	if !g.scanner.Scan() {
		if err := g.scanner.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", errInputClosed
	}
	return g.scanner.Text(), nil
}

func (g *Game) println(s string) {
	fmt.Fprintln(g.Out, s)
}

func (g *Game) printf(format string, args ...any) {
	fmt.Fprintf(g.Out, format, args...)
}
