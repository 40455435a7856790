// Package narrate renders battle narration lines in the supported languages.
package narrate

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// LangParam is the query parameter adapters read to pick a language.
const LangParam = "lang"

// Kind classifies one narrated attack.
type Kind int

const (
	// KindHit is an ordinary opening attack.
	KindHit Kind = iota
	// KindCounter is an ordinary counter-attack by the original defender.
	KindCounter
	// KindCritical is a warrior's critical hit.
	KindCritical
	// KindSpell is a mage's power spell.
	KindSpell
)

var supported = []language.Tag{language.English, language.SimplifiedChinese}

var matcher = language.NewMatcher(supported)

// Default returns the fallback narration language.
func Default() language.Tag {
	return language.English
}

// Printer returns a message printer for tag.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag)
}

// ParseTag matches a user supplied language value against the supported set.
func ParseTag(value string) (language.Tag, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return language.Und, false
	}
	tag, err := language.Parse(value)
	if err != nil {
		return language.Und, false
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return language.Und, false
	}
	return supported[idx], true
}

// ResolveTag picks the narration language from an explicit lang value first
// and an Accept-Language header second.
func ResolveTag(lang, acceptLanguage string) language.Tag {
	if tag, ok := ParseTag(lang); ok {
		return tag
	}
	if accept := strings.TrimSpace(acceptLanguage); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil && len(tags) > 0 {
			_, idx, conf := matcher.Match(tags...)
			if conf != language.No {
				return supported[idx]
			}
		}
	}
	return Default()
}

// Line renders one attack.
func Line(p *message.Printer, kind Kind, actor, target string, damage int) string {
	switch kind {
	case KindCounter:
		return p.Sprintf(keyCounter, actor, target, damage)
	case KindCritical:
		return p.Sprintf(keyCritical, actor, target, damage)
	case KindSpell:
		return p.Sprintf(keySpell, actor, target, damage)
	default:
		return p.Sprintf(keyHit, actor, target, damage)
	}
}

// Round renders a round header for multi-exchange duels.
func Round(p *message.Printer, n int) string {
	return p.Sprintf(keyRound, n)
}

// FirstStrike announces which combatant won initiative.
func FirstStrike(p *message.Printer, name string) string {
	return p.Sprintf(keyFirst, name)
}

// Victory announces the winner of a duel.
func Victory(p *message.Printer, name string) string {
	return p.Sprintf(keyVictory, name)
}
