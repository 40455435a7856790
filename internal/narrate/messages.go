package narrate

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	keyHit      = "battle.hit"
	keyCounter  = "battle.counter"
	keyCritical = "battle.critical"
	keySpell    = "battle.spell"
	keyRound    = "battle.round"
	keyFirst    = "battle.first"
	keyVictory  = "battle.victory"
)

func init() {
	en := language.English
	_ = message.SetString(en, keyHit, "%[1]s attacks %[2]s for %[3]d damage!")
	_ = message.SetString(en, keyCounter, "%[1]s counters %[2]s for %[3]d damage!")
	_ = message.SetString(en, keyCritical, "%[1]s lands a critical hit on %[2]s for %[3]d damage!")
	_ = message.SetString(en, keySpell, "%[1]s casts a power spell on %[2]s for %[3]d damage!")
	_ = message.SetString(en, keyRound, "Round %d")
	_ = message.SetString(en, keyFirst, "%s strikes first!")
	_ = message.SetString(en, keyVictory, "%s wins the battle!")

	zh := language.SimplifiedChinese
	_ = message.SetString(zh, keyHit, "%[1]s 攻击 %[2]s，造成 %[3]d 点伤害！")
	_ = message.SetString(zh, keyCounter, "%[1]s 反击 %[2]s，造成 %[3]d 点伤害！")
	_ = message.SetString(zh, keyCritical, "💥 %[1]s 发动暴击！对 %[2]s 造成 %[3]d 点伤害！")
	_ = message.SetString(zh, keySpell, "🔥 %[1]s 施放强力法术！对 %[2]s 造成 %[3]d 点伤害！")
	_ = message.SetString(zh, keyRound, "第 %d 回合")
	_ = message.SetString(zh, keyFirst, "%s 先攻！")
	_ = message.SetString(zh, keyVictory, "🏆 战斗结束！%s 获胜！")
}
