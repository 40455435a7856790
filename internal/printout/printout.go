// Package printout renders printable PDF pages (old parchment style) for
// combatant sheets and duel records.
package printout

import (
	"bytes"
	"fmt"
	"math"

	"github.com/jung-kurt/gofpdf/v2"

	"minigames/internal/combat"
)

const (
	pageW     = 595
	pageH     = 842
	margin    = 40
	lineH     = 14
	fontSize  = 10
	titleSize = 18
	barW      = 240.0
	barH      = 12.0
)

// CharacterSheet returns PDF bytes describing c: vitals, an HP bar and the
// damage ranges of its class.
func CharacterSheet(c combat.Combatant) ([]byte, error) {
	pdf := newPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	heading(pdf, tr(c.Name), "Character sheet")

	y := float64(margin) + 70
	drawEmblem(pdf, pageW-margin-50, y+20, c.Variant)

	pdf.SetFont("Helvetica", "", fontSize+2)
	for _, row := range [][2]string{
		{"Class", c.Variant.String()},
		{"Hit points", fmt.Sprintf("%d / %d", c.HP, c.MaxHP)},
		{"Base damage", fmt.Sprintf("%d", c.BaseDamage)},
		{"Status", status(c)},
	} {
		pdf.SetXY(margin+10, y)
		pdf.SetFont("Helvetica", "B", fontSize+2)
		pdf.CellFormat(110, lineH+2, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", fontSize+2)
		pdf.CellFormat(200, lineH+2, row[1], "", 0, "L", false, 0, "")
		y += lineH + 6
	}

	y += 6
	drawHPBar(pdf, margin+10, y, c.HP, c.MaxHP)
	y += barH + 24

	pdf.SetFont("Helvetica", "B", fontSize+2)
	pdf.SetXY(margin+10, y)
	pdf.CellFormat(300, lineH, "Attacks", "", 0, "L", false, 0, "")
	y += lineH + 4
	pdf.SetFont("Helvetica", "", fontSize)
	for _, line := range attackLines(c) {
		pdf.SetXY(margin+20, y)
		pdf.CellFormat(400, lineH, line, "", 0, "L", false, 0, "")
		y += lineH
	}

	return output(pdf)
}

// Duel returns PDF bytes recording a whole duel: both combatants as they
// entered, every round of narration in English, and the outcome.
func Duel(title string, a, b combat.Combatant, rounds []combat.Report) ([]byte, error) {
	pdf := newPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	if title == "" {
		title = "Duel record"
	}
	heading(pdf, tr(a.Name+" vs "+b.Name), tr(title))

	pdf.SetY(margin + 70)
	pdf.SetFont("Helvetica", "", fontSize)
	for _, c := range []combat.Combatant{a, b} {
		pdf.SetX(margin + 10)
		pdf.CellFormat(0, lineH, tr(fmt.Sprintf("%s the %s: %d HP, %d base damage", c.Name, c.Variant, c.HP, c.BaseDamage)), "", 1, "L", false, 0, "")
	}
	pdf.Ln(lineH / 2)

	var last *combat.Report
	for i := range rounds {
		rep := rounds[i]
		last = &rounds[i]
		pdf.SetFont("Helvetica", "B", fontSize)
		pdf.SetX(margin + 10)
		pdf.CellFormat(0, lineH, fmt.Sprintf("Round %d", i+1), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", fontSize)
		for _, e := range rep.Events {
			pdf.SetX(margin + 20)
			pdf.CellFormat(0, lineH, tr(e.String()), "", 1, "L", false, 0, "")
		}
		pdf.SetX(margin + 20)
		pdf.SetFont("Helvetica", "I", fontSize-1)
		pdf.CellFormat(0, lineH, tr(fmt.Sprintf("%s %d HP, %s %d HP", rep.A.Name, rep.A.HP, rep.B.Name, rep.B.HP)), "", 1, "L", false, 0, "")
	}

	pdf.Ln(lineH / 2)
	pdf.SetFont("Helvetica", "B", fontSize+2)
	pdf.SetX(margin + 10)
	outcome := "No winner yet."
	if last != nil && last.Winner != nil {
		outcome = *last.Winner + " wins the battle!"
	}
	pdf.CellFormat(0, lineH+2, tr(outcome), "", 1, "L", false, 0, "")

	return output(pdf)
}

func newPage() *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(margin, margin+10, margin)
	pdf.SetAutoPageBreak(true, margin+10)
	pdf.SetHeaderFunc(func() {
		pdf.SetFillColor(245, 235, 210)
		pdf.Rect(0, 0, pageW, pageH, "F")
		drawWavyBorder(pdf)
		pdf.SetDrawColor(80, 50, 30)
		pdf.SetTextColor(80, 50, 30)
		pdf.SetXY(margin, margin+10)
	})
	pdf.AddPage()
	return pdf
}

func heading(pdf *gofpdf.Fpdf, title, subtitle string) {
	pdf.SetFont("Helvetica", "B", titleSize)
	pdf.SetXY(margin+10, margin+14)
	pdf.CellFormat(pageW-2*margin-20, 20, title, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "I", fontSize)
	pdf.SetXY(margin+10, margin+36)
	pdf.CellFormat(pageW-2*margin-20, 12, subtitle, "", 0, "L", false, 0, "")
	pdf.SetLineWidth(1)
	pdf.Line(margin+10, margin+54, pageW-margin-10, margin+54)
}

func output(pdf *gofpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func status(c combat.Combatant) string {
	if c.Alive() {
		return "Standing"
	}
	return "Fallen"
}

func attackLines(c combat.Combatant) []string {
	lo, hi := combat.DamageRange(c.Variant, c.BaseDamage, false)
	lines := []string{fmt.Sprintf("Attack: %d-%d damage", lo, hi)}
	if p := combat.SpecialChance(c.Variant); p > 0 {
		lo, hi = combat.DamageRange(c.Variant, c.BaseDamage, true)
		name := "Critical hit"
		if c.Variant == combat.VariantMage {
			name = "Power spell"
		}
		lines = append(lines, fmt.Sprintf("%s: %d-%d damage, %.0f%% chance", name, lo, hi, p*100))
	}
	return lines
}

// drawHPBar draws the remaining hit points as a filled bar, red under a quarter.
func drawHPBar(pdf *gofpdf.Fpdf, x, y float64, hp, maxHP int) {
	frac := 0.0
	if maxHP > 0 {
		frac = math.Max(0, math.Min(1, float64(hp)/float64(maxHP)))
	}
	if frac < 0.25 {
		pdf.SetFillColor(180, 40, 40)
	} else {
		pdf.SetFillColor(70, 120, 60)
	}
	if frac > 0 {
		pdf.Rect(x, y, barW*frac, barH, "F")
	}
	pdf.SetDrawColor(0, 0, 0)
	pdf.Rect(x, y, barW, barH, "D")
	pdf.SetDrawColor(80, 50, 30)
}

// drawEmblem draws a class emblem: crossed swords for warriors, a star for mages.
func drawEmblem(pdf *gofpdf.Fpdf, cx, cy float64, v combat.Variant) {
	const r = 22.0
	pdf.SetDrawColor(101, 67, 33)
	pdf.SetLineWidth(1)
	pdf.Circle(cx, cy, r+6, "D")
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(1.5)
	switch v {
	case combat.VariantWarrior:
		pdf.Line(cx-r*0.7, cy-r*0.7, cx+r*0.7, cy+r*0.7)
		pdf.Line(cx-r*0.7, cy+r*0.7, cx+r*0.7, cy-r*0.7)
	case combat.VariantMage:
		pts := make([]gofpdf.PointType, 0, 10)
		for i := 0; i < 10; i++ {
			rad := r
			if i%2 == 1 {
				rad = r * 0.4
			}
			angle := float64(i)*36*math.Pi/180 - math.Pi/2
			pts = append(pts, gofpdf.PointType{X: cx + rad*math.Cos(angle), Y: cy + rad*math.Sin(angle)})
		}
		pdf.Polygon(pts, "D")
	default:
		pdf.Circle(cx, cy, r*0.35, "D")
	}
	pdf.SetLineWidth(1)
	pdf.SetDrawColor(80, 50, 30)
}

func drawWavyBorder(pdf *gofpdf.Fpdf) {
	pts := wavyRectPoints(margin/2, margin/2, pageW-margin, pageH-margin, 12, 4)
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(2)
	pdf.Polygon(pts, "D")
	pdf.SetLineWidth(1)
}

// wavyRectPoints returns polygon points for a rectangle with sinusoidal wobble on each side.
func wavyRectPoints(x, y, w, h float64, steps int, amp float64) []gofpdf.PointType {
	pts := make([]gofpdf.PointType, 0, steps*4+4)
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		pts = append(pts, gofpdf.PointType{X: x + t*w + amp*math.Sin(float64(i)*0.7), Y: y + amp*math.Cos(float64(i)*0.5)})
	}
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		pts = append(pts, gofpdf.PointType{X: x + w + amp*math.Sin(float64(i)*0.6), Y: y + t*h + amp*math.Cos(float64(i)*0.4)})
	}
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		pts = append(pts, gofpdf.PointType{X: x + w - t*w + amp*math.Sin(float64(i)*0.8), Y: y + h + amp*math.Cos(float64(i)*0.3)})
	}
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		pts = append(pts, gofpdf.PointType{X: x + amp*math.Sin(float64(i)*0.5), Y: y + h - t*h + amp*math.Cos(float64(i)*0.6)})
	}
	return pts
}
