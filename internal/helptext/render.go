// Package helptext turns localized help templates into the HTML shown when a
// tech tree node is focused.
//
// Authored templates embed structural markers (a "(‹cost›)" heading, an italic
// "requires" line, line breaks) and stat placeholders such as ‹hp›. Parse splits
// a template with the grammar of its category; Render then substitutes the cost
// and assembles the stats line from the entity's record.
package helptext

import (
	"fmt"
	"log"
	"strings"

	"github.com/ziadkadry99/techtree/internal/graph"
	"github.com/ziadkadry99/techtree/internal/metadata"
)

// MalformedTemplateError reports authored text that does not fit the grammar of
// its category. The text is shown unmodified.
type MalformedTemplateError struct {
	Category graph.Category
	Reason   string
}

func (e *MalformedTemplateError) Error() string {
	return fmt.Sprintf("helptext: malformed %s template: %s", e.Category, e.Reason)
}

// markerStat is a stat included only when its placeholder appears in the text.
type markerStat struct {
	markers []string
	label   string
	value   func(*metadata.Record) *float64
}

var markerStats = []markerStat{
	{[]string{"‹hp›"}, "HP:&nbsp;", func(r *metadata.Record) *float64 { return r.HP }},
	{[]string{"‹attack›"}, "Attack:&nbsp;", func(r *metadata.Record) *float64 { return r.Attack }},
	{[]string{"‹armor›", "‹Armor›"}, "Armor:&nbsp;", func(r *metadata.Record) *float64 { return r.MeleeArmor }},
	{[]string{"‹piercearmor›", "‹Piercearmor›"}, "Pierce armor:&nbsp;", func(r *metadata.Record) *float64 { return r.PierceArmor }},
	{[]string{"‹garrison›"}, "Garrison:&nbsp;", func(r *metadata.Record) *float64 { return r.GarrisonCapacity }},
	{[]string{"‹range›"}, "Range:&nbsp;", func(r *metadata.Record) *float64 { return r.Range }},
}

// Stats returns the stat fragments for a record. Marker gated stats are taken
// from doc; the rest are always evaluated and skipped when undefined.
func Stats(doc *Document, rec *metadata.Record) []string {
	var stats []string
	for _, s := range markerStats {
		present := false
		for _, mk := range s.markers {
			if doc.contains(mk) {
				present = true
				break
			}
		}
		if !present {
			continue
		}
		if v := s.value(rec); v != nil {
			stats = append(stats, s.label+Number(*v))
		}
	}

	always := []string{
		IfDefinedAndGreaterZero(rec.MinRange, "Min Range:&nbsp;"),
		IfDefined(rec.LineOfSight, "Line of Sight:&nbsp;"),
		IfDefined(rec.Speed, "Speed:&nbsp;"),
		SecondsIfDefined(rec.TrainTime, "Build Time:&nbsp;"),
		SecondsIfDefined(rec.ResearchTime, "Research Time:&nbsp;"),
		IfDefined(rec.FrameDelay, "Frame Delay:&nbsp;"),
		IfDefinedAndGreaterZero(rec.MaxCharge, "Charge Attack:&nbsp;"),
		IfDefinedAndGreaterZero(rec.RechargeRate, "Recharge Rate:&nbsp;"),
		SecondsIfDefined(rec.RechargeDuration, "Recharge Duration:&nbsp;"),
		SecondsIfDefined(rec.AttackDelaySeconds, "Attack Delay:&nbsp;"),
		SecondsIfDefined(rec.ReloadTime, "Reload Time:&nbsp;"),
		AccuracyIfDefined(rec.AccuracyPercent, "Accuracy:&nbsp;"),
		RepeatableIfDefined(rec.Repeatable),
	}
	for _, s := range always {
		if s != "" {
			stats = append(stats, s)
		}
	}
	return stats
}

// Render converts a raw localized template into help HTML. rec may be nil when
// the entity has no metadata: the text is still split but nothing is
// substituted. Text that does not fit its grammar is returned unmodified.
func Render(c graph.Category, raw string, rec *metadata.Record) string {
	doc, err := Parse(c, raw)
	if err != nil {
		log.Printf("helptext: %v", err)
		return raw
	}
	if rec == nil {
		log.Printf("helptext: no metadata for %s template, rendering without stats", c)
		return doc.HTML()
	}

	doc.replaceFirst(CostMarker, "Cost:"+Cost(rec.Cost))

	var b strings.Builder
	for i, p := range doc.paragraphs {
		// An empty anchor is left as is.
		if i == doc.stats && p.body != "" {
			b.WriteString("<h3>Stats</h3><p>")
			b.WriteString(strings.Join(Stats(doc, rec), ", "))
			b.WriteString("</p>")
			continue
		}
		writeParagraph(&b, p)
	}
	return b.String()
}
