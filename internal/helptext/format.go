package helptext

import (
	"math"
	"strconv"
	"strings"

	"github.com/ziadkadry99/techtree/internal/metadata"
)

// Number formats a stat value the way the viewer prints numbers: no trailing
// zeros and no exponent for the magnitudes game data uses.
func Number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Cost concatenates the resources present in c in the order Food, Wood, Gold,
// Stone. Every entry carries a leading space, so an empty cost is "".
func Cost(c metadata.Cost) string {
	var b strings.Builder
	for _, res := range []struct {
		amount *int
		code   string
	}{
		{c.Food, "F"},
		{c.Wood, "W"},
		{c.Gold, "G"},
		{c.Stone, "S"},
	} {
		if res.amount == nil {
			continue
		}
		b.WriteString(" ")
		b.WriteString(strconv.Itoa(*res.amount))
		b.WriteString(res.code)
	}
	return b.String()
}

// IfDefined returns " prefix+value" when v is set.
func IfDefined(v *float64, prefix string) string {
	if v == nil {
		return ""
	}
	return " " + prefix + Number(*v)
}

// IfDefinedAndGreaterZero is IfDefined for stats that only matter when positive.
func IfDefinedAndGreaterZero(v *float64, prefix string) string {
	if v == nil || *v <= 0 {
		return ""
	}
	return " " + prefix + Number(*v)
}

// SecondsIfDefined formats a duration rounded to at most two decimals.
func SecondsIfDefined(v *float64, prefix string) string {
	if v == nil {
		return ""
	}
	return " " + prefix + Number(toMaxFixed2(*v)) + "s"
}

func toMaxFixed2(v float64) float64 {
	return math.Round(v*100) / 100
}

// AccuracyIfDefined only reports accuracy below 100%.
func AccuracyIfDefined(v *float64, prefix string) string {
	if v == nil || *v >= 100 {
		return ""
	}
	return " " + prefix + Number(*v) + "%"
}

// RepeatableIfDefined reports whether a technology can be researched again.
func RepeatableIfDefined(v *bool) string {
	if v == nil {
		return ""
	}
	if *v {
		return "Repeatable"
	}
	return "Not Repeatable"
}

// ClassAmounts renders attacks or armours as "4 (Infantry), 2 (Base Melee)"
// under heading. An empty list renders nothing.
func ClassAmounts(values []metadata.ClassAmount, heading string) string {
	if len(values) == 0 {
		return ""
	}
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, Number(v.Amount)+" ("+metadata.ClassName(v.Class)+")")
	}
	return heading + "<p>" + strings.Join(parts, ", ") + "</p>"
}

// AdvancedStats renders the attack and armour breakdown of a record.
func AdvancedStats(rec *metadata.Record) string {
	if rec == nil {
		return ""
	}
	return ClassAmounts(rec.Attacks, "<h3>Attacks</h3>") + ClassAmounts(rec.Armours, "<h3>Armours</h3>")
}
