package metadata

// damageClasses names the armour classes attacks and armours refer to by index.
// Reserved indexes are kept so positions match the game data.
var damageClasses = [...]string{
	0:  "Unused",
	1:  "Infantry",
	2:  "Turtle Ships",
	3:  "Base Pierce",
	4:  "Base Melee",
	5:  "War Elephants",
	6:  "Unused",
	7:  "Unused",
	8:  "Cavalry",
	9:  "Unused",
	10: "Unused",
	11: `<abbr title="(except Port)">All Buildings</abbr>`,
	12: "Unused",
	13: "Stone Defense",
	14: "FE Predator Animals",
	15: "Archers",
	16: "Ships & Camels & Saboteurs",
	17: "Rams",
	18: "Trees",
	19: `<abbr title="(except Turtle Ship)">Unique Units</abbr>`,
	20: "Siege Weapons",
	21: "Standard Buildings",
	22: "Walls & Gates",
	23: "FE Gunpowder Units",
	24: "Boars",
	25: "Monks",
	26: "Castle",
	27: "Spearmen",
	28: "Cavalry Archers",
	29: "Eagle Warriors",
	30: "HD Camels",
	31: "Anti-Leitis",
	32: "Condottieros",
	33: "Organ Gun Damage",
	34: "Fishing Ships",
	35: "Mamelukes",
	36: "Heroes and Kings",
}

// ClassCount is the number of known damage classes.
const ClassCount = len(damageClasses)

// ClassName returns the display name of a damage class, or "Unknown" for an
// index outside the table.
func ClassName(class int) string {
	if class < 0 || class >= len(damageClasses) {
		return "Unknown"
	}
	return damageClasses[class]
}
