package cmd

import "github.com/fatih/color"

// Terminal colours shared by the lookup commands.
var (
	strong = color.New(color.Bold)
	subtle = color.New(color.Faint)
	good   = color.New(color.FgGreen)
	bad    = color.New(color.FgRed, color.Faint)
	warn   = color.New(color.FgYellow)
	fail   = color.New(color.FgRed, color.Bold)
	unique = color.New(color.FgMagenta, color.Bold)
)
