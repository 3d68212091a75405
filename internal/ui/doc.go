// Package ui provides semantic text formatting for terminal output.
//
// Formatters carry meaning (Success, Error, Highlight, ...) rather than
// raw colors, so commands describe what a piece of text is and the
// package decides how it looks. When color is disabled (NO_COLOR, dumb
// terminals, piped output) each formatter degrades to a plain-text
// convention instead: backticks for commands, quotes for highlighted
// values, parentheses for muted text.
//
// Example:
//
//	fmt.Println(ui.Success.Sprint("✓") + " Stored " + ui.Highlight.Sprint(name))
package ui
