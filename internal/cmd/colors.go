package cmd

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// ANSI color codes
const (
	reset  = "\033[0m"
	red    = "\033[31m"
	green  = "\033[32m"
	yellow = "\033[33m"
	cyan   = "\033[36m"
	bold   = "\033[1m"
)

// colorize applies color only when stdout is a terminal, so piped output
// stays plain.
func colorize(color, msg string) string {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return msg
	}
	return color + msg + reset
}

// label prefixes a message with a colored [TAG].
func label(color, tag, msg string) string {
	return fmt.Sprintf("%s %s", colorize(color, "["+tag+"]"), msg)
}

func printOK(msg string)    { fmt.Println(label(green, "OK", msg)) }
func printWarn(msg string)  { fmt.Println(label(yellow, "WARN", msg)) }
func printError(msg string) { fmt.Println(label(red, "ERROR", msg)) }

// printTitle prints a section heading like "[RESULT] ...".
func printTitle(title, desc string) {
	fmt.Println(label(bold+cyan, title, desc))
}

func indent(msg string) string {
	return "     " + msg
}
