package cmd

import (
	"grimm.is/wsforge/internal/i18n"
)

// Printer is the locale-aware CLI output printer shared by all verbs.
var Printer = i18n.NewCLIPrinter()
