// Package translate formats user-visible messages for the user's locale.
package translate

import (
	"fmt"
	"log"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/message"
)

var printer *message.Printer

func init() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("emu8051: locale: %v", err)
	}

	if len(locales) == 0 {
		locales = []string{"en-US"}
	}

	printer = message.NewPrinter(message.MatchLanguage(locales...))
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}

// Hex formats a value as a fixed width hexadecimal number, which is never
// localised. Digits beyond the width are dropped.
func Hex(value int, digits int) string {
	return fmt.Sprintf("%0*X", digits, value&(1<<(4*digits)-1))
}
