// Package locale translates the human-readable "details" of error
// documents. The language is negotiated from Accept-Language; Spanish is
// the default when the header is missing or matches nothing.
package locale

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys. They double as the English text.
const (
	NotFound      = "The resource you are looking for might have been removed, had its name changed, or is temporarily unavailable."
	FieldRequired = "field %s is required"
	FieldMin      = "field %s must be at least %s characters"
	FieldEmail    = "field %s must be a valid email address"
	FieldUnique   = "field %s has already been taken"
	FieldString   = "field %s must be a string"
	FieldInvalid  = "field %s is invalid"
)

var supported = []language.Tag{language.Spanish, language.English}

var (
	matcher = language.NewMatcher(supported)
	cat     = newCatalog()
)

func newCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.Spanish))

	es := map[string]string{
		NotFound:      "Puede que se haya quitado el recurso que está buscando, que se le haya cambiado el nombre o que no esté disponible temporalmente.",
		FieldRequired: "el campo %s es obligatorio",
		FieldMin:      "el campo %s debe tener al menos %s caracteres",
		FieldEmail:    "el campo %s debe ser una dirección de correo válida",
		FieldUnique:   "el valor del campo %s ya está en uso",
		FieldString:   "el campo %s debe ser una cadena de texto",
		FieldInvalid:  "el campo %s no es válido",
	}
	for key, text := range es {
		if err := b.SetString(language.Spanish, key, text); err != nil {
			panic(fmt.Sprintf("locale: es %q: %v", key, err))
		}
		if err := b.SetString(language.English, key, key); err != nil {
			panic(fmt.Sprintf("locale: en %q: %v", key, err))
		}
	}
	return b
}

// Match picks the supported language for an Accept-Language value.
func Match(acceptLanguage string) language.Tag {
	tags, _, _ := language.ParseAcceptLanguage(acceptLanguage)
	_, idx, _ := matcher.Match(tags...)
	return supported[idx]
}

// Printer returns a message printer for an Accept-Language value.
func Printer(acceptLanguage string) *message.Printer {
	return message.NewPrinter(Match(acceptLanguage), message.Catalog(cat))
}
