// Package format convierte valores ya normalizados en textos de presentación
// (moneda, fechas, horas) según el locale configurado.
package format

import (
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	DefaultLocale         = "es-MX"
	DefaultCurrencySymbol = "$"

	DateLayout     = "02/01/2006"
	TimeLayout     = "15:04"
	DateTimeLayout = "02/01/2006 15:04"
)

type Formatter struct {
	symbol  string
	printer *message.Printer
}

// New crea un Formatter; locale inválido cae a es-MX.
func New(locale, currencySymbol string) *Formatter {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil || strings.TrimSpace(locale) == "" {
		tag = language.MustParse(DefaultLocale)
	}
	if strings.TrimSpace(currencySymbol) == "" {
		currencySymbol = DefaultCurrencySymbol
	}
	return &Formatter{
		symbol:  currencySymbol,
		printer: message.NewPrinter(tag),
	}
}

// Currency: dos decimales con el símbolo configurado. 25.5 => "$25.50".
func (f *Formatter) Currency(v float64) string {
	if v < 0 {
		return "-" + f.symbol + f.printer.Sprintf("%.2f", -v)
	}
	return f.symbol + f.printer.Sprintf("%.2f", v)
}

func (f *Formatter) Date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

func (f *Formatter) Time(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(TimeLayout)
}

// DateTime combina la fecha de d con la hora de h (las consultas las guardan separadas).
func (f *Formatter) DateTime(d, h time.Time) string {
	switch {
	case d.IsZero() && h.IsZero():
		return ""
	case h.IsZero():
		return f.Date(d)
	case d.IsZero():
		return h.Format(DateTimeLayout)
	}
	return f.Date(d) + " " + f.Time(h)
}

// Number aplica el separador de miles del locale.
func (f *Formatter) Number(v int64) string {
	return f.printer.Sprintf("%d", v)
}
