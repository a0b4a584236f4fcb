// Package narrate formats the human-readable commentary that accompanies
// every step, in English or Spanish.
package narrate

import (
	"errors"
	"fmt"
	"sort"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var ErrUnsupportedLanguage = errors.New("narrate: unsupported language")

// Step narration.
const (
	Compare        = "Comparing %d and %d at positions %d and %d."
	Swap           = "Swapping %d and %d."
	InsertKey      = "Inserting %d into its correct position."
	KeyCompare     = "Comparing %d with key %d."
	Shift          = "%d > %d, moving it from position %d to %d."
	PlaceKey       = "Placing %d at position %d."
	MinFound       = "Minimum found: %d at position %d. Swapping with %d."
	AlreadyMin     = "Element at position %d is already the minimum."
	Divide         = "Dividing %d..%d into [%d,%d] and [%d,%d]."
	Merge          = "Merging [%d,%d] and [%d,%d]."
	PlaceLeft      = "Placing %d (left) at position %d."
	PlaceRight     = "Placing %d (right) at position %d."
	PlaceLeftRest  = "Placing %d (left remainder) at position %d."
	PlaceRightRest = "Placing %d (right remainder) at position %d."
	SubRange       = "Sorting subarray from index %d to %d. Pivot chosen: %d (index %d)."
	PivotCompare   = "Comparing %d with pivot %d."
	PivotSwap      = "Swapping %d and %d (both <= pivot)."
	PlacePivot     = "Placing pivot %d at position %d."
	PivotFixed     = "Pivot %d is now fixed at position %d."
	Sorted         = "List sorted correctly!"
)

// Session narration and notifications.
const (
	Started          = "Sorting with %s..."
	Stopped          = "Animation stopped."
	Skipped          = "Animation skipped. List sorted."
	Fault            = "Internal error: %v"
	EnterNumber      = "Please enter a number."
	OnlyRange        = "Only numbers between 1 and 100."
	MaxElements      = "Maximum 25 numbers."
	Added            = "Number %d added."
	EnterSize        = "Enter a valid size."
	SizeRange        = "Size must be between 1 and 25."
	Generated        = "List of %d generated."
	GeneratedNote    = "List generated."
	ResetDone        = "List reset."
	NeedTwo          = "You need at least 2 numbers to sort."
	AlreadyRunning   = "A sort is already running."
	UnknownAlgorithm = "Unknown algorithm: %s."
	Completed        = "Sorting completed."
	SortedNoAnim     = "List sorted without animation."
	StepCounter      = "Step: %d"
)

var spanish = map[string]string{
	Compare:        "Comparando %d y %d en posiciones %d y %d.",
	Swap:           "Intercambiando %d y %d.",
	InsertKey:      "Insertando %d en su posición correcta.",
	KeyCompare:     "Comparando %d con la clave %d.",
	Shift:          "%d > %d, moviéndolo de la posición %d a la %d.",
	PlaceKey:       "Colocando %d en la posición %d.",
	MinFound:       "Mínimo encontrado: %d en posición %d. Intercambiando con %d.",
	AlreadyMin:     "Elemento en posición %d ya es el mínimo.",
	Divide:         "Dividiendo %d..%d en [%d,%d] y [%d,%d].",
	Merge:          "Fusionando [%d,%d] y [%d,%d].",
	PlaceLeft:      "Colocando %d (izquierda) en posición %d.",
	PlaceRight:     "Colocando %d (derecha) en posición %d.",
	PlaceLeftRest:  "Colocando %d (resto izquierdo) en posición %d.",
	PlaceRightRest: "Colocando %d (resto derecho) en posición %d.",
	SubRange:       "Ordenando subarreglo desde índice %d hasta %d. Pivote elegido: %d (índice %d).",
	PivotCompare:   "Comparando %d con el pivote %d.",
	PivotSwap:      "Intercambiando %d y %d (ambos ≤ pivote).",
	PlacePivot:     "Colocando pivote %d en posición %d.",
	PivotFixed:     "El pivote %d queda fijo en la posición %d.",
	Sorted:         "✅ ¡Lista ordenada correctamente!",

	Started:          "Ordenando con %s...",
	Stopped:          "Animación detenida.",
	Skipped:          "Animación saltada. Lista ordenada.",
	Fault:            "Error interno: %v",
	EnterNumber:      "Por favor ingrese un número.",
	OnlyRange:        "Solo números entre 1 y 100.",
	MaxElements:      "Máximo 25 números.",
	Added:            "Número %d añadido.",
	EnterSize:        "Ingrese una cantidad válida.",
	SizeRange:        "Tamaño debe estar entre 1 y 25.",
	Generated:        "Lista de %d generada.",
	GeneratedNote:    "Lista generada.",
	ResetDone:        "Lista reiniciada.",
	NeedTwo:          "Necesitas al menos 2 números para ordenar.",
	AlreadyRunning:   "Ya hay un ordenamiento en curso.",
	UnknownAlgorithm: "Algoritmo desconocido: %s.",
	Completed:        "Ordenamiento completado.",
	SortedNoAnim:     "Lista ordenada sin animación.",
	StepCounter:      "Paso: %d",
}

var supported = map[string]language.Tag{
	"en": language.English,
	"es": language.Spanish,
}

func init() {
	for key, msg := range spanish {
		if err := message.SetString(language.Spanish, key, msg); err != nil {
			panic(fmt.Sprintf("narrate: register %q: %v", key, err))
		}
		if err := message.SetString(language.English, key, key); err != nil {
			panic(fmt.Sprintf("narrate: register %q: %v", key, err))
		}
	}
}

// Printer formats narration keys for one language.
type Printer struct {
	tag language.Tag
	p   *message.Printer
}

// New returns a printer for a language code such as "en" or "es".
func New(lang string) (*Printer, error) {
	if lang == "" {
		lang = "en"
	}
	tag, ok := supported[lang]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", ErrUnsupportedLanguage, lang, Languages())
	}
	return &Printer{tag: tag, p: message.NewPrinter(tag)}, nil
}

// English is the default printer.
func English() *Printer {
	return &Printer{tag: language.English, p: message.NewPrinter(language.English)}
}

func (p *Printer) Sprintf(key string, args ...any) string {
	return p.p.Sprintf(key, args...)
}

func (p *Printer) Language() string {
	base, _ := p.tag.Base()
	return base.String()
}

func Languages() []string {
	names := make([]string, 0, len(supported))
	for name := range supported {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
