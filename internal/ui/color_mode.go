package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

const (
	colorModeAlwaysStringConstant        = "always"
	colorModeNeverStringConstant         = "never"
	colorModeAutoStringConstant          = "auto"
	unsupportedColorModeTemplateConstant = "unsupported color mode: %s (expected one of %s)"
	colorModeChoicesSeparatorConstant    = ", "
)

// ColorMode controls whether status lines carry escape sequences.
type ColorMode string

// Supported color modes.
const (
	ColorModeAlways ColorMode = ColorMode(colorModeAlwaysStringConstant)
	ColorModeNever  ColorMode = ColorMode(colorModeNeverStringConstant)
	ColorModeAuto   ColorMode = ColorMode(colorModeAutoStringConstant)
)

// ColorModeChoices lists the accepted color mode names.
func ColorModeChoices() []string {
	return []string{colorModeAlwaysStringConstant, colorModeNeverStringConstant, colorModeAutoStringConstant}
}

// ParseColorMode resolves a color mode name. An empty value selects ColorModeAlways.
func ParseColorMode(value string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case emptyStringConstant, colorModeAlwaysStringConstant:
		return ColorModeAlways, nil
	case colorModeNeverStringConstant:
		return ColorModeNever, nil
	case colorModeAutoStringConstant:
		return ColorModeAuto, nil
	default:
		return emptyStringConstant, fmt.Errorf(unsupportedColorModeTemplateConstant, value, strings.Join(ColorModeChoices(), colorModeChoicesSeparatorConstant))
	}
}

// EnabledFor reports whether escape sequences should be written to outputWriter.
// ColorModeAuto requires both the process-wide fatih/color switch, which honours NO_COLOR and
// TERM=dumb, and a terminal behind outputWriter. Wrapping writers are looked through via Unwrap.
func (mode ColorMode) EnabledFor(outputWriter io.Writer) bool {
	switch mode {
	case ColorModeNever:
		return false
	case ColorModeAuto:
		return !color.NoColor && writesToTerminal(outputWriter)
	default:
		return true
	}
}

// Apply returns the messenger unchanged when color is enabled for its writer and a plain copy otherwise.
func (mode ColorMode) Apply(messenger *Messenger) *Messenger {
	if messenger == nil || mode.EnabledFor(messenger.outputWriter) {
		return messenger
	}
	return messenger.WithPlainOutput()
}

func writesToTerminal(outputWriter io.Writer) bool {
	for outputWriter != nil {
		if descriptorWriter, hasDescriptor := outputWriter.(interface{ Fd() uintptr }); hasDescriptor {
			return term.IsTerminal(int(descriptorWriter.Fd()))
		}
		wrappingWriter, wraps := outputWriter.(interface{ Unwrap() io.Writer })
		if !wraps {
			return false
		}
		outputWriter = wrappingWriter.Unwrap()
	}
	return false
}
