package diagnostics

import "fmt"

type ColorMode int

const (
	COLOR_AUTO ColorMode = iota
	COLOR_ALWAYS
	COLOR_NEVER
)

func ParseColorMode(mode string) (ColorMode, error) {
	switch mode {
	case "", "auto":
		return COLOR_AUTO, nil
	case "always":
		return COLOR_ALWAYS, nil
	case "never":
		return COLOR_NEVER, nil
	}
	return COLOR_AUTO, fmt.Errorf("invalid color mode %q (expected auto, always or never)", mode)
}

func (mode ColorMode) String() string {
	switch mode {
	case COLOR_ALWAYS:
		return "always"
	case COLOR_NEVER:
		return "never"
	}
	return "auto"
}
