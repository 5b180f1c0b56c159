package profile

import (
	"fmt"
	"sort"
	"strings"
)

// Default is the profile used when none is selected.
const Default = "fridge"

const (
	firmwareBinary = "rustyfridge"
	boardFeature   = "board"
	hostFeature    = "host"
)

var builtins = map[string]Profile{
	"fridge": {
		Name:        "fridge",
		Description: "release build converted to Intel HEX",
		Target:      DefaultTarget,
		Binary:      firmwareBinary,
		Hex:         true,
	},
	"fridge-board": {
		Name:        "fridge-board",
		Description: "board-feature release build converted to Intel HEX, host tests",
		Target:      DefaultTarget,
		Binary:      firmwareBinary,
		Features:    []string{boardFeature},
		HostFeature: hostFeature,
		Hex:         true,
	},
	"bare": {
		Name:        "bare",
		Description: "plain release build, host tests",
		Target:      DefaultTarget,
		Binary:      firmwareBinary,
		HostFeature: hostFeature,
	},
	"bare-board": {
		Name:        "bare-board",
		Description: "board-feature release build, host tests",
		Target:      DefaultTarget,
		Binary:      firmwareBinary,
		Features:    []string{boardFeature},
		HostFeature: hostFeature,
	},
}

// Lookup returns the built-in profile with the given name.
func Lookup(name string) (Profile, error) {
	p, ok := builtins[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Profile{}, fmt.Errorf("invalid profile %q (valid: %s)", name, strings.Join(Names(), ", "))
	}
	return p, nil
}

// Names returns the built-in profile names, sorted.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
