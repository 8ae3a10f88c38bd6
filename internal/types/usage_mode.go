package types

import (
	"fmt"
	"strings"
)

// UsageMode is the global policy governing when generative calls are allowed.
type UsageMode string

const (
	// ModeAuto attempts one bulk generative call covering all unmapped fields.
	ModeAuto UsageMode = "auto"
	// ModeConservative calls the service only for subjective open-ended fields.
	// This is the default.
	ModeConservative UsageMode = "conservative"
	// ModeOff never calls the service; unmapped fields stay blank.
	ModeOff UsageMode = "off"
)

// DefaultUsageMode is used when no mode has been configured.
const DefaultUsageMode = ModeConservative

// ParseUsageMode validates a mode string, accepting any casing.
func ParseUsageMode(s string) (UsageMode, error) {
	switch UsageMode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeAuto:
		return ModeAuto, nil
	case ModeConservative:
		return ModeConservative, nil
	case ModeOff:
		return ModeOff, nil
	case "":
		return DefaultUsageMode, nil
	}
	return "", fmt.Errorf("unknown usage mode %q (want auto, conservative, or off)", s)
}
