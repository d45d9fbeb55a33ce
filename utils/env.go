package utils

import (
	"os"
	"strconv"

	"go.viam.com/sparseplan/logging"
)

// GetenvInt returns the integer value of the named environment variable, or defaultVal when it is
// unset or malformed.
func GetenvInt(name string, defaultVal int) int {
	raw, ok := os.LookupEnv(name)
	if !ok || raw == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		logging.Global().Warnw("ignoring malformed integer environment variable", "name", name, "value", raw)
		return defaultVal
	}
	return val
}
