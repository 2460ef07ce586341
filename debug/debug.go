package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Encode bool
	Decode bool
	Revive bool
	Diff   bool
}

var d *debug

func init() {
	d = &debug{}
	d.Encode = boolEnv("REFSON_DEBUG_ENCODE")
	d.Decode = boolEnv("REFSON_DEBUG_DECODE")
	d.Revive = boolEnv("REFSON_DEBUG_REVIVE")
	d.Diff = boolEnv("REFSON_DEBUG_DIFF")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Encode() bool {
	return d.Encode
}
func Decode() bool {
	return d.Decode
}
func Revive() bool {
	return d.Revive
}
func Diff() bool {
	return d.Diff
}
