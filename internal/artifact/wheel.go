package artifact

import (
	"fmt"
	"strings"
)

// WheelName is the parsed form of a wheel filename:
// <dist>-<version>(-<build>)?-<python>-<abi>-<platform>.whl
type WheelName struct {
	Dist     string
	Version  string
	Build    string // optional build tag, rarely present
	Python   string // e.g. cp311
	ABI      string // e.g. cp311
	Platform string // e.g. linux_x86_64, manylinux2014_x86_64
}

// ParseWheelName splits a wheel filename into its tag components.
func ParseWheelName(filename string) (WheelName, error) {
	base, ok := strings.CutSuffix(filename, ".whl")
	if !ok {
		return WheelName{}, fmt.Errorf("not a wheel filename: %s", filename)
	}
	parts := strings.Split(base, "-")
	switch len(parts) {
	case 5:
		return WheelName{Dist: parts[0], Version: parts[1], Python: parts[2], ABI: parts[3], Platform: parts[4]}, nil
	case 6:
		return WheelName{Dist: parts[0], Version: parts[1], Build: parts[2], Python: parts[3], ABI: parts[4], Platform: parts[5]}, nil
	default:
		return WheelName{}, fmt.Errorf("malformed wheel filename %s: %d segments", filename, len(parts))
	}
}

// String renders the canonical filename.
func (w WheelName) String() string {
	segs := []string{w.Dist, w.Version}
	if w.Build != "" {
		segs = append(segs, w.Build)
	}
	segs = append(segs, w.Python, w.ABI, w.Platform)
	return strings.Join(segs, "-") + ".whl"
}

// portableBaseline is the most portable linux platform tag this tool
// certifies: it matches what the external repair tool links against.
const portableBaseline = "manylinux2014_x86_64"

// PortablePlatform maps a raw linux platform tag to the portable baseline
// tag. Tags that are already portable, or that belong to other platforms,
// pass through unchanged.
func PortablePlatform(tag string) string {
	if strings.HasPrefix(tag, "linux_") {
		return portableBaseline
	}
	return tag
}

// Repaired returns the wheel name with its platform tag rewritten to the
// portable baseline.
func (w WheelName) Repaired() WheelName {
	w.Platform = PortablePlatform(w.Platform)
	return w
}
