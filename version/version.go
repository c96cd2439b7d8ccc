package version

import (
	"fmt"
	"runtime"
)

const (
	Version = "0.3.0"
)

// VersionString is reported by the command line tool.
var VersionString = fmt.Sprintf("webstyle %s (%s)", Version, runtime.Version())
