// Package compileinfo reports which build of chipqc produced a result, so that
// a filtered matrix or ledger row can be traced back to a commit.
package compileinfo

import (
	"fmt"
	"os"
	"runtime/debug"
)

type CompileInfo struct {
	Package    string
	GoVersion  string
	Commit     string
	CommitTime string
	Modified   bool
}

func (c CompileInfo) String() string {
	mod := ""
	if c.Modified {
		mod = " Files in the repo were modified after that commit."
	}

	return fmt.Sprintf("This %s binary was built with %s at commit %v at time %v.%s", c.Package, c.GoVersion, c.Commit, c.CommitTime, mod)
}

// Revision identifies the build for the run ledger: the commit, suffixed with
// "+dirty" for modified trees, or "unknown" without VCS information.
func (c CompileInfo) Revision() string {
	if c.Commit == "" {
		return "unknown"
	}
	if c.Modified {
		return c.Commit + "+dirty"
	}

	return c.Commit
}

func Get() CompileInfo {
	out := CompileInfo{}

	z, ok := debug.ReadBuildInfo()
	if !ok {
		return out
	}

	out.GoVersion = z.GoVersion
	out.Package = z.Path
	for _, s := range z.Settings {
		switch s.Key {
		case "vcs.revision":
			out.Commit = s.Value
		case "vcs.time":
			out.CommitTime = s.Value
		case "vcs.modified":
			out.Modified = s.Value == "true"
		}
	}

	return out
}

func PrintToStdErr() {
	z := Get()
	fmt.Fprintf(os.Stderr, "%s\n", z)
}
