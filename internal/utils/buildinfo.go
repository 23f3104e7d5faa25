package utils

import (
	"os/exec"
	"runtime/debug"
	"strings"
)

const (
	unknownVersion     = "unknown"
	develBuildVersion  = "(devel)"
	gitExecutableName  = "git"
	gitDescribeCommand = "describe"
)

// GetApplicationVersion reports the module version recorded at build time.
// Development builds fall back to describing the enclosing git checkout.
func GetApplicationVersion() string {
	if buildInfo, available := debug.ReadBuildInfo(); available {
		if version := buildInfo.Main.Version; version != "" && version != develBuildVersion {
			return version
		}
	}
	for _, describeArguments := range [][]string{
		{gitDescribeCommand, "--tags", "--exact-match"},
		{gitDescribeCommand, "--tags", "--long", "--dirty"},
	} {
		// #nosec G204
		describeOutput, describeError := exec.Command(gitExecutableName, describeArguments...).Output()
		if describeError == nil {
			if version := strings.TrimSpace(string(describeOutput)); version != "" {
				return version
			}
		}
	}
	return unknownVersion
}
