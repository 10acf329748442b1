package cmd

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaoapp/mongoverify/share"
)

var printAllVersion bool
var versionTemplate = `Version:	  %s
Go version:	  %s
Git commit:	  %s
Built:	          %s
OS/Arch:	  %s/%s
mongo-driver:	  %s
testify:	  %s
`

// modules the versions are reported for, captured documents and mocks come from them
var modules = map[string]string{
	"mongo-driver": "go.mongodb.org/mongo-driver",
	"testify":      "github.com/stretchr/testify",
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: L("Show version"),
	Long:  L("Show version"),
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		if !printAllVersion {
			fmt.Fprintln(out, share.VERSION)
			return
		}

		build := readBuild()
		fmt.Fprintf(out, versionTemplate,
			share.VERSION,
			runtime.Version(),
			build.commit, build.time,
			runtime.GOOS, runtime.GOARCH,
			build.deps["mongo-driver"],
			build.deps["testify"])
	},
}

type buildInfo struct {
	commit string
	time   string
	deps   map[string]string
}

// readBuild the commit and build time stamped by the go toolchain, PRVERSION
// (commit-time) when the binary carries no vcs information
func readBuild() buildInfo {
	commit := strings.Split(share.PRVERSION, "-")[0]
	build := buildInfo{
		commit: commit,
		time:   strings.TrimPrefix(share.PRVERSION, commit+"-"),
		deps:   map[string]string{},
	}
	for name := range modules {
		build.deps[name] = "unknown"
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return build
	}

	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			build.commit = setting.Value
		case "vcs.time":
			build.time = setting.Value
		}
	}

	for name, path := range modules {
		for _, dep := range info.Deps {
			if dep.Path == path {
				build.deps[name] = dep.Version
			}
		}
	}
	return build
}

func init() {
	versionCmd.PersistentFlags().BoolVarP(&printAllVersion, "all", "", false, L("Print all version information"))
}
