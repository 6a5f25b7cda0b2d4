// Package buildinfo holds values stamped in at link time, e.g.
//
//	go build -ldflags "-X github.com/dmitrijs2005/smaersclient/internal/buildinfo.Version=1.0.0"
package buildinfo

import (
	"fmt"
	"io"

	"github.com/dmitrijs2005/smaersclient/fiskaly"
)

var (
	Version   = "N/A"
	BuildDate = "N/A"
	Commit    = "N/A"
)

// PrintBuildData writes the build stamp and the SDK version to w.
func PrintBuildData(w io.Writer) {
	fmt.Fprintf(w, "Build version: %s\n", Version)
	fmt.Fprintf(w, "Build date: %s\n", BuildDate)
	fmt.Fprintf(w, "Build commit: %s\n", Commit)
	fmt.Fprintf(w, "SDK version: %s\n", fiskaly.SDKVersion)
}
