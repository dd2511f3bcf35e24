package main

import (
	"fmt"
	"os"

	"github.com/MKhiriev/go-save-sync/internal/cli"
	"github.com/MKhiriev/go-save-sync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	cmd := cli.NewRootCommand(models.NewAppBuildInfo(buildVersion, buildDate, buildCommit))
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
