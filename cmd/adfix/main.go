package main

import (
	"github.com/asciidoc-dita/adfix/internal/cmd"

	// Bootstrap: register all fix rules
	_ "github.com/asciidoc-dita/adfix/internal/bootstrap"
)

// Version is set by build -ldflags "-X main.Version=x.y.z"
var Version = "dev"

func main() {
	cmd.SetVersion(Version)
	cmd.Execute()
}
