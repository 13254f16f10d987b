package cli

import (
	"sha256sum/internal/buildinfo"
)

// configureVersion enables --version, printing the build metadata block.
func (r *RootCommand) configureVersion() {
	r.cmd.Version = buildinfo.Get().String()
	r.cmd.SetVersionTemplate("{{.Version}}\n")
}
