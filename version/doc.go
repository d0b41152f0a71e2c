// Package version reports the build identity of the iterx binary.
//
// Version, commit and build time are stamped at link time:
//
//	go build -ldflags "-X github.com/kbukum/iterx/version.Version=0.3.0" ./cmd/iterx
//
// Anything left unset falls back to the VCS settings Go embeds in the
// binary.
package version
