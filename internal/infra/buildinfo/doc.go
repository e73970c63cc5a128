// Package buildinfo reports the version of the llmops-cli binary.
//
// Values are injected with ldflags and fall back to what the Go toolchain
// embedded in the binary (module version, VCS revision and time):
//
//	go build -ldflags "-X github.com/yndnr/llmops-go/internal/infra/buildinfo.Version=v1.0.0"
package buildinfo
