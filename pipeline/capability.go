// ABOUTME: One-shot capability probing for optional platform features
// ABOUTME: Probe once, cache the variant, branch explicitly at call sites
package pipeline

import "fmt"

// Capability is the cached result of probing an optional platform feature
// (camera, NFC reader, speech input, rich clipboard). Probe once at
// startup; call sites branch on Available instead of re-detecting.
type Capability struct {
	name string
	err  error
}

// ProbeCapability runs the probe and caches its verdict.
func ProbeCapability(name string, probe func() error) Capability {
	if probe == nil {
		return Capability{name: name, err: fmt.Errorf("%s is not supported on this platform", name)}
	}
	return Capability{name: name, err: probe()}
}

// Unavailable returns a capability that is known absent, with a
// user-facing reason.
func Unavailable(name, reason string) Capability {
	return Capability{name: name, err: fmt.Errorf("%s", reason)}
}

// Available reports whether the feature can be used.
func (c Capability) Available() bool {
	return c.err == nil
}

// Name is the user-facing feature name.
func (c Capability) Name() string {
	return c.name
}

// Err returns the probe failure, nil when available.
func (c Capability) Err() error {
	return c.err
}
