package xbgas

// Version information for the PGAS emulation runtime.
const (
	// Version is the current runtime version.
	Version = "0.1.0"

	// VersionMajor is the major version number.
	VersionMajor = 0

	// VersionMinor is the minor version number.
	VersionMinor = 1

	// VersionPatch is the patch version number.
	VersionPatch = 0
)

// Info describes a runtime instance.
type Info struct {
	// Version is the runtime version string.
	Version string

	// Model names the execution model.
	Model string

	// NPEs is the configured PE count, -1 if the runtime is closed.
	NPEs int
}

// GetInfo returns version and topology information for the runtime.
//
// Example:
//
//	info := rt.GetInfo()
//	fmt.Printf("xbgas %s (%s), %d PEs\n", info.Version, info.Model, info.NPEs)
func (r *Runtime) GetInfo() Info {
	return Info{
		Version: Version,
		Model:   "single-node PGAS emulation",
		NPEs:    r.NumPEs(),
	}
}
