package domain

const (
	// NoVRFlag tells the companion executable to start without VR hardware.
	NoVRFlag = "--no-vr"

	// LocationNone is the platform's literal "no instance" marker. The API
	// reports it for users who are online but not in any world.
	LocationNone = "none"

	// SteamLaunchURI starts the platform client through Steam, which handles
	// the VR runtime handoff itself.
	SteamLaunchURI = "steam://rungameid/250820"

	launchURIPrefix = "vrchat://launch?id="
)

// LaunchSpec describes one launch request. Built fresh per request, immutable
// once built.
type LaunchSpec struct {
	ExecutablePath string
	DesktopMode    bool
	TargetLocation string
}

// Args assembles the argument vector without touching the filesystem.
// Existence of the executable is the launch service's precondition check, not
// this method's concern.
func (s LaunchSpec) Args() []string {
	args := []string{s.ExecutablePath}
	if s.DesktopMode {
		args = append(args, NoVRFlag)
	}
	if s.TargetLocation != "" && s.TargetLocation != LocationNone {
		args = append(args, launchURIPrefix+s.TargetLocation)
	}

	return args
}

// LaunchOutcome reports one spawn attempt. Err is nil when the OS accepted the
// spawn request; the launched process itself is never waited on.
type LaunchOutcome struct {
	Command []string
	Err     error
}
