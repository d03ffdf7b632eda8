package provisioning

// State holds the shared results of provisioning steps.
// It is progressively populated as each step completes and is read by
// subsequent steps that need earlier results.
type State struct {
	// ImageRef is the pushed image reference (populated by the build steps).
	ImageRef string

	// BuildID identifies the remote build (managed-build strategy only).
	BuildID string

	// EndpointURL is the deployed service URL (populated by the deploy step).
	EndpointURL string

	// ManifestPath is the rendered service manifest on disk
	// (platform-native-deploy strategy only, removed again after deploy).
	ManifestPath string
}

// NewState creates an empty provisioning state.
func NewState() *State {
	return &State{}
}
