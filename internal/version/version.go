// Package version holds the tool version. The probe registry is versioned
// with the tool itself, so support staff can reproduce the exact sequence
// from the version in the artifact header.
package version

const String = "0.1.0"

// UserAgent identifies outbound probe requests to the edge network.
const UserAgent = "edgedebug/" + String
