package netsrv

import (
	"fmt"

	"golang.org/x/mod/semver"
)

// ProtocolVersion is this build's wire-frame protocol version. A subscriber
// connecting to /ws/ may pass it as the ?v= query parameter; a mismatched
// major version is rejected before the socket is upgraded.
const ProtocolVersion = "v1.0.0"

// validateProtocolVersion reports an error if clientVersion is a
// malformed semver string or declares a major version incompatible with
// ProtocolVersion. An empty clientVersion is accepted (older/minimal
// subscribers that don't send ?v= aren't rejected).
func validateProtocolVersion(clientVersion string) error {
	if clientVersion == "" {
		return nil
	}
	if !semver.IsValid(clientVersion) {
		return fmt.Errorf("netsrv: malformed protocol version %q", clientVersion)
	}
	if semver.Major(clientVersion) != semver.Major(ProtocolVersion) {
		return fmt.Errorf("netsrv: incompatible protocol version %q, server speaks %q", clientVersion, ProtocolVersion)
	}
	return nil
}
