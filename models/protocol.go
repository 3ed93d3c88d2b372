package models

import "strconv"

// Supported EAS protocol version strings, oldest first.
const (
	VersionExchange2003  = "2.5"
	VersionExchange2007  = "12.0"
	VersionExchange2007S = "12.1"
	VersionExchange2010  = "14.0"
	VersionExchange2010S = "14.1"
)

// Numeric values of the version strings, used for feature gating.
const (
	VersionExchange2003Double  = 2.5
	VersionExchange2007Double  = 12.0
	VersionExchange2007SDouble = 12.1
	VersionExchange2010Double  = 14.0
	VersionExchange2010SDouble = 14.1
)

// supportedVersions lists every version this client can speak, oldest first.
// Negotiation picks the highest entry also advertised by the server.
var supportedVersions = []string{
	VersionExchange2003,
	VersionExchange2007,
	VersionExchange2007S,
	VersionExchange2010,
	VersionExchange2010S,
}

// VersionDouble maps a protocol version string to its numeric value.
// Unknown or empty strings map to 0.
func VersionDouble(version string) float64 {
	d, err := strconv.ParseFloat(version, 64)
	if err != nil {
		return 0
	}
	return d
}

// IsVersionSupported reports whether version is one this client can speak.
func IsVersionSupported(version string) bool {
	for _, v := range supportedVersions {
		if v == version {
			return true
		}
	}
	return false
}

// NegotiateVersion returns the highest client-supported version present in
// serverVersions (the parsed MS-ASProtocolVersions header values), or an
// empty string when there is no overlap.
func NegotiateVersion(serverVersions []string) string {
	best := ""
	bestDouble := 0.0
	for _, v := range serverVersions {
		if !IsVersionSupported(v) {
			continue
		}
		if d := VersionDouble(v); d > bestDouble {
			best = v
			bestDouble = d
		}
	}
	return best
}
