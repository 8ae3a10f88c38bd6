// Package fetch - platform.go identifies known application-form platforms so
// the fetch path can pick HTTP vs browser rendering up front.
package fetch

import (
	"net/url"
	"strings"
)

// Platform represents a known application form platform.
type Platform string

const (
	// PlatformGreenhouse is the Greenhouse ATS platform
	PlatformGreenhouse Platform = "greenhouse"
	// PlatformLever is the Lever ATS platform
	PlatformLever Platform = "lever"
	// PlatformWorkday is the Workday ATS platform
	PlatformWorkday Platform = "workday"
	// PlatformUnknown is an unrecognized platform
	PlatformUnknown Platform = "unknown"
)

// DetectPlatform identifies the form platform from a URL.
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformUnknown
	}

	host := strings.ToLower(parsed.Host)

	switch {
	case strings.Contains(host, "greenhouse.io"):
		return PlatformGreenhouse
	case strings.Contains(host, "lever.co"):
		return PlatformLever
	case strings.Contains(host, "myworkdayjobs.com") || strings.Contains(host, "workday.com"):
		return PlatformWorkday
	}
	return PlatformUnknown
}

// RequiresBrowser reports whether a platform renders its forms client-side
// and cannot be fetched over plain HTTP.
func (p Platform) RequiresBrowser() bool {
	return p == PlatformWorkday
}
