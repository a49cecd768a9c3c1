package transport

import (
	"fmt"
	"net/url"
	"strings"
)

// managedApexes maps managed sub-domain suffixes to the apex domain used in
// their place. Requests to a managed sub-domain would otherwise bounce
// through a redirect at that edge on every call.
var managedApexes = map[string]string{
	".astrox.app": "astrox.app",
}

// resolveHost turns the configured host and the ambient page origin into the
// absolute origin all request paths are resolved against.
//
// An explicit host carrying a scheme is taken as a full origin. A bare host
// is qualified with the ambient origin's scheme. With no host at all the
// ambient origin itself is used. When neither side yields an origin the
// client cannot be constructed.
func resolveHost(host, ambient string) (*url.URL, error) {
	switch {
	case host != "" && strings.Contains(host, "://"):
		u, err := url.Parse(host)
		if err != nil {
			return nil, NewConfigurationError(fmt.Sprintf("invalid host %q: %v", host, err))
		}
		return canonicalize(u), nil

	case host != "":
		scheme, err := ambientScheme(ambient)
		if err != nil {
			return nil, err
		}
		u, err := url.Parse(scheme + "://" + host)
		if err != nil {
			return nil, NewConfigurationError(fmt.Sprintf("invalid host %q: %v", host, err))
		}
		return canonicalize(u), nil

	case ambient != "":
		u, err := url.Parse(ambient)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return nil, NewConfigurationError(fmt.Sprintf("invalid ambient origin %q", ambient))
		}
		return canonicalize(u), nil

	default:
		return nil, NewConfigurationError("no host configured and no ambient origin available")
	}
}

func ambientScheme(ambient string) (string, error) {
	if ambient == "" {
		return "", NewConfigurationError("bare host configured but no ambient origin supplies a scheme")
	}
	u, err := url.Parse(ambient)
	if err != nil || u.Scheme == "" {
		return "", NewConfigurationError(fmt.Sprintf("invalid ambient origin %q", ambient))
	}
	return u.Scheme, nil
}

// canonicalize rewrites a managed sub-domain to its apex
func canonicalize(u *url.URL) *url.URL {
	hostname := u.Hostname()
	for suffix, apex := range managedApexes {
		if strings.HasSuffix(hostname, suffix) {
			c := *u
			if port := u.Port(); port != "" {
				c.Host = apex + ":" + port
			} else {
				c.Host = apex
			}
			return &c
		}
	}
	return u
}

// isLocalHost reports whether the hostname points at a local development host
func isLocalHost(hostname string) bool {
	return hostname == "127.0.0.1" || strings.HasSuffix(hostname, "localhost")
}
