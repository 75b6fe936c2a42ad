package domain

import (
	"fmt"
	"strings"
)

// statusRule assigns a default status to a platform name. Rules are evaluated
// in order and the first match wins; a name matching several categories (e.g.
// one containing both "app" and a subscription brand) keeps the earlier rule's
// status. The precedence mirrors what users already see in the app, so it must
// not be reordered casually.
type statusRule struct {
	matches func(lower string) bool
	status  func(name string) string
}

var liveTVServices = []string{
	"youtube tv",
	"hulu + live tv",
	"sling tv",
	"fubotv",
	"fubo",
	"directv stream",
}

var broadcastNetworks = []string{
	"espn",
	"abc",
	"cbs",
	"nbc",
	"fox",
	"tnt",
	"tbs",
	"the cw",
}

var subscriptionServices = []string{
	"Netflix",
	"Hulu",
	"Max",
	"Peacock",
	"Paramount+",
	"Disney+",
	"Apple TV+",
	"Prime Video",
	"ESPN+",
}

var defaultStatusRules = []statusRule{
	{
		matches: func(lower string) bool { return containsAny(lower, liveTVServices) },
		status:  func(string) string { return "Included" },
	},
	{
		matches: func(lower string) bool { return containsAny(lower, broadcastNetworks) },
		status:  func(string) string { return "Live broadcast" },
	},
	{
		matches: func(lower string) bool { return strings.Contains(lower, "app") },
		status:  func(string) string { return "Included with provider login" },
	},
	{
		matches: func(lower string) bool {
			for _, svc := range subscriptionServices {
				if strings.Contains(lower, strings.ToLower(svc)) {
					return true
				}
			}
			return false
		},
		status: func(name string) string {
			lower := strings.ToLower(name)
			for _, svc := range subscriptionServices {
				if strings.Contains(lower, strings.ToLower(svc)) {
					return fmt.Sprintf("Included with %s subscription", svc)
				}
			}
			return "Included"
		},
	},
}

// DefaultPlatformStatus synthesizes a status label for a platform name that
// arrived without one.
func DefaultPlatformStatus(name string) string {
	lower := strings.ToLower(strings.TrimSpace(name))
	for _, rule := range defaultStatusRules {
		if rule.matches(lower) {
			return rule.status(name)
		}
	}
	return "Included"
}

func containsAny(lower string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(lower, n) {
			return true
		}
	}
	return false
}

// StatusStyle buckets free-text platform statuses into the display styles the
// client renders.
type StatusStyle string

const (
	StyleRental        StatusStyle = "rental"
	StyleSubscription  StatusStyle = "subscription"
	StyleProviderLogin StatusStyle = "provider_login"
	StyleIncluded      StatusStyle = "included"
)

// ClassifyStatusStyle maps a status label to its display style by substring
// match, case-insensitively.
func ClassifyStatusStyle(status string) StatusStyle {
	lower := strings.ToLower(status)
	switch {
	case strings.Contains(lower, "rent"):
		return StyleRental
	case strings.Contains(lower, "provider login"):
		return StyleProviderLogin
	case strings.Contains(lower, "subscription"):
		return StyleSubscription
	default:
		return StyleIncluded
	}
}
