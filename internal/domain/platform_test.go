package domain

import "testing"

func TestDefaultPlatformStatus(t *testing.T) {
	tests := []struct {
		name     string
		platform string
		want     string
	}{
		{"live tv service", "YouTube TV", "Included"},
		{"live tv with suffix", "Hulu + Live TV", "Included"},
		{"broadcast network", "ESPN", "Live broadcast"},
		{"broadcast network lowercase", "nbc", "Live broadcast"},
		{"app requires provider login", "NBA App", "Included with provider login"},
		{"subscription service", "Netflix", "Included with Netflix subscription"},
		{"subscription service max", "Max", "Included with Max subscription"},
		{"unknown platform", "Twitch", "Included"},
		{"empty name", "", "Included"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DefaultPlatformStatus(tt.platform); got != tt.want {
				t.Errorf("DefaultPlatformStatus(%q) = %q, want %q", tt.platform, got, tt.want)
			}
		})
	}
}

// A name matching multiple categories must keep the earliest rule's status.
func TestDefaultPlatformStatusPrecedence(t *testing.T) {
	// "espn app" matches both the broadcast list and the "app" rule.
	if got := DefaultPlatformStatus("ESPN App"); got != "Live broadcast" {
		t.Errorf("broadcast rule should win over app rule, got %q", got)
	}
	// "hulu + live tv" matches both the live TV list and the Hulu subscription.
	if got := DefaultPlatformStatus("Hulu + Live TV"); got != "Included" {
		t.Errorf("live TV rule should win over subscription rule, got %q", got)
	}
}

func TestClassifyStatusStyle(t *testing.T) {
	tests := []struct {
		status string
		want   StatusStyle
	}{
		{"Available to rent", StyleRental},
		{"Rent or buy on Prime Video", StyleRental},
		{"Included with provider login", StyleProviderLogin},
		{"Included with Max subscription", StyleSubscription},
		{"Included", StyleIncluded},
		{"Live broadcast", StyleIncluded},
		{"", StyleIncluded},
	}

	for _, tt := range tests {
		if got := ClassifyStatusStyle(tt.status); got != tt.want {
			t.Errorf("ClassifyStatusStyle(%q) = %q, want %q", tt.status, got, tt.want)
		}
	}
}
