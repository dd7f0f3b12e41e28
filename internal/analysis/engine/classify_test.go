package engine

import "testing"

func TestDetectPlatform(t *testing.T) {
	cases := []struct {
		url  string
		want Platform
	}{
		{"https://www.behance.net/jane", PlatformBehance},
		{"https://DRIBBBLE.com/jane", PlatformDribbble},
		{"https://linkedin.com/in/jane", PlatformLinkedIn},
		{"https://jane.notion.site", PlatformNotion},
		{"https://www.notion.so/jane", PlatformNotion},
		{"https://jane.webflow.io", PlatformCustom},
		{"https://jane.framer.com", PlatformCustom},
		{"https://jane.squarespace.com", PlatformCustom},
		{"https://janedoe.design", PlatformGeneric},
		{"", PlatformGeneric},
	}
	for _, tc := range cases {
		if got := DetectPlatform(tc.url); got != tc.want {
			t.Fatalf("DetectPlatform(%q) = %s, want %s", tc.url, got, tc.want)
		}
		// idempotent
		if got := DetectPlatform(tc.url); got != DetectPlatform(tc.url) {
			t.Fatalf("DetectPlatform(%q) not stable: %s", tc.url, got)
		}
	}
}

func TestDetectSpecializationPriority(t *testing.T) {
	cases := []struct {
		title, desc string
		want        Specialization
	}{
		{"iOS app design", "", SpecMobile},
		{"SaaS dashboards", "", SpecWeb},
		{"Brand identity work", "", SpecBranding},
		{"UX research portfolio", "usability studies", SpecResearch},
		{"Motion reel", "3d animation", SpecMotion},
		{"Selected works", "", SpecGeneral},
		// mobile outranks web when both match
		{"Mobile web design", "", SpecMobile},
	}
	for _, tc := range cases {
		if got := DetectSpecialization(tc.title, tc.desc); got != tc.want {
			t.Fatalf("DetectSpecialization(%q, %q) = %s, want %s", tc.title, tc.desc, got, tc.want)
		}
	}
}

func TestSourceName(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"https://behance.net/jane", "Behance portfolio"},
		{"https://dribbble.com/jane", "Dribbble page"},
		{"https://linkedin.com/in/jane", "LinkedIn profile"},
		{"https://janedoe.design", "web portfolio"},
		{"", "portfolio"},
	}
	for _, tc := range cases {
		if got := SourceName(tc.url); got != tc.want {
			t.Fatalf("SourceName(%q) = %q, want %q", tc.url, got, tc.want)
		}
	}
}
