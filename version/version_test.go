package version

import (
	"strings"
	"testing"
)

func TestUserAgent(t *testing.T) {
	ua := UserAgent()
	if !strings.HasPrefix(ua, "apikit/") {
		t.Errorf("expected apikit/ prefix, got %q", ua)
	}
}

func TestGetShortVersion(t *testing.T) {
	v := GetShortVersion()
	if v == "" {
		t.Error("expected non-empty version")
	}
	if !strings.HasPrefix(v, Version) {
		t.Errorf("expected %q prefix, got %q", Version, v)
	}
}
