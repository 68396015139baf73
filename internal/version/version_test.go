package version

import "testing"

func TestResolvePrefersLdflags(t *testing.T) {
	prevV, prevC, prevB := Version, Commit, BuildTime
	defer func() { Version, Commit, BuildTime = prevV, prevC, prevB }()

	Version, Commit, BuildTime = "v1.2.3", "0123456789abcdef0123", "2026-01-02T03:04:05Z"
	info := Resolve()
	if info.Version != "v1.2.3" || info.Commit != Commit || info.BuildTime != BuildTime {
		t.Fatalf("unexpected info: %+v", info)
	}
	if got := String(); got != "v1.2.3 (0123456789ab)" {
		t.Fatalf("String: got %q", got)
	}
}

func TestResolveNeverEmpty(t *testing.T) {
	prevV := Version
	defer func() { Version = prevV }()

	Version = ""
	if Resolve().Version == "" {
		t.Fatal("expected a fallback version")
	}
}

func TestShortCommit(t *testing.T) {
	t.Parallel()
	if shortCommit("abc") != "abc" {
		t.Fatal("short commits should be unchanged")
	}
	if shortCommit("0123456789abcdef") != "0123456789ab" {
		t.Fatal("long commits should be cut to 12 characters")
	}
}
