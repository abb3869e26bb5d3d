package version

import "testing"

func TestString(t *testing.T) {
	oldV, oldC, oldB := Version, CommitSHA, BuildDate
	defer func() { Version, CommitSHA, BuildDate = oldV, oldC, oldB }()

	Version, CommitSHA, BuildDate = "v1.2.0", "abc1234", "2026-10-01"

	want := "v1.2.0 (commit abc1234, built 2026-10-01)"
	if got := String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
