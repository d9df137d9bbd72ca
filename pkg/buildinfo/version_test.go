package buildinfo

import "testing"

func TestTemplate(t *testing.T) {
	Version, Commit, Date = "v1.2.3", "abc123", "2024-05-01T00:00:00Z"
	t.Cleanup(func() { Version, Commit, Date = "dev", "none", "unknown" })

	want := "{{.Name}} v1.2.3 (abc123, built 2024-05-01T00:00:00Z)\n"
	if got := Template(); got != want {
		t.Errorf("Template() = %q, want %q", got, want)
	}
	if got := UserAgent("release-dashboard"); got != "release-dashboard/v1.2.3" {
		t.Errorf("UserAgent() = %q", got)
	}
}
