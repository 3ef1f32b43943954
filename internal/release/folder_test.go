package release

import "testing"

// TestTargetFolder covers the derivation table, including pre-release tags.
func TestTargetFolder(t *testing.T) {
	cases := []struct {
		branch     string
		preRelease bool
		want       string
	}{
		{"release/1.13", false, "1.13"},
		{"tags/v1.0.0", false, "v1.0.0"},
		{"v1.13.0", false, "1.13"},
		{"v1.13", false, "1.13"},
		{"v1.13.0-rc1", true, "v1.13.0-rc1"},
		{"main", false, "main"},
		{"feature/docs", false, "feature/docs"},
		{"", false, ""},
	}
	for _, c := range cases {
		if got := TargetFolder(c.branch, c.preRelease); got != c.want {
			t.Errorf("TargetFolder(%q, %v) = %q want %q", c.branch, c.preRelease, got, c.want)
		}
	}
}

// TestTargetFolderPreReleaseTagUntouched: the version collapse only applies
// to final releases.
func TestTargetFolderPreReleaseTagUntouched(t *testing.T) {
	if got := TargetFolder("v2.0.0", true); got != "v2.0.0" {
		t.Fatalf("pre-release tag must pass through, got %q", got)
	}
}
