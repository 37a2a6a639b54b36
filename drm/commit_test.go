//go:build linux

package drm

import "testing"

func TestCommitFlagsString(t *testing.T) {
	cases := []struct {
		flags CommitFlags
		want  string
	}{
		{0, "none"},
		{CommitFlagTestOnly, "ATOMIC_TEST_ONLY"},
		{CommitFlagTestOnly | CommitFlagAllowModeset, "ATOMIC_TEST_ONLY | ATOMIC_ALLOW_MODESET"},
		{CommitFlagPageFlipEvent | CommitFlagNonblock, "PAGE_FLIP_EVENT | ATOMIC_NONBLOCK"},
	}
	for _, c := range cases {
		if got := c.flags.String(); got != c.want {
			t.Errorf("CommitFlags(%d).String() = %q, want %q", c.flags, got, c.want)
		}
	}
}
