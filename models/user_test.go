package models

import "testing"

func TestDeriveFlags(t *testing.T) {
	cases := []struct {
		role    string
		isAdmin bool
		isHost  bool
	}{
		{RoleUser, false, false},
		{RoleHost, false, true},
		{RoleAdmin, true, false},
		{"", false, false},
	}

	for _, tc := range cases {
		got := Profile{UserID: "u1", Role: tc.role}.DeriveFlags()
		if got.IsAdmin != tc.isAdmin || got.IsHost != tc.isHost {
			t.Fatalf("role %q: got admin=%v host=%v, want admin=%v host=%v",
				tc.role, got.IsAdmin, got.IsHost, tc.isAdmin, tc.isHost)
		}
		if got.IsAdmin && got.IsHost {
			t.Fatalf("role %q: flags must be mutually exclusive", tc.role)
		}
	}
}
