package booking

import "testing"

func TestNights(t *testing.T) {
	cases := []struct {
		in, out string
		want    int
		ok      bool
	}{
		{"2026-01-10", "2026-01-12", 2, true},
		{"2026-01-10", "2026-01-11", 1, true},
		{"2026-01-10", "2026-01-10", 0, false},
		{"2026-01-12", "2026-01-10", 0, false},
		{"not-a-date", "2026-01-10", 0, false},
		{"2026-01-10", "garbage", 0, false},
		{"2026-02-27", "2026-03-02", 3, true},
	}

	for _, tc := range cases {
		got, ok := nights(tc.in, tc.out)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("nights(%q, %q) = %d, %v; want %d, %v", tc.in, tc.out, got, ok, tc.want, tc.ok)
		}
	}
}

func TestGenIDShape(t *testing.T) {
	id := genID()
	if len(id) != 13 || id[0] != 'b' {
		t.Fatalf("unexpected booking id shape: %q", id)
	}
	for _, c := range id[1:] {
		if c < '0' || c > '9' {
			t.Fatalf("booking id suffix should be digits: %q", id)
		}
	}
}
