package phone

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"local leading zero", "0911234567", "+251911234567"},
		{"already canonical", "+251911234567", "+251911234567"},
		{"bare international", "251911234567", "+251911234567"},
		{"surrounding whitespace", "  0911234567 ", "+251911234567"},
		{"foreign number", "+14155550100", "+14155550100"},
		{"empty", "", "+"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Normalize(tc.in); got != tc.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"0911234567", "911234567", "+251911234567", " 0700000000", "abc"}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Fatalf("Normalize not idempotent for %q: %q != %q", in, twice, once)
		}
	}
}
