package compliance

import "testing"

func TestParseMode(t *testing.T) {
	cases := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"", Permissive, false},
		{"permissive", Permissive, false},
		{"Strict", Strict, false},
		{" strict ", Strict, false},
		{"lenient", Permissive, true},
	}
	for _, tc := range cases {
		got, err := ParseMode(tc.in)
		if (err != nil) != tc.wantErr {
			t.Fatalf("ParseMode(%q) err=%v wantErr=%v", tc.in, err, tc.wantErr)
		}
		if got != tc.want {
			t.Fatalf("ParseMode(%q) = %v want %v", tc.in, got, tc.want)
		}
	}
}

func TestMode_String(t *testing.T) {
	if Strict.String() != "strict" || Permissive.String() != "permissive" {
		t.Fatalf("unexpected names %q %q", Strict, Permissive)
	}
	if !Strict.Strict() || Permissive.Strict() {
		t.Fatalf("Strict() mismatch")
	}
	if Mode(7).String() != "Mode(7)" {
		t.Fatalf("unexpected fallback name %q", Mode(7))
	}
}
