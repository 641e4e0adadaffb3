package utils

import "testing"

func TestSanitizeHeaderFilename(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"report.pdf", "report.pdf"},
		{"  padded.txt  ", "padded.txt"},
		{"", "download"},
		{"   ", "download"},
		{"evil\r\nSet-Cookie: x.txt", "evilSet-Cookie: x.txt"},
		{`quo"ted.doc`, "quoted.doc"},
		{"../../etc/passwd", ".._.._etc_passwd"},
	}
	for _, tc := range cases {
		if got := SanitizeHeaderFilename(tc.in); got != tc.want {
			t.Errorf("SanitizeHeaderFilename(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
