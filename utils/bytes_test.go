package utils

import "testing"

func TestConvertBytes(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0 bytes"},
		{1, "1 bytes"},
		{1023, "1023 bytes"},
		{1024, "1KB"},
		{1500, "2KB"},
		{1048576, "1MB"},
		{5 * 1048576, "5MB"},
		{1073741824, "1GB"},
		{1099511627776, "1TB"},
	}
	for _, tc := range cases {
		if got := ConvertBytes(tc.in); got != tc.want {
			t.Errorf("ConvertBytes(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
