package proto

import "testing"

func TestLogLinePayload(t *testing.T) {
	tcs := []struct {
		in, want string
	}{
		{in: "hello", want: "hello"},
		{in: "hello\n", want: "hello"},
		{in: "hello\r\n", want: "hello"},
		{in: "", want: ""},
	}
	for _, tc := range tcs {
		if got := string(LogLinePayload([]byte(tc.in))); got != tc.want {
			t.Fatalf("LogLinePayload(%q) = %q; want %q", tc.in, got, tc.want)
		}
	}
}

func TestKindString(t *testing.T) {
	if got := MsgSerialData.String(); got != "serial_data" {
		t.Fatalf("MsgSerialData.String() = %q", got)
	}
	if got := Kind(999).String(); got != "unknown" {
		t.Fatalf("Kind(999).String() = %q", got)
	}
}
