package main

import (
	"testing"

	"github.com/deixis/scriptor"
)

func TestExitCode(t *testing.T) {
	cases := []struct {
		code int
		want int
	}{
		{3, 3},     // ordinary script failure propagates
		{127, 127}, // command not found propagates
		{-1, 1},    // signal-killed child clamps to 1
		{0, 1},     // strict-strategy failure with clean exit clamps to 1
	}
	for _, c := range cases {
		out := &scriptor.ProcessOutput{Code: c.code}
		if got := exitCode(out); got != c.want {
			t.Errorf("exitCode(code=%d) = %d, want %d", c.code, got, c.want)
		}
	}
}
