package scriptor

import (
	"fmt"
	"strings"
	"unicode"
)

// ProcessOutput holds the outcome of a completed script run.
// It is constructed once, after the process has fully terminated,
// and is immutable from then on.
type ProcessOutput struct {
	Code   int    `json:"code"`   // process exit code
	Stdout string `json:"stdout"` // captured stdout, trailing whitespace stripped
	Stderr string `json:"stderr"` // captured stderr, trailing whitespace stripped

	// strictStderr carries the success rule of the strategy that produced
	// this output: when set, any stderr output marks an otherwise clean
	// exit as failed. PowerShell reports non-fatal errors on stderr with a
	// zero exit code, so its strategy sets this.
	strictStderr bool
}

// Success reports whether the script run counts as successful under the
// rule of the strategy that produced it. For the POSIX and embedded
// strategies this is Code == 0; for the PowerShell strategy it additionally
// requires an empty stderr.
func (o *ProcessOutput) Success() bool {
	if o.strictStderr {
		return o.Code == 0 && o.Stderr == ""
	}
	return o.Code == 0
}

// String formats the output as the ordered triple <code, stdout, stderr>.
func (o *ProcessOutput) String() string {
	return fmt.Sprintf("<%d, %s, %s>", o.Code, o.Stdout, o.Stderr)
}

// normalize builds a ProcessOutput from raw captured output, stripping
// trailing whitespace from both streams. Leading and interior whitespace
// is preserved verbatim.
func normalize(raw *RawOutput, strictStderr bool) *ProcessOutput {
	return &ProcessOutput{
		Code:         raw.Code,
		Stdout:       strings.TrimRightFunc(raw.Stdout, unicode.IsSpace),
		Stderr:       strings.TrimRightFunc(raw.Stderr, unicode.IsSpace),
		strictStderr: strictStderr,
	}
}
