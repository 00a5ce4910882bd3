package sanitize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain text untouched",
			input: "Is this exam relevant?",
			want:  "Is this exam relevant?",
		},
		{
			name:  "strips html tags",
			input: "Hello <b>world</b> and <i>more</i>",
			want:  "Hello world and more",
		},
		{
			name:  "strips script block with content",
			input: "before <script>alert('xss')</script> after",
			want:  "before  after",
		},
		{
			name:  "strips script block case insensitive",
			input: "x <SCRIPT type=\"text/javascript\">evil()</SCRIPT> y",
			want:  "x  y",
		},
		{
			name:  "strips quoted event handler",
			input: `click onclick="steal()" here`,
			want:  "click  here",
		},
		{
			name:  "strips bare event handler",
			input: "img onerror=alert(1) done",
			want:  "img  done",
		},
		{
			name:  "strips javascript scheme",
			input: "go to javascript:alert(1) now",
			want:  "go to alert(1) now",
		},
		{
			name:  "trims whitespace",
			input: "   padded question text   ",
			want:  "padded question text",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Clean(tc.input))
		})
	}
}

func TestClean_TruncatesToMaxLength(t *testing.T) {
	long := strings.Repeat("a", MaxLength+100)
	got := Clean(long)
	assert.Len(t, []rune(got), MaxLength)

	// rune-aware: multibyte text must not be cut mid-character
	unicode := strings.Repeat("ü", MaxLength+5)
	got = Clean(unicode)
	assert.Equal(t, strings.Repeat("ü", MaxLength), got)
}

func TestClean_Idempotent(t *testing.T) {
	inputs := []string{
		"Is this exam relevant?",
		"a <script>alert(1)</script> b",
		"nested <scr<script>x</script>ipt>alert</script>",
		"jajavascript:vascript: trick",
		"oonclick=xnclick=y spliced",
		"<div onclick=\"x\">text</div>",
		strings.Repeat("long text ", 100),
		"   spaces   ",
	}
	for _, in := range inputs {
		once := Clean(in)
		assert.Equal(t, once, Clean(once), "Clean not idempotent for %q", in)
	}
}

func TestValidateQuestion(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{
			name:    "valid question",
			input:   "Is this exam relevant?",
			wantErr: nil,
		},
		{
			name:    "exactly min length",
			input:   strings.Repeat("a", MinLength),
			wantErr: nil,
		},
		{
			name:    "exactly max length",
			input:   strings.Repeat("a", MaxLength),
			wantErr: nil,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: ErrEmpty,
		},
		{
			name:    "whitespace only",
			input:   "    \t  ",
			wantErr: ErrEmpty,
		},
		{
			name:    "too short",
			input:   "short?",
			wantErr: ErrTooShort,
		},
		{
			name:    "sanitized below min length",
			input:   "<b><i><u>hey</u></i></b>",
			wantErr: ErrTooShort,
		},
		{
			name:    "script tag in raw input rejected even though cleanable",
			input:   "perfectly long question <script>x</script> indeed",
			wantErr: ErrSuspicious,
		},
		{
			name:    "javascript scheme rejected",
			input:   "please visit javascript:alert(1) for details",
			wantErr: ErrSuspicious,
		},
		{
			name:    "onerror rejected",
			input:   "a long enough question with onerror=pwn inside",
			wantErr: ErrSuspicious,
		},
		{
			name:    "onclick rejected",
			input:   "a long enough question with onclick=pwn inside",
			wantErr: ErrSuspicious,
		},
		{
			name:    "onload rejected",
			input:   "a long enough question with onload=pwn inside",
			wantErr: ErrSuspicious,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateQuestion(tc.input)
			if tc.wantErr == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func TestValidateQuestion_TooLongRawInput(t *testing.T) {
	// Clean caps at MaxLength, so over-long input validates after truncation;
	// the length error is reserved for text that stays too long after
	// sanitization, which the cap makes unreachable from this entry point.
	err := ValidateQuestion(strings.Repeat("a", MaxLength+1))
	require.NoError(t, err)
}
