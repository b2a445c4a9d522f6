package meta

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/coregx/jscompat/internal/testlogger"
	"github.com/google/go-cmp/cmp"
)

func TestCompileStrategy(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		flags    Flags
		literal  bool
		want     Strategy
		wantHost string
	}{
		{"literal alternation", "foo|bar", 0, true, UseLiteral, ""},
		{"literal disabled", "foo|bar", 0, false, UseHost, "foo|bar"},
		{"literal ignore case", "foo|bar", IgnoreCase, true, UseHost, "foo|bar"},
		{"prefix alternation", "a|ab", 0, true, UseHost, "a|ab"},
		{"class", "[a-z]+", 0, true, UseHost, "[a-z]+"},
		{"empty negated class", "[^]", 0, true, UseHost, `[\s\S]`},
		{"optional group reference", `(a)(b)?\2`, 0, true, UseHost, `(a)((?:b)?)\2`},
		{"infix literal alternation", "abcd|bc", 0, true, UseHost, "abcd|bc"},
		{"dot", "a.c", 0, true, UseHost, `a[^\n\r\u2028\u2029]c`},
		{"rejected", "(", 0, true, UseNever, "(?!)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.EnableLiteralSearch = tt.literal
			cfg.Logger = testlogger.New(t)
			e := Compile(tt.source, tt.flags, cfg)
			if e.Strategy() != tt.want {
				t.Errorf("Strategy() = %v, want %v", e.Strategy(), tt.want)
			}
			if e.HostSource() != tt.wantHost {
				t.Errorf("HostSource() = %q, want %q", e.HostSource(), tt.wantHost)
			}
			if e.Source() != tt.source || e.Flags() != tt.flags {
				t.Errorf("Source/Flags = %q/%v", e.Source(), e.Flags())
			}
		})
	}
}

func TestCompileRejectedPatternNeverMatches(t *testing.T) {
	logger := testlogger.New(t)
	cfg := DefaultConfig()
	cfg.Logger = logger

	e := Compile("a(b", 0, cfg)
	var ce *CompileError
	if !errors.As(e.Err(), &ce) {
		t.Fatalf("Err() = %v, want *CompileError", e.Err())
	}
	if ce.Pattern != "a(b" {
		t.Errorf("CompileError.Pattern = %q", ce.Pattern)
	}
	if !logger.Contains("never matches") {
		t.Errorf("rejection was not logged: %v", logger.Lines())
	}
	if e.NumSubexp() != 1 {
		t.Errorf("NumSubexp() = %d, want 1", e.NumSubexp())
	}
	m, err := e.FindAt(NewInput("ab"), 0)
	if m != nil || err != nil {
		t.Errorf("FindAt = %v, %v; want nil, nil", m, err)
	}
}

func TestEngineFindAt(t *testing.T) {
	tests := []struct {
		source string
		flags  Flags
		text   string
		at     int
		want   []int
	}{
		{`b+`, 0, "abbc", 0, []int{1, 3}},
		{`b+`, 0, "abbc", 3, nil},
		{`(a)(b)?\2`, 0, "a", 0, []int{0, 1, 0, 1, 1, 1}},
		{`(a)(b)?\2`, 0, "abb", 0, []int{0, 3, 0, 1, 1, 2}},
		{`x(y)?`, 0, "x", 0, []int{0, 1, -1, -1}},
		{`B`, IgnoreCase, "ab", 0, []int{1, 2}},
		{`^b`, Multiline, "a\nb", 0, []int{2, 3}},
		{`^b`, 0, "a\nb", 0, nil},
		{`[^]`, 0, "\n", 0, []int{0, 1}},
		{`[]`, 0, "abc", 0, nil},
		{`é+`, 0, "cafée", 3, []int{3, 4}},
		{`a*`, 0, "bbb", 3, []int{3, 3}},
		{`foo|bar`, 0, "xbarfoo", 0, []int{1, 4}},
		{`\101`, 0, "zA", 0, []int{1, 2}},

		// Leftmost alternative when one literal contains another.
		{`abcd|bc`, 0, "abcd", 0, []int{0, 4}},
		{`xbcx|bc`, 0, "xbcx", 0, []int{0, 4}},

		// Character classes and assertions are ASCII and line-terminator
		// aware as in the dialect.
		{`\d`, 0, "٣7", 0, []int{1, 2}},
		{`\w`, 0, "é", 0, nil},
		{`\W`, 0, "é", 0, []int{0, 1}},
		{`\bx`, 0, "éx", 0, []int{1, 2}},
		{`\s`, 0, "a\ufeff", 0, []int{1, 2}},
		{`a$`, 0, "a\n", 0, nil},
		{`a$`, Multiline, "a\n", 0, []int{0, 1}},
		{`.`, 0, "\r\n\u2028\u2029x", 0, []int{4, 5}},
		{`[.]`, 0, "a.", 0, []int{1, 2}},

		// A reference to a group that did not participate matches empty.
		{`(b)*\1`, 0, "x", 0, []int{0, 0, -1, -1}},
		{`(a)|b\1`, 0, "b", 0, []int{0, 1, -1, -1}},
		{`(?:(a)|b)\1c`, 0, "bc", 0, []int{0, 2, -1, -1}},
	}
	for _, tt := range tests {
		e := Compile(tt.source, tt.flags, DefaultConfig())
		m, err := e.FindAt(NewInput(tt.text), tt.at)
		if err != nil {
			t.Errorf("/%s/ FindAt(%q, %d) error: %v", tt.source, tt.text, tt.at, err)
			continue
		}
		if diff := cmp.Diff(tt.want, spansOf(m)); diff != "" {
			t.Errorf("/%s/ FindAt(%q, %d) mismatch (-want +got):\n%s", tt.source, tt.text, tt.at, diff)
		}
	}
}

// catastrophicEngine compiles a pattern that backtracks exponentially on a
// run of x's with no y, under a short match timeout.
func catastrophicEngine(t *testing.T) (*Engine, *Input) {
	t.Helper()
	cfg := DefaultConfig()
	cfg.MatchTimeout = 5 * time.Millisecond
	e := Compile(`(x+x+)+y|!`, 0, cfg)
	if e.Strategy() != UseHost {
		t.Fatalf("Strategy() = %v, want UseHost", e.Strategy())
	}
	return e, NewInput(strings.Repeat("x", 40) + "!")
}

func TestEngineCatastrophicFailure(t *testing.T) {
	e, in := catastrophicEngine(t)

	_, err := e.FindAt(in, 0)
	if !errors.Is(err, ErrCatastrophic) {
		t.Fatalf("FindAt error = %v, want ErrCatastrophic", err)
	}
	var se *SearchError
	if !errors.As(err, &se) || se.Strategy != UseHost {
		t.Errorf("error = %#v, want *SearchError from UseHost", err)
	}
	if st := e.Stats(); st.Searches != 1 || st.Catastrophic != 1 {
		t.Errorf("Stats() = %+v", st)
	}

	fb, err := e.Fallback()
	if err != nil {
		t.Fatal(err)
	}
	if fb.Strategy() != UseRE2 {
		t.Errorf("fallback Strategy() = %v, want UseRE2", fb.Strategy())
	}
	m, err := fb.FindAt(in, 0)
	if err != nil {
		t.Fatalf("fallback error: %v", err)
	}
	if diff := cmp.Diff([]int{40, 41, -1, -1}, spansOf(m)); diff != "" {
		t.Errorf("fallback mismatch (-want +got):\n%s", diff)
	}
	if e.Stats().FallbackSearches != 1 {
		t.Errorf("FallbackSearches = %d, want 1", e.Stats().FallbackSearches)
	}
}

func TestEngineFallbackSelection(t *testing.T) {
	tests := []struct {
		source string
		flags  Flags
		want   Strategy
	}{
		{`a+b`, 0, UseRE2},
		{`a+b`, IgnoreCase | Multiline, UseRE2},
		{`\ba`, 0, UseECMAScript},
		{`(a)\1`, 0, UseECMAScript},
		{`^a`, Multiline, UseECMAScript},
		{`foo|bar`, 0, UseLiteral},
		{`(`, 0, UseNever},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		cfg.Logger = testlogger.New(t)
		e := Compile(tt.source, tt.flags, cfg)
		fb, err := e.Fallback()
		if err != nil {
			t.Errorf("/%s/ Fallback() error: %v", tt.source, err)
			continue
		}
		if fb.Strategy() != tt.want {
			t.Errorf("/%s/ fallback Strategy() = %v, want %v", tt.source, fb.Strategy(), tt.want)
		}
	}
}

func TestEngineFallbackMatchesDialect(t *testing.T) {
	tests := []struct {
		source string
		flags  Flags
		text   string
		want   []int
	}{
		// ECMAScript mode: a reference to a group that has not participated
		// matches empty.
		{`(a)?\1b`, 0, "b", []int{0, 1, -1, -1}},
		{`\bfoo`, 0, "afoo foo", []int{5, 8}},
		{`A+`, IgnoreCase, "baaB", []int{1, 4}},
		{`b$`, Multiline, "ab\nc", []int{1, 2}},
	}
	for _, tt := range tests {
		e := Compile(tt.source, tt.flags, DefaultConfig())
		fb, err := e.Fallback()
		if err != nil {
			t.Fatalf("/%s/ Fallback() error: %v", tt.source, err)
		}
		m, err := fb.FindAt(NewInput(tt.text), 0)
		if err != nil {
			t.Errorf("/%s/ fallback FindAt error: %v", tt.source, err)
			continue
		}
		if diff := cmp.Diff(tt.want, spansOf(m)); diff != "" {
			t.Errorf("/%s/ fallback mismatch (-want +got):\n%s", tt.source, diff)
		}
	}
}

func TestErrorMessages(t *testing.T) {
	cause := errors.New("timeout")
	se := catastrophic(UseHost, cause)
	if !errors.Is(se, ErrCatastrophic) {
		t.Error("SearchError should wrap ErrCatastrophic")
	}
	if !errors.Is(se, cause) && !strings.Contains(se.Error(), "timeout") {
		t.Errorf("SearchError should mention its cause: %v", se)
	}

	ce := &CompileError{Pattern: "(", Host: "(", Err: errors.New("bad")}
	if ce.Error() != "jscompat: invalid pattern /(/: bad" {
		t.Errorf("CompileError.Error() = %q", ce.Error())
	}
}
