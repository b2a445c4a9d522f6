package jscompat

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/coregx/jscompat/internal/testlogger"
	"github.com/google/go-cmp/cmp"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		flags   Flags
		subject string
		want    *MatchResult
	}{
		{
			name: "global collects whole matches", source: `a`, flags: Global, subject: "banana",
			want: &MatchResult{Global: true, Matches: []string{"a", "a", "a"}},
		},
		{
			name: "global ignores groups", source: `(\d)(x)?`, flags: Global, subject: "a1b22",
			want: &MatchResult{Global: true, Matches: []string{"1", "2", "2"}},
		},
		{
			name: "global literal alternation", source: `foo|bar`, flags: Global, subject: "foobarxfoo",
			want: &MatchResult{Global: true, Matches: []string{"foo", "bar", "foo"}},
		},
		{
			name: "global empty matches", source: `x*`, flags: Global, subject: "ab",
			want: &MatchResult{Global: true, Matches: []string{"", "", ""}},
		},
		{
			name: "groups and index", source: `(a)(x)?`, subject: "ba",
			want: &MatchResult{
				Groups: []Submatch{{"a", true}, {"a", true}, {"", false}},
				Index:  1,
				Input:  "ba",
			},
		},
		{
			name: "code point index", source: `(本)`, subject: "日本語",
			want: &MatchResult{
				Groups: []Submatch{{"本", true}, {"本", true}},
				Index:  1,
				Input:  "日本語",
			},
		},
		{
			name: "optional group reference", source: `(a)(b)?\2`, subject: "a",
			want: &MatchResult{
				Groups: []Submatch{{"a", true}, {"a", true}, {"", true}},
				Index:  0,
				Input:  "a",
			},
		},
		{
			name: "negated empty class", source: `[^]`, flags: Global, subject: "a\nb",
			want: &MatchResult{Global: true, Matches: []string{"a", "\n", "b"}},
		},
		{
			name: "leftmost of nested literals", source: `abcd|bc`, flags: Global, subject: "abcd xbcx",
			want: &MatchResult{Global: true, Matches: []string{"abcd", "bc"}},
		},
		{
			name: "ascii digits", source: `\d+`, flags: Global, subject: "٣12٤",
			want: &MatchResult{Global: true, Matches: []string{"12"}},
		},
		{name: "ascii word", source: `\w`, subject: "é", want: nil},
		{name: "end before final newline", source: `a$`, subject: "a\n", want: nil},
		{name: "dot and carriage return", source: `.`, subject: "\r", want: nil},
		{
			name: "reference to skipped group", source: `(a)|b\1`, subject: "b",
			want: &MatchResult{
				Groups: []Submatch{{"b", true}, {"", false}},
				Index:  0,
				Input:  "b",
			},
		},
		{name: "empty class", source: `[]`, flags: Global, subject: "abc", want: nil},
		{name: "no match", source: `z`, subject: "abc", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestEngine(t)
			got := e.Match(NewRealm(), tt.subject, e.CompileRegExp(tt.source, tt.flags))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Match() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMatchResultStrings(t *testing.T) {
	r := &MatchResult{Groups: []Submatch{{"x", true}, {"x", true}, {"", false}}}
	if diff := cmp.Diff([]string{"x", "x", "undefined"}, r.Strings()); diff != "" {
		t.Errorf("Strings() mismatch (-want +got):\n%s", diff)
	}
	g := &MatchResult{Global: true, Matches: []string{"a", "b"}}
	if diff := cmp.Diff([]string{"a", "b"}, g.Strings()); diff != "" {
		t.Errorf("Strings() mismatch (-want +got):\n%s", diff)
	}
}

func TestSearch(t *testing.T) {
	tests := []struct {
		source  string
		flags   Flags
		subject string
		want    int
	}{
		{`a`, Global, "banana", 1},
		{`n`, 0, "banana", 2},
		{`B`, IgnoreCase, "abc", 1},
		{`語`, 0, "日本語", 2},
		{`^b`, Multiline, "a\nb", 2},
		{`^b`, 0, "a\nb", -1},
		{`z`, 0, "abc", -1},
		{`$`, 0, "abc", 3},
	}
	for _, tt := range tests {
		e, _ := newTestEngine(t)
		re := e.CompileRegExp(tt.source, tt.flags)
		if got := e.Search(NewRealm(), tt.subject, re); got != tt.want {
			t.Errorf("%v.search(%q) = %d, want %d", re, tt.subject, got, tt.want)
		}
	}
}

func TestReplace(t *testing.T) {
	tests := []struct {
		source      string
		flags       Flags
		subject     string
		replacement string
		want        string
	}{
		{`a(b)c`, 0, "xabcx", "$1-$1", "xb-bx"},
		{`a`, 0, "banana", "o", "bonana"},
		{`a`, Global, "banana", "o", "bonono"},
		{`(\d)`, Global, "a1b2", "<$1>", "a<1>b<2>"},
		{`x*`, Global, "abc", "-", "-a-b-c-"},
		{`b`, 0, "abc", "[$`|$']", "a[a|c]c"},
		{`b`, 0, "abc", "$$", "a$c"},
		{`b`, 0, "abc", "$0", "a$0c"},
		{`(a)`, 0, "a", "$10", "a0"},
		{`(a)`, 0, "a", "$2", "$2"},
		{`(a)(x)?`, 0, "a", "[$2]", "[]"},
		{`z`, Global, "abc", "-", "abc"},
		{`本`, Global, "日本語本", "ho", "日ho語ho"},
		{`[^]`, Global, "a\nb", ".", "..."},
		{`foo|bar`, Global, "foo-bar", "$&!", "foo!-bar!"},
	}
	for _, tt := range tests {
		e, _ := newTestEngine(t)
		re := e.CompileRegExp(tt.source, tt.flags)
		if got := e.Replace(NewRealm(), tt.subject, re, tt.replacement); got != tt.want {
			t.Errorf("%q.replace(%v, %q) = %q, want %q", tt.subject, re, tt.replacement, got, tt.want)
		}
	}
}

func TestReplaceGroupZero(t *testing.T) {
	config := DefaultConfig()
	config.Logger = testlogger.New(t)
	config.ExpandGroupZero = true
	e := MustNew(config)

	re := e.CompileRegExp(`b`, 0)
	if got := e.Replace(nil, "abc", re, "[$0]"); got != "a[b]c" {
		t.Errorf("Replace = %q, want %q", got, "a[b]c")
	}
	if got := e.ReplaceString("abc", "b", "[$0]"); got != "a[b]c" {
		t.Errorf("ReplaceString = %q, want %q", got, "a[b]c")
	}
}

func TestReplaceString(t *testing.T) {
	tests := []struct {
		subject, search, replacement, want string
	}{
		{"abc", "b", "$&$&", "abbc"},
		{"abcb", "b", "x", "axcb"},
		{"abc", "z", "x", "abc"},
		{"a.c", ".", "$$", "a$c"},
		{"abc", "b", "$1", "a$1c"},
		{"abc", "b", "$`$'", "aacc"},
		{"abc", "", "x", "xabc"},
	}
	e, _ := newTestEngine(t)
	for _, tt := range tests {
		if got := e.ReplaceString(tt.subject, tt.search, tt.replacement); got != tt.want {
			t.Errorf("%q.replace(%q, %q) = %q, want %q", tt.subject, tt.search, tt.replacement, got, tt.want)
		}
	}
}

func TestActionsRecordMatchState(t *testing.T) {
	e, _ := newTestEngine(t)
	realm := NewRealm()

	e.Match(realm, "x", e.CompileRegExp(`(x)(y)?`, 0))
	want := MatchState{
		LastMatch: "x",
		Parens:    [9]string{"x", ""},
		LastParen: "",
		Input:     "x",
	}
	if diff := cmp.Diff(want, realm.State()); diff != "" {
		t.Errorf("state after match (-want +got):\n%s", diff)
	}

	e.Replace(realm, "a1b2c", e.CompileRegExp(`(\d)`, Global), "#")
	want = MatchState{
		LastMatch:    "2",
		Parens:       [9]string{"2"},
		LastParen:    "2",
		LeftContext:  "a1b",
		RightContext: "c",
		Input:        "a1b2c",
	}
	if diff := cmp.Diff(want, realm.State()); diff != "" {
		t.Errorf("state after replace (-want +got):\n%s", diff)
	}

	// Failed operations leave the state alone.
	e.Search(realm, "abc", e.CompileRegExp(`z`, 0))
	e.Replace(realm, "abc", e.CompileRegExp(`z`, 0), "y")
	e.ReplaceString("abc", "b", "y")
	if diff := cmp.Diff(want, realm.State()); diff != "" {
		t.Errorf("state after failed operations (-want +got):\n%s", diff)
	}

	e.Search(realm, "日本語", e.CompileRegExp(`本`, 0))
	if s := realm.State(); s.LeftContext != "日" || s.RightContext != "語" || s.LastParen != "" {
		t.Errorf("state after search = %+v", s)
	}
}

func TestActionsNilRealm(t *testing.T) {
	e, _ := newTestEngine(t)
	re := e.CompileRegExp(`(a)`, Global)
	if got := e.Replace(nil, "aa", re, "b"); got != "bb" {
		t.Errorf("Replace = %q", got)
	}
	if got := e.Search(nil, "ba", re); got != 1 {
		t.Errorf("Search = %d", got)
	}
	if got := e.Match(nil, "aa", re); got == nil || len(got.Matches) != 2 {
		t.Errorf("Match = %+v", got)
	}
}

func TestPerform(t *testing.T) {
	e, _ := newTestEngine(t)
	realm := NewRealm()
	re := e.CompileRegExp(`a`, Global)

	tests := []struct {
		name    string
		op      Operation
		subject string
		target  any
		args    []string
		want    any
	}{
		{"match pattern", OpMatch, "banana", re, nil, &MatchResult{Global: true, Matches: []string{"a", "a", "a"}}},
		{"match string", OpMatch, "banana", "n.", nil, &MatchResult{Groups: []Submatch{{"na", true}}, Index: 2, Input: "banana"}},
		{"match string with flags", OpMatch, "bAnAna", "a", []string{"gi"}, &MatchResult{Global: true, Matches: []string{"A", "A", "a"}}},
		{"match nothing", OpMatch, "xyz", re, nil, (*MatchResult)(nil)},
		{"search pattern", OpSearch, "banana", re, nil, 1},
		{"search string", OpSearch, "banana", "n", nil, 2},
		{"replace pattern", OpReplace, "banana", re, []string{"o"}, "bonono"},
		{"replace string", OpReplace, "banana", "a", []string{"o"}, "bonana"},
		{"replace undefined", OpReplace, "abc", "b", nil, "aundefinedc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Perform(realm, tt.op, tt.subject, tt.target, tt.args...)
			if err != nil {
				t.Fatalf("Perform() error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Perform() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPerformErrors(t *testing.T) {
	e, _ := newTestEngine(t)

	if _, err := e.Perform(nil, OpMatch, "a", 42); !errors.Is(err, ErrInvalidTarget) {
		t.Errorf("match with int target error = %v", err)
	}
	if _, err := e.Perform(nil, OpReplace, "a", []byte("a"), "b"); !errors.Is(err, ErrInvalidTarget) {
		t.Errorf("replace with []byte target error = %v", err)
	}
	if _, err := e.Perform(nil, Operation(9), "a", "a"); !errors.Is(err, ErrInvalidOperation) {
		t.Errorf("unknown operation error = %v", err)
	}
	var fe *FlagError
	if _, err := e.Perform(nil, OpSearch, "a", "a", "q"); !errors.As(err, &fe) {
		t.Errorf("unknown flag error = %v", err)
	}
}

func TestOperationString(t *testing.T) {
	for op, want := range map[Operation]string{
		OpMatch:      "match",
		OpSearch:     "search",
		OpReplace:    "replace",
		Operation(7): "Operation(7)",
	} {
		if op.String() != want {
			t.Errorf("String() = %q, want %q", op.String(), want)
		}
	}
}

// catastrophicSubject makes (x+x+)+y backtrack exponentially.
var catastrophicSubject = strings.Repeat("x", 40) + "!"

func newTimeoutEngine(t *testing.T, fallbackTimeout time.Duration) (*Engine, *testlogger.Logger) {
	t.Helper()
	logger := testlogger.New(t)
	config := DefaultConfig()
	config.Logger = logger
	config.MatchTimeout = 5 * time.Millisecond
	config.FallbackTimeout = fallbackTimeout
	return MustNew(config), logger
}

func TestCatastrophicFallback(t *testing.T) {
	e, logger := newTimeoutEngine(t, 0)
	realm := NewRealm()
	re := e.CompileRegExp(`(x+x+)+y|!`, Global)

	got := e.Replace(realm, catastrophicSubject, re, "?")
	if want := strings.Repeat("x", 40) + "?"; got != want {
		t.Errorf("Replace = %q, want %q", got, want)
	}
	if s := realm.State(); s.LastMatch != "!" || s.LeftContext != strings.Repeat("x", 40) {
		t.Errorf("state = %+v", s)
	}
	if m := e.Match(realm, catastrophicSubject, re); m == nil || !cmp.Equal(m.Matches, []string{"!"}) {
		t.Errorf("Match = %+v", m)
	}
	if got := e.Stats().Fallbacks; got != 2 {
		t.Errorf("Fallbacks = %d, want 2", got)
	}
	if !logger.Contains("rerunning on the fallback engine") {
		t.Errorf("fallback not logged: %v", logger.Lines())
	}
	if st := re.SearchStats(); st.Catastrophic != 2 || st.FallbackSearches == 0 {
		t.Errorf("SearchStats = %+v", st)
	}
}

func TestCatastrophicFallbackFailure(t *testing.T) {
	e, logger := newTimeoutEngine(t, 5*time.Millisecond)
	realm := NewRealm()
	re := e.CompileRegExp(`(x+x+)+y\b`, 0)

	if got := e.Search(realm, catastrophicSubject, re); got != -1 {
		t.Errorf("Search = %d, want -1", got)
	}
	if realm.State() != (MatchState{}) {
		t.Errorf("state = %+v, want empty", realm.State())
	}
	if got := e.Stats().FallbackFailures; got != 1 {
		t.Errorf("FallbackFailures = %d, want 1", got)
	}
	if !logger.Contains("fallback failed") {
		t.Errorf("fallback failure not logged: %v", logger.Lines())
	}
}
