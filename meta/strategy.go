package meta

// Strategy identifies the searcher that runs a pattern.
type Strategy int

const (
	// UseHost runs the transpiled pattern on regexp2 with the ECMAScript
	// option.
	// Selected for every pattern the host accepts that is not a literal
	// alternation.
	UseHost Strategy = iota

	// UseLiteral runs an Aho-Corasick automaton.
	// Selected for:
	//   - Pure literal alternations like foo|bar|baz
	//   - No literal occurs inside another
	//   - No "i" flag
	//   - EnableLiteralSearch in the config
	UseLiteral

	// UseNever matches nothing. Substituted for a pattern the host rejected
	// so that scripts keep running.
	UseNever

	// UseRE2 runs the untranspiled pattern on RE2 (package regexp).
	// Fallback for RE2-safe patterns; linear time, cannot fail
	// catastrophically.
	UseRE2

	// UseECMAScript runs the untranspiled pattern on regexp2 in ECMAScript
	// mode. Fallback for everything RE2 cannot express.
	UseECMAScript
)

// String returns a human-readable representation of the Strategy.
func (s Strategy) String() string {
	switch s {
	case UseHost:
		return "UseHost"
	case UseLiteral:
		return "UseLiteral"
	case UseNever:
		return "UseNever"
	case UseRE2:
		return "UseRE2"
	case UseECMAScript:
		return "UseECMAScript"
	default:
		return "Unknown"
	}
}
