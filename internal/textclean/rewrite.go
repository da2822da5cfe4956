package textclean

import (
	"log/slog"
	"regexp"
	"time"

	"github.com/dlclark/regexp2"
)

// Upper bound on a single lookaround match.
const matchTimeout = time.Second

// rewrite is a compiled pattern plus its replacement template. Plain patterns
// run on the linear-time stdlib engine; only patterns that need lookahead or
// lookbehind go through regexp2.
type rewrite struct {
	re   *regexp.Regexp
	look *regexp2.Regexp
	repl string
}

func newRewrite(pattern, repl string) rewrite {
	return rewrite{re: regexp.MustCompile(pattern), repl: repl}
}

func newLookaround(pattern, repl string) rewrite {
	re := regexp2.MustCompile(pattern, regexp2.None)
	re.MatchTimeout = matchTimeout
	return rewrite{look: re, repl: repl}
}

func (r rewrite) String() string {
	switch {
	case r.re != nil:
		return r.re.String()
	case r.look != nil:
		return r.look.String()
	}
	return ""
}

// apply replaces every non-overlapping match, leftmost first. A matcher error
// or timeout leaves the text untouched so every stage stays total.
func (r rewrite) apply(text string) string {
	if r.re != nil {
		return r.re.ReplaceAllString(text, r.repl)
	}
	if r.look == nil {
		return text
	}
	out, err := r.look.Replace(text, r.repl, -1, -1)
	if err != nil {
		slog.Warn("text rewrite failed", "pattern", r.look.String(), "error", err)
		return text
	}
	return out
}

func applyAll(text string, rewrites []rewrite) string {
	for _, rw := range rewrites {
		text = rw.apply(text)
	}
	return text
}
