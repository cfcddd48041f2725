package engine

import (
	"strconv"
	"strings"
)

// Report counts the lines changed by a command so the user can be told
// about large changes.
type Report struct {
	Added   int
	Changed int
	Deleted int
	Yanked  int

	// lastChanged is the most recent line counted as changed, so repeated
	// changes to one line count once.
	lastChanged int
}

func (r *Report) changed(lno int) {
	if r.lastChanged != lno {
		r.lastChanged = lno
		r.Changed++
	}
}

// Message describes the counts when any reaches threshold, e.g.
// "3 lines deleted; 1 line yanked". It returns "" when nothing does or
// when threshold is 0.
func (r *Report) Message(threshold int) string {
	if threshold <= 0 {
		return ""
	}
	counts := []struct {
		n      int
		action string
	}{
		{r.Added, "added"},
		{r.Changed, "changed"},
		{r.Deleted, "deleted"},
		{r.Yanked, "yanked"},
	}
	reached := false
	for _, c := range counts {
		if c.n >= threshold {
			reached = true
			break
		}
	}
	if !reached {
		return ""
	}

	var b strings.Builder
	for _, c := range counts {
		if c.n == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("; ")
		}
		b.WriteString(strconv.Itoa(c.n))
		if c.n == 1 {
			b.WriteString(" line ")
		} else {
			b.WriteString(" lines ")
		}
		b.WriteString(c.action)
	}
	return b.String()
}

// Reset zeroes every count.
func (r *Report) Reset() {
	*r = Report{}
}
