// Package chain provides the Matrix-Chain-Order dynamic-programming engine.
// This file contains the trace model recorded while the DP tables are filled.
package chain

import (
	"fmt"
	"strings"
)

// TraceKind classifies a trace entry. The rendered line of each kind has a
// recognizable prefix so a presentation layer can style it without parsing.
type TraceKind int

const (
	// TraceNarration is free-form prose.
	TraceNarration TraceKind = iota
	// TraceSection separates chain lengths ("--- ...").
	TraceSection
	// TraceCandidate is one evaluated split ("k=...").
	TraceCandidate
	// TraceAccept is the accepted minimum for a sub-chain ("m[...").
	TraceAccept
)

// String returns the lowercase name of the kind.
func (k TraceKind) String() string {
	switch k {
	case TraceSection:
		return "section"
	case TraceCandidate:
		return "candidate"
	case TraceAccept:
		return "accept"
	default:
		return "narration"
	}
}

// Candidate is the evaluation of one split k for the sub-chain A_i..A_j.
// Cost is always Left + Right + Product.
type Candidate struct {
	I, K, J int
	// Left is m[i][k].
	Left float64
	// Right is m[k+1][j].
	Right float64
	// Factors are p[i-1], p[k] and p[j].
	Factors [3]float64
	// Product is p[i-1]*p[k]*p[j].
	Product float64
	// Cost is the candidate total.
	Cost float64
}

// Line renders the candidate as "k=<k>: cost=<v> (<l> + <r> + <a>*<b>*<c>)".
func (c Candidate) Line() string {
	return fmt.Sprintf("k=%d: cost=%s (%s + %s + %s*%s*%s)",
		c.K, FormatNumber(c.Cost), FormatNumber(c.Left), FormatNumber(c.Right),
		FormatNumber(c.Factors[0]), FormatNumber(c.Factors[1]), FormatNumber(c.Factors[2]))
}

// TraceEntry is one recorded DP event. Only the fields relevant to Kind are
// populated.
type TraceEntry struct {
	Kind TraceKind
	// Text carries narration and section lines.
	Text string
	// Length is the chain length l being processed.
	Length int
	// I and J bound the sub-chain for candidate and accept entries.
	I, J int
	// Candidate is set for TraceCandidate entries.
	Candidate Candidate
	// Best is the running best after a candidate was considered, or the
	// accepted minimum for TraceAccept.
	Best float64
	// Improved reports whether the candidate became the new best.
	Improved bool
	// BestK is the split realizing Best.
	BestK int
	// Candidates lists every split evaluated for an accepted sub-chain.
	Candidates []Candidate
}

// Line renders the entry as a single display line.
func (e TraceEntry) Line() string {
	switch e.Kind {
	case TraceCandidate:
		return e.Candidate.Line()
	case TraceAccept:
		parts := make([]string, len(e.Candidates))
		for i, c := range e.Candidates {
			parts[i] = c.Line()
		}
		return fmt.Sprintf("m[%d][%d]: Min cost is %s at k=%d. Candidates: %s",
			e.I, e.J, FormatNumber(e.Best), e.BestK, strings.Join(parts, ", "))
	default:
		return e.Text
	}
}

// Trace is the ordered list of entries recorded during one solve.
type Trace []TraceEntry

// Lines flattens the trace into display lines.
func (t Trace) Lines() []string {
	lines := make([]string, len(t))
	for i, e := range t {
		lines[i] = e.Line()
	}
	return lines
}

// ClassifyLine returns the kind a rendered trace line belongs to, based only
// on its prefix.
func ClassifyLine(line string) TraceKind {
	switch {
	case strings.HasPrefix(line, "---"):
		return TraceSection
	case strings.HasPrefix(line, "k="):
		return TraceCandidate
	case strings.HasPrefix(line, "m["):
		return TraceAccept
	default:
		return TraceNarration
	}
}

// recorder accumulates trace entries for a single solve. A nil recorder
// discards everything.
type recorder struct {
	entries Trace
}

func (r *recorder) narrate(format string, args ...any) {
	if r == nil {
		return
	}
	r.entries = append(r.entries, TraceEntry{Kind: TraceNarration, Text: fmt.Sprintf(format, args...)})
}

func (r *recorder) section(l int) {
	if r == nil {
		return
	}
	r.entries = append(r.entries, TraceEntry{
		Kind:   TraceSection,
		Length: l,
		Text:   fmt.Sprintf("--- Computing for chain length l = %d ---", l),
	})
}

func (r *recorder) candidate(c Candidate, best float64, improved bool, bestK int) {
	if r == nil {
		return
	}
	r.entries = append(r.entries, TraceEntry{
		Kind:      TraceCandidate,
		Length:    c.J - c.I + 1,
		I:         c.I,
		J:         c.J,
		Candidate: c,
		Best:      best,
		Improved:  improved,
		BestK:     bestK,
	})
}

func (r *recorder) accept(i, j int, best float64, bestK int, candidates []Candidate) {
	if r == nil {
		return
	}
	r.entries = append(r.entries, TraceEntry{
		Kind:       TraceAccept,
		Length:     j - i + 1,
		I:          i,
		J:          j,
		Best:       best,
		BestK:      bestK,
		Candidates: candidates,
	})
}

// mark returns the position the next entry will be recorded at.
func (r *recorder) mark() int {
	if r == nil {
		return 0
	}
	return len(r.entries)
}

// canonicalize rewrites the entries recorded since from into bottom-up order:
// one section per chain length l = 2..n, sub-chains by increasing i, each
// sub-chain's candidates followed by its accept entry.
func (r *recorder) canonicalize(from, n int) {
	if r == nil {
		return
	}
	blocks := make(map[[2]int]Trace)
	for _, e := range r.entries[from:] {
		if e.Kind == TraceCandidate || e.Kind == TraceAccept {
			key := [2]int{e.I, e.J}
			blocks[key] = append(blocks[key], e)
		}
	}
	r.entries = append(Trace(nil), r.entries[:from]...)
	for l := 2; l <= n; l++ {
		r.section(l)
		for i := 1; i <= n-l+1; i++ {
			r.entries = append(r.entries, blocks[[2]int{i, i + l - 1}]...)
		}
	}
}
