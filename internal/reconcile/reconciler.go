package reconcile

import (
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/lehigh-university-libraries/trackverify/internal/coververdict"
	"github.com/lehigh-university-libraries/trackverify/internal/matching"
	"github.com/lehigh-university-libraries/trackverify/internal/models"
)

// Report is the outcome of reconciling one track.
type Report struct {
	Metadata Metadata `json:"metadata" yaml:"metadata"`
	Fields   Group    `json:"fields" yaml:"fields"`
	Summary  Summary  `json:"summary" yaml:"summary"`
}

// Metadata identifies what was reconciled.
type Metadata struct {
	SongID  string                 `json:"song_id" yaml:"song_id"`
	Source  string                 `json:"source" yaml:"source"`
	Sources []string               `json:"verification_sources" yaml:"verification_sources"`
	Matches []matching.MatchResult `json:"matches,omitempty" yaml:"matches,omitempty"`
}

// Result wraps a report with an explicit success flag.
type Result struct {
	Report  *Report `json:"final_report" yaml:"final_report"`
	Success bool    `json:"success" yaml:"success"`
	Error   string  `json:"error,omitempty" yaml:"error,omitempty"`
}

// Reconciler evaluates a field table against a SourceSet.
type Reconciler struct {
	fields []FieldSpec
}

// New returns a Reconciler over fields, or DefaultFields when none are given.
func New(fields ...FieldSpec) *Reconciler {
	if len(fields) == 0 {
		fields = DefaultFields
	}
	return &Reconciler{fields: fields}
}

type coverInput struct {
	reference string
	verdict   coververdict.Verdict
}

// Reconcile compares every configured field. Fields are evaluated
// concurrently; each writes only its own slot. Only a missing primary
// bundle fails the call. A field whose comparator panics is reported as not
// found.
func (r *Reconciler) Reconcile(set models.SourceSet, coverResponse string) Result {
	if set.Primary == nil {
		return Result{Error: "primary bundle is missing"}
	}

	cover := coverInput{verdict: coververdict.NotFound("")}
	if strings.TrimSpace(coverResponse) != "" {
		cover.reference, _ = CoverReference(set)
		cover.verdict = coververdict.Parse(coverResponse)
	}

	nodes := make([]Node, len(r.fields))
	var g errgroup.Group
	for i, f := range r.fields {
		g.Go(func() error {
			nodes[i] = safeEvaluate(f, set, cover)
			return nil
		})
	}
	_ = g.Wait()

	fields := make(Group, len(r.fields))
	for i, f := range r.fields {
		fields[f.Name] = nodes[i]
	}

	names := make([]string, 0, len(set.Secondaries))
	for _, s := range set.Secondaries {
		if s.Bundle != nil {
			names = append(names, s.Name)
		}
	}

	return Result{
		Report: &Report{
			Metadata: Metadata{
				SongID:  set.Primary.SongID,
				Source:  models.PrimarySourceLabel,
				Sources: names,
			},
			Fields:  fields,
			Summary: Summarize(fields),
		},
		Success: true,
	}
}

func safeEvaluate(f FieldSpec, set models.SourceSet, cover coverInput) (n Node) {
	defer func() {
		if r := recover(); r != nil {
			v := newVerdict(nil)
			v.Note = fmt.Sprintf("comparison failed: %v", r)
			n = v
		}
	}()
	return f.evaluate(set, cover)
}
