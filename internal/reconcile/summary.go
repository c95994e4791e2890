package reconcile

// Summary counts leaf verdicts by status.
type Summary struct {
	TotalFields     int     `json:"total_fields" yaml:"total_fields"`
	Confirmed       int     `json:"confirmed" yaml:"confirmed"`
	Questionable    int     `json:"questionable" yaml:"questionable"`
	NotFound        int     `json:"not_found" yaml:"not_found"`
	ConfidenceScore float64 `json:"confidence_score" yaml:"confidence_score"`
}

// Summarize counts every verdict under n. A group counts once per leaf.
func Summarize(n Node) Summary {
	s := Fold(n, Summary{}, func(s Summary, _ string, v *Verdict) Summary {
		s.TotalFields++
		switch v.Status {
		case Confirmed:
			s.Confirmed++
		case Questionable:
			s.Questionable++
		case NotFound:
			s.NotFound++
		}
		return s
	})
	if s.TotalFields > 0 {
		s.ConfidenceScore = float64(s.Confirmed) / float64(s.TotalFields)
	}
	return s
}
