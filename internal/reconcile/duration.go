package reconcile

import "fmt"

// DefaultToleranceMS is the window within which two durations are equal.
const DefaultToleranceMS = 2000

// CompareDuration reconciles track lengths in milliseconds. Values <= 0 are
// treated as not provided.
func CompareDuration(primaryMS int64, observed []Observation[int64], toleranceMS int64) *Verdict {
	v := newVerdict(primaryMS)
	v.ValueFormatted = FormatDuration(primaryMS)
	if primaryMS <= 0 {
		v.Value = int64(0)
		v.Note = "primary source has no duration"
		return v
	}

	var present []string
	closest := int64(-1)
	for _, o := range observed {
		if o.Value <= 0 {
			continue
		}
		present = append(present, o.Source)
		v.Sources[o.Source] = FormatDuration(o.Value)

		diff := abs(primaryMS - o.Value)
		if diff <= toleranceMS {
			v.ConfirmedBy = append(v.ConfirmedBy, o.Source)
			continue
		}
		v.Sources[o.Source+" diff"] = fmt.Sprintf("%d s", diff/1000)
		if closest < 0 || diff < closest {
			closest = diff
		}
	}

	switch {
	case len(v.ConfirmedBy) > 0:
		v.Status = Confirmed
	case len(present) == 0:
		v.Status = NotFound
		v.Note = noteNoData
	default:
		v.Status = Questionable
		v.Note = fmt.Sprintf("duration differs by %d s (tolerance %d s)", closest/1000, toleranceMS/1000)
	}
	return v
}

// FormatDuration renders milliseconds as m:ss. Non-positive values render
// as 0:00.
func FormatDuration(ms int64) string {
	if ms <= 0 {
		return "0:00"
	}
	return fmt.Sprintf("%d:%02d", ms/60000, (ms%60000)/1000)
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
