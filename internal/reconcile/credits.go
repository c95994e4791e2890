package reconcile

// CompareCredits reconciles every credit role present in any source as a
// list field. Roles only the verification sources know about are not found.
func CompareCredits(primary map[string][]string, observed []Observation[map[string][]string]) Group {
	roles := map[string]struct{}{}
	for role := range primary {
		roles[role] = struct{}{}
	}
	for _, o := range observed {
		for role := range o.Value {
			roles[role] = struct{}{}
		}
	}

	g := make(Group, len(roles))
	for role := range roles {
		obs := make([]Observation[[]string], 0, len(observed))
		for _, o := range observed {
			obs = append(obs, Observation[[]string]{Source: o.Source, Value: o.Value[role]})
		}
		g[role] = CompareList(primary[role], obs)
	}
	return g
}
