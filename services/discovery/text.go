package discovery

import "strings"

// filterByText keeps candidates whose searchable text contains every query
// token as a substring (AND semantics). Among the survivors, candidates whose
// name matches at least one token are partitioned ahead of the rest; relative
// order within each partition is preserved.
func filterByText(candidates []Product, text string) []Product {
	tokens := strings.Fields(strings.ToLower(text))
	if len(tokens) == 0 {
		return candidates
	}

	nameMatches := make([]Product, 0, len(candidates))
	otherMatches := make([]Product, 0, len(candidates))

	for _, candidate := range candidates {
		searchable := searchableText(candidate)

		matchesAll := true
		for _, token := range tokens {
			if !strings.Contains(searchable, token) {
				matchesAll = false
				break
			}
		}
		if !matchesAll {
			continue
		}

		name := strings.ToLower(candidate.Name)
		matchesName := false
		for _, token := range tokens {
			if strings.Contains(name, token) {
				matchesName = true
				break
			}
		}

		if matchesName {
			nameMatches = append(nameMatches, candidate)
		} else {
			otherMatches = append(otherMatches, candidate)
		}
	}

	return append(nameMatches, otherMatches...)
}

func searchableText(candidate Product) string {
	parts := []string{
		candidate.Name,
		candidate.Description,
		candidate.Category,
		candidate.SellerName,
		candidate.FarmName,
		candidate.Freshness,
	}
	parts = append(parts, candidate.DeliveryMethods...)

	return strings.ToLower(strings.Join(parts, " "))
}
