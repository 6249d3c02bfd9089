package literature

import (
	"fmt"
	"strings"
)

const (
	maxQuerySymptoms   = 3
	maxQueryConditions = 2

	// evidenceFilter restricts results to high-evidence publication types.
	// A deliberate recall-for-quality trade: it keeps low-quality sources
	// from surfacing.
	evidenceFilter = "(review[pt] OR clinical trial[pt] OR meta-analysis[pt])"
)

// BuildQuery renders symptoms and condition names into a PubMed term. Each
// entry becomes an exact-phrase Title/Abstract term; terms are OR-joined for
// recall across vocabulary mismatch, then the evidence-type filter is ANDed
// on. Inputs are assumed rank-ordered, so truncation keeps the strongest
// candidates. Pure function, deterministic for identical inputs.
func BuildQuery(symptoms []string, conditions []string) string {
	var terms []string

	for i, symptom := range symptoms {
		if i >= maxQuerySymptoms {
			break
		}
		terms = append(terms, fmt.Sprintf(`"%s"[Title/Abstract]`, symptom))
	}

	for i, condition := range conditions {
		if i >= maxQueryConditions {
			break
		}
		terms = append(terms, fmt.Sprintf(`"%s"[Title/Abstract]`, condition))
	}

	query := strings.Join(terms, " OR ")
	query += " AND " + evidenceFilter

	return query
}
