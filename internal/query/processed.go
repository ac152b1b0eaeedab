// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package query

import "fmt"

// ProcessedQuery pairs a query with the annotation metadata that has been
// labeled or predicted for it: a domain, an intent, and the entity list that
// survived conflict resolution. IsGold marks human-labeled data.
type ProcessedQuery struct {
	Query    *Query
	Domain   string
	Intent   string
	Entities []*QueryEntity
	IsGold   bool
}

// ToDict converts the processed query into a serializable map projection.
func (pq *ProcessedQuery) ToDict() map[string]interface{} {
	entities := make([]map[string]interface{}, len(pq.Entities))
	for i, e := range pq.Entities {
		entities[i] = e.ToDict()
	}
	return map[string]interface{}{
		"text":     pq.Query.Text(),
		"domain":   pq.Domain,
		"intent":   pq.Intent,
		"entities": entities,
	}
}

func (pq *ProcessedQuery) String() string {
	gold := ""
	if pq.IsGold {
		gold = ", gold"
	}
	return fmt.Sprintf("<ProcessedQuery %q, domain: %q, intent: %q, %d entities%s>",
		pq.Query.Text(), pq.Domain, pq.Intent, len(pq.Entities), gold)
}
