package screening

// Entity is one matched record from the yente search index. Properties is
// kept loosely typed: yente nests follower-schema values (identification
// documents, positions) inside property arrays.
type Entity struct {
	ID         string                   `json:"id"`
	Caption    string                   `json:"caption"`
	Schema     string                   `json:"schema"`
	Properties map[string][]interface{} `json:"properties"`
	Datasets   []string                 `json:"datasets"`
	Referents  []string                 `json:"referents"`
	Target     bool                     `json:"target"`
	FirstSeen  string                   `json:"first_seen,omitempty"`
	LastSeen   string                   `json:"last_seen,omitempty"`
	Score      float64                  `json:"score"`
}

// Topics returns the string values of the entity's "topics" property.
func (e Entity) Topics() []string {
	var topics []string
	for _, v := range e.Properties["topics"] {
		if s, ok := v.(string); ok {
			topics = append(topics, s)
		}
	}
	return topics
}

type ResultTotal struct {
	Value    int    `json:"value"`
	Relation string `json:"relation"`
}

// SearchResponse mirrors the yente /search payload. Warning is set by
// SearchMany when a lookup failed and the entry degraded to empty results.
type SearchResponse struct {
	Results []Entity    `json:"results"`
	Total   ResultTotal `json:"total"`
	Limit   int         `json:"limit"`
	Offset  int         `json:"offset"`
	Warning string      `json:"warning,omitempty"`
}

// Options shape a single /search request. Include and Exclude narrow the
// dataset scope; they map to the scope and exclude query parameters.
type Options struct {
	Dataset string
	Limit   int
	Include []string
	Exclude []string
}
