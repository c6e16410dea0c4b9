package dxd

import (
	"encoding/json"

	"github.com/c360/dxdmcp/errors"
)

// Empty payloads returned for absent content. These are distinct from
// the sentinel error strings: a caller seeing "{}" or "[]" knows the
// request succeeded and found nothing.
const (
	emptyObject = "{}"
	emptyList   = "[]"
)

// Projector maps typed, possibly-nil results into canonical JSON strings.
// It is stateless; one instance serves all concurrent operations.
type Projector struct{}

// NewProjector creates a response projector
func NewProjector() *Projector {
	return &Projector{}
}

// Toc serializes a TOC tree. Absence of a TOC is not a failure and
// yields an empty object.
func (p *Projector) Toc(toc *Toc) (string, error) {
	if toc == nil {
		return emptyObject, nil
	}
	return p.marshal(toc, "Toc")
}

// Topic serializes the polymorphic topic, including type-specific fields
// only when the variant matches: the task body (and its steps) survives
// solely for the IshTaskTopic tag.
func (p *Projector) Topic(topic *Topic) (string, error) {
	if topic == nil {
		return emptyObject, nil
	}
	if topic.TypeName != TypeTaskTopic {
		topic.Body = nil
	}
	return p.marshal(topic, "Topic")
}

// Search unwraps each edge to its node.search payload, dropping edges
// whose node or inner payload is absent. Upstream ranking order is
// preserved; the projector never re-sorts.
func (p *Projector) Search(conn *SearchResultsConnection) (string, error) {
	if conn == nil || conn.Edges == nil {
		return emptyList, nil
	}

	results := make([]*SearchResult, 0, len(conn.Edges))
	for _, edge := range conn.Edges {
		if edge.Node == nil || edge.Node.Search == nil {
			continue
		}
		results = append(results, edge.Node.Search)
	}

	return p.marshal(results, "Search")
}

// Recommendations serializes the recommendation sequence, filtering out
// absent entries. The source topic is never included.
func (p *Projector) Recommendations(rec *RecommendResult) (string, error) {
	if rec == nil || rec.Results == nil {
		return emptyList, nil
	}

	results := make([]*RecommendedTopic, 0, len(rec.Results))
	for _, topic := range rec.Results {
		if topic == nil {
			continue
		}
		results = append(results, topic)
	}

	return p.marshal(results, "Recommendations")
}

func (p *Projector) marshal(v any, method string) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", errors.WrapInvalid(err, "Projector", method, "serialize result")
	}
	return string(data), nil
}
