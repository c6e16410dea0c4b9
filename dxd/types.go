package dxd

// Response types for the DXD "Ish" GraphQL schema. Every value is a
// request-scoped object: constructed by decoding one transport response,
// consumed once by the projector, then discarded. Polymorphic results
// carry a __typename discriminant; fields belonging to other variants
// are omitted from serialized output via omitempty, never null-padded.

// GraphQL type names used as variant discriminants
const (
	TypeGenericTopic    = "IshGenericTopic"
	TypeTaskTopic       = "IshTaskTopic"
	TypeBinaryComponent = "BinaryComponent"
)

// Toc is the root table-of-contents container for a publication
type Toc struct {
	Entries []TocEntry `json:"entries,omitempty"`
}

// TocEntry is one node of the TOC tree. Entries nest recursively; the
// TOC template bounds the requested depth to 3 levels, so HasChildren
// may be true on a leaf whose children were simply not requested.
type TocEntry struct {
	ID          string     `json:"id,omitempty"`
	TocID       string     `json:"tocId,omitempty"`
	URL         string     `json:"url,omitempty"`
	Title       string     `json:"title,omitempty"`
	HasChildren bool       `json:"hasChildren"`
	Entries     []TocEntry `json:"entries,omitempty"`
}

// Topic is the polymorphic topic result. Body is populated only for the
// IshTaskTopic variant; the projector strips it for every other tag.
type Topic struct {
	TypeName         string        `json:"__typename,omitempty"`
	PublicationID    int           `json:"publicationId,omitempty"`
	ItemID           int           `json:"itemId,omitempty"`
	Title            string        `json:"title,omitempty"`
	ShortDescription string        `json:"shortDescription,omitempty"`
	URL              string        `json:"url,omitempty"`
	XHTML            string        `json:"xhtml,omitempty"`
	Body             *TaskBody     `json:"body,omitempty"`
	Links            []Link        `json:"links,omitempty"`
	RelatedLinks     *RelatedLinks `json:"relatedLinks,omitempty"`
}

// TaskBody holds the ordered step sequence of a task topic
type TaskBody struct {
	Steps []Step `json:"steps,omitempty"`
}

// Step is one step of a task topic
type Step struct {
	TypeName string `json:"__typename,omitempty"`
	Title    string `json:"title,omitempty"`
	XHTML    string `json:"xhtml,omitempty"`
}

// Link references an item owned by a topic
type Link struct {
	Item *Item `json:"item,omitempty"`
}

// RelatedLinks groups topic-to-topic relations
type RelatedLinks struct {
	Links []Link `json:"links,omitempty"`
}

// Item is the polymorphic linked item. Variants is populated only for
// the BinaryComponent variant; ShortDescription only for generic topics
// reached through related links.
type Item struct {
	TypeName         string             `json:"__typename,omitempty"`
	PublicationID    int                `json:"publicationId,omitempty"`
	ItemID           int                `json:"itemId,omitempty"`
	Title            string             `json:"title,omitempty"`
	ShortDescription string             `json:"shortDescription,omitempty"`
	Variants         *VariantConnection `json:"variants,omitempty"`
}

// VariantConnection is the paginated wrapper around binary variants
type VariantConnection struct {
	Edges []VariantEdge `json:"edges,omitempty"`
}

// VariantEdge wraps one binary variant node
type VariantEdge struct {
	Node *Variant `json:"node,omitempty"`
}

// Variant is one downloadable rendition of a binary component
type Variant struct {
	BinaryID    string `json:"binaryId,omitempty"`
	DownloadURL string `json:"downloadUrl,omitempty"`
}

// SearchResultsConnection is the paginated search result wrapper. Hits
// reports the upstream total; edges carry at most the requested page.
type SearchResultsConnection struct {
	Hits  int               `json:"hits"`
	Edges []SearchResultEdge `json:"edges,omitempty"`
}

// SearchResultEdge wraps one search result node
type SearchResultEdge struct {
	Node *SearchResultNode `json:"node,omitempty"`
}

// SearchResultNode holds the inner search payload of an edge
type SearchResultNode struct {
	Search *SearchResult `json:"search,omitempty"`
}

// SearchResult is one ranked search match
type SearchResult struct {
	Score  float64 `json:"score"`
	ID     string  `json:"id,omitempty"`
	Locale string  `json:"locale,omitempty"`
	URL    string  `json:"url,omitempty"`
	Title  string  `json:"title,omitempty"`
}

// RecommendResult pairs a source topic with its recommendations. Only
// the results sequence is ever serialized; the source topic is context
// the remote echoes back.
type RecommendResult struct {
	SourceTopic *RecommendedTopic  `json:"sourceTopic,omitempty"`
	Results     []*RecommendedTopic `json:"results,omitempty"`
}

// RecommendedTopic is one recommended (or source) topic reference
type RecommendedTopic struct {
	ID               string `json:"id,omitempty"`
	URL              string `json:"url,omitempty"`
	Locale           string `json:"locale,omitempty"`
	Title            string `json:"title,omitempty"`
	PublicationID    int    `json:"publicationId,omitempty"`
	PublicationTitle string `json:"publicationTitle,omitempty"`
}
