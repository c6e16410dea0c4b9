package dxd

// Template is a fixed, parameterized query document. Documents are sent
// verbatim; caller arguments enter exclusively through the variables map,
// never the document text, so no user input can alter the query structure.
type Template struct {
	// Name is the operation name, used in logs and metrics
	Name string

	// Document is the immutable GraphQL document
	Document string

	// ResultPath names the response subtree the operation consumes,
	// dot-separated for nested paths (e.g. "search.results")
	ResultPath string

	// Variables lists the variable names the document requires
	Variables []string
}

// TocTemplate fetches the table of contents for a publication. The
// template requests a fixed 3-level nesting of entries; deeper levels
// are simply not requested.
var TocTemplate = Template{
	Name:       "get_toc",
	ResultPath: "ishToc",
	Variables:  []string{"publicationId"},
	Document: `query ishToc($publicationId: Int!) {
    ishToc(publicationId: $publicationId) {
        entries {
            id
            tocId
            url
            title
            hasChildren
            entries {
                id
                tocId
                url
                title
                hasChildren
                entries {
                    id
                    tocId
                    url
                    title
                    hasChildren
                }
            }
        }
    }
}`,
}

// topicSelection is the shared polymorphic topic shape: base fields, the
// task-topic fragment, link items with the binary-component fragment, and
// related links with the generic-topic fragment.
const topicSelection = `{
        __typename
        publicationId
        itemId
        title
        shortDescription
        url
        xhtml
        ... on IshTaskTopic {
            body {
                steps {
                    __typename
                    title
                    xhtml
                }
            }
        }
        links {
            item {
                __typename
                publicationId
                itemId
                title
                ... on BinaryComponent {
                    __typename
                    publicationId
                    itemId
                    variants {
                        edges {
                            node {
                                binaryId
                                downloadUrl
                            }
                        }
                    }
                }
            }
        }
        relatedLinks {
            links {
                item {
                    __typename
                    publicationId
                    itemId
                    title
                    ... on IshGenericTopic {
                        shortDescription
                    }
                }
            }
        }
    }`

// TopicByIDTemplate fetches a topic by publication ID and topic ID
var TopicByIDTemplate = Template{
	Name:       "get_topic_content_by_id",
	ResultPath: "ishTopic",
	Variables:  []string{"publicationId", "topicId"},
	Document: `query ishTopicById($publicationId: Int!, $topicId: Int!) {
    ishTopic(publicationId: $publicationId, topicId: $topicId) ` + topicSelection + `
}`,
}

// TopicByURLTemplate fetches a topic by publication ID and topic URL
var TopicByURLTemplate = Template{
	Name:       "get_topic_content_by_url",
	ResultPath: "ishTopic",
	Variables:  []string{"publicationId", "url"},
	Document: `query ishTopicByURL($publicationId: Int!, $url: String!) {
    ishTopic(publicationId: $publicationId, url: $url) ` + topicSelection + `
}`,
}

// SearchTemplate searches topic content. The criteria is a strict
// english-language content match ANDed with an itemType=page filter;
// the first 10 ranked matches are requested.
var SearchTemplate = Template{
	Name:       "search_topics",
	ResultPath: "search.results",
	Variables:  []string{"term"},
	Document: `query searchTopics($term: String!) {
    search(
        criteria: {
            languageField: {
                key: "content"
                value: $term
                language: "english"
                strict: true
            }
            and: { field: { key: "itemType", value: "page" } }
        }
    ) {
        results(first: 10) {
            hits
            edges {
                node {
                    search {
                        score
                        id
                        locale
                        url
                        title
                    }
                }
            }
        }
    }
}`,
}

// RecommendTemplate fetches recommended topics for a composite topic key
// of the form "ish_<publicationId>-<topicId>-16"
var RecommendTemplate = Template{
	Name:       "get_recommendations",
	ResultPath: "ishRecommend",
	Variables:  []string{"topic"},
	Document: `query recommendTopics($topic: String!) {
    ishRecommend(topicId: $topic) {
        sourceTopic {
            id
            url
            locale
            title
        }
        results {
            id
            url
            locale
            title
            publicationId
            publicationTitle
        }
    }
}`,
}

// Templates lists the complete operation catalogue
var Templates = []Template{
	TocTemplate,
	TopicByIDTemplate,
	TopicByURLTemplate,
	SearchTemplate,
	RecommendTemplate,
}
