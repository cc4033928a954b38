package mcp

// Resource defines an MCP resource
type Resource struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MimeType    string `json:"mimeType,omitempty"`
}

const (
	resourceNeighborhoods = "neighborfit://neighborhoods"
	resourceRankings      = "neighborfit://rankings"
	resourceSummary       = "neighborfit://summary"
)

// ResourceDefinitions lists all available resources
var ResourceDefinitions = []Resource{
	{
		URI:         resourceNeighborhoods,
		Name:        "Neighborhood Catalog",
		Description: "Every neighborhood with crime rate, walk and transit scores, and amenities",
		MimeType:    "text/plain",
	},
	{
		URI:         resourceRankings,
		Name:        "Community Ratings",
		Description: "Average review ratings per category for every neighborhood",
		MimeType:    "text/plain",
	},
	{
		URI:         resourceSummary,
		Name:        "Catalog Summary",
		Description: "Counts of neighborhoods, reviews and users with saved preferences",
		MimeType:    "text/plain",
	},
}

// resourcesListResult is the response for resources/list
type resourcesListResult struct {
	Resources []Resource `json:"resources"`
}

// readResourceParams is the params for resources/read
type readResourceParams struct {
	URI string `json:"uri"`
}

// readResourceResult is the response for resources/read
type readResourceResult struct {
	Contents []resourceContent `json:"contents"`
}

type resourceContent struct {
	URI      string `json:"uri"`
	MimeType string `json:"mimeType,omitempty"`
	Text     string `json:"text,omitempty"`
}
