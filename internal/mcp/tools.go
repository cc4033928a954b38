package mcp

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func weightProperty(dimension string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "number",
		"minimum":     0,
		"description": "Relative importance of " + dimension + " (any non-negative number; weights need not sum to 1)",
	}
}

var amenitiesProperty = map[string]interface{}{
	"type":        "array",
	"items":       map[string]interface{}{"type": "string"},
	"description": "Desired amenity tags, matched exactly (e.g. parks, schools, cafes, nightlife)",
}

// ToolDefinitions contains all available MCP tools
var ToolDefinitions = []Tool{
	{
		Name:        "rank_neighborhoods",
		Description: "Rank neighborhoods by compatibility (0-100) with a user's saved preferences, or with inline weights. Returns the best matches first with a per-dimension breakdown.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"user_id": map[string]interface{}{
					"type":        "string",
					"description": "User whose saved preferences to use. Cannot be combined with inline weights; omit both to use the configured defaults.",
				},
				"amenities":          amenitiesProperty,
				"safety_weight":      weightProperty("safety"),
				"commute_weight":     weightProperty("commute"),
				"amenities_weight":   weightProperty("amenities"),
				"walkability_weight": weightProperty("walkability"),
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of results (default: configured top_n, -1 for all)",
				},
			},
		},
	},
	{
		Name:        "score_neighborhood",
		Description: "Score one neighborhood for a user and explain the safety, commute, amenities and walkability sub-scores.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"neighborhood": map[string]interface{}{
					"type":        "string",
					"description": "Neighborhood name (case-insensitive) or numeric ID",
				},
				"user_id": map[string]interface{}{
					"type":        "string",
					"description": "User whose saved preferences to use. Omit to use the configured default weights.",
				},
			},
			"required": []string{"neighborhood"},
		},
	},
	{
		Name:        "list_neighborhoods",
		Description: "List neighborhoods in the catalog, optionally filtered by city or state, or matched against a search query.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"city": map[string]interface{}{
					"type":        "string",
					"description": "Filter by city (case-insensitive)",
				},
				"state": map[string]interface{}{
					"type":        "string",
					"description": "Filter by state (case-insensitive)",
				},
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Free-text search over name, city, state, zip code and amenities",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of results to return (default: 50)",
				},
			},
		},
	},
	{
		Name:        "get_review_averages",
		Description: "Get average review ratings per category (e.g. safety, nightlife) for a neighborhood. Categories nobody rated are omitted. Omit the neighborhood to get every neighborhood.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"neighborhood": map[string]interface{}{
					"type":        "string",
					"description": "Neighborhood name (case-insensitive) or numeric ID",
				},
			},
		},
	},
	{
		Name:        "get_preferences",
		Description: "Get a user's saved lifestyle preferences and weights.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"user_id": map[string]interface{}{
					"type":        "string",
					"description": "User ID",
				},
			},
			"required": []string{"user_id"},
		},
	},
	{
		Name:        "set_preferences",
		Description: "Save a user's lifestyle preferences, replacing any previous record. All fields are required; at least one weight must be greater than zero.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"user_id": map[string]interface{}{
					"type":        "string",
					"description": "User ID",
				},
				"budget": map[string]interface{}{
					"type":        "number",
					"description": "Monthly housing budget (stored, not used for scoring)",
				},
				"commute_time": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum commute in minutes (stored, not used for scoring)",
				},
				"amenities":          amenitiesProperty,
				"safety_weight":      weightProperty("safety"),
				"commute_weight":     weightProperty("commute"),
				"amenities_weight":   weightProperty("amenities"),
				"walkability_weight": weightProperty("walkability"),
			},
			"required": []string{
				"user_id", "budget", "commute_time", "amenities",
				"safety_weight", "commute_weight", "amenities_weight", "walkability_weight",
			},
		},
	},
	{
		Name:        "get_stats",
		Description: "Get catalog statistics: neighborhood, review and user counts plus averages.",
		InputSchema: map[string]interface{}{
			"type":       "object",
			"properties": map[string]interface{}{},
		},
	},
}
