package models

// Index is an indexing event published on the mq channel when catalog
// entities change, consumed by the search indexing worker.
type Index struct {
	EntityType string `json:"entity_type"`
	Method     string `json:"method"`
	EntityId   string `json:"entity_id"`
	EntityName string `json:"entity_name,omitempty"`
}
