package m_product_type

// Field constants for the product_types read table.
const (
	TableName = "product_types"

	ColProductTypeID = "product_type_id"
	ColName          = "name"
	ColDescription   = "description"
	ColEntityVersion = "entity_version"
	ColCreatedAt     = "created_at"
	ColUpdatedAt     = "updated_at"
	ColDeletedAt     = "deleted_at"
)
