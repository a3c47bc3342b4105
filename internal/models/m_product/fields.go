package m_product

// Field constants for the products read table.
const (
	TableName = "products"

	ColProductID     = "product_id"
	ColName          = "name"
	ColProductTypeID = "product_type_id"
	ColQuantity      = "quantity"
	ColPrice         = "price"
	ColEntityVersion = "entity_version"
	ColCreatedAt     = "created_at"
	ColUpdatedAt     = "updated_at"
	ColDeletedAt     = "deleted_at"
)
