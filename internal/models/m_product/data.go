package m_product

import (
	"sort"
	"time"

	"cloud.google.com/go/spanner"
)

// InsertMutation builds a spanner.Insert mutation from a column -> value map.
func InsertMutation(values map[string]interface{}) *spanner.Mutation {
	cols, vals := split(values)
	return spanner.Insert(TableName, cols, vals)
}

// UpdateMutation builds a spanner.Update mutation keyed by productID.
// values must not contain product_id.
func UpdateMutation(productID string, values map[string]interface{}) *spanner.Mutation {
	cols, vals := split(values)
	cols = append([]string{ColProductID}, cols...)
	vals = append([]interface{}{productID}, vals...)
	return spanner.Update(TableName, cols, vals)
}

// BuildInsertMap prepares a full row. deleted_at starts out NULL.
func BuildInsertMap(productID, name, productTypeID string, quantity int64, price float64,
	version int64, now time.Time) map[string]interface{} {
	return map[string]interface{}{
		ColProductID:     productID,
		ColName:          name,
		ColProductTypeID: productTypeID,
		ColQuantity:      quantity,
		ColPrice:         price,
		ColEntityVersion: version,
		ColCreatedAt:     now,
		ColUpdatedAt:     now,
		ColDeletedAt:     nil,
	}
}

// BuildUpdateMap returns the columns every update stamps. Callers add the
// changed fields.
func BuildUpdateMap(version int64, updatedAt time.Time) map[string]interface{} {
	return map[string]interface{}{
		ColEntityVersion: version,
		ColUpdatedAt:     updatedAt,
	}
}

// BuildDeleteMap soft-deletes the row at the given version.
func BuildDeleteMap(version int64, deletedAt time.Time) map[string]interface{} {
	return map[string]interface{}{
		ColEntityVersion: version,
		ColUpdatedAt:     deletedAt,
		ColDeletedAt:     deletedAt,
	}
}

// split orders columns by name so mutations are deterministic.
func split(values map[string]interface{}) ([]string, []interface{}) {
	cols := make([]string, 0, len(values))
	for col := range values {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	vals := make([]interface{}, 0, len(cols))
	for _, col := range cols {
		vals = append(vals, values[col])
	}
	return cols, vals
}
