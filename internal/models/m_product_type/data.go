package m_product_type

import (
	"sort"
	"time"

	"cloud.google.com/go/spanner"
)

func InsertMutation(values map[string]interface{}) *spanner.Mutation {
	cols, vals := split(values)
	return spanner.Insert(TableName, cols, vals)
}

// UpdateMutation builds a spanner.Update mutation keyed by productTypeID.
func UpdateMutation(productTypeID string, values map[string]interface{}) *spanner.Mutation {
	cols, vals := split(values)
	cols = append([]string{ColProductTypeID}, cols...)
	vals = append([]interface{}{productTypeID}, vals...)
	return spanner.Update(TableName, cols, vals)
}

func BuildInsertMap(productTypeID, name, description string, version int64, now time.Time) map[string]interface{} {
	return map[string]interface{}{
		ColProductTypeID: productTypeID,
		ColName:          name,
		ColDescription:   description,
		ColEntityVersion: version,
		ColCreatedAt:     now,
		ColUpdatedAt:     now,
		ColDeletedAt:     nil,
	}
}

func BuildUpdateMap(version int64, updatedAt time.Time) map[string]interface{} {
	return map[string]interface{}{
		ColEntityVersion: version,
		ColUpdatedAt:     updatedAt,
	}
}

func BuildDeleteMap(version int64, deletedAt time.Time) map[string]interface{} {
	return map[string]interface{}{
		ColEntityVersion: version,
		ColUpdatedAt:     deletedAt,
		ColDeletedAt:     deletedAt,
	}
}

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
