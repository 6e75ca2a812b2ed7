package repositories

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// findPage builds Find options for offset pagination with a sort order.
// page is 1-based; limit caps at 100.
func findPage(page, limit int64, sort bson.D) *options.FindOptions {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return options.Find().
		SetSkip((page - 1) * limit).
		SetLimit(limit).
		SetSort(sort)
}
