// Package graphql wraps graphql-go schema construction for the read-only
// catalog endpoint.
package graphql

import (
	"github.com/graphql-go/graphql"
)

// NewSchema creates a GraphQL schema from the provided root query object.
func NewSchema(query *graphql.Object) (graphql.Schema, error) {
	return graphql.NewSchema(graphql.SchemaConfig{
		Query: query,
	})
}
