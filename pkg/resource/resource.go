// Package resource provides API resource transformers that control exactly
// what JSON shape an endpoint returns.
//
// Define a Resource:
//
//	type ListingResource struct{ resource.Base }
//	func (r *ListingResource) ToArray(v interface{}) resource.Map {
//	    l := v.(models.Listing)
//	    return resource.Map{
//	        "id":     l.ID.Hex(),
//	        "name":   l.ProductName,
//	        "price":  l.Price,
//	        "hostel": l.Hostel,
//	    }
//	}
//
// Respond:
//
//	resource.New(&ListingResource{}, listing).Respond(w)
//	resource.CollectionOf(&ListingResource{}, listings).Respond(w)
package resource

import (
	"encoding/json"
	"net/http"

	"github.com/shashiranjanraj/campuskart/pkg/response"
)

// Map is a convenient alias for the output of ToArray.
type Map = map[string]interface{}

// Transformer defines the single method a Resource must implement.
type Transformer interface {
	// ToArray converts one model instance into a Map.
	ToArray(v interface{}) Map
}

// Base can be embedded in any Resource to satisfy future extension points.
type Base struct{}

// ------------------- Single resource -------------------

// Resource wraps a single model with its transformer.
type Resource struct {
	transformer Transformer
	data        interface{}
	meta        Map
}

// New creates a Resource for a single model instance.
func New(t Transformer, data interface{}) *Resource {
	return &Resource{transformer: t, data: data}
}

// WithMeta attaches additional metadata to the response envelope.
func (r *Resource) WithMeta(meta Map) *Resource {
	r.meta = meta
	return r
}

// MarshalJSON implements json.Marshaler so Resource can be nested.
func (r *Resource) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.transformer.ToArray(r.data))
}

// Respond writes the resource as JSON with status 200.
func (r *Resource) Respond(w http.ResponseWriter) {
	out := Map{"data": r.transformer.ToArray(r.data)}
	if r.meta != nil {
		out["meta"] = r.meta
	}
	writeJSON(w, http.StatusOK, out)
}

// ------------------- Collection resource -------------------

// Collection wraps a slice of models with a transformer.
type Collection struct {
	transformer Transformer
	items       []interface{}
	pagination  *response.Pagination
	meta        Map
}

// CollectionOf creates a Collection from a slice of models.
func CollectionOf[T any](t Transformer, items []T) *Collection {
	boxed := make([]interface{}, len(items))
	for i, v := range items {
		boxed[i] = v
	}
	return &Collection{transformer: t, items: boxed}
}

// WithPagination attaches pagination metadata.
func (c *Collection) WithPagination(p response.Pagination) *Collection {
	c.pagination = &p
	return c
}

// WithMeta attaches extra metadata.
func (c *Collection) WithMeta(meta Map) *Collection {
	c.meta = meta
	return c
}

// Respond writes the collection as JSON with status 200.
func (c *Collection) Respond(w http.ResponseWriter) {
	result := make([]interface{}, 0, len(c.items))
	for _, item := range c.items {
		result = append(result, c.transformer.ToArray(item))
	}

	out := Map{"data": result}
	if c.pagination != nil {
		out["pagination"] = c.pagination
	}
	if c.meta != nil {
		out["meta"] = c.meta
	}
	writeJSON(w, http.StatusOK, out)
}

// ------------------- Helpers -------------------

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}
