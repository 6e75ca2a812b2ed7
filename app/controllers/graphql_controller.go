package controllers

import (
	"net/http"

	"github.com/graphql-go/graphql"

	"github.com/shashiranjanraj/campuskart/app/services"
	"github.com/shashiranjanraj/campuskart/pkg/ctx"
	gqlschema "github.com/shashiranjanraj/campuskart/pkg/graphql"
)

// GraphQLController serves a read-only catalogue query endpoint. Mutations
// stay on REST; this exists for clients that want to shape their own reads.
type GraphQLController struct {
	schema  graphql.Schema
	service *services.CatalogService
}

func NewGraphQLController() (*GraphQLController, error) {
	gc := &GraphQLController{service: services.NewCatalogService()}

	productType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Product",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.String},
			"name":        &graphql.Field{Type: graphql.String},
			"category":    &graphql.Field{Type: graphql.String},
			"description": &graphql.Field{Type: graphql.String},
			"image":       &graphql.Field{Type: graphql.String},
			"hostel":      &graphql.Field{Type: graphql.String},
		},
	})

	listingType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Listing",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.String},
			"productName": &graphql.Field{Type: graphql.String},
			"category":    &graphql.Field{Type: graphql.String},
			"sellerName":  &graphql.Field{Type: graphql.String},
			"price":       &graphql.Field{Type: graphql.Float},
			"stock":       &graphql.Field{Type: graphql.Int},
			"hostel":      &graphql.Field{Type: graphql.String},
		},
	})

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"products": &graphql.Field{
				Type: graphql.NewList(productType),
				Args: graphql.FieldConfigArgument{
					"hostel": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					hostel, _ := p.Args["hostel"].(string)
					products, err := gc.service.Products(p.Context, hostel)
					if err != nil {
						return nil, err
					}
					out := make([]map[string]interface{}, len(products))
					for i, pr := range products {
						out[i] = map[string]interface{}{
							"id":          pr.ID.Hex(),
							"name":        pr.Name,
							"category":    pr.Category,
							"description": pr.Description,
							"image":       pr.Image,
							"hostel":      pr.Hostel,
						}
					}
					return out, nil
				},
			},
			"listings": &graphql.Field{
				Type: graphql.NewList(listingType),
				Args: graphql.FieldConfigArgument{
					"hostel": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					hostel, _ := p.Args["hostel"].(string)
					views, err := gc.service.PublicCatalog(p.Context, hostel)
					if err != nil {
						return nil, err
					}
					out := make([]map[string]interface{}, len(views))
					for i, v := range views {
						out[i] = map[string]interface{}{
							"id":          v.ID.Hex(),
							"productName": v.ProductName,
							"category":    v.Category,
							"sellerName":  v.SellerName,
							"price":       v.Price,
							"stock":       v.Stock,
							"hostel":      v.Hostel,
						}
					}
					return out, nil
				},
			},
		},
	})

	schema, err := gqlschema.NewSchema(query)
	if err != nil {
		return nil, err
	}
	gc.schema = schema
	return gc, nil
}

// Query executes one GraphQL request.
func (gc *GraphQLController) Query(c *ctx.Context) {
	var in struct {
		Query     string                 `json:"query"`
		Variables map[string]interface{} `json:"variables"`
	}
	if !c.BindJSON(&in) {
		return
	}

	result := graphql.Do(graphql.Params{
		Schema:         gc.schema,
		RequestString:  in.Query,
		VariableValues: in.Variables,
		Context:        c.Context(),
	})
	c.JSON(http.StatusOK, result)
}
