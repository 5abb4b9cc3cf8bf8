// Package graphql exposes a read-only catalog query API mirroring the REST
// listings: products (active, optional category filter) and categories.
package graphql

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/graphql-go/graphql"

	"github.com/aureajoias/aurea/app/repositories"
	"github.com/aureajoias/aurea/pkg/response"
)

var productImageType = graphql.NewObject(graphql.ObjectConfig{
	Name: "ProductImage",
	Fields: graphql.Fields{
		"id":            &graphql.Field{Type: graphql.String},
		"image_url":     &graphql.Field{Type: graphql.String},
		"alt_text":      &graphql.Field{Type: graphql.String},
		"display_order": &graphql.Field{Type: graphql.Int},
	},
})

var categoryType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Category",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.String},
		"name":        &graphql.Field{Type: graphql.String},
		"slug":        &graphql.Field{Type: graphql.String},
		"description": &graphql.Field{Type: graphql.String},
		"cover_image": &graphql.Field{Type: graphql.String},
	},
})

var productType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Product",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.String},
		"name":        &graphql.Field{Type: graphql.String},
		"description": &graphql.Field{Type: graphql.String},
		"price":       &graphql.Field{Type: graphql.Float},
		"featured":    &graphql.Field{Type: graphql.Boolean},
		"category":    &graphql.Field{Type: categoryType},
		"images":      &graphql.Field{Type: graphql.NewList(productImageType)},
	},
})

// NewSchema builds the catalog schema over the given repositories.
func NewSchema(products *repositories.ProductRepository, categories *repositories.CategoryRepository) (graphql.Schema, error) {
	rootQuery := graphql.NewObject(graphql.ObjectConfig{
		Name: "RootQuery",
		Fields: graphql.Fields{
			"products": &graphql.Field{
				Type: graphql.NewList(productType),
				Args: graphql.FieldConfigArgument{
					"categorySlug": &graphql.ArgumentConfig{Type: graphql.String},
					"featured":     &graphql.ArgumentConfig{Type: graphql.Boolean},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if slug, ok := p.Args["categorySlug"].(string); ok && slug != "" {
						return products.ListByCategorySlug(slug)
					}
					if featured, ok := p.Args["featured"].(bool); ok && featured {
						return products.ListFeatured()
					}
					list, _, err := products.List(1, 100)
					return list, err
				},
			},
			"product": &graphql.Field{
				Type: productType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, err := uuid.Parse(p.Args["id"].(string))
					if err != nil {
						return nil, err
					}
					return products.GetByID(id)
				},
			},
			"categories": &graphql.Field{
				Type: graphql.NewList(categoryType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return categories.All()
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: rootQuery})
}

// Handler serves POST /api/graphql with a standard {query, variables} body.
func Handler(schema graphql.Schema) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Query     string                 `json:"query"`
			Variables map[string]interface{} `json:"variables"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			response.Error(w, http.StatusBadRequest, "Corpo da requisição inválido")
			return
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  body.Query,
			VariableValues: body.Variables,
			Context:        r.Context(),
		})

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result)
	}
}
