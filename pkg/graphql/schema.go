// Package graphql exposes a read-only inspection schema over the graph
// catalog for dashboards: listing registered graphs, their memory
// footprint and degree-distribution side data. There is no mutation
// surface and no query evaluation over graph data itself.
package graphql

import (
	"fmt"

	"github.com/graphql-go/graphql"

	"github.com/graphcore/corestore/pkg/catalog"
)

// nodeCounter is the optional surface a graph store may expose beyond
// the catalog's opaque contract; entries whose stores lack it report a
// null nodeCount.
type nodeCounter interface {
	NodeCount() int64
}

// GenerateSchema generates the read-only inspection schema over c.
func GenerateSchema(c *catalog.Catalog) (graphql.Schema, error) {
	degreeDistributionType := createDegreeDistributionType()
	entryType := createEntryType(degreeDistributionType)

	queryFields := graphql.Fields{
		// Always include a health check query
		"health": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return "ok", nil
			},
		},
		"graphCount": &graphql.Field{
			Type: graphql.Int,
			Args: graphql.FieldConfigArgument{
				"database": &graphql.ArgumentConfig{
					Type: graphql.String,
				},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if database, ok := p.Args["database"].(string); ok {
					return c.CountForDatabase(database), nil
				}
				return c.Count(), nil
			},
		},
		"graphs": &graphql.Field{
			Type: graphql.NewList(entryType),
			Args: graphql.FieldConfigArgument{
				"database": &graphql.ArgumentConfig{
					Type: graphql.String,
				},
			},
			Resolve: createEntriesResolver(c),
		},
		"graph": &graphql.Field{
			Type: entryType,
			Args: graphql.FieldConfigArgument{
				"username": &graphql.ArgumentConfig{
					Type: graphql.NewNonNull(graphql.String),
				},
				"database": &graphql.ArgumentConfig{
					Type: graphql.NewNonNull(graphql.String),
				},
				"name": &graphql.ArgumentConfig{
					Type: graphql.NewNonNull(graphql.String),
				},
			},
			Resolve: createEntryResolver(c),
		},
	}

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name:   "Query",
		Fields: queryFields,
	})

	schema, err := graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
	if err != nil {
		return graphql.Schema{}, fmt.Errorf("failed to create schema: %w", err)
	}

	return schema, nil
}

func createDegreeDistributionType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "DegreeDistribution",
		Fields: graphql.Fields{
			"min":  &graphql.Field{Type: graphql.Float},
			"max":  &graphql.Field{Type: graphql.Float},
			"mean": &graphql.Field{Type: graphql.Float},
			"p50":  &graphql.Field{Type: graphql.Float},
			"p90":  &graphql.Field{Type: graphql.Float},
			"p99":  &graphql.Field{Type: graphql.Float},
		},
	})
}

func createEntryType(degreeDistributionType *graphql.Object) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "GraphEntry",
		Fields: graphql.Fields{
			"name": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
			},
			"username": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
			},
			"database": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
			},
			"memoryBytes": &graphql.Field{
				Type: graphql.Float,
			},
			"nodeCount": &graphql.Field{
				Type: graphql.Float,
			},
			"degreeDistribution": &graphql.Field{
				Type: degreeDistributionType,
			},
		},
	})
}
