package graphql

import (
	"github.com/graphql-go/graphql"

	"github.com/graphcore/corestore/pkg/catalog"
)

// entryView is the resolver-facing shape of a catalog entry. GraphQL
// resolves its fields via the map keys below, so the catalog's internal
// types never leak into the schema.
type entryView map[string]interface{}

func toEntryView(entry *catalog.CatalogEntry) entryView {
	view := entryView{
		"name":        entry.Config.GraphName,
		"username":    entry.Config.Username,
		"database":    entry.Config.DatabaseId,
		"memoryBytes": float64(entry.GraphStore.MemoryUsageBytes()),
	}
	if counter, ok := entry.GraphStore.(nodeCounter); ok {
		view["nodeCount"] = float64(counter.NodeCount())
	}
	if dist, ok := entry.GetDegreeDistribution(); ok {
		view["degreeDistribution"] = map[string]interface{}{
			"min":  float64(dist.Min),
			"max":  float64(dist.Max),
			"mean": dist.Mean,
			"p50":  dist.P50,
			"p90":  dist.P90,
			"p99":  dist.P99,
		}
	}
	return view
}

func createEntriesResolver(c *catalog.Catalog) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		var filter *string
		if database, ok := p.Args["database"].(string); ok {
			filter = &database
		}

		entries := c.GraphStores(filter)
		views := make([]entryView, 0, len(entries))
		for _, entry := range entries {
			views = append(views, toEntryView(entry))
		}
		return views, nil
	}
}

func createEntryResolver(c *catalog.Catalog) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		username := p.Args["username"].(string)
		database := p.Args["database"].(string)
		name := p.Args["name"].(string)

		entry, err := c.Get(catalog.NewCatalogRequest(database, username), name)
		if err != nil {
			return nil, err
		}
		return toEntryView(entry), nil
	}
}
