package catalog

import (
	"context"
	"fmt"

	"storefront/internal/errs"
	"storefront/internal/params"
	"storefront/internal/search"
)

type ProductQuerier interface {
	Query(ctx context.Context, spec QuerySpec) (Page, error)
}

type FacetProvider interface {
	Get(ctx context.Context) (Facets, error)
}

// Result is one rendered listing page.
type Result struct {
	Title      string            `json:"title"`
	Products   []ProductCard     `json:"products"`
	Pagination params.Pagination `json:"pagination"`
	Filters    ActiveFilterSet   `json:"filters"`
	// Query is the encoded filter set, ready to be used as the page URL.
	Query string `json:"query"`
}

// Listing runs a listing request end to end: expand the query, build and
// execute the catalog query, re-rank on relevance and project to cards.
type Listing struct {
	products ProductQuerier
	facets   FacetProvider
	builder  *Builder
}

func NewListing(products ProductQuerier, facets FacetProvider, builder *Builder) *Listing {
	return &Listing{products: products, facets: facets, builder: builder}
}

func (l *Listing) Search(ctx context.Context, f ActiveFilterSet) (Result, error) {
	facets, err := l.facets.Get(ctx)
	if err != nil {
		return Result{}, errs.Collaborator("catalog.facets", err)
	}

	terms := search.Expand(f.Query)

	spec, err := l.builder.Build(ctx, f, terms, facets.Categories)
	if err != nil {
		return Result{}, err
	}

	page, err := l.products.Query(ctx, spec)
	if err != nil {
		return Result{}, errs.Collaborator("catalog.query", err)
	}

	products := page.Products
	if f.Query != "" && len(products) > 0 {
		products = search.Rank(products, f.Query)
	}

	cards := make([]ProductCard, len(products))
	for i, p := range products {
		cards[i] = p.Card()
	}

	pg := params.New(f.Page, f.PageSize)
	pg.ComputeMeta(page.Total)

	return Result{
		Title:      title(f, facets),
		Products:   cards,
		Pagination: pg,
		Filters:    f,
		Query:      f.Values().Encode(),
	}, nil
}

// title names the page after the search, the single selected category or
// the single selected brand, in that order.
func title(f ActiveFilterSet, facets Facets) string {
	const generic = "Produtos"

	switch {
	case f.Query != "":
		return fmt.Sprintf("Resultados para %q", f.Query)
	case len(f.Categories) == 1:
		for _, c := range facets.Categories {
			if c.Slug == f.Categories[0] {
				return c.Name
			}
		}
	case len(f.Brands) == 1:
		for _, b := range facets.Brands {
			if b.Slug == f.Brands[0] {
				return generic + " " + b.Name
			}
		}
	}
	return generic
}
