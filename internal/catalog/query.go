package catalog

import (
	"context"
	"strings"

	"storefront/internal/errs"
	"storefront/internal/search"
)

type Entity string

const (
	EntityBrand    Entity = "brands"
	EntityCategory Entity = "categories"
)

// SlugResolver maps public slugs to row ids. Unknown slugs are skipped, so
// the result may be shorter than the input or empty.
type SlugResolver interface {
	LookupIDsBySlugs(ctx context.Context, entity Entity, slugs []string) ([]int64, error)
}

// PriceRange bounds the current price. Nil bounds are open.
type PriceRange struct {
	MinCents     *int64
	MinInclusive bool
	MaxCents     *int64
	MaxInclusive bool
}

// SearchClause matches a product when its name or description contains any
// term, or when it belongs to one of CategoryIDs.
type SearchClause struct {
	Terms       []string
	CategoryIDs []int64
}

type SortColumn string

const (
	ColumnPrice     SortColumn = "price"
	ColumnCreatedAt SortColumn = "created_at"
	ColumnSales     SortColumn = "sales_count"
	ColumnFeatured  SortColumn = "featured"
	ColumnID        SortColumn = "id"
)

type Order struct {
	Column SortColumn
	Desc   bool
}

// QuerySpec is a storage-agnostic description of one listing page request.
type QuerySpec struct {
	ActiveOnly  bool
	BrandIDs    []int64
	CategoryIDs []int64
	Genders     []string
	Condition   string
	Price       *PriceRange
	Search      *SearchClause
	OrderBy     []Order
	// From and To are the inclusive row range of the page.
	From int
	To   int
	// NoMatch is set when a requested brand or category does not exist; the
	// page is empty without touching storage.
	NoMatch bool
}

func (q QuerySpec) Limit() int { return q.To - q.From + 1 }

type Builder struct {
	slugs SlugResolver
}

func NewBuilder(slugs SlugResolver) *Builder {
	return &Builder{slugs: slugs}
}

// Build turns the active filters and the expanded search terms into a
// QuerySpec. categories is the active category catalog used to widen a text
// search to whole categories whose name matches a term.
func (b *Builder) Build(ctx context.Context, f ActiveFilterSet, terms []string, categories []Category) (QuerySpec, error) {
	if f.Page < 1 {
		return QuerySpec{}, errs.Invariant("page must be at least 1, got %d", f.Page)
	}
	if f.PageSize < 1 {
		return QuerySpec{}, errs.Invariant("page size must be at least 1, got %d", f.PageSize)
	}

	spec := QuerySpec{
		ActiveOnly: true,
		Genders:    f.Genders,
		Condition:  f.Condition,
		OrderBy:    sortOrder(f.Sort),
		From:       (f.Page - 1) * f.PageSize,
		To:         f.Page*f.PageSize - 1,
	}

	var err error
	if spec.BrandIDs, spec.NoMatch, err = b.resolve(ctx, EntityBrand, f.Brands); err != nil || spec.NoMatch {
		return spec, err
	}
	if spec.CategoryIDs, spec.NoMatch, err = b.resolve(ctx, EntityCategory, f.Categories); err != nil || spec.NoMatch {
		return spec, err
	}

	if spec.Price, err = priceRange(f.Price); err != nil {
		return spec, err
	}

	if len(terms) > 0 {
		spec.Search = &SearchClause{
			Terms:       terms,
			CategoryIDs: matchingCategories(categories, terms),
		}
	}

	return spec, nil
}

func (b *Builder) resolve(ctx context.Context, entity Entity, slugs []string) ([]int64, bool, error) {
	if len(slugs) == 0 {
		return nil, false, nil
	}
	ids, err := b.slugs.LookupIDsBySlugs(ctx, entity, slugs)
	if err != nil {
		return nil, false, errs.Collaborator("catalog.lookup "+string(entity), err)
	}
	return ids, len(ids) == 0, nil
}

func priceRange(b PriceBucket) (*PriceRange, error) {
	cents := func(v int64) *int64 { v *= 100; return &v }

	switch b {
	case PriceNone:
		return nil, nil
	case PriceUpTo50:
		return &PriceRange{MaxCents: cents(50)}, nil
	case Price50To100:
		return &PriceRange{MinCents: cents(50), MinInclusive: true, MaxCents: cents(100), MaxInclusive: true}, nil
	case Price100To200:
		return &PriceRange{MinCents: cents(100), MinInclusive: true, MaxCents: cents(200), MaxInclusive: true}, nil
	case PriceAbove200:
		return &PriceRange{MinCents: cents(200)}, nil
	default:
		return nil, errs.Invariant("unknown price bucket %q", string(b))
	}
}

func sortOrder(key SortKey) []Order {
	var order []Order
	switch key {
	case SortPriceAsc:
		order = []Order{{Column: ColumnPrice}}
	case SortPriceDesc:
		order = []Order{{Column: ColumnPrice, Desc: true}}
	case SortNewest:
		order = []Order{{Column: ColumnCreatedAt, Desc: true}}
	case SortBestSelling:
		order = []Order{{Column: ColumnSales, Desc: true}}
	default:
		order = []Order{{Column: ColumnFeatured, Desc: true}, {Column: ColumnSales, Desc: true}}
	}
	// id keeps pagination deterministic across equal sort values.
	return append(order, Order{Column: ColumnID})
}

func matchingCategories(categories []Category, terms []string) []int64 {
	var ids []int64
	for _, c := range categories {
		name := search.Normalize(c.Name)
		if name == "" {
			continue
		}
		for _, t := range terms {
			if strings.Contains(name, t) || strings.Contains(t, name) {
				ids = append(ids, c.ID)
				break
			}
		}
	}
	return ids
}
