package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"storefront/internal/infra/dbx"
)

var ErrUnknownEntity = errors.New("unknown catalog entity")

// Page is one page of products plus the exact number of matching rows.
type Page struct {
	Products []*Product
	Total    int
}

type Store interface {
	SlugResolver
	Query(ctx context.Context, spec QuerySpec) (Page, error)
	ActiveCategories(ctx context.Context) ([]Category, error)
	ActiveBrands(ctx context.Context) ([]Brand, error)
}

type Repository struct {
	db dbx.Querier
}

func NewRepository(db dbx.Querier) *Repository {
	return &Repository{db: db}
}

// Query executes spec and returns the requested page with an exact count.
func (r *Repository) Query(ctx context.Context, spec QuerySpec) (Page, error) {
	if spec.NoMatch {
		return Page{}, nil
	}

	pageSQL, pageArgs, countSQL, countArgs := compileQuery(spec)

	var page Page
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&page.Total); err != nil {
		return Page{}, fmt.Errorf("count products: %w", err)
	}
	if page.Total == 0 || spec.From >= page.Total {
		return page, nil
	}

	rows, err := r.db.Query(ctx, pageSQL, pageArgs...)
	if err != nil {
		return Page{}, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			p                    Product
			catID, brandID       *int64
			catName, catSlug     *string
			brandName, brandSlug *string
			gender, condition    *string
			images               []byte
			createdAt            time.Time
		)
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Slug, &p.Description,
			&p.OriginalPriceCents, &p.SalePriceCents, &p.DiscountPercent,
			&catID, &catName, &catSlug,
			&brandID, &brandName, &brandSlug,
			&gender, &condition, &p.Featured, &p.SalesCount, &createdAt,
			&images,
		); err != nil {
			return Page{}, fmt.Errorf("scan product: %w", err)
		}

		p.CreatedAt = createdAt
		p.Category = ref(catID, catName, catSlug)
		p.Brand = ref(brandID, brandName, brandSlug)
		if gender != nil {
			p.Gender = *gender
		}
		if condition != nil {
			p.Condition = *condition
		}
		if err := json.Unmarshal(images, &p.Images); err != nil {
			return Page{}, fmt.Errorf("decode images for product %d: %w", p.ID, err)
		}

		page.Products = append(page.Products, &p)
	}
	if err := rows.Err(); err != nil {
		return Page{}, fmt.Errorf("products rows: %w", err)
	}

	return page, nil
}

func ref(id *int64, name, slug *string) *Ref {
	if id == nil {
		return nil
	}
	r := &Ref{ID: *id}
	if name != nil {
		r.Name = *name
	}
	if slug != nil {
		r.Slug = *slug
	}
	return r
}

func (r *Repository) LookupIDsBySlugs(ctx context.Context, entity Entity, slugs []string) ([]int64, error) {
	var table string
	switch entity {
	case EntityBrand:
		table = "brands"
	case EntityCategory:
		table = "categories"
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEntity, entity)
	}

	rows, err := r.db.Query(ctx, `SELECT id FROM `+table+` WHERE slug = ANY($1) ORDER BY id`, slugs)
	if err != nil {
		return nil, fmt.Errorf("lookup %s by slug: %w", table, err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan %s id: %w", table, err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *Repository) ActiveCategories(ctx context.Context) ([]Category, error) {
	rows, err := r.db.Query(ctx, `
SELECT id, name, slug, is_active
FROM categories
WHERE is_active = true
ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var out []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.IsActive); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *Repository) ActiveBrands(ctx context.Context) ([]Brand, error) {
	rows, err := r.db.Query(ctx, `
SELECT id, name, slug, is_active
FROM brands
WHERE is_active = true
ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	defer rows.Close()

	var out []Brand
	for rows.Next() {
		var b Brand
		if err := rows.Scan(&b.ID, &b.Name, &b.Slug, &b.IsActive); err != nil {
			return nil, fmt.Errorf("scan brand: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
