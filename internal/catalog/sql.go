package catalog

import (
	"fmt"
	"strings"
)

const currentPriceExpr = "COALESCE(p.sale_price_cents, p.price_cents)"

var sortColumns = map[SortColumn]string{
	ColumnPrice:     currentPriceExpr,
	ColumnCreatedAt: "p.created_at",
	ColumnSales:     "p.sales_count",
	ColumnFeatured:  "p.is_featured",
	ColumnID:        "p.id",
}

const selectProducts = `
SELECT
  p.id, p.name, p.slug, p.description,
  p.price_cents, p.sale_price_cents, p.discount_percent,
  c.id, c.name, c.slug,
  b.id, b.name, b.slug,
  p.gender, p.condition, p.is_featured, p.sales_count, p.created_at,
  COALESCE(imgs.images, '[]'::json)
FROM products p
LEFT JOIN categories c ON c.id = p.category_id
LEFT JOIN brands b     ON b.id = p.brand_id
LEFT JOIN LATERAL (
  SELECT json_agg(
           json_build_object('id', pi.id, 'url', pi.url, 'is_primary', pi.is_primary, 'sort_order', pi.sort_order)
           ORDER BY pi.sort_order, pi.id
         ) AS images
  FROM product_images pi
  WHERE pi.product_id = p.id
) imgs ON true`

type sqlArgs []any

func (a *sqlArgs) add(v any) string {
	*a = append(*a, v)
	return fmt.Sprintf("$%d", len(*a))
}

// compileWhere renders the filter part of spec as a WHERE clause (possibly
// empty) with positional arguments.
func compileWhere(spec QuerySpec, args *sqlArgs) string {
	var conds []string

	if spec.ActiveOnly {
		conds = append(conds, "p.is_active = true")
	}
	if len(spec.BrandIDs) > 0 {
		conds = append(conds, "p.brand_id = ANY("+args.add(spec.BrandIDs)+")")
	}
	if len(spec.CategoryIDs) > 0 {
		conds = append(conds, "p.category_id = ANY("+args.add(spec.CategoryIDs)+")")
	}
	if len(spec.Genders) > 0 {
		conds = append(conds, "p.gender = ANY("+args.add(spec.Genders)+")")
	}
	if spec.Condition != "" {
		conds = append(conds, "p.condition = "+args.add(spec.Condition))
	}

	if pr := spec.Price; pr != nil {
		if pr.MinCents != nil {
			op := ">"
			if pr.MinInclusive {
				op = ">="
			}
			conds = append(conds, fmt.Sprintf("%s %s %s", currentPriceExpr, op, args.add(*pr.MinCents)))
		}
		if pr.MaxCents != nil {
			op := "<"
			if pr.MaxInclusive {
				op = "<="
			}
			conds = append(conds, fmt.Sprintf("%s %s %s", currentPriceExpr, op, args.add(*pr.MaxCents)))
		}
	}

	if s := spec.Search; s != nil && (len(s.Terms) > 0 || len(s.CategoryIDs) > 0) {
		var ors []string
		for _, t := range s.Terms {
			ph := args.add("%" + escapeLike(t) + "%")
			ors = append(ors, "p.name ILIKE "+ph, "p.description ILIKE "+ph)
		}
		if len(s.CategoryIDs) > 0 {
			ors = append(ors, "p.category_id = ANY("+args.add(s.CategoryIDs)+")")
		}
		conds = append(conds, "("+strings.Join(ors, " OR ")+")")
	}

	if len(conds) == 0 {
		return ""
	}
	return "\nWHERE " + strings.Join(conds, "\n  AND ")
}

func compileOrder(order []Order) string {
	if len(order) == 0 {
		return ""
	}
	parts := make([]string, 0, len(order))
	for _, o := range order {
		col, ok := sortColumns[o.Column]
		if !ok {
			continue
		}
		dir := "ASC"
		if o.Desc {
			dir = "DESC"
		}
		parts = append(parts, col+" "+dir)
	}
	return "\nORDER BY " + strings.Join(parts, ", ")
}

// compileQuery renders the page query and the matching count query. They
// share the same filter arguments; the page query appends LIMIT and OFFSET.
func compileQuery(spec QuerySpec) (pageSQL string, pageArgs []any, countSQL string, countArgs []any) {
	var args sqlArgs
	where := compileWhere(spec, &args)

	countSQL = "SELECT count(*) FROM products p" + where
	countArgs = append([]any(nil), args...)

	limit := args.add(spec.Limit())
	offset := args.add(spec.From)
	pageSQL = selectProducts + where + compileOrder(spec.OrderBy) + "\nLIMIT " + limit + " OFFSET " + offset

	return pageSQL, args, countSQL, countArgs
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
