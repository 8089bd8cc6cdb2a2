package catalog

import (
	"net/url"
	"slices"
	"strconv"
	"strings"

	"storefront/internal/errs"
)

const (
	DefaultPageSize = 12
	MaxPageSize     = 48
)

// URL query keys of the listing page.
const (
	ParamBrand     = "marca"
	ParamCategory  = "categoria"
	ParamGender    = "genero"
	ParamPrice     = "preco"
	ParamCondition = "estado"
	ParamSort      = "ordenar"
	ParamPage      = "pagina"
	ParamPageSize  = "itens"
	ParamQuery     = "q"
)

type PriceBucket string

const (
	PriceNone     PriceBucket = ""
	PriceUpTo50   PriceBucket = "Até R$50"
	Price50To100  PriceBucket = "R$50 a R$100"
	Price100To200 PriceBucket = "R$100 a R$200"
	PriceAbove200 PriceBucket = "Acima de R$200"
)

// PriceBuckets lists the buckets in display order.
var PriceBuckets = []PriceBucket{PriceUpTo50, Price50To100, Price100To200, PriceAbove200}

func (b PriceBucket) Valid() bool {
	return b == PriceNone || slices.Contains(PriceBuckets, b)
}

type SortKey string

const (
	SortRelevance   SortKey = "relevancia"
	SortPriceAsc    SortKey = "menor_preco"
	SortPriceDesc   SortKey = "maior_preco"
	SortNewest      SortKey = "mais_recente"
	SortBestSelling SortKey = "mais_vendido"
)

// ActiveFilterSet is everything the shopper has selected on the listing page.
type ActiveFilterSet struct {
	Brands     []string    `json:"brands"`
	Categories []string    `json:"categories"`
	Genders    []string    `json:"genders"`
	Price      PriceBucket `json:"price,omitempty"`
	Condition  string      `json:"condition,omitempty"`
	Query      string      `json:"query,omitempty"`
	Sort       SortKey     `json:"sort"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
}

// DefaultFilters is the state of a listing page opened without parameters.
func DefaultFilters() ActiveFilterSet {
	return ActiveFilterSet{Sort: SortRelevance, Page: 1, PageSize: DefaultPageSize}
}

// ParseFilters reads an ActiveFilterSet from listing URL parameters. Missing
// parameters take their defaults. Sort keys are kept verbatim; unknown ones
// fall back to relevance when the query is built.
func ParseFilters(v url.Values) (ActiveFilterSet, error) {
	f := DefaultFilters()

	f.Brands = nonEmpty(v[ParamBrand])
	f.Categories = nonEmpty(v[ParamCategory])
	f.Genders = nonEmpty(v[ParamGender])

	if p := v.Get(ParamPrice); p != "" {
		b := PriceBucket(p)
		if !b.Valid() {
			return f, errs.Validation("faixa de preço inválida: " + p)
		}
		f.Price = b
	}

	f.Condition = strings.TrimSpace(v.Get(ParamCondition))
	f.Query = strings.TrimSpace(v.Get(ParamQuery))

	if s := strings.TrimSpace(v.Get(ParamSort)); s != "" {
		f.Sort = SortKey(s)
	}

	if s := strings.TrimSpace(v.Get(ParamPage)); s != "" {
		page, err := strconv.Atoi(s)
		if err != nil || page < 1 {
			return f, errs.Validation("página inválida: " + s)
		}
		f.Page = page
	}

	if s := strings.TrimSpace(v.Get(ParamPageSize)); s != "" {
		size, err := strconv.Atoi(s)
		if err != nil || size < 1 {
			return f, errs.Validation("quantidade de itens inválida: " + s)
		}
		f.PageSize = min(size, MaxPageSize)
	}

	return f, nil
}

// Values encodes f back into listing URL parameters. Defaults are omitted,
// so ParseFilters(f.Values()) reproduces f.
func (f ActiveFilterSet) Values() url.Values {
	v := url.Values{}
	for _, b := range f.Brands {
		v.Add(ParamBrand, b)
	}
	for _, c := range f.Categories {
		v.Add(ParamCategory, c)
	}
	for _, g := range f.Genders {
		v.Add(ParamGender, g)
	}
	if f.Price != PriceNone {
		v.Set(ParamPrice, string(f.Price))
	}
	if f.Condition != "" {
		v.Set(ParamCondition, f.Condition)
	}
	if f.Sort != "" && f.Sort != SortRelevance {
		v.Set(ParamSort, string(f.Sort))
	}
	if f.Page > 1 {
		v.Set(ParamPage, strconv.Itoa(f.Page))
	}
	if f.PageSize > 0 && f.PageSize != DefaultPageSize {
		v.Set(ParamPageSize, strconv.Itoa(f.PageSize))
	}
	if f.Query != "" {
		v.Set(ParamQuery, f.Query)
	}
	return v
}

// WithFilterToggled returns a copy of f with value added to or removed from
// the multi-valued filter named by param, back on page one.
func (f ActiveFilterSet) WithFilterToggled(param, value string) ActiveFilterSet {
	toggle := func(list []string) []string {
		if i := slices.Index(list, value); i >= 0 {
			return slices.Delete(slices.Clone(list), i, i+1)
		}
		return append(slices.Clone(list), value)
	}

	switch param {
	case ParamBrand:
		f.Brands = toggle(f.Brands)
	case ParamCategory:
		f.Categories = toggle(f.Categories)
	case ParamGender:
		f.Genders = toggle(f.Genders)
	case ParamPrice:
		if f.Price == PriceBucket(value) {
			f.Price = PriceNone
		} else {
			f.Price = PriceBucket(value)
		}
	case ParamCondition:
		if f.Condition == value {
			f.Condition = ""
		} else {
			f.Condition = value
		}
	}
	f.Page = 1
	return f
}

func nonEmpty(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
