package main

import (
	"net/http"

	"storefront/internal/catalog"
)

// listProductsHandler serves one listing page. Loads are keyed by the cart
// owner so an older request overtaken by a newer one from the same shopper
// answers 409 instead of a stale page.
//
//	@Summary		List products
//	@Description	Returns one page of active products for the given filters. A newer request from the same shopper makes an older one answer 409.
//	@Tags			products
//	@Produce		json
//	@Param			q			query		string	false	"Search text"
//	@Param			marca		query		string	false	"Brand slug, repeatable"
//	@Param			categoria	query		string	false	"Category slug, repeatable"
//	@Param			genero		query		string	false	"Gender, repeatable"
//	@Param			preco		query		string	false	"Price range"	Enums(Até R$50, R$50 a R$100, R$100 a R$200, Acima de R$200)
//	@Param			estado		query		string	false	"Condition"
//	@Param			ordenar		query		string	false	"Sort order"	Enums(relevancia, menor_preco, maior_preco, mais_recente, mais_vendido)
//	@Param			pagina		query		int		false	"Page number"		default(1)
//	@Param			itens		query		int		false	"Items per page"
//	@Param			X-Cart-Token	header	string	false	"Guest cart token"
//	@Success		200	{object}	envelope{data=catalog.Result}
//	@Failure		400	{object}	error
//	@Failure		409	{object}	error	"Superseded by a newer request"
//	@Failure		502	{object}	error
//	@Router			/products [get]
func (app *application) listProductsHandler(w http.ResponseWriter, r *http.Request) {
	filters, err := catalog.ParseFilters(r.URL.Query())
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	var key string
	if owner := getOwnerFromContext(r); owner.Valid() {
		key = owner.Key()
	}

	res, err := app.listing.Load(r.Context(), key, filters)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, res); err != nil {
		app.internalServerError(w, r, err)
	}
}

type facetsResponse struct {
	catalog.Facets
	PriceRanges []catalog.PriceBucket `json:"price_ranges"`
}

// ProductFacets godoc
//
//	@Summary		Listing facets
//	@Description	Active categories, brands and price ranges to filter the listing by.
//	@Tags			products
//	@Produce		json
//	@Success		200	{object}	envelope{data=facetsResponse}
//	@Failure		502	{object}	error
//	@Router			/products/facets [get]
func (app *application) productFacetsHandler(w http.ResponseWriter, r *http.Request) {
	facets, err := app.facets.Get(r.Context())
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, facetsResponse{Facets: facets, PriceRanges: catalog.PriceBuckets}); err != nil {
		app.internalServerError(w, r, err)
	}
}
