package main

import (
	"fmt"
	"net/http"
)

// HealthCheck godoc
//
//	@Summary		Health check
//	@Description	Reports the environment and version. Basic auth.
//	@Tags			ops
//	@Produce		json
//	@Success		200	{object}	envelope{data=map[string]string}
//	@Failure		401	{object}	error
//	@Router			/health [get]
func (app *application) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	data := map[string]string{
		"status":  "ok",
		"env":     app.config.env,
		"version": version,
	}

	if err := app.jsonResponse(w, http.StatusOK, data); err != nil {
		app.internalServerError(w, r, err)
	}
}

// invalidateFacetsHandler drops the cached facets, e.g. after a catalog import.
//
//	@Summary		Drop cached facets
//	@Description	Removes the cached categories and brands so the next read hits the database. Basic auth.
//	@Tags			ops
//	@Success		204
//	@Failure		401	{object}	error
//	@Failure		500	{object}	error
//	@Router			/admin/cache/facets [delete]
func (app *application) invalidateFacetsHandler(w http.ResponseWriter, r *http.Request) {
	if err := app.facets.Invalidate(r.Context()); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (app *application) routeNotFoundHandler(w http.ResponseWriter, r *http.Request) {
	app.notFoundResponse(w, r, fmt.Errorf("no route for %s %s", r.Method, r.URL.Path))
}
