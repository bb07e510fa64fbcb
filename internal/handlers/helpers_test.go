package handlers

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	mw "goaltrack/internal/middleware"
)

func errNoRows() error { return sql.ErrNoRows }

// withUser stamps the request the way JWTAuth would after verification.
func withUser(r *http.Request, id, email, role string) *http.Request {
	ctx := context.WithValue(r.Context(), mw.CtxUserID, id)
	ctx = context.WithValue(ctx, mw.CtxEmail, email)
	ctx = context.WithValue(ctx, mw.CtxRole, role)
	return r.WithContext(ctx)
}

// withURLParam injects a chi route parameter for handlers called directly.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
