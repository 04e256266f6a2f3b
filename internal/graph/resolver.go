// Package graph builds the GraphQL schema served at /graphql and maps its
// fields onto the store services.
package graph

import (
	"time"

	"pcstore/internal/apperr"
	"pcstore/internal/services"

	"github.com/graphql-go/graphql"
	"go.uber.org/zap"
)

// Services groups everything the resolvers call into.
type Services struct {
	Auth      *services.AuthService
	Users     *services.UserService
	Customers *services.CustomerService
	Catalog   *services.CatalogService
	Listing   *services.ListingService
	Carts     *services.CartService
	Orders    *services.OrderService
}

// Resolver holds the dependencies shared by every field resolver.
type Resolver struct {
	svc    Services
	logger *zap.Logger
	types  *types
}

// NewSchema builds the executable schema.
func NewSchema(svc Services, logger *zap.Logger) (graphql.Schema, error) {
	r := &Resolver{svc: svc, logger: logger}
	r.types = r.buildTypes()
	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    r.query(),
		Mutation: r.mutation(),
	})
}

// present turns err into what clients see. Unclassified failures are logged
// and replaced by a generic internal error.
func (r *Resolver) present(err error) error {
	if err == nil {
		return nil
	}
	ae := apperr.From(err)
	if ae.Kind == apperr.KindInternal {
		r.logger.Error("request failed", zap.Error(err))
		return apperr.Internal(nil)
	}
	return ae
}

// resolve wraps fn so its errors go through present.
func (r *Resolver) resolve(fn graphql.FieldResolveFn) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		out, err := fn(p)
		if err != nil {
			return nil, r.present(err)
		}
		return out, nil
	}
}

// from adapts a resolver over a typed source value.
func from[T any](fn func(T) interface{}) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		src, ok := p.Source.(T)
		if !ok {
			return nil, nil
		}
		return fn(src), nil
	}
}

const dateLayout = "2006-01-02"

func formatTime(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

func formatDate(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.Format(dateLayout)
}

func ptrs[T any](items []T) []*T {
	out := make([]*T, len(items))
	for i := range items {
		out[i] = &items[i]
	}
	return out
}
