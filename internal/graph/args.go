package graph

import (
	"time"

	"pcstore/internal/apperr"
	"pcstore/internal/repositories"

	"github.com/graphql-go/graphql"
	"github.com/shopspring/decimal"
)

var idArg = graphql.FieldConfigArgument{
	"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
}

// productFilterArgs are shared by products and fullProducts.
var productFilterArgs = graphql.FieldConfigArgument{
	"collectionTitle": &graphql.ArgumentConfig{Type: graphql.String},
	"priceGt":         &graphql.ArgumentConfig{Type: graphql.String},
	"priceLt":         &graphql.ArgumentConfig{Type: graphql.String},
	"inventoryGt":     &graphql.ArgumentConfig{Type: graphql.Int},
	"inventoryLt":     &graphql.ArgumentConfig{Type: graphql.Int},
	"search":          &graphql.ArgumentConfig{Type: graphql.String},
	"orderBy":         &graphql.ArgumentConfig{Type: graphql.String},
	"first":           &graphql.ArgumentConfig{Type: graphql.Int},
	"offset":          &graphql.ArgumentConfig{Type: graphql.Int},
	"limit":           &graphql.ArgumentConfig{Type: graphql.Int},
}

func uintArg(args map[string]interface{}, name string) (uint, error) {
	v, ok := args[name].(int)
	if !ok {
		return 0, apperr.InvalidInput("%s is required", name)
	}
	if v <= 0 {
		return 0, apperr.InvalidInput("%s must be a positive integer", name)
	}
	return uint(v), nil
}

func optUint(args map[string]interface{}, name string) (*uint, error) {
	if _, ok := args[name]; !ok || args[name] == nil {
		return nil, nil
	}
	v, err := uintArg(args, name)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func stringArg(args map[string]interface{}, name string) string {
	s, _ := args[name].(string)
	return s
}

func optString(args map[string]interface{}, name string) *string {
	s, ok := args[name].(string)
	if !ok {
		return nil
	}
	return &s
}

func optInt(args map[string]interface{}, name string) *int {
	v, ok := args[name].(int)
	if !ok {
		return nil
	}
	return &v
}

func optBool(args map[string]interface{}, name string) *bool {
	v, ok := args[name].(bool)
	if !ok {
		return nil
	}
	return &v
}

func optDecimal(args map[string]interface{}, name string) (*decimal.Decimal, error) {
	s, ok := args[name].(string)
	if !ok {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, apperr.InvalidInput("%s: %q is not a decimal number", name, s)
	}
	return &d, nil
}

func optDate(args map[string]interface{}, name string) (*time.Time, error) {
	s, ok := args[name].(string)
	if !ok {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, apperr.InvalidInput("%s: %q is not a date (YYYY-MM-DD)", name, s)
	}
	return &t, nil
}

func inputArg(p graphql.ResolveParams) map[string]interface{} {
	in, _ := p.Args["input"].(map[string]interface{})
	if in == nil {
		return map[string]interface{}{}
	}
	return in
}

func productFilter(args map[string]interface{}) (repositories.ProductFilter, error) {
	var (
		f   repositories.ProductFilter
		err error
	)
	f.CollectionTitle = optString(args, "collectionTitle")
	if f.PriceGt, err = optDecimal(args, "priceGt"); err != nil {
		return f, err
	}
	if f.PriceLt, err = optDecimal(args, "priceLt"); err != nil {
		return f, err
	}
	f.InventoryGt = optInt(args, "inventoryGt")
	f.InventoryLt = optInt(args, "inventoryLt")
	f.Search = stringArg(args, "search")
	f.OrderBy = stringArg(args, "orderBy")

	if v := optInt(args, "offset"); v != nil {
		if *v < 0 {
			return f, apperr.InvalidInput("offset must not be negative")
		}
		f.Offset = *v
	}
	for _, name := range []string{"first", "limit"} {
		if v := optInt(args, name); v != nil {
			if *v < 0 {
				return f, apperr.InvalidInput("%s must not be negative", name)
			}
			f.Limit = *v
		}
	}
	return f, nil
}
