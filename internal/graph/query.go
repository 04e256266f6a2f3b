package graph

import "github.com/graphql-go/graphql"

func (r *Resolver) query() *graphql.Object {
	t := r.types
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"promotions": &graphql.Field{
				Type: graphql.NewList(t.promotion),
				Resolve: r.resolve(func(p graphql.ResolveParams) (interface{}, error) {
					list, err := r.svc.Catalog.ListPromotions(p.Context)
					return ptrs(list), err
				}),
			},
			"promotion": &graphql.Field{
				Type: t.promotion,
				Args: idArg,
				Resolve: r.resolve(func(p graphql.ResolveParams) (interface{}, error) {
					id, err := uintArg(p.Args, "id")
					if err != nil {
						return nil, err
					}
					return r.svc.Catalog.GetPromotion(p.Context, id)
				}),
			},
			"collections": &graphql.Field{
				Type: graphql.NewList(t.collection),
				Resolve: r.resolve(func(p graphql.ResolveParams) (interface{}, error) {
					list, err := r.svc.Catalog.ListCollections(p.Context)
					return ptrs(list), err
				}),
			},
			"collection": &graphql.Field{
				Type: t.collection,
				Args: idArg,
				Resolve: r.resolve(func(p graphql.ResolveParams) (interface{}, error) {
					id, err := uintArg(p.Args, "id")
					if err != nil {
						return nil, err
					}
					return r.svc.Catalog.GetCollection(p.Context, id)
				}),
			},
			"products": &graphql.Field{
				Type: t.productConn,
				Args: productFilterArgs,
				Resolve: r.resolve(func(p graphql.ResolveParams) (interface{}, error) {
					filter, err := productFilter(p.Args)
					if err != nil {
						return nil, err
					}
					items, total, err := r.svc.Listing.ListProducts(p.Context, filter)
					if err != nil {
						return nil, err
					}
					return &productPage{items: ptrs(items), total: total}, nil
				}),
			},
			"allProducts": &graphql.Field{
				Type: graphql.NewList(t.product),
				Resolve: r.resolve(func(p graphql.ResolveParams) (interface{}, error) {
					list, err := r.svc.Listing.AllProducts(p.Context)
					return ptrs(list), err
				}),
			},
			"product": &graphql.Field{
				Type: t.product,
				Args: idArg,
				Resolve: r.resolve(r.productByID),
			},
			"fullProducts": &graphql.Field{
				Type:        t.productConn,
				Description: "Products with promotions. The unfiltered listing is served from cache.",
				Args:        productFilterArgs,
				Resolve: r.resolve(func(p graphql.ResolveParams) (interface{}, error) {
					filter, err := productFilter(p.Args)
					if err != nil {
						return nil, err
					}
					items, total, err := r.svc.Listing.FullProducts(p.Context, filter)
					if err != nil {
						return nil, err
					}
					return &productPage{items: ptrs(items), total: total}, nil
				}),
			},
			"fullProduct": &graphql.Field{
				Type: t.product,
				Args: idArg,
				Resolve: r.resolve(r.productByID),
			},
			"customers": &graphql.Field{
				Type: graphql.NewList(t.customer),
				Resolve: r.resolve(func(p graphql.ResolveParams) (interface{}, error) {
					list, err := r.svc.Customers.ListCustomers(p.Context)
					return ptrs(list), err
				}),
			},
			"customer": &graphql.Field{
				Type: t.customer,
				Args: idArg,
				Resolve: r.resolve(func(p graphql.ResolveParams) (interface{}, error) {
					id, err := uintArg(p.Args, "id")
					if err != nil {
						return nil, err
					}
					return r.svc.Customers.GetCustomer(p.Context, id)
				}),
			},
			"cart": &graphql.Field{
				Type: t.cart,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.resolve(func(p graphql.ResolveParams) (interface{}, error) {
					return r.svc.Carts.GetCart(p.Context, stringArg(p.Args, "id"))
				}),
			},
			"cartItems": &graphql.Field{
				Type: graphql.NewList(t.cartItem),
				Args: graphql.FieldConfigArgument{
					"cartId": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: r.resolve(func(p graphql.ResolveParams) (interface{}, error) {
					list, err := r.svc.Carts.ListItems(p.Context, stringArg(p.Args, "cartId"))
					return ptrs(list), err
				}),
			},
			"cartItem": &graphql.Field{
				Type: t.cartItem,
				Args: idArg,
				Resolve: r.resolve(func(p graphql.ResolveParams) (interface{}, error) {
					id, err := uintArg(p.Args, "id")
					if err != nil {
						return nil, err
					}
					return r.svc.Carts.GetItem(p.Context, id)
				}),
			},
			"orders": &graphql.Field{
				Type: graphql.NewList(t.order),
				Resolve: r.resolve(func(p graphql.ResolveParams) (interface{}, error) {
					list, err := r.svc.Orders.GetAllOrders(p.Context)
					return ptrs(list), err
				}),
			},
			"order": &graphql.Field{
				Type: t.order,
				Args: idArg,
				Resolve: r.resolve(func(p graphql.ResolveParams) (interface{}, error) {
					id, err := uintArg(p.Args, "id")
					if err != nil {
						return nil, err
					}
					return r.svc.Orders.GetOrderByID(p.Context, id)
				}),
			},
			"orderItems": &graphql.Field{
				Type: graphql.NewList(t.orderItem),
				Resolve: r.resolve(func(p graphql.ResolveParams) (interface{}, error) {
					list, err := r.svc.Orders.GetAllOrderItems(p.Context)
					return ptrs(list), err
				}),
			},
			"orderItem": &graphql.Field{
				Type: t.orderItem,
				Args: idArg,
				Resolve: r.resolve(func(p graphql.ResolveParams) (interface{}, error) {
					id, err := uintArg(p.Args, "id")
					if err != nil {
						return nil, err
					}
					return r.svc.Orders.GetOrderItem(p.Context, id)
				}),
			},
			"users": &graphql.Field{
				Type: graphql.NewList(t.user),
				Resolve: r.resolve(func(p graphql.ResolveParams) (interface{}, error) {
					list, err := r.svc.Users.ListUsers(p.Context)
					return ptrs(list), err
				}),
			},
			"user": &graphql.Field{
				Type: t.user,
				Args: idArg,
				Resolve: r.resolve(func(p graphql.ResolveParams) (interface{}, error) {
					id, err := uintArg(p.Args, "id")
					if err != nil {
						return nil, err
					}
					return r.svc.Users.GetUser(p.Context, id)
				}),
			},
			"me": &graphql.Field{
				Type: t.user,
				Resolve: r.resolve(func(p graphql.ResolveParams) (interface{}, error) {
					return r.svc.Users.Me(p.Context)
				}),
			},
		},
	})
}

func (r *Resolver) productByID(p graphql.ResolveParams) (interface{}, error) {
	id, err := uintArg(p.Args, "id")
	if err != nil {
		return nil, err
	}
	return r.svc.Catalog.GetProduct(p.Context, id)
}
