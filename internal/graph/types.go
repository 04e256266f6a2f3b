package graph

import (
	"pcstore/internal/models"
	"pcstore/internal/services"

	"github.com/graphql-go/graphql"
)

type types struct {
	paymentStatus *graphql.Enum
	promotion     *graphql.Object
	collection    *graphql.Object
	product       *graphql.Object
	productEdge   *graphql.Object
	productConn   *graphql.Object
	user          *graphql.Object
	customer      *graphql.Object
	cart          *graphql.Object
	cartItem      *graphql.Object
	order         *graphql.Object
	orderItem     *graphql.Object
	tokenPayload  *graphql.Object
	tokenClaims   *graphql.Object
}

// sourced is like from but passes the resolve params and can fail.
func sourced[T any](fn func(p graphql.ResolveParams, src T) (interface{}, error)) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		src, ok := p.Source.(T)
		if !ok {
			return nil, nil
		}
		return fn(p, src)
	}
}

func idField[T any](fn func(T) uint) *graphql.Field {
	return &graphql.Field{Type: graphql.NewNonNull(graphql.Int), Resolve: from(func(src T) interface{} { return int(fn(src)) })}
}

func (r *Resolver) buildTypes() *types {
	t := &types{}

	t.paymentStatus = graphql.NewEnum(graphql.EnumConfig{
		Name: "PaymentStatus",
		Values: graphql.EnumValueConfigMap{
			"PENDING":  &graphql.EnumValueConfig{Value: string(models.PaymentPending)},
			"COMPLETE": &graphql.EnumValueConfig{Value: string(models.PaymentComplete)},
			"FAILED":   &graphql.EnumValueConfig{Value: string(models.PaymentFailed)},
		},
	})

	t.promotion = graphql.NewObject(graphql.ObjectConfig{
		Name: "Promotion",
		Fields: graphql.Fields{
			"id":          idField(func(p *models.Promotion) uint { return p.ID }),
			"description": &graphql.Field{Type: graphql.String, Resolve: from(func(p *models.Promotion) interface{} { return p.Description })},
			"discount":    &graphql.Field{Type: graphql.Float, Resolve: from(func(p *models.Promotion) interface{} { return p.Discount })},
		},
	})

	t.collection = graphql.NewObject(graphql.ObjectConfig{
		Name: "Collection",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"id":    idField(func(c *models.Collection) uint { return c.ID }),
				"title": &graphql.Field{Type: graphql.String, Resolve: from(func(c *models.Collection) interface{} { return c.Title })},
				"featuredProductId": &graphql.Field{Type: graphql.Int, Resolve: from(func(c *models.Collection) interface{} {
					if c.FeaturedProductID == nil {
						return nil
					}
					return int(*c.FeaturedProductID)
				})},
				"featuredProduct": &graphql.Field{Type: t.product, Resolve: r.resolve(sourced(func(p graphql.ResolveParams, c *models.Collection) (interface{}, error) {
					if c.FeaturedProductID == nil {
						return nil, nil
					}
					return r.svc.Catalog.GetProduct(p.Context, *c.FeaturedProductID)
				}))},
				"productsCount": &graphql.Field{Type: graphql.Int, Resolve: r.resolve(sourced(func(p graphql.ResolveParams, c *models.Collection) (interface{}, error) {
					return r.svc.Listing.CollectionProductsCount(p.Context, c.ID)
				}))},
			}
		}),
	})

	t.product = graphql.NewObject(graphql.ObjectConfig{
		Name: "Product",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"id":          idField(func(p *models.Product) uint { return p.ID }),
				"index":       idField(func(p *models.Product) uint { return p.ID }),
				"title":       &graphql.Field{Type: graphql.String, Resolve: from(func(p *models.Product) interface{} { return p.Title })},
				"description": &graphql.Field{Type: graphql.String, Description: "JSON document", Resolve: from(func(p *models.Product) interface{} { return p.Description })},
				"price":       &graphql.Field{Type: graphql.String, Resolve: from(func(p *models.Product) interface{} { return p.Price.String() })},
				"inventory":   &graphql.Field{Type: graphql.Int, Resolve: from(func(p *models.Product) interface{} { return p.Inventory })},
				"slug":        &graphql.Field{Type: graphql.String, Resolve: from(func(p *models.Product) interface{} { return p.Slug })},
				"lastUpdate":  &graphql.Field{Type: graphql.String, Resolve: from(func(p *models.Product) interface{} { return formatTime(p.LastUpdate) })},
				"images":      &graphql.Field{Type: graphql.String, Description: "JSON document", Resolve: from(func(p *models.Product) interface{} { return p.Images })},
				"collectionId": &graphql.Field{Type: graphql.Int, Resolve: from(func(p *models.Product) interface{} { return int(p.CollectionID) })},
				"collection": &graphql.Field{Type: t.collection, Resolve: r.resolve(sourced(func(p graphql.ResolveParams, prod *models.Product) (interface{}, error) {
					if prod.Collection != nil {
						return prod.Collection, nil
					}
					return r.svc.Catalog.GetCollection(p.Context, prod.CollectionID)
				}))},
				"promotions": &graphql.Field{Type: graphql.NewList(t.promotion), Resolve: from(func(p *models.Product) interface{} { return ptrs(p.Promotions) })},
				"productsCount": &graphql.Field{Type: graphql.Int, Resolve: r.resolve(func(p graphql.ResolveParams) (interface{}, error) {
					return r.svc.Listing.ProductsCount(p.Context)
				})},
				"productsCollectionCount": &graphql.Field{Type: graphql.Int, Resolve: r.resolve(sourced(func(p graphql.ResolveParams, prod *models.Product) (interface{}, error) {
					return r.svc.Listing.CollectionProductsCount(p.Context, prod.CollectionID)
				}))},
			}
		}),
	})

	t.productEdge = graphql.NewObject(graphql.ObjectConfig{
		Name: "ProductEdge",
		Fields: graphql.Fields{
			"node": &graphql.Field{Type: t.product, Resolve: from(func(p *models.Product) interface{} { return p })},
		},
	})

	t.productConn = graphql.NewObject(graphql.ObjectConfig{
		Name: "ProductConnection",
		Fields: graphql.Fields{
			"totalCount": &graphql.Field{Type: graphql.Int, Resolve: from(func(c *productPage) interface{} { return int(c.total) })},
			"edges":      &graphql.Field{Type: graphql.NewList(t.productEdge), Resolve: from(func(c *productPage) interface{} { return c.items })},
			"items":      &graphql.Field{Type: graphql.NewList(t.product), Resolve: from(func(c *productPage) interface{} { return c.items })},
		},
	})

	t.user = graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id":         idField(func(u *models.User) uint { return u.ID }),
			"username":   &graphql.Field{Type: graphql.String, Resolve: from(func(u *models.User) interface{} { return u.Username })},
			"email":      &graphql.Field{Type: graphql.String, Resolve: from(func(u *models.User) interface{} { return u.Email })},
			"firstName":  &graphql.Field{Type: graphql.String, Resolve: from(func(u *models.User) interface{} { return u.FirstName })},
			"lastName":   &graphql.Field{Type: graphql.String, Resolve: from(func(u *models.User) interface{} { return u.LastName })},
			"verified":   &graphql.Field{Type: graphql.Boolean, Resolve: from(func(u *models.User) interface{} { return u.Verified })},
			"isStaff":    &graphql.Field{Type: graphql.Boolean, Resolve: from(func(u *models.User) interface{} { return u.IsStaff })},
			"dateJoined": &graphql.Field{Type: graphql.String, Resolve: from(func(u *models.User) interface{} { return formatTime(u.DateJoined) })},
		},
	})

	t.customer = graphql.NewObject(graphql.ObjectConfig{
		Name: "Customer",
		Fields: graphql.Fields{
			"id":        idField(func(c *models.Customer) uint { return c.ID }),
			"phone":     &graphql.Field{Type: graphql.String, Resolve: from(func(c *models.Customer) interface{} { return c.Phone })},
			"birthDate": &graphql.Field{Type: graphql.String, Resolve: from(func(c *models.Customer) interface{} { return formatDate(c.BirthDate) })},
			"userId":    &graphql.Field{Type: graphql.Int, Resolve: from(func(c *models.Customer) interface{} { return int(c.UserID) })},
			"user": &graphql.Field{Type: t.user, Resolve: r.resolve(sourced(func(p graphql.ResolveParams, c *models.Customer) (interface{}, error) {
				return r.svc.Users.GetUser(p.Context, c.UserID)
			}))},
		},
	})

	t.cartItem = graphql.NewObject(graphql.ObjectConfig{
		Name: "CartItem",
		Fields: graphql.Fields{
			"id":        idField(func(i *models.CartItem) uint { return i.ID }),
			"index":     idField(func(i *models.CartItem) uint { return i.ID }),
			"cartId":    &graphql.Field{Type: graphql.String, Resolve: from(func(i *models.CartItem) interface{} { return i.CartID })},
			"productId": &graphql.Field{Type: graphql.Int, Resolve: from(func(i *models.CartItem) interface{} { return int(i.ProductID) })},
			"quantity":  &graphql.Field{Type: graphql.Int, Resolve: from(func(i *models.CartItem) interface{} { return i.Quantity })},
			"product": &graphql.Field{Type: t.product, Resolve: r.resolve(sourced(func(p graphql.ResolveParams, i *models.CartItem) (interface{}, error) {
				if i.Product != nil {
					return i.Product, nil
				}
				return r.svc.Catalog.GetProduct(p.Context, i.ProductID)
			}))},
			"totalPrice": &graphql.Field{Type: graphql.String, Resolve: r.resolve(sourced(func(p graphql.ResolveParams, i *models.CartItem) (interface{}, error) {
				if i.Product == nil {
					product, err := r.svc.Catalog.GetProduct(p.Context, i.ProductID)
					if err != nil {
						return nil, err
					}
					i.Product = product
				}
				return services.ItemTotal(*i).String(), nil
			}))},
		},
	})

	t.cart = graphql.NewObject(graphql.ObjectConfig{
		Name: "Cart",
		Fields: graphql.Fields{
			"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.String), Resolve: from(func(c *models.Cart) interface{} { return c.ID })},
			"createdAt": &graphql.Field{Type: graphql.String, Resolve: from(func(c *models.Cart) interface{} { return formatTime(c.CreatedAt) })},
			"items": &graphql.Field{Type: graphql.NewList(t.cartItem), Resolve: r.resolve(sourced(func(p graphql.ResolveParams, c *models.Cart) (interface{}, error) {
				items, err := r.svc.Carts.ListItems(p.Context, c.ID)
				if err != nil {
					return nil, err
				}
				return ptrs(items), nil
			}))},
			"totalPrice": &graphql.Field{Type: graphql.String, Resolve: r.resolve(sourced(func(p graphql.ResolveParams, c *models.Cart) (interface{}, error) {
				total, err := r.svc.Carts.TotalPrice(p.Context, c.ID)
				if err != nil {
					return nil, err
				}
				return total.String(), nil
			}))},
			"itemsNumber": &graphql.Field{Type: graphql.Int, Resolve: r.resolve(sourced(func(p graphql.ResolveParams, c *models.Cart) (interface{}, error) {
				return r.svc.Carts.ItemsNumber(p.Context, c.ID)
			}))},
		},
	})

	t.orderItem = graphql.NewObject(graphql.ObjectConfig{
		Name: "OrderItem",
		Fields: graphql.Fields{
			"id":        idField(func(i *models.OrderItem) uint { return i.ID }),
			"orderId":   &graphql.Field{Type: graphql.Int, Resolve: from(func(i *models.OrderItem) interface{} { return int(i.OrderID) })},
			"productId": &graphql.Field{Type: graphql.Int, Resolve: from(func(i *models.OrderItem) interface{} { return int(i.ProductID) })},
			"quantity":  &graphql.Field{Type: graphql.Int, Resolve: from(func(i *models.OrderItem) interface{} { return i.Quantity })},
			"unitPrice": &graphql.Field{Type: graphql.String, Resolve: from(func(i *models.OrderItem) interface{} { return i.UnitPrice.String() })},
			"product": &graphql.Field{Type: t.product, Resolve: r.resolve(sourced(func(p graphql.ResolveParams, i *models.OrderItem) (interface{}, error) {
				if i.Product != nil {
					return i.Product, nil
				}
				return r.svc.Catalog.GetProduct(p.Context, i.ProductID)
			}))},
		},
	})

	t.order = graphql.NewObject(graphql.ObjectConfig{
		Name: "Order",
		Fields: graphql.Fields{
			"id":            idField(func(o *models.Order) uint { return o.ID }),
			"customerId":    &graphql.Field{Type: graphql.Int, Resolve: from(func(o *models.Order) interface{} { return int(o.CustomerID) })},
			"placedAt":      &graphql.Field{Type: graphql.String, Resolve: from(func(o *models.Order) interface{} { return formatTime(o.PlacedAt) })},
			"paymentStatus": &graphql.Field{Type: t.paymentStatus, Resolve: from(func(o *models.Order) interface{} { return string(o.PaymentStatus) })},
			"items":         &graphql.Field{Type: graphql.NewList(t.orderItem), Resolve: from(func(o *models.Order) interface{} { return ptrs(o.Items) })},
			"customer": &graphql.Field{Type: t.customer, Resolve: r.resolve(sourced(func(p graphql.ResolveParams, o *models.Order) (interface{}, error) {
				return r.svc.Customers.GetCustomer(p.Context, o.CustomerID)
			}))},
		},
	})

	t.tokenPayload = graphql.NewObject(graphql.ObjectConfig{
		Name: "TokenPayload",
		Fields: graphql.Fields{
			"token": &graphql.Field{Type: graphql.String, Resolve: from(func(tp *tokenPayload) interface{} { return tp.token })},
			"user":  &graphql.Field{Type: t.user, Resolve: from(func(tp *tokenPayload) interface{} { return tp.user })},
		},
	})

	t.tokenClaims = graphql.NewObject(graphql.ObjectConfig{
		Name: "TokenClaims",
		Fields: graphql.Fields{
			"userId":   &graphql.Field{Type: graphql.Int, Resolve: from(func(c *tokenClaims) interface{} { return c.userID })},
			"username": &graphql.Field{Type: graphql.String, Resolve: from(func(c *tokenClaims) interface{} { return c.username })},
			"exp":      &graphql.Field{Type: graphql.Int, Resolve: from(func(c *tokenClaims) interface{} { return c.exp })},
		},
	})

	return t
}

type productPage struct {
	items []*models.Product
	total int64
}

type tokenPayload struct {
	token string
	user  *models.User
}

type tokenClaims struct {
	userID   int
	username string
	exp      int
}
