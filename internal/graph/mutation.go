package graph

import (
	"pcstore/internal/models"
	"pcstore/internal/services"

	"github.com/graphql-go/graphql"
)

var productInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "ProductInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"title":        &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"description":  &graphql.InputObjectFieldConfig{Type: graphql.String},
		"price":        &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"inventory":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Int)},
		"slug":         &graphql.InputObjectFieldConfig{Type: graphql.String},
		"collectionId": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Int)},
		"images":       &graphql.InputObjectFieldConfig{Type: graphql.String},
	},
})

var productPatchInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "ProductPatchInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"title":        &graphql.InputObjectFieldConfig{Type: graphql.String},
		"description":  &graphql.InputObjectFieldConfig{Type: graphql.String},
		"price":        &graphql.InputObjectFieldConfig{Type: graphql.String},
		"inventory":    &graphql.InputObjectFieldConfig{Type: graphql.Int},
		"slug":         &graphql.InputObjectFieldConfig{Type: graphql.String},
		"collectionId": &graphql.InputObjectFieldConfig{Type: graphql.Int},
		"images":       &graphql.InputObjectFieldConfig{Type: graphql.String},
	},
})

var createUserInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "CreateUserInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"username":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"email":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"password":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"firstName": &graphql.InputObjectFieldConfig{Type: graphql.String},
		"lastName":  &graphql.InputObjectFieldConfig{Type: graphql.String},
		"verified":  &graphql.InputObjectFieldConfig{Type: graphql.Boolean},
		"isStaff":   &graphql.InputObjectFieldConfig{Type: graphql.Boolean},
	},
})

var updateUserInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "UpdateUserInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"username":  &graphql.InputObjectFieldConfig{Type: graphql.String},
		"email":     &graphql.InputObjectFieldConfig{Type: graphql.String},
		"password":  &graphql.InputObjectFieldConfig{Type: graphql.String},
		"firstName": &graphql.InputObjectFieldConfig{Type: graphql.String},
		"lastName":  &graphql.InputObjectFieldConfig{Type: graphql.String},
		"verified":  &graphql.InputObjectFieldConfig{Type: graphql.Boolean},
		"isStaff":   &graphql.InputObjectFieldConfig{Type: graphql.Boolean},
	},
})

func nonNull(t graphql.Input) *graphql.ArgumentConfig {
	return &graphql.ArgumentConfig{Type: graphql.NewNonNull(t)}
}

func optional(t graphql.Input) *graphql.ArgumentConfig {
	return &graphql.ArgumentConfig{Type: t}
}

// deleted adapts a delete operation to a Boolean mutation.
func (r *Resolver) deleted(fn func(p graphql.ResolveParams, id uint) error) graphql.FieldResolveFn {
	return r.resolve(func(p graphql.ResolveParams) (interface{}, error) {
		id, err := uintArg(p.Args, "id")
		if err != nil {
			return nil, err
		}
		if err := fn(p, id); err != nil {
			return nil, err
		}
		return true, nil
	})
}

func (r *Resolver) mutation() *graphql.Object {
	t := r.types

	placeOrder := &graphql.Field{
		Type:        t.order,
		Description: "Converts a cart into an order and deletes the cart.",
		Args: graphql.FieldConfigArgument{
			"cartId":     nonNull(graphql.String),
			"customerId": nonNull(graphql.Int),
		},
		Resolve: r.resolve(func(p graphql.ResolveParams) (interface{}, error) {
			customerID, err := uintArg(p.Args, "customerId")
			if err != nil {
				return nil, err
			}
			return r.svc.Orders.PlaceOrder(p.Context, stringArg(p.Args, "cartId"), customerID)
		}),
	}

	tokenAuth := &graphql.Field{
		Type: t.tokenPayload,
		Args: graphql.FieldConfigArgument{
			"username": nonNull(graphql.String),
			"password": nonNull(graphql.String),
		},
		Resolve: r.resolve(func(p graphql.ResolveParams) (interface{}, error) {
			token, user, err := r.svc.Auth.LoginUser(p.Context, stringArg(p.Args, "username"), stringArg(p.Args, "password"))
			if err != nil {
				return nil, err
			}
			return &tokenPayload{token: token, user: user}, nil
		}),
	}

	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createCustomer": &graphql.Field{
				Type: t.customer,
				Args: graphql.FieldConfigArgument{
					"phone":     nonNull(graphql.String),
					"birthDate": nonNull(graphql.String),
					"userId":    nonNull(graphql.Int),
				},
				Resolve: r.resolve(func(p graphql.ResolveParams) (interface{}, error) {
					userID, err := uintArg(p.Args, "userId")
					if err != nil {
						return nil, err
					}
					birth, err := optDate(p.Args, "birthDate")
					if err != nil {
						return nil, err
					}
					return r.svc.Customers.CreateCustomer(p.Context, services.CreateCustomerInput{
						Phone:     stringArg(p.Args, "phone"),
						BirthDate: birth,
						UserID:    userID,
					})
				}),
			},
			"updateCustomer": &graphql.Field{
				Type: t.customer,
				Args: graphql.FieldConfigArgument{
					"id":        nonNull(graphql.Int),
					"phone":     optional(graphql.String),
					"birthDate": optional(graphql.String),
				},
				Resolve: r.resolve(func(p graphql.ResolveParams) (interface{}, error) {
					id, err := uintArg(p.Args, "id")
					if err != nil {
						return nil, err
					}
					birth, err := optDate(p.Args, "birthDate")
					if err != nil {
						return nil, err
					}
					return r.svc.Customers.UpdateCustomer(p.Context, id, services.UpdateCustomerInput{
						Phone:     optString(p.Args, "phone"),
						BirthDate: birth,
					})
				}),
			},
			"deleteCustomer": &graphql.Field{
				Type: graphql.Boolean,
				Args: idArg,
				Resolve: r.deleted(func(p graphql.ResolveParams, id uint) error {
					return r.svc.Customers.DeleteCustomer(p.Context, id)
				}),
			},

			"createCollection": &graphql.Field{
				Type: t.collection,
				Args: graphql.FieldConfigArgument{
					"title":             nonNull(graphql.String),
					"featuredProductId": optional(graphql.Int),
				},
				Resolve: r.resolve(func(p graphql.ResolveParams) (interface{}, error) {
					in, err := collectionInput(p.Args)
					if err != nil {
						return nil, err
					}
					return r.svc.Catalog.CreateCollection(p.Context, in)
				}),
			},
			"updateCollection": &graphql.Field{
				Type: t.collection,
				Args: graphql.FieldConfigArgument{
					"id":                nonNull(graphql.Int),
					"title":             nonNull(graphql.String),
					"featuredProductId": optional(graphql.Int),
				},
				Resolve: r.resolve(func(p graphql.ResolveParams) (interface{}, error) {
					id, err := uintArg(p.Args, "id")
					if err != nil {
						return nil, err
					}
					in, err := collectionInput(p.Args)
					if err != nil {
						return nil, err
					}
					return r.svc.Catalog.UpdateCollection(p.Context, id, in)
				}),
			},
			"deleteCollection": &graphql.Field{
				Type: graphql.Boolean,
				Args: idArg,
				Resolve: r.deleted(func(p graphql.ResolveParams, id uint) error {
					return r.svc.Catalog.DeleteCollection(p.Context, id)
				}),
			},
			"createPromotion": &graphql.Field{
				Type: t.promotion,
				Args: graphql.FieldConfigArgument{
					"description": nonNull(graphql.String),
					"discount":    optional(graphql.Float),
				},
				Resolve: r.resolve(func(p graphql.ResolveParams) (interface{}, error) {
					discount, _ := p.Args["discount"].(float64)
					return r.svc.Catalog.CreatePromotion(p.Context, services.PromotionInput{
						Description: stringArg(p.Args, "description"),
						Discount:    discount,
					})
				}),
			},

			"createProduct": &graphql.Field{
				Type: t.product,
				Args: graphql.FieldConfigArgument{"input": nonNull(productInput)},
				Resolve: r.resolve(func(p graphql.ResolveParams) (interface{}, error) {
					in := inputArg(p)
					collectionID, err := uintArg(in, "collectionId")
					if err != nil {
						return nil, err
					}
					inventory, _ := in["inventory"].(int)
					return r.svc.Catalog.CreateProduct(p.Context, services.ProductInput{
						Title:        stringArg(in, "title"),
						Description:  stringArg(in, "description"),
						Price:        stringArg(in, "price"),
						Inventory:    inventory,
						Slug:         stringArg(in, "slug"),
						CollectionID: collectionID,
						Images:       stringArg(in, "images"),
					})
				}),
			},
			"updateProduct": &graphql.Field{
				Type: t.product,
				Args: graphql.FieldConfigArgument{
					"id":    nonNull(graphql.Int),
					"input": nonNull(productPatchInput),
				},
				Resolve: r.resolve(func(p graphql.ResolveParams) (interface{}, error) {
					id, err := uintArg(p.Args, "id")
					if err != nil {
						return nil, err
					}
					in := inputArg(p)
					collectionID, err := optUint(in, "collectionId")
					if err != nil {
						return nil, err
					}
					return r.svc.Catalog.UpdateProduct(p.Context, id, services.ProductPatch{
						Title:        optString(in, "title"),
						Description:  optString(in, "description"),
						Price:        optString(in, "price"),
						Inventory:    optInt(in, "inventory"),
						Slug:         optString(in, "slug"),
						CollectionID: collectionID,
						Images:       optString(in, "images"),
					})
				}),
			},
			"deleteProduct": &graphql.Field{
				Type: graphql.Boolean,
				Args: idArg,
				Resolve: r.deleted(func(p graphql.ResolveParams, id uint) error {
					return r.svc.Catalog.DeleteProduct(p.Context, id)
				}),
			},

			"createCart": &graphql.Field{
				Type: t.cart,
				Resolve: r.resolve(func(p graphql.ResolveParams) (interface{}, error) {
					return r.svc.Carts.CreateCart(p.Context)
				}),
			},
			"deleteCart": &graphql.Field{
				Type: graphql.Boolean,
				Args: graphql.FieldConfigArgument{"id": nonNull(graphql.String)},
				Resolve: r.resolve(func(p graphql.ResolveParams) (interface{}, error) {
					if err := r.svc.Carts.DeleteCart(p.Context, stringArg(p.Args, "id")); err != nil {
						return nil, err
					}
					return true, nil
				}),
			},
			"createCartItem": &graphql.Field{
				Type:        t.cartItem,
				Description: "Adds quantity to the cart line for the product, creating it when absent.",
				Args: graphql.FieldConfigArgument{
					"cartId":    nonNull(graphql.String),
					"productId": nonNull(graphql.Int),
					"quantity":  nonNull(graphql.Int),
				},
				Resolve: r.resolve(func(p graphql.ResolveParams) (interface{}, error) {
					productID, err := uintArg(p.Args, "productId")
					if err != nil {
						return nil, err
					}
					quantity, _ := p.Args["quantity"].(int)
					return r.svc.Carts.AddItem(p.Context, stringArg(p.Args, "cartId"), productID, quantity)
				}),
			},
			"updateCartItem": &graphql.Field{
				Type: t.cartItem,
				Args: graphql.FieldConfigArgument{
					"id":       nonNull(graphql.Int),
					"quantity": nonNull(graphql.Int),
				},
				Resolve: r.resolve(func(p graphql.ResolveParams) (interface{}, error) {
					id, err := uintArg(p.Args, "id")
					if err != nil {
						return nil, err
					}
					quantity, _ := p.Args["quantity"].(int)
					return r.svc.Carts.SetItemQuantity(p.Context, id, quantity)
				}),
			},
			"deleteCartItem": &graphql.Field{
				Type: graphql.Boolean,
				Args: idArg,
				Resolve: r.deleted(func(p graphql.ResolveParams, id uint) error {
					return r.svc.Carts.RemoveItem(p.Context, id)
				}),
			},

			"createOrder": placeOrder,
			"placeOrder":  placeOrder,
			"updateOrder": &graphql.Field{
				Type: t.order,
				Args: graphql.FieldConfigArgument{
					"id":            nonNull(graphql.Int),
					"paymentStatus": nonNull(t.paymentStatus),
				},
				Resolve: r.resolve(func(p graphql.ResolveParams) (interface{}, error) {
					id, err := uintArg(p.Args, "id")
					if err != nil {
						return nil, err
					}
					status := models.PaymentStatus(stringArg(p.Args, "paymentStatus"))
					return r.svc.Orders.UpdateOrderStatus(p.Context, id, status)
				}),
			},
			"deleteOrder": &graphql.Field{
				Type: graphql.Boolean,
				Args: idArg,
				Resolve: r.deleted(func(p graphql.ResolveParams, id uint) error {
					return r.svc.Orders.DeleteOrder(p.Context, id)
				}),
			},

			"createUser": &graphql.Field{
				Type: t.user,
				Args: graphql.FieldConfigArgument{"input": nonNull(createUserInput)},
				Resolve: r.resolve(func(p graphql.ResolveParams) (interface{}, error) {
					in := inputArg(p)
					verified, _ := in["verified"].(bool)
					isStaff, _ := in["isStaff"].(bool)
					return r.svc.Auth.RegisterUser(p.Context, services.CreateUserInput{
						Username:  stringArg(in, "username"),
						Email:     stringArg(in, "email"),
						Password:  stringArg(in, "password"),
						FirstName: stringArg(in, "firstName"),
						LastName:  stringArg(in, "lastName"),
						Verified:  verified,
						IsStaff:   isStaff,
					})
				}),
			},
			"updateUser": &graphql.Field{
				Type: t.user,
				Args: graphql.FieldConfigArgument{
					"id":    nonNull(graphql.Int),
					"input": nonNull(updateUserInput),
				},
				Resolve: r.resolve(func(p graphql.ResolveParams) (interface{}, error) {
					id, err := uintArg(p.Args, "id")
					if err != nil {
						return nil, err
					}
					in := inputArg(p)
					return r.svc.Users.UpdateUser(p.Context, id, services.UpdateUserInput{
						Username:  optString(in, "username"),
						Email:     optString(in, "email"),
						Password:  optString(in, "password"),
						FirstName: optString(in, "firstName"),
						LastName:  optString(in, "lastName"),
						Verified:  optBool(in, "verified"),
						IsStaff:   optBool(in, "isStaff"),
					})
				}),
			},
			"deleteUser": &graphql.Field{
				Type: graphql.Boolean,
				Args: idArg,
				Resolve: r.deleted(func(p graphql.ResolveParams, id uint) error {
					return r.svc.Users.DeleteUser(p.Context, id)
				}),
			},

			"tokenAuth": tokenAuth,
			"login":     tokenAuth,
			"verifyToken": &graphql.Field{
				Type: t.tokenClaims,
				Args: graphql.FieldConfigArgument{"token": nonNull(graphql.String)},
				Resolve: r.resolve(func(p graphql.ResolveParams) (interface{}, error) {
					claims, err := r.svc.Auth.ValidateToken(stringArg(p.Args, "token"))
					if err != nil {
						return nil, err
					}
					// JSON numbers decode as float64.
					userID, _ := claims["user_id"].(float64)
					exp, _ := claims["exp"].(float64)
					username, _ := claims["username"].(string)
					return &tokenClaims{userID: int(userID), username: username, exp: int(exp)}, nil
				}),
			},
			"refreshToken": &graphql.Field{
				Type: t.tokenPayload,
				Args: graphql.FieldConfigArgument{"token": nonNull(graphql.String)},
				Resolve: r.resolve(func(p graphql.ResolveParams) (interface{}, error) {
					user, err := r.svc.Auth.Authenticate(p.Context, stringArg(p.Args, "token"))
					if err != nil {
						return nil, err
					}
					token, err := r.svc.Auth.RefreshToken(p.Context, stringArg(p.Args, "token"))
					if err != nil {
						return nil, err
					}
					return &tokenPayload{token: token, user: user}, nil
				}),
			},
		},
	})
}

func collectionInput(args map[string]interface{}) (services.CollectionInput, error) {
	featured, err := optUint(args, "featuredProductId")
	if err != nil {
		return services.CollectionInput{}, err
	}
	return services.CollectionInput{Title: stringArg(args, "title"), FeaturedProductID: featured}, nil
}
