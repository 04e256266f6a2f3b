package models

// All returns every persisted model in migration order.
func All() []interface{} {
	return []interface{}{
		&Promotion{},
		&Collection{},
		&Product{},
		&Cart{},
		&CartItem{},
		&User{},
		&Customer{},
		&Order{},
		&OrderItem{},
	}
}
