package ontology

// Default returns the bundled e-commerce ontology. It covers the classes the
// synthetic generator and the demo CLI operate on, with Customer inheriting
// the person-level contact properties from Person.
func Default() *Ontology {
	o := &Ontology{
		Metadata: map[string]string{
			"name":    "ecommerce",
			"version": "1.0.0",
			"domain":  "e-commerce",
		},
		Classes:    make(map[string]*Class),
		Properties: make(map[string]*Property),
	}

	props := []Property{
		{Name: "firstName", Datatype: "string"},
		{Name: "lastName", Datatype: "string"},
		{Name: "email", Datatype: "string"},
		{Name: "phoneNumber", Datatype: "string"},
		{Name: "customerId", Datatype: "string"},
		{Name: "dateOfBirth", Datatype: "date"},
		{Name: "registrationDate", Datatype: "datetime"},
		{Name: "customerTier", Datatype: "string"},
		{Name: "orderId", Datatype: "string"},
		{Name: "orderDate", Datatype: "datetime"},
		{Name: "totalAmount", Datatype: "number"},
		{Name: "orderStatus", Datatype: "string"},
		{Name: "shippingMethod", Datatype: "string"},
		{Name: "trackingNumber", Datatype: "string"},
		{Name: "productId", Datatype: "string"},
		{Name: "productName", Datatype: "string"},
		{Name: "description", Datatype: "string"},
		{Name: "price", Datatype: "number"},
		{Name: "sku", Datatype: "string"},
		{Name: "weight", Datatype: "number"},
		{Name: "brand", Datatype: "string"},
		{Name: "categoryId", Datatype: "string"},
		{Name: "categoryName", Datatype: "string"},
		{Name: "parentCategory", Datatype: "string"},
		{Name: "paymentId", Datatype: "string"},
		{Name: "paymentMethod", Datatype: "string"},
		{Name: "paymentDate", Datatype: "datetime"},
		{Name: "amount", Datatype: "number"},
		{Name: "transactionId", Datatype: "string"},
		{Name: "paymentStatus", Datatype: "string"},
		{Name: "addressId", Datatype: "string"},
		{Name: "addressType", Datatype: "string"},
		{Name: "streetAddress", Datatype: "string"},
		{Name: "city", Datatype: "string"},
		{Name: "state", Datatype: "string"},
		{Name: "postalCode", Datatype: "string"},
		{Name: "country", Datatype: "string"},
		{Name: "reviewId", Datatype: "string"},
		{Name: "rating", Datatype: "integer"},
		{Name: "reviewText", Datatype: "string"},
		{Name: "reviewDate", Datatype: "datetime"},
		{Name: "verified", Datatype: "boolean"},
		{Name: "helpfulCount", Datatype: "integer"},
		{Name: "vendorId", Datatype: "string"},
		{Name: "vendorName", Datatype: "string"},
		{Name: "contactEmail", Datatype: "string"},
	}
	for i := range props {
		p := props[i]
		o.Properties[p.Name] = &p
	}

	min0 := 0.0
	min1, max5 := 1.0, 5.0

	o.Classes["Person"] = &Class{
		Name:       "Person",
		Properties: []string{"firstName", "lastName", "email", "phoneNumber"},
		Constraints: map[string]Constraint{
			"email": {Type: "string", Pattern: `^[^@\s]+@[^@\s]+\.[^@\s]+$`},
		},
	}
	o.Classes["Customer"] = &Class{
		Name:       "Customer",
		Parent:     "Person",
		Properties: []string{"customerId", "dateOfBirth", "registrationDate", "customerTier"},
		Constraints: map[string]Constraint{
			"customerId":   {Type: "string", Required: true},
			"customerTier": {Type: "enum", Values: []string{"bronze", "silver", "gold", "platinum"}},
		},
	}
	o.Classes["Order"] = &Class{
		Name:       "Order",
		Properties: []string{"orderId", "orderDate", "totalAmount", "orderStatus", "shippingMethod", "trackingNumber"},
		Constraints: map[string]Constraint{
			"orderId":     {Type: "string", Required: true},
			"totalAmount": {Type: "number", Min: &min0},
			"orderStatus": {Type: "enum", Values: []string{"pending", "processing", "shipped", "delivered", "cancelled"}},
		},
	}
	o.Classes["Product"] = &Class{
		Name:       "Product",
		Properties: []string{"productId", "productName", "description", "price", "sku", "weight", "brand"},
		Constraints: map[string]Constraint{
			"productId": {Type: "string", Required: true},
			"price":     {Type: "number", Min: &min0},
			"weight":    {Type: "number", Min: &min0},
		},
	}
	o.Classes["Category"] = &Class{
		Name:       "Category",
		Properties: []string{"categoryId", "categoryName", "parentCategory"},
	}
	o.Classes["Payment"] = &Class{
		Name:       "Payment",
		Properties: []string{"paymentId", "paymentMethod", "paymentDate", "amount", "transactionId", "paymentStatus"},
		Constraints: map[string]Constraint{
			"amount":        {Type: "number", Min: &min0},
			"paymentMethod": {Type: "enum", Values: []string{"credit_card", "debit_card", "paypal", "bank_transfer"}},
		},
	}
	o.Classes["Address"] = &Class{
		Name:       "Address",
		Properties: []string{"addressId", "addressType", "streetAddress", "city", "state", "postalCode", "country"},
	}
	o.Classes["Review"] = &Class{
		Name:       "Review",
		Properties: []string{"reviewId", "rating", "reviewText", "reviewDate", "verified", "helpfulCount"},
		Constraints: map[string]Constraint{
			"rating": {Type: "integer", Min: &min1, Max: &max5},
		},
	}
	o.Classes["Vendor"] = &Class{
		Name:       "Vendor",
		Properties: []string{"vendorId", "vendorName", "contactEmail"},
	}

	o.Relationships = []Relationship{
		{Name: "places", Source: "Customer", Target: "Order", Cardinality: "1:N"},
		{Name: "contains", Source: "Order", Target: "Product", Cardinality: "N:M"},
		{Name: "paidBy", Source: "Order", Target: "Payment", Cardinality: "1:1"},
		{Name: "shipsTo", Source: "Order", Target: "Address", Cardinality: "N:1"},
		{Name: "belongsTo", Source: "Product", Target: "Category", Cardinality: "N:1"},
		{Name: "suppliedBy", Source: "Product", Target: "Vendor", Cardinality: "N:1"},
		{Name: "writes", Source: "Customer", Target: "Review", Cardinality: "1:N"},
		{Name: "reviews", Source: "Review", Target: "Product", Cardinality: "N:1"},
	}

	return o
}
