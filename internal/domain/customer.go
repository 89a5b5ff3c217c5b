package domain

// Customer is the typed view imposed on a reconciled customer object.
// JSON tags match the domain-object field names the provider mapping
// table produces.
type Customer struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Phone     string  `json:"phone"`
	Timezone  string  `json:"timezone"`
	CreatedAt *string `json:"createdAt,omitempty"`
	UpdatedAt *string `json:"updatedAt,omitempty"`
}

// Booking is the typed view of a reconciled reservation. TotalPrice is in
// major units; the reconciler converts it from the provider's cents.
type Booking struct {
	ID         string  `json:"id"`
	PropertyID string  `json:"propertyId"`
	CustomerID string  `json:"customerId"`
	CheckIn    string  `json:"checkIn"`
	CheckOut   string  `json:"checkOut"`
	Guests     int     `json:"guests"`
	TotalPrice float64 `json:"totalPrice"`
	Status     string  `json:"status"`
	CreatedAt  string  `json:"createdAt"`
}
