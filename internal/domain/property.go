package domain

// PropertyRow is the persisted catalog shape of a listing: the storage
// record read back as typed columns.
type PropertyRow struct {
	CustomerID       string
	ListingID        string
	Name             *string
	Location         *string
	Description      *string
	City             *string
	State            *string
	ZipCode          *string
	Country          *string
	Neighborhood     *string
	Latitude         *float64
	Longitude        *float64
	Price            *float64
	CleaningFee      *float64
	ServiceFee       *float64
	Currency         *string
	MinStay          *int
	MaxStay          *int
	Rating           *float64
	ReviewCount      *int
	Type             *string
	Bedrooms         *int
	Bathrooms        *float64
	MaxGuests        *int
	Amenities        []string
	ImageURL         *string
	AdditionalImages []string
	BedroomDetails   []byte // JSON array of bedroom sub-records
	HostID           *string
	HostName         *string
	HostImage        *string
	BookingWidgetURL *string
}
