package mysql

import (
	"context"
	"database/sql"
	"encoding/json"

	"staymarket/internal/domain"
	"staymarket/internal/reconcile"
)

// jsonColumns hold structured values that arrive as decoded JSON and are
// persisted as JSON text.
var jsonColumns = map[string]bool{
	"amenities":         true,
	"additional_images": true,
	"bedroom_details":   true,
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) CreateProperty(ctx context.Context, rec reconcile.Record) error {
	args := make([]any, 0, len(propertyColumns))
	for _, col := range propertyColumns {
		v, ok := rec[col]
		if !ok || v == nil {
			args = append(args, nil)
			continue
		}
		if jsonColumns[col] {
			b, err := json.Marshal(v)
			if err != nil {
				return err
			}
			args = append(args, string(b))
			continue
		}
		args = append(args, v)
	}
	_, err := r.db.ExecContext(ctx, upsertPropertySQL, args...)
	return err
}

func (r *Repo) GetByCustomerAndListing(ctx context.Context, customerID, listingID string) (domain.PropertyRow, error) {
	row := r.db.QueryRowContext(ctx, selectPropertySQL, customerID, listingID)
	pr, err := scanProperty(row)
	if err == sql.ErrNoRows {
		return domain.PropertyRow{}, domain.ErrNotFound
	}
	return pr, err
}

func (r *Repo) ListProperties(ctx context.Context, customerID string, limit int) ([]domain.PropertyRow, error) {
	rows, err := r.db.QueryContext(ctx, listPropertiesSQL, customerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.PropertyRow
	for rows.Next() {
		pr, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, pr)
	}
	return out, rows.Err()
}

type scannable interface {
	Scan(dest ...any) error
}

func scanProperty(row scannable) (domain.PropertyRow, error) {
	var pr domain.PropertyRow
	var (
		name, location, description       sql.NullString
		city, state, zip, country, nbhd   sql.NullString
		lat, lon, price, cleanFee, svcFee sql.NullFloat64
		currency, typ                     sql.NullString
		minStay, maxStay                  sql.NullInt64
		rating, bathrooms                 sql.NullFloat64
		reviewCount, bedrooms, maxGuests  sql.NullInt64
		amenJSON, imgsJSON, bedJSON       []byte
		imageURL                          sql.NullString
		hostID, hostName, hostImage       sql.NullString
		widgetURL                         sql.NullString
	)

	if err := row.Scan(
		&pr.CustomerID, &pr.ListingID,
		&name, &location, &description,
		&city, &state, &zip, &country, &nbhd,
		&lat, &lon, &price, &cleanFee, &svcFee,
		&currency, &minStay, &maxStay, &rating, &reviewCount,
		&typ, &bedrooms, &bathrooms, &maxGuests,
		&amenJSON, &imageURL, &imgsJSON, &bedJSON,
		&hostID, &hostName, &hostImage, &widgetURL,
	); err != nil {
		return domain.PropertyRow{}, err
	}

	pr.Name = strPtr(name)
	pr.Location = strPtr(location)
	pr.Description = strPtr(description)
	pr.City = strPtr(city)
	pr.State = strPtr(state)
	pr.ZipCode = strPtr(zip)
	pr.Country = strPtr(country)
	pr.Neighborhood = strPtr(nbhd)
	pr.Latitude = f64Ptr(lat)
	pr.Longitude = f64Ptr(lon)
	pr.Price = f64Ptr(price)
	pr.CleaningFee = f64Ptr(cleanFee)
	pr.ServiceFee = f64Ptr(svcFee)
	pr.Currency = strPtr(currency)
	pr.MinStay = intPtr(minStay)
	pr.MaxStay = intPtr(maxStay)
	pr.Rating = f64Ptr(rating)
	pr.ReviewCount = intPtr(reviewCount)
	pr.Type = strPtr(typ)
	pr.Bedrooms = intPtr(bedrooms)
	pr.Bathrooms = f64Ptr(bathrooms)
	pr.MaxGuests = intPtr(maxGuests)
	pr.ImageURL = strPtr(imageURL)
	pr.HostID = strPtr(hostID)
	pr.HostName = strPtr(hostName)
	pr.HostImage = strPtr(hostImage)
	pr.BookingWidgetURL = strPtr(widgetURL)

	if len(amenJSON) > 0 {
		_ = json.Unmarshal(amenJSON, &pr.Amenities)
	}
	if len(imgsJSON) > 0 {
		_ = json.Unmarshal(imgsJSON, &pr.AdditionalImages)
	}
	if len(bedJSON) > 0 {
		pr.BedroomDetails = append([]byte(nil), bedJSON...)
	}
	return pr, nil
}

func strPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func f64Ptr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}
