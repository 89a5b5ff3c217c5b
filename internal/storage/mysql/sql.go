package mysql

// propertyColumns is the write-side column order for upsertPropertySQL.
// customer_id and listing_id lead because they form the primary key.
var propertyColumns = []string{
	"customer_id",
	"listing_id",
	"name",
	"location",
	"description",
	"city",
	"state",
	"zip_code",
	"country",
	"neighborhood",
	"latitude",
	"longitude",
	"price",
	"cleaning_fee",
	"service_fee",
	"currency",
	"min_stay",
	"max_stay",
	"rating",
	"review_count",
	"type",
	"bedrooms",
	"bathrooms",
	"max_guests",
	"amenities",
	"image_url",
	"additional_images",
	"bedroom_details",
	"host_id",
	"host_name",
	"host_image",
	"booking_widget_url",
}

// Create is deliberately a no-op on conflict: a listing that already
// exists keeps its row, so a stale existence check upstream cannot
// clobber data or fail the batch.
const upsertPropertySQL = `
INSERT INTO properties
  (customer_id, listing_id, name, location, description, city, state, zip_code,
   country, neighborhood, latitude, longitude, price, cleaning_fee, service_fee,
   currency, min_stay, max_stay, rating, review_count, type, bedrooms, bathrooms,
   max_guests, amenities, image_url, additional_images, bedroom_details,
   host_id, host_name, host_image, booking_widget_url)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  listing_id = listing_id
`

const selectPropertySQL = `
SELECT
  customer_id, listing_id, name, location, description, city, state, zip_code,
  country, neighborhood, latitude, longitude, price, cleaning_fee, service_fee,
  currency, min_stay, max_stay, rating, review_count, type, bedrooms, bathrooms,
  max_guests, amenities, image_url, additional_images, bedroom_details,
  host_id, host_name, host_image, booking_widget_url
FROM properties
WHERE customer_id = ? AND listing_id = ?
`

const listPropertiesSQL = `
SELECT
  customer_id, listing_id, name, location, description, city, state, zip_code,
  country, neighborhood, latitude, longitude, price, cleaning_fee, service_fee,
  currency, min_stay, max_stay, rating, review_count, type, bedrooms, bathrooms,
  max_guests, amenities, image_url, additional_images, bedroom_details,
  host_id, host_name, host_image, booking_widget_url
FROM properties
WHERE customer_id = ?
ORDER BY listing_id
LIMIT ?
`
