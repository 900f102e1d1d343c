package store

// SQL query constants. PostgresStore methods reference these constants.

// Raw listing queries.
const (
	queryDeleteRawListings = `DELETE FROM raw_listings`

	queryInsertImport = `
		INSERT INTO catalog_imports (source, row_count)
		VALUES ($1, $2)
		RETURNING id, imported_at`

	queryListRawListings = `
		SELECT name, price, screen_size, ssd, cpu, ram, os, gpu, url
		FROM raw_listings
		ORDER BY id`

	queryCountRawListings = `SELECT COUNT(*) FROM raw_listings`
)

// Import queries.
const (
	queryListImports = `
		SELECT id, source, row_count, imported_at
		FROM catalog_imports
		ORDER BY imported_at DESC
		LIMIT $1`
)

// rawListingColumns is the COPY column order for raw_listings.
var rawListingColumns = []string{
	"import_id", "name", "price", "screen_size", "ssd", "cpu", "ram", "os", "gpu", "url", "imported_at",
}
