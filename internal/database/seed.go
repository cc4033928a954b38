package database

import (
	"context"
	"database/sql"
	"fmt"
)

// SeedNeighborhoods is the starter catalog loaded by Seed
var SeedNeighborhoods = []Neighborhood{
	{
		Name:         "Greenwood",
		City:         "Seattle",
		State:        "WA",
		ZipCode:      "98103",
		Population:   25000,
		MedianIncome: 85000,
		CrimeRate:    2.1,
		WalkScore:    88,
		TransitScore: 70,
		BikeScore:    80,
		Amenities:    "parks,schools,restaurants",
	},
	{
		Name:         "Mission District",
		City:         "San Francisco",
		State:        "CA",
		ZipCode:      "94110",
		Population:   75000,
		MedianIncome: 95000,
		CrimeRate:    3.5,
		WalkScore:    95,
		TransitScore: 90,
		BikeScore:    85,
		Amenities:    "cafes,public_transport,nightlife",
	},
	{
		Name:         "Hyde Park",
		City:         "Chicago",
		State:        "IL",
		ZipCode:      "60615",
		Population:   29000,
		MedianIncome: 67000,
		CrimeRate:    2.9,
		WalkScore:    82,
		TransitScore: 78,
		BikeScore:    76,
		Amenities:    "universities,museums,parks",
	},
}

// Seed upserts the starter catalog in one transaction and returns how many
// neighborhoods were written
func (db *DB) Seed(ctx context.Context) (int, error) {
	err := db.Transaction(ctx, func(tx *sql.Tx) error {
		for i := range SeedNeighborhoods {
			n := SeedNeighborhoods[i]
			if err := upsertNeighborhood(ctx, tx, &n); err != nil {
				return fmt.Errorf("seeding %s: %w", n.Name, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(SeedNeighborhoods), nil
}
