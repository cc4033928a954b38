package database

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func setupTestDB(t *testing.T) (*DB, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "neighborfit-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	dbPath := filepath.Join(tmpDir, "test.db")
	db, err := Open(dbPath)
	if err != nil {
		os.RemoveAll(tmpDir)
		t.Fatalf("failed to open database: %v", err)
	}

	cleanup := func() {
		db.Close()
		os.RemoveAll(tmpDir)
	}

	return db, cleanup
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestOpen(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	for _, table := range []string{"neighborhoods", "reviews", "user_preferences"} {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count)
		if err != nil {
			t.Fatalf("failed to query tables: %v", err)
		}
		if count != 1 {
			t.Errorf("expected %s table to exist", table)
		}
	}

	if err := db.Health(context.Background()); err != nil {
		t.Errorf("Health failed: %v", err)
	}
}

func TestOpen_Reopen(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "test.db")

	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if _, err := db.Seed(context.Background()); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	db.Close()

	db, err = Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer db.Close()

	list, err := db.ListNeighborhoods(context.Background(), ListOptions{})
	if err != nil {
		t.Fatalf("ListNeighborhoods failed: %v", err)
	}
	if len(list) != 3 {
		t.Errorf("expected data to survive reopen, got %d rows", len(list))
	}
}

func TestNeighborhoodCRUD(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	n := &Neighborhood{
		Name:         "Capitol Hill",
		City:         "Seattle",
		State:        "WA",
		CrimeRate:    3.1,
		WalkScore:    97,
		TransitScore: 88,
		BikeScore:    74,
		Amenities:    `["nightlife","cafes"]`,
	}

	if err := db.CreateNeighborhood(ctx, n); err != nil {
		t.Fatalf("CreateNeighborhood failed: %v", err)
	}
	if n.ID == 0 {
		t.Error("expected ID to be set after create")
	}

	fetched, err := db.GetNeighborhood(ctx, n.ID)
	if err != nil {
		t.Fatalf("GetNeighborhood failed: %v", err)
	}
	if fetched == nil {
		t.Fatal("expected neighborhood to be found")
	}
	if fetched.Name != "Capitol Hill" || fetched.WalkScore != 97 {
		t.Errorf("unexpected neighborhood: %+v", fetched)
	}
	if fetched.Amenities != `["nightlife","cafes"]` {
		t.Errorf("expected amenities stored verbatim, got %q", fetched.Amenities)
	}

	byName, err := db.GetNeighborhoodByName(ctx, "capitol hill")
	if err != nil {
		t.Fatalf("GetNeighborhoodByName failed: %v", err)
	}
	if byName == nil || byName.ID != n.ID {
		t.Errorf("expected case-insensitive lookup to find %d", n.ID)
	}

	missing, err := db.GetNeighborhood(ctx, 9999)
	if err != nil {
		t.Fatalf("GetNeighborhood failed: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for missing neighborhood")
	}

	// duplicate names are rejected by the unique index
	if err := db.CreateNeighborhood(ctx, &Neighborhood{Name: "Capitol Hill"}); err == nil {
		t.Error("expected duplicate name to fail")
	}

	if err := db.DeleteNeighborhood(ctx, n.ID); err != nil {
		t.Fatalf("DeleteNeighborhood failed: %v", err)
	}
	if err := db.DeleteNeighborhood(ctx, n.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpsertNeighborhood(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	n := &Neighborhood{Name: "Ballard", City: "Seattle", WalkScore: 80}
	if err := db.UpsertNeighborhood(ctx, n); err != nil {
		t.Fatalf("UpsertNeighborhood failed: %v", err)
	}
	firstID := n.ID

	updated := &Neighborhood{Name: "Ballard", City: "Seattle", WalkScore: 85}
	if err := db.UpsertNeighborhood(ctx, updated); err != nil {
		t.Fatalf("UpsertNeighborhood failed: %v", err)
	}
	if updated.ID != firstID {
		t.Errorf("expected upsert to keep id %d, got %d", firstID, updated.ID)
	}

	fetched, _ := db.GetNeighborhood(ctx, firstID)
	if fetched.WalkScore != 85 {
		t.Errorf("expected WalkScore=85, got %d", fetched.WalkScore)
	}
}

func TestListNeighborhoods(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	if _, err := db.Seed(ctx); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	if err := db.CreateNeighborhood(ctx, &Neighborhood{Name: "Ballard", City: "Seattle", State: "WA"}); err != nil {
		t.Fatalf("CreateNeighborhood failed: %v", err)
	}

	tests := []struct {
		name  string
		opts  ListOptions
		names []string
	}{
		{
			name:  "all ordered by name",
			opts:  ListOptions{},
			names: []string{"Ballard", "Greenwood", "Hyde Park", "Mission District"},
		},
		{
			name:  "filter by city",
			opts:  ListOptions{City: strPtr("seattle")},
			names: []string{"Ballard", "Greenwood"},
		},
		{
			name:  "filter by state",
			opts:  ListOptions{State: strPtr("IL")},
			names: []string{"Hyde Park"},
		},
		{
			name:  "limit and offset",
			opts:  ListOptions{Limit: 2, Offset: 1},
			names: []string{"Greenwood", "Hyde Park"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := db.ListNeighborhoods(ctx, tt.opts)
			if err != nil {
				t.Fatalf("ListNeighborhoods failed: %v", err)
			}
			if len(list) != len(tt.names) {
				t.Fatalf("expected %d neighborhoods, got %d", len(tt.names), len(list))
			}
			for i, want := range tt.names {
				if list[i].Name != want {
					t.Errorf("position %d: expected %s, got %s", i, want, list[i].Name)
				}
			}
		})
	}
}

func TestSearchNeighborhoods(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	if _, err := db.Seed(ctx); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	tests := []struct {
		query string
		want  int
	}{
		{"park", 2},      // Hyde Park by name, Greenwood by amenity
		{"chicago", 1},   // city
		{"94110", 1},     // zip
		{"nightlife", 1}, // amenity
		{"atlantis", 0},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			results, err := db.SearchNeighborhoods(ctx, tt.query)
			if err != nil {
				t.Fatalf("SearchNeighborhoods failed: %v", err)
			}
			if len(results) != tt.want {
				t.Errorf("SearchNeighborhoods(%q) returned %d, want %d", tt.query, len(results), tt.want)
			}
		})
	}
}

func TestReviewCRUD(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	if _, err := db.Seed(ctx); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	greenwood, _ := db.GetNeighborhoodByName(ctx, "Greenwood")

	point := &Review{
		NeighborhoodID: greenwood.ID,
		UserID:         "user-1",
		Content:        "Quiet streets",
		Category:       strPtr("safety"),
		Rating:         intPtr(5),
	}
	if err := db.CreateReview(ctx, point); err != nil {
		t.Fatalf("CreateReview failed: %v", err)
	}
	if point.ID == "" {
		t.Error("expected ID to be set after create")
	}

	multi := &Review{
		NeighborhoodID:  greenwood.ID,
		UserID:          "user-2",
		Content:         "Great parks, sleepy nights",
		CategoryRatings: strPtr(`{"parks":5,"nightlife":2}`),
	}
	if err := db.CreateReview(ctx, multi); err != nil {
		t.Fatalf("CreateReview failed: %v", err)
	}

	reviews, err := db.ListReviews(ctx, greenwood.ID)
	if err != nil {
		t.Fatalf("ListReviews failed: %v", err)
	}
	if len(reviews) != 2 {
		t.Fatalf("expected 2 reviews, got %d", len(reviews))
	}
	if reviews[0].ID != multi.ID {
		t.Errorf("expected newest review first")
	}
	if reviews[0].NeighborhoodName != "Greenwood" {
		t.Errorf("expected joined neighborhood name, got %q", reviews[0].NeighborhoodName)
	}
	if reviews[0].IsPointRating() || !reviews[1].IsPointRating() {
		t.Error("review kinds not preserved")
	}
	if *reviews[1].Rating != 5 || *reviews[1].Category != "safety" {
		t.Errorf("unexpected point rating: %+v", reviews[1])
	}

	safety, err := db.ListReviewsByCategory(ctx, greenwood.ID, "safety")
	if err != nil {
		t.Fatalf("ListReviewsByCategory failed: %v", err)
	}
	if len(safety) != 1 {
		t.Errorf("expected 1 safety review, got %d", len(safety))
	}

	count, err := db.CountReviews(ctx, greenwood.ID)
	if err != nil || count != 2 {
		t.Errorf("CountReviews = %d, %v; want 2", count, err)
	}

	got, err := db.GetReview(ctx, point.ID)
	if err != nil || got == nil || got.UserID != "user-1" {
		t.Errorf("GetReview = %+v, %v", got, err)
	}

	if err := db.DeleteReview(ctx, point.ID); err != nil {
		t.Fatalf("DeleteReview failed: %v", err)
	}
	if err := db.DeleteReview(ctx, point.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestReviewConstraints(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	if _, err := db.Seed(ctx); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	n, _ := db.GetNeighborhoodByName(ctx, "Hyde Park")

	tests := []struct {
		name   string
		review Review
	}{
		{"rating out of range", Review{NeighborhoodID: n.ID, UserID: "u", Content: "x", Category: strPtr("safety"), Rating: intPtr(7)}},
		{"rating without category", Review{NeighborhoodID: n.ID, UserID: "u", Content: "x", Rating: intPtr(3)}},
		{"no ratings at all", Review{NeighborhoodID: n.ID, UserID: "u", Content: "x"}},
		{"unknown neighborhood", Review{NeighborhoodID: 999, UserID: "u", Content: "x", Category: strPtr("safety"), Rating: intPtr(3)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := tt.review
			if err := db.CreateReview(ctx, &r); err == nil {
				t.Error("expected insert to fail")
			}
		})
	}
}

func TestUpdateReview(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	if _, err := db.Seed(ctx); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	n, _ := db.GetNeighborhoodByName(ctx, "Hyde Park")

	r := &Review{NeighborhoodID: n.ID, UserID: "user-1", Content: "ok", Category: strPtr("safety"), Rating: intPtr(3)}
	if err := db.CreateReview(ctx, r); err != nil {
		t.Fatalf("CreateReview failed: %v", err)
	}

	// switch kinds: point rating becomes a category map
	r.Content = "better than I thought"
	r.Category = nil
	r.Rating = nil
	r.CategoryRatings = strPtr(`{"parks":4}`)
	if err := db.UpdateReview(ctx, r); err != nil {
		t.Fatalf("UpdateReview failed: %v", err)
	}

	got, err := db.GetReview(ctx, r.ID)
	if err != nil || got == nil {
		t.Fatalf("GetReview = %+v, %v", got, err)
	}
	if got.Content != "better than I thought" || got.IsPointRating() {
		t.Errorf("update not applied: %+v", got)
	}
	if got.CategoryRatings == nil || *got.CategoryRatings != `{"parks":4}` {
		t.Errorf("unexpected category ratings: %v", got.CategoryRatings)
	}
	if got.UserID != "user-1" || got.NeighborhoodID != n.ID {
		t.Errorf("author or neighborhood changed: %+v", got)
	}

	// the schema check still applies on update
	bad := *got
	bad.CategoryRatings = nil
	if err := db.UpdateReview(ctx, &bad); err == nil {
		t.Error("expected update with no ratings to fail")
	}

	missing := &Review{ID: "no-such-review", Content: "x", Category: strPtr("safety"), Rating: intPtr(2)}
	if err := db.UpdateReview(ctx, missing); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteNeighborhoodCascades(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	n := &Neighborhood{Name: "Fremont"}
	if err := db.CreateNeighborhood(ctx, n); err != nil {
		t.Fatalf("CreateNeighborhood failed: %v", err)
	}
	r := &Review{NeighborhoodID: n.ID, UserID: "u", Content: "troll", Category: strPtr("parks"), Rating: intPtr(4)}
	if err := db.CreateReview(ctx, r); err != nil {
		t.Fatalf("CreateReview failed: %v", err)
	}

	if err := db.DeleteNeighborhood(ctx, n.ID); err != nil {
		t.Fatalf("DeleteNeighborhood failed: %v", err)
	}

	got, err := db.GetReview(ctx, r.ID)
	if err != nil {
		t.Fatalf("GetReview failed: %v", err)
	}
	if got != nil {
		t.Error("expected review to be deleted with its neighborhood")
	}
}

func TestPreferences(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	none, err := db.GetPreferences(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetPreferences failed: %v", err)
	}
	if none != nil {
		t.Error("expected nil preferences for new user")
	}

	p := &UserPreferences{
		UserID:            "user-1",
		Budget:            3000,
		CommuteTime:       30,
		Amenities:         `["parks","schools"]`,
		SafetyWeight:      1,
		CommuteWeight:     1,
		AmenitiesWeight:   1,
		WalkabilityWeight: 1,
	}
	if err := db.UpsertPreferences(ctx, p); err != nil {
		t.Fatalf("UpsertPreferences failed: %v", err)
	}
	firstID := p.ID

	update := &UserPreferences{
		UserID:            "user-1",
		Amenities:         `[]`,
		WalkabilityWeight: 4,
	}
	if err := db.UpsertPreferences(ctx, update); err != nil {
		t.Fatalf("UpsertPreferences failed: %v", err)
	}
	if update.ID != firstID {
		t.Errorf("expected upsert to keep id %s, got %s", firstID, update.ID)
	}

	fetched, err := db.GetPreferences(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetPreferences failed: %v", err)
	}
	if fetched.WalkabilityWeight != 4 || fetched.SafetyWeight != 0 || fetched.Amenities != `[]` {
		t.Errorf("expected preferences replaced, got %+v", fetched)
	}
}

func TestSeedIdempotent(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		n, err := db.Seed(ctx)
		if err != nil {
			t.Fatalf("Seed failed: %v", err)
		}
		if n != 3 {
			t.Errorf("expected 3 seeded, got %d", n)
		}
	}

	list, _ := db.ListNeighborhoods(ctx, ListOptions{})
	if len(list) != 3 {
		t.Errorf("expected 3 neighborhoods after reseed, got %d", len(list))
	}

	mission, _ := db.GetNeighborhoodByName(ctx, "Mission District")
	if mission.CrimeRate != 3.5 || mission.Amenities != "cafes,public_transport,nightlife" {
		t.Errorf("unexpected seed row: %+v", mission)
	}
}

func TestGetStats(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	empty, err := db.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if empty.Neighborhoods != 0 || empty.Reviews != 0 {
		t.Errorf("expected empty stats, got %+v", empty)
	}

	if _, err := db.Seed(ctx); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	g, _ := db.GetNeighborhoodByName(ctx, "Greenwood")
	for _, stars := range []int{5, 3} {
		r := &Review{NeighborhoodID: g.ID, UserID: "u", Content: "ok", Category: strPtr("safety"), Rating: intPtr(stars)}
		if err := db.CreateReview(ctx, r); err != nil {
			t.Fatalf("CreateReview failed: %v", err)
		}
	}

	stats, err := db.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if stats.Neighborhoods != 3 || stats.Cities != 3 {
		t.Errorf("unexpected neighborhood stats: %+v", stats)
	}
	if stats.Reviews != 2 || stats.Reviewers != 1 || stats.AvgReviewStars != 4 {
		t.Errorf("unexpected review stats: %+v", stats)
	}
}
