package user

import (
	"context"
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	if err := db.AutoMigrate(&User{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, store *GormStore) *User {
	t.Helper()
	u := &User{
		Username:     "alice",
		Email:        "alice@example.com",
		Phone:        "0800000000",
		PasswordHash: "$argon2id$v=19$m=8192,t=1,p=1$c2FsdA$ZGlnZXN0",
		Active:       true,
	}
	if err := store.Create(context.Background(), u); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	return u
}

func TestGormStore_CreateAssignsID(t *testing.T) {
	store := NewGormStore(testDB(t))
	u := seedUser(t, store)

	if u.ID == "" {
		t.Error("expected an id after Create")
	}
	if u.CreatedAt.IsZero() {
		t.Error("expected created_at to be populated")
	}
}

func TestGormStore_FindByUsername(t *testing.T) {
	store := NewGormStore(testDB(t))
	seedUser(t, store)

	got, err := store.FindByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("FindByUsername() error: %v", err)
	}
	if got.Email != "alice@example.com" {
		t.Errorf("email = %q, want alice@example.com", got.Email)
	}

	_, err = store.FindByUsername(context.Background(), "nobody")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("FindByUsername(nobody) error = %v, want ErrNotFound", err)
	}
}

func TestGormStore_FindByID(t *testing.T) {
	store := NewGormStore(testDB(t))
	u := seedUser(t, store)

	got, err := store.FindByID(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("FindByID() error: %v", err)
	}
	if got.Username != "alice" {
		t.Errorf("username = %q, want alice", got.Username)
	}

	_, err = store.FindByID(context.Background(), "no-such-id")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("FindByID(no-such-id) error = %v, want ErrNotFound", err)
	}
}

func TestGormStore_Exists(t *testing.T) {
	store := NewGormStore(testDB(t))
	seedUser(t, store)

	cases := []struct {
		username, email string
		want            bool
	}{
		{"alice", "other@example.com", true},
		{"other", "alice@example.com", true},
		{"alice", "alice@example.com", true},
		{"other", "other@example.com", false},
	}
	for _, tc := range cases {
		got, err := store.Exists(context.Background(), tc.username, tc.email)
		if err != nil {
			t.Fatalf("Exists(%q, %q) error: %v", tc.username, tc.email, err)
		}
		if got != tc.want {
			t.Errorf("Exists(%q, %q) = %v, want %v", tc.username, tc.email, got, tc.want)
		}
	}
}

func TestGormStore_DuplicateCreate(t *testing.T) {
	store := NewGormStore(testDB(t))
	seedUser(t, store)

	dup := &User{
		Username:     "alice",
		Email:        "different@example.com",
		PasswordHash: "hash",
		Active:       true,
	}
	err := store.Create(context.Background(), dup)
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("Create(duplicate username) error = %v, want ErrDuplicate", err)
	}

	dup = &User{
		Username:     "different",
		Email:        "alice@example.com",
		PasswordHash: "hash",
		Active:       true,
	}
	err = store.Create(context.Background(), dup)
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("Create(duplicate email) error = %v, want ErrDuplicate", err)
	}
}

func TestUser_PublicOmitsHash(t *testing.T) {
	u := User{
		ID:           "id-1",
		Username:     "alice",
		Email:        "alice@example.com",
		Phone:        "0800000000",
		PasswordHash: "hash",
		Active:       true,
	}
	view := u.Public()
	if view.ID != "id-1" || view.Username != "alice" || !view.Active {
		t.Errorf("unexpected view: %+v", view)
	}
}
