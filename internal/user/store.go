package user

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned when no user matches the lookup.
var ErrNotFound = errors.New("user: not found")

// ErrDuplicate is returned when a create violates a uniqueness constraint.
var ErrDuplicate = errors.New("user: duplicate username or email")

// Store is the persistence contract the auth flows depend on. Uniqueness
// is ultimately enforced by the database's unique indexes; Exists is a
// pre-check that allows a friendlier error before the write.
type Store interface {
	// Create persists a new user record.
	Create(ctx context.Context, u *User) error
	// FindByUsername returns the user with the given username or ErrNotFound.
	FindByUsername(ctx context.Context, username string) (*User, error)
	// FindByID returns the user with the given id or ErrNotFound.
	FindByID(ctx context.Context, id string) (*User, error)
	// Exists reports whether a user with the given username or email exists.
	Exists(ctx context.Context, username, email string) (bool, error)
}

// GormStore implements Store on a GORM database.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a Store backed by the given database.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

var _ Store = (*GormStore)(nil)

// Create persists the user. Unique index violations map to ErrDuplicate so
// racing registrations still surface as a conflict.
func (s *GormStore) Create(ctx context.Context, u *User) error {
	if err := s.db.WithContext(ctx).Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// FindByUsername returns the user with the given username.
func (s *GormStore) FindByUsername(ctx context.Context, username string) (*User, error) {
	var u User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindByID returns the user with the given id.
func (s *GormStore) FindByID(ctx context.Context, id string) (*User, error) {
	var u User
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Exists reports whether any user holds the given username or email.
func (s *GormStore) Exists(ctx context.Context, username, email string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
