package design

import "context"

// Store persists designs and users.
//
// Lookups of missing records return errors with code DESIGN_NOT_FOUND or
// USER_NOT_FOUND. Creating a user whose email is taken returns CONFLICT.
// Implementations must be safe for concurrent use.
type Store interface {
	// CreateDesign inserts d. d.ID must be set.
	CreateDesign(ctx context.Context, d *Design) error

	// GetDesign loads a design by ID regardless of owner.
	GetDesign(ctx context.Context, id string) (*Design, error)

	// UpdateDesign replaces an existing design.
	UpdateDesign(ctx context.Context, d *Design) error

	// DeleteDesign removes a design.
	DeleteDesign(ctx context.Context, id string) error

	// ListDesigns returns designs ordered by UpdatedAt, newest first.
	// An empty ownerID lists every owner's designs. limit <= 0 means no limit.
	ListDesigns(ctx context.Context, ownerID string, limit int) ([]*Design, error)

	// ListRecentDesigns returns every owner's designs ordered by
	// CreatedAt, newest first. limit <= 0 means no limit.
	ListRecentDesigns(ctx context.Context, limit int) ([]*Design, error)

	// DeleteDesignsByOwner removes all of an owner's designs and returns
	// how many were removed.
	DeleteDesignsByOwner(ctx context.Context, ownerID string) (int, error)

	// CountDesigns returns the total number of designs.
	CountDesigns(ctx context.Context) (int, error)

	// CountDesignsByLayout returns design counts keyed by layout type.
	CountDesignsByLayout(ctx context.Context) (map[string]int, error)

	// CreateUser inserts u. u.ID must be set and u.Email must be unique.
	CreateUser(ctx context.Context, u *User) error

	// GetUser loads a user by ID.
	GetUser(ctx context.Context, id string) (*User, error)

	// GetUserByEmail loads a user by normalized email.
	GetUserByEmail(ctx context.Context, email string) (*User, error)

	// UpdateUser replaces an existing user.
	UpdateUser(ctx context.Context, u *User) error

	// DeleteUser removes a user. Designs are not touched.
	DeleteUser(ctx context.Context, id string) error

	// ListUsers returns all users ordered by CreatedAt, newest first.
	ListUsers(ctx context.Context) ([]*User, error)

	// CountUsers returns the total number of users.
	CountUsers(ctx context.Context) (int, error)

	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}
