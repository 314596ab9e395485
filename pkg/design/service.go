package design

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/plantforge/plantforge/pkg/core/plant"
	"github.com/plantforge/plantforge/pkg/errors"
	"github.com/plantforge/plantforge/pkg/observability"
	"github.com/plantforge/plantforge/pkg/scene"
)

// Service implements the design and user operations on top of a Store.
type Service struct {
	store  Store
	logger *log.Logger
	layout []plant.Option
	now    func() time.Time
	newID  func() string
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLogger sets the service logger.
func WithLogger(l *log.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithLayoutOptions sets the core options used by Service.Layout.
func WithLayoutOptions(opts ...plant.Option) ServiceOption {
	return func(s *Service) { s.layout = opts }
}

// NewService returns a Service over store.
func NewService(store Store, opts ...ServiceOption) *Service {
	s := &Service{
		store:  store,
		logger: log.NewWithOptions(io.Discard, log.Options{}),
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store returns the underlying store.
func (s *Service) Store() Store { return s.store }

// observe runs fn and reports it to the store hooks under op.
func (s *Service) observe(ctx context.Context, op string, fn func() error) error {
	start := time.Now()
	err := fn()
	observability.Store().OnStoreOp(ctx, op, time.Since(start), err)
	return err
}

// =============================================================================
// Designs
// =============================================================================

// CreateDesign validates in, fills defaults and saves a new design for owner.
func (s *Service) CreateDesign(ctx context.Context, ownerID string, in DesignInput) (*Design, error) {
	if err := errors.ValidateID("owner", ownerID); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	d := DefaultDesign()
	in.apply(d)
	d.ID = s.newID()
	d.OwnerID = ownerID
	d.CreatedAt = s.now()
	d.UpdatedAt = d.CreatedAt

	if err := s.observe(ctx, "design.create", func() error { return s.store.CreateDesign(ctx, d) }); err != nil {
		return nil, err
	}
	s.logger.Debug("design created", "id", d.ID, "owner", ownerID)
	return d, nil
}

// GetDesign loads one of owner's designs. Designs owned by someone else are
// reported as not found.
func (s *Service) GetDesign(ctx context.Context, ownerID, id string) (*Design, error) {
	if err := errors.ValidateID("design", id); err != nil {
		return nil, err
	}
	var d *Design
	err := s.observe(ctx, "design.get", func() (err error) {
		d, err = s.store.GetDesign(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	if d.OwnerID != ownerID {
		return nil, designNotFound(id)
	}
	return d, nil
}

// ListDesigns returns owner's designs, most recently updated first.
func (s *Service) ListDesigns(ctx context.Context, ownerID string) ([]*Design, error) {
	if err := errors.ValidateID("owner", ownerID); err != nil {
		return nil, err
	}
	var out []*Design
	err := s.observe(ctx, "design.list", func() (err error) {
		out, err = s.store.ListDesigns(ctx, ownerID, 0)
		return err
	})
	return out, err
}

// UpdateDesign applies a patch to one of owner's designs. Only present
// fields are validated and changed.
func (s *Service) UpdateDesign(ctx context.Context, ownerID, id string, patch DesignInput) (*Design, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	d, err := s.GetDesign(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	patch.apply(d)
	d.UpdatedAt = s.now()

	if err := s.observe(ctx, "design.update", func() error { return s.store.UpdateDesign(ctx, d) }); err != nil {
		return nil, err
	}
	return d, nil
}

// DeleteDesign removes one of owner's designs.
func (s *Service) DeleteDesign(ctx context.Context, ownerID, id string) error {
	if _, err := s.GetDesign(ctx, ownerID, id); err != nil {
		return err
	}
	return s.observe(ctx, "design.delete", func() error { return s.store.DeleteDesign(ctx, id) })
}

// Layout loads one of owner's designs and computes its scene.
func (s *Service) Layout(ctx context.Context, ownerID, id string) (scene.Scene, error) {
	d, err := s.GetDesign(ctx, ownerID, id)
	if err != nil {
		return scene.Scene{}, err
	}
	l, err := plant.Compute(d.Params(), s.layout...)
	if err != nil {
		return scene.Scene{}, err
	}
	return scene.Export(l), nil
}

// =============================================================================
// Users
// =============================================================================

// CreateUser registers a user with the user role.
func (s *Service) CreateUser(ctx context.Context, in UserInput) (*User, error) {
	return s.createUser(ctx, in, RoleUser)
}

func (s *Service) createUser(ctx context.Context, in UserInput, role Role) (*User, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	now := s.now()
	u := &User{
		ID:          s.newID(),
		Name:        in.Name,
		Email:       normalizeEmail(in.Email),
		CompanyName: in.CompanyName,
		Role:        role,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.observe(ctx, "user.create", func() error { return s.store.CreateUser(ctx, u) }); err != nil {
		return nil, err
	}
	s.logger.Debug("user created", "id", u.ID, "role", role)
	return u, nil
}

// GetUser loads a user by ID.
func (s *Service) GetUser(ctx context.Context, id string) (*User, error) {
	if err := errors.ValidateID("user", id); err != nil {
		return nil, err
	}
	var u *User
	err := s.observe(ctx, "user.get", func() (err error) {
		u, err = s.store.GetUser(ctx, id)
		return err
	})
	return u, err
}

// UpdateProfile applies a profile patch to the user.
func (s *Service) UpdateProfile(ctx context.Context, id string, patch ProfilePatch) (*User, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	u, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.CompanyName != nil {
		u.CompanyName = *patch.CompanyName
	}
	u.UpdatedAt = s.now()

	if err := s.observe(ctx, "user.update", func() error { return s.store.UpdateUser(ctx, u) }); err != nil {
		return nil, err
	}
	return u, nil
}

// =============================================================================
// Administration
// =============================================================================

// RequireAdmin loads the user and fails with FORBIDDEN unless they are an admin.
func (s *Service) RequireAdmin(ctx context.Context, id string) (*User, error) {
	u, err := s.GetUser(ctx, id)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.Wrap(errors.ErrCodeForbidden, err, "admin access required")
		}
		return nil, err
	}
	if !u.IsAdmin() {
		return nil, errors.New(errors.ErrCodeForbidden, "admin access required")
	}
	return u, nil
}

// ListUsers returns every user, newest first.
func (s *Service) ListUsers(ctx context.Context) ([]*User, error) {
	var out []*User
	err := s.observe(ctx, "user.list", func() (err error) {
		out, err = s.store.ListUsers(ctx)
		return err
	})
	return out, err
}

// ListAllDesigns returns every owner's designs, most recently updated first.
func (s *Service) ListAllDesigns(ctx context.Context) ([]*Design, error) {
	var out []*Design
	err := s.observe(ctx, "design.list_all", func() (err error) {
		out, err = s.store.ListDesigns(ctx, "", 0)
		return err
	})
	return out, err
}

// Analytics gathers store-wide counts and the most recent designs.
// The four queries run concurrently.
func (s *Service) Analytics(ctx context.Context) (*Analytics, error) {
	a := &Analytics{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		a.UserCount, err = s.store.CountUsers(gctx)
		return err
	})
	g.Go(func() (err error) {
		a.DesignCount, err = s.store.CountDesigns(gctx)
		return err
	})
	g.Go(func() (err error) {
		a.DesignsByLayout, err = s.store.CountDesignsByLayout(gctx)
		return err
	})
	g.Go(func() (err error) {
		a.RecentDesigns, err = s.store.ListRecentDesigns(gctx, RecentDesignsLimit)
		return err
	})

	if err := s.observe(ctx, "analytics", g.Wait); err != nil {
		return nil, err
	}
	return a, nil
}

// DeleteUser removes a user and all of their designs. An admin cannot
// delete themself. It returns the number of designs removed.
func (s *Service) DeleteUser(ctx context.Context, actorID, targetID string) (int, error) {
	if actorID == targetID {
		return 0, errors.New(errors.ErrCodeForbidden, "cannot delete your own account")
	}
	if _, err := s.GetUser(ctx, targetID); err != nil {
		return 0, err
	}

	var removed int
	err := s.observe(ctx, "user.delete", func() (err error) {
		if removed, err = s.store.DeleteDesignsByOwner(ctx, targetID); err != nil {
			return err
		}
		return s.store.DeleteUser(ctx, targetID)
	})
	if err != nil {
		return removed, err
	}
	s.logger.Info("user deleted", "id", targetID, "designs", removed)
	return removed, nil
}

// DeleteAnyDesign removes a design regardless of owner.
func (s *Service) DeleteAnyDesign(ctx context.Context, id string) error {
	if err := errors.ValidateID("design", id); err != nil {
		return err
	}
	return s.observe(ctx, "design.delete", func() error { return s.store.DeleteDesign(ctx, id) })
}

// SeedAdmin promotes the user with in.Email to admin, or creates a new admin
// when no such user exists. The boolean reports whether a user was created.
func (s *Service) SeedAdmin(ctx context.Context, in UserInput) (*User, bool, error) {
	email := normalizeEmail(in.Email)
	if err := errors.ValidateEmail(email); err != nil {
		return nil, false, err
	}

	existing, err := s.store.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.IsAdmin() {
			return existing, false, nil
		}
		existing.Role = RoleAdmin
		existing.UpdatedAt = s.now()
		if err := s.observe(ctx, "user.update", func() error { return s.store.UpdateUser(ctx, existing) }); err != nil {
			return nil, false, err
		}
		s.logger.Info("user promoted to admin", "id", existing.ID)
		return existing, false, nil
	case errors.IsNotFound(err):
		u, err := s.createUser(ctx, in, RoleAdmin)
		if err != nil {
			return nil, false, err
		}
		s.logger.Info("admin created", "id", u.ID)
		return u, true, nil
	default:
		return nil, false, err
	}
}
