package design

import (
	"strings"
	"time"

	"github.com/plantforge/plantforge/pkg/core/plant"
	"github.com/plantforge/plantforge/pkg/errors"
)

// Defaults applied to fields a new design leaves out.
const (
	DefaultName          = "Untitled design"
	DefaultFlowRate      = 100.0
	DefaultNumberOfTanks = 4
	DefaultPipeDiameter  = 50.0
)

// Boundary limits for design parameters.
const (
	MinFlowRate     = 0.1
	MinPipeDiameter = 0.1
)

// RecentDesignsLimit is the number of designs reported by analytics.
const RecentDesignsLimit = 10

// Role is a user's permission level.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Design is a saved set of plant parameters.
type Design struct {
	ID            string         `json:"id" yaml:"id" bson:"_id"`
	OwnerID       string         `json:"ownerId" yaml:"ownerId" bson:"ownerId"`
	Name          string         `json:"name" yaml:"name" bson:"name"`
	FlowRate      float64        `json:"flowRate" yaml:"flowRate" bson:"flowRate"`
	NumberOfTanks int            `json:"numberOfTanks" yaml:"numberOfTanks" bson:"numberOfTanks"`
	PipeDiameter  float64        `json:"pipeDiameter" yaml:"pipeDiameter" bson:"pipeDiameter"`
	LayoutType    string         `json:"layoutType" yaml:"layoutType" bson:"layoutType"`
	Metadata      map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty" bson:"metadata,omitempty"`
	CreatedAt     time.Time      `json:"createdAt" yaml:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt" yaml:"updatedAt" bson:"updatedAt"`
}

// Params returns the design's parameters in the form the layout core takes.
func (d *Design) Params() plant.RawParams {
	return plant.RawParams{
		FlowRate:      d.FlowRate,
		NumberOfTanks: float64(d.NumberOfTanks),
		PipeDiameter:  d.PipeDiameter,
		LayoutType:    d.LayoutType,
	}
}

func (d *Design) clone() *Design {
	c := *d
	if d.Metadata != nil {
		c.Metadata = make(map[string]any, len(d.Metadata))
		for k, v := range d.Metadata {
			c.Metadata[k] = v
		}
	}
	return &c
}

// User is a design owner.
type User struct {
	ID          string    `json:"id" bson:"_id"`
	Name        string    `json:"name" bson:"name"`
	Email       string    `json:"email" bson:"email"`
	CompanyName string    `json:"companyName,omitempty" bson:"companyName,omitempty"`
	Role        Role      `json:"role" bson:"role"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}

// IsAdmin reports whether u holds the admin role.
func (u *User) IsAdmin() bool { return u != nil && u.Role == RoleAdmin }

func (u *User) clone() *User {
	c := *u
	return &c
}

// =============================================================================
// Inputs
// =============================================================================

// DesignInput carries client-supplied design fields. A nil field is absent:
// on create it takes its default, on update it is left unchanged.
//
// NumberOfTanks is a float so that non-integer input is rejected rather
// than silently truncated by the decoder.
type DesignInput struct {
	Name          *string        `json:"name,omitempty" yaml:"name,omitempty"`
	FlowRate      *float64       `json:"flowRate,omitempty" yaml:"flowRate,omitempty"`
	NumberOfTanks *float64       `json:"numberOfTanks,omitempty" yaml:"numberOfTanks,omitempty"`
	PipeDiameter  *float64       `json:"pipeDiameter,omitempty" yaml:"pipeDiameter,omitempty"`
	LayoutType    *string        `json:"layoutType,omitempty" yaml:"layoutType,omitempty"`
	Metadata      map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Validate checks every present field and reports all problems at once.
func (in DesignInput) Validate() error {
	v := &errors.ValidationError{}
	if in.Name != nil {
		if err := errors.ValidateName("name", *in.Name); err != nil {
			v.Add("name", "%s", errors.UserMessage(err))
		}
	}
	if in.FlowRate != nil {
		if err := errors.ValidateMin("flowRate", *in.FlowRate, MinFlowRate); err != nil {
			v.Add("flowRate", "%s", errors.UserMessage(err))
		}
	}
	if in.NumberOfTanks != nil {
		if err := errors.ValidateIntRange("numberOfTanks", *in.NumberOfTanks, plant.MinTanks, plant.MaxTanks); err != nil {
			v.Add("numberOfTanks", "%s", errors.UserMessage(err))
		}
	}
	if in.PipeDiameter != nil {
		if err := errors.ValidateMin("pipeDiameter", *in.PipeDiameter, MinPipeDiameter); err != nil {
			v.Add("pipeDiameter", "%s", errors.UserMessage(err))
		}
	}
	if in.LayoutType != nil {
		if _, ok := plant.ParseStyle(*in.LayoutType); !ok {
			v.Add("layoutType", "layoutType must be one of: compact, industrial")
		}
	}
	return v.Err()
}

// apply copies the present fields of in onto d. in must be valid.
func (in DesignInput) apply(d *Design) {
	if in.Name != nil {
		d.Name = strings.TrimSpace(*in.Name)
	}
	if in.FlowRate != nil {
		d.FlowRate = *in.FlowRate
	}
	if in.NumberOfTanks != nil {
		d.NumberOfTanks = int(*in.NumberOfTanks)
	}
	if in.PipeDiameter != nil {
		d.PipeDiameter = *in.PipeDiameter
	}
	if in.LayoutType != nil {
		style, _ := plant.ParseStyle(*in.LayoutType)
		d.LayoutType = string(style)
	}
	if in.Metadata != nil {
		d.Metadata = in.Metadata
	}
}

// IsEmpty reports whether no field is present.
func (in DesignInput) IsEmpty() bool {
	return in.Name == nil && in.FlowRate == nil && in.NumberOfTanks == nil &&
		in.PipeDiameter == nil && in.LayoutType == nil && in.Metadata == nil
}

// DefaultDesign returns an unsaved design holding the editor defaults.
func DefaultDesign() *Design {
	return &Design{
		Name:          DefaultName,
		FlowRate:      DefaultFlowRate,
		NumberOfTanks: DefaultNumberOfTanks,
		PipeDiameter:  DefaultPipeDiameter,
		LayoutType:    string(plant.DefaultStyle),
	}
}

// UserInput carries the fields of a new user.
type UserInput struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	CompanyName string `json:"companyName,omitempty"`
}

// Validate checks the user fields.
func (in UserInput) Validate() error {
	v := &errors.ValidationError{}
	if err := errors.ValidateName("name", in.Name); err != nil {
		v.Add("name", "%s", errors.UserMessage(err))
	}
	if err := errors.ValidateEmail(normalizeEmail(in.Email)); err != nil {
		v.Add("email", "%s", errors.UserMessage(err))
	}
	if in.CompanyName != "" {
		if err := errors.ValidateName("companyName", in.CompanyName); err != nil {
			v.Add("companyName", "%s", errors.UserMessage(err))
		}
	}
	return v.Err()
}

// ProfilePatch carries the user-editable profile fields.
type ProfilePatch struct {
	Name        *string `json:"name,omitempty"`
	CompanyName *string `json:"companyName,omitempty"`
}

// Validate checks the present fields. An empty company name clears it.
func (p ProfilePatch) Validate() error {
	v := &errors.ValidationError{}
	if p.Name != nil {
		if err := errors.ValidateName("name", *p.Name); err != nil {
			v.Add("name", "%s", errors.UserMessage(err))
		}
	}
	if p.CompanyName != nil && strings.TrimSpace(*p.CompanyName) != "" {
		if err := errors.ValidateName("companyName", *p.CompanyName); err != nil {
			v.Add("companyName", "%s", errors.UserMessage(err))
		}
	}
	return v.Err()
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Analytics summarizes the store for administrators.
type Analytics struct {
	UserCount       int            `json:"userCount"`
	DesignCount     int            `json:"designCount"`
	DesignsByLayout map[string]int `json:"designsByLayout"`
	RecentDesigns   []*Design      `json:"recentDesigns"`
}
