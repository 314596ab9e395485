package design

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plantforge/plantforge/pkg/errors"
)

func ptr[T any](v T) *T { return &v }

func TestDesignInputValidate(t *testing.T) {
	tests := []struct {
		name   string
		in     DesignInput
		fields []string
	}{
		{"empty patch", DesignInput{}, nil},
		{"valid full", DesignInput{
			Name:          ptr("Plant A"),
			FlowRate:      ptr(250.0),
			NumberOfTanks: ptr(6.0),
			PipeDiameter:  ptr(40.0),
			LayoutType:    ptr("Industrial"),
		}, nil},
		{"blank name", DesignInput{Name: ptr("   ")}, []string{"name"}},
		{"flow too low", DesignInput{FlowRate: ptr(0.05)}, []string{"flowRate"}},
		{"fractional tanks", DesignInput{NumberOfTanks: ptr(2.5)}, []string{"numberOfTanks"}},
		{"too many tanks", DesignInput{NumberOfTanks: ptr(21.0)}, []string{"numberOfTanks"}},
		{"zero tanks", DesignInput{NumberOfTanks: ptr(0.0)}, []string{"numberOfTanks"}},
		{"diameter too low", DesignInput{PipeDiameter: ptr(0.0)}, []string{"pipeDiameter"}},
		{"unknown layout", DesignInput{LayoutType: ptr("radial")}, []string{"layoutType"}},
		{"several", DesignInput{Name: ptr(""), FlowRate: ptr(-1.0)}, []string{"name", "flowRate"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			if tt.fields == nil {
				assert.NoError(t, err)
				return
			}
			v, ok := errors.AsValidation(err)
			require.True(t, ok, "want ValidationError, got %v", err)
			var got []string
			for _, f := range v.Fields {
				got = append(got, f.Field)
			}
			assert.Equal(t, tt.fields, got)
		})
	}
}

func TestDesignInputApply(t *testing.T) {
	d := DefaultDesign()
	DesignInput{Name: ptr("  Line 2 "), LayoutType: ptr("INDUSTRIAL"), NumberOfTanks: ptr(9.0)}.apply(d)

	assert.Equal(t, "Line 2", d.Name)
	assert.Equal(t, "industrial", d.LayoutType)
	assert.Equal(t, 9, d.NumberOfTanks)
	assert.Equal(t, DefaultFlowRate, d.FlowRate)
	assert.Equal(t, DefaultPipeDiameter, d.PipeDiameter)
}

func TestDefaultDesign(t *testing.T) {
	d := DefaultDesign()
	assert.Equal(t, "Untitled design", d.Name)
	assert.Equal(t, 100.0, d.FlowRate)
	assert.Equal(t, 4, d.NumberOfTanks)
	assert.Equal(t, 50.0, d.PipeDiameter)
	assert.Equal(t, "compact", d.LayoutType)

	p := d.Params()
	assert.Equal(t, 4.0, p.NumberOfTanks)
	assert.Equal(t, "compact", p.LayoutType)
}

func TestUserInputValidate(t *testing.T) {
	assert.NoError(t, UserInput{Name: "Ada", Email: " Ada@Example.com "}.Validate())

	err := UserInput{Name: "", Email: "not-an-email"}.Validate()
	v, ok := errors.AsValidation(err)
	require.True(t, ok)
	assert.Len(t, v.Fields, 2)
}

func TestProfilePatchValidate(t *testing.T) {
	assert.NoError(t, ProfilePatch{}.Validate())
	assert.NoError(t, ProfilePatch{CompanyName: ptr("")}.Validate())
	assert.Error(t, ProfilePatch{Name: ptr(" ")}.Validate())
}
