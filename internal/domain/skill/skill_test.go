package skill

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/khoahotran/me-api/pkg/optional"
)

func TestUpdate_ApplyOnlyTouchesPresentFields(t *testing.T) {
	s := &Skill{ID: 1, Name: "Go", Proficiency: "Medium", ProfileID: 1}

	Update{Proficiency: optional.Of("Advanced")}.Apply(s)

	assert.Equal(t, "Go", s.Name)
	assert.Equal(t, "Advanced", s.Proficiency)
}

func TestUpdate_ValidateRejectsNullRequiredField(t *testing.T) {
	var u struct {
		Name optional.Value[string] `json:"name"`
	}
	assert.NoError(t, json.Unmarshal([]byte(`{"name": null}`), &u))

	assert.ErrorIs(t, Update{Name: u.Name}.Validate(), ErrRequiredFieldNull)
	assert.NoError(t, Update{Name: optional.Of("Go")}.Validate())
}
