package optional

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type patch struct {
	Name   Value[string]  `json:"name"`
	Github Value[*string] `json:"github"`
}

func TestValue_TracksPresence(t *testing.T) {
	var p patch
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Ada"}`), &p))

	assert.True(t, p.Name.IsSet())
	assert.False(t, p.Name.IsNull())
	assert.False(t, p.Github.IsSet())

	name := "old"
	p.Name.ApplyTo(&name)
	assert.Equal(t, "Ada", name)

	gh := "https://github.com/old"
	ghPtr := &gh
	p.Github.ApplyTo(&ghPtr)
	require.NotNil(t, ghPtr)
	assert.Equal(t, "https://github.com/old", *ghPtr)
}

func TestValue_ExplicitNull(t *testing.T) {
	var p patch
	require.NoError(t, json.Unmarshal([]byte(`{"github": null}`), &p))

	assert.True(t, p.Github.IsSet())
	assert.True(t, p.Github.IsNull())

	gh := "https://github.com/old"
	ghPtr := &gh
	p.Github.ApplyTo(&ghPtr)
	assert.Nil(t, ghPtr)
}

func TestValue_RejectsWrongType(t *testing.T) {
	var p patch
	err := json.Unmarshal([]byte(`{"name": 12}`), &p)
	assert.Error(t, err)
}
