package mapper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToMutationInputPreservesPresence(t *testing.T) {
	name := "Biscuit"
	age := 14
	tags := []Tag{{ID: 1, Name: "friendly"}}

	input := ToMutationInput(MutationPet{ID: 5, Name: &name, AgeMonths: &age, Tags: &tags})

	require.NotNil(t, input.Name)
	assert.Equal(t, "Biscuit", *input.Name)
	require.NotNil(t, input.AgeMonths)
	assert.Equal(t, 14, *input.AgeMonths)
	assert.Nil(t, input.Species)
	assert.Nil(t, input.PhotoURLs)
	require.NotNil(t, input.Tags)
	assert.Equal(t, "friendly", (*input.Tags)[0].Name)

	name = "changed"
	assert.Equal(t, "Biscuit", *input.Name)
}
