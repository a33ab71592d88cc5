package steps

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepRegistryOrder(t *testing.T) {
	expected := []string{
		ResolveDate, ProbeWorkspace, EditManifest, InvokeScaffold,
		RenderTemplates, LoadCredential, FetchInput, FetchDescription,
	}

	require.Len(t, StepRegistry, len(expected))
	for i, name := range expected {
		assert.Equal(t, name, StepRegistry[i].Name)
		assert.NotEmpty(t, StepRegistry[i].Category)
	}
}

func TestStepRegistryCategories(t *testing.T) {
	categories := map[string][]string{
		CategoryLocal:    {ResolveDate, ProbeWorkspace, EditManifest, RenderTemplates, LoadCredential},
		CategoryExternal: {InvokeScaffold},
		CategoryNetwork:  {FetchInput, FetchDescription},
	}

	for category, stepNames := range categories {
		for _, stepName := range stepNames {
			def, ok := Lookup(stepName)
			require.True(t, ok)
			assert.Equal(t, category, def.Category, "Step %s should be in category %s", stepName, category)
		}
	}
}

func TestLookup_Unknown(t *testing.T) {
	_, ok := Lookup("render_latex")
	assert.False(t, ok)
}

func TestOnlyDescriptionIsOptional(t *testing.T) {
	for _, def := range StepRegistry {
		assert.Equal(t, def.Name == FetchDescription, def.Optional, def.Name)
	}
}

func TestStepError(t *testing.T) {
	cause := errors.New("exit status 101")
	err := &StepError{
		Step:    InvokeScaffold,
		Kind:    KindExternalTool,
		Message: "cargo new failed",
		Cause:   cause,
	}

	assert.Equal(t, "invoke_scaffold failed (external_tool): cargo new failed: exit status 101", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestKindOf(t *testing.T) {
	err := fmt.Errorf("run aborted: %w", &StepError{Step: FetchInput, Kind: KindNetwork, Message: "HTTP status 404"})

	assert.Equal(t, KindNetwork, KindOf(err))
	assert.Equal(t, Kind(""), KindOf(errors.New("plain")))
	assert.Equal(t, Kind(""), KindOf(nil))
}
