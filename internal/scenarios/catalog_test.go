package scenarios

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type expectationsFile struct {
	Scenarios []struct {
		Name     string   `yaml:"name"`
		Path     string   `yaml:"path"`
		Surfaces []string `yaml:"surfaces"`
	} `yaml:"scenarios"`
}

func loadExpectations(t *testing.T) expectationsFile {
	t.Helper()
	data, err := os.ReadFile("testdata/expectations.yaml")
	require.NoError(t, err)

	var expected expectationsFile
	require.NoError(t, yaml.Unmarshal(data, &expected))
	return expected
}

func TestCatalogMatchesExpectations(t *testing.T) {
	expected := loadExpectations(t)
	catalog := Catalog()
	require.Len(t, catalog, len(expected.Scenarios))

	for i, want := range expected.Scenarios {
		got := catalog[i]
		assert.Equal(t, want.Name, got.Name)
		assert.Equal(t, want.Path, got.Path)

		surfaces := map[string]bool{}
		for _, s := range want.Surfaces {
			surfaces[s] = true
		}
		assert.Equal(t, surfaces["classic"], got.Classic != nil, "%s classic variant", want.Name)
		assert.Equal(t, surfaces["ai"], got.Language != nil, "%s ai variant", want.Name)
		assert.Equal(t, surfaces["hybrid"], got.Hybrid != nil, "%s hybrid variant", want.Name)
	}
}

func TestCatalogNamesUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, s := range Catalog() {
		assert.False(t, seen[s.Name], "duplicate scenario name %q", s.Name)
		seen[s.Name] = true
	}
}

func TestByName(t *testing.T) {
	s, ok := ByName("form_fill")
	require.True(t, ok)
	assert.Equal(t, "/text-box", s.Path)

	_, ok = ByName("no_such_scenario")
	assert.False(t, ok)
}

func TestVariantSelection(t *testing.T) {
	s, ok := ByName("form_fill")
	require.True(t, ok)

	assert.NotNil(t, s.Variant("classic"))
	assert.NotNil(t, s.Variant("ai"))
	assert.NotNil(t, s.Variant("hybrid"))
	// Unknown surfaces fall back to the classic variant
	assert.NotNil(t, s.Variant("unknown"))

	agentTask, ok := ByName("agent_task")
	require.True(t, ok)
	assert.Nil(t, agentTask.Variant("classic"))
	assert.NotNil(t, agentTask.Variant("ai"))
}

func TestHarnessURL(t *testing.T) {
	h := &Harness{BaseURL: "http://localhost:3344"}
	assert.Equal(t, "http://localhost:3344/text-box", h.URL("/text-box"))
	assert.Equal(t, "http://localhost:3344/", h.URL("/"))
}
