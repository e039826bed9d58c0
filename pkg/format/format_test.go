package format_test

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yamlv3 "go.yaml.in/yaml/v3"

	"github.com/lwmacct/251207-go-pkg-cfgmerge/pkg/format"
	"github.com/lwmacct/251207-go-pkg-cfgmerge/pkg/source"
)

func sample() map[string]any {
	return map[string]any{
		"a": 1,
		"b": []any{2, "x"},
		"c": map[string]any{"d": "a is 5"},
		"n": nil,
	}
}

func TestSerialize_JSON(t *testing.T) {
	out, err := format.Serialize(map[string]any{"b": []any{2}, "a": 1}, "json")
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1,\n  \"b\": [\n    2\n  ]\n}\n", string(out))
}

func TestSerialize_YAML(t *testing.T) {
	out, err := format.Serialize(sample(), "yaml")
	require.NoError(t, err)

	var back map[string]any
	require.NoError(t, yamlv3.Unmarshal(out, &back))
	assert.Equal(t, sample(), back)
}

func TestSerialize_Env(t *testing.T) {
	out, err := format.Serialize(sample(), "env")
	require.NoError(t, err)
	assert.Equal(t, "a=1\nb=[2,\"x\"]\nc={\"d\":\"a is 5\"}\nn=null\n", string(out))
}

func TestSerialize_HCL(t *testing.T) {
	out, err := format.Serialize(sample(), "hcl")
	require.NoError(t, err)

	back, err := source.Parse("hcl", out, "out.hcl")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"a": 1.0,
		"b": []any{2.0, "x"},
		"c": map[string]any{"d": "a is 5"},
		"n": nil,
	}, back)
}

func TestSerialize_HCLInvalidKey(t *testing.T) {
	_, err := format.Serialize(map[string]any{"1abc": 1}, "hcl")
	require.ErrorIs(t, err, format.ErrUnrepresentable)
}

func TestSerialize_HCLNaN(t *testing.T) {
	_, err := format.Serialize(map[string]any{"a": math.NaN()}, "hcl")
	require.ErrorIs(t, err, format.ErrUnrepresentable)

	_, err = format.Serialize(map[string]any{"a": []any{1, math.NaN()}}, "hcl")
	require.ErrorIs(t, err, format.ErrUnrepresentable)
}

func TestSerialize_Dump(t *testing.T) {
	out, err := format.Serialize(map[string]any{"b": "x", "a": 1}, format.Default)
	require.NoError(t, err)

	s := string(out)
	assert.Contains(t, s, `"a": (int) 1`)
	assert.Contains(t, s, `"b": (string) (len=1) "x"`)
	assert.Less(t, strings.Index(s, `"a"`), strings.Index(s, `"b"`), "keys are sorted")
}

func TestSerialize_JSONUnrepresentable(t *testing.T) {
	_, err := format.Serialize(map[string]any{"ch": make(chan int)}, "json")
	require.ErrorIs(t, err, format.ErrUnrepresentable)
}

func TestLookup(t *testing.T) {
	for _, name := range format.Names() {
		w, err := format.Lookup(name)
		require.NoError(t, err)
		assert.NotNil(t, w)
	}

	_, err := format.Lookup("pformat")
	require.ErrorIs(t, err, format.ErrUnknownOutputFormat)
	assert.Contains(t, err.Error(), "dump, env, hcl, json, yaml")

	_, err = format.Serialize(sample(), "toml")
	require.ErrorIs(t, err, format.ErrUnknownOutputFormat)
}
