package deepmerge_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/251207-go-pkg-cfgmerge/pkg/deepmerge"
)

const metaKey = deepmerge.DefaultMetadataKey

func TestMerge_Basics(t *testing.T) {
	tests := []struct {
		name   string
		base   map[string]any
		update map[string]any
		opts   []deepmerge.Option
		want   map[string]any
	}{
		{
			name:   "nested subkeys are respected",
			base:   map[string]any{"a": 1, "b": []any{2}, "c": map[string]any{"d": 4, "e": 5, "f": map[string]any{"g": 7}}},
			update: map[string]any{"c": map[string]any{"d": 999}},
			want:   map[string]any{"a": 1, "b": []any{2}, "c": map[string]any{"d": 999, "e": 5, "f": map[string]any{"g": 7}}},
		},
		{
			name:   "new key is created",
			base:   map[string]any{"a": 1},
			update: map[string]any{"h": 8},
			want:   map[string]any{"a": 1, "h": 8},
		},
		{
			name:   "lists concatenate by default",
			base:   map[string]any{"b": []any{2}},
			update: map[string]any{"b": []any{777, map[string]any{"i": 9}}},
			want:   map[string]any{"b": []any{2, 777, map[string]any{"i": 9}}},
		},
		{
			name:   "nil overwrites",
			base:   map[string]any{"a": 1},
			update: map[string]any{"a": nil},
			want:   map[string]any{"a": nil},
		},
		{
			name:   "nil is transparent when enabled",
			base:   map[string]any{"a": 1},
			update: map[string]any{"a": nil},
			opts:   []deepmerge.Option{deepmerge.WithNoneValuesTransparent(true)},
			want:   map[string]any{"a": 1},
		},
		{
			name:   "transparent nil still creates missing key",
			base:   map[string]any{},
			update: map[string]any{"a": nil},
			opts:   []deepmerge.Option{deepmerge.WithNoneValuesTransparent(true)},
			want:   map[string]any{"a": nil},
		},
		{
			name:   "mapping replaces sequence",
			base:   map[string]any{"a": []any{1}},
			update: map[string]any{"a": map[string]any{"b": 1}},
			want:   map[string]any{"a": map[string]any{"b": 1}},
		},
		{
			name:   "sequence over scalar starts from empty",
			base:   map[string]any{"a": 5},
			update: map[string]any{"a": []any{1}},
			want:   map[string]any{"a": []any{1}},
		},
		{
			name:   "scalar replaces mapping",
			base:   map[string]any{"a": map[string]any{"b": 1}},
			update: map[string]any{"a": 2},
			want:   map[string]any{"a": 2},
		},
		{
			name:   "typed slices are sequences",
			base:   map[string]any{"a": []string{"x"}},
			update: map[string]any{"a": []string{"y"}},
			want:   map[string]any{"a": []any{"x", "y"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := deepmerge.Merge(tt.base, tt.update, tt.opts...)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMerge_Strategies(t *testing.T) {
	tests := []struct {
		name     string
		strategy any
		metaFor  string
		want     []any
	}{
		{name: "and", strategy: "and", metaFor: "a", want: []any{3}},
		{name: "or", strategy: "or", metaFor: "a", want: []any{1, 2, 3, 4, 5}},
		{name: "keep", strategy: "keep", metaFor: "a", want: []any{1, 2, 3}},
		{name: "replace", strategy: "replace", metaFor: "a", want: []any{3, 4, 5}},
		{name: "concat", strategy: "concat", metaFor: "a", want: []any{1, 2, 3, 3, 4, 5}},
		{name: "mismatched key falls back to concat", strategy: "and", metaFor: "b", want: []any{1, 2, 3, 3, 4, 5}},
		{name: "unknown strategy falls back to concat", strategy: "xor", metaFor: "a", want: []any{1, 2, 3, 3, 4, 5}},
		{name: "non-string strategy falls back to concat", strategy: 42, metaFor: "a", want: []any{1, 2, 3, 3, 4, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := map[string]any{"a": []any{1, 2, 3}}
			update := map[string]any{
				"a":     []any{3, 4, 5},
				metaKey: map[string]any{tt.metaFor: tt.strategy},
			}

			got := deepmerge.Merge(base, update)
			assert.Equal(t, map[string]any{"a": tt.want}, got)
		})
	}
}

func TestMerge_StrategiesOverAbsentKey(t *testing.T) {
	for _, s := range deepmerge.Strategies() {
		t.Run(string(s), func(t *testing.T) {
			base := map[string]any{"b": "scalar"}
			update := map[string]any{
				"a":     []any{},
				"b":     []any{},
				metaKey: map[string]any{"a": string(s), "b": string(s)},
			}

			got := deepmerge.Merge(base, update)
			assert.Equal(t, map[string]any{"a": []any{}, "b": []any{}}, got)
			assert.NotNil(t, got["a"])
			assert.NotNil(t, got["b"])
		})
	}

	got := deepmerge.Merge(map[string]any{}, map[string]any{
		"a":     []any{1},
		metaKey: map[string]any{"a": "keep"},
	})
	assert.Equal(t, map[string]any{"a": []any{}}, got)

	out, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":[]}`, string(out))
}

func TestMerge_MetadataFromBase(t *testing.T) {
	base := map[string]any{"a": []any{1, 2}, metaKey: map[string]any{"a": "replace"}}
	update := map[string]any{"a": []any{3}}

	got := deepmerge.Merge(base, update)
	assert.Equal(t, map[string]any{"a": []any{3}}, got)
}

func TestMerge_UpdateMetadataOverridesBase(t *testing.T) {
	base := map[string]any{"a": []any{1, 2}, metaKey: map[string]any{"a": "replace"}}
	update := map[string]any{"a": []any{3}, metaKey: map[string]any{"a": "keep"}}

	got := deepmerge.Merge(base, update)
	assert.Equal(t, map[string]any{"a": []any{1, 2}}, got)
}

func TestMerge_NestedMetadataAppliesToSiblings(t *testing.T) {
	base := map[string]any{"srv": map[string]any{"hosts": []any{"a", "b"}}}
	update := map[string]any{"srv": map[string]any{
		"hosts": []any{"b", "c"},
		metaKey: map[string]any{"hosts": "or"},
	}}

	got := deepmerge.Merge(base, update)
	assert.Equal(t, map[string]any{"srv": map[string]any{"hosts": []any{"a", "b", "c"}}}, got)
}

func TestMerge_MetadataNeverInResult(t *testing.T) {
	base := map[string]any{"x": map[string]any{"y": 1, metaKey: map[string]any{"z": "keep"}}}
	update := map[string]any{"w": map[string]any{metaKey: map[string]any{"q": "and"}}}

	got := deepmerge.Merge(base, update)
	assert.Equal(t, map[string]any{"x": map[string]any{"y": 1}, "w": map[string]any{}}, got)
}

func TestMerge_CustomMetadataKey(t *testing.T) {
	base := map[string]any{"a": []any{1}}
	update := map[string]any{"a": []any{2}, "_meta": map[string]any{"a": "replace"}, metaKey: "kept as data"}

	got := deepmerge.Merge(base, update, deepmerge.WithMetadataKey("_meta"))
	assert.Equal(t, map[string]any{"a": []any{2}, metaKey: "kept as data"}, got)
}

func TestMerge_DisabledMetadataKey(t *testing.T) {
	update := map[string]any{"a": []any{2}, metaKey: map[string]any{"a": "replace"}}

	got := deepmerge.Merge(map[string]any{"a": []any{1}}, update, deepmerge.WithMetadataKey(""))
	assert.Equal(t, map[string]any{"a": []any{1, 2}, metaKey: map[string]any{"a": "replace"}}, got)
}

func TestMerge_ExplicitStrategiesWin(t *testing.T) {
	base := map[string]any{"srv": map[string]any{"hosts": []any{"a", "b"}}}
	update := map[string]any{"srv": map[string]any{
		"hosts": []any{"b", "c"},
		metaKey: map[string]any{"hosts": "concat"},
	}}

	got := deepmerge.Merge(base, update, deepmerge.WithStrategies(map[string]deepmerge.Strategy{
		"srv.hosts": deepmerge.And,
	}))
	assert.Equal(t, map[string]any{"srv": map[string]any{"hosts": []any{"b"}}}, got)
}

func TestMerge_DoesNotMutateUpdate(t *testing.T) {
	update := map[string]any{
		"c":     map[string]any{"d": 1},
		"l":     []any{1},
		metaKey: map[string]any{"l": "or"},
	}

	got := deepmerge.Merge(map[string]any{}, update)
	got["c"].(map[string]any)["d"] = 2

	assert.Equal(t, map[string]any{
		"c":     map[string]any{"d": 1},
		"l":     []any{1},
		metaKey: map[string]any{"l": "or"},
	}, update)
}

func TestMerge_Identities(t *testing.T) {
	a := func() map[string]any {
		return map[string]any{"a": 1, "b": []any{1, "x"}, "c": map[string]any{"d": nil, "e": []any{}}}
	}

	assert.Equal(t, a(), deepmerge.Merge(a(), map[string]any{}), "merge(A, {}) == A")
	assert.Equal(t, a(), deepmerge.Merge(map[string]any{}, a()), "merge({}, B) == B")
}

func TestMerge_ConcatIsNotIdempotent(t *testing.T) {
	b := func() map[string]any { return map[string]any{"a": []any{3, 4}} }

	once := deepmerge.Merge(map[string]any{"a": []any{1}}, b())
	twice := deepmerge.Merge(deepmerge.Merge(map[string]any{"a": []any{1}}, b()), b())

	assert.Equal(t, []any{1, 3, 4}, once["a"])
	assert.Equal(t, []any{1, 3, 4, 3, 4}, twice["a"])
}

func TestMergeAll(t *testing.T) {
	got := deepmerge.MergeAll([]map[string]any{
		{"a": 1, "b": []any{1}},
		{"a": 2, "b": []any{2}},
		{"c": map[string]any{"d": true}},
	})

	assert.Equal(t, map[string]any{"a": 2, "b": []any{1, 2}, "c": map[string]any{"d": true}}, got)
	assert.Equal(t, map[string]any{}, deepmerge.MergeAll(nil))
}

func TestStrategy_Combine(t *testing.T) {
	t.Run("sequence and mapping never compare equal", func(t *testing.T) {
		got := deepmerge.And.Combine([]any{[]any{}, map[string]any{}}, []any{map[string]any{}})
		assert.Equal(t, []any{map[string]any{}}, got)
	})

	t.Run("numbers compare by value", func(t *testing.T) {
		got := deepmerge.Or.Combine([]any{1}, []any{1.0, 2})
		assert.Equal(t, []any{1, 2}, got)
	})

	t.Run("strings and numbers differ", func(t *testing.T) {
		got := deepmerge.Or.Combine([]any{1}, []any{"1"})
		assert.Equal(t, []any{1, "1"}, got)
	})

	t.Run("duplicates collapse", func(t *testing.T) {
		got := deepmerge.Or.Combine([]any{"a", "a"}, []any{"a"})
		assert.Equal(t, []any{"a"}, got)
	})

	t.Run("empty intersection", func(t *testing.T) {
		got := deepmerge.And.Combine([]any{1}, []any{2})
		assert.Equal(t, []any{}, got)
	})

	t.Run("replace does not alias input", func(t *testing.T) {
		update := []any{1, 2}
		got := deepmerge.Replace.Combine([]any{0}, update)
		got[0] = 9
		assert.Equal(t, []any{1, 2}, update)
	})
}

func TestParseStrategy(t *testing.T) {
	for _, s := range deepmerge.Strategies() {
		got, err := deepmerge.ParseStrategy(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	_, err := deepmerge.ParseStrategy("union")
	require.ErrorIs(t, err, deepmerge.ErrUnknownStrategy)
	assert.Contains(t, err.Error(), "union")
}
