package yaml_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/templify"
	"github.com/fwojciec/templify/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Store implements templify.VariableStore at compile time.
var _ templify.VariableStore = (*yaml.Store)(nil)

func group(name string, kv ...string) *templify.Group {
	g := &templify.Group{Name: name}
	for i := 0; i+1 < len(kv); i += 2 {
		g.Add(kv[i], kv[i+1])
	}
	return g
}

func TestStore_MarshalGroups(t *testing.T) {
	t.Parallel()

	t.Run("writes groups in order with head comment", func(t *testing.T) {
		t.Parallel()

		s := yaml.NewStore()

		data, err := s.MarshalGroups([]*templify.Group{
			group("text_variables", "text_1", "Hello", "text_2", "World"),
			group("link_variables", "link_1", "/x"),
			group("image_variables"),
		})

		require.NoError(t, err)
		out := string(data)
		assert.Contains(t, out, "# "+yaml.HeadComment)
		assert.Contains(t, out, "text_variables:\n  text_1: Hello\n  text_2: World\n")
		assert.Contains(t, out, "link_variables:\n  link_1: /x\n")
		assert.Contains(t, out, "image_variables: {}\n")
		assert.Less(t, strings.Index(out, "text_variables"), strings.Index(out, "link_variables"))
		assert.Less(t, strings.Index(out, "link_variables"), strings.Index(out, "image_variables"))
	})

	t.Run("keeps generation order instead of sorting keys", func(t *testing.T) {
		t.Parallel()

		s := yaml.NewStore()

		data, err := s.MarshalGroups([]*templify.Group{
			group("text_variables", "text_2", "b", "text_10", "c", "text_1", "a"),
		})

		require.NoError(t, err)
		assert.Contains(t, string(data), "  text_2: b\n  text_10: c\n  text_1: a\n")
	})

	t.Run("is stable under re-serialization", func(t *testing.T) {
		t.Parallel()

		s := yaml.NewStore()
		groups := []*templify.Group{
			group("text_variables", "text_1", `say \"hi\"`, "text_2", "multi\nline", "text_3", "true", "text_4", "42", "text_5", "a: b", "text_6", ""),
			group("link_variables", "link_1", "#top"),
		}

		first, err := s.MarshalGroups(groups)
		require.NoError(t, err)

		decoded, err := s.UnmarshalGroups(first)
		require.NoError(t, err)
		second, err := s.MarshalGroups(decoded)
		require.NoError(t, err)

		assert.Equal(t, string(first), string(second))
	})
}

func TestStore_UnmarshalGroups(t *testing.T) {
	t.Parallel()

	t.Run("round trips values that look like other types", func(t *testing.T) {
		t.Parallel()

		s := yaml.NewStore()
		want := []*templify.Group{
			group("text_variables",
				"text_1", "Hello",
				"text_2", "true",
				"text_3", "0755",
				"text_4", "null",
				"text_5", "",
				"text_6", "- item",
				"text_7", "line one\nline two",
				"text_8", `quote \" inside`,
				"text_9", "# not a comment",
			),
			group("image_variables", "img_1", "img/logo.png"),
		}

		data, err := s.MarshalGroups(want)
		require.NoError(t, err)
		got, err := s.UnmarshalGroups(data)
		require.NoError(t, err)

		require.Len(t, got, 2)
		assert.Equal(t, want[0].Entries, got[0].Entries)
		assert.Equal(t, want[1].Entries, got[1].Entries)
		assert.Equal(t, "text_variables", got[0].Name)
	})

	t.Run("reads hand-written stores", func(t *testing.T) {
		t.Parallel()

		s := yaml.NewStore()

		got, err := s.UnmarshalGroups([]byte(`
text_variables:
  text_1: 'Hello'
  text_2: 12
  text_3:
image_variables:
`))

		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, []templify.Entry{
			{Name: "text_1", Value: "Hello"},
			{Name: "text_2", Value: "12"},
			{Name: "text_3", Value: ""},
		}, got[0].Entries)
		assert.Zero(t, got[1].Len())
	})

	t.Run("empty input has no groups", func(t *testing.T) {
		t.Parallel()

		got, err := yaml.NewStore().UnmarshalGroups(nil)

		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("rejects invalid stores", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name string
			data string
		}{
			{name: "not yaml", data: "text_variables: [unclosed"},
			{name: "top level list", data: "- a\n- b\n"},
			{name: "group is a list", data: "text_variables:\n  - a\n"},
			{name: "nested value", data: "text_variables:\n  text_1:\n    x: y\n"},
			{name: "duplicate variable", data: "text_variables:\n  text_1: a\n  text_1: b\n"},
		}

		for _, tt := range tests {
			_, err := yaml.NewStore().UnmarshalGroups([]byte(tt.data))

			require.Error(t, err, tt.name)
			assert.Equal(t, templify.EINVALID, templify.ErrorCode(err), tt.name)
		}
	})
}
