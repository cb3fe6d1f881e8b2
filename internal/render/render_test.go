package render

import (
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"authoring-kit/internal/target"
)

func sampleTree() *target.Node {
	root := target.NewRoot("cq:dialog", "cq:dialog")
	root.SetString("jcr:title", "Teaser")

	field := root.GetOrCreate("content/items/title")
	field.SetString("name", "./title")
	field.SetBool("required", true)

	return root
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"yaml": FormatYAML, "YML": FormatYAML, " json ": FormatJSON} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestYAML(t *testing.T) {
	out, err := Marshal(sampleTree(), FormatYAML)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(out, &decoded))

	assert.Equal(t, "Teaser", decoded["jcr:title"])
	assert.Equal(t, target.KindUnstructured, decoded[target.KindAttr])

	content := decoded["content"].(map[string]any)
	title := content["items"].(map[string]any)["title"].(map[string]any)
	assert.Equal(t, "./title", title["name"])
	assert.Equal(t, "{Boolean}true", title["required"])

	text := string(out)
	assert.Less(t, strings.Index(text, "jcr:title"), strings.Index(text, "content:"))
}

func TestJSON(t *testing.T) {
	out, err := Marshal(sampleTree(), FormatJSON)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))

	assert.Equal(t, "Teaser", decoded["jcr:title"])

	items := decoded["content"].(map[string]any)["items"].(map[string]any)
	assert.Equal(t, "./title", items["title"].(map[string]any)["name"])

	text := string(out)
	assert.Less(t, strings.Index(text, target.KindAttr), strings.Index(text, "jcr:title"))
	assert.Less(t, strings.Index(text, "jcr:title"), strings.Index(text, `"content"`))
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "Teaser/cq_dialog.yaml", FileName("Teaser", "cq:dialog", FormatYAML))
	assert.Equal(t, "Teaser/.content.json", FileName("Teaser", ".content", FormatJSON))
}
