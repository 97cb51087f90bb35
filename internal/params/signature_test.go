package params

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/link2cory/echo-hello-world/internal/schema"
)

var testBody = schema.New("TestBody",
	schema.Required("name", schema.String()),
	schema.Required("price", schema.Float()),
)

func TestNewSignature_InfersSources(t *testing.T) {
	sig, err := NewSignature("/items/:item_id",
		Infer("item_id", schema.Int()),
		Infer("q", schema.String(), Optional()),
		Infer("tags", schema.ListOf(schema.String()), Optional()),
		Infer("body", schema.Object(testBody)),
	)
	require.NoError(t, err)
	require.Len(t, sig.Params, 4)

	assert.Equal(t, SourcePath, sig.Params[0].Source)
	assert.True(t, sig.Params[0].Required)
	assert.Equal(t, SourceQuery, sig.Params[1].Source)
	assert.Equal(t, SourceQuery, sig.Params[2].Source)
	assert.Equal(t, SourceBody, sig.Params[3].Source)
	assert.False(t, sig.EmbedsBody())
}

func TestNewSignature_EmbedsMultipleBodies(t *testing.T) {
	sig, err := NewSignature("/multi/",
		Infer("body_1", schema.Object(testBody)),
		Infer("body_2", schema.Object(testBody)),
	)
	require.NoError(t, err)
	assert.True(t, sig.EmbedsBody())

	sig, err = NewSignature("/embed/", Body("body", schema.Object(testBody), Embed()))
	require.NoError(t, err)
	assert.True(t, sig.EmbedsBody())
}

func TestNewSignature_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		params  []Param
	}{
		{"duplicate", "/x/", []Param{Query("a", schema.Int()), Header("a", schema.Int())}},
		{"unbound placeholder", "/items/:item_id", nil},
		{"path not a placeholder", "/x/", []Param{Path("id", schema.Int())}},
		{"structured path", "/x/:id", []Param{Path("id", schema.Object(testBody))}},
		{"structured query", "/x/", []Param{Query("q", schema.Object(testBody))}},
		{"list cookie", "/x/", []Param{Cookie("c", schema.ListOf(schema.String()))}},
		{"shadowed placeholder", "/x/:id", []Param{Path("id", schema.Int()), Query("id", schema.Int())}},
		{"body with form", "/x/", []Param{Body("b", schema.Object(testBody)), Form("f", schema.String())}},
		{"uninferable", "/x/", []Param{Infer("a", schema.Any())}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSignature(tt.pattern, tt.params...)
			assert.Error(t, err)
		})
	}
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, Placeholders("/x/:a/y/:b"))
	assert.Empty(t, Placeholders("/files/"))
}

func TestExternalName(t *testing.T) {
	assert.Equal(t, "x-token", Header("x_token", schema.String()).ExternalName())
	assert.Equal(t, "x_token", Header("x_token", schema.String(), NoUnderscoreConversion()).ExternalName())
	assert.Equal(t, "my_query", Query("my_query", schema.String()).ExternalName())
	assert.Equal(t, "q", Query("my_query", schema.String(), Alias("q")).ExternalName())
}
