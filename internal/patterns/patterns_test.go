package patterns

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_CategoryOrder(t *testing.T) {
	tables := Default()
	require.Len(t, tables.Categories, 4)

	var names []string
	for _, c := range tables.Categories {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"images", "css", "js", "fonts"}, names)
}

func TestDefault_IsShared(t *testing.T) {
	assert.Same(t, Default(), Default())
}

func TestDefault_PatternsCaseInsensitive(t *testing.T) {
	tables := Default()
	m := tables.Categories[0].Pattern.FindStringSubmatch("../../Assets/IMG/Photo.JPG")
	require.NotNil(t, m)
	assert.Equal(t, "Photo.JPG", m[1])
}

func TestCategoryForExt(t *testing.T) {
	tables := Default()
	tests := []struct {
		ext  string
		want string
		ok   bool
	}{
		{".css", "css", true},
		{".SCSS", "css", true},
		{".mjs", "js", true},
		{".avif", "images", true},
		{".woff2", "fonts", true},
		{".pdf", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := tables.CategoryForExt(tt.ext)
		assert.Equal(t, tt.ok, ok, tt.ext)
		assert.Equal(t, tt.want, got, tt.ext)
	}
}

func TestRegionsFor(t *testing.T) {
	tables := Default()

	twig := tables.RegionsFor("twig")
	require.Len(t, twig, 7)
	assert.Equal(t, "header", twig[0].Name)
	assert.Equal(t, []string{"header", ".header", "#header", "[role='banner']"}, twig[0].Selectors)
	assert.Equal(t, "javascripts", twig[6].Name)

	wp := tables.RegionsFor("wordpress")
	require.Len(t, wp, 4)
	assert.Equal(t, "content", wp[3].Name)

	assert.Empty(t, tables.RegionsFor("jinja"))
}

func TestNavSelectorsAndRepetition(t *testing.T) {
	tables := Default()
	assert.Equal(t, []string{"nav", "ul.nav", "ul.menu", "ul.navbar-nav", ".navigation", ".main-menu"}, tables.NavSelectors)
	assert.True(t, tables.IsContainer("section"))
	assert.False(t, tables.IsContainer("ul"))
	assert.Equal(t, 3, tables.MinChildren)
	assert.Equal(t, 2, tables.MinSimilar)
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse([]byte("assets: ["))
	assert.Error(t, err)

	_, err = Parse([]byte(`
assets:
  categories:
    - name: images
      pattern: '^img/'
`))
	assert.ErrorContains(t, err, "capture group")

	_, err = Parse([]byte(`
regions:
  twig:
    - name: header
`))
	assert.ErrorContains(t, err, "no selectors")
}

func TestParse_Defaults(t *testing.T) {
	tables, err := Parse([]byte("navigation:\n  selectors: [nav]\n"))
	require.NoError(t, err)
	assert.Equal(t, 3, tables.MinChildren)
	assert.Equal(t, 2, tables.MinSimilar)
	assert.Equal(t, []string{"nav"}, tables.NavSelectors)
}
