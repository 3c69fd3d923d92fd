package structure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/Piqzaa/HTML-to-Twig/internal/dom"
)

func children(t *testing.T, src string) []*html.Node {
	t.Helper()
	doc, err := dom.Parse(src)
	require.NoError(t, err)
	container := dom.FindFirst(doc.Get(0), dom.Element("div"))
	require.NotNil(t, container)
	return dom.ElementChildren(container)
}

func TestSimilar(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want bool
	}{
		{"same shape different text", `<div><p><b>x</b>one</p><p><b>y</b>two</p></div>`, true},
		{"attributes ignored", `<div><a class="x" href="/a"></a><a id="y"></a></div>`, true},
		{"different tag", `<div><p></p><span></span></div>`, false},
		{"different child order", `<div><p><b></b><i></i></p><p><i></i><b></b></p></div>`, false},
		{"different child count", `<div><p><b></b></p><p><b></b><b></b></p></div>`, false},
		{"grandchildren ignored", `<div><p><b><i></i></b></p><p><b><u></u></b></p></div>`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kids := children(t, tt.src)
			require.Len(t, kids, 2)
			assert.Equal(t, tt.want, Similar(kids[0], kids[1]))
		})
	}
}

func TestCountSimilar(t *testing.T) {
	kids := children(t, `<div>
		<div class="card"><h3></h3><p></p></div>
		<div class="card"><h3></h3><p></p></div>
		<div class="card"><h3></h3></div>
		<div class="card"><h3></h3><p></p></div>
	</div>`)
	require.Len(t, kids, 4)
	assert.Equal(t, 2, CountSimilar(kids))
	assert.Equal(t, 0, CountSimilar(kids[:1]))
	assert.Equal(t, 0, CountSimilar(nil))
}
