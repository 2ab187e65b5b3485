package rst

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const doc = `Architecture
============

.. image:: https://drive.google.com/open?id=ABC123
   :width: 400

.. figure:: https://docs.google.com/drawings/d/XYZ/edit
   :alt: flow

   Caption text.

See https://drive.google.com/open?id=TEXT for details.
`

func TestRewriter_Metadata(t *testing.T) {
	r := New()
	assert.Equal(t, "rst", r.Name())
	assert.Equal(t, []string{".rst", ".rest"}, r.Extensions())
}

func TestRewriter_References(t *testing.T) {
	got := New().References([]byte(doc))

	assert.Equal(t, []string{
		"https://drive.google.com/open?id=ABC123",
		"https://docs.google.com/drawings/d/XYZ/edit",
	}, got)
}

func TestRewriter_References_IndentedDirective(t *testing.T) {
	content := ".. note::\n\n   .. image:: nested.png\n"

	assert.Equal(t, []string{"nested.png"}, New().References([]byte(content)))
}

func TestRewriter_Replace(t *testing.T) {
	out := New().Replace([]byte(doc), map[string]string{
		"https://drive.google.com/open?id=ABC123": "_images/ABC123.png",
	})

	assert.Contains(t, string(out), ".. image:: _images/ABC123.png\n   :width: 400")
	assert.Contains(t, string(out), ".. figure:: https://docs.google.com/drawings/d/XYZ/edit")
	assert.Contains(t, string(out), "See https://drive.google.com/open?id=TEXT for details.")
}

func TestRewriter_Replace_NoMatch(t *testing.T) {
	out := New().Replace([]byte(doc), map[string]string{"missing": "x"})

	assert.Equal(t, doc, string(out))
}
