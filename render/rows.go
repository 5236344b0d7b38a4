package render

import (
	"bytes"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/use-agent/reviewui/models"
)

// Columns are the header labels of the results table, in column order.
var Columns = []string{"Product", "User", "Rating", "Title", "Comment", "Date"}

// Rows renders one <tr> per review, in order. Scraped fields are untrusted:
// each is attached as a text node and serialized, so markup in them comes
// out escaped and never interpreted.
func Rows(reviews []models.Review) string {
	var buf bytes.Buffer
	for i := range reviews {
		// Rendering an in-memory node tree into a bytes.Buffer cannot fail.
		_ = html.Render(&buf, rowNode(&reviews[i]))
	}
	return buf.String()
}

// Table renders a complete <table> with a header row and a <tbody> holding
// Rows(reviews).
func Table(reviews []models.Review) string {
	table := element(atom.Table)

	thead := element(atom.Thead)
	head := element(atom.Tr)
	for _, col := range Columns {
		head.AppendChild(textElement(atom.Th, col))
	}
	thead.AppendChild(head)
	table.AppendChild(thead)

	tbody := element(atom.Tbody)
	for i := range reviews {
		tbody.AppendChild(rowNode(&reviews[i]))
	}
	table.AppendChild(tbody)

	var buf bytes.Buffer
	_ = html.Render(&buf, table)
	return buf.String()
}

func rowNode(r *models.Review) *html.Node {
	tr := element(atom.Tr)
	tr.AppendChild(textElement(atom.Td, r.Product))
	tr.AppendChild(textElement(atom.Td, r.User))

	rating := textElement(atom.Td, Stars(r.Rating))
	rating.Attr = []html.Attribute{
		{Key: "class", Val: "rating"},
		{Key: "title", Val: RatingTitle(r.Rating)},
	}
	tr.AppendChild(rating)

	tr.AppendChild(textElement(atom.Td, r.Title))
	tr.AppendChild(textElement(atom.Td, r.Comment))
	tr.AppendChild(textElement(atom.Td, r.Date))
	return tr
}

func element(a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
}

// textElement returns <tag>text</tag> with text as a text-only child.
func textElement(a atom.Atom, text string) *html.Node {
	n := element(a)
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return n
}
