package render

import (
	"fmt"
	"math"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/use-agent/reviewui/models"
)

// parseRows wraps rendered rows in a table so the HTML parser keeps them.
func parseRows(t *testing.T, rows string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<table><tbody>" + rows + "</tbody></table>"))
	if err != nil {
		t.Fatalf("parse rows: %v", err)
	}
	return doc
}

func TestStars_AlwaysFiveGlyphs(t *testing.T) {
	for r := 0.0; r <= 5.0; r += 0.05 {
		s := Stars(r)
		if n := utf8.RuneCountInString(s); n != MaxStars {
			t.Fatalf("Stars(%v) has %d glyphs", r, n)
		}
		filled := strings.Count(s, filledStar)
		if filled != FilledStars(r) {
			t.Fatalf("Stars(%v) has %d filled, want %d", r, filled, FilledStars(r))
		}
		if filled+strings.Count(s, emptyStar) != MaxStars {
			t.Fatalf("Stars(%v) = %q", r, s)
		}
	}
}

func TestFilledStars(t *testing.T) {
	tests := []struct {
		rating float64
		want   int
	}{
		{0, 0},
		{0.49, 0},
		{0.5, 1},
		{3, 3},
		{3.5, 4},
		{4, 4},
		{4.4, 4},
		{4.5, 5},
		{5, 5},
		{-1, 0},
		{7, 5},
		{1e19, 5},
		{1e300, 5},
		{math.Inf(1), 5},
		{math.Inf(-1), 0},
		{-1e300, 0},
		{math.NaN(), 0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.rating), func(t *testing.T) {
			if got := FilledStars(tt.rating); got != tt.want {
				t.Errorf("FilledStars(%v) = %d, want %d", tt.rating, got, tt.want)
			}
		})
	}
}

func TestRatingTitle(t *testing.T) {
	if got := RatingTitle(4); got != "4" {
		t.Errorf("RatingTitle(4) = %q", got)
	}
	if got := RatingTitle(4.5); got != "4.5" {
		t.Errorf("RatingTitle(4.5) = %q", got)
	}
}

func TestRows_OneRowPerReviewInOrder(t *testing.T) {
	var reviews []models.Review
	for i := 0; i < 7; i++ {
		reviews = append(reviews, models.Review{
			Product: "P",
			User:    fmt.Sprintf("user-%d", i),
			Rating:  float64(i % 6),
			Title:   "T",
			Comment: "C",
			Date:    "2024-01-01",
		})
	}

	doc := parseRows(t, Rows(reviews))
	rows := doc.Find("tr")
	if rows.Length() != len(reviews) {
		t.Fatalf("rendered %d rows, want %d", rows.Length(), len(reviews))
	}
	rows.Each(func(i int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() != len(Columns) {
			t.Errorf("row %d has %d cells", i, cells.Length())
		}
		if user := cells.Eq(1).Text(); user != fmt.Sprintf("user-%d", i) {
			t.Errorf("row %d user = %q", i, user)
		}
	})
}

func TestRows_RatingCell(t *testing.T) {
	doc := parseRows(t, Rows([]models.Review{{Product: "A", User: "u1", Rating: 4, Title: "Good", Comment: "Nice", Date: "2024-01-01"}}))

	cell := doc.Find("td.rating")
	if cell.Length() != 1 {
		t.Fatalf("found %d rating cells", cell.Length())
	}
	if title, _ := cell.Attr("title"); title != "4" {
		t.Errorf("title attr = %q", title)
	}
	if text := cell.Text(); text != "★★★★☆" {
		t.Errorf("stars = %q", text)
	}
}

func TestRows_EscapesUntrustedFields(t *testing.T) {
	payload := `<script>alert("x")</script> & <b>bold</b>`
	rows := Rows([]models.Review{{
		Product: payload,
		User:    payload,
		Title:   payload,
		Comment: payload,
		Date:    payload,
	}})

	if strings.Contains(rows, "<script>") || strings.Contains(rows, "<b>") {
		t.Fatalf("markup leaked into output: %s", rows)
	}
	if !strings.Contains(rows, "&lt;script&gt;") || !strings.Contains(rows, "&amp;") {
		t.Fatalf("expected escaped entities: %s", rows)
	}

	doc := parseRows(t, rows)
	if doc.Find("script, b").Length() != 0 {
		t.Fatal("escaped content was parsed as elements")
	}
	doc.Find("td").Each(func(i int, cell *goquery.Selection) {
		if cell.HasClass("rating") {
			return
		}
		if cell.Text() != payload {
			t.Errorf("cell %d text = %q, want literal payload", i, cell.Text())
		}
	})
}

func TestTable_HeaderAndBody(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(Table([]models.Review{{Product: "A"}, {Product: "B"}})))
	if err != nil {
		t.Fatal(err)
	}
	if n := doc.Find("thead th").Length(); n != len(Columns) {
		t.Errorf("header cells = %d", n)
	}
	if n := doc.Find("tbody tr").Length(); n != 2 {
		t.Errorf("body rows = %d", n)
	}
}

func TestMarkdown(t *testing.T) {
	md, err := Markdown([]models.Review{{Product: "Phone", User: "u1", Rating: 3, Title: "Okay", Comment: "Fine", Date: "2024-02-02"}})
	if err != nil {
		t.Fatalf("Markdown: %v", err)
	}
	for _, want := range []string{"Product", "Phone", "★★★☆☆", "2024-02-02", "|"} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
}
