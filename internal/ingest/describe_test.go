package ingest

import (
	"testing"

	"codeberg.org/openshelf/server/internal/catalog"
)

func TestDescribe(t *testing.T) {
	book := catalog.Book{
		Title:            "The Pragmatic Programmer",
		Authors:          []string{"Andrew Hunt", "David Thomas"},
		FirstPublishYear: catalog.PublishYear{Year: 1999, Known: true},
		Subject:          "software_engineering",
	}

	want := "This is a book about software_engineering. First Published in 1999. " +
		"Book titled 'The Pragmatic Programmer' by Andrew Hunt, David Thomas."

	if got := Describe(book); got != want {
		t.Errorf("Describe() = %q, want %q", got, want)
	}

	// identical input must produce identical text across calls, otherwise
	// stored vectors and re-ingested vectors drift apart
	if Describe(book) != Describe(book) {
		t.Error("Describe is not deterministic")
	}
}

func TestDescribeUnknownFields(t *testing.T) {
	book := catalog.Book{
		Title:            "Untitled",
		Authors:          []string{"Unknown Author"},
		FirstPublishYear: catalog.PublishYear{},
		Subject:          "web_development",
	}

	want := "This is a book about web_development. First Published in Unknown. " +
		"Book titled 'Untitled' by Unknown Author."

	if got := Describe(book); got != want {
		t.Errorf("Describe() = %q, want %q", got, want)
	}
}
