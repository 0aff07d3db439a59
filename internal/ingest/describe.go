package ingest

import (
	"fmt"
	"strings"

	"codeberg.org/openshelf/server/internal/catalog"
)

// Describe synthesizes the text that gets embedded for a book. The template
// is deterministic: identical input produces identical text, so re-running
// ingestion yields identical embeddings. Every provider embeds this same
// text; changing it requires re-ingesting so stored vectors and query
// vectors keep matching preprocessing.
func Describe(book catalog.Book) string {
	return fmt.Sprintf(
		"This is a book about %s. First Published in %s. Book titled '%s' by %s.",
		book.Subject,
		book.FirstPublishYear,
		book.Title,
		strings.Join(book.Authors, ", "),
	)
}
