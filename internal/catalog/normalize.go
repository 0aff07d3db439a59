package catalog

// converts a raw catalog work into a Book, substituting sentinels for
// missing fields. Catalog data is noisy: any of title, authors, or year
// may be absent, and callers must still get a complete record.
func normalizeWork(w work, category string) Book {
	title := w.Title
	if title == "" {
		title = UnknownTitle
	}

	authors := make([]string, 0, len(w.Authors))

	for _, author := range w.Authors {
		name := author.Name
		if name == "" {
			name = UnknownAuthor
		}

		authors = append(authors, name)
	}

	if len(authors) == 0 {
		authors = []string{UnknownAuthor}
	}

	year := PublishYear{}
	if w.FirstPublishYear != nil {
		year = PublishYear{Year: *w.FirstPublishYear, Known: true}
	}

	return Book{
		Title:            title,
		Authors:          authors,
		FirstPublishYear: year,
		Subject:          category,
	}
}
