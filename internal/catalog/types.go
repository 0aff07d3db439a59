package catalog

import (
	"encoding/json"
	"fmt"
)

// sentinel values for fields the catalog may omit
const (
	UnknownTitle  = "Untitled"
	UnknownAuthor = "Unknown Author"
	unknownYear   = "Unknown"
)

// FetchError wraps a failed catalog fetch for one category. A non-success
// HTTP status or malformed payload fails the whole category.
type FetchError struct {
	Category   string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("catalog fetch for %q: status %d: %v", e.Category, e.StatusCode, e.Err)
	}

	return fmt.Sprintf("catalog fetch for %q: %v", e.Category, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// PublishYear is a year that the catalog may not know. It serializes as an
// integer when known and as the string "Unknown" otherwise, matching the
// shape stored in item_data.
type PublishYear struct {
	Year  int
	Known bool
}

func (y PublishYear) String() string {
	if !y.Known {
		return unknownYear
	}

	return fmt.Sprintf("%d", y.Year)
}

func (y PublishYear) MarshalJSON() ([]byte, error) {
	if !y.Known {
		return json.Marshal(unknownYear)
	}

	return json.Marshal(y.Year)
}

func (y *PublishYear) UnmarshalJSON(data []byte) error {
	var year int
	if err := json.Unmarshal(data, &year); err == nil {
		y.Year = year
		y.Known = true

		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("publish year is neither integer nor string: %s", string(data))
	}

	y.Known = false

	return nil
}

// Book is a normalized catalog record. Missing fields are replaced with
// explicit sentinels during normalization, never left empty.
type Book struct {
	Title            string      `json:"title"`
	Authors          []string    `json:"authors"`
	FirstPublishYear PublishYear `json:"first_publish_year"`
	Subject          string      `json:"subject"`
}

// raw wire shapes for the Open Library subjects API

type subjectResponse struct {
	Works []work `json:"works"`
}

type work struct {
	Title            string       `json:"title"`
	Authors          []workAuthor `json:"authors"`
	FirstPublishYear *int         `json:"first_publish_year"`
}

type workAuthor struct {
	Name string `json:"name"`
}
