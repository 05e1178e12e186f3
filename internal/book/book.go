package book

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned when no book has the requested identifier.
	ErrNotFound = errors.New("book not found")
	// ErrStore marks any failure reaching or using the backing persistence.
	ErrStore = errors.New("book store failure")
	// ErrDuplicateID is joined with ErrStore when an identifier is already taken.
	ErrDuplicateID = errors.New("book id already exists")
)

// Book is the persisted book document.
type Book struct {
	ID            string   `json:"_id"`
	Title         string   `json:"title"`
	Authors       []string `json:"authors"`
	Publisher     string   `json:"publisher"`
	Description   *string  `json:"description"`
	Owner         *string  `json:"owner"`
	CreatedAt     int64    `json:"createdAt"`
	LastUpdatedAt int64    `json:"lastUpdatedAt"`
}

// OwnedBy reports whether username is the recorded owner. A book with no
// owner is owned by nobody.
func (b Book) OwnedBy(username string) bool {
	return b.Owner != nil && username != "" && *b.Owner == username
}

// Input is the whitelisted payload accepted when creating a book.
type Input struct {
	Title       string   `json:"title"`
	Authors     []string `json:"authors"`
	Publisher   string   `json:"publisher"`
	Description *string  `json:"description,omitempty"`
}

// Patch is the set of fields an update may change. Nil fields are left as
// they are; identifier, owner and timestamps cannot be expressed.
type Patch struct {
	Title       *string   `json:"title,omitempty"`
	Authors     *[]string `json:"authors,omitempty"`
	Publisher   *string   `json:"publisher,omitempty"`
	Description *string   `json:"description,omitempty"`
}

var (
	errBlankTitle     = errors.New("title must not be blank")
	errBlankPublisher = errors.New("publisher must not be blank")
	errNoAuthors      = errors.New("authors must not be empty")
	errBlankAuthor    = errors.New("authors must not contain blank names")
)

// Validate checks the fields that are present.
func (p Patch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return errBlankTitle
	}
	if p.Publisher != nil && strings.TrimSpace(*p.Publisher) == "" {
		return errBlankPublisher
	}
	if p.Authors != nil {
		if len(*p.Authors) == 0 {
			return errNoAuthors
		}
		for _, a := range *p.Authors {
			if strings.TrimSpace(a) == "" {
				return errBlankAuthor
			}
		}
	}
	return nil
}

// IsEmpty reports whether the patch changes no field.
func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.Authors == nil && p.Publisher == nil && p.Description == nil
}

// Apply returns b with every present field of p copied over.
func (p Patch) Apply(b Book) Book {
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.Authors != nil {
		b.Authors = append([]string(nil), (*p.Authors)...)
	}
	if p.Publisher != nil {
		b.Publisher = *p.Publisher
	}
	if p.Description != nil {
		d := *p.Description
		b.Description = &d
	}
	return b
}

// Filter selects books by exact field match. The zero Filter matches all.
type Filter struct {
	ID    string
	Owner string
}
