package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestBook_OwnedBy(t *testing.T) {
	assert.True(t, Book{Owner: strPtr("alice")}.OwnedBy("alice"))
	assert.False(t, Book{Owner: strPtr("alice")}.OwnedBy("Alice"))
	assert.False(t, Book{Owner: strPtr("alice")}.OwnedBy("bob"))
	assert.False(t, Book{}.OwnedBy("alice"))
	assert.False(t, Book{}.OwnedBy(""))
	assert.False(t, Book{Owner: strPtr("")}.OwnedBy(""))
}

func TestPatch_Apply(t *testing.T) {
	orig := Book{
		ID:            "b1",
		Title:         "Old",
		Authors:       []string{"A"},
		Publisher:     "P",
		Owner:         strPtr("alice"),
		CreatedAt:     10,
		LastUpdatedAt: 10,
	}

	t.Run("only present fields change", func(t *testing.T) {
		got := Patch{Title: strPtr("New")}.Apply(orig)
		assert.Equal(t, "New", got.Title)
		assert.Equal(t, orig.Authors, got.Authors)
		assert.Equal(t, orig.Publisher, got.Publisher)
		assert.Nil(t, got.Description)
		assert.Equal(t, orig.ID, got.ID)
		assert.Equal(t, orig.Owner, got.Owner)
	})

	t.Run("authors are copied", func(t *testing.T) {
		authors := []string{"X", "Y"}
		got := Patch{Authors: &authors}.Apply(orig)
		authors[0] = "changed"
		assert.Equal(t, []string{"X", "Y"}, got.Authors)
	})

	t.Run("description is set", func(t *testing.T) {
		got := Patch{Description: strPtr("d")}.Apply(orig)
		if assert.NotNil(t, got.Description) {
			assert.Equal(t, "d", *got.Description)
		}
	})

	t.Run("empty patch", func(t *testing.T) {
		assert.True(t, Patch{}.IsEmpty())
		assert.Equal(t, orig, Patch{}.Apply(orig))
	})
}

func TestPatch_Validate(t *testing.T) {
	empty := []string{}
	blank := []string{"A", " "}
	ok := []string{"A"}

	tests := []struct {
		name    string
		patch   Patch
		wantErr error
	}{
		{"empty patch", Patch{}, nil},
		{"valid", Patch{Title: strPtr("T"), Authors: &ok, Publisher: strPtr("P"), Description: strPtr("")}, nil},
		{"blank title", Patch{Title: strPtr("  ")}, errBlankTitle},
		{"blank publisher", Patch{Publisher: strPtr("")}, errBlankPublisher},
		{"no authors", Patch{Authors: &empty}, errNoAuthors},
		{"blank author", Patch{Authors: &blank}, errBlankAuthor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.patch.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
