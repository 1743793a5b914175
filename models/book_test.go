package models_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wordingo/backend/apperr"
	"github.com/wordingo/backend/models"
)

func validBook() models.Book {
	return models.Book{
		Title:       "The Midnight Library",
		Author:      "Matt Haig",
		Description: "Between life and death there is a library.",
		Category:    "Fiction",
		PublishYear: 2020,
		Price:       "499",
	}
}

func Test_Book_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		b := validBook()
		assert.NoError(t, b.Validate())
	})

	t.Run("missing_required_fields", func(t *testing.T) {
		b := models.Book{}
		err := b.Validate()
		require.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

		fields := map[string]bool{}
		for _, f := range apperr.FieldsOf(err) {
			fields[f.Field] = true
		}
		for _, want := range []string{"title", "author", "description", "category", "publishYear", "price"} {
			assert.True(t, fields[want], "expected a field error for %q", want)
		}
	})

	t.Run("title_too_long", func(t *testing.T) {
		b := validBook()
		b.Title = strings.Repeat("a", 201)
		assert.Error(t, b.Validate())
	})

	t.Run("future_publish_year", func(t *testing.T) {
		b := validBook()
		b.PublishYear = time.Now().Year() + 1
		assert.Error(t, b.Validate())
	})

	t.Run("buy_link_needs_name_and_url", func(t *testing.T) {
		b := validBook()
		b.BuyLinks = []models.BuyLink{{Name: "Amazon"}}
		assert.Error(t, b.Validate())
		b.BuyLinks = []models.BuyLink{{Name: "Amazon", URL: "https://amazon.example/book"}}
		assert.NoError(t, b.Validate())
	})
}

func Test_Author_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		a := models.Author{Name: "Matt Haig", Genres: []string{"Fiction", "Other"}}
		assert.NoError(t, a.Validate())
	})

	t.Run("name_required", func(t *testing.T) {
		a := models.Author{}
		assert.Error(t, a.Validate())
	})

	t.Run("unknown_genre_rejected", func(t *testing.T) {
		a := models.Author{Name: "Matt Haig", Genres: []string{"Cooking"}}
		assert.Error(t, a.Validate())
	})

	t.Run("website_must_be_http_url", func(t *testing.T) {
		a := models.Author{Name: "Matt Haig", Website: "not-a-url"}
		assert.Error(t, a.Validate())
		a.Website = "https://matthaig.example"
		assert.NoError(t, a.Validate())
	})
}
