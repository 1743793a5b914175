package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wordingo/backend/utils"
)

func Test_Slugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain_name", in: "Chetan Bhagat", want: "chetan-bhagat"},
		{name: "punctuation_stripped", in: "J.K. Rowling!!", want: "jk-rowling"},
		{name: "multiple_spaces_collapse", in: "  Multiple   Spaces  ", want: "multiple-spaces"},
		{name: "underscores_become_hyphens", in: "some_author_name", want: "some-author-name"},
		{name: "mixed_separators", in: "a - b _ c", want: "a-b-c"},
		{name: "leading_trailing_hyphens_trimmed", in: "--edge--", want: "edge"},
		{name: "already_slugged", in: "plain-slug", want: "plain-slug"},
		{name: "empty_input", in: "", want: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, utils.Slugify(tc.in))
		})
	}
}
