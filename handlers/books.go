package handlers

import (
	"net/http"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/wordingo/backend/apperr"
	"github.com/wordingo/backend/middleware"
	"github.com/wordingo/backend/models"
	"github.com/wordingo/backend/service"
	"github.com/wordingo/backend/store"
)

type BooksHandler struct {
	DB      *store.DB
	Ratings *service.RatingMaintainer
}

// List returns approved books with search, category filter and
// sorting. GET /api/books
func (h *BooksHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit, skip := pageParams(r, 12)
	q := r.URL.Query()
	books, total, err := h.DB.ListBooks(r.Context(), store.BookFilter{
		Search:       q.Get("search"),
		Category:     q.Get("category"),
		SortBy:       q.Get("sortBy"),
		ApprovedOnly: true,
		Skip:         skip,
		Limit:        int64(limit),
	})
	if err != nil {
		respondError(w, err)
		return
	}
	if err := attachBookRefs(r.Context(), h.DB, books); err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]any{
		"books":      books,
		"pagination": paginate(page, limit, total),
	})
}

// Get returns one approved book with its latest reviews.
// GET /api/books/{id}
func (h *BooksHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	book, err := h.DB.BookByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	if !book.IsApproved {
		respondError(w, apperr.NotFound("Book not available"))
		return
	}
	books := []models.Book{*book}
	if err := attachBookRefs(r.Context(), h.DB, books); err != nil {
		respondError(w, err)
		return
	}
	reviews, _, err := h.DB.ListReviewsForBook(r.Context(), book.ID, store.ReviewSortNewest, 0, 10)
	if err != nil {
		respondError(w, err)
		return
	}
	if err := attachReviewUsers(r.Context(), h.DB, reviews); err != nil {
		respondError(w, err)
		return
	}
	views := make([]models.ReviewView, len(reviews))
	for i := range reviews {
		views[i] = reviews[i].View()
	}
	respondData(w, http.StatusOK, map[string]any{
		"book":    books[0],
		"reviews": views,
	})
}

// Categories lists the distinct categories of approved books.
// GET /api/books/categories
func (h *BooksHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.DB.BookCategoriesInUse(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]any{"categories": categories})
}

// Trending lists the most-reviewed approved books.
// GET /api/books/trending
func (h *BooksHandler) Trending(w http.ResponseWriter, r *http.Request) {
	limit := int64(10)
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = int64(v)
	}
	books, err := h.DB.TrendingBooks(r.Context(), limit)
	if err != nil {
		respondError(w, err)
		return
	}
	if err := attachBookRefs(r.Context(), h.DB, books); err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]any{"books": books})
}

type bookRequest struct {
	Title       string           `json:"title"`
	Author      string           `json:"author"`
	Description string           `json:"description"`
	Category    string           `json:"category"`
	PublishYear int              `json:"publishYear"`
	ISBN        string           `json:"isbn"`
	Price       string           `json:"price"`
	Images      []models.Image   `json:"images"`
	BuyLinks    []models.BuyLink `json:"buyLinks"`
	Tags        []string         `json:"tags"`
}

// Create submits a new book for approval. The author name is resolved
// to (or created as) an Author document before the book is written so
// authorId is always populated. POST /api/books
func (h *BooksHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	var req bookRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	book := &models.Book{
		Title:       req.Title,
		Author:      req.Author,
		Description: req.Description,
		Category:    req.Category,
		PublishYear: req.PublishYear,
		ISBN:        req.ISBN,
		Price:       req.Price,
		Images:      req.Images,
		BuyLinks:    req.BuyLinks,
		Tags:        req.Tags,
		AddedBy:     userID,
	}
	if err := book.Validate(); err != nil {
		respondError(w, err)
		return
	}
	authorID, err := h.Ratings.ResolveOrCreateAuthor(r.Context(), book.Author, book.Category)
	if err != nil {
		respondError(w, err)
		return
	}
	book.AuthorID = authorID

	id, err := h.DB.InsertBook(r.Context(), book)
	if err != nil {
		respondError(w, err)
		return
	}
	book.ID = id
	if err := h.Ratings.RecomputeAuthorBookCount(r.Context(), authorID); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusCreated, "Book submitted for review", map[string]any{"book": book})
}

// Update edits an owned book; any edit sends it back for re-approval.
// A changed author name is re-resolved and both authors' book counts
// recomputed. PUT /api/books/{id}
func (h *BooksHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	id, err := objectIDParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	book, err := h.DB.BookByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	if book.AddedBy != userID {
		respondError(w, apperr.Forbidden("Not authorized to update this book"))
		return
	}

	var req bookRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	updated := *book
	updated.Title = req.Title
	updated.Author = req.Author
	updated.Description = req.Description
	updated.Category = req.Category
	updated.PublishYear = req.PublishYear
	updated.ISBN = req.ISBN
	updated.Price = req.Price
	updated.Images = req.Images
	updated.BuyLinks = req.BuyLinks
	updated.Tags = req.Tags
	if err := updated.Validate(); err != nil {
		respondError(w, err)
		return
	}

	oldAuthorID := book.AuthorID
	authorID, err := h.Ratings.ResolveOrCreateAuthor(r.Context(), updated.Author, updated.Category)
	if err != nil {
		respondError(w, err)
		return
	}

	fresh, err := h.DB.UpdateBookFields(r.Context(), id, bson.M{
		"title":       updated.Title,
		"author":      updated.Author,
		"authorId":    authorID,
		"description": updated.Description,
		"category":    updated.Category,
		"publishYear": updated.PublishYear,
		"isbn":        updated.ISBN,
		"price":       updated.Price,
		"images":      updated.Images,
		"buyLinks":    updated.BuyLinks,
		"tags":        updated.Tags,
		"isApproved":  false, // require re-approval after edit
	})
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.Ratings.RecomputeAuthorBookCount(r.Context(), authorID); err != nil {
		respondError(w, err)
		return
	}
	if !oldAuthorID.IsZero() && oldAuthorID != authorID {
		if err := h.Ratings.RecomputeAuthorBookCount(r.Context(), oldAuthorID); err != nil {
			respondError(w, err)
			return
		}
	}
	respondMessage(w, http.StatusOK, "Book updated and sent for re-approval", map[string]any{"book": fresh})
}
