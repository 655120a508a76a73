package services

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shubham2799/BlogApp/internal/models"
)

// Sanitizer strips unsafe markup from user-supplied content. It must be
// deterministic and idempotent; bluemonday's UGC policy satisfies it.
type Sanitizer interface {
	Sanitize(raw string) string
}

// BlogInput is the validated form payload for creating or updating a post.
// Author is honored only on update and only when non-empty: the routes
// always leave it blank so the author is re-stamped from the session
// identity, but the model permits an explicit ownership transfer.
type BlogInput struct {
	Title    string
	Body     string
	ImageURL string
	Author   string
}

// BlogServiceProvider defines the interface for blog services.
type BlogServiceProvider interface {
	GetAllBlogs() ([]models.Blog, error)
	GetBlogByID(id string) (models.Blog, error)
	CreateBlog(author string, input BlogInput) (models.Blog, error)
	UpdateBlog(id, author string, input BlogInput) (models.Blog, error)
	DeleteBlog(id, author string) error
}

// BlogService provides business logic for blog posts.
type BlogService struct {
	db        *sql.DB
	sanitizer Sanitizer
}

// NewBlogService creates a new BlogService.
func NewBlogService(db *sql.DB, sanitizer Sanitizer) *BlogService {
	return &BlogService{db: db, sanitizer: sanitizer}
}

// GetAllBlogs retrieves every post, newest first.
func (s *BlogService) GetAllBlogs() ([]models.Blog, error) {
	rows, err := s.db.Query("SELECT id, title, body, image_url, author, created_at FROM blogs ORDER BY created_at DESC, id")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStoreFailure, err)
	}
	defer rows.Close()

	var blogs []models.Blog
	for rows.Next() {
		var b models.Blog
		if err := rows.Scan(&b.ID, &b.Title, &b.Body, &b.ImageURL, &b.Author, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: %v", models.ErrStoreFailure, err)
		}
		blogs = append(blogs, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStoreFailure, err)
	}
	return blogs, nil
}

// GetBlogByID retrieves a single post.
func (s *BlogService) GetBlogByID(id string) (models.Blog, error) {
	var b models.Blog
	row := s.db.QueryRow("SELECT id, title, body, image_url, author, created_at FROM blogs WHERE id = ?", id)
	err := row.Scan(&b.ID, &b.Title, &b.Body, &b.ImageURL, &b.Author, &b.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Blog{}, models.ErrNotFound
		}
		return models.Blog{}, fmt.Errorf("%w: %v", models.ErrStoreFailure, err)
	}
	return b, nil
}

// CreateBlog persists a new post. The body passes through the sanitizer;
// the author is stamped from the caller's session identity, never from the
// form.
func (s *BlogService) CreateBlog(author string, input BlogInput) (models.Blog, error) {
	blog := models.Blog{
		ID:        uuid.New().String(),
		Title:     input.Title,
		Body:      s.sanitizer.Sanitize(input.Body),
		ImageURL:  input.ImageURL,
		Author:    author,
		CreatedAt: time.Now().UTC(),
	}

	stmt, err := s.db.Prepare("INSERT INTO blogs(id, title, body, image_url, author, created_at) VALUES(?, ?, ?, ?, ?, ?)")
	if err != nil {
		return models.Blog{}, fmt.Errorf("%w: %v", models.ErrStoreFailure, err)
	}
	defer stmt.Close()

	if _, err := stmt.Exec(blog.ID, blog.Title, blog.Body, blog.ImageURL, blog.Author, blog.CreatedAt); err != nil {
		return models.Blog{}, fmt.Errorf("%w: %v", models.ErrStoreFailure, err)
	}
	return blog, nil
}

// UpdateBlog overwrites a post's fields. The write is conditional on the
// current author still matching the requester, which narrows the window
// between the ownership check and the write; a racing ownership change
// surfaces as ErrNotFound. The stored author becomes input.Author when set
// (an explicit transfer, checked only against the pre-update author),
// otherwise the requester's own username.
func (s *BlogService) UpdateBlog(id, author string, input BlogInput) (models.Blog, error) {
	newAuthor := input.Author
	if newAuthor == "" {
		newAuthor = author
	}
	res, err := s.db.Exec(
		"UPDATE blogs SET title = ?, body = ?, image_url = ?, author = ? WHERE id = ? AND author = ?",
		input.Title, s.sanitizer.Sanitize(input.Body), input.ImageURL, newAuthor, id, author,
	)
	if err != nil {
		return models.Blog{}, fmt.Errorf("%w: %v", models.ErrStoreFailure, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return models.Blog{}, fmt.Errorf("%w: %v", models.ErrStoreFailure, err)
	}
	if affected == 0 {
		return models.Blog{}, models.ErrNotFound
	}
	return s.GetBlogByID(id)
}

// DeleteBlog removes a post, conditional on ownership like UpdateBlog.
// Deleting an already-deleted id reports ErrNotFound.
func (s *BlogService) DeleteBlog(id, author string) error {
	res, err := s.db.Exec("DELETE FROM blogs WHERE id = ? AND author = ?", id, author)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrStoreFailure, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrStoreFailure, err)
	}
	if affected == 0 {
		return models.ErrNotFound
	}
	return nil
}
