package service

import (
	"errors"
	"sort"
	"strings"

	"github.com/ngektech/patangenotes.in/internal/db"
	"gorm.io/gorm"
)

var (
	ErrPostNotFound    = errors.New("post not found")
	ErrDraftIncomplete = errors.New("title, excerpt and content are required")
	ErrUnknownCategory = errors.New("category is not in the allowed set")
)

// Categories a post may carry. The set is fixed; it is not extended by
// writes, only the subset in use changes.
var postCategories = []string{
	"Artificial Intelligence",
	"Geopolitics",
	"Security",
	"Healthcare",
	"Public Policy",
	"Technology",
	"Blockchain",
	"Meditation",
	"Research",
	"Programming",
}

// PostService wraps post related database operations.
type PostService struct {
	db            *gorm.DB
	defaultAuthor string
}

// PostFilter describes filters for listing posts. All fields are optional
// and combine with AND semantics.
type PostFilter struct {
	Category string
	Tag      string
	Search   string
	Featured *bool
	Limit    int
	Skip     int
}

// PostListResult aggregates the capped page and the uncapped match count.
type PostListResult struct {
	Posts []db.Post
	Total int64
}

// PostInput represents fields accepted when creating or updating a post.
// Updates are a full replace of these fields; there is no partial merge.
type PostInput struct {
	Title         string
	Excerpt       string
	Content       string
	Category      string
	Tags          []string
	FeaturedImage string
	Sources       []string
	IsFeatured    bool
	Author        string
}

// NewPostService creates a PostService instance.
func NewPostService(gdb *gorm.DB, defaultAuthor string) *PostService {
	return &PostService{db: gdb, defaultAuthor: defaultAuthor}
}

// AllowedCategories returns the fixed category universe.
func AllowedCategories() []string {
	out := make([]string, len(postCategories))
	copy(out, postCategories)
	return out
}

func validCategory(category string) bool {
	for _, c := range postCategories {
		if c == category {
			return true
		}
	}
	return false
}

func validateInput(input PostInput) error {
	if strings.TrimSpace(input.Title) == "" ||
		strings.TrimSpace(input.Excerpt) == "" ||
		strings.TrimSpace(input.Content) == "" {
		return ErrDraftIncomplete
	}
	if !validCategory(input.Category) {
		return ErrUnknownCategory
	}
	return nil
}

// Create validates the draft and persists it. The post is publicly visible
// as soon as the insert commits; there is no draft staging.
func (s *PostService) Create(input PostInput) (*db.Post, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	author := s.defaultAuthor
	if author == "" {
		author = strings.TrimSpace(input.Author)
	}

	post := db.Post{
		Title:         input.Title,
		Excerpt:       input.Excerpt,
		Content:       input.Content,
		Category:      input.Category,
		Tags:          normalizeList(input.Tags),
		FeaturedImage: input.FeaturedImage,
		Sources:       normalizeList(input.Sources),
		IsFeatured:    input.IsFeatured,
		ReadingTime:   calculateReadingTime(input.Content),
		Author:        author,
	}

	if err := s.db.Create(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// Update replaces the editable fields of an existing post. Id, author and
// created_at survive; reading time is recomputed from the new content.
func (s *PostService) Update(id string, input PostInput) (*db.Post, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	var existing db.Post
	if err := s.db.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	existing.Title = input.Title
	existing.Excerpt = input.Excerpt
	existing.Content = input.Content
	existing.Category = input.Category
	existing.Tags = normalizeList(input.Tags)
	existing.FeaturedImage = input.FeaturedImage
	existing.Sources = normalizeList(input.Sources)
	existing.IsFeatured = input.IsFeatured
	existing.ReadingTime = calculateReadingTime(input.Content)

	if err := s.db.Save(&existing).Error; err != nil {
		return nil, err
	}
	return &existing, nil
}

// Delete removes a post by id. Deleting an absent id reports not found,
// so a retried delete of the same post fails the second time.
func (s *PostService) Delete(id string) error {
	res := s.db.Where("id = ?", id).Delete(&db.Post{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrPostNotFound
	}
	return nil
}

// Get fetches a post by id.
func (s *PostService) Get(id string) (*db.Post, error) {
	var post db.Post
	if err := s.db.First(&post, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// List returns posts matching the filter, newest first. Category, featured
// state and the search term are pushed into SQL; tag membership is checked
// in memory because tags live as JSON text and a LIKE over that text would
// also match substrings of other tags. Skip and Limit apply to the final
// filtered sequence; Total counts matches before the window is cut.
func (s *PostService) List(filter PostFilter) (*PostListResult, error) {
	query := s.db.Model(&db.Post{}).Order("created_at desc, id desc")

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Featured != nil {
		query = query.Where("is_featured = ?", *filter.Featured)
	}
	if filter.Search != "" {
		search := "%" + filter.Search + "%"
		query = query.Where("(title LIKE ? OR excerpt LIKE ? OR content LIKE ?)", search, search, search)
	}

	var posts []db.Post
	if err := query.Find(&posts).Error; err != nil {
		return nil, err
	}

	if filter.Tag != "" {
		filtered := posts[:0]
		for _, post := range posts {
			if containsTag(post.Tags, filter.Tag) {
				filtered = append(filtered, post)
			}
		}
		posts = filtered
	}

	result := &PostListResult{Total: int64(len(posts))}

	if filter.Skip > 0 {
		if filter.Skip >= len(posts) {
			posts = nil
		} else {
			posts = posts[filter.Skip:]
		}
	}
	if filter.Limit > 0 && filter.Limit < len(posts) {
		posts = posts[:filter.Limit]
	}

	if posts == nil {
		posts = []db.Post{}
	}
	result.Posts = posts
	return result, nil
}

// ListAll returns every post ordered by created time descending.
func (s *PostService) ListAll() ([]db.Post, error) {
	posts := []db.Post{}
	if err := s.db.Order("created_at desc, id desc").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// Count returns the number of stored posts.
func (s *PostService) Count() (int64, error) {
	var count int64
	if err := s.db.Model(&db.Post{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Categories projects the distinct category values currently in use,
// sorted ascending. Recomputed on every call so it can never go stale.
func (s *PostService) Categories() ([]string, error) {
	categories := []string{}
	if err := s.db.Model(&db.Post{}).
		Distinct("category").
		Order("category asc").
		Pluck("category", &categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// TagNames projects the distinct tag values across all posts' tag sets,
// sorted ascending.
func (s *PostService) TagNames() ([]string, error) {
	var posts []db.Post
	if err := s.db.Select("tags").Find(&posts).Error; err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	for _, post := range posts {
		for _, tag := range post.Tags {
			seen[tag] = struct{}{}
		}
	}

	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags, nil
}

func containsTag(tags []string, want string) bool {
	for _, tag := range tags {
		if tag == want {
			return true
		}
	}
	return false
}

func normalizeList(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

// calculateReadingTime estimates minutes at roughly 200 words per minute,
// with a floor of one minute for any non-empty content.
func calculateReadingTime(content string) int {
	words := len(strings.Fields(content))
	minutes := words / 200
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}
