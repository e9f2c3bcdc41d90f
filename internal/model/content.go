package model

import "time"

// Article is a news/blog post with an optional cover image.
type Article struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Summary    string    `json:"summary"`
	Category   string    `json:"category"`
	Tags       []string  `json:"tags"`
	CoverImage *Asset    `json:"coverImage"`
	AuthorID   string    `json:"authorId,omitempty"`
	AuthorName string    `json:"authorName,omitempty"`
	Likes      []string  `json:"likes"`
	LikesCount int       `json:"likesCount"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// HasLike reports whether userID is among the article's likers.
func (a *Article) HasLike(userID string) bool {
	for _, id := range a.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// Banner is a gallery/carousel item.
type Banner struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Subtitle  string    `json:"subtitle"`
	Link      string    `json:"link"`
	Position  int       `json:"position"`
	Active    bool      `json:"active"`
	Image     *Asset    `json:"image"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Section is one titled block of a biography.
type Section struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

// Biography is a biography entry made of free text plus ordered sections.
type Biography struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Sections  []Section `json:"sections"`
	Image     *Asset    `json:"image"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Publication is a published work distributed as a PDF.
type Publication struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Authors     []string   `json:"authors"`
	PublishedAt *time.Time `json:"publishedAt"`
	PDF         *Asset     `json:"pdf"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Comment is a reader comment on an article.
type Comment struct {
	ID        string    `json:"id"`
	ArticleID string    `json:"articleId"`
	UserID    string    `json:"userId,omitempty"`
	UserName  string    `json:"userName"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
