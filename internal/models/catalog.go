package models

import "time"

// Author is a book author. Books is a many-to-many association because
// anthologies carry several authors.
type Author struct {
	ID    string `gorm:"primaryKey;size:36" json:"id"`
	Name  string `gorm:"not null;size:255" json:"name"`
	Image string `gorm:"size:512" json:"image,omitempty"`
	Bio   string `gorm:"size:2048" json:"bio,omitempty"`

	Books []Book `gorm:"many2many:book_authors;" json:"books,omitempty"`
}

// TableName returns the table name for Author.
func (Author) TableName() string {
	return "authors"
}

// Book is a published work quotes are taken from.
type Book struct {
	ID              string `gorm:"primaryKey;size:36" json:"id"`
	Title           string `gorm:"not null;size:512" json:"title"`
	Sum             string `gorm:"size:2048" json:"sum,omitempty"`
	PublishYear     *int   `json:"publish_year,omitempty"`
	PublishingHouse string `gorm:"size:255" json:"publishing_house,omitempty"`
	PublishingTown  string `gorm:"size:255" json:"publishing_town,omitempty"`
	Edition         string `gorm:"size:64" json:"edition,omitempty"`

	Authors []Author `gorm:"many2many:book_authors;" json:"authors,omitempty"`
	Quotes  []Quote  `gorm:"foreignKey:BookID" json:"quotes,omitempty"`
}

// TableName returns the table name for Book.
func (Book) TableName() string {
	return "books"
}

// Quote is a passage from a book, uploaded by a user and tagged with
// categories. Upvoters is the set of users who upvoted it; UpvoteCount is
// computed for API responses and never persisted.
type Quote struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	Text       string    `gorm:"not null;size:3000" json:"text"`
	BookID     string    `gorm:"index;size:36" json:"book_id"`
	UploaderID string    `gorm:"index;size:36" json:"uploader_id"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`

	Book       *Book      `gorm:"foreignKey:BookID" json:"book,omitempty"`
	Uploader   *User      `gorm:"foreignKey:UploaderID" json:"uploader,omitempty"`
	Categories []Category `gorm:"many2many:quote_categories;" json:"categories,omitempty"`
	Upvoters   []User     `gorm:"many2many:quote_upvotes;" json:"-"`

	UpvoteCount int64 `gorm:"-" json:"upvote_count"`
}

// TableName returns the table name for Quote.
func (Quote) TableName() string {
	return "quotes"
}

// Category is a tag grouping quotes by theme.
type Category struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Tag         string `gorm:"uniqueIndex;not null;size:64" json:"tag"`
	Description string `gorm:"size:1024" json:"description,omitempty"`

	Quotes []Quote `gorm:"many2many:quote_categories;" json:"quotes,omitempty"`
}

// TableName returns the table name for Category.
func (Category) TableName() string {
	return "categories"
}

// AllModels returns every model registered for schema migration.
func AllModels() []any {
	return []any{
		&User{},
		&Author{},
		&Book{},
		&Quote{},
		&Category{},
	}
}
