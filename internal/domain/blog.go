package domain

import "time"

// Post - запись блога
type Post struct {
	ID          int64      `json:"id" db:"id"`
	Title       string     `json:"titulo" db:"titulo"`
	Slug        string     `json:"slug" db:"slug"`
	Excerpt     string     `json:"extracto" db:"extracto"`
	Content     string     `json:"contenido" db:"contenido"`
	ImageURL    *string    `json:"imagen_url,omitempty" db:"imagen_url"`
	Author      string     `json:"autor" db:"autor"`
	Published   bool       `json:"publicado" db:"publicado"`
	PublishedAt *time.Time `json:"fecha_publicacion,omitempty" db:"fecha_publicacion"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`

	Tags []Tag `json:"tags" db:"-"`
}

// Tag - метка блога; идентичность определяется slug
type Tag struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"nombre" db:"nombre"`
	Slug string `json:"slug" db:"slug"`
}

// PostTag - строка связи записи и метки
type PostTag struct {
	PostID int64 `db:"post_id"`
	TagID  int64 `db:"tag_id"`
}

// Comment - комментарий к записи, публикуется после модерации
type Comment struct {
	ID        int64     `json:"id" db:"id"`
	PostID    int64     `json:"post_id" db:"post_id"`
	Name      string    `json:"nombre" db:"nombre"`
	Email     string    `json:"email,omitempty" db:"email"`
	Content   string    `json:"contenido" db:"contenido"`
	Approved  bool      `json:"aprobado" db:"aprobado"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// PostFilter - параметры выборки записей
type PostFilter struct {
	TagSlug       string
	Search        string
	PublishedOnly bool
	Limit         int
	Offset        int
}
