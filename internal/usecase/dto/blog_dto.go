package dto

import (
	"time"

	"github.com/tour-microservice/internal/domain"
)

// PostRequest - создание или редактирование записи блога
type PostRequest struct {
	Title       string     `json:"titulo" validate:"required,max=200"`
	Slug        string     `json:"slug,omitempty" validate:"omitempty,max=220"`
	Excerpt     string     `json:"extracto" validate:"max=500"`
	Content     string     `json:"contenido" validate:"required"`
	ImageURL    *string    `json:"imagen_url,omitempty" validate:"omitempty,url"`
	Author      string     `json:"autor" validate:"max=120"`
	Published   bool       `json:"publicado"`
	PublishedAt *time.Time `json:"fecha_publicacion,omitempty"`
	// Tags - названия меток; идентичность метки определяется её slug
	Tags []string `json:"tags" validate:"max=20,dive,required,max=80"`
}

// CommentRequest - комментарий посетителя
type CommentRequest struct {
	Name    string `json:"nombre" validate:"required,max=120"`
	Email   string `json:"email" validate:"required,email,max=200"`
	Content string `json:"contenido" validate:"required,max=2000"`
}

// PostDetail - запись с одобренными комментариями
type PostDetail struct {
	domain.Post
	Comments []domain.Comment `json:"comentarios"`
}
