package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/tour-microservice/internal/domain"
	"github.com/tour-microservice/internal/domain/repository"
	"github.com/tour-microservice/internal/pkg/errors"
	"github.com/tour-microservice/internal/pkg/reconcile"
)

const postColumns = `id, titulo, slug, extracto, contenido, imagen_url, autor,
	publicado, fecha_publicacion, created_at, updated_at`

type blogRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewBlogRepository создает новый экземпляр BlogRepository
func NewBlogRepository(db *DB) repository.BlogRepository {
	return &blogRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *blogRepository) ListPosts(ctx context.Context, filter domain.PostFilter) ([]domain.Post, int, error) {
	var (
		conditions []string
		args       []interface{}
	)

	if filter.PublishedOnly {
		conditions = append(conditions, "p.publicado = TRUE")
	}
	if filter.Search != "" {
		args = append(args, likePattern(filter.Search))
		conditions = append(conditions, fmt.Sprintf("(p.titulo ILIKE $%d OR p.extracto ILIKE $%d)", len(args), len(args)))
	}
	if filter.TagSlug != "" {
		args = append(args, filter.TagSlug)
		conditions = append(conditions, fmt.Sprintf(`EXISTS (
			SELECT 1 FROM blog_post_tags pt JOIN blog_tags t ON t.id = pt.tag_id
			WHERE pt.post_id = p.id AND t.slug = $%d)`, len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM blog_posts p"+where, args...); err != nil {
		r.logger.Error("Failed to count posts", zap.Error(err))
		return nil, 0, mapError(err)
	}

	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`
		SELECT %s FROM blog_posts p%s
		ORDER BY p.fecha_publicacion DESC NULLS LAST, p.id DESC
		LIMIT $%d OFFSET $%d
	`, prefixed("p", postColumns), where, len(args)+1, len(args)+2)

	var posts []domain.Post
	if err := r.db.SelectContext(ctx, &posts, query, append(args, normalizeLimit(filter.Limit), offset)...); err != nil {
		r.logger.Error("Failed to list posts", zap.Error(err))
		return nil, 0, mapError(err)
	}

	if err := r.attachTags(ctx, posts); err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

func (r *blogRepository) GetPostBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	return r.getPost(ctx, "slug = $1", slug)
}

func (r *blogRepository) GetPostByID(ctx context.Context, id int64) (*domain.Post, error) {
	return r.getPost(ctx, "id = $1", id)
}

func (r *blogRepository) getPost(ctx context.Context, cond string, arg interface{}) (*domain.Post, error) {
	var post domain.Post
	err := r.db.GetContext(ctx, &post, "SELECT "+postColumns+" FROM blog_posts WHERE "+cond, arg)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.ErrPostNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get post", zap.Any("key", arg), zap.Error(err))
		return nil, mapError(err)
	}

	posts := []domain.Post{post}
	if err := r.attachTags(ctx, posts); err != nil {
		return nil, err
	}

	return &posts[0], nil
}

// attachTags загружает метки для всех записей одним запросом
func (r *blogRepository) attachTags(ctx context.Context, posts []domain.Post) error {
	if len(posts) == 0 {
		return nil
	}

	ids := make([]int64, len(posts))
	index := make(map[int64]int, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
		index[p.ID] = i
		posts[i].Tags = []domain.Tag{}
	}

	var rows []struct {
		PostID int64 `db:"post_id"`
		domain.Tag
	}
	query := `
		SELECT pt.post_id, t.id, t.nombre, t.slug
		FROM blog_post_tags pt
		JOIN blog_tags t ON t.id = pt.tag_id
		WHERE pt.post_id = ANY($1)
		ORDER BY t.nombre
	`
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(ids)); err != nil {
		r.logger.Error("Failed to load post tags", zap.Error(err))
		return mapError(err)
	}

	for _, row := range rows {
		i := index[row.PostID]
		posts[i].Tags = append(posts[i].Tags, row.Tag)
	}

	return nil
}

// CreatePost сохраняет запись, метки и связи в одной транзакции
func (r *blogRepository) CreatePost(ctx context.Context, post *domain.Post) (int64, error) {
	var id int64
	err := r.withTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO blog_posts (titulo, slug, extracto, contenido, imagen_url, autor, publicado, fecha_publicacion)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id
		`
		if err := tx.QueryRowContext(ctx, query,
			post.Title, post.Slug, post.Excerpt, post.Content, post.ImageURL,
			post.Author, post.Published, post.PublishedAt,
		).Scan(&id); err != nil {
			return mapError(err)
		}

		tagIDs, err := upsertTags(ctx, tx, post.Tags)
		if err != nil {
			return err
		}

		return linkTags(ctx, tx, id, tagIDs)
	})
	if err != nil {
		return 0, err
	}

	return id, nil
}

// UpdatePost обновляет запись и сверяет связи с метками по diff
func (r *blogRepository) UpdatePost(ctx context.Context, post *domain.Post) error {
	return r.withTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			UPDATE blog_posts SET
				titulo = $2, slug = $3, extracto = $4, contenido = $5, imagen_url = $6,
				autor = $7, publicado = $8, fecha_publicacion = $9, updated_at = NOW()
			WHERE id = $1
		`
		res, err := tx.ExecContext(ctx, query,
			post.ID, post.Title, post.Slug, post.Excerpt, post.Content, post.ImageURL,
			post.Author, post.Published, post.PublishedAt,
		)
		if err != nil {
			return mapError(err)
		}
		if err := requireAffected(res, errors.ErrPostNotFound); err != nil {
			return err
		}

		tagIDs, err := upsertTags(ctx, tx, post.Tags)
		if err != nil {
			return err
		}

		var existing []int64
		if err := tx.SelectContext(ctx, &existing,
			`SELECT tag_id FROM blog_post_tags WHERE post_id = $1`, post.ID); err != nil {
			return mapError(err)
		}

		plan := reconcile.Diff(existing, tagIDs,
			func(id int64) (int64, bool) { return id, true },
			func(_, _ int64) bool { return true },
		)

		if len(plan.Delete) > 0 {
			if _, err := tx.ExecContext(ctx,
				`DELETE FROM blog_post_tags WHERE post_id = $1 AND tag_id = ANY($2)`,
				post.ID, pq.Array(plan.Delete)); err != nil {
				return mapError(err)
			}
		}

		return linkTags(ctx, tx, post.ID, plan.Insert)
	})
}

func (r *blogRepository) DeletePost(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM blog_posts WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete post", zap.Int64("id", id), zap.Error(err))
		return mapError(err)
	}
	return requireAffected(res, errors.ErrPostNotFound)
}

func (r *blogRepository) PostSlugTaken(ctx context.Context, slug string, excludeID int64) (bool, error) {
	var taken bool
	err := r.db.GetContext(ctx, &taken,
		`SELECT EXISTS(SELECT 1 FROM blog_posts WHERE slug = $1 AND id <> $2)`, slug, excludeID)
	if err != nil {
		return false, mapError(err)
	}
	return taken, nil
}

func (r *blogRepository) ListTags(ctx context.Context) ([]domain.Tag, error) {
	var tags []domain.Tag
	if err := r.db.SelectContext(ctx, &tags, `SELECT id, nombre, slug FROM blog_tags ORDER BY nombre`); err != nil {
		r.logger.Error("Failed to list tags", zap.Error(err))
		return nil, mapError(err)
	}
	return tags, nil
}

func (r *blogRepository) AddComment(ctx context.Context, c *domain.Comment) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO blog_comentarios (post_id, nombre, email, contenido, aprobado)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		c.PostID, c.Name, c.Email, c.Content, c.Approved,
	).Scan(&id)
	if err != nil {
		r.logger.Error("Failed to add comment", zap.Int64("post_id", c.PostID), zap.Error(err))
		return 0, mapError(err)
	}
	return id, nil
}

func (r *blogRepository) ListComments(ctx context.Context, postID int64, approvedOnly bool) ([]domain.Comment, error) {
	query := `SELECT id, post_id, nombre, email, contenido, aprobado, created_at
		FROM blog_comentarios WHERE post_id = $1`
	if approvedOnly {
		query += " AND aprobado = TRUE"
	}
	query += " ORDER BY created_at"

	var comments []domain.Comment
	if err := r.db.SelectContext(ctx, &comments, query, postID); err != nil {
		r.logger.Error("Failed to list comments", zap.Int64("post_id", postID), zap.Error(err))
		return nil, mapError(err)
	}
	return comments, nil
}

func (r *blogRepository) ApproveComment(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `UPDATE blog_comentarios SET aprobado = TRUE WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	return requireAffected(res, errors.ErrNotFound)
}

func (r *blogRepository) DeleteComment(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM blog_comentarios WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	return requireAffected(res, errors.ErrNotFound)
}

func (r *blogRepository) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.ErrDatabaseError.Wrap(err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			r.logger.Error("Failed to rollback transaction", zap.Error(rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return mapError(err)
	}
	return nil
}

// upsertTags создаёт недостающие метки (идентичность по slug) и возвращает их id
// в порядке входа без повторов
func upsertTags(ctx context.Context, tx *sqlx.Tx, tags []domain.Tag) ([]int64, error) {
	ids := make([]int64, 0, len(tags))
	seen := make(map[int64]struct{}, len(tags))

	for _, tag := range tags {
		var id int64
		err := tx.QueryRowContext(ctx,
			`INSERT INTO blog_tags (nombre, slug) VALUES ($1, $2)
			ON CONFLICT (slug) DO UPDATE SET nombre = EXCLUDED.nombre
			RETURNING id`,
			tag.Name, tag.Slug,
		).Scan(&id)
		if err != nil {
			return nil, mapError(err)
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	return ids, nil
}

func linkTags(ctx context.Context, tx *sqlx.Tx, postID int64, tagIDs []int64) error {
	for _, tagID := range tagIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO blog_post_tags (post_id, tag_id) VALUES ($1, $2)`, postID, tagID); err != nil {
			return mapError(err)
		}
	}
	return nil
}
