// AngelaMos | 2026
// repository.go

package artist

import (
	"context"
	"fmt"
	"strings"

	"github.com/tuanvi2605/ProjectWebNangCao/internal/core"
)

const maxSearchResults = 100

type Repository interface {
	List(ctx context.Context, limit, offset int) ([]Artist, error)
	Count(ctx context.Context) (int, error)
	Search(ctx context.Context, terms ...string) ([]Artist, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const artistColumns = `id, name, bio, profile_image, created_at, updated_at`

func (r *repository) List(ctx context.Context, limit, offset int) ([]Artist, error) {
	query := `SELECT ` + artistColumns + `
		FROM artists
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2`

	artists := []Artist{}
	if err := r.db.SelectContext(ctx, &artists, query, limit, offset); err != nil {
		return nil, fmt.Errorf("list artists: %w", err)
	}

	return artists, nil
}

func (r *repository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM artists`); err != nil {
		return 0, fmt.Errorf("count artists: %w", err)
	}
	return total, nil
}

// Search returns artists whose name or bio contains any of terms,
// ignoring case.
func (r *repository) Search(ctx context.Context, terms ...string) ([]Artist, error) {
	if len(terms) == 0 {
		return []Artist{}, nil
	}

	conds := make([]string, 0, len(terms))
	args := make([]any, 0, len(terms)+1)
	for i, term := range terms {
		conds = append(conds, fmt.Sprintf(
			`name ILIKE $%d ESCAPE '\' OR bio ILIKE $%d ESCAPE '\'`, i+1, i+1))
		args = append(args, "%"+escapeLike(term)+"%")
	}
	args = append(args, maxSearchResults)

	query := fmt.Sprintf(`SELECT `+artistColumns+`
		FROM artists
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d`, strings.Join(conds, " OR "), len(args))

	artists := []Artist{}
	if err := r.db.SelectContext(ctx, &artists, query, args...); err != nil {
		return nil, fmt.Errorf("search artists: %w", err)
	}

	return artists, nil
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}
