// AngelaMos | 2026
// album.go

package album

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tuanvi2605/ProjectWebNangCao/internal/core"
	"github.com/tuanvi2605/ProjectWebNangCao/internal/song"
)

type Album struct {
	ID         string    `db:"id"          json:"id"`
	Title      string    `db:"title"       json:"title"`
	CoverImage string    `db:"cover_image" json:"coverImage"`
	ArtistID   *string   `db:"artist_id"   json:"artistId"`
	CreatedAt  time.Time `db:"created_at"  json:"createdAt"`
	UpdatedAt  time.Time `db:"updated_at"  json:"updatedAt"`
}

type Detail struct {
	Album
	Songs []song.Song `json:"songs"`
}

type Repository interface {
	GetByID(ctx context.Context, id string) (*Album, error)
	Count(ctx context.Context) (int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id string) (*Album, error) {
	query := `
		SELECT id, title, cover_image, artist_id, created_at, updated_at
		FROM albums
		WHERE id = $1`

	var a Album
	err := r.db.GetContext(ctx, &a, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get album: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get album: %w", err)
	}

	return &a, nil
}

func (r *repository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM albums`); err != nil {
		return 0, fmt.Errorf("count albums: %w", err)
	}
	return total, nil
}

type SongLister interface {
	ListByAlbum(ctx context.Context, albumID string) ([]song.Song, error)
}

type Service struct {
	repo  Repository
	songs SongLister
}

func NewService(repo Repository, songs SongLister) *Service {
	return &Service{repo: repo, songs: songs}
}

func (s *Service) Find(ctx context.Context, albumID string) (*Detail, error) {
	if albumID == "" {
		return nil, core.ValidationError("Album ID is required")
	}
	if uuid.Validate(albumID) != nil {
		return nil, core.ValidationError("Invalid Album ID")
	}

	a, err := s.repo.GetByID(ctx, albumID)
	if err != nil {
		return nil, err
	}

	songs, err := s.songs.ListByAlbum(ctx, a.ID)
	if err != nil {
		return nil, err
	}

	return &Detail{Album: *a, Songs: songs}, nil
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}
