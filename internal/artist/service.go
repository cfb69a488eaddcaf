// AngelaMos | 2026
// service.go

package artist

import (
	"context"
	"fmt"
	"strings"

	"github.com/tuanvi2605/ProjectWebNangCao/internal/core"
	"github.com/tuanvi2605/ProjectWebNangCao/internal/song"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

type SongLister interface {
	ListByArtists(ctx context.Context, artistIDs []string) ([]song.Song, error)
}

type Service struct {
	repo  Repository
	songs SongLister
}

func NewService(repo Repository, songs SongLister) *Service {
	return &Service{repo: repo, songs: songs}
}

type ListParams struct {
	Page  int
	Limit int
}

func (p *ListParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
}

func (p *ListParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// List returns one page of artists, newest first, with the total count.
func (s *Service) List(ctx context.Context, params ListParams) ([]Summary, int, error) {
	params.Normalize()

	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	artists, err := s.repo.List(ctx, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, err
	}

	bySong, err := s.songsByArtist(ctx, artists)
	if err != nil {
		return nil, 0, err
	}

	out := make([]Summary, 0, len(artists))
	for _, a := range artists {
		ids := make([]string, 0, len(bySong[a.ID]))
		for _, sg := range bySong[a.ID] {
			ids = append(ids, sg.ID)
		}
		out = append(out, Summary{
			ID:           a.ID,
			Name:         a.Name,
			Bio:          a.Bio,
			ProfileImage: a.ProfileImage,
			Songs:        ids,
			CreatedAt:    a.CreatedAt,
			UpdatedAt:    a.UpdatedAt,
		})
	}

	return out, total, nil
}

// Search reports core.ErrNotFound when nothing matches.
func (s *Service) Search(ctx context.Context, query string) ([]Detail, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, core.ValidationError("Query parameter is required")
	}

	terms := []string{query}
	if folded := FoldDiacritics(query); folded != query {
		terms = append(terms, folded)
	}

	artists, err := s.repo.Search(ctx, terms...)
	if err != nil {
		return nil, err
	}
	if len(artists) == 0 {
		return nil, fmt.Errorf("search artists: %w", core.ErrNotFound)
	}

	bySong, err := s.songsByArtist(ctx, artists)
	if err != nil {
		return nil, err
	}

	out := make([]Detail, 0, len(artists))
	for _, a := range artists {
		songs := bySong[a.ID]
		if songs == nil {
			songs = []song.Song{}
		}
		out = append(out, Detail{
			ID:           a.ID,
			Name:         a.Name,
			Bio:          a.Bio,
			ProfileImage: a.ProfileImage,
			Songs:        songs,
			CreatedAt:    a.CreatedAt,
			UpdatedAt:    a.UpdatedAt,
		})
	}

	return out, nil
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func (s *Service) songsByArtist(
	ctx context.Context,
	artists []Artist,
) (map[string][]song.Song, error) {
	ids := make([]string, 0, len(artists))
	for _, a := range artists {
		ids = append(ids, a.ID)
	}

	songs, err := s.songs.ListByArtists(ctx, ids)
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]song.Song, len(artists))
	for _, sg := range songs {
		if sg.ArtistID == nil {
			continue
		}
		grouped[*sg.ArtistID] = append(grouped[*sg.ArtistID], sg)
	}

	return grouped, nil
}
