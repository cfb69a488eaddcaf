// AngelaMos | 2026
// service.go

package song

import (
	"context"

	"github.com/google/uuid"

	"github.com/tuanvi2605/ProjectWebNangCao/internal/core"
)

const msgInvalidSongID = "Invalid or missing Song ID"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) LikeState(
	ctx context.Context,
	userID, songID string,
) (LikeState, error) {
	if err := validateID(songID); err != nil {
		return LikeState{}, err
	}

	song, err := s.repo.GetByID(ctx, songID)
	if err != nil {
		return LikeState{}, err
	}

	liked, err := s.repo.IsLiked(ctx, userID, songID)
	if err != nil {
		return LikeState{}, err
	}

	return LikeState{Liked: liked, LikeCount: song.LikeCount}, nil
}

func (s *Service) ToggleLike(
	ctx context.Context,
	userID, songID string,
) (LikeState, error) {
	if err := validateID(songID); err != nil {
		return LikeState{}, err
	}
	return s.repo.ToggleLike(ctx, userID, songID)
}

func (s *Service) Play(ctx context.Context, songID string) (int64, error) {
	if err := validateID(songID); err != nil {
		return 0, err
	}
	return s.repo.IncrementPlay(ctx, songID)
}

func (s *Service) ListByArtists(ctx context.Context, artistIDs []string) ([]Song, error) {
	return s.repo.ListByArtists(ctx, artistIDs)
}

func (s *Service) ListByAlbum(ctx context.Context, albumID string) ([]Song, error) {
	return s.repo.ListByAlbum(ctx, albumID)
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func validateID(id string) error {
	if id == "" || uuid.Validate(id) != nil {
		return core.ValidationError(msgInvalidSongID)
	}
	return nil
}
