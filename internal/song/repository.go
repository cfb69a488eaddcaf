// AngelaMos | 2026
// repository.go

package song

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/tuanvi2605/ProjectWebNangCao/internal/core"
)

type Repository interface {
	GetByID(ctx context.Context, id string) (*Song, error)
	ListByArtists(ctx context.Context, artistIDs []string) ([]Song, error)
	ListByAlbum(ctx context.Context, albumID string) ([]Song, error)
	IsLiked(ctx context.Context, userID, songID string) (bool, error)
	ToggleLike(ctx context.Context, userID, songID string) (LikeState, error)
	IncrementPlay(ctx context.Context, songID string) (int64, error)
	Count(ctx context.Context) (int, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const songColumns = `id, title, artist_id, album_id, duration, is_vip,
		       play_count, like_count, created_at, updated_at`

func (r *repository) GetByID(ctx context.Context, id string) (*Song, error) {
	query := `SELECT ` + songColumns + `
		FROM songs
		WHERE id = $1`

	var s Song
	err := r.db.GetContext(ctx, &s, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get song: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get song: %w", err)
	}

	return &s, nil
}

func (r *repository) ListByArtists(
	ctx context.Context,
	artistIDs []string,
) ([]Song, error) {
	if len(artistIDs) == 0 {
		return []Song{}, nil
	}

	query, args, err := sqlx.In(`SELECT `+songColumns+`
		FROM songs
		WHERE artist_id IN (?)
		ORDER BY created_at`, artistIDs)
	if err != nil {
		return nil, fmt.Errorf("list songs by artists: %w", err)
	}

	songs := []Song{}
	if err := r.db.SelectContext(ctx, &songs, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list songs by artists: %w", err)
	}

	return songs, nil
}

func (r *repository) ListByAlbum(ctx context.Context, albumID string) ([]Song, error) {
	query := `SELECT ` + songColumns + `
		FROM songs
		WHERE album_id = $1
		ORDER BY created_at`

	songs := []Song{}
	if err := r.db.SelectContext(ctx, &songs, query, albumID); err != nil {
		return nil, fmt.Errorf("list songs by album: %w", err)
	}

	return songs, nil
}

func (r *repository) IsLiked(ctx context.Context, userID, songID string) (bool, error) {
	query := `SELECT EXISTS(
		SELECT 1 FROM song_likes WHERE user_id = $1 AND song_id = $2)`

	var liked bool
	if err := r.db.GetContext(ctx, &liked, query, userID, songID); err != nil {
		return false, fmt.Errorf("check like: %w", err)
	}

	return liked, nil
}

// ToggleLike flips the caller's like and keeps songs.like_count in step with
// song_likes. The song row is locked so concurrent toggles serialize.
func (r *repository) ToggleLike(
	ctx context.Context,
	userID, songID string,
) (LikeState, error) {
	var state LikeState

	err := core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var current int64
		err := tx.GetContext(ctx, &current,
			`SELECT like_count FROM songs WHERE id = $1 FOR UPDATE`, songID)
		if errors.Is(err, sql.ErrNoRows) {
			return core.ErrNotFound
		}
		if err != nil {
			return err
		}

		result, err := tx.ExecContext(ctx,
			`DELETE FROM song_likes WHERE user_id = $1 AND song_id = $2`,
			userID, songID)
		if err != nil {
			return err
		}
		removed, err := result.RowsAffected()
		if err != nil {
			return err
		}

		delta := -1
		if removed == 0 {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO song_likes (user_id, song_id) VALUES ($1, $2)`,
				userID, songID); err != nil {
				return err
			}
			delta = 1
			state.Liked = true
		}

		return tx.GetContext(ctx, &state.LikeCount, `
			UPDATE songs
			SET like_count = GREATEST(like_count + $2, 0), updated_at = NOW()
			WHERE id = $1
			RETURNING like_count`, songID, delta)
	})
	if err != nil {
		return LikeState{}, fmt.Errorf("toggle like: %w", err)
	}

	return state, nil
}

func (r *repository) IncrementPlay(ctx context.Context, songID string) (int64, error) {
	query := `
		UPDATE songs
		SET play_count = play_count + 1, updated_at = NOW()
		WHERE id = $1
		RETURNING play_count`

	var plays int64
	err := r.db.GetContext(ctx, &plays, query, songID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("increment play: %w", core.ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("increment play: %w", err)
	}

	return plays, nil
}

func (r *repository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM songs`); err != nil {
		return 0, fmt.Errorf("count songs: %w", err)
	}
	return total, nil
}
