// AngelaMos | 2026
// entity.go

package song

import (
	"time"
)

type Song struct {
	ID        string    `db:"id"         json:"id"`
	Title     string    `db:"title"      json:"title"`
	ArtistID  *string   `db:"artist_id"  json:"artistId"`
	AlbumID   *string   `db:"album_id"   json:"albumId"`
	Duration  int       `db:"duration"   json:"duration"`
	IsVIP     bool      `db:"is_vip"     json:"isVip"`
	PlayCount int64     `db:"play_count" json:"play"`
	LikeCount int64     `db:"like_count" json:"like"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

type LikeState struct {
	Liked     bool  `json:"liked"`
	LikeCount int64 `json:"likeCount"`
}
