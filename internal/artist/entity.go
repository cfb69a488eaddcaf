// AngelaMos | 2026
// entity.go

package artist

import (
	"time"

	"github.com/tuanvi2605/ProjectWebNangCao/internal/song"
)

type Artist struct {
	ID           string    `db:"id"`
	Name         string    `db:"name"`
	Bio          string    `db:"bio"`
	ProfileImage string    `db:"profile_image"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// Summary lists an artist with the ids of its songs.
type Summary struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Bio          string    `json:"bio"`
	ProfileImage string    `json:"profileImage"`
	Songs        []string  `json:"songs"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Detail carries the full song records.
type Detail struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Bio          string      `json:"bio"`
	ProfileImage string      `json:"profileImage"`
	Songs        []song.Song `json:"songs"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}
