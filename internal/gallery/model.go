package gallery

import "time"

type Image struct {
	ID        uint      `json:"id"`
	Filename  string    `json:"filename"`
	Caption   *string   `json:"caption,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
