package dto

import "github.com/haguru/filmdb/internal/models"

// FilmRequestDTO is the body of a film create request.
type FilmRequestDTO struct {
	Title    string `json:"title" validate:"required,max=255"`
	User     string `json:"user" validate:"omitempty,max=64"`
	Year     int    `json:"year" validate:"omitempty,min=1888,max=2100"`
	Director string `json:"director" validate:"omitempty,max=255"`
	Genre    string `json:"genre" validate:"omitempty,max=64"`
}

// ToModel converts the request into a film without an id.
func (d FilmRequestDTO) ToModel() models.Film {
	return models.Film{
		Title:    d.Title,
		User:     d.User,
		Year:     d.Year,
		Director: d.Director,
		Genre:    d.Genre,
	}
}

// FilmPatchDTO is the body of a film update request; absent fields are kept.
type FilmPatchDTO struct {
	Title    *string `json:"title" validate:"omitempty,min=1,max=255"`
	User     *string `json:"user" validate:"omitempty,max=64"`
	Year     *int    `json:"year" validate:"omitempty,min=1888,max=2100"`
	Director *string `json:"director" validate:"omitempty,max=255"`
	Genre    *string `json:"genre" validate:"omitempty,max=64"`
}

// ToModel converts the request into a patch.
func (d FilmPatchDTO) ToModel() models.FilmPatch {
	return models.FilmPatch{
		Title:    d.Title,
		User:     d.User,
		Year:     d.Year,
		Director: d.Director,
		Genre:    d.Genre,
	}
}

type FilmListResponseDTO struct {
	Films []models.Film `json:"films"`
	Count int           `json:"count"`
}
