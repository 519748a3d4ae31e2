package models

// Film is a catalog entry. User is the owning username, a weak reference
// that is only used for filtering.
type Film struct {
	ID       int64  `bson:"id" mapstructure:"id" json:"id"`
	Title    string `bson:"title" mapstructure:"title" json:"title"`
	User     string `bson:"user" mapstructure:"user" json:"user"`
	Year     int    `bson:"year" mapstructure:"year" json:"year,omitempty"`
	Director string `bson:"director" mapstructure:"director" json:"director,omitempty"`
	Genre    string `bson:"genre" mapstructure:"genre" json:"genre,omitempty"`
}

// FilmPatch carries the fields to change on an existing film. Nil fields are left as they are.
type FilmPatch struct {
	Title    *string
	User     *string
	Year     *int
	Director *string
	Genre    *string
}

// IsEmpty reports whether the patch changes nothing.
func (p FilmPatch) IsEmpty() bool {
	return p.Title == nil && p.User == nil && p.Year == nil && p.Director == nil && p.Genre == nil
}

// Apply merges the patch into f.
func (p FilmPatch) Apply(f *Film) {
	if p.Title != nil {
		f.Title = *p.Title
	}
	if p.User != nil {
		f.User = *p.User
	}
	if p.Year != nil {
		f.Year = *p.Year
	}
	if p.Director != nil {
		f.Director = *p.Director
	}
	if p.Genre != nil {
		f.Genre = *p.Genre
	}
}

// FilmQuery selects films for a listing. An empty User matches every owner,
// a zero Limit means no limit and an empty OrderBy falls back to "title ASC".
type FilmQuery struct {
	User    string
	Limit   int
	OrderBy string
}
