package filmrepo

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/haguru/filmdb/internal/interfaces"
	"github.com/haguru/filmdb/internal/models"
	"github.com/haguru/filmdb/pkg/databases"
)

// filmsSpec is the films table. The auto-increment id is never reused after a delete.
var filmsSpec = databases.TableSpec{
	Columns: []databases.ColumnSpec{
		{Name: FieldID, Type: databases.Integer, PrimaryKey: true, AutoIncrement: true},
		{Name: FieldTitle, Type: databases.Text, NotNull: true},
		{Name: FieldUser, Type: databases.Text},
		{Name: FieldYear, Type: databases.Integer},
		{Name: FieldDirector, Type: databases.Text},
		{Name: FieldGenre, Type: databases.Text},
	},
}

var _ interfaces.FilmRepository = (*FilmRepository)(nil)

// FilmRepository implements interfaces.FilmRepository on any DBClient.
// Every film operation goes through the same store.
type FilmRepository struct {
	dbClient interfaces.DBClient
	maxLimit int
}

// NewFilmRepository creates a repository backed by dbClient. A maxLimit of
// zero or less means DefaultMaxLimit.
func NewFilmRepository(dbClient interfaces.DBClient, maxLimit int) (*FilmRepository, error) {
	if dbClient == nil {
		return nil, fmt.Errorf("dbClient cannot be nil")
	}
	if maxLimit <= 0 {
		maxLimit = DefaultMaxLimit
	}
	return &FilmRepository{dbClient: dbClient, maxLimit: maxLimit}, nil
}

// ListFilms returns the films matching query. The order and limit are checked
// before anything reaches the store.
func (r *FilmRepository) ListFilms(ctx context.Context, query models.FilmQuery) ([]models.Film, error) {
	field, descending, err := ParseOrderBy(query.OrderBy)
	if err != nil {
		return nil, err
	}
	if err := ValidateLimit(query.Limit, r.maxLimit); err != nil {
		return nil, err
	}

	filter := databases.Document{}
	if query.User != "" {
		filter[FieldUser] = query.User
	}
	opts := &databases.FindOptions{
		SortField:  field,
		Descending: descending,
		Limit:      int64(query.Limit),
	}

	docs, err := r.dbClient.FindMany(ctx, FilmsTable, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedToListFilms, err)
	}

	films := make([]models.Film, 0, len(docs))
	for _, doc := range docs {
		var film models.Film
		if err := databases.Decode(doc, &film); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrFailedToDecodeFilm, err)
		}
		films = append(films, film)
	}
	return films, nil
}

// GetFilm returns the film with that id, or nil if there is none.
func (r *FilmRepository) GetFilm(ctx context.Context, id int64) (*models.Film, error) {
	doc, err := r.dbClient.FindOne(ctx, FilmsTable, databases.Document{FieldID: id})
	if errors.Is(err, databases.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedToGetFilm, err)
	}

	var film models.Film
	if err := databases.Decode(doc, &film); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedToDecodeFilm, err)
	}
	return &film, nil
}

// CreateFilm stores film under a store-assigned id and returns it with that id.
// Any id already set on film is ignored.
func (r *FilmRepository) CreateFilm(ctx context.Context, film models.Film) (*models.Film, error) {
	if film.Title == "" {
		return nil, ErrTitleRequired
	}

	doc := databases.Document{
		FieldTitle:    film.Title,
		FieldUser:     film.User,
		FieldYear:     film.Year,
		FieldDirector: film.Director,
		FieldGenre:    film.Genre,
	}

	insertedID, err := r.dbClient.InsertOne(ctx, FilmsTable, doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedToCreateFilm, err)
	}

	id, err := toInt64(insertedID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedToCreateFilm, err)
	}

	film.ID = id
	return &film, nil
}

// UpdateFilm merges patch into the film with that id and returns the result,
// or nil if there is no such film. An empty patch returns the film unchanged.
func (r *FilmRepository) UpdateFilm(ctx context.Context, id int64, patch models.FilmPatch) (*models.Film, error) {
	if patch.Title != nil && *patch.Title == "" {
		return nil, ErrTitleRequired
	}

	film, err := r.GetFilm(ctx, id)
	if err != nil || film == nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return film, nil
	}

	matched, err := r.dbClient.UpdateOne(ctx, FilmsTable, databases.Document{FieldID: id}, patchDocument(patch))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedToUpdateFilm, err)
	}
	if matched == 0 {
		// deleted since the lookup
		return nil, nil
	}

	patch.Apply(film)
	return film, nil
}

// DeleteFilm removes the film with that id and reports whether it existed.
func (r *FilmRepository) DeleteFilm(ctx context.Context, id int64) (bool, error) {
	deleted, err := r.dbClient.DeleteOne(ctx, FilmsTable, databases.Document{FieldID: id})
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrFailedToDeleteFilm, err)
	}
	return deleted > 0, nil
}

// EnsureIndices creates the films table.
func (r *FilmRepository) EnsureIndices(ctx context.Context) error {
	if err := r.dbClient.EnsureSchema(ctx, FilmsTable, filmsSpec); err != nil {
		return fmt.Errorf("%s: %w", ErrFailedToEnsureIndices, err)
	}
	return nil
}

func patchDocument(patch models.FilmPatch) databases.Document {
	doc := databases.Document{}
	if patch.Title != nil {
		doc[FieldTitle] = *patch.Title
	}
	if patch.User != nil {
		doc[FieldUser] = *patch.User
	}
	if patch.Year != nil {
		doc[FieldYear] = *patch.Year
	}
	if patch.Director != nil {
		doc[FieldDirector] = *patch.Director
	}
	if patch.Genre != nil {
		doc[FieldGenre] = *patch.Genre
	}
	return doc
}

// toInt64 converts the id a driver handed back into an int64.
func toInt64(v interface{}) (int64, error) {
	switch id := v.(type) {
	case int64:
		return id, nil
	case int32:
		return int64(id), nil
	case int:
		return int64(id), nil
	case string:
		return strconv.ParseInt(id, 10, 64)
	default:
		return 0, fmt.Errorf("unexpected id type %T", v)
	}
}
