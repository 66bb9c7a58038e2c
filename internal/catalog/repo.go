package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"seriehub/pkg/models"
)

// ErrDuplicateTitle is returned when a save would create a second series
// with an existing title (case-sensitive compare, like the unique column).
var ErrDuplicateTitle = errors.New("series title already in catalog")

// Policy constants for the composite filter. The original behavior is a
// fixed filter, not user parameters.
const (
	filterMaxSeasons = 6
	filterMinRating  = 7.5
)

type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

// Save persists the series and its whole episode collection in one
// transaction. A zero ID means insert; otherwise update. The stored
// episode set is always replaced by s.Episodes, and surrogate ids are
// written back into s.
func (r *Repo) Save(ctx context.Context, s *models.Series) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var existingID int64
	err = tx.QueryRowContext(ctx, `SELECT id FROM series WHERE title = ?`, s.Title).Scan(&existingID)
	switch {
	case err == sql.ErrNoRows:
		// title free
	case err != nil:
		return fmt.Errorf("check title: %w", err)
	case existingID != s.ID:
		return fmt.Errorf("save series %q: %w", s.Title, ErrDuplicateTitle)
	}

	if s.ID == 0 {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO series (title, total_seasons, rating, poster, category, show_cast, synopsis)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, s.Title, s.TotalSeasons, s.Rating, s.Poster, string(s.Category), s.Cast, s.Synopsis)
		if err != nil {
			return fmt.Errorf("insert series: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("series id: %w", err)
		}
		s.ID = id
	} else {
		if _, err := tx.ExecContext(ctx, `
			UPDATE series
			SET title = ?, total_seasons = ?, rating = ?, poster = ?, category = ?, show_cast = ?, synopsis = ?
			WHERE id = ?
		`, s.Title, s.TotalSeasons, s.Rating, s.Poster, string(s.Category), s.Cast, s.Synopsis, s.ID); err != nil {
			return fmt.Errorf("update series: %w", err)
		}
	}

	// full replace of the owned episode set
	if _, err := tx.ExecContext(ctx, `DELETE FROM episodes WHERE series_id = ?`, s.ID); err != nil {
		return fmt.Errorf("clear episodes: %w", err)
	}

	if len(s.Episodes) > 0 {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO episodes (series_id, season, number, title, rating)
			VALUES (?, ?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("prepare episode insert: %w", err)
		}
		defer stmt.Close()

		for i := range s.Episodes {
			e := &s.Episodes[i]
			e.SeriesID = s.ID
			res, err := stmt.ExecContext(ctx, e.SeriesID, e.Season, e.Number, e.Title, e.Rating)
			if err != nil {
				return fmt.Errorf("insert episode s%de%d: %w", e.Season, e.Number, err)
			}
			id, err := res.LastInsertId()
			if err != nil {
				return fmt.Errorf("episode id: %w", err)
			}
			e.ID = id
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

const seriesColumns = `id, title, total_seasons, rating, poster, category, show_cast, synopsis`

// FindAll returns every series in insertion order, without episodes.
func (r *Repo) FindAll(ctx context.Context) ([]models.Series, error) {
	return r.querySeries(ctx, `
		SELECT `+seriesColumns+` FROM series ORDER BY id
	`)
}

// FindByTitleContains returns the first series whose title contains the
// given text, case-insensitive. Ties break on lowest id. The returned
// series has its episodes hydrated; nil means no match.
func (r *Repo) FindByTitleContains(ctx context.Context, text string) (*models.Series, error) {
	out, err := r.querySeries(ctx, `
		SELECT `+seriesColumns+` FROM series
		WHERE LOWER(title) LIKE ? ESCAPE '\'
		ORDER BY id
		LIMIT 1
	`, containsPattern(text))
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}

	s := out[0]
	eps, err := r.episodesOf(ctx, s.ID)
	if err != nil {
		return nil, err
	}
	s.Episodes = eps
	return &s, nil
}

// FindTopByRating returns the n highest-rated series, rating descending.
// Ties break on id ascending, so repeated calls on unchanged data return
// the same order.
func (r *Repo) FindTopByRating(ctx context.Context, n int) ([]models.Series, error) {
	return r.querySeries(ctx, `
		SELECT `+seriesColumns+` FROM series
		ORDER BY rating DESC, id ASC
		LIMIT ?
	`, n)
}

// FindByCategory returns every series of the given category, insertion order.
func (r *Repo) FindByCategory(ctx context.Context, cat models.Category) ([]models.Series, error) {
	return r.querySeries(ctx, `
		SELECT `+seriesColumns+` FROM series
		WHERE category = ?
		ORDER BY id
	`, string(cat))
}

// FindBySeasonsAndRating applies the fixed catalog filter: at most 6
// seasons and rating at least 7.5.
func (r *Repo) FindBySeasonsAndRating(ctx context.Context) ([]models.Series, error) {
	return r.querySeries(ctx, `
		SELECT `+seriesColumns+` FROM series
		WHERE total_seasons <= ? AND rating >= ?
		ORDER BY id
	`, filterMaxSeasons, filterMinRating)
}

// EpisodeMatch is one episode search hit, carrying the owning series
// title for display.
type EpisodeMatch struct {
	models.Episode
	SeriesTitle string `json:"series_title"`
}

// FindEpisodesByTitleContains searches episode titles across all series,
// case-insensitive.
func (r *Repo) FindEpisodesByTitleContains(ctx context.Context, text string) ([]EpisodeMatch, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT e.id, e.series_id, e.season, e.number, e.title, e.rating, s.title
		FROM episodes e
		JOIN series s ON s.id = e.series_id
		WHERE LOWER(e.title) LIKE ? ESCAPE '\'
		ORDER BY e.id
	`, containsPattern(text))
	if err != nil {
		return nil, fmt.Errorf("search episodes: %w", err)
	}
	defer rows.Close()

	var out []EpisodeMatch
	for rows.Next() {
		var m EpisodeMatch
		if err := rows.Scan(&m.ID, &m.SeriesID, &m.Season, &m.Number, &m.Title, &m.Rating, &m.SeriesTitle); err != nil {
			return nil, fmt.Errorf("scan episode match: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

// FindTopEpisodes returns the n highest-rated episodes of one series.
// Ties break on (season, number) ascending.
func (r *Repo) FindTopEpisodes(ctx context.Context, seriesID int64, n int) ([]models.Episode, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, series_id, season, number, title, rating
		FROM episodes
		WHERE series_id = ?
		ORDER BY rating DESC, season ASC, number ASC
		LIMIT ?
	`, seriesID, n)
	if err != nil {
		return nil, fmt.Errorf("top episodes: %w", err)
	}
	defer rows.Close()

	var out []models.Episode
	for rows.Next() {
		var e models.Episode
		if err := rows.Scan(&e.ID, &e.SeriesID, &e.Season, &e.Number, &e.Title, &e.Rating); err != nil {
			return nil, fmt.Errorf("scan episode: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

// GetByTitle returns the series with exactly this title (case-sensitive,
// like the unique column); nil when absent. Episodes are not hydrated.
func (r *Repo) GetByTitle(ctx context.Context, title string) (*models.Series, error) {
	out, err := r.querySeries(ctx, `
		SELECT `+seriesColumns+` FROM series WHERE title = ?
	`, title)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return &out[0], nil
}

// GetByID returns one series with episodes hydrated; nil when absent.
func (r *Repo) GetByID(ctx context.Context, id int64) (*models.Series, error) {
	out, err := r.querySeries(ctx, `
		SELECT `+seriesColumns+` FROM series WHERE id = ?
	`, id)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}

	s := out[0]
	eps, err := r.episodesOf(ctx, s.ID)
	if err != nil {
		return nil, err
	}
	s.Episodes = eps
	return &s, nil
}

func (r *Repo) episodesOf(ctx context.Context, seriesID int64) ([]models.Episode, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, series_id, season, number, title, rating
		FROM episodes
		WHERE series_id = ?
		ORDER BY season ASC, id ASC
	`, seriesID)
	if err != nil {
		return nil, fmt.Errorf("episodes of series %d: %w", seriesID, err)
	}
	defer rows.Close()

	var out []models.Episode
	for rows.Next() {
		var e models.Episode
		if err := rows.Scan(&e.ID, &e.SeriesID, &e.Season, &e.Number, &e.Title, &e.Rating); err != nil {
			return nil, fmt.Errorf("scan episode: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

func (r *Repo) querySeries(ctx context.Context, query string, args ...any) ([]models.Series, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query series: %w", err)
	}
	defer rows.Close()

	var out []models.Series
	for rows.Next() {
		var (
			s        models.Series
			category string
		)
		if err := rows.Scan(&s.ID, &s.Title, &s.TotalSeasons, &s.Rating, &s.Poster, &category, &s.Cast, &s.Synopsis); err != nil {
			return nil, fmt.Errorf("scan series: %w", err)
		}
		cat, err := models.ParseCategory(category)
		if err != nil {
			return nil, fmt.Errorf("series %d: %w", s.ID, err)
		}
		s.Category = cat
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

// containsPattern builds a LIKE pattern matching the text as a literal
// substring. `%`, `_`, and the escape character itself are escaped; the
// queries using it must carry ESCAPE '\'.
func containsPattern(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))
	text = likeEscaper.Replace(text)
	return "%" + text + "%"
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
