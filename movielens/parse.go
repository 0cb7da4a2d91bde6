// SPDX-License-Identifier: MIT

// File: parse.go
// Role: per-dialect parsing of the ratings and movies files into neutral
// record types.

package movielens

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"io/fs"
	"regexp"
	"strconv"
	"strings"

	"github.com/katalvlaran/recdata/dataset"
	"github.com/katalvlaran/recdata/vocab"
)

// genres100K is the fixed genre order of the ml-100k flag columns.
var genres100K = []string{
	"unknown", "Action", "Adventure", "Animation", "Children's", "Comedy",
	"Crime", "Documentary", "Drama", "Fantasy", "Film-Noir", "Horror",
	"Musical", "Mystery", "Romance", "Sci-Fi", "Thriller", "War", "Western",
}

// yearRe extracts the trailing "(1995)" year marker from a title.
var yearRe = regexp.MustCompile(`\((\d{4})\)\s*$`)

// Item is one movie record in a dialect-neutral shape.
type Item struct {
	ID      vocab.ID
	Title   string
	Year    int
	HasYear bool
	Genres  []string
}

// Ratings parses the rating log of the collection in file order.
func (s *Source) Ratings() ([]dataset.Interaction, error) {
	switch s.format {
	case Format100K:
		return s.ratingsDelim("u.data", "\t")
	case FormatDat:
		return s.ratingsDelim("ratings.dat", "::")
	case FormatCSV:
		return s.ratingsCSV("ratings.csv")
	}
	return nil, ErrUnknownFormat
}

func (s *Source) ratingsDelim(name, sep string) ([]dataset.Interaction, error) {
	f, err := s.fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("movielens: %w", err)
	}
	defer f.Close()

	var out []dataset.Interaction
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimRight(sc.Text(), "\r")
		if text == "" {
			continue
		}
		parts := strings.Split(text, sep)
		if len(parts) != 4 {
			return nil, fmt.Errorf("movielens: %s:%d: %d fields: %w", name, line, len(parts), ErrBadRecord)
		}
		rec, perr := parseRating(parts)
		if perr != nil {
			return nil, fmt.Errorf("movielens: %s:%d: %w", name, line, perr)
		}
		out = append(out, rec)
	}
	if err = sc.Err(); err != nil {
		return nil, fmt.Errorf("movielens: %s: %w", name, err)
	}
	s.log.Debug().Str("file", name).Int("records", len(out)).Msg("ratings parsed")
	return out, nil
}

func (s *Source) ratingsCSV(name string) ([]dataset.Interaction, error) {
	f, err := s.fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("movielens: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 4
	if _, err = r.Read(); err != nil { // header
		return nil, fmt.Errorf("movielens: %s: %w", name, ErrBadRecord)
	}
	var out []dataset.Interaction
	for {
		row, rerr := r.Read()
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return nil, fmt.Errorf("movielens: %s: %v: %w", name, rerr, ErrBadRecord)
		}
		rec, perr := parseRating(row)
		if perr != nil {
			return nil, fmt.Errorf("movielens: %s: %w", name, perr)
		}
		out = append(out, rec)
	}
	s.log.Debug().Str("file", name).Int("records", len(out)).Msg("ratings parsed")
	return out, nil
}

// parseRating converts a (user, item, rating, timestamp) field quadruple.
func parseRating(fields []string) (dataset.Interaction, error) {
	rating, err := strconv.ParseFloat(strings.TrimSpace(fields[2]), 64)
	if err != nil {
		return dataset.Interaction{}, fmt.Errorf("rating %q: %w", fields[2], ErrBadRecord)
	}
	ts, err := strconv.ParseInt(strings.TrimSpace(fields[3]), 10, 64)
	if err != nil {
		return dataset.Interaction{}, fmt.Errorf("timestamp %q: %w", fields[3], ErrBadRecord)
	}
	return dataset.Interaction{
		User:      vocab.ID(strings.TrimSpace(fields[0])),
		Item:      vocab.ID(strings.TrimSpace(fields[1])),
		Rating:    rating,
		HasRating: true,
		Timestamp: ts,
	}, nil
}

// Items parses the movie catalog of the collection in file order.
func (s *Source) Items() ([]Item, error) {
	switch s.format {
	case Format100K:
		return s.items100K()
	case FormatDat:
		return s.itemsDat()
	case FormatCSV:
		return s.itemsCSV()
	}
	return nil, ErrUnknownFormat
}

func (s *Source) items100K() ([]Item, error) {
	const name = "u.item"
	lines, err := s.readLines(name)
	if err != nil {
		return nil, err
	}
	out := make([]Item, 0, len(lines))
	for i, text := range lines {
		parts := strings.Split(text, "|")
		if len(parts) != 5+len(genres100K) {
			return nil, fmt.Errorf("movielens: %s:%d: %d fields: %w", name, i+1, len(parts), ErrBadRecord)
		}
		item := newItem(parts[0], parts[1])
		for g, flag := range parts[5:] {
			if flag == "1" {
				item.Genres = append(item.Genres, genres100K[g])
			}
		}
		out = append(out, item)
	}
	return out, nil
}

func (s *Source) itemsDat() ([]Item, error) {
	const name = "movies.dat"
	lines, err := s.readLines(name)
	if err != nil {
		return nil, err
	}
	out := make([]Item, 0, len(lines))
	for i, text := range lines {
		parts := strings.Split(text, "::")
		if len(parts) != 3 {
			return nil, fmt.Errorf("movielens: %s:%d: %d fields: %w", name, i+1, len(parts), ErrBadRecord)
		}
		item := newItem(parts[0], parts[1])
		item.Genres = splitGenres(parts[2])
		out = append(out, item)
	}
	return out, nil
}

func (s *Source) itemsCSV() ([]Item, error) {
	const name = "movies.csv"
	f, err := s.fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("movielens: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 3
	if _, err = r.Read(); err != nil { // header
		return nil, fmt.Errorf("movielens: %s: %w", name, ErrBadRecord)
	}
	var out []Item
	for {
		row, rerr := r.Read()
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return nil, fmt.Errorf("movielens: %s: %v: %w", name, rerr, ErrBadRecord)
		}
		item := newItem(row[0], row[1])
		item.Genres = splitGenres(row[2])
		out = append(out, item)
	}
	return out, nil
}

// readLines loads a small catalog file as trimmed non-empty lines.
func (s *Source) readLines(name string) ([]string, error) {
	data, err := fs.ReadFile(s.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("movielens: %w", err)
	}
	var out []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if line != "" {
			out = append(out, line)
		}
	}
	return out, nil
}

// newItem builds an Item from raw id and title fields, extracting the
// trailing year marker when the title carries one.
func newItem(id, title string) Item {
	item := Item{ID: vocab.ID(strings.TrimSpace(id)), Title: strings.TrimSpace(title)}
	if m := yearRe.FindStringSubmatch(item.Title); m != nil {
		item.Year, _ = strconv.Atoi(m[1])
		item.HasYear = true
	}
	return item
}

// splitGenres parses a pipe-separated genre list, treating the modern
// "(no genres listed)" marker as empty.
func splitGenres(field string) []string {
	field = strings.TrimSpace(field)
	if field == "" || field == "(no genres listed)" {
		return nil
	}
	return strings.Split(field, "|")
}
