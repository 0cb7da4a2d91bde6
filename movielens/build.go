// SPDX-License-Identifier: MIT

// File: build.go
// Role: assembling a parsed collection into an entity-attribute dataset.

package movielens

import (
	"fmt"

	"github.com/katalvlaran/recdata/dataset"
	"github.com/katalvlaran/recdata/vocab"
)

// Item attribute names carried by datasets built from a collection.
const (
	AttrTitle  = "title"
	AttrYear   = "year"
	AttrGenres = "genres"
)

// Dataset parses the whole collection and freezes it: "user" and "item"
// entity classes, the title/year/genres item attributes, and every rating
// as an interaction record.
func (s *Source) Dataset() (*dataset.Dataset, error) {
	items, err := s.Items()
	if err != nil {
		return nil, err
	}
	ratings, err := s.Ratings()
	if err != nil {
		return nil, err
	}

	b := dataset.NewBuilder()

	itemIDs := make([]vocab.ID, len(items))
	titles := make(map[vocab.ID]dataset.Value, len(items))
	years := make(map[vocab.ID]dataset.Value)
	genres := make(map[vocab.ID][]dataset.Value)
	for i, item := range items {
		itemIDs[i] = item.ID
		titles[item.ID] = dataset.String(item.Title)
		if item.HasYear {
			years[item.ID] = dataset.Int(int64(item.Year))
		}
		cell := make([]dataset.Value, len(item.Genres))
		for g, name := range item.Genres {
			cell[g] = dataset.String(name)
		}
		genres[item.ID] = cell
	}
	if err = b.AddEntities(dataset.ClassItem, itemIDs); err != nil {
		return nil, fmt.Errorf("movielens: %w", err)
	}

	// rating logs can reference items missing from the catalog; register
	// them so interactions always resolve
	seenItem := make(map[vocab.ID]struct{}, len(itemIDs))
	for _, id := range itemIDs {
		seenItem[id] = struct{}{}
	}
	userIDs := make([]vocab.ID, 0, 1024)
	extraItems := make([]vocab.ID, 0)
	seenUser := make(map[vocab.ID]struct{}, 1024)
	for _, rec := range ratings {
		if _, ok := seenUser[rec.User]; !ok {
			seenUser[rec.User] = struct{}{}
			userIDs = append(userIDs, rec.User)
		}
		if _, ok := seenItem[rec.Item]; !ok {
			seenItem[rec.Item] = struct{}{}
			extraItems = append(extraItems, rec.Item)
		}
	}
	if err = b.AddEntities(dataset.ClassUser, userIDs); err != nil {
		return nil, fmt.Errorf("movielens: %w", err)
	}
	if err = b.AddEntities(dataset.ClassItem, extraItems); err != nil {
		return nil, fmt.Errorf("movielens: %w", err)
	}

	if err = b.AddScalarAttribute(dataset.ClassItem, AttrTitle, titles); err != nil {
		return nil, fmt.Errorf("movielens: %w", err)
	}
	if len(years) > 0 {
		if err = b.AddScalarAttribute(dataset.ClassItem, AttrYear, years); err != nil {
			return nil, fmt.Errorf("movielens: %w", err)
		}
	}
	if err = b.AddListAttribute(dataset.ClassItem, AttrGenres, genres); err != nil {
		return nil, fmt.Errorf("movielens: %w", err)
	}
	if err = b.AddInteractions(ratings); err != nil {
		return nil, fmt.Errorf("movielens: %w", err)
	}

	ds, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("movielens: %w", err)
	}
	s.log.Info().
		Int("items", len(itemIDs)+len(extraItems)).
		Int("users", len(userIDs)).
		Int("ratings", len(ratings)).
		Stringer("format", s.format).
		Msg("dataset built")
	return ds, nil
}

// Load opens path, builds the dataset and closes the source again.
func Load(path string) (*dataset.Dataset, error) {
	src, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()
	return src.Dataset()
}

// LoadRatings opens path, parses just the rating log and closes the
// source again.
func LoadRatings(path string) ([]dataset.Interaction, error) {
	src, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()
	return src.Ratings()
}
