// CineMarathon - Movie Enrichment and Marathon Planning Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemarathon

package tmdb

// movieGenres is the catalog's fixed movie genre table (/genre/movie/list).
var movieGenres = map[int]string{
	28:    "Action",
	12:    "Adventure",
	16:    "Animation",
	35:    "Comedy",
	80:    "Crime",
	99:    "Documentary",
	18:    "Drama",
	10751: "Family",
	14:    "Fantasy",
	36:    "History",
	27:    "Horror",
	10402: "Music",
	9648:  "Mystery",
	10749: "Romance",
	878:   "Science Fiction",
	10770: "TV Movie",
	53:    "Thriller",
	10752: "War",
	37:    "Western",
}

// GenreName returns the name for a genre id, or "" when unknown.
func GenreName(id int) string {
	return movieGenres[id]
}

// genreNames maps ids to names, skipping unknown ids.
func genreNames(ids []int) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if name := GenreName(id); name != "" {
			names = append(names, name)
		}
	}
	return names
}
