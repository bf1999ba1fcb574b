// CineMarathon - Movie Enrichment and Marathon Planning Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemarathon

package tmdb

// listResponse is the paged envelope of list endpoints
// (/movie/popular, /movie/top_rated, /search/movie, /discover/movie).
type listResponse struct {
	Page         int            `json:"page"`
	Results      []movieSummary `json:"results"`
	TotalPages   int            `json:"total_pages"`
	TotalResults int            `json:"total_results"`
}

// movieSummary is a list entry. Genres arrive as ids only.
type movieSummary struct {
	ID            int64    `json:"id"`
	Title         string   `json:"title"`
	OriginalTitle string   `json:"original_title"`
	Overview      string   `json:"overview"`
	PosterPath    *string  `json:"poster_path"`
	BackdropPath  *string  `json:"backdrop_path"`
	VoteAverage   *float64 `json:"vote_average"`
	VoteCount     int      `json:"vote_count"`
	ReleaseDate   string   `json:"release_date"`
	GenreIDs      []int    `json:"genre_ids"`
}

// movieDetail is /movie/{id} with credits and videos appended.
type movieDetail struct {
	ID            int64    `json:"id"`
	Title         string   `json:"title"`
	OriginalTitle string   `json:"original_title"`
	Overview      string   `json:"overview"`
	PosterPath    *string  `json:"poster_path"`
	BackdropPath  *string  `json:"backdrop_path"`
	VoteAverage   *float64 `json:"vote_average"`
	VoteCount     int      `json:"vote_count"`
	ReleaseDate   string   `json:"release_date"`
	Runtime       *int     `json:"runtime"`
	Budget        int64    `json:"budget"`
	Revenue       int64    `json:"revenue"`
	Genres        []genre  `json:"genres"`
	Credits       struct {
		Cast []castEntry `json:"cast"`
	} `json:"credits"`
	Videos struct {
		Results []videoEntry `json:"results"`
	} `json:"videos"`
}

type genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type castEntry struct {
	Name      string `json:"name"`
	Character string `json:"character"`
	Order     int    `json:"order"`
}

type videoEntry struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	Site     string `json:"site"`
	Type     string `json:"type"`
	Official bool   `json:"official"`
}
