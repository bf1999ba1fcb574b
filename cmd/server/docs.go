// CineMarathon - Movie Enrichment and Marathon Planning Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemarathon

// Package main provides the CineMarathon HTTP server.
//
// CineMarathon merges a movie catalog with a video platform to attach
// trailers to movies, and plans movie marathons that fit a time budget.
//
// @title CineMarathon API
// @version 1.0
// @description Movie enrichment and marathon planning service.
// @description
// @description ## Features
// @description
// @description - **Enrichment**: Catalog movies joined with trailers from the catalog or the video platform
// @description - **Marathon planning**: Budget-constrained selection in standard, genre and decade variants
// @description - **Degradation**: Upstream failures and quota exhaustion degrade to partial results
// @description
// @description ## Rate Limiting
// @description
// @description Default rate limit: 100 requests per minute per IP address.
// @description
// @description ## Error Responses
// @description
// @description All error responses follow this format:
// @description ```json
// @description {
// @description   "status": "error",
// @description   "data": null,
// @description   "error": {
// @description     "code": "ERROR_CODE",
// @description     "message": "Human-readable error message",
// @description     "details": {}
// @description   },
// @description   "metadata": {
// @description     "timestamp": "2026-10-18T12:34:56Z"
// @description   }
// @description }
// @description ```
//
// @contact.name GitHub Repository
// @contact.url https://github.com/tomtom215/cinemarathon/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @host localhost:3857
// @BasePath /api/v1
// @schemes http https
//
// @tag.name Health
// @tag.description Service health, cache and upstream breaker state
//
// @tag.name Movies
// @tag.description Catalog listings, search and trailer enrichment
//
// @tag.name Marathon
// @tag.description Budget-constrained marathon planning
//
// @tag.name Videos
// @tag.description Trailer search and video statistics
package main
