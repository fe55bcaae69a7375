// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination parses page requests and builds the "meta" block of
// list responses.
//
// Pages are 1-indexed. The page size is read from "limit", or from "size"
// for clients that speak the Spring Data convention.
package pagination

import (
	"net/http"
	"strconv"
)

const (
	// DefaultLimit is the page size when none is given.
	DefaultLimit = 20
	// MaxLimit caps the page size. Larger requests are clamped, not rejected.
	MaxLimit = 100
	// DefaultPage is the first page.
	DefaultPage = 1
)

// Params is a requested window over a list.
type Params struct {
	Page  int
	Limit int
}

// Offset is the number of rows skipped before this page.
func (p Params) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Meta describes where a page sits in the full result.
type Meta struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
}

// NewMeta derives the page count for total rows split by p.Limit.
func NewMeta(p Params, total int) Meta {
	totalPages := 0
	if p.Limit > 0 {
		totalPages = (total + p.Limit - 1) / p.Limit
	}

	return Meta{
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    p.Page < totalPages,
	}
}

// FromRequest reads "page" and "limit" (or "size") from the query string.
//
// Unparsable or non-positive values fall back to the defaults; a limit above
// [MaxLimit] is clamped to it.
func FromRequest(request *http.Request) Params {
	query := request.URL.Query()

	page := positiveInt(query.Get("page"), DefaultPage)

	rawLimit := query.Get("limit")
	if rawLimit == "" {
		rawLimit = query.Get("size")
	}
	limit := min(positiveInt(rawLimit, DefaultLimit), MaxLimit)

	return Params{Page: page, Limit: limit}
}

func positiveInt(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
