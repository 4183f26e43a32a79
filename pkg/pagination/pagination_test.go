// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/taskboard/pkg/pagination"
)

func TestFromRequest(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  pagination.Params
	}{
		{"Defaults", "", pagination.Params{Page: 1, Limit: 20}},
		{"Explicit", "?page=3&limit=5", pagination.Params{Page: 3, Limit: 5}},
		{"NegativePage", "?page=-2", pagination.Params{Page: 1, Limit: 20}},
		{"Garbage", "?page=x&limit=y", pagination.Params{Page: 1, Limit: 20}},
		{"ClampedLimit", "?limit=1000", pagination.Params{Page: 1, Limit: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest("GET", "/api/tasks"+tt.query, nil)
			assert.Equal(t, tt.want, pagination.FromRequest(request))
		})
	}
}

func TestFromRequestWithLimit(t *testing.T) {
	request := httptest.NewRequest("GET", "/api/admin/users/tasks", nil)
	assert.Equal(t, pagination.Params{Page: 1, Limit: 10}, pagination.FromRequestWithLimit(request, pagination.AdminDefaultLimit))
}

func TestParams_Offset(t *testing.T) {
	assert.Equal(t, 0, pagination.Params{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 20, pagination.Params{Page: 3, Limit: 10}.Offset())
}

func TestNewMeta(t *testing.T) {
	meta := pagination.NewMeta(2, 10, 25)
	assert.Equal(t, 3, meta.TotalPages)
	assert.Equal(t, 0, pagination.NewMeta(1, 0, 5).TotalPages)
}
