// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToPgx5DSN(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"postgres://u:p@db:5432/tasks", "pgx5://u:p@db:5432/tasks"},
		{"postgresql://u:p@db/tasks?sslmode=disable", "pgx5://u:p@db/tasks?sslmode=disable"},
		{"pgx5://u:p@db/tasks", "pgx5://u:p@db/tasks"},
		{"host=db user=u", "host=db user=u"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, toPgx5DSN(tt.in))
		})
	}
}

func TestSourceURL(t *testing.T) {
	assert.Equal(t, "file://./data/migrations", sourceURL("./data/migrations"))
	assert.Equal(t, "file:///srv/migrations", sourceURL("file:///srv/migrations"))
}
