// Copyright 2026 The Gantry Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableName_Isolated(t *testing.T) {
	t.Parallel()

	e := New("blog", WithIsolation())

	tests := []struct {
		model string
		want  string
	}{
		{"Post", "blog_posts"},
		{"Category", "blog_categories"},
		{"CommentBox", "blog_comment_boxes"},
		{"HTTPLog", "blog_http_logs"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, e.TableName(tt.model), "model %s", tt.model)
	}
}

func TestTableName_SharedNamespace(t *testing.T) {
	t.Parallel()

	e := New("widgets")
	assert.Equal(t, "posts", e.TableName("Post"))
	assert.Equal(t, "posts", HostTableName("Post"))
}

func TestToSnake(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"Post", "post"},
		{"BlogPost", "blog_post"},
		{"HTTPServer", "http_server"},
		{"userID", "user_id"},
		{"already_snake", "already_snake"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, toSnake(tt.in), "input %s", tt.in)
	}
}

func TestPluralize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"post", "posts"},
		{"category", "categories"},
		{"box", "boxes"},
		{"class", "classes"},
		{"branch", "branches"},
		{"day", "days"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, pluralize(tt.in), "input %s", tt.in)
	}
}
