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

package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/gantry-dev/gantry/config"
	"github.com/gantry-dev/gantry/engine"
	"github.com/gantry-dev/gantry/logging"
	"github.com/gantry-dev/gantry/router"
)

// AppLifecycleSuite exercises an application through its full lifecycle
// with a mounted engine.
type AppLifecycleSuite struct {
	suite.Suite

	app  *App
	blog *engine.Engine
}

func (s *AppLifecycleSuite) SetupTest() {
	s.blog = engine.New("blog",
		engine.WithIsolation(),
		engine.WithConfig(config.WithValues(map[string]any{
			"posts_per_page": 5,
		})),
	)
	s.blog.Router().GET("/posts", func(c *router.Context) {
		c.String(http.StatusOK, "posts")
	}).SetName("posts.index")

	s.app = New("lifecycle",
		WithBanner(false),
		WithLogger(logging.Noop()),
		WithShutdownTimeout(time.Second),
	)
	s.app.Router().GET("/", func(c *router.Context) {
		c.String(http.StatusOK, "home")
	})
	s.Require().NoError(s.app.Mount("/blog", s.blog))
}

func (s *AppLifecycleSuite) TestBootThenServe() {
	s.Require().NoError(s.app.Boot(context.Background()))
	s.True(s.app.Booted())

	w := httptest.NewRecorder()
	s.app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/blog/posts", nil))
	s.Equal(http.StatusOK, w.Code)
	s.Equal("posts", w.Body.String())
}

func (s *AppLifecycleSuite) TestEngineSettingsAvailableAfterBoot() {
	s.Require().NoError(s.app.Boot(context.Background()))
	s.Equal(5, s.blog.Settings().Int("posts_per_page"))
	s.True(s.blog.Settings().Frozen())
}

func (s *AppLifecycleSuite) TestReverseRoutingInsideEngine() {
	s.Require().NoError(s.app.Boot(context.Background()))

	url, err := s.app.Router().URL("blog.posts.index")
	s.Require().NoError(err)
	s.Equal("/blog/posts", url)
}

func (s *AppLifecycleSuite) TestRunStopsOnContextCancel() {
	s.Require().NoError(s.app.Boot(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- s.app.Run(ctx, "127.0.0.1:0")
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		s.NoError(err)
	case <-time.After(5 * time.Second):
		s.Fail("server did not stop after context cancellation")
	}
}

func TestAppLifecycleSuite(t *testing.T) {
	suite.Run(t, new(AppLifecycleSuite))
}
