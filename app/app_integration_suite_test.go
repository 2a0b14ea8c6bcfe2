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

package app_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/gantry-dev/gantry/app"
	"github.com/gantry-dev/gantry/config"
	"github.com/gantry-dev/gantry/engine"
	"github.com/gantry-dev/gantry/logging"
	"github.com/gantry-dev/gantry/router"
)

func TestAppIntegration(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "App Integration Suite")
}

var _ = Describe("App Integration", func() {
	newApp := func() *app.App {
		return app.New("integration",
			app.WithBanner(false),
			app.WithLogger(logging.Noop()),
		)
	}

	Describe("Engine mounting", func() {
		It("serves host and engine routes side by side", func() {
			blog := engine.New("blog")
			blog.Router().GET("/posts", func(c *router.Context) {
				c.String(http.StatusOK, "blog posts")
			})

			shop := engine.New("shop")
			shop.Router().GET("/products", func(c *router.Context) {
				c.String(http.StatusOK, "shop products")
			})

			a := newApp()
			a.Router().GET("/", func(c *router.Context) {
				c.String(http.StatusOK, "home")
			})
			Expect(a.Mount("/blog", blog)).To(Succeed())
			Expect(a.Mount("/shop", shop)).To(Succeed())
			Expect(a.Boot(context.Background())).To(Succeed())

			for path, want := range map[string]string{
				"/":              "home",
				"/blog/posts":    "blog posts",
				"/shop/products": "shop products",
			} {
				rec := httptest.NewRecorder()
				a.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
				Expect(rec.Code).To(Equal(http.StatusOK), path)
				Expect(rec.Body.String()).To(Equal(want), path)
			}
		})

		It("keeps engine middleware away from host routes", func() {
			upcase := func(c *router.Context) {
				rec := httptest.NewRecorder()
				original := c.Response
				c.Response = rec
				c.Next()
				c.Response = original
				c.Response.WriteHeader(rec.Code)
				_, _ = c.Response.Write([]byte(strings.ToUpper(rec.Body.String())))
			}

			blog := engine.New("blog")
			blog.Use(upcase)
			blog.Router().GET("/hello", func(c *router.Context) {
				c.String(http.StatusOK, "hello from blog")
			})

			a := newApp()
			a.Router().GET("/hello", func(c *router.Context) {
				c.String(http.StatusOK, "hello from host")
			})
			Expect(a.Mount("/blog", blog)).To(Succeed())
			Expect(a.Boot(context.Background())).To(Succeed())

			rec := httptest.NewRecorder()
			a.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/blog/hello", nil))
			Expect(rec.Body.String()).To(Equal("HELLO FROM BLOG"))

			rec = httptest.NewRecorder()
			a.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/hello", nil))
			Expect(rec.Body.String()).To(Equal("hello from host"))
		})
	})

	Describe("Configuration", func() {
		It("resolves engine settings above host settings and freezes at boot", func() {
			blog := engine.New("blog", engine.WithConfig(config.WithValues(map[string]any{
				"theme": "engine-dark",
			})))

			a := app.New("integration",
				app.WithBanner(false),
				app.WithLogger(logging.Noop()),
				app.WithConfig(config.WithValues(map[string]any{
					"theme":     "host-light",
					"analytics": true,
				})),
			)
			Expect(a.Mount("/blog", blog)).To(Succeed())
			Expect(a.Boot(context.Background())).To(Succeed())

			Expect(blog.Settings().String("theme")).To(Equal("engine-dark"))
			Expect(blog.Settings().Bool("analytics")).To(BeTrue())
			Expect(a.Settings().String("theme")).To(Equal("host-light"))
			Expect(a.Settings().Frozen()).To(BeTrue())
		})
	})

	Describe("Helpers", func() {
		It("isolates engine helpers from the host namespace", func() {
			blog := engine.New("blog", engine.WithIsolation())
			blog.Helpers().Register("format_title", func(args ...any) string {
				return "blog title"
			})

			a := newApp()
			a.Helpers().Register("site_name", func(args ...any) string {
				return "Gantry Demo"
			})
			Expect(a.Mount("/blog", blog)).To(Succeed())
			Expect(a.Boot(context.Background())).To(Succeed())

			Expect(blog.Helpers().Has("format_title")).To(BeTrue())
			Expect(blog.Helpers().Has("site_name")).To(BeFalse())
			Expect(blog.Helpers().Host().Has("site_name")).To(BeTrue())
			Expect(a.Helpers().Has("format_title")).To(BeFalse())
		})
	})
})
