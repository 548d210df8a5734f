package middleware_test

import (
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"respondo.app/backend/common/logger"
	"respondo.app/backend/internal/http/middleware"
)

var _ = Describe("CORS", func() {
	var router *gin.Engine

	build := func(origins ...string) {
		router = gin.New()
		router.Use(middleware.CORS(middleware.CORSConfig{AllowedOrigins: origins}))
		router.POST("/api/suggest-reply", func(c *gin.Context) { c.Status(http.StatusOK) })
	}

	preflight := func(origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodOptions, "/api/suggest-reply", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", "POST")
		req.Header.Set("Access-Control-Request-Headers", "content-type, x-custom")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	It("answers preflight for any origin when wildcarded", func() {
		build("*")
		w := preflight("chrome-extension://abcdef")

		Expect(w.Code).To(Equal(http.StatusNoContent))
		Expect(w.Header().Get("Access-Control-Allow-Origin")).To(Equal("chrome-extension://abcdef"))
		Expect(w.Header().Get("Access-Control-Allow-Methods")).To(ContainSubstring("POST"))
		Expect(w.Header().Get("Access-Control-Allow-Headers")).To(Equal("content-type, x-custom"))
	})

	It("adds headers to simple requests", func() {
		build("*")
		req := httptest.NewRequest(http.MethodPost, "/api/suggest-reply", nil)
		req.Header.Set("Origin", "https://web.telegram.org")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Header().Get("Access-Control-Allow-Origin")).To(Equal("https://web.telegram.org"))
	})

	It("matches subdomain wildcards", func() {
		build("*.example.com")
		Expect(preflight("https://app.example.com").Code).To(Equal(http.StatusNoContent))
		Expect(preflight("https://example.org").Header().Get("Access-Control-Allow-Origin")).To(BeEmpty())
	})
})

var _ = Describe("RequestID", func() {
	var (
		router *gin.Engine
		seen   string
	)

	BeforeEach(func() {
		seen = ""
		router = gin.New()
		router.Use(middleware.RequestID())
		router.GET("/", func(c *gin.Context) {
			if rid := logger.GetLogFields(c.Request.Context()).RequestID; rid != nil {
				seen = *rid
			}
			c.Status(http.StatusOK)
		})
	})

	It("mints an id when none is supplied", func() {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		Expect(w.Header().Get(middleware.RequestIDHeader)).NotTo(BeEmpty())
		Expect(seen).To(Equal(w.Header().Get(middleware.RequestIDHeader)))
	})

	It("propagates an incoming id", func() {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(middleware.RequestIDHeader, "abc-123")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Header().Get(middleware.RequestIDHeader)).To(Equal("abc-123"))
		Expect(seen).To(Equal("abc-123"))
	})
})

var _ = Describe("Recovery", func() {
	It("turns panics into 500 with a detail body", func() {
		router := gin.New()
		router.Use(middleware.Recovery())
		router.GET("/", func(_ *gin.Context) { panic("boom") })

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		Expect(w.Code).To(Equal(http.StatusInternalServerError))
		Expect(w.Body.String()).To(ContainSubstring(`"detail"`))
	})
})
