package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"respondo.app/backend/internal/http/handler"
	"respondo.app/backend/internal/prompt"
)

var _ = Describe("MetaHandler", func() {
	var (
		router *gin.Engine
		svc    *mockInstructionService
		info   handler.ServiceInfo
	)

	BeforeEach(func() {
		svc = &mockInstructionService{current: &prompt.Instruction{Text: "Be brief."}}
		info = handler.ServiceInfo{Name: "respondo", Version: "1.0.0", Model: "gemini-2.0-flash", Provider: "gemini"}
	})

	JustBeforeEach(func() {
		router = gin.New()
		h := handler.NewMetaHandler(svc, info)
		router.GET("/", h.Status)
		router.GET("/health", h.Health)
		router.POST("/reload-prompt", h.ReloadPrompt)
	})

	get := func(path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w
	}

	It("reports health", func() {
		w := get("/health")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(decode(w)).To(Equal(map[string]any{"status": "healthy"}))
	})

	It("reports service status with the standard endpoint", func() {
		resp := decode(get("/"))
		Expect(resp["status"]).To(Equal("running"))
		Expect(resp["model"]).To(Equal("gemini-2.0-flash"))
		Expect(resp["provider"]).To(Equal("gemini"))
		Expect(resp["endpoint"]).To(Equal("standard"))
		Expect(resp["prompt_loaded"]).To(BeTrue())
	})

	Context("with a custom endpoint and no instruction", func() {
		BeforeEach(func() {
			info.CustomEndpoint = true
			svc.current = nil
		})

		It("reports both", func() {
			resp := decode(get("/"))
			Expect(resp["endpoint"]).To(Equal("custom"))
			Expect(resp["prompt_loaded"]).To(BeFalse())
		})
	})

	It("reloads the prompt and returns its new length", func() {
		svc.reloadFn = func(_ context.Context) (*prompt.Instruction, error) {
			return &prompt.Instruction{Text: "Reply in one sentence."}, nil
		}

		w := postJSON(router, "/reload-prompt", "")
		Expect(w.Code).To(Equal(http.StatusOK))
		resp := decode(w)
		Expect(resp["status"]).To(Equal("reloaded"))
		Expect(resp["prompt_length"]).To(BeNumerically("==", len("Reply in one sentence.")))
	})

	It("returns 500 when the reload fails", func() {
		svc.reloadFn = func(_ context.Context) (*prompt.Instruction, error) {
			return nil, errors.New("reloading instruction: permission denied")
		}

		w := postJSON(router, "/reload-prompt", "")
		Expect(w.Code).To(Equal(http.StatusInternalServerError))
		Expect(decode(w)["detail"]).To(ContainSubstring("permission denied"))
	})
})
