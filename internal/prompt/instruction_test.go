package prompt_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"respondo.app/backend/internal/prompt"
)

type stubSource struct {
	mu      sync.Mutex
	content string
	err     error
}

func (s *stubSource) set(content string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.content, s.err = content, err
}

func (s *stubSource) Load(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.content, s.err
}

func (s *stubSource) Describe() string { return "stub" }

var _ = Describe("Extract", func() {
	DescribeTable("picks the instruction out of the resource",
		func(raw, expected string) {
			Expect(prompt.Extract(raw)).To(Equal(expected))
		},
		Entry("braced region", "SYSTEM_PROMPT = {\n  Be kind.\n}\n", "Be kind."),
		Entry("first region wins", "{one} {two}", "one"),
		Entry("first closing brace ends the region", "{a {b} c}", "a {b"),
		Entry("no region", "  Just text.\n", "Just text."),
		Entry("unclosed brace", "{ open only", "{ open only"),
		Entry("closing before opening", "} then {x}", "x"),
		Entry("empty region", "{}", ""),
	)
})

var _ = Describe("Store", func() {
	var (
		ctx    context.Context
		source *stubSource
		store  *prompt.Store
	)

	BeforeEach(func() {
		ctx = context.Background()
		source = &stubSource{}
		store = prompt.NewStore(source)
	})

	It("is empty before the first load", func() {
		Expect(store.Current()).To(BeNil())
		Expect(store.Current().Length()).To(BeZero())
	})

	It("loads the braced instruction", func() {
		source.set("{Reply briefly.}", nil)

		inst, err := store.Reload(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(inst.Text).To(Equal("Reply briefly."))
		Expect(inst.Origin).To(Equal("stub"))
		Expect(store.Current()).To(Equal(inst))
	})

	It("falls back to the built-in default when the source is absent", func() {
		source.set("", prompt.ErrSourceNotFound)

		inst, err := store.Reload(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(inst.Text).To(Equal(prompt.DefaultInstruction))
		Expect(inst.Origin).To(Equal(prompt.OriginDefault))
	})

	It("keeps the current instruction when the source fails", func() {
		source.set("first", nil)
		_, err := store.Reload(ctx)
		Expect(err).NotTo(HaveOccurred())

		source.set("", errors.New("permission denied"))
		_, err = store.Reload(ctx)
		Expect(err).To(MatchError(ContainSubstring("permission denied")))
		Expect(store.Current().Text).To(Equal("first"))
	})

	It("rejects an empty instruction", func() {
		source.set("{   }", nil)
		_, err := store.Reload(ctx)
		Expect(err).To(MatchError(prompt.ErrEmptyInstruction))
		Expect(store.Current()).To(BeNil())
	})

	It("counts length in characters", func() {
		source.set("Привет", nil)
		inst, err := store.Reload(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(inst.Length()).To(Equal(6))
	})

	It("never exposes a partially replaced instruction to concurrent readers", func() {
		oldText := strings.Repeat("a", 4096)
		newText := strings.Repeat("b", 8192)
		source.set(oldText, nil)
		_, err := store.Reload(ctx)
		Expect(err).NotTo(HaveOccurred())

		var wg sync.WaitGroup
		stop := make(chan struct{})
		torn := make(chan string, 1)
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer GinkgoRecover()
				defer wg.Done()
				for {
					select {
					case <-stop:
						return
					default:
					}
					text := store.Current().Text
					if text != oldText && text != newText {
						select {
						case torn <- text:
						default:
						}
					}
				}
			}()
		}

		for i := 0; i < 200; i++ {
			if i%2 == 0 {
				source.set(newText, nil)
			} else {
				source.set(oldText, nil)
			}
			_, err := store.Reload(ctx)
			Expect(err).NotTo(HaveOccurred())
		}
		close(stop)
		wg.Wait()

		Expect(torn).To(BeEmpty())
	})
})

var _ = Describe("file source", func() {
	It("reports a missing file as not found", func() {
		src := prompt.NewFileSource(filepath.Join(GinkgoT().TempDir(), "missing.txt"))
		_, err := src.Load(context.Background())
		Expect(err).To(MatchError(prompt.ErrSourceNotFound))
	})

	It("reloads after the file changes", func() {
		path := filepath.Join(GinkgoT().TempDir(), "system_prompt.txt")
		Expect(os.WriteFile(path, []byte("PROMPT = {short}"), 0o644)).To(Succeed())

		store := prompt.NewStore(prompt.NewFileSource(path))
		inst, err := store.Reload(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(inst.Length()).To(Equal(5))

		Expect(os.WriteFile(path, []byte("PROMPT = {a much longer instruction}"), 0o644)).To(Succeed())
		inst, err = store.Reload(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(inst.Length()).To(Equal(len("a much longer instruction")))
		Expect(store.Source()).To(Equal("file:" + path))
	})
})
