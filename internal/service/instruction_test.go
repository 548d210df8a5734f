package service_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"respondo.app/backend/internal/prompt"
	"respondo.app/backend/internal/service"
)

var _ = Describe("InstructionService", func() {
	var (
		ctx         context.Context
		store       *mockInstructionStore
		broadcaster *mockBroadcaster
	)

	BeforeEach(func() {
		ctx = context.Background()
		store = &mockInstructionStore{current: &prompt.Instruction{Text: "old"}}
		broadcaster = &mockBroadcaster{}
	})

	It("swaps in the reloaded instruction and notifies peers", func() {
		store.reloadFn = func(_ context.Context) (*prompt.Instruction, error) {
			return &prompt.Instruction{Text: "a longer instruction"}, nil
		}
		svc := service.NewInstructionService(store, broadcaster)

		inst, err := svc.Reload(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(inst.Length()).To(Equal(len("a longer instruction")))
		Expect(svc.Current().Text).To(Equal("a longer instruction"))
		Expect(broadcaster.calls).To(Equal(1))
	})

	It("keeps the old instruction and skips the broadcast on failure", func() {
		store.reloadFn = func(_ context.Context) (*prompt.Instruction, error) {
			return nil, prompt.ErrEmptyInstruction
		}
		svc := service.NewInstructionService(store, broadcaster)

		_, err := svc.Reload(ctx)
		Expect(err).To(MatchError(prompt.ErrEmptyInstruction))
		Expect(svc.Current().Text).To(Equal("old"))
		Expect(broadcaster.calls).To(BeZero())
	})

	It("succeeds when the broadcast fails", func() {
		broadcaster.publishFn = func(_ context.Context) error { return errors.New("redis down") }
		svc := service.NewInstructionService(store, broadcaster)

		_, err := svc.Reload(ctx)
		Expect(err).NotTo(HaveOccurred())
	})

	It("works without a broadcaster", func() {
		svc := service.NewInstructionService(store, nil)
		_, err := svc.Reload(ctx)
		Expect(err).NotTo(HaveOccurred())
	})
})
