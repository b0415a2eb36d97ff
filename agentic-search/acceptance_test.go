package main

import (
	"context"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/rs/zerolog"
)

var _ = Describe("xAI acceptance", func() {
	var cfg Config

	BeforeEach(func() {
		if os.Getenv("AGENTIC_SEARCH_ACCEPTANCE") != "true" {
			Skip("Set AGENTIC_SEARCH_ACCEPTANCE=true and XAI_API_KEY to run acceptance tests")
		}
		cfg = configFromEnv()
		if cfg.APIKey == "" {
			Skip("xAI acceptance tests require XAI_API_KEY")
		}
	})

	It("standard search returns an answer with citations", func() {
		handler := NewAgenticSearchHandler(cfg, NewXAIClientFactory(), zerolog.New(GinkgoWriter))
		res, out, err := handler(context.Background(), nil, SearchInput{Query: "Latest news on AI regulation"})
		Expect(err).NotTo(HaveOccurred())
		Expect(res).NotTo(BeNil())
		Expect(out.Result).NotTo(BeEmpty())
		Expect(out.ModelUsed).To(Equal("grok-4-1-fast-non-reasoning"))
		Expect(out.SourceCount).To(Equal(len(out.Citations)))
	})
})
