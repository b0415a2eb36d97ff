package main

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Result formatting", func() {
	standard, _ := ProfileFor(DepthStandard)

	Context("NewSearchResult", func() {
		It("should copy answer and citations and count sources", func() {
			result := NewSearchResult(&Completion{
				Content:   "Answer text",
				Citations: []string{"http://a", "http://b"},
			}, standard, DepthStandard)

			Expect(result.Result).To(Equal("Answer text"))
			Expect(result.Citations).To(Equal([]string{"http://a", "http://b"}))
			Expect(result.SourceCount).To(Equal(2))
			Expect(result.ModelUsed).To(Equal("grok-4-1-fast-non-reasoning"))
			Expect(result.Depth).To(Equal("standard"))
		})

		It("should use an empty, non-nil citation list when there are none", func() {
			result := NewSearchResult(&Completion{Content: "Answer text"}, standard, DepthStandard)
			Expect(result.Citations).NotTo(BeNil())
			Expect(result.Citations).To(BeEmpty())
			Expect(result.SourceCount).To(Equal(0))
		})

		It("should tolerate a missing completion", func() {
			result := NewSearchResult(nil, standard, DepthStandard)
			Expect(result.Result).To(BeEmpty())
			Expect(result.SourceCount).To(Equal(len(result.Citations)))
		})
	})

	Context("FormatText", func() {
		It("should append a citations block", func() {
			text := FormatText(SearchResult{
				Result:    "Answer text",
				Citations: []string{"http://a", "http://b"},
			})
			Expect(text).To(Equal("Answer text\n\n---\nCitations:\n- http://a\n- http://b"))
		})

		It("should not append a citations block without citations", func() {
			text := FormatText(SearchResult{Result: "Answer text", Citations: []string{}})
			Expect(text).To(Equal("Answer text"))
			Expect(text).NotTo(ContainSubstring("Citations:"))
		})
	})

	Context("truncate", func() {
		It("should keep short strings", func() {
			Expect(truncate("short", 100)).To(Equal("short"))
		})

		It("should cut on rune boundaries", func() {
			Expect(truncate("héllo wörld", 5)).To(Equal("héllo..."))
		})
	})
})
