package chat_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/chatbot-api/internal/chat"
)

var _ = Describe("Normalize", func() {
	It("lowercases", func() {
		Expect(chat.Normalize("HELLO")).To(Equal("hello"))
	})

	It("strips Greek diacritics", func() {
		Expect(chat.Normalize("ερώτηση")).To(Equal("ερωτηση"))
		Expect(chat.Normalize("Διοίκηση")).To(Equal("διοικηση"))
	})

	It("leaves unaccented text unchanged", func() {
		Expect(chat.Normalize("ρολος 42")).To(Equal("ρολος 42"))
	})
})

var _ = Describe("Tokenize", func() {
	It("splits on whitespace and punctuation", func() {
		Expect(chat.Tokenize("Ποιος είναι, ο ρόλος;")).To(
			Equal([]string{"ποιος", "ειναι", "ο", "ρολος"}))
	})

	It("keeps digits", func() {
		Expect(chat.Tokenize("άρθρο 12α")).To(Equal([]string{"αρθρο", "12α"}))
	})

	It("returns nothing for punctuation-only input", func() {
		Expect(chat.Tokenize("!!! ;;;")).To(BeEmpty())
	})
})
