package normalize_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/flowcase-warehouse/internal/normalize"
)

func TestNormalize(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Normalize Suite")
}

var _ = Describe("ParseMultilang", func() {
	It("should split pipe segments into a code to text map", func() {
		Expect(normalize.ParseMultilang("int:Engineer|no:Ingeniør")).To(Equal(
			normalize.Multilang{"int": "Engineer", "no": "Ingeniør"},
		))
	})

	It("should return an empty map for blank input", func() {
		Expect(normalize.ParseMultilang("")).To(BeEmpty())
		Expect(normalize.ParseMultilang("   ")).To(BeEmpty())
	})

	It("should skip segments without a colon", func() {
		Expect(normalize.ParseMultilang("int:Engineer|garbage")).To(Equal(
			normalize.Multilang{"int": "Engineer"},
		))
	})

	It("should skip segments with an empty key or value", func() {
		Expect(normalize.ParseMultilang(":x|int: |no:Tekst")).To(Equal(
			normalize.Multilang{"no": "Tekst"},
		))
	})

	It("should keep the last value for a duplicated code", func() {
		Expect(normalize.ParseMultilang("int:A|int:B")).To(Equal(
			normalize.Multilang{"int": "B"},
		))
	})

	It("should trim whitespace around keys and values", func() {
		Expect(normalize.ParseMultilang(" int : Engineer ")).To(Equal(
			normalize.Multilang{"int": "Engineer"},
		))
	})
})

var _ = Describe("ToISODate", func() {
	It("should be idempotent for ISO input", func() {
		Expect(normalize.ToISODate("2024-03-15")).To(HaveValue(Equal("2024-03-15")))
	})

	It("should parse day-first dates", func() {
		Expect(normalize.ToISODate("15/03/2024")).To(HaveValue(Equal("2024-03-15")))
		Expect(normalize.ToISODate("02-01-2024")).To(HaveValue(Equal("2024-01-02")))
	})

	It("should not swap day and month on year-first input", func() {
		// 2024-01-02 is Jan 2nd, never Feb 1st.
		Expect(normalize.ToISODate("2024-01-02")).To(HaveValue(Equal("2024-01-02")))
	})

	It("should return nil for blank or unparseable input", func() {
		Expect(normalize.ToISODate("")).To(BeNil())
		Expect(normalize.ToISODate("not a date")).To(BeNil())
	})

	It("should accept ISO timestamps", func() {
		Expect(normalize.ToISODate("2024-03-15 10:30:00")).To(HaveValue(Equal("2024-03-15")))
	})
})

var _ = Describe("ToDate", func() {
	It("should return UTC midnight for the parsed day", func() {
		parsed := normalize.ToDate("2024-03-15")
		Expect(parsed).NotTo(BeNil())
		Expect(*parsed).To(Equal(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)))
	})
})

var _ = Describe("ToBool", func() {
	It("should return nil for blank input", func() {
		Expect(normalize.ToBool("")).To(BeNil())
	})

	It("should recognise the loose true set", func() {
		for _, raw := range []string{"true", "True", "1", "t", "YES", "y"} {
			Expect(normalize.ToBool(raw)).To(HaveValue(BeTrue()), "input %q", raw)
		}
	})

	It("should map anything else to false", func() {
		for _, raw := range []string{"false", "0", "no", "whatever"} {
			Expect(normalize.ToBool(raw)).To(HaveValue(BeFalse()), "input %q", raw)
		}
	})
})

var _ = Describe("CleanString", func() {
	It("should trim and fall back to the default", func() {
		Expect(normalize.CleanString("  hi  ", "x")).To(Equal("hi"))
		Expect(normalize.CleanString("   ", "x")).To(Equal("x"))
		Expect(normalize.CleanString("", "")).To(Equal(""))
	})
})

var _ = Describe("ClampPercent", func() {
	It("should clamp into [0,100]", func() {
		Expect(normalize.ClampPercent("150")).To(Equal(100))
		Expect(normalize.ClampPercent("-5")).To(Equal(0))
		Expect(normalize.ClampPercent("42")).To(Equal(42))
	})

	It("should default missing or unparseable input to zero", func() {
		Expect(normalize.ClampPercent("")).To(Equal(0))
		Expect(normalize.ClampPercent("n/a")).To(Equal(0))
	})

	It("should truncate float input", func() {
		Expect(normalize.ClampPercent("99.9")).To(Equal(99))
	})
})

var _ = Describe("ToIntPtr", func() {
	It("should coerce integers and float-formatted integers", func() {
		Expect(normalize.ToIntPtr("5")).To(HaveValue(Equal(5)))
		Expect(normalize.ToIntPtr("5.0")).To(HaveValue(Equal(5)))
	})

	It("should return nil instead of raising on bad input", func() {
		Expect(normalize.ToIntPtr("abc")).To(BeNil())
		Expect(normalize.ToIntPtr("")).To(BeNil())
	})
})
