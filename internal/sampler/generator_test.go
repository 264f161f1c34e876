package sampler_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/pkg/errors"

	"github.com/san-kum/measim/internal/sampler"
)

var _ = Describe("Generate", func() {
	var cfg sampler.Config

	BeforeEach(func() {
		cfg = sampler.DefaultConfig()
	})

	It("returns sequences of exactly n observations", func() {
		for _, m := range sampler.Models {
			for _, n := range []int{1, 2, 50, 200, 500} {
				cfg.Model, cfg.N = m, n
				s, err := sampler.Generate(cfg, 7)
				Expect(err).NotTo(HaveOccurred())
				Expect(s.Len()).To(Equal(n))
				Expect(s.Observed).To(HaveLen(n))
				Expect(s.Auxiliary).To(HaveLen(n))
				Expect(s.Outcome).To(HaveLen(n))
				Expect(s.Corrupted).To(HaveLen(n))
			}
		}
	})

	It("is bit-identical for a fixed seed and configuration", func() {
		for _, m := range sampler.Models {
			cfg.Model = m
			a, err := sampler.Generate(cfg, 42)
			Expect(err).NotTo(HaveOccurred())
			b, err := sampler.Generate(cfg, 42)
			Expect(err).NotTo(HaveOccurred())
			Expect(a).To(Equal(b))
			Expect(a.Fingerprint()).To(Equal(b.Fingerprint()))
		}
	})

	It("changes with the seed", func() {
		a, _ := sampler.Generate(cfg, 1)
		b, _ := sampler.Generate(cfg, 2)
		Expect(a.Fingerprint()).NotTo(Equal(b.Fingerprint()))
	})

	Context("classical model with p = 0", func() {
		It("observes every true value exactly", func() {
			cfg.Model = sampler.Classical
			cfg.P = 0
			cfg.SigmaME = 1
			s, err := sampler.Generate(cfg, 3)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Observed).To(Equal(s.True))
			Expect(s.CorruptedCount()).To(BeZero())
		})
	})

	Context("p = 1", func() {
		It("corrupts every observation", func() {
			cfg.P = 1
			s, _ := sampler.Generate(cfg, 3)
			Expect(s.CorruptedCount()).To(Equal(cfg.N))
		})
	})

	Context("sigma_ME = 0", func() {
		It("leaves observed values equal to true values in every model", func() {
			cfg.SigmaME = 0
			cfg.P = 1
			for _, m := range sampler.Models {
				cfg.Model = m
				s, err := sampler.Generate(cfg, 11)
				Expect(err).NotTo(HaveOccurred())
				Expect(s.Observed).To(Equal(s.True))
			}
		})
	})

	Context("heteroskedastic models", func() {
		It("scales the classical error by exp(-|x* - 0.5|)", func() {
			cfg.P = 1
			cfg.Model = sampler.Classical
			classical, _ := sampler.Generate(cfg, 5)

			for _, m := range []sampler.Model{sampler.Heteroskedastic, sampler.DuallyHeteroskedastic} {
				cfg.Model = m
				hetero, _ := sampler.Generate(cfg, 5)
				Expect(hetero.True).To(Equal(classical.True))
				for i, x := range hetero.True {
					eta := classical.Observed[i] - x
					want := eta * sampler.HeteroskedasticScale(x)
					Expect(hetero.Observed[i]-x).To(BeNumerically("~", want, 1e-12))
				}
			}
		})

		It("ties error variance to the distance from 0.5", func() {
			cfg.P = 1
			cfg.N = 500
			cfg.Model = sampler.Heteroskedastic
			s, _ := sampler.Generate(cfg, 9)
			for i, x := range s.True {
				e := s.Observed[i] - x
				bound := 5 * cfg.SigmaME * sampler.HeteroskedasticScale(x)
				Expect(math.Abs(e)).To(BeNumerically("<=", bound))
			}
		})

		It("spreads errors most near x* = 0.5", func() {
			cfg.P = 1
			cfg.N = 4000
			cfg.Model = sampler.Heteroskedastic
			s, err := sampler.Generate(cfg, 21)
			Expect(err).NotTo(HaveOccurred())

			var near, far float64
			var nNear, nFar int
			for i, x := range s.True {
				e := s.Observed[i] - x
				switch d := math.Abs(x - 0.5); {
				case d < 0.15:
					near += e * e
					nNear++
				case d > 0.35:
					far += e * e
					nFar++
				}
			}
			Expect(nNear).To(BeNumerically(">", 500))
			Expect(nFar).To(BeNumerically(">", 500))
			Expect(near / float64(nNear)).To(BeNumerically(">", 1.5*far/float64(nFar)))
		})

		It("scales the auxiliary noise only in the dual model", func() {
			cfg.Model = sampler.Heteroskedastic
			single, _ := sampler.Generate(cfg, 13)
			cfg.Model = sampler.Classical
			classical, _ := sampler.Generate(cfg, 13)
			Expect(single.Auxiliary).To(Equal(classical.Auxiliary))

			cfg.Model = sampler.DuallyHeteroskedastic
			dual, _ := sampler.Generate(cfg, 13)
			for i, x := range dual.True {
				zeta := classical.Auxiliary[i] - x
				Expect(dual.Auxiliary[i]-x).To(BeNumerically("~", zeta*sampler.HeteroskedasticScale(x), 1e-12))
			}
		})
	})

	Context("nonlinear auxiliary model", func() {
		It("centres Z on -(x* - 1)^2", func() {
			cfg.Model = sampler.NonlinearAuxiliary
			cfg.N = 500
			s, _ := sampler.Generate(cfg, 17)
			var sum float64
			for i, x := range s.True {
				sum += s.Auxiliary[i] + (x-1)*(x-1)
			}
			Expect(sum / float64(s.Len())).To(BeNumerically("~", 0, 0.05))
		})
	})

	Context("outcome", func() {
		It("is exactly the mean function when sigma_eps is zero", func() {
			cfg.SigmaEps = 0
			for _, o := range []sampler.Outcome{sampler.Quadratic, sampler.Linear} {
				cfg.Outcome = o
				s, _ := sampler.Generate(cfg, 19)
				for i, x := range s.True {
					Expect(s.Outcome[i]).To(Equal(o.Mean(x, cfg.Beta)))
				}
			}
		})
	})

	Context("design", func() {
		It("keeps uniform draws inside the bounds", func() {
			cfg.Design = sampler.Uniform
			cfg.Lower, cfg.Upper = 1, 10
			s, _ := sampler.Generate(cfg, 23)
			for _, x := range s.True {
				Expect(x).To(BeNumerically(">=", 1))
				Expect(x).To(BeNumerically("<", 10))
			}
		})
	})

	DescribeTable("rejects invalid configurations",
		func(mutate func(*sampler.Config), want error) {
			mutate(&cfg)
			s, err := sampler.Generate(cfg, 1)
			Expect(s).To(BeNil())
			Expect(errors.Is(err, want)).To(BeTrue())
		},
		Entry("zero n", func(c *sampler.Config) { c.N = 0 }, sampler.ErrInvalidConfig),
		Entry("negative sigma", func(c *sampler.Config) { c.SigmaME = -1 }, sampler.ErrInvalidConfig),
		Entry("p above one", func(c *sampler.Config) { c.P = 1.5 }, sampler.ErrInvalidConfig),
		Entry("unknown model", func(c *sampler.Config) { c.Model = sampler.Model(9) }, sampler.ErrUnknownModel),
		Entry("unknown design", func(c *sampler.Config) { c.Design = sampler.Design(9) }, sampler.ErrUnknownDesign),
		Entry("inverted bounds", func(c *sampler.Config) { c.Lower, c.Upper = 2, 1 }, sampler.ErrInvalidConfig),
	)
})
