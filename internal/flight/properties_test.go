package flight_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/waterrocket/internal/flight"
	"github.com/san-kum/waterrocket/internal/physics"
)

func referenceConfig() physics.Config {
	return physics.Config{
		BottleVolume:   2.5e-3,
		BottleMass:     0.05,
		PayloadMass:    0.4,
		WaterFraction:  0.4,
		NozzleDiameter: 0.01,
		BodyDiameter:   0.12,
		DragCoeff:      0.3,
		GaugePressure:  7e5,
		LaunchAngle:    10,
		AirDensity:     1.225,
		WaterDensity:   1000,
		GasConstant:    287.05,
		Atmospheric:    101325,
		Temperature:    293.15,
		Gravity:        9.81,
		TimeStep:       0.001,
		MaxTime:        30,
	}
}

var _ = Describe("Run", func() {
	var (
		ctx context.Context
		cfg physics.Config
	)

	BeforeEach(func() {
		ctx = context.Background()
		cfg = referenceConfig()
	})

	Context("with the reference rocket", func() {
		var traj *flight.Trajectory

		BeforeEach(func() {
			var err error
			traj, err = flight.Run(ctx, cfg)
			Expect(err).NotTo(HaveOccurred())
		})

		It("expels the water early in the flight", func() {
			sum := traj.Summary()
			Expect(sum.ExpulsionTime).To(BeNumerically(">", 0.1))
			Expect(sum.ExpulsionTime).To(BeNumerically("<", 0.7))
		})

		It("reaches a single apogee after water expulsion", func() {
			sum := traj.Summary()
			Expect(sum.ApogeeTime).To(BeNumerically(">", sum.ExpulsionTime))

			crossings := 0
			for i := 1; i < traj.Len(); i++ {
				if traj.States[i-1].VerticalVelocity > 0 && traj.States[i].VerticalVelocity <= 0 {
					crossings++
				}
			}
			Expect(crossings).To(Equal(1))
		})

		It("touches down at exactly zero altitude", func() {
			last := traj.Last()
			Expect(last.Altitude).To(Equal(0.0))
			Expect(last.VerticalVelocity).To(BeNumerically("<", 0))
		})

		It("never regains expelled water", func() {
			prev := traj.States[0].WaterMass
			for _, s := range traj.States[1:] {
				Expect(s.WaterMass).To(BeNumerically("<=", prev))
				Expect(s.WaterMass).To(BeNumerically(">=", 0))
				prev = s.WaterMass
			}
			Expect(prev).To(BeZero())
		})

		It("keeps the cushion at or above atmospheric pressure", func() {
			for _, s := range traj.States {
				Expect(s.AirPressure).To(BeNumerically(">=", cfg.Atmospheric))
			}
		})

		It("keeps the cushion inside the bottle", func() {
			for _, s := range traj.States {
				Expect(s.AirVolume).To(BeNumerically("<=", cfg.BottleVolume+1e-15))
			}
		})

		It("carries only the water as variable mass", func() {
			for _, s := range traj.States {
				Expect(physics.TotalMass(cfg, s)).To(Equal(cfg.BottleMass + cfg.PayloadMass + s.WaterMass))
			}
		})

		It("produces non-negative thrust and opposing drag everywhere", func() {
			for _, s := range traj.States {
				Expect(physics.Thrust(cfg, s)).To(BeNumerically(">=", 0))

				drag := physics.Drag(cfg, s)
				switch {
				case s.VerticalVelocity > 0:
					Expect(drag).To(BeNumerically("<=", 0))
				case s.VerticalVelocity < 0:
					Expect(drag).To(BeNumerically(">=", 0))
				default:
					Expect(drag).To(BeZero())
				}
			}
		})
	})

	It("is deterministic across runs", func() {
		a, err := flight.Run(ctx, cfg)
		Expect(err).NotTo(HaveOccurred())
		b, err := flight.Run(ctx, cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(b.States).To(Equal(a.States))
	})

	It("derives identical summaries on repeated scans", func() {
		traj, err := flight.Run(ctx, cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(traj.Summary()).To(Equal(traj.Summary()))
	})

	It("derives identical initial states from equal configs", func() {
		Expect(physics.InitialState(cfg)).To(Equal(physics.InitialState(cfg)))
	})

	Context("with no water loaded", func() {
		BeforeEach(func() {
			cfg.WaterFraction = 0
			cfg.MaxTime = 2 // dry flights end only at the time cap
		})

		It("flies on air thrust from the start", func() {
			traj, err := flight.Run(ctx, cfg)
			Expect(err).NotTo(HaveOccurred())

			sum := traj.Summary()
			Expect(sum.ExpulsionTime).To(BeZero())

			for _, s := range traj.States {
				Expect(s.WaterMass).To(BeZero())
			}
			Expect(traj.States[1].VerticalAccel).To(BeNumerically(">", 0))
			Expect(traj.Last().Time).To(BeNumerically(">=", cfg.MaxTime))
		})
	})

	Context("with a fully water-filled bottle", func() {
		BeforeEach(func() {
			cfg.WaterFraction = 1
		})

		It("stays finite with no cushion at launch", func() {
			traj, err := flight.Run(ctx, cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(traj.Len()).To(BeNumerically(">=", 2))

			for _, s := range traj.States {
				Expect(math.IsNaN(s.AirPressure)).To(BeFalse())
				Expect(math.IsNaN(s.Altitude)).To(BeFalse())
				Expect(math.IsNaN(s.VerticalVelocity)).To(BeFalse())
			}
			Expect(traj.Last().Altitude).To(Equal(0.0))
		})
	})

	Context("launched straight up", func() {
		BeforeEach(func() {
			cfg.LaunchAngle = 0
		})

		It("never drifts downrange", func() {
			traj, err := flight.Run(ctx, cfg)
			Expect(err).NotTo(HaveOccurred())

			for _, s := range traj.States {
				Expect(s.Distance).To(BeNumerically("~", 0, 1e-12))
				Expect(s.HorizontalVelocity).To(BeNumerically("~", 0, 1e-12))
			}
		})
	})

	It("rejects a meaningless configuration", func() {
		cfg.WaterFraction = 1.5
		traj, err := flight.Run(ctx, cfg)
		Expect(err).To(MatchError(physics.ErrInvalidConfig))
		Expect(traj).To(BeNil())
	})
})
