package world_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/dotfield/internal/config"
	"github.com/san-kum/dotfield/internal/field"
	"github.com/san-kum/dotfield/internal/pointer"
	"github.com/san-kum/dotfield/internal/world"
)

var small = field.Extent{Width: 400, Height: 300}

var _ = Describe("Gestures", func() {
	var (
		cfg *config.Config
		w   *world.World
		now time.Time
	)

	build := func() {
		clock := pointer.New(cfg.Mapping(), field.Extent{}).WithClock(func() time.Time { return now })
		var err error
		w, err = world.New(cfg, nil, world.WithPointer(clock))
		Expect(err).NotTo(HaveOccurred())
		Expect(w.Setup(small)).To(Succeed())
	}

	drag := func(frames int) {
		w.PointerDown(small.Width*0.9, small.Height*0.1)
		for i := 0; i < frames; i++ {
			w.Step()
		}
	}

	allIn := func(state field.ResetState) bool {
		for _, p := range w.Particles() {
			if p.State() != state {
				return false
			}
		}
		return true
	}

	BeforeEach(func() {
		cfg = config.DefaultConfig()
		now = time.Unix(1000, 0)
	})

	Context("with reset on release", func() {
		BeforeEach(build)

		It("starts every particle resetting from where it stands", func() {
			drag(10)
			now = now.Add(time.Second)
			w.PointerUp()

			Expect(allIn(field.Resetting)).To(BeTrue())
			for _, p := range w.Particles() {
				Expect(p.ResetFrom()).To(Equal(p.Pos()))
			}
			Expect(w.Pointer()).To(Equal(field.Pointer{}))
		})

		It("cancels the reset on a new press without moving anything", func() {
			drag(10)
			now = now.Add(time.Second)
			w.PointerUp()
			w.Step()
			w.Step()

			positions := make([]field.Vec, len(w.Particles()))
			for i, p := range w.Particles() {
				positions[i] = p.Pos()
			}

			now = now.Add(time.Second)
			w.PointerDown(10, 10)

			Expect(allIn(field.Free)).To(BeTrue())
			for i, p := range w.Particles() {
				Expect(p.Pos()).To(Equal(positions[i]))
			}
		})

		It("resumes and converges after a cancel", func() {
			drag(10)
			now = now.Add(time.Second)
			w.PointerUp()
			w.Step()
			now = now.Add(time.Second)
			w.PointerDown(10, 10)
			w.Step()
			now = now.Add(time.Second)
			w.PointerUp()

			Eventually(func() int {
				w.Step()
				return w.ResettingCount()
			}).WithTimeout(5 * time.Second).WithPolling(time.Microsecond).Should(BeZero())

			for _, p := range w.Particles() {
				Expect(p.Pos()).To(Equal(p.Rest()))
			}
		})

		It("does not reset on blur", func() {
			drag(5)
			w.Blur()

			Expect(allIn(field.Free)).To(BeTrue())
			Expect(w.Pointer().Pressed).To(BeFalse())
		})

		It("waits for the last touch before resetting", func() {
			w.TouchStart(100, 100)
			now = now.Add(time.Second)
			w.TouchStart(300, 200)
			w.Step()

			w.TouchEnd()
			Expect(allIn(field.Free)).To(BeTrue())
			Expect(w.Pointer().Pressed).To(BeTrue())

			w.TouchEnd()
			Expect(allIn(field.Resetting)).To(BeTrue())
		})

		It("keeps the original origin when released twice", func() {
			drag(10)
			now = now.Add(time.Second)
			w.PointerUp()
			origins := make([]field.Vec, len(w.Particles()))
			for i, p := range w.Particles() {
				origins[i] = p.ResetFrom()
			}

			w.Step()
			w.DoubleTap()

			for i, p := range w.Particles() {
				Expect(p.ResetFrom()).To(Equal(origins[i]))
			}
		})
	})

	Context("without reset on release", func() {
		BeforeEach(func() {
			cfg.Physics.ResetOnRelease = false
			build()
		})

		It("leaves particles free on release", func() {
			drag(5)
			w.PointerUp()

			Expect(allIn(field.Free)).To(BeTrue())
		})

		It("still resets on a double tap", func() {
			w.PointerDown(100, 100)
			w.Step()
			w.PointerUp()

			now = now.Add(150 * time.Millisecond)
			w.PointerDown(100, 100)

			Expect(allIn(field.Resetting)).To(BeTrue())
		})

		It("ignores presses further apart than the double tap window", func() {
			w.PointerDown(100, 100)
			w.PointerUp()

			now = now.Add(pointer.DoubleTapWindow + time.Millisecond)
			w.PointerDown(100, 100)

			Expect(allIn(field.Free)).To(BeTrue())
		})
	})
})
