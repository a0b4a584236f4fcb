package stepper

import (
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/sortstep/internal/algorithms"
	"github.com/san-kum/sortstep/internal/narrate"
	"github.com/san-kum/sortstep/internal/sortstep"
)

var _ = Describe("Scheduler", func() {
	var (
		clock    *ManualClock
		rec      *recorder
		sched    *Scheduler
		registry *algorithms.Registry
	)

	gen := func(name string) sortstep.Generator {
		g, err := registry.Get(name, narrate.English())
		Expect(err).NotTo(HaveOccurred())
		return g
	}

	BeforeEach(func() {
		clock = NewManualClock()
		rec = &recorder{}
		registry = algorithms.NewRegistry()
		sched = New(rec, Options{
			Clock:    clock,
			Notifier: rec,
			Controls: rec,
			Logger:   quietLogger,
		})
		Expect(sched.Replace(sortstep.Array{5, 1, 4, 2, 8}, "")).To(Succeed())
		rec.frames = nil
	})

	Describe("Start", func() {
		It("rejects lists with fewer than two elements", func() {
			Expect(sched.Replace(sortstep.Array{7}, "")).To(Succeed())
			err := sched.Start("bubble", gen("bubble"))

			var startErr *sortstep.StartError
			Expect(errors.As(err, &startErr)).To(BeTrue())
			Expect(err).To(MatchError(sortstep.ErrTooFewElements))
			Expect(sched.Running()).To(BeFalse())
			Expect(clock.Pending()).To(Equal(0))
		})

		It("rejects a second start while a run is active", func() {
			Expect(sched.Start("bubble", gen("bubble"))).To(Succeed())
			err := sched.Start("quick", gen("quick"))

			Expect(err).To(MatchError(sortstep.ErrAlreadyRunning))
			Expect(clock.Pending()).To(Equal(1))
		})

		It("disables start controls and schedules exactly one tick", func() {
			Expect(sched.Start("bubble", gen("bubble"))).To(Succeed())

			Expect(rec.running).To(Equal([]bool{true}))
			Expect(clock.Pending()).To(Equal(1))
			Expect(rec.last().Narration).To(Equal("Sorting with bubble..."))
			Expect(rec.last().Seq).To(Equal(0))
			Expect(sched.Steps()).To(Equal(0))
		})
	})

	Describe("ticking", func() {
		It("emits the first comparison with its highlights", func() {
			Expect(sched.Start("bubble", gen("bubble"))).To(Succeed())
			Expect(clock.Step()).To(BeTrue())

			f := rec.last()
			Expect(f.Step).NotTo(BeNil())
			Expect(f.Step.Kind).To(Equal(sortstep.KindCompare))
			Expect(f.Highlight).To(Equal([]int{0, 1}))
			Expect(f.Seq).To(Equal(1))
			Expect(f.Running).To(BeTrue())
			Expect(clock.Pending()).To(Equal(1))
		})

		It("runs to completion and commits the sorted list", func() {
			Expect(sched.Start("bubble", gen("bubble"))).To(Succeed())
			clock.Drain(1000)

			Expect(sched.Running()).To(BeFalse())
			Expect(sched.List()).To(Equal(sortstep.Array{1, 2, 4, 5, 8}))
			Expect(rec.notes).To(ContainElement("Sorting completed."))
			Expect(rec.running).To(Equal([]bool{true, false}))
			Expect(rec.last().Step.Kind).To(Equal(sortstep.KindDone))
			Expect(clock.Pending()).To(Equal(0))
			Expect(sched.Err()).NotTo(HaveOccurred())
		})

		It("paces structural markers with the longer delay", func() {
			Expect(sched.Replace(sortstep.Array{4, 2}, "")).To(Succeed())
			Expect(sched.Start("merge", gen("merge"))).To(Succeed())

			var at []time.Duration
			for clock.Step() {
				at = append(at, clock.Now())
			}
			ms := time.Millisecond
			// divide, merge, overwrite, overwrite, done
			Expect(at).To(Equal([]time.Duration{0, 800 * ms, 1600 * ms, 2200 * ms, 2800 * ms}))
			Expect(sched.List()).To(Equal(sortstep.Array{2, 4}))
		})

		It("produces the same frames on every run", func() {
			collect := func() []Frame {
				rec.frames = nil
				Expect(sched.Replace(sortstep.Array{9, 3, 3, 7, 1}, "")).To(Succeed())
				Expect(sched.Start("quick", gen("quick"))).To(Succeed())
				clock.Drain(1000)
				return rec.frames
			}
			Expect(collect()).To(Equal(collect()))
		})
	})

	Describe("Stop", func() {
		It("is a no-op when idle", func() {
			sched.Stop()
			Expect(rec.frames).To(BeEmpty())
			Expect(sched.Stopped()).To(BeFalse())
		})

		It("abandons the run and shows the committed list", func() {
			Expect(sched.Start("bubble", gen("bubble"))).To(Succeed())
			clock.Step()
			clock.Step()
			sched.Stop()

			Expect(sched.Running()).To(BeFalse())
			Expect(sched.Stopped()).To(BeTrue())
			Expect(clock.Pending()).To(Equal(0))
			Expect(rec.last().Narration).To(Equal("Animation stopped."))
			Expect(rec.last().Array).To(Equal(sortstep.Array{5, 1, 4, 2, 8}))
			Expect(sched.List()).To(Equal(sortstep.Array{5, 1, 4, 2, 8}))
			Expect(sched.Steps()).To(Equal(2))
			Expect(rec.running).To(Equal([]bool{true, false}))
		})

		It("is idempotent", func() {
			Expect(sched.Start("bubble", gen("bubble"))).To(Succeed())
			clock.Step()
			sched.Stop()
			frames := len(rec.frames)
			sched.Stop()

			Expect(rec.frames).To(HaveLen(frames))
			Expect(rec.running).To(Equal([]bool{true, false}))
		})

		It("allows a fresh start afterwards", func() {
			Expect(sched.Start("bubble", gen("bubble"))).To(Succeed())
			sched.Stop()
			Expect(sched.Start("selection", gen("selection"))).To(Succeed())
			clock.Drain(1000)
			Expect(sched.List()).To(Equal(sortstep.Array{1, 2, 4, 5, 8}))
		})
	})

	Describe("Skip", func() {
		It("sorts the list without further steps", func() {
			Expect(sched.Start("insertion", gen("insertion"))).To(Succeed())
			clock.Step()
			clock.Step()
			clock.Step()
			sched.Skip()

			Expect(sched.List()).To(Equal(sortstep.Array{1, 2, 4, 5, 8}))
			Expect(rec.last().Highlight).To(BeEmpty())
			Expect(rec.last().Narration).To(Equal("Animation skipped. List sorted."))
			Expect(rec.notes).To(ContainElement("List sorted without animation."))
			Expect(clock.Pending()).To(Equal(0))
			Expect(sched.Running()).To(BeFalse())
		})

		It("matches a completed run for every algorithm at any point", func() {
			input := sortstep.Array{42, 7, 7, 100, 1, 63, 18, 5}
			for _, name := range registry.Names() {
				Expect(sched.Replace(input, "")).To(Succeed())
				Expect(sched.Start(name, gen(name))).To(Succeed())
				clock.Drain(1000)
				want := sched.List()

				for k := 0; k < 12; k++ {
					Expect(sched.Replace(input, "")).To(Succeed())
					Expect(sched.Start(name, gen(name))).To(Succeed())
					clock.Drain(k)
					sched.Skip()
					Expect(sched.List()).To(Equal(want), "%s skipped after %d ticks", name, k)
				}
			}
		})

		It("is a no-op when idle", func() {
			sched.Skip()
			Expect(sched.List()).To(Equal(sortstep.Array{5, 1, 4, 2, 8}))
			Expect(rec.frames).To(BeEmpty())
		})
	})

	Describe("Reset", func() {
		It("cancels the run and clears the list", func() {
			Expect(sched.Start("quick", gen("quick"))).To(Succeed())
			clock.Step()
			sched.Reset()

			Expect(sched.Running()).To(BeFalse())
			Expect(sched.Stopped()).To(BeFalse())
			Expect(sched.List()).To(BeEmpty())
			Expect(sched.Steps()).To(Equal(0))
			Expect(clock.Pending()).To(Equal(0))
			Expect(rec.last().Array).To(BeEmpty())
		})
	})

	Describe("list edits", func() {
		It("are rejected while a run is active", func() {
			Expect(sched.Start("bubble", gen("bubble"))).To(Succeed())
			Expect(sched.Append(3, "")).To(MatchError(sortstep.ErrBusy))
			Expect(sched.Replace(sortstep.Array{1, 2}, "")).To(MatchError(sortstep.ErrBusy))
		})

		It("stop at the maximum length", func() {
			full := make(sortstep.Array, sortstep.MaxLength)
			for i := range full {
				full[i] = i + 1
			}
			Expect(sched.Replace(full, "")).To(Succeed())
			Expect(sched.Append(3, "")).To(MatchError(sortstep.ErrListFull))
		})
	})

	Describe("generator invariant violations", func() {
		expectFault := func(target error) {
			err := sched.Err()
			Expect(err).To(HaveOccurred())
			Expect(sortstep.IsInvariant(err)).To(BeTrue())
			Expect(err).To(MatchError(target))
			Expect(rec.last().Fault).To(MatchError(target))
			Expect(rec.notes).To(BeEmpty())
			Expect(sched.Running()).To(BeFalse())
			Expect(sched.List()).To(Equal(sortstep.Array{5, 1, 4, 2, 8}))
			Expect(clock.Pending()).To(Equal(0))
		}

		It("ends the run on an out-of-range index", func() {
			Expect(sched.Start("broken", badIndex{})).To(Succeed())
			clock.Step()
			expectFault(sortstep.ErrIndexOutOfRange)
		})

		It("ends the run when the step budget is exhausted", func() {
			Expect(sched.Start("endless", endless{})).To(Succeed())
			clock.Drain(sortstep.StepBudget(5) + 10)
			expectFault(sortstep.ErrNoProgress)
		})

		It("rejects a Done that is not sorted", func() {
			Expect(sched.Start("liar", liar{})).To(Succeed())
			clock.Step()
			expectFault(sortstep.ErrNotSorted)
		})

		It("clears the fault on the next start", func() {
			Expect(sched.Start("broken", badIndex{})).To(Succeed())
			clock.Step()
			Expect(sched.Start("bubble", gen("bubble"))).To(Succeed())
			Expect(sched.Err()).NotTo(HaveOccurred())
		})
	})
})
