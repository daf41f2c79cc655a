package geometry_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/babymc/internal/csg"
	"github.com/san-kum/babymc/internal/geometry"
	"github.com/san-kum/babymc/internal/material"
)

var center = r3.Vec{X: 587, Y: 60, Z: 100}

var _ = Describe("BABY geometry", func() {
	var (
		cat  *material.Catalog
		geom *geometry.Geometry
	)

	BeforeEach(func() {
		cat = material.NewBABYCatalog()
		var err error
		geom, err = geometry.Build(center, cat)
		Expect(err).NotTo(HaveOccurred())
	})

	It("returns the tally and detector cells", func() {
		Expect(geom.Salt.Name).To(Equal(geometry.CellSalt))
		Expect(geom.Diamond.Name).To(Equal(geometry.CellDiamond))
		Expect(geom.FoilZr.Name).To(Equal(geometry.CellFoilZr))
		Expect(geom.FoilNb.Name).To(Equal(geometry.CellFoilNb))
		Expect(geom.Cells).To(HaveLen(26))
	})

	It("fills cells from the shared catalog", func() {
		salt, err := cat.Get(material.ClLiF)
		Expect(err).NotTo(HaveOccurred())
		Expect(geom.Salt.Fill).To(BeIdenticalTo(salt))

		void, ok := geom.Cell(geometry.CellSourceVoid)
		Expect(ok).To(BeTrue())
		Expect(void.Void()).To(BeTrue())
	})

	It("keeps a stable cell order with unique ids", func() {
		again, err := geometry.Build(center, cat)
		Expect(err).NotTo(HaveOccurred())
		for i, c := range geom.Cells {
			Expect(c.ID).To(Equal(i + 1))
			Expect(again.Cells[i].Name).To(Equal(c.Name))
		}
		last := geom.Cells[len(geom.Cells)-1]
		Expect(last.Name).To(Equal(geometry.CellLab))
		Expect(last.CatchAll).To(BeTrue())
	})

	It("places the salt top at the summed layer thicknesses", func() {
		top, err := geom.Stack.Top(geometry.LayerSalt)
		Expect(err).NotTo(HaveOccurred())
		Expect(top).To(BeNumerically("~", 113.28422, 1e-6))
	})

	DescribeTable("locates sample points",
		func(p r3.Vec, want string) {
			c, err := geom.Locate(p)
			Expect(err).NotTo(HaveOccurred())
			Expect(c.Name).To(Equal(want))
		},
		Entry("salt", r3.Vec{X: 590, Y: 60, Z: 108}, geometry.CellSalt),
		Entry("heater", r3.Vec{X: 587, Y: 60, Z: 110}, geometry.CellHeater),
		Entry("heater above the cover", r3.Vec{X: 587, Y: 60, Z: 132}, geometry.CellHeater),
		Entry("source void", r3.Vec{X: 600, Y: 60, Z: 94.365}, geometry.CellSourceVoid),
		Entry("source wall end cap", r3.Vec{X: 623.4, Y: 60, Z: 94.365}, geometry.CellSourceWall),
		Entry("zr foil", r3.Vec{X: 587, Y: 60, Z: 99.4}, geometry.CellFoilZr),
		Entry("nb foil", r3.Vec{X: 587, Y: 60, Z: 89.3}, geometry.CellFoilNb),
		Entry("diamond", r3.Vec{X: 587, Y: 60, Z: 84.74}, geometry.CellDiamond),
		Entry("lead block 1", r3.Vec{X: 573.5, Y: 60, Z: 74}, geometry.LeadBlockCell(0)),
		Entry("lead block 3", r3.Vec{X: 623.5, Y: 60, Z: 74}, geometry.LeadBlockCell(2)),
		Entry("epoxy", r3.Vec{X: 587, Y: 60, Z: 101}, geometry.CellEpoxy),
		Entry("epoxy slab off axis", r3.Vec{X: 630, Y: 60, Z: 101}, geometry.CellEpoxy),
		Entry("compressed alumina", r3.Vec{X: 587, Y: 60, Z: 103}, geometry.CellAluminaCompressed),
		Entry("vessel bottom", r3.Vec{X: 587, Y: 60, Z: 104.8}, geometry.CellVessel),
		Entry("alumina", r3.Vec{X: 587, Y: 60, Z: 105.5}, geometry.CellAlumina),
		Entry("vessel wall", r3.Vec{X: 600, Y: 60, Z: 110}, geometry.CellVessel),
		Entry("firebrick", r3.Vec{X: 597.5, Y: 60, Z: 110}, geometry.CellFirebrick),
		Entry("helium", r3.Vec{X: 595, Y: 60, Z: 110}, geometry.CellHelium),
		Entry("gap", r3.Vec{X: 590, Y: 60, Z: 115}, geometry.CellGap),
		Entry("top cap", r3.Vec{X: 590, Y: 60, Z: 118.5}, geometry.CellCap),
		Entry("table", r3.Vec{X: 587, Y: 60, Z: 71}, geometry.CellTable),
		Entry("sphere air", r3.Vec{X: 587, Y: 60, Z: 140}, geometry.CellSphere),
		Entry("secondary void", r3.Vec{X: 520, Y: 225, Z: 138}, geometry.CellExpVoid),
		Entry("secondary lead", r3.Vec{X: 530, Y: 225, Z: 145}, geometry.CellExpLead),
		Entry("secondary hdpe", r3.Vec{X: 530, Y: 225, Z: 153}, geometry.CellExpHDPE),
		Entry("lab air", r3.Vec{X: 300, Y: 300, Z: 100}, geometry.CellLab),
	)

	It("claims nothing outside the lab", func() {
		_, err := geom.Locate(r3.Vec{X: 50, Y: 50, Z: 50})
		Expect(errors.Is(err, geometry.ErrGap)).To(BeTrue())
	})

	It("partitions the bounding volume without overlaps or gaps", func() {
		report, err := geometry.Check(context.Background(), geom, geometry.CheckOptions{
			Samples: 20_000,
			Seed:    7,
			Workers: 4,
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(report.Overlaps).To(BeEmpty())
		Expect(report.GapCount).To(BeZero())
		Expect(report.EscapeCount).To(BeZero())
		Expect(report.OK()).To(BeTrue())
		Expect(report.Err()).NotTo(HaveOccurred())
		Expect(report.Inside).To(Equal(report.Samples))
		Expect(report.Hits).To(HaveKey(geometry.CellSalt))
	})

	It("gives identical reports for any worker count", func() {
		opts := geometry.CheckOptions{Samples: 5_000, Seed: 3, Workers: 1}
		a, err := geometry.Check(context.Background(), geom, opts)
		Expect(err).NotTo(HaveOccurred())
		opts.Workers = 8
		b, err := geometry.Check(context.Background(), geom, opts)
		Expect(err).NotTo(HaveOccurred())
		Expect(b.Hits).To(Equal(a.Hits))
	})

	It("detects an overlapping cell", func() {
		bad := *geom
		rogue := &geometry.Cell{ID: 99, Name: "rogue", Region: csg.SphereSolid{Sphere: geom.Sphere}.Interior()}
		bad.Cells = append(append([]*geometry.Cell(nil), geom.Cells...), rogue)

		report, err := geometry.Check(context.Background(), &bad, geometry.CheckOptions{Samples: 2_000, Seed: 1})
		Expect(err).NotTo(HaveOccurred())
		Expect(report.OverlapCount).To(BeNumerically(">", 0))

		var overlap *geometry.OverlapError
		Expect(errors.As(report.Err(), &overlap)).To(BeTrue())
		Expect(overlap.Cells).To(ContainElement("rogue"))
	})

	It("honours a cancelled context", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := geometry.Check(ctx, geom, geometry.CheckOptions{Samples: 10_000})
		Expect(err).To(MatchError(context.Canceled))
	})

	It("estimates the salt volume", func() {
		d := geom.Dimensions
		box := csg.AABB{
			Min: r3.Vec{X: center.X - d.SaltRadius, Y: center.Y - d.SaltRadius, Z: 106.766},
			Max: r3.Vec{X: center.X + d.SaltRadius, Y: center.Y + d.SaltRadius, Z: 113.28422},
		}
		vols, err := geometry.EstimateVolumes(context.Background(), geom, box, 200_000, 11)
		Expect(err).NotTo(HaveOccurred())

		var salt geometry.VolumeEstimate
		for _, v := range vols {
			if v.Cell == geometry.CellSalt {
				salt = v
			}
		}
		// pi r^2 h of the salt minus the heater bore
		expected := 3.141592653589793 * (49 - 0.439*0.439) * 6.51822
		expected += 3.141592653589793 * 0.439 * 0.439 * 0.878
		Expect(salt.Volume).To(BeNumerically("~", expected, 5*salt.StdErr+1))
	})

	It("rejects a catalog missing a fill", func() {
		empty, err := material.NewCatalog()
		Expect(err).NotTo(HaveOccurred())
		_, err = geometry.Build(center, empty)
		Expect(errors.Is(err, material.ErrUnknownMaterial)).To(BeTrue())
	})

	It("rejects degenerate dimensions", func() {
		d := geometry.DefaultDimensions()
		d.HeaterRadius = 0
		_, err := geometry.Build(center, cat, geometry.WithDimensions(d))
		Expect(errors.Is(err, csg.ErrInvalidDimension)).To(BeTrue())
	})
})
