package rostergen_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/okian/teammate/internal/domain/classifier"
	"github.com/okian/teammate/internal/domain/validation"
	"github.com/okian/teammate/internal/rostergen"
	. "github.com/smartystreets/goconvey/convey"
)

func TestGenerate(t *testing.T) {
	Convey("Given a seeded generator", t, func() {
		pool := rostergen.Generate(50, rostergen.WithSeed(7))

		Convey("Then it should produce the requested count", func() {
			So(pool, ShouldHaveLength, 50)
		})

		Convey("Then every participant should pass validation", func() {
			report := validation.Check(pool)
			So(report.OK(), ShouldBeTrue)
		})

		Convey("Then IDs should be UUIDs", func() {
			for _, p := range pool {
				_, err := uuid.Parse(p.ID)
				So(err, ShouldBeNil)
			}
		})

		Convey("Then category should agree with score", func() {
			for _, p := range pool {
				So(p.Category, ShouldEqual, classifier.Classify(p.Score))
				So(p.Score, ShouldBeBetweenOrEqual, 20, 100)
			}
		})

		Convey("Then the same seed should reproduce the same pool", func() {
			again := rostergen.Generate(50, rostergen.WithSeed(7))
			So(again, ShouldResemble, pool)
		})
	})

	Convey("Given restricted activities and roles", t, func() {
		pool := rostergen.Generate(20,
			rostergen.WithSeed(1),
			rostergen.WithActivities("Chess"),
			rostergen.WithRoles("Attacker", "Defender"),
		)

		Convey("Then only those values should appear", func() {
			for _, p := range pool {
				So(p.Activity, ShouldEqual, "Chess")
				So(p.Role, ShouldBeIn, []string{"Attacker", "Defender"})
			}
		})
	})

	Convey("Given a non-positive count", t, func() {
		So(rostergen.Generate(0), ShouldBeEmpty)
		So(rostergen.Generate(-3), ShouldBeEmpty)
	})
}
