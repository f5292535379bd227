package roster

import (
	"errors"
	"testing"

	"github.com/okian/teammate/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParseLine(t *testing.T) {
	Convey("Given the eight-column layout", t, func() {
		p, err := ParseLine("P001,Ann Lee,ann@uni.edu,valorant,7,attack,92,Leader")

		Convey("Then fields are parsed and normalized", func() {
			So(err, ShouldBeNil)
			So(p.ID, ShouldEqual, "P001")
			So(p.Name, ShouldEqual, "Ann Lee")
			So(p.Activity, ShouldEqual, "Valorant")
			So(p.Role, ShouldEqual, "Attacker")
			So(p.Skill, ShouldEqual, 7)
			So(p.Score, ShouldEqual, 92)
			So(p.Category, ShouldEqual, model.Leader)
		})
	})

	Convey("Given an empty category", t, func() {
		p, err := ParseLine("P002,Bo,bo@uni.edu,Chess,5,Defender,75,")

		Convey("Then it is derived from the score", func() {
			So(err, ShouldBeNil)
			So(p.Category, ShouldEqual, model.Balanced)
		})
	})

	Convey("Given the survey layout", t, func() {
		p, err := ParseLine("P003,Cy,cy@uni.edu,FIFA,4,support,4,4,3,3,3")

		Convey("Then answers are scored and classified", func() {
			So(err, ShouldBeNil)
			So(p.Score, ShouldEqual, 68)
			So(p.Category, ShouldEqual, model.Thinker)
			So(p.Role, ShouldEqual, "Supporter")
		})

		Convey("And bad answers fall back or clamp", func() {
			p, err := ParseLine("P004,Di,di@uni.edu,FIFA,4,support,x,9,0,5,5")
			So(err, ShouldBeNil)
			// 3 + 5 + 1 + 5 + 5 = 19
			So(p.Score, ShouldEqual, 76)
		})
	})

	Convey("Given nine or ten columns", t, func() {
		p, err := ParseLine("P005,Ed,ed@uni.edu,Chess,5,Defender,95,ignored,extra")

		Convey("Then the score column drives the category", func() {
			So(err, ShouldBeNil)
			So(p.Score, ShouldEqual, 95)
			So(p.Category, ShouldEqual, model.Leader)
		})
	})

	Convey("Given out-of-range and unparsable numbers", t, func() {
		p, err := ParseLine("P006,Fa,fa@uni.edu,Chess,42,Defender,abc,")

		Convey("Then skill clamps and score defaults", func() {
			So(err, ShouldBeNil)
			So(p.Skill, ShouldEqual, 10)
			So(p.Score, ShouldEqual, 50)
			So(p.Category, ShouldEqual, model.Thinker)
		})
	})

	Convey("Given too few columns", t, func() {
		_, err := ParseLine("P007,Gi,gi@uni.edu,Chess")

		Convey("Then ErrTooFewColumns is returned", func() {
			So(errors.Is(err, ErrTooFewColumns), ShouldBeTrue)
		})
	})

	Convey("Given a missing id", t, func() {
		_, err := ParseLine(" ,Gi,gi@uni.edu,Chess,5,Defender,50,")
		So(errors.Is(err, ErrEmptyID), ShouldBeTrue)
	})

	Convey("Given a quoted name with a comma", t, func() {
		p, err := ParseLine(`P008,"Lee, Ann",ann@uni.edu,Chess,5,Defender,50,Thinker`)
		So(err, ShouldBeNil)
		So(p.Name, ShouldEqual, "Lee, Ann")
		So(p.Category, ShouldEqual, model.Thinker)
	})
}

func TestNormalize(t *testing.T) {
	Convey("Given activity spellings", t, func() {
		cases := map[string]string{
			"VALORANT":     "Valorant",
			"dota2":        "DOTA 2",
			"Fifa 24":      "FIFA",
			"basketball":   "Basketball",
			"badminton":    "Badminton",
			"Chess":        "Chess",
			"CS2":          "CS:GO",
			"":             "Other",
			"  ":           "Other",
			"Table Tennis": "Table Tennis",
		}
		for in, want := range cases {
			So(NormalizeActivity(in), ShouldEqual, want)
		}
	})

	Convey("Given role spellings", t, func() {
		cases := map[string]string{
			"strategy":     "Strategist",
			"ATTACKER":     "Attacker",
			"defending":    "Defender",
			"support":      "Supporter",
			"Coordination": "Coordinator",
			"":             "Other",
			"Captain":      "Captain",
		}
		for in, want := range cases {
			So(NormalizeRole(in), ShouldEqual, want)
		}
	})
}

func TestSafeParse(t *testing.T) {
	Convey("Given numeric strings", t, func() {
		So(safeParse(" 7 ", 5, 1, 10), ShouldEqual, 7)
		So(safeParse("0", 5, 1, 10), ShouldEqual, 1)
		So(safeParse("99", 5, 1, 10), ShouldEqual, 10)
		So(safeParse("seven", 5, 1, 10), ShouldEqual, 5)
		So(safeParse("", 50, 0, 100), ShouldEqual, 50)
	})
}
