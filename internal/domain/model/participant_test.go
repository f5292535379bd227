package model_test

import (
	"testing"

	model "github.com/okian/teammate/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestParseCategory(t *testing.T) {
	convey.Convey("Given raw category strings", t, func() {
		convey.Convey("When the value is one of the known categories", func() {
			convey.So(model.ParseCategory("Leader"), convey.ShouldEqual, model.Leader)
			convey.So(model.ParseCategory("balanced"), convey.ShouldEqual, model.Balanced)
			convey.So(model.ParseCategory("  THINKER "), convey.ShouldEqual, model.Thinker)
			convey.So(model.ParseCategory("Unknown"), convey.ShouldEqual, model.Unknown)
		})

		convey.Convey("When the value is outside the closed set", func() {
			convey.Convey("Then it should map to Unknown", func() {
				convey.So(model.ParseCategory(""), convey.ShouldEqual, model.Unknown)
				convey.So(model.ParseCategory("Captain"), convey.ShouldEqual, model.Unknown)
			})
		})
	})
}

func TestParticipantString(t *testing.T) {
	convey.Convey("Given a participant", t, func() {
		p := model.Participant{
			ID:       "P001",
			Name:     "Ada",
			Email:    "ada@example.com",
			Activity: "Chess",
			Role:     "Strategist",
			Skill:    7,
			Score:    92,
			Category: model.Leader,
		}

		convey.Convey("Then String should include the key attributes", func() {
			s := p.String()
			convey.So(s, convey.ShouldContainSubstring, "P001")
			convey.So(s, convey.ShouldContainSubstring, "Activity:Chess")
			convey.So(s, convey.ShouldContainSubstring, "Role:Strategist")
			convey.So(s, convey.ShouldContainSubstring, "Leader(92)")
		})
	})
}
