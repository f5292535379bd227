package classifier_test

import (
	"testing"

	"github.com/okian/teammate/internal/domain/classifier"
	"github.com/okian/teammate/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestScaledScore(t *testing.T) {
	Convey("Given five survey answers", t, func() {
		Convey("When every answer is 5", func() {
			So(classifier.ScaledScore(5, 5, 5, 5, 5), ShouldEqual, 100)
		})

		Convey("When every answer is 1", func() {
			So(classifier.ScaledScore(1, 1, 1, 1, 1), ShouldEqual, 20)
		})

		Convey("When answers are mixed", func() {
			So(classifier.ScaledScore(4, 4, 3, 3, 3), ShouldEqual, 68)
		})

		Convey("When answers are out of range", func() {
			Convey("Then they should not be clamped", func() {
				So(classifier.ScaledScore(10, 0, 0, 0, 0), ShouldEqual, 40)
			})
		})
	})
}

func TestClassify(t *testing.T) {
	Convey("Given scaled scores at band boundaries", t, func() {
		cases := []struct {
			score int
			want  model.Category
		}{
			{100, model.Leader},
			{90, model.Leader},
			{89, model.Balanced},
			{70, model.Balanced},
			{69, model.Thinker},
			{50, model.Thinker},
			{49, model.Unknown},
			{20, model.Unknown},
			{101, model.Unknown},
			{-4, model.Unknown},
		}

		for _, tc := range cases {
			So(classifier.Classify(tc.score), ShouldEqual, tc.want)
		}
	})
}

func TestFromAnswers(t *testing.T) {
	Convey("Given complete answer sets", t, func() {
		Convey("When all answers agree strongly", func() {
			score, cat := classifier.FromAnswers([5]int{5, 5, 5, 5, 5})
			So(score, ShouldEqual, 100)
			So(cat, ShouldEqual, model.Leader)
		})

		Convey("When all answers disagree strongly", func() {
			score, cat := classifier.FromAnswers([5]int{1, 1, 1, 1, 1})
			So(score, ShouldEqual, 20)
			So(cat, ShouldEqual, model.Unknown)
		})

		Convey("When answers sit in the thinker band", func() {
			score, cat := classifier.FromAnswers([5]int{4, 4, 3, 3, 3})
			So(score, ShouldEqual, 68)
			So(cat, ShouldEqual, model.Thinker)
		})
	})
}
