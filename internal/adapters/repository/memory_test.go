package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/okian/teammate/internal/domain/formation"
	"github.com/okian/teammate/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func person(id, email string) model.Participant {
	return model.Participant{
		ID: id, Name: "Name " + id, Email: email,
		Activity: "Chess", Role: "Attacker", Skill: 5, Score: 60, Category: model.Balanced,
	}
}

func ptr[T any](v T) *T { return &v }

func TestMemoryStore_Add(t *testing.T) {
	ctx := context.Background()

	Convey("Given an empty store", t, func() {
		s := NewMemoryStore()

		Convey("When a valid participant is added", func() {
			err := s.Add(ctx, person("P1", "p1@uni.edu"))

			Convey("Then it is counted and retrievable", func() {
				So(err, ShouldBeNil)
				So(s.Count(ctx), ShouldEqual, 1)
				p, err := s.Get(ctx, "p1")
				So(err, ShouldBeNil)
				So(p.ID, ShouldEqual, "P1")
			})
		})

		Convey("When the ID is reused in another case", func() {
			So(s.Add(ctx, person("P1", "p1@uni.edu")), ShouldBeNil)
			err := s.Add(ctx, person("p1", "other@uni.edu"))

			Convey("Then ErrDuplicateID is returned", func() {
				So(errors.Is(err, ErrDuplicateID), ShouldBeTrue)
				So(s.Count(ctx), ShouldEqual, 1)
			})
		})

		Convey("When the email is reused", func() {
			So(s.Add(ctx, person("P1", "p1@uni.edu")), ShouldBeNil)
			err := s.Add(ctx, person("P2", "P1@UNI.EDU"))

			Convey("Then ErrDuplicateEmail is returned and the ID is released", func() {
				So(errors.Is(err, ErrDuplicateEmail), ShouldBeTrue)
				So(s.Add(ctx, person("P2", "p2@uni.edu")), ShouldBeNil)
			})
		})

		Convey("When the participant is invalid", func() {
			bad := person("P3", "not-an-email")
			err := s.Add(ctx, bad)

			Convey("Then ErrInvalidParticipant is returned", func() {
				So(errors.Is(err, ErrInvalidParticipant), ShouldBeTrue)
				So(s.Count(ctx), ShouldEqual, 0)
			})
		})
	})
}

func TestMemoryStore_Get(t *testing.T) {
	ctx := context.Background()

	Convey("Given a populated store", t, func() {
		s := NewMemoryStore()
		So(s.Add(ctx, person("A1", "alice@uni.edu")), ShouldBeNil)

		Convey("Then lookup works by email", func() {
			p, err := s.Get(ctx, "ALICE@uni.edu")
			So(err, ShouldBeNil)
			So(p.ID, ShouldEqual, "A1")
		})

		Convey("Then unknown keys return ErrNotFound", func() {
			_, err := s.Get(ctx, "nobody")
			So(errors.Is(err, ErrNotFound), ShouldBeTrue)
		})
	})
}

func TestMemoryStore_Update(t *testing.T) {
	ctx := context.Background()

	Convey("Given two participants", t, func() {
		s := NewMemoryStore()
		So(s.Add(ctx, person("A1", "a@uni.edu")), ShouldBeNil)
		So(s.Add(ctx, person("B1", "b@uni.edu")), ShouldBeNil)

		Convey("When preferences and email change", func() {
			p, err := s.Update(ctx, "a1", Patch{
				Activity: ptr("FIFA"),
				Role:     ptr("Defender"),
				Email:    ptr("new@uni.edu"),
				Skill:    ptr(9),
			})

			Convey("Then the record and email index follow", func() {
				So(err, ShouldBeNil)
				So(p.Activity, ShouldEqual, "FIFA")
				So(p.Skill, ShouldEqual, 9)
				got, err := s.Get(ctx, "new@uni.edu")
				So(err, ShouldBeNil)
				So(got.ID, ShouldEqual, "A1")
				_, err = s.Get(ctx, "a@uni.edu")
				So(errors.Is(err, ErrNotFound), ShouldBeTrue)
				So(s.Add(ctx, person("C1", "a@uni.edu")), ShouldBeNil)
			})
		})

		Convey("When the new email belongs to someone else", func() {
			_, err := s.Update(ctx, "A1", Patch{Email: ptr("B@uni.edu")})

			Convey("Then ErrDuplicateEmail is returned and nothing changes", func() {
				So(errors.Is(err, ErrDuplicateEmail), ShouldBeTrue)
				p, _ := s.Get(ctx, "A1")
				So(p.Email, ShouldEqual, "a@uni.edu")
			})
		})

		Convey("When the skill is out of range", func() {
			_, err := s.Update(ctx, "A1", Patch{Skill: ptr(11)})

			Convey("Then ErrInvalidParticipant is returned", func() {
				So(errors.Is(err, ErrInvalidParticipant), ShouldBeTrue)
			})
		})

		Convey("When the participant does not exist", func() {
			_, err := s.Update(ctx, "Z9", Patch{Name: ptr("x")})
			So(errors.Is(err, ErrNotFound), ShouldBeTrue)
		})
	})
}

func TestMemoryStore_Snapshot(t *testing.T) {
	ctx := context.Background()

	Convey("Given participants added in order", t, func() {
		s := NewMemoryStore()
		for i := 0; i < 5; i++ {
			So(s.Add(ctx, person(fmt.Sprintf("P%d", i), fmt.Sprintf("p%d@uni.edu", i))), ShouldBeNil)
		}

		snap := s.Snapshot(ctx)

		Convey("Then the snapshot keeps registration order", func() {
			So(snap, ShouldHaveLength, 5)
			for i, p := range snap {
				So(p.ID, ShouldEqual, fmt.Sprintf("P%d", i))
			}
		})

		Convey("Then the snapshot is detached from the store", func() {
			snap[0].Name = "changed"
			p, _ := s.Get(ctx, "P0")
			So(p.Name, ShouldEqual, "Name P0")
		})
	})
}

func TestMemoryStore_Concurrent(t *testing.T) {
	ctx := context.Background()

	Convey("Given concurrent registrations of overlapping IDs", t, func() {
		s := NewMemoryStore()
		var wg sync.WaitGroup
		for g := 0; g < 8; g++ {
			wg.Add(1)
			go func(g int) {
				defer wg.Done()
				for i := 0; i < 50; i++ {
					_ = s.Add(ctx, person(fmt.Sprintf("P%d", i), fmt.Sprintf("p%d-%d@uni.edu", i, g)))
				}
			}(g)
		}
		wg.Wait()

		Convey("Then each ID is stored once", func() {
			So(s.Count(ctx), ShouldEqual, 50)
			So(s.Snapshot(ctx), ShouldHaveLength, 50)
		})
	})
}

func TestMemoryFormationStore(t *testing.T) {
	ctx := context.Background()

	Convey("Given an empty formation store", t, func() {
		s := NewMemoryFormationStore()

		Convey("Then Last returns ErrNoFormation", func() {
			_, err := s.Last(ctx)
			So(errors.Is(err, ErrNoFormation), ShouldBeTrue)
		})

		Convey("When formations are saved", func() {
			s.Save(ctx, &Formation{RunID: "one", Result: formation.Result{}})
			s.Save(ctx, &Formation{RunID: "two", Result: formation.Result{}})

			Convey("Then the latest is returned", func() {
				f, err := s.Last(ctx)
				So(err, ShouldBeNil)
				So(f.RunID, ShouldEqual, "two")
			})
		})
	})
}
