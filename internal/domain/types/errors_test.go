package types_test

import (
	"errors"
	"testing"
	"time"

	"github.com/okian/arcade/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestTag(t *testing.T) {
	Convey("Given a domain error tagged with a kind", t, func() {
		base := errors.New("game is required")
		err := types.Tag(types.ErrInvalidInput, base)

		Convey("Then both errors match and the message is unchanged", func() {
			So(errors.Is(err, types.ErrInvalidInput), ShouldBeTrue)
			So(errors.Is(err, base), ShouldBeTrue)
			So(errors.Is(err, types.ErrInvalidCredentials), ShouldBeFalse)
			So(err.Error(), ShouldEqual, "game is required")
		})

		Convey("Then tagging nil yields nil", func() {
			So(types.Tag(types.ErrInvalidInput, nil), ShouldBeNil)
		})
	})
}

func TestFormatDate(t *testing.T) {
	Convey("Given a timestamp outside UTC", t, func() {
		loc := time.FixedZone("UTC+2", 2*60*60)
		at := time.Date(2025, 4, 19, 12, 30, 5, 123_456_789, loc)

		Convey("Then it renders as a UTC ISO string with milliseconds", func() {
			So(types.FormatDate(at), ShouldEqual, "2025-04-19T10:30:05.123Z")
		})
	})
}
