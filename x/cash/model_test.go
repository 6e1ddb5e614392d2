package cash

import (
	"math"
	"testing"

	"github.com/iov-one/custody/errors"
	. "github.com/smartystreets/goconvey/convey"
)

func TestBalanceArithmetic(t *testing.T) {
	Convey("Given a balance", t, func() {
		b := &Balance{Amount: 10}

		Convey("Adding increases it", func() {
			So(b.Add(5), ShouldBeNil)
			So(b.Amount, ShouldEqual, uint64(15))
		})

		Convey("Adding cannot overflow", func() {
			err := b.Add(math.MaxUint64)
			So(errors.ErrOverflow.Is(err), ShouldBeTrue)
			So(b.Amount, ShouldEqual, uint64(10))
		})

		Convey("Subtracting decreases it down to zero", func() {
			So(b.Subtract(10), ShouldBeNil)
			So(b.Amount, ShouldEqual, uint64(0))
		})

		Convey("Subtracting more than held fails", func() {
			err := b.Subtract(11)
			So(errors.ErrAmount.Is(err), ShouldBeTrue)
			So(b.Amount, ShouldEqual, uint64(10))
		})
	})
}
