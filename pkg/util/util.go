package util

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// error

type Error struct {
	orig error
	msg  string
	code error
}

func (e *Error) Error() string {
	if e.orig != nil {
		return fmt.Sprintf("%s", e.msg)
	}

	return e.msg
}

func (e *Error) Unwrap() error {
	return e.orig
}

func WrapErrorf(orig error, code error, format string, a ...interface{}) error {
	return &Error{
		code: code,
		orig: orig,
		msg:  fmt.Sprintf(format, a...),
	}
}

func (e *Error) Code() error {
	return e.code
}

// Is matches the error against its code, so callers can use errors.Is
// with the sentinel errors below.
func (e *Error) Is(target error) bool {
	return e.code == target
}

var (
	ErrNotEnoughArguments   = errors.New("not enough arguments given")
	ErrTooManyArguments     = errors.New("too many arguments given")
	ErrBadParamInput        = errors.New("given Param is not valid")
	ErrIDAlreadyExists      = errors.New("id already exists")
	ErrUndefinedRoadNetwork = errors.New("road network is undefined")
	ErrRoadsNotAdjusted     = errors.New("roads are not adjusted yet")
	ErrMixedGeometryMethods = errors.New("mixed geometry addition methods")
	ErrNotSameAmountOfLanes = errors.New("roads do not have the same amount of lanes")
)

const EPS = 1e-6

func Eq(a, b float64) bool {
	return math.Abs(a-b) <= EPS
}

func Lt(a, b float64) bool {
	return a+EPS < b
}

func Ge(a, b float64) bool {
	return !Lt(a, b)
}

func Gt(a, b float64) bool {
	return b+EPS < a
}

func Le(a, b float64) bool {
	return a <= b+EPS
}

func Abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}

func DegreeToRadians(angle float64) float64 {
	return angle * (math.Pi / 180.0)
}

func RadiansToDegree(rad float64) float64 {
	return 180.0 * rad / math.Pi
}

// FloatString formats floats for attribute values the shortest way that
// round-trips exactly.
func FloatString(val float64) string {
	return strconv.FormatFloat(val, 'g', -1, 64)
}

func ReverseG[T any](arr []T) []T {
	copyArr := make([]T, len(arr)) // should do on the copy )
	copy(copyArr, arr)
	for i, j := 0, len(copyArr)-1; i < j; i, j = i+1, j-1 {
		copyArr[i], copyArr[j] = copyArr[j], copyArr[i]
	}
	return copyArr
}

func MinInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func MaxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
