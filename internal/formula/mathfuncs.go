package formula

import (
	"math"

	"github.com/shopspring/decimal"
)

// maxRoundDigits bounds ROUND's second argument.
const maxRoundDigits = 15

func (ev *evaluation) math(fn Func, args []string, row, col int) string {
	switch fn {
	case FuncRound:
		if len(args) < 1 || len(args) > 2 {
			return Error
		}
	case FuncMod, FuncPower:
		if len(args) != 2 {
			return Error
		}
	default:
		if len(args) != 1 {
			return Error
		}
	}

	x, ok := ev.argNumber(args[0], row, col)
	if !ok {
		return Error
	}

	switch fn {
	case FuncRound:
		digits := 0
		if len(args) == 2 {
			if digits, ok = ev.argInt(args[1], row, col); !ok {
				return Error
			}
		}
		digits = max(-maxRoundDigits, min(maxRoundDigits, digits))
		// Round on the decimal representation so 2.675 rounds to 2.68 and
		// halves go away from zero.
		rounded, _ := decimal.NewFromFloat(x).Round(int32(digits)).Float64()
		return FormatNumber(rounded)
	case FuncAbs:
		return FormatNumber(math.Abs(x))
	case FuncInt:
		return FormatNumber(math.Floor(x))
	case FuncSqrt:
		if x < 0 {
			return NumError
		}
		return FormatNumber(math.Sqrt(x))
	}

	y, ok := ev.argNumber(args[1], row, col)
	if !ok {
		return Error
	}
	switch fn {
	case FuncMod:
		if y == 0 {
			return DivZero
		}
		return FormatNumber(x - y*math.Floor(x/y))
	case FuncPower:
		return FormatNumber(math.Pow(x, y))
	}
	return Error
}
