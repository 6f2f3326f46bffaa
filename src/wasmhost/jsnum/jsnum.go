//Package jsnum converts JavaScript numbers into the unsigned values the universe takes
package jsnum

import (
	"math"

	"github.com/pkg/errors"
)

//ErrNotUint32 is returned for negative, fractional, NaN or oversized numbers
var ErrNotUint32 = errors.New("not an uint32")

//Uint32 converts f without wrapping
func Uint32(f float64) (uint32, error) {
	if math.IsNaN(f) || f < 0 || f > math.MaxUint32 || f != math.Trunc(f) {
		return 0, errors.Wrapf(ErrNotUint32, "%v", f)
	}
	return uint32(f), nil
}
