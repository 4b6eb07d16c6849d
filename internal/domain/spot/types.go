package spot

// VehicleSize is the largest vehicle class a spot can accommodate.
// Sizes are ordered; SizeAny matches every request.
type VehicleSize string

const (
	SizeCompact VehicleSize = "compact"
	SizeMidsize VehicleSize = "midsize"
	SizeLarge   VehicleSize = "large"
	SizeSUV     VehicleSize = "suv"
	SizeAny     VehicleSize = "any"
)

var sizeOrdinal = map[VehicleSize]int{
	SizeCompact: 1,
	SizeMidsize: 2,
	SizeLarge:   3,
	SizeSUV:     4,
}

func (v VehicleSize) String() string {
	return string(v)
}

func (v VehicleSize) IsValid() bool {
	switch v {
	case SizeCompact, SizeMidsize, SizeLarge, SizeSUV, SizeAny:
		return true
	default:
		return false
	}
}

// Fits reports whether a spot with ceiling v can take a vehicle of the
// requested size. SizeAny on either side matches everything.
func (v VehicleSize) Fits(requested VehicleSize) bool {
	if v == SizeAny || requested == SizeAny {
		return true
	}
	return sizeOrdinal[v] >= sizeOrdinal[requested]
}

// SizesAccommodating lists every spot ceiling that can take the requested
// size, so stores can filter with a plain membership test.
func SizesAccommodating(requested VehicleSize) []VehicleSize {
	if requested == SizeAny {
		return []VehicleSize{SizeCompact, SizeMidsize, SizeLarge, SizeSUV, SizeAny}
	}
	result := []VehicleSize{SizeAny}
	for _, v := range []VehicleSize{SizeCompact, SizeMidsize, SizeLarge, SizeSUV} {
		if v.Fits(requested) {
			result = append(result, v)
		}
	}
	return result
}

func ParseVehicleSize(s string) (VehicleSize, error) {
	v := VehicleSize(s)
	if !v.IsValid() {
		return "", ErrInvalidVehicleSize
	}
	return v, nil
}
