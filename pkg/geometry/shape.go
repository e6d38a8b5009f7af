package geometry

// Kind tags the primitive variant a Hit refers to
type Kind uint8

const (
	KindSphere Kind = iota
	KindPlane
)

func (k Kind) String() string {
	switch k {
	case KindSphere:
		return "sphere"
	case KindPlane:
		return "plane"
	default:
		return "unknown"
	}
}

// Hit identifies the nearest primitive along a ray by variant and index into the scene.
// It is returned by value and never outlives a single trace step.
type Hit struct {
	Kind  Kind
	Index int
	T     float64
}
