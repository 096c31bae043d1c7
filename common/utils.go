package common

import "github.com/go-gl/mathgl/mgl32"

type Vec3 = mgl32.Vec3

type IT interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

type IIndex interface {
	~int | ~int8 | ~int16 | ~int32 | ~uint | ~uint8 | ~uint16 | ~uint32
}

// Prev returns the index before i in a ring of n elements.
func Prev[T IIndex](i, n T) T {
	if i > 0 {
		return i - 1
	}
	return n - 1
}

// Next returns the index after i in a ring of n elements.
func Next[T IIndex](i, n T) T {
	if i+1 < n {
		return i + 1
	}
	return 0
}

// V3 builds a vector from its components.
func V3(x, y, z float32) Vec3 {
	return Vec3{x, y, z}
}
