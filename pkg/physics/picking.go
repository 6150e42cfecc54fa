// pkg/physics/picking.go
package physics

// Sphere is a bounding volume used for focus picking
type Sphere struct {
	Center Vector3
	Radius float64
}

// Contains reports whether the point lies inside the sphere
func (s Sphere) Contains(point Vector3) bool {
	return s.Center.Sub(point).LengthSquared() <= s.Radius*s.Radius
}

// Intersects reports whether two spheres overlap
func (s Sphere) Intersects(other Sphere) bool {
	sum := s.Radius + other.Radius
	return s.Center.Sub(other.Center).LengthSquared() <= sum*sum
}
