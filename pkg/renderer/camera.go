package renderer

import (
	"fmt"
	"math"

	"github.com/rt1we/go-raytracer/pkg/core"
)

// CameraConfig contains camera configuration parameters
type CameraConfig struct {
	Center        core.Vec3 // Camera position
	LookAt        core.Vec3 // Point the camera looks at
	Up            core.Vec3 // Up direction for orientation
	VFov          float64   // Vertical field of view in degrees
	AspectRatio   float64   // Width / height
	Aperture      float64   // Lens aperture diameter (0 = pinhole, no depth of field)
	FocusDistance float64   // Distance to the focus plane (0 = auto, distance to LookAt)
	ShutterOpen   float64   // Shutter open time (motion blur)
	ShutterClose  float64   // Shutter close time (motion blur)
}

// Camera generates rays for rendering. Immutable after construction.
type Camera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v, w         core.Vec3 // Orthonormal camera basis
	lensRadius      float64
	shutterOpen     float64
	shutterClose    float64
}

// NewCamera creates a camera from the given configuration. Degenerate
// configurations are rejected here rather than producing NaN rays later.
func NewCamera(config CameraConfig) (*Camera, error) {
	if config.AspectRatio <= 0 {
		return nil, fmt.Errorf("camera: aspect ratio must be positive, got %g", config.AspectRatio)
	}
	if config.VFov <= 0 || config.VFov >= 180 {
		return nil, fmt.Errorf("camera: vertical fov must be in (0, 180), got %g", config.VFov)
	}
	if config.Aperture < 0 {
		return nil, fmt.Errorf("camera: aperture must be non-negative, got %g", config.Aperture)
	}
	if config.ShutterClose < config.ShutterOpen {
		return nil, fmt.Errorf("camera: shutter close %g before open %g", config.ShutterClose, config.ShutterOpen)
	}

	viewDirection := config.Center.Subtract(config.LookAt)
	if viewDirection.NearZero() {
		return nil, fmt.Errorf("camera: center and look-at coincide")
	}

	w := viewDirection.Normalize()
	uCross := config.Up.Cross(w)
	if uCross.NearZero() {
		return nil, fmt.Errorf("camera: up vector is parallel to the viewing direction")
	}
	u := uCross.Normalize()
	v := w.Cross(u)

	focusDistance := config.FocusDistance
	if focusDistance <= 0 {
		// Auto-focus on the look-at point
		focusDistance = viewDirection.Length()
	}

	theta := config.VFov * math.Pi / 180.0
	h := math.Tan(theta / 2)
	viewportHeight := 2.0 * h
	viewportWidth := config.AspectRatio * viewportHeight

	horizontal := u.Multiply(viewportWidth * focusDistance)
	vertical := v.Multiply(viewportHeight * focusDistance)
	lowerLeftCorner := config.Center.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w.Multiply(focusDistance))

	return &Camera{
		origin:          config.Center,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		u:               u,
		v:               v,
		w:               w,
		lensRadius:      config.Aperture / 2,
		shutterOpen:     config.ShutterOpen,
		shutterClose:    config.ShutterClose,
	}, nil
}

// GetRay generates a ray for normalized image-plane coordinates (s, t)
// where 0 <= s,t <= 1, with t measured from the bottom of the image.
// The lens offset produces depth of field; the time stamp samples the
// shutter interval for motion blur.
func (c *Camera) GetRay(s, t float64, sampler core.Sampler) core.Ray {
	origin := c.origin

	if c.lensRadius > 0 {
		rd := core.SamplePointInUnitDisk(sampler.Get2D()).Multiply(c.lensRadius)
		offset := c.u.Multiply(rd.X).Add(c.v.Multiply(rd.Y))
		origin = origin.Add(offset)
	}

	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(origin)

	time := c.shutterOpen
	if c.shutterClose > c.shutterOpen {
		time = c.shutterOpen + sampler.Get1D()*(c.shutterClose-c.shutterOpen)
	}

	return core.NewRayAt(origin, direction, time)
}

// Forward returns the direction the camera is facing
func (c *Camera) Forward() core.Vec3 {
	return c.w.Negate()
}
