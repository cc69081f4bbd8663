// Package canvas provides the live editing surface for the active zone.
//
// The underlying 2D scene graph (hit testing, rasterization) is an external
// rendering capability; this package owns only the ordered object list, the
// zone clip rectangle and the guide overlay, plus serialization of user
// content to and from snapshots.
package canvas

import (
	"github.com/guttosm/engraving-service/internal/domain/model"
)

// guideID identifies the non-interactive guide overlay object. The guide is
// a system object: it never appears in layers, pricing or serialization.
const guideID = "__zone_guide__"

// Canvas is the single mutable working surface. Only one zone's content is
// live at a time; non-active zones live as snapshots in their ZoneState.
type Canvas struct {
	clip    model.Rect
	objects []model.DesignObject
}

// New creates a canvas clipped to the given zone with its guide overlay at
// the back of the z-order.
func New(zone model.EngravingZone) *Canvas {
	c := &Canvas{}
	c.SetZone(zone)
	return c
}

// SetZone re-establishes the clip rectangle and the guide overlay for a
// zone. User content is kept; the guide is reinserted at the back so it
// always renders behind user content.
func (c *Canvas) SetZone(zone model.EngravingZone) {
	c.clip = zone.Bounds
	user := c.userObjects()
	guide := model.DesignObject{
		ID:     guideID,
		Kind:   model.KindVector,
		X:      zone.Bounds.X,
		Y:      zone.Bounds.Y,
		Width:  zone.Bounds.Width,
		Height: zone.Bounds.Height,
	}
	c.objects = append([]model.DesignObject{guide}, user...)
}

// Clip returns the active zone's clip rectangle.
func (c *Canvas) Clip() model.Rect {
	return c.clip
}

// Add appends an object to the top of the z-order.
func (c *Canvas) Add(obj model.DesignObject) {
	c.objects = append(c.objects, obj)
}

// Get returns a pointer to the user object with the given id.
func (c *Canvas) Get(id string) (*model.DesignObject, bool) {
	for i := range c.objects {
		if c.objects[i].ID == id && c.objects[i].UserAdded {
			return &c.objects[i], true
		}
	}
	return nil, false
}

// Remove deletes the user object with the given id. Removing a system
// object is not possible through this method.
func (c *Canvas) Remove(id string) bool {
	for i := range c.objects {
		if c.objects[i].ID == id && c.objects[i].UserAdded {
			c.objects = append(c.objects[:i], c.objects[i+1:]...)
			return true
		}
	}
	return false
}

// Objects returns the user-added objects in z-order (back to front).
// System objects (guide) are excluded.
func (c *Canvas) Objects() []model.DesignObject {
	return c.userObjects()
}

// Count returns the number of user-added objects.
func (c *Canvas) Count() int {
	n := 0
	for i := range c.objects {
		if c.objects[i].UserAdded {
			n++
		}
	}
	return n
}

// Arrange reorders a user object within the z-order. The guide overlay
// stays at the back regardless of direction. Returns false if the object
// does not exist or the direction is unknown.
func (c *Canvas) Arrange(id, direction string) bool {
	idx := -1
	for i := range c.objects {
		if c.objects[i].ID == id && c.objects[i].UserAdded {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}

	// floor is the lowest index user content may occupy: just above the
	// system objects at the back.
	floor := 0
	for floor < len(c.objects) && !c.objects[floor].UserAdded {
		floor++
	}
	top := len(c.objects) - 1

	switch direction {
	case model.ArrangeFront:
		c.moveTo(idx, top)
	case model.ArrangeBack:
		c.moveTo(idx, floor)
	case model.ArrangeForward:
		if idx < top {
			c.objects[idx], c.objects[idx+1] = c.objects[idx+1], c.objects[idx]
		}
	case model.ArrangeBackward:
		if idx > floor {
			c.objects[idx], c.objects[idx-1] = c.objects[idx-1], c.objects[idx]
		}
	default:
		return false
	}
	return true
}

// moveTo removes the object at from and reinserts it at to.
func (c *Canvas) moveTo(from, to int) {
	if from == to {
		return
	}
	obj := c.objects[from]
	c.objects = append(c.objects[:from], c.objects[from+1:]...)
	rest := append([]model.DesignObject{obj}, c.objects[to:]...)
	c.objects = append(c.objects[:to], rest...)
}

// Serialize encodes the user content into a snapshot. System objects are
// excluded; the result is deterministic for byte-equality checks.
func (c *Canvas) Serialize() (model.Snapshot, error) {
	return model.ZoneContent{Objects: c.userObjects()}.Encode()
}

// Load replaces the canvas content with a snapshot's objects and
// re-establishes the zone's clip and guide.
func (c *Canvas) Load(s model.Snapshot, zone model.EngravingZone) error {
	zc, err := model.DecodeSnapshot(s)
	if err != nil {
		return err
	}
	c.objects = nil
	c.SetZone(zone)
	for i := range zc.Objects {
		if zc.Objects[i].UserAdded {
			c.objects = append(c.objects, zc.Objects[i])
		}
	}
	return nil
}

// userObjects returns copies of the user-added objects in z-order.
func (c *Canvas) userObjects() []model.DesignObject {
	out := make([]model.DesignObject, 0, len(c.objects))
	for i := range c.objects {
		if c.objects[i].UserAdded {
			out = append(out, c.objects[i])
		}
	}
	return out
}
