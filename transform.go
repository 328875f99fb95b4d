package grove

import "github.com/go-gl/mathgl/mgl64"

// computeLocalTransform composes the node's local matrix.
//
// Composition order:
//
//	Scale -> Rotate -> Translate(Position)
func computeLocalTransform(n *Node) mgl64.Mat4 {
	t := mgl64.Translate3D(n.Position[0], n.Position[1], n.Position[2])
	r := n.Rotation.Normalize().Mat4()
	s := mgl64.Scale3D(n.Scale[0], n.Scale[1], n.Scale[2])
	return t.Mul4(r).Mul4(s)
}

// updateWorldTransform recomputes a node's worldTransform.
// parentRecomputed indicates whether the parent was recomputed this pass,
// which forces recomputation of this node even if it's not dirty.
func updateWorldTransform(n *Node, parentTransform mgl64.Mat4, parentRecomputed bool) {
	recompute := n.transformDirty || parentRecomputed
	if recompute {
		n.worldTransform = parentTransform.Mul4(computeLocalTransform(n))
		n.transformDirty = false
	}

	for _, child := range n.children {
		updateWorldTransform(child, n.worldTransform, recompute)
	}
}

// --- Transform property setters ---

// SetPosition sets the node's local position and marks it dirty.
func (n *Node) SetPosition(x, y, z float64) {
	n.Position = mgl64.Vec3{x, y, z}
	n.transformDirty = true
}

// SetRotation sets the node's local orientation and marks it dirty.
func (n *Node) SetRotation(q mgl64.Quat) {
	n.Rotation = q
	n.transformDirty = true
}

// SetEuler sets the orientation from rotations (radians) about X, then Y,
// then Z, composed in XYZ order.
func (n *Node) SetEuler(x, y, z float64) {
	n.SetRotation(mgl64.AnglesToQuat(x, y, z, mgl64.XYZ))
}

// SetScale sets the node's per-axis scale and marks it dirty.
func (n *Node) SetScale(sx, sy, sz float64) {
	n.Scale = mgl64.Vec3{sx, sy, sz}
	n.transformDirty = true
}

// SetUniformScale sets the same scale on all three axes.
func (n *Node) SetUniformScale(s float64) {
	n.SetScale(s, s, s)
}

// MarkDirty marks the node's transform as dirty, forcing recomputation
// on the next pass. Useful after bulk-setting fields directly.
func (n *Node) MarkDirty() {
	n.transformDirty = true
}

// LocalTransform returns the node's local matrix.
func (n *Node) LocalTransform() mgl64.Mat4 {
	return computeLocalTransform(n)
}

// WorldTransform returns the node's matrix relative to the root of its tree,
// computed by walking the parent chain. It does not depend on a prior
// update pass.
func (n *Node) WorldTransform() mgl64.Mat4 {
	m := computeLocalTransform(n)
	for p := n.Parent; p != nil; p = p.Parent {
		m = computeLocalTransform(p).Mul4(m)
	}
	return m
}

// --- Coordinate conversion ---

// LocalToWorld converts a point in this node's local space to root space.
func (n *Node) LocalToWorld(p mgl64.Vec3) mgl64.Vec3 {
	return mgl64.TransformCoordinate(p, n.WorldTransform())
}

// WorldToLocal converts a root-space point to this node's local space.
func (n *Node) WorldToLocal(p mgl64.Vec3) mgl64.Vec3 {
	return mgl64.TransformCoordinate(p, n.WorldTransform().Inv())
}
