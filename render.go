package grove

import (
	"fmt"
	"image"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// drawTri is one projected, shaded triangle ready for submission.
type drawTri struct {
	depth float64 // squared eye distance to the centroid
	order int     // collection order, for a stable sort
	v     [3]ebiten.Vertex
}

// frameStats holds per-frame render counts.
type frameStats struct {
	triangles int
	culled    int
	batches   int
}

// whiteImage is the 1x1 source every triangle samples. Created on first
// draw because ebiten images need a running game.
var whiteImage *ebiten.Image

func whiteSubImage() *ebiten.Image {
	if whiteImage == nil {
		base := ebiten.NewImage(3, 3)
		base.Fill(Color{R: 1, G: 1, B: 1, A: 1}.toRGBA())
		whiteImage = base.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whiteImage
}

// collectTriangles walks the visible subtree, refreshes world transforms,
// and fills s.tris with every front-facing triangle that projects in front
// of the camera.
func (s *Scene) collectTriangles(w, h int) {
	s.tris = s.tris[:0]
	s.stats = frameStats{}
	updateWorldTransform(s.root, mgl64.Ident4(), false)

	vp := s.camera.ViewProjection(w, h)
	eye := s.camera.Eye()
	light := s.LightDir
	if light.Len() < 1e-12 {
		light = mgl64.Vec3{0, -1, 0}
	}
	light = light.Normalize().Mul(-1)

	var visit func(n *Node)
	visit = func(n *Node) {
		if !n.Visible {
			return
		}
		if n.Type == NodeTypeMesh && n.Mesh != nil && !n.Mesh.IsEmpty() {
			s.collectMesh(n.Mesh, n.worldTransform, vp, eye, light, w, h)
		}
		for _, child := range n.children {
			visit(child)
		}
	}
	visit(s.root)
}

func (s *Scene) collectMesh(m *Mesh, world, vp mgl64.Mat4, eye, light mgl64.Vec3, w, h int) {
	normalMat := world.Mat3().Inv().Transpose()
	mat := m.Material
	for t := 0; t < m.TriangleCount(); t++ {
		ia, ib, ic := m.Triangle(t)
		idx := [3]int{ia, ib, ic}
		var wp [3]mgl64.Vec3
		for k, i := range idx {
			wp[k] = mgl64.TransformCoordinate(m.Positions[i], world)
		}
		face := wp[1].Sub(wp[0]).Cross(wp[2].Sub(wp[0]))
		if face.Len() < 1e-12 {
			continue
		}
		face = face.Normalize()
		centroid := wp[0].Add(wp[1]).Add(wp[2]).Mul(1.0 / 3)
		toEye := eye.Sub(centroid)
		if face.Dot(toEye) <= 0 {
			s.stats.culled++
			continue
		}

		tri := drawTri{depth: toEye.Dot(toEye), order: len(s.tris)}
		visible := true
		for k, i := range idx {
			x, y, _, ok := projectPointDepth(vp, wp[k], w, h)
			if !ok {
				visible = false
				break
			}
			n := face
			if !mat.FlatShading {
				if vn := normalMat.Mul3x1(m.Normals[i]); vn.Len() > 1e-12 {
					n = vn.Normalize()
				}
			}
			c := shade(mat, n, light, eye.Sub(wp[k]), s.Ambient)
			tri.v[k] = ebiten.Vertex{
				DstX: float32(x), DstY: float32(y),
				SrcX: 1.5, SrcY: 1.5,
				ColorR: float32(c.R), ColorG: float32(c.G), ColorB: float32(c.B), ColorA: float32(c.A),
			}
		}
		if !visible {
			s.stats.culled++
			continue
		}
		s.tris = append(s.tris, tri)
	}
}

// shade returns the lit color of a surface point: ambient plus Lambert
// diffuse plus a Blinn-Phong highlight that fades with roughness.
func shade(mat Material, normal, toLight, toEye mgl64.Vec3, ambient float64) Color {
	diffuse := math.Max(0, normal.Dot(toLight))
	level := ambient + (1-ambient)*diffuse
	c := mat.Color.Scale(level)
	if mat.Roughness < 1 && diffuse > 0 && toEye.Len() > 1e-12 {
		half := toLight.Add(toEye.Normalize()).Normalize()
		spec := math.Pow(math.Max(0, normal.Dot(half)), 16) * (1 - mat.Roughness) * 0.5
		tint := Color{R: 1, G: 1, B: 1}
		if mat.Metalness > 0 {
			tint = mat.Color
		}
		c.R = clamp01(c.R + spec*tint.R)
		c.G = clamp01(c.G + spec*tint.G)
		c.B = clamp01(c.B + spec*tint.B)
	}
	return c
}

// --- Merge sort ---

// triLessOrEqual orders far triangles first. Using <= for order keeps the
// sort stable.
func triLessOrEqual(a, b drawTri) bool {
	if a.depth != b.depth {
		return a.depth > b.depth
	}
	return a.order <= b.order
}

// sortTriangles sorts s.tris far to near in-place using s.sortBuf as
// scratch space. Bottom-up merge sort: zero allocations after the sort
// buffer reaches high-water mark.
func (s *Scene) sortTriangles() {
	n := len(s.tris)
	if n <= 1 {
		return
	}
	if cap(s.sortBuf) < n {
		s.sortBuf = make([]drawTri, n)
	}
	s.sortBuf = s.sortBuf[:n]

	a := s.tris
	b := s.sortBuf
	swapped := false
	for width := 1; width < n; width *= 2 {
		for lo := 0; lo < n; lo += 2 * width {
			mid := min(lo+width, n)
			hi := min(lo+2*width, n)
			mergeRun(a, b, lo, mid, hi)
		}
		a, b = b, a
		swapped = !swapped
	}
	if swapped {
		copy(s.tris, s.sortBuf)
	}
}

// mergeRun merges two sorted runs [lo, mid) and [mid, hi) from src into dst.
func mergeRun(src, dst []drawTri, lo, mid, hi int) {
	i, j, k := lo, mid, lo
	for i < mid && j < hi {
		if triLessOrEqual(src[i], src[j]) {
			dst[k] = src[i]
			i++
		} else {
			dst[k] = src[j]
			j++
		}
		k++
	}
	k += copy(dst[k:], src[i:mid])
	copy(dst[k:], src[j:hi])
}

// --- Submission ---

// maxBatchVertices keeps batch indices addressable as uint16.
const maxBatchVertices = maxMeshVertices - 1

// submitTriangles draws s.tris in order, flushing a DrawTriangles batch
// whenever the next triangle would overflow uint16 indices.
func (s *Scene) submitTriangles(screen *ebiten.Image) {
	src := whiteSubImage()
	op := &ebiten.DrawTrianglesOptions{}
	s.verts = s.verts[:0]
	s.inds = s.inds[:0]
	flush := func() {
		if len(s.inds) == 0 {
			return
		}
		screen.DrawTriangles(s.verts, s.inds, src, op)
		s.stats.batches++
		s.verts = s.verts[:0]
		s.inds = s.inds[:0]
	}
	for _, t := range s.tris {
		if len(s.verts)+3 > maxBatchVertices {
			flush()
		}
		base := uint16(len(s.verts))
		s.verts = append(s.verts, t.v[0], t.v[1], t.v[2])
		s.inds = append(s.inds, base, base+1, base+2)
	}
	flush()
	s.stats.triangles = len(s.tris)
}

// drawStats prints FPS, TPS and triangle counts in the top-left corner.
func (s *Scene) drawStats(screen *ebiten.Image) {
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"FPS: %.1f\nTPS: %.1f\ntris: %d (culled %d)\nbatches: %d",
		ebiten.ActualFPS(), ebiten.ActualTPS(),
		s.stats.triangles, s.stats.culled, s.stats.batches))
}
