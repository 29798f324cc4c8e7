package face

import "math"

// discSides is the polygon resolution used for stroke joins and caps.
const discSides = 16

// maxFlattenSteps bounds the number of line segments one curve is
// split into.
const maxFlattenSteps = 24

// flattenOps converts path commands into per-contour polylines,
// splitting curves by de Casteljau subdivision.
func flattenOps(ops []penOp) [][]point {
	var contours [][]point
	var cur []point
	var pos point
	flush := func() {
		if len(cur) >= 2 {
			contours = append(contours, cur)
		}
		cur = nil
	}
	for _, op := range ops {
		switch op.cmd {
		case opMoveTo:
			flush()
			pos = op.pts[0]
			cur = append(cur, pos)
		case opLineTo:
			pos = op.pts[0]
			cur = append(cur, pos)
		case opQuadTo:
			cur = appendQuad(cur, pos, op.pts[0], op.pts[1])
			pos = op.pts[1]
		case opCubeTo:
			cur = appendCube(cur, pos, op.pts[0], op.pts[1], op.pts[2])
			pos = op.pts[2]
		case opClose:
			flush()
		}
	}
	flush()
	return contours
}

func flattenSteps(polyLen float64) int {
	n := int(polyLen/2) + 2
	if n > maxFlattenSteps {
		n = maxFlattenSteps
	}
	return n
}

func appendQuad(dst []point, p0, p1, p2 point) []point {
	n := flattenSteps(dist(p0, p1) + dist(p1, p2))
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		a := lerp(p0, p1, t)
		b := lerp(p1, p2, t)
		dst = append(dst, lerp(a, b, t))
	}
	return dst
}

func appendCube(dst []point, p0, p1, p2, p3 point) []point {
	n := flattenSteps(dist(p0, p1) + dist(p1, p2) + dist(p2, p3))
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		a := lerp(p0, p1, t)
		b := lerp(p1, p2, t)
		c := lerp(p2, p3, t)
		ab := lerp(a, b, t)
		bc := lerp(b, c, t)
		dst = append(dst, lerp(ab, bc, t))
	}
	return dst
}

func lerp(a, b point, t float64) point {
	return point{a.x + t*(b.x-a.x), a.y + t*(b.y-a.y)}
}

func dist(a, b point) float64 {
	return math.Hypot(b.x-a.x, b.y-a.y)
}

// strokeOps builds the stroke region of the contours as a set of
// polygon stamps: one quad per segment plus a disc at every vertex,
// each with half-width hw. Every stamp is emitted with positive
// shoelace winding; the coverage rasterizer clamps same-winding
// overlap, so the stamps union instead of cancelling.
func strokeOps(contours [][]point, hw float64) []penOp {
	var ops []penOp
	if hw <= 0 {
		return ops
	}
	for _, c := range contours {
		for i, p := range c {
			ops = appendDisc(ops, p, hw)
			ops = appendSegQuad(ops, p, c[(i+1)%len(c)], hw)
		}
	}
	return ops
}

func appendSegQuad(dst []penOp, a, b point, hw float64) []penOp {
	dx := b.x - a.x
	dy := b.y - a.y
	l := math.Hypot(dx, dy)
	if l < 1e-9 {
		return dst
	}
	nx := -dy / l * hw
	ny := dx / l * hw
	dst = append(dst,
		penOp{cmd: opMoveTo, pts: [3]point{{a.x - nx, a.y - ny}}},
		penOp{cmd: opLineTo, pts: [3]point{{b.x - nx, b.y - ny}}},
		penOp{cmd: opLineTo, pts: [3]point{{b.x + nx, b.y + ny}}},
		penOp{cmd: opLineTo, pts: [3]point{{a.x + nx, a.y + ny}}},
		penOp{cmd: opClose})
	return dst
}

func appendDisc(dst []penOp, c point, r float64) []penOp {
	for i := 0; i < discSides; i++ {
		t := 2 * math.Pi * float64(i) / discSides
		p := point{c.x + r*math.Cos(t), c.y + r*math.Sin(t)}
		if i == 0 {
			dst = append(dst, penOp{cmd: opMoveTo, pts: [3]point{p}})
		} else {
			dst = append(dst, penOp{cmd: opLineTo, pts: [3]point{p}})
		}
	}
	return append(dst, penOp{cmd: opClose})
}
